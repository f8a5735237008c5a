package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/Fanyang77/AI-friendship-court/internal/ai"
	"github.com/Fanyang77/AI-friendship-court/internal/court"
	"github.com/Fanyang77/AI-friendship-court/internal/scoring"
	"github.com/Fanyang77/AI-friendship-court/internal/util"
)

const disclaimer = "Friendship Court is for reflection and better conversations only. " +
	"It is not a substitute for professional or medical advice."

// Config defines server dependencies.
type Config struct {
	AllowedOrigins []string
	AIConfig       ai.Config
	DisableAI      bool
	SafetyTerms    string
	SafetyCheck    bool
}

// Server wires HTTP handlers with the mediation pipeline.
type Server struct {
	court          *court.Service
	notifier       *VerdictNotifier
	allowedOrigins []string
	modelName      string
	mediationOn    bool
	safetyCheck    bool
}

// NewServer constructs the API server. Missing OpenAI credentials are
// not an error: the court still convenes, every verdict just comes from
// the heuristic path.
func NewServer(cfg Config) (*Server, error) {
	var mediator court.Mediator
	modelName := ""
	if cfg.DisableAI {
		logrus.Info("model mediation disabled via configuration")
	} else {
		if client, err := ai.NewClient(cfg.AIConfig); err == nil {
			mediator = client
			modelName = client.Model()
		} else if errors.Is(err, ai.ErrDisabled) {
			logrus.Info("no OpenAI credentials configured; verdicts will use the heuristic path")
		} else {
			return nil, fmt.Errorf("ai client: %w", err)
		}
	}

	var scanner *scoring.SafetyScanner
	if cfg.SafetyCheck {
		built, err := scoring.NewSafetyScanner(cfg.SafetyTerms)
		if err != nil {
			return nil, fmt.Errorf("safety scanner: %w", err)
		}
		scanner = built
		logrus.Info("safety screening enabled for heuristic verdicts")
	}

	server := &Server{
		court:          court.NewService(mediator, scanner),
		notifier:       NewVerdictNotifier(),
		allowedOrigins: cfg.AllowedOrigins,
		modelName:      modelName,
		mediationOn:    mediator != nil,
		safetyCheck:    scanner != nil,
	}
	return server, nil
}

// Router configures gin routes.
func (s *Server) Router() (*gin.Engine, error) {
	r := gin.Default()

	corsCfg := cors.DefaultConfig()
	corsCfg.AllowCredentials = true
	if len(s.allowedOrigins) == 0 {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = s.allowedOrigins
	}
	corsCfg.AllowHeaders = []string{"Origin", "Content-Type", "Accept"}
	corsCfg.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	r.Use(cors.New(corsCfg))

	r.GET("/api/healthz", s.handleHealth)
	r.GET("/api/config", s.handleConfig)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	{
		api.POST("/mediate", s.handleMediate)
		api.GET("/mediate/stream", s.handleMediateStream)
	}

	return r, nil
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleConfig(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"model":             s.modelName,
		"mediation_enabled": s.mediationOn,
		"safety_check":      s.safetyCheck,
		"tones":             court.Tones(),
		"disclaimer":        disclaimer,
	})
}

func (s *Server) handleMediate(c *gin.Context) {
	var req MediateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.renderError(c, http.StatusBadRequest, err)
		return
	}
	if strings.TrimSpace(req.StoryA) == "" || strings.TrimSpace(req.StoryB) == "" {
		s.renderError(c, http.StatusBadRequest, errors.New("both perspectives are required"))
		return
	}

	caseID := uuid.NewString()
	tone := court.ParseTone(req.Tone)
	dispute := court.Dispute{StoryA: req.StoryA, StoryB: req.StoryB, Tone: tone}

	s.notifier.Broadcast(VerdictEvent{
		Type:    "mediating",
		CaseID:  caseID,
		Tone:    string(tone),
		Message: "the owl judge is deliberating",
	})

	timer := util.StartTimer()
	verdict := s.court.Mediate(c.Request.Context(), dispute)
	elapsed := timer.Elapsed()

	mediationSeconds.Observe(elapsed.Seconds())
	verdictsTotal.WithLabelValues(string(verdict.Source)).Inc()
	if verdict.Safety.Flagged {
		safetyFlagsTotal.Inc()
	}

	dto := FromVerdict(caseID, tone, verdict, elapsed.Milliseconds())
	s.notifier.Broadcast(VerdictEvent{
		Type:    "verdict",
		CaseID:  caseID,
		Tone:    string(tone),
		Verdict: &dto,
	})

	logrus.WithFields(logrus.Fields{
		"case_id":       caseID,
		"source":        dto.Source,
		"share_a":       dto.ShareA,
		"share_b":       dto.ShareB,
		"flagged":       dto.Safety.Flagged,
		"processing_ms": dto.ProcessingMs,
	}).Info("verdict issued")

	c.JSON(http.StatusOK, dto)
}

func (s *Server) handleMediateStream(c *gin.Context) {
	upgrader := websocket.Upgrader{
		HandshakeTimeout:  5 * time.Second,
		EnableCompression: true,
		CheckOrigin: func(r *http.Request) bool {
			if len(s.allowedOrigins) == 0 {
				return true
			}
			origin := strings.TrimSpace(r.Header.Get("Origin"))
			for _, allowed := range s.allowedOrigins {
				if strings.EqualFold(origin, allowed) {
					return true
				}
			}
			return false
		},
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logrus.WithError(err).Warn("upgrade websocket")
		return
	}

	client := s.notifier.Register(conn)
	logrus.WithField("remote", conn.RemoteAddr().String()).Info("verdict websocket connected")
	defer s.notifier.Unregister(client)

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if !websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logrus.WithField("remote", conn.RemoteAddr().String()).Info("verdict websocket closed")
			} else {
				logrus.WithError(err).Warn("verdict websocket unexpected close")
			}
			break
		}
	}
}

func (s *Server) renderError(c *gin.Context, status int, err error) {
	c.JSON(status, gin.H{"error": err.Error()})
}
