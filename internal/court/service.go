package court

import (
	"context"
	"errors"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/Fanyang77/AI-friendship-court/internal/scoring"
	"github.com/Fanyang77/AI-friendship-court/internal/text"
)

// supportMessage accompanies verdicts flagged by the optional local
// screening on the heuristic path. Model verdicts carry the message the
// model wrote.
const supportMessage = "Some of what you shared sounds serious. Please consider talking to " +
	"someone you trust or a professional support service; you deserve real-world help with this."

// Service runs the mediation pipeline: one model attempt, then the
// deterministic heuristic. Mediate always returns a verdict; Verdict.Source
// is the only signal that degradation happened.
type Service struct {
	model  Mediator
	safety *scoring.SafetyScanner
}

// NewService wires the optional model mediator and the optional safety
// scanner. Either may be nil: without a mediator every verdict is
// heuristic, and without a scanner the heuristic path never flags.
func NewService(model Mediator, safety *scoring.SafetyScanner) *Service {
	return &Service{model: model, safety: safety}
}

// Mediate produces a verdict for the dispute. The model is asked exactly
// once; any transport, auth, parse, or schema failure degrades to the
// heuristic verdict. No error ever reaches the caller.
func (s *Service) Mediate(ctx context.Context, d Dispute) Verdict {
	if s.model != nil && s.model.Enabled() {
		verdict, err := s.model.Mediate(ctx, d)
		if err == nil {
			verdict.Source = SourceModel
			return verdict
		}
		logrus.WithError(err).WithField("reason", failureClass(err)).
			Warn("model mediation failed; using heuristic verdict")
	}
	return s.heuristic(d)
}

func (s *Service) heuristic(d Dispute) Verdict {
	a := text.Normalize(d.StoryA)
	b := text.Normalize(d.StoryB)
	verdict := fallbackVerdict(a, b)

	if s.safety != nil {
		if scan := s.safety.Scan(a, b); scan.Severe() {
			verdict.Safety = Safety{Flagged: true, Message: supportMessage}
		}
	}
	return verdict
}

// failureClass buckets a mediation error for the warning log. Sentinels
// cover the parse side; transport and auth ride the status text the client
// puts in its errors.
func failureClass(err error) string {
	if err == nil {
		return ""
	}
	if errors.Is(err, ErrSchema) {
		return "schema"
	}
	if errors.Is(err, ErrMalformed) {
		return "malformed_payload"
	}
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "disabled"):
		return "disabled"
	case strings.Contains(msg, "status 401"), strings.Contains(msg, "status 403"):
		return "auth"
	default:
		return "transport"
	}
}
