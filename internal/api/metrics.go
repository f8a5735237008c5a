package api

import "github.com/prometheus/client_golang/prometheus"

var (
	verdictsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "friendship_court_verdicts_total",
			Help: "Verdicts issued, labeled by source (model or heuristic).",
		},
		[]string{"source"},
	)

	mediationSeconds = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "friendship_court_mediation_seconds",
			Help:    "Wall-clock time from accepted dispute to verdict.",
			Buckets: []float64{0.1, 0.5, 1, 2.5, 5, 10, 20, 45, 60},
		},
	)

	safetyFlagsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "friendship_court_safety_flags_total",
			Help: "Verdicts that carried a safety flag.",
		},
	)
)

func init() {
	prometheus.MustRegister(verdictsTotal)
	prometheus.MustRegister(mediationSeconds)
	prometheus.MustRegister(safetyFlagsTotal)
}
