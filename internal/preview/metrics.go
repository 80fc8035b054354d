package preview

import "github.com/prometheus/client_golang/prometheus"

var (
	sessionsActive = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "previewd",
		Subsystem: "preview",
		Name:      "sessions_active",
		Help:      "Number of mounted preview sessions.",
	})
	previewsRequested = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "previewd",
		Subsystem: "preview",
		Name:      "requests_total",
		Help:      "Total preview mount requests accepted.",
	})
	previewsCancelled = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "previewd",
		Subsystem: "preview",
		Name:      "cancels_total",
		Help:      "Total preview sessions cancelled by consumers.",
	})
	sessionsExpired = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "previewd",
		Subsystem: "preview",
		Name:      "sessions_expired_total",
		Help:      "Total idle preview sessions reaped by the janitor.",
	})
	resultsSuppressed = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "previewd",
		Subsystem: "preview",
		Name:      "results_suppressed_total",
		Help:      "Total completed renders dropped because the session went away.",
	})
)

func init() {
	prometheus.MustRegister(
		sessionsActive,
		previewsRequested,
		previewsCancelled,
		sessionsExpired,
		resultsSuppressed,
	)
}
