package capture

import "github.com/prometheus/client_golang/prometheus"

var (
	capturesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "previewd",
		Subsystem: "capture",
		Name:      "snapshots_total",
		Help:      "Successfully captured snapshots.",
	})
	captureErrors = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "previewd",
		Subsystem: "capture",
		Name:      "errors_total",
		Help:      "Failed captures by phase.",
	}, []string{"phase"})
	captureSeconds = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "previewd",
		Subsystem: "capture",
		Name:      "seconds",
		Help:      "Capture latency from context acquire through encode.",
		Buckets:   prometheus.DefBuckets,
	})
	settleSeconds = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "previewd",
		Subsystem: "capture",
		Name:      "settle_seconds",
		Help:      "Time spent waiting for render-loop ticks before the draw.",
		Buckets:   prometheus.DefBuckets,
	})
)

func init() {
	prometheus.MustRegister(capturesTotal, captureErrors, captureSeconds, settleSeconds)
}
