package visibility

import "github.com/prometheus/client_golang/prometheus"

var (
	reportsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "previewd",
		Subsystem: "visibility",
		Name:      "reports_total",
		Help:      "Intersection reports received from clients.",
	})
	triggersTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "previewd",
		Subsystem: "visibility",
		Name:      "triggers_total",
		Help:      "Consumers that crossed the visibility threshold for the first time.",
	})
	watchersActive = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "previewd",
		Subsystem: "visibility",
		Name:      "watchers",
		Help:      "Open push-provider subscriptions.",
	})
)

func init() {
	prometheus.MustRegister(reportsTotal, triggersTotal, watchersActive)
}
