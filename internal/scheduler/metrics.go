package scheduler

import "github.com/prometheus/client_golang/prometheus"

var (
	queueDepth = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "previewd",
		Subsystem: "scheduler",
		Name:      "pending",
		Help:      "Live render requests waiting for a context slot.",
	})
	queueActive = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "previewd",
		Subsystem: "scheduler",
		Name:      "active",
		Help:      "Render requests currently holding a context slot.",
	})
	queueEnqueued = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "previewd",
		Subsystem: "scheduler",
		Name:      "enqueued_total",
		Help:      "Render requests accepted into the queue.",
	})
	queueAdmitted = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "previewd",
		Subsystem: "scheduler",
		Name:      "admitted_total",
		Help:      "Render requests promoted to a context slot.",
	})
	queueCancelled = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "previewd",
		Subsystem: "scheduler",
		Name:      "cancelled_total",
		Help:      "Render requests cancelled while still pending.",
	})
	queueFinished = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "previewd",
		Subsystem: "scheduler",
		Name:      "finished_total",
		Help:      "Admitted render requests that released their slot.",
	})
	queueRejected = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "previewd",
		Subsystem: "scheduler",
		Name:      "rejected_total",
		Help:      "Enqueue attempts refused because the queue was full.",
	})
)

func init() {
	prometheus.MustRegister(queueDepth, queueActive, queueEnqueued, queueAdmitted, queueCancelled, queueFinished, queueRejected)
}
