package render

import "github.com/prometheus/client_golang/prometheus"

var (
	drawsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "previewd",
		Subsystem: "render",
		Name:      "draws_total",
		Help:      "Completed draw/readback operations.",
	})
	contextsInUse = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "previewd",
		Subsystem: "render",
		Name:      "contexts_in_use",
		Help:      "Rendering contexts currently acquired.",
	})
)

func init() {
	prometheus.MustRegister(drawsTotal, contextsInUse)
}
