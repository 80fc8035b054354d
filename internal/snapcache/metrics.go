package snapcache

import "github.com/prometheus/client_golang/prometheus"

var (
	cacheHits = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "previewd",
		Subsystem: "cache",
		Name:      "hits_total",
		Help:      "Snapshot cache hits",
	})

	cacheMisses = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "previewd",
		Subsystem: "cache",
		Name:      "misses_total",
		Help:      "Snapshot cache misses",
	})

	cacheEvictions = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "previewd",
		Subsystem: "cache",
		Name:      "evictions_total",
		Help:      "Snapshots evicted to stay within capacity",
	})

	cacheEntries = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "previewd",
		Subsystem: "cache",
		Name:      "entries",
		Help:      "Snapshots currently resident",
	})
)

func init() {
	prometheus.MustRegister(cacheHits, cacheMisses, cacheEvictions, cacheEntries)
}
