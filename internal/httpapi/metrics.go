package httpapi

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "previewd",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests served",
		},
		[]string{"path", "method", "status"},
	)

	httpRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "previewd",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"path", "method", "status"},
	)

	// In-flight is deliberately unlabelled: the path label is only known
	// after routing, and the raw URL would leak one series per session id.
	httpInflight = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "previewd",
		Subsystem: "http",
		Name:      "inflight_requests",
		Help:      "HTTP requests currently being served",
	})

	imageBytesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "previewd",
		Subsystem: "http",
		Name:      "image_bytes_total",
		Help:      "Snapshot PNG bytes served to consumers",
	})

	backpressureTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "previewd",
			Subsystem: "http",
			Name:      "backpressure_total",
			Help:      "Requests rejected with 429 because a queue was full",
		},
		[]string{"reason"},
	)
)

func init() {
	prometheus.MustRegister(httpRequestsTotal, httpRequestDuration, httpInflight, imageBytesTotal, backpressureTotal)
}

// responseRecorder captures the status code and body size of a response.
type responseRecorder struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (rr *responseRecorder) WriteHeader(code int) {
	rr.status = code
	rr.ResponseWriter.WriteHeader(code)
}

func (rr *responseRecorder) Write(p []byte) (int, error) {
	n, err := rr.ResponseWriter.Write(p)
	rr.bytes += n
	return n, err
}

// MetricsMiddleware instruments every request with request counters and a
// latency histogram. It must be mounted on the chi router itself (not wrapped
// around it): the route pattern used for the path label is only available on
// the request context once chi has matched the route, so the label is
// resolved after the handler ran.
func MetricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		httpInflight.Inc()
		defer httpInflight.Dec()

		rec := &responseRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()
		next.ServeHTTP(rec, r)

		path := routePatternOrPath(r)
		status := strconv.Itoa(rec.status)
		httpRequestsTotal.WithLabelValues(path, r.Method, status).Inc()
		httpRequestDuration.WithLabelValues(path, r.Method, status).Observe(time.Since(start).Seconds())
	})
}

// routePatternOrPath prefers the matched chi route pattern over the raw URL
// path so per-session URLs collapse into one label value.
func routePatternOrPath(r *http.Request) string {
	if rc := chi.RouteContext(r.Context()); rc != nil {
		if p := rc.RoutePattern(); p != "" {
			return p
		}
	}
	return r.URL.Path
}

// ObserveImageServed accounts snapshot bytes written to a consumer.
func ObserveImageServed(n int) {
	if n > 0 {
		imageBytesTotal.Add(float64(n))
	}
}

// IncrementBackpressure counts a 429 rejection by cause.
func IncrementBackpressure(reason string) {
	if reason == "" {
		reason = "unspecified"
	}
	backpressureTotal.WithLabelValues(reason).Inc()
}
