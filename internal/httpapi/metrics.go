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
			Namespace: "reinforce",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"path", "method", "status"},
	)

	httpRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "reinforce",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"path", "method", "status"},
	)

	checkpointLatestStep = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "reinforce",
			Subsystem: "checkpoint",
			Name:      "latest_step",
			Help:      "Step number of the latest checkpoint seen by the last scan (-1 when none)",
		},
	)

	checkpointCount = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "reinforce",
			Subsystem: "checkpoint",
			Name:      "count",
			Help:      "Number of checkpoint directories seen by the last scan",
		},
	)

	acceleratorMemoryBytes = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "reinforce",
			Subsystem: "accelerator",
			Name:      "memory_bytes",
			Help:      "Total memory of accelerator 0 at startup (0 when none)",
		},
	)
)

func init() {
	prometheus.MustRegister(httpRequestsTotal, httpRequestDuration, checkpointLatestStep, checkpointCount, acceleratorMemoryBytes)
	checkpointLatestStep.Set(-1)
}

// statusRecorder wraps http.ResponseWriter to capture status code
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (sr *statusRecorder) WriteHeader(code int) {
	sr.status = code
	sr.ResponseWriter.WriteHeader(code)
}

// MetricsMiddleware instruments requests for Prometheus
func MetricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sr := &statusRecorder{ResponseWriter: w, status: 200}
		start := time.Now()
		next.ServeHTTP(sr, r)
		// route pattern is only known after routing
		path := routePatternOrPath(r)
		statusLabel := strconv.Itoa(sr.status)
		dur := time.Since(start).Seconds()
		httpRequestsTotal.WithLabelValues(path, r.Method, statusLabel).Inc()
		httpRequestDuration.WithLabelValues(path, r.Method, statusLabel).Observe(dur)
	})
}

// routePatternOrPath returns the chi route pattern if available, otherwise
// falls back to URL path. This avoids high-cardinality label values.
func routePatternOrPath(r *http.Request) string {
	if rc := chi.RouteContext(r.Context()); rc != nil {
		if p := rc.RoutePattern(); p != "" {
			return p
		}
	}
	return r.URL.Path
}

// SetAcceleratorMemory records the detected accelerator memory.
func SetAcceleratorMemory(bytes uint64) { acceleratorMemoryBytes.Set(float64(bytes)) }

func observeCheckpoints(count int, latest int64) {
	checkpointCount.Set(float64(count))
	checkpointLatestStep.Set(float64(latest))
}
