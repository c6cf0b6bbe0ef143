package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Counter: store lookups split by namespace and hit/miss/error.
	StoreLookupsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "store_lookups_total",
			Help: "Total number of key-value store lookups by namespace and result.",
		},
		[]string{"namespace", "result"},
	)

	// Counter: requests rejected by the rate limiter.
	RateLimitRejectionsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "rate_limit_rejections_total",
			Help: "Total number of requests rejected by the rate limiter.",
		},
	)

	// Histogram: HTTP latency in seconds. Buckets are fine-grained at
	// the low end so cache hits (~1ms) and simulated origin fetches
	// (~2s) land in clearly separate buckets.
	RequestDurationSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds.",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"path", "method", "status_code"},
	)

	// Gauge: requests currently being handled.
	RequestsInProgress = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_requests_inprogress",
			Help: "Number of HTTP requests currently in progress.",
		},
	)
)

// Register is called once in main() to register metrics.
func Register() {
	prometheus.MustRegister(
		StoreLookupsTotal,
		RateLimitRejectionsTotal,
		RequestDurationSeconds,
		RequestsInProgress,
	)
}

// Handler exposes the /metrics endpoint for Prometheus to scrape.
func Handler() http.Handler {
	return promhttp.Handler()
}

// Middleware measures latency and in-flight requests for each HTTP request.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		RequestsInProgress.Inc()
		defer RequestsInProgress.Dec()

		// capture status code
		rec := &statusRecorder{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		next.ServeHTTP(rec, r)

		duration := time.Since(start).Seconds()

		RequestDurationSeconds.
			WithLabelValues(r.URL.Path, r.Method, strconv.Itoa(rec.statusCode)).
			Observe(duration)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	statusCode int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.statusCode = code
	r.ResponseWriter.WriteHeader(code)
}
