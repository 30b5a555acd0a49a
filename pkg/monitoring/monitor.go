package monitoring

import (
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RequestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: []float64{0.1, 0.5, 1, 2, 5},
		},
		[]string{"method", "endpoint"},
	)

	// FallbackCounter 每次使用降级默认值时递增
	FallbackCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "analytics_fallback_total",
			Help: "Number of times synthetic defaults replaced an upstream snapshot",
		},
		[]string{"source"},
	)

	DroppedRecords = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "upstream_records_dropped_total",
			Help: "Upstream records rejected by the schema check",
		},
		[]string{"kind"},
	)

	ValidationResults = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "question_batches_validated_total",
			Help: "Validated question batches by verdict",
		},
		[]string{"valid"},
	)

	BadgesAwarded = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "badges_awarded_total",
			Help: "Badges recorded in the earned ledger",
		},
		[]string{"badge_type"},
	)
)

var initOnce sync.Once

// Init registers the collectors with the default registry, once per process.
func Init() {
	initOnce.Do(func() {
		prometheus.MustRegister(RequestCounter)
		prometheus.MustRegister(RequestDuration)
		prometheus.MustRegister(FallbackCounter)
		prometheus.MustRegister(DroppedRecords)
		prometheus.MustRegister(ValidationResults)
		prometheus.MustRegister(BadgesAwarded)
	})
}

func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		duration := time.Since(start).Seconds()
		status := c.Writer.Status()

		RequestCounter.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			strconv.Itoa(status),
		).Inc()

		RequestDuration.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
		).Observe(duration)
	}
}

func PrometheusHandler() gin.HandlerFunc {
	h := promhttp.Handler()
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}
