package monitoring

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTP metrics
	HttpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	HttpRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	// Application metrics
	ActiveConnections = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "active_connections",
			Help: "Number of active connections",
		},
	)

	DatasetRows = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "dataset_rows",
			Help: "Rows currently loaded per dataset table",
		},
		[]string{"table"},
	)

	DatasetFromFile = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "dataset_from_file",
			Help: "Whether a table was loaded from a real CSV file (1) or synthetic data (0)",
		},
		[]string{"table"},
	)

	ChatQueriesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chat_queries_total",
			Help: "Chat queries answered, by routed analysis category",
		},
		[]string{"category"},
	)

	LLMAttemptsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "llm_attempts_total",
			Help: "Generative model attempts by model and outcome",
		},
		[]string{"model", "outcome"},
	)

	AuthenticationAttempts = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "authentication_attempts_total",
			Help: "Total number of authentication attempts",
		},
		[]string{"status"}, // success or failure
	)

	// Error metrics
	ErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "errors_total",
			Help: "Total number of errors",
		},
		[]string{"type", "endpoint"},
	)
)

// InitMetrics initializes Prometheus metrics
func InitMetrics() {
	prometheus.MustRegister(HttpRequestsTotal)
	prometheus.MustRegister(HttpRequestDuration)
	prometheus.MustRegister(ActiveConnections)
	prometheus.MustRegister(DatasetRows)
	prometheus.MustRegister(DatasetFromFile)
	prometheus.MustRegister(ChatQueriesTotal)
	prometheus.MustRegister(LLMAttemptsTotal)
	prometheus.MustRegister(AuthenticationAttempts)
	prometheus.MustRegister(ErrorsTotal)
}

// SetDatasetGauges records the table sizes after a (re)load.
func SetDatasetGauges(table string, rows int, fromFile bool) {
	DatasetRows.WithLabelValues(table).Set(float64(rows))
	v := 0.0
	if fromFile {
		v = 1.0
	}
	DatasetFromFile.WithLabelValues(table).Set(v)
}

// PrometheusMiddleware collects metrics for each request
func PrometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		ActiveConnections.Inc()
		defer ActiveConnections.Dec()

		c.Next()

		duration := time.Since(start).Seconds()

		HttpRequestsTotal.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			strconv.Itoa(c.Writer.Status()),
		).Inc()

		HttpRequestDuration.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
		).Observe(duration)
	}
}

// PrometheusHandler returns Prometheus metrics handler
func PrometheusHandler() gin.HandlerFunc {
	h := promhttp.Handler()
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}
