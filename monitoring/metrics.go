package monitoring

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shopspring/decimal"
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

	HttpResponseSize = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_response_size_bytes",
			Help:    "HTTP response size in bytes",
			Buckets: prometheus.ExponentialBuckets(100, 10, 8),
		},
		[]string{"method", "endpoint"},
	)

	ActiveRequests = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_active_requests",
			Help: "Number of requests being served",
		},
	)

	// Store metrics
	AuthenticationAttempts = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "authentication_attempts_total",
			Help: "Total number of login attempts",
		},
		[]string{"status"},
	)

	PurchasesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "store_purchases_total",
			Help: "Purchase attempts by item kind and outcome",
		},
		[]string{"kind", "outcome"},
	)

	RevenueTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "store_revenue_total",
			Help: "Money spent on completed purchases",
		},
		[]string{"kind"},
	)

	TopUpsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "store_topups_total",
			Help: "Number of balance top-ups",
		},
	)

	ErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "errors_total",
			Help: "Total number of errors",
		},
		[]string{"type", "endpoint"},
	)
)

// Register adds every collector to reg.
func Register(reg prometheus.Registerer) error {
	collectors := []prometheus.Collector{
		HttpRequestsTotal,
		HttpRequestDuration,
		HttpResponseSize,
		ActiveRequests,
		AuthenticationAttempts,
		PurchasesTotal,
		RevenueTotal,
		TopUpsTotal,
		ErrorsTotal,
	}
	for _, c := range collectors {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}

// InitMetrics registers the collectors with the default registry.
func InitMetrics() {
	if err := Register(prometheus.DefaultRegisterer); err != nil {
		panic(err)
	}
}

func RecordLogin(ok bool) {
	status := "failure"
	if ok {
		status = "success"
	}
	AuthenticationAttempts.WithLabelValues(status).Inc()
}

// RecordPurchase counts a purchase attempt. Revenue is only added for
// completed purchases.
func RecordPurchase(kind, outcome string, price decimal.Decimal) {
	PurchasesTotal.WithLabelValues(kind, outcome).Inc()
	if outcome == "completed" {
		RevenueTotal.WithLabelValues(kind).Add(price.InexactFloat64())
	}
}

func RecordTopUp() {
	TopUpsTotal.Inc()
}

// PrometheusMiddleware collects metrics for each request
func PrometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		ActiveRequests.Inc()
		defer ActiveRequests.Dec()

		c.Next()

		endpoint := c.FullPath()
		if endpoint == "" {
			endpoint = "unmatched"
		}
		status := c.Writer.Status()

		HttpRequestsTotal.WithLabelValues(c.Request.Method, endpoint, strconv.Itoa(status)).Inc()
		HttpRequestDuration.WithLabelValues(c.Request.Method, endpoint).Observe(time.Since(start).Seconds())
		HttpResponseSize.WithLabelValues(c.Request.Method, endpoint).Observe(float64(c.Writer.Size()))

		if status >= 500 {
			ErrorsTotal.WithLabelValues("server_error", endpoint).Inc()
		} else if status >= 400 {
			ErrorsTotal.WithLabelValues("client_error", endpoint).Inc()
		}
	}
}

// PrometheusHandler returns Prometheus metrics handler
func PrometheusHandler() gin.HandlerFunc {
	h := promhttp.Handler()
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}
