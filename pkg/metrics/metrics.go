// Package metrics exposes Prometheus instrumentation for the API.
package metrics

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus collectors
type Metrics struct {
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec

	ApplicationsTotal prometheus.Counter
	ClicksTotal       prometheus.Counter
	RateLimitedTotal  *prometheus.CounterVec
}

// New registers and returns the API metrics
func New() *Metrics {
	return &Metrics{
		requestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "campbase_http_requests_total",
			Help: "HTTP requests by method, path and status.",
		}, []string{"method", "path", "status"}),
		requestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "campbase_http_request_duration_seconds",
			Help:    "HTTP request latency.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path"}),
		ApplicationsTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "campbase_applications_total",
			Help: "Accepted membership applications.",
		}),
		ClicksTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "campbase_campaign_clicks_total",
			Help: "Recorded campaign link clicks.",
		}),
		RateLimitedTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "campbase_rate_limited_total",
			Help: "Requests denied by the public endpoint rate limiters.",
		}, []string{"endpoint"}),
	}
}

// Middleware records request counts and latency per route.
func (m *Metrics) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)

			// c.Path() is the route pattern, so cardinality stays bounded.
			path := c.Path()
			if path == "" {
				path = "unknown"
			}
			method := c.Request().Method
			status := c.Response().Status
			if err != nil {
				if he, ok := err.(*echo.HTTPError); ok {
					status = he.Code
				}
			}

			m.requestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
			m.requestDuration.WithLabelValues(method, path).Observe(time.Since(start).Seconds())

			return err
		}
	}
}
