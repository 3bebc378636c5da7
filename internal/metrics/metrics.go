package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "social_admin_http_requests_total",
		Help: "The total number of handled HTTP requests",
	}, []string{"method", "route", "status_code"})

	requestLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "social_admin_http_request_latency",
			Help:    "Histogram of HTTP request latency in seconds",
			Buckets: []float64{0.005, 0.01, 0.05, 0.1, 0.5, 1, 2, 5},
		},
		[]string{"method", "route"},
	)

	statsFallbacks = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "social_admin_stats_fallback_total",
		Help: "The number of dashboard metrics served as zero because their table or query was unavailable",
	}, []string{"metric"})
)

// Middleware records the count and latency of every request, labelled by route pattern
func Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)

			status := c.Response().Status
			if err != nil {
				if he, ok := err.(*echo.HTTPError); ok {
					status = he.Code
				} else if !c.Response().Committed {
					status = http.StatusInternalServerError
				}
			}

			route := c.Path()
			if route == "" {
				route = "unmatched"
			}
			method := c.Request().Method

			requestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
			requestLatency.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
			return err
		}
	}
}

// StatsFallback counts one dashboard metric that fell back to zero
func StatsFallback(metric string) {
	statsFallbacks.WithLabelValues(metric).Inc()
}
