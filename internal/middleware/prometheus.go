package middleware

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status", "service"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint", "service"},
	)

	directoryRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "directory_requests_total",
			Help: "Total number of round trips to the user directory",
		},
		[]string{"operation", "status"},
	)

	directoryRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "directory_request_duration_seconds",
			Help:    "Duration of directory round trips in seconds",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"operation"},
	)
)

// Prometheus records request counts and latencies for every console route.
func Prometheus(serviceName string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			path := c.Path()
			if path == "" {
				path = c.Request().URL.Path
			}

			err := next(c)

			// The error handler has not written the response yet when next
			// returns an error, so derive the status from the error itself.
			status := c.Response().Status
			if err != nil {
				var he *echo.HTTPError
				if errors.As(err, &he) {
					status = he.Code
				} else {
					status = http.StatusInternalServerError
				}
			}

			duration := time.Since(start).Seconds()

			httpRequestsTotal.WithLabelValues(
				c.Request().Method,
				path,
				strconv.Itoa(status),
				serviceName,
			).Inc()

			httpRequestDuration.WithLabelValues(
				c.Request().Method,
				path,
				serviceName,
			).Observe(duration)

			return err
		}
	}
}

// RecordDirectoryRequest tracks one round trip to the directory backend.
// A statusCode of 0 means the request never produced a response.
func RecordDirectoryRequest(operation string, statusCode int, duration time.Duration) {
	status := "error"
	if statusCode > 0 {
		status = strconv.Itoa(statusCode)
	}
	directoryRequestsTotal.WithLabelValues(operation, status).Inc()
	directoryRequestDuration.WithLabelValues(operation).Observe(duration.Seconds())
}
