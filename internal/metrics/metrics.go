// Package metrics provides Prometheus metrics for the filedesk server.
package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "filedesk_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "status"},
	)

	authAttemptsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "filedesk_auth_attempts_total",
			Help: "Total number of authentication attempts",
		},
		[]string{"success"},
	)

	fileOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "filedesk_file_operations_total",
			Help: "Total number of file tree operations",
		},
		[]string{"op", "status"},
	)
)

// RecordRequest counts a completed HTTP request.
func RecordRequest(method string, status int) {
	httpRequestsTotal.WithLabelValues(method, strconv.Itoa(status)).Inc()
}

// RecordAuthAttempt counts a login/register attempt.
func RecordAuthAttempt(success bool) {
	authAttemptsTotal.WithLabelValues(strconv.FormatBool(success)).Inc()
}

// RecordFileOp counts a file tree operation result.
func RecordFileOp(op string, status int) {
	fileOperationsTotal.WithLabelValues(op, strconv.Itoa(status)).Inc()
}

// Handler returns the /metrics endpoint handler.
func Handler() http.Handler {
	return promhttp.Handler()
}
