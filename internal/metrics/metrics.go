package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "culinashare_http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "culinashare_http_request_duration_seconds",
		Help:    "Duration of HTTP requests",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	dbOperations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "culinashare_db_operations_total",
		Help: "Count of repository operations by collection, operation and result",
	}, []string{"collection", "op", "result"})

	dbOperationDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "culinashare_db_operation_duration_seconds",
		Help:    "Duration of repository operations",
		Buckets: prometheus.DefBuckets,
	}, []string{"collection", "op"})

	statisticsFallbacks = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "culinashare_statistics_fallbacks_total",
		Help: "Count of statistics queries that failed and fell back to zero",
	}, []string{"query"})
)

// ObserveHTTPRequest records an HTTP request metric
func ObserveHTTPRequest(method, path, status string, duration time.Duration) {
	httpRequestsTotal.WithLabelValues(method, path, status).Inc()
	httpRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}

// ObserveDBOperation records one repository call. A nil err counts as "ok".
func ObserveDBOperation(collection, op string, err error, duration time.Duration) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	dbOperations.WithLabelValues(collection, op, result).Inc()
	dbOperationDuration.WithLabelValues(collection, op).Observe(duration.Seconds())
}

// ObserveStatisticsFallback counts a swallowed statistics fault.
func ObserveStatisticsFallback(query string) {
	statisticsFallbacks.WithLabelValues(query).Inc()
}
