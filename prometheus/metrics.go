package prometheus

import (
	"time"

	"github.com/ahmadhamza100/inventory-management-dashboard/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP request metrics
	HttpRequestsTotal   prometheus.CounterVec
	HttpRequestDuration prometheus.HistogramVec

	// Authentication metrics
	AuthAttemptsCounter prometheus.Counter
	AuthErrorsCounter   prometheus.CounterVec

	// Database operation metrics
	DbOperationDuration prometheus.HistogramVec

	// Domain operation counters
	InvoiceOperationsCounter     prometheus.CounterVec
	ProductOperationsCounter     prometheus.CounterVec
	CustomerOperationsCounter    prometheus.CounterVec
	TransactionOperationsCounter prometheus.CounterVec
	UserOperationsCounter        prometheus.CounterVec

	// Invoice number generation conflicts resolved by retry
	InvoiceNumberConflictsCounter prometheus.Counter
)

// InitMetrics initializes Prometheus metrics with configuration
func InitMetrics(cfg *config.Config) {
	prefix := cfg.Metrics.Prefix

	HttpRequestsTotal = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HttpRequestDuration = *promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    prefix + "_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	AuthAttemptsCounter = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: prefix + "_auth_attempts_total",
			Help: "Total number of authentication attempts",
		},
	)

	AuthErrorsCounter = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_auth_errors_total",
			Help: "Total number of authentication errors",
		},
		[]string{"reason"},
	)

	DbOperationDuration = *promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    prefix + "_db_operation_duration_seconds",
			Help:    "Duration of database operations in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation_type"},
	)

	InvoiceOperationsCounter = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_invoice_operations_total",
			Help: "Total number of invoice operations",
		},
		[]string{"operation"},
	)

	ProductOperationsCounter = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_product_operations_total",
			Help: "Total number of product operations",
		},
		[]string{"operation"},
	)

	CustomerOperationsCounter = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_customer_operations_total",
			Help: "Total number of customer operations",
		},
		[]string{"operation"},
	)

	TransactionOperationsCounter = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_transaction_operations_total",
			Help: "Total number of cash transaction operations",
		},
		[]string{"operation"},
	)

	UserOperationsCounter = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_user_operations_total",
			Help: "Total number of user management operations",
		},
		[]string{"operation"},
	)

	InvoiceNumberConflictsCounter = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: prefix + "_invoice_number_conflicts_total",
			Help: "Invoice number collisions resolved by retrying the create transaction",
		},
	)
}

// TrackDBOperation returns a function that records the duration of a database operation
func TrackDBOperation(operationType string) func(startTime time.Time) {
	return func(startTime time.Time) {
		duration := time.Since(startTime).Seconds()
		DbOperationDuration.WithLabelValues(operationType).Observe(duration)
	}
}

// RecordAuthError increments the auth error counter for a reason
func RecordAuthError(reason string) {
	AuthErrorsCounter.WithLabelValues(reason).Inc()
}

// RecordInvoiceOperation increments the counter for invoice operations
func RecordInvoiceOperation(operation string) {
	InvoiceOperationsCounter.WithLabelValues(operation).Inc()
}

// RecordProductOperation increments the counter for product operations
func RecordProductOperation(operation string) {
	ProductOperationsCounter.WithLabelValues(operation).Inc()
}

// RecordCustomerOperation increments the counter for customer operations
func RecordCustomerOperation(operation string) {
	CustomerOperationsCounter.WithLabelValues(operation).Inc()
}

// RecordTransactionOperation increments the counter for transaction operations
func RecordTransactionOperation(operation string) {
	TransactionOperationsCounter.WithLabelValues(operation).Inc()
}

// RecordUserOperation increments the counter for user management operations
func RecordUserOperation(operation string) {
	UserOperationsCounter.WithLabelValues(operation).Inc()
}
