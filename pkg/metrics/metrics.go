package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HttpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ponteonce_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	HttpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ponteonce_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	DatabaseOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ponteonce_database_operations_total",
			Help: "Total number of database operations",
		},
		[]string{"operation", "entity"},
	)

	PurchasesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ponteonce_purchases_total",
			Help: "Total number of checkout attempts by outcome",
		},
		[]string{"status"},
	)

	EmailsDispatchedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ponteonce_emails_dispatched_total",
			Help: "Total number of emails handed to the notification gateway by outcome",
		},
		[]string{"kind", "status"},
	)

	MailQueueSize = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "ponteonce_mail_queue_size",
			Help: "Number of emails waiting in the dispatch queue",
		},
	)

	MailActiveWorkers = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "ponteonce_mail_active_workers",
			Help: "Number of running mail dispatch workers",
		},
	)
)

func RecordHttpRequest(method, endpoint, status string, duration time.Duration) {
	HttpRequestsTotal.WithLabelValues(method, endpoint, status).Inc()
	HttpRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

func RecordDatabaseOperation(operation, entity string) {
	DatabaseOperationsTotal.WithLabelValues(operation, entity).Inc()
}

func RecordPurchase(status string) {
	PurchasesTotal.WithLabelValues(status).Inc()
}

func RecordEmailDispatch(kind, status string) {
	EmailsDispatchedTotal.WithLabelValues(kind, status).Inc()
}

func UpdateMailQueueStats(queueSize, activeWorkers int) {
	MailQueueSize.Set(float64(queueSize))
	MailActiveWorkers.Set(float64(activeWorkers))
}
