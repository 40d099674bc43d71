package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics.
type Metrics struct {
	// Transaction metrics
	TransactionsCreated prometheus.Counter
	TransactionsUpdated prometheus.Counter
	TransactionsDeleted prometheus.Counter
	TransactionAmount   prometheus.Histogram
	TransactionErrors   *prometheus.CounterVec
	CriticalUpdates     prometheus.Counter

	// Account metrics
	AccountsCreated   prometheus.Counter
	AccountOperations *prometheus.CounterVec

	// Consistency metrics
	ConsistencyChecks  prometheus.Counter
	DriftedAccounts    prometheus.Gauge
	OutboxPublished    prometheus.Counter
	OutboxPublishFails prometheus.Counter

	// Authentication metrics
	AuthAttempts *prometheus.CounterVec
}

// New creates and registers all Prometheus metrics.
func New() *Metrics {
	return &Metrics{
		TransactionsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "finledger_transactions_created_total",
			Help: "Total number of transactions created",
		}),
		TransactionsUpdated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "finledger_transactions_updated_total",
			Help: "Total number of transactions updated",
		}),
		TransactionsDeleted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "finledger_transactions_deleted_total",
			Help: "Total number of transactions deleted",
		}),
		TransactionAmount: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "finledger_transaction_amount",
			Help:    "Transaction amounts",
			Buckets: []float64{1, 10, 100, 1000, 10000, 100000},
		}),
		TransactionErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "finledger_transaction_errors_total",
				Help: "Total number of transaction errors by type",
			},
			[]string{"error_type"},
		),
		CriticalUpdates: promauto.NewCounter(prometheus.CounterOpts{
			Name: "finledger_critical_updates_total",
			Help: "Total number of updates that re-applied balance effects",
		}),

		AccountsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "finledger_accounts_created_total",
			Help: "Total number of accounts created",
		}),
		AccountOperations: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "finledger_account_operations_total",
				Help: "Total account operations by type",
			},
			[]string{"operation"},
		),

		ConsistencyChecks: promauto.NewCounter(prometheus.CounterOpts{
			Name: "finledger_consistency_checks_total",
			Help: "Total number of ledger consistency checks",
		}),
		DriftedAccounts: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "finledger_drifted_accounts",
			Help: "Accounts whose balance disagrees with the ledger sum at last check",
		}),
		OutboxPublished: promauto.NewCounter(prometheus.CounterOpts{
			Name: "finledger_outbox_published_total",
			Help: "Total number of outbox events published",
		}),
		OutboxPublishFails: promauto.NewCounter(prometheus.CounterOpts{
			Name: "finledger_outbox_publish_failures_total",
			Help: "Total number of outbox publish failures",
		}),

		AuthAttempts: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "finledger_auth_attempts_total",
				Help: "Total authentication attempts",
			},
			[]string{"status"},
		),
	}
}
