// Package metrics holds the prometheus collectors of the service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

type Metrics struct {
	AlertsCreated      *prometheus.CounterVec
	AlertsSkipped      *prometheus.CounterVec
	AlertPersistFailed *prometheus.CounterVec
	Transactions       *prometheus.CounterVec
	NotifyFailed       *prometheus.CounterVec
	CheckDuration      prometheus.Histogram
}

// New registers the collectors on reg. Pass prometheus.DefaultRegisterer
// in production and a fresh registry in tests.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		AlertsCreated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "inventory",
			Name:      "alerts_created_total",
			Help:      "Alerts persisted by the rule engine.",
		}, []string{"type", "severity"}),
		AlertsSkipped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "inventory",
			Name:      "alerts_dedup_skipped_total",
			Help:      "Candidate alerts skipped because an unacknowledged one is pending.",
		}, []string{"type"}),
		AlertPersistFailed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "inventory",
			Name:      "alerts_persist_failed_total",
			Help:      "Alerts the store failed to write.",
		}, []string{"type"}),
		Transactions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "inventory",
			Name:      "transactions_recorded_total",
			Help:      "Stock movements recorded.",
		}, []string{"type"}),
		NotifyFailed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "inventory",
			Name:      "notifications_failed_total",
			Help:      "Notifications a channel failed to deliver.",
		}, []string{"channel"}),
		CheckDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "inventory",
			Name:      "alert_check_duration_seconds",
			Help:      "Duration of a full alert check pass.",
			Buckets:   prometheus.DefBuckets,
		}),
	}
	reg.MustRegister(m.AlertsCreated, m.AlertsSkipped, m.AlertPersistFailed, m.Transactions, m.NotifyFailed, m.CheckDuration)
	return m
}
