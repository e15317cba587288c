// Package metrics holds Prometheus instruments that are used across the
// keyword engine.  All collectors are registered with the global registry,
// so importing this package in main.go is enough to expose them on
// /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	SettingsLoadTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "settings_load_total",
			Help: "Cumulative number of successful settings loads.",
		})

	SettingsLoadErrorsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "settings_load_errors_total",
			Help: "Cumulative number of settings load failures.",
		})

	SessionsAcquiredTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "db_sessions_acquired_total",
			Help: "Cumulative number of database sessions handed out.",
		})

	SessionsReleasedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "db_sessions_released_total",
			Help: "Cumulative number of database sessions returned.",
		})

	RedactionsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "log_redactions_total",
			Help: "Cumulative number of log records that had a secret scrubbed.",
		})
)

func init() {
	prometheus.MustRegister(
		SettingsLoadTotal,
		SettingsLoadErrorsTotal,
		SessionsAcquiredTotal,
		SessionsReleasedTotal,
		RedactionsTotal,
	)
}
