// Package metrics defines the custom Prometheus metrics for the calendar
// API. It is the single source of truth for metric names, labels, and
// help strings; promauto registers everything with the default registry
// at package load.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "calendar"

// AppointmentsCreatedTotal counts appointments that were successfully
// persisted.
var AppointmentsCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "appointments_created_total",
		Help:      "Total number of appointments created.",
	},
)

// ConflictsRejectedTotal counts create/update attempts rejected because
// the candidate range overlapped an existing appointment of the same owner.
var ConflictsRejectedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "conflicts_rejected_total",
		Help:      "Total number of appointment writes rejected by the overlap check.",
	},
)

// ValidationFailuresTotal counts create/update attempts rejected by the
// appointment validator.
var ValidationFailuresTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "validation_failures_total",
		Help:      "Total number of appointment writes rejected by field validation.",
	},
)

// CacheLookupsTotal counts appointment-list cache decisions.
// Label:
//   - result: "hit" or "miss"
var CacheLookupsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cache_lookups_total",
		Help:      "Total number of appointment list cache lookups, by result.",
	},
	[]string{"result"},
)

// LoginsTotal counts login attempts.
// Label:
//   - result: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)
