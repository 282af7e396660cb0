// Package metrics defines and registers the custom Prometheus metrics for
// the bootcamp API. It is the single source of truth for metric names,
// labels, and help strings.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "devcamper"

// RegistrationsTotal counts successful account creations.
var RegistrationsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of accounts registered.",
	},
)

// LoginsTotal counts login attempts by outcome.
// Label:
//   - result: "success", "wrong_password", "no_such_user", "rate_limited"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// PasswordResetsTotal counts password reset lifecycle events.
// Label:
//   - phase: "requested", "delivery_failed", "redeemed", "rejected"
var PasswordResetsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "password_resets_total",
		Help:      "Total number of password reset lifecycle events, by phase.",
	},
	[]string{"phase"},
)

// BootcampWritesTotal counts bootcamp mutations.
// Label:
//   - op: "create", "update", "delete"
var BootcampWritesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "bootcamp_writes_total",
		Help:      "Total number of bootcamp write operations, by operation.",
	},
	[]string{"op"},
)
