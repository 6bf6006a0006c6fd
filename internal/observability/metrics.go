// Package observability provides application metrics.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RegistrationsTotal counts new account registrations.
	RegistrationsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "scribe_registrations_total",
		Help: "Total number of account registrations",
	})

	// ActivationsTotal counts successful account activations.
	ActivationsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "scribe_activations_total",
		Help: "Total number of successful account activations",
	})

	// TokenVerificationFailures counts rejected tokens by purpose.
	// Expired and tampered tokens are indistinguishable on purpose.
	TokenVerificationFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "scribe_token_verification_failures_total",
		Help: "Total number of rejected tokens by purpose",
	}, []string{"purpose"})

	// CommentsTotal counts comment writes by action (create, edit,
	// disable, enable).
	CommentsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "scribe_comments_total",
		Help: "Total number of comment writes by action",
	}, []string{"action"})
)
