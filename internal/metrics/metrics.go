package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests.",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDurationSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	RelationshipTransitionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "relationship_transitions_total",
			Help: "Total number of relationship state transitions.",
		},
		[]string{"ledger", "status"},
	)

	InvitesSentTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "invites_sent_total",
			Help: "Total number of invite emails dispatched.",
		},
		[]string{"result"},
	)

	MessagesStoredTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "messages_stored_total",
			Help: "Total number of stored notes and notepad messages.",
		},
		[]string{"channel"},
	)
)

var registerOnce sync.Once

// MustRegister registers all collectors with the default registry. Repeated
// calls are no-ops.
func MustRegister() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			HTTPRequestsTotal,
			HTTPRequestDurationSeconds,
			RelationshipTransitionsTotal,
			InvitesSentTotal,
			MessagesStoredTotal,
		)
	})
}
