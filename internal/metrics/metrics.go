package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// EventsReceived counts webhook events accepted and appended to the log.
	EventsReceived = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hookbridge_events_received_total",
			Help: "The total number of webhook events appended to the event log",
		},
		[]string{"event_type"},
	)

	// RequestsRejected counts webhook requests that did not reach the log.
	RequestsRejected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hookbridge_requests_rejected_total",
			Help: "The total number of webhook requests rejected before or during append",
		},
		[]string{"reason"},
	)

	// AppendDuration tracks how long event log appends take.
	AppendDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "hookbridge_append_duration_seconds",
			Help:    "The duration of event log appends in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)
)
