package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	ResultSent          = "sent"
	ResultConfigError   = "config_error"
	ResultForwardError  = "forward_error"
	ResultRejected      = "rejected"
	ResultRateLimited   = "rate_limited"
	ResultPreflight     = "preflight"
	namespace           = "capi_forwarder"
	subsystemConversion = "conversion"
)

// Metrics holds the Prometheus collectors of the forwarder.
type Metrics struct {
	EventsTotal     *prometheus.CounterVec
	ForwardDuration prometheus.Histogram
}

// New registers the collectors on reg. Tests pass a fresh registry so
// repeated construction does not collide.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		EventsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystemConversion,
			Name:      "events_total",
			Help:      "Total number of inbound conversion requests by result.",
		}, []string{"result"}), // result: sent, config_error, forward_error, rejected, rate_limited, preflight
		ForwardDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystemConversion,
			Name:      "forward_duration_seconds",
			Help:      "Time spent building and sending one event to the Conversions API.",
			Buckets:   prometheus.DefBuckets,
		}),
	}
}

func (m *Metrics) Observe(result string) {
	m.EventsTotal.WithLabelValues(result).Inc()
}
