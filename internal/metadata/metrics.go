package metadata

import "github.com/prometheus/client_golang/prometheus"

// Metrics counts provider calls by operation and outcome.
type Metrics struct {
	Requests *prometheus.CounterVec
	Cache    *prometheus.CounterVec
}

// NewMetrics creates provider metrics and registers them with reg when reg is non-nil.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "cinelist",
			Subsystem: "metadata",
			Name:      "requests_total",
			Help:      "Remote metadata requests by operation and result.",
		}, []string{"op", "result"}),
		Cache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "cinelist",
			Subsystem: "metadata",
			Name:      "cache_lookups_total",
			Help:      "Metadata cache lookups by operation and result.",
		}, []string{"op", "result"}),
	}
	if reg != nil {
		reg.MustRegister(m.Requests, m.Cache)
	}
	return m
}
