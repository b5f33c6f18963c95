package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "consumer_router"

// Prometheus holds the counters exported on /metrics. Each instance owns
// its registry so collectors never clash in tests.
type Prometheus struct {
	requests   prometheus.Counter
	decisions  *prometheus.CounterVec
	unresolved prometheus.Counter

	registry *prometheus.Registry
}

func NewPrometheus() *Prometheus {
	registry := prometheus.NewRegistry()

	p := &Prometheus{
		requests: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "requests_total",
			Help:      "Total number of requests evaluated by the routing rule",
		}),
		decisions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "decisions_total",
				Help:      "Total number of routing decisions by service id",
			},
			[]string{"service_id"},
		),
		unresolved: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "unresolved_total",
			Help:      "Total number of requests left without a routing decision",
		}),
		registry: registry,
	}

	registry.MustRegister(p.requests, p.decisions, p.unresolved)

	return p
}

func (p *Prometheus) Registry() *prometheus.Registry {
	return p.registry
}
