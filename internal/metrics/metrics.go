// Package metrics defines the Prometheus collectors exported by the server.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "equalsplit"

// Settlement outcomes.
const (
	OutcomeOK              = "ok"
	OutcomeNoParticipants  = "no_participants"
	OutcomeInvalidArgument = "invalid_argument"
)

// Metrics holds every collector. Create one per registry.
type Metrics struct {
	registry *prometheus.Registry

	Settlements  *prometheus.CounterVec
	Transfers    prometheus.Histogram
	Participants prometheus.Histogram
	RPCDuration  *prometheus.HistogramVec
	RateLimited  prometheus.Counter
	Rosters      prometheus.GaugeFunc
}

// New registers the collectors on a fresh registry. rosterCount, when non-nil,
// backs the active rosters gauge.
func New(rosterCount func() int) *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		Settlements: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "settlements_total",
			Help:      "Settlement calculations by outcome.",
		}, []string{"outcome"}),
		Transfers: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "settlement_transfers",
			Help:      "Number of transfers produced per settlement.",
			Buckets:   prometheus.LinearBuckets(0, 2, 10),
		}),
		Participants: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "settlement_participants",
			Help:      "Number of participants per settlement.",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 8),
		}),
		RPCDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "rpc_duration_seconds",
			Help:      "RPC latency by procedure and status code.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"procedure", "code"}),
		RateLimited: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rate_limited_requests_total",
			Help:      "Requests rejected by the per-client rate limiter.",
		}),
	}

	reg.MustRegister(
		m.Settlements,
		m.Transfers,
		m.Participants,
		m.RPCDuration,
		m.RateLimited,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	if rosterCount != nil {
		m.Rosters = prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active_rosters",
			Help:      "Rosters currently held in memory.",
		}, func() float64 { return float64(rosterCount()) })
		reg.MustRegister(m.Rosters)
	}

	return m
}

// ObserveSettlement records one settlement attempt.
func (m *Metrics) ObserveSettlement(outcome string, participants, transfers int) {
	if m == nil {
		return
	}
	m.Settlements.WithLabelValues(outcome).Inc()
	if outcome != OutcomeOK {
		return
	}
	m.Participants.Observe(float64(participants))
	m.Transfers.Observe(float64(transfers))
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry exposes the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
