// Package metrics exposes ledger counters and gauges in the prometheus format.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dmitrijs2005/lockstake/internal/fixedpoint"
	"github.com/dmitrijs2005/lockstake/internal/staking"
)

const namespace = "lockstake"

const (
	resultOK       = "ok"
	resultRejected = "rejected"
)

// Metrics owns a private registry so several instances can coexist in tests.
type Metrics struct {
	registry *prometheus.Registry

	operations *prometheus.CounterVec
	archived   prometheus.Counter

	totalStaked         prometheus.Gauge
	rewardPerToken      prometheus.Gauge
	totalRewardPromised prometheus.Gauge
	totalRewardProvided prometheus.Gauge
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "operations_total",
			Help:      "Ledger operations by name and result.",
		}, []string{"op", "result"}),
		archived: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "archived_events_total",
			Help:      "Journal events exported to object storage.",
		}),
		totalStaked:         newGauge("total_staked", "Tokens currently staked."),
		rewardPerToken:      newGauge("reward_per_token", "Reward per staked token, scaled by the fixed-point precision."),
		totalRewardPromised: newGauge("total_reward_promised", "Reward accrued to stakers so far."),
		totalRewardProvided: newGauge("total_reward_provided", "Reward deposited by the administrator."),
	}

	m.registry.MustRegister(
		m.operations,
		m.archived,
		m.totalStaked,
		m.rewardPerToken,
		m.totalRewardPromised,
		m.totalRewardProvided,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

func newGauge(name, help string) prometheus.Gauge {
	return prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      name,
		Help:      help,
	})
}

// ObserveOperation counts one operation. A nil error is "ok", anything
// else "rejected".
func (m *Metrics) ObserveOperation(op string, err error) {
	result := resultOK
	if err != nil {
		result = resultRejected
	}
	m.operations.WithLabelValues(op, result).Inc()
}

func (m *Metrics) SetStats(s staking.Stats) {
	m.totalStaked.Set(float64(s.TotalStaked))
	m.rewardPerToken.Set(float64(s.RewardPerTokenStored) / float64(fixedpoint.Precision))
	m.totalRewardPromised.Set(float64(s.TotalRewardPromised))
	m.totalRewardProvided.Set(float64(s.TotalRewardProvided))
}

func (m *Metrics) AddArchived(n int) {
	m.archived.Add(float64(n))
}

// Handler serves the registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
