package simulation

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	SimulationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bandit_simulations_total",
			Help: "Count of completed simulations by kind (single, trials).",
		},
		[]string{"kind"},
	)

	ArmPullsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bandit_arm_pulls_total",
			Help: "Count of arm pulls by policy and arm index across single runs.",
		},
		[]string{"policy", "arm"},
	)

	PolicyPayoff = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "bandit_policy_payoff",
			Help:    "Cumulative payoff per policy per run (mean payoff for trial batches).",
			Buckets: prometheus.ExponentialBuckets(1, 4, 10),
		},
		[]string{"policy"},
	)

	TrialCacheLookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bandit_trial_cache_lookups_total",
			Help: "Trial result cache lookups by result (hit, miss).",
		},
		[]string{"result"},
	)
)

func init() {
	prometheus.MustRegister(SimulationsTotal, ArmPullsTotal, PolicyPayoff, TrialCacheLookups)
}
