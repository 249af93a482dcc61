package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	// Latency of the simulation HTTP handlers
	SimulationLatency = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "bandit_simulation_latency_seconds",
		Help:    "Latency of simulation handlers",
		Buckets: prometheus.DefBuckets,
	}, []string{"endpoint"})

	// Total number of simulation requests by endpoint and status code
	SimulationRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "bandit_simulation_requests_total",
		Help: "Total number of simulation requests",
	}, []string{"endpoint", "code"})
)

func Init() {
	prometheus.MustRegister(
		SimulationLatency,
		SimulationRequests,
	)
}
