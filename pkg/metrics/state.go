package metrics

import "github.com/prometheus/client_golang/prometheus"

const stateSubsystem = "state"

type stateMetrics struct {
	healthCheck prometheus.Gauge
}

func newStateMetrics() stateMetrics {
	return stateMetrics{
		healthCheck: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: stateSubsystem,
			Name:      "health",
			Help:      "Current agent state: 1 when ready, 0 otherwise",
		}),
	}
}

func (m stateMetrics) register(reg prometheus.Registerer) {
	reg.MustRegister(m.healthCheck)
}

// SetHealthy updates agent state metric.
func (m stateMetrics) SetHealthy(ok bool) {
	if ok {
		m.healthCheck.Set(1)
	} else {
		m.healthCheck.Set(0)
	}
}
