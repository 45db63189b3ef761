package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/Biometria-se/grizzly-sub003/types"
)

// PrometheusCollector implements types.MetricsCollector backed by Prometheus.
type PrometheusCollector struct {
	iterationDuration prometheus.Histogram
	rebalances        prometheus.Counter
	stateTransitions  *prometheus.CounterVec
	userCount         prometheus.Gauge
	workerCount       prometheus.Gauge
}

// Compile-time assertion that PrometheusCollector implements MetricsCollector.
var _ types.MetricsCollector = (*PrometheusCollector)(nil)

// NewPrometheus creates a new Prometheus-backed metrics collector and
// registers its collectors.
//
// Parameters:
//   - reg: Prometheus registerer (uses prometheus.DefaultRegisterer if nil)
//   - namespace: metrics namespace (defaults to "dispatch" if empty)
func NewPrometheus(reg prometheus.Registerer, namespace string) *PrometheusCollector {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	if namespace == "" {
		namespace = "dispatch"
	}

	c := &PrometheusCollector{
		iterationDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "iteration_duration_seconds",
			Help:      "Time taken to compute one dispatch iteration, excluding the pacing wait.",
			Buckets:   prometheus.ExponentialBuckets(1e-6, 4, 12),
		}),
		rebalances: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rebalances_total",
			Help:      "Number of rebalance steps triggered by worker topology changes.",
		}),
		stateTransitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "state_transitions_total",
			Help:      "Dispatcher state transitions.",
		}, []string{"from", "to"}),
		userCount: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "user_count",
			Help:      "Current total user count across all workers.",
		}),
		workerCount: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "worker_count",
			Help:      "Current worker node count.",
		}),
	}

	reg.MustRegister(c.iterationDuration, c.rebalances, c.stateTransitions, c.userCount, c.workerCount)

	return c
}

// RecordDispatchIteration records one iteration computation duration.
func (c *PrometheusCollector) RecordDispatchIteration(duration time.Duration) {
	c.iterationDuration.Observe(duration.Seconds())
}

// RecordRebalance counts a rebalance step.
func (c *PrometheusCollector) RecordRebalance(_ /* workers */ int) {
	c.rebalances.Inc()
}

// RecordStateTransition counts a dispatcher state transition.
func (c *PrometheusCollector) RecordStateTransition(from, to types.DispatchState) {
	c.stateTransitions.WithLabelValues(from.String(), to.String()).Inc()
}

// SetUserCount sets the user count gauge.
func (c *PrometheusCollector) SetUserCount(count int) {
	c.userCount.Set(float64(count))
}

// SetWorkerCount sets the worker count gauge.
func (c *PrometheusCollector) SetWorkerCount(count int) {
	c.workerCount.Set(float64(count))
}
