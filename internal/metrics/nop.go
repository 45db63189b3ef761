// Package metrics provides MetricsCollector implementations for the dispatch
// library: a no-op default, a Prometheus-backed collector, and an
// HDR-histogram collector for iteration-latency diagnostics.
package metrics

import (
	"time"

	"github.com/Biometria-se/grizzly-sub003/types"
)

// NopMetrics implements a no-op metrics collector.
//
// All metrics are discarded. Useful for testing or when external metrics
// collection is used.
type NopMetrics struct{}

// Compile-time assertion that NopMetrics implements MetricsCollector.
var _ types.MetricsCollector = (*NopMetrics)(nil)

// NewNop creates a new no-op metrics collector.
func NewNop() *NopMetrics {
	return &NopMetrics{}
}

// RecordDispatchIteration discards the iteration duration.
func (n *NopMetrics) RecordDispatchIteration(_ /* duration */ time.Duration) {
	// No-op
}

// RecordRebalance discards the rebalance event.
func (n *NopMetrics) RecordRebalance(_ /* workers */ int) {
	// No-op
}

// RecordStateTransition discards the state transition.
func (n *NopMetrics) RecordStateTransition(_ /* from */, _ /* to */ types.DispatchState) {
	// No-op
}

// SetUserCount discards the user count gauge.
func (n *NopMetrics) SetUserCount(_ /* count */ int) {
	// No-op
}

// SetWorkerCount discards the worker count gauge.
func (n *NopMetrics) SetWorkerCount(_ /* count */ int) {
	// No-op
}
