package metrics

import (
	"sync"
	"time"

	"github.com/HdrHistogram/hdrhistogram-go"

	"github.com/Biometria-se/grizzly-sub003/types"
)

// HistogramCollector records dispatch iteration durations into an HDR
// histogram, giving cheap percentile diagnostics for long ramps where keeping
// every raw duration would be wasteful.
//
// All other metrics are tracked as plain counters/gauges.
type HistogramCollector struct {
	mu          sync.Mutex
	iterations  *hdrhistogram.Histogram
	rebalances  int64
	userCount   int
	workerCount int
}

// Compile-time assertion that HistogramCollector implements MetricsCollector.
var _ types.MetricsCollector = (*HistogramCollector)(nil)

// NewHistogram creates a histogram collector tracking iteration durations
// from 1µs to 1 minute at 3 significant figures.
func NewHistogram() *HistogramCollector {
	return &HistogramCollector{
		iterations: hdrhistogram.New(1, time.Minute.Microseconds(), 3),
	}
}

// RecordDispatchIteration records one iteration computation duration.
func (c *HistogramCollector) RecordDispatchIteration(duration time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	// Out-of-range values are clamped by the histogram; ignore the error.
	_ = c.iterations.RecordValue(duration.Microseconds())
}

// RecordRebalance counts a rebalance step.
func (c *HistogramCollector) RecordRebalance(_ /* workers */ int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.rebalances++
}

// RecordStateTransition is tracked only through the gauges.
func (c *HistogramCollector) RecordStateTransition(_ /* from */, _ /* to */ types.DispatchState) {
	// No-op
}

// SetUserCount sets the user count gauge.
func (c *HistogramCollector) SetUserCount(count int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.userCount = count
}

// SetWorkerCount sets the worker count gauge.
func (c *HistogramCollector) SetWorkerCount(count int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.workerCount = count
}

// Iterations returns the number of recorded iterations.
func (c *HistogramCollector) Iterations() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.iterations.TotalCount()
}

// Rebalances returns the number of recorded rebalance steps.
func (c *HistogramCollector) Rebalances() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.rebalances
}

// IterationPercentile returns the iteration duration at the given quantile
// (e.g. 50.0, 99.0).
func (c *HistogramCollector) IterationPercentile(q float64) time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()

	return time.Duration(c.iterations.ValueAtQuantile(q)) * time.Microsecond
}

// IterationMax returns the largest recorded iteration duration.
func (c *HistogramCollector) IterationMax() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()

	return time.Duration(c.iterations.Max()) * time.Microsecond
}
