package types

import "time"

// MetricsCollector defines methods for recording dispatcher metrics.
//
// Implementations should be non-blocking and handle failures gracefully.
// All methods are called from the goroutine driving the dispatch iteration
// and must tolerate concurrent readers.
type MetricsCollector interface {
	// RecordDispatchIteration records how long one iteration step took to
	// compute, excluding the pacing wait.
	RecordDispatchIteration(duration time.Duration)

	// RecordRebalance records a completed rebalance step across the given
	// number of workers.
	RecordRebalance(workers int)

	// RecordStateTransition records a dispatcher state transition.
	RecordStateTransition(from, to DispatchState)

	// SetUserCount sets the current total user count (gauge).
	SetUserCount(count int)

	// SetWorkerCount sets the current worker count (gauge).
	SetWorkerCount(count int)
}
