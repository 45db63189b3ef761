package types

// UseFixedTotal is the reserved target sentinel accepted by the fixed
// dispatcher: the target user count is derived as the sum of every class's
// fixed count instead of being given explicitly.
const UseFixedTotal = -1

// Request describes one ramp toward a new target composition. It replaces
// in-place mutation of shared UserClass descriptors: everything a dispatch
// needs to know travels in the request.
type Request struct {
	// TargetUserCount is the cluster-wide user count to converge on. The
	// weighted dispatcher requires an explicit non-negative value; the fixed
	// dispatcher requires UseFixedTotal.
	TargetUserCount int

	// SpawnRate is the maximum number of user start/stop operations per
	// second during the ramp. Must be positive.
	SpawnRate float64

	// UserClasses optionally restricts which classes are allowed to move
	// during this ramp. Classes not listed keep their current counts frozen.
	// Nil or empty means all classes are eligible.
	UserClasses []string

	// FixedCounts optionally updates per-class fixed counts before the
	// target is derived. Only the fixed dispatcher accepts it.
	FixedCounts map[string]int
}
