package types

// DispatchState represents the dispatcher iteration state.
//
// States follow a defined progression during a ramp:
//
//	StateIdle → StateRamping → StateIdle
//
// A worker topology change interposes a single rebalance step:
//
//	StateRamping/StateIdle → StateRebalancing → StateRamping/StateIdle
type DispatchState int

const (
	// StateIdle means no dispatch is in progress; the current assignment
	// equals the target.
	StateIdle DispatchState = iota

	// StateRamping means the dispatcher is producing incremental steps
	// toward the target.
	StateRamping

	// StateRebalancing means a worker was added or removed and the next
	// iteration will redistribute the existing population with zero wait.
	StateRebalancing
)

// String returns the string representation of the state.
func (s DispatchState) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StateRamping:
		return "Ramping"
	case StateRebalancing:
		return "Rebalancing"
	default:
		return "Unknown"
	}
}
