package dispatch

import "github.com/Biometria-se/grizzly-sub003/types"

// Re-export types from the types subpackage.
//
// This file provides a stable public API for the library's core types and
// interfaces. It uses type aliases to re-export definitions from the `types`
// subpackage, which contains the actual implementations.
//
// This pattern solves the "import cycle" problem by allowing internal
// packages to depend on `types` without depending on the root package, while
// still providing a convenient `dispatch.Request`, `dispatch.Logger`, etc.
// for users.
type (
	WorkerNode    = types.WorkerNode
	UserClass     = types.UserClass
	Assignment    = types.Assignment
	Request       = types.Request
	DispatchState = types.DispatchState
)

// Re-export interfaces from the types subpackage for convenience.
type (
	Logger           = types.Logger
	MetricsCollector = types.MetricsCollector
)

// Re-export constants from the types subpackage.
const (
	UseFixedTotal = types.UseFixedTotal
	OrphanTag     = types.OrphanTag

	StateIdle        = types.StateIdle
	StateRamping     = types.StateRamping
	StateRebalancing = types.StateRebalancing
)
