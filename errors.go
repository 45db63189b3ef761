package dispatch

import "github.com/Biometria-se/grizzly-sub003/types"

// Sentinel errors returned by the dispatchers, re-exported from the types
// subpackage so callers can check them with errors.Is without an extra
// import.
var (
	// ErrDispatchComplete is returned by Next once the target is reached.
	ErrDispatchComplete = types.ErrDispatchComplete

	// ErrNoWorkers is returned when a dispatcher is constructed without workers.
	ErrNoWorkers = types.ErrNoWorkers

	// ErrNoUserClasses is returned when a dispatcher is constructed without user classes.
	ErrNoUserClasses = types.ErrNoUserClasses

	// ErrDuplicateWorker is returned when a worker ID is registered twice.
	ErrDuplicateWorker = types.ErrDuplicateWorker

	// ErrUnknownWorker is returned when RemoveWorker references an unknown worker.
	ErrUnknownWorker = types.ErrUnknownWorker

	// ErrDuplicateUserClass is returned when two user classes share a name.
	ErrDuplicateUserClass = types.ErrDuplicateUserClass

	// ErrUnknownUserClass is returned when a request references an unknown class.
	ErrUnknownUserClass = types.ErrUnknownUserClass

	// ErrInvalidWeight is returned for a non-positive class weight.
	ErrInvalidWeight = types.ErrInvalidWeight

	// ErrInvalidFixedCount is returned for a negative fixed count.
	ErrInvalidFixedCount = types.ErrInvalidFixedCount

	// ErrInvalidSpawnRate is returned for a non-positive spawn rate.
	ErrInvalidSpawnRate = types.ErrInvalidSpawnRate

	// ErrInvalidTarget is returned for a target incompatible with the dispatcher flavor.
	ErrInvalidTarget = types.ErrInvalidTarget

	// ErrTooManyTags is returned when distinct sticky tags outnumber workers.
	ErrTooManyTags = types.ErrTooManyTags

	// ErrNotFixed is returned when the fixed dispatcher gets a class without a fixed count.
	ErrNotFixed = types.ErrNotFixed
)
