package types

import "errors"

// Sentinel errors for the dispatch library.
//
// These errors provide type-safe error checking using errors.Is() and
// errors.As(). Components use these sentinels for known error conditions and
// wrap them with context using fmt.Errorf("%s: %w", msg, err).
//
// Configuration errors are always returned synchronously from constructors,
// NewDispatch, AddWorker or RemoveWorker — never mid-iteration. Iteration
// completion is signalled by ErrDispatchComplete, which is expected control
// flow rather than a failure.
var (
	// ErrDispatchComplete is returned by Next once the current assignment
	// has reached the target and no rebalance is pending. A subsequent
	// NewDispatch makes the dispatcher iterable again.
	ErrDispatchComplete = errors.New("dispatch complete")

	// ErrNoWorkers is returned when a dispatcher is constructed without any
	// worker nodes.
	ErrNoWorkers = errors.New("no worker nodes")

	// ErrNoUserClasses is returned when a dispatcher is constructed without
	// any user classes.
	ErrNoUserClasses = errors.New("no user classes")

	// ErrDuplicateWorker is returned when a worker ID is registered twice.
	ErrDuplicateWorker = errors.New("duplicate worker id")

	// ErrUnknownWorker is returned when RemoveWorker references a worker
	// that was never added.
	ErrUnknownWorker = errors.New("unknown worker")

	// ErrDuplicateUserClass is returned when two user classes share a name.
	ErrDuplicateUserClass = errors.New("duplicate user class name")

	// ErrUnknownUserClass is returned when a dispatch request references a
	// user class the dispatcher was not constructed with.
	ErrUnknownUserClass = errors.New("unknown user class")

	// ErrInvalidWeight is returned when a weighted class declares a
	// non-positive weight.
	ErrInvalidWeight = errors.New("invalid user class weight")

	// ErrInvalidFixedCount is returned when a fixed class declares a
	// negative fixed count.
	ErrInvalidFixedCount = errors.New("invalid fixed count")

	// ErrInvalidSpawnRate is returned when a dispatch request carries a
	// non-positive spawn rate.
	ErrInvalidSpawnRate = errors.New("spawn rate must be positive")

	// ErrInvalidTarget is returned when a dispatch request carries a target
	// incompatible with the dispatcher flavor: negative for the weighted
	// dispatcher, anything but UseFixedTotal for the fixed dispatcher, or a
	// target smaller than the frozen portion of the current population.
	ErrInvalidTarget = errors.New("invalid target user count")

	// ErrTooManyTags is returned when the distinct sticky tags among the
	// user classes outnumber the available workers, so at least one tag
	// cannot get a dedicated worker group.
	ErrTooManyTags = errors.New("more sticky tags than workers")

	// ErrNotFixed is returned when the fixed dispatcher is constructed with
	// a class that does not declare a fixed count.
	ErrNotFixed = errors.New("user class has no fixed count")
)
