package dispatch

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/Biometria-se/grizzly-sub003/internal/logging"
	"github.com/Biometria-se/grizzly-sub003/internal/metrics"
	"github.com/Biometria-se/grizzly-sub003/internal/usergen"
	"github.com/Biometria-se/grizzly-sub003/types"
)

// strategy is the flavor-specific half of the dispatch state machine. The
// shared core owns pacing, the rebalance flag and the iteration protocol;
// the strategy decides what to spawn next, where to place it, where to kill
// from, and how to redistribute the population after a topology change.
//
// All methods are called with the core mutex held.
type strategy interface {
	// spawnClass returns the next user class to spawn, or "" when every
	// class has reached its target.
	spawnClass() string

	// spawnWorker returns the worker ID a new instance of class lands on.
	spawnWorker(class string) string

	// killWorker returns the worker ID an instance of class is removed from.
	killWorker(class string) string

	// redistribute rebuilds the assignment from scratch, placing exactly the
	// given per-class counts across the current worker set.
	redistribute(counts map[string]int)

	// workersChanged revalidates flavor state after the worker set changed.
	// A non-nil error means the change must be rolled back.
	workersChanged() error
}

// core is the dispatch iteration state machine shared by both dispatcher
// flavors (ramp stepping, pacing, rebalancing, worker add/remove).
//
// Callers drive a dispatcher from a single goroutine; AddWorker and
// RemoveWorker may additionally be called from a master loop while Next is
// sleeping, which the internal mutex makes safe.
type core struct {
	mu      sync.Mutex
	logger  types.Logger
	metrics types.MetricsCollector
	strat   strategy

	workers []types.WorkerNode
	classes []types.UserClass

	current    types.Assignment
	targets    map[string]int
	gen        *usergen.Generator
	limiter    *rate.Limiter
	wait       time.Duration
	spawnRate  float64
	state      types.DispatchState
	configured bool
	rebalance  bool

	// orphaned accumulates the counts held by removed workers until the next
	// rebalance folds them back into the assignment.
	orphaned map[string]int

	durations []time.Duration
}

func newCore(workers []types.WorkerNode, classes []types.UserClass, opts *dispatcherOptions) (*core, error) {
	if len(workers) == 0 {
		return nil, types.ErrNoWorkers
	}
	if len(classes) == 0 {
		return nil, types.ErrNoUserClasses
	}

	seenWorkers := make(map[string]bool, len(workers))
	for _, w := range workers {
		if seenWorkers[w.ID] {
			return nil, fmt.Errorf("worker %q: %w", w.ID, types.ErrDuplicateWorker)
		}
		seenWorkers[w.ID] = true
	}

	seenClasses := make(map[string]bool, len(classes))
	for _, uc := range classes {
		if seenClasses[uc.Name] {
			return nil, fmt.Errorf("user class %q: %w", uc.Name, types.ErrDuplicateUserClass)
		}
		seenClasses[uc.Name] = true
		if uc.Fixed {
			if uc.FixedCount < 0 {
				return nil, fmt.Errorf("user class %q: %w", uc.Name, types.ErrInvalidFixedCount)
			}
		} else if uc.Weight <= 0 {
			return nil, fmt.Errorf("user class %q: %w", uc.Name, types.ErrInvalidWeight)
		}
	}

	c := &core{
		logger:  opts.logger,
		metrics: opts.metrics,
		workers: append([]types.WorkerNode(nil), workers...),
		classes: append([]types.UserClass(nil), classes...),
		targets: make(map[string]int, len(classes)),
		current: make(types.Assignment, len(workers)),
		state:   types.StateIdle,
	}
	if c.logger == nil {
		c.logger = logging.NewDiscard()
	}
	if c.metrics == nil {
		c.metrics = metrics.NewNop()
	}
	for _, w := range c.workers {
		c.current[w.ID] = c.zeroCounts()
	}
	c.metrics.SetWorkerCount(len(c.workers))

	return c, nil
}

// NewDispatch flows through the flavor; these are the shared pieces.

// validateRequest checks the request fields common to both flavors and
// resolves the eligible class set. Classes not eligible keep their current
// counts frozen for this dispatch.
func (c *core) validateRequest(req types.Request) (eligible map[string]bool, err error) {
	if req.SpawnRate <= 0 {
		return nil, fmt.Errorf("spawn rate %v: %w", req.SpawnRate, types.ErrInvalidSpawnRate)
	}

	eligible = make(map[string]bool, len(c.classes))
	if len(req.UserClasses) == 0 {
		for _, uc := range c.classes {
			eligible[uc.Name] = true
		}

		return eligible, nil
	}

	for _, name := range req.UserClasses {
		if c.classByName(name) == nil {
			return nil, fmt.Errorf("user class %q: %w", name, types.ErrUnknownUserClass)
		}
		eligible[name] = true
	}

	return eligible, nil
}

// install arms the state machine for a freshly validated dispatch. The
// burst-1 limiter makes the first step fire immediately while every later
// step waits 1/rate seconds.
func (c *core) install(spawnRate float64, targets map[string]int, gen *usergen.Generator) {
	c.targets = targets
	c.gen = gen
	c.spawnRate = spawnRate
	c.limiter = rate.NewLimiter(rate.Limit(spawnRate), 1)
	c.wait = time.Duration(float64(time.Second) / spawnRate)
	c.durations = c.durations[:0]
	c.configured = true

	if c.ramped() && !c.rebalance {
		c.transition(types.StateIdle)
	} else if !c.rebalance {
		c.transition(types.StateRamping)
	}

	c.logger.Info("new dispatch",
		"target", c.targetTotal(),
		"spawnRate", spawnRate,
		"waitBetweenDispatch", c.wait,
	)
}

// Next computes and returns the next assignment snapshot.
//
// A pending rebalance is served first, with zero wait. Otherwise, once the
// current assignment matches the target, ErrDispatchComplete is returned
// and the dispatcher stays idle until the next NewDispatch. A regular ramp
// step sleeps according to the spawn rate (except for the first step of a
// dispatch) and then moves exactly one user: a kill for the most
// over-represented class if any class exceeds its target, a spawn otherwise.
//
// The pacing sleep honors ctx; cancelling it aborts the wait and returns the
// context error with the dispatcher state untouched.
func (c *core) Next(ctx context.Context) (types.Assignment, error) {
	c.mu.Lock()
	if len(c.workers) == 0 {
		c.mu.Unlock()

		return nil, fmt.Errorf("cannot dispatch: %w", types.ErrNoWorkers)
	}

	if !c.rebalance {
		if c.ramped() {
			c.transition(types.StateIdle)
			c.mu.Unlock()

			return nil, types.ErrDispatchComplete
		}

		// Release the lock during the pacing sleep so AddWorker and
		// RemoveWorker stay callable mid-ramp.
		limiter := c.limiter
		c.mu.Unlock()
		if err := limiter.Wait(ctx); err != nil {
			return nil, err
		}
		c.mu.Lock()
	}
	defer c.mu.Unlock()

	start := time.Now()
	switch {
	case c.rebalance:
		c.runRebalance()
	case c.ramped():
		c.transition(types.StateIdle)

		return nil, types.ErrDispatchComplete
	default:
		c.step()
	}

	elapsed := time.Since(start)
	c.durations = append(c.durations, elapsed)
	c.metrics.RecordDispatchIteration(elapsed)
	c.metrics.SetUserCount(c.current.Total())

	if c.rebalance {
		c.transition(types.StateRebalancing)
	} else if c.ramped() {
		c.transition(types.StateIdle)
	} else {
		c.transition(types.StateRamping)
	}

	return c.current.Clone(), nil
}

// runRebalance redistributes the existing population, including counts
// stranded on removed workers, across the current worker set.
func (c *core) runRebalance() {
	counts := c.aggregate()
	c.strat.redistribute(counts)
	c.orphaned = nil
	c.rebalance = false
	c.metrics.RecordRebalance(len(c.workers))
	c.logger.Debug("rebalanced assignment",
		"workers", len(c.workers),
		"users", c.current.Total(),
	)
}

// step moves exactly one user toward the target.
func (c *core) step() {
	if class := c.overTargetClass(); class != "" {
		worker := c.strat.killWorker(class)
		c.current[worker][class]--
		c.logger.Debug("stopped user", "class", class, "worker", worker)

		return
	}

	class := c.strat.spawnClass()
	if class == "" {
		return
	}
	worker := c.strat.spawnWorker(class)
	c.current[worker][class]++
	c.logger.Debug("started user", "class", class, "worker", worker)
}

// AddWorker registers a new worker node and schedules a rebalance for the
// next iteration. The rebalance step itself has zero wait.
func (c *core) AddWorker(node types.WorkerNode) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.workerIndex(node.ID) >= 0 {
		return fmt.Errorf("worker %q: %w", node.ID, types.ErrDuplicateWorker)
	}

	c.workers = append(c.workers, node)
	c.current[node.ID] = c.zeroCounts()
	if err := c.strat.workersChanged(); err != nil {
		c.workers = c.workers[:len(c.workers)-1]
		delete(c.current, node.ID)

		return err
	}

	c.scheduleRebalance()
	c.metrics.SetWorkerCount(len(c.workers))
	c.logger.Info("worker added", "worker", node.ID, "workers", len(c.workers))

	return nil
}

// RemoveWorker deregisters a worker node. Its running users are folded back
// into the population and redistributed by the rebalance on the next
// iteration. Removing the last remaining worker schedules no rebalance
// (there is nothing to rebalance to); removing an unknown worker is an
// error, as is a removal that would leave a sticky tag without a worker.
func (c *core) RemoveWorker(workerID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	idx := c.workerIndex(workerID)
	if idx < 0 {
		return fmt.Errorf("worker %q: %w", workerID, types.ErrUnknownWorker)
	}

	node := c.workers[idx]
	counts := c.current[workerID]
	c.workers = append(c.workers[:idx], c.workers[idx+1:]...)
	delete(c.current, workerID)

	if len(c.workers) > 0 {
		if err := c.strat.workersChanged(); err != nil {
			c.workers = append(c.workers[:idx], append([]types.WorkerNode{node}, c.workers[idx:]...)...)
			c.current[workerID] = counts

			return err
		}
	}

	if c.orphaned == nil {
		c.orphaned = make(map[string]int, len(counts))
	}
	for name, n := range counts {
		if n > 0 {
			c.orphaned[name] += n
		}
	}

	if len(c.workers) > 0 {
		c.scheduleRebalance()
	}
	c.metrics.SetWorkerCount(len(c.workers))
	c.logger.Info("worker removed", "worker", workerID, "workers", len(c.workers))

	return nil
}

func (c *core) scheduleRebalance() {
	if !c.configured {
		return
	}
	c.rebalance = true
	c.transition(types.StateRebalancing)
}

// State returns the current dispatcher state.
func (c *core) State() types.DispatchState {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.state
}

// CurrentAssignment returns a deep copy of the last computed assignment.
func (c *core) CurrentAssignment() types.Assignment {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.current.Clone()
}

// Workers returns the current worker nodes in declaration order.
func (c *core) Workers() []types.WorkerNode {
	c.mu.Lock()
	defer c.mu.Unlock()

	return append([]types.WorkerNode(nil), c.workers...)
}

// UserClasses returns the dispatcher's user classes in declaration order.
func (c *core) UserClasses() []types.UserClass {
	c.mu.Lock()
	defer c.mu.Unlock()

	return append([]types.UserClass(nil), c.classes...)
}

// DispatchIterationDurations returns how long each iteration of the current
// dispatch took to compute, excluding pacing waits. Diagnostic only.
func (c *core) DispatchIterationDurations() []time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()

	return append([]time.Duration(nil), c.durations...)
}

// WaitBetweenDispatch returns the pacing interval of the current dispatch.
func (c *core) WaitBetweenDispatch() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.wait
}

// internal helpers, lock held

func (c *core) transition(to types.DispatchState) {
	if c.state == to {
		return
	}
	c.metrics.RecordStateTransition(c.state, to)
	c.logger.Debug("state transition", "from", c.state.String(), "to", to.String())
	c.state = to
}

// ramped reports whether every class sits exactly at its target.
func (c *core) ramped() bool {
	agg := c.current.Aggregate()
	for name, n := range c.orphaned {
		agg[name] += n
	}
	for _, uc := range c.classes {
		if agg[uc.Name] != c.targets[uc.Name] {
			return false
		}
	}

	return true
}

// aggregate sums the population per class, including counts stranded on
// removed workers.
func (c *core) aggregate() map[string]int {
	agg := c.current.Aggregate()
	for name, n := range c.orphaned {
		agg[name] += n
	}

	return agg
}

// overTargetClass returns the class with the largest excess over its target,
// ties broken by declaration order, or "" when none is above target.
func (c *core) overTargetClass() string {
	agg := c.current.Aggregate()
	best := ""
	bestExcess := 0
	for _, uc := range c.classes {
		if excess := agg[uc.Name] - c.targets[uc.Name]; excess > bestExcess {
			best = uc.Name
			bestExcess = excess
		}
	}

	return best
}

func (c *core) targetTotal() int {
	total := 0
	for _, n := range c.targets {
		total += n
	}

	return total
}

func (c *core) workerIndex(id string) int {
	for i, w := range c.workers {
		if w.ID == id {
			return i
		}
	}

	return -1
}

func (c *core) classByName(name string) *types.UserClass {
	for i := range c.classes {
		if c.classes[i].Name == name {
			return &c.classes[i]
		}
	}

	return nil
}

func (c *core) zeroCounts() map[string]int {
	counts := make(map[string]int, len(c.classes))
	for _, uc := range c.classes {
		counts[uc.Name] = 0
	}

	return counts
}

// zeroAssignment resets every worker's counts to zero before a rebalance
// replays the population.
func (c *core) zeroAssignment() {
	for _, w := range c.workers {
		c.current[w.ID] = c.zeroCounts()
	}
}

// hostTotals sums the per-host user counts for host-aware placement.
func (c *core) hostTotals() map[string]int {
	totals := make(map[string]int, len(c.workers))
	for _, w := range c.workers {
		totals[w.HostKey()] += c.current.WorkerTotal(w.ID)
	}

	return totals
}

// leastLoaded picks the placement worker among candidates: lowest own total
// first, then lowest host total, then declaration order.
func (c *core) leastLoaded(candidates []types.WorkerNode) string {
	hosts := c.hostTotals()
	best := ""
	bestTotal, bestHost := 0, 0
	for _, w := range candidates {
		total := c.current.WorkerTotal(w.ID)
		host := hosts[w.HostKey()]
		if best == "" || total < bestTotal || (total == bestTotal && host < bestHost) {
			best = w.ID
			bestTotal = total
			bestHost = host
		}
	}

	return best
}

// mostLoadedWithClass picks the kill worker among candidates holding at
// least one instance of class: highest own total first, then highest host
// total, then declaration order.
func (c *core) mostLoadedWithClass(candidates []types.WorkerNode, class string) string {
	hosts := c.hostTotals()
	best := ""
	bestTotal, bestHost := -1, -1
	for _, w := range candidates {
		if c.current[w.ID][class] == 0 {
			continue
		}
		total := c.current.WorkerTotal(w.ID)
		host := hosts[w.HostKey()]
		if total > bestTotal || (total == bestTotal && host > bestHost) {
			best = w.ID
			bestTotal = total
			bestHost = host
		}
	}

	return best
}
