package dispatch

import (
	"fmt"

	"github.com/Biometria-se/grizzly-sub003/internal/apportion"
	"github.com/Biometria-se/grizzly-sub003/internal/usergen"
	"github.com/Biometria-se/grizzly-sub003/types"
)

// WeightedDispatcher distributes an explicit target user count across user
// classes proportionally to their weights. Classes pinned to a fixed count
// are honored exactly, with the remaining total distributed over the
// weighted classes only.
//
// Placement keeps per-worker totals balanced: no two workers' totals differ
// by more than one after any completed step, and where workers declare a
// host, load is spread across hosts among equally-loaded workers.
type WeightedDispatcher struct {
	*core
}

// Compile-time assertion that WeightedDispatcher implements strategy.
var _ strategy = (*WeightedDispatcher)(nil)

// NewWeighted creates a weighted dispatcher for the given worker nodes and
// user classes.
//
// Worker IDs and class names must be unique; weighted classes need a
// positive weight and fixed classes a non-negative fixed count.
//
// Example:
//
//	d, err := dispatch.NewWeighted(
//	    []dispatch.WorkerNode{{ID: "1"}, {ID: "2"}, {ID: "3"}},
//	    []dispatch.UserClass{
//	        {Name: "User1", Weight: 1},
//	        {Name: "User2", Weight: 1},
//	        {Name: "User3", Weight: 1},
//	    },
//	)
func NewWeighted(workers []types.WorkerNode, classes []types.UserClass, opts ...Option) (*WeightedDispatcher, error) {
	o := newOptions(opts)
	c, err := newCore(workers, classes, o)
	if err != nil {
		return nil, err
	}

	d := &WeightedDispatcher{core: c}
	c.strat = d

	return d, nil
}

// NewDispatch records a new ramp target and makes the dispatcher iterable
// again. The target is distributed across the classes with the largest
// remainder method: fixed classes first, the rest proportionally to weight.
//
// A request restricted with UserClasses freezes the unlisted classes at
// their current counts; the target then covers the frozen population plus
// whatever the eligible classes should converge to.
//
// Configuration errors (non-positive spawn rate, negative target, target
// below the frozen population, unknown class names, fixed-count updates)
// are returned immediately; iteration itself never raises them.
func (d *WeightedDispatcher) NewDispatch(req types.Request) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	eligible, err := d.validateRequest(req)
	if err != nil {
		return err
	}
	if req.FixedCounts != nil {
		return fmt.Errorf("fixed count updates require the fixed dispatcher: %w", types.ErrInvalidTarget)
	}
	if req.TargetUserCount < 0 {
		return fmt.Errorf("target %d: %w", req.TargetUserCount, types.ErrInvalidTarget)
	}

	agg := d.aggregate()
	frozenSum := 0
	for _, uc := range d.classes {
		if !eligible[uc.Name] {
			frozenSum += agg[uc.Name]
		}
	}
	movable := req.TargetUserCount - frozenSum
	if movable < 0 {
		return fmt.Errorf("target %d below frozen population %d: %w", req.TargetUserCount, frozenSum, types.ErrInvalidTarget)
	}

	buckets := make([]apportion.Bucket, 0, len(d.classes))
	for _, uc := range d.classes {
		if !eligible[uc.Name] {
			continue
		}
		buckets = append(buckets, apportion.Bucket{
			Name:       uc.Name,
			Weight:     uc.Weight,
			Fixed:      uc.Fixed,
			FixedCount: uc.FixedCount,
		})
	}

	targets := apportion.WithFixed(movable, buckets)
	entries := make([]usergen.Entry, 0, len(buckets))
	for _, uc := range d.classes {
		if !eligible[uc.Name] {
			targets[uc.Name] = agg[uc.Name]

			continue
		}
		entries = append(entries, usergen.Entry{
			Name:    uc.Name,
			Target:  targets[uc.Name],
			Current: agg[uc.Name],
			Fixed:   uc.Fixed,
		})
	}

	d.install(req.SpawnRate, targets, usergen.New(entries))

	return nil
}

// strategy implementation, called with the core lock held.

func (d *WeightedDispatcher) spawnClass() string {
	return d.gen.Next()
}

func (d *WeightedDispatcher) spawnWorker(_ /* class */ string) string {
	return d.leastLoaded(d.workers)
}

func (d *WeightedDispatcher) killWorker(class string) string {
	return d.mostLoadedWithClass(d.workers, class)
}

// redistribute replays the given per-class counts from scratch, one user at
// a time onto the least-loaded worker, preserving every class's total.
func (d *WeightedDispatcher) redistribute(counts map[string]int) {
	d.zeroAssignment()

	entries := make([]usergen.Entry, 0, len(d.classes))
	for _, uc := range d.classes {
		entries = append(entries, usergen.Entry{
			Name:   uc.Name,
			Target: counts[uc.Name],
			Fixed:  uc.Fixed,
		})
	}

	g := usergen.New(entries)
	for name := g.Next(); name != ""; name = g.Next() {
		d.current[d.leastLoaded(d.workers)][name]++
	}
}

func (d *WeightedDispatcher) workersChanged() error {
	return nil
}
