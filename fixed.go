package dispatch

import (
	"fmt"

	"github.com/Biometria-se/grizzly-sub003/internal/grouping"
	"github.com/Biometria-se/grizzly-sub003/internal/usergen"
	"github.com/Biometria-se/grizzly-sub003/types"
)

// FixedDispatcher ramps every user class to its declared fixed count. The
// target user count is always the sum of the fixed counts, never an explicit
// number.
//
// Classes sharing a sticky tag are confined to a dedicated worker group:
// their instances only ever run on that group's workers, which is what
// session- or connection-affine protocols need. Classes without a tag share
// the reserved orphan group.
type FixedDispatcher struct {
	*core

	groups    *grouping.Groups
	gens      map[string]*usergen.Generator
	tagCursor int
}

// Compile-time assertion that FixedDispatcher implements strategy.
var _ strategy = (*FixedDispatcher)(nil)

// NewFixed creates a fixed-count dispatcher for the given worker nodes and
// user classes. Every class must declare a fixed count, and the distinct
// sticky tags must not outnumber the workers (each tag needs at least one
// dedicated worker).
//
// Example:
//
//	d, err := dispatch.NewFixed(
//	    []dispatch.WorkerNode{{ID: "1"}, {ID: "2"}, {ID: "3"}},
//	    []dispatch.UserClass{
//	        {Name: "User1", Fixed: true, FixedCount: 4, StickyTag: "sessions"},
//	        {Name: "User2", Fixed: true, FixedCount: 2},
//	    },
//	)
func NewFixed(workers []types.WorkerNode, classes []types.UserClass, opts ...Option) (*FixedDispatcher, error) {
	for _, uc := range classes {
		if !uc.Fixed {
			return nil, fmt.Errorf("user class %q: %w", uc.Name, types.ErrNotFixed)
		}
	}

	o := newOptions(opts)
	c, err := newCore(workers, classes, o)
	if err != nil {
		return nil, err
	}

	d := &FixedDispatcher{core: c}
	c.strat = d
	d.groups, err = grouping.Build(c.workers, c.classes)
	if err != nil {
		return nil, err
	}

	return d, nil
}

// NewDispatch records a new ramp toward the sum of the per-class fixed
// counts. The request's target must be UseFixedTotal; FixedCounts may update
// individual classes' requirements before the target is derived, replacing
// in-place mutation of shared descriptors.
//
// One interleaving generator is built per sticky-tag group, so each group
// ramps its own classes round-robin while spawns rotate across groups.
func (d *FixedDispatcher) NewDispatch(req types.Request) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	eligible, err := d.validateRequest(req)
	if err != nil {
		return err
	}
	if req.TargetUserCount != types.UseFixedTotal {
		return fmt.Errorf("fixed dispatcher derives its target from fixed counts, use UseFixedTotal: %w", types.ErrInvalidTarget)
	}
	for name, n := range req.FixedCounts {
		if d.classByName(name) == nil {
			return fmt.Errorf("user class %q: %w", name, types.ErrUnknownUserClass)
		}
		if n < 0 {
			return fmt.Errorf("user class %q count %d: %w", name, n, types.ErrInvalidFixedCount)
		}
	}

	for i := range d.classes {
		if n, ok := req.FixedCounts[d.classes[i].Name]; ok {
			d.classes[i].FixedCount = n
		}
	}

	agg := d.aggregate()
	targets := make(map[string]int, len(d.classes))
	for _, uc := range d.classes {
		if eligible[uc.Name] {
			targets[uc.Name] = uc.FixedCount
		} else {
			targets[uc.Name] = agg[uc.Name]
		}
	}

	d.gens = make(map[string]*usergen.Generator, len(d.groups.Tags()))
	for _, tag := range d.groups.Tags() {
		var entries []usergen.Entry
		for _, uc := range d.classes {
			if uc.Tag() != tag || !eligible[uc.Name] {
				continue
			}
			entries = append(entries, usergen.Entry{
				Name:    uc.Name,
				Target:  targets[uc.Name],
				Current: agg[uc.Name],
				Fixed:   true,
			})
		}
		d.gens[tag] = usergen.New(entries)
	}
	d.tagCursor = 0

	d.install(req.SpawnRate, targets, nil)

	return nil
}

// strategy implementation, called with the core lock held.

// spawnClass rotates across the sticky-tag groups, drawing from the first
// group that still has users to spawn.
func (d *FixedDispatcher) spawnClass() string {
	tags := d.groups.Tags()
	for i := range tags {
		tag := tags[(d.tagCursor+i)%len(tags)]
		g := d.gens[tag]
		if g == nil || g.Remaining() == 0 {
			continue
		}
		d.tagCursor = (d.tagCursor + i + 1) % len(tags)

		return g.Next()
	}

	return ""
}

// spawnWorker places a sticky user round-robin within its tag's group.
func (d *FixedDispatcher) spawnWorker(class string) string {
	return d.groups.ForClass(class).NextWorker().ID
}

// killWorker removes from the most loaded worker of the class's own group.
func (d *FixedDispatcher) killWorker(class string) string {
	return d.mostLoadedWithClass(d.groups.ForClass(class).Workers(), class)
}

// redistribute replays each tag group's population round-robin across the
// group's (possibly recomputed) workers, preserving per-class totals and
// confinement.
func (d *FixedDispatcher) redistribute(counts map[string]int) {
	d.zeroAssignment()

	for _, tag := range d.groups.Tags() {
		var entries []usergen.Entry
		for _, uc := range d.classes {
			if uc.Tag() != tag {
				continue
			}
			entries = append(entries, usergen.Entry{
				Name:   uc.Name,
				Target: counts[uc.Name],
				Fixed:  true,
			})
		}

		group := d.groups.ForTag(tag)
		g := usergen.New(entries)
		for name := g.Next(); name != ""; name = g.Next() {
			d.current[group.NextWorker().ID][name]++
		}
	}
}

// workersChanged recomputes the sticky-tag groups for the new worker set. A
// removal that would leave a tag without a dedicated worker fails and is
// rolled back by the caller.
func (d *FixedDispatcher) workersChanged() error {
	groups, err := grouping.Build(d.workers, d.classes)
	if err != nil {
		return err
	}
	d.groups = groups

	return nil
}
