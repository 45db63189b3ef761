// Package usergen produces the lazy, cyclic sequence of user-class names a
// dispatcher spawns from, one name at a time, so that over any window equal
// to the total target each class appears exactly its target count of times.
//
// The interleaving uses the smooth weighted round-robin algorithm (the one
// nginx uses for upstream selection) with the per-class target counts as
// weights, which spreads each class evenly through the cycle instead of
// producing long consecutive runs.
//
// Classes with a hard fixed count are drained before weighted classes, and
// classes already at or above their target are never yielded, so rebuilding
// the generator for a new target preserves continuity: over-provisioned
// classes simply stop appearing while the excess is culled separately by the
// dispatcher's ramp-down path.
package usergen

// Entry describes one user class the generator schedules.
type Entry struct {
	Name string

	// Target is the class's desired instance count at the end of the ramp.
	Target int

	// Current is the class's instance count when the ramp begins. The
	// generator yields the class max(0, Target-Current) times.
	Current int

	// Fixed marks the class as fixed-count; fixed classes are yielded
	// before any weighted class.
	Fixed bool
}

// Generator yields user-class names according to the prescribed
// distribution. Not safe for concurrent use.
type Generator struct {
	fixed     *ring
	weighted  *ring
	deficits  map[string]int
	fixedLeft int
	left      int
}

// New builds a generator from the per-class targets. Classes whose current
// count already meets or exceeds their target contribute nothing.
func New(entries []Entry) *Generator {
	g := &Generator{
		fixed:    newRing(),
		weighted: newRing(),
		deficits: make(map[string]int, len(entries)),
	}
	for _, e := range entries {
		if e.Target <= 0 {
			continue
		}

		if e.Fixed {
			g.fixed.add(e.Name, e.Target)
		} else {
			g.weighted.add(e.Name, e.Target)
		}

		deficit := e.Target - e.Current
		if deficit <= 0 {
			continue
		}
		g.deficits[e.Name] = deficit
		g.left += deficit
		if e.Fixed {
			g.fixedLeft += deficit
		}
	}

	return g
}

// Remaining returns the number of spawns the generator will still yield.
func (g *Generator) Remaining() int {
	return g.left
}

// Next returns the next user-class name to spawn, or "" once every class has
// reached its target.
func (g *Generator) Next() string {
	if g.left == 0 {
		return ""
	}

	r := g.weighted
	if g.fixedLeft > 0 {
		r = g.fixed
	}

	// Skip classes that already reached their target; the ring always holds
	// at least one class with a positive deficit while left > 0.
	var name string
	for {
		name = r.next()
		if name == "" {
			return ""
		}
		if g.deficits[name] > 0 {
			break
		}
	}

	g.deficits[name]--
	g.left--
	if r == g.fixed {
		g.fixedLeft--
	}

	return name
}

// ring implements smooth weighted round-robin over integer weights. Over any
// cycle of totalWeight picks, each entry is selected exactly weight times.
type ring struct {
	entries []*ringEntry
	total   int
}

type ringEntry struct {
	name    string
	weight  int
	current int
}

func newRing() *ring {
	return &ring{}
}

func (r *ring) add(name string, weight int) {
	r.entries = append(r.entries, &ringEntry{name: name, weight: weight})
	r.total += weight
}

func (r *ring) next() string {
	if len(r.entries) == 0 {
		return ""
	}

	// Raise every entry by its weight, pick the highest (first wins ties so
	// declaration order is preserved), then subtract the total from the
	// winner so it does not monopolise the next rounds.
	for _, e := range r.entries {
		e.current += e.weight
	}
	best := r.entries[0]
	for _, e := range r.entries[1:] {
		if e.current > best.current {
			best = e
		}
	}
	best.current -= r.total

	return best.name
}
