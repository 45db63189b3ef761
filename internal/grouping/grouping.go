// Package grouping partitions worker nodes into disjoint sticky-tag groups
// for the fixed dispatcher: one group per distinct tag declared by the user
// classes, with untagged classes pooled under the reserved orphan tag.
//
// Workers are dealt to groups round-robin in tag declaration order, so group
// sizes differ by at most one and membership is fully deterministic. Groups
// are recomputed whenever the worker set changes; that recomputation is part
// of the dispatcher's rebalance step.
package grouping

import (
	"fmt"

	"github.com/Biometria-se/grizzly-sub003/types"
)

// Group is one sticky-tag worker group with its own endlessly cycling
// iterator used to place newly spawned sticky users round-robin.
type Group struct {
	Tag     string
	workers []types.WorkerNode
	cursor  int
}

// Workers returns the group members in assignment order.
func (g *Group) Workers() []types.WorkerNode {
	return g.workers
}

// Contains reports whether the worker belongs to the group.
func (g *Group) Contains(workerID string) bool {
	for _, w := range g.workers {
		if w.ID == workerID {
			return true
		}
	}

	return false
}

// NextWorker returns the next group member, cycling endlessly.
func (g *Group) NextWorker() types.WorkerNode {
	w := g.workers[g.cursor%len(g.workers)]
	g.cursor++

	return w
}

// Groups is the complete tag → worker-group partition.
type Groups struct {
	tags    []string
	byTag   map[string]*Group
	byClass map[string]*Group
}

// Build partitions the workers across the sticky tags present in the user
// classes. Every distinct tag gets at least one dedicated worker; it is an
// error for the distinct tags to outnumber the workers.
func Build(workers []types.WorkerNode, classes []types.UserClass) (*Groups, error) {
	gs := &Groups{
		byTag:   make(map[string]*Group),
		byClass: make(map[string]*Group, len(classes)),
	}
	for _, uc := range classes {
		tag := uc.Tag()
		if _, ok := gs.byTag[tag]; !ok {
			gs.byTag[tag] = &Group{Tag: tag}
			gs.tags = append(gs.tags, tag)
		}
	}

	if len(gs.tags) > len(workers) {
		return nil, fmt.Errorf("%d sticky tags, %d workers: %w", len(gs.tags), len(workers), types.ErrTooManyTags)
	}

	for i, w := range workers {
		g := gs.byTag[gs.tags[i%len(gs.tags)]]
		g.workers = append(g.workers, w)
	}

	for _, uc := range classes {
		gs.byClass[uc.Name] = gs.byTag[uc.Tag()]
	}

	return gs, nil
}

// Tags returns the distinct tags in declaration order.
func (gs *Groups) Tags() []string {
	return gs.tags
}

// ForTag returns the group serving a tag, or nil.
func (gs *Groups) ForTag(tag string) *Group {
	return gs.byTag[tag]
}

// ForClass returns the group confining a user class, or nil.
func (gs *Groups) ForClass(name string) *Group {
	return gs.byClass[name]
}
