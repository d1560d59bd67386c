package mesh

import (
	"sort"
	"sync"
)

// EdgeSet is an unordered set of edges guarded by a single mutex. The worker
// mutates it one entry at a time; renderers hold the same lock while they
// iterate, so a frame never observes a half-applied command.
type EdgeSet struct {
	mu    sync.Mutex
	edges map[Edge]struct{}
}

func NewEdgeSet() *EdgeSet {
	return &EdgeSet{edges: make(map[Edge]struct{})}
}

// Add inserts e and reports whether it was absent.
func (s *EdgeSet) Add(e Edge) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.edges[e]; ok {
		return false
	}
	s.edges[e] = struct{}{}
	return true
}

// Remove deletes e and reports whether it was present. Removing a non-member
// is a no-op.
func (s *EdgeSet) Remove(e Edge) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.edges[e]; !ok {
		return false
	}
	delete(s.edges, e)
	return true
}

func (s *EdgeSet) Contains(e Edge) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.edges[e]
	return ok
}

func (s *EdgeSet) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.edges)
}

// Each calls fn for every edge while holding the set's lock. fn must not call
// back into the set.
func (s *EdgeSet) Each(fn func(Edge)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for e := range s.edges {
		fn(e)
	}
}

// Snapshot returns a sorted copy of the current members.
func (s *EdgeSet) Snapshot() []Edge {
	s.mu.Lock()
	out := make([]Edge, 0, len(s.edges))
	for e := range s.edges {
		out = append(out, e)
	}
	s.mu.Unlock()

	sort.Slice(out, func(i, j int) bool { return out[i].less(out[j]) })
	return out
}

func (e Edge) less(o Edge) bool {
	if e.AX != o.AX {
		return e.AX < o.AX
	}
	if e.AY != o.AY {
		return e.AY < o.AY
	}
	if e.BX != o.BX {
		return e.BX < o.BX
	}
	return e.BY < o.BY
}
