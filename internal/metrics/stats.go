package metrics

import (
	"sync"

	"github.com/san-kum/meshview/internal/mesh"
	"github.com/san-kum/meshview/internal/stream"
)

const DefaultHistory = 600

// Metric is a named scalar accumulated over a run.
type Metric interface {
	Name() string
	Value() float64
	Reset()
}

var _ Metric = (*Stats)(nil)

// Stats counts what the worker did with the stream. The worker observes, the
// renderers read; every method is safe for concurrent use.
type Stats struct {
	mu       sync.Mutex
	bounds   mesh.Bounds
	capacity int
	summary  Summary
	history  []float64
}

// Summary is a point-in-time copy of the counters.
type Summary struct {
	Commands    int
	Inserts     int
	Duplicates  int
	Removes     int
	NoopRemoves int
	Ignored     int
	TimeUpdates int
	OutOfBounds int
	Edges       int
	PeakEdges   int
	LastMillis  int64
}

func NewStats(b mesh.Bounds, capacity int) *Stats {
	if capacity <= 0 {
		capacity = DefaultHistory
	}
	return &Stats{
		bounds:   b,
		capacity: capacity,
		history:  make([]float64, 0, capacity),
	}
}

func (s *Stats) Name() string { return "stream" }

// Observe records one applied command. changed reports whether the edge set
// was modified; edges is its size afterwards.
func (s *Stats) Observe(cmd stream.Command, changed bool, edges int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.summary.Commands++
	switch cmd.Kind {
	case stream.KindTime:
		s.summary.TimeUpdates++
		s.summary.LastMillis = cmd.Millis
		return
	case stream.KindIgnored:
		s.summary.Ignored++
		return
	case stream.KindAdd:
		s.summary.Inserts++
		if !changed {
			s.summary.Duplicates++
		}
		if !s.bounds.Contains(cmd.Edge.A()) || !s.bounds.Contains(cmd.Edge.B()) {
			s.summary.OutOfBounds++
		}
	case stream.KindRemove:
		s.summary.Removes++
		if !changed {
			s.summary.NoopRemoves++
		}
	}

	s.summary.Edges = edges
	if edges > s.summary.PeakEdges {
		s.summary.PeakEdges = edges
	}
	s.history = append(s.history, float64(edges))
	if len(s.history) > s.capacity {
		s.history = s.history[1:]
	}
}

// Value is the current edge count.
func (s *Stats) Value() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return float64(s.summary.Edges)
}

func (s *Stats) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.summary = Summary{}
	s.history = s.history[:0]
}

func (s *Stats) Summary() Summary {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.summary
}

// History returns a copy of the edge count after each mutation, oldest first.
func (s *Stats) History() []float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]float64, len(s.history))
	copy(out, s.history)
	return out
}

// Values flattens the summary for tabular output.
func (sm Summary) Values() map[string]float64 {
	return map[string]float64{
		"commands":      float64(sm.Commands),
		"inserts":       float64(sm.Inserts),
		"duplicates":    float64(sm.Duplicates),
		"removes":       float64(sm.Removes),
		"noop_removes":  float64(sm.NoopRemoves),
		"ignored":       float64(sm.Ignored),
		"time_updates":  float64(sm.TimeUpdates),
		"out_of_bounds": float64(sm.OutOfBounds),
		"edges":         float64(sm.Edges),
		"peak_edges":    float64(sm.PeakEdges),
	}
}
