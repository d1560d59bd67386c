package session

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/san-kum/meshview/internal/mesh"
	"github.com/san-kum/meshview/internal/stream"
)

// uiLoop stands in for a front-end goroutine: dispatched functions queue up
// and run only when drain is called.
type uiLoop struct {
	mu      sync.Mutex
	pending []func()
	redraws int
}

func (u *uiLoop) Dispatch(fn func()) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.pending = append(u.pending, fn)
}

func (u *uiLoop) Redraw() {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.redraws++
}

func (u *uiLoop) drain() {
	u.mu.Lock()
	fns := u.pending
	u.pending = nil
	u.mu.Unlock()
	for _, fn := range fns {
		fn()
	}
}

func runToEnd(t *testing.T, input string, opts Options) (*Session, *uiLoop) {
	t.Helper()
	s, err := Open(strings.NewReader(input), opts)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	ui := &uiLoop{}
	s.Attach(ui)
	s.Run()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.Wait(ctx); err != nil {
		t.Fatalf("Wait: %v", err)
	}
	return s, ui
}

func TestSession_SingleEdge(t *testing.T) {
	s, ui := runToEnd(t, "mesh\n0 100 0 100\n+ 10 10 90 90\n", Options{})

	want := []mesh.Edge{mesh.NewEdge(10, 10, 90, 90)}
	if diff := cmp.Diff(want, s.Edges.Snapshot()); diff != "" {
		t.Errorf("edges mismatch (-want +got):\n%s", diff)
	}

	p, err := s.Projection(600, 6)
	if err != nil {
		t.Fatal(err)
	}
	x0, y0, x1, y1 := p.Segment(want[0])
	if x0 != 66 || y0 != 546 || x1 != 546 || y1 != 66 {
		t.Errorf("segment = (%d,%d)-(%d,%d), want (66,546)-(546,66)", x0, y0, x1, y1)
	}

	if s.Controller.Default() != ActionPause {
		t.Errorf("default cleared before the UI loop ran")
	}
	ui.drain()
	if s.Controller.Default() != ActionNone {
		t.Errorf("Default() = %v, want none after end of stream", s.Controller.Default())
	}
	if ui.redraws == 0 {
		t.Error("expected at least one redraw request")
	}
}

func TestSession_AddThenRemove(t *testing.T) {
	s, _ := runToEnd(t, "mesh\n0 10 0 10\n+ 0 0 10 10\n- 0 0 10 10\n- 0 0 10 10\n", Options{})
	if n := s.Edges.Len(); n != 0 {
		t.Errorf("expected empty edge set, got %d edges", n)
	}
	sum := s.Stats.Summary()
	if sum.Removes != 2 || sum.NoopRemoves != 1 {
		t.Errorf("removes = %d (noop %d), want 2 (noop 1)", sum.Removes, sum.NoopRemoves)
	}
}

func TestSession_TimeAndIgnoredLines(t *testing.T) {
	input := "mesh\n0 10 0 10\nt 1500\n? hello\n+ 1 1 2 2\ntime: 2.5 1.0 (join)\n"
	s, _ := runToEnd(t, input, Options{})
	if s.Elapsed() != 2500*time.Millisecond {
		t.Errorf("Elapsed() = %v, want 2.5s", s.Elapsed())
	}
	if s.Edges.Len() != 1 {
		t.Errorf("expected 1 edge, got %d", s.Edges.Len())
	}
	if got := s.Stats.Summary().Ignored; got != 1 {
		t.Errorf("ignored = %d, want 1", got)
	}
}

func TestSession_Hesitation(t *testing.T) {
	const delay = 50 * time.Millisecond
	start := time.Now()
	s, _ := runToEnd(t, "mesh\n0 10 0 10\n+ 0 0 1 1\n+ 1 1 2 2\n+ 2 2 3 3\n", Options{Hesitation: delay})
	if elapsed := time.Since(start); elapsed < 3*delay {
		t.Errorf("three commands took %v, want at least %v", elapsed, 3*delay)
	}
	if s.Gate.Hesitation() != delay {
		t.Errorf("Hesitation() = %v, want %v", s.Gate.Hesitation(), delay)
	}
}

func TestSession_MalformedLineStopsWorker(t *testing.T) {
	s, err := Open(strings.NewReader("mesh\n0 10 0 10\n+ 1 1 2 2\n+ 1 x 2 2\n+ 3 3 4 4\n"), Options{})
	if err != nil {
		t.Fatal(err)
	}
	s.Run()

	err = s.Wait(context.Background())
	var le *stream.LineError
	if !errors.As(err, &le) {
		t.Fatalf("expected *stream.LineError, got %v", err)
	}
	if le.Line != 4 {
		t.Errorf("error on line %d, want 4", le.Line)
	}
	if !errors.Is(err, stream.ErrMalformedLine) {
		t.Errorf("expected ErrMalformedLine, got %v", err)
	}
	if s.Edges.Len() != 1 {
		t.Errorf("edges applied before the bad line should remain, got %d", s.Edges.Len())
	}
	if s.Err() == nil {
		t.Error("Err() should report the worker failure")
	}
}

func TestSession_PauseBlocksProgress(t *testing.T) {
	var b strings.Builder
	b.WriteString("mesh\n0 1000 0 1000\n")
	for i := 0; i < 200; i++ {
		b.WriteString("+ 0 0 1 1\n")
	}
	s, err := Open(strings.NewReader(b.String()), Options{Hesitation: 2 * time.Millisecond})
	if err != nil {
		t.Fatal(err)
	}
	s.Run()
	time.Sleep(20 * time.Millisecond)
	s.Pause()

	// allow a command already past the gate to land
	time.Sleep(10 * time.Millisecond)
	before := s.Stats.Summary().Commands
	time.Sleep(50 * time.Millisecond)
	if after := s.Stats.Summary().Commands; after != before {
		t.Errorf("worker progressed while paused: %d -> %d", before, after)
	}

	s.Run()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.Wait(ctx); err != nil {
		t.Fatalf("Wait: %v", err)
	}
	if got := s.Stats.Summary().Commands; got != 200 {
		t.Errorf("processed %d commands, want 200", got)
	}
}

func TestSession_QuitWhilePaused(t *testing.T) {
	s, err := Open(strings.NewReader("mesh\n0 10 0 10\n+ 0 0 1 1\n+ 1 1 2 2\n"), Options{})
	if err != nil {
		t.Fatal(err)
	}
	s.Gate.Toggle()
	s.Run()
	s.Quit()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := s.Wait(ctx); err != nil {
		t.Fatalf("Wait after Quit: %v", err)
	}
	if s.Edges.Len() != 0 {
		t.Errorf("no edge should be applied, got %d", s.Edges.Len())
	}
}

func TestOpen_BadHeader(t *testing.T) {
	_, err := Open(strings.NewReader("mesh\n0 0 0 0\n"), Options{})
	if !errors.Is(err, mesh.ErrDegenerateBounds) {
		t.Errorf("expected ErrDegenerateBounds, got %v", err)
	}
	_, err = Open(strings.NewReader(""), Options{})
	if !errors.Is(err, stream.ErrMissingHeader) {
		t.Errorf("expected ErrMissingHeader, got %v", err)
	}
}
