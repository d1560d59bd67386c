package gui

import (
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/san-kum/meshview/internal/config"
	"github.com/san-kum/meshview/internal/mesh"
	"github.com/san-kum/meshview/internal/session"
)

func TestLayout_Buttons(t *testing.T) {
	l := NewLayout(612, 612)

	w, h := l.WindowSize()
	if w != 612 || h != 612+barHeight {
		t.Errorf("window = %dx%d", w, h)
	}

	var got []session.Action
	for _, b := range l.Buttons {
		got = append(got, b.Action)
		if b.Y < 612 {
			t.Errorf("%s button overlaps canvas at y=%d", b.Action, b.Y)
		}
	}
	want := []session.Action{session.ActionRun, session.ActionPause, session.ActionQuit}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("buttons (-want +got):\n%s", diff)
	}
}

func TestLayout_ButtonAt(t *testing.T) {
	l := NewLayout(400, 400)

	for _, b := range l.Buttons {
		cx, cy := b.X+b.W/2, b.Y+b.H/2
		if got := l.ButtonAt(cx, cy); got != b.Action {
			t.Errorf("ButtonAt(%d,%d) = %v, want %v", cx, cy, got, b.Action)
		}
	}

	tests := []struct {
		name string
		x, y int
	}{
		{"canvas", 200, 200},
		{"gap", l.Buttons[0].X + l.Buttons[0].W + 1, l.Buttons[0].Y + 1},
		{"left edge", 0, l.Buttons[0].Y},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := l.ButtonAt(tt.x, tt.y); got != session.ActionNone {
				t.Errorf("ButtonAt = %v, want none", got)
			}
		})
	}
}

func TestQueue_DrainsInOrder(t *testing.T) {
	q := &queue{}
	var got []int
	for i := 0; i < 3; i++ {
		i := i
		q.Dispatch(func() { got = append(got, i) })
	}
	q.Redraw()

	if n := q.drain(); n != 3 {
		t.Errorf("drained %d, want 3", n)
	}
	if diff := cmp.Diff([]int{0, 1, 2}, got); diff != "" {
		t.Errorf("order (-want +got):\n%s", diff)
	}
	if n := q.drain(); n != 0 {
		t.Errorf("second drain ran %d", n)
	}
}

func TestApply(t *testing.T) {
	sess, err := session.Open(strings.NewReader("m\n0 10 0 10\n+ 1 1 2 2\n"), session.Options{Hesitation: time.Hour})
	if err != nil {
		t.Fatal(err)
	}
	q := &queue{}
	sess.Attach(q)

	if !apply(sess, session.ActionRun) {
		t.Fatal("run closed the window")
	}
	if got := sess.Controller.State(); got != session.Running {
		t.Errorf("state = %v, want running", got)
	}
	if !apply(sess, session.ActionPause) {
		t.Fatal("pause closed the window")
	}
	if got := sess.Controller.Default(); got != session.ActionRun {
		t.Errorf("default = %v, want Run", got)
	}
	if apply(sess, session.ActionQuit) {
		t.Fatal("quit kept the window open")
	}

	select {
	case <-sess.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("worker did not stop after quit")
	}
	if err := sess.Err(); err != nil {
		t.Errorf("err = %v", err)
	}
}

func TestNewApp_CanvasFollowsPixels(t *testing.T) {
	sess, err := session.Open(strings.NewReader("m\n0 10 0 10\n"), session.Options{})
	if err != nil {
		t.Fatal(err)
	}
	cfg := config.DefaultConfig()
	cfg.Pixels = 300

	a, err := NewApp(sess, cfg)
	if err != nil {
		t.Fatal(err)
	}
	w, h := a.Size()
	side := 300 + 2*cfg.Border()
	if w != side || h != side+barHeight {
		t.Errorf("window = %dx%d, want %dx%d", w, h, side, side+barHeight)
	}
	if x, y := a.proj.Point(mesh.Point{X: 10, Y: 10}); x != 300+cfg.Border() || y != cfg.Border() {
		t.Errorf("top-right corner maps to (%d, %d)", x, y)
	}
}
