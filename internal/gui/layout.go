package gui

import (
	"sync"

	"github.com/san-kum/meshview/internal/session"
)

const (
	barHeight    = 44
	buttonWidth  = 72
	buttonHeight = 28
	buttonGap    = 10
	fontSize     = 18
)

// Button is one clickable action in the bar under the canvas.
type Button struct {
	Action     session.Action
	X, Y, W, H int
}

// Hit reports whether (x, y) falls inside the button.
func (b Button) Hit(x, y int) bool {
	return x >= b.X && x < b.X+b.W && y >= b.Y && y < b.Y+b.H
}

// Layout places the canvas at the origin and the button bar below it.
type Layout struct {
	CanvasW, CanvasH int
	Buttons          []Button
	LabelX, LabelY   int
}

// NewLayout computes positions for a canvas of outer size w x h.
func NewLayout(w, h int) Layout {
	l := Layout{CanvasW: w, CanvasH: h}
	y := h + (barHeight-buttonHeight)/2
	x := buttonGap
	for _, a := range []session.Action{session.ActionRun, session.ActionPause, session.ActionQuit} {
		l.Buttons = append(l.Buttons, Button{Action: a, X: x, Y: y, W: buttonWidth, H: buttonHeight})
		x += buttonWidth + buttonGap
	}
	l.LabelX = x + buttonGap
	l.LabelY = h + (barHeight-fontSize)/2
	return l
}

// WindowSize is the full window including the button bar.
func (l Layout) WindowSize() (int, int) {
	return l.CanvasW, l.CanvasH + barHeight
}

// ButtonAt returns the action under (x, y), or ActionNone.
func (l Layout) ButtonAt(x, y int) session.Action {
	for _, b := range l.Buttons {
		if b.Hit(x, y) {
			return b.Action
		}
	}
	return session.ActionNone
}

// queue hands work from the worker to the render loop, which drains it once
// per frame.
type queue struct {
	mu      sync.Mutex
	pending []func()
}

func (q *queue) Dispatch(fn func()) {
	q.mu.Lock()
	q.pending = append(q.pending, fn)
	q.mu.Unlock()
}

// Redraw is a no-op: the window repaints every frame.
func (q *queue) Redraw() {}

func (q *queue) drain() int {
	q.mu.Lock()
	fns := q.pending
	q.pending = nil
	q.mu.Unlock()
	for _, fn := range fns {
		fn()
	}
	return len(fns)
}

// apply performs a button action against the session. It reports false when
// the window should close.
func apply(s *session.Session, a session.Action) bool {
	switch a {
	case session.ActionRun:
		s.Run()
	case session.ActionPause:
		s.Pause()
	case session.ActionQuit:
		s.Quit()
		return false
	}
	return true
}
