package session

// Observer is the front-end side of a session.
type Observer interface {
	// Dispatch schedules fn on the goroutine that owns front-end state.
	Dispatch(fn func())
	// Redraw asks for a repaint. It may be called from the worker.
	Redraw()
}

// Immediate runs dispatched functions in place. It suits headless use where
// no front-end goroutine exists.
type Immediate struct{}

func (Immediate) Dispatch(fn func()) { fn() }
func (Immediate) Redraw()            {}

// FuncObserver adapts a pair of functions to Observer. Nil fields fall back
// to Immediate behaviour.
type FuncObserver struct {
	DispatchFunc func(func())
	RedrawFunc   func()
}

func (o FuncObserver) Dispatch(fn func()) {
	if o.DispatchFunc == nil {
		fn()
		return
	}
	o.DispatchFunc(fn)
}

func (o FuncObserver) Redraw() {
	if o.RedrawFunc != nil {
		o.RedrawFunc()
	}
}
