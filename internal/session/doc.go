// Package session wires a stream of mesh commands to a front-end.
//
// A [Session] owns the edge set, a [Coordinator] that paces and pauses the
// single worker goroutine, and a [Controller] implementing the
// stopped/running/paused state machine behind the Run and Pause buttons.
// Front-ends supply an [Observer]; anything that touches front-end state is
// passed to Observer.Dispatch so it runs on the front-end's own goroutine.
package session
