package session

import "sync"

type RunState int

const (
	Stopped RunState = iota
	Running
	Paused
)

func (s RunState) String() string {
	switch s {
	case Running:
		return "RUNNING"
	case Paused:
		return "PAUSED"
	default:
		return "STOPPED"
	}
}

// Action is a button the controller can highlight as the default.
type Action int

const (
	ActionNone Action = iota
	ActionRun
	ActionPause
	ActionQuit
)

func (a Action) String() string {
	switch a {
	case ActionRun:
		return "Run"
	case ActionPause:
		return "Pause"
	case ActionQuit:
		return "Quit"
	default:
		return ""
	}
}

// Controller is the run/pause state machine. The first Run starts the worker
// through start; later Runs and Pauses only toggle the coordinator. There is
// no way back to Stopped.
type Controller struct {
	mu       sync.Mutex
	state    RunState
	def      Action
	gate     *Coordinator
	start    func()
	started  int
	finished bool
}

func NewController(gate *Coordinator, start func()) *Controller {
	return &Controller{state: Stopped, def: ActionRun, gate: gate, start: start}
}

// Run reports whether the press changed state.
func (c *Controller) Run() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch c.state {
	case Stopped:
		c.state = Running
		c.setDefault(ActionPause)
		c.started++
		go c.start()
		return true
	case Paused:
		c.state = Running
		c.setDefault(ActionPause)
		c.gate.Toggle()
		return true
	}
	return false
}

func (c *Controller) Pause() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != Running {
		return false
	}
	c.state = Paused
	c.setDefault(ActionRun)
	c.gate.Toggle()
	return true
}

// Press triggers the current default action.
func (c *Controller) Press() Action {
	a := c.Default()
	switch a {
	case ActionRun:
		c.Run()
	case ActionPause:
		c.Pause()
	}
	return a
}

// Finish clears the default action once the stream is exhausted. Call it on
// the front-end goroutine.
func (c *Controller) Finish() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.finished = true
	c.def = ActionNone
}

func (c *Controller) setDefault(a Action) {
	if !c.finished {
		c.def = a
	}
}

func (c *Controller) State() RunState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *Controller) Default() Action {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.def
}

func (c *Controller) Finished() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.finished
}

// Starts counts how many workers were launched; it never exceeds one.
func (c *Controller) Starts() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.started
}
