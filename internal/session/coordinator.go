package session

import (
	"context"
	"sync"
	"time"
)

// Coordinator slows the worker down so the mesh evolves visibly, and holds it
// at a gate while the user has paused.
type Coordinator struct {
	hesitation time.Duration

	mu      sync.Mutex
	running bool
	open    chan struct{} // closed while running
}

// NewCoordinator returns a coordinator in the running state.
func NewCoordinator(hesitation time.Duration) *Coordinator {
	open := make(chan struct{})
	close(open)
	return &Coordinator{hesitation: hesitation, running: true, open: open}
}

func (c *Coordinator) Hesitation() time.Duration { return c.hesitation }

// Hesitate sleeps for the hesitation delay and then blocks until the
// coordinator is running. It returns early with ctx.Err() if ctx is done.
func (c *Coordinator) Hesitate(ctx context.Context) error {
	if c.hesitation > 0 {
		t := time.NewTimer(c.hesitation)
		select {
		case <-t.C:
		case <-ctx.Done():
			t.Stop()
			return ctx.Err()
		}
	}

	for {
		c.mu.Lock()
		if c.running {
			c.mu.Unlock()
			return nil
		}
		open := c.open
		c.mu.Unlock()

		select {
		case <-open:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// Toggle flips the running flag. Becoming running releases every goroutine
// blocked in Hesitate.
func (c *Coordinator) Toggle() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.running = !c.running
	if c.running {
		close(c.open)
	} else {
		c.open = make(chan struct{})
	}
}

func (c *Coordinator) Running() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.running
}
