package session

import (
	"context"
	"fmt"
	"io"

	"github.com/san-kum/meshview/internal/mesh"
	"github.com/san-kum/meshview/internal/metrics"
	"github.com/san-kum/meshview/internal/stream"
)

// Worker applies stream commands to the edge set, one line per Hesitate.
type Worker struct {
	src   *stream.Reader
	edges *mesh.EdgeSet
	gate  *Coordinator
	stats *metrics.Stats
	obs   Observer

	onTime func(millis int64)
}

func NewWorker(src *stream.Reader, edges *mesh.EdgeSet, gate *Coordinator, stats *metrics.Stats, obs Observer) *Worker {
	if obs == nil {
		obs = Immediate{}
	}
	return &Worker{src: src, edges: edges, gate: gate, stats: stats, obs: obs}
}

// Run consumes the stream until it ends, a line fails to parse, or ctx is
// done. A nil return means the stream was exhausted.
func (w *Worker) Run(ctx context.Context) error {
	for {
		line, err := w.src.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read input: %w", err)
		}

		if err := w.gate.Hesitate(ctx); err != nil {
			return err
		}

		cmd, err := stream.ParseCommand(line)
		if err != nil {
			return &stream.LineError{Line: w.src.Line(), Text: line, Err: err}
		}
		w.Apply(cmd)
	}
}

// Apply performs a single command and requests a redraw.
func (w *Worker) Apply(cmd stream.Command) {
	changed := false
	switch cmd.Kind {
	case stream.KindTime:
		if w.onTime != nil {
			w.onTime(cmd.Millis)
		}
	case stream.KindAdd:
		changed = w.edges.Add(cmd.Edge)
	case stream.KindRemove:
		changed = w.edges.Remove(cmd.Edge)
	}
	if w.stats != nil {
		w.stats.Observe(cmd, changed, w.edges.Len())
	}
	if cmd.Kind != stream.KindIgnored {
		w.obs.Redraw()
	}
}
