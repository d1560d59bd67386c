package session

import (
	"context"
	"errors"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/san-kum/meshview/internal/mesh"
	"github.com/san-kum/meshview/internal/metrics"
	"github.com/san-kum/meshview/internal/stream"
)

type Options struct {
	Hesitation  time.Duration
	HistorySize int
}

// Session is one viewing of one input stream.
type Session struct {
	ID         string
	Header     stream.Header
	Edges      *mesh.EdgeSet
	Gate       *Coordinator
	Stats      *metrics.Stats
	Controller *Controller

	worker *Worker
	ctx    context.Context
	cancel context.CancelFunc

	mu  sync.Mutex
	obs Observer

	elapsed atomic.Int64
	done    chan struct{}
	err     error
}

// Open reads the stream header from r. Commands are consumed only after the
// first Run.
func Open(r io.Reader, opts Options) (*Session, error) {
	src := stream.NewReader(r)
	hdr, err := src.ReadHeader()
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	s := &Session{
		ID:     uuid.New().String(),
		Header: hdr,
		Edges:  mesh.NewEdgeSet(),
		Gate:   NewCoordinator(opts.Hesitation),
		Stats:  metrics.NewStats(hdr.Bounds, opts.HistorySize),
		ctx:    ctx,
		cancel: cancel,
		obs:    Immediate{},
		done:   make(chan struct{}),
	}
	s.worker = NewWorker(src, s.Edges, s.Gate, s.Stats, s)
	s.worker.onTime = func(ms int64) { s.elapsed.Store(ms) }
	s.Controller = NewController(s.Gate, s.work)
	return s, nil
}

// Attach sets the front-end observer. Call it before the first Run.
func (s *Session) Attach(obs Observer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if obs == nil {
		obs = Immediate{}
	}
	s.obs = obs
}

func (s *Session) observer() Observer {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.obs
}

func (s *Session) Dispatch(fn func()) { s.observer().Dispatch(fn) }
func (s *Session) Redraw()            { s.observer().Redraw() }

func (s *Session) work() {
	err := s.worker.Run(s.ctx)
	if errors.Is(err, context.Canceled) {
		err = nil
	}
	s.err = err

	s.Dispatch(s.Controller.Finish)
	s.Redraw()
	close(s.done)
}

func (s *Session) Run() bool   { return s.Controller.Run() }
func (s *Session) Pause() bool { return s.Controller.Pause() }

// Quit stops the worker at its next Hesitate. A worker blocked reading the
// input stays blocked until the process exits.
func (s *Session) Quit() { s.cancel() }

// Done is closed once the worker has returned.
func (s *Session) Done() <-chan struct{} { return s.done }

// Err is the worker's terminal error, valid after Done is closed. Stream
// exhaustion and Quit both leave it nil.
func (s *Session) Err() error {
	select {
	case <-s.done:
		return s.err
	default:
		return nil
	}
}

// Wait blocks until the worker returns or ctx is done.
func (s *Session) Wait(ctx context.Context) error {
	select {
	case <-s.done:
		return s.err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Elapsed is the producer time from the most recent time command.
func (s *Session) Elapsed() time.Duration {
	return time.Duration(s.elapsed.Load()) * time.Millisecond
}

// Projection maps the session's bounds onto a square canvas of side pixels
// with border pixels of inset.
func (s *Session) Projection(pixels, border int) (mesh.Projection, error) {
	return mesh.NewProjection(s.Header.Bounds, pixels, pixels, border)
}
