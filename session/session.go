// Package session owns one hull construction run: the point set, the
// builder advancing over it, and the loop that renders and exports a frame
// for every step.
package session

import (
	"context"
	"image"
	"log"
	"time"

	"github.com/gmlewis/giftwrap/frames"
	"github.com/gmlewis/giftwrap/hull"
	"github.com/gmlewis/giftwrap/outline"
	"github.com/gmlewis/giftwrap/points"
	"github.com/pkg/errors"
)

const (
	// DefaultInterval is the time between construction steps.
	DefaultInterval = 100 * time.Millisecond
	// DefaultMaxSteps caps the length of a run.
	DefaultMaxSteps = 1000
)

// ErrWindowClosed is returned by Run when the user closes the window
// before construction finishes.
var ErrWindowClosed = errors.New("session: window closed")

// Renderer turns a scene into an image.
type Renderer interface {
	Render(sc outline.Scene) (image.Image, error)
}

// Window is a Renderer the user can close.
type Window interface {
	Renderer
	ShouldClose() bool
}

// Session is a single hull construction run.
type Session struct {
	ps  *points.Set
	hb  *hull.Builder
	gen outline.Generator

	interval time.Duration
	maxSteps int
	hullOpts []hull.Option
}

// Option configures a Session.
type Option func(*Session)

// WithInterval sets the delay between steps. Zero steps as fast as
// frames can be rendered.
func WithInterval(d time.Duration) Option {
	return func(s *Session) { s.interval = d }
}

// WithMaxSteps caps the number of steps Run will take. Zero means no cap.
func WithMaxSteps(n int) Option {
	return func(s *Session) { s.maxSteps = n }
}

// WithTolerance sets the vertex equality epsilon of the builder.
func WithTolerance(eps float64) Option {
	return func(s *Session) { s.hullOpts = append(s.hullOpts, hull.WithTolerance(eps)) }
}

// WithGenerator sets the marker and segment dimensions of each frame.
func WithGenerator(g outline.Generator) Option {
	return func(s *Session) { s.gen = g }
}

// New starts a session over ps with an empty hull.
func New(ps *points.Set, opts ...Option) *Session {
	s := &Session{
		ps:       ps,
		gen:      outline.DefaultGenerator,
		interval: DefaultInterval,
		maxSteps: DefaultMaxSteps,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.hb = hull.New(ps, s.hullOpts...)
	return s
}

// Points returns the session's point set.
func (s *Session) Points() *points.Set { return s.ps }

// Hull returns the session's builder.
func (s *Session) Hull() *hull.Builder { return s.hb }

// Step advances the hull once and reports whether construction continues.
func (s *Session) Step() bool { return s.hb.Advance() }

// Scene composes the frame for the current hull state.
func (s *Session) Scene() outline.Scene {
	return s.gen.Compose(s.ps, s.hb.Vertices())
}

// Run steps the hull immediately and then once per interval, rendering each step that made
// progress and handing the image to sink (which may be nil) as frame n,
// starting at 1. It returns the number of frames produced.
//
// Run stops with a nil error once the hull closes. It returns
// hull.ErrStepLimit when the step cap is reached, ErrWindowClosed when r is
// a Window the user closed, or the context's error on cancellation.
func (s *Session) Run(ctx context.Context, r Renderer, sink frames.Processor) (int, error) {
	var tick <-chan time.Time
	if s.interval > 0 {
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()
		tick = ticker.C
	}
	win, _ := r.(Window)

	var n int
	for first := true; ; first = false {
		if win != nil && win.ShouldClose() {
			return n, ErrWindowClosed
		}
		// The first step is taken right away; later ones wait for a tick.
		if tick != nil && !first {
			select {
			case <-ctx.Done():
				return n, ctx.Err()
			case <-tick:
			}
		} else if err := ctx.Err(); err != nil {
			return n, err
		}

		if !s.Step() {
			log.Printf("Hull closed after %v steps with %v vertices.", n, s.hb.Len()-1)
			return n, nil
		}
		n++

		img, err := r.Render(s.Scene())
		if err != nil {
			return n, errors.Wrapf(err, "render frame %v", n)
		}
		if sink != nil {
			if err := sink.ProcessFrame(n, img); err != nil {
				return n, errors.Wrapf(err, "process frame %v", n)
			}
		}

		if s.maxSteps > 0 && n >= s.maxSteps {
			return n, hull.ErrStepLimit
		}
	}
}
