// Package hull incrementally builds the convex hull of a point set by gift
// wrapping, accepting at most one new vertex per call to Advance so that
// construction can be animated step by step.
package hull

import (
	"math"
	"sync"

	"github.com/gmlewis/giftwrap/points"
	"github.com/gmlewis/giftwrap/vec2"
	"github.com/pkg/errors"
)

// ErrStepLimit is returned by Run when the walk has not closed within the
// allowed number of steps.
var ErrStepLimit = errors.New("hull: step limit reached before closure")

// State is the construction phase of a Builder.
type State int

const (
	Empty State = iota
	Growing
	Closed
)

func (s State) String() string {
	switch s {
	case Empty:
		return "empty"
	case Growing:
		return "growing"
	case Closed:
		return "closed"
	}
	return "unknown"
}

// Option configures a Builder.
type Option func(*Builder)

// WithTolerance sets the per-component epsilon used to recognize a
// revisited vertex and to skip the current vertex as a candidate.
func WithTolerance(eps float64) Option {
	return func(b *Builder) { b.tol = vec2.Tolerance(eps) }
}

// Builder is the hull construction state machine.
//
// Advance is the only mutator. The read accessors may be called from other
// goroutines while a step is in flight.
type Builder struct {
	ps  *points.Set
	tol vec2.Tolerance

	mu     sync.RWMutex
	verts  []vec2.Vec2
	closed bool
	steps  int
}

// New returns an empty builder over ps.
func New(ps *points.Set, opts ...Option) *Builder {
	b := &Builder{
		ps:  ps,
		tol: vec2.DefaultEpsilon,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Advance performs one construction step and reports whether construction
// is still in progress. Once it returns false the hull never changes again.
func (b *Builder) Advance() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return false
	}

	if n := len(b.verts); n > 1 {
		newest := b.verts[n-1]
		for i, v := range b.verts[:n-1] {
			if !b.tol.Equal(newest, v) {
				continue
			}
			if i == 0 {
				b.closed = true
				return false
			}
			// Everything up to the first visit of newest was wind-up
			// before the walk reached the loop.
			b.verts = append([]vec2.Vec2(nil), b.verts[i+1:]...)
			break
		}
	}

	b.steps++

	if len(b.verts) == 0 {
		b.verts = append(b.verts, b.ps.At(0))
		return true
	}

	last := len(b.verts) - 1
	closest, minAngle := b.next(b.verts[last])
	if minAngle < 90 && last == 0 {
		b.verts[last] = b.ps.At(closest)
	} else {
		b.verts = append(b.verts, b.ps.At(closest))
	}
	return true
}

// next returns the index of the point reached by the smallest turn away
// from the centroid-to-from bearing, and that turn in degrees.
// Clockwise turns are folded to 180-angle, which places them after every
// counterclockwise turn.
func (b *Builder) next(from vec2.Vec2) (int, float64) {
	v1 := from.Sub(b.ps.Centroid())

	closest := 0
	minAngle := 360.0
	for i := 0; i < b.ps.Len(); i++ {
		p := b.ps.At(i)
		if b.tol.Equal(p, from) {
			continue
		}
		v2 := p.Sub(from)
		angle := math.Atan2(v1.Cross(v2), v1.Dot(v2)) * 180 / math.Pi
		if angle < 0 {
			angle = 180 - angle
		}
		if angle < minAngle {
			minAngle = angle
			closest = i
		}
	}
	return closest, minAngle
}

// Run advances until the hull closes or maxSteps steps have been taken,
// returning the number of steps that continued construction.
func (b *Builder) Run(maxSteps int) (int, error) {
	for n := 0; n < maxSteps; n++ {
		if !b.Advance() {
			return n, nil
		}
	}
	return maxSteps, ErrStepLimit
}

// Vertices returns a copy of the accepted vertices in construction order.
// A closed hull ends with a repeat of its first vertex.
func (b *Builder) Vertices() []vec2.Vec2 {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return append([]vec2.Vec2(nil), b.verts...)
}

// Len returns the number of accepted vertices.
func (b *Builder) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.verts)
}

// Steps returns how many calls to Advance have returned true.
func (b *Builder) Steps() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.steps
}

// State returns the current construction phase.
func (b *Builder) State() State {
	b.mu.RLock()
	defer b.mu.RUnlock()
	switch {
	case b.closed:
		return Closed
	case len(b.verts) == 0:
		return Empty
	}
	return Growing
}
