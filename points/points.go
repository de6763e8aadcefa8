// Package points holds the immutable sample point set a hull is built from.
package points

import (
	"math/rand/v2"

	"github.com/gmlewis/giftwrap/vec2"
	"github.com/pkg/errors"
)

// ErrEmpty is returned when a set would contain no points, leaving its
// centroid undefined.
var ErrEmpty = errors.New("points: empty point set")

// Set is a fixed, read-only sequence of points and their centroid.
// It is safe for concurrent readers.
type Set struct {
	pts      []vec2.Vec2
	centroid vec2.Vec2
}

// New draws n points uniformly from the square [-bound,bound]² using rng.
// The x coordinate of each point is drawn before its y coordinate.
func New(n int, bound float64, rng *rand.Rand) (*Set, error) {
	if n <= 0 {
		return nil, ErrEmpty
	}
	if bound <= 0 {
		return nil, errors.Errorf("points: bound must be positive, got %v", bound)
	}

	pts := make([]vec2.Vec2, 0, n)
	for i := 0; i < n; i++ {
		x := randf(rng, -bound, bound)
		y := randf(rng, -bound, bound)
		pts = append(pts, vec2.New(x, y))
	}
	return newSet(pts), nil
}

// FromPoints builds a set from pts, which are copied.
func FromPoints(pts []vec2.Vec2) (*Set, error) {
	if len(pts) == 0 {
		return nil, ErrEmpty
	}
	return newSet(append([]vec2.Vec2(nil), pts...)), nil
}

// newSet takes ownership of pts. The centroid is accumulated one scaled
// point at a time so the summation order is the draw order.
func newSet(pts []vec2.Vec2) *Set {
	s := &Set{pts: pts}
	inv := 1 / float64(len(pts))
	for _, p := range pts {
		s.centroid = s.centroid.Add(p.Scale(inv))
	}
	return s
}

// Len returns the number of points in the set.
func (s *Set) Len() int { return len(s.pts) }

// At returns the i-th point in draw order.
func (s *Set) At(i int) vec2.Vec2 { return s.pts[i] }

// Centroid returns the mean of all points in the set.
func (s *Set) Centroid() vec2.Vec2 { return s.centroid }

// Points returns a copy of the points in draw order.
func (s *Set) Points() []vec2.Vec2 { return append([]vec2.Vec2(nil), s.pts...) }

func randf(rng *rand.Rand, min, max float64) float64 {
	return rng.Float64()*(max-min) + min
}
