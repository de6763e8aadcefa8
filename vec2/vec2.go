// Package vec2 provides the 2D point/vector type shared by the hull builder
// and the outline generator.
package vec2

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"
)

// DefaultEpsilon is the per-component tolerance used by ApproxEqual.
const DefaultEpsilon = 1e-9

// Vec2 is a 2D point or vector.
type Vec2 mgl64.Vec2

// New returns the vector (x,y).
func New(x, y float64) Vec2 { return Vec2{x, y} }

func (v Vec2) X() float64 { return v[0] }
func (v Vec2) Y() float64 { return v[1] }

// Add returns v+w.
func (v Vec2) Add(w Vec2) Vec2 { return Vec2(mgl64.Vec2(v).Add(mgl64.Vec2(w))) }

// Sub returns v-w.
func (v Vec2) Sub(w Vec2) Vec2 { return Vec2(mgl64.Vec2(v).Sub(mgl64.Vec2(w))) }

// Scale returns v*k.
func (v Vec2) Scale(k float64) Vec2 { return Vec2(mgl64.Vec2(v).Mul(k)) }

// Norm returns the Euclidean length of v.
func (v Vec2) Norm() float64 { return mgl64.Vec2(v).Len() }

// Dot returns the dot product of v and w.
func (v Vec2) Dot(w Vec2) float64 { return mgl64.Vec2(v).Dot(mgl64.Vec2(w)) }

// Cross returns the z component of the 3D cross product of v and w,
// which is positive when w lies counterclockwise of v.
func (v Vec2) Cross(w Vec2) float64 { return v[0]*w[1] - v[1]*w[0] }

// Perp returns v rotated a quarter turn counterclockwise.
func (v Vec2) Perp() Vec2 { return Vec2{-v[1], v[0]} }

// Vec32 converts v to single precision for vertex upload.
func (v Vec2) Vec32() mgl32.Vec2 { return mgl32.Vec2{float32(v[0]), float32(v[1])} }

func (v Vec2) String() string { return fmt.Sprintf("(%v,%v)", v[0], v[1]) }

// Tolerance is an absolute per-component equality threshold.
type Tolerance float64

// Equal reports whether a and b differ by less than t on both axes.
func (t Tolerance) Equal(a, b Vec2) bool {
	return math.Abs(a[0]-b[0]) < float64(t) && math.Abs(a[1]-b[1]) < float64(t)
}

// ApproxEqual reports whether a and b are equal within DefaultEpsilon.
func ApproxEqual(a, b Vec2) bool { return Tolerance(DefaultEpsilon).Equal(a, b) }
