// Package outline converts points and segments into thin drawable polygons
// and composes the per-frame scene of a hull under construction.
//
// Polygons are emitted as triangle strips in normalized device coordinates.
// Nothing here keeps state; every call regenerates its output.
package outline

import (
	"math"

	"github.com/gmlewis/giftwrap/vec2"
)

// Polygon is a triangle strip.
type Polygon []vec2.Vec2

// AppendFloat32s appends the interleaved x,y coordinates of p to dst.
func (p Polygon) AppendFloat32s(dst []float32) []float32 {
	for _, v := range p {
		v32 := v.Vec32()
		dst = append(dst, v32[0], v32[1])
	}
	return dst
}

// Generator holds the marker and segment dimensions.
type Generator struct {
	// Outer and Inner are the radii of a point marker ring.
	Outer, Inner float64
	// Nodes is the number of angular subdivisions of a ring.
	Nodes int
	// Width is the full thickness of a segment.
	Width float64
}

// DefaultGenerator matches a 900x900 window.
var DefaultGenerator = Generator{
	Outer: 0.02,
	Inner: 0.015,
	Nodes: 72,
	Width: 0.01,
}

// Point returns a ring marker around center using DefaultGenerator.
func Point(center vec2.Vec2) Polygon { return DefaultGenerator.Point(center) }

// Segment returns a thin quad from p1 to p2 using DefaultGenerator.
func Segment(p1, p2 vec2.Vec2) Polygon { return DefaultGenerator.Segment(p1, p2) }

// Point returns a ring marker around center. The strip always holds
// exactly 4*g.Nodes vertices: for each node the new outer, previous outer,
// new inner and previous inner ring positions.
func (g Generator) Point(center vec2.Vec2) Polygon {
	poly := make(Polygon, 0, 4*g.Nodes)
	a := center.Add(vec2.New(g.Outer, 0))
	b := center.Add(vec2.New(g.Inner, 0))
	for j := 1; j <= g.Nodes; j++ {
		ang := 2 * math.Pi * float64(j) / float64(g.Nodes)
		dir := vec2.New(math.Cos(ang), math.Sin(ang))
		c := center.Add(dir.Scale(g.Outer))
		d := center.Add(dir.Scale(g.Inner))

		poly = append(poly, c, a, d, b)

		a, b = c, d
	}
	return poly
}

// Segment returns a quad of thickness g.Width centered on p1→p2, as the
// strip p1+n, p1-n, p2+n, p2-n so its two triangles tile the rectangle.
// A zero-length segment has no direction and yields nil.
func (g Generator) Segment(p1, p2 vec2.Vec2) Polygon {
	n := p2.Sub(p1).Perp()
	norm := n.Norm()
	if norm == 0 {
		return nil
	}
	p := n.Scale(g.Width / (2 * norm))

	return Polygon{p1.Add(p), p1.Sub(p), p2.Add(p), p2.Sub(p)}
}
