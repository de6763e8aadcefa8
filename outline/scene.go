package outline

import (
	"github.com/gmlewis/giftwrap/points"
	"github.com/gmlewis/giftwrap/vec2"
	"github.com/go-gl/mathgl/mgl32"
)

// Colors used by Compose, as RGBA in [0,1].
var (
	Background = mgl32.Vec4{0.07, 0.13, 0.17, 1}
	Sample     = mgl32.Vec4{1, 1, 1, 1}
	Accepted   = mgl32.Vec4{0, 1, 0, 1}
	Probe      = mgl32.Vec4{1, 0, 1, 1}
)

// Batch is a set of strips drawn in one color.
type Batch struct {
	Color  mgl32.Vec4
	Strips []Polygon
}

// Scene is everything drawn for one frame, in draw order.
type Scene struct {
	Clear   mgl32.Vec4
	Batches []Batch
}

// Len returns the total number of strip vertices in the scene.
func (s Scene) Len() int {
	var n int
	for _, b := range s.Batches {
		for _, strip := range b.Strips {
			n += len(strip)
		}
	}
	return n
}

// Compose draws the sample points, the hull accepted so far and the probe
// from the centroid to the newest vertex using DefaultGenerator.
func Compose(ps *points.Set, verts []vec2.Vec2) Scene {
	return DefaultGenerator.Compose(ps, verts)
}

// Compose draws the sample points, the hull accepted so far and the probe
// from the centroid to the newest vertex.
func (g Generator) Compose(ps *points.Set, verts []vec2.Vec2) Scene {
	centroid := ps.Centroid()

	samples := Batch{Color: Sample}
	for i := 0; i < ps.Len(); i++ {
		samples.Strips = append(samples.Strips, g.Point(ps.At(i)))
	}

	sc := Scene{Clear: Background, Batches: []Batch{samples}}
	if len(verts) == 0 {
		sc.Batches = append(sc.Batches, Batch{Color: Probe, Strips: []Polygon{g.Point(centroid)}})
		return sc
	}

	newest := verts[len(verts)-1]

	edges := Batch{Color: Accepted}
	for i := 1; i < len(verts); i++ {
		if seg := g.Segment(verts[i], verts[i-1]); seg != nil {
			edges.Strips = append(edges.Strips, seg)
		}
	}

	probe := Batch{Color: Probe}
	if seg := g.Segment(centroid, newest); seg != nil {
		probe.Strips = append(probe.Strips, seg)
	}

	accepted := Batch{Color: Accepted}
	for _, v := range verts[:len(verts)-1] {
		accepted.Strips = append(accepted.Strips, g.Point(v))
	}

	markers := Batch{Color: Probe, Strips: []Polygon{g.Point(newest), g.Point(centroid)}}

	sc.Batches = append(sc.Batches, edges, probe, accepted, markers)
	return sc
}
