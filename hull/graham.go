package hull

import (
	"math"
	"sort"

	"github.com/gmlewis/giftwrap/vec2"
)

// Reference computes the convex hull of pts in one pass with a Graham scan.
// The result is counterclockwise, starts at the lowest (then leftmost)
// point and is not closed. Collinear boundary points are dropped.
// It is used to check the incremental walk.
func Reference(pts []vec2.Vec2) []vec2.Vec2 {
	if len(pts) == 0 {
		return nil
	}
	start := lowest(pts)
	sorted := sortByAngle(pts, start)

	stack := []vec2.Vec2{start}
	for _, pt := range sorted {
		for len(stack) >= 2 && ccw(stack[len(stack)-2], stack[len(stack)-1], pt.p) <= 0 {
			stack = stack[:len(stack)-1]
		}
		stack = append(stack, pt.p)
	}
	return stack
}

// Contains reports whether p lies inside or on the counterclockwise convex
// polygon poly, allowing eps of slack on each edge.
func Contains(poly []vec2.Vec2, p vec2.Vec2, eps float64) bool {
	for i, a := range poly {
		b := poly[(i+1)%len(poly)]
		if ccw(a, b, p) < -eps {
			return false
		}
	}
	return true
}

type pointWithAngle struct {
	p        vec2.Vec2
	angle    float64
	distance float64
}

func ccw(p1, p2, p3 vec2.Vec2) float64 {
	return p2.Sub(p1).Cross(p3.Sub(p1))
}

func lowest(pts []vec2.Vec2) vec2.Vec2 {
	start := pts[0]
	for _, p := range pts[1:] {
		if p.Y() < start.Y() || (p.Y() == start.Y() && p.X() < start.X()) {
			start = p
		}
	}
	return start
}

func sortByAngle(pts []vec2.Vec2, start vec2.Vec2) []*pointWithAngle {
	angles := make([]*pointWithAngle, 0, len(pts))
	for _, p := range pts {
		if p == start {
			continue
		}
		d := p.Sub(start)
		angles = append(angles, &pointWithAngle{
			p:        p,
			angle:    math.Atan2(d.Y(), d.X()),
			distance: d.Dot(d),
		})
	}
	sort.Slice(angles, func(a, b int) bool {
		if angles[a].angle == angles[b].angle {
			return angles[a].distance < angles[b].distance
		}
		return angles[a].angle < angles[b].angle
	})
	return angles
}
