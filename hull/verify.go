package hull

import (
	"github.com/gmlewis/giftwrap/vec2"
	"github.com/pkg/errors"
)

// Verify checks a finished walk against a Graham scan of the same points.
// Every point must lie inside or on the walked polygon, and every vertex of
// the Graham hull must have been visited. Collinear boundary points the
// walk picked up are allowed.
func (b *Builder) Verify() error {
	if st := b.State(); st != Closed {
		return errors.Errorf("hull: cannot verify hull in state %v", st)
	}

	verts := b.Vertices()
	poly := verts[:len(verts)-1]
	eps := float64(b.tol)

	pts := b.ps.Points()
	for _, p := range pts {
		if !Contains(poly, p, eps) {
			return errors.Errorf("hull: point %v lies outside the hull", p)
		}
	}

	for _, want := range Reference(pts) {
		if !containsVertex(poly, want, b.tol) {
			return errors.Errorf("hull: vertex %v missing from the walk", want)
		}
	}
	return nil
}

func containsVertex(poly []vec2.Vec2, v vec2.Vec2, tol vec2.Tolerance) bool {
	for _, p := range poly {
		if tol.Equal(p, v) {
			return true
		}
	}
	return false
}
