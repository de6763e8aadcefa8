// Package ggrender rasterizes scenes offscreen with the gg 2D library, for
// runs without a display.
package ggrender

import (
	"image"

	"github.com/fogleman/gg"
	"github.com/gmlewis/giftwrap/outline"
	"github.com/pkg/errors"
)

// Config sets the output image size in pixels.
type Config struct {
	Width, Height int
}

// Renderer draws scenes into fresh images.
type Renderer struct {
	cfg Config
}

// New returns a renderer producing cfg.Width x cfg.Height images.
func New(cfg Config) (*Renderer, error) {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, errors.Errorf("ggrender: invalid size %vx%v", cfg.Width, cfg.Height)
	}
	return &Renderer{cfg: cfg}, nil
}

// Render draws sc and returns the resulting image.
// Normalized device coordinates map onto the full image with +y up.
func (r *Renderer) Render(sc outline.Scene) (image.Image, error) {
	w, h := float64(r.cfg.Width), float64(r.cfg.Height)
	dc := gg.NewContext(r.cfg.Width, r.cfg.Height)

	c := sc.Clear
	dc.SetRGBA(float64(c[0]), float64(c[1]), float64(c[2]), float64(c[3]))
	dc.Clear()

	// Flip the context so +y is up, then map [-1,1] onto the image.
	dc.Translate(w/2, h/2)
	dc.Scale(w/2, -h/2)
	dc.SetFillRuleWinding()

	for _, b := range sc.Batches {
		dc.SetRGBA(float64(b.Color[0]), float64(b.Color[1]), float64(b.Color[2]), float64(b.Color[3]))
		for _, strip := range b.Strips {
			if drawStrip(dc, strip) {
				dc.Fill()
			}
		}
	}

	return dc.Image(), nil
}

// Close is a no-op.
func (r *Renderer) Close() error { return nil }

// drawStrip adds every triangle of a strip to the current path as its own
// counterclockwise subpath. With the nonzero rule the strip then fills as
// the union of its triangles.
func drawStrip(dc *gg.Context, strip outline.Polygon) bool {
	if len(strip) < 3 {
		return false
	}
	for i := 2; i < len(strip); i++ {
		a, b, c := strip[i-2], strip[i-1], strip[i]
		if b.Sub(a).Cross(c.Sub(a)) < 0 {
			b, c = c, b
		}
		dc.MoveTo(a.X(), a.Y())
		dc.LineTo(b.X(), b.Y())
		dc.LineTo(c.X(), c.Y())
		dc.ClosePath()
	}
	return true
}
