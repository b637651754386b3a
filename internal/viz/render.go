package viz

import (
	"math"

	"github.com/san-kum/flingsim/internal/board"
	"github.com/san-kum/flingsim/internal/geom"
)

// SubPixelsPerUnit is the raster resolution along each axis.
const SubPixelsPerUnit = 4

// Renderer rasterizes boards onto a canvas sized for the whole playing area.
type Renderer struct {
	canvas *Canvas
}

func NewRenderer() *Renderer {
	side := board.Size * SubPixelsPerUnit
	return &Renderer{canvas: NewCanvas(side/2, side/4)}
}

func (r *Renderer) Canvas() *Canvas { return r.canvas }

// Draw redraws the canvas from b. Balls are drawn last so they stay visible
// over gadgets. Absorbed balls are not drawn.
func (r *Renderer) Draw(b *board.Board) *Canvas {
	r.canvas.Clear()
	for _, g := range b.Gadgets() {
		r.drawGadget(g)
	}
	for _, ball := range b.Balls() {
		if !ball.Absorbed() {
			r.fillCircle(ball.Circle(), ball.Color())
		}
	}
	return r.canvas
}

func (r *Renderer) drawGadget(g board.Gadget) {
	if c, ok := g.(*board.CircleBumper); ok {
		r.fillCircle(c.Shape(), c.Color())
		return
	}

	edges := g.Edges()
	fp := g.Footprint()
	for y := fp.Y * SubPixelsPerUnit; y < fp.Bottom()*SubPixelsPerUnit; y++ {
		for x := fp.X * SubPixelsPerUnit; x < fp.Right()*SubPixelsPerUnit; x++ {
			if inside(edges, center(x, y)) {
				r.canvas.Set(x, y, g.Color())
			}
		}
	}
}

// fillCircle sets every sub-pixel whose center lies in c, or the single
// nearest sub-pixel when c is smaller than one.
func (r *Renderer) fillCircle(c geom.Circle, ink board.Color) {
	minX := int(math.Floor((c.Center.X - c.Radius) * SubPixelsPerUnit))
	maxX := int(math.Ceil((c.Center.X + c.Radius) * SubPixelsPerUnit))
	minY := int(math.Floor((c.Center.Y - c.Radius) * SubPixelsPerUnit))
	maxY := int(math.Ceil((c.Center.Y + c.Radius) * SubPixelsPerUnit))

	hit := false
	for y := minY; y < maxY; y++ {
		for x := minX; x < maxX; x++ {
			if center(x, y).Sub(c.Center).Length() <= c.Radius {
				r.canvas.Set(x, y, ink)
				hit = true
			}
		}
	}
	if !hit {
		r.canvas.Set(int(c.Center.X*SubPixelsPerUnit), int(c.Center.Y*SubPixelsPerUnit), ink)
	}
}

// center is the board position of the middle of sub-pixel (x, y).
func center(x, y int) geom.Vect {
	return geom.V((float64(x)+0.5)/SubPixelsPerUnit, (float64(y)+0.5)/SubPixelsPerUnit)
}

// inside reports whether p lies within the convex polygon bounded by edges.
func inside(edges []geom.Segment, p geom.Vect) bool {
	if len(edges) == 0 {
		return false
	}
	var mid geom.Vect
	for _, e := range edges {
		mid = mid.Add(e.P1).Add(e.P2)
	}
	mid = mid.Scale(1 / float64(2*len(edges)))

	for _, e := range edges {
		n := e.P2.Sub(e.P1).Perp()
		if n.Dot(p.Sub(e.P1))*n.Dot(mid.Sub(e.P1)) < 0 {
			return false
		}
	}
	return true
}
