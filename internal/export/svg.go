// Package export renders boards, traces and terminal canvases as SVG.
package export

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/san-kum/flingsim/internal/board"
	"github.com/san-kum/flingsim/internal/geom"
	"github.com/san-kum/flingsim/internal/sim"
	"github.com/san-kum/flingsim/internal/viz"
)

const background = "#0a0a0a"

// CanvasToSVG converts a Braille canvas to SVG, one dot per lit sub-pixel
// colored with the cell's ink.
func CanvasToSVG(canvas *viz.Canvas, scale float64) string {
	if canvas == nil {
		return ""
	}

	width := float64(canvas.Width) * scale * 2   // 2 sub-pixels per char
	height := float64(canvas.Height) * scale * 4 // 4 sub-pixels per char

	var sb strings.Builder
	header(&sb, width, height)

	dotRadius := scale * 0.4

	for row := 0; row < canvas.Height; row++ {
		for col := 0; col < canvas.Width; col++ {
			baseX := float64(col) * scale * 2
			baseY := float64(row) * scale * 4
			fill := canvas.Ink[row][col].Hex()

			for dy := 0; dy < 4; dy++ {
				for dx := 0; dx < 2; dx++ {
					if !canvas.Lit(col*2+dx, row*4+dy) {
						continue
					}
					cx := baseX + float64(dx)*scale + scale/2
					cy := baseY + float64(dy)*scale + scale/2
					fmt.Fprintf(&sb, "<circle cx=\"%.1f\" cy=\"%.1f\" r=\"%.1f\" fill=\"%s\"/>\n", cx, cy, dotRadius, fill)
				}
			}
		}
	}

	sb.WriteString("</svg>")
	return sb.String()
}

// BoardSVG draws the gadgets and free balls of b, scale pixels per board
// unit.
func BoardSVG(b *board.Board, scale float64) string {
	return TraceSVG(b, nil, scale)
}

// TraceSVG draws b with the path of every ball in samples underneath it.
func TraceSVG(b *board.Board, samples []sim.Sample, scale float64) string {
	if b == nil {
		return ""
	}
	size := b.Size() * scale

	var sb strings.Builder
	header(&sb, size, size)

	trails(&sb, samples, scale)

	for _, g := range b.Gadgets() {
		gadget(&sb, g, scale)
	}
	for _, ball := range b.Balls() {
		if ball.Absorbed() {
			continue
		}
		p := ball.Location().Scale(scale)
		fmt.Fprintf(&sb, "<circle cx=\"%.2f\" cy=\"%.2f\" r=\"%.2f\" fill=\"%s\"/>\n",
			p.X, p.Y, ball.Radius()*scale, ball.Color().Hex())
	}

	fmt.Fprintf(&sb, "<rect x=\"0\" y=\"0\" width=\"%.0f\" height=\"%.0f\" fill=\"none\" stroke=\"#808080\" stroke-width=\"2\"/>\n", size, size)
	sb.WriteString("</svg>")
	return sb.String()
}

func header(sb *strings.Builder, width, height float64) {
	fmt.Fprintf(sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="%s"/>
`, width, height, width, height, background)
}

func gadget(sb *strings.Builder, g board.Gadget, scale float64) {
	fill := g.Color().Hex()
	if c, ok := g.(*board.CircleBumper); ok {
		s := c.Shape()
		fmt.Fprintf(sb, "<circle cx=\"%.2f\" cy=\"%.2f\" r=\"%.2f\" fill=\"%s\"/>\n",
			s.Center.X*scale, s.Center.Y*scale, s.Radius*scale, fill)
		return
	}

	pts := polygon(g.Edges())
	if len(pts) < 3 {
		return
	}
	coords := make([]string, len(pts))
	for i, p := range pts {
		coords[i] = fmt.Sprintf("%.2f,%.2f", p.X*scale, p.Y*scale)
	}
	fmt.Fprintf(sb, "<polygon points=\"%s\" fill=\"%s\"/>\n", strings.Join(coords, " "), fill)
}

// polygon orders the corners of a convex edge set around their centroid.
func polygon(edges []geom.Segment) []geom.Vect {
	seen := make(map[geom.Vect]bool, 2*len(edges))
	var pts []geom.Vect
	var c geom.Vect
	for _, e := range edges {
		for _, p := range [2]geom.Vect{e.P1, e.P2} {
			if !seen[p] {
				seen[p] = true
				pts = append(pts, p)
				c = c.Add(p)
			}
		}
	}
	if len(pts) == 0 {
		return nil
	}
	c = c.Scale(1 / float64(len(pts)))
	sort.Slice(pts, func(i, j int) bool {
		return math.Atan2(pts[i].Y-c.Y, pts[i].X-c.X) < math.Atan2(pts[j].Y-c.Y, pts[j].X-c.X)
	})
	return pts
}

func trails(sb *strings.Builder, samples []sim.Sample, scale float64) {
	paths := make(map[string][]string)
	var order []string
	for _, s := range samples {
		if s.Absorbed {
			continue
		}
		if _, ok := paths[s.Ball]; !ok {
			order = append(order, s.Ball)
		}
		paths[s.Ball] = append(paths[s.Ball], fmt.Sprintf("%.1f,%.1f", s.X*scale, s.Y*scale))
	}

	for _, name := range order {
		pts := paths[name]
		if len(pts) < 2 {
			continue
		}
		fmt.Fprintf(sb, "<path fill=\"none\" stroke=\"%s\" stroke-opacity=\"0.5\" stroke-width=\"1.5\" d=\"M%s\"/>\n",
			board.Blue.Hex(), strings.Join(pts, " L"))
	}
}
