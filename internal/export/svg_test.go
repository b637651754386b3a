package export

import (
	"strings"
	"testing"

	"github.com/san-kum/flingsim/internal/board"
	"github.com/san-kum/flingsim/internal/geom"
	"github.com/san-kum/flingsim/internal/sim"
	"github.com/san-kum/flingsim/internal/viz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testBoard(t *testing.T) *board.Board {
	t.Helper()
	sq, err := board.NewSquareBumper("sq", 2, 2)
	require.NoError(t, err)
	circ, err := board.NewCircleBumper("circ", 5, 5)
	require.NoError(t, err)
	tri, err := board.NewTriangleBumper("tri", 8, 8, board.Deg90)
	require.NoError(t, err)
	abs, err := board.NewAbsorber("abs", 0, 18, 20, 2)
	require.NoError(t, err)
	ball, err := board.NewBall("b", 10, 3, 0, 1)
	require.NoError(t, err)
	b, err := board.New(board.DefaultParams("svg"), []board.Gadget{sq, circ, tri, abs}, []*board.Ball{ball})
	require.NoError(t, err)
	return b
}

func TestBoardSVG(t *testing.T) {
	svg := BoardSVG(testBoard(t), 10)

	assert.True(t, strings.HasPrefix(svg, "<?xml"))
	assert.True(t, strings.HasSuffix(svg, "</svg>"))
	assert.Contains(t, svg, `width="200" height="200"`)
	assert.Equal(t, 3, strings.Count(svg, "<polygon"), "square, triangle and absorber")
	assert.Contains(t, svg, `<circle cx="55.00" cy="55.00" r="5.00" fill="#ff0000"/>`)
	assert.Contains(t, svg, `<circle cx="100.00" cy="30.00" r="2.50" fill="#0000ff"/>`)
	assert.Contains(t, svg, `points="0.00,180.00 200.00,180.00 200.00,200.00 0.00,200.00"`)
}

func TestBoardSVGNil(t *testing.T) {
	assert.Empty(t, BoardSVG(nil, 10))
	assert.Empty(t, CanvasToSVG(nil, 10))
}

func TestTraceSVG(t *testing.T) {
	samples := []sim.Sample{
		{Ball: "b", X: 1, Y: 1},
		{Ball: "b", X: 2, Y: 2},
		{Ball: "b", X: 3, Y: 3, Absorbed: true},
		{Ball: "lonely", X: 4, Y: 4},
	}
	svg := TraceSVG(testBoard(t), samples, 10)

	assert.Equal(t, 1, strings.Count(svg, "<path"))
	assert.Contains(t, svg, `d="M10.0,10.0 L20.0,20.0"`)
}

func TestPolygonOrdersCorners(t *testing.T) {
	edges := []geom.Segment{
		geom.Seg(0, 0, 1, 0),
		geom.Seg(0, 0, 0, 1),
		geom.Seg(1, 0, 1, 1),
		geom.Seg(0, 1, 1, 1),
	}
	pts := polygon(edges)
	require.Len(t, pts, 4)

	// consecutive corners of a unit square are one unit apart
	for i := range pts {
		next := pts[(i+1)%len(pts)]
		assert.InDelta(t, 1.0, next.Sub(pts[i]).Length(), 1e-12)
	}
	assert.Nil(t, polygon(nil))
}

func TestCanvasToSVG(t *testing.T) {
	c := viz.NewCanvas(2, 1)
	c.Set(0, 0, board.Red)
	c.Set(3, 3, board.Green)

	svg := CanvasToSVG(c, 2)

	assert.Contains(t, svg, `width="8" height="8"`)
	assert.Equal(t, 2, strings.Count(svg, "<circle"))
	assert.Contains(t, svg, `<circle cx="1.0" cy="1.0" r="0.8" fill="#ff0000"/>`)
	assert.Contains(t, svg, `fill="#00ff00"`)
}
