package board

import "github.com/san-kum/flingsim/internal/geom"

// WallName is the reserved name of the outer boundary.
const WallName = "outerWall"

// OuterWall is the boundary of the playing area: four edges plus four corner
// points for exact corner bounces.
type OuterWall struct {
	shape
	link
	size int
}

func NewOuterWall(size int) *OuterWall {
	s := float64(size)
	return &OuterWall{
		shape: newShape(WallName, geom.Zero,
			geom.Seg(0, 0, s, 0),
			geom.Seg(0, 0, 0, s),
			geom.Seg(s, 0, s, s),
			geom.Seg(0, s, s, s),
		),
		size: size,
	}
}

func (w *OuterWall) Kind() Kind      { return KindWall }
func (w *OuterWall) Color() Color    { return Black }
func (w *OuterWall) Footprint() Rect { return Rect{W: w.size, H: w.size} }

func (w *OuterWall) TimeUntilCollision(b *Ball) float64 { return w.timeUntil(b) }

func (w *OuterWall) Collision(b *Ball) {
	w.bounce(b)
	w.Trigger()
}

func (w *OuterWall) Trigger() bool { return w.fire() }
func (w *OuterWall) Action() bool  { return false }
