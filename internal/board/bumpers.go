package board

import (
	"github.com/san-kum/flingsim/internal/geom"
	"github.com/san-kum/flingsim/internal/physics"
)

// CircleBumperRadius gives circle bumpers a unit diameter.
const CircleBumperRadius = 0.5

func checkCell(name string, x, y int) error {
	if name == "" {
		return configErr("gadget", ErrEmptyName)
	}
	if x < 0 || y < 0 || x >= Size || y >= Size {
		return configErr(name, ErrOutOfBounds)
	}
	return nil
}

// SquareBumper is a unit box with its top-left corner at (x, y).
type SquareBumper struct {
	shape
	link
	cell Rect
}

func NewSquareBumper(name string, x, y int) (*SquareBumper, error) {
	if err := checkCell(name, x, y); err != nil {
		return nil, err
	}
	fx, fy := float64(x), float64(y)
	return &SquareBumper{
		shape: newShape(name, geom.V(fx, fy),
			geom.Seg(fx, fy, fx+1, fy),
			geom.Seg(fx, fy, fx, fy+1),
			geom.Seg(fx+1, fy, fx+1, fy+1),
			geom.Seg(fx, fy+1, fx+1, fy+1),
		),
		cell: Rect{X: x, Y: y, W: 1, H: 1},
	}, nil
}

func (s *SquareBumper) Kind() Kind      { return KindSquare }
func (s *SquareBumper) Color() Color    { return Red }
func (s *SquareBumper) Footprint() Rect { return s.cell }

func (s *SquareBumper) TimeUntilCollision(b *Ball) float64 { return s.timeUntil(b) }

func (s *SquareBumper) Collision(b *Ball) {
	s.bounce(b)
	s.Trigger()
}

func (s *SquareBumper) Trigger() bool { return s.fire() }
func (s *SquareBumper) Action() bool  { return false }

// CircleBumper is a unit-diameter circle filling the cell at (x, y).
type CircleBumper struct {
	link
	name   string
	circle geom.Circle
	cell   Rect
}

func NewCircleBumper(name string, x, y int) (*CircleBumper, error) {
	if err := checkCell(name, x, y); err != nil {
		return nil, err
	}
	return &CircleBumper{
		name:   name,
		circle: geom.Circ(float64(x)+CircleBumperRadius, float64(y)+CircleBumperRadius, CircleBumperRadius),
		cell:   Rect{X: x, Y: y, W: 1, H: 1},
	}, nil
}

func (c *CircleBumper) Name() string          { return c.name }
func (c *CircleBumper) Kind() Kind            { return KindCircle }
func (c *CircleBumper) Location() geom.Vect   { return c.circle.Center }
func (c *CircleBumper) Edges() []geom.Segment { return nil }
func (c *CircleBumper) Color() Color          { return Red }
func (c *CircleBumper) Footprint() Rect       { return c.cell }
func (c *CircleBumper) Shape() geom.Circle    { return c.circle }

func (c *CircleBumper) TimeUntilCollision(b *Ball) float64 {
	return physics.TimeUntilCircleCollision(c.circle, b.Circle(), b.vel)
}

// Collision reflects b off the bumper at the predicted contact point. A ball
// with no contact ahead keeps its velocity unless it already overlaps the
// bumper and is heading further in.
func (c *CircleBumper) Collision(b *Ball) {
	rel := b.center.Sub(c.circle.Center)
	switch t := c.TimeUntilCollision(b); {
	case t < physics.NoCollision:
		b.vel = physics.ReflectCircle(c.circle.Center, b.center.Add(b.vel.Scale(t)), b.vel)
	case rel.Length() <= c.circle.Radius+BallRadius && rel.Dot(b.vel) < 0:
		b.vel = physics.ReflectCircle(c.circle.Center, b.center, b.vel)
	}
	c.Trigger()
}

func (c *CircleBumper) Trigger() bool { return c.fire() }
func (c *CircleBumper) Action() bool  { return false }

// Orientation is a triangle bumper's clockwise rotation in degrees.
type Orientation int

const (
	Deg0   Orientation = 0
	Deg90  Orientation = 90
	Deg180 Orientation = 180
	Deg270 Orientation = 270
)

func (o Orientation) Valid() bool {
	switch o {
	case Deg0, Deg90, Deg180, Deg270:
		return true
	}
	return false
}

// TriangleBumper is a unit right isosceles triangle. At 0 degrees its
// vertices are the top-left, top-right and bottom-left corners of its cell;
// each further orientation turns it 90 degrees clockwise.
type TriangleBumper struct {
	shape
	link
	orientation Orientation
	cell        Rect
}

func NewTriangleBumper(name string, x, y int, o Orientation) (*TriangleBumper, error) {
	if err := checkCell(name, x, y); err != nil {
		return nil, err
	}
	if !o.Valid() {
		return nil, configErr(name, ErrBadOrientation)
	}

	fx, fy := float64(x), float64(y)
	var edges []geom.Segment
	switch o {
	case Deg0:
		edges = []geom.Segment{
			geom.Seg(fx, fy, fx+1, fy),
			geom.Seg(fx, fy, fx, fy+1),
			geom.Seg(fx, fy+1, fx+1, fy),
		}
	case Deg90:
		edges = []geom.Segment{
			geom.Seg(fx+1, fy, fx+1, fy+1),
			geom.Seg(fx, fy, fx+1, fy),
			geom.Seg(fx, fy, fx+1, fy+1),
		}
	case Deg180:
		edges = []geom.Segment{
			geom.Seg(fx, fy+1, fx+1, fy+1),
			geom.Seg(fx+1, fy, fx+1, fy+1),
			geom.Seg(fx, fy+1, fx+1, fy),
		}
	case Deg270:
		edges = []geom.Segment{
			geom.Seg(fx, fy, fx, fy+1),
			geom.Seg(fx, fy+1, fx+1, fy+1),
			geom.Seg(fx, fy, fx+1, fy+1),
		}
	}

	return &TriangleBumper{
		shape:       newShape(name, geom.V(fx, fy), edges...),
		orientation: o,
		cell:        Rect{X: x, Y: y, W: 1, H: 1},
	}, nil
}

func (t *TriangleBumper) Kind() Kind               { return KindTriangle }
func (t *TriangleBumper) Color() Color             { return Orange }
func (t *TriangleBumper) Footprint() Rect          { return t.cell }
func (t *TriangleBumper) Orientation() Orientation { return t.orientation }

func (t *TriangleBumper) TimeUntilCollision(b *Ball) float64 { return t.timeUntil(b) }

func (t *TriangleBumper) Collision(b *Ball) {
	t.bounce(b)
	t.Trigger()
}

func (t *TriangleBumper) Trigger() bool { return t.fire() }
func (t *TriangleBumper) Action() bool  { return false }
