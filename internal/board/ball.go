package board

import (
	"math"

	"github.com/san-kum/flingsim/internal/geom"
	"github.com/san-kum/flingsim/internal/physics"
)

// BallRadius is the fixed radius of every ball.
const BallRadius = 0.25

// Ball is the only moving entity. The stepper and gadget collisions mutate it
// in place every frame.
type Ball struct {
	name     string
	center   geom.Vect
	vel      geom.Vect
	absorbed bool

	next     Gadget
	nextTime float64
}

// NewBall places a ball centered at (x, y) moving at (vx, vy).
func NewBall(name string, x, y, vx, vy float64) (*Ball, error) {
	if name == "" {
		return nil, configErr("ball", ErrEmptyName)
	}
	center, vel := geom.V(x, y), geom.V(vx, vy)
	if !center.IsValid() || !vel.IsValid() ||
		x < BallRadius || x > Size-BallRadius || y < BallRadius || y > Size-BallRadius {
		return nil, configErr(name, ErrOutOfBounds)
	}
	return &Ball{
		name:     name,
		center:   center,
		vel:      vel,
		nextTime: physics.NoCollision,
	}, nil
}

func (b *Ball) Name() string { return b.name }

func (b *Ball) Kind() Kind { return KindBall }

func (b *Ball) Location() geom.Vect { return b.center }

func (b *Ball) Edges() []geom.Segment { return nil }

func (b *Ball) Color() Color { return Blue }

func (b *Ball) Radius() float64 { return BallRadius }

func (b *Ball) Circle() geom.Circle { return geom.Circle{Center: b.center, Radius: BallRadius} }

func (b *Ball) Velocity() geom.Vect { return b.vel }

func (b *Ball) SetVelocity(v geom.Vect) { b.vel = v }

// Absorbed reports whether the ball is parked inside an absorber.
func (b *Ball) Absorbed() bool { return b.absorbed }

func (b *Ball) MoveTo(p geom.Vect) { b.center = p }

// Advance moves the ball in a straight line for dt.
func (b *Ball) Advance(dt float64) {
	b.center = b.center.Add(b.vel.Scale(dt))
}

// Clamp keeps the ball's center inside a board of the given size.
func (b *Ball) Clamp(size float64) {
	b.center.X = math.Max(BallRadius, math.Min(size-BallRadius, b.center.X))
	b.center.Y = math.Max(BallRadius, math.Min(size-BallRadius, b.center.Y))
}

// NextCollision returns the cached gadget and absolute time of the ball's next
// predicted collision. The gadget is nil when none is predicted.
func (b *Ball) NextCollision() (Gadget, float64) { return b.next, b.nextTime }

func (b *Ball) SetNextCollision(g Gadget, at float64) {
	b.next, b.nextTime = g, at
}

// Balls pass through each other.
func (b *Ball) TimeUntilCollision(*Ball) float64 { return physics.NoCollision }

func (b *Ball) Collision(*Ball) {}

func (b *Ball) Trigger() bool { return false }

func (b *Ball) Action() bool { return false }

func (b *Ball) SetTrigger(string) bool { return false }
