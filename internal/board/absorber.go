package board

import (
	"github.com/san-kum/flingsim/internal/geom"
	"github.com/san-kum/flingsim/internal/physics"
)

// LaunchSpeed is the speed at which an absorber fires a ball straight up.
const LaunchSpeed = 50.0

var launchVelocity = geom.V(0, -LaunchSpeed)

// ReleaseState tracks whether an absorber is still ejecting a ball.
type ReleaseState uint8

const (
	// Idle means no released ball is still inside the footprint.
	Idle ReleaseState = iota
	// Releasing means the last launched ball has not yet left the footprint.
	Releasing
)

func (s ReleaseState) String() string {
	if s == Releasing {
		return "releasing"
	}
	return "idle"
}

// ballQueue is a FIFO of captured balls.
type ballQueue struct {
	balls []*Ball
}

func (q *ballQueue) push(b *Ball) { q.balls = append(q.balls, b) }

func (q *ballQueue) pop() *Ball {
	if len(q.balls) == 0 {
		return nil
	}
	b := q.balls[0]
	q.balls[0] = nil
	q.balls = q.balls[1:]
	return b
}

func (q *ballQueue) len() int { return len(q.balls) }

// Absorber captures every ball that hits it, parks it in its bottom-right
// corner and, when its action fires, launches the earliest captured ball
// straight up. Only one launched ball may be inside the footprint at a time.
type Absorber struct {
	shape
	link
	rect     Rect
	park     geom.Vect
	queue    ballQueue
	state    ReleaseState
	inFlight *Ball
}

func NewAbsorber(name string, x, y, width, height int) (*Absorber, error) {
	if name == "" {
		return nil, configErr("absorber", ErrEmptyName)
	}
	if width <= 0 || height <= 0 {
		return nil, configErr(name, ErrBadSize)
	}
	if x < 0 || y < 0 || x+width > Size || y+height > Size {
		return nil, configErr(name, ErrOutOfBounds)
	}

	fx, fy := float64(x), float64(y)
	fw, fh := float64(width), float64(height)
	return &Absorber{
		shape: newShape(name, geom.V(fx, fy),
			geom.Seg(fx, fy, fx+fw, fy),
			geom.Seg(fx, fy, fx, fy+fh),
			geom.Seg(fx+fw, fy, fx+fw, fy+fh),
			geom.Seg(fx, fy+fh, fx+fw, fy+fh),
		),
		rect: Rect{X: x, Y: y, W: width, H: height},
		park: geom.V(fx+fw-BallRadius, fy+fh-BallRadius),
	}, nil
}

func (a *Absorber) Kind() Kind      { return KindAbsorber }
func (a *Absorber) Color() Color    { return Green }
func (a *Absorber) Footprint() Rect { return a.rect }

// ParkingPoint is where captured balls rest.
func (a *Absorber) ParkingPoint() geom.Vect { return a.park }

// State reports the release state after re-checking the in-flight ball.
func (a *Absorber) State() ReleaseState {
	a.refresh()
	return a.state
}

// Queued returns the captured balls, earliest first.
func (a *Absorber) Queued() []*Ball {
	out := make([]*Ball, a.queue.len())
	copy(out, a.queue.balls)
	return out
}

// Contains reports whether b's center lies strictly inside the footprint.
func (a *Absorber) Contains(b *Ball) bool {
	c := b.center
	return c.X > float64(a.rect.X) && c.X < float64(a.rect.Right()) &&
		c.Y > float64(a.rect.Y) && c.Y < float64(a.rect.Bottom())
}

// refresh returns to Idle once the launched ball has left the footprint.
func (a *Absorber) refresh() {
	if a.state == Releasing && !a.Contains(a.inFlight) {
		a.state, a.inFlight = Idle, nil
	}
}

// covers is Contains including the footprint's boundary.
func (a *Absorber) covers(b *Ball) bool {
	c := b.center
	return c.X >= float64(a.rect.X) && c.X <= float64(a.rect.Right()) &&
		c.Y >= float64(a.rect.Y) && c.Y <= float64(a.rect.Bottom())
}

// TimeUntilCollision never predicts a capture for a ball whose center is on
// or inside the footprint, so a launched ball grazing the top corners on its
// way out is not caught again.
func (a *Absorber) TimeUntilCollision(b *Ball) float64 {
	a.refresh()
	if a.covers(b) {
		return physics.NoCollision
	}
	return a.timeUntil(b)
}

// Collision captures b. Balls already inside the footprint are ignored.
func (a *Absorber) Collision(b *Ball) {
	if a.Contains(b) {
		return
	}
	b.center = a.park
	b.vel = geom.Zero
	b.absorbed = true
	a.queue.push(b)
	a.Trigger()
}

func (a *Absorber) Trigger() bool {
	a.refresh()
	return a.fire()
}

// Action launches the earliest captured ball. It does nothing while the last
// launched ball is still inside the footprint or when nothing is captured.
func (a *Absorber) Action() bool {
	a.refresh()
	if a.state == Releasing || a.queue.len() == 0 {
		return false
	}
	b := a.queue.pop()
	b.vel = launchVelocity
	b.absorbed = false
	a.state, a.inFlight = Releasing, b
	return true
}
