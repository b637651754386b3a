package sim

import (
	"math"

	"github.com/san-kum/flingsim/internal/board"
	"github.com/san-kum/flingsim/internal/physics"
)

// MaxSubsteps bounds the collisions resolved for one ball within one frame.
const MaxSubsteps = 64

// Stats counts work done by a Stepper.
type Stats struct {
	Frames     int
	Collisions int
}

// Stepper advances a board one frame at a time against its own simulated
// clock. Step must not be called concurrently.
type Stepper struct {
	board *board.Board
	now   float64
	stats Stats
}

func NewStepper(b *board.Board) *Stepper {
	return &Stepper{board: b}
}

func (s *Stepper) Board() *board.Board { return s.board }

// Now is the simulated time in seconds.
func (s *Stepper) Now() float64 { return s.now }

func (s *Stepper) Stats() Stats { return s.stats }

// Step advances every free ball by dt seconds. Collisions predicted to land
// inside the frame are resolved in time order; gravity and friction are then
// applied once using the whole frame's dt.
func (s *Stepper) Step(dt float64) {
	if !(dt > 0) {
		return
	}
	s.now += dt
	for _, ball := range s.board.Balls() {
		if !ball.Absorbed() {
			s.advance(ball, dt)
		}
	}
	s.stats.Frames++
}

func (s *Stepper) advance(ball *board.Ball, dt float64) {
	collided := false
	if g, at := ball.NextCollision(); g != nil && at <= s.now {
		collided = true
		// A shorter earlier frame can leave the ball short of the contact
		// it was scheduled for.
		if t := g.TimeUntilCollision(ball); t > 0 && t <= dt {
			ball.Advance(t)
		}
		s.collide(g, ball)
		s.resolve(ball, s.now-at)
	}

	if ball.Absorbed() {
		ball.SetNextCollision(nil, physics.NoCollision)
		return
	}

	s.applyForces(ball, dt)

	next, t := s.board.NextCollision(ball)
	at := physics.NoCollision
	if next != nil {
		at = s.now + t
	}
	ball.SetNextCollision(next, at)

	if !collided {
		// Stop at the contact point rather than overshoot into the obstacle.
		step := dt
		if next != nil && t < dt {
			step = t
		}
		ball.Advance(step)
	}
	ball.Clamp(s.board.Size())
}

// resolve spends budget seconds of straight-line motion, colliding with
// whatever the ball reaches along the way.
func (s *Stepper) resolve(ball *board.Ball, budget float64) {
	for i := 0; budget > 0 && !ball.Absorbed() && i < MaxSubsteps; i++ {
		g, t := s.board.NextCollision(ball)
		if g == nil || t >= budget {
			ball.Advance(budget)
			return
		}
		ball.Advance(t)
		s.collide(g, ball)
		budget -= t
	}
}

func (s *Stepper) collide(g board.Gadget, ball *board.Ball) {
	g.Collision(ball)
	s.stats.Collisions++
}

// applyForces adds gravity and then a linear plus quadratic drag.
func (s *Stepper) applyForces(ball *board.Ball, dt float64) {
	v := ball.Velocity()
	v.Y += s.board.Gravity() * dt
	drag := 1 - s.board.Friction1()*dt - s.board.Friction2()*v.Length()*dt
	ball.SetVelocity(v.Scale(math.Max(drag, 0)))
}
