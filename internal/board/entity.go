package board

import (
	"math"

	"github.com/san-kum/flingsim/internal/geom"
	"github.com/san-kum/flingsim/internal/physics"
)

// Entity is the capability set shared by balls and every gadget variant.
type Entity interface {
	Name() string
	Kind() Kind
	// Location is the center for circular shapes and the top-left corner of
	// the bounding box otherwise.
	Location() geom.Vect
	// Edges is empty for circular shapes.
	Edges() []geom.Segment
	Color() Color

	// TimeUntilCollision returns the time until b touches this entity under
	// its current velocity, or physics.NoCollision.
	TimeUntilCollision(b *Ball) float64
	// Collision applies one physical collision with b, then calls Trigger.
	Collision(b *Ball)
	// Trigger fires the wired target's Action and reports whether a target
	// was wired.
	Trigger() bool
	// Action performs this entity's triggered behavior, if it has one.
	Action() bool
	// SetTrigger wires target as the effect of this entity. It succeeds only
	// once per entity.
	SetTrigger(target string) bool
}

// Gadget is a fixed entity on the board. The variant set is closed: square,
// circle and triangle bumpers, absorbers and the outer wall.
type Gadget interface {
	Entity
	// Footprint is the grid area the gadget occupies.
	Footprint() Rect
	// Target is the name of the wired effect, or "" when unwired.
	Target() string

	bind(r *Registry)
}

// link is a one-shot trigger edge resolved through the registry at fire time.
type link struct {
	reg    *Registry
	target string
}

func (l *link) bind(r *Registry) { l.reg = r }

func (l *link) Target() string { return l.target }

func (l *link) SetTrigger(target string) bool {
	if l.target != "" || target == "" {
		return false
	}
	l.target = target
	return true
}

func (l *link) fire() bool {
	if l.target == "" {
		return false
	}
	if l.reg != nil {
		if e, ok := l.reg.Lookup(l.target); ok {
			e.Action()
		}
	}
	return true
}

// shape is polygon geometry: a fixed set of edges plus their endpoints, which
// are collided with as zero-radius circles.
type shape struct {
	name    string
	origin  geom.Vect
	edges   []geom.Segment
	corners []geom.Vect
}

func newShape(name string, origin geom.Vect, edges ...geom.Segment) shape {
	s := shape{name: name, origin: origin, edges: edges}
	seen := make(map[geom.Vect]bool, 2*len(edges))
	for _, e := range edges {
		for _, p := range [2]geom.Vect{e.P1, e.P2} {
			if !seen[p] {
				seen[p] = true
				s.corners = append(s.corners, p)
			}
		}
	}
	return s
}

func (s *shape) Name() string { return s.name }

func (s *shape) Location() geom.Vect { return s.origin }

func (s *shape) Edges() []geom.Segment {
	out := make([]geom.Segment, len(s.edges))
	copy(out, s.edges)
	return out
}

// nearest finds the edge or corner b reaches first and the velocity b would
// leave it with.
func (s *shape) nearest(b *Ball) (float64, geom.Vect) {
	best, vel := physics.NoCollision, b.vel
	ball := b.Circle()

	for _, e := range s.edges {
		if t := physics.TimeUntilWallCollision(e, ball, b.vel); t < best {
			best, vel = t, physics.ReflectWall(e, b.vel)
		}
	}
	for _, c := range s.corners {
		if t := physics.TimeUntilCircleCollision(geom.Circle{Center: c}, ball, b.vel); t < best {
			contact := ball.Center.Add(b.vel.Scale(t))
			best, vel = t, physics.ReflectCircle(c, contact, b.vel)
		}
	}
	return best, vel
}

func (s *shape) timeUntil(b *Ball) float64 {
	t, _ := s.nearest(b)
	return t
}

// embedded picks a reflection for a ball that already overlaps the shape:
// the closest edge, preferring the one its velocity meets most squarely.
func (s *shape) embedded(b *Ball) (geom.Vect, bool) {
	best, square := math.Inf(1), -1.0
	vel, found := b.vel, false
	for _, e := range s.edges {
		d := e.Distance(b.center)
		if d > BallRadius {
			continue
		}
		head := math.Abs(b.vel.Dot(e.Direction().Perp()))
		if d < best-physics.ContactTolerance || (d <= best+physics.ContactTolerance && head > square) {
			best, square = d, head
			vel, found = physics.ReflectWall(e, b.vel), true
		}
	}
	return vel, found
}

func (s *shape) bounce(b *Ball) {
	if t, vel := s.nearest(b); t < physics.NoCollision {
		b.vel = vel
		return
	}
	if vel, ok := s.embedded(b); ok {
		b.vel = vel
	}
}
