package physics

import (
	"math"

	"github.com/san-kum/flingsim/internal/geom"
)

// NoCollision is returned when no future contact exists.
const NoCollision = math.MaxFloat64 / 2

// ContactTolerance is how far a ball may sit inside an obstacle and still count
// as touching it rather than overlapping it.
const ContactTolerance = 1e-9

// TimeUntilWallCollision returns the time until ball, moving at vel, first
// touches seg. Only contacts within the segment's extent count; its endpoints
// are handled as zero-radius circles by the caller.
func TimeUntilWallCollision(seg geom.Segment, ball geom.Circle, vel geom.Vect) float64 {
	length := seg.Length()
	if length == 0 {
		return TimeUntilCircleCollision(geom.Circle{Center: seg.P1}, ball, vel)
	}

	dir := seg.Direction()
	normal := dir.Perp()

	dist := ball.Center.Sub(seg.P1).Dot(normal)
	approach := vel.Dot(normal)
	if dist < 0 {
		dist, approach = -dist, -approach
	}
	if approach >= 0 {
		return NoCollision
	}

	gap := dist - ball.Radius
	if gap < -ContactTolerance {
		return NoCollision
	}

	t := math.Max(gap/-approach, 0)
	along := ball.Center.Add(vel.Scale(t)).Sub(seg.P1).Dot(dir)
	if along < -ContactTolerance || along > length+ContactTolerance {
		return NoCollision
	}
	return t
}

// TimeUntilCircleCollision returns the time until ball, moving at vel, first
// touches the fixed circle obstacle. A zero-radius obstacle is a corner point.
func TimeUntilCircleCollision(obstacle, ball geom.Circle, vel geom.Vect) float64 {
	rel := ball.Center.Sub(obstacle.Center)
	reach := obstacle.Radius + ball.Radius

	a := vel.Dot(vel)
	b := 2 * rel.Dot(vel)
	if a == 0 || b >= 0 {
		return NoCollision
	}
	if rel.Length()-reach < -ContactTolerance {
		return NoCollision
	}

	c := rel.Dot(rel) - reach*reach
	disc := b*b - 4*a*c
	if disc < 0 {
		return NoCollision
	}
	return math.Max((-b-math.Sqrt(disc))/(2*a), 0)
}

// ReflectWall mirrors vel about the normal of seg. Speed is preserved.
func ReflectWall(seg geom.Segment, vel geom.Vect) geom.Vect {
	dir := seg.Direction()
	if dir == geom.Zero {
		return vel
	}
	return dir.Scale(2 * vel.Dot(dir)).Sub(vel)
}

// ReflectCircle mirrors vel about the line through the obstacle center and the
// ball center at contact. Speed is preserved.
func ReflectCircle(center, ballCenter, vel geom.Vect) geom.Vect {
	n := ballCenter.Sub(center).Unit()
	if n == geom.Zero {
		return vel
	}
	return vel.Sub(n.Scale(2 * vel.Dot(n)))
}
