// Package physics answers two questions about a moving ball: when will it next
// touch a fixed obstacle, and what is its velocity after bouncing off it.
//
// Obstacles are line segments and circles. Corners of polygonal gadgets are
// modeled as zero-radius circles:
//
//   - [TimeUntilWallCollision] and [ReflectWall] for segments
//   - [TimeUntilCircleCollision] and [ReflectCircle] for circles and corners
//
// Times are relative to now. A ball that will never touch the obstacle gets
// [NoCollision], and contacts closer than [ContactTolerance] count as
// touching:
//
//	t := physics.TimeUntilWallCollision(edge, ball.Circle(), ball.Velocity())
//	if t <= dt {
//	    ball.Advance(t)
//	    ball.SetVelocity(physics.ReflectWall(edge, ball.Velocity()))
//	}
package physics
