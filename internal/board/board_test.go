package board_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/flingsim/internal/board"
	"github.com/san-kum/flingsim/internal/geom"
	"github.com/san-kum/flingsim/internal/physics"
)

const tol = 1e-6

func mustBall(name string, x, y, vx, vy float64) *board.Ball {
	b, err := board.NewBall(name, x, y, vx, vy)
	Expect(err).NotTo(HaveOccurred())
	return b
}

func mustBoard(gadgets []board.Gadget, balls ...*board.Ball) *board.Board {
	b, err := board.New(board.DefaultParams("test"), gadgets, balls)
	Expect(err).NotTo(HaveOccurred())
	return b
}

func expectVelocity(b *board.Ball, want geom.Vect) {
	got := b.Velocity()
	ExpectWithOffset(1, got.X).To(BeNumerically("~", want.X, tol), "vx of %s", b.Name())
	ExpectWithOffset(1, got.Y).To(BeNumerically("~", want.Y, tol), "vy of %s", b.Name())
}

var _ = Describe("Bumpers", func() {
	It("reflects a ball falling onto the top of a square bumper", func() {
		sq, err := board.NewSquareBumper("sq", 0, 0)
		Expect(err).NotTo(HaveOccurred())
		ball := mustBall("b", 1, 1, 0, -1)
		mustBoard([]board.Gadget{sq}, ball)

		sq.Collision(ball)
		expectVelocity(ball, geom.V(0, 1))
		Expect(sq.Trigger()).To(BeFalse())
	})

	It("reflects off the hypotenuse of a 270 degree triangle", func() {
		tri, err := board.NewTriangleBumper("tri", 0, 18, board.Deg270)
		Expect(err).NotTo(HaveOccurred())
		ball := mustBall("b", 2, 17, -1, 1)
		mustBoard([]board.Gadget{tri}, ball)

		t := tri.TimeUntilCollision(ball)
		Expect(t).To(BeNumerically("~", 1.5-0.25/1.4142135623730951, 1e-9))

		ball.Advance(t)
		tri.Collision(ball)
		expectVelocity(ball, geom.V(1, -1))
	})

	It("bounces off a corner point along the line of centers", func() {
		sq, err := board.NewSquareBumper("sq", 5, 5)
		Expect(err).NotTo(HaveOccurred())
		ball := mustBall("b", 4, 4, 1, 1)

		t := sq.TimeUntilCollision(ball)
		Expect(t).To(BeNumerically("~", 1-0.25/1.4142135623730951, 1e-9))
		ball.Advance(t)
		sq.Collision(ball)
		expectVelocity(ball, geom.V(-1, -1))
	})

	It("rejects orientations that are not a multiple of 90", func() {
		_, err := board.NewTriangleBumper("tri", 3, 3, board.Orientation(45))
		Expect(err).To(MatchError(board.ErrBadOrientation))
	})

	It("reports the circle bumper center as its location", func() {
		c, err := board.NewCircleBumper("c", 5, 5)
		Expect(err).NotTo(HaveOccurred())
		Expect(c.Location()).To(Equal(geom.V(5.5, 5.5)))
		Expect(c.Edges()).To(BeEmpty())
		Expect(c.Shape().Radius).To(Equal(board.CircleBumperRadius))
	})

	It("leaves a departing ball alone when a circle bumper is hit", func() {
		c, err := board.NewCircleBumper("c", 5, 5)
		Expect(err).NotTo(HaveOccurred())

		away := mustBall("away", 5.5, 4.5, 0, -1)
		c.Collision(away)
		expectVelocity(away, geom.V(0, -1))

		leaving := mustBall("leaving", 5.5, 4.9, 0, -1)
		c.Collision(leaving)
		expectVelocity(leaving, geom.V(0, -1))
	})

	It("pushes a ball sunk into a circle bumper back out", func() {
		c, err := board.NewCircleBumper("c", 5, 5)
		Expect(err).NotTo(HaveOccurred())

		sunk := mustBall("sunk", 5.5, 4.9, 0, 1)
		Expect(c.TimeUntilCollision(sunk)).To(Equal(physics.NoCollision))
		c.Collision(sunk)
		expectVelocity(sunk, geom.V(0, -1))
	})

	It("lets balls pass through each other", func() {
		a := mustBall("a", 5, 5, 1, 0)
		b := mustBall("b", 5.2, 5, -1, 0)
		Expect(b.TimeUntilCollision(a)).To(Equal(physics.NoCollision))
		b.Collision(a)
		expectVelocity(a, geom.V(1, 0))
		Expect(b.Trigger()).To(BeFalse())
		Expect(b.Action()).To(BeFalse())
		Expect(b.SetTrigger("a")).To(BeFalse())
	})
})

var _ = Describe("Outer wall", func() {
	var wall *board.OuterWall

	BeforeEach(func() {
		wall = board.NewOuterWall(board.Size)
	})

	It("reflects a ball heading into the left wall", func() {
		ball := mustBall("b", 1, 1, -1, 0)
		wall.Collision(ball)
		expectVelocity(ball, geom.V(1, 0))
	})

	It("does not mirror both axes when a ball heads into a corner", func() {
		ball := mustBall("b", 1, 1, -1, -1)
		wall.Collision(ball)
		Expect(ball.Velocity().ApproxEqual(geom.V(1, 1), tol)).To(BeFalse())
		expectVelocity(ball, geom.V(-1, 1))
	})

	It("reflects only the component facing the wall it hits first", func() {
		ball := mustBall("b", 1, 1.5, -1, -1)
		ball.Advance(wall.TimeUntilCollision(ball))
		wall.Collision(ball)
		expectVelocity(ball, geom.V(1, -1))
	})

	It("treats the board corners as part of the wall", func() {
		Expect(wall.Edges()).To(HaveLen(4))
		Expect(wall.Footprint()).To(Equal(board.Rect{W: board.Size, H: board.Size}))
		Expect(wall.Kind()).To(Equal(board.KindWall))
	})
})

var _ = Describe("Absorber", func() {
	var abs *board.Absorber

	BeforeEach(func() {
		var err error
		abs, err = board.NewAbsorber("abs", 17, 18, 2, 1)
		Expect(err).NotTo(HaveOccurred())
	})

	It("parks captured balls in its bottom right corner", func() {
		ball := mustBall("b", 18, 17, 0, 1)
		mustBoard([]board.Gadget{abs}, ball)

		abs.Collision(ball)
		Expect(ball.Absorbed()).To(BeTrue())
		Expect(ball.Location()).To(Equal(geom.V(18.75, 18.75)))
		expectVelocity(ball, geom.Zero)
		Expect(abs.Queued()).To(ConsistOf(ball))
	})

	It("keeps a single ball in flight when wired to itself", func() {
		b1 := mustBall("b1", 18, 17, 0, 1)
		b2 := mustBall("b2", 18, 17, 0, 1)
		b3 := mustBall("b3", 18, 17, 0, 1)
		bd := mustBoard([]board.Gadget{abs}, b1, b2, b3)
		Expect(bd.Wire("abs", "abs")).To(Succeed())

		abs.Collision(b1)
		abs.Collision(b2)
		abs.Collision(b3)

		expectVelocity(b1, geom.V(0, -board.LaunchSpeed))
		Expect(b1.Absorbed()).To(BeFalse())
		expectVelocity(b2, geom.Zero)
		expectVelocity(b3, geom.Zero)
		Expect(abs.State()).To(Equal(board.Releasing))
		Expect(abs.Queued()).To(Equal([]*board.Ball{b2, b3}))
	})

	It("releases balls in the order they were captured", func() {
		balls := []*board.Ball{
			mustBall("b1", 5, 17, 0, 1),
			mustBall("b2", 10, 17, 0, 1),
			mustBall("b3", 15, 17, 0, 1),
		}
		mustBoard([]board.Gadget{abs}, balls...)
		for _, b := range balls {
			abs.Collision(b)
		}

		for _, want := range balls {
			Expect(abs.Action()).To(BeTrue())
			Expect(want.Absorbed()).To(BeFalse())
			expectVelocity(want, geom.V(0, -board.LaunchSpeed))

			Expect(abs.Action()).To(BeFalse(), "second release while %s is in flight", want.Name())
			want.MoveTo(geom.V(10, 10))
			Expect(abs.State()).To(Equal(board.Idle))
		}
		Expect(abs.Action()).To(BeFalse())
	})

	It("ignores balls already inside its footprint", func() {
		ball := mustBall("b", 18, 17, 0, 1)
		mustBoard([]board.Gadget{abs}, ball)
		abs.Collision(ball)
		Expect(abs.Action()).To(BeTrue())

		Expect(abs.TimeUntilCollision(ball)).To(Equal(physics.NoCollision))
		abs.Collision(ball)
		Expect(ball.Absorbed()).To(BeFalse())
		Expect(abs.Queued()).To(BeEmpty())
	})

	It("rejects empty and out of bounds footprints", func() {
		_, err := board.NewAbsorber("a", 0, 0, 0, 1)
		Expect(err).To(MatchError(board.ErrBadSize))
		_, err = board.NewAbsorber("a", 15, 19, 6, 2)
		Expect(err).To(MatchError(board.ErrOutOfBounds))
	})
})

var _ = Describe("Triggers", func() {
	It("fires an absorber when a wired circle bumper is hit", func() {
		circle, err := board.NewCircleBumper("circle", 5, 5)
		Expect(err).NotTo(HaveOccurred())
		abs, err := board.NewAbsorber("abs", 17, 18, 2, 1)
		Expect(err).NotTo(HaveOccurred())

		ball1 := mustBall("ball1", 5, 4, 0, 1)
		ball2 := mustBall("ball2", 17, 18, 0, 0)
		bd := mustBoard([]board.Gadget{circle, abs}, ball1, ball2)
		Expect(bd.Wire("circle", "abs")).To(Succeed())

		abs.Collision(ball2)
		Expect(ball2.Absorbed()).To(BeTrue())

		before := ball1.Velocity()
		ball1.Advance(circle.TimeUntilCollision(ball1))
		circle.Collision(ball1)

		expectVelocity(ball2, geom.V(0, -board.LaunchSpeed))
		Expect(ball1.Velocity().ApproxEqual(before, tol)).To(BeFalse())
		Expect(bd.Triggers()).To(ConsistOf(board.Edge{Cause: "circle", Effect: "abs"}))
	})

	It("sets a trigger only once", func() {
		sq, err := board.NewSquareBumper("sq", 1, 1)
		Expect(err).NotTo(HaveOccurred())
		Expect(sq.Trigger()).To(BeFalse())
		Expect(sq.SetTrigger("x")).To(BeTrue())
		Expect(sq.SetTrigger("y")).To(BeFalse())
		Expect(sq.Target()).To(Equal("x"))
	})

	It("reports wiring errors", func() {
		sq, _ := board.NewSquareBumper("sq", 1, 1)
		abs, _ := board.NewAbsorber("abs", 0, 18, 20, 2)
		bd := mustBoard([]board.Gadget{sq, abs}, mustBall("ball", 10, 10, 0, 0))

		Expect(bd.Wire("nope", "abs")).To(MatchError(board.ErrUnknownName))
		Expect(bd.Wire("sq", "nope")).To(MatchError(board.ErrUnknownName))
		Expect(bd.Wire("ball", "abs")).To(MatchError(board.ErrNoTrigger))
		Expect(bd.Wire("sq", "abs")).To(Succeed())
		Expect(bd.Wire("sq", "sq")).To(MatchError(board.ErrTriggerSet))
	})
})

var _ = Describe("Board construction", func() {
	It("rejects invalid parameters", func() {
		p := board.DefaultParams("")
		_, err := board.New(p, nil, nil)
		Expect(err).To(MatchError(board.ErrEmptyName))

		p = board.DefaultParams("b")
		p.Friction1 = -1
		_, err = board.New(p, nil, nil)
		Expect(err).To(MatchError(board.ErrNegativeCoefficient))
	})

	DescribeTable("rejects non-finite coefficients",
		func(set func(*board.Params)) {
			p := board.DefaultParams("b")
			set(&p)
			_, err := board.New(p, nil, []*board.Ball{mustBall("ball", 10, 10, 1, 0)})
			Expect(err).To(MatchError(board.ErrNegativeCoefficient))
		},
		Entry("NaN gravity", func(p *board.Params) { p.Gravity = math.NaN() }),
		Entry("+Inf gravity", func(p *board.Params) { p.Gravity = math.Inf(1) }),
		Entry("+Inf friction1", func(p *board.Params) { p.Friction1 = math.Inf(1) }),
		Entry("-Inf friction2", func(p *board.Params) { p.Friction2 = math.Inf(-1) }),
		Entry("NaN friction2", func(p *board.Params) { p.Friction2 = math.NaN() }),
	)

	It("rejects duplicate names across gadgets and balls", func() {
		sq, _ := board.NewSquareBumper("x", 1, 1)
		_, err := board.New(board.DefaultParams("b"), []board.Gadget{sq}, []*board.Ball{mustBall("x", 5, 5, 0, 0)})
		Expect(err).To(MatchError(board.ErrDuplicateName))
	})

	It("rejects overlapping gadgets", func() {
		sq, _ := board.NewSquareBumper("sq", 3, 3)
		abs, _ := board.NewAbsorber("abs", 2, 2, 4, 4)
		_, err := board.New(board.DefaultParams("b"), []board.Gadget{sq, abs}, nil)
		Expect(err).To(MatchError(board.ErrOverlap))

		var cfgErr *board.ConfigError
		Expect(err).To(BeAssignableToTypeOf(cfgErr))
	})

	It("rejects balls outside the playing area", func() {
		_, err := board.NewBall("b", 0.1, 10, 0, 0)
		Expect(err).To(MatchError(board.ErrOutOfBounds))
		_, err = board.NewBall("", 10, 10, 0, 0)
		Expect(err).To(MatchError(board.ErrEmptyName))
	})

	It("finds the nearest obstacle along the ball's path", func() {
		sq, _ := board.NewSquareBumper("sq", 10, 5)
		ball := mustBall("b", 10.5, 10, 0, -1)
		bd := mustBoard([]board.Gadget{sq}, ball)

		g, t := bd.NextCollision(ball)
		Expect(g).To(BeIdenticalTo(board.Gadget(sq)))
		Expect(t).To(BeNumerically("~", 3.75, tol))

		ball.SetVelocity(geom.Zero)
		g, t = bd.NextCollision(ball)
		Expect(g).To(BeNil())
		Expect(t).To(Equal(physics.NoCollision))
	})
})
