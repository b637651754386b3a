// Package board models a flingball board: balls, the fixed gadgets they bounce
// off, and the trigger wiring between gadgets.
package board

import (
	"math"

	"github.com/san-kum/flingsim/internal/geom"
	"github.com/san-kum/flingsim/internal/physics"
	"go.uber.org/zap"
)

const (
	// Size is the side length of the square playing area.
	Size = 20

	DefaultGravity   = 25.0
	DefaultFriction1 = 0.025
	DefaultFriction2 = 0.025
)

// Params are the fixed coefficients of a board.
type Params struct {
	Name      string
	Gravity   float64
	Friction1 float64
	Friction2 float64
	Logger    *zap.Logger
}

func DefaultParams(name string) Params {
	return Params{
		Name:      name,
		Gravity:   DefaultGravity,
		Friction1: DefaultFriction1,
		Friction2: DefaultFriction2,
	}
}

// Board owns its gadgets, balls and outer wall for the lifetime of a
// simulation. It must not be stepped by two goroutines at once.
type Board struct {
	reg       *Registry
	name      string
	gravity   float64
	friction1 float64
	friction2 float64
	walls     *OuterWall
	gadgets   []Gadget
	balls     []*Ball
	obstacles []Gadget
	log       *zap.Logger
}

// New validates and assembles a board. Names must be unique across gadgets
// and balls, and gadget footprints must not overlap.
func New(p Params, gadgets []Gadget, balls []*Ball) (*Board, error) {
	if p.Name == "" {
		return nil, configErr("board", ErrEmptyName)
	}
	for _, c := range [...]float64{p.Gravity, p.Friction1, p.Friction2} {
		if !(c >= 0) || math.IsInf(c, 1) {
			return nil, configErr(p.Name, ErrNegativeCoefficient)
		}
	}

	b := &Board{
		reg:       NewRegistry(),
		name:      p.Name,
		gravity:   p.Gravity,
		friction1: p.Friction1,
		friction2: p.Friction2,
		walls:     NewOuterWall(Size),
		log:       p.Logger,
	}
	if b.log == nil {
		b.log = zap.NewNop()
	}

	for i, g := range gadgets {
		if err := b.reg.Register(g); err != nil {
			return nil, err
		}
		for _, other := range gadgets[:i] {
			if g.Footprint().Intersects(other.Footprint()) {
				return nil, configErr(g.Name(), ErrOverlap)
			}
		}
	}
	for _, ball := range balls {
		if err := b.reg.Register(ball); err != nil {
			return nil, err
		}
	}

	b.gadgets = append([]Gadget(nil), gadgets...)
	b.balls = append([]*Ball(nil), balls...)
	b.obstacles = append(append([]Gadget(nil), gadgets...), b.walls)

	b.log.Debug("board assembled",
		zap.String("board", b.name),
		zap.Int("gadgets", len(b.gadgets)),
		zap.Int("balls", len(b.balls)),
	)
	return b, nil
}

func (b *Board) Name() string       { return b.name }
func (b *Board) Gravity() float64   { return b.gravity }
func (b *Board) Friction1() float64 { return b.friction1 }
func (b *Board) Friction2() float64 { return b.friction2 }
func (b *Board) Size() float64      { return Size }
func (b *Board) Walls() *OuterWall  { return b.walls }

func (b *Board) Gadgets() []Gadget {
	return append([]Gadget(nil), b.gadgets...)
}

func (b *Board) Balls() []*Ball {
	return append([]*Ball(nil), b.balls...)
}

func (b *Board) Lookup(name string) (Entity, bool) { return b.reg.Lookup(name) }

// Wire connects cause to effect. Both must already be on the board.
func (b *Board) Wire(cause, effect string) error {
	if err := b.reg.Wire(cause, effect); err != nil {
		return err
	}
	b.log.Debug("trigger wired", zap.String("cause", cause), zap.String("effect", effect))
	return nil
}

func (b *Board) Triggers() []Edge { return b.reg.Edges() }

// NextCollision scans every gadget and the outer wall for the one ball will
// hit first under its current velocity. It returns a nil gadget and
// physics.NoCollision when nothing is ahead.
func (b *Board) NextCollision(ball *Ball) (Gadget, float64) {
	var next Gadget
	best := physics.NoCollision
	for _, g := range b.obstacles {
		if t := g.TimeUntilCollision(ball); t < best {
			next, best = g, t
		}
	}
	return next, best
}

// Location is the top-left corner of the playing area.
func (b *Board) Location() geom.Vect { return b.walls.Location() }
