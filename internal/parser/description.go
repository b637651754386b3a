// Package parser reads board layouts from the line-oriented .fb format or
// from YAML and builds them into boards.
package parser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/san-kum/flingsim/internal/board"
	"go.uber.org/zap"
)

// Gadget kinds as written in board files.
const (
	SquareBumper   = "squareBumper"
	CircleBumper   = "circleBumper"
	TriangleBumper = "triangleBumper"
	Absorber       = "absorber"
)

// Description is a board layout as read from a file, before validation.
type Description struct {
	Name      string       `yaml:"name"`
	Gravity   float64      `yaml:"gravity"`
	Friction1 float64      `yaml:"friction1"`
	Friction2 float64      `yaml:"friction2"`
	Balls     []BallSpec   `yaml:"balls"`
	Gadgets   []GadgetSpec `yaml:"gadgets"`
	Fire      []FireSpec   `yaml:"fire,omitempty"`
}

type BallSpec struct {
	Name      string  `yaml:"name"`
	X         float64 `yaml:"x"`
	Y         float64 `yaml:"y"`
	XVelocity float64 `yaml:"xVelocity"`
	YVelocity float64 `yaml:"yVelocity"`
}

// GadgetSpec describes any gadget. Orientation applies to triangle bumpers,
// Width and Height to absorbers.
type GadgetSpec struct {
	Kind        string `yaml:"kind"`
	Name        string `yaml:"name"`
	X           int    `yaml:"x"`
	Y           int    `yaml:"y"`
	Orientation int    `yaml:"orientation,omitempty"`
	Width       int    `yaml:"width,omitempty"`
	Height      int    `yaml:"height,omitempty"`
}

// FireSpec wires Trigger's collisions to Action's action.
type FireSpec struct {
	Trigger string `yaml:"trigger"`
	Action  string `yaml:"action"`
}

func DefaultDescription(name string) *Description {
	return &Description{
		Name:      name,
		Gravity:   board.DefaultGravity,
		Friction1: board.DefaultFriction1,
		Friction2: board.DefaultFriction2,
	}
}

// Build validates the description and assembles the board it describes.
func (d *Description) Build(log *zap.Logger) (*board.Board, error) {
	gadgets := make([]board.Gadget, 0, len(d.Gadgets))
	for _, gs := range d.Gadgets {
		g, err := gs.build()
		if err != nil {
			return nil, err
		}
		gadgets = append(gadgets, g)
	}

	balls := make([]*board.Ball, 0, len(d.Balls))
	for _, bs := range d.Balls {
		b, err := board.NewBall(bs.Name, bs.X, bs.Y, bs.XVelocity, bs.YVelocity)
		if err != nil {
			return nil, err
		}
		balls = append(balls, b)
	}

	b, err := board.New(board.Params{
		Name:      d.Name,
		Gravity:   d.Gravity,
		Friction1: d.Friction1,
		Friction2: d.Friction2,
		Logger:    log,
	}, gadgets, balls)
	if err != nil {
		return nil, err
	}

	for _, f := range d.Fire {
		if err := b.Wire(f.Trigger, f.Action); err != nil {
			return nil, fmt.Errorf("fire %s -> %s: %w", f.Trigger, f.Action, err)
		}
	}
	return b, nil
}

func (g GadgetSpec) build() (board.Gadget, error) {
	switch g.Kind {
	case SquareBumper:
		return board.NewSquareBumper(g.Name, g.X, g.Y)
	case CircleBumper:
		return board.NewCircleBumper(g.Name, g.X, g.Y)
	case TriangleBumper:
		return board.NewTriangleBumper(g.Name, g.X, g.Y, board.Orientation(g.Orientation))
	case Absorber:
		return board.NewAbsorber(g.Name, g.X, g.Y, g.Width, g.Height)
	default:
		return nil, fmt.Errorf("parser: unknown gadget kind %q", g.Kind)
	}
}

// FB renders the description in the .fb format.
func (d *Description) FB() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "board name=%s gravity=%s friction1=%s friction2=%s\n",
		d.Name, ftoa(d.Gravity), ftoa(d.Friction1), ftoa(d.Friction2))

	for _, b := range d.Balls {
		fmt.Fprintf(&sb, "ball name=%s x=%s y=%s xVelocity=%s yVelocity=%s\n",
			b.Name, ftoa(b.X), ftoa(b.Y), ftoa(b.XVelocity), ftoa(b.YVelocity))
	}
	for _, g := range d.Gadgets {
		fmt.Fprintf(&sb, "%s name=%s x=%d y=%d", g.Kind, g.Name, g.X, g.Y)
		switch g.Kind {
		case TriangleBumper:
			fmt.Fprintf(&sb, " orientation=%d", g.Orientation)
		case Absorber:
			fmt.Fprintf(&sb, " width=%d height=%d", g.Width, g.Height)
		}
		sb.WriteByte('\n')
	}
	for _, f := range d.Fire {
		fmt.Fprintf(&sb, "fire trigger=%s action=%s\n", f.Trigger, f.Action)
	}
	return sb.String()
}

func ftoa(f float64) string { return strconv.FormatFloat(f, 'g', -1, 64) }
