package metrics

import (
	"math"

	"github.com/san-kum/flingsim/internal/board"
)

// Mechanical is the kinetic plus potential energy per unit mass of the free
// balls on b. Height is measured up from the bottom wall.
func Mechanical(b *board.Board) float64 {
	var total float64
	free(b, func(ball *board.Ball) {
		v := ball.Velocity()
		total += 0.5*v.Dot(v) + b.Gravity()*(b.Size()-ball.Location().Y)
	})
	return total
}

// Energy is the mean mechanical energy over the observed frames.
type Energy struct {
	name   string
	frames int
	sum    float64
}

func NewEnergy() *Energy {
	return &Energy{name: "energy"}
}

func (e *Energy) Name() string { return e.name }

func (e *Energy) OnFrame(b *board.Board, t float64) {
	e.sum += Mechanical(b)
	e.frames++
}

func (e *Energy) Value() float64 {
	if e.frames == 0 {
		return 0
	}
	return e.sum / float64(e.frames)
}

func (e *Energy) Reset() {
	e.sum = 0
	e.frames = 0
}

// EnergyDrift is the largest change of mechanical energy relative to the
// first observed frame. Friction and absorbers both drain energy, so only a
// frictionless board without absorbers should stay near zero.
type EnergyDrift struct {
	name     string
	first    float64
	last     float64
	maxDrift float64
	frames   int
}

func NewEnergyDrift() *EnergyDrift {
	return &EnergyDrift{name: "energy_drift"}
}

func (e *EnergyDrift) Name() string { return e.name }

func (e *EnergyDrift) OnFrame(b *board.Board, t float64) {
	energy := Mechanical(b)
	if e.frames == 0 {
		e.first = energy
	}
	e.last = energy
	e.frames++

	drift := math.Abs(energy - e.first)
	if e.first != 0 {
		drift /= math.Abs(e.first)
	}
	if drift > e.maxDrift {
		e.maxDrift = drift
	}
}

func (e *EnergyDrift) Value() float64 { return e.maxDrift }

func (e *EnergyDrift) Current() float64 { return e.last }

func (e *EnergyDrift) Reset() {
	e.first = 0
	e.last = 0
	e.maxDrift = 0
	e.frames = 0
}
