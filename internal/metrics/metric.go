// Package metrics collects per-frame statistics about a running board. Every
// metric is a sim.Observer.
package metrics

import (
	"github.com/san-kum/flingsim/internal/board"
	"github.com/san-kum/flingsim/internal/sim"
)

type Metric interface {
	sim.Observer
	Name() string
	Value() float64
	Reset()
}

// Standard returns the metrics reported after a headless run.
func Standard(speedLimit float64) []Metric {
	return []Metric{NewEnergy(), NewEnergyDrift(), NewStability(speedLimit)}
}

// free calls fn for every ball that is not parked in an absorber.
func free(b *board.Board, fn func(*board.Ball)) {
	for _, ball := range b.Balls() {
		if !ball.Absorbed() {
			fn(ball)
		}
	}
}
