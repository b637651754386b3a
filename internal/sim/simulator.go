package sim

import (
	"context"
	"fmt"
	"math"

	"github.com/san-kum/flingsim/internal/board"
)

type Simulator struct {
	stepper   *Stepper
	observers []Observer
}

func New(b *board.Board) *Simulator {
	return &Simulator{
		stepper:   NewStepper(b),
		observers: make([]Observer, 0),
	}
}

func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }

func (s *Simulator) Stepper() *Stepper { return s.stepper }

func (s *Simulator) Board() *board.Board { return s.stepper.Board() }

// Frame advances the board by dt and notifies observers. The live view calls
// it with wall-clock deltas.
func (s *Simulator) Frame(dt float64) {
	s.stepper.Step(dt)
	for _, obs := range s.observers {
		obs.OnFrame(s.stepper.Board(), s.stepper.Now())
	}
}

// Run advances the board with a fixed dt until cfg.Duration has elapsed.
func (s *Simulator) Run(ctx context.Context, cfg Config) (*Result, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	steps := int(math.Round(cfg.Duration / cfg.Dt))
	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			return s.result(), ctx.Err()
		default:
		}
		s.Frame(cfg.Dt)
	}
	return s.result(), nil
}

func (s *Simulator) result() *Result {
	stats := s.stepper.Stats()
	res := &Result{
		Frames:     stats.Frames,
		Time:       s.stepper.Now(),
		Collisions: stats.Collisions,
	}
	for _, b := range s.stepper.Board().Balls() {
		if b.Absorbed() {
			res.Absorbed++
		}
	}
	return res
}

func validateConfig(cfg Config) error {
	if cfg.Dt <= 0 {
		return fmt.Errorf("dt must be positive, got %f", cfg.Dt)
	}
	if cfg.Duration <= 0 {
		return fmt.Errorf("duration must be positive, got %f", cfg.Duration)
	}
	return nil
}
