package metrics

import (
	"math"
	"testing"

	"github.com/san-kum/flingsim/internal/board"
	"github.com/san-kum/flingsim/internal/sim"
)

func newBoard(t *testing.T, p board.Params, gadgets []board.Gadget, balls ...*board.Ball) *board.Board {
	t.Helper()
	b, err := board.New(p, gadgets, balls)
	if err != nil {
		t.Fatalf("board.New: %v", err)
	}
	return b
}

func newBall(t *testing.T, x, y, vx, vy float64) *board.Ball {
	t.Helper()
	ball, err := board.NewBall("ball", x, y, vx, vy)
	if err != nil {
		t.Fatalf("NewBall: %v", err)
	}
	return ball
}

func frictionless(name string) board.Params {
	return board.Params{Name: name}
}

func TestMechanical(t *testing.T) {
	tests := []struct {
		name    string
		gravity float64
		ball    [4]float64
		want    float64
	}{
		{"kinetic only", 0, [4]float64{10, 10, 3, 4}, 12.5},
		{"potential only", 25, [4]float64{10, 15, 0, 0}, 125},
		{"both", 10, [4]float64{5, 19, 0, -2}, 2 + 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := frictionless("m")
			p.Gravity = tt.gravity
			b := newBoard(t, p, nil, newBall(t, tt.ball[0], tt.ball[1], tt.ball[2], tt.ball[3]))
			if got := Mechanical(b); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Mechanical() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEnergyDriftFrictionless(t *testing.T) {
	b := newBoard(t, frictionless("bouncy"), nil, newBall(t, 10, 10, 3, 1))
	s := sim.New(b)
	drift := NewEnergyDrift()
	mean := NewEnergy()
	s.AddObserver(drift)
	s.AddObserver(mean)

	for i := 0; i < 500; i++ {
		s.Frame(0.04)
	}

	if drift.Value() > 1e-9 {
		t.Errorf("drift = %v, want ~0", drift.Value())
	}
	if math.Abs(mean.Value()-5) > 1e-9 {
		t.Errorf("mean energy = %v, want 5", mean.Value())
	}

	drift.Reset()
	mean.Reset()
	if drift.Value() != 0 || mean.Value() != 0 {
		t.Error("expected zero after reset")
	}
}

func TestAbsorbedBallsCarryNoEnergy(t *testing.T) {
	abs, err := board.NewAbsorber("abs", 0, 18, 20, 2)
	if err != nil {
		t.Fatal(err)
	}
	ball := newBall(t, 10, 10, 0, 0)
	b := newBoard(t, board.DefaultParams("sink"), []board.Gadget{abs}, ball)
	s := sim.New(b)
	drift := NewEnergyDrift()
	s.AddObserver(drift)

	for i := 0; i < 200 && !ball.Absorbed(); i++ {
		s.Frame(0.04)
	}
	if !ball.Absorbed() {
		t.Fatal("ball never reached the absorber")
	}
	if got := Mechanical(b); got != 0 {
		t.Errorf("Mechanical() = %v after absorption, want 0", got)
	}
	if drift.Current() != 0 {
		t.Errorf("Current() = %v, want 0", drift.Current())
	}
	if drift.Value() < 0.99 {
		t.Errorf("drift = %v, want the whole energy lost", drift.Value())
	}
}

func TestStability(t *testing.T) {
	tests := []struct {
		threshold float64
		want      float64
	}{
		{4, 0},
		{10, 1},
	}

	for _, tt := range tests {
		b := newBoard(t, frictionless("s"), nil, newBall(t, 10, 10, 3, 4))
		m := NewStability(tt.threshold)
		if m.Value() != 1 {
			t.Errorf("empty stability = %v, want 1", m.Value())
		}
		m.OnFrame(b, 0)
		m.OnFrame(b, 0.04)
		if m.Value() != tt.want {
			t.Errorf("threshold %v: Value() = %v, want %v", tt.threshold, m.Value(), tt.want)
		}
	}
}

func TestStandard(t *testing.T) {
	names := map[string]bool{}
	for _, m := range Standard(50) {
		names[m.Name()] = true
	}
	for _, want := range []string{"energy", "energy_drift", "stability"} {
		if !names[want] {
			t.Errorf("Standard() missing %s", want)
		}
	}
}
