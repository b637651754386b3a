package sim

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/san-kum/flingsim/internal/board"
)

func TestSimulatorRun(t *testing.T) {
	b1 := newBall(t, "b1", 5, 5, 1, 0)
	b2 := newBall(t, "b2", 15, 5, -1, 0)
	s := New(newBoard(t, board.DefaultParams("run"), nil, b1, b2))
	rec := NewRecorder()
	s.AddObserver(rec)

	cfg := Config{
		Dt:       0.1,
		Duration: 1.0,
	}
	result, err := s.Run(context.Background(), cfg)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if result.Frames != 10 {
		t.Errorf("expected 10 frames, got %d", result.Frames)
	}
	if math.Abs(result.Time-1.0) > 1e-9 {
		t.Errorf("expected time ~1.0, got %.6f", result.Time)
	}
	if len(rec.Samples()) != 20 {
		t.Errorf("expected 20 samples, got %d", len(rec.Samples()))
	}

	first := rec.Samples()[0]
	if first.Ball != "b1" || math.Abs(first.Time-0.1) > 1e-12 {
		t.Errorf("unexpected first sample %+v", first)
	}
}

func TestSimulatorCountsAbsorbed(t *testing.T) {
	abs, _ := board.NewAbsorber("abs", 0, 18, 20, 2)
	s := New(newBoard(t, board.DefaultParams("abs"), []board.Gadget{abs}, newBall(t, "b", 10, 10, 0, 0)))

	result, err := s.Run(context.Background(), Config{Dt: 0.04, Duration: 3})
	if err != nil {
		t.Fatal(err)
	}
	if result.Absorbed != 1 {
		t.Errorf("expected 1 absorbed ball, got %d", result.Absorbed)
	}
	if result.Collisions < 1 {
		t.Errorf("expected a collision, got %d", result.Collisions)
	}
}

func TestSimulatorInvalidConfig(t *testing.T) {
	s := New(newBoard(t, board.DefaultParams("bad"), nil))

	tests := []struct {
		name string
		cfg  Config
	}{
		{"zero dt", Config{Dt: 0, Duration: 1.0}},
		{"negative dt", Config{Dt: -0.1, Duration: 1.0}},
		{"zero duration", Config{Dt: 0.1, Duration: 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := s.Run(context.Background(), tt.cfg); err == nil {
				t.Error("expected error for invalid config")
			}
		})
	}
}

func TestSimulatorCancellation(t *testing.T) {
	s := New(newBoard(t, board.DefaultParams("cancel"), nil, newBall(t, "b", 10, 10, 1, 1)))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := s.Run(ctx, Config{Dt: 0.01, Duration: 100.0})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if result.Frames != 0 {
		t.Errorf("expected no frames after cancel, got %d", result.Frames)
	}
}

func TestSeries(t *testing.T) {
	samples := []Sample{
		{Ball: "a", Y: 19.75},
		{Ball: "b", Y: 3},
		{Ball: "a", Y: 5},
	}
	got := Series(samples, "a")
	want := []float64{0.25, 15}
	if len(got) != len(want) {
		t.Fatalf("Series len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Series[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestRecorderReset(t *testing.T) {
	bd := newBoard(t, board.DefaultParams("rec"), nil, newBall(t, "b", 10, 10, 0, 0))
	rec := NewRecorder()
	rec.OnFrame(bd, 0.1)
	rec.Reset()
	if len(rec.Samples()) != 0 {
		t.Errorf("expected empty recorder, got %d samples", len(rec.Samples()))
	}
}
