package sim

import (
	"context"
	"errors"
	"testing"

	"github.com/san-kum/flingsim/internal/board"
)

func TestRunEnsemble(t *testing.T) {
	build := func() (*board.Board, error) {
		sq, err := board.NewSquareBumper("sq", 10, 12)
		if err != nil {
			return nil, err
		}
		ball, err := board.NewBall("b", 10.5, 2, 0, 0)
		if err != nil {
			return nil, err
		}
		return board.New(board.DefaultParams("ens"), []board.Gadget{sq}, []*board.Ball{ball})
	}

	jobs := make([]Job, 6)
	for i := range jobs {
		jobs[i] = Job{Name: "job", Build: build}
	}

	outcomes, err := RunEnsemble(context.Background(), jobs, Config{Dt: 0.02, Duration: 2}, 3)
	if err != nil {
		t.Fatalf("ensemble failed: %v", err)
	}
	if len(outcomes) != len(jobs) {
		t.Fatalf("expected %d outcomes, got %d", len(jobs), len(outcomes))
	}

	want := *outcomes[0].Result
	for i, o := range outcomes {
		if *o.Result != want {
			t.Errorf("outcome %d = %+v, want %+v", i, *o.Result, want)
		}
	}
	if want.Collisions == 0 {
		t.Error("expected the ball to hit the bumper")
	}
}

func TestRunEnsembleBuildError(t *testing.T) {
	boom := errors.New("boom")
	jobs := []Job{{Name: "bad", Build: func() (*board.Board, error) { return nil, boom }}}

	if _, err := RunEnsemble(context.Background(), jobs, DefaultConfig(), 0); !errors.Is(err, boom) {
		t.Errorf("expected wrapped build error, got %v", err)
	}
}
