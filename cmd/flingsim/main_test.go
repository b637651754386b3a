package main

import (
	"math/rand/v2"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/flingsim/internal/config"
	"github.com/spf13/cobra"
)

func TestJitteredLeavesOriginal(t *testing.T) {
	d, err := config.LoadBoard("default")
	if err != nil {
		t.Fatal(err)
	}
	before := d.Balls[0]

	jitter = 0.5
	a := jittered(d, rand.New(rand.NewPCG(7, 0)))
	b := jittered(d, rand.New(rand.NewPCG(7, 0)))

	if d.Balls[0] != before {
		t.Error("jittered modified the source description")
	}
	if a.Balls[0] != b.Balls[0] {
		t.Error("same seed gave different velocities")
	}
	if a.Balls[0].XVelocity == before.XVelocity {
		t.Error("velocity not changed")
	}
	if a.Balls[0].X != before.X || a.Balls[0].Y != before.Y {
		t.Error("position changed")
	}
}

func TestRunConfigFlagsOverrideFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")
	if err := os.WriteFile(path, []byte("board: pinball\ndt: 0.01\nduration: 3\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cmd := &cobra.Command{}
	cmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "")
	cmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "")
	cmd.Flags().Int64Var(&seed, "seed", 0, "")
	if err := cmd.Flags().Parse([]string{"--time", "7"}); err != nil {
		t.Fatal(err)
	}

	configFile = path
	defer func() { configFile = "" }()

	cfg, err := runConfig(cmd, nil)
	if err != nil {
		t.Fatalf("runConfig: %v", err)
	}
	if cfg.Board != "pinball" || cfg.Dt != 0.01 || cfg.Duration != 7 {
		t.Errorf("got board=%s dt=%v duration=%v", cfg.Board, cfg.Dt, cfg.Duration)
	}

	cfg, err = runConfig(cmd, []string{"absorber"})
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Board != "absorber" {
		t.Errorf("board = %s, want absorber", cfg.Board)
	}
}
