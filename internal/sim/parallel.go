package sim

import (
	"context"
	"fmt"
	"time"

	"github.com/san-kum/flingsim/internal/board"
	"golang.org/x/sync/errgroup"
)

// Job builds one independent board for an ensemble run.
type Job struct {
	Name  string
	Build func() (*board.Board, error)
}

type Outcome struct {
	Name    string
	Result  *Result
	Elapsed time.Duration
}

// RunEnsemble runs each job's board on its own goroutine, at most limit at a
// time. Every board is stepped by exactly one goroutine.
func RunEnsemble(ctx context.Context, jobs []Job, cfg Config, limit int) ([]Outcome, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	outcomes := make([]Outcome, len(jobs))
	g, ctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}

	for i, job := range jobs {
		g.Go(func() error {
			b, err := job.Build()
			if err != nil {
				return fmt.Errorf("%s: %w", job.Name, err)
			}
			start := time.Now()
			res, err := New(b).Run(ctx, cfg)
			if err != nil {
				return fmt.Errorf("%s: %w", job.Name, err)
			}
			outcomes[i] = Outcome{Name: job.Name, Result: res, Elapsed: time.Since(start)}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return outcomes, nil
}
