// Package pipeline sequences batch stages over one trading date and fans
// independent per-symbol units of work out onto a bounded worker pool.
package pipeline

import (
	"context"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/VirTrivedi/Stock-Price-Modeling-Analytics/pkg/logger"
)

// Stage is one sequenced step of a pipeline run.
type Stage interface {
	Name() string
	Run(ctx context.Context) error
}

// StageFunc adapts a function to the Stage interface.
type StageFunc struct {
	StageName string
	Fn        func(ctx context.Context) error
}

// Name returns the stage name.
func (s StageFunc) Name() string { return s.StageName }

// Run runs the stage.
func (s StageFunc) Run(ctx context.Context) error { return s.Fn(ctx) }

// Runner runs stages in order under one run id. Stages depend on their
// predecessors' outputs, so a failed stage aborts the run.
type Runner struct {
	runID  string
	logger logger.Interface
}

// NewRunner creates a Runner with a fresh run id.
func NewRunner(log logger.Interface) *Runner {
	return &Runner{
		runID:  uuid.NewString(),
		logger: log,
	}
}

// RunID returns the run's identity, attached to every log line of the run.
func (r *Runner) RunID() string { return r.runID }

// Run executes the stages in order, stopping at the first failure.
func (r *Runner) Run(ctx context.Context, stages ...Stage) error {
	for _, stage := range stages {
		start := time.Now()
		r.logger.Info("stage started",
			logger.Field{Key: "run_id", Value: r.runID},
			logger.Field{Key: "stage", Value: stage.Name()},
		)
		if err := stage.Run(ctx); err != nil {
			r.logger.Error(err,
				logger.Field{Key: "run_id", Value: r.runID},
				logger.Field{Key: "stage", Value: stage.Name()},
			)
			return err
		}
		r.logger.Info("stage finished",
			logger.Field{Key: "run_id", Value: r.runID},
			logger.Field{Key: "stage", Value: stage.Name()},
			logger.Field{Key: "elapsed", Value: time.Since(start).String()},
		)
	}
	return nil
}

// Unit is one independent piece of work inside a stage. Units touch disjoint
// files, so a stage may run them concurrently.
type Unit struct {
	Name string
	Run  func(ctx context.Context) error
}

// RunUnits runs units on a pool of at most workers goroutines and returns
// the first failure.
func RunUnits(ctx context.Context, workers int, units []Unit) error {
	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(workers)

	for _, unit := range units {
		unit := unit
		group.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return unit.Run(ctx)
		})
	}
	return group.Wait()
}
