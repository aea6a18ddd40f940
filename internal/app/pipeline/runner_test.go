package pipeline

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VirTrivedi/Stock-Price-Modeling-Analytics/pkg/logger"
)

func newTestLogger(t *testing.T) logger.Interface {
	t.Helper()
	lg, err := logger.NewLogger(logger.WithLoggingLevel(logger.ErrorLevel))
	require.NoError(t, err)
	return lg
}

func TestRunnerRunsStagesInOrder(t *testing.T) {
	runner := NewRunner(newTestLogger(t))
	assert.NotEmpty(t, runner.RunID())

	var order []string
	stage := func(name string) Stage {
		return StageFunc{
			StageName: name,
			Fn: func(ctx context.Context) error {
				order = append(order, name)
				return nil
			},
		}
	}

	err := runner.Run(context.Background(), stage("merge"), stage("snapshot"), stage("bars"))
	require.NoError(t, err)
	assert.Equal(t, []string{"merge", "snapshot", "bars"}, order)
}

func TestRunnerStopsAtFirstFailure(t *testing.T) {
	runner := NewRunner(newTestLogger(t))

	var order []string
	boom := errors.New("merge failed")
	stages := []Stage{
		StageFunc{StageName: "merge", Fn: func(ctx context.Context) error {
			order = append(order, "merge")
			return boom
		}},
		StageFunc{StageName: "snapshot", Fn: func(ctx context.Context) error {
			order = append(order, "snapshot")
			return nil
		}},
	}

	err := runner.Run(context.Background(), stages...)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, []string{"merge"}, order)
}

func TestRunUnitsRunsEveryUnit(t *testing.T) {
	var mu sync.Mutex
	seen := make(map[string]bool)

	units := make([]Unit, 0, 8)
	for _, name := range []string{"a", "b", "c", "d", "e", "f", "g", "h"} {
		name := name
		units = append(units, Unit{
			Name: name,
			Run: func(ctx context.Context) error {
				mu.Lock()
				seen[name] = true
				mu.Unlock()
				return nil
			},
		})
	}

	require.NoError(t, RunUnits(context.Background(), 3, units))
	assert.Len(t, seen, 8)
}

func TestRunUnitsBoundsConcurrency(t *testing.T) {
	var running, peak atomic.Int32
	gate := make(chan struct{})

	units := make([]Unit, 6)
	for i := range units {
		units[i] = Unit{
			Name: "unit",
			Run: func(ctx context.Context) error {
				n := running.Add(1)
				for {
					p := peak.Load()
					if n <= p || peak.CompareAndSwap(p, n) {
						break
					}
				}
				<-gate
				running.Add(-1)
				return nil
			},
		}
	}

	done := make(chan error, 1)
	go func() {
		done <- RunUnits(context.Background(), 2, units)
	}()

	close(gate)
	require.NoError(t, <-done)
	assert.LessOrEqual(t, peak.Load(), int32(2))
}

func TestRunUnitsReturnsFirstError(t *testing.T) {
	boom := errors.New("unit failed")
	var later atomic.Int32

	units := []Unit{
		{Name: "fails", Run: func(ctx context.Context) error { return boom }},
		{Name: "after", Run: func(ctx context.Context) error {
			later.Add(1)
			return nil
		}},
	}

	err := RunUnits(context.Background(), 1, units)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, int32(0), later.Load(), "cancelled unit never ran")
}
