package impact

import (
	"bytes"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	recordv1 "github.com/VirTrivedi/Stock-Price-Modeling-Analytics/internal/domain/record/v1"
)

func definedResult(ts uint64, bidPx float64, bidLevels uint32) recordv1.ExecutionResult {
	r := recordv1.NewExecutionResult(ts, ts)
	r.BidExecPrice = bidPx
	r.BidLevelsConsumed = bidLevels
	return r
}

func TestChangeFilteredWriterEmitsFirstAndChanges(t *testing.T) {
	var out bytes.Buffer
	w := NewChangeFilteredWriter(&out)

	wrote, err := w.Write(definedResult(1, 100.0, 1))
	require.NoError(t, err)
	assert.True(t, wrote)

	// Identical content, new timestamp: suppressed.
	wrote, err = w.Write(definedResult(2, 100.0, 1))
	require.NoError(t, err)
	assert.False(t, wrote)

	// Price change: emitted.
	wrote, err = w.Write(definedResult(3, 100.5, 1))
	require.NoError(t, err)
	assert.True(t, wrote)

	// Levels change alone: emitted.
	wrote, err = w.Write(definedResult(4, 100.5, 2))
	require.NoError(t, err)
	assert.True(t, wrote)

	assert.Equal(t, uint32(3), w.Written())
	assert.Equal(t, 3*recordv1.ExecutionResultSize, out.Len())
}

func TestChangeFilteredWriterTreatsNaNAsEqual(t *testing.T) {
	var out bytes.Buffer
	w := NewChangeFilteredWriter(&out)

	undefined := recordv1.NewExecutionResult(1, 1)
	wrote, err := w.Write(undefined)
	require.NoError(t, err)
	assert.True(t, wrote)

	// Both sides still NaN: no information, suppressed.
	undefined2 := recordv1.NewExecutionResult(2, 2)
	wrote, err = w.Write(undefined2)
	require.NoError(t, err)
	assert.False(t, wrote)

	// Bid becomes defined: definedness flip is a change.
	wrote, err = w.Write(definedResult(3, 100.0, 1))
	require.NoError(t, err)
	assert.True(t, wrote)

	// And back to undefined again.
	undefined3 := recordv1.NewExecutionResult(4, 4)
	undefined3.BidLevelsConsumed = 1
	wrote, err = w.Write(undefined3)
	require.NoError(t, err)
	assert.True(t, wrote)
}

func TestMeaningfullyChangedComparesExactly(t *testing.T) {
	base := definedResult(1, 100.0, 1)

	same := definedResult(9, 100.0, 1)
	assert.False(t, meaningfullyChanged(base, same))

	// A one-ulp move is a genuine change at fixed-point granularity.
	tiny := definedResult(9, math.Nextafter(100.0, 200.0), 1)
	assert.True(t, meaningfullyChanged(base, tiny))

	askLevels := definedResult(9, 100.0, 1)
	askLevels.AskLevelsConsumed = 2
	assert.True(t, meaningfullyChanged(base, askLevels))
}
