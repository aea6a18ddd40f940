package impact

import (
	"io"
	"math"

	recordv1 "github.com/VirTrivedi/Stock-Price-Modeling-Analytics/internal/domain/record/v1"
	"github.com/VirTrivedi/Stock-Price-Modeling-Analytics/pkg/errors"
)

// ChangeFilteredWriter writes an execution result only when it differs
// meaningfully from the last written one. Quote-driven results are stale
// until changed, so identical consecutive results carry no information.
type ChangeFilteredWriter struct {
	w       io.Writer
	last    recordv1.ExecutionResult
	written uint32
	primed  bool
}

// NewChangeFilteredWriter wraps w.
func NewChangeFilteredWriter(w io.Writer) *ChangeFilteredWriter {
	return &ChangeFilteredWriter{w: w}
}

// Write emits the candidate iff it is the first one or it meaningfully
// changed, and reports whether it was emitted.
func (c *ChangeFilteredWriter) Write(result recordv1.ExecutionResult) (bool, error) {
	if c.primed && !meaningfullyChanged(c.last, result) {
		return false, nil
	}
	if _, err := c.w.Write(recordv1.EncodeExecutionResult(result)); err != nil {
		return false, errors.NewTracer("write execution result").Wrap(errors.ErrOutputUnwritable)
	}
	c.last = result
	c.primed = true
	c.written++
	return true, nil
}

// Written returns how many results have been emitted.
func (c *ChangeFilteredWriter) Written() uint32 {
	return c.written
}

// meaningfullyChanged compares the two results field by field. Prices use
// exact float equality: both derive deterministically from the same
// fixed-point inputs, and an epsilon would mask genuine micro-changes at the
// fixed-point granularity. Two undefined prices compare equal.
func meaningfullyChanged(prev, next recordv1.ExecutionResult) bool {
	return sidePriceChanged(prev.BidExecPrice, next.BidExecPrice) ||
		prev.BidLevelsConsumed != next.BidLevelsConsumed ||
		sidePriceChanged(prev.AskExecPrice, next.AskExecPrice) ||
		prev.AskLevelsConsumed != next.AskLevelsConsumed
}

func sidePriceChanged(prev, next float64) bool {
	if math.IsNaN(prev) != math.IsNaN(next) {
		return true
	}
	return !math.IsNaN(prev) && prev != next
}
