// Package impact simulates consuming resting liquidity against three-level
// book snapshots and writes the resulting execution costs, deduplicated
// against the previously written result.
package impact

import (
	"math"

	recordv1 "github.com/VirTrivedi/Stock-Price-Modeling-Analytics/internal/domain/record/v1"
)

// ComputeSideExecution walks one side's levels top-down, filling
// min(remaining, level qty) at each level's price, and returns the
// volume-weighted average execution price plus the number of levels
// consumed.
//
// The walk stops at the first empty level (which is not counted), when the
// target is filled, or when the levels run out. The average is defined only
// on a complete fill; it divides the accumulated notional by the requested
// quantity. A zero target requests no execution and returns (NaN, 0).
func ComputeSideExecution(targetQty uint32, levels [recordv1.BookLevels]recordv1.Level) (float64, uint32) {
	if targetQty == 0 {
		return math.NaN(), 0
	}

	var (
		notional       float64
		filled         uint32
		levelsConsumed uint32
	)

	for _, level := range levels {
		if filled == targetQty {
			break
		}
		if level.Empty() {
			break
		}
		levelsConsumed++

		needed := targetQty - filled
		executed := level.Qty
		if needed < executed {
			executed = needed
		}

		notional += float64(executed) * level.PriceFloat()
		filled += executed
	}

	if filled < targetQty {
		return math.NaN(), levelsConsumed
	}
	return notional / float64(targetQty), levelsConsumed
}

// Compute evaluates both sides of one top-of-book record independently.
func Compute(targetQty uint32, tops recordv1.Tops) recordv1.ExecutionResult {
	result := recordv1.NewExecutionResult(tops.Ts, tops.Seqno)
	result.BidExecPrice, result.BidLevelsConsumed = ComputeSideExecution(targetQty, tops.Bids)
	result.AskExecPrice, result.AskLevelsConsumed = ComputeSideExecution(targetQty, tops.Asks)
	return result
}
