// Package record defines the fixed-layout binary records exchanged between
// the batch pipeline stages: per-venue file headers, top-of-book and fill
// records, origin-tagged merged entries, execution results and OHLC bars.
//
// All layouts are little-endian with no padding. Prices are signed 64-bit
// integers scaled by 1e9.
package record

import "math"

// PriceScale converts fixed-point prices to decimal prices.
const PriceScale = 1e9

// BookLevels is the number of price levels carried per side of a
// top-of-book record.
const BookLevels = 3

// Header describes one batch file of records.
type Header struct {
	FeedID    uint64
	DateInt   uint32
	Count     uint32
	SymbolIdx uint64
}

// Level is one price level of one side of the book. The zero value is the
// empty level: upstream feeds encode "no level" as price==0 or qty==0, never
// as a resting zero-priced order.
type Level struct {
	Price int64
	Qty   uint32
}

// Empty reports whether the level is the absent-level sentinel.
func (l Level) Empty() bool {
	return l.Price == 0 || l.Qty == 0
}

// PriceFloat converts the fixed-point price to a decimal price.
func (l Level) PriceFloat() float64 {
	return float64(l.Price) / PriceScale
}

// Tops is a top-of-book record with up to three levels per side.
type Tops struct {
	Ts    uint64
	Seqno uint64
	Bids  [BookLevels]Level
	Asks  [BookLevels]Level
}

// Fills is a trade record. The resting/opposing book context is carried
// through the pipeline but not consumed by it.
type Fills struct {
	Ts                        uint64
	Seqno                     uint64
	RestingOrderID            uint64
	WasHidden                 bool
	TradePrice                int64
	TradeQty                  uint32
	ExecutionID               uint64
	RestingOriginalQty        uint32
	RestingRemainingQty       uint32
	RestingLastUpdateTs       uint64
	RestingSideIsBid          bool
	RestingSidePrice          int64
	RestingSideQty            uint32
	OpposingSidePrice         int64
	OpposingSideQty           uint32
	RestingSideNumberOfOrders uint32
}

// TaggedTops is a merged-stream entry: a top-of-book record plus the feed id
// of the venue it originated from. The feed id is assigned once at ingestion
// and never reassigned.
type TaggedTops struct {
	FeedID uint64
	Tops   Tops
}

// TaggedFills is a merged-stream entry for a fill record.
type TaggedFills struct {
	FeedID uint64
	Fills  Fills
}

// ExecutionResult reports the simulated cost of executing a fixed quantity
// against one book snapshot, per side. An undefined execution price is
// encoded as NaN.
type ExecutionResult struct {
	Ts                uint64
	Seqno             uint64
	BidExecPrice      float64
	BidLevelsConsumed uint32
	AskExecPrice      float64
	AskLevelsConsumed uint32
}

// NewExecutionResult returns an ExecutionResult with both sides undefined.
func NewExecutionResult(ts, seqno uint64) ExecutionResult {
	return ExecutionResult{
		Ts:           ts,
		Seqno:        seqno,
		BidExecPrice: math.NaN(),
		AskExecPrice: math.NaN(),
	}
}

// BidDefined reports whether the bid execution price is defined.
func (r ExecutionResult) BidDefined() bool {
	return !math.IsNaN(r.BidExecPrice)
}

// AskDefined reports whether the ask execution price is defined.
func (r ExecutionResult) AskDefined() bool {
	return !math.IsNaN(r.AskExecPrice)
}

// Bar is one fixed-interval OHLC aggregate derived from top-of-book prices.
type Bar struct {
	TsSec uint64
	Open  float64
	High  float64
	Low   float64
	Close float64
}

// FillsBar is one fixed-interval OHLC aggregate derived from trades,
// including traded volume.
type FillsBar struct {
	Bar
	Volume int32
}
