package bar

import (
	"time"

	recordv1 "github.com/VirTrivedi/Stock-Price-Modeling-Analytics/internal/domain/record/v1"
)

// Bar represents one exported bar row: a one-second OHLC aggregate tagged
// with its symbol, venue and series (e.g. "bid_bars_L1", "fills_bars").
type Bar struct {
	Timestamp time.Time
	Symbol    string
	Venue     string
	Series    string
	Open      float64
	High      float64
	Low       float64
	Close     float64
	Volume    int64
}

// FromRecord converts a binary tops bar to an export row.
func FromRecord(symbol, venue, series string, rec recordv1.Bar) *Bar {
	return &Bar{
		Timestamp: time.Unix(int64(rec.TsSec), 0).UTC(),
		Symbol:    symbol,
		Venue:     venue,
		Series:    series,
		Open:      rec.Open,
		High:      rec.High,
		Low:       rec.Low,
		Close:     rec.Close,
	}
}

// FromFillsRecord converts a binary fills bar to an export row.
func FromFillsRecord(symbol, venue, series string, rec recordv1.FillsBar) *Bar {
	row := FromRecord(symbol, venue, series, rec.Bar)
	row.Volume = int64(rec.Volume)
	return row
}

// BarFilter represents the filter criteria for exported bars.
type BarFilter struct {
	Symbol string
	Venue  string
	Series string
	From   *time.Time
	To     *time.Time
	Limit  int32
}
