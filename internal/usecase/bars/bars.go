// Package bars aggregates tick-level tops and fills files into fixed
// one-second OHLC bar files, one file per book side and level.
package bars

import (
	"fmt"

	recordv1 "github.com/VirTrivedi/Stock-Price-Modeling-Analytics/internal/domain/record/v1"
)

// Side selects the bid or ask ladder of a tops record.
type Side int

const (
	Bid Side = iota
	Ask
)

func (s Side) String() string {
	if s == Bid {
		return "bid"
	}
	return "ask"
}

// Series identifies one bar output: a side plus a 1-based book level.
type Series struct {
	Side  Side
	Level int
}

// Name returns the series infix used in bar file names, e.g. "bid_bars_L1".
func (s Series) Name() string {
	return fmt.Sprintf("%s_bars_L%d", s.Side, s.Level)
}

// level extracts this series' level from a tops record.
func (s Series) level(tops recordv1.Tops) recordv1.Level {
	if s.Side == Bid {
		return tops.Bids[s.Level-1]
	}
	return tops.Asks[s.Level-1]
}

// AllSeries returns the six tops-derived bar series in output order.
func AllSeries() []Series {
	series := make([]Series, 0, 2*recordv1.BookLevels)
	for _, side := range []Side{Bid, Ask} {
		for lvl := 1; lvl <= recordv1.BookLevels; lvl++ {
			series = append(series, Series{Side: side, Level: lvl})
		}
	}
	return series
}
