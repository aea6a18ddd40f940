package interval

import "sort"

// Sample represents one priced observation feeding a bucket.
type Sample struct {
	TsNanos uint64
	Price   float64
	Volume  int64
}

// OHLC represents aggregated open/high/low/close data for one bucket.
type OHLC struct {
	BucketSec uint64
	Open      float64
	High      float64
	Low       float64
	Close     float64
	Volume    int64
	Count     int64
}

// Aggregator folds samples into per-bucket OHLC entries. Samples must arrive
// in non-decreasing timestamp order for open/close to be meaningful.
type Aggregator struct {
	interval Interval
	buckets  map[uint64]*OHLC
}

// NewAggregator creates an Aggregator for the given interval.
func NewAggregator(interval Interval) *Aggregator {
	return &Aggregator{
		interval: interval,
		buckets:  make(map[uint64]*OHLC),
	}
}

// Add folds one sample into its bucket.
func (a *Aggregator) Add(s Sample) {
	bucket := a.interval.BucketStart(s.TsNanos)
	ohlc, ok := a.buckets[bucket]
	if !ok {
		a.buckets[bucket] = &OHLC{
			BucketSec: bucket,
			Open:      s.Price,
			High:      s.Price,
			Low:       s.Price,
			Close:     s.Price,
			Volume:    s.Volume,
			Count:     1,
		}
		return
	}

	if s.Price > ohlc.High {
		ohlc.High = s.Price
	}
	if s.Price < ohlc.Low {
		ohlc.Low = s.Price
	}
	ohlc.Close = s.Price
	ohlc.Volume += s.Volume
	ohlc.Count++
}

// Len returns the number of buckets accumulated so far.
func (a *Aggregator) Len() int {
	return len(a.buckets)
}

// Sorted returns the accumulated buckets in ascending bucket order.
func (a *Aggregator) Sorted() []OHLC {
	out := make([]OHLC, 0, len(a.buckets))
	for _, ohlc := range a.buckets {
		out = append(out, *ohlc)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].BucketSec < out[j].BucketSec
	})
	return out
}
