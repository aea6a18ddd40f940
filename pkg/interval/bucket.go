// Package interval buckets tick timestamps into fixed aggregation windows
// and accumulates OHLC data per bucket.
package interval

import "time"

// Interval represents a fixed aggregation window.
type Interval struct {
	Name     string
	Duration time.Duration
}

// OneSecond is the bar interval used by the batch pipeline.
var OneSecond = Interval{Name: "1s", Duration: time.Second}

// BucketStart truncates a nanosecond timestamp to the start of its bucket,
// returned in whole seconds since the epoch.
func (i Interval) BucketStart(tsNanos uint64) uint64 {
	bucketNanos := uint64(i.Duration.Nanoseconds())
	return tsNanos / bucketNanos * uint64(i.Duration.Seconds())
}

// IsInBucket checks if two nanosecond timestamps fall within the same bucket.
func (i Interval) IsInBucket(ts1, ts2 uint64) bool {
	return i.BucketStart(ts1) == i.BucketStart(ts2)
}
