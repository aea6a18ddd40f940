package interval

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBucketStart(t *testing.T) {
	// 1.75s into the epoch truncates to the 1s bucket.
	assert.Equal(t, uint64(1), OneSecond.BucketStart(1_750_000_000))
	assert.Equal(t, uint64(0), OneSecond.BucketStart(999_999_999))
	assert.True(t, OneSecond.IsInBucket(1_000_000_000, 1_999_999_999))
	assert.False(t, OneSecond.IsInBucket(1_999_999_999, 2_000_000_000))
}

func TestAggregatorOHLC(t *testing.T) {
	agg := NewAggregator(OneSecond)
	agg.Add(Sample{TsNanos: 1_000_000_000, Price: 100.0, Volume: 5})
	agg.Add(Sample{TsNanos: 1_200_000_000, Price: 102.0, Volume: 3})
	agg.Add(Sample{TsNanos: 1_800_000_000, Price: 99.0, Volume: 2})
	agg.Add(Sample{TsNanos: 2_100_000_000, Price: 101.0, Volume: 1})

	require.Equal(t, 2, agg.Len())
	buckets := agg.Sorted()
	require.Len(t, buckets, 2)

	first := buckets[0]
	assert.Equal(t, uint64(1), first.BucketSec)
	assert.Equal(t, 100.0, first.Open)
	assert.Equal(t, 102.0, first.High)
	assert.Equal(t, 99.0, first.Low)
	assert.Equal(t, 99.0, first.Close)
	assert.Equal(t, int64(10), first.Volume)
	assert.Equal(t, int64(3), first.Count)

	second := buckets[1]
	assert.Equal(t, uint64(2), second.BucketSec)
	assert.Equal(t, 101.0, second.Open)
	assert.Equal(t, 101.0, second.Close)
}

func TestAggregatorSortedOrder(t *testing.T) {
	agg := NewAggregator(OneSecond)
	for _, sec := range []uint64{9, 3, 7, 1} {
		agg.Add(Sample{TsNanos: sec * 1_000_000_000, Price: float64(sec)})
	}

	buckets := agg.Sorted()
	require.Len(t, buckets, 4)
	for i := 1; i < len(buckets); i++ {
		assert.Less(t, buckets[i-1].BucketSec, buckets[i].BucketSec)
	}
}
