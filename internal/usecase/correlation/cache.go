package correlation

import "sync"

// BarCache is a bounded read-through cache of decoded closing-price series
// keyed by file path. Every bar file is read by up to N-1 symbol pairs, so
// caching the decoded series turns quadratic file I/O into linear.
//
// The cache never evicts: once the ceiling is reached, further loads are
// served but not stored. Pair workers share one cache, so access is
// mutex-guarded.
type BarCache struct {
	mu         sync.Mutex
	maxEntries int
	entries    map[string][]float64
}

// NewBarCache creates a BarCache holding at most maxEntries series.
func NewBarCache(maxEntries int) *BarCache {
	return &BarCache{
		maxEntries: maxEntries,
		entries:    make(map[string][]float64, maxEntries),
	}
}

// Get returns the cached series for path, loading and (capacity permitting)
// storing it on a miss.
func (c *BarCache) Get(path string, load func(string) ([]float64, error)) ([]float64, error) {
	c.mu.Lock()
	if series, ok := c.entries[path]; ok {
		c.mu.Unlock()
		return series, nil
	}
	c.mu.Unlock()

	series, err := load(path)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	if _, ok := c.entries[path]; !ok && len(c.entries) < c.maxEntries {
		c.entries[path] = series
	}
	c.mu.Unlock()
	return series, nil
}

// Len returns the number of cached series.
func (c *BarCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
