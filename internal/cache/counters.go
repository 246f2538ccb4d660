package cache

import "sync/atomic"

type counters struct {
	hits    atomic.Int64
	misses  atomic.Int64
	stores  atomic.Int64
	ignored atomic.Int64
}

func newCounters() *counters {
	return &counters{
		hits:    atomic.Int64{},
		misses:  atomic.Int64{},
		stores:  atomic.Int64{},
		ignored: atomic.Int64{},
	}
}

func (c *counters) snapshot() (hits, misses, stores, ignored int64) {
	return c.hits.Load(), c.misses.Load(), c.stores.Load(), c.ignored.Load()
}
