package telemetry

type sampler struct {
	stats Stats
}

func newSampler(stats Stats) sampler {
	return sampler{stats: stats}
}

// snapshot holds cumulative counters (monotonic).
type snapshot struct {
	hits    uint64
	misses  uint64
	stores  uint64
	ignored uint64
}

func (s sampler) snapshot() snapshot {
	hits, misses, stores, ignored := s.stats.Metrics()
	return snapshot{
		hits:    uint64(max(hits, 0)),
		misses:  uint64(max(misses, 0)),
		stores:  uint64(max(stores, 0)),
		ignored: uint64(max(ignored, 0)),
	}
}

func (s snapshot) hitRatio() float64 {
	total := s.hits + s.misses
	if total == 0 {
		return 0
	}
	return float64(s.hits) / float64(total)
}

// deltaSnapshot converts cumulative snapshots to per-interval deltas.
// If counters reset (cur < prev), it treats cur as the delta.
func deltaSnapshot(prev, cur snapshot) snapshot {
	return snapshot{
		hits:    delta(prev.hits, cur.hits),
		misses:  delta(prev.misses, cur.misses),
		stores:  delta(prev.stores, cur.stores),
		ignored: delta(prev.ignored, cur.ignored),
	}
}

func delta(prev, cur uint64) uint64 {
	if cur >= prev {
		return cur - prev
	}
	return cur
}
