// Package db keeps cache entries in one shard per entry kind, so a whole kind can be
// cleared or probed without touching the others.
package db

import (
	"github.com/Borislavv/go-ash-msdata/internal/cache/db/model"
	"sync/atomic"
)

type Map struct {
	len    int64 // aggregated number of items (atomic)
	shards []*Shard
}

// NewMap creates a map with one shard per kind in [0, kinds).
func NewMap(kinds int) *Map {
	m := &Map{shards: make([]*Shard, kinds)}
	for id := range m.shards {
		m.shards[id] = NewShard(uint64(id))
	}
	return m
}

func (m *Map) Shard(kind uint8) *Shard { return m.shards[kind] }

func (m *Map) Get(key model.Key) (any, bool) {
	return m.Shard(key.Kind()).Get(key)
}

func (m *Map) Set(key model.Key, value any, policy WritePolicy) bool {
	sh := m.Shard(key.Kind())
	before := sh.Len()
	stored := sh.Set(key, value, policy)
	if delta := sh.Len() - before; delta != 0 {
		atomic.AddInt64(&m.len, delta)
	}
	return stored
}

// SetBatch stores values for keys of a single kind.
func (m *Map) SetBatch(kind uint8, keys []model.Key, values []any, policy WritePolicy) int {
	sh := m.Shard(kind)
	before := sh.Len()
	stored := sh.SetBatch(keys, values, policy)
	if delta := sh.Len() - before; delta != 0 {
		atomic.AddInt64(&m.len, delta)
	}
	return stored
}

func (m *Map) ClearShard(kind uint8) int64 {
	items := m.Shard(kind).Clear()
	atomic.AddInt64(&m.len, -items)
	return items
}

func (m *Map) Clear() {
	for id := range m.shards {
		m.ClearShard(uint8(id))
	}
}

func (m *Map) Len() int64 { return atomic.LoadInt64(&m.len) }
