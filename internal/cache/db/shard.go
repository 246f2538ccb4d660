package db

import (
	"github.com/Borislavv/go-ash-msdata/internal/cache/db/model"
	"sync"
	"sync/atomic"
)

// WritePolicy decides whether a store may replace an existing value.
type WritePolicy func(old, new any) (replace bool)

// Shard is the table of a single entry kind.
// Keys are bucketed by their 64-bit hash; buckets hold every colliding entry.
type Shard struct {
	sync.RWMutex
	items map[uint64][]*model.Entry

	id  uint64
	len int64 // number of items (atomic)
}

func NewShard(id uint64) *Shard {
	return &Shard{id: id, items: make(map[uint64][]*model.Entry)}
}

func (sh *Shard) ID() uint64    { return sh.id }
func (sh *Shard) Len() int64    { return atomic.LoadInt64(&sh.len) }
func (sh *Shard) IsEmpty() bool { return sh.Len() == 0 }

// Get reads a value under a shared lock.
func (sh *Shard) Get(key model.Key) (value any, hit bool) {
	sh.RLock()
	value, hit = sh.getUnlocked(key)
	sh.RUnlock()
	return
}

// Set inserts a value or, when policy allows, replaces the existing one.
// Returns whether the shard now holds the given value.
func (sh *Shard) Set(key model.Key, value any, policy WritePolicy) (stored bool) {
	sh.Lock()
	stored = sh.setUnlocked(key, value, policy)
	sh.Unlock()
	return
}

// SetBatch applies Set for every pair under one write lock.
func (sh *Shard) SetBatch(keys []model.Key, values []any, policy WritePolicy) (stored int) {
	sh.Lock()
	for i := range keys {
		if sh.setUnlocked(keys[i], values[i], policy) {
			stored++
		}
	}
	sh.Unlock()
	return
}

// Clear removes all entries and returns how many were removed.
func (sh *Shard) Clear() (items int64) {
	sh.Lock()
	items = atomic.LoadInt64(&sh.len)
	sh.items = make(map[uint64][]*model.Entry)
	atomic.StoreInt64(&sh.len, 0)
	sh.Unlock()
	return
}

// WalkR iterates entries under a shared lock. The callback must be lightweight.
func (sh *Shard) WalkR(fn func(*model.Entry) bool) {
	sh.RLock()
	defer sh.RUnlock()
	for _, bucket := range sh.items {
		for _, e := range bucket {
			if !fn(e) {
				return
			}
		}
	}
}

func (sh *Shard) getUnlocked(key model.Key) (any, bool) {
	for _, e := range sh.items[key.Value()] {
		if e.Key().IsTheSame(key) {
			return e.Value(), true
		}
	}
	return nil, false
}

func (sh *Shard) setUnlocked(key model.Key, value any, policy WritePolicy) bool {
	bucket := sh.items[key.Value()]
	for _, e := range bucket {
		if e.Key().IsTheSame(key) {
			if policy != nil && !policy(e.Value(), value) {
				return false
			}
			e.Swap(value)
			return true
		}
	}
	sh.items[key.Value()] = append(bucket, model.NewEntry(key, value))
	atomic.AddInt64(&sh.len, 1)
	return true
}
