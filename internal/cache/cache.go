// Package cache is the in-process store sitting between the controller query surface and the
// format readers. Entries are addressed by an entry kind plus zero, one or two ids.
package cache

import (
	"github.com/Borislavv/go-ash-msdata/internal/cache/db"
	dbmodel "github.com/Borislavv/go-ash-msdata/internal/cache/db/model"
	"reflect"
)

type Key = dbmodel.Key

// SingleKey, IDKey and PairKey address entries of arity 0, 1 and 2.
func SingleKey(k Kind) Key                { return dbmodel.NewKey(uint8(k)) }
func IDKey(k Kind, id string) Key         { return dbmodel.NewKey(uint8(k), id) }
func PairKey(k Kind, id1, id2 string) Key { return dbmodel.NewKey(uint8(k), id1, id2) }

// Lookup is one element of a batch read. Found is false for absent keys;
// a found nil Value is a cached negative result.
type Lookup[T any] struct {
	Value T
	Found bool
}

type Cacher interface {
	Get(key Key) (value any, found bool)
	GetBatch(kind Kind, ids []string) []Lookup[any]
	Store(key Key, value any) (stored bool)
	StoreBatch(kind Kind, values map[string]any) (stored int)
	HasEntry(kind Kind) bool
	ClearKind(kind Kind)
	Clear()
	Len() int64
	Metrics() (hits, misses, stores, ignored int64)
}

// Cache is safe for concurrent use; each kind lives in its own lock-guarded shard.
type Cache struct {
	db       *db.Map
	counters *counters
}

func New() *Cache {
	return &Cache{
		db:       db.NewMap(int(numKinds)),
		counters: newCounters(),
	}
}

// Get returns the stored value. found is false only for keys never stored (or cleared).
func (c *Cache) Get(key Key) (any, bool) {
	value, found := c.db.Get(key)
	if found {
		c.counters.hits.Add(1)
	} else {
		c.counters.misses.Add(1)
	}
	return value, found
}

// GetBatch reads ids of a per-id kind; the result is aligned 1:1 with ids.
func (c *Cache) GetBatch(kind Kind, ids []string) []Lookup[any] {
	out := make([]Lookup[any], len(ids))
	for i, id := range ids {
		out[i].Value, out[i].Found = c.Get(IDKey(kind, id))
	}
	return out
}

// Store writes value under key following the kind's write rules:
// index-shaped kinds are write-once, and a nil never replaces a non-nil value.
func (c *Cache) Store(key Key, value any) bool {
	if c.db.Set(key, value, policyFor(Kind(key.Kind()))) {
		c.counters.stores.Add(1)
		return true
	}
	c.counters.ignored.Add(1)
	return false
}

// StoreBatch writes id->value pairs of a per-id kind under a single shard lock.
func (c *Cache) StoreBatch(kind Kind, values map[string]any) int {
	keys := make([]Key, 0, len(values))
	vals := make([]any, 0, len(values))
	for id, v := range values {
		keys = append(keys, IDKey(kind, id))
		vals = append(vals, v)
	}
	stored := c.db.SetBatch(uint8(kind), keys, vals, policyFor(kind))
	c.counters.stores.Add(int64(stored))
	c.counters.ignored.Add(int64(len(keys) - stored))
	return stored
}

// HasEntry reports whether any entry of kind is present.
func (c *Cache) HasEntry(kind Kind) bool {
	return !c.db.Shard(uint8(kind)).IsEmpty()
}

func (c *Cache) ClearKind(kind Kind) { c.db.ClearShard(uint8(kind)) }
func (c *Cache) Clear()              { c.db.Clear() }
func (c *Cache) Len() int64          { return c.db.Len() }

func (c *Cache) Metrics() (hits, misses, stores, ignored int64) {
	return c.counters.snapshot()
}

func policyFor(kind Kind) db.WritePolicy {
	if kind.WriteOnce() {
		return writeOnce
	}
	return keepNonNil
}

func writeOnce(_, _ any) bool { return false }

// keepNonNil lets a later success overwrite a stale negative, never the reverse.
func keepNonNil(old, new any) bool {
	return isNil(old) || !isNil(new)
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func, reflect.Chan:
		return rv.IsNil()
	}
	return false
}
