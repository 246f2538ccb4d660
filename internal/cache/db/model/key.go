package model

import (
	"github.com/zeebo/xxh3"
	"sync"
)

// MaxIDs is the largest number of ids a key can carry.
const MaxIDs = 2

// Key addresses one cache entry: an entry kind plus zero, one or two ids.
// The two-id form exists for entities unique only within their owner (a peptide within a protein).
type Key struct {
	kind uint8
	n    uint8
	ids  [MaxIDs]string

	v  uint64
	hi uint64
	lo uint64
}

var hasherPool = sync.Pool{New: func() any { return xxh3.New() }}

// NewKey builds a key for kind from at most MaxIDs ids. Extra ids are ignored.
func NewKey(kind uint8, ids ...string) Key {
	k := Key{kind: kind}
	for i := 0; i < len(ids) && i < MaxIDs; i++ {
		k.ids[i] = ids[i]
		k.n++
	}
	k.hash()
	return k
}

func (k Key) Kind() uint8   { return k.kind }
func (k Key) Arity() int    { return int(k.n) }
func (k Key) Value() uint64 { return k.v }

// ID returns the i-th id or an empty string.
func (k Key) ID(i int) string {
	if i < 0 || i >= int(k.n) {
		return ""
	}
	return k.ids[i]
}

// IsTheSame compares hashes first and falls back to the ids on a 128-bit match.
func (k Key) IsTheSame(key Key) bool {
	if k.v != key.v || k.hi != key.hi || k.lo != key.lo {
		return false
	}
	return k.kind == key.kind && k.n == key.n && k.ids == key.ids
}

func (k *Key) hash() {
	// acquire reusable hasher
	hasher := hasherPool.Get().(*xxh3.Hasher)
	hasher.Reset()

	var sep = [2]byte{k.kind, k.n}
	_, _ = hasher.Write(sep[:])
	for i := 0; i < int(k.n); i++ {
		_, _ = hasher.WriteString(k.ids[i])
		_, _ = hasher.Write([]byte{0})
	}

	u128 := hasher.Sum128()
	k.v = hasher.Sum64()
	k.hi = u128.Hi
	k.lo = u128.Lo

	// release hasher after use
	hasherPool.Put(hasher)
}
