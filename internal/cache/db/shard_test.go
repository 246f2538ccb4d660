package db

import (
	"github.com/Borislavv/go-ash-msdata/internal/cache/db/model"
	"github.com/stretchr/testify/require"
	"testing"
)

// TestShard_Set_Insert verifies Set inserts new entries correctly.
func TestShard_Set_Insert(t *testing.T) {
	sh := NewShard(0)
	key := model.NewKey(0, "42")

	require.True(t, sh.Set(key, "data", nil))
	require.Equal(t, int64(1), sh.Len())

	value, hit := sh.Get(key)
	require.True(t, hit)
	require.Equal(t, "data", value)
}

// TestShard_Set_NilIsHit verifies a stored nil is distinguishable from an absent key.
func TestShard_Set_NilIsHit(t *testing.T) {
	sh := NewShard(0)
	sh.Set(model.NewKey(0, "neg"), nil, nil)

	value, hit := sh.Get(model.NewKey(0, "neg"))
	require.True(t, hit)
	require.Nil(t, value)

	_, hit = sh.Get(model.NewKey(0, "absent"))
	require.False(t, hit)
}

// TestShard_Set_PolicyRejects keeps the old value when the policy refuses the write.
func TestShard_Set_PolicyRejects(t *testing.T) {
	sh := NewShard(0)
	key := model.NewKey(0, "42")
	keepOld := func(old, new any) bool { return false }

	sh.Set(key, "first", keepOld)
	require.False(t, sh.Set(key, "second", keepOld))

	value, _ := sh.Get(key)
	require.Equal(t, "first", value)
	require.Equal(t, int64(1), sh.Len())
}

// TestShard_Clear removes every entry.
func TestShard_Clear(t *testing.T) {
	sh := NewShard(0)
	sh.SetBatch(
		[]model.Key{model.NewKey(0, "a"), model.NewKey(0, "b")},
		[]any{1, 2},
		nil,
	)
	require.Equal(t, int64(2), sh.Clear())
	require.True(t, sh.IsEmpty())
}

// TestMap_ClearShard only touches the given kind.
func TestMap_ClearShard(t *testing.T) {
	m := NewMap(3)
	m.Set(model.NewKey(1, "a"), 1, nil)
	m.Set(model.NewKey(2, "a"), 2, nil)
	require.Equal(t, int64(2), m.Len())

	require.Equal(t, int64(1), m.ClearShard(1))
	require.Equal(t, int64(1), m.Len())

	_, hit := m.Get(model.NewKey(2, "a"))
	require.True(t, hit)

	m.Clear()
	require.Equal(t, int64(0), m.Len())
}
