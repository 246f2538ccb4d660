package model

import (
	"github.com/stretchr/testify/require"
	"testing"
)

// TestNewKey_SameInputSameHash verifies key hashing is deterministic.
func TestNewKey_SameInputSameHash(t *testing.T) {
	key1 := NewKey(3, "P1", "psm_1")
	key2 := NewKey(3, "P1", "psm_1")

	require.Equal(t, key1.Value(), key2.Value())
	require.True(t, key1.IsTheSame(key2))
}

// TestNewKey_IDBoundaries verifies ids are not concatenated ambiguously.
func TestNewKey_IDBoundaries(t *testing.T) {
	key1 := NewKey(3, "ab", "c")
	key2 := NewKey(3, "a", "bc")

	require.False(t, key1.IsTheSame(key2))
}

// TestNewKey_KindAndArity verifies kind and arity participate in identity.
func TestNewKey_KindAndArity(t *testing.T) {
	require.False(t, NewKey(1, "x").IsTheSame(NewKey(2, "x")))
	require.False(t, NewKey(1).IsTheSame(NewKey(1, "")))
}

// TestKey_Accessors returns the ids the key was built from.
func TestKey_Accessors(t *testing.T) {
	key := NewKey(7, "P1", "psm_1", "ignored")

	require.Equal(t, uint8(7), key.Kind())
	require.Equal(t, 2, key.Arity())
	require.Equal(t, "P1", key.ID(0))
	require.Equal(t, "psm_1", key.ID(1))
	require.Empty(t, key.ID(2))
}
