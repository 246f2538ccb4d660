package random

import (
	"github.com/stretchr/testify/require"
	"sync"
	"testing"
)

// TestFloat64_ReturnsValidRange verifies that Float64 returns values in [0, 1).
func TestFloat64_ReturnsValidRange(t *testing.T) {
	src := New(1)
	for i := 0; i < 1000; i++ {
		val := src.Float64()
		require.GreaterOrEqual(t, val, 0.0, "Float64 should return >= 0")
		require.Less(t, val, 1.0, "Float64 should return < 1")
	}
}

// TestFloat64_Distribution verifies that Float64 produces diverse values.
func TestFloat64_Distribution(t *testing.T) {
	src := New(7)
	values := make(map[uint64]bool)
	for i := 0; i < 100; i++ {
		bucket := uint64(src.Float64() * 1000)
		values[bucket] = true
	}
	require.Greater(t, len(values), 50, "Float64 should produce diverse values")
}

// TestNew_SameSeedSameSequence verifies that equal seeds reproduce the sequence.
func TestNew_SameSeedSameSequence(t *testing.T) {
	a, b := New(42), New(42)
	for i := 0; i < 100; i++ {
		require.Equal(t, a.Uint64(), b.Uint64())
	}

	c := New(43)
	require.NotEqual(t, New(42).Uint64(), c.Uint64())
}

// TestNew_ZeroSeed verifies that a zero seed still yields a usable source.
func TestNew_ZeroSeed(t *testing.T) {
	src := New(0)
	val := src.Float64()
	require.GreaterOrEqual(t, val, 0.0)
	require.Less(t, val, 1.0)
}

// TestIntn_Range verifies that Intn stays within [0,n) and hits every value.
func TestIntn_Range(t *testing.T) {
	src := New(3)
	seen := make(map[int]bool)
	for i := 0; i < 1000; i++ {
		v := src.Intn(5)
		require.GreaterOrEqual(t, v, 0)
		require.Less(t, v, 5)
		seen[v] = true
	}
	require.Len(t, seen, 5)
	require.Equal(t, 0, src.Intn(1))
	require.Panics(t, func() { src.Intn(0) })
}

// TestFloat64_Concurrent verifies thread-safety.
func TestFloat64_Concurrent(t *testing.T) {
	const numGoroutines = 10
	const callsPerGoroutine = 100

	src := New(11)
	results := make(chan float64, numGoroutines*callsPerGoroutine)

	var wg sync.WaitGroup
	wg.Add(numGoroutines)
	for i := 0; i < numGoroutines; i++ {
		go func() {
			defer wg.Done()
			for j := 0; j < callsPerGoroutine; j++ {
				results <- src.Float64()
			}
		}()
	}
	wg.Wait()
	close(results)

	for val := range results {
		require.GreaterOrEqual(t, val, 0.0)
		require.Less(t, val, 1.0)
	}
}
