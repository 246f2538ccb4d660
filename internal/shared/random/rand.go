// Package random provides a small seedable SplitMix64 generator used for QC sampling.
package random

import (
	"math/bits"
	"sync/atomic"
	"time"
)

const golden = 0x9e3779b97f4a7c15

// Source is safe for concurrent use; the state is advanced via atomic CAS.
type Source struct {
	state atomic.Uint64
}

// New returns a source seeded with seed. A zero seed is replaced by a time-derived one.
func New(seed uint64) *Source {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	s := &Source{}
	s.state.Store(splitmixSeed(seed))
	return s
}

// Uint64 returns 64 uniformly distributed bits.
func (s *Source) Uint64() uint64 {
	for {
		old := s.state.Load()
		x := old + golden
		if s.state.CompareAndSwap(old, x) {
			return mix(x)
		}
	}
}

// Float64 returns a uniform in [0,1) using 53 random bits (double precision).
func (s *Source) Float64() float64 {
	const inv53 = 1.0 / 9007199254740992.0 // 2^53
	return float64(s.Uint64()>>11) * inv53
}

// Intn returns a uniform in [0,n). It panics if n <= 0.
func (s *Source) Intn(n int) int {
	if n <= 0 {
		panic("random: Intn called with non-positive n")
	}
	// Lemire's multiply-shift with rejection keeps the result unbiased.
	bound := uint64(n)
	threshold := -bound % bound
	for {
		hi, lo := bits.Mul64(s.Uint64(), bound)
		if lo >= threshold {
			return int(hi)
		}
	}
}

func mix(z uint64) uint64 {
	z ^= z >> 30
	z *= 0xbf58476d1ce4e5b9
	z ^= z >> 27
	z *= 0x94d049bb133111eb
	z ^= z >> 31
	return z
}

// splitmixSeed turns a seed into a well-mixed non-zero starting state.
func splitmixSeed(seed uint64) uint64 {
	z := mix(seed + golden)
	if z == 0 {
		z = golden
	}
	return z
}
