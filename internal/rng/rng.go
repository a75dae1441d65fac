package rng

import (
	cryptoRand "crypto/rand"
	"encoding/binary"
	"math/rand/v2"
)

// Source yields floats in [0, 1). Every shuffle and choice in the engine
// goes through this interface; nothing else draws randomness directly.
type Source interface {
	Float64() float64
}

// Unseeded returns a non-reproducible source backed by crypto/rand,
// falling back to math/rand/v2 if the system source fails.
func Unseeded() Source { return cryptoSource{} }

type cryptoSource struct{}

func (cryptoSource) Float64() float64 {
	var buf [8]byte
	if _, err := cryptoRand.Read(buf[:]); err != nil {
		return rand.Float64()
	}
	u := binary.BigEndian.Uint64(buf[:]) >> 11 // 53 bits
	return float64(u) / (1 << 53)
}

const (
	fnvOffset32 = 2166136261
	fnvPrime32  = 16777619

	// Weyl-sequence increment applied each draw.
	increment = 0x6D2B79F5

	// State substitute when a seed hashes to exactly zero.
	zeroSeedState = 0x1B873593
)

// seededSource is a small 32-bit generator: FNV-1a of the seed key gives
// the initial state, each draw adds a fixed increment and runs the state
// through a SplitMix-style xorshift-multiply finalizer. Identical keys
// produce identical infinite sequences, which is what keeps the daily
// challenge in sync across clients. Not safe for concurrent use; each
// game session owns its own instance.
type seededSource struct {
	state uint32
}

// Seeded returns a reproducible source derived from key.
func Seeded(key string) Source {
	h := uint32(fnvOffset32)
	for i := 0; i < len(key); i++ {
		h ^= uint32(key[i])
		h *= fnvPrime32
	}
	if h == 0 {
		h = zeroSeedState
	}
	return &seededSource{state: h}
}

func (s *seededSource) Float64() float64 {
	s.state += increment
	z := s.state
	z ^= z >> 15
	z *= 0x2C1B3C6D
	z ^= z >> 12
	z *= 0x297A2D39
	z ^= z >> 15
	return float64(z) / (1 << 32)
}

// Shuffle permutes n elements in place using src, Fisher-Yates order.
func Shuffle(src Source, n int, swap func(i, j int)) {
	for i := n - 1; i > 0; i-- {
		j := int(src.Float64() * float64(i+1))
		if j > i {
			j = i
		}
		swap(i, j)
	}
}

// IntN returns a uniform int in [0, n). n must be positive.
func IntN(src Source, n int) int {
	v := int(src.Float64() * float64(n))
	if v >= n {
		v = n - 1
	}
	return v
}
