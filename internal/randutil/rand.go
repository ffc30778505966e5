// Package randutil derives the seeded random sources used for tile shuffling
// and bot decisions. Nothing in the module reads process-wide randomness.
package randutil

import (
	rand "math/rand/v2"
	"time"
)

const goldenRatio64 = 0x9e3779b97f4a7c15

// New returns a *rand.Rand seeded deterministically from seed. The two PCG
// words are derived with splitmix64 so nearby seeds give unrelated streams.
func New(seed int64) *rand.Rand {
	u := uint64(seed)
	return rand.New(rand.NewPCG(mix(u), mix(u+goldenRatio64)))
}

// Derive returns the seed of the n-th independent stream under base. The
// simulator uses it so game n replays identically regardless of which worker
// picks it up.
func Derive(base int64, n int) int64 {
	return int64(mix(uint64(base) + uint64(n+1)*goldenRatio64))
}

// TimeSeed returns a seed for runs where the caller did not pin one.
func TimeSeed() int64 {
	return time.Now().UnixNano()
}

func mix(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}
