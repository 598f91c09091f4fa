package coloring

import "math/rand"

// DefaultSeed is used when a caller passes seed 0, so that the zero value of
// an engine configuration is still reproducible.
const DefaultSeed int64 = 42

// NewRand returns a deterministic random source for seed.
// Seed 0 maps to [DefaultSeed]. The returned source is not safe for
// concurrent use; give every engine invocation its own.
func NewRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = DefaultSeed
	}
	return rand.New(rand.NewSource(seed))
}

// DeriveSeed mixes a parent seed and a stream id into an independent seed
// (SplitMix64 finalizer). Orchestrators use it to give each sub-run its own
// reproducible stream.
func DeriveSeed(parent int64, stream uint64) int64 {
	x := uint64(parent) ^ (stream + 0x9e3779b97f4a7c15)
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	x ^= x >> 31
	return int64(x)
}
