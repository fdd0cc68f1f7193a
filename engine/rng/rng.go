// Package rng wraps math/rand with deterministic position tracking, so a
// battle replayed from the same seed produces identical rolls.
package rng

import "math/rand"

// RNG is a seeded random source. Position increments with every call,
// enabling exact restore for deterministic tests.
type RNG struct {
	seed int64
	src  *rand.Rand
	pos  int64
}

// New creates a deterministic RNG from a seed.
func New(seed int64) *RNG {
	return &RNG{seed: seed, src: rand.New(rand.NewSource(seed))}
}

// Roll returns a uniform integer in [0, 99).
func (r *RNG) Roll() int {
	r.pos++
	return r.src.Intn(99)
}

// Seed returns the seed the RNG was created with.
func (r *RNG) Seed() int64 { return r.seed }

// Position returns the number of rolls made since creation.
func (r *RNG) Position() int64 { return r.pos }

// Restore creates an RNG advanced to the given position, reproducing the
// exact stream state.
func Restore(seed, position int64) *RNG {
	r := New(seed)
	for i := int64(0); i < position; i++ {
		r.Roll()
	}
	return r
}
