// Package rnd derives independently-seeded generators from a parent RNG, for
// handing to worker goroutines that need their own randomness without
// contending on the strategy's generator (spec.md §5).
package rnd

import "math/rand"

// Derive returns a new generator seeded from a draw off parent. Safe to call
// repeatedly on the same parent to mint one child per worker.
func Derive(parent *rand.Rand) *rand.Rand {
	return rand.New(rand.NewSource(parent.Int63()))
}
