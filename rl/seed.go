package rl

import "golang.org/x/exp/rand"

// SeedChain derives sub-seeds from a root seed. The rollout driver
// forks one chain per episode and draws one rng per step from it, so
// two rollouts with the same root seed see the same randomness.
type SeedChain struct {
	rng *rand.Rand
}

func NewSeedChain(seed uint64) *SeedChain {
	return &SeedChain{
		rng: rand.New(rand.NewSource(seed)),
	}
}

// Next sub-seed in the chain
func (c *SeedChain) Next() uint64 {
	return c.rng.Uint64()
}

// Fork a fresh chain seeded from this one
func (c *SeedChain) Fork() *SeedChain {
	return NewSeedChain(c.Next())
}

// Rand returns a new rng seeded with the next sub-seed
func (c *SeedChain) Rand() *rand.Rand {
	return rand.New(rand.NewSource(c.Next()))
}
