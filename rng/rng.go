// Package rng provides the single deterministic random source used by
// feature sampling and threshold sampling during tree training.
package rng

import "math/rand"

// Source is a seedable uniform generator. Each tree owned by the trainer
// gets its own Source so that per-tree training is deterministic and
// race-free under a fixed execution strategy.
type Source struct {
	r *rand.Rand
}

// New creates a Source seeded deterministically from seed.
func New(seed int64) *Source {
	return &Source{r: rand.New(rand.NewSource(seed))}
}

// NextInt returns a uniform integer in [min, maxExclusive).
func (s *Source) NextInt(min, maxExclusive int) int {
	if maxExclusive <= min {
		panic("rng: NextInt requires maxExclusive > min")
	}
	return min + s.r.Intn(maxExclusive-min)
}

// NextUnit returns a uniform float64 in [0, 1).
func (s *Source) NextUnit() float64 {
	return s.r.Float64()
}

// NextRange returns a uniform float64 in [min, max).
func (s *Source) NextRange(min, max float64) float64 {
	return min + s.r.Float64()*(max-min)
}

// Child derives a new, independent Source from this one, seeded with the
// parent's next Int63; the child shares no mutable state with its parent.
func (s *Source) Child() *Source {
	return New(s.r.Int63())
}
