// Package world implements the entities shared by the pharmacy
// environments: seeded random sources, inventories, request vectors,
// positions, and observation encoding.
package world

import (
	"golang.org/x/exp/rand"

	"gonum.org/v1/gonum/spatial/r1"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/stat/distuv"
)

// Source is a seeded pseudo-random source owned by a single
// environment. Sources are never shared between environments, so that
// environments driven concurrently never share hidden random state.
type Source struct {
	rng *rand.Rand
	src rand.Source
}

// NewSource returns a new Source seeded with seed
func NewSource(seed uint64) *Source {
	src := rand.NewSource(seed)
	return &Source{rng: rand.New(src), src: src}
}

// IntRange returns a uniform random integer in [min, max)
func (s *Source) IntRange(min, max int) int {
	if max <= min {
		return min
	}
	return min + s.rng.Intn(max-min)
}

// Perm returns a uniform random permutation of [0, n)
func (s *Source) Perm(n int) []int {
	return s.rng.Perm(n)
}

// Point returns a uniform random point in the square bounds × bounds
func (s *Source) Point(bounds r1.Interval) r2.Vec {
	u := distuv.Uniform{Min: bounds.Min, Max: bounds.Max, Src: s.src}
	return r2.Vec{X: u.Rand(), Y: u.Rand()}
}
