// Package random implements an agent that selects discrete actions
// uniformly at random and never learns
package random

import (
	"fmt"

	"golang.org/x/exp/rand"

	env "github.com/samuelfneumann/pharmsim/environment"
	ts "github.com/samuelfneumann/pharmsim/timestep"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

// Random is an agent.Agent that selects actions uniformly at random
// from the discrete actions of an environment. Its Learner methods
// do nothing.
type Random struct {
	actions distuv.Categorical
}

// New returns a new Random agent for environment e, seeded with seed
func New(e env.Environment, seed uint64) (*Random, error) {
	spec := e.ActionSpec()
	if spec.Shape.Len() != 1 {
		return nil, fmt.Errorf("new: random agent can only be used with " +
			"1-dimensional actions")
	}
	if spec.Cardinality != env.Discrete {
		return nil, fmt.Errorf("new: random agent can only be used with " +
			"discrete actions")
	}

	// Weights for the uniform categorical distribution
	weights := make([]float64, spec.Actions())
	for i := range weights {
		weights[i] = 1.0 / float64(len(weights))
	}

	return &Random{distuv.NewCategorical(weights, rand.NewSource(seed))}, nil
}

// SelectAction returns a uniformly random action
func (r *Random) SelectAction(ts.TimeStep) *mat.VecDense {
	return env.NewAction(int(r.actions.Rand()))
}

// Step does nothing
func (r *Random) Step() error { return nil }

// Observe does nothing
func (r *Random) Observe(*mat.VecDense, ts.TimeStep) error { return nil }

// ObserveFirst does nothing
func (r *Random) ObserveFirst(ts.TimeStep) error { return nil }

// EndEpisode does nothing
func (r *Random) EndEpisode() {}
