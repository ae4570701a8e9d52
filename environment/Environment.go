// Package environment outlines the interfaces and structs needed to
// implement concrete environments
package environment

import (
	"errors"

	ts "github.com/samuelfneumann/pharmsim/timestep"
	"gonum.org/v1/gonum/mat"
)

var (
	// ErrIllegalAction is returned by Step when the action is not a
	// legal action of the environment. The environment state is left
	// unchanged.
	ErrIllegalAction = errors.New("illegal action")

	// ErrEpisodeOver is returned by Step when the last timestep of an
	// episode has already been returned and Reset has not been called.
	ErrEpisodeOver = errors.New("episode is over, call Reset")

	// ErrInvalidConfig is returned by constructors given a configuration
	// that cannot describe a valid environment.
	ErrInvalidConfig = errors.New("invalid configuration")
)

// Ender determines when episodes should be ended. End returns whether
// the argument TimeStep is the last in the episode and, if so, adjusts
// its StepType and EndType.
type Ender interface {
	End(*ts.TimeStep) bool
}

// Environment implements a simulated episodic environment.
//
// Reset starts a new episode and returns its first TimeStep. Step
// takes one environmental step with a 1-dimensional action and returns
// the next TimeStep along with whether that TimeStep is the last in
// the episode. The observation shapes of all TimeSteps returned by an
// Environment are equal.
type Environment interface {
	Reset() (ts.TimeStep, error)
	Step(action *mat.VecDense) (ts.TimeStep, bool, error)
	CurrentTimeStep() ts.TimeStep

	ActionSpec() Spec
	ObservationSpec() Spec
	DiscountSpec() Spec
	RewardSpec() Spec
}
