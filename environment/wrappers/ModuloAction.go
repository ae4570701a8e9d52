// Package wrappers provides wrappers for environments
package wrappers

import (
	"fmt"
	"math"

	env "github.com/samuelfneumann/pharmsim/environment"
	ts "github.com/samuelfneumann/pharmsim/timestep"
	"gonum.org/v1/gonum/mat"
)

// ModuloAction wraps an environment with discrete actions and maps
// every integral action index into the legal range by taking it
// modulo the number of actions. Negative indices wrap from the end,
// so that -1 selects the last action.
//
// Environments reject out-of-range actions. ModuloAction is for
// callers that would rather wrap them, such as policies that emit
// raw network output indices.
//
// ModuloAction itself implements the environment.Environment interface
// and is therefore itself an environment.
type ModuloAction struct {
	env.Environment
	actions int
}

// NewModuloAction returns a new ModuloAction wrapping e. The wrapped
// environment must have a discrete action specification.
func NewModuloAction(e env.Environment) (*ModuloAction, error) {
	spec := e.ActionSpec()
	if spec.Cardinality != env.Discrete || spec.Shape.Len() != 1 {
		return nil, fmt.Errorf("newModuloAction: environment must have " +
			"1-dimensional discrete actions")
	}
	return &ModuloAction{e, spec.Actions()}, nil
}

// Step wraps the action into the legal range and steps the wrapped
// environment. Non-integral actions are still illegal.
func (m *ModuloAction) Step(a *mat.VecDense) (ts.TimeStep, bool, error) {
	if a == nil || a.Len() != 1 {
		return m.Environment.Step(a)
	}

	value := a.AtVec(0)
	if value != math.Trunc(value) {
		return m.Environment.Step(a)
	}

	index := int(value) % m.actions
	if index < 0 {
		index += m.actions
	}
	return m.Environment.Step(env.NewAction(index))
}
