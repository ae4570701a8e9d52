package environment

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// SpecType determines what kind of specification a Spec is. A Spec can
// specify the layout of an action, an observation, a discount, or a
// reward
type SpecType int

const (
	Action SpecType = iota
	Observation
	Discount
	Reward
)

// Cardinality determines the cardinality of a number (discrete or continuous)
type Cardinality string

const (
	Continuous Cardinality = "Continuous"
	Discrete   Cardinality = "Discrete"
)

// Spec implements an environment specification, which tells the type,
// shape, and bounds of an action, observation, discount, or reward in
// an environment
type Spec struct {
	Shape      *mat.VecDense
	Type       SpecType
	LowerBound *mat.VecDense
	UpperBound *mat.VecDense
	Cardinality
}

// NewSpec constructs a new environment specification
// The shape argument outlines the shape of the data described by the
// specification. The argument t outlines what the specification is
// describing (e.g. actions, observations, etc.). The cardinality
// arguments describes whether the values that the spec describes are
// continuous or discrete.
func NewSpec(shape *mat.VecDense, t SpecType, lowerBound,
	upperBound *mat.VecDense, cardinality Cardinality) Spec {
	if shape.Len() != lowerBound.Len() {
		panic(fmt.Sprintf("shape length %v must match lower bounds length %v",
			shape.Len(), lowerBound.Len()))
	}
	if shape.Len() != upperBound.Len() {
		panic(fmt.Sprintf("shape length %v must match upper bounds length %v",
			shape.Len(), upperBound.Len()))
	}
	return Spec{shape, t, lowerBound, upperBound, cardinality}
}

// NewDiscreteActionSpec returns the specification of a 1-dimensional
// discrete action in {0, 1, ..., actions-1}
func NewDiscreteActionSpec(actions int) Spec {
	shape := mat.NewVecDense(1, nil)
	lowerBound := mat.NewVecDense(1, []float64{0})
	upperBound := mat.NewVecDense(1, []float64{float64(actions - 1)})

	return NewSpec(shape, Action, lowerBound, upperBound, Discrete)
}

// NewScalarSpec returns the specification of a single scalar bounded
// in [min, max], such as a reward or discount
func NewScalarSpec(t SpecType, min, max float64) Spec {
	shape := mat.NewVecDense(1, nil)
	lowerBound := mat.NewVecDense(1, []float64{min})
	upperBound := mat.NewVecDense(1, []float64{max})

	return NewSpec(shape, t, lowerBound, upperBound, Continuous)
}

// Actions returns the number of legal actions described by a discrete
// action Spec
func (s Spec) Actions() int {
	if s.Type != Action || s.Cardinality != Discrete {
		panic("actions: spec does not describe discrete actions")
	}
	return int(s.UpperBound.AtVec(0)) + 1
}

// DiscreteAction decodes a 1-dimensional action vector into an action
// index in [0, actions). Actions of the wrong dimension, non-integral
// actions, and actions out of range are illegal.
func DiscreteAction(action *mat.VecDense, actions int) (int, error) {
	if action == nil || action.Len() != 1 {
		return 0, fmt.Errorf("%w: actions must be 1-dimensional", ErrIllegalAction)
	}

	value := action.AtVec(0)
	index := int(value)
	if float64(index) != value {
		return 0, fmt.Errorf("%w: action %v is not an integer", ErrIllegalAction,
			value)
	}
	if index < 0 || index >= actions {
		return 0, fmt.Errorf("%w: action %v ∉ [0, %v)", ErrIllegalAction,
			index, actions)
	}
	return index, nil
}

// NewAction returns the 1-dimensional action vector for a discrete
// action index
func NewAction(index int) *mat.VecDense {
	return mat.NewVecDense(1, []float64{float64(index)})
}
