package wrappers

import (
	"fmt"

	env "github.com/samuelfneumann/pharmsim/environment"
	ts "github.com/samuelfneumann/pharmsim/timestep"
	"gonum.org/v1/gonum/mat"
)

// AverageReward wraps an environment and alters rewards so that the
// differential reward is returned for each action. This turns long
// runs of short episodes, such as repeated dispatch decisions, into a
// single undiscounted stream of rewards centred on the running
// average.
//
// The average reward is estimated as an exponential moving average of
// the environmental rewards:
//
//	avgReward <- avgReward + learningRate * (reward - avgReward)
//
// and each reward is replaced by reward - avgReward, using the
// estimate from before the update. The average persists across
// episodes.
//
// AverageReward itself implements the environment.Environment
// interface, and is therefore itself an Environment.
type AverageReward struct {
	env.Environment
	avgReward    float64
	learningRate float64
}

// NewAverageReward creates and returns a new AverageReward Environment
// wrapper. The init parameter is the initial value for the average
// reward, usually set to 0.
func NewAverageReward(e env.Environment, init,
	learningRate float64) (*AverageReward, error) {
	if learningRate <= 0 || learningRate > 1 {
		return nil, fmt.Errorf("newAverageReward: learning rate %v ∉ (0, 1]",
			learningRate)
	}
	return &AverageReward{e, init, learningRate}, nil
}

// Reset resets the wrapped environment. The average reward estimate is
// kept.
func (a *AverageReward) Reset() (ts.TimeStep, error) {
	step, err := a.Environment.Reset()
	step.Discount = 1.0
	return step, err
}

// Step takes one environmental step given action action and returns
// the next timestep with its differential reward
func (a *AverageReward) Step(action *mat.VecDense) (ts.TimeStep, bool,
	error) {
	step, last, err := a.Environment.Step(action)
	if err != nil {
		return step, last, err
	}

	reward := step.Reward
	step.Reward -= a.avgReward
	step.Discount = 1.0
	a.avgReward += a.learningRate * (reward - a.avgReward)

	return step, last, nil
}

// CurrentTimeStep returns the current timestep of the wrapped
// environment without discounting. Its reward is the environmental
// reward.
func (a *AverageReward) CurrentTimeStep() ts.TimeStep {
	step := a.Environment.CurrentTimeStep()
	step.Discount = 1.0
	return step
}

// Average returns the current average reward estimate
func (a *AverageReward) Average() float64 {
	return a.avgReward
}

// RewardSpec returns the reward specification for the environment.
// Differential rewards are bounded by the width of the wrapped
// environment's reward range.
func (a *AverageReward) RewardSpec() env.Spec {
	spec := a.Environment.RewardSpec()
	width := spec.UpperBound.AtVec(0) - spec.LowerBound.AtVec(0)
	return env.NewScalarSpec(env.Reward, -width, width)
}

// DiscountSpec returns the discount specification for the environment
// Average reward setting does not use discounting, so the discount
// value is always set to 1.0.
func (a *AverageReward) DiscountSpec() env.Spec {
	return env.NewScalarSpec(env.Discount, 1.0, 1.0)
}

// String returns a string representation of the AverageReward
// environment
func (a *AverageReward) String() string {
	return fmt.Sprintf("Average Reward (%.2f): %v", a.avgReward,
		a.Environment)
}
