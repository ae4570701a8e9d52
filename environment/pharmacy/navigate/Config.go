package navigate

import (
	"fmt"

	env "github.com/samuelfneumann/pharmsim/environment"
)

const (
	DefaultRows      int = 5
	DefaultCols      int = 5
	DefaultGoals     int = 3
	DefaultObstacles int = 3
	DefaultStepLimit int = 100
)

// Rewards
const (
	StepCost         float64 = -1.0
	GoalReward       float64 = 50.0
	CollisionPenalty float64 = -5.0

	// DefaultCompletionBonus is added to the goal reward when the last
	// goal is collected
	DefaultCompletionBonus float64 = 0.0
)

// Config configures a Navigate environment on a Rows × Cols grid
type Config struct {
	Rows            int
	Cols            int
	Goals           int
	Obstacles       int
	StepLimit       int
	CompletionBonus float64
}

// DefaultConfig returns the default Navigate configuration
func DefaultConfig() Config {
	return Config{
		Rows:            DefaultRows,
		Cols:            DefaultCols,
		Goals:           DefaultGoals,
		Obstacles:       DefaultObstacles,
		StepLimit:       DefaultStepLimit,
		CompletionBonus: DefaultCompletionBonus,
	}
}

// Validate returns an error if the Config cannot describe a Navigate
// environment
func (c Config) Validate() error {
	switch {
	case c.Rows < 1 || c.Cols < 1:
		return fmt.Errorf("%w: grid must have at least one cell, have %dx%d",
			env.ErrInvalidConfig, c.Rows, c.Cols)
	case c.Goals < 1:
		return fmt.Errorf("%w: need at least one goal, have %d",
			env.ErrInvalidConfig, c.Goals)
	case c.Obstacles < 0:
		return fmt.Errorf("%w: negative obstacle count %d",
			env.ErrInvalidConfig, c.Obstacles)
	case c.Goals+c.Obstacles+1 > c.Rows*c.Cols:
		return fmt.Errorf("%w: %d goals, %d obstacles, and a start cell do "+
			"not fit in a %dx%d grid", env.ErrInvalidConfig, c.Goals,
			c.Obstacles, c.Rows, c.Cols)
	case c.StepLimit < 1:
		return fmt.Errorf("%w: step limit must be positive, have %d",
			env.ErrInvalidConfig, c.StepLimit)
	}
	return nil
}

// ObservationDims returns the length of observation vectors
func (c Config) ObservationDims() int {
	return 2 + 2*c.Rows*c.Cols
}
