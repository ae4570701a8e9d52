package wrappers

import (
	"log"

	env "github.com/samuelfneumann/pharmsim/environment"
	ts "github.com/samuelfneumann/pharmsim/timestep"
	"gonum.org/v1/gonum/mat"
)

// Monitor wraps an environment and logs a summary line for every
// episode that ends: its number, length, return, and how it ended.
//
// Monitor itself implements the environment.Environment interface
// and is therefore itself an environment.
type Monitor struct {
	env.Environment
	logger *log.Logger

	episodes      int
	episodeReturn float64
}

// NewMonitor returns a new Monitor wrapping e that logs to logger
func NewMonitor(e env.Environment, logger *log.Logger) *Monitor {
	return &Monitor{Environment: e, logger: logger}
}

// Reset resets the wrapped environment and starts tracking a new
// episode
func (m *Monitor) Reset() (ts.TimeStep, error) {
	m.episodeReturn = 0
	return m.Environment.Reset()
}

// Step steps the wrapped environment, logging a summary if the
// episode ends
func (m *Monitor) Step(a *mat.VecDense) (ts.TimeStep, bool, error) {
	step, last, err := m.Environment.Step(a)
	if err != nil {
		return step, last, err
	}

	m.episodeReturn += step.Reward
	if last {
		m.episodes++
		m.logger.Printf("episode %d  |  length: %d  |  return: %.2f  |  "+
			"end: %v", m.episodes, step.Number, m.episodeReturn,
			step.EndType())
	}
	return step, last, nil
}

// Episodes returns the number of episodes that have ended
func (m *Monitor) Episodes() int {
	return m.episodes
}
