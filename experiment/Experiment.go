// Package experiment implements functionality for running agents in
// environments
package experiment

import (
	"sync"

	"github.com/samuelfneumann/pharmsim/experiment/trackers"
	ts "github.com/samuelfneumann/pharmsim/timestep"
)

// Interface Experiment outlines structs that can run experiments.
// Experiments send each environment TimeStep to Trackers, which cache
// the data they need in RAM. The Save() function then saves the data
// of all Trackers. The Run() method runs episodes until the maximum
// timestep limit is reached. The RunEpisode() function runs a single
// episode.
type Experiment interface {
	Run() error
	RunEpisode() (bool, error) // Returns whether the step limit was reached

	// Tracks current timestep by sending it to Trackers
	track(ts.TimeStep)

	// Save all tracked data to disk
	Save() error

	// Adds a new trackers.Tracker to the (possibly already running)
	// experiment.
	Register(t trackers.Tracker)
}

// RunConcurrent runs each experiment to completion in its own
// goroutine and returns the error of each experiment. Experiments
// must not share environments or agents.
func RunConcurrent(exps ...Experiment) []error {
	errs := make([]error, len(exps))

	var wg sync.WaitGroup
	wg.Add(len(exps))
	for i := range exps {
		go func(i int) {
			defer wg.Done()
			errs[i] = exps[i].Run()
		}(i)
	}
	wg.Wait()

	return errs
}
