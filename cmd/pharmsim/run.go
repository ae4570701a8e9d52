package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/samuelfneumann/pharmsim/agent/random"
	"github.com/samuelfneumann/pharmsim/environment/envconfig"
	"github.com/samuelfneumann/pharmsim/environment/wrappers"
	"github.com/samuelfneumann/pharmsim/experiment"
	"github.com/samuelfneumann/pharmsim/experiment/trackers"
	"github.com/samuelfneumann/pharmsim/utils/progressbar"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/stat"
)

func newRunCmd() *cobra.Command {
	var (
		steps   uint
		workers int
		outDir  string
		verbose bool
		avgRate float64
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a uniform random policy and report episode returns",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := loadConfig()
			if err != nil {
				return err
			}
			if workers < 1 {
				return fmt.Errorf("run: need at least one worker, have %d",
					workers)
			}
			return run(c, steps, workers, outDir, verbose, avgRate)
		},
	}

	cmd.Flags().UintVarP(&steps, "steps", "n", 10_000,
		"environment steps per worker")
	cmd.Flags().IntVarP(&workers, "workers", "w", 1,
		"independent environments run concurrently")
	cmd.Flags().StringVarP(&outDir, "out", "o", "",
		"directory to save returns and episode lengths to")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false,
		"log every episode")
	cmd.Flags().Float64Var(&avgRate, "differential", 0,
		"if positive, track differential rewards with this average "+
			"reward learning rate")

	return cmd
}

// worker is one independent environment, agent, and their trackers
type worker struct {
	exp     *experiment.Online
	returns *trackers.Return
	lengths *trackers.EpisodeLength
}

func run(c envconfig.Config, steps uint, workers int, outDir string,
	verbose bool, avgRate float64) error {
	runID := uuid.New().String()
	log.Printf("run %v  |  environment: %v  |  seed: %v  |  workers: %v",
		runID, c.Environment, seed, workers)

	ws := make([]worker, workers)
	for i := range ws {
		workerSeed := seed + uint64(i)
		e, _, err := c.Create(workerSeed)
		if err != nil {
			return fmt.Errorf("run: could not create environment: %w", err)
		}
		if avgRate > 0 {
			if e, err = wrappers.NewAverageReward(e, 0, avgRate); err != nil {
				return fmt.Errorf("run: %w", err)
			}
		}
		if verbose {
			prefix := fmt.Sprintf("[worker %d] ", i)
			e = wrappers.NewMonitor(e, log.New(os.Stderr, prefix, 0))
		}

		a, err := random.New(e, workerSeed)
		if err != nil {
			return fmt.Errorf("run: could not create agent: %w", err)
		}

		file := func(name string) string {
			return filepath.Join(outDir, fmt.Sprintf("%v-%d-%v.bin%v", runID,
				i, name, trackers.Zstd))
		}
		ws[i] = worker{
			returns: trackers.NewReturn(file("return")),
			lengths: trackers.NewEpisodeLength(file("length")),
		}
		ws[i].exp = experiment.NewOnline(e, a, steps, ws[i].returns,
			ws[i].lengths)
	}

	if workers == 1 {
		if err := runWithProgress(ws[0].exp, steps); err != nil {
			return err
		}
	} else {
		exps := make([]experiment.Experiment, len(ws))
		for i := range ws {
			exps[i] = ws[i].exp
		}
		for i, err := range experiment.RunConcurrent(exps...) {
			if err != nil {
				return fmt.Errorf("run: worker %d: %w", i, err)
			}
		}
	}

	for i, w := range ws {
		returns := w.returns.Data()
		lengths := w.lengths.Data()
		if len(returns) == 0 {
			fmt.Printf("worker %d: no finished episodes\n", i)
			continue
		}
		fmt.Printf("worker %d: %d episodes  |  mean return: %.2f  |  "+
			"mean length: %.2f\n", i, len(returns), stat.Mean(returns, nil),
			stat.Mean(lengths, nil))

		if outDir != "" {
			if err := w.exp.Save(); err != nil {
				return fmt.Errorf("run: worker %d: %w", i, err)
			}
		}
	}
	return nil
}

// runWithProgress runs an experiment episode by episode, displaying
// the fraction of steps completed
func runWithProgress(exp *experiment.Online, steps uint) error {
	bar := progressbar.NewManualProgressBar(os.Stdout, 50, int(steps))
	var shown uint
	for {
		done, err := exp.RunEpisode()
		if err != nil {
			return err
		}
		for ; shown < exp.Steps(); shown++ {
			bar.Increment()
		}
		bar.Display()

		if done {
			fmt.Println()
			return nil
		}
	}
}
