package main

import (
	"fmt"
	"os"

	"github.com/samuelfneumann/pharmsim/agent/random"
	"github.com/samuelfneumann/pharmsim/environment/pharmacy/render"
	"github.com/spf13/cobra"
)

func newRenderCmd() *cobra.Command {
	var (
		steps   int
		pngPath string
		cell    float64
		plain   bool
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Reset an environment, take random steps, and draw it",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := loadConfig()
			if err != nil {
				return err
			}

			e, step, err := c.Create(seed)
			if err != nil {
				return err
			}
			s, ok := e.(render.Snapshotter)
			if !ok {
				return fmt.Errorf("render: environment %v cannot be rendered",
					c.Environment)
			}

			a, err := random.New(e, seed)
			if err != nil {
				return err
			}
			for i := 0; i < steps && !step.Last(); i++ {
				step, _, err = e.Step(a.SelectAction(step))
				if err != nil {
					return err
				}
			}

			if err := render.NewText(!plain).Render(os.Stdout,
				s.Snapshot()); err != nil {
				return err
			}
			fmt.Println(step)

			if pngPath != "" {
				return render.SavePNG(pngPath, s.Snapshot(), cell)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&steps, "steps", "n", 0,
		"random steps to take before rendering")
	cmd.Flags().StringVar(&pngPath, "png", "", "also save a PNG image here")
	cmd.Flags().Float64Var(&cell, "cell", 40, "PNG cell size in pixels")
	cmd.Flags().BoolVar(&plain, "plain", false, "disable colours")

	return cmd
}
