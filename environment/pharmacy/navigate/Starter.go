package navigate

import (
	"fmt"

	env "github.com/samuelfneumann/pharmsim/environment"
	"github.com/samuelfneumann/pharmsim/environment/pharmacy/internal/world"
)

// State is the state of a Navigate environment at the start of an
// episode. Cells are given as (row, column).
type State struct {
	Start     [2]int
	Goals     [][2]int
	Obstacles [][2]int
}

// Starter samples starting states for Navigate environments
type Starter interface {
	Start() (State, error)
}

// UniformStarter samples the start cell, goals, and obstacles as
// distinct uniformly random cells, using its own seeded random source
type UniformStarter struct {
	config Config
	source *world.Source
}

// NewUniformStarter returns a new UniformStarter
func NewUniformStarter(c Config, seed uint64) (*UniformStarter, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("newUniformStarter: %w", err)
	}
	return &UniformStarter{c, world.NewSource(seed)}, nil
}

// Start returns a new starting state
func (u *UniformStarter) Start() (State, error) {
	c := u.config
	cells := u.source.Perm(c.Rows * c.Cols)

	toCell := func(i int) [2]int {
		cell := world.CellAt(i, c.Cols)
		return [2]int{cell.Row, cell.Col}
	}

	state := State{
		Start:     toCell(cells[0]),
		Goals:     make([][2]int, c.Goals),
		Obstacles: make([][2]int, c.Obstacles),
	}
	for i := range state.Goals {
		state.Goals[i] = toCell(cells[1+i])
	}
	for i := range state.Obstacles {
		state.Obstacles[i] = toCell(cells[1+c.Goals+i])
	}
	return state, nil
}

// FixedStarter always starts episodes in the same state
type FixedStarter struct {
	state State
}

// NewFixedStarter returns a new FixedStarter
func NewFixedStarter(s State) *FixedStarter {
	return &FixedStarter{s}
}

// Start returns a copy of the fixed starting state
func (f *FixedStarter) Start() (State, error) {
	return State{
		Start:     f.state.Start,
		Goals:     append([][2]int(nil), f.state.Goals...),
		Obstacles: append([][2]int(nil), f.state.Obstacles...),
	}, nil
}

// validate checks that the state s can be a state of an environment
// on a grid of rows × cols. Goals may not coincide with each other or
// the start cell, and obstacles may not coincide with goals or the
// start cell.
func (s State) validate(rows, cols int) error {
	if len(s.Goals) == 0 {
		return fmt.Errorf("%w: need at least one goal", env.ErrInvalidConfig)
	}

	start := world.Cell{Row: s.Start[0], Col: s.Start[1]}
	if !start.In(rows, cols) {
		return fmt.Errorf("%w: start %v outside %dx%d grid",
			env.ErrInvalidConfig, s.Start, rows, cols)
	}

	taken := world.NewCellSet(start)
	cells := append(append([][2]int(nil), s.Goals...), s.Obstacles...)
	for _, c := range cells {
		cell := world.Cell{Row: c[0], Col: c[1]}
		if !cell.In(rows, cols) {
			return fmt.Errorf("%w: cell %v outside %dx%d grid",
				env.ErrInvalidConfig, c, rows, cols)
		}
		if taken.Has(cell) {
			return fmt.Errorf("%w: cell %v is used more than once",
				env.ErrInvalidConfig, c)
		}
		taken[cell] = struct{}{}
	}
	return nil
}
