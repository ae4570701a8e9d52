package dispatch

import (
	"fmt"

	env "github.com/samuelfneumann/pharmsim/environment"
	"github.com/samuelfneumann/pharmsim/environment/pharmacy/internal/world"
)

// State is the state of a Dispatch environment at the start of an
// episode. Cells are given as (row, column).
type State struct {
	Stock    [][]int // Indexed by [pharmacy][medication]
	Request  int     // Medication the patient requests
	Patient  [2]int
	Vehicles [][2]int
}

// Starter samples starting states for Dispatch environments
type Starter interface {
	Start() (State, error)
}

// UniformStarter samples every quantity in a starting state uniformly
// from the ranges of a Config, using its own seeded random source
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
	s := u.source

	stock := make([][]int, c.Pharmacies)
	for p := range stock {
		stock[p] = make([]int, c.Medications)
		for m := range stock[p] {
			stock[p][m] = s.IntRange(c.MinStock, c.MaxStock)
		}
	}

	vehicles := make([][2]int, c.Vehicles)
	for v := range vehicles {
		vehicles[v] = [2]int{
			s.IntRange(0, c.GridSize),
			s.IntRange(0, c.GridSize),
		}
	}

	return State{
		Stock:    stock,
		Request:  s.IntRange(0, c.Medications),
		Patient:  [2]int{s.IntRange(0, c.GridSize), s.IntRange(0, c.GridSize)},
		Vehicles: vehicles,
	}, nil
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
	stock := make([][]int, len(f.state.Stock))
	for p := range stock {
		stock[p] = append([]int(nil), f.state.Stock[p]...)
	}

	return State{
		Stock:    stock,
		Request:  f.state.Request,
		Patient:  f.state.Patient,
		Vehicles: append([][2]int(nil), f.state.Vehicles...),
	}, nil
}

// validate checks that the state s can be a state of an environment
// configured by c
func (s State) validate(c Config) error {
	if len(s.Stock) != c.Pharmacies {
		return fmt.Errorf("%w: have stock for %d pharmacies, want %d",
			env.ErrInvalidConfig, len(s.Stock), c.Pharmacies)
	}
	for p := range s.Stock {
		if len(s.Stock[p]) != c.Medications {
			return fmt.Errorf("%w: pharmacy %d stocks %d medications, want %d",
				env.ErrInvalidConfig, p, len(s.Stock[p]), c.Medications)
		}
		for m, q := range s.Stock[p] {
			if q < 0 || q > c.MaxStock {
				return fmt.Errorf("%w: stock %d of medication %d at pharmacy "+
					"%d ∉ [0, %d]", env.ErrInvalidConfig, q, m, p, c.MaxStock)
			}
		}
	}
	if s.Request < 0 || s.Request >= c.Medications {
		return fmt.Errorf("%w: request %d ∉ [0, %d)", env.ErrInvalidConfig,
			s.Request, c.Medications)
	}
	if len(s.Vehicles) != c.Vehicles {
		return fmt.Errorf("%w: have %d vehicles, want %d", env.ErrInvalidConfig,
			len(s.Vehicles), c.Vehicles)
	}

	cells := append([][2]int{s.Patient}, s.Vehicles...)
	for _, cell := range cells {
		if !(world.Cell{Row: cell[0], Col: cell[1]}).In(c.GridSize, c.GridSize) {
			return fmt.Errorf("%w: cell %v outside %dx%d grid",
				env.ErrInvalidConfig, cell, c.GridSize, c.GridSize)
		}
	}
	return nil
}
