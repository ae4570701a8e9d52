package pickup

import (
	"fmt"

	env "github.com/samuelfneumann/pharmsim/environment"
	"github.com/samuelfneumann/pharmsim/environment/pharmacy/internal/world"
	"gonum.org/v1/gonum/spatial/r1"
	"gonum.org/v1/gonum/spatial/r2"
)

// State is the state of a Pickup environment at the start of an
// episode
type State struct {
	Stock      [][]int // Indexed by [pharmacy][medication]
	Request    []int   // Quantity requested per medication
	Patient    r2.Vec
	Pharmacies []r2.Vec
	Vehicle    r2.Vec
}

// Starter samples starting states for Pickup environments
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
	bounds := r1.Interval{Min: 0, Max: c.Bound}

	stock := world.RandomInventory(s, c.Pharmacies, c.Medications,
		c.MinStock, c.MaxStock)
	request := world.RandomRequest(s, c.Medications, c.MinRequest,
		c.MaxRequest)

	quantities := make([]int, c.Medications)
	for m := range quantities {
		quantities[m] = request.Original(m)
	}

	pharmacies := make([]r2.Vec, c.Pharmacies)
	for p := range pharmacies {
		pharmacies[p] = s.Point(bounds)
	}

	return State{
		Stock:      stock.Table(),
		Request:    quantities,
		Patient:    s.Point(bounds),
		Pharmacies: pharmacies,
		Vehicle:    s.Point(bounds),
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
		Stock:      stock,
		Request:    append([]int(nil), f.state.Request...),
		Patient:    f.state.Patient,
		Pharmacies: append([]r2.Vec(nil), f.state.Pharmacies...),
		Vehicle:    f.state.Vehicle,
	}, nil
}

// validate checks that the state s can be a state of an environment
// configured by c
func (s State) validate(c Config) error {
	if len(s.Stock) != c.Pharmacies || len(s.Pharmacies) != c.Pharmacies {
		return fmt.Errorf("%w: have stock for %d and locations for %d "+
			"pharmacies, want %d", env.ErrInvalidConfig, len(s.Stock),
			len(s.Pharmacies), c.Pharmacies)
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
	if len(s.Request) != c.Medications {
		return fmt.Errorf("%w: request has %d medications, want %d",
			env.ErrInvalidConfig, len(s.Request), c.Medications)
	}
	for m, q := range s.Request {
		if q < 0 || q > c.MaxRequest {
			return fmt.Errorf("%w: request %d of medication %d ∉ [0, %d]",
				env.ErrInvalidConfig, q, m, c.MaxRequest)
		}
	}

	bounds := r1.Interval{Min: 0, Max: c.Bound}
	points := append([]r2.Vec{s.Patient, s.Vehicle}, s.Pharmacies...)
	for _, p := range points {
		if world.ClampPoint(p, bounds) != p {
			return fmt.Errorf("%w: position %v outside [0, %v]²",
				env.ErrInvalidConfig, p, c.Bound)
		}
	}
	return nil
}
