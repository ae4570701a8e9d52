package dispatch

import (
	"fmt"

	env "github.com/samuelfneumann/pharmsim/environment"
)

const (
	DefaultPharmacies  int = 5
	DefaultMedications int = 3
	DefaultVehicles    int = 2
	DefaultGridSize    int = 10
	DefaultMinStock    int = 10
	DefaultMaxStock    int = 50
)

// Config configures the sizes of a Dispatch environment. Stock is
// sampled from [MinStock, MaxStock) and all cells from a GridSize ×
// GridSize grid.
type Config struct {
	Pharmacies  int
	Medications int
	Vehicles    int
	GridSize    int
	MinStock    int
	MaxStock    int
}

// DefaultConfig returns the default Dispatch configuration
func DefaultConfig() Config {
	return Config{
		Pharmacies:  DefaultPharmacies,
		Medications: DefaultMedications,
		Vehicles:    DefaultVehicles,
		GridSize:    DefaultGridSize,
		MinStock:    DefaultMinStock,
		MaxStock:    DefaultMaxStock,
	}
}

// Validate returns an error if the Config cannot describe a Dispatch
// environment
func (c Config) Validate() error {
	switch {
	case c.Pharmacies < 1:
		return fmt.Errorf("%w: need at least one pharmacy, have %d",
			env.ErrInvalidConfig, c.Pharmacies)
	case c.Medications < 1:
		return fmt.Errorf("%w: need at least one medication, have %d",
			env.ErrInvalidConfig, c.Medications)
	case c.Vehicles < 1:
		return fmt.Errorf("%w: need at least one vehicle, have %d",
			env.ErrInvalidConfig, c.Vehicles)
	case c.GridSize < 1:
		return fmt.Errorf("%w: grid size must be positive, have %d",
			env.ErrInvalidConfig, c.GridSize)
	case c.MinStock < 0 || c.MaxStock <= c.MinStock:
		return fmt.Errorf("%w: stock range [%d, %d) is empty or negative",
			env.ErrInvalidConfig, c.MinStock, c.MaxStock)
	}
	return nil
}

// Actions returns the number of legal actions, one per (pharmacy,
// vehicle) pair
func (c Config) Actions() int {
	return c.Pharmacies * c.Vehicles
}

// ObservationDims returns the length of observation vectors
func (c Config) ObservationDims() int {
	return c.Pharmacies*c.Medications + c.Medications + 2 + 2*c.Vehicles
}
