package pickup

import (
	"fmt"

	env "github.com/samuelfneumann/pharmsim/environment"
)

const (
	DefaultPharmacies  int     = 5
	DefaultMedications int     = 3
	DefaultMinStock    int     = 0
	DefaultMaxStock    int     = 6
	DefaultMinRequest  int     = 0
	DefaultMaxRequest  int     = 3
	DefaultBound       float64 = 10.0
	DefaultStepLimit   int     = 50
)

// Config configures a Pickup environment. Stock is sampled from
// [MinStock, MaxStock), requested quantities from [MinRequest,
// MaxRequest), and all positions from the square [0, Bound]².
type Config struct {
	Pharmacies  int
	Medications int
	MinStock    int
	MaxStock    int
	MinRequest  int
	MaxRequest  int
	Bound       float64
	StepLimit   int
}

// DefaultConfig returns the default Pickup configuration
func DefaultConfig() Config {
	return Config{
		Pharmacies:  DefaultPharmacies,
		Medications: DefaultMedications,
		MinStock:    DefaultMinStock,
		MaxStock:    DefaultMaxStock,
		MinRequest:  DefaultMinRequest,
		MaxRequest:  DefaultMaxRequest,
		Bound:       DefaultBound,
		StepLimit:   DefaultStepLimit,
	}
}

// Validate returns an error if the Config cannot describe a Pickup
// environment
func (c Config) Validate() error {
	switch {
	case c.Pharmacies < 1:
		return fmt.Errorf("%w: need at least one pharmacy, have %d",
			env.ErrInvalidConfig, c.Pharmacies)
	case c.Medications < 1:
		return fmt.Errorf("%w: need at least one medication, have %d",
			env.ErrInvalidConfig, c.Medications)
	case c.MinStock < 0 || c.MaxStock <= c.MinStock:
		return fmt.Errorf("%w: stock range [%d, %d) is empty or negative",
			env.ErrInvalidConfig, c.MinStock, c.MaxStock)
	case c.MinRequest < 0 || c.MaxRequest <= c.MinRequest:
		return fmt.Errorf("%w: request range [%d, %d) is empty or negative",
			env.ErrInvalidConfig, c.MinRequest, c.MaxRequest)
	case c.Bound <= 0:
		return fmt.Errorf("%w: bound must be positive, have %v",
			env.ErrInvalidConfig, c.Bound)
	case c.StepLimit < 1:
		return fmt.Errorf("%w: step limit must be positive, have %d",
			env.ErrInvalidConfig, c.StepLimit)
	}
	return nil
}

// ObservationDims returns the length of observation vectors
func (c Config) ObservationDims() int {
	return c.Pharmacies*c.Medications + 2*c.Medications + 2 +
		2*c.Pharmacies + 2
}
