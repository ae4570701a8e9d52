// Package envconfig provides configuration structs for configuring
// pharmacy environments. Configurations select an environment variant
// by name and are JSON and YAML serializable.
package envconfig

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	env "github.com/samuelfneumann/pharmsim/environment"
	"github.com/samuelfneumann/pharmsim/environment/pharmacy/dispatch"
	"github.com/samuelfneumann/pharmsim/environment/pharmacy/navigate"
	"github.com/samuelfneumann/pharmsim/environment/pharmacy/pickup"
	ts "github.com/samuelfneumann/pharmsim/timestep"
	"gopkg.in/yaml.v3"
)

// EnvName stores the name of environments that can be configured with
// this package
type EnvName string

// Environments available for configuration
const (
	Dispatch EnvName = "Dispatch"
	Pickup   EnvName = "Pickup"
	Navigate EnvName = "Navigate"
)

// Config implements a specific configuration of a specific
// environment. Only the section matching Environment is used; missing
// sections take the default configuration of their environment.
type Config struct {
	Environment EnvName `json:"environment" yaml:"environment"`
	Discount    float64 `json:"discount" yaml:"discount"`

	Dispatch *DispatchConfig `json:"dispatch,omitempty" yaml:"dispatch,omitempty"`
	Pickup   *PickupConfig   `json:"pickup,omitempty" yaml:"pickup,omitempty"`
	Navigate *NavigateConfig `json:"navigate,omitempty" yaml:"navigate,omitempty"`
}

// DispatchConfig configures the Dispatch environment
type DispatchConfig struct {
	Pharmacies  int `json:"pharmacies" yaml:"pharmacies"`
	Medications int `json:"medications" yaml:"medications"`
	Vehicles    int `json:"vehicles" yaml:"vehicles"`
	GridSize    int `json:"grid_size" yaml:"grid_size"`
	MinStock    int `json:"min_stock" yaml:"min_stock"`
	MaxStock    int `json:"max_stock" yaml:"max_stock"`
}

// PickupConfig configures the Pickup environment
type PickupConfig struct {
	Pharmacies  int     `json:"pharmacies" yaml:"pharmacies"`
	Medications int     `json:"medications" yaml:"medications"`
	MinStock    int     `json:"min_stock" yaml:"min_stock"`
	MaxStock    int     `json:"max_stock" yaml:"max_stock"`
	MinRequest  int     `json:"min_request" yaml:"min_request"`
	MaxRequest  int     `json:"max_request" yaml:"max_request"`
	Bound       float64 `json:"bound" yaml:"bound"`
	StepLimit   int     `json:"step_limit" yaml:"step_limit"`
}

// NavigateConfig configures the Navigate environment
type NavigateConfig struct {
	Rows            int     `json:"rows" yaml:"rows"`
	Cols            int     `json:"cols" yaml:"cols"`
	Goals           int     `json:"goals" yaml:"goals"`
	Obstacles       int     `json:"obstacles" yaml:"obstacles"`
	StepLimit       int     `json:"step_limit" yaml:"step_limit"`
	CompletionBonus float64 `json:"completion_bonus" yaml:"completion_bonus"`
}

// NewConfig returns a new environment Config for environment envName
// with the default parameters of that environment
func NewConfig(envName EnvName, discount float64) Config {
	c := Config{Environment: envName, Discount: discount}

	switch envName {
	case Dispatch:
		d := dispatch.DefaultConfig()
		c.Dispatch = &DispatchConfig{d.Pharmacies, d.Medications,
			d.Vehicles, d.GridSize, d.MinStock, d.MaxStock}

	case Pickup:
		p := pickup.DefaultConfig()
		c.Pickup = &PickupConfig{p.Pharmacies, p.Medications, p.MinStock,
			p.MaxStock, p.MinRequest, p.MaxRequest, p.Bound, p.StepLimit}

	case Navigate:
		n := navigate.DefaultConfig()
		c.Navigate = &NavigateConfig{n.Rows, n.Cols, n.Goals, n.Obstacles,
			n.StepLimit, n.CompletionBonus}
	}
	return c
}

// Validate returns an error if the Config does not describe a valid
// environment
func (c Config) Validate() error {
	if c.Discount < 0 || c.Discount > 1 {
		return fmt.Errorf("validate: %w: discount %v ∉ [0, 1]",
			env.ErrInvalidConfig, c.Discount)
	}

	var err error
	switch c.Environment {
	case Dispatch:
		err = c.DispatchConfig().Validate()
	case Pickup:
		err = c.PickupConfig().Validate()
	case Navigate:
		err = c.NavigateConfig().Validate()
	default:
		err = fmt.Errorf("%w: no such environment %q", env.ErrInvalidConfig,
			c.Environment)
	}
	if err != nil {
		return fmt.Errorf("validate: %w", err)
	}
	return nil
}

// DispatchConfig returns the dispatch.Config described by c
func (c Config) DispatchConfig() dispatch.Config {
	if c.Dispatch == nil {
		return dispatch.DefaultConfig()
	}
	d := c.Dispatch
	return dispatch.Config{
		Pharmacies:  d.Pharmacies,
		Medications: d.Medications,
		Vehicles:    d.Vehicles,
		GridSize:    d.GridSize,
		MinStock:    d.MinStock,
		MaxStock:    d.MaxStock,
	}
}

// PickupConfig returns the pickup.Config described by c
func (c Config) PickupConfig() pickup.Config {
	if c.Pickup == nil {
		return pickup.DefaultConfig()
	}
	p := c.Pickup
	return pickup.Config{
		Pharmacies:  p.Pharmacies,
		Medications: p.Medications,
		MinStock:    p.MinStock,
		MaxStock:    p.MaxStock,
		MinRequest:  p.MinRequest,
		MaxRequest:  p.MaxRequest,
		Bound:       p.Bound,
		StepLimit:   p.StepLimit,
	}
}

// NavigateConfig returns the navigate.Config described by c
func (c Config) NavigateConfig() navigate.Config {
	if c.Navigate == nil {
		return navigate.DefaultConfig()
	}
	n := c.Navigate
	return navigate.Config{
		Rows:            n.Rows,
		Cols:            n.Cols,
		Goals:           n.Goals,
		Obstacles:       n.Obstacles,
		StepLimit:       n.StepLimit,
		CompletionBonus: n.CompletionBonus,
	}
}

// Create returns the environment described by the Config as well as
// the first timestep of the environment. All randomness of the
// environment is drawn from a source seeded with seed.
func (c Config) Create(seed uint64) (env.Environment, ts.TimeStep, error) {
	if err := c.Validate(); err != nil {
		return nil, ts.TimeStep{}, fmt.Errorf("create: %w", err)
	}

	var e env.Environment
	var step ts.TimeStep
	var err error

	switch c.Environment {
	case Dispatch:
		e, step, err = dispatch.NewUniform(c.DispatchConfig(), seed, c.Discount)

	case Pickup:
		e, step, err = pickup.NewUniform(c.PickupConfig(), seed, c.Discount)

	case Navigate:
		e, step, err = navigate.NewUniform(c.NavigateConfig(), seed, c.Discount)
	}
	if err != nil {
		return nil, ts.TimeStep{}, fmt.Errorf("create: %w", err)
	}
	return e, step, nil
}

// Load reads a Config from a JSON or YAML file, choosing the format
// from the file extension (.json, .yaml, or .yml)
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("load: could not read config: %v", err)
	}

	c, err := Decode(data, filepath.Ext(path))
	if err != nil {
		return Config{}, fmt.Errorf("load: %w", err)
	}
	return c, nil
}

// Decode decodes a Config from data in the format given by ext, one
// of .json, .yaml, or .yml. The decoded Config is validated.
func Decode(data []byte, ext string) (Config, error) {
	var c Config
	var err error

	switch strings.ToLower(ext) {
	case ".json":
		err = json.Unmarshal(data, &c)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &c)
	default:
		return Config{}, fmt.Errorf("decode: unknown config format %q", ext)
	}
	if err != nil {
		return Config{}, fmt.Errorf("decode: %v", err)
	}

	if err := c.Validate(); err != nil {
		return Config{}, fmt.Errorf("decode: %w", err)
	}
	return c, nil
}
