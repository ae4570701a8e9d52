// Package dispatch implements the single-shot delivery dispatch
// pharmacy environment
package dispatch

import (
	"fmt"
	"math"

	env "github.com/samuelfneumann/pharmsim/environment"
	"github.com/samuelfneumann/pharmsim/environment/pharmacy/internal/world"
	"github.com/samuelfneumann/pharmsim/environment/pharmacy/render"
	ts "github.com/samuelfneumann/pharmsim/timestep"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r2"
)

const (
	// FulfilmentBonus is the reward for filling a request, before
	// subtracting the distance the dispatched vehicle travels
	FulfilmentBonus float64 = 10.0

	// StockoutPenalty is the reward for dispatching from a pharmacy
	// that does not stock the requested medication
	StockoutPenalty float64 = -15.0
)

// Dispatch implements an environment in which a patient requests a
// single medication and the agent assigns one pharmacy and one
// delivery vehicle to the request.
//
// Actions are discrete in [0, Pharmacies × Vehicles) and decode as:
//
//	pharmacy = action mod Pharmacies
//	vehicle  = action div Pharmacies
//
// If the pharmacy stocks the requested medication, one unit is
// removed from its stock and the reward is FulfilmentBonus minus the
// Euclidean distance from the vehicle to the patient. Otherwise the
// reward is StockoutPenalty. In either case the vehicle moves to the
// patient. Every episode ends after exactly one step.
//
// Observations are the concatenation of
//
//	stock      [Pharmacies × Medications], row-major by pharmacy
//	request    [Medications], one-hot
//	patient    [2], (row, column)
//	vehicles   [2 × Vehicles], (row, column) per vehicle
//
// Dispatch implements the environment.Environment interface
type Dispatch struct {
	Starter
	config   Config
	discount float64

	inventory *world.Inventory
	request   int
	patient   world.Cell
	vehicles  []world.Cell

	currentStep ts.TimeStep
}

// New returns a new Dispatch environment with starting states drawn
// from s and the first timestep of the first episode
func New(c Config, s Starter, discount float64) (*Dispatch, ts.TimeStep,
	error) {
	if err := c.Validate(); err != nil {
		return nil, ts.TimeStep{}, fmt.Errorf("new: %w", err)
	}

	d := &Dispatch{
		Starter:  s,
		config:   c,
		discount: discount,
	}

	step, err := d.Reset()
	if err != nil {
		return nil, ts.TimeStep{}, fmt.Errorf("new: %w", err)
	}
	return d, step, nil
}

// NewUniform returns a new Dispatch environment with starting states
// drawn uniformly using the random seed seed
func NewUniform(c Config, seed uint64, discount float64) (*Dispatch,
	ts.TimeStep, error) {
	s, err := NewUniformStarter(c, seed)
	if err != nil {
		return nil, ts.TimeStep{}, fmt.Errorf("newUniform: %w", err)
	}
	return New(c, s, discount)
}

// Reset resets the environment, begins a new episode, and returns
// the first timestep of the new episode
func (d *Dispatch) Reset() (ts.TimeStep, error) {
	state, err := d.Start()
	if err != nil {
		return ts.TimeStep{}, fmt.Errorf("reset: could not sample start "+
			"state: %v", err)
	}
	if err := state.validate(d.config); err != nil {
		return ts.TimeStep{}, fmt.Errorf("reset: %w", err)
	}

	inventory, err := world.NewInventoryFrom(state.Stock)
	if err != nil {
		return ts.TimeStep{}, fmt.Errorf("reset: %v", err)
	}
	d.inventory = inventory
	d.request = state.Request
	d.patient = world.Cell{Row: state.Patient[0], Col: state.Patient[1]}
	d.vehicles = make([]world.Cell, len(state.Vehicles))
	for i, v := range state.Vehicles {
		d.vehicles[i] = world.Cell{Row: v[0], Col: v[1]}
	}

	d.currentStep = ts.New(ts.First, 0, d.discount, d.observation(), 0)
	return d.currentStep, nil
}

// Step takes one environmental step given action a and returns the
// next timestep and whether the episode has ended, which it always
// has. Illegal actions return an error and leave the environment
// unchanged.
func (d *Dispatch) Step(a *mat.VecDense) (ts.TimeStep, bool, error) {
	if d.currentStep.Last() {
		return ts.TimeStep{}, true, fmt.Errorf("step: %w", env.ErrEpisodeOver)
	}
	action, err := env.DiscreteAction(a, d.config.Actions())
	if err != nil {
		return ts.TimeStep{}, false, fmt.Errorf("step: %w", err)
	}

	pharmacy := action % d.config.Pharmacies
	vehicle := action / d.config.Pharmacies
	distance := world.Distance(d.vehicles[vehicle].Vec(), d.patient.Vec())

	var reward float64
	stockout := d.inventory.Take(pharmacy, d.request, 1) == 0
	if stockout {
		reward = StockoutPenalty
	} else {
		reward = FulfilmentBonus - distance
	}
	d.vehicles[vehicle] = d.patient

	next := ts.New(ts.Last, reward, d.discount, d.observation(),
		d.currentStep.Number+1)
	next.SetEnd(ts.TerminalStateReached)
	next.SetInfo("pharmacy", pharmacy)
	next.SetInfo("vehicle", vehicle)
	next.SetInfo("distance", distance)
	next.SetInfo("stockout", stockout)

	d.currentStep = next
	return next, true, nil
}

// CurrentTimeStep returns the current timestep of the environment
func (d *Dispatch) CurrentTimeStep() ts.TimeStep {
	return d.currentStep
}

// observation returns the current state observation
func (d *Dispatch) observation() *mat.VecDense {
	size := d.config.ObservationDims()
	enc := world.NewEncoder(size).
		Append(d.inventory.Raw()...).
		OneHot(d.request, d.config.Medications).
		AppendPositions(d.patient.Vec())
	for _, v := range d.vehicles {
		enc.AppendPositions(v.Vec())
	}
	return enc.Vector(size)
}

// ActionSpec returns the action specification of the environment
func (d *Dispatch) ActionSpec() env.Spec {
	return env.NewDiscreteActionSpec(d.config.Actions())
}

// ObservationSpec returns the observation specification of the
// environment
func (d *Dispatch) ObservationSpec() env.Spec {
	c := d.config
	size := c.ObservationDims()
	lowerBound := mat.NewVecDense(size, nil)
	upperBound := mat.NewVecDense(size, nil)

	stock := c.Pharmacies * c.Medications
	for i := 0; i < size; i++ {
		switch {
		case i < stock:
			upperBound.SetVec(i, float64(c.MaxStock))
		case i < stock+c.Medications:
			upperBound.SetVec(i, 1)
		default:
			upperBound.SetVec(i, float64(c.GridSize-1))
		}
	}

	shape := mat.NewVecDense(size, nil)
	return env.NewSpec(shape, env.Observation, lowerBound, upperBound,
		env.Discrete)
}

// DiscountSpec returns the discounting specification of the environment
func (d *Dispatch) DiscountSpec() env.Spec {
	return env.NewScalarSpec(env.Discount, d.discount, d.discount)
}

// RewardSpec returns the reward specification of the environment
func (d *Dispatch) RewardSpec() env.Spec {
	maxDistance := math.Sqrt2 * float64(d.config.GridSize-1)
	min := math.Min(StockoutPenalty, FulfilmentBonus-maxDistance)
	return env.NewScalarSpec(env.Reward, min, FulfilmentBonus)
}

// Request returns the medication requested in the current episode
func (d *Dispatch) Request() int {
	return d.request
}

// Stock returns the current stock of medication at pharmacy
func (d *Dispatch) Stock(pharmacy, medication int) int {
	return d.inventory.Stock(pharmacy, medication)
}

// Vehicle returns the (row, column) cell of vehicle
func (d *Dispatch) Vehicle(vehicle int) [2]int {
	v := d.vehicles[vehicle]
	return [2]int{v.Row, v.Col}
}

// Snapshot returns a renderable snapshot of the environment. Pharmacies
// have no location in this environment, so only their stock is drawn.
func (d *Dispatch) Snapshot() render.Snapshot {
	request := make([]int, d.config.Medications)
	request[d.request] = 1

	vehicles := make([]r2.Vec, len(d.vehicles))
	for i, v := range d.vehicles {
		vehicles[i] = v.Vec()
	}

	return render.Snapshot{
		Name:     "Dispatch",
		Rows:     d.config.GridSize,
		Cols:     d.config.GridSize,
		Stock:    d.inventory.Table(),
		Request:  request,
		Patients: []r2.Vec{d.patient.Vec()},
		Vehicles: vehicles,
		Step:     d.currentStep.Number,
	}
}

// String implements the fmt.Stringer interface
func (d *Dispatch) String() string {
	return fmt.Sprintf("Dispatch  |  Request: %v  |  Patient: %v  |  "+
		"Vehicles: %v", d.request, d.patient, d.vehicles)
}
