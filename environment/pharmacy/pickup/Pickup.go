// Package pickup implements the multi-action pickup and delivery
// pharmacy environment
package pickup

import (
	"fmt"

	env "github.com/samuelfneumann/pharmsim/environment"
	"github.com/samuelfneumann/pharmsim/environment/pharmacy/internal/world"
	"github.com/samuelfneumann/pharmsim/environment/pharmacy/render"
	ts "github.com/samuelfneumann/pharmsim/timestep"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r2"
)

// Action is a discrete action in a Pickup environment
type Action int

const (
	TravelToPharmacy Action = iota
	CheckStock
	PickUp
	TravelToPatient
	EndEpisode

	// Actions is the number of legal actions
	Actions int = 5
)

func (a Action) String() string {
	switch a {
	case TravelToPharmacy:
		return "TravelToPharmacy"
	case CheckStock:
		return "CheckStock"
	case PickUp:
		return "PickUp"
	case TravelToPatient:
		return "TravelToPatient"
	case EndEpisode:
		return "EndEpisode"
	}
	return fmt.Sprintf("Action(%d)", int(a))
}

// Rewards
const (
	TravelCost      float64 = -1.0
	CheckReward     float64 = 1.0
	CompletionBonus float64 = 100.0
	UnmetPenalty    float64 = -50.0
	TimeoutPenalty  float64 = -20.0
)

// Pickup implements an environment in which a single delivery vehicle
// must collect a patient's requested medications from pharmacies and
// bring them to the patient. Positions are continuous in [0, Bound]².
//
// Actions are discrete:
//
//	Action	Meaning
//	  0		Travel to the nearest pharmacy holding a requested
//			medication, or the nearest pharmacy if none does
//	  1		Check whether the current pharmacy holds a requested
//			medication
//	  2		Pick up min(stock, remaining) of every medication at the
//			current pharmacy
//	  3		Travel to the patient
//	  4		End the episode
//
// Travelling costs TravelCost. Checking stock rewards CheckReward if
// the current pharmacy holds a requested medication. Picking up has no
// reward. The current pharmacy is the one the vehicle last travelled
// to, or the nearest pharmacy if the vehicle has not travelled to one
// since the start of the episode or since visiting the patient.
// Travelling to the patient once every request is satisfied
// rewards CompletionBonus and ends the episode. Ending the episode
// early with requests unmet costs UnmetPenalty. Whatever the action,
// TimeoutPenalty is added on the step that reaches the step limit and
// the episode ends there. It ends as truncated unless the action itself
// terminated the episode.
//
// Observations are the concatenation of
//
//	stock       [Pharmacies × Medications], row-major by pharmacy
//	remaining   [Medications]
//	delivered   [Medications]
//	patient     [2]
//	pharmacies  [2 × Pharmacies]
//	vehicle     [2]
//
// Pickup implements the environment.Environment interface
type Pickup struct {
	Starter
	config    Config
	discount  float64
	stepLimit env.StepLimit

	inventory  *world.Inventory
	request    *world.Request
	patient    r2.Vec
	pharmacies []r2.Vec
	vehicle    r2.Vec
	parked     int // Pharmacy the vehicle travelled to, or -1

	currentStep ts.TimeStep
}

// New returns a new Pickup environment with starting states drawn
// from s and the first timestep of the first episode
func New(c Config, s Starter, discount float64) (*Pickup, ts.TimeStep,
	error) {
	if err := c.Validate(); err != nil {
		return nil, ts.TimeStep{}, fmt.Errorf("new: %w", err)
	}

	p := &Pickup{
		Starter:   s,
		config:    c,
		discount:  discount,
		stepLimit: env.NewStepLimit(c.StepLimit),
	}

	step, err := p.Reset()
	if err != nil {
		return nil, ts.TimeStep{}, fmt.Errorf("new: %w", err)
	}
	return p, step, nil
}

// NewUniform returns a new Pickup environment with starting states
// drawn uniformly using the random seed seed
func NewUniform(c Config, seed uint64, discount float64) (*Pickup,
	ts.TimeStep, error) {
	s, err := NewUniformStarter(c, seed)
	if err != nil {
		return nil, ts.TimeStep{}, fmt.Errorf("newUniform: %w", err)
	}
	return New(c, s, discount)
}

// Reset resets the environment, begins a new episode, and returns
// the first timestep of the new episode
func (p *Pickup) Reset() (ts.TimeStep, error) {
	state, err := p.Start()
	if err != nil {
		return ts.TimeStep{}, fmt.Errorf("reset: could not sample start "+
			"state: %v", err)
	}
	if err := state.validate(p.config); err != nil {
		return ts.TimeStep{}, fmt.Errorf("reset: %w", err)
	}

	inventory, err := world.NewInventoryFrom(state.Stock)
	if err != nil {
		return ts.TimeStep{}, fmt.Errorf("reset: %v", err)
	}
	request, err := world.NewRequest(state.Request)
	if err != nil {
		return ts.TimeStep{}, fmt.Errorf("reset: %v", err)
	}

	p.inventory = inventory
	p.request = request
	p.patient = state.Patient
	p.pharmacies = state.Pharmacies
	p.vehicle = state.Vehicle
	p.parked = -1

	p.currentStep = ts.New(ts.First, 0, p.discount, p.observation(), 0)
	return p.currentStep, nil
}

// Step takes one environmental step given action a and returns the
// next timestep and whether the episode has ended. Illegal actions
// return an error and leave the environment unchanged.
func (p *Pickup) Step(a *mat.VecDense) (ts.TimeStep, bool, error) {
	if p.currentStep.Last() {
		return ts.TimeStep{}, true, fmt.Errorf("step: %w", env.ErrEpisodeOver)
	}
	index, err := env.DiscreteAction(a, Actions)
	if err != nil {
		return ts.TimeStep{}, false, fmt.Errorf("step: %w", err)
	}
	action := Action(index)

	var reward float64
	terminal := false
	info := map[string]interface{}{"action": action.String()}

	switch action {
	case TravelToPharmacy:
		target := world.Nearest(p.vehicle, p.pharmacies, p.holds)
		if target < 0 {
			target = world.Nearest(p.vehicle, p.pharmacies, nil)
		}
		p.vehicle = p.pharmacies[target]
		p.parked = target
		reward = TravelCost
		info["pharmacy"] = target

	case CheckStock:
		current := p.current()
		if p.holds(current) {
			reward = CheckReward
		}
		info["pharmacy"] = current

	case PickUp:
		current := p.current()
		info["pharmacy"] = current
		info["picked"] = p.request.Fill(p.inventory, current)

	case TravelToPatient:
		p.vehicle = p.patient
		p.parked = -1
		reward = TravelCost
		if p.request.Satisfied() {
			reward += CompletionBonus
			terminal = true
		}

	case EndEpisode:
		terminal = true
		if !p.request.Satisfied() {
			reward += UnmetPenalty
		}
	}

	next := ts.New(ts.Mid, reward, p.discount, p.observation(),
		p.currentStep.Number+1)
	next.Info = info

	// The timeout penalty applies whatever the action, but an episode
	// that reached a terminal state on its last step stays terminated
	if p.stepLimit.End(&next) {
		next.Reward += TimeoutPenalty
	}
	if terminal {
		next.StepType = ts.Last
		next.SetEnd(ts.TerminalStateReached)
	}

	p.currentStep = next
	return next, next.Last(), nil
}

// current returns the pharmacy the vehicle is parked at, or the
// nearest pharmacy if it is not parked at one. Pharmacies may share a
// location, so the parked index is kept rather than recomputed.
func (p *Pickup) current() int {
	if p.parked >= 0 {
		return p.parked
	}
	return world.Nearest(p.vehicle, p.pharmacies, nil)
}

// holds returns whether pharmacy stocks any still-requested medication
func (p *Pickup) holds(pharmacy int) bool {
	return p.inventory.Holds(pharmacy, p.request)
}

// CurrentTimeStep returns the current timestep of the environment
func (p *Pickup) CurrentTimeStep() ts.TimeStep {
	return p.currentStep
}

// observation returns the current state observation
func (p *Pickup) observation() *mat.VecDense {
	size := p.config.ObservationDims()
	return world.NewEncoder(size).
		Append(p.inventory.Raw()...).
		Append(p.request.RemainingRaw()...).
		Append(p.request.DeliveredRaw()...).
		AppendPositions(p.patient).
		AppendPositions(p.pharmacies...).
		AppendPositions(p.vehicle).
		Vector(size)
}

// ActionSpec returns the action specification of the environment
func (p *Pickup) ActionSpec() env.Spec {
	return env.NewDiscreteActionSpec(Actions)
}

// ObservationSpec returns the observation specification of the
// environment
func (p *Pickup) ObservationSpec() env.Spec {
	c := p.config
	size := c.ObservationDims()
	lowerBound := mat.NewVecDense(size, nil)
	upperBound := mat.NewVecDense(size, nil)

	stock := c.Pharmacies * c.Medications
	requests := stock + 2*c.Medications
	for i := 0; i < size; i++ {
		switch {
		case i < stock:
			upperBound.SetVec(i, float64(c.MaxStock))
		case i < requests:
			upperBound.SetVec(i, float64(c.MaxRequest))
		default:
			upperBound.SetVec(i, c.Bound)
		}
	}

	shape := mat.NewVecDense(size, nil)
	return env.NewSpec(shape, env.Observation, lowerBound, upperBound,
		env.Continuous)
}

// DiscountSpec returns the discounting specification of the environment
func (p *Pickup) DiscountSpec() env.Spec {
	return env.NewScalarSpec(env.Discount, p.discount, p.discount)
}

// RewardSpec returns the reward specification of the environment
func (p *Pickup) RewardSpec() env.Spec {
	rewards := []float64{
		UnmetPenalty + TimeoutPenalty,
		CheckReward,
		TravelCost + CompletionBonus,
	}
	return env.NewScalarSpec(env.Reward, floats.Min(rewards),
		floats.Max(rewards))
}

// Remaining returns the quantity of medication still to be picked up
func (p *Pickup) Remaining(medication int) int {
	return p.request.Remaining(medication)
}

// Delivered returns the quantity of medication picked up so far
func (p *Pickup) Delivered(medication int) int {
	return p.request.Delivered(medication)
}

// Requested returns the quantity of medication requested at the start
// of the episode
func (p *Pickup) Requested(medication int) int {
	return p.request.Original(medication)
}

// Stock returns the current stock of medication at pharmacy
func (p *Pickup) Stock(pharmacy, medication int) int {
	return p.inventory.Stock(pharmacy, medication)
}

// Vehicle returns the position of the vehicle
func (p *Pickup) Vehicle() r2.Vec {
	return p.vehicle
}

// Snapshot returns a renderable snapshot of the environment
func (p *Pickup) Snapshot() render.Snapshot {
	cells := int(p.config.Bound) + 1
	remaining := make([]int, p.config.Medications)
	for m := range remaining {
		remaining[m] = p.request.Remaining(m)
	}

	return render.Snapshot{
		Name:       "Pickup",
		Rows:       cells,
		Cols:       cells,
		Continuous: true,
		Stock:      p.inventory.Table(),
		Request:    remaining,
		Pharmacies: append([]r2.Vec(nil), p.pharmacies...),
		Patients:   []r2.Vec{p.patient},
		Vehicles:   []r2.Vec{p.vehicle},
		Step:       p.currentStep.Number,
	}
}

// String implements the fmt.Stringer interface
func (p *Pickup) String() string {
	return fmt.Sprintf("Pickup  |  Remaining: %v  |  Delivered: %v  |  "+
		"Vehicle: %v", p.request.RemainingRaw(), p.request.DeliveredRaw(),
		p.vehicle)
}
