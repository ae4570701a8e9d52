package pickup

import (
	"errors"
	"testing"

	"golang.org/x/exp/rand"

	env "github.com/samuelfneumann/pharmsim/environment"
	ts "github.com/samuelfneumann/pharmsim/timestep"
	"gonum.org/v1/gonum/spatial/r2"
)

// singleItem returns a Pickup environment in which only pharmacy 0
// stocks medication 0 and the patient requests one unit of it
func singleItem(t *testing.T, c Config) *Pickup {
	stock := make([][]int, c.Pharmacies)
	pharmacies := make([]r2.Vec, c.Pharmacies)
	for p := range stock {
		stock[p] = make([]int, c.Medications)
		pharmacies[p] = r2.Vec{X: float64(2 * p), Y: 1}
	}
	stock[0][0] = 5
	request := make([]int, c.Medications)
	request[0] = 1

	s := NewFixedStarter(State{
		Stock:      stock,
		Request:    request,
		Patient:    r2.Vec{X: 9, Y: 9},
		Pharmacies: pharmacies,
		Vehicle:    r2.Vec{X: 8, Y: 1},
	})

	p, _, err := New(c, s, 0.99)
	if err != nil {
		t.Fatal(err)
	}
	return p
}

func step(t *testing.T, p *Pickup, a Action) ts.TimeStep {
	next, _, err := p.Step(env.NewAction(int(a)))
	if err != nil {
		t.Fatalf("step(%v): %v", a, err)
	}
	return next
}

func TestDeliver(t *testing.T) {
	p := singleItem(t, DefaultConfig())

	// The vehicle starts nearest to pharmacy 4, but travels to the only
	// pharmacy holding the request
	s := step(t, p, TravelToPharmacy)
	if s.Reward != TravelCost || !s.Mid() {
		t.Errorf("travel: \n\twant(%v) \n\thave(%v)", TravelCost, s.Reward)
	}
	if p.Vehicle() != (r2.Vec{X: 0, Y: 1}) {
		t.Errorf("travel: vehicle at %v, want pharmacy 0", p.Vehicle())
	}

	s = step(t, p, PickUp)
	if s.Reward != 0 {
		t.Errorf("pick up: \n\twant(%v) \n\thave(%v)", 0, s.Reward)
	}
	if p.Remaining(0) != 0 || p.Delivered(0) != 1 || p.Stock(0, 0) != 4 {
		t.Errorf("pick up: remaining %d, delivered %d, stock %d", p.Remaining(0),
			p.Delivered(0), p.Stock(0, 0))
	}

	s = step(t, p, TravelToPatient)
	want := TravelCost + CompletionBonus
	if s.Reward != want {
		t.Errorf("deliver: \n\twant(%v) \n\thave(%v)", want, s.Reward)
	}
	if !s.Terminated() {
		t.Errorf("deliver should terminate the episode, have %v", s)
	}

	if _, _, err := p.Step(env.NewAction(0)); !errors.Is(err,
		env.ErrEpisodeOver) {
		t.Errorf("step after last: expected ErrEpisodeOver, have %v", err)
	}
}

func TestCheckStock(t *testing.T) {
	p := singleItem(t, DefaultConfig())

	// Nearest pharmacy is 4, which holds nothing
	if s := step(t, p, CheckStock); s.Reward != 0 {
		t.Errorf("check empty: \n\twant(%v) \n\thave(%v)", 0, s.Reward)
	}

	step(t, p, TravelToPharmacy)
	if s := step(t, p, CheckStock); s.Reward != CheckReward {
		t.Errorf("check stocked: \n\twant(%v) \n\thave(%v)", CheckReward,
			s.Reward)
	}
}

func TestSharedPharmacyLocation(t *testing.T) {
	c := DefaultConfig()
	c.Pharmacies = 2
	c.Medications = 1

	// Both pharmacies share a location, only the second holds the request
	shared := r2.Vec{X: 5, Y: 5}
	s := NewFixedStarter(State{
		Stock:      [][]int{{0}, {2}},
		Request:    []int{1},
		Patient:    r2.Vec{X: 0, Y: 0},
		Pharmacies: []r2.Vec{shared, shared},
		Vehicle:    r2.Vec{X: 9, Y: 9},
	})
	p, _, err := New(c, s, 0.99)
	if err != nil {
		t.Fatal(err)
	}

	if next := step(t, p, TravelToPharmacy); next.Info["pharmacy"] != 1 {
		t.Errorf("travel: \n\twant(%v) \n\thave(%v)", 1,
			next.Info["pharmacy"])
	}
	if next := step(t, p, CheckStock); next.Reward != CheckReward {
		t.Errorf("check: \n\twant(%v) \n\thave(%v)", CheckReward,
			next.Reward)
	}
	step(t, p, PickUp)
	if p.Remaining(0) != 0 || p.Stock(1, 0) != 1 {
		t.Errorf("pick up should fill from the pharmacy travelled to: "+
			"remaining %d, stock %d", p.Remaining(0), p.Stock(1, 0))
	}
}

func TestTravelToPatientUnsatisfied(t *testing.T) {
	p := singleItem(t, DefaultConfig())

	s := step(t, p, TravelToPatient)
	if s.Reward != TravelCost || s.Last() {
		t.Errorf("travel to patient with request unmet: \n\twant(%v) "+
			"\n\thave(%v)", TravelCost, s)
	}
	if p.Vehicle() != (r2.Vec{X: 9, Y: 9}) {
		t.Errorf("vehicle should be at the patient, have %v", p.Vehicle())
	}
}

func TestEndEpisodeUnmet(t *testing.T) {
	p := singleItem(t, DefaultConfig())

	s := step(t, p, EndEpisode)
	if s.Reward != UnmetPenalty {
		t.Errorf("end episode: \n\twant(%v) \n\thave(%v)", UnmetPenalty,
			s.Reward)
	}
	if !s.Terminated() {
		t.Errorf("end episode should terminate, have %v", s.EndType())
	}
}

func TestTimeout(t *testing.T) {
	c := DefaultConfig()
	c.StepLimit = 3
	p := singleItem(t, c)

	var s ts.TimeStep
	for i := 0; i < 3; i++ {
		s = step(t, p, CheckStock)
	}
	if !s.Truncated() {
		t.Fatalf("episode should be truncated at the step limit, have %v", s)
	}
	if s.Reward != TimeoutPenalty {
		t.Errorf("timeout: \n\twant(%v) \n\thave(%v)", TimeoutPenalty, s.Reward)
	}

	// Terminating on the last allowed step still pays the timeout
	// penalty, but the episode counts as terminated
	p = singleItem(t, c)
	step(t, p, CheckStock)
	step(t, p, CheckStock)
	s = step(t, p, EndEpisode)
	want := UnmetPenalty + TimeoutPenalty
	if !s.Terminated() || s.Truncated() || s.Reward != want {
		t.Errorf("end on last step: \n\twant(%v) \n\thave(%v)", want,
			s.Reward)
	}
}

func TestDeliverOnLastStep(t *testing.T) {
	c := DefaultConfig()
	c.StepLimit = 3
	p := singleItem(t, c)

	step(t, p, TravelToPharmacy)
	step(t, p, PickUp)
	s := step(t, p, TravelToPatient)

	want := TravelCost + CompletionBonus + TimeoutPenalty
	if s.Reward != want {
		t.Errorf("deliver on last step: \n\twant(%v) \n\thave(%v)", want,
			s.Reward)
	}
	if s.Number != 3 || !s.Terminated() {
		t.Errorf("deliver on last step should terminate, have %v", s)
	}
}

func TestRandomRollout(t *testing.T) {
	c := DefaultConfig()
	p, step0, err := NewUniform(c, 2021, 0.99)
	if err != nil {
		t.Fatal(err)
	}
	rng := rand.New(rand.NewSource(2021))
	bounds := c.Bound

	s := step0
	for i := 0; i < 2000; i++ {
		if s.Last() {
			if s, err = p.Reset(); err != nil {
				t.Fatal(err)
			}
		}

		s, _, err = p.Step(env.NewAction(rng.Intn(Actions)))
		if err != nil {
			t.Fatal(err)
		}
		if s.Observation.Len() != c.ObservationDims() {
			t.Fatalf("observation length: \n\twant(%v) \n\thave(%v)",
				c.ObservationDims(), s.Observation.Len())
		}
		if s.Number > c.StepLimit {
			t.Fatalf("episode ran past the step limit: %d", s.Number)
		}

		for m := 0; m < c.Medications; m++ {
			if p.Remaining(m) < 0 || p.Remaining(m)+p.Delivered(m) !=
				p.Requested(m) {
				t.Fatalf("medication %d: remaining %d + delivered %d != "+
					"requested %d", m, p.Remaining(m), p.Delivered(m),
					p.Requested(m))
			}
			for ph := 0; ph < c.Pharmacies; ph++ {
				if p.Stock(ph, m) < 0 {
					t.Fatalf("negative stock at pharmacy %d", ph)
				}
			}
		}

		v := p.Vehicle()
		if v.X < 0 || v.X > bounds || v.Y < 0 || v.Y > bounds {
			t.Fatalf("vehicle left the world: %v", v)
		}
	}
}

func BenchmarkPickup(b *testing.B) {
	p, _, err := NewUniform(DefaultConfig(), 1, 0.99)
	if err != nil {
		b.Fatal(err)
	}
	action := env.NewAction(int(CheckStock))

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, last, _ := p.Step(action); last {
			p.Reset()
		}
	}
}
