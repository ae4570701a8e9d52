package dispatch

import (
	"errors"
	"math"
	"testing"

	env "github.com/samuelfneumann/pharmsim/environment"
	"gonum.org/v1/gonum/mat"
)

func newFixed(t *testing.T) *Dispatch {
	c := Config{
		Pharmacies:  2,
		Medications: 2,
		Vehicles:    2,
		GridSize:    10,
		MinStock:    0,
		MaxStock:    5,
	}
	s := NewFixedStarter(State{
		Stock:    [][]int{{0, 3}, {2, 0}},
		Request:  0,
		Patient:  [2]int{3, 4},
		Vehicles: [][2]int{{0, 0}, {9, 9}},
	})

	d, _, err := New(c, s, 0.99)
	if err != nil {
		t.Fatal(err)
	}
	return d
}

func TestFulfil(t *testing.T) {
	d := newFixed(t)

	// pharmacy 1, vehicle 0
	step, last, err := d.Step(env.NewAction(1))
	if err != nil {
		t.Fatal(err)
	}
	if !last || !step.Terminated() {
		t.Errorf("episode should terminate after one step, have %v", step)
	}

	want := FulfilmentBonus - 5
	if math.Abs(step.Reward-want) > 1e-9 {
		t.Errorf("reward: \n\twant(%v) \n\thave(%v)", want, step.Reward)
	}
	if d.Stock(1, 0) != 1 {
		t.Errorf("stock: \n\twant(%v) \n\thave(%v)", 1, d.Stock(1, 0))
	}
	if d.Vehicle(0) != [2]int{3, 4} {
		t.Errorf("vehicle should move to the patient, have %v", d.Vehicle(0))
	}
	if step.Info["stockout"] != false {
		t.Errorf("stockout: \n\twant(%v) \n\thave(%v)", false,
			step.Info["stockout"])
	}
}

func TestStockout(t *testing.T) {
	d := newFixed(t)

	// pharmacy 0, vehicle 1
	step, _, err := d.Step(env.NewAction(2))
	if err != nil {
		t.Fatal(err)
	}
	if step.Reward != StockoutPenalty {
		t.Errorf("reward: \n\twant(%v) \n\thave(%v)", StockoutPenalty,
			step.Reward)
	}
	if d.Stock(0, 0) != 0 || d.Stock(0, 1) != 3 {
		t.Errorf("stockout should not change stock")
	}
	if d.Vehicle(1) != [2]int{3, 4} {
		t.Errorf("vehicle should move to the patient, have %v", d.Vehicle(1))
	}
}

func TestEpisodeOver(t *testing.T) {
	d := newFixed(t)
	if _, _, err := d.Step(env.NewAction(0)); err != nil {
		t.Fatal(err)
	}

	if _, _, err := d.Step(env.NewAction(0)); !errors.Is(err,
		env.ErrEpisodeOver) {
		t.Errorf("step after last: expected ErrEpisodeOver, have %v", err)
	}

	step, err := d.Reset()
	if err != nil {
		t.Fatal(err)
	}
	if !step.First() || d.Stock(1, 0) != 2 {
		t.Errorf("reset should restore the fixed starting state")
	}
}

func TestIllegalActionLeavesState(t *testing.T) {
	d := newFixed(t)
	before := mat.VecDenseCopyOf(d.CurrentTimeStep().Observation)

	for _, a := range []*mat.VecDense{
		env.NewAction(4),
		env.NewAction(-1),
		mat.NewVecDense(1, []float64{0.5}),
	} {
		if _, _, err := d.Step(a); !errors.Is(err, env.ErrIllegalAction) {
			t.Errorf("step(%v): expected ErrIllegalAction, have %v",
				a.AtVec(0), err)
		}
	}

	current := d.CurrentTimeStep()
	if !mat.Equal(before, current.Observation) {
		t.Error("illegal actions should leave the state unchanged")
	}
	if !current.First() {
		t.Error("illegal actions should not advance the episode")
	}
}

func TestObservation(t *testing.T) {
	d := newFixed(t)
	obs := d.CurrentTimeStep().Observation

	want := []float64{
		0, 3, 2, 0, // stock
		1, 0, // request
		3, 4, // patient
		0, 0, 9, 9, // vehicles
	}
	if obs.Len() != len(want) {
		t.Fatalf("observation length: \n\twant(%v) \n\thave(%v)", len(want),
			obs.Len())
	}
	for i := range want {
		if obs.AtVec(i) != want[i] {
			t.Errorf("observation: \n\twant(%v) \n\thave(%v)", want,
				obs.RawVector().Data)
			break
		}
	}
	if d.ObservationSpec().Shape.Len() != obs.Len() {
		t.Error("observation spec does not match observations")
	}
}

func TestUniformDeterministic(t *testing.T) {
	c := DefaultConfig()
	a, _, err := NewUniform(c, 11, 0.99)
	if err != nil {
		t.Fatal(err)
	}
	b, _, _ := NewUniform(c, 11, 0.99)

	for i := 0; i < 20; i++ {
		action := env.NewAction(i % c.Actions())
		stepA, _, err := a.Step(action)
		if err != nil {
			t.Fatal(err)
		}
		stepB, _, _ := b.Step(action)

		if stepA.Reward != stepB.Reward ||
			!mat.Equal(stepA.Observation, stepB.Observation) {
			t.Fatalf("episode %d: environments with the same seed diverged", i)
		}
		if stepA.Observation.Len() != c.ObservationDims() {
			t.Fatalf("observation length: \n\twant(%v) \n\thave(%v)",
				c.ObservationDims(), stepA.Observation.Len())
		}

		a.Reset()
		b.Reset()
	}
}

func TestInvalidConfig(t *testing.T) {
	c := DefaultConfig()
	c.Pharmacies = 0
	if _, _, err := NewUniform(c, 1, 0.99); !errors.Is(err,
		env.ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, have %v", err)
	}

	// Fixed state does not match the configuration
	s := NewFixedStarter(State{Stock: [][]int{{1}}, Request: 0})
	if _, _, err := New(DefaultConfig(), s, 0.99); !errors.Is(err,
		env.ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, have %v", err)
	}
}

func BenchmarkDispatch(b *testing.B) {
	d, _, err := NewUniform(DefaultConfig(), 1, 0.99)
	if err != nil {
		b.Fatal(err)
	}
	action := env.NewAction(0)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		d.Step(action)
		d.Reset()
	}
}
