package random

import (
	"testing"

	env "github.com/samuelfneumann/pharmsim/environment"
	"github.com/samuelfneumann/pharmsim/environment/pharmacy/pickup"
)

func TestSelectAction(t *testing.T) {
	e, step, err := pickup.NewUniform(pickup.DefaultConfig(), 3, 0.99)
	if err != nil {
		t.Fatal(err)
	}
	a, err := New(e, 3)
	if err != nil {
		t.Fatal(err)
	}

	counts := make([]int, pickup.Actions)
	for i := 0; i < 1000; i++ {
		index, err := env.DiscreteAction(a.SelectAction(step), pickup.Actions)
		if err != nil {
			t.Fatal(err)
		}
		counts[index]++
	}
	for action, n := range counts {
		if n == 0 {
			t.Errorf("action %v never selected", pickup.Action(action))
		}
	}
}
