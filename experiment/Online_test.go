package experiment

import (
	"path/filepath"
	"testing"

	"github.com/samuelfneumann/pharmsim/agent/random"
	"github.com/samuelfneumann/pharmsim/environment/envconfig"
	"github.com/samuelfneumann/pharmsim/experiment/trackers"
)

func newOnline(t *testing.T, name envconfig.EnvName, seed uint64,
	steps uint, dir string) (*Online, *trackers.Return,
	*trackers.EpisodeLength) {
	e, _, err := envconfig.NewConfig(name, 0.99).Create(seed)
	if err != nil {
		t.Fatal(err)
	}
	a, err := random.New(e, seed)
	if err != nil {
		t.Fatal(err)
	}

	ret := trackers.NewReturn(filepath.Join(dir, string(name)+"-return.bin"))
	length := trackers.NewEpisodeLength(filepath.Join(dir,
		string(name)+"-length.bin"))
	return NewOnline(e, a, steps, ret, length), ret, length
}

func TestOnline(t *testing.T) {
	dir := t.TempDir()
	exp, ret, length := newOnline(t, envconfig.Dispatch, 1, 25, dir)

	if err := exp.Run(); err != nil {
		t.Fatal(err)
	}
	if exp.Steps() != 25 {
		t.Errorf("steps: \n\twant(%v) \n\thave(%v)", 25, exp.Steps())
	}

	// Dispatch episodes always last a single step
	if len(ret.Data()) != 25 || len(length.Data()) != 25 {
		t.Errorf("episodes: \n\twant(%v) \n\thave(%v)", 25, len(ret.Data()))
	}
	for _, l := range length.Data() {
		if l != 1 {
			t.Fatalf("episode length: \n\twant(%v) \n\thave(%v)", 1, l)
		}
	}

	if err := exp.Save(); err != nil {
		t.Fatal(err)
	}
	saved, err := trackers.LoadData(filepath.Join(dir, "Dispatch-return.bin"))
	if err != nil {
		t.Fatal(err)
	}
	if len(saved) != 25 {
		t.Errorf("saved returns: \n\twant(%v) \n\thave(%v)", 25, len(saved))
	}
}

func TestRunConcurrent(t *testing.T) {
	dir := t.TempDir()
	names := []envconfig.EnvName{
		envconfig.Dispatch,
		envconfig.Pickup,
		envconfig.Navigate,
	}

	exps := make([]Experiment, len(names))
	onlines := make([]*Online, len(names))
	for i, name := range names {
		onlines[i], _, _ = newOnline(t, name, uint64(i), 500, dir)
		exps[i] = onlines[i]
	}

	for i, err := range RunConcurrent(exps...) {
		if err != nil {
			t.Errorf("%v: %v", names[i], err)
		}
	}
	for i, o := range onlines {
		if o.Steps() != 500 {
			t.Errorf("%v steps: \n\twant(%v) \n\thave(%v)", names[i], 500,
				o.Steps())
		}
	}
}

func TestRunConcurrentDeterministic(t *testing.T) {
	dir := t.TempDir()
	a, retA, _ := newOnline(t, envconfig.Pickup, 8, 300, dir)
	b, retB, _ := newOnline(t, envconfig.Pickup, 8, 300, dir)

	RunConcurrent(a, b)

	x, y := retA.Data(), retB.Data()
	if len(x) != len(y) {
		t.Fatalf("same seed gave %d and %d episodes", len(x), len(y))
	}
	for i := range x {
		if x[i] != y[i] {
			t.Fatalf("episode %d: same seed gave returns %v and %v", i, x[i],
				y[i])
		}
	}
}
