// Package navigate implements the grid navigation pharmacy environment
package navigate

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

// Action is a discrete move in a Navigate environment
type Action int

const (
	Up Action = iota
	Down
	Left
	Right
	UpLeft
	UpRight
	DownLeft
	DownRight

	// Actions is the number of legal actions
	Actions int = 8
)

// moves holds the (row, column) displacement of each Action. Rows grow
// downwards.
var moves = [Actions][2]int{
	Up:        {-1, 0},
	Down:      {1, 0},
	Left:      {0, -1},
	Right:     {0, 1},
	UpLeft:    {-1, -1},
	UpRight:   {-1, 1},
	DownLeft:  {1, -1},
	DownRight: {1, 1},
}

func (a Action) String() string {
	names := [Actions]string{"Up", "Down", "Left", "Right", "UpLeft",
		"UpRight", "DownLeft", "DownRight"}
	if int(a) < 0 || int(a) >= Actions {
		return fmt.Sprintf("Action(%d)", int(a))
	}
	return names[a]
}

// Navigate implements an environment in which a courier moves on a
// grid to visit every goal cell while avoiding obstacles.
//
// Actions are discrete in [0, 8), moving the courier one cell in one of
// the eight compass directions (see the Action constants). Moves that
// would leave the grid are clamped to the grid. If the clamped cell
// is an obstacle, the move is rejected, the courier stays in place,
// and the reward is CollisionPenalty. Otherwise the courier moves and
// the reward is StepCost, plus GoalReward if the courier lands on an
// uncollected goal, which is then collected. Collecting the last goal
// adds the configured completion bonus and ends the episode. Episodes
// are truncated at the step limit.
//
// Observations are the concatenation of
//
//	courier     [2], (row, column)
//	goals       [Rows × Cols], 1 for each uncollected goal cell
//	obstacles   [Rows × Cols], 1 for each obstacle cell
//
// Navigate implements the environment.Environment interface
type Navigate struct {
	Starter
	config    Config
	discount  float64
	stepLimit env.StepLimit

	position  world.Cell
	goals     world.CellSet
	collected world.CellSet
	obstacles world.CellSet

	currentStep ts.TimeStep
}

// New returns a new Navigate environment with starting states drawn
// from s and the first timestep of the first episode
func New(c Config, s Starter, discount float64) (*Navigate, ts.TimeStep,
	error) {
	if err := c.Validate(); err != nil {
		return nil, ts.TimeStep{}, fmt.Errorf("new: %w", err)
	}

	n := &Navigate{
		Starter:   s,
		config:    c,
		discount:  discount,
		stepLimit: env.NewStepLimit(c.StepLimit),
	}

	step, err := n.Reset()
	if err != nil {
		return nil, ts.TimeStep{}, fmt.Errorf("new: %w", err)
	}
	return n, step, nil
}

// NewUniform returns a new Navigate environment with starting states
// drawn uniformly using the random seed seed
func NewUniform(c Config, seed uint64, discount float64) (*Navigate,
	ts.TimeStep, error) {
	s, err := NewUniformStarter(c, seed)
	if err != nil {
		return nil, ts.TimeStep{}, fmt.Errorf("newUniform: %w", err)
	}
	return New(c, s, discount)
}

// Reset resets the environment, begins a new episode, and returns
// the first timestep of the new episode
func (n *Navigate) Reset() (ts.TimeStep, error) {
	state, err := n.Start()
	if err != nil {
		return ts.TimeStep{}, fmt.Errorf("reset: could not sample start "+
			"state: %v", err)
	}
	if err := state.validate(n.config.Rows, n.config.Cols); err != nil {
		return ts.TimeStep{}, fmt.Errorf("reset: %w", err)
	}

	n.position = world.Cell{Row: state.Start[0], Col: state.Start[1]}
	n.goals = toCellSet(state.Goals)
	n.obstacles = toCellSet(state.Obstacles)
	n.collected = world.NewCellSet()

	n.currentStep = ts.New(ts.First, 0, n.discount, n.observation(), 0)
	return n.currentStep, nil
}

// Step takes one environmental step given action a and returns the
// next timestep and whether the episode has ended. Illegal actions
// return an error and leave the environment unchanged.
func (n *Navigate) Step(a *mat.VecDense) (ts.TimeStep, bool, error) {
	if n.currentStep.Last() {
		return ts.TimeStep{}, true, fmt.Errorf("step: %w", env.ErrEpisodeOver)
	}
	index, err := env.DiscreteAction(a, Actions)
	if err != nil {
		return ts.TimeStep{}, false, fmt.Errorf("step: %w", err)
	}
	action := Action(index)

	move := moves[action]
	target := n.position.Add(move[0], move[1], n.config.Rows, n.config.Cols)

	var reward float64
	collision := n.obstacles.Has(target)
	collected := false
	if collision {
		reward = CollisionPenalty
	} else {
		n.position = target
		reward = StepCost

		if n.goals.Has(target) {
			delete(n.goals, target)
			n.collected[target] = struct{}{}
			reward += GoalReward
			collected = true

			if len(n.goals) == 0 {
				reward += n.config.CompletionBonus
			}
		}
	}

	next := ts.New(ts.Mid, reward, n.discount, n.observation(),
		n.currentStep.Number+1)
	next.SetInfo("action", action.String())
	next.SetInfo("collision", collision)
	next.SetInfo("collected", collected)

	if len(n.goals) == 0 {
		next.StepType = ts.Last
		next.SetEnd(ts.TerminalStateReached)
	} else {
		n.stepLimit.End(&next)
	}

	n.currentStep = next
	return next, next.Last(), nil
}

// CurrentTimeStep returns the current timestep of the environment
func (n *Navigate) CurrentTimeStep() ts.TimeStep {
	return n.currentStep
}

// observation returns the current state observation
func (n *Navigate) observation() *mat.VecDense {
	size := n.config.ObservationDims()
	rows, cols := n.config.Rows, n.config.Cols
	return world.NewEncoder(size).
		AppendPositions(n.position.Vec()).
		Append(n.goals.Mask(rows, cols)...).
		Append(n.obstacles.Mask(rows, cols)...).
		Vector(size)
}

// ActionSpec returns the action specification of the environment
func (n *Navigate) ActionSpec() env.Spec {
	return env.NewDiscreteActionSpec(Actions)
}

// ObservationSpec returns the observation specification of the
// environment
func (n *Navigate) ObservationSpec() env.Spec {
	size := n.config.ObservationDims()
	lowerBound := mat.NewVecDense(size, nil)
	upperBound := mat.NewVecDense(size, nil)

	upperBound.SetVec(0, float64(n.config.Rows-1))
	upperBound.SetVec(1, float64(n.config.Cols-1))
	for i := 2; i < size; i++ {
		upperBound.SetVec(i, 1)
	}

	shape := mat.NewVecDense(size, nil)
	return env.NewSpec(shape, env.Observation, lowerBound, upperBound,
		env.Discrete)
}

// DiscountSpec returns the discounting specification of the environment
func (n *Navigate) DiscountSpec() env.Spec {
	return env.NewScalarSpec(env.Discount, n.discount, n.discount)
}

// RewardSpec returns the reward specification of the environment
func (n *Navigate) RewardSpec() env.Spec {
	rewards := []float64{
		CollisionPenalty,
		StepCost,
		StepCost + GoalReward + n.config.CompletionBonus,
	}
	return env.NewScalarSpec(env.Reward, floats.Min(rewards),
		floats.Max(rewards))
}

// Position returns the (row, column) cell of the courier
func (n *Navigate) Position() [2]int {
	return [2]int{n.position.Row, n.position.Col}
}

// Remaining returns the uncollected goal cells in row-major order
func (n *Navigate) Remaining() [][2]int {
	return sortedCells(n.goals)
}

// Collected returns the collected goal cells in row-major order
func (n *Navigate) Collected() [][2]int {
	return sortedCells(n.collected)
}

// Snapshot returns a renderable snapshot of the environment
func (n *Navigate) Snapshot() render.Snapshot {
	toVecs := func(cells [][2]int) []r2.Vec {
		vecs := make([]r2.Vec, len(cells))
		for i, c := range cells {
			vecs[i] = r2.Vec{X: float64(c[0]), Y: float64(c[1])}
		}
		return vecs
	}

	return render.Snapshot{
		Name:      "Navigate",
		Rows:      n.config.Rows,
		Cols:      n.config.Cols,
		Goals:     toVecs(n.Remaining()),
		Obstacles: toVecs(sortedCells(n.obstacles)),
		Vehicles:  []r2.Vec{n.position.Vec()},
		Step:      n.currentStep.Number,
	}
}

// String implements the fmt.Stringer interface
func (n *Navigate) String() string {
	return fmt.Sprintf("Navigate  |  At: %v  |  Goals: %v  |  Bounds: "+
		"(%d, %d)", n.Position(), n.Remaining(), n.config.Rows, n.config.Cols)
}

func toCellSet(cells [][2]int) world.CellSet {
	set := world.NewCellSet()
	for _, c := range cells {
		set[world.Cell{Row: c[0], Col: c[1]}] = struct{}{}
	}
	return set
}

// sortedCells returns the cells of set in row-major order
func sortedCells(set world.CellSet) [][2]int {
	sorted := set.Sorted()
	cells := make([][2]int, len(sorted))
	for i, c := range sorted {
		cells[i] = [2]int{c.Row, c.Col}
	}
	return cells
}
