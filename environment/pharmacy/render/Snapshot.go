// Package render draws human-viewable snapshots of pharmacy
// environments, either as coloured text or as images. Rendering
// never changes the state of an environment.
package render

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Snapshot is a read-only copy of the entities of an environment at
// some timestep. Positions use X for the row and Y for the column.
type Snapshot struct {
	Name string

	// Rows and Cols give the extent of the world in cells. Continuous
	// worlds are drawn on the grid of cells covering their bounds.
	Rows, Cols int
	Continuous bool

	Stock      [][]int // Indexed by [pharmacy][item]
	Request    []int   // Remaining quantity per item
	Pharmacies []r2.Vec
	Patients   []r2.Vec
	Vehicles   []r2.Vec
	Goals      []r2.Vec
	Obstacles  []r2.Vec

	Step int
}

// Snapshotter is an environment that can be rendered
type Snapshotter interface {
	Snapshot() Snapshot
}

// cellOf returns the cell containing p, clamped to the snapshot
func (s Snapshot) cellOf(p r2.Vec) (row, col int) {
	row = int(math.Round(p.X))
	col = int(math.Round(p.Y))
	if row < 0 {
		row = 0
	} else if row >= s.Rows {
		row = s.Rows - 1
	}
	if col < 0 {
		col = 0
	} else if col >= s.Cols {
		col = s.Cols - 1
	}
	return row, col
}
