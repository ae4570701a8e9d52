package world

import (
	"math"
	"sort"

	"github.com/samuelfneumann/pharmsim/utils/floatutils"
	"github.com/samuelfneumann/pharmsim/utils/intutils"
	"gonum.org/v1/gonum/spatial/r1"
	"gonum.org/v1/gonum/spatial/r2"
)

// Distance returns the Euclidean distance between p and q
func Distance(p, q r2.Vec) float64 {
	return r2.Norm(r2.Sub(p, q))
}

// Nearest returns the index of the position in positions closest to p
// for which keep returns true, breaking ties by lowest index. If keep
// is nil, all positions are considered. Nearest returns -1 if no
// position is considered.
func Nearest(p r2.Vec, positions []r2.Vec, keep func(int) bool) int {
	nearest := -1
	best := math.Inf(1)
	for i, q := range positions {
		if keep != nil && !keep(i) {
			continue
		}
		if d := Distance(p, q); d < best {
			nearest, best = i, d
		}
	}
	return nearest
}

// ClampPoint clamps both coordinates of p to bounds
func ClampPoint(p r2.Vec, bounds r1.Interval) r2.Vec {
	return r2.Vec{
		X: floatutils.ClipInterval(p.X, bounds),
		Y: floatutils.ClipInterval(p.Y, bounds),
	}
}

// Cell is a discrete grid cell
type Cell struct {
	Row, Col int
}

// Add returns the cell displaced by (dRow, dCol), clamped to a grid of
// rows × cols
func (c Cell) Add(dRow, dCol, rows, cols int) Cell {
	return Cell{
		Row: intutils.Clip(c.Row+dRow, 0, rows-1),
		Col: intutils.Clip(c.Col+dCol, 0, cols-1),
	}
}

// Index returns the row-major index of the cell in a grid with cols
// columns
func (c Cell) Index(cols int) int {
	return c.Row*cols + c.Col
}

// CellAt returns the cell with row-major index i in a grid with cols
// columns
func CellAt(i, cols int) Cell {
	return Cell{Row: i / cols, Col: i % cols}
}

// In returns whether the cell lies within a grid of rows × cols
func (c Cell) In(rows, cols int) bool {
	return c.Row >= 0 && c.Row < rows && c.Col >= 0 && c.Col < cols
}

// Vec returns the cell as a position vector
func (c Cell) Vec() r2.Vec {
	return r2.Vec{X: float64(c.Row), Y: float64(c.Col)}
}

// CellSet is a set of grid cells
type CellSet map[Cell]struct{}

// NewCellSet returns a set containing cells
func NewCellSet(cells ...Cell) CellSet {
	set := make(CellSet, len(cells))
	for _, c := range cells {
		set[c] = struct{}{}
	}
	return set
}

// Has returns whether c is in the set
func (s CellSet) Has(c Cell) bool {
	_, ok := s[c]
	return ok
}

// Mask returns a rows × cols row-major indicator vector of the set
func (s CellSet) Mask(rows, cols int) []float64 {
	mask := make([]float64, rows*cols)
	for c := range s {
		mask[c.Index(cols)] = 1
	}
	return mask
}

// Sorted returns the cells of the set in row-major order
func (s CellSet) Sorted() []Cell {
	cells := make([]Cell, 0, len(s))
	for c := range s {
		cells = append(cells, c)
	}
	sort.Slice(cells, func(i, j int) bool {
		if cells[i].Row != cells[j].Row {
			return cells[i].Row < cells[j].Row
		}
		return cells[i].Col < cells[j].Col
	})
	return cells
}
