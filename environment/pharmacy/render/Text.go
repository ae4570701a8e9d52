package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/logrusorgru/aurora"
)

// Text renders snapshots as text grids, one character per cell:
//
//	.	empty cell
//	#	obstacle
//	G	uncollected goal
//	R	pharmacy
//	P	patient
//	V	vehicle
//
// When several entities share a cell, the one latest in the list above
// is drawn.
type Text struct {
	au aurora.Aurora
}

// NewText returns a new Text renderer. If colours is false, no ANSI
// escape sequences are written.
func NewText(colours bool) *Text {
	return &Text{aurora.NewAurora(colours)}
}

// Render writes the snapshot s to w
func (t *Text) Render(w io.Writer, s Snapshot) error {
	grid := make([][]interface{}, s.Rows)
	for r := range grid {
		grid[r] = make([]interface{}, s.Cols)
		for c := range grid[r] {
			grid[r][c] = "."
		}
	}

	for _, p := range s.Obstacles {
		r, c := s.cellOf(p)
		grid[r][c] = t.au.Yellow("#")
	}
	for _, p := range s.Goals {
		r, c := s.cellOf(p)
		grid[r][c] = t.au.Green("G")
	}
	for _, p := range s.Pharmacies {
		r, c := s.cellOf(p)
		grid[r][c] = t.au.Magenta("R")
	}
	for _, p := range s.Patients {
		r, c := s.cellOf(p)
		grid[r][c] = t.au.Red("P")
	}
	for _, p := range s.Vehicles {
		r, c := s.cellOf(p)
		grid[r][c] = t.au.Cyan("V")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%v | step %d\n", t.au.Bold(s.Name), s.Step)
	for r := range grid {
		for c := range grid[r] {
			if c > 0 {
				b.WriteByte(' ')
			}
			fmt.Fprint(&b, grid[r][c])
		}
		b.WriteByte('\n')
	}

	for i, stock := range s.Stock {
		fmt.Fprintf(&b, "pharmacy %d:", i)
		for _, q := range stock {
			if q > 0 {
				fmt.Fprintf(&b, " %v", t.au.Green(q))
			} else {
				fmt.Fprintf(&b, " %v", t.au.Red(q))
			}
		}
		b.WriteByte('\n')
	}
	if s.Request != nil {
		fmt.Fprintf(&b, "request: %v\n", s.Request)
	}
	if s.Continuous {
		for i, p := range s.Vehicles {
			fmt.Fprintf(&b, "vehicle %d at (%.2f, %.2f)\n", i, p.X, p.Y)
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}
