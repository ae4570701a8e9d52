package render

import (
	"image"

	"github.com/fogleman/gg"
	"gonum.org/v1/gonum/spatial/r2"
)

// Image draws the snapshot s with each cell cell pixels wide
func Image(s Snapshot, cell float64) image.Image {
	width := int(cell * float64(s.Cols))
	height := int(cell * float64(s.Rows))
	dc := gg.NewContext(width, height)

	dc.SetRGB(1, 1, 1)
	dc.Clear()

	// Grid lines
	dc.SetRGB(0.85, 0.85, 0.85)
	dc.SetLineWidth(1)
	for r := 0; r <= s.Rows; r++ {
		dc.DrawLine(0, float64(r)*cell, float64(width), float64(r)*cell)
	}
	for c := 0; c <= s.Cols; c++ {
		dc.DrawLine(float64(c)*cell, 0, float64(c)*cell, float64(height))
	}
	dc.Stroke()

	for _, p := range s.Obstacles {
		x, y := s.pixel(p, cell)
		dc.DrawRectangle(x-cell/2, y-cell/2, cell, cell)
	}
	dc.SetRGB(0.3, 0.3, 0.3)
	dc.Fill()

	for _, p := range s.Goals {
		x, y := s.pixel(p, cell)
		dc.DrawCircle(x, y, cell/4)
	}
	dc.SetRGB(0, 0.7, 0)
	dc.Fill()

	for _, p := range s.Pharmacies {
		x, y := s.pixel(p, cell)
		dc.DrawRectangle(x-cell/3, y-cell/3, 2*cell/3, 2*cell/3)
	}
	dc.SetRGB(0, 0, 1)
	dc.Fill()

	for _, p := range s.Patients {
		x, y := s.pixel(p, cell)
		dc.DrawCircle(x, y, cell/3)
	}
	dc.SetRGB(1, 0, 0)
	dc.Fill()

	for _, p := range s.Vehicles {
		x, y := s.pixel(p, cell)
		dc.DrawCircle(x, y, cell/5)
	}
	dc.SetRGB(0, 0, 0)
	dc.Fill()

	return dc.Image()
}

// SavePNG draws the snapshot s and saves it as a PNG image at path
func SavePNG(path string, s Snapshot, cell float64) error {
	return gg.SavePNG(path, Image(s, cell))
}

// pixel returns the pixel coordinates of the centre of position p.
// Rows grow downwards and columns grow rightwards.
func (s Snapshot) pixel(p r2.Vec, cell float64) (x, y float64) {
	if s.Continuous {
		return (p.Y + 0.5) * cell, (p.X + 0.5) * cell
	}
	row, col := s.cellOf(p)
	return (float64(col) + 0.5) * cell, (float64(row) + 0.5) * cell
}
