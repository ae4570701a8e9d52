package world

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r2"
)

// Encoder concatenates entity features into an observation vector
// with a fixed layout
type Encoder struct {
	data []float64
}

// NewEncoder returns an Encoder for an observation of length size
func NewEncoder(size int) *Encoder {
	return &Encoder{make([]float64, 0, size)}
}

// Append appends raw features
func (e *Encoder) Append(features ...float64) *Encoder {
	e.data = append(e.data, features...)
	return e
}

// AppendPositions appends the coordinates of each position in order
func (e *Encoder) AppendPositions(positions ...r2.Vec) *Encoder {
	for _, p := range positions {
		e.data = append(e.data, p.X, p.Y)
	}
	return e
}

// OneHot appends a one-hot encoding of index among n categories
func (e *Encoder) OneHot(index, n int) *Encoder {
	hot := make([]float64, n)
	hot[index] = 1
	e.data = append(e.data, hot...)
	return e
}

// Vector returns the encoded observation. It panics if the observation
// does not have length size, which would mean the layout of an
// environment's observations changed.
func (e *Encoder) Vector(size int) *mat.VecDense {
	if len(e.data) != size {
		panic(fmt.Sprintf("vector: observation length changed \n\twant(%v)"+
			"\n\thave(%v)", size, len(e.data)))
	}
	return mat.NewVecDense(size, e.data)
}
