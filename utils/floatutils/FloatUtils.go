// Package floatutils provides utilities for working with floats
package floatutils

import (
	"math"

	"gonum.org/v1/gonum/spatial/r1"
)

// ClipInterval clips value to lie within interval, returning
// interval.Min or interval.Max when value falls outside it. Continuous
// positions are kept inside the world bounds with this.
func ClipInterval(value float64, interval r1.Interval) float64 {
	return math.Max(math.Min(value, interval.Max), interval.Min)
}
