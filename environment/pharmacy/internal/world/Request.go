package world

import "fmt"

// Request tracks the remaining and delivered quantity of each item a
// patient requested. Remaining quantities never increase and
// delivered + remaining always equals the original request.
type Request struct {
	original  []int
	remaining []int
	delivered []int
}

// NewRequest returns a new Request for the given quantities per item
func NewRequest(quantities []int) (*Request, error) {
	for item, q := range quantities {
		if q < 0 {
			return nil, fmt.Errorf("newRequest: negative quantity %d for "+
				"item %d", q, item)
		}
	}

	original := append([]int(nil), quantities...)
	remaining := append([]int(nil), quantities...)
	return &Request{original, remaining, make([]int, len(quantities))}, nil
}

// RandomRequest returns a request with quantities drawn uniformly from
// [min, max) for each item. At least one unit is always requested.
func RandomRequest(s *Source, items, min, max int) *Request {
	quantities := make([]int, items)
	total := 0
	for item := range quantities {
		quantities[item] = s.IntRange(min, max)
		total += quantities[item]
	}
	if total == 0 {
		quantities[s.IntRange(0, items)] = 1
	}

	r, _ := NewRequest(quantities)
	return r
}

// Items returns the number of items in the request
func (r *Request) Items() int {
	return len(r.remaining)
}

// Original returns the quantity of item originally requested
func (r *Request) Original(item int) int {
	return r.original[item]
}

// Remaining returns the quantity of item still to be delivered
func (r *Request) Remaining(item int) int {
	return r.remaining[item]
}

// Delivered returns the quantity of item picked up so far
func (r *Request) Delivered(item int) int {
	return r.delivered[item]
}

// Satisfied returns whether no quantity of any item remains
func (r *Request) Satisfied() bool {
	for _, q := range r.remaining {
		if q > 0 {
			return false
		}
	}
	return true
}

// Fill takes as much of the remaining request as possible from
// location in inv, moving the taken units from remaining to
// delivered. It returns the total number of units moved.
func (r *Request) Fill(inv *Inventory, location int) int {
	moved := 0
	for item := range r.remaining {
		taken := inv.Take(location, item, r.remaining[item])
		r.remaining[item] -= taken
		r.delivered[item] += taken
		moved += taken
	}
	return moved
}

// RemainingRaw returns the remaining quantities as float64s
func (r *Request) RemainingRaw() []float64 {
	return toFloats(r.remaining)
}

// DeliveredRaw returns the delivered quantities as float64s
func (r *Request) DeliveredRaw() []float64 {
	return toFloats(r.delivered)
}

func toFloats(ints []int) []float64 {
	out := make([]float64, len(ints))
	for i, v := range ints {
		out[i] = float64(v)
	}
	return out
}
