package world

import (
	"fmt"

	"github.com/samuelfneumann/pharmsim/utils/intutils"
	"gonum.org/v1/gonum/mat"
)

// Inventory tracks integer stock per (location, item). Stock is
// never negative.
type Inventory struct {
	stock *mat.Dense
}

// NewInventory returns an empty inventory of locations × items
func NewInventory(locations, items int) *Inventory {
	return &Inventory{mat.NewDense(locations, items, nil)}
}

// NewInventoryFrom returns an inventory with the given stock, indexed
// as stock[location][item]
func NewInventoryFrom(stock [][]int) (*Inventory, error) {
	if len(stock) == 0 || len(stock[0]) == 0 {
		return nil, fmt.Errorf("newInventoryFrom: inventory must have at " +
			"least one location and one item")
	}

	inv := NewInventory(len(stock), len(stock[0]))
	for loc := range stock {
		if len(stock[loc]) != len(stock[0]) {
			return nil, fmt.Errorf("newInventoryFrom: location %d has %d "+
				"items, want %d", loc, len(stock[loc]), len(stock[0]))
		}
		for item, quantity := range stock[loc] {
			if quantity < 0 {
				return nil, fmt.Errorf("newInventoryFrom: negative stock %d "+
					"at (%d, %d)", quantity, loc, item)
			}
			inv.stock.Set(loc, item, float64(quantity))
		}
	}
	return inv, nil
}

// RandomInventory returns an inventory with stock drawn uniformly from
// [min, max) for every (location, item)
func RandomInventory(s *Source, locations, items, min, max int) *Inventory {
	inv := NewInventory(locations, items)
	for loc := 0; loc < locations; loc++ {
		for item := 0; item < items; item++ {
			inv.stock.Set(loc, item, float64(s.IntRange(min, max)))
		}
	}
	return inv
}

// Dims returns the number of locations and items
func (i *Inventory) Dims() (locations, items int) {
	return i.stock.Dims()
}

// Stock returns the stock of item at location
func (i *Inventory) Stock(location, item int) int {
	return int(i.stock.At(location, item))
}

// Take removes up to n units of item from location, returning the
// number of units actually removed: min(stock, n)
func (i *Inventory) Take(location, item, n int) int {
	if n <= 0 {
		return 0
	}
	taken := intutils.Min(i.Stock(location, item), n)
	i.stock.Set(location, item, float64(i.Stock(location, item)-taken))
	return taken
}

// Holds returns whether location stocks any item with a positive
// entry in request
func (i *Inventory) Holds(location int, request *Request) bool {
	_, items := i.Dims()
	for item := 0; item < items; item++ {
		if request.Remaining(item) > 0 && i.Stock(location, item) > 0 {
			return true
		}
	}
	return false
}

// Raw returns the stock in row-major (location, item) order
func (i *Inventory) Raw() []float64 {
	locations, items := i.Dims()
	raw := make([]float64, 0, locations*items)
	for loc := 0; loc < locations; loc++ {
		raw = append(raw, i.stock.RawRowView(loc)...)
	}
	return raw
}

// Table returns a copy of the stock indexed as [location][item]
func (i *Inventory) Table() [][]int {
	locations, items := i.Dims()
	table := make([][]int, locations)
	for loc := range table {
		table[loc] = make([]int, items)
		for item := range table[loc] {
			table[loc][item] = i.Stock(loc, item)
		}
	}
	return table
}
