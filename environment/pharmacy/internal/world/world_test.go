package world

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r1"
	"gonum.org/v1/gonum/spatial/r2"
)

func TestTakeClamps(t *testing.T) {
	inv, err := NewInventoryFrom([][]int{{3, 0}, {1, 2}})
	if err != nil {
		t.Fatal(err)
	}

	if taken := inv.Take(0, 0, 5); taken != 3 {
		t.Errorf("take: \n\twant(%v) \n\thave(%v)", 3, taken)
	}
	if stock := inv.Stock(0, 0); stock != 0 {
		t.Errorf("stock: \n\twant(%v) \n\thave(%v)", 0, stock)
	}
	if taken := inv.Take(0, 1, 1); taken != 0 {
		t.Errorf("take from empty: \n\twant(%v) \n\thave(%v)", 0, taken)
	}
	if taken := inv.Take(1, 1, -1); taken != 0 || inv.Stock(1, 1) != 2 {
		t.Errorf("negative take should do nothing, took %v", taken)
	}
}

func TestNewInventoryFromRejectsNegative(t *testing.T) {
	if _, err := NewInventoryFrom([][]int{{1, -1}}); err == nil {
		t.Error("newInventoryFrom: expected error for negative stock")
	}
	if _, err := NewInventoryFrom([][]int{{1, 1}, {1}}); err == nil {
		t.Error("newInventoryFrom: expected error for ragged stock")
	}
}

func TestFillConserves(t *testing.T) {
	inv, _ := NewInventoryFrom([][]int{{1, 4, 0}})
	req, err := NewRequest([]int{2, 3, 1})
	if err != nil {
		t.Fatal(err)
	}

	if moved := req.Fill(inv, 0); moved != 4 {
		t.Errorf("fill: \n\twant(%v) \n\thave(%v)", 4, moved)
	}

	wantRemaining := []int{1, 0, 1}
	wantStock := []int{0, 1, 0}
	for item := 0; item < req.Items(); item++ {
		if req.Remaining(item)+req.Delivered(item) != req.Original(item) {
			t.Errorf("item %d: remaining %d + delivered %d != original %d",
				item, req.Remaining(item), req.Delivered(item),
				req.Original(item))
		}
		if req.Remaining(item) != wantRemaining[item] {
			t.Errorf("item %d remaining: \n\twant(%v) \n\thave(%v)", item,
				wantRemaining[item], req.Remaining(item))
		}
		if inv.Stock(0, item) != wantStock[item] {
			t.Errorf("item %d stock: \n\twant(%v) \n\thave(%v)", item,
				wantStock[item], inv.Stock(0, item))
		}
	}
	if req.Satisfied() {
		t.Error("request should not be satisfied")
	}
}

func TestRandomRequestNonEmpty(t *testing.T) {
	s := NewSource(7)
	for i := 0; i < 100; i++ {
		req := RandomRequest(s, 3, 0, 1)
		if req.Satisfied() {
			t.Fatalf("randomRequest: request %d is empty", i)
		}
	}
}

func TestNearest(t *testing.T) {
	positions := []r2.Vec{{X: 5, Y: 5}, {X: 1, Y: 1}, {X: 1, Y: 1}, {X: 0, Y: 3}}
	p := r2.Vec{X: 0, Y: 0}

	if i := Nearest(p, positions, nil); i != 1 {
		t.Errorf("nearest: ties break by lowest index \n\twant(%v) "+
			"\n\thave(%v)", 1, i)
	}

	keep := func(i int) bool { return i == 0 || i == 3 }
	if i := Nearest(p, positions, keep); i != 3 {
		t.Errorf("nearest with filter: \n\twant(%v) \n\thave(%v)", 3, i)
	}

	none := func(int) bool { return false }
	if i := Nearest(p, positions, none); i != -1 {
		t.Errorf("nearest with nothing kept: \n\twant(%v) \n\thave(%v)", -1, i)
	}

	if d := Distance(p, r2.Vec{X: 3, Y: 4}); d != 5 {
		t.Errorf("distance: \n\twant(%v) \n\thave(%v)", 5, d)
	}
}

func TestCellAddClamps(t *testing.T) {
	tests := []struct {
		from       Cell
		dRow, dCol int
		want       Cell
	}{
		{Cell{0, 0}, -1, -1, Cell{0, 0}},
		{Cell{0, 0}, 1, 1, Cell{1, 1}},
		{Cell{4, 4}, 1, 0, Cell{4, 4}},
		{Cell{4, 2}, 1, 1, Cell{4, 3}},
	}

	for _, test := range tests {
		have := test.from.Add(test.dRow, test.dCol, 5, 5)
		if have != test.want {
			t.Errorf("%v + (%d, %d): \n\twant(%v) \n\thave(%v)", test.from,
				test.dRow, test.dCol, test.want, have)
		}
	}
}

func TestCellSet(t *testing.T) {
	set := NewCellSet(Cell{2, 1}, Cell{0, 2}, Cell{2, 0})

	sorted := set.Sorted()
	want := []Cell{{0, 2}, {2, 0}, {2, 1}}
	for i := range want {
		if sorted[i] != want[i] {
			t.Errorf("sorted: \n\twant(%v) \n\thave(%v)", want, sorted)
			break
		}
	}

	mask := set.Mask(3, 3)
	ones := 0
	for _, v := range mask {
		ones += int(v)
	}
	if ones != 3 || mask[Cell{2, 1}.Index(3)] != 1 {
		t.Errorf("mask: wrong cells set: %v", mask)
	}

	if c := CellAt(7, 3); c != (Cell{2, 1}) {
		t.Errorf("cellAt: \n\twant(%v) \n\thave(%v)", Cell{2, 1}, c)
	}
}

func TestSourceDeterministic(t *testing.T) {
	a, b := NewSource(42), NewSource(42)
	bounds := r1.Interval{Min: 0, Max: 10}

	for i := 0; i < 50; i++ {
		if x, y := a.IntRange(0, 100), b.IntRange(0, 100); x != y {
			t.Fatalf("intRange: same seed gave %v and %v", x, y)
		}
		p, q := a.Point(bounds), b.Point(bounds)
		if p != q {
			t.Fatalf("point: same seed gave %v and %v", p, q)
		}
		if ClampPoint(p, bounds) != p {
			t.Fatalf("point: %v outside %v", p, bounds)
		}
	}
}

func TestClampPoint(t *testing.T) {
	p := ClampPoint(r2.Vec{X: -1, Y: 11}, r1.Interval{Min: 0, Max: 10})
	if p != (r2.Vec{X: 0, Y: 10}) {
		t.Errorf("clampPoint: \n\twant(%v) \n\thave(%v)", r2.Vec{X: 0, Y: 10}, p)
	}
}

func TestEncoder(t *testing.T) {
	v := NewEncoder(6).
		Append(1).
		OneHot(1, 3).
		AppendPositions(r2.Vec{X: 2, Y: 3}).
		Vector(6)

	want := []float64{1, 0, 1, 0, 2, 3}
	for i := range want {
		if v.AtVec(i) != want[i] {
			t.Errorf("encoder: \n\twant(%v) \n\thave(%v)", want, v.RawVector().Data)
			break
		}
	}

	defer func() {
		if recover() == nil {
			t.Error("vector: expected panic on length mismatch")
		}
	}()
	NewEncoder(2).Append(1).Vector(2)
}

func TestIntRangeEmpty(t *testing.T) {
	s := NewSource(1)
	if v := s.IntRange(3, 3); v != 3 {
		t.Errorf("intRange: \n\twant(%v) \n\thave(%v)", 3, v)
	}
	if math.IsNaN(s.Point(r1.Interval{Min: 1, Max: 2}).X) {
		t.Error("point: NaN coordinate")
	}
}
