package model

import (
	"math"
	"testing"
)

func TestDistances(t *testing.T) {
	a := Point{X: 1, Y: 2}
	b := Point{X: 4, Y: 6}

	if got := Manhattan(a, b); got != 7 {
		t.Errorf("Manhattan = %d, want 7", got)
	}
	if got := Euclidean(a, b); math.Abs(got-5) > 1e-9 {
		t.Errorf("Euclidean = %f, want 5", got)
	}
	if Manhattan(a, a) != 0 || Euclidean(b, b) != 0 {
		t.Error("distance from a cell to itself should be 0")
	}
}

func TestMirror(t *testing.T) {
	got := Mirror(Point{X: 1, Y: 2}, 8, 8)
	if got != (Point{X: 6, Y: 5}) {
		t.Errorf("Mirror = %+v, want (6,5)", got)
	}
}

func TestSpiralSearchStartIsFree(t *testing.T) {
	got, ok := SpiralSearch(Point{X: 4, Y: 4}, 10, 10, func(Point) bool { return true })
	if !ok || got != (Point{X: 4, Y: 4}) {
		t.Errorf("SpiralSearch = %+v, %v; want start cell", got, ok)
	}
}

func TestSpiralSearchOrder(t *testing.T) {
	// Block everything near the start so the first clear center is found by
	// walking the spiral: right, down, left, left, up, up, ...
	blocked := map[Point]bool{{X: 5, Y: 5}: true}
	free := func(p Point) bool { return !blocked[p] }

	// Centers whose 3x3 window contains (5,5) are rejected. The walk is
	// (6,5)->(6,6)->(5,6)->(4,6)->(4,5)->(4,4)->(5,4)->(6,4)->(7,4) and
	// (7,4) is the first center whose window excludes (5,5).
	got, ok := SpiralSearch(Point{X: 5, Y: 5}, 12, 12, free)
	if !ok {
		t.Fatal("expected a free cell")
	}
	if got != (Point{X: 7, Y: 4}) {
		t.Errorf("SpiralSearch = %+v, want (7,4)", got)
	}
}

func TestSpiralSearchBorderRejected(t *testing.T) {
	// Start on the border: the 3x3 window would leave the map, so the first
	// accepted center must be one step inside.
	got, ok := SpiralSearch(Point{X: 0, Y: 0}, 6, 6, func(Point) bool { return true })
	if !ok {
		t.Fatal("expected a free cell")
	}
	if got.X < 1 || got.Y < 1 || got.X > 4 || got.Y > 4 {
		t.Errorf("SpiralSearch returned border cell %+v", got)
	}
}

func TestSpiralSearchGivesUp(t *testing.T) {
	_, ok := SpiralSearch(Point{X: 2, Y: 2}, 5, 5, func(Point) bool { return false })
	if ok {
		t.Error("expected no result on a fully blocked map")
	}
	_, ok = SpiralSearch(Point{X: 0, Y: 0}, 2, 2, func(Point) bool { return true })
	if ok {
		t.Error("expected no result on a map smaller than 3x3")
	}
}
