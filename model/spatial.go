package model

import "math"

// Point is a map cell.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Add returns p shifted by (dx, dy).
func (p Point) Add(dx, dy int) Point { return Point{X: p.X + dx, Y: p.Y + dy} }

// Euclidean returns the straight-line distance between two cells.
func Euclidean(a, b Point) float64 {
	dx := float64(b.X - a.X)
	dy := float64(b.Y - a.Y)
	return math.Sqrt(dx*dx + dy*dy)
}

// Manhattan returns the grid distance between two cells.
func Manhattan(a, b Point) int {
	return abs(b.X-a.X) + abs(b.Y-a.Y)
}

// Mirror returns the cell point-symmetric to p across the center of a w x h map.
// Generated maps are usually symmetric, so the mirror of our home base is the
// best early guess for the opponent's.
func Mirror(p Point, w, h int) Point {
	return Point{X: w - 1 - p.X, Y: h - 1 - p.Y}
}

// SpiralSearch walks an outward square spiral from start and returns the first
// cell whose whole 3x3 neighbourhood lies on the map and satisfies free.
//
//	21 22 23 24 25 ...
//	20  7  8  9 10
//	19  6  1  2 11
//	18  5  4  3 12
//	17 16 15 14 13
//
// The walk stops once it has covered a square larger than the map, in which
// case ok is false.
func SpiralSearch(start Point, w, h int, free func(Point) bool) (Point, bool) {
	if w < 3 || h < 3 {
		return Point{}, false
	}
	limit := 2*max(w, h) + 1

	p := start
	step, leg := 0, 1
	xTurn := true
	for leg <= limit {
		if clear3x3(p, w, h, free) {
			return p, true
		}
		step++
		delta := 1
		if leg%2 == 0 {
			delta = -1
		}
		if xTurn {
			p.X += delta
		} else {
			p.Y += delta
		}
		if step == leg {
			step = 0
			if !xTurn {
				leg++
			}
			xTurn = !xTurn
		}
	}
	return Point{}, false
}

func clear3x3(c Point, w, h int, free func(Point) bool) bool {
	if c.X-1 < 0 || c.Y-1 < 0 || c.X+1 >= w || c.Y+1 >= h {
		return false
	}
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if !free(c.Add(dx, dy)) {
				return false
			}
		}
	}
	return true
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
