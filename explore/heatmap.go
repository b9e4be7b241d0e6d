// Package explore keeps the fog-of-war heat map: for every cell, how recently
// it was observed. Army units with nothing to fight and workers with nothing
// to harvest use it to pick where to go next.
package explore

import (
	"github.com/richoux/microPhantom/model"
)

// Terrain reports impassable cells.
type Terrain interface {
	IsWall(x, y int) bool
}

// Visibility reports the cells currently inside our combined sight radius.
type Visibility interface {
	Observable(x, y int) bool
}

// Thresholds control how much fog a never-seen cell must push back before it
// is worth walking to.
type Thresholds struct {
	EarlyReveal int // unknown cells required before PhaseTick
	LateReveal  int // unknown cells required from PhaseTick on
	PhaseTick   int
}

// DefaultThresholds: before tick 2000 a target must reveal 12 unknown cells,
// afterwards any unknown cell will do.
func DefaultThresholds() Thresholds {
	return Thresholds{EarlyReveal: 12, LateReveal: 1, PhaseTick: 2000}
}

// Map is the per-cell last-observed grid, exactly width x height.
type Map struct {
	width, height int
	cells         []Freshness
	thresholds    Thresholds
}

// New builds the map once the dimensions are known: walls are unreachable,
// cells observable now are stamped with tick, everything else is unknown.
func New(width, height int, terrain Terrain, vis Visibility, tick int, th Thresholds) *Map {
	m := &Map{
		width:      width,
		height:     height,
		cells:      make([]Freshness, width*height),
		thresholds: th,
	}
	for y := range height {
		for x := range width {
			i := y*width + x
			switch {
			case terrain != nil && terrain.IsWall(x, y):
				m.cells[i] = Unreachable()
			case vis.Observable(x, y):
				m.cells[i] = SeenAt(tick)
			default:
				m.cells[i] = Unknown()
			}
		}
	}
	return m
}

// Update stamps every currently observable reachable cell with tick. Other
// cells keep their value, so freshness never decreases.
func (m *Map) Update(vis Visibility, tick int) {
	for y := range m.height {
		for x := range m.width {
			i := y*m.width + x
			c := m.cells[i]
			if c.IsUnreachable() || !vis.Observable(x, y) {
				continue
			}
			if last, seen := c.LastSeen(); seen && last >= tick {
				continue
			}
			m.cells[i] = SeenAt(tick)
		}
	}
}

func (m *Map) Width() int  { return m.width }
func (m *Map) Height() int { return m.height }

// At returns the freshness of p. Off-map cells are unreachable.
func (m *Map) At(p model.Point) Freshness {
	if !m.inBounds(p) {
		return Unreachable()
	}
	return m.cells[p.Y*m.width+p.X]
}

// Clone returns an independent copy.
func (m *Map) Clone() *Map {
	c := *m
	c.cells = append([]Freshness(nil), m.cells...)
	return &c
}

// UnknownWithin counts never-seen cells within Manhattan distance sight of p.
func (m *Map) UnknownWithin(p model.Point, sight int) int {
	n := 0
	for y := p.Y - sight; y <= p.Y+sight; y++ {
		for x := p.X - sight; x <= p.X+sight; x++ {
			q := model.Point{X: x, Y: y}
			if !m.inBounds(q) || model.Manhattan(p, q) > sight {
				continue
			}
			if m.cells[y*m.width+x].IsUnknown() {
				n++
			}
		}
	}
	return n
}

// RevealsEnoughFog reports whether a unit with the given sight standing on p
// would uncover enough never-seen cells to be worth the trip at this tick.
func (m *Map) RevealsEnoughFog(p model.Point, sight, tick int) bool {
	need := m.thresholds.LateReveal
	if tick < m.thresholds.PhaseTick {
		need = m.thresholds.EarlyReveal
	}
	return m.UnknownWithin(p, sight) >= max(need, 1)
}

func (m *Map) inBounds(p model.Point) bool {
	return p.X >= 0 && p.Y >= 0 && p.X < m.width && p.Y < m.height
}
