package explore

import (
	"github.com/richoux/microPhantom/model"
)

// FrontierCandidate picks the next exploration target for a unit at from.
//
// While the cell mirroring home across the map center has never been seen it
// wins outright: maps are usually symmetric, so that is where the opponent
// most likely started. Otherwise the stalest reachable cell wins, with ties
// going to the cell nearest to the unit (Euclidean). The unit's own cell is
// never a candidate, and a never-seen cell only counts when standing on it
// would reveal enough fog.
func (m *Map) FrontierCandidate(from model.Point, sight int, home *model.Point, tick int) (model.Point, bool) {
	if home != nil {
		mirror := model.Mirror(*home, m.width, m.height)
		if mirror != from && m.At(mirror).IsUnknown() {
			return mirror, true
		}
	}

	var (
		best     model.Point
		bestF    Freshness
		bestDist float64
		found    bool
	)
	for y := range m.height {
		for x := range m.width {
			p := model.Point{X: x, Y: y}
			if p == from {
				continue
			}
			f := m.cells[y*m.width+x]
			if f.IsUnreachable() {
				continue
			}
			if f.IsUnknown() && !m.RevealsEnoughFog(p, sight, tick) {
				continue
			}
			d := model.Euclidean(from, p)
			switch {
			case !found, f.StalerThan(bestF):
				best, bestF, bestDist, found = p, f, d, true
			case !bestF.StalerThan(f) && d < bestDist:
				best, bestF, bestDist = p, f, d
			}
		}
	}
	return best, found
}

// SearchTarget picks where a worker with nothing to harvest should go to find
// resources: the cell closest to home (Manhattan) that reveals enough fog,
// ties broken by distance to the worker. Without a known home the worker's
// own position is the anchor. When no cell reveals enough fog it falls back
// to FrontierCandidate.
func (m *Map) SearchTarget(from model.Point, sight int, home *model.Point, tick int) (model.Point, bool) {
	anchor := from
	if home != nil {
		anchor = *home
	}

	var (
		best              model.Point
		bestHome, bestOwn int
		found             bool
	)
	for y := range m.height {
		for x := range m.width {
			p := model.Point{X: x, Y: y}
			if m.cells[y*m.width+x].IsUnreachable() || !m.RevealsEnoughFog(p, sight, tick) {
				continue
			}
			dh := model.Manhattan(anchor, p)
			do := model.Manhattan(from, p)
			if !found || dh < bestHome || (dh == bestHome && do < bestOwn) {
				best, bestHome, bestOwn, found = p, dh, do, true
			}
		}
	}
	if found {
		return best, true
	}
	return m.FrontierCandidate(from, sight, home, tick)
}
