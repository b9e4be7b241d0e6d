// Package world holds the agent's belief state across ticks and rebuilds the
// classified view of the visible units every tick.
package world

import (
	"maps"

	"github.com/richoux/microPhantom/explore"
	"github.com/richoux/microPhantom/model"
)

// TrackedUnit remembers a friendly army unit or an enemy mobile unit after it
// was first seen. It goes from alive to dead at most once and is never removed.
type TrackedUnit struct {
	Unit  model.Unit
	Alive bool
}

// EnemyTypeCounter counts enemy units of one type: Current is the number
// believed alive, Cumulative every distinct unit ever seen.
type EnemyTypeCounter struct {
	Current    int
	Cumulative int
}

// State is everything the agent believes about the game, owned by a single
// decision loop and handed explicitly to every policy.
type State struct {
	Self  int
	Types *model.UnitTypeTable

	Width, Height int
	Terrain       *model.TerrainGrid
	Thresholds    explore.Thresholds

	Army        map[int]*TrackedUnit
	Enemies     map[int]*TrackedUnit
	EnemyCounts map[model.Role]*EnemyTypeCounter

	MyCostLoss    int
	EnemyCostLoss int

	// Home is the position of the first own base ever seen.
	Home *model.Point

	InitialWorkers     int // -1 until the first scan
	InitialResources   int
	HasInitialBase     bool
	HasInitialBarracks bool

	// Manhattan distances from the first base to its near patches, -1 until
	// a base with near patches has been seen.
	MinPatchDistance int
	MaxPatchDistance int

	// Patches are the known resource patches keyed by unit ID.
	Patches map[int]model.Unit

	// Heat is nil when the game is fully observable.
	Heat *explore.Map

	Quota      Quota
	NoTraining bool

	// AttackTargets is the cell each army unit was last ordered to attack.
	AttackTargets map[int]model.Point

	started bool
}

// NewState returns a fresh state for the given player and ruleset.
func NewState(self int, types *model.UnitTypeTable) *State {
	s := &State{
		Self:       self,
		Types:      types,
		Thresholds: explore.DefaultThresholds(),
	}
	s.Reset()
	return s
}

// Reset forgets everything learned during a game. The player, ruleset, map
// geometry and thresholds are kept.
func (s *State) Reset() {
	s.Army = make(map[int]*TrackedUnit)
	s.Enemies = make(map[int]*TrackedUnit)
	s.EnemyCounts = make(map[model.Role]*EnemyTypeCounter)
	s.MyCostLoss = 0
	s.EnemyCostLoss = 0
	s.Home = nil
	s.InitialWorkers = -1
	s.InitialResources = 0
	s.HasInitialBase = false
	s.HasInitialBarracks = false
	s.MinPatchDistance = -1
	s.MaxPatchDistance = -1
	s.Patches = make(map[int]model.Unit)
	s.Heat = nil
	s.Quota = Quota{}
	s.NoTraining = false
	s.AttackTargets = make(map[int]model.Point)
	s.started = false
}

// Clone returns a deep copy that shares nothing mutable with s except the
// read-only unit type table and terrain.
func (s *State) Clone() *State {
	c := *s
	c.Army = cloneTracked(s.Army)
	c.Enemies = cloneTracked(s.Enemies)
	c.EnemyCounts = make(map[model.Role]*EnemyTypeCounter, len(s.EnemyCounts))
	for k, v := range s.EnemyCounts {
		cnt := *v
		c.EnemyCounts[k] = &cnt
	}
	if s.Home != nil {
		h := *s.Home
		c.Home = &h
	}
	c.Patches = maps.Clone(s.Patches)
	c.AttackTargets = maps.Clone(s.AttackTargets)
	if s.Heat != nil {
		c.Heat = s.Heat.Clone()
	}
	return &c
}

func cloneTracked(m map[int]*TrackedUnit) map[int]*TrackedUnit {
	out := make(map[int]*TrackedUnit, len(m))
	for id, t := range m {
		cp := *t
		out[id] = &cp
	}
	return out
}

// Counter returns the counter for the enemy type playing role r, zero if
// no such unit was ever seen.
func (s *State) Counter(r model.Role) EnemyTypeCounter {
	if c, ok := s.EnemyCounts[r]; ok {
		return *c
	}
	return EnemyTypeCounter{}
}

// Observe folds one game state into the belief state: it forgets patches
// that vanished from sight, rescans the units, records first-tick facts and
// refreshes the heat map.
func (s *State) Observe(gs *model.GameState) *View {
	if gs.MapWidth > 0 && gs.MapHeight > 0 {
		s.Width, s.Height = gs.MapWidth, gs.MapHeight
	}
	s.forgetVanishedPatches(gs)

	v := s.Rescan(gs.Units)
	v.Tick = gs.Tick
	v.Resources = gs.Resources

	if !s.started {
		s.started = true
		s.InitialResources = gs.Resources
		s.HasInitialBarracks = len(v.Barracks) > 0
		if gs.Fog && s.Width > 0 && s.Height > 0 {
			var terrain explore.Terrain
			if s.Terrain != nil {
				terrain = s.Terrain
			}
			s.Heat = explore.New(s.Width, s.Height, terrain, gs, gs.Tick, s.Thresholds)
		}
	} else if s.Heat != nil {
		s.Heat.Update(gs, gs.Tick)
	}
	return v
}

// forgetVanishedPatches drops known patches whose cell is in sight but which
// the host no longer reports: they were harvested out.
func (s *State) forgetVanishedPatches(gs *model.GameState) {
	if len(s.Patches) == 0 {
		return
	}
	reported := make(map[int]bool, len(gs.Units))
	for _, u := range gs.Units {
		reported[u.ID] = true
	}
	for id, p := range s.Patches {
		if !reported[id] && gs.Observable(p.X, p.Y) {
			delete(s.Patches, id)
		}
	}
}
