package world

import (
	"cmp"
	"maps"
	"math"
	"slices"

	"github.com/richoux/microPhantom/model"
)

// Rescan rebuilds the classified view from the full list of visible units and
// updates trackers, counters and cost-loss accounting. Calling it twice with
// the same snapshot yields the same view and counts nothing twice.
func (s *State) Rescan(units []model.Unit) *View {
	v := newView(len(units))
	reported := make(map[int]bool, len(units))

	for _, u := range units {
		reported[u.ID] = true
		role := s.Types.RoleOf(u.Type)

		if role == model.RoleResource {
			if u.Resources <= 0 {
				delete(s.Patches, u.ID)
				continue
			}
			s.Patches[u.ID] = u
			v.occupy(u)
			continue
		}

		switch {
		case u.Player == s.Self:
			s.scanOwn(v, u, role)
		case u.Player >= 0:
			s.scanEnemy(v, u, role)
		default:
			if u.Alive() {
				v.occupy(u)
			}
		}
	}

	// Own units are always in sight, so an army unit missing from the
	// snapshot has been destroyed.
	for id, t := range s.Army {
		if t.Alive && !reported[id] {
			s.killOwn(t)
		}
	}

	if s.InitialWorkers == -1 {
		s.InitialWorkers = len(v.Workers)
	}

	v.Patches = slices.SortedFunc(maps.Values(s.Patches), func(a, b model.Unit) int {
		return cmp.Compare(a.ID, b.ID)
	})
	for _, p := range v.Patches {
		v.occupy(p)
	}
	s.associatePatches(v)
	return v
}

func (s *State) scanOwn(v *View, u model.Unit, role model.Role) {
	switch role {
	case model.RoleLight, model.RoleHeavy, model.RoleRanged:
		t, ok := s.Army[u.ID]
		if !ok {
			t = &TrackedUnit{Unit: u, Alive: true}
			s.Army[u.ID] = t
		}
		if t.Alive {
			t.Unit = u
		}
		if !u.Alive() {
			s.killOwn(t)
			return
		}
	default:
		if !u.Alive() {
			return
		}
	}

	v.occupy(u)
	switch role {
	case model.RoleBase:
		if s.Home == nil {
			h := u.Pos()
			s.Home = &h
			s.HasInitialBase = true
		}
		v.Bases = append(v.Bases, u)
	case model.RoleBarracks:
		v.Barracks = append(v.Barracks, u)
		if u.Idle() {
			v.IdleBarracks = append(v.IdleBarracks, u)
		}
	case model.RoleWorker:
		v.Workers = append(v.Workers, u)
	case model.RoleLight, model.RoleHeavy, model.RoleRanged:
		v.Army = append(v.Army, u)
		if u.Idle() {
			v.ReadyArmy++
		}
		switch role {
		case model.RoleLight:
			v.Light = append(v.Light, u)
			v.Melee = append(v.Melee, u)
		case model.RoleHeavy:
			v.Heavy = append(v.Heavy, u)
			v.Melee = append(v.Melee, u)
		default:
			v.Ranged = append(v.Ranged, u)
		}
	}
}

func (s *State) scanEnemy(v *View, u model.Unit, role model.Role) {
	switch role {
	case model.RoleWorker, model.RoleLight, model.RoleHeavy, model.RoleRanged:
		t, ok := s.Enemies[u.ID]
		if !ok {
			t = &TrackedUnit{Unit: u, Alive: true}
			s.Enemies[u.ID] = t
			c := s.EnemyCounts[role]
			if c == nil {
				c = &EnemyTypeCounter{}
				s.EnemyCounts[role] = c
			}
			c.Current++
			c.Cumulative++
		}
		if t.Alive {
			t.Unit = u
		}
		if !u.Alive() {
			s.killEnemy(t, role)
			return
		}
	case model.RoleBase, model.RoleBarracks:
		if !u.Alive() {
			return
		}
	default:
		return
	}

	v.occupy(u)
	v.Enemies = append(v.Enemies, u)
	switch role {
	case model.RoleBase:
		v.EnemyBases = append(v.EnemyBases, u)
	case model.RoleBarracks:
		v.EnemyBarracks = append(v.EnemyBarracks, u)
	case model.RoleWorker:
		v.EnemyWorkers = append(v.EnemyWorkers, u)
	default:
		v.EnemyArmy = append(v.EnemyArmy, u)
		switch role {
		case model.RoleLight:
			v.EnemyLight = append(v.EnemyLight, u)
			v.EnemyMelee = append(v.EnemyMelee, u)
		case model.RoleHeavy:
			v.EnemyHeavy = append(v.EnemyHeavy, u)
			v.EnemyMelee = append(v.EnemyMelee, u)
		default:
			v.EnemyRanged = append(v.EnemyRanged, u)
		}
	}
}

func (s *State) killOwn(t *TrackedUnit) {
	if !t.Alive {
		return
	}
	t.Alive = false
	s.MyCostLoss += s.Types.Cost(t.Unit.Type)
}

func (s *State) killEnemy(t *TrackedUnit, role model.Role) {
	if !t.Alive {
		return
	}
	t.Alive = false
	if role != model.RoleWorker {
		s.EnemyCostLoss += s.Types.Cost(t.Unit.Type)
	}
	if c := s.EnemyCounts[role]; c != nil && c.Current > 0 {
		c.Current--
	}
}

// PatchThreshold is the Euclidean distance within which a resource patch
// belongs to a base.
func (s *State) PatchThreshold() float64 {
	sight := float64(s.Types.ByRole(model.RoleWorker).SightRadius)
	return math.Max(math.Sqrt(float64(s.Width*s.Height))/4, sight)
}

// associatePatches assigns each known patch to the first base within the
// threshold and records the patch distances of the first base once known.
func (s *State) associatePatches(v *View) {
	threshold := s.PatchThreshold()
	for _, p := range v.Patches {
		for _, b := range v.Bases {
			if model.Euclidean(p.Pos(), b.Pos()) <= threshold {
				v.NearPatches = append(v.NearPatches, p)
				break
			}
		}
	}

	if s.MinPatchDistance != -1 || len(v.Bases) == 0 || len(v.NearPatches) == 0 {
		return
	}
	first := v.Bases[0].Pos()
	lo, hi := math.MaxInt, -1
	for _, p := range v.NearPatches {
		d := model.Manhattan(first, p.Pos())
		lo = min(lo, d)
		hi = max(hi, d)
	}
	s.MinPatchDistance, s.MaxPatchDistance = lo, hi
}
