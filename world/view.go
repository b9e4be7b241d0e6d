package world

import "github.com/richoux/microPhantom/model"

// View is the classification of one tick's units. It is rebuilt from scratch
// by every Rescan and never patched incrementally.
type View struct {
	Tick      int
	Resources int

	Bases    []model.Unit
	Barracks []model.Unit
	Workers  []model.Unit
	Army     []model.Unit // light, heavy and ranged
	Melee    []model.Unit // light and heavy
	Light    []model.Unit
	Heavy    []model.Unit
	Ranged   []model.Unit

	IdleBarracks []model.Unit
	ReadyArmy    int // army units with no action in progress

	Enemies       []model.Unit // every live enemy unit, buildings included
	EnemyBases    []model.Unit
	EnemyBarracks []model.Unit
	EnemyWorkers  []model.Unit
	EnemyArmy     []model.Unit
	EnemyMelee    []model.Unit
	EnemyLight    []model.Unit
	EnemyHeavy    []model.Unit
	EnemyRanged   []model.Unit

	Patches     []model.Unit // every known patch, by ID
	NearPatches []model.Unit // patches within PatchThreshold of one of our bases

	occupied map[model.Point]model.Unit
}

func newView(n int) *View {
	return &View{occupied: make(map[model.Point]model.Unit, n)}
}

func (v *View) occupy(u model.Unit) {
	if _, taken := v.occupied[u.Pos()]; !taken {
		v.occupied[u.Pos()] = u
	}
}

// UnitAt returns the live unit standing on p, if any.
func (v *View) UnitAt(p model.Point) (model.Unit, bool) {
	u, ok := v.occupied[p]
	return u, ok
}

// Occupied reports whether any live unit or known resource patch stands on p.
func (v *View) Occupied(p model.Point) bool {
	_, ok := v.occupied[p]
	return ok
}
