package model

// Neutral is the owner of resource patches and other unowned units.
const Neutral = -1

// GameState is one tick of the host engine as seen by our player.
type GameState struct {
	Tick      int    `json:"tick"`
	Player    int    `json:"player"`
	Resources int    `json:"resources"`
	Units     []Unit `json:"units"`
	// Fog is true when the game runs under partial observability. Visible is
	// then a row-major MapWidth*MapHeight mask of currently observable cells.
	Fog       bool   `json:"fog"`
	Visible   []bool `json:"visible,omitempty"`
	MapWidth  int    `json:"mapWidth"`
	MapHeight int    `json:"mapHeight"`
}

// Observable reports whether (x, y) is inside our combined sight radius.
// Without fog every in-bounds cell is observable.
func (gs *GameState) Observable(x, y int) bool {
	if x < 0 || y < 0 || x >= gs.MapWidth || y >= gs.MapHeight {
		return false
	}
	if !gs.Fog {
		return true
	}
	i := y*gs.MapWidth + x
	return i < len(gs.Visible) && gs.Visible[i]
}

// Surface is the number of cells on the map.
func (gs *GameState) Surface() int { return gs.MapWidth * gs.MapHeight }

// Unit is a transient reference to a game unit, rebuilt by the host every tick.
type Unit struct {
	ID        int         `json:"id"`
	Player    int         `json:"player"`
	Type      string      `json:"type"`
	X         int         `json:"x"`
	Y         int         `json:"y"`
	HP        int         `json:"hp"`
	Resources int         `json:"resources"`
	Action    *UnitAction `json:"action,omitempty"`
}

// Pos returns the unit's cell.
func (u Unit) Pos() Point { return Point{X: u.X, Y: u.Y} }

// Idle is true when the host reports no in-progress action for the unit.
func (u Unit) Idle() bool { return u.Action == nil }

// Alive is false for units the host still reports on the tick they were destroyed.
func (u Unit) Alive() bool { return u.HP > 0 }

// UnitAction is the in-progress action reported by the action-translation
// layer (move, harvest, produce, ...). Only its presence is used.
type UnitAction struct {
	Type string `json:"type"`
	X    int    `json:"x"`
	Y    int    `json:"y"`
}
