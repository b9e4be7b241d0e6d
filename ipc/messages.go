package ipc

import "github.com/richoux/microPhantom/model"

// These constants must stay in sync with the host bridge.
const (
	TypeHello     = "hello"
	TypeAck       = "ack"
	TypeGameState = "game_state"
	TypeError     = "error"
)

// HelloMessage opens a game. UnitTypes is optional: without it the sidecar
// falls back to its configured unit-type table.
type HelloMessage struct {
	Player    int              `json:"player"`
	MapWidth  int              `json:"mapWidth"`
	MapHeight int              `json:"mapHeight"`
	Terrain   *TerrainData     `json:"terrain,omitempty"`
	UnitTypes []model.UnitType `json:"unitTypes,omitempty"`
}

// TerrainData carries the terrain grid, row-major, 0 for land and 1 for wall.
// Optional: if absent every cell is treated as land.
type TerrainData struct {
	Cols int   `json:"cols"`
	Rows int   `json:"rows"`
	Grid []int `json:"grid"`
}

// ToGrid converts the wire terrain to the model grid. Cells missing from a
// short grid stay land.
func (t *TerrainData) ToGrid() *model.TerrainGrid {
	g := model.NewTerrainGrid(t.Cols, t.Rows)
	for i, v := range t.Grid {
		if i >= len(g.Grid) {
			break
		}
		g.Grid[i] = model.TerrainType(v)
	}
	return g
}

type AckMessage struct {
	Status string `json:"status"`
}

// ErrorMessage answers a message whose handler failed, so the host never
// waits on an ack that will not come.
type ErrorMessage struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}
