package model

// TerrainType classifies a single map cell.
type TerrainType byte

const (
	Land TerrainType = 0 // passable ground
	Wall TerrainType = 1 // impassable, never observable as a target
)

// TerrainGrid is the full-resolution terrain of the map, sent once in the
// hello handshake.
type TerrainGrid struct {
	Cols int           // map width
	Rows int           // map height
	Grid []TerrainType // row-major: Grid[row*Cols + col]
}

// NewTerrainGrid returns an all-land grid of the given size.
func NewTerrainGrid(cols, rows int) *TerrainGrid {
	return &TerrainGrid{Cols: cols, Rows: rows, Grid: make([]TerrainType, cols*rows)}
}

// At returns the terrain type at (col, row). Out-of-bounds coordinates are
// walls so callers never step off the map.
func (g *TerrainGrid) At(col, row int) TerrainType {
	if !g.InBounds(col, row) {
		return Wall
	}
	i := row*g.Cols + col
	if i >= len(g.Grid) {
		return Land
	}
	return g.Grid[i]
}

// IsWall reports whether (x, y) is impassable. Satisfies explore.Terrain.
func (g *TerrainGrid) IsWall(x, y int) bool {
	return g.At(x, y) == Wall
}

// InBounds reports whether (col, row) is on the map.
func (g *TerrainGrid) InBounds(col, row int) bool {
	return col >= 0 && col < g.Cols && row >= 0 && row < g.Rows
}

// Set changes the terrain of one cell; out-of-bounds writes are ignored.
func (g *TerrainGrid) Set(col, row int, t TerrainType) {
	if g.InBounds(col, row) {
		g.Grid[row*g.Cols+col] = t
	}
}

// WallCount returns the number of wall cells.
func (g *TerrainGrid) WallCount() int {
	n := 0
	for _, t := range g.Grid {
		if t == Wall {
			n++
		}
	}
	return n
}
