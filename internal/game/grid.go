package game

// Tile holds the collision flags of one grid cell.
// Edge flags block crossing the named edge and are independent of Collides.
type Tile struct {
	Collides bool `json:"collides,omitempty"`
	Up       bool `json:"up,omitempty"`
	Down     bool `json:"down,omitempty"`
	Left     bool `json:"left,omitempty"`
	Right    bool `json:"right,omitempty"`
	PenGate  bool `json:"pen_gate,omitempty"` // edges are permeable to pursuers
	Portal   bool `json:"portal,omitempty"`
}

// Edge reports whether the edge of t facing d blocks crossing.
func (t Tile) Edge(d Direction) bool {
	switch d {
	case DirUp:
		return t.Up
	case DirDown:
		return t.Down
	case DirLeft:
		return t.Left
	case DirRight:
		return t.Right
	default:
		return false
	}
}

// FullyBlocking reports whether the tile collides and blocks all four edges.
func (t Tile) FullyBlocking() bool {
	return t.Collides && t.Up && t.Down && t.Left && t.Right
}

// Neighborhood is a tile together with its four direct neighbors.
type Neighborhood struct {
	Current Tile
	Up      Tile
	Down    Tile
	Left    Tile
	Right   Tile
}

// Neighbor returns the neighbor in direction d, or Current for DirNone.
func (n Neighborhood) Neighbor(d Direction) Tile {
	switch d {
	case DirUp:
		return n.Up
	case DirDown:
		return n.Down
	case DirLeft:
		return n.Left
	case DirRight:
		return n.Right
	default:
		return n.Current
	}
}

// CollisionGrid is an immutable edge-blocking lookup over a rectangular map.
// Coordinates outside the map resolve to a fully open tile.
type CollisionGrid struct {
	width  int
	height int
	tiles  []Tile
}

// NewCollisionGrid builds a grid from a row-major matrix (rows[y][x]).
// Short rows are padded with open tiles.
func NewCollisionGrid(rows [][]Tile) *CollisionGrid {
	g := &CollisionGrid{height: len(rows)}
	for _, row := range rows {
		if len(row) > g.width {
			g.width = len(row)
		}
	}
	g.tiles = make([]Tile, g.width*g.height)
	for y, row := range rows {
		copy(g.tiles[y*g.width:], row)
	}
	return g
}

func (g *CollisionGrid) Width() int  { return g.width }
func (g *CollisionGrid) Height() int { return g.height }

// InBounds reports whether (x, y) lies inside the map.
func (g *CollisionGrid) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < g.width && y < g.height
}

// TileAt returns the tile at (x, y), or an open tile when out of bounds.
func (g *CollisionGrid) TileAt(x, y int) Tile {
	if !g.InBounds(x, y) {
		return Tile{}
	}
	return g.tiles[y*g.width+x]
}

// TilesAt returns p's tile and its four neighbors.
func (g *CollisionGrid) TilesAt(p Point) Neighborhood {
	return Neighborhood{
		Current: g.TileAt(p.X, p.Y),
		Up:      g.TileAt(p.X, p.Y-1),
		Down:    g.TileAt(p.X, p.Y+1),
		Left:    g.TileAt(p.X-1, p.Y),
		Right:   g.TileAt(p.X+1, p.Y),
	}
}

// Clamp returns p moved inside the map bounds.
func (g *CollisionGrid) Clamp(p Point) Point {
	return Point{X: clampInt(p.X, 0, g.width-1), Y: clampInt(p.Y, 0, g.height-1)}
}

func clampInt(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
