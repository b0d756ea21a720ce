package game

// PortalPair links two tiles. OutA and OutB are the outward directions an
// entity must be moving in to enter the respective endpoint.
type PortalPair struct {
	A      Point     `json:"a"`
	B      Point     `json:"b"`
	OutA   Direction `json:"out_a"`
	OutB   Direction `json:"out_b"`
	PairID string    `json:"pair_id,omitempty"`
}

type portalEnd struct {
	dest    Point
	outward Direction
}

// PortalService teleports entities between paired tiles. It remembers the
// tick of each entity's last teleport to refuse same-tick bounces.
type PortalService struct {
	grid         *CollisionGrid
	pairs        []PortalPair
	ends         map[Point]portalEnd
	lastTeleport map[EntityID]int64
}

// NewPortalService indexes the given pairs. Missing outward directions are
// derived from the grid. An endpoint already claimed by an earlier pair is
// skipped so each portal tile has exactly one destination.
func NewPortalService(grid *CollisionGrid, pairs []PortalPair) *PortalService {
	s := &PortalService{
		grid:         grid,
		ends:         make(map[Point]portalEnd, len(pairs)*2),
		lastTeleport: make(map[EntityID]int64),
	}
	for _, p := range pairs {
		if p.A == p.B {
			continue
		}
		if _, taken := s.ends[p.A]; taken {
			continue
		}
		if _, taken := s.ends[p.B]; taken {
			continue
		}
		if p.OutA == DirNone {
			p.OutA = outwardDirection(grid, p.A, p.B)
		}
		if p.OutB == DirNone {
			p.OutB = outwardDirection(grid, p.B, p.A)
		}
		s.ends[p.A] = portalEnd{dest: p.B, outward: p.OutA}
		s.ends[p.B] = portalEnd{dest: p.A, outward: p.OutB}
		s.pairs = append(s.pairs, p)
	}
	return s
}

// Pairs returns the pairs in effect.
func (s *PortalService) Pairs() []PortalPair {
	return append([]PortalPair(nil), s.pairs...)
}

// IsPortal reports whether p is a portal endpoint.
func (s *PortalService) IsPortal(p Point) bool {
	_, ok := s.ends[p]
	return ok
}

// Outward returns the outward direction of endpoint p.
func (s *PortalService) Outward(p Point) (Direction, bool) {
	end, ok := s.ends[p]
	return end.outward, ok
}

func (s *PortalService) resolve(b *Body, dir Direction) (portalEnd, bool) {
	end, ok := s.ends[b.Tile]
	if !ok || dir != end.outward {
		return portalEnd{}, false
	}
	return end, true
}

// TryTeleport moves the body to the paired tile when it has walked at least
// half a tile outward past its portal tile's center. It refuses a second
// teleport on the same tick and never teleports into a fully blocking tile.
func (s *PortalService) TryTeleport(id EntityID, b *Body, dir Direction, tick int64, tileSize float64) bool {
	if last, ok := s.lastTeleport[id]; ok && last == tick {
		return false
	}
	end, ok := s.resolve(b, dir)
	if !ok {
		return false
	}
	if b.Offset.Along(end.outward) < tileSize/2 {
		return false
	}
	if s.grid.TileAt(end.dest.X, end.dest.Y).FullyBlocking() {
		return false
	}
	b.Place(end.dest)
	s.lastTeleport[id] = tick
	return true
}

// CanAdvanceOutward reports whether the body may keep walking out of its
// portal tile in dir, regardless of how far it has already gone.
func (s *PortalService) CanAdvanceOutward(b *Body, dir Direction) bool {
	end, ok := s.resolve(b, dir)
	if !ok {
		return false
	}
	return !s.grid.TileAt(end.dest.X, end.dest.Y).FullyBlocking()
}

// LastTeleport returns the tick of the entity's last teleport.
func (s *PortalService) LastTeleport(id EntityID) (int64, bool) {
	t, ok := s.lastTeleport[id]
	return t, ok
}

// Forget drops the teleport record of an entity that left the world.
func (s *PortalService) Forget(id EntityID) {
	delete(s.lastTeleport, id)
}

// ResolvePortalPairs returns the explicit pairs declared by portal objects
// (grouped by pairId, two endpoints each) or, when there are none, the
// portal-flagged tiles paired in row-major scan order.
func ResolvePortalPairs(m *MapData, grid *CollisionGrid) []PortalPair {
	if pairs := explicitPortalPairs(m, grid); len(pairs) > 0 {
		return pairs
	}
	return ScanPortalPairs(grid)
}

func explicitPortalPairs(m *MapData, grid *CollisionGrid) []PortalPair {
	var order []string
	groups := make(map[string][]Point)
	for _, o := range m.ObjectsNamed(ObjectPortal) {
		id, ok := o.Text("pairId")
		if !ok || id == "" {
			continue
		}
		x, okX := o.Int("gridX")
		y, okY := o.Int("gridY")
		if !okX || !okY || !grid.InBounds(x, y) {
			continue
		}
		if _, seen := groups[id]; !seen {
			order = append(order, id)
		}
		groups[id] = append(groups[id], Point{X: x, Y: y})
	}

	var pairs []PortalPair
	for _, id := range order {
		pts := groups[id]
		if len(pts) != 2 {
			continue
		}
		pairs = append(pairs, PortalPair{A: pts[0], B: pts[1], PairID: id})
	}
	return pairs
}

// ScanPortalPairs pairs portal-flagged tiles in row-major order. A trailing
// unpaired tile is ignored.
func ScanPortalPairs(grid *CollisionGrid) []PortalPair {
	var found []Point
	for y := 0; y < grid.Height(); y++ {
		for x := 0; x < grid.Width(); x++ {
			if grid.TileAt(x, y).Portal {
				found = append(found, Point{X: x, Y: y})
			}
		}
	}
	var pairs []PortalPair
	for i := 0; i+1 < len(found); i += 2 {
		pairs = append(pairs, PortalPair{A: found[i], B: found[i+1]})
	}
	return pairs
}

// outwardDirection derives the direction leading out of endpoint e: the map
// side it touches, else a side that is walled off (its own edge blocked or the
// neighbor fully blocking), else away from the partner endpoint.
func outwardDirection(grid *CollisionGrid, e, partner Point) Direction {
	switch {
	case e.X == 0:
		return DirLeft
	case e.X == grid.Width()-1:
		return DirRight
	case e.Y == 0:
		return DirUp
	case e.Y == grid.Height()-1:
		return DirDown
	}

	t := grid.TileAt(e.X, e.Y)
	for _, d := range []Direction{DirLeft, DirRight, DirUp, DirDown} {
		n := e.Step(d)
		if t.Edge(d) || grid.TileAt(n.X, n.Y).FullyBlocking() {
			return d
		}
	}

	dx := e.X - partner.X
	dy := e.Y - partner.Y
	if absInt(dx) >= absInt(dy) {
		if dx <= 0 {
			return DirLeft
		}
		return DirRight
	}
	if dy < 0 {
		return DirUp
	}
	return DirDown
}
