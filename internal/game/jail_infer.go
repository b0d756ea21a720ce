package game

import "math"

// Penning geometry inference. Maps without jail or spawn metadata still get a
// plausible pen from these heuristics; they are best-effort and were tuned on
// classic-style layouts, so authored metadata should be preferred.

// tileRun is a horizontal stretch of tiles on row y from x0 to x1 inclusive.
type tileRun struct {
	y, x0, x1 int
	id        int
}

func (r tileRun) length() int { return r.x1 - r.x0 + 1 }

func (r tileRun) centerX() float64 { return float64(r.x0+r.x1) / 2 }

// ResolveJailBounds returns the jail band from map metadata, else from
// geometry inference, else the map fallback tile as a one-tile band. The
// result is clamped to the map and always has MinX <= MaxX.
func ResolveJailBounds(m *MapData, grid *CollisionGrid) JailBounds {
	if b, ok := jailFromMetadata(m); ok {
		return clampBounds(b, m)
	}
	if b, ok := InferJailBounds(m, grid); ok {
		return clampBounds(b, m)
	}
	f := m.FallbackTile()
	return JailBounds{MinX: f.X, MaxX: f.X, Y: f.Y}
}

func jailFromMetadata(m *MapData) (JailBounds, bool) {
	o, ok := m.Object(ObjectJail)
	if !ok {
		return JailBounds{}, false
	}
	minX, ok1 := o.Int("startX")
	maxX, ok2 := o.Int("endX")
	y, ok3 := o.Int("gridY")
	if !ok1 || !ok2 || !ok3 {
		return JailBounds{}, false
	}
	if minX > maxX {
		minX, maxX = maxX, minX
	}
	return JailBounds{MinX: minX, MaxX: maxX, Y: y}, true
}

func clampBounds(b JailBounds, m *MapData) JailBounds {
	b.MinX = clampInt(b.MinX, 0, m.Width-1)
	b.MaxX = clampInt(b.MaxX, 0, m.Width-1)
	b.Y = clampInt(b.Y, 0, m.Height-1)
	if b.MinX > b.MaxX {
		b.MinX, b.MaxX = b.MaxX, b.MinX
	}
	return b
}

// InferJailBounds guesses the jail band from map geometry. Runs of three or
// more pen-gate tiles win: the band is the row below the longest run nearest
// the horizontal center. Otherwise the best interior run of one repeated tile
// identifier is used as the band itself.
func InferJailBounds(m *MapData, grid *CollisionGrid) (JailBounds, bool) {
	if run, ok := bestGateRun(grid); ok {
		return JailBounds{MinX: run.x0, MaxX: run.x1, Y: clampInt(run.y+1, 0, grid.Height()-1)}, true
	}
	if run, ok := bestIdentifierRun(m); ok {
		return JailBounds{MinX: run.x0, MaxX: run.x1, Y: run.y}, true
	}
	return JailBounds{}, false
}

func bestGateRun(grid *CollisionGrid) (tileRun, bool) {
	center := float64(grid.Width()-1) / 2
	var best tileRun
	found := false
	for y := 0; y < grid.Height(); y++ {
		x := 0
		for x < grid.Width() {
			if !grid.TileAt(x, y).PenGate {
				x++
				continue
			}
			start := x
			for x < grid.Width() && grid.TileAt(x, y).PenGate {
				x++
			}
			run := tileRun{y: y, x0: start, x1: x - 1}
			if run.length() < 3 {
				continue
			}
			if !found || betterGateRun(run, best, center) {
				best = run
				found = true
			}
		}
	}
	return best, found
}

func betterGateRun(a, b tileRun, center float64) bool {
	if a.length() != b.length() {
		return a.length() > b.length()
	}
	da, db := math.Abs(a.centerX()-center), math.Abs(b.centerX()-center)
	if da != db {
		return da < db
	}
	if a.y != b.y {
		return a.y < b.y
	}
	return a.x0 < b.x0
}

// identifierRuns lists interior runs (outer border ring excluded) of three or
// more equal, non-void tile identifiers.
func identifierRuns(m *MapData) []tileRun {
	var runs []tileRun
	for y := 1; y < m.Height-1; y++ {
		x := 1
		for x < m.Width-1 {
			id := m.RawID(x, y)
			start := x
			for x < m.Width-1 && m.RawID(x, y) == id {
				x++
			}
			if id == 0 || x-start < 3 {
				continue
			}
			runs = append(runs, tileRun{y: y, x0: start, x1: x - 1, id: id})
		}
	}
	return runs
}

func bestIdentifierRun(m *MapData) (tileRun, bool) {
	runs := identifierRuns(m)
	if len(runs) == 0 {
		return tileRun{}, false
	}
	counts := make(map[int]int)
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			counts[m.RawID(x, y)]++
		}
	}

	s := runScorer{
		center:    float64(m.Width-1) / 2,
		lowerHalf: m.Height / 2,
		twoThirds: float64(m.Height) * 2 / 3,
		counts:    counts,
	}
	best := runs[0]
	for _, r := range runs[1:] {
		if s.better(r, best) {
			best = r
		}
	}
	return best, true
}

type runScorer struct {
	center    float64
	lowerHalf int
	twoThirds float64
	counts    map[int]int
}

// better orders runs by: lower half first, nearest the horizontal center,
// rarest identifier, longest, nearest two-thirds height, topmost, leftmost.
func (s runScorer) better(a, b tileRun) bool {
	la, lb := a.y >= s.lowerHalf, b.y >= s.lowerHalf
	if la != lb {
		return la
	}
	da, db := math.Abs(a.centerX()-s.center), math.Abs(b.centerX()-s.center)
	if da != db {
		return da < db
	}
	if ca, cb := s.counts[a.id], s.counts[b.id]; ca != cb {
		return ca < cb
	}
	if a.length() != b.length() {
		return a.length() > b.length()
	}
	ta, tb := math.Abs(float64(a.y)-s.twoThirds), math.Abs(float64(b.y)-s.twoThirds)
	if ta != tb {
		return ta < tb
	}
	if a.y != b.y {
		return a.y < b.y
	}
	return a.x0 < b.x0
}

// ResolveSpawnTile returns the avatar spawn tile from the spawn object, else
// from a marker row found searching upward from the jail band, else the map
// fallback tile.
func ResolveSpawnTile(m *MapData, grid *CollisionGrid, jail JailBounds) Point {
	if o, ok := m.Object(ObjectSpawn); ok {
		x, okX := o.Int("gridX")
		y, okY := o.Int("gridY")
		if okX && okY && grid.InBounds(x, y) {
			return Point{X: x, Y: y}
		}
	}
	if p, ok := inferSpawnTile(m, grid, jail); ok {
		return p
	}
	return m.FallbackTile()
}

// inferSpawnTile scans rows upward from above the release row for a run of
// three or more equal identifiers covering the band's center column, and
// returns that column on the first such row the avatar can move from.
func inferSpawnTile(m *MapData, grid *CollisionGrid, jail JailBounds) (Point, bool) {
	cx := (jail.MinX + jail.MaxX) / 2
	ts := m.TileSizeOrDefault()
	for y := jail.Y - 2; y >= 1; y-- {
		id := m.RawID(cx, y)
		if id == 0 {
			continue
		}
		x0, x1 := cx, cx
		for x0-1 >= 0 && m.RawID(x0-1, y) == id {
			x0--
		}
		for x1+1 < m.Width && m.RawID(x1+1, y) == id {
			x1++
		}
		if x1-x0+1 < 3 {
			continue
		}
		p := Point{X: cx, Y: y}
		if len(navigableNeighbors(grid, p, ts)) > 0 {
			return p, true
		}
	}
	return Point{}, false
}
