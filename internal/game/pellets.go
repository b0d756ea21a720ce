package game

import (
	"encoding/binary"
	"hash/fnv"
	"math"
	"sort"

	"github.com/zyedidia/generic/mapset"
)

// PelletOptions tunes power-pellet selection. Zero values mean defaults:
// a seed derived from the map, ratio 1/13, at least one, at most all.
type PelletOptions struct {
	Seed  *uint32
	Ratio float64
	Min   int
	Max   int
}

// PelletLayout is the pellet placement of one map. Base and Power are sorted
// by row, then column; Power is a subset of Base.
type PelletLayout struct {
	Base  []Point `json:"base"`
	Power []Point `json:"power"`
	Seed  uint32  `json:"seed"`
}

// navigableNeighbors lists the in-bounds, non-gate neighbors an avatar
// standing on the center of p can move to, in cardinal order.
func navigableNeighbors(grid *CollisionGrid, p Point, tileSize float64) []Point {
	tiles := grid.TilesAt(p)
	var out []Point
	for _, d := range cardinal {
		n := p.Step(d)
		if !grid.InBounds(n.X, n.Y) || grid.TileAt(n.X, n.Y).PenGate {
			continue
		}
		if CanMove(d, Vec{}, tiles, tileSize, ActorAvatar) {
			out = append(out, n)
		}
	}
	return out
}

// opensOntoVoid reports whether p has a passable edge leading straight onto an
// in-bounds tile with no tile identifier.
func opensOntoVoid(m *MapData, grid *CollisionGrid, p Point, tileSize float64) bool {
	tiles := grid.TilesAt(p)
	for _, d := range cardinal {
		n := p.Step(d)
		if !grid.InBounds(n.X, n.Y) || m.RawID(n.X, n.Y) != 0 {
			continue
		}
		if CanMove(d, Vec{}, tiles, tileSize, ActorAvatar) {
			return true
		}
	}
	return false
}

// resolvePelletStart returns preferred when it has a navigable neighbor, else
// the first such tile in row-major order.
func resolvePelletStart(grid *CollisionGrid, preferred Point, tileSize float64) (Point, bool) {
	if grid.InBounds(preferred.X, preferred.Y) && len(navigableNeighbors(grid, preferred, tileSize)) > 0 {
		return preferred, true
	}
	for y := 0; y < grid.Height(); y++ {
		for x := 0; x < grid.Width(); x++ {
			p := Point{X: x, Y: y}
			if len(navigableNeighbors(grid, p, tileSize)) > 0 {
				return p, true
			}
		}
	}
	return Point{}, false
}

// ReachableTiles returns every tile reachable from start by breadth-first
// search over navigable neighbors, start included, in visit order.
func ReachableTiles(grid *CollisionGrid, start Point, tileSize float64) []Point {
	if !grid.InBounds(start.X, start.Y) {
		return nil
	}
	visited := mapset.New[Point]()
	visited.Put(start)
	queue := []Point{start}
	var out []Point
	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]
		out = append(out, p)
		for _, n := range navigableNeighbors(grid, p, tileSize) {
			if visited.Has(n) {
				continue
			}
			visited.Put(n)
			queue = append(queue, n)
		}
	}
	return out
}

// BuildPelletLayout places a base pellet on every reachable tile that does not
// open onto void, then picks a seeded subset as power pellets. Equal maps and
// options always produce equal layouts.
func BuildPelletLayout(m *MapData, grid *CollisionGrid, start Point, tileSize float64, opts PelletOptions) PelletLayout {
	origin, ok := resolvePelletStart(grid, start, tileSize)
	if !ok {
		origin = start
	}

	var layout PelletLayout
	if opts.Seed != nil {
		layout.Seed = *opts.Seed
	} else {
		layout.Seed = LayoutSeed(m, origin)
	}
	if !ok {
		return layout
	}

	for _, p := range ReachableTiles(grid, origin, tileSize) {
		if !opensOntoVoid(m, grid, p, tileSize) {
			layout.Base = append(layout.Base, p)
		}
	}
	sortRowMajor(layout.Base)

	count := powerCount(len(layout.Base), opts)
	if count == 0 {
		return layout
	}
	shuffled := append([]Point(nil), layout.Base...)
	rng := NewRand(uint64(layout.Seed))
	for i := len(shuffled) - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	}
	layout.Power = shuffled[:count]
	sortRowMajor(layout.Power)
	return layout
}

func powerCount(n int, opts PelletOptions) int {
	if n == 0 {
		return 0
	}
	ratio := opts.Ratio
	if ratio <= 0 || math.IsNaN(ratio) {
		ratio = DefaultPowerRatio
	}
	lo := opts.Min
	if lo <= 0 {
		lo = DefaultPowerMin
	}
	hi := opts.Max
	if hi <= 0 || hi > n {
		hi = n
	}
	lo = min(lo, hi)
	return clampInt(int(math.Round(float64(n)*ratio)), lo, hi)
}

func sortRowMajor(pts []Point) {
	sort.Slice(pts, func(i, j int) bool {
		if pts[i].Y != pts[j].Y {
			return pts[i].Y < pts[j].Y
		}
		return pts[i].X < pts[j].X
	})
}

// LayoutSeed folds the map dimensions, the start tile and every raw tile
// identifier through 32-bit FNV-1a and a final avalanche mix. Any change to a
// tile identifier changes the seed.
func LayoutSeed(m *MapData, start Point) uint32 {
	h := fnv.New32a()
	var buf [4]byte
	put := func(v int) {
		binary.LittleEndian.PutUint32(buf[:], uint32(int32(v)))
		h.Write(buf[:])
	}
	put(m.Width)
	put(m.Height)
	put(start.X)
	put(start.Y)
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			put(m.RawID(x, y))
		}
	}
	return fmix32(h.Sum32())
}

func fmix32(h uint32) uint32 {
	h ^= h >> 16
	h *= 0x85ebca6b
	h ^= h >> 13
	h *= 0xc2b2ae35
	h ^= h >> 16
	return h
}
