package game

import (
	"github.com/zyedidia/generic/mapset"

	"github.com/ugaemi/mazechase-server/internal/sched"
)

// JailBounds is the horizontal band pursuers patrol while penned.
type JailBounds struct {
	MinX int `json:"min_x"`
	MaxX int `json:"max_x"`
	Y    int `json:"y"`
}

// Contains reports whether x lies within the band.
func (b JailBounds) Contains(x int) bool {
	return x >= b.MinX && x <= b.MaxX
}

// ReleasePreference breaks ties between equally near release tiles.
type ReleasePreference int

const (
	PreferRandom ReleasePreference = iota
	PreferLeft
	PreferRight
)

// JailService runs the pen life-cycle: oscillation while jailed, the timed
// release tween, and re-jailing after a pursuer is eaten. Pursuers in the
// exiting set are driven by their tween and must be skipped by movement.
type JailService struct {
	bounds   JailBounds
	grid     *CollisionGrid
	tileSize float64
	rng      Rand
	sched    *sched.Scheduler
	exiting  mapset.Set[EntityID]
}

// NewJailService creates a jail service for the given band.
func NewJailService(bounds JailBounds, grid *CollisionGrid, tileSize float64, rng Rand, s *sched.Scheduler) *JailService {
	return &JailService{
		bounds:   bounds,
		grid:     grid,
		tileSize: tileSize,
		rng:      rng,
		sched:    s,
		exiting:  mapset.New[EntityID](),
	}
}

func (j *JailService) Bounds() JailBounds { return j.bounds }

// IsExiting reports whether the pursuer is tweening out of the pen.
func (j *JailService) IsExiting(id EntityID) bool {
	return j.exiting.Has(id)
}

// ExitingCount returns the number of pursuers currently leaving the pen.
func (j *JailService) ExitingCount() int {
	return j.exiting.Size()
}

// HomeTiles spreads n pen positions evenly across the band.
func (j *JailService) HomeTiles(n int) []Point {
	width := j.bounds.MaxX - j.bounds.MinX + 1
	homes := make([]Point, n)
	for i := range homes {
		x := j.bounds.MinX + ((2*i+1)*width)/(2*n)
		homes[i] = Point{X: clampInt(x, j.bounds.MinX, j.bounds.MaxX), Y: j.bounds.Y}
	}
	return homes
}

// MoveGhostInJail advances a penned pursuer one step of its left-right patrol.
func (j *JailService) MoveGhostInJail(p *Pursuer) {
	b := j.bounds
	if p.Tile.Y != b.Y {
		p.Tile.Y = b.Y
		p.Offset.Y = 0
	}
	if b.MinX == b.MaxX {
		p.Place(Point{X: b.MinX, Y: b.Y})
		p.Dir = DirNone
		return
	}

	if p.Offset.X == 0 {
		if !p.Dir.IsHorizontal() {
			if j.rng.IntN(2) == 0 {
				p.Dir = DirLeft
			} else {
				p.Dir = DirRight
			}
		}
		if p.Tile.X <= b.MinX && p.Dir == DirLeft {
			p.Dir = DirRight
		}
		if p.Tile.X >= b.MaxX && p.Dir == DirRight {
			p.Dir = DirLeft
		}
	}

	stepToCenter(&p.Body, p.Dir, JailMoveSpeed, j.tileSize)

	// Safety net; correct bounds never trigger it.
	if p.Tile.X < b.MinX {
		p.Tile.X = b.MinX
		p.Offset.X = 0
		p.Dir = DirRight
	} else if p.Tile.X > b.MaxX {
		p.Tile.X = b.MaxX
		p.Offset.X = 0
		p.Dir = DirLeft
	}
}

// FindReleaseTile picks the tile on the row above the band where the pursuer
// leaves the pen: nearest to its x, never the avatar's tile, and only tiles a
// pursuer can move on from. Ties follow pref, or the random source.
func (j *JailService) FindReleaseTile(p *Pursuer, avatarTile Point, pref ReleasePreference) Point {
	row := clampInt(j.bounds.Y-1, 0, j.grid.Height()-1)

	var best []Point
	bestDist := -1
	for x := j.bounds.MinX; x <= j.bounds.MaxX; x++ {
		c := Point{X: x, Y: row}
		if c == avatarTile || !j.grid.InBounds(c.X, c.Y) {
			continue
		}
		if len(AvailableDirections(j.grid.TilesAt(c), DirNone, j.tileSize, ActorPursuer)) == 0 {
			continue
		}
		d := absInt(x - p.Tile.X)
		switch {
		case bestDist < 0 || d < bestDist:
			best = []Point{c}
			bestDist = d
		case d == bestDist:
			best = append(best, c)
		}
	}

	switch {
	case len(best) == 0:
		return j.grid.Clamp(Point{X: p.Tile.X, Y: row})
	case len(best) == 1:
		return best[0]
	}
	switch pref {
	case PreferLeft:
		return best[0]
	case PreferRight:
		return best[len(best)-1]
	default:
		return best[j.rng.IntN(len(best))]
	}
}

// ScheduleRelease releases the pursuer after delayMs. avatarTile is read when
// the timer fires. Firing for a pursuer that is already free or leaving is a
// no-op, so a duplicate schedule never starts a second tween.
func (j *JailService) ScheduleRelease(p *Pursuer, delayMs float64, avatarTile func() Point) *sched.DelayedCall {
	if p.Free {
		return nil
	}
	p.SoonFree = true
	return j.sched.Timers.After(delayMs, func() {
		j.Release(p, avatarTile())
	})
}

// Release starts the exit tween toward the release tile. On completion the
// pursuer is snapped onto the tile and marked free. A pursuer deactivated
// mid-tween only leaves the exiting set.
func (j *JailService) Release(p *Pursuer, avatarTile Point) bool {
	if !p.Active || p.Free || p.Dead || j.exiting.Has(p.ID) {
		return false
	}
	target := j.FindReleaseTile(p, avatarTile, PreferRandom)
	j.exiting.Put(p.ID)

	var dest Body
	dest.Place(target)
	start := p.WorldPos(j.tileSize)
	end := dest.WorldPos(j.tileSize)
	pos := start

	var tw *sched.Tween
	tw = j.sched.Tweens.Add(&sched.Tween{
		Targets:  []*float64{&pos.X, &pos.Y},
		To:       []float64{end.X, end.Y},
		Duration: ReleaseTweenMs,
		Ease:     sched.EaseInOutQuad,
		OnUpdate: func() {
			if !p.Active {
				j.exiting.Remove(p.ID)
				j.sched.Tweens.Cancel(tw)
				return
			}
			p.SetWorldPos(pos, j.tileSize)
		},
		OnComplete: func() {
			j.exiting.Remove(p.ID)
			if !p.Active {
				return
			}
			p.Place(target)
			p.Free = true
			p.SoonFree = false
			p.Dir = DirUp
		},
	})
	return true
}

// Jail sends an eaten pursuer back to its home tile. It regenerates there for
// RespawnDelayMs and then waits releaseDelayMs more before leaving again.
func (j *JailService) Jail(p *Pursuer, releaseDelayMs float64, avatarTile func() Point) {
	j.exiting.Remove(p.ID)
	p.Place(p.Home)
	p.Free = false
	p.SoonFree = false
	p.Scared = false
	p.Dead = true
	p.Dir = DirNone
	j.sched.Timers.After(RespawnDelayMs, func() {
		p.Dead = false
		if p.Active {
			j.ScheduleRelease(p, releaseDelayMs, avatarTile)
		}
	})
}

// Reset forgets every in-flight exit. Callers cancel the tweens themselves.
func (j *JailService) Reset() {
	j.exiting = mapset.New[EntityID]()
}
