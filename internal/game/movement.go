package game

import "math"

// edgeBlocked reports whether crossing from tiles.Current toward dir is vetoed
// by either side of the shared edge. Pen gates never veto pursuers.
func edgeBlocked(dir Direction, tiles Neighborhood, kind ActorKind) bool {
	cur := tiles.Current
	if cur.Edge(dir) && !(kind == ActorPursuer && cur.PenGate) {
		return true
	}
	next := tiles.Neighbor(dir)
	if next.Edge(dir.Opposite()) && !(kind == ActorPursuer && next.PenGate) {
		return true
	}
	return false
}

// CanMove reports whether an agent with the given sub-tile offset may keep
// moving in dir. An open edge always allows movement. A blocked edge only
// allows finishing a step already under way: the progress along dir must be
// strictly between zero and one tile width.
func CanMove(dir Direction, offset Vec, tiles Neighborhood, tileSize float64, kind ActorKind) bool {
	if dir == DirNone {
		return false
	}
	if !edgeBlocked(dir, tiles, kind) {
		return true
	}
	p := offset.Along(dir)
	return p > 0 && p < tileSize
}

// AvailableDirections lists the directions open at tile center, excluding the
// reverse of current. When nothing else is open the reverse is returned alone,
// provided it is open itself.
func AvailableDirections(tiles Neighborhood, current Direction, tileSize float64, kind ActorKind) []Direction {
	reverse := current.Opposite()
	var out []Direction
	for _, d := range cardinal {
		if reverse != DirNone && d == reverse {
			continue
		}
		if CanMove(d, Vec{}, tiles, tileSize, kind) {
			out = append(out, d)
		}
	}
	if len(out) == 0 && reverse != DirNone && CanMove(reverse, Vec{}, tiles, tileSize, kind) {
		out = append(out, reverse)
	}
	return out
}

// ApplyBufferedDirection turns the avatar onto its buffered direction when it
// sits exactly on a tile center and the turn is legal. It reports whether the
// turn happened.
func ApplyBufferedDirection(a *Avatar, tiles Neighborhood, tileSize float64) bool {
	if a.Next == DirNone || a.Next == a.Current {
		return false
	}
	if !a.Centered() {
		return false
	}
	if !CanMove(a.Next, a.Offset, tiles, tileSize, ActorAvatar) {
		return false
	}
	a.Current = a.Next
	if a.Current.IsHorizontal() {
		a.Offset.X = 0
	} else {
		a.Offset.Y = 0
	}
	return true
}

// AdvanceEntity moves the body speed pixels along dir and rolls its tile
// forward or backward while the offset reaches a full tile, carrying the
// remainder. Speeds above one tile per call are handled.
func AdvanceEntity(b *Body, dir Direction, speed, tileSize float64) {
	if tileSize <= 0 || math.IsNaN(speed) || math.IsInf(speed, 0) {
		return
	}
	dx, dy := dir.Delta()
	b.Offset.X += float64(dx) * speed
	b.Offset.Y += float64(dy) * speed

	for b.Offset.X >= tileSize {
		b.Tile.X++
		b.Offset.X -= tileSize
	}
	for b.Offset.X <= -tileSize {
		b.Tile.X--
		b.Offset.X += tileSize
	}
	for b.Offset.Y >= tileSize {
		b.Tile.Y++
		b.Offset.Y -= tileSize
	}
	for b.Offset.Y <= -tileSize {
		b.Tile.Y--
		b.Offset.Y += tileSize
	}
}

// stepToCenter advances b by at most speed along dir without passing the next
// tile center: when the step would reach or cross it, the body lands exactly
// on it with a zero offset. Moving back toward the current center stops there.
func stepToCenter(b *Body, dir Direction, speed, tileSize float64) {
	if speed <= 0 || dir == DirNone {
		return
	}
	p := b.Offset.Along(dir)
	if p < 0 {
		if speed < -p {
			AdvanceEntity(b, dir, speed, tileSize)
			return
		}
		if dir.IsHorizontal() {
			b.Offset.X = 0
		} else {
			b.Offset.Y = 0
		}
		return
	}
	if speed < tileSize-p {
		AdvanceEntity(b, dir, speed, tileSize)
		return
	}
	b.Place(b.Tile.Step(dir))
}
