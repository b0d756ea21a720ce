package game

// motion applies movement rules, portals and map bounds to one body per call.
// It is shared by the world tick and the standalone trajectory simulation.
type motion struct {
	grid     *CollisionGrid
	portals  *PortalService
	tileSize float64
}

// canProceed reports whether b may advance in dir this step. A portal tile
// walked in its outward direction overrides its own blocked edge; stepping
// off the map is otherwise refused.
func (m motion) canProceed(b *Body, dir Direction, kind ActorKind) bool {
	if dir == DirNone {
		return false
	}
	if m.portals.CanAdvanceOutward(b, dir) {
		return true
	}
	next := b.Tile.Step(dir)
	if !m.grid.InBounds(next.X, next.Y) && b.Offset.Along(dir) >= 0 {
		return false
	}
	return CanMove(dir, b.Offset, m.grid.TilesAt(b.Tile), m.tileSize, kind)
}

// advance moves b by at most speed along dir, stopping exactly on the next
// tile center so decisions happen there. Toward an off-map neighbor the body
// stops at the tile edge, where a portal takes over.
func (m motion) advance(b *Body, dir Direction, speed float64) {
	next := b.Tile.Step(dir)
	if p := b.Offset.Along(dir); p >= 0 && !m.grid.InBounds(next.X, next.Y) {
		limit := m.tileSize/2 - p
		if limit <= 0 || speed <= 0 {
			return
		}
		AdvanceEntity(b, dir, min(speed, limit), m.tileSize)
		return
	}
	stepToCenter(b, dir, speed, m.tileSize)
}

// stepPursuer runs one decision-and-move step for a free pursuer and returns
// its new direction and whether it teleported.
func (m motion) stepPursuer(id EntityID, b *Body, dir Direction, speed float64, rng Rand, tick int64) (Direction, bool) {
	tiles := m.grid.TilesAt(b.Tile)
	if b.Centered() {
		dir = ChooseDirectionAtCenter(dir, tiles, m.tileSize, rng)
	} else if !m.canProceed(b, dir, ActorPursuer) {
		next := ChooseDirectionWhenBlocked(dir, b.Offset, tiles, m.tileSize, rng)
		if next != dir && next != dir.Opposite() {
			// Turning off-axis: snap back onto the lane of the new axis.
			if dir.IsHorizontal() {
				b.Offset.X = 0
			} else {
				b.Offset.Y = 0
			}
		}
		dir = next
	}

	if m.canProceed(b, dir, ActorPursuer) {
		m.advance(b, dir, speed)
	}
	return dir, m.portals.TryTeleport(id, b, dir, tick, m.tileSize)
}

// stepAvatar applies the buffered turn and advances the avatar one step.
func (m motion) stepAvatar(a *Avatar, tick int64) bool {
	ApplyBufferedDirection(a, m.grid.TilesAt(a.Tile), m.tileSize)
	if m.canProceed(&a.Body, a.Current, ActorAvatar) {
		m.advance(&a.Body, a.Current, a.Speed)
	}
	return m.portals.TryTeleport(a.ID, &a.Body, a.Current, tick, m.tileSize)
}
