package game

// ChooseDirectionAtCenter picks uniformly among the directions a pursuer may
// take from a tile center. Reversing only happens at dead ends.
func ChooseDirectionAtCenter(current Direction, tiles Neighborhood, tileSize float64, rng Rand) Direction {
	options := AvailableDirections(tiles, current, tileSize, ActorPursuer)
	if len(options) == 0 {
		return current
	}
	return pick(options, rng)
}

// ChooseDirectionWhenBlocked handles a pursuer whose current direction is
// blocked away from a tile center: a passable perpendicular direction first,
// then the exact reverse, else the direction is kept and the pursuer stalls.
func ChooseDirectionWhenBlocked(current Direction, offset Vec, tiles Neighborhood, tileSize float64, rng Rand) Direction {
	var options []Direction
	for _, d := range current.Perpendicular() {
		if CanMove(d, offset, tiles, tileSize, ActorPursuer) {
			options = append(options, d)
		}
	}
	if len(options) > 0 {
		return pick(options, rng)
	}
	if reverse := current.Opposite(); reverse != DirNone && CanMove(reverse, offset, tiles, tileSize, ActorPursuer) {
		return reverse
	}
	return current
}
