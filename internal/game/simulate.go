package game

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"math"
)

// GhostState is the starting state of a simulated pursuer.
type GhostState struct {
	Tile   Point
	Offset Vec
	Dir    Direction
	Speed  float64
}

// TrajectoryStep is one recorded step of a simulated pursuer.
type TrajectoryStep struct {
	Step       int       `json:"step"`
	Tile       Point     `json:"tile"`
	Offset     Vec       `json:"offset"`
	Dir        Direction `json:"direction"`
	World      Vec       `json:"world"`
	Teleported bool      `json:"teleported,omitempty"`
}

// SimulateGhostMovement drives one free pursuer through steps steps of the
// same decision and movement rules the world uses, with portals paired by
// scanning the grid. Equal seeds yield identical trajectories.
func SimulateGhostMovement(grid *CollisionGrid, tileSize float64, rng Rand, start GhostState, steps int) []TrajectoryStep {
	m := motion{grid: grid, portals: NewPortalService(grid, ScanPortalPairs(grid)), tileSize: tileSize}
	body := Body{Tile: start.Tile, Offset: start.Offset}
	dir := start.Dir
	speed := start.Speed
	if speed <= 0 {
		speed = PursuerSpeed
	}

	const id EntityID = 1
	out := make([]TrajectoryStep, 0, steps)
	for i := 0; i < steps; i++ {
		var teleported bool
		dir, teleported = m.stepPursuer(id, &body, dir, speed, rng, int64(i))
		out = append(out, TrajectoryStep{
			Step:       i,
			Tile:       body.Tile,
			Offset:     body.Offset,
			Dir:        dir,
			World:      body.WorldPos(tileSize),
			Teleported: teleported,
		})
	}
	return out
}

// TrajectoryDigest returns a hex SHA-256 over the exact bits of a trajectory,
// suitable as a regression fingerprint.
func TrajectoryDigest(traj []TrajectoryStep) string {
	h := sha256.New()
	var buf [8]byte
	put := func(v uint64) {
		binary.LittleEndian.PutUint64(buf[:], v)
		h.Write(buf[:])
	}
	for _, s := range traj {
		put(uint64(s.Step))
		put(uint64(int64(s.Tile.X)))
		put(uint64(int64(s.Tile.Y)))
		put(math.Float64bits(s.Offset.X))
		put(math.Float64bits(s.Offset.Y))
		put(uint64(s.Dir))
		if s.Teleported {
			put(1)
		} else {
			put(0)
		}
	}
	return hex.EncodeToString(h.Sum(nil))
}
