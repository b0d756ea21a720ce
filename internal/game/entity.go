package game

import "math"

// EntityID is a stable per-agent handle: the agent's index in the world arena.
// Side tables (scared windows, exiting set, teleport ticks) are keyed by it.
type EntityID int

// AvatarID is the handle of the single avatar. Pursuers use 1..n.
const AvatarID EntityID = 0

// ActorKind selects which collision exceptions apply to an agent.
type ActorKind int

const (
	ActorAvatar ActorKind = iota
	ActorPursuer
)

func (k ActorKind) String() string {
	if k == ActorPursuer {
		return "pursuer"
	}
	return "avatar"
}

// Body is the positional state shared by every agent. Offset is the sub-tile
// progress from the center of Tile and stays within [-tileSize, tileSize].
type Body struct {
	Tile   Point `json:"tile"`
	Offset Vec   `json:"offset"`
}

// Place puts the body exactly on the center of tile.
func (b *Body) Place(tile Point) {
	b.Tile = tile
	b.Offset = Vec{}
}

// Centered reports whether both offsets are zero.
func (b *Body) Centered() bool {
	return b.Offset.X == 0 && b.Offset.Y == 0
}

// WorldPos returns tile * tileSize + tileSize/2 + offset.
func (b *Body) WorldPos(tileSize float64) Vec {
	return Vec{
		X: float64(b.Tile.X)*tileSize + tileSize/2 + b.Offset.X,
		Y: float64(b.Tile.Y)*tileSize + tileSize/2 + b.Offset.Y,
	}
}

// SetWorldPos re-derives Tile and Offset from a world position so that the
// offset is relative to the tile containing pos.
func (b *Body) SetWorldPos(pos Vec, tileSize float64) {
	tx := int(math.Floor(pos.X / tileSize))
	ty := int(math.Floor(pos.Y / tileSize))
	b.Tile = Point{X: tx, Y: ty}
	b.Offset = Vec{
		X: pos.X - (float64(tx)*tileSize + tileSize/2),
		Y: pos.Y - (float64(ty)*tileSize + tileSize/2),
	}
}

// Avatar is the player-controlled agent. Next is the buffered direction and
// the only field written by input handling.
type Avatar struct {
	Body
	ID      EntityID  `json:"id"`
	Current Direction `json:"direction"`
	Next    Direction `json:"next_direction"`
	Speed   float64   `json:"speed"`
	Spawn   Point     `json:"-"`
}

// Pursuer is a maze-roaming agent.
type Pursuer struct {
	Body
	ID       EntityID  `json:"id"`
	Dir      Direction `json:"direction"`
	Speed    float64   `json:"speed"`
	Active   bool      `json:"active"`
	Free     bool      `json:"free"`
	SoonFree bool      `json:"soon_free"`
	Scared   bool      `json:"scared"`
	Dead     bool      `json:"dead"`
	Home     Point     `json:"-"`
}

// NewPursuer creates an active, jailed pursuer placed at home.
func NewPursuer(id EntityID, home Point) *Pursuer {
	p := &Pursuer{ID: id, Speed: PursuerSpeed, Active: true, Home: home}
	p.Place(home)
	return p
}

// CurrentSpeed returns the pursuer's speed for its state.
func (p *Pursuer) CurrentSpeed() float64 {
	if p.Scared {
		return ScaredPursuerSpeed
	}
	return p.Speed
}
