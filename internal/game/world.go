package game

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"hash"
	"math"

	"github.com/ugaemi/mazechase-server/internal/sched"
)

// EventType names something that happened during a world step.
type EventType string

const (
	EventPellet       EventType = "pellet"
	EventPowerPellet  EventType = "power_pellet"
	EventPursuerEaten EventType = "pursuer_eaten"
	EventAvatarCaught EventType = "avatar_caught"
	EventLevelCleared EventType = "level_cleared"
)

// Event is emitted by Step for the room to broadcast.
type Event struct {
	Type    EventType `json:"type"`
	Tile    Point     `json:"tile"`
	Pursuer EntityID  `json:"pursuer,omitempty"`
	Points  int       `json:"points,omitempty"`
}

// WorldOptions configures a new world. Zero values mean defaults.
type WorldOptions struct {
	Seed       uint64
	GhostCount int
	Lives      int
	Pellets    PelletOptions
}

// World is one authoritative game: the agent arena plus every service acting
// on it. It is not safe for concurrent use; the room serializes access.
type World struct {
	m        *MapData
	grid     *CollisionGrid
	tileSize float64
	rng      Rand
	sched    *sched.Scheduler
	motion   motion
	portals  *PortalService
	jail     *JailService
	scared   *ScaredService

	avatar   *Avatar
	pursuers []*Pursuer
	layout   PelletLayout
	pellets  map[Point]bool // value: power pellet

	trace   hash.Hash
	acc     float64
	ticks   int64
	score   int
	lives   int
	combo   int
	paused  bool
	outcome Outcome
}

// NewWorld builds a world for m: jail band, spawn tile, portals, pellets and
// pursuers, with the staggered releases already scheduled.
func NewWorld(m *MapData, opts WorldOptions) *World {
	grid := m.Grid()
	ts := m.TileSizeOrDefault()
	rng := NewRand(opts.Seed)
	s := sched.New()

	bounds := ResolveJailBounds(m, grid)
	spawn := ResolveSpawnTile(m, grid, bounds)
	portals := NewPortalService(grid, ResolvePortalPairs(m, grid))

	w := &World{
		m:        m,
		grid:     grid,
		tileSize: ts,
		rng:      rng,
		sched:    s,
		motion:   motion{grid: grid, portals: portals, tileSize: ts},
		portals:  portals,
		jail:     NewJailService(bounds, grid, ts, rng, s),
		scared:   NewScaredService(),
		lives:    opts.Lives,
		trace:    sha256.New(),
	}
	if w.lives <= 0 {
		w.lives = StartingLives
	}

	w.avatar = &Avatar{ID: AvatarID, Speed: AvatarSpeed, Spawn: spawn}
	w.avatar.Place(spawn)

	for i, home := range w.jail.HomeTiles(ghostCount(m, opts)) {
		w.pursuers = append(w.pursuers, NewPursuer(EntityID(i+1), home))
	}

	w.layout = BuildPelletLayout(m, grid, spawn, ts, opts.Pellets)
	w.pellets = make(map[Point]bool, len(w.layout.Base))
	for _, p := range w.layout.Base {
		w.pellets[p] = false
	}
	for _, p := range w.layout.Power {
		w.pellets[p] = true
	}

	w.scheduleReleases()
	return w
}

func ghostCount(m *MapData, opts WorldOptions) int {
	if opts.GhostCount > 0 {
		return opts.GhostCount
	}
	if o, ok := m.Object(ObjectJail); ok {
		if n, ok := o.Int("ghostCount"); ok && n > 0 {
			return n
		}
	}
	return DefaultGhostCount
}

func (w *World) avatarTile() Point { return w.avatar.Tile }

func (w *World) scheduleReleases() {
	for i, p := range w.pursuers {
		w.jail.ScheduleRelease(p, ReleaseDelayMs+float64(i)*ReleaseStaggerMs, w.avatarTile)
	}
}

// SetDirection buffers the avatar's next direction.
func (w *World) SetDirection(d Direction) {
	w.avatar.Next = d
}

// SetPaused freezes the world, including scheduled releases and tweens.
func (w *World) SetPaused(paused bool) {
	w.paused = paused
	w.sched.SetPaused(paused)
}

func (w *World) Paused() bool { return w.paused }

// Over reports whether the run has ended.
func (w *World) Over() bool { return w.outcome != OutcomeNone }

func (w *World) Outcome() Outcome { return w.outcome }
func (w *World) Score() int       { return w.score }
func (w *World) Lives() int       { return w.lives }
func (w *World) Ticks() int64     { return w.ticks }

// Map returns the map the world was built from.
func (w *World) Map() *MapData { return w.m }

// Layout returns the pellet layout the world was built with.
func (w *World) Layout() PelletLayout { return w.layout }

// JailBounds returns the resolved pen band.
func (w *World) JailBounds() JailBounds { return w.jail.Bounds() }

// PelletsLeft returns the number of uneaten pellets.
func (w *World) PelletsLeft() int { return len(w.pellets) }

// Abort ends a running game without a result.
func (w *World) Abort() {
	if w.outcome == OutcomeNone {
		w.outcome = OutcomeAborted
	}
}

// Step advances the world by a raw frame delta, running as many fixed steps
// as the accumulator allows. Nothing happens while paused or after the end.
func (w *World) Step(dtMs float64) []Event {
	if w.paused || w.Over() {
		return nil
	}
	res := sched.FixedStep(w.acc, dtMs, StepMs, MaxSubSteps)
	w.acc = res.Accumulator
	var events []Event
	for i := 0; i < res.Steps && !w.Over(); i++ {
		events = append(events, w.StepFixed()...)
	}
	return events
}

// StepFixed runs exactly one fixed step in order: avatar movement, jail
// oscillation, pursuer movement, collisions, scared countdown, scheduler.
func (w *World) StepFixed() []Event {
	if w.Over() {
		return nil
	}
	var events []Event

	w.motion.stepAvatar(w.avatar, w.ticks)
	events = w.eatPellet(events)

	for _, p := range w.pursuers {
		if !p.Active || p.Free || p.Dead || w.jail.IsExiting(p.ID) {
			continue
		}
		w.jail.MoveGhostInJail(p)
	}

	for _, p := range w.pursuers {
		if !p.Active || !p.Free || w.jail.IsExiting(p.ID) {
			continue
		}
		p.Dir, _ = w.motion.stepPursuer(p.ID, &p.Body, p.Dir, p.CurrentSpeed(), w.rng, w.ticks)
	}

	events = w.collide(events)

	if !w.Over() {
		w.scared.Tick(w.pursuers, StepMs)
		if w.scared.Len() == 0 {
			w.combo = 0
		}
		w.sched.Update(StepMs)
	}

	if !w.Over() && len(w.pellets) == 0 {
		w.outcome = OutcomeCleared
		events = append(events, Event{Type: EventLevelCleared, Tile: w.avatar.Tile})
	}
	w.traceStep()
	w.ticks++
	return events
}

func (w *World) traceStep() {
	var buf [8]byte
	put := func(v uint64) {
		binary.LittleEndian.PutUint64(buf[:], v)
		w.trace.Write(buf[:])
	}
	body := func(b *Body) {
		put(uint64(int64(b.Tile.X)))
		put(uint64(int64(b.Tile.Y)))
		put(math.Float64bits(b.Offset.X))
		put(math.Float64bits(b.Offset.Y))
	}
	body(&w.avatar.Body)
	for _, p := range w.pursuers {
		body(&p.Body)
	}
	put(uint64(w.score))
}

// Digest fingerprints every agent position after every fixed step so far.
// Equal seeds and equal inputs give equal digests.
func (w *World) Digest() string {
	return hex.EncodeToString(w.trace.Sum(nil))
}

func (w *World) eatPellet(events []Event) []Event {
	tile := w.avatar.Tile
	power, ok := w.pellets[tile]
	if !ok {
		return events
	}
	delete(w.pellets, tile)
	if !power {
		w.score += PelletPoints
		return append(events, Event{Type: EventPellet, Tile: tile, Points: PelletPoints})
	}
	w.score += PowerPelletPoints
	w.combo = 0
	w.scared.ScareAllActive(w.pursuers, ScaredDurationMs)
	return append(events, Event{Type: EventPowerPellet, Tile: tile, Points: PowerPelletPoints})
}

func (w *World) collide(events []Event) []Event {
	reach := CatchDistanceRatio * w.tileSize
	at := w.avatar.WorldPos(w.tileSize)
	for _, p := range w.pursuers {
		if !p.Active || !p.Free || p.Dead {
			continue
		}
		pos := p.WorldPos(w.tileSize)
		if math.Hypot(pos.X-at.X, pos.Y-at.Y) >= reach {
			continue
		}
		if p.Scared {
			points := eatenPoints(w.combo)
			w.combo++
			w.score += points
			tile := p.Tile
			w.scared.ClearScared(p)
			w.portals.Forget(p.ID)
			w.jail.Jail(p, ReleaseDelayMs, w.avatarTile)
			events = append(events, Event{Type: EventPursuerEaten, Tile: tile, Pursuer: p.ID, Points: points})
			continue
		}

		w.lives--
		events = append(events, Event{Type: EventAvatarCaught, Tile: w.avatar.Tile, Pursuer: p.ID})
		if w.lives <= 0 {
			w.outcome = OutcomeCaught
		} else {
			w.resetAgents()
		}
		return events
	}
	return events
}

// eatenPoints doubles the base award for each pursuer already eaten during
// the current power pellet, up to the cap.
func eatenPoints(combo int) int {
	points := PursuerBasePoints
	for i := 0; i < combo && points < PursuerMaxPoints; i++ {
		points *= 2
	}
	return min(points, PursuerMaxPoints)
}

// resetAgents puts every agent back at its start after the avatar is caught.
// Pellets and score carry over.
func (w *World) resetAgents() {
	w.sched.Clear()
	w.jail.Reset()
	w.combo = 0

	w.avatar.Place(w.avatar.Spawn)
	w.avatar.Current = DirNone
	w.avatar.Next = DirNone
	w.portals.Forget(w.avatar.ID)

	for _, p := range w.pursuers {
		w.scared.ClearScared(p)
		w.portals.Forget(p.ID)
		p.Place(p.Home)
		p.Dir = DirNone
		p.Free = false
		p.SoonFree = false
		p.Dead = false
	}
	w.scheduleReleases()
}

// Snapshot is a read-only view of the world for broadcasting.
type Snapshot struct {
	Tick     int64                     `json:"tick"`
	Avatar   AgentView                 `json:"avatar"`
	Pursuers []AgentView               `json:"pursuers"`
	Pellets  []Point                   `json:"pellets"`
	Power    []Point                   `json:"power_pellets"`
	Scared   map[EntityID]ScaredWindow `json:"scared,omitempty"`
	Score    int                       `json:"score"`
	Lives    int                       `json:"lives"`
	Paused   bool                      `json:"paused"`
	Outcome  Outcome                   `json:"outcome"`
}

// AgentView is the broadcast form of one agent.
type AgentView struct {
	ID       EntityID  `json:"id"`
	Tile     Point     `json:"tile"`
	World    Vec       `json:"world"`
	Dir      Direction `json:"direction"`
	Free     bool      `json:"free,omitempty"`
	Exiting  bool      `json:"exiting,omitempty"`
	SoonFree bool      `json:"soon_free,omitempty"`
	Scared   bool      `json:"scared,omitempty"`
	Dead     bool      `json:"dead,omitempty"`
}

// Snapshot captures the current state.
func (w *World) Snapshot() Snapshot {
	s := Snapshot{
		Tick: w.ticks,
		Avatar: AgentView{
			ID:    w.avatar.ID,
			Tile:  w.avatar.Tile,
			World: w.avatar.WorldPos(w.tileSize),
			Dir:   w.avatar.Current,
		},
		Score:   w.score,
		Lives:   w.lives,
		Paused:  w.paused,
		Outcome: w.outcome,
	}
	for _, p := range w.pursuers {
		if !p.Active {
			continue
		}
		s.Pursuers = append(s.Pursuers, AgentView{
			ID:       p.ID,
			Tile:     p.Tile,
			World:    p.WorldPos(w.tileSize),
			Dir:      p.Dir,
			Free:     p.Free,
			Exiting:  w.jail.IsExiting(p.ID),
			SoonFree: p.SoonFree,
			Scared:   p.Scared,
			Dead:     p.Dead,
		})
		if win, ok := w.scared.Window(p.ID); ok {
			if s.Scared == nil {
				s.Scared = make(map[EntityID]ScaredWindow)
			}
			s.Scared[p.ID] = win
		}
	}
	for p, power := range w.pellets {
		if power {
			s.Power = append(s.Power, p)
		} else {
			s.Pellets = append(s.Pellets, p)
		}
	}
	sortRowMajor(s.Pellets)
	sortRowMajor(s.Power)
	return s
}
