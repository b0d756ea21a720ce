package room

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/ugaemi/mazechase-server/internal/game"
	"github.com/ugaemi/mazechase-server/internal/store"
	"github.com/ugaemi/mazechase-server/internal/ws"
)

var (
	ErrRoomFull       = errors.New("room is full")
	ErrNotPilot       = errors.New("only the pilot can do that")
	ErrNotPlaying     = errors.New("game is not running")
	ErrAlreadyPlaying = errors.New("game already started")
)

const saveTimeout = 5 * time.Second

// Settings are shared by every room of a manager.
type Settings struct {
	Map           *game.MapData
	MapDigest     string
	TickRate      int // loop iterations per second
	MaxSpectators int
	Store         store.RunStore // optional
}

func (s Settings) tickInterval() time.Duration {
	rate := s.TickRate
	if rate <= 0 {
		rate = 60
	}
	return time.Second / time.Duration(rate)
}

// Room is one maze run: a pilot steering the avatar, spectators watching,
// and the authoritative world driven by the game loop.
type Room struct {
	Code    string                  `json:"code"`
	State   game.RoomState          `json:"state"`
	Players map[string]*game.Player `json:"players"`
	PilotID string                  `json:"pilot_id"`
	Seed    uint64                  `json:"seed"`

	// Client mapping: player ID -> ws client
	clients map[string]*ws.Client

	settings Settings
	world    *game.World

	// Game loop control
	stopCh chan struct{}

	mu sync.RWMutex
}

// NewRoom creates a new room with the given code and world seed.
func NewRoom(code string, seed uint64, settings Settings) *Room {
	return &Room{
		Code:     code,
		State:    game.StateWaiting,
		Players:  make(map[string]*game.Player),
		Seed:     seed,
		clients:  make(map[string]*ws.Client),
		settings: settings,
	}
}

// AddPlayer adds a player to the room. The first player becomes the pilot;
// later players join as spectators up to the spectator limit.
func (r *Room) AddPlayer(player *game.Player, client *ws.Client) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.Players) == 0 {
		player.Role = game.RolePilot
		r.PilotID = player.ID
	} else {
		if r.settings.MaxSpectators > 0 && len(r.Players)-1 >= r.settings.MaxSpectators {
			return ErrRoomFull
		}
		player.Role = game.RoleSpectator
	}

	r.Players[player.ID] = player
	r.clients[player.ID] = client
	return nil
}

// RemovePlayer removes a player from the room. When the pilot leaves, the
// remaining player with the lowest ID takes over.
func (r *Room) RemovePlayer(playerID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.Players, playerID)
	delete(r.clients, playerID)

	if r.PilotID != playerID {
		return
	}
	r.PilotID = ""
	for _, p := range r.sortedPlayers() {
		p.Role = game.RolePilot
		r.PilotID = p.ID
		slog.Info("pilot transferred", "room", r.Code, "player", p.ID)
		break
	}
}

// PlayerCount returns the number of players.
func (r *Room) PlayerCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.Players)
}

// GetPlayerList returns copies of all players ordered by ID, safe to encode
// while the room keeps changing roles.
func (r *Room) GetPlayerList() []*game.Player {
	r.mu.RLock()
	defer r.mu.RUnlock()
	players := r.sortedPlayers()
	for i, p := range players {
		cp := *p
		players[i] = &cp
	}
	return players
}

// sortedPlayers returns the players ordered by ID. Caller must hold r.mu.
func (r *Room) sortedPlayers() []*game.Player {
	players := make([]*game.Player, 0, len(r.Players))
	for _, p := range r.Players {
		players = append(players, p)
	}
	sort.Slice(players, func(i, j int) bool { return players[i].ID < players[j].ID })
	return players
}

// HasPlayer reports whether the player is in this room.
func (r *Room) HasPlayer(playerID string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.Players[playerID]
	return ok
}

// Pilot returns the pilot's player ID.
func (r *Room) Pilot() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.PilotID
}

// CurrentState returns the room state.
func (r *Room) CurrentState() game.RoomState {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.State
}

// BroadcastMessage sends a message to all players in the room.
func (r *Room) BroadcastMessage(msg ws.Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		slog.Error("failed to marshal broadcast", "room", r.Code, "error", err)
		return
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, client := range r.clients {
		client.SendRaw(data)
	}
}

// SendToPlayer sends a message to a specific player.
func (r *Room) SendToPlayer(playerID string, msg ws.Message) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if client, ok := r.clients[playerID]; ok {
		client.SendMessage(msg)
	}
}

// GetClient returns the WebSocket client for a player.
func (r *Room) GetClient(playerID string) *ws.Client {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.clients[playerID]
}

// IsEmpty returns true if the room has no players.
func (r *Room) IsEmpty() bool {
	return r.PlayerCount() == 0
}

// PrepareGame builds a fresh world from the room seed and moves the room to
// playing. Must be called before broadcasting game_start so clients receive
// the starting snapshot.
func (r *Room) PrepareGame(playerID string) (game.Snapshot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if playerID != r.PilotID {
		return game.Snapshot{}, ErrNotPilot
	}
	if r.State == game.StatePlaying {
		return game.Snapshot{}, ErrAlreadyPlaying
	}

	r.world = game.NewWorld(r.settings.Map, game.WorldOptions{Seed: r.Seed})
	r.State = game.StatePlaying
	r.stopCh = make(chan struct{})

	slog.Info("game prepared", "room", r.Code, "seed", r.Seed,
		"pellets", r.world.PelletsLeft(), "jail", r.world.JailBounds())
	return r.world.Snapshot(), nil
}

// StartGameLoop starts the game tick loop. Must be called after PrepareGame.
func (r *Room) StartGameLoop() {
	r.mu.RLock()
	stop := r.stopCh
	r.mu.RUnlock()
	if stop == nil {
		return
	}
	go r.gameLoop(stop)
}

// SetDirection buffers the avatar's next direction for the pilot.
func (r *Room) SetDirection(playerID string, d game.Direction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if playerID != r.PilotID {
		return ErrNotPilot
	}
	if r.State != game.StatePlaying || r.world == nil {
		return ErrNotPlaying
	}
	r.world.SetDirection(d)
	return nil
}

// SetPaused pauses or resumes the world for the pilot.
func (r *Room) SetPaused(playerID string, paused bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if playerID != r.PilotID {
		return ErrNotPilot
	}
	if r.State != game.StatePlaying || r.world == nil {
		return ErrNotPlaying
	}
	r.world.SetPaused(paused)
	slog.Info("game paused", "room", r.Code, "paused", paused)
	return nil
}

// Snapshot returns the current world snapshot, if a game was prepared.
func (r *Room) Snapshot() (game.Snapshot, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.world == nil {
		return game.Snapshot{}, false
	}
	return r.world.Snapshot(), true
}

// StopGame stops the game loop, records the run and broadcasts game_over.
// Calling it on a room that is not playing does nothing.
func (r *Room) StopGame(outcome game.Outcome) {
	r.mu.Lock()

	if r.State != game.StatePlaying {
		r.mu.Unlock()
		return
	}

	r.State = game.StateEnded
	if outcome == game.OutcomeAborted {
		r.world.Abort()
	}

	// Signal the game loop to stop
	select {
	case <-r.stopCh:
		// Already closed
	default:
		close(r.stopCh)
	}

	run := store.NewRunRecord(r.Seed, r.settings.Map.Name, r.settings.MapDigest)
	run.Steps = r.world.Ticks()
	run.Outcome = outcome.String()
	run.Score = r.world.Score()
	run.TrajectoryDigest = r.world.Digest()

	r.mu.Unlock()

	runID := r.recordRun(run)

	msg, _ := ws.NewMessage(ws.TypeGameOver, gameOverMessage{
		Outcome: outcome,
		Score:   run.Score,
		Steps:   run.Steps,
		RunID:   runID,
	})
	r.BroadcastMessage(msg)

	slog.Info("game ended", "room", r.Code, "outcome", outcome.String(), "score", run.Score, "steps", run.Steps)
}

// recordRun saves the run when a store is configured and returns its ID, or
// an empty string when nothing was saved.
func (r *Room) recordRun(run *store.RunRecord) string {
	if r.settings.Store == nil {
		return ""
	}
	ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
	defer cancel()
	if err := r.settings.Store.SaveRun(ctx, run); err != nil {
		slog.Error("failed to record run", "room", r.Code, "error", err)
		return ""
	}
	return run.ID
}

type gameOverMessage struct {
	Outcome game.Outcome `json:"outcome"`
	Score   int          `json:"score"`
	Steps   int64        `json:"steps"`
	RunID   string       `json:"run_id,omitempty"`
}

// gameLoop steps the world with the measured wall-clock delta on every tick
// and broadcasts the snapshot plus any events.
func (r *Room) gameLoop(stop <-chan struct{}) {
	interval := r.settings.tickInterval()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-stop:
			return
		case now := <-ticker.C:
			dt := float64(now.Sub(last)) / float64(time.Millisecond)
			last = now

			r.mu.Lock()
			// A restarted game owns a new stop channel; this loop is stale.
			if r.State != game.StatePlaying || r.stopCh != stop {
				r.mu.Unlock()
				return
			}
			events := r.world.Step(dt)
			snap := r.world.Snapshot()
			over := r.world.Over()
			outcome := r.world.Outcome()
			r.mu.Unlock()

			for _, ev := range events {
				// Pellet pickups reach clients through the snapshot.
				if ev.Type == game.EventPellet {
					continue
				}
				msg, _ := ws.NewMessage(ws.TypeGameEvent, ev)
				r.BroadcastMessage(msg)
			}
			msg, _ := ws.NewMessage(ws.TypeGameState, snap)
			r.BroadcastMessage(msg)

			if over {
				r.StopGame(outcome)
				return
			}
		}
	}
}
