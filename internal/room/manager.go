package room

import (
	"log/slog"
	"math/rand/v2"
	"sync"

	"github.com/ugaemi/mazechase-server/internal/game"
)

// Manager manages all active rooms.
type Manager struct {
	rooms    map[string]*Room // code -> room
	settings Settings
	seed     uint64 // fixed world seed; 0 draws one per room
	mu       sync.RWMutex
}

// NewManager creates a room manager whose rooms share settings. A non-zero
// seed makes every room replay the same world.
func NewManager(settings Settings, seed uint64) *Manager {
	return &Manager{
		rooms:    make(map[string]*Room),
		settings: settings,
		seed:     seed,
	}
}

// CreateRoom creates a new room and returns it. A zero seed falls back to
// the manager seed, then to a random one.
func (m *Manager) CreateRoom(seed uint64) *Room {
	m.mu.Lock()
	defer m.mu.Unlock()

	existing := make(map[string]bool, len(m.rooms))
	for code := range m.rooms {
		existing[code] = true
	}

	if seed == 0 {
		seed = m.seed
	}
	if seed == 0 {
		seed = rand.Uint64()
	}

	code := GenerateCode(existing)
	room := NewRoom(code, seed, m.settings)
	m.rooms[code] = room

	slog.Info("room created", "code", code, "seed", seed)
	return room
}

// GetRoom returns a room by its code.
func (m *Manager) GetRoom(code string) *Room {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.rooms[code]
}

// RemoveRoom removes a room by its code, aborting a game still running.
func (m *Manager) RemoveRoom(code string) {
	m.mu.Lock()
	room := m.rooms[code]
	delete(m.rooms, code)
	m.mu.Unlock()

	if room != nil {
		room.StopGame(game.OutcomeAborted)
	}
	slog.Info("room removed", "code", code)
}

// RoomCount returns the number of active rooms.
func (m *Manager) RoomCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.rooms)
}

// FindRoomByPlayerID finds the room containing a player.
func (m *Manager) FindRoomByPlayerID(playerID string) *Room {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, room := range m.rooms {
		if room.HasPlayer(playerID) {
			return room
		}
	}
	return nil
}
