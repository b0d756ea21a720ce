package game

import (
	"encoding/json"

	"github.com/google/uuid"
)

// Role is what a connected player may do in a room.
type Role int

const (
	RoleSpectator Role = iota
	RolePilot
)

func (r Role) String() string {
	if r == RolePilot {
		return "pilot"
	}
	return "spectator"
}

// MarshalJSON serializes Role as a string.
func (r Role) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.String())
}

// UnmarshalJSON deserializes Role from a string.
func (r *Role) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == "pilot" {
		*r = RolePilot
	} else {
		*r = RoleSpectator
	}
	return nil
}

// Player is a participant of a room. The pilot steers the avatar; everyone
// else watches.
type Player struct {
	ID       string `json:"id"`
	Nickname string `json:"nickname"`
	Role     Role   `json:"role"`
}

func NewPlayer(nickname string, role Role) *Player {
	return &Player{
		ID:       uuid.New().String(),
		Nickname: nickname,
		Role:     role,
	}
}

func (p *Player) IsPilot() bool {
	return p.Role == RolePilot
}
