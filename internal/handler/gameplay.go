package handler

import (
	"log/slog"

	"github.com/ugaemi/mazechase-server/internal/game"
	"github.com/ugaemi/mazechase-server/internal/room"
	"github.com/ugaemi/mazechase-server/internal/ws"
)

// GameplayHandler handles in-game messages.
type GameplayHandler struct {
	rm     *room.Manager
	router *Router
}

// NewGameplayHandler creates a new gameplay handler.
func NewGameplayHandler(rm *room.Manager, router *Router) *GameplayHandler {
	return &GameplayHandler{rm: rm, router: router}
}

type setDirectionRequest struct {
	Direction string `json:"direction"`
}

// HandleSetDirection buffers the pilot's next turn.
func (h *GameplayHandler) HandleSetDirection(client *ws.Client, msg ws.Message) {
	var req setDirectionRequest
	if err := msg.Decode(&req); err != nil {
		client.SendMessage(ws.NewErrorMessage("invalid direction data"))
		return
	}
	dir := game.ParseDirection(req.Direction)
	if dir == game.DirNone {
		client.SendMessage(ws.NewErrorMessage("invalid direction: " + req.Direction))
		return
	}

	playerID, r := h.findRoom(client)
	if r == nil {
		return
	}
	if err := r.SetDirection(playerID, dir); err != nil {
		client.SendMessage(ws.NewErrorMessage(err.Error()))
		return
	}

	slog.Debug("direction set", "player", playerID, "room", r.Code, "direction", dir.String())
}

type pauseRequest struct {
	Paused bool `json:"paused"`
}

// HandlePause pauses or resumes the pilot's game.
func (h *GameplayHandler) HandlePause(client *ws.Client, msg ws.Message) {
	var req pauseRequest
	if err := msg.Decode(&req); err != nil {
		client.SendMessage(ws.NewErrorMessage("invalid pause data"))
		return
	}

	playerID, r := h.findRoom(client)
	if r == nil {
		return
	}
	if err := r.SetPaused(playerID, req.Paused); err != nil {
		client.SendMessage(ws.NewErrorMessage(err.Error()))
		return
	}
}

func (h *GameplayHandler) findRoom(client *ws.Client) (string, *room.Room) {
	playerID := h.router.GetPlayerID(client.ID)
	if playerID == "" {
		client.SendMessage(ws.NewErrorMessage("not in a room"))
		return "", nil
	}
	r := h.rm.FindRoomByPlayerID(playerID)
	if r == nil {
		client.SendMessage(ws.NewErrorMessage("not in a room"))
		return "", nil
	}
	return playerID, r
}
