package handler

import (
	"log/slog"

	"github.com/ugaemi/mazechase-server/internal/game"
	"github.com/ugaemi/mazechase-server/internal/room"
	"github.com/ugaemi/mazechase-server/internal/ws"
)

// LobbyHandler handles lobby-related messages.
type LobbyHandler struct {
	rm     *room.Manager
	router *Router
}

// NewLobbyHandler creates a new lobby handler.
func NewLobbyHandler(rm *room.Manager, router *Router) *LobbyHandler {
	return &LobbyHandler{
		rm:     rm,
		router: router,
	}
}

type createRoomRequest struct {
	Nickname string `json:"nickname"`
	Seed     uint64 `json:"seed,omitempty"`
}

type joinedRoomResponse struct {
	Code     string    `json:"code"`
	PlayerID string    `json:"player_id"`
	Role     game.Role `json:"role"`
	Seed     uint64    `json:"seed"`
}

// HandleCreateRoom creates a room with the sender as its pilot.
func (h *LobbyHandler) HandleCreateRoom(client *ws.Client, msg ws.Message) {
	var req createRoomRequest
	if err := msg.Decode(&req); err != nil || req.Nickname == "" {
		client.SendMessage(ws.NewErrorMessage("nickname is required"))
		return
	}
	if h.router.GetPlayerID(client.ID) != "" {
		client.SendMessage(ws.NewErrorMessage("already in a room"))
		return
	}

	r := h.rm.CreateRoom(req.Seed)
	player := game.NewPlayer(req.Nickname, game.RolePilot)
	if err := r.AddPlayer(player, client); err != nil {
		client.SendMessage(ws.NewErrorMessage(err.Error()))
		return
	}
	h.router.RegisterPlayer(client.ID, player.ID)

	resp, _ := ws.NewMessage(ws.TypeCreateRoom, joinedRoomResponse{
		Code:     r.Code,
		PlayerID: player.ID,
		Role:     player.Role,
		Seed:     r.Seed,
	})
	client.SendMessage(resp)

	slog.Info("player created room", "player", player.Nickname, "room", r.Code)
}

type joinRoomRequest struct {
	Code     string `json:"code"`
	Nickname string `json:"nickname"`
}

// HandleJoinRoom adds the sender to an existing room as a spectator.
func (h *LobbyHandler) HandleJoinRoom(client *ws.Client, msg ws.Message) {
	var req joinRoomRequest
	if err := msg.Decode(&req); err != nil || req.Code == "" || req.Nickname == "" {
		client.SendMessage(ws.NewErrorMessage("code and nickname are required"))
		return
	}
	if h.router.GetPlayerID(client.ID) != "" {
		client.SendMessage(ws.NewErrorMessage("already in a room"))
		return
	}

	r := h.rm.GetRoom(req.Code)
	if r == nil {
		client.SendMessage(ws.NewErrorMessage("room not found"))
		return
	}

	player := game.NewPlayer(req.Nickname, game.RoleSpectator)
	if err := r.AddPlayer(player, client); err != nil {
		client.SendMessage(ws.NewErrorMessage(err.Error()))
		return
	}
	h.router.RegisterPlayer(client.ID, player.ID)

	resp, _ := ws.NewMessage(ws.TypeJoinRoom, joinedRoomResponse{
		Code:     r.Code,
		PlayerID: player.ID,
		Role:     player.Role,
		Seed:     r.Seed,
	})
	client.SendMessage(resp)

	h.broadcastRoomInfo(r)

	// Late joiners get the current board right away.
	if snap, ok := r.Snapshot(); ok && r.CurrentState() == game.StatePlaying {
		state, _ := ws.NewMessage(ws.TypeGameState, snap)
		client.SendMessage(state)
	}

	slog.Info("player joined room", "player", player.Nickname, "room", r.Code)
}

// HandleStartGame builds the world and starts the loop. Only the pilot may
// start; an ended room can be restarted with the same seed.
func (h *LobbyHandler) HandleStartGame(client *ws.Client, _ ws.Message) {
	playerID := h.router.GetPlayerID(client.ID)
	r := h.rm.FindRoomByPlayerID(playerID)
	if r == nil {
		client.SendMessage(ws.NewErrorMessage("not in a room"))
		return
	}

	snap, err := r.PrepareGame(playerID)
	if err != nil {
		client.SendMessage(ws.NewErrorMessage(err.Error()))
		return
	}

	startMsg, _ := ws.NewMessage(ws.TypeGameStart, gameStartResponse{
		Seed:     r.Seed,
		Players:  r.GetPlayerList(),
		Snapshot: snap,
	})
	r.BroadcastMessage(startMsg)
	r.StartGameLoop()

	slog.Info("game starting", "room", r.Code, "seed", r.Seed)
}

// HandleLeaveRoom handles a player leaving a room.
func (h *LobbyHandler) HandleLeaveRoom(client *ws.Client, _ ws.Message) {
	h.removePlayer(client)
}

// HandleDisconnect handles client disconnection.
func (h *LobbyHandler) HandleDisconnect(client *ws.Client) {
	h.removePlayer(client)
}

func (h *LobbyHandler) removePlayer(client *ws.Client) {
	playerID := h.router.GetPlayerID(client.ID)
	if playerID == "" {
		return
	}

	r := h.rm.FindRoomByPlayerID(playerID)
	if r != nil {
		r.RemovePlayer(playerID)
		if r.IsEmpty() {
			h.rm.RemoveRoom(r.Code)
		} else {
			h.broadcastRoomInfo(r)
		}
	}

	h.router.UnregisterPlayer(client.ID)
	slog.Info("player left", "player", playerID)
}

type gameStartResponse struct {
	Seed     uint64         `json:"seed"`
	Players  []*game.Player `json:"players"`
	Snapshot game.Snapshot  `json:"snapshot"`
}

type roomInfoResponse struct {
	Code    string         `json:"code"`
	State   string         `json:"state"`
	Players []*game.Player `json:"players"`
	PilotID string         `json:"pilot_id"`
	Seed    uint64         `json:"seed"`
}

func (h *LobbyHandler) broadcastRoomInfo(r *room.Room) {
	resp, _ := ws.NewMessage(ws.TypeRoomInfo, roomInfoResponse{
		Code:    r.Code,
		State:   r.CurrentState().String(),
		Players: r.GetPlayerList(),
		PilotID: r.Pilot(),
		Seed:    r.Seed,
	})
	r.BroadcastMessage(resp)
}
