package api

import "encoding/json"

// Wire event names. These match the original client protocol exactly,
// so existing client bundles keep working unmodified.
const (
	// Inbound (client -> server)
	EvJoinLobby     = "joinLobby"
	EvStartGame     = "startGame"
	EvPlayerInput   = "playerInput"
	EvSpectateGame  = "spectateGame"
	EvLeaveSpectate = "leaveSpectate"

	// Outbound (server -> client)
	EvJoinedLobby    = "joinedLobby"
	EvGameUpdate     = "gameUpdate"
	EvGameStarting   = "game-starting"
	EvGameStarted    = "gameStarted"
	EvDuckCollision  = "duckCollision"
	EvSpectateJoined = "spectateJoined"
	EvGameNotFound   = "gameNotFound"
	EvError          = "error"
)

// Envelope frames every inbound WebSocket message. Data stays raw
// until the event is dispatched; unknown events are ignored.
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// outEnvelope frames outbound messages.
type outEnvelope struct {
	Event string `json:"event"`
	Data  any    `json:"data,omitempty"`
}

// JoinRequest asks for a roster slot, optionally with a preferred
// display name.
type JoinRequest struct {
	PreferredName string `json:"preferredName"`
}

// JoinedLobby acknowledges a successful join.
type JoinedLobby struct {
	LobbyID    string `json:"lobbyId"`
	PlayerName string `json:"playerName"`
}

// SpectateJoined acknowledges a spectator attachment.
type SpectateJoined struct {
	LobbyID string `json:"lobbyId"`
}

// ErrorMessage reports a rejected operation with a human-readable
// reason.
type ErrorMessage struct {
	Message string `json:"message"`
}
