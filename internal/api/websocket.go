package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"sync"

	"duck-royale/internal/game"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	// MaxWSConnectionsTotal caps WebSocket connections process-wide.
	MaxWSConnectionsTotal = 500

	// MaxWSConnectionsPerIP caps WebSocket connections per client IP.
	MaxWSConnectionsPerIP = 10
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		if isAllowedOrigin(r) {
			return true
		}
		log.Printf("⚠️ websocket rejected, origin %q", r.Header.Get("Origin"))
		recordConnectionRejected("origin")
		return false
	},
}

// Client is one WebSocket connection, player or spectator. A
// connection subscribes to lobby broadcasts when it joins or
// spectates; until then it receives nothing.
type Client struct {
	ID   string
	conn *websocket.Conn
	ip   string

	writeMu sync.Mutex // gorilla conns are not safe for concurrent writes

	// subscribed and player are guarded by the hub mutex.
	subscribed bool
	player     bool
}

// send writes one framed message to this client.
func (c *Client) send(event string, data any) {
	buf, err := json.Marshal(outEnvelope{Event: event, Data: data})
	if err != nil {
		return
	}
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	if err := c.conn.WriteMessage(websocket.TextMessage, buf); err != nil {
		// Let the read pump observe the dead connection and clean up.
		c.conn.Close()
	}
}

// Hub owns every WebSocket connection and implements game.Sink:
// simulation broadcasts fan out here to all subscribed connections.
type Hub struct {
	mu      sync.RWMutex
	clients map[string]*Client

	engine  *game.Engine
	connCap *ConnLimiter
}

// NewHub creates an empty hub. BindEngine must be called before the
// first connection is accepted.
func NewHub() *Hub {
	return &Hub{
		clients: make(map[string]*Client),
		connCap: NewConnLimiter(MaxWSConnectionsTotal, MaxWSConnectionsPerIP),
	}
}

// BindEngine wires the hub to the engine it dispatches commands to.
// Split from the constructor because the engine itself needs the hub
// as its Sink.
func (h *Hub) BindEngine(e *game.Engine) {
	h.engine = e
}

// ClientCount returns the number of open connections.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// game.Sink implementation.

func (h *Hub) GameUpdate(s game.Snapshot) { h.broadcast(EvGameUpdate, s) }

func (h *Hub) Starting() { h.broadcast(EvGameStarting, nil) }

func (h *Hub) Started(s game.Snapshot) { h.broadcast(EvGameStarted, s) }

func (h *Hub) Collision(ev game.CollisionEvent) {
	recordCollisionEvent()
	h.broadcast(EvDuckCollision, ev)
}

// broadcast sends one message to every subscribed connection. The
// payload is marshalled once; write failures close the connection and
// leave cleanup to its read pump.
func (h *Hub) broadcast(event string, data any) {
	buf, err := json.Marshal(outEnvelope{Event: event, Data: data})
	if err != nil {
		return
	}

	h.mu.RLock()
	targets := make([]*Client, 0, len(h.clients))
	for _, c := range h.clients {
		if c.subscribed {
			targets = append(targets, c)
		}
	}
	h.mu.RUnlock()

	for _, c := range targets {
		c.writeMu.Lock()
		if err := c.conn.WriteMessage(websocket.TextMessage, buf); err != nil {
			c.conn.Close()
		}
		c.writeMu.Unlock()
	}
	recordBroadcast()
}

func (h *Hub) setSubscribed(c *Client, subscribed, player bool) {
	h.mu.Lock()
	c.subscribed = subscribed
	c.player = player
	h.mu.Unlock()
}

// HandleWS upgrades the request and runs the connection's read pump
// until it disconnects.
func (h *Hub) HandleWS(w http.ResponseWriter, r *http.Request) {
	ip := clientIP(r)

	if !h.connCap.Acquire(ip, h.ClientCount()) {
		recordConnectionRejected("ws_limit")
		http.Error(w, "too many connections", http.StatusTooManyRequests)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.connCap.Release(ip)
		log.Printf("websocket upgrade: %v", err)
		return
	}

	c := &Client{ID: uuid.NewString(), conn: conn, ip: ip}

	h.mu.Lock()
	h.clients[c.ID] = c
	total := len(h.clients)
	h.mu.Unlock()
	updateWSConnections(total)

	defer h.dropClient(c)

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			return
		}
		var env Envelope
		if err := json.Unmarshal(raw, &env); err != nil {
			continue
		}
		h.dispatch(c, env)
	}
}

// dispatch handles one inbound message. Malformed payloads decode to
// zero values rather than failing; messages from parties that are not
// eligible are silent no-ops, resolved here or inside the engine.
func (h *Hub) dispatch(c *Client, env Envelope) {
	switch env.Event {
	case EvJoinLobby:
		var req JoinRequest
		if env.Data != nil {
			_ = json.Unmarshal(env.Data, &req)
		}
		name, snap, err := h.engine.Join(c.ID, req.PreferredName)
		if err != nil {
			msg := "could not join"
			if errors.Is(err, game.ErrLobbyFull) {
				msg = "Lobby is full"
			}
			c.send(EvError, ErrorMessage{Message: msg})
			return
		}
		h.setSubscribed(c, true, true)
		c.send(EvJoinedLobby, JoinedLobby{LobbyID: snap.ID, PlayerName: name})
		h.GameUpdate(snap)
		updatePlayerCount(h.engine.PlayerCount())

	case EvStartGame:
		h.engine.RequestStart()

	case EvPlayerInput:
		var in game.Input
		if env.Data != nil {
			_ = json.Unmarshal(env.Data, &in)
		}
		h.engine.ApplyInput(c.ID, in)

	case EvSpectateGame:
		snap := h.engine.CurrentSnapshot()
		if snap.ID == "" {
			c.send(EvGameNotFound, nil)
			return
		}
		h.mu.Lock()
		c.subscribed = true
		h.mu.Unlock()
		c.send(EvSpectateJoined, SpectateJoined{LobbyID: snap.ID})
		c.send(EvGameUpdate, snap)
		if snap.State == game.StatePlaying {
			// The match is already running; tell the late spectator
			// explicitly, on top of the regular snapshot.
			c.send(EvGameStarted, snap)
		}

	case EvLeaveSpectate:
		h.mu.Lock()
		if !c.player {
			c.subscribed = false
		}
		h.mu.Unlock()
	}
}

// dropClient tears a connection down: unregister, release its IP
// slot, and remove its player from the roster if it had one.
func (h *Hub) dropClient(c *Client) {
	h.mu.Lock()
	delete(h.clients, c.ID)
	total := len(h.clients)
	h.mu.Unlock()

	h.connCap.Release(c.ip)
	c.conn.Close()
	h.engine.Leave(c.ID)

	updateWSConnections(total)
	updatePlayerCount(h.engine.PlayerCount())
}
