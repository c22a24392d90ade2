package game

import (
	"math"
	"math/rand"
	"time"

	"github.com/pkg/errors"
)

// MatchState is the lobby lifecycle state.
type MatchState string

const (
	StateWaiting  MatchState = "waiting"
	StatePlaying  MatchState = "playing"
	StateFinished MatchState = "finished"
)

// ErrLobbyFull is returned when a join would exceed the roster cap.
var ErrLobbyFull = errors.New("lobby is full")

// Match owns a lobby's roster, lifecycle state and collision cooldown
// tables. Nothing outside this package mutates them; all access goes
// through the Engine, which serializes operations under one lock.
type Match struct {
	ID  string
	cfg Config

	players map[string]*Player
	order   []string // join order; drives spawn placement and snapshots

	state     MatchState
	startTime time.Time
	winner    *Player

	lastResolved map[pairKey]time.Time
	lastEmitted  map[pairKey]time.Time
	usedNames    map[string]struct{}
	lastSent     *Snapshot

	joined int // total joins ever, for color assignment
	rng    *rand.Rand
}

// NewMatch creates an empty lobby in the waiting state.
func NewMatch(id string, cfg Config) *Match {
	return &Match{
		ID:           id,
		cfg:          cfg,
		players:      make(map[string]*Player),
		state:        StateWaiting,
		lastResolved: make(map[pairKey]time.Time),
		lastEmitted:  make(map[pairKey]time.Time),
		usedNames:    make(map[string]struct{}),
		rng:          rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// State returns the lifecycle state.
func (m *Match) State() MatchState { return m.state }

// Join adds a player to the roster and returns the assigned display
// name. The spawn point sits on a ring at an angle proportional to
// join order so early joiners spread out even before a start.
func (m *Match) Join(id, preferredName string) (string, error) {
	if len(m.players) >= m.cfg.MaxPlayers {
		return "", ErrLobbyFull
	}

	name := m.assignName(preferredName)
	angle := float64(len(m.players)) * 2 * math.Pi / float64(m.cfg.MaxPlayers)

	p := &Player{
		ID:    id,
		Name:  name,
		Color: colorForIndex(m.joined),
	}
	p.placeOnRing(angle, m.cfg.ArenaRadius)

	m.players[id] = p
	m.order = append(m.order, id)
	m.joined++
	return name, nil
}

// Leave removes a player from the roster entirely and frees its name.
// Distinct from boundary elimination: this is identity-level removal.
// Dropping the roster to one or zero during play finishes the match.
// Returns false if the id held no roster slot.
func (m *Match) Leave(id string) bool {
	p, ok := m.players[id]
	if !ok {
		return false
	}
	m.releaseName(p.Name)
	delete(m.players, id)
	for i, oid := range m.order {
		if oid == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	if m.state == StatePlaying && (len(m.players) <= 1 || m.aliveCount() <= 1) {
		m.finish()
	}
	return true
}

// Start begins (or restarts) the match. It is rejected with fewer
// than two players; otherwise every player is respawned alive and at
// rest on a ring of evenly distributed spawn points, and the clock
// starts. Valid from waiting and from finished.
func (m *Match) Start(now time.Time) bool {
	n := len(m.players)
	if n < 2 {
		return false
	}

	m.state = StatePlaying
	m.startTime = now
	m.winner = nil

	for i, id := range m.order {
		angle := float64(i) * 2 * math.Pi / float64(n)
		p := m.players[id]
		p.placeOnRing(angle, m.cfg.ArenaRadius)
		p.Input = Input{}
	}
	return true
}

// ApplyInput stores the latest input for a player. No-op for unknown
// ids and dead players.
func (m *Match) ApplyInput(id string, in Input) {
	p, ok := m.players[id]
	if !ok || !p.Alive {
		return
	}
	p.Input = in
}

// stepPhysics integrates every alive player one tick, in roster
// order. Reports whether any player was eliminated.
func (m *Match) stepPhysics() bool {
	eliminated := false
	for _, id := range m.order {
		p := m.players[id]
		if !p.Alive {
			continue
		}
		if p.step(m.cfg) {
			eliminated = true
		}
	}
	return eliminated
}

// checkEnd finishes the match once at most one duck remains alive.
func (m *Match) checkEnd() {
	if m.aliveCount() <= 1 {
		m.finish()
	}
}

func (m *Match) aliveCount() int {
	n := 0
	for _, p := range m.players {
		if p.Alive {
			n++
		}
	}
	return n
}

// finish fixes the winner (the sole survivor, or nobody on a tie) and
// parks the match in the finished state until a restart.
func (m *Match) finish() {
	m.state = StateFinished
	m.winner = nil
	for _, id := range m.order {
		if p := m.players[id]; p.Alive {
			m.winner = p
			break
		}
	}
}
