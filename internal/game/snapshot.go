package game

import (
	"math"
	"time"
)

// PlayerSnapshot is the wire form of one duck.
type PlayerSnapshot struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	VX    float64 `json:"vx"`
	VY    float64 `json:"vy"`
	Angle float64 `json:"angle"`
	Alive bool    `json:"alive"`
	Color string  `json:"color"`
}

// Snapshot is a complete, self-contained description of match state
// as sent to clients. Players appear in join order, which keeps the
// index-wise change comparison below valid.
type Snapshot struct {
	ID       string           `json:"id"`
	Players  []PlayerSnapshot `json:"players"`
	State    MatchState       `json:"gameState"`
	TimeLeft int64            `json:"timeLeft"` // milliseconds, 0 unless playing
	Winner   *PlayerSnapshot  `json:"winner"`
}

// Snapshot builds the current wire state. TimeLeft counts down from
// the configured match duration while playing; it is informational
// only and does not end the match.
func (m *Match) Snapshot(now time.Time) Snapshot {
	s := Snapshot{
		ID:      m.ID,
		Players: make([]PlayerSnapshot, 0, len(m.order)),
		State:   m.state,
	}

	for _, id := range m.order {
		s.Players = append(s.Players, snapshotPlayer(m.players[id]))
	}

	if m.state == StatePlaying {
		left := m.cfg.MatchDuration - now.Sub(m.startTime)
		if left < 0 {
			left = 0
		}
		s.TimeLeft = left.Milliseconds()
	}

	if m.winner != nil {
		w := snapshotPlayer(m.winner)
		s.Winner = &w
	}
	return s
}

func snapshotPlayer(p *Player) PlayerSnapshot {
	return PlayerSnapshot{
		ID:    p.ID,
		Name:  p.Name,
		X:     p.X,
		Y:     p.Y,
		VX:    p.VX,
		VY:    p.VY,
		Angle: p.Angle,
		Alive: p.Alive,
		Color: p.Color,
	}
}

// changed reports whether a snapshot differs meaningfully from the
// last one transmitted: roster size changed, a duck moved at least
// MoveEpsilon on either axis (boundary inclusive), or an alive flag
// flipped. The simulation always runs at full rate; only transmission
// is elided. Lifecycle transitions are broadcast unconditionally by
// the engine and deliberately not considered here.
func (m *Match) changed(s Snapshot) bool {
	if m.lastSent == nil {
		return true
	}
	last := m.lastSent.Players
	if len(s.Players) != len(last) {
		return true
	}
	for i := range s.Players {
		c, l := s.Players[i], last[i]
		if math.Abs(c.X-l.X) >= MoveEpsilon || math.Abs(c.Y-l.Y) >= MoveEpsilon {
			return true
		}
		if c.Alive != l.Alive {
			return true
		}
	}
	return false
}

// noteSent records a snapshot as the last one transmitted.
func (m *Match) noteSent(s Snapshot) {
	m.lastSent = &s
}
