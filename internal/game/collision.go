package game

import (
	"math"
	"time"
)

// pairKey identifies an unordered pair of players.
type pairKey struct {
	a, b string
}

func makePairKey(a, b string) pairKey {
	if a > b {
		a, b = b, a
	}
	return pairKey{a, b}
}

// CollisionEvent is a transient notification that two ducks bumped,
// used by clients to trigger a sound effect. It carries the contact
// midpoint and is not part of persisted match state.
type CollisionEvent struct {
	PlayerA string  `json:"player1"`
	PlayerB string  `json:"player2"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
}

// resolveCollisions runs an exhaustive pairwise scan over the alive
// roster, separates every overlapping pair outside its resolution
// cooldown, and returns the collision events that survived the event
// throttle. O(n^2) is fine here: n is capped at the roster limit.
//
// Pairs are visited in roster insertion order. Applying one pair's
// separation before evaluating the next is an accepted approximation;
// each pair is independent enough within a tick for this domain.
func (m *Match) resolveCollisions(now time.Time) []CollisionEvent {
	alive := make([]*Player, 0, len(m.order))
	for _, id := range m.order {
		if p := m.players[id]; p != nil && p.Alive {
			alive = append(alive, p)
		}
	}

	var events []CollisionEvent
	for i := 0; i < len(alive); i++ {
		for j := i + 1; j < len(alive); j++ {
			p1, p2 := alive[i], alive[j]

			dx := p2.X - p1.X
			dy := p2.Y - p1.Y
			dist := math.Hypot(dx, dy)
			if dist >= m.cfg.CollisionDistance {
				continue
			}

			key := makePairKey(p1.ID, p2.ID)
			if last, ok := m.lastResolved[key]; ok && now.Sub(last) < PairCooldown {
				continue
			}

			// Contact normal; perfectly coincident centers get an
			// arbitrary axis so the pair still separates.
			nx, ny := 1.0, 0.0
			if dist > 1e-9 {
				nx = dx / dist
				ny = dy / dist
			}

			overlap := m.cfg.CollisionDistance - dist
			sep := overlap * SeparationForce
			p1.X -= nx * sep
			p1.Y -= ny * sep
			p2.X += nx * sep
			p2.Y += ny * sep

			p1.VX -= nx * RepulsionImpulse
			p1.VY -= ny * RepulsionImpulse
			p2.VX += nx * RepulsionImpulse
			p2.VY += ny * RepulsionImpulse

			m.lastResolved[key] = now

			// Event throttle is independent of the resolution
			// cooldown above.
			if last, ok := m.lastEmitted[key]; !ok || now.Sub(last) >= EventCooldown {
				events = append(events, CollisionEvent{
					PlayerA: p1.ID,
					PlayerB: p2.ID,
					X:       (p1.X + p2.X) / 2,
					Y:       (p1.Y + p2.Y) / 2,
				})
				m.lastEmitted[key] = now
			}
		}
	}
	return events
}
