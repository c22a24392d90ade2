package game

import (
	"math"
	"testing"
	"time"
)

// overlapPair puts two ducks 10 units apart (well under the collision
// distance of 25) on the x axis.
func overlapPair(m *Match) (*Player, *Player) {
	a, b := m.players["a"], m.players["b"]
	a.X, a.Y, a.VX, a.VY = 0, 0, 0, 0
	b.X, b.Y, b.VX, b.VY = 10, 0, 0, 0
	return a, b
}

// TestResolveSeparatesOverlap verifies an overlapping pair ends the
// tick separated beyond the collision distance, with opposed
// repulsion impulses and one event at the contact midpoint.
func TestResolveSeparatesOverlap(t *testing.T) {
	m := newTestMatch(t, "a", "b")
	m.Start(testNow)
	a, b := overlapPair(m)

	events := m.resolveCollisions(testNow)

	dist := math.Hypot(b.X-a.X, b.Y-a.Y)
	if dist < m.cfg.CollisionDistance-1e-9 {
		t.Errorf("pair still overlapping after resolution: distance %f", dist)
	}
	if a.VX >= 0 || b.VX <= 0 {
		t.Errorf("expected opposed impulses, got vx %f and %f", a.VX, b.VX)
	}

	if len(events) != 1 {
		t.Fatalf("expected 1 collision event, got %d", len(events))
	}
	ev := events[0]
	if ev.PlayerA != "a" || ev.PlayerB != "b" {
		t.Errorf("event names wrong: %q vs %q", ev.PlayerA, ev.PlayerB)
	}
	if wantX := (a.X + b.X) / 2; ev.X != wantX || ev.Y != 0 {
		t.Errorf("event midpoint (%f, %f), want (%f, 0)", ev.X, ev.Y, wantX)
	}
}

// TestResolutionCooldown verifies the same pair is not re-resolved
// inside the cooldown window, and is again afterwards.
func TestResolutionCooldown(t *testing.T) {
	m := newTestMatch(t, "a", "b")
	m.Start(testNow)

	overlapPair(m)
	m.resolveCollisions(testNow)

	// Force them back into overlap inside the window: nothing happens.
	a, b := overlapPair(m)
	events := m.resolveCollisions(testNow.Add(100 * time.Millisecond))
	if len(events) != 0 {
		t.Errorf("expected no events inside cooldown, got %d", len(events))
	}
	if a.X != 0 || b.X != 10 {
		t.Error("positions must not change inside the cooldown window")
	}

	// Past the window the pair resolves again.
	events = m.resolveCollisions(testNow.Add(250 * time.Millisecond))
	if len(events) != 1 {
		t.Errorf("expected resolution after cooldown, got %d events", len(events))
	}
	if dist := math.Hypot(b.X-a.X, b.Y-a.Y); dist < m.cfg.CollisionDistance-1e-9 {
		t.Errorf("pair still overlapping: distance %f", dist)
	}
}

// TestEventThrottleIndependentOfResolution verifies that silencing
// the event for a pair does not skip its physical separation.
func TestEventThrottleIndependentOfResolution(t *testing.T) {
	m := newTestMatch(t, "a", "b")
	m.Start(testNow)
	a, b := overlapPair(m)

	// Pair recently emitted an event, but has no resolution cooldown.
	m.lastEmitted[makePairKey("a", "b")] = testNow.Add(-50 * time.Millisecond)

	events := m.resolveCollisions(testNow)
	if len(events) != 0 {
		t.Errorf("event should be throttled, got %d", len(events))
	}
	if dist := math.Hypot(b.X-a.X, b.Y-a.Y); dist < m.cfg.CollisionDistance-1e-9 {
		t.Errorf("separation skipped: distance %f", dist)
	}
}

// TestDeadDucksDoNotCollide verifies eliminated ducks are excluded
// from the pairwise scan.
func TestDeadDucksDoNotCollide(t *testing.T) {
	m := newTestMatch(t, "a", "b")
	m.Start(testNow)
	a, b := overlapPair(m)
	a.Alive = false

	events := m.resolveCollisions(testNow)
	if len(events) != 0 {
		t.Errorf("dead duck produced %d events", len(events))
	}
	if b.VX != 0 || b.VY != 0 {
		t.Error("living duck should be untouched")
	}
}

// TestCoincidentCentersStillSeparate guards the zero-distance edge
// case: the pair separates along an arbitrary axis instead of
// dividing by zero.
func TestCoincidentCentersStillSeparate(t *testing.T) {
	m := newTestMatch(t, "a", "b")
	m.Start(testNow)
	a, b := overlapPair(m)
	b.X = 0

	m.resolveCollisions(testNow)

	dist := math.Hypot(b.X-a.X, b.Y-a.Y)
	if math.IsNaN(dist) {
		t.Fatal("NaN positions after coincident-center collision")
	}
	if dist == 0 {
		t.Error("coincident pair did not separate")
	}
}
