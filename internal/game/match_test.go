package game

import (
	"math"
	"testing"
	"time"

	"github.com/pkg/errors"
)

// testNow is an arbitrary fixed instant for deterministic cooldown
// and timer arithmetic.
var testNow = time.Unix(1700000000, 0)

// newTestMatch builds a waiting lobby with one player per id.
func newTestMatch(t *testing.T, ids ...string) *Match {
	t.Helper()
	m := NewMatch("test-lobby", DefaultConfig())
	for _, id := range ids {
		if _, err := m.Join(id, ""); err != nil {
			t.Fatalf("join %s: %v", id, err)
		}
	}
	return m
}

// TestJoinAssignsRosterSlot verifies the basics of a join: pooled
// name, palette color, alive duck on the spawn ring.
func TestJoinAssignsRosterSlot(t *testing.T) {
	m := NewMatch("test-lobby", DefaultConfig())

	name, err := m.Join("conn-1", "")
	if err != nil {
		t.Fatalf("join: %v", err)
	}
	if name == "" {
		t.Error("expected an assigned name")
	}

	p := m.players["conn-1"]
	if p == nil {
		t.Fatal("player missing from roster")
	}
	if !p.Alive {
		t.Error("new player should be alive")
	}
	if p.Color != playerColors[0] {
		t.Errorf("first joiner should get palette color 0, got %s", p.Color)
	}
	if r := math.Hypot(p.X, p.Y); math.Abs(r-m.cfg.ArenaRadius*SpawnRingFraction) > 1e-9 {
		t.Errorf("spawn radius %f, want %f", r, m.cfg.ArenaRadius*SpawnRingFraction)
	}
}

// TestJoinCapacity verifies a full roster rejects further joins
// without adding an entity.
func TestJoinCapacity(t *testing.T) {
	cfg := DefaultConfig()
	m := NewMatch("test-lobby", cfg)

	for i := 0; i < cfg.MaxPlayers; i++ {
		if _, err := m.Join(string(rune('a'+i)), ""); err != nil {
			t.Fatalf("join %d should succeed: %v", i, err)
		}
	}

	_, err := m.Join("overflow", "")
	if !errors.Is(err, ErrLobbyFull) {
		t.Errorf("expected ErrLobbyFull, got %v", err)
	}
	if len(m.players) != cfg.MaxPlayers {
		t.Errorf("roster grew past capacity: %d", len(m.players))
	}
}

// TestPreferredNameHonoredAndUnique verifies preferred names win when
// free, fall back to the pool when taken, and return on disconnect.
func TestPreferredNameHonoredAndUnique(t *testing.T) {
	m := NewMatch("test-lobby", DefaultConfig())

	name, _ := m.Join("a", "Sir Paddington")
	if name != "Sir Paddington" {
		t.Errorf("preferred name should be honored, got %q", name)
	}

	name2, _ := m.Join("b", "Sir Paddington")
	if name2 == "Sir Paddington" {
		t.Error("taken name must not be assigned twice")
	}
	if name2 == "" {
		t.Error("fallback assignment failed")
	}

	m.Leave("a")
	name3, _ := m.Join("c", "Sir Paddington")
	if name3 != "Sir Paddington" {
		t.Errorf("freed name should be reusable, got %q", name3)
	}
}

// TestStartRequiresTwoPlayers verifies the minimum-roster gate leaves
// the match untouched on rejection.
func TestStartRequiresTwoPlayers(t *testing.T) {
	m := newTestMatch(t, "a")

	if m.Start(testNow) {
		t.Error("start with one player should be rejected")
	}
	if m.state != StateWaiting {
		t.Errorf("state changed to %s on rejected start", m.state)
	}
}

// TestStartSpawnsEvenly verifies the playing transition: two players
// land at angles 0 and pi on the 0.7R ring, alive and at rest.
func TestStartSpawnsEvenly(t *testing.T) {
	m := newTestMatch(t, "a", "b")

	if !m.Start(testNow) {
		t.Fatal("start with two players should succeed")
	}
	if m.state != StatePlaying {
		t.Fatalf("state %s, want playing", m.state)
	}
	if m.winner != nil {
		t.Error("winner should be cleared on start")
	}

	ring := m.cfg.ArenaRadius * SpawnRingFraction
	a, b := m.players["a"], m.players["b"]

	if math.Abs(a.X-ring) > 1e-9 || math.Abs(a.Y) > 1e-9 {
		t.Errorf("first spawn at (%f, %f), want (%f, 0)", a.X, a.Y, ring)
	}
	if math.Abs(b.X+ring) > 1e-9 || math.Abs(b.Y) > 1e-6 {
		t.Errorf("second spawn at (%f, %f), want (-%f, 0)", b.X, b.Y, ring)
	}
	for id, p := range m.players {
		if !p.Alive || p.VX != 0 || p.VY != 0 {
			t.Errorf("%s not reset: alive=%v v=(%f, %f)", id, p.Alive, p.VX, p.VY)
		}
	}
}

// TestRestartFromFinished verifies the same start action revives a
// finished match.
func TestRestartFromFinished(t *testing.T) {
	m := newTestMatch(t, "a", "b")
	m.Start(testNow)

	m.players["a"].Alive = false
	m.checkEnd()
	if m.state != StateFinished {
		t.Fatalf("state %s, want finished", m.state)
	}
	if m.winner == nil || m.winner.ID != "b" {
		t.Fatal("survivor should be the winner")
	}

	if !m.Start(testNow.Add(time.Minute)) {
		t.Fatal("restart from finished should succeed")
	}
	if m.state != StatePlaying || m.winner != nil {
		t.Error("restart did not reset lifecycle state")
	}
	if !m.players["a"].Alive {
		t.Error("restart should revive eliminated players")
	}
}

// TestDisconnectDuringPlayFinishes verifies a leave that drops the
// roster to one ends the match with the remaining player as winner.
func TestDisconnectDuringPlayFinishes(t *testing.T) {
	m := newTestMatch(t, "a", "b")
	m.Start(testNow)

	m.Leave("a")

	if m.state != StateFinished {
		t.Fatalf("state %s, want finished", m.state)
	}
	if m.winner == nil || m.winner.ID != "b" {
		t.Error("remaining player should win")
	}
}

// TestDisconnectOfSecondToLastAliveFinishes covers the subtler case:
// the roster still has spare (dead) players, but the leave drops the
// alive count to one.
func TestDisconnectOfSecondToLastAliveFinishes(t *testing.T) {
	m := newTestMatch(t, "a", "b", "c")
	m.Start(testNow)

	m.players["c"].Alive = false
	m.Leave("a")

	if m.state != StateFinished {
		t.Fatalf("state %s, want finished", m.state)
	}
	if m.winner == nil || m.winner.ID != "b" {
		t.Error("last alive player should win")
	}
}

// TestEliminationFinishesWithWinner verifies boundary elimination
// drives the finished transition.
func TestEliminationFinishesWithWinner(t *testing.T) {
	m := newTestMatch(t, "a", "b")
	m.Start(testNow)

	m.players["a"].X = m.cfg.ArenaRadius * 2
	if !m.stepPhysics() {
		t.Fatal("expected elimination")
	}
	m.checkEnd()

	if m.state != StateFinished {
		t.Fatalf("state %s, want finished", m.state)
	}
	if m.winner == nil || m.winner.ID != "b" {
		t.Error("survivor should be the winner")
	}
}

// TestTieHasNoWinner verifies a simultaneous wipe leaves no winner.
func TestTieHasNoWinner(t *testing.T) {
	m := newTestMatch(t, "a", "b")
	m.Start(testNow)

	m.players["a"].X = m.cfg.ArenaRadius * 2
	m.players["b"].X = m.cfg.ArenaRadius * 2
	m.stepPhysics()
	m.checkEnd()

	if m.state != StateFinished {
		t.Fatalf("state %s, want finished", m.state)
	}
	if m.winner != nil {
		t.Errorf("tie should have no winner, got %s", m.winner.ID)
	}
}

// TestReferentialNoOps verifies operations on unknown ids are silent
// no-ops.
func TestReferentialNoOps(t *testing.T) {
	m := newTestMatch(t, "a", "b")
	m.Start(testNow)

	m.ApplyInput("ghost", Input{Forward: true})
	if m.Leave("ghost") {
		t.Error("leave of unknown id should report false")
	}

	m.players["a"].Alive = false
	m.ApplyInput("a", Input{Forward: true})
	if m.players["a"].Input != (Input{}) {
		t.Error("dead player input should be ignored")
	}
}
