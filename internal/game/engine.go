package game

import (
	"log"
	"sync"
	"time"
)

// LobbyID is the single well-known lobby served by this process.
const LobbyID = "duck-royale-main-lobby"

// Sink receives everything the simulation pushes outward. The engine
// never touches the transport; the connection layer implements Sink
// and fans messages out to players and spectators alike.
type Sink interface {
	// GameUpdate delivers a state snapshot to every connected party.
	GameUpdate(Snapshot)
	// Starting announces that a start countdown has begun.
	Starting()
	// Started delivers the snapshot taken at the playing transition.
	Started(Snapshot)
	// Collision delivers a throttled pair-collision event.
	Collision(CollisionEvent)
}

// Engine drives the single lobby: a fixed-rate tick loop plus the
// user-driven operations between ticks. Every mutation of match state
// goes through e.mu, which gives the single-logical-thread model the
// simulation requires.
type Engine struct {
	mu    sync.Mutex
	cfg   Config
	match *Match
	sink  Sink

	ticker       *time.Ticker
	stopChan     chan struct{}
	running      bool
	startPending bool
}

// NewEngine creates the engine and its lobby. The tick loop does not
// run until Start is called.
func NewEngine(cfg Config, sink Sink) *Engine {
	return &Engine{
		cfg:      cfg,
		match:    NewMatch(LobbyID, cfg),
		sink:     sink,
		stopChan: make(chan struct{}),
	}
}

// Start begins the tick loop.
func (e *Engine) Start() {
	e.mu.Lock()
	if e.running {
		e.mu.Unlock()
		return
	}
	e.running = true
	e.mu.Unlock()

	e.ticker = time.NewTicker(time.Second / time.Duration(e.cfg.TickRate))
	go func() {
		for {
			select {
			case now := <-e.ticker.C:
				e.tick(now)
			case <-e.stopChan:
				return
			}
		}
	}()

	log.Printf("🦆 simulation running at %d ticks/s, arena radius %.0f", e.cfg.TickRate, e.cfg.ArenaRadius)
}

// Stop halts the tick loop. Safe to call twice.
func (e *Engine) Stop() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.running {
		return
	}
	e.running = false
	if e.ticker != nil {
		e.ticker.Stop()
	}
	close(e.stopChan)
}

// Join adds a connection to the roster. It returns the assigned name
// and the snapshot taken right after the join; the caller is expected
// to broadcast that snapshot once it has acknowledged the joiner, so
// the joiner sees its acknowledgement first.
func (e *Engine) Join(connID, preferredName string) (string, Snapshot, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	name, err := e.match.Join(connID, preferredName)
	if err != nil {
		return "", Snapshot{}, err
	}
	snap := e.match.Snapshot(time.Now())
	e.match.noteSent(snap)
	log.Printf("🦆 %q joined as %q (%d in lobby)", connID, name, len(e.match.players))
	return name, snap, nil
}

// Leave removes a connection's player, if it has one, and broadcasts
// the new roster. No-op for spectators and unknown ids.
func (e *Engine) Leave(connID string) {
	e.mu.Lock()
	removed := e.match.Leave(connID)
	var snap Snapshot
	if removed {
		snap = e.match.Snapshot(time.Now())
		e.match.noteSent(snap)
	}
	e.mu.Unlock()

	if removed {
		e.sink.GameUpdate(snap)
	}
}

// ApplyInput records a player's latest input. Ignored unless the
// match is playing and the sender has a living duck; those are
// expected races with network timing, not errors.
func (e *Engine) ApplyInput(connID string, in Input) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.match.State() != StatePlaying {
		return
	}
	e.match.ApplyInput(connID, in)
}

// RequestStart announces a start and schedules the actual transition
// after the countdown. A request while a countdown is already pending
// re-announces but does not schedule a second transition. Starting
// with fewer than two players fails quietly at the deadline and the
// match keeps its prior state.
func (e *Engine) RequestStart() {
	e.mu.Lock()
	pending := e.startPending
	e.startPending = true
	e.mu.Unlock()

	e.sink.Starting()
	if pending {
		return
	}

	time.AfterFunc(e.cfg.StartCountdown, func() {
		e.mu.Lock()
		e.startPending = false
		started := e.match.Start(time.Now())
		var snap Snapshot
		if started {
			snap = e.match.Snapshot(time.Now())
			e.match.noteSent(snap)
		}
		e.mu.Unlock()

		if started {
			log.Printf("🏁 match started with %d ducks", len(snap.Players))
			e.sink.Started(snap)
		}
	})
}

// CurrentSnapshot returns the present state without affecting
// broadcast coalescing. Used by spectator attachment and the REST
// state endpoint.
func (e *Engine) CurrentSnapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.match.Snapshot(time.Now())
}

// PlayerCount returns the current roster size.
func (e *Engine) PlayerCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.match.players)
}

// tick runs one simulation step: physics for every duck, then
// collision resolution, then snapshot and change-driven broadcast.
// Never interleaved per-entity, per the ordering contract.
func (e *Engine) tick(now time.Time) {
	e.mu.Lock()
	if e.match.State() != StatePlaying {
		e.mu.Unlock()
		return
	}

	eliminated := e.match.stepPhysics()
	events := e.match.resolveCollisions(now)
	if eliminated {
		e.match.checkEnd()
	}
	finished := e.match.State() == StateFinished

	snap := e.match.Snapshot(now)
	send := finished || e.match.changed(snap)
	if send {
		e.match.noteSent(snap)
	}
	e.mu.Unlock()

	for _, ev := range events {
		e.sink.Collision(ev)
	}
	if send {
		e.sink.GameUpdate(snap)
	}
	if finished {
		if snap.Winner != nil {
			log.Printf("🏆 match finished, winner %q", snap.Winner.Name)
		} else {
			log.Printf("🏳️ match finished with no survivor")
		}
	}
}
