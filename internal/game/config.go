package game

import "time"

// Config holds the fixed arena parameters. It is read-only for the
// lifetime of the process and shared by every component.
type Config struct {
	// ArenaRadius is the radius of the circular arena; crossing it
	// eliminates a duck.
	ArenaRadius float64

	// CollisionDistance is the center distance below which two ducks
	// are considered colliding (roughly a duck diameter).
	CollisionDistance float64

	// MaxPlayers caps the roster.
	MaxPlayers int

	// MatchDuration is advisory: it drives the timeLeft field in
	// snapshots but does not force a finish. Matches end when the
	// alive count drops to one or zero.
	MatchDuration time.Duration

	// TickRate is the simulation rate in ticks per second.
	TickRate int

	// StartCountdown is the delay between a start request being
	// announced and the match actually starting.
	StartCountdown time.Duration
}

// DefaultConfig returns the canonical arena parameters.
func DefaultConfig() Config {
	return Config{
		ArenaRadius:       300,
		CollisionDistance: 25,
		MaxPlayers:        10,
		MatchDuration:     5 * time.Minute,
		TickRate:          30,
		StartCountdown:    3 * time.Second,
	}
}
