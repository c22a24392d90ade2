package game

import "time"

// Gameplay feel constants. These shape how the ducks handle and how
// chatty the server is; the structural parameters (arena size, roster
// cap, tick rate) live in Config instead.
const (
	// MaxSpeed is the top speed a duck steers toward, in units per tick.
	MaxSpeed = 12.0

	// SteerFactor is the per-tick fraction of the gap between current
	// and target velocity that input closes. Higher is twitchier.
	SteerFactor = 0.3

	// Friction is the per-tick velocity retention factor.
	Friction = 0.92

	// SpeedDeadzone snaps near-zero speed to exactly zero so idle ducks
	// do not jitter.
	SpeedDeadzone = 0.1

	// SpawnRingFraction is the spawn ring radius as a fraction of the
	// arena radius.
	SpawnRingFraction = 0.7

	// SeparationForce scales how far an overlapping pair is pushed
	// apart per resolution.
	SeparationForce = 2.0

	// RepulsionImpulse is the fixed velocity kick each duck of a
	// colliding pair receives along the contact normal.
	RepulsionImpulse = 10.0

	// MoveEpsilon is the minimum per-axis movement that counts as a
	// change for broadcast purposes.
	MoveEpsilon = 0.5

	// PairCooldown is the minimum time between physical resolutions of
	// the same pair.
	PairCooldown = 200 * time.Millisecond

	// EventCooldown is the minimum time between collision events
	// emitted for the same pair. Independent of PairCooldown.
	EventCooldown = 200 * time.Millisecond
)
