package game

import "math"

// Input is the latest desired movement state for a player. Messages
// arriving between ticks overwrite it in place; the next tick consumes
// whatever the latest value is. Missing fields decode to false, so
// malformed input degrades to "no input" rather than an error.
type Input struct {
	Forward  bool `json:"forward"`
	Backward bool `json:"backward"`
	Left     bool `json:"left"`
	Right    bool `json:"right"`
}

// Player is a duck in the arena. Coordinates are arena-relative with
// the origin at the arena center; velocity is in units per tick.
type Player struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	VX    float64 `json:"vx"`
	VY    float64 `json:"vy"`
	Angle float64 `json:"angle"`
	Alive bool    `json:"alive"`
	Color string  `json:"color"`

	// Input is owned by the match; the transport layer writes it
	// only through Engine.ApplyInput.
	Input Input `json:"-"`
}

// playerColors is the palette assigned by join order.
var playerColors = []string{
	"#FF6B6B",
	"#4ECDC4",
	"#45B7D1",
	"#96CEB4",
	"#FFEAA7",
	"#DDA0DD",
}

func colorForIndex(i int) string {
	return playerColors[i%len(playerColors)]
}

// placeOnRing positions the player on the spawn ring at the given
// angle, facing the arena center, at rest.
func (p *Player) placeOnRing(angle, arenaRadius float64) {
	r := arenaRadius * SpawnRingFraction
	p.X = math.Cos(angle) * r
	p.Y = math.Sin(angle) * r
	p.VX = 0
	p.VY = 0
	p.Angle = angle + math.Pi
	p.Alive = true
}
