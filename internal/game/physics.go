package game

import "math"

// step advances one player by one tick: steer toward the input's
// target velocity, apply friction, snap the deadzone, face the motion
// direction, integrate position, and check the arena boundary.
// Returns true if the player left the arena this tick.
func (p *Player) step(cfg Config) bool {
	dx := axis(p.Input.Right) - axis(p.Input.Left)
	dy := axis(p.Input.Backward) - axis(p.Input.Forward)

	if dx != 0 || dy != 0 {
		if dx != 0 && dy != 0 {
			// Normalize so diagonal input is not faster than
			// axis-aligned input.
			inv := 1 / math.Hypot(dx, dy)
			dx *= inv
			dy *= inv
		}
		p.VX += (dx*MaxSpeed - p.VX) * SteerFactor
		p.VY += (dy*MaxSpeed - p.VY) * SteerFactor
	}

	p.VX *= Friction
	p.VY *= Friction

	speed := math.Hypot(p.VX, p.VY)
	if speed < SpeedDeadzone {
		p.VX = 0
		p.VY = 0
	} else {
		// Facing follows motion, not raw input, so rendering stays
		// stable at low speed.
		p.Angle = math.Atan2(p.VY, p.VX)
	}

	p.X += p.VX
	p.Y += p.VY

	if math.Hypot(p.X, p.Y) > cfg.ArenaRadius {
		p.Alive = false
		return true
	}
	return false
}

func axis(on bool) float64 {
	if on {
		return 1
	}
	return 0
}
