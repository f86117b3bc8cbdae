package controller

import "github.com/milk9111/charkit/common"

// SendFlying stops the entity, imposes the given gravity-frame velocity,
// and enters the flying state for the given duration: all overrides are
// cleared and the dedicated flying parameter set is pushed, so input-driven
// acceleration is suspended until flight ends. With useMass the velocity is
// applied as an impulse, otherwise as a direct velocity change. With
// restoreOnHit the first collision ends the flight early.
func (c *Core) SendFlying(v common.Vec3, useMass, restoreOnHit bool, duration float64) {
	if c == nil {
		return
	}
	p := c.params.active()
	c.sendFlying(common.FromGravityFrame(v, p.Gravity), useMass, restoreOnHit, duration)
}

// SendFlyingNoRotation is SendFlying with the velocity taken as world-space
// instead of gravity-frame.
func (c *Core) SendFlyingNoRotation(v common.Vec3, useMass, restoreOnHit bool, duration float64) {
	if c == nil {
		return
	}
	c.sendFlying(v, useMass, restoreOnHit, duration)
}

func (c *Core) sendFlying(world common.Vec3, useMass, restoreOnHit bool, duration float64) {
	c.Stop()

	mode := ForceModeVelocityChange
	if useMass {
		mode = ForceModeImpulse
	}
	// dt is irrelevant for both modes used here.
	_ = c.AddForce(world, mode, 0)

	// Forcibly changing state: drop whatever overrides were active so a
	// re-launch mid-flight never stacks flying sets.
	c.params.clear()
	c.params.push(c.flying)

	c.state.IsFlying = true
	c.flyStopOnHit = restoreOnHit
	c.flyTimer = duration
}

// StopFlying restores the parameter set that was active before flight and
// clears the flying flag. Calling it while not flying is a no-op.
func (c *Core) StopFlying() {
	if c == nil || !c.state.IsFlying {
		return
	}
	c.params.pop()
	c.state.IsFlying = false
	c.flyTimer = 0
	c.flyStopOnHit = false
}
