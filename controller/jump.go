package controller

import (
	"math"

	"github.com/milk9111/charkit/common"
)

// CanJump evaluates the jump permission policy, gated by the cooldown
// timer, a pending anticipation, and the one-shot god-jump override.
func (c *Core) CanJump() bool {
	if c == nil {
		return false
	}
	if c.godJump {
		return true
	}
	if c.jumpCooldown > 0 || c.anticipating {
		return false
	}
	switch c.params.active().JumpBehaviour {
	case CanJumpAnywhere:
		return true
	case CanJumpOnSlope:
		return c.state.IsGrounded || c.state.IsOnSlope
	case CanJumpSliding:
		return c.state.IsGrounded || c.state.IsOnSlope || c.state.IsSliding
	case CanJumpOnGround:
		return c.state.IsGrounded
	case CantJump:
		return false
	}
	return false
}

// Jump requests a jump. While sliding it becomes a wall jump; otherwise a
// large entity first holds in anticipation for jumpDelayPerSize seconds per
// unit of size over the threshold, then launches. Returns whether the
// request was accepted.
func (c *Core) Jump() bool {
	if c == nil || !c.CanJump() {
		return false
	}

	if c.state.IsSliding {
		return c.wallJump()
	}

	p := c.params.active()
	size := c.sizeValue()
	if p.JumpDelayPerSize > 0 && size > p.MinSizeToApplyDelay {
		c.anticipating = true
		c.anticipation = p.JumpDelayPerSize * (size - p.MinSizeToApplyDelay)
		c.bus.notifyBeginJump(c.anticipation)
		return true
	}

	c.performJump()
	return true
}

// performJump launches the entity straight up in the gravity frame with the
// speed that reaches size*jumpMagnitude at the peak, then starts the
// cooldown. The god-jump override is consumed here.
func (c *Core) performJump() {
	p := c.params.active()
	c.anticipating = false
	c.anticipation = 0
	c.godJump = false

	g := p.Gravity.Length()
	height := c.sizeValue() * p.JumpMagnitude
	if g > 0 && height > 0 {
		c.SetVerticalForceRelative(math.Sqrt(2 * g * height))
	}
	c.jumpCooldown = p.JumpFrequency
	c.bus.notifyPerformJump()
}

// wallJump launches away from the wall being slid on, through the flying
// mechanism, for exactly the time it takes to reach the wall-jump height.
func (c *Core) wallJump() bool {
	p := c.params.active()
	g := p.Gravity.Length()
	if g <= 0 {
		return false
	}
	size := c.sizeValue()

	vertical := math.Sqrt(2 * g * size * p.WallJumpHeight)
	if vertical <= 0 {
		return false
	}
	timeToPeak := vertical / g

	// Positive slope angle means the wall's normal points to -X in the
	// gravity frame, so the jump pushes that way.
	dir := 1.0
	if c.state.SlopeAngle > 0 {
		dir = -1
	}
	horizontal := dir * size * p.WallJumpDistance / timeToPeak

	c.godJump = false
	c.jumpCooldown = p.JumpFrequency
	c.bus.notifyWallJump()
	c.SendFlying(common.Vec3{X: horizontal, Y: vertical}, false, true, timeToPeak)
	return true
}
