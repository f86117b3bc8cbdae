package controller

import "github.com/milk9111/charkit/common"

// trackPlatform rides whatever the entity was grounded on last tick: the
// cached platform-local offset is re-evaluated against the platform's
// current frame and the difference is applied as a direct translation, so
// the entity follows the platform exactly, teleports included. The delta
// over dt becomes the reported platform velocity. Platform rotation swings
// the anchor point but never rotates the entity itself, so a spinning
// platform cannot tip the character over.
func (c *Core) trackPlatform(dt float64) {
	if !c.hasAnchor || c.frames == nil {
		c.state.PlatformVelocity = common.Vec3{}
		return
	}
	frame, ok := c.frames.Frame(c.platform)
	if !ok {
		// The platform is gone; the weak handle just goes stale.
		c.hasAnchor = false
		c.state.PlatformVelocity = common.Vec3{}
		return
	}

	expected := frame.Position.Add(c.platformLocal.RotateZ(frame.Angle))
	delta := expected.Sub(c.mover.Position()).ClampZ()
	if !delta.IsFinite() {
		c.hasAnchor = false
		c.state.PlatformVelocity = common.Vec3{}
		return
	}
	if delta != (common.Vec3{}) {
		c.mover.Translate(delta)
	}
	c.state.PlatformVelocity = delta.Scale(1 / dt)
}

// anchorToPlatform caches the entity's position in the grounded object's
// local frame, recomputed every tick the move resolves grounded.
func (c *Core) anchorToPlatform() {
	if !c.state.IsGrounded || c.state.GroundedObject == NoObject || c.frames == nil {
		c.hasAnchor = false
		return
	}
	frame, ok := c.frames.Frame(c.state.GroundedObject)
	if !ok {
		c.hasAnchor = false
		return
	}
	c.platform = c.state.GroundedObject
	c.platformLocal = c.mover.Position().Sub(frame.Position).RotateZ(-frame.Angle)
	c.hasAnchor = true
}
