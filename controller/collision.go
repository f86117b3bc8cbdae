package controller

import (
	"math"

	"github.com/milk9111/charkit/common"
)

// resolveContact classifies the single contact of this tick and updates the
// state snapshot. Classification is a pure function of the slope angle, the
// surface tags, and the active slope limits; the same inputs always produce
// the same grounded/slope/sliding triple.
func (c *Core) resolveContact(ct Contact) {
	p := c.params.active()

	c.bus.notifyPreCollision(ct)

	n := ct.Normal
	if ct.Shape == ShapeSphere {
		// Sphere contacts report the normal inverted.
		n = n.Neg()
	}
	n = n.ClampZ().Normalize()

	c.state.HasCollisions = true

	if n == (common.Vec3{}) {
		// Degenerate normal: nothing to classify against, but listeners
		// still hear about the contact.
		c.bus.notifyPostCollision(ct)
		return
	}

	up := p.Gravity.Neg().Normalize()
	if up == (common.Vec3{}) {
		up = common.Down.Neg()
	}
	angle := common.Degrees(common.SignedAngle(up, n))
	c.state.SlopeAngle = angle

	wasFalling := c.state.IsFalling

	isGround := !ct.Surface.AlwaysSlide &&
		(ct.Surface.NeverSlide || math.Abs(angle) <= p.SlopeLimit+p.AngleThreshold)

	// Momentum transfer happens before the contact rewrites our velocity.
	c.pushContact(ct, n)

	if isGround {
		c.state.IsGrounded = true
		c.state.IsFalling = false
		c.state.IsOnSlope = false
		c.state.IsSliding = false
		c.state.GroundedObject = ct.Object

		rel := common.ToGravityFrame(c.vel, p.Gravity)
		rel.Y = 0
		c.setVelocity(common.FromGravityFrame(rel, p.Gravity))
	} else {
		c.state.IsGrounded = false
		c.state.GroundedObject = NoObject

		c.setVelocity(c.vel.ProjectOnPlane(n))

		// Wall-slide test measures how far the surface is from exactly
		// vertical; a sheer wall deviates by 0, a ceiling by 90.
		wallSlide := ct.Surface.AlwaysSlide ||
			math.Abs(90-math.Abs(angle)) <= p.MaxWallSlideAngle+p.AngleThreshold
		if wallSlide {
			c.state.IsOnSlope = true
			if wasFalling && ct.Surface.WallJumpable {
				c.state.IsSliding = true
				if !c.wasSliding {
					// Entering a slide sheds all pre-slide momentum.
					c.setVelocity(common.Vec3{})
				}
			}
		}
	}

	if c.state.IsFlying && c.flyStopOnHit {
		c.StopFlying()
	}

	c.bus.notifyPostCollision(ct)

	if c.touch != nil {
		c.touch(ct.Object, ct)
	}
}

// pushContact transfers mass-scaled momentum into a contact that accepts
// external forces.
func (c *Core) pushContact(ct Contact, n common.Vec3) {
	if ct.ApplyImpulse == nil {
		return
	}
	inward := n.Neg()
	comp := c.vel.Dot(inward)
	if comp <= 0 {
		return
	}
	ct.ApplyImpulse(inward.Scale(c.Mass()*comp), ct.Point)
}
