package controller

import (
	"errors"
	"fmt"
	"math"

	"github.com/milk9111/charkit/common"
)

// ForceMode selects how an applied vector translates into velocity change.
type ForceMode int

const (
	// ForceModeVelocityChange adds the vector as-is.
	ForceModeVelocityChange ForceMode = iota
	// ForceModeImpulse divides by the current mass.
	ForceModeImpulse
	// ForceModeAcceleration scales by the tick duration.
	ForceModeAcceleration
	// ForceModeForce divides by mass and scales by the tick duration.
	ForceModeForce
)

var (
	ErrNilMover      = errors.New("controller: mover is nil")
	ErrInvalidEnum   = errors.New("controller: invalid configuration enum value")
	errNotConfigured = errors.New("controller: core not configured")
)

// Config wires a Core to its collaborators. Mover is required; everything
// else has a workable default.
type Config struct {
	Params       Params
	FlyingParams Params

	Mover  Mover
	Frames FrameSource
	Size   SizeFunc

	// Touch routes the side-channel contact notification to the collided
	// object. Optional.
	Touch func(Object, Contact)
}

// Core is the kinematic character physics core. It owns the velocity
// vector, the parameter override stack, the jump and flying state machines,
// and moving-platform tracking. It is exclusively owned by a single tick
// driver; none of its methods are safe for concurrent use, and listeners
// must not re-enter its mutating operations.
type Core struct {
	params paramStack
	flying Params
	state  State
	vel    common.Vec3

	mover  Mover
	frames FrameSource
	size   SizeFunc
	touch  func(Object, Contact)
	bus    Bus

	jumpCooldown float64
	anticipating bool
	anticipation float64
	godJump      bool

	flyTimer     float64
	flyStopOnHit bool

	wasSliding bool

	platform      Object
	platformLocal common.Vec3
	hasAnchor     bool
}

// NewCore creates a core around the given movement executor.
func NewCore(cfg Config) (*Core, error) {
	if cfg.Mover == nil {
		return nil, ErrNilMover
	}
	c := &Core{
		params: paramStack{def: cfg.Params},
		flying: cfg.FlyingParams,
		mover:  cfg.Mover,
		frames: cfg.Frames,
		size:   cfg.Size,
		touch:  cfg.Touch,
	}
	return c, nil
}

// Bus exposes the listener registry.
func (c *Core) Bus() *Bus {
	if c == nil {
		return nil
	}
	return &c.bus
}

// State returns the current snapshot.
func (c *Core) State() State {
	if c == nil {
		return State{}
	}
	return c.state
}

// Velocity returns the current velocity vector.
func (c *Core) Velocity() common.Vec3 {
	if c == nil {
		return common.Vec3{}
	}
	return c.vel
}

// ActiveParams returns the parameter set currently in effect.
func (c *Core) ActiveParams() Params {
	if c == nil {
		return Params{}
	}
	return c.params.active()
}

// PushParams overrides the active parameter set until the matching pop.
// Pushes copy the value; popped state is restored bit-for-bit.
func (c *Core) PushParams(p Params) {
	if c == nil {
		return
	}
	c.params.push(p)
}

// PopParams removes the top override. A pop with nothing pushed is a no-op.
func (c *Core) PopParams() bool {
	if c == nil {
		return false
	}
	return c.params.pop()
}

// SetDefaultParams replaces the default set, leaving overrides untouched.
// Used for live tuning reload.
func (c *Core) SetDefaultParams(p Params) {
	if c == nil {
		return
	}
	c.params.def = p
}

// SetFlyingParams replaces the parameter set pushed while flying. Takes
// effect on the next launch.
func (c *Core) SetFlyingParams(p Params) {
	if c == nil {
		return
	}
	c.flying = p
}

// ClearOverrides drops every override, restoring the default set. Used for
// emergency resets when state is forcibly changed.
func (c *Core) ClearOverrides() {
	if c == nil {
		return
	}
	c.params.clear()
}

// OverrideDepth reports how many parameter sets are currently pushed.
func (c *Core) OverrideDepth() int {
	if c == nil {
		return 0
	}
	return c.params.depth()
}

// SetGodJump arms the one-shot override that bypasses every jump permission
// check. It clears itself once a jump is performed.
func (c *Core) SetGodJump(on bool) {
	if c == nil {
		return
	}
	c.godJump = on
}

// Mass is the effective mass: base mass scaled by the external size factor.
func (c *Core) Mass() float64 {
	p := c.params.active()
	m := p.BaseMass * c.sizeValue()
	if m <= 0 {
		m = 1
	}
	return m
}

func (c *Core) sizeValue() float64 {
	if c == nil || c.size == nil {
		return 1
	}
	s := c.size()
	if s <= 0 || math.IsNaN(s) || math.IsInf(s, 0) {
		return 1
	}
	return s
}

// Stop zeroes the velocity vector.
func (c *Core) Stop() {
	if c == nil {
		return
	}
	c.vel = common.Vec3{}
}

// setVelocity commits a velocity, enforcing the finite, z-clamp, and
// max-velocity invariants.
func (c *Core) setVelocity(v common.Vec3) {
	p := c.params.active()
	if !v.IsFinite() {
		v = common.Vec3{}
	}
	if p.ZClamp {
		v = v.ClampZ()
	}
	if p.MaxVelocity > 0 {
		if l := v.Length(); l > p.MaxVelocity {
			v = v.Scale(p.MaxVelocity / l)
		}
	}
	c.vel = v
}

func scaleForMode(v common.Vec3, mode ForceMode, mass, dt float64) (common.Vec3, error) {
	switch mode {
	case ForceModeVelocityChange:
		return v, nil
	case ForceModeImpulse:
		return v.Scale(1 / mass), nil
	case ForceModeAcceleration:
		return v.Scale(dt), nil
	case ForceModeForce:
		return v.Scale(dt / mass), nil
	}
	return common.Vec3{}, fmt.Errorf("%w: force mode %d", ErrInvalidEnum, mode)
}

// AddForce accumulates a force into the velocity. Force application is
// additive; SetForce is the only replacing operation. An unrecognized mode
// aborts without touching the velocity.
func (c *Core) AddForce(v common.Vec3, mode ForceMode, dt float64) error {
	if c == nil {
		return errNotConfigured
	}
	dv, err := scaleForMode(v, mode, c.Mass(), dt)
	if err != nil {
		return err
	}
	c.setVelocity(c.vel.Add(dv))
	return nil
}

// AddForceRelative is AddForce with the vector interpreted in the gravity
// frame.
func (c *Core) AddForceRelative(v common.Vec3, mode ForceMode, dt float64) error {
	if c == nil {
		return errNotConfigured
	}
	p := c.params.active()
	return c.AddForce(common.FromGravityFrame(v, p.Gravity), mode, dt)
}

// SetForce replaces the velocity outright.
func (c *Core) SetForce(v common.Vec3) {
	if c == nil {
		return
	}
	c.setVelocity(v)
}

// SetForceRelative replaces the velocity with a gravity-frame vector.
func (c *Core) SetForceRelative(v common.Vec3) {
	if c == nil {
		return
	}
	p := c.params.active()
	c.setVelocity(common.FromGravityFrame(v, p.Gravity))
}

// SetHorizontalForce replaces only the world-space horizontal component.
func (c *Core) SetHorizontalForce(h float64) {
	if c == nil {
		return
	}
	v := c.vel
	v.X = h
	c.setVelocity(v)
}

// SetVerticalForce replaces only the world-space vertical component.
func (c *Core) SetVerticalForce(vv float64) {
	if c == nil {
		return
	}
	v := c.vel
	v.Y = vv
	c.setVelocity(v)
}

// SetHorizontalForceRelative replaces the component perpendicular to
// gravity.
func (c *Core) SetHorizontalForceRelative(h float64) {
	if c == nil {
		return
	}
	p := c.params.active()
	rel := common.ToGravityFrame(c.vel, p.Gravity)
	rel.X = h
	c.setVelocity(common.FromGravityFrame(rel, p.Gravity))
}

// SetVerticalForceRelative replaces the component along gravity. Positive
// values point against gravity.
func (c *Core) SetVerticalForceRelative(vv float64) {
	if c == nil {
		return
	}
	p := c.params.active()
	rel := common.ToGravityFrame(c.vel, p.Gravity)
	rel.Y = vv
	c.setVelocity(common.FromGravityFrame(rel, p.Gravity))
}

// CanMove evaluates the movement permission policy against the current
// state. Movement blocked by slope or slide rules is still allowed when the
// slope is within threshold of exactly vertical, so a character pressed
// against a sheer wall is never permanently stuck.
func (c *Core) CanMove() bool {
	if c == nil {
		return false
	}
	switch c.params.active().MovementBehaviour {
	case CanMoveAnywhere:
		return true
	case CantMove:
		return false
	case CanMoveOnGround:
		return c.state.IsGrounded
	case CantMoveOnSlope:
		return !c.state.IsOnSlope || c.nearVertical()
	case CantMoveSliding:
		return !c.state.IsSliding || c.nearVertical()
	}
	return false
}

func (c *Core) nearVertical() bool {
	p := c.params.active()
	return math.Abs(90-math.Abs(c.state.SlopeAngle)) <= p.AngleThreshold
}

// SetInputForce integrates normalized input in [-1,1] into the velocity.
// Input is scaled by sqrt(size), accelerated toward input*maxSpeed with the
// grounded or airborne acceleration constant, and corrected for slope
// adhesion while grounded on a steep surface.
func (c *Core) SetInputForce(h, v, dt float64) error {
	if c == nil {
		return errNotConfigured
	}
	p := c.params.active()
	if p.MovementBehaviour < CanMoveAnywhere || p.MovementBehaviour > CantMove {
		return fmt.Errorf("%w: movement behaviour %d", ErrInvalidEnum, p.MovementBehaviour)
	}

	if !c.CanMove() {
		h, v = 0, 0
	}
	switch p.MovementControl {
	case MovementControlNone:
		h, v = 0, 0
	case MovementControlHorizontal:
		v = 0
	case MovementControlVertical:
		h = 0
	case MovementControlBoth:
	default:
		return fmt.Errorf("%w: movement control %d", ErrInvalidEnum, p.MovementControl)
	}

	h = common.Clamp(h, -1, 1)
	v = common.Clamp(v, -1, 1)

	accel := p.AccelerationInAir
	if c.state.IsGrounded {
		accel = p.AccelerationOnGround
	}
	t := common.Clamp(accel*dt, 0, 1)
	target := p.MaxSpeed * math.Sqrt(c.sizeValue())

	vel := c.vel
	if p.RelativeToGravity {
		vel = common.ToGravityFrame(vel, p.Gravity)
	}

	if p.MovementControl == MovementControlHorizontal || p.MovementControl == MovementControlBoth {
		vel.X = common.Lerp(vel.X, h*target, t)
	}
	if p.MovementControl == MovementControlVertical || p.MovementControl == MovementControlBoth {
		vel.Y = common.Lerp(vel.Y, v*target, t)
	}

	// Slope adhesion: bleed vertical speed against the slope so the entity
	// stays attached instead of launching off the incline.
	if c.state.IsGrounded && math.Abs(c.state.SlopeAngle) > p.AngleThreshold {
		corr := vel.X * math.Sin(common.Radians(c.state.SlopeAngle))
		next := vel.Y - corr
		if math.Abs(next) > math.Abs(vel.Y) {
			corr *= p.SlopeStickiness
			next = vel.Y - corr
		}
		vel.Y = next
	}

	if p.RelativeToGravity {
		vel = common.FromGravityFrame(vel, p.Gravity)
	}
	c.setVelocity(vel)
	return nil
}

// PerformMovement is the per-tick driver: timers, platform riding, gravity,
// the movement attempt, and collision resolution. It expects a fixed
// timestep from its caller and must not be re-entered from listeners.
func (c *Core) PerformMovement(dt float64) error {
	if c == nil {
		return errNotConfigured
	}
	if c.mover == nil {
		return ErrNilMover
	}
	if dt <= 0 {
		return nil
	}
	p := c.params.active()

	if c.jumpCooldown > 0 {
		c.jumpCooldown = math.Max(0, c.jumpCooldown-dt)
	}
	if c.anticipating {
		c.anticipation -= dt
		if c.anticipation <= 0 {
			c.performJump()
		}
	}
	if c.state.IsFlying {
		c.flyTimer -= dt
		if c.flyTimer <= 0 {
			c.StopFlying()
		}
	}

	c.trackPlatform(dt)

	c.wasSliding = c.state.IsSliding
	c.state.reset()

	rel := common.ToGravityFrame(c.vel, p.Gravity)
	c.state.IsFalling = rel.Y < 0

	if err := c.AddForce(p.Gravity, ForceModeAcceleration, dt); err != nil {
		return err
	}

	if c.wasSliding && p.SlidingDragFactor > 0 {
		c.setVelocity(c.vel.Scale(math.Max(0, 1-p.SlidingDragFactor*dt)))
	}

	delta := c.vel.Scale(dt)
	if p.ZClamp {
		delta = delta.ClampZ()
	}
	if contact, hit := c.mover.Move(delta); hit {
		c.resolveContact(contact)
	}

	if c.state.IsGrounded {
		c.state.TimeFloating = 0
	} else {
		c.state.TimeFloating += dt
	}

	c.anchorToPlatform()
	return nil
}
