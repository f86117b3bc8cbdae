package controller

import (
	"fmt"

	"github.com/milk9111/charkit/common"
)

// MovementControl selects which input axes the controller honors.
type MovementControl int

const (
	MovementControlNone MovementControl = iota
	MovementControlHorizontal
	MovementControlVertical
	MovementControlBoth
)

// MovementBehaviour is the movement permission policy.
type MovementBehaviour int

const (
	CanMoveAnywhere MovementBehaviour = iota
	CantMoveOnSlope
	CantMoveSliding
	CanMoveOnGround
	CantMove
)

// JumpBehaviour is the jump permission policy.
type JumpBehaviour int

const (
	CanJumpAnywhere JumpBehaviour = iota
	CanJumpOnSlope
	CanJumpSliding
	CanJumpOnGround
	CantJump
)

// Params is one immutable tuning set for a controller. Sets are swapped as
// whole values through an override stack, never mutated in place.
type Params struct {
	Gravity common.Vec3

	MaxSpeed             float64
	AccelerationOnGround float64
	AccelerationInAir    float64

	// SlopeLimit is the steepest surface still classified as ground.
	// AngleThreshold widens every angle comparison by a tolerance band.
	// All three are degrees.
	SlopeLimit        float64
	AngleThreshold    float64
	MaxWallSlideAngle float64

	SlopeStickiness   float64
	SlidingDragFactor float64

	JumpMagnitude       float64
	JumpFrequency       float64
	JumpDelayPerSize    float64
	MinSizeToApplyDelay float64
	WallJumpHeight      float64
	WallJumpDistance    float64

	MovementControl   MovementControl
	MovementBehaviour MovementBehaviour
	JumpBehaviour     JumpBehaviour

	RelativeToGravity bool
	ZClamp            bool

	MaxVelocity float64
	BaseMass    float64
}

// paramStack keeps the default set plus caller-pushed overrides. The active
// set is always the top override, or the default when none are pushed.
type paramStack struct {
	def       Params
	overrides []Params
}

func (s *paramStack) active() Params {
	if n := len(s.overrides); n > 0 {
		return s.overrides[n-1]
	}
	return s.def
}

func (s *paramStack) push(p Params) {
	s.overrides = append(s.overrides, p)
}

// pop removes the top override. Popping with nothing pushed is a no-op, not
// a fault: overrides degrade gracefully to the default set.
func (s *paramStack) pop() bool {
	if len(s.overrides) == 0 {
		return false
	}
	s.overrides = s.overrides[:len(s.overrides)-1]
	return true
}

func (s *paramStack) clear() {
	s.overrides = s.overrides[:0]
}

func (s *paramStack) depth() int {
	return len(s.overrides)
}

// ParseMovementControl maps a tuning-file name to its enum value.
func ParseMovementControl(name string) (MovementControl, error) {
	switch name {
	case "none":
		return MovementControlNone, nil
	case "horizontal":
		return MovementControlHorizontal, nil
	case "vertical":
		return MovementControlVertical, nil
	case "both", "":
		return MovementControlBoth, nil
	}
	return 0, fmt.Errorf("controller: unknown movement control %q", name)
}

// ParseMovementBehaviour maps a tuning-file name to its enum value.
func ParseMovementBehaviour(name string) (MovementBehaviour, error) {
	switch name {
	case "anywhere", "":
		return CanMoveAnywhere, nil
	case "cant_move_on_slope":
		return CantMoveOnSlope, nil
	case "cant_move_sliding":
		return CantMoveSliding, nil
	case "on_ground":
		return CanMoveOnGround, nil
	case "cant_move":
		return CantMove, nil
	}
	return 0, fmt.Errorf("controller: unknown movement behaviour %q", name)
}

// ParseJumpBehaviour maps a tuning-file name to its enum value.
func ParseJumpBehaviour(name string) (JumpBehaviour, error) {
	switch name {
	case "anywhere", "":
		return CanJumpAnywhere, nil
	case "on_slope":
		return CanJumpOnSlope, nil
	case "sliding":
		return CanJumpSliding, nil
	case "on_ground":
		return CanJumpOnGround, nil
	case "cant_jump":
		return CantJump, nil
	}
	return 0, fmt.Errorf("controller: unknown jump behaviour %q", name)
}
