package controller

import (
	"math"
	"testing"

	"github.com/milk9111/charkit/common"
)

// fakeMover is a scripted movement executor: queued contacts are returned
// one per attempt, then repeat (if set) answers every further attempt.
type fakeMover struct {
	pos    common.Vec3
	queue  []Contact
	repeat *Contact
	moves  []common.Vec3
}

func (m *fakeMover) Move(delta common.Vec3) (Contact, bool) {
	m.pos = m.pos.Add(delta)
	m.moves = append(m.moves, delta)
	if len(m.queue) > 0 {
		ct := m.queue[0]
		m.queue = m.queue[1:]
		return ct, true
	}
	if m.repeat != nil {
		return *m.repeat, true
	}
	return Contact{}, false
}

func (m *fakeMover) Position() common.Vec3 {
	return m.pos
}

func (m *fakeMover) Translate(delta common.Vec3) {
	m.pos = m.pos.Add(delta)
}

// fakeFrames is a FrameSource over a plain map.
type fakeFrames map[Object]Frame

func (f fakeFrames) Frame(o Object) (Frame, bool) {
	fr, ok := f[o]
	return fr, ok
}

func groundContact(obj Object) Contact {
	return Contact{Normal: common.Vec3{Y: 1}, Object: obj}
}

// slopeNormal builds the surface normal of a slope inclined by deg degrees,
// tilted so the resulting signed slope angle is positive.
func slopeNormal(deg float64) common.Vec3 {
	rad := common.Radians(deg)
	return common.Vec3{X: -math.Sin(rad), Y: math.Cos(rad)}
}

func testParams() Params {
	return Params{
		Gravity:              common.Vec3{Y: -10},
		MaxSpeed:             8,
		AccelerationOnGround: 10,
		AccelerationInAir:    4,
		SlopeLimit:           45,
		AngleThreshold:       1,
		MaxWallSlideAngle:    60,
		SlopeStickiness:      0.5,
		JumpMagnitude:        2,
		JumpFrequency:        0.5,
		JumpDelayPerSize:     0.1,
		MinSizeToApplyDelay:  2,
		WallJumpHeight:       1.5,
		WallJumpDistance:     2,
		MovementControl:      MovementControlBoth,
		MovementBehaviour:    CanMoveAnywhere,
		JumpBehaviour:        CanJumpAnywhere,
		RelativeToGravity:    true,
		ZClamp:               true,
		MaxVelocity:          200,
		BaseMass:             1,
	}
}

func testFlyingParams() Params {
	p := testParams()
	p.MovementControl = MovementControlNone
	p.MovementBehaviour = CantMove
	p.JumpBehaviour = CantJump
	return p
}

func newTestCore(t *testing.T, mover *fakeMover, opts ...func(*Config)) *Core {
	t.Helper()
	cfg := Config{
		Params:       testParams(),
		FlyingParams: testFlyingParams(),
		Mover:        mover,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	c, err := NewCore(cfg)
	if err != nil {
		t.Fatalf("NewCore: %v", err)
	}
	return c
}

func almost(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}

func almostVec(a, b common.Vec3) bool {
	return almost(a.X, b.X) && almost(a.Y, b.Y) && almost(a.Z, b.Z)
}
