package controller

import (
	"errors"
	"math"
	"testing"

	"github.com/milk9111/charkit/common"
)

func TestAddForceModes(t *testing.T) {
	cases := []struct {
		name string
		mode ForceMode
		mass float64
		dt   float64
		in   common.Vec3
		want common.Vec3
	}{
		{"velocity_change_raw", ForceModeVelocityChange, 2, 0.5, common.Vec3{X: 4}, common.Vec3{X: 4}},
		{"impulse_divides_by_mass", ForceModeImpulse, 2, 0.5, common.Vec3{X: 4}, common.Vec3{X: 2}},
		{"acceleration_scales_by_dt", ForceModeAcceleration, 2, 0.5, common.Vec3{X: 4}, common.Vec3{X: 2}},
		{"force_divides_and_scales", ForceModeForce, 2, 0.5, common.Vec3{X: 4}, common.Vec3{X: 1}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			mover := &fakeMover{}
			core := newTestCore(t, mover, func(cfg *Config) {
				cfg.Params.BaseMass = c.mass
			})
			if err := core.AddForce(c.in, c.mode, c.dt); err != nil {
				t.Fatalf("AddForce: %v", err)
			}
			if got := core.Velocity(); !almostVec(got, c.want) {
				t.Fatalf("velocity = %v, want %v", got, c.want)
			}
		})
	}
}

func TestAddForceInvalidMode(t *testing.T) {
	core := newTestCore(t, &fakeMover{})
	core.SetForce(common.Vec3{X: 3})

	err := core.AddForce(common.Vec3{X: 10}, ForceMode(42), 0.1)
	if !errors.Is(err, ErrInvalidEnum) {
		t.Fatalf("expected ErrInvalidEnum, got %v", err)
	}
	if got := core.Velocity(); !almostVec(got, common.Vec3{X: 3}) {
		t.Fatalf("velocity should be untouched after invalid mode, got %v", got)
	}
}

func TestForceIsAdditive(t *testing.T) {
	core := newTestCore(t, &fakeMover{})
	_ = core.AddForce(common.Vec3{X: 2}, ForceModeVelocityChange, 0)
	_ = core.AddForce(common.Vec3{X: 3, Y: 1}, ForceModeVelocityChange, 0)
	if got := core.Velocity(); !almostVec(got, common.Vec3{X: 5, Y: 1}) {
		t.Fatalf("forces should accumulate, got %v", got)
	}
	core.SetForce(common.Vec3{Y: -1})
	if got := core.Velocity(); !almostVec(got, common.Vec3{Y: -1}) {
		t.Fatalf("SetForce should replace, got %v", got)
	}
}

func TestRelativeForceUnderSidewaysGravity(t *testing.T) {
	// Gravity points along +X, so gravity-frame "up" is world -X.
	core := newTestCore(t, &fakeMover{}, func(cfg *Config) {
		cfg.Params.Gravity = common.Vec3{X: 10}
	})

	core.SetVerticalForceRelative(5)
	if got := core.Velocity(); !almostVec(got, common.Vec3{X: -5}) {
		t.Fatalf("relative up should be world -X, got %v", got)
	}

	core.Stop()
	core.SetHorizontalForceRelative(3)
	got := core.Velocity()
	if !almost(math.Abs(got.Y), 3) || !almost(got.X, 0) {
		t.Fatalf("relative horizontal should be along world Y, got %v", got)
	}
}

func TestComponentSetters(t *testing.T) {
	core := newTestCore(t, &fakeMover{})
	core.SetForce(common.Vec3{X: 2, Y: 3})

	core.SetHorizontalForce(7)
	if got := core.Velocity(); !almostVec(got, common.Vec3{X: 7, Y: 3}) {
		t.Fatalf("horizontal setter leaves vertical alone, got %v", got)
	}
	core.SetVerticalForce(-4)
	if got := core.Velocity(); !almostVec(got, common.Vec3{X: 7, Y: -4}) {
		t.Fatalf("vertical setter leaves horizontal alone, got %v", got)
	}
}

func TestVelocityInvariants(t *testing.T) {
	t.Run("nan_is_sanitized", func(t *testing.T) {
		core := newTestCore(t, &fakeMover{})
		core.SetForce(common.Vec3{X: math.NaN()})
		if got := core.Velocity(); got != (common.Vec3{}) {
			t.Fatalf("NaN velocity must collapse to zero, got %v", got)
		}
	})

	t.Run("max_velocity_clamp", func(t *testing.T) {
		core := newTestCore(t, &fakeMover{}, func(cfg *Config) {
			cfg.Params.MaxVelocity = 10
		})
		core.SetForce(common.Vec3{X: 30, Y: 40})
		if got := core.Velocity().Length(); !almost(got, 10) {
			t.Fatalf("velocity magnitude should clamp to 10, got %v", got)
		}
	})

	t.Run("z_clamp", func(t *testing.T) {
		core := newTestCore(t, &fakeMover{})
		core.SetForce(common.Vec3{X: 1, Z: 5})
		if got := core.Velocity(); got.Z != 0 {
			t.Fatalf("z component should be clamped, got %v", got)
		}
	})
}

func TestCanMovePolicies(t *testing.T) {
	cases := []struct {
		name      string
		behaviour MovementBehaviour
		state     State
		want      bool
	}{
		{"anywhere", CanMoveAnywhere, State{}, true},
		{"cant_move", CantMove, State{IsGrounded: true}, false},
		{"on_ground_grounded", CanMoveOnGround, State{IsGrounded: true}, true},
		{"on_ground_airborne", CanMoveOnGround, State{}, false},
		{"slope_blocked", CantMoveOnSlope, State{IsOnSlope: true, SlopeAngle: 50}, false},
		{"slope_clear", CantMoveOnSlope, State{}, true},
		{"slope_near_vertical_exception", CantMoveOnSlope, State{IsOnSlope: true, SlopeAngle: 89.5}, true},
		{"sliding_blocked", CantMoveSliding, State{IsSliding: true, SlopeAngle: 70}, false},
		{"sliding_near_vertical_exception", CantMoveSliding, State{IsSliding: true, SlopeAngle: -89.2}, true},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			core := newTestCore(t, &fakeMover{}, func(cfg *Config) {
				cfg.Params.MovementBehaviour = c.behaviour
			})
			core.state = c.state
			if got := core.CanMove(); got != c.want {
				t.Fatalf("CanMove() = %v, want %v", got, c.want)
			}
		})
	}
}

func TestSetInputForceConvergesToMaxSpeed(t *testing.T) {
	sizes := []float64{1, 4}
	for _, size := range sizes {
		mover := &fakeMover{}
		ground := groundContact(1)
		mover.repeat = &ground

		core := newTestCore(t, mover, func(cfg *Config) {
			cfg.Size = func() float64 { return size }
		})

		const dt = 1.0 / 60.0
		limit := core.ActiveParams().MaxSpeed * math.Sqrt(size)
		for i := 0; i < 600; i++ {
			if err := core.SetInputForce(1, 0, dt); err != nil {
				t.Fatalf("SetInputForce: %v", err)
			}
			if err := core.PerformMovement(dt); err != nil {
				t.Fatalf("PerformMovement: %v", err)
			}
			if vx := core.Velocity().X; vx > limit+1e-6 {
				t.Fatalf("size %v: horizontal velocity %v exceeded limit %v", size, vx, limit)
			}
		}
		if vx := core.Velocity().X; math.Abs(vx-limit) > 0.05 {
			t.Fatalf("size %v: horizontal velocity %v did not converge to %v", size, vx, limit)
		}
	}
}

func TestSetInputForceSuppressedWhenCannotMove(t *testing.T) {
	core := newTestCore(t, &fakeMover{}, func(cfg *Config) {
		cfg.Params.MovementBehaviour = CantMove
	})
	if err := core.SetInputForce(1, 0, 0.1); err != nil {
		t.Fatalf("SetInputForce: %v", err)
	}
	if got := core.Velocity(); got != (common.Vec3{}) {
		t.Fatalf("input must be treated as zero, got velocity %v", got)
	}
}

func TestSetInputForceMovementControlAxes(t *testing.T) {
	cases := []struct {
		name    string
		control MovementControl
		wantX   bool
		wantY   bool
	}{
		{"none", MovementControlNone, false, false},
		{"horizontal", MovementControlHorizontal, true, false},
		{"vertical", MovementControlVertical, false, true},
		{"both", MovementControlBoth, true, true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			core := newTestCore(t, &fakeMover{}, func(cfg *Config) {
				cfg.Params.MovementControl = c.control
			})
			if err := core.SetInputForce(1, 1, 0.1); err != nil {
				t.Fatalf("SetInputForce: %v", err)
			}
			v := core.Velocity()
			if (v.X != 0) != c.wantX {
				t.Fatalf("control %v: X moved=%v want %v", c.control, v.X != 0, c.wantX)
			}
			if (v.Y != 0) != c.wantY {
				t.Fatalf("control %v: Y moved=%v want %v", c.control, v.Y != 0, c.wantY)
			}
		})
	}
}

func TestSetInputForceInvalidEnum(t *testing.T) {
	core := newTestCore(t, &fakeMover{}, func(cfg *Config) {
		cfg.Params.MovementControl = MovementControl(99)
	})
	if err := core.SetInputForce(1, 0, 0.1); !errors.Is(err, ErrInvalidEnum) {
		t.Fatalf("expected ErrInvalidEnum, got %v", err)
	}
	if got := core.Velocity(); got != (common.Vec3{}) {
		t.Fatalf("aborted input should not touch velocity, got %v", got)
	}
}

func TestPerformMovementAccumulatesFloatTime(t *testing.T) {
	mover := &fakeMover{}
	core := newTestCore(t, mover)

	const dt = 0.1
	for i := 0; i < 5; i++ {
		if err := core.PerformMovement(dt); err != nil {
			t.Fatalf("PerformMovement: %v", err)
		}
	}
	if got := core.State().TimeFloating; !almost(got, 0.5) {
		t.Fatalf("TimeFloating = %v, want 0.5", got)
	}

	ground := groundContact(1)
	mover.repeat = &ground
	if err := core.PerformMovement(dt); err != nil {
		t.Fatalf("PerformMovement: %v", err)
	}
	if got := core.State().TimeFloating; got != 0 {
		t.Fatalf("TimeFloating should reset on grounding, got %v", got)
	}
}

func TestNewCoreRequiresMover(t *testing.T) {
	if _, err := NewCore(Config{}); !errors.Is(err, ErrNilMover) {
		t.Fatalf("expected ErrNilMover, got %v", err)
	}
}

func TestSlopeAdhesionCorrection(t *testing.T) {
	// accel 10 * dt 0.05 gives t = 0.5; input 1 lerps vel.X from 0 to 4 and
	// the 30 degree slope bleeds 4*sin(30) = 2 off the vertical component.
	const dt = 0.05

	t.Run("full_correction_when_it_bleeds_speed", func(t *testing.T) {
		core := newTestCore(t, &fakeMover{})
		core.state.IsGrounded = true
		core.state.SlopeAngle = 30
		core.SetForce(common.Vec3{Y: 6})

		if err := core.SetInputForce(1, 0, dt); err != nil {
			t.Fatalf("SetInputForce: %v", err)
		}
		// vel.Y lerps 6 -> 3, then loses the full correction.
		if got := core.Velocity(); !almostVec(got, common.Vec3{X: 4, Y: 1}) {
			t.Fatalf("velocity = %v, want (4, 1, 0)", got)
		}
	})

	t.Run("stickiness_scales_a_correction_that_adds_speed", func(t *testing.T) {
		core := newTestCore(t, &fakeMover{})
		core.state.IsGrounded = true
		core.state.SlopeAngle = 30

		if err := core.SetInputForce(1, 0, dt); err != nil {
			t.Fatalf("SetInputForce: %v", err)
		}
		// From rest the raw correction would leave vel.Y = -2, faster than
		// before, so it is scaled by stickiness 0.5.
		if got := core.Velocity(); !almostVec(got, common.Vec3{X: 4, Y: -1}) {
			t.Fatalf("velocity = %v, want (4, -1, 0)", got)
		}
	})

	t.Run("angle_within_threshold_uncorrected", func(t *testing.T) {
		core := newTestCore(t, &fakeMover{})
		core.state.IsGrounded = true
		core.state.SlopeAngle = 0.5

		if err := core.SetInputForce(1, 0, dt); err != nil {
			t.Fatalf("SetInputForce: %v", err)
		}
		if got := core.Velocity(); !almostVec(got, common.Vec3{X: 4}) {
			t.Fatalf("velocity = %v, want (4, 0, 0)", got)
		}
	})

	t.Run("airborne_is_uncorrected", func(t *testing.T) {
		core := newTestCore(t, &fakeMover{})
		core.state.SlopeAngle = 30

		if err := core.SetInputForce(1, 0, dt); err != nil {
			t.Fatalf("SetInputForce: %v", err)
		}
		// Air acceleration 4 gives t = 0.2, so vel.X lerps to 1.6.
		if got := core.Velocity(); !almostVec(got, common.Vec3{X: 1.6}) {
			t.Fatalf("velocity = %v, want (1.6, 0, 0)", got)
		}
	})
}

func TestSlidingDragDampsVelocity(t *testing.T) {
	mover := &fakeMover{}
	core := newTestCore(t, mover, func(cfg *Config) {
		cfg.Params.Gravity = common.Vec3{}
		cfg.Params.SlidingDragFactor = 2
	})
	core.SetForce(common.Vec3{X: 10})
	core.state.IsSliding = true

	if err := core.PerformMovement(0.1); err != nil {
		t.Fatalf("PerformMovement: %v", err)
	}
	// 10 * (1 - 2*0.1) = 8.
	if got := core.Velocity(); !almostVec(got, common.Vec3{X: 8}) {
		t.Fatalf("velocity = %v, want (8, 0, 0)", got)
	}

	// No contact last tick, so the slide ended and the drag stops with it.
	if err := core.PerformMovement(0.1); err != nil {
		t.Fatalf("PerformMovement: %v", err)
	}
	if got := core.Velocity(); !almostVec(got, common.Vec3{X: 8}) {
		t.Fatalf("velocity after slide ends = %v, want (8, 0, 0)", got)
	}
}
