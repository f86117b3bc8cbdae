package controller

import (
	"testing"

	"github.com/milk9111/charkit/common"
)

func TestSendFlyingReplacesVelocityAndParams(t *testing.T) {
	core := newTestCore(t, &fakeMover{})
	core.AddForce(common.Vec3{X: 3, Y: 7}, ForceModeVelocityChange, 0)
	core.PushParams(Params{MaxSpeed: 99})

	core.SendFlying(common.Vec3{X: 5}, false, false, 2)

	if !core.State().IsFlying {
		t.Fatal("IsFlying should be set")
	}
	if !almostVec(core.Velocity(), common.Vec3{X: 5}) {
		t.Fatalf("velocity = %v, want the launch vector alone", core.Velocity())
	}
	// Pending overrides are discarded; only the flying set remains.
	if core.OverrideDepth() != 1 {
		t.Fatalf("override depth = %d, want 1", core.OverrideDepth())
	}
	if core.ActiveParams().JumpBehaviour != CantJump {
		t.Fatal("flying parameter set should be active")
	}
}

func TestSendFlyingRotatesIntoWorldSpace(t *testing.T) {
	// Gravity pointing +X: the gravity frame's "up" is -X in world space,
	// so a purely vertical launch becomes horizontal.
	core := newTestCore(t, &fakeMover{}, func(cfg *Config) {
		cfg.Params.Gravity = common.Vec3{X: 10}
		cfg.FlyingParams.Gravity = common.Vec3{X: 10}
	})

	core.SendFlying(common.Vec3{Y: 4}, false, false, 1)
	if !almostVec(core.Velocity(), common.Vec3{X: -4}) {
		t.Fatalf("velocity = %v, want (-4, 0, 0)", core.Velocity())
	}

	core.StopFlying()
	core.SendFlyingNoRotation(common.Vec3{Y: 4}, false, false, 1)
	if !almostVec(core.Velocity(), common.Vec3{Y: 4}) {
		t.Fatalf("velocity = %v, want the unrotated (0, 4, 0)", core.Velocity())
	}
}

func TestSendFlyingMassScaling(t *testing.T) {
	core := newTestCore(t, &fakeMover{}, func(cfg *Config) {
		cfg.Params.BaseMass = 2
		cfg.Size = func() float64 { return 2 }
	})

	// useMass: the launch vector is an impulse, divided by mass (4).
	core.SendFlying(common.Vec3{X: 8}, true, false, 1)
	if !almostVec(core.Velocity(), common.Vec3{X: 2}) {
		t.Fatalf("velocity = %v, want impulse/mass = (2, 0, 0)", core.Velocity())
	}
}

func TestStopFlyingRestoresOverrides(t *testing.T) {
	core := newTestCore(t, &fakeMover{})

	core.SendFlying(common.Vec3{Y: 9}, false, false, 1)
	core.StopFlying()

	if core.State().IsFlying {
		t.Fatal("IsFlying should be cleared")
	}
	if core.OverrideDepth() != 0 {
		t.Fatalf("override depth = %d, want the pre-flight 0", core.OverrideDepth())
	}

	// Stopping twice is a no-op; it must not pop an unrelated override.
	core.PushParams(Params{MaxSpeed: 42})
	core.StopFlying()
	if core.OverrideDepth() != 1 {
		t.Fatal("StopFlying when not flying must leave overrides alone")
	}
}

func TestFlyingStopsAutomatically(t *testing.T) {
	core := newTestCore(t, &fakeMover{})
	core.SendFlying(common.Vec3{Y: 5}, false, false, 0.25)

	const dt = 0.1
	_ = core.PerformMovement(dt)
	_ = core.PerformMovement(dt)
	if !core.State().IsFlying {
		t.Fatal("flight should persist before the duration elapses")
	}
	_ = core.PerformMovement(dt)
	if core.State().IsFlying {
		t.Fatal("flight should stop once the duration elapses")
	}
}

func TestFlyingStopsOnHit(t *testing.T) {
	mover := &fakeMover{queue: []Contact{groundContact(3)}}
	core := newTestCore(t, mover)

	core.SendFlying(common.Vec3{Y: -5}, false, true, 10)
	_ = core.PerformMovement(0.1)

	if core.State().IsFlying {
		t.Fatal("stopOnHit flight should end at the first contact")
	}
	if core.OverrideDepth() != 0 {
		t.Fatal("the flying parameter set should be popped on hit")
	}
}

func TestFlyingSurvivesStateReset(t *testing.T) {
	core := newTestCore(t, &fakeMover{})
	core.SendFlying(common.Vec3{Y: 5}, false, false, 10)

	_ = core.PerformMovement(0.1)
	if !core.State().IsFlying {
		t.Fatal("per-tick reset must not clear IsFlying")
	}
}
