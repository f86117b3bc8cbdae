package tuning

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/milk9111/charkit/common"
	"github.com/milk9111/charkit/controller"
)

type vecSpec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	Z float64 `yaml:"z"`
}

// paramSpec is the YAML schema of one parameter set.
type paramSpec struct {
	Gravity vecSpec `yaml:"gravity"`

	MaxSpeed             float64 `yaml:"max_speed"`
	AccelerationOnGround float64 `yaml:"acceleration_on_ground"`
	AccelerationInAir    float64 `yaml:"acceleration_in_air"`

	SlopeLimit        float64 `yaml:"slope_limit"`
	AngleThreshold    float64 `yaml:"angle_threshold"`
	MaxWallSlideAngle float64 `yaml:"max_wall_slide_angle"`

	SlopeStickiness   float64 `yaml:"slope_stickiness"`
	SlidingDragFactor float64 `yaml:"sliding_drag_factor"`

	JumpMagnitude       float64 `yaml:"jump_magnitude"`
	JumpFrequency       float64 `yaml:"jump_frequency"`
	JumpDelayPerSize    float64 `yaml:"jump_delay_per_size"`
	MinSizeToApplyDelay float64 `yaml:"min_size_to_apply_delay"`
	WallJumpHeight      float64 `yaml:"wall_jump_height"`
	WallJumpDistance    float64 `yaml:"wall_jump_distance"`

	MovementControl   string `yaml:"movement_control"`
	MovementBehaviour string `yaml:"movement_behaviour"`
	JumpBehaviour     string `yaml:"jump_behaviour"`

	RelativeToGravity bool `yaml:"relative_to_gravity"`
	ZClamp            bool `yaml:"z_clamp"`

	MaxVelocity float64 `yaml:"max_velocity"`
	BaseMass    float64 `yaml:"base_mass"`
}

// Params loads and decodes a named parameter set, e.g. "default.yaml".
func Params(name string) (controller.Params, error) {
	data, err := Load(name)
	if err != nil {
		return controller.Params{}, fmt.Errorf("tuning: load %s: %w", name, err)
	}
	return decodeParams(name, data)
}

func decodeParams(name string, data []byte) (controller.Params, error) {
	var spec paramSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return controller.Params{}, fmt.Errorf("tuning: decode %s: %w", name, err)
	}

	control, err := controller.ParseMovementControl(spec.MovementControl)
	if err != nil {
		return controller.Params{}, fmt.Errorf("tuning: %s: %w", name, err)
	}
	movement, err := controller.ParseMovementBehaviour(spec.MovementBehaviour)
	if err != nil {
		return controller.Params{}, fmt.Errorf("tuning: %s: %w", name, err)
	}
	jump, err := controller.ParseJumpBehaviour(spec.JumpBehaviour)
	if err != nil {
		return controller.Params{}, fmt.Errorf("tuning: %s: %w", name, err)
	}

	return controller.Params{
		Gravity:              common.Vec3{X: spec.Gravity.X, Y: spec.Gravity.Y, Z: spec.Gravity.Z},
		MaxSpeed:             spec.MaxSpeed,
		AccelerationOnGround: spec.AccelerationOnGround,
		AccelerationInAir:    spec.AccelerationInAir,
		SlopeLimit:           spec.SlopeLimit,
		AngleThreshold:       spec.AngleThreshold,
		MaxWallSlideAngle:    spec.MaxWallSlideAngle,
		SlopeStickiness:      spec.SlopeStickiness,
		SlidingDragFactor:    spec.SlidingDragFactor,
		JumpMagnitude:        spec.JumpMagnitude,
		JumpFrequency:        spec.JumpFrequency,
		JumpDelayPerSize:     spec.JumpDelayPerSize,
		MinSizeToApplyDelay:  spec.MinSizeToApplyDelay,
		WallJumpHeight:       spec.WallJumpHeight,
		WallJumpDistance:     spec.WallJumpDistance,
		MovementControl:      control,
		MovementBehaviour:    movement,
		JumpBehaviour:        jump,
		RelativeToGravity:    spec.RelativeToGravity,
		ZClamp:               spec.ZClamp,
		MaxVelocity:          spec.MaxVelocity,
		BaseMass:             spec.BaseMass,
	}, nil
}
