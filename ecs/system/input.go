package system

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/milk9111/charkit/ecs"
	"github.com/milk9111/charkit/ecs/component"
)

// InputSystem samples the keyboard and gamepad into the player's Input
// component.
type InputSystem struct{}

func NewInputSystem() *InputSystem {
	return &InputSystem{}
}

func (i *InputSystem) Update(w *ecs.World, dt float64) {
	if w == nil {
		return
	}

	const stickDeadzone = 0.2

	left := ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft)
	right := ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight)
	jumpPressed := inpututil.IsKeyJustPressed(ebiten.KeySpace)
	godJumpPressed := inpututil.IsKeyJustPressed(ebiten.KeyG)
	launchPressed := inpututil.IsKeyJustPressed(ebiten.KeyF)

	moveX := 0.0
	if left {
		moveX -= 1
	}
	if right {
		moveX += 1
	}

	if gamepads := ebiten.GamepadIDs(); len(gamepads) > 0 {
		id := gamepads[0]
		leftX := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickHorizontal)
		if math.Abs(leftX) > stickDeadzone {
			moveX = leftX
		}
		jumpPressed = jumpPressed || inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonRightBottom)
	}

	ecs.Each(w, component.PlayerComponent, func(e ecs.Entity, _ *component.Player) {
		in, ok := ecs.Get(w, e, component.InputComponent)
		if !ok {
			return
		}
		in.Move.X = moveX
		in.Move.Y = 0
		in.JumpPressed = jumpPressed
		in.GodJumpPressed = godJumpPressed
		in.LaunchPressed = launchPressed
	})
}
