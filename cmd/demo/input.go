package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Input holds current input state for movement and jumping.
type Input struct {
	// MoveX is -1 for left, 0 for none, +1 for right.
	MoveX float64
	// JumpPressed is true on the frame the jump key is pressed.
	JumpPressed bool
	// JumpReleased is true on the frame the jump key is released.
	JumpReleased bool
	// PausePressed is true on the frame the pause key is pressed.
	PausePressed bool
	// DebugPressed is true on the frame the probe drawing toggle is pressed.
	DebugPressed bool

	prevJumpHeld bool
}

func NewInput() *Input {
	return &Input{}
}

// Update polls the keyboard and gamepad.
func (i *Input) Update() {
	var moveX float64
	if ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyLeft) {
		moveX -= 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyRight) {
		moveX += 1
	}

	jumpHeld := ebiten.IsKeyPressed(ebiten.KeySpace)
	jumpPressed := inpututil.IsKeyJustPressed(ebiten.KeySpace)

	// Gamepad: left stick X plus the standard primary button.
	if ids := ebiten.GamepadIDs(); len(ids) > 0 {
		gid := ids[0]
		leftX := ebiten.StandardGamepadAxisValue(gid, ebiten.StandardGamepadAxisLeftStickHorizontal)
		if leftX < -0.3 {
			moveX = -1
		} else if leftX > 0.3 {
			moveX = 1
		}
		jumpPressed = jumpPressed || inpututil.IsStandardGamepadButtonJustPressed(gid, ebiten.StandardGamepadButtonRightBottom)
		jumpHeld = jumpHeld || ebiten.IsStandardGamepadButtonPressed(gid, ebiten.StandardGamepadButtonRightBottom)
	}

	i.MoveX = moveX
	i.JumpPressed = jumpPressed
	i.JumpReleased = i.prevJumpHeld && !jumpHeld
	i.prevJumpHeld = jumpHeld

	i.PausePressed = inpututil.IsKeyJustPressed(ebiten.KeyEscape)
	i.DebugPressed = inpututil.IsKeyJustPressed(ebiten.KeyF1)
}
