package system

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/younwookim/platformer/internal/ecs"
)

// InputState holds one frame of player input.
// Pressed and Released are edges of the current frame; the rest are held.
type InputState struct {
	MoveX        float64 // -1 left, 1 right
	MoveY        float64 // -1 down, 1 up
	Jump         bool
	JumpPressed  bool
	JumpReleased bool
	Attack       bool // pressed this frame
	AttackLeft   bool
	AttackRight  bool
	BuyItem      bool
	DashTrigger  bool  // held modifier
	DashPressed  uint8 // bit set of ecs.DashDirection pressed this frame
	ToggleNoclip bool
	TogglePause  bool
}

// DashDown reports whether dash direction d was pressed this frame
func (in InputState) DashDown(d ecs.DashDirection) bool {
	return in.DashPressed&(1<<uint(d)) != 0
}

// WithDash returns a copy with direction d marked as pressed
func (in InputState) WithDash(d ecs.DashDirection) InputState {
	in.DashPressed |= 1 << uint(d)
	return in
}

// InputSystem reads keyboard state through ebiten
type InputSystem struct {
	devMode bool
}

// NewInputSystem creates a new input system. Noclip is only read in dev mode.
func NewInputSystem(devMode bool) *InputSystem {
	return &InputSystem{devMode: devMode}
}

// GetInput reads the current input state
func (s *InputSystem) GetInput() InputState {
	left := ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft)
	right := ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight)
	up := ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyArrowUp)
	down := ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyArrowDown)

	in := InputState{
		MoveX:        axis(left, right),
		MoveY:        axis(down, up),
		Jump:         ebiten.IsKeyPressed(ebiten.KeySpace),
		JumpPressed:  inpututil.IsKeyJustPressed(ebiten.KeySpace),
		JumpReleased: inpututil.IsKeyJustReleased(ebiten.KeySpace),
		Attack:       inpututil.IsKeyJustPressed(ebiten.KeyJ),
		AttackLeft:   inpututil.IsKeyJustPressed(ebiten.KeyQ),
		AttackRight:  inpututil.IsKeyJustPressed(ebiten.KeyE),
		BuyItem:      inpututil.IsKeyJustPressed(ebiten.KeyF),
		DashTrigger:  ebiten.IsKeyPressed(ebiten.KeyShiftLeft),
		TogglePause:  inpututil.IsKeyJustPressed(ebiten.KeyEscape),
	}
	if s.devMode {
		in.ToggleNoclip = inpututil.IsKeyJustPressed(ebiten.KeyN)
	}

	justPressed := inpututil.IsKeyJustPressed(ebiten.KeyA) || inpututil.IsKeyJustPressed(ebiten.KeyD) ||
		inpututil.IsKeyJustPressed(ebiten.KeyW) || inpututil.IsKeyJustPressed(ebiten.KeyS) ||
		inpututil.IsKeyJustPressed(ebiten.KeyArrowLeft) || inpututil.IsKeyJustPressed(ebiten.KeyArrowRight) ||
		inpututil.IsKeyJustPressed(ebiten.KeyArrowUp) || inpututil.IsKeyJustPressed(ebiten.KeyArrowDown)
	if justPressed {
		if d, ok := DashDirectionFor(in.MoveX, in.MoveY); ok {
			in = in.WithDash(d)
		}
	}
	return in
}

// DashDirectionFor maps held axes to one of the eight dash directions
func DashDirectionFor(x, y float64) (ecs.DashDirection, bool) {
	switch {
	case x < 0 && y > 0:
		return ecs.DashUpLeft, true
	case x > 0 && y > 0:
		return ecs.DashUpRight, true
	case x < 0 && y < 0:
		return ecs.DashDownLeft, true
	case x > 0 && y < 0:
		return ecs.DashDownRight, true
	case y > 0:
		return ecs.DashUp, true
	case y < 0:
		return ecs.DashDown, true
	case x < 0:
		return ecs.DashLeft, true
	case x > 0:
		return ecs.DashRight, true
	default:
		return ecs.DashRight, false
	}
}

func axis(neg, pos bool) float64 {
	switch {
	case neg && !pos:
		return -1
	case pos && !neg:
		return 1
	default:
		return 0
	}
}
