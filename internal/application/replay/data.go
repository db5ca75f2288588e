package replay

import "github.com/younwookim/platformer/internal/application/system"

// FrameInput records input state for a single frame
type FrameInput struct {
	F  int   `json:"f"`            // Frame number
	L  bool  `json:"l,omitempty"`  // Left
	R  bool  `json:"r,omitempty"`  // Right
	U  bool  `json:"u,omitempty"`  // Up
	D  bool  `json:"d,omitempty"`  // Down
	J  bool  `json:"j,omitempty"`  // Jump
	JP bool  `json:"jp,omitempty"` // JumpPressed
	JR bool  `json:"jr,omitempty"` // JumpReleased
	A  bool  `json:"a,omitempty"`  // Attack
	AL bool  `json:"al,omitempty"` // AttackLeft
	AR bool  `json:"ar,omitempty"` // AttackRight
	B  bool  `json:"b,omitempty"`  // BuyItem
	DT bool  `json:"dt,omitempty"` // DashTrigger
	DP uint8 `json:"dp,omitempty"` // DashPressed
	N  bool  `json:"n,omitempty"`  // ToggleNoclip
	P  bool  `json:"p,omitempty"`  // TogglePause
}

// ReplayData contains all data needed to replay a game session
type ReplayData struct {
	Version   string       `json:"version"`
	Campaign  string       `json:"campaign"`
	Level     string       `json:"level"`
	StartTime string       `json:"startTime"`
	Frames    []FrameInput `json:"frames"`
}

// NewFrameInput captures in as the record of frame f
func NewFrameInput(f int, in system.InputState) FrameInput {
	return FrameInput{
		F:  f,
		L:  in.MoveX < 0,
		R:  in.MoveX > 0,
		U:  in.MoveY > 0,
		D:  in.MoveY < 0,
		J:  in.Jump,
		JP: in.JumpPressed,
		JR: in.JumpReleased,
		A:  in.Attack,
		AL: in.AttackLeft,
		AR: in.AttackRight,
		B:  in.BuyItem,
		DT: in.DashTrigger,
		DP: in.DashPressed,
		N:  in.ToggleNoclip,
		P:  in.TogglePause,
	}
}

// Input rebuilds the input state of the frame
func (fi FrameInput) Input() system.InputState {
	return system.InputState{
		MoveX:        axis(fi.L, fi.R),
		MoveY:        axis(fi.D, fi.U),
		Jump:         fi.J,
		JumpPressed:  fi.JP,
		JumpReleased: fi.JR,
		Attack:       fi.A,
		AttackLeft:   fi.AL,
		AttackRight:  fi.AR,
		BuyItem:      fi.B,
		DashTrigger:  fi.DT,
		DashPressed:  fi.DP,
		ToggleNoclip: fi.N,
		TogglePause:  fi.P,
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
