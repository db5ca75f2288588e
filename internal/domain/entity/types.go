package entity

import (
	"errors"
	"fmt"
)

// ErrUnknownVariant is returned when a name does not map to any variant
var ErrUnknownVariant = errors.New("unknown variant")

// Facing is the horizontal direction an entity looks at
type Facing int

const (
	FacingLeft Facing = iota
	FacingRight
)

// ParseFacing parses "Left" or "Right"
func ParseFacing(s string) (Facing, error) {
	switch s {
	case "Left":
		return FacingLeft, nil
	case "Right":
		return FacingRight, nil
	default:
		return FacingLeft, fmt.Errorf("facing %q: %w", s, ErrUnknownVariant)
	}
}

// Sign returns -1 for left and 1 for right
func (f Facing) Sign() float64 {
	if f == FacingRight {
		return 1
	}
	return -1
}

// FacingFromSign returns the facing for a velocity sign.
// Zero keeps the current facing.
func FacingFromSign(v float64, current Facing) Facing {
	switch {
	case v > 0:
		return FacingRight
	case v < 0:
		return FacingLeft
	default:
		return current
	}
}

func (f Facing) String() string {
	if f == FacingRight {
		return "Right"
	}
	return "Left"
}

// MarshalText implements encoding.TextMarshaler
func (f Facing) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (f *Facing) UnmarshalText(b []byte) error {
	v, err := ParseFacing(string(b))
	if err != nil {
		return err
	}
	*f = v
	return nil
}

// EnemyType identifies the enemy variant
type EnemyType int

const (
	EnemyNormal EnemyType = iota
	EnemyCharger
	EnemyFlying
	EnemyReaper
	EnemyTurret
)

var enemyTypeNames = map[EnemyType]string{
	EnemyNormal:  "Normal",
	EnemyCharger: "Charger",
	EnemyFlying:  "Flying",
	EnemyReaper:  "Reaper",
	EnemyTurret:  "Turret",
}

// EnemyTypes lists every enemy variant in declaration order
func EnemyTypes() []EnemyType {
	return []EnemyType{EnemyNormal, EnemyCharger, EnemyFlying, EnemyReaper, EnemyTurret}
}

// ParseEnemyType maps a level-file name to an EnemyType
func ParseEnemyType(s string) (EnemyType, error) {
	for t, name := range enemyTypeNames {
		if name == s {
			return t, nil
		}
	}
	return EnemyNormal, fmt.Errorf("enemy type %q: %w", s, ErrUnknownVariant)
}

func (t EnemyType) String() string {
	if name, ok := enemyTypeNames[t]; ok {
		return name
	}
	return "Unknown"
}

// MarshalText implements encoding.TextMarshaler
func (t EnemyType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (t *EnemyType) UnmarshalText(b []byte) error {
	v, err := ParseEnemyType(string(b))
	if err != nil {
		return err
	}
	*t = v
	return nil
}

// QuickTurnaround is the policy applied when the movement input flips sign
// relative to the current horizontal velocity
type QuickTurnaround int

const (
	TurnaroundNo QuickTurnaround = iota
	TurnaroundResetVelocity
	TurnaroundInvertVelocity
)

var turnaroundNames = map[QuickTurnaround]string{
	TurnaroundNo:             "No",
	TurnaroundResetVelocity:  "ResetVelocity",
	TurnaroundInvertVelocity: "InvertVelocity",
}

func (q QuickTurnaround) String() string {
	if name, ok := turnaroundNames[q]; ok {
		return name
	}
	return "Unknown"
}

// MarshalText implements encoding.TextMarshaler
func (q QuickTurnaround) MarshalText() ([]byte, error) {
	return []byte(q.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (q *QuickTurnaround) UnmarshalText(b []byte) error {
	for v, name := range turnaroundNames {
		if name == string(b) {
			*q = v
			return nil
		}
	}
	return fmt.Errorf("quick turnaround %q: %w", string(b), ErrUnknownVariant)
}

// Apply returns the horizontal velocity after the policy
func (q QuickTurnaround) Apply(vx float64) float64 {
	switch q {
	case TurnaroundResetVelocity:
		return 0
	case TurnaroundInvertVelocity:
		return -vx
	default:
		return vx
	}
}

// CampaignType identifies an independent level sequence
type CampaignType int

const (
	CampaignNormal CampaignType = iota
	CampaignBonusA
	CampaignBonusB
)

var campaignNames = map[CampaignType]string{
	CampaignNormal: "normal",
	CampaignBonusA: "bonus_a",
	CampaignBonusB: "bonus_b",
}

// ParseCampaignType maps a settings key to a CampaignType
func ParseCampaignType(s string) (CampaignType, error) {
	for c, name := range campaignNames {
		if name == s {
			return c, nil
		}
	}
	return CampaignNormal, fmt.Errorf("campaign %q: %w", s, ErrUnknownVariant)
}

func (c CampaignType) String() string {
	if name, ok := campaignNames[c]; ok {
		return name
	}
	return "unknown"
}
