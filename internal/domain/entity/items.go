package entity

import "fmt"

// ItemType identifies a purchasable upgrade
type ItemType int

const (
	ItemExtraJump ItemType = iota
	ItemWallJump
	ItemKnockback
	ItemBulletShoot
	ItemDash
	ItemSpeedUp
	ItemJumpUp
	ItemDamageUp
)

var itemTypeNames = map[ItemType]string{
	ItemExtraJump:   "ExtraJump",
	ItemWallJump:    "WallJump",
	ItemKnockback:   "Knockback",
	ItemBulletShoot: "BulletShoot",
	ItemDash:        "Dash",
	ItemSpeedUp:     "SpeedUp",
	ItemJumpUp:      "JumpUp",
	ItemDamageUp:    "DamageUp",
}

// ParseItemType maps a level-file name to an ItemType
func ParseItemType(s string) (ItemType, error) {
	for t, name := range itemTypeNames {
		if name == s {
			return t, nil
		}
	}
	return ItemExtraJump, fmt.Errorf("item type %q: %w", s, ErrUnknownVariant)
}

func (t ItemType) String() string {
	if name, ok := itemTypeNames[t]; ok {
		return name
	}
	return "Unknown"
}

// MarshalText implements encoding.TextMarshaler
func (t ItemType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (t *ItemType) UnmarshalText(b []byte) error {
	v, err := ParseItemType(string(b))
	if err != nil {
		return err
	}
	*t = v
	return nil
}

// ItemSettings holds the tuning values applied by item effects
type ItemSettings struct {
	KnockbackStrength    Vector
	BulletShoot          BulletShootData
	DashDurationMS       uint64
	DashVelocity         Vector
	DashInputDelayMS     uint64
	SpeedUpMaxVelocityUp float64
	JumpUp               float64
	DamageUp             float64
}

// Item is a purchasable upgrade placed in a level
type Item struct {
	Type ItemType
	Cost float64
}

// Apply applies the item's effect to the player
func (i Item) Apply(p *Player, s ItemSettings) {
	items := &p.Items
	switch i.Type {
	case ItemExtraJump:
		items.ExtraJump.ExtraJumps++
	case ItemWallJump:
		items.WallJump.CanWallJump = true
	case ItemKnockback:
		items.Knockback.HasKnockback = true
		items.Knockback.Velocity = items.Knockback.Velocity.Add(s.KnockbackStrength)
	case ItemBulletShoot:
		items.BulletShoot = s.BulletShoot
		items.BulletShoot.CanShoot = true
	case ItemDash:
		items.Dash.Dashes++
		items.Dash.DurationMS = s.DashDurationMS
		items.Dash.Velocity = s.DashVelocity
		items.Dash.InputDelayMS = s.DashInputDelayMS
	case ItemSpeedUp:
		if p.MaxVelocity.X != nil {
			v := *p.MaxVelocity.X + s.SpeedUpMaxVelocityUp
			p.MaxVelocity.X = &v
		}
	case ItemJumpUp:
		p.JumpStrength += s.JumpUp
	case ItemDamageUp:
		p.Damage += s.DamageUp
	}
}

// ItemsData aggregates every item unlock and its tuning
type ItemsData struct {
	ExtraJump   ExtraJumpData   `json:"extra_jump"`
	WallJump    WallJumpData    `json:"wall_jump"`
	Knockback   KnockbackData   `json:"knockback"`
	BulletShoot BulletShootData `json:"bullet_shoot"`
	Dash        DashData        `json:"dash"`
}

type ExtraJumpData struct {
	ExtraJumps     uint32 `json:"extra_jumps"`
	UsedExtraJumps uint32 `json:"used_extra_jumps"`
}

type WallJumpData struct {
	CanWallJump bool `json:"can_wall_jump"`
}

type KnockbackData struct {
	HasKnockback bool   `json:"has_knockback"`
	Velocity     Vector `json:"velocity"`
}

type BulletShootData struct {
	CanShoot   bool    `json:"can_shoot"`
	Damage     float64 `json:"damage"`
	Velocity   Vector  `json:"velocity"`
	Size       Vector  `json:"size"`
	LifetimeMS uint64  `json:"lifetime_ms"`
}

type DashData struct {
	Dashes       uint32 `json:"dashes"`
	UsedDashes   uint32 `json:"used_dashes"`
	DurationMS   uint64 `json:"duration_ms"`
	Velocity     Vector `json:"velocity"`
	InputDelayMS uint64 `json:"input_delay_ms"`
	DoubleTap    bool   `json:"double_tap"`
	IsDashing    bool   `json:"is_dashing"`
}

// HasDash reports whether an unused dash charge remains
func (d DashData) HasDash() bool {
	return d.UsedDashes < d.Dashes
}
