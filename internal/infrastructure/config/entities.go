package config

import (
	"fmt"

	"github.com/younwookim/platformer/internal/domain/entity"
)

// EnemiesSettings configures every enemy type
type EnemiesSettings struct {
	Gravity      entity.Vector  `yaml:"gravity"`
	MaxFallSpeed float64        `yaml:"max_fall_speed"`
	Normal       EnemySettings  `yaml:"normal"`
	Charger      EnemySettings  `yaml:"charger"`
	Flying       EnemySettings  `yaml:"flying"`
	Reaper       EnemySettings  `yaml:"reaper"`
	Turret       EnemySettings  `yaml:"turret"`
	TurretData   TurretSettings `yaml:"turret_data"`
}

// For returns the settings of an enemy type
func (s EnemiesSettings) For(t entity.EnemyType) EnemySettings {
	switch t {
	case entity.EnemyCharger:
		return s.Charger
	case entity.EnemyFlying:
		return s.Flying
	case entity.EnemyReaper:
		return s.Reaper
	case entity.EnemyTurret:
		return s.Turret
	default:
		return s.Normal
	}
}

type EnemySettings struct {
	Health              uint32           `yaml:"health"`
	Damage              float64          `yaml:"damage"`
	Reward              float64          `yaml:"reward"`
	Knockback           entity.Vector    `yaml:"knockback"`
	TriggerDistance     entity.Vector    `yaml:"trigger_distance"`
	Acceleration        entity.Vector    `yaml:"acceleration"`
	MaxVelocity         entity.OptVector `yaml:"max_velocity"`
	DecrVelocity        entity.Vector    `yaml:"decr_velocity"`
	AffectedByKnockback bool             `yaml:"affected_by_knockback"`
}

// NewEnemy builds an enemy of type t from these settings
func (s EnemySettings) NewEnemy(t entity.EnemyType, deathFloor float64) *entity.Enemy {
	return &entity.Enemy{
		Type:                t,
		Health:              s.Health,
		Damage:              s.Damage,
		Reward:              s.Reward,
		Knockback:           s.Knockback,
		TriggerDistance:     s.TriggerDistance,
		Acceleration:        s.Acceleration,
		MaxVelocity:         s.MaxVelocity.Clone(),
		AffectedByKnockback: s.AffectedByKnockback,
		DeathFloor:          deathFloor,
	}
}

type TurretSettings struct {
	ShotIntervalMS   uint64        `yaml:"shot_interval_ms"`
	BulletVelocity   entity.Vector `yaml:"bullet_velocity"`
	BulletSize       entity.Vector `yaml:"bullet_size"`
	BulletLifetimeMS uint64        `yaml:"bullet_lifetime_ms"`
}

// ItemsSettings holds per-item costs and the effect tuning
type ItemsSettings struct {
	Costs    map[string]float64 `yaml:"costs"`
	Settings ItemEffectSettings `yaml:"settings"`
}

type ItemEffectSettings struct {
	KnockbackStrength    entity.Vector     `yaml:"knockback_strength"`
	BulletShoot          BulletShootConfig `yaml:"bullet_shoot"`
	Dash                 DashConfig        `yaml:"dash"`
	SpeedUpMaxVelocityUp float64           `yaml:"speed_up_max_velocity_up"`
	JumpUp               float64           `yaml:"jump_up"`
	DamageUp             float64           `yaml:"damage_up"`
}

type BulletShootConfig struct {
	Damage     float64       `yaml:"damage"`
	Velocity   entity.Vector `yaml:"velocity"`
	Size       entity.Vector `yaml:"size"`
	LifetimeMS uint64        `yaml:"lifetime_ms"`
}

type DashConfig struct {
	DurationMS   uint64        `yaml:"duration_ms"`
	Velocity     entity.Vector `yaml:"velocity"`
	InputDelayMS uint64        `yaml:"input_delay_ms"`
}

// NewItem builds an item of type t priced from the costs table
func (s ItemsSettings) NewItem(t entity.ItemType) (entity.Item, error) {
	cost, ok := s.Costs[t.String()]
	if !ok {
		return entity.Item{}, fmt.Errorf("cost of item %s: %w", t, ErrMissingProperty)
	}
	return entity.Item{Type: t, Cost: cost}, nil
}

// Effects converts the tuning into the values item effects apply
func (s ItemsSettings) Effects() entity.ItemSettings {
	e := s.Settings
	return entity.ItemSettings{
		KnockbackStrength: e.KnockbackStrength,
		BulletShoot: entity.BulletShootData{
			Damage:     e.BulletShoot.Damage,
			Velocity:   e.BulletShoot.Velocity,
			Size:       e.BulletShoot.Size,
			LifetimeMS: e.BulletShoot.LifetimeMS,
		},
		DashDurationMS:       e.Dash.DurationMS,
		DashVelocity:         e.Dash.Velocity,
		DashInputDelayMS:     e.Dash.InputDelayMS,
		SpeedUpMaxVelocityUp: e.SpeedUpMaxVelocityUp,
		JumpUp:               e.JumpUp,
		DamageUp:             e.DamageUp,
	}
}
