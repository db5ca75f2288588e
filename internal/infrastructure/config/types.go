package config

import (
	"time"

	"github.com/younwookim/platformer/internal/domain/entity"
)

// Settings is the root config for settings.yaml
type Settings struct {
	Camera       CameraSettings       `yaml:"camera"`
	Player       PlayerSettings       `yaml:"player"`
	Enemies      EnemiesSettings      `yaml:"enemies"`
	Items        ItemsSettings        `yaml:"items"`
	Harmful      HarmfulSettings      `yaml:"harmful"`
	EntityLoader EntityLoaderSettings `yaml:"entity_loader"`
	LevelManager LevelManagerSettings `yaml:"level_manager"`
	Animations   AnimationSettings    `yaml:"animations"`
	Noclip       NoclipSettings       `yaml:"noclip"`
	DeathFloor   float64              `yaml:"death_floor"`
}

type CameraSettings struct {
	Size      entity.Vector `yaml:"size"`
	BaseSpeed entity.Vector `yaml:"base_speed"`
	Deadzone  entity.Vector `yaml:"deadzone"`
}

// NoclipSettings tunes the development free-fly mode
type NoclipSettings struct {
	Acceleration entity.Vector    `yaml:"acceleration"`
	MaxVelocity  entity.OptVector `yaml:"max_velocity"`
}

type PlayerSettings struct {
	Acceleration           entity.Vector          `yaml:"acceleration"`
	AirAcceleration        entity.Vector          `yaml:"air_acceleration"`
	JumpStrength           float64                `yaml:"jump_strength"`
	WallJumpStrength       entity.Vector          `yaml:"wall_jump_strength"`
	DecrJumpStrength       float64                `yaml:"decr_jump_strength"`
	MinJumpVelocity        float64                `yaml:"min_jump_velocity"`
	MaxVelocity            entity.OptVector       `yaml:"max_velocity"`
	MaxFallSpeed           float64                `yaml:"max_fall_speed"` // bounds rising too, 0 = uncapped
	DecrVelocity           entity.Vector          `yaml:"decr_velocity"`
	Gravity                entity.Vector          `yaml:"gravity"`
	JumpGravity            entity.Vector          `yaml:"jump_gravity"`
	SlideStrength          float64                `yaml:"slide_strength"`
	QuickTurnaround        entity.QuickTurnaround `yaml:"quick_turnaround"`
	AirQuickTurnaround     entity.QuickTurnaround `yaml:"air_quick_turnaround"`
	DecreaseXVelocityInAir bool                   `yaml:"decrease_x_velocity_in_air"`
	Health                 float64                `yaml:"health"`
	Damage                 float64                `yaml:"damage"`
	DeathFloor             float64                `yaml:"death_floor"`
}

// NewPlayer builds a fresh player from the tuning values
func (s PlayerSettings) NewPlayer() *entity.Player {
	return &entity.Player{
		Acceleration:           s.Acceleration,
		AirAcceleration:        s.AirAcceleration,
		JumpStrength:           s.JumpStrength,
		WallJumpStrength:       s.WallJumpStrength,
		DecrJumpStrength:       s.DecrJumpStrength,
		MinJumpVelocity:        s.MinJumpVelocity,
		MaxVelocity:            s.MaxVelocity.Clone(),
		Gravity:                s.Gravity,
		JumpGravity:            s.JumpGravity,
		SlideStrength:          s.SlideStrength,
		QuickTurnaround:        s.QuickTurnaround,
		AirQuickTurnaround:     s.AirQuickTurnaround,
		DecreaseXVelocityInAir: s.DecreaseXVelocityInAir,
		Health:                 s.Health,
		Damage:                 s.Damage,
		DeathFloor:             s.DeathFloor,
	}
}

// HarmfulSettings holds knockback strengths per harmful kind
type HarmfulSettings struct {
	Knockback map[string]entity.Vector `yaml:"knockback"`
}

// KnockbackFor returns the knockback for kind, falling back to "default"
func (s HarmfulSettings) KnockbackFor(kind string) entity.Vector {
	if v, ok := s.Knockback[kind]; ok {
		return v
	}
	return s.Knockback[DefaultHarmfulKind]
}

// DefaultHarmfulKind is used by tiles that don't name a kind
const DefaultHarmfulKind = "default"

type EntityLoaderSettings struct {
	EnemyLoadDistanceDifference entity.Vector `yaml:"enemy_load_distance_difference"`
}

type AnimationSettings struct {
	AttackMS   uint64 `yaml:"attack_ms"`
	LevelEndMS uint64 `yaml:"level_end_ms"`
	DeathMS    uint64 `yaml:"death_ms"`
	ShootingMS uint64 `yaml:"shooting_ms"`
}

// Seconds converts a millisecond animation length to seconds
func Seconds(ms uint64) float64 {
	return (time.Duration(ms) * time.Millisecond).Seconds()
}

type LevelManagerSettings struct {
	LevelsDir             string                      `yaml:"levels_dir"`
	TileSize              entity.Vector               `yaml:"tile_size"`
	HealthIncreaseOnDeath float64                     `yaml:"health_increase_on_death"`
	LevelTimerUI          TimerUISettings             `yaml:"level_timer_ui"`
	GlobalTimerUI         TimerUISettings             `yaml:"global_timer_ui"`
	Campaigns             map[string]CampaignSettings `yaml:"campaigns"`
}

// Campaign returns the settings for a campaign type
func (s LevelManagerSettings) Campaign(c entity.CampaignType) (CampaignSettings, bool) {
	cs, ok := s.Campaigns[c.String()]
	return cs, ok
}

type CampaignSettings struct {
	LevelNames   []string `yaml:"level_names"`
	SongNames    []string `yaml:"song_names"`
	SavefilePath string   `yaml:"savefile_path"`
}

type TimerUISettings struct {
	TextPrefix string `yaml:"text_prefix"`
}
