package system

import (
	"time"

	"github.com/younwookim/platformer/internal/domain/entity"
	"github.com/younwookim/platformer/internal/ecs"
	"github.com/younwookim/platformer/internal/infrastructure/config"
)

const testDT = 1.0 / 60.0

var testStart = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func floatPtr(v float64) *float64 { return &v }

func testSettings() *config.Settings {
	return &config.Settings{
		Camera: config.CameraSettings{
			Size:      entity.Vector{X: 200, Y: 100},
			BaseSpeed: entity.Vector{X: 4, Y: 4},
			Deadzone:  entity.Vector{X: 8, Y: 8},
		},
		Player: config.PlayerSettings{
			Acceleration:           entity.Vector{X: 1000},
			AirAcceleration:        entity.Vector{X: 500},
			JumpStrength:           300,
			WallJumpStrength:       entity.Vector{X: 200, Y: 250},
			DecrJumpStrength:       100,
			MinJumpVelocity:        50,
			MaxVelocity:            entity.OptVector{X: floatPtr(200)},
			DecrVelocity:           entity.Vector{X: 800},
			Gravity:                entity.Vector{Y: -1000},
			JumpGravity:            entity.Vector{Y: -800},
			SlideStrength:          50,
			QuickTurnaround:        entity.TurnaroundResetVelocity,
			AirQuickTurnaround:     entity.TurnaroundNo,
			DecreaseXVelocityInAir: true,
			Health:                 10,
			Damage:                 1,
			DeathFloor:             -100,
		},
		Enemies: config.EnemiesSettings{
			Gravity: entity.Vector{Y: -1000},
			Normal: config.EnemySettings{
				Health: 3, Damage: 1, Reward: 1,
				Knockback:           entity.Vector{X: 300, Y: 200},
				TriggerDistance:     entity.Vector{X: 100, Y: 50},
				Acceleration:        entity.Vector{X: 600},
				MaxVelocity:         entity.OptVector{X: floatPtr(80)},
				DecrVelocity:        entity.Vector{X: 400},
				AffectedByKnockback: true,
			},
			Charger: config.EnemySettings{
				Health: 4, Damage: 2, Reward: 2,
				Knockback:           entity.Vector{X: 400, Y: 300},
				TriggerDistance:     entity.Vector{X: 32, Y: 32},
				Acceleration:        entity.Vector{X: 6000},
				MaxVelocity:         entity.OptVector{X: floatPtr(250)},
				AffectedByKnockback: true,
			},
			Flying: config.EnemySettings{
				Health: 2, Damage: 1, Reward: 1,
				TriggerDistance: entity.Vector{X: 100, Y: 100},
				Acceleration:    entity.Vector{X: 300, Y: 300},
			},
			Reaper: config.EnemySettings{Health: 8, Damage: 3, Reward: 4},
			Turret: config.EnemySettings{
				Health: 1, Damage: 1,
				Knockback:       entity.Vector{X: 150, Y: 100},
				TriggerDistance: entity.Vector{X: 300, Y: 100},
			},
			TurretData: config.TurretSettings{
				ShotIntervalMS:   500,
				BulletVelocity:   entity.Vector{X: 200},
				BulletSize:       entity.Vector{X: 4, Y: 4},
				BulletLifetimeMS: 1000,
			},
		},
		Items: config.ItemsSettings{
			Costs: map[string]float64{"ExtraJump": 3, "WallJump": 2, "Dash": 4, "BulletShoot": 4, "Knockback": 2},
			Settings: config.ItemEffectSettings{
				KnockbackStrength: entity.Vector{X: 250, Y: 150},
				BulletShoot: config.BulletShootConfig{
					Damage: 1, Velocity: entity.Vector{X: 400}, Size: entity.Vector{X: 4, Y: 4}, LifetimeMS: 500,
				},
				Dash: config.DashConfig{DurationMS: 100, Velocity: entity.Vector{X: 500, Y: 400}, InputDelayMS: 200},
			},
		},
		Harmful: config.HarmfulSettings{Knockback: map[string]entity.Vector{
			config.DefaultHarmfulKind: {X: 100, Y: 200},
		}},
		EntityLoader: config.EntityLoaderSettings{EnemyLoadDistanceDifference: entity.Vector{X: 32, Y: 32}},
		LevelManager: config.LevelManagerSettings{TileSize: entity.Vector{X: 16, Y: 16}},
		Animations:   config.AnimationSettings{AttackMS: 200, LevelEndMS: 500, DeathMS: 500, ShootingMS: 100},
		Noclip:       config.NoclipSettings{Acceleration: entity.Vector{X: 1000, Y: 1000}},
		DeathFloor:   -100,
	}
}

type testEnv struct {
	world    *ecs.World
	settings *config.Settings
	clock    *ecs.ManualClock
	bullets  *BulletQueue
	events   *EventLog
}

func newTestEnv() *testEnv {
	return &testEnv{
		world:    ecs.NewWorld(),
		settings: testSettings(),
		clock:    ecs.NewManualClock(testStart),
		bullets:  NewBulletQueue(),
		events:   &EventLog{},
	}
}

func (e *testEnv) frame(in InputState) *Frame {
	return &Frame{
		World:    e.world,
		Settings: e.settings,
		Clock:    e.clock,
		Input:    in,
		DT:       testDT,
		Bullets:  e.bullets,
		Events:   e.events,
	}
}

// spawnPlayer adds a 16x32 player the way the level builder does
func (e *testEnv) spawnPlayer(pos ecs.Vec2) ecs.EntityID {
	b := &levelBuilder{world: e.world, settings: e.settings, clock: e.clock}
	obj := config.ObjectData{
		Type: config.ObjectPlayer,
		Pos:  config.PosData{X: pos.X - 8, Y: pos.Y + 16},
		Size: config.SizeData{W: 16, H: 32},
	}
	return b.buildPlayer(obj, nil)
}

// spawnEnemy adds a 16x16 enemy of type t, already loaded
func (e *testEnv) spawnEnemy(t entity.EnemyType, pos ecs.Vec2, props config.Properties) ecs.EntityID {
	if props == nil {
		props = config.Properties{}
	}
	props["enemy_type"] = t.String()
	b := &levelBuilder{world: e.world, settings: e.settings, clock: e.clock}
	obj := config.ObjectData{
		Type:       config.ObjectEnemy,
		Pos:        config.PosData{X: pos.X - 8, Y: pos.Y + 8},
		Size:       config.SizeData{W: 16, H: 16},
		Properties: props,
	}
	if err := b.buildEnemy(obj); err != nil {
		panic(err)
	}
	id := b.created[len(b.created)-1]
	e.world.Loaded[id] = struct{}{}
	return id
}

// spawnBlock adds a solid box centered at pos
func (e *testEnv) spawnBlock(pos ecs.Vec2, size ecs.Size) ecs.EntityID {
	w := e.world
	id := w.NewEntity()
	w.Transform[id] = ecs.Transform{Pos: pos}
	w.Size[id] = size
	w.Solid[id] = ecs.SolidDefault
	w.Collision[id] = ecs.NewCollision()
	return id
}

// spawnHarmful adds a non-solid harmful box centered at pos
func (e *testEnv) spawnHarmful(pos ecs.Vec2, size ecs.Size, damage float64) ecs.EntityID {
	w := e.world
	id := w.NewEntity()
	w.Transform[id] = ecs.Transform{Pos: pos}
	w.Size[id] = size
	w.Collision[id] = ecs.NewCollision()
	w.Harmful[id] = ecs.Harmful{Damage: damage, Kind: config.DefaultHarmfulKind}
	return id
}

// ground puts a floor under a player standing at y=16 and refreshes contacts
func (e *testEnv) ground() ecs.EntityID {
	id := e.spawnBlock(ecs.Vec2{X: 0, Y: -8}, ecs.Size{W: 400, H: 16})
	ecs.UpdateCollisions(e.world)
	return id
}
