package system

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/platformer/internal/domain/entity"
	"github.com/younwookim/platformer/internal/ecs"
	"github.com/younwookim/platformer/internal/infrastructure/config"
)

func TestEnemyAI_ChargerStartsTowardPlayer(t *testing.T) {
	env := newTestEnv()
	env.spawnPlayer(ecs.Vec2{X: 100, Y: 100})
	id := env.spawnEnemy(entity.EnemyCharger, ecs.Vec2{X: 120, Y: 100}, nil)
	ecs.UpdateCollisions(env.world)

	UpdateEnemyAI(env.frame(InputState{}))

	charger := env.world.AI[id].Charger
	assert.True(t, charger.IsMoving)
	assert.Less(t, charger.Velocity.X, 0.0)
	assert.Less(t, env.world.Velocity[id].X, 0.0)
	assert.Equal(t, entity.FacingLeft, env.world.Facing[id])
	assert.Equal(t, "walking", env.world.Animation[id].Current)
}

func TestEnemyAI_ChargerKeepsChargingUntilBlocked(t *testing.T) {
	env := newTestEnv()
	env.spawnPlayer(ecs.Vec2{X: 100, Y: 100})
	id := env.spawnEnemy(entity.EnemyCharger, ecs.Vec2{X: 120, Y: 100}, nil)
	ecs.UpdateCollisions(env.world)
	UpdateEnemyAI(env.frame(InputState{}))
	first := env.world.Velocity[id].X

	env.world.Transform[env.world.PlayerID] = ecs.Transform{Pos: ecs.Vec2{X: 1000, Y: 100}}
	UpdateEnemyAI(env.frame(InputState{}))
	assert.Less(t, env.world.Velocity[id].X, first, "still charging with the player out of range")

	env.spawnBlock(ecs.Vec2{X: 104, Y: 100}, ecs.Size{W: 16, H: 16})
	ecs.UpdateCollisions(env.world)
	require.True(t, env.world.IsTouching(id, ecs.SideLeft))

	UpdateEnemyAI(env.frame(InputState{}))
	assert.False(t, env.world.AI[id].Charger.IsMoving)
	assert.Equal(t, 0.0, env.world.Velocity[id].X, "wall contact zeroes velocity into it")
}

func TestEnemyAI_ChargerWaitsInsideDeadZone(t *testing.T) {
	env := newTestEnv()
	env.spawnPlayer(ecs.Vec2{X: 100, Y: 100})
	id := env.spawnEnemy(entity.EnemyCharger, ecs.Vec2{X: 104, Y: 100}, nil)
	ecs.UpdateCollisions(env.world)

	UpdateEnemyAI(env.frame(InputState{}))
	assert.False(t, env.world.AI[id].Charger.IsMoving, "no direction to charge in")
	assert.Equal(t, 0.0, env.world.Velocity[id].X)

	env.world.Transform[env.world.PlayerID] = ecs.Transform{Pos: ecs.Vec2{X: 76, Y: 100}}
	UpdateEnemyAI(env.frame(InputState{}))
	assert.True(t, env.world.AI[id].Charger.IsMoving, "charges once the player leaves the dead zone")
	assert.Less(t, env.world.Velocity[id].X, 0.0)
}

func TestEnemyAI_Tracer(t *testing.T) {
	tests := []struct {
		name   string
		offset ecs.Vec2
		wantVX float64
	}{
		{"pursues from the right", ecs.Vec2{X: 50}, -600 * testDT},
		{"pursues from the left", ecs.Vec2{X: -50}, 600 * testDT},
		{"dead zone", ecs.Vec2{X: 10}, 0},
		{"out of range", ecs.Vec2{X: 150}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv()
			env.spawnPlayer(ecs.Vec2{X: 100, Y: 100})
			id := env.spawnEnemy(entity.EnemyNormal, ecs.Vec2{X: 100, Y: 100}.Add(tt.offset), nil)

			UpdateEnemyAI(env.frame(InputState{}))

			assert.InDelta(t, tt.wantVX, env.world.Velocity[id].X, 1e-9)
		})
	}
}

func TestEnemyAI_IdleWithoutPlayerControl(t *testing.T) {
	env := newTestEnv()
	pid := env.spawnPlayer(ecs.Vec2{X: 100, Y: 100})
	id := env.spawnEnemy(entity.EnemyNormal, ecs.Vec2{X: 150, Y: 100}, nil)
	env.world.Player[pid].InControl = false

	UpdateEnemyAI(env.frame(InputState{}))

	assert.Equal(t, ecs.Velocity{}, env.world.Velocity[id])
}

func TestEnemyAI_SkipsUnloaded(t *testing.T) {
	env := newTestEnv()
	env.spawnPlayer(ecs.Vec2{X: 100, Y: 100})
	id := env.spawnEnemy(entity.EnemyNormal, ecs.Vec2{X: 150, Y: 100}, nil)
	delete(env.world.Loaded, id)

	UpdateEnemyAI(env.frame(InputState{}))

	assert.Equal(t, ecs.Velocity{}, env.world.Velocity[id])
}

func TestEnemyAI_TurretShotInterval(t *testing.T) {
	env := newTestEnv()
	env.spawnPlayer(ecs.Vec2{X: 100, Y: 100})
	id := env.spawnEnemy(entity.EnemyTurret, ecs.Vec2{X: 200, Y: 100}, config.Properties{"facing": "Left"})
	turret := env.world.AI[id].Turret
	require.Equal(t, 500*time.Millisecond, turret.ShotInterval)

	env.clock.Advance(400 * time.Millisecond)
	UpdateEnemyAI(env.frame(InputState{}))
	assert.Equal(t, 0, env.bullets.Len(), "interval not reached")

	env.clock.Advance(200 * time.Millisecond)
	shotAt := env.clock.Now()
	UpdateEnemyAI(env.frame(InputState{}))

	require.Equal(t, 1, env.bullets.Len())
	assert.Equal(t, shotAt, turret.ShotTimer.StartedAt(), "timer restarts at the shot, not at the due time")
	assert.Equal(t, "shooting", env.world.Animation[id].Active())

	spec := env.bullets.Drain()[0]
	assert.Equal(t, ecs.OwnerEnemy, spec.Owner)
	assert.Equal(t, -200.0, spec.Velocity.X)
	require.NotNil(t, spec.Knockback)
	assert.Equal(t, ecs.Vec2{X: 150, Y: 100}, *spec.Knockback)
	require.NotNil(t, spec.Facing)
	assert.Equal(t, entity.FacingLeft, *spec.Facing)

	UpdateEnemyAI(env.frame(InputState{}))
	assert.Equal(t, 0, env.bullets.Len(), "one bullet per interval")
}

func TestEnemyAI_TurretOutOfRange(t *testing.T) {
	env := newTestEnv()
	env.spawnPlayer(ecs.Vec2{X: 100, Y: 100})
	env.spawnEnemy(entity.EnemyTurret, ecs.Vec2{X: 900, Y: 100}, nil)

	env.clock.Advance(time.Second)
	UpdateEnemyAI(env.frame(InputState{}))

	assert.Equal(t, 0, env.bullets.Len())
}

func TestEnemyAI_Death(t *testing.T) {
	t.Run("death floor kills and rewards", func(t *testing.T) {
		env := newTestEnv()
		pid := env.spawnPlayer(ecs.Vec2{X: 100, Y: 100})
		id := env.spawnEnemy(entity.EnemyNormal, ecs.Vec2{X: 100, Y: -150}, nil)

		UpdateEnemyAI(env.frame(InputState{}))

		assert.False(t, env.world.Exists(id))
		assert.Equal(t, 11.0, env.world.Player[pid].Health)
		assert.Equal(t, []Event{EnemyKilledEvent{Type: entity.EnemyNormal}}, env.events.Drain())
	})

	t.Run("invincible turret survives", func(t *testing.T) {
		env := newTestEnv()
		env.spawnPlayer(ecs.Vec2{X: 100, Y: 100})
		id := env.spawnEnemy(entity.EnemyTurret, ecs.Vec2{X: 100, Y: -150}, nil)

		UpdateEnemyAI(env.frame(InputState{}))

		assert.True(t, env.world.Exists(id))
		assert.Zero(t, env.events.Len())
	})
}
