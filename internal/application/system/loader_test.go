package system

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/younwookim/platformer/internal/domain/entity"
	"github.com/younwookim/platformer/internal/ecs"
)

func addLoadable(w *ecs.World, pos ecs.Vec2, size ecs.Size) ecs.EntityID {
	id := w.NewEntity()
	w.Transform[id] = ecs.Transform{Pos: pos}
	w.Size[id] = size
	w.Loadable[id] = struct{}{}
	return id
}

func TestUpdateLoader_CameraRange(t *testing.T) {
	env := newTestEnv()
	pid := env.spawnPlayer(ecs.Vec2{X: 100, Y: 50})
	addCamera(env.world, pid, ecs.Vec2{})

	near := env.spawnEnemy(entity.EnemyNormal, ecs.Vec2{X: 200, Y: 50}, nil)
	far := env.spawnEnemy(entity.EnemyNormal, ecs.Vec2{X: 220, Y: 50}, nil)
	tile := addLoadable(env.world, ecs.Vec2{X: 220, Y: 50}, ecs.Size{W: 8, H: 8})
	gone := addLoadable(env.world, ecs.Vec2{X: 600, Y: 50}, ecs.Size{W: 8, H: 8})
	env.world.Loaded[gone] = struct{}{}

	UpdateLoader(env.frame(InputState{}))

	assert.Contains(t, env.world.Loaded, near)
	assert.NotContains(t, env.world.Loaded, far, "enemies load only inside the camera")
	assert.Contains(t, env.world.Loaded, tile, "other entities get the extra margin")
	assert.NotContains(t, env.world.Loaded, gone)
	assert.False(t, env.world.Active(far))
}

func TestUpdateLoader_FixedDistance(t *testing.T) {
	env := newTestEnv()
	loader := env.world.NewEntity()
	env.world.Transform[loader] = ecs.Transform{}
	env.world.Loader[loader] = ecs.Loader{Distance: &ecs.Vec2{X: 50, Y: 50}}

	in := env.spawnEnemy(entity.EnemyNormal, ecs.Vec2{X: 40, Y: -50}, nil)
	out := env.spawnEnemy(entity.EnemyNormal, ecs.Vec2{X: 60, Y: 0}, nil)

	UpdateLoader(env.frame(InputState{}))

	assert.Contains(t, env.world.Loaded, in)
	assert.NotContains(t, env.world.Loaded, out)
}
