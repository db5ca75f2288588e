package ecs

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func floatPtr(v float64) *float64 { return &v }

func TestVelocity_IncreaseWithMax(t *testing.T) {
	tests := []struct {
		name string
		v    float64
		inc  float64
		max  *float64
		want float64
	}{
		{"uncapped", 10, 5, nil, 15},
		{"below cap", 10, 5, floatPtr(20), 15},
		{"clamped to cap", 18, 5, floatPtr(20), 20},
		{"already beyond cap", 30, 5, floatPtr(20), 30},
		{"negative direction clamped", -18, -5, floatPtr(20), -20},
		{"braking past cap allowed", 30, -5, floatPtr(20), 25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := Velocity{X: tt.v, Y: tt.v}
			v.IncreaseXWithMax(tt.inc, tt.max)
			v.IncreaseYWithMax(tt.inc, tt.max)
			assert.Equal(t, tt.want, v.X)
			assert.Equal(t, tt.want, v.Y)
		})
	}
}

func TestApplyGravity(t *testing.T) {
	w := NewWorld()
	id := w.NewEntity()
	w.Velocity[id] = Velocity{}
	w.Gravity[id] = Gravity{Accel: Vec2{Y: -100}, Enabled: true}

	off := w.NewEntity()
	w.Velocity[off] = Velocity{}
	w.Gravity[off] = Gravity{Accel: Vec2{Y: -100}, Enabled: false}

	noVelocity := w.NewEntity()
	w.Gravity[noVelocity] = Gravity{Accel: Vec2{Y: -100}, Enabled: true}

	ApplyGravity(w, 0.5)

	assert.Equal(t, -50.0, w.Velocity[id].Y)
	assert.Equal(t, 0.0, w.Velocity[off].Y)
	assert.NotContains(t, w.Velocity, noVelocity, "gravity without velocity is a no-op")
}

func TestLimitVelocities(t *testing.T) {
	w := NewWorld()
	id := w.NewEntity()
	w.Velocity[id] = Velocity{X: -500, Y: 500}
	w.MaxVelocity[id] = MaxVelocity{X: floatPtr(100)}

	LimitVelocities(w)

	assert.Equal(t, -100.0, w.Velocity[id].X)
	assert.Equal(t, 500.0, w.Velocity[id].Y, "uncapped axis untouched")
}

func TestMoveEntities_Free(t *testing.T) {
	w := NewWorld()
	id := w.NewEntity()
	w.Transform[id] = Transform{Pos: Vec2{X: 0, Y: 0}}
	w.Velocity[id] = Velocity{X: 60, Y: -30}

	MoveEntities(w, 0.5)

	assert.Equal(t, Vec2{X: 30, Y: -15}, w.Transform[id].Pos)
}

func TestMoveEntities_StopsOnSolid(t *testing.T) {
	w := NewWorld()

	floor := w.NewEntity()
	w.Transform[floor] = Transform{Pos: Vec2{X: 0, Y: 0}}
	w.Size[floor] = Size{W: 100, H: 10}
	w.Solid[floor] = SolidDefault

	player := w.NewEntity()
	w.Transform[player] = Transform{Pos: Vec2{X: 0, Y: 12}}
	w.Size[player] = Size{W: 10, H: 10}
	w.Velocity[player] = Velocity{X: 0, Y: -100}
	w.Solid[player] = SolidPlayer

	MoveEntities(w, 0.1)

	// floor top is at y=5, player half-height is 5
	assert.InDelta(t, 10.0, w.Transform[player].Pos.Y, 1e-9)
}

func TestMoveEntities_StopsAgainstWall(t *testing.T) {
	w := NewWorld()

	wall := w.NewEntity()
	w.Transform[wall] = Transform{Pos: Vec2{X: 20, Y: 0}}
	w.Size[wall] = Size{W: 10, H: 100}
	w.Solid[wall] = SolidDefault

	enemy := w.NewEntity()
	w.Transform[enemy] = Transform{Pos: Vec2{X: 0, Y: 0}}
	w.Size[enemy] = Size{W: 10, H: 10}
	w.Velocity[enemy] = Velocity{X: 200}
	w.Solid[enemy] = SolidEnemy

	MoveEntities(w, 0.1)

	assert.InDelta(t, 10.0, w.Transform[enemy].Pos.X, 1e-9)
}

func TestMoveEntities_NonBlockingSolidsPassThrough(t *testing.T) {
	w := NewWorld()

	enemy := w.NewEntity()
	w.Transform[enemy] = Transform{Pos: Vec2{X: 10, Y: 0}}
	w.Size[enemy] = Size{W: 10, H: 10}
	w.Solid[enemy] = SolidEnemy

	player := w.NewEntity()
	w.Transform[player] = Transform{Pos: Vec2{X: 0, Y: 0}}
	w.Size[player] = Size{W: 10, H: 10}
	w.Velocity[player] = Velocity{X: 100}
	w.Solid[player] = SolidPlayer

	MoveEntities(w, 0.1)

	assert.InDelta(t, 10.0, w.Transform[player].Pos.X, 1e-9)
}

func TestMoveEntities_SkipsUnloaded(t *testing.T) {
	w := NewWorld()
	id := w.NewEntity()
	w.Transform[id] = Transform{}
	w.Velocity[id] = Velocity{X: 10}
	w.Loadable[id] = struct{}{}

	MoveEntities(w, 1)
	assert.Equal(t, 0.0, w.Transform[id].Pos.X)
}

func TestDecreaseVelocities(t *testing.T) {
	newEntity := func(w *World, vx, vy float64) (EntityID, *DecreaseVelocity) {
		id := w.NewEntity()
		w.Velocity[id] = Velocity{X: vx, Y: vy}
		dv := &DecreaseVelocity{Rate: Vec2{X: 100, Y: 100}}
		w.DecreaseVelocity[id] = dv
		return id, dv
	}

	t.Run("decays toward zero without crossing", func(t *testing.T) {
		w := NewWorld()
		id, _ := newEntity(w, 30, -5)
		DecreaseVelocities(w, 0.1)
		assert.Equal(t, 20.0, w.Velocity[id].X)
		assert.Equal(t, 0.0, w.Velocity[id].Y)
	})

	t.Run("suppressed for matching sign", func(t *testing.T) {
		w := NewWorld()
		id, dv := newEntity(w, 30, 30)
		dv.DontDecreaseXWhenPos()
		dv.DontDecreaseYWhenNeg()
		DecreaseVelocities(w, 0.1)
		assert.Equal(t, 30.0, w.Velocity[id].X)
		assert.Equal(t, 20.0, w.Velocity[id].Y, "flag for the other sign does not apply")
	})

	t.Run("axis-wide suppression", func(t *testing.T) {
		w := NewWorld()
		id, dv := newEntity(w, -30, 0)
		dv.DontDecreaseX()
		DecreaseVelocities(w, 0.1)
		assert.Equal(t, -30.0, w.Velocity[id].X)
	})

	t.Run("flags reset every frame", func(t *testing.T) {
		w := NewWorld()
		id, dv := newEntity(w, 30, 0)
		dv.DontDecreaseXFor(30)
		ResetDecayFlags(w)
		DecreaseVelocities(w, 0.1)
		assert.Equal(t, 20.0, w.Velocity[id].X)
	})
}
