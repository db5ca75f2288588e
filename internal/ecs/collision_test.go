package ecs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func addBox(w *World, pos Vec2, size Size, check bool) EntityID {
	id := w.NewEntity()
	w.Transform[id] = Transform{Pos: pos}
	w.Size[id] = size
	w.Collision[id] = NewCollision()
	if check {
		w.CheckCollision[id] = struct{}{}
	}
	return id
}

func TestContactSide(t *testing.T) {
	self := CenteredRect(Vec2{X: 0, Y: 0}, Size{W: 10, H: 10})

	tests := []struct {
		name  string
		other Rect
		want  Side
		hit   bool
	}{
		{"floor below", CenteredRect(Vec2{X: 2, Y: -10}, Size{W: 10, H: 10}), SideBottom, true},
		{"ceiling above", CenteredRect(Vec2{X: 0, Y: 10}, Size{W: 10, H: 10}), SideTop, true},
		{"wall left", CenteredRect(Vec2{X: -10, Y: 1}, Size{W: 10, H: 10}), SideLeft, true},
		{"wall right", CenteredRect(Vec2{X: 10, Y: 0}, Size{W: 10, H: 10}), SideRight, true},
		{"within padding", CenteredRect(Vec2{X: 10.3, Y: 0}, Size{W: 10, H: 10}), SideRight, true},
		{"float noise on a flush floor", CenteredRect(Vec2{X: 0, Y: -10 + 1e-9}, Size{W: 10, H: 10}), SideBottom, true},
		{"overlapping edge", CenteredRect(Vec2{X: 9, Y: 0}, Size{W: 10, H: 10}), SideInner, true},
		{"overlapping corner", CenteredRect(Vec2{X: 8, Y: -8}, Size{W: 10, H: 10}), SideInner, true},
		{"contained", CenteredRect(Vec2{X: 1, Y: 1}, Size{W: 2, H: 2}), SideInner, true},
		{"container", CenteredRect(Vec2{X: 0, Y: 0}, Size{W: 30, H: 30}), SideInner, true},
		{"apart", CenteredRect(Vec2{X: 20, Y: 0}, Size{W: 10, H: 10}), SideInner, false},
		{"diagonal corner", CenteredRect(Vec2{X: 10, Y: 10}, Size{W: 10, H: 10}), SideInner, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			side, hit := contactSide(self, tt.other)
			assert.Equal(t, tt.hit, hit)
			if tt.hit {
				assert.Equal(t, tt.want, side)
			}
		})
	}
}

func TestCollision_StateSequence(t *testing.T) {
	w := NewWorld()
	a := addBox(w, Vec2{X: 0, Y: 0}, Size{W: 10, H: 10}, true)
	b := addBox(w, Vec2{X: 50, Y: 0}, Size{W: 10, H: 10}, false)

	states := func() (ContactState, bool) {
		ct, ok := w.Collision[a].CollisionWith(b)
		return ct.State, ok
	}

	UpdateCollisions(w)
	_, ok := states()
	assert.False(t, ok, "no contact while apart")

	w.Transform[b] = Transform{Pos: Vec2{X: 8, Y: 0}}
	UpdateCollisions(w)
	s, ok := states()
	require.True(t, ok)
	assert.Equal(t, ContactEnter, s)
	assert.True(t, w.Collision[a].InCollision())

	for i := 0; i < 3; i++ {
		UpdateCollisions(w)
		s, _ = states()
		assert.Equal(t, ContactSteady, s, "frame %d", i)
	}

	w.Transform[b] = Transform{Pos: Vec2{X: 50, Y: 0}}
	UpdateCollisions(w)
	s, ok = states()
	require.True(t, ok)
	assert.Equal(t, ContactExit, s)
	assert.False(t, w.Collision[a].InCollision())

	UpdateCollisions(w)
	_, ok = states()
	assert.False(t, ok, "contact removed after Exit")
}

func TestCollision_EnterNeverRepeatsWithoutExit(t *testing.T) {
	w := NewWorld()
	a := addBox(w, Vec2{}, Size{W: 10, H: 10}, true)
	b := addBox(w, Vec2{X: 60}, Size{W: 10, H: 10}, false)

	// b oscillates in and out of contact
	positions := []float64{60, 5, 5, 4, 60, 60, 3, 3, 60}
	var history []ContactState
	for _, x := range positions {
		w.Transform[b] = Transform{Pos: Vec2{X: x}}
		UpdateCollisions(w)
		if ct, ok := w.Collision[a].CollisionWith(b); ok {
			history = append(history, ct.State)
		}
	}

	assert.Equal(t, []ContactState{
		ContactEnter, ContactSteady, ContactSteady, ContactExit,
		ContactEnter, ContactSteady, ContactExit,
	}, history)
}

func TestCollision_ReEnterAfterExit(t *testing.T) {
	c := NewCollision()
	c.Advance(map[EntityID]Side{2: SideLeft})
	c.Advance(map[EntityID]Side{})
	c.Advance(map[EntityID]Side{2: SideRight})

	ct, ok := c.CollisionWith(2)
	require.True(t, ok)
	assert.Equal(t, ContactEnter, ct.State)
	assert.Equal(t, SideRight, ct.Side)
}

func TestContact_EnteredInner(t *testing.T) {
	tests := []struct {
		name  string
		sides []Side
		want  []bool
	}{
		{"overlap from the start", []Side{SideInner, SideInner}, []bool{true, false}},
		{"edge first then overlap", []Side{SideRight, SideInner, SideInner}, []bool{false, true, false}},
		{"edge only", []Side{SideBottom, SideBottom}, []bool{false, false}},
		{"back out to an edge and in again", []Side{SideInner, SideLeft, SideInner}, []bool{true, false, true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCollision()
			for i, side := range tt.sides {
				c.Advance(map[EntityID]Side{2: side})
				ct, ok := c.CollisionWith(2)
				require.True(t, ok)
				assert.Equal(t, tt.want[i], ct.EnteredInner(), "frame %d", i)
			}
		})
	}

	t.Run("side change keeps the contact Steady", func(t *testing.T) {
		c := NewCollision()
		c.Advance(map[EntityID]Side{2: SideRight})
		c.Advance(map[EntityID]Side{2: SideInner})
		ct, _ := c.CollisionWith(2)
		assert.Equal(t, ContactSteady, ct.State)
		assert.True(t, ct.SideChanged)
	})
}

func TestUpdateCollisions_FlushSolidIsEdge(t *testing.T) {
	w := NewWorld()
	player := addBox(w, Vec2{X: 0, Y: 16}, Size{W: 16, H: 32}, true)
	w.Solid[player] = SolidPlayer
	w.Velocity[player] = Velocity{Y: -120}
	floor := addBox(w, Vec2{X: 0, Y: -8}, Size{W: 16, H: 16}, false)
	w.Solid[floor] = SolidDefault

	MoveEntities(w, 1.0/60)
	UpdateCollisions(w)

	ct, ok := w.Collision[player].CollisionWith(floor)
	require.True(t, ok)
	assert.Equal(t, SideBottom, ct.Side)
	assert.False(t, ct.EnteredInner())
}

func TestCollision_SkipsUnloaded(t *testing.T) {
	w := NewWorld()
	a := addBox(w, Vec2{}, Size{W: 10, H: 10}, true)
	b := addBox(w, Vec2{X: 5}, Size{W: 10, H: 10}, false)
	w.Loadable[b] = struct{}{}

	UpdateCollisions(w)
	_, ok := w.Collision[a].CollisionWith(b)
	assert.False(t, ok)

	w.Loaded[b] = struct{}{}
	UpdateCollisions(w)
	_, ok = w.Collision[a].CollisionWith(b)
	assert.True(t, ok)
}

func TestIsTouching_OnlyBlockingSolids(t *testing.T) {
	w := NewWorld()
	player := addBox(w, Vec2{X: 0, Y: 10}, Size{W: 10, H: 10}, true)
	w.Solid[player] = SolidPlayer

	floor := addBox(w, Vec2{X: 0, Y: 0}, Size{W: 10, H: 10}, false)
	w.Solid[floor] = SolidDefault

	enemy := addBox(w, Vec2{X: 10, Y: 10}, Size{W: 10, H: 10}, false)
	w.Solid[enemy] = SolidEnemy

	UpdateCollisions(w)

	assert.True(t, w.IsTouching(player, SideBottom))
	assert.False(t, w.IsTouching(player, SideRight), "enemies do not block the player")
	assert.False(t, w.IsTouchingHorizontally(player))
	assert.True(t, w.IsTouchingVertically(player))

	ct, ok := w.Collision[player].CollisionWith(enemy)
	require.True(t, ok, "non-blocking contacts are still tracked")
	assert.Equal(t, SideRight, ct.Side)
}

func TestSolidTag_CollidesWith(t *testing.T) {
	tests := []struct {
		a, b SolidTag
		want bool
	}{
		{SolidDefault, SolidDefault, true},
		{SolidDefault, SolidPlayer, true},
		{SolidEnemy, SolidDefault, true},
		{SolidPlayer, SolidEnemy, false},
		{SolidEnemy, SolidEnemy, false},
		{SolidNoclip, SolidDefault, false},
		{SolidDefault, SolidNoclip, false},
	}

	for _, tt := range tests {
		t.Run(tt.a.String()+"/"+tt.b.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.CollidesWith(tt.b))
			assert.Equal(t, tt.want, tt.b.CollidesWith(tt.a), "symmetric")
		})
	}
}
