package system

import (
	"github.com/younwookim/platformer/internal/domain/entity"
	"github.com/younwookim/platformer/internal/ecs"
	"github.com/younwookim/platformer/internal/infrastructure/config"
)

// UpdateEnemyAI runs every loaded enemy's behavior followed by the shared
// contact, facing and death steps. Enemies idle while the player is not in
// control. The player position read here is the one stored by the
// previous frame.
func UpdateEnemyAI(f *Frame) {
	w := f.World
	player, ok := w.PlayerData()
	if !ok || !player.InControl {
		return
	}
	playerPos, ok := w.PlayerPosition()
	if !ok {
		return
	}

	for _, id := range ecs.SortedIDs(w.Enemy) {
		if !w.Active(id) {
			continue
		}
		enemy := w.Enemy[id]
		tr, ok := w.Transform[id]
		if !ok {
			continue
		}
		vel, hasVel := w.Velocity[id]
		dv := decayOf(w, id)
		anim := animationOf(w, id)
		distance := tr.Pos.Sub(playerPos)

		if ai, ok := w.AI[id]; ok && ai != nil {
			switch ai.Kind {
			case ecs.AITracer:
				runTracer(enemy, &vel, dv, distance, f.DT)
			case ecs.AICharger:
				runCharger(w, id, enemy, ai.Charger, &vel, dv, distance, f.DT)
			case ecs.AITurret:
				runTurret(f, enemy, ai.Turret, anim, tr.Pos, distance)
			}
		}

		if hasVel {
			touch := touchingSides(w, id)
			if (touch.left && vel.X < 0) || (touch.right && vel.X > 0) {
				vel.X = 0
			}
			if (touch.bottom && vel.Y < 0) || (touch.top && vel.Y > 0) {
				vel.Y = 0
			}
			w.Facing[id] = entity.FacingFromSign(vel.X, w.Facing[id])
			if vel.X != 0 || vel.Y != 0 {
				anim.Set("walking")
			} else {
				anim.Set("idle")
			}
			w.Velocity[id] = vel
		}

		if tr.Pos.Y < enemy.DeathFloor {
			enemy.Health = 0
		}
		if _, invincible := w.Invincible[id]; !invincible && enemy.IsDead() {
			killEnemy(f, id, player)
		}
	}
}

func runTracer(enemy *entity.Enemy, vel *ecs.Velocity, dv *ecs.DecreaseVelocity, distance ecs.Vec2, dt float64) {
	if !enemy.InTriggerDistance(distance) {
		return
	}
	inc := enemy.PursuitIncrease(distance, dt)
	dv.DontDecreaseXFor(inc.X)
	dv.DontDecreaseYFor(inc.Y)
	vel.IncreaseXWithMax(inc.X, enemy.MaxVelocity.X)
	vel.IncreaseYWithMax(inc.Y, enemy.MaxVelocity.Y)
}

func runCharger(w *ecs.World, id ecs.EntityID, enemy *entity.Enemy, data *ecs.ChargerData,
	vel *ecs.Velocity, dv *ecs.DecreaseVelocity, distance ecs.Vec2, dt float64) {
	if data == nil {
		return
	}
	if data.IsMoving {
		if chargerBlocked(w, id, data) {
			data.IsMoving = false
			data.Velocity = ecs.Vec2{}
			return
		}
		vel.IncreaseXWithMax(data.Velocity.X, enemy.MaxVelocity.X)
		vel.IncreaseYWithMax(data.Velocity.Y, enemy.MaxVelocity.Y)
		dv.DontDecreaseXFor(data.Velocity.X)
		dv.DontDecreaseYFor(data.Velocity.Y)
		return
	}
	if !enemy.InTriggerDistance(distance) {
		return
	}
	inc := enemy.PursuitIncrease(distance, dt)
	if inc.X == 0 && inc.Y == 0 {
		return
	}
	data.IsMoving = true
	data.Velocity = inc
	vel.IncreaseXWithMax(inc.X, enemy.MaxVelocity.X)
	vel.IncreaseYWithMax(inc.Y, enemy.MaxVelocity.Y)
	dv.DontDecreaseXFor(inc.X)
	dv.DontDecreaseYFor(inc.Y)
}

// chargerBlocked reports an Enter contact with a blocking solid on a stop side
func chargerBlocked(w *ecs.World, id ecs.EntityID, data *ecs.ChargerData) bool {
	col, ok := w.Collision[id]
	if !ok {
		return false
	}
	solid, ok := w.Solid[id]
	if !ok {
		return false
	}
	for _, other := range col.ContactIDs() {
		ct, _ := col.CollisionWith(other)
		if ct.State != ecs.ContactEnter || !data.StopsOn(ct.Side) {
			continue
		}
		if os, ok := w.Solid[other]; ok && solid.CollidesWith(os) {
			return true
		}
	}
	return false
}

func runTurret(f *Frame, enemy *entity.Enemy, data *ecs.TurretData, anim *ecs.Animation,
	pos, distance ecs.Vec2) {
	if data == nil || data.ShotTimer == nil || !enemy.InTriggerDistance(distance) {
		return
	}
	if data.ShotTimer.Elapsed() < data.ShotInterval {
		return
	}
	anim.Play("shooting", config.Seconds(f.Settings.Animations.ShootingMS))
	data.ShotTimer.Start()

	facing := data.Facing
	knockback := enemy.Knockback
	spec := NewBulletSpec(
		ecs.OwnerEnemy,
		enemy.Damage,
		data.BulletLifetime,
		pos,
		ecs.Velocity{X: data.BulletVelocity.X * facing.Sign(), Y: data.BulletVelocity.Y},
		data.BulletSize,
	)
	spec.Knockback = &knockback
	spec.Facing = &facing
	f.Bullets.Push(spec)
}

// killEnemy grants the reward and removes the enemy
func killEnemy(f *Frame, id ecs.EntityID, player *entity.Player) {
	enemy := f.World.Enemy[id]
	player.AddHealth(enemy.Reward)
	f.World.DestroyEntity(id)
	f.Events.Emit(EnemyKilledEvent{Type: enemy.Type})
}
