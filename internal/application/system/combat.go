package system

import (
	"github.com/younwookim/platformer/internal/domain/entity"
	"github.com/younwookim/platformer/internal/ecs"
	"github.com/younwookim/platformer/internal/infrastructure/config"
)

// attackParkPos is where the melee hitbox waits while no attack is running
var attackParkPos = ecs.Vec2{X: -1000, Y: -1000}

// UpdatePlayerAttack moves the melee hitbox with the player and resolves hits.
// The hitbox sits one player width in front of the player while attacking.
func UpdatePlayerAttack(f *Frame) {
	w := f.World
	player, ok := w.PlayerData()
	if !ok {
		return
	}
	anim := animationOf(w, w.PlayerID)
	if player.IsAttacking && !anim.PlayingOnce() {
		player.IsAttacking = false
	}

	playerTr, hasTr := w.Transform[w.PlayerID]
	playerSize := w.Size[w.PlayerID]
	facing := w.Facing[w.PlayerID]

	for _, id := range ecs.SortedIDs(w.PlayerAttack) {
		attack := w.PlayerAttack[id]
		if attack.Owner != w.PlayerID {
			continue
		}
		tr := w.Transform[id]
		if player.IsAttacking && hasTr {
			tr.Pos = ecs.Vec2{X: playerTr.Pos.X + playerSize.W*facing.Sign(), Y: playerTr.Pos.Y}.Add(attack.Offset)
			attack.Active = true
		} else {
			tr.Pos = attackParkPos
			attack.Active = false
		}
		w.Transform[id] = tr
		w.PlayerAttack[id] = attack

		if !attack.Active {
			continue
		}
		col := w.Collision[id]
		for _, enemyID := range ecs.SortedIDs(w.Enemy) {
			if !w.Active(enemyID) {
				continue
			}
			if !enteredInner(col, enemyID) {
				continue
			}
			hitEnemy(f, player, enemyID, facing)
		}
	}
}

func hitEnemy(f *Frame, player *entity.Player, enemyID ecs.EntityID, facing entity.Facing) {
	w := f.World
	if _, invincible := w.Invincible[enemyID]; invincible {
		return
	}
	enemy := w.Enemy[enemyID]
	enemy.TakeDamage(player.Damage)

	kb := player.Items.Knockback
	if kb.HasKnockback && enemy.AffectedByKnockback {
		if vel, ok := w.Velocity[enemyID]; ok {
			vel.X = kb.Velocity.X * facing.Sign()
			vel.Y = kb.Velocity.Y
			w.Velocity[enemyID] = vel
		}
	}
	if enemy.IsDead() {
		killEnemy(f, enemyID, player)
	}
}

// UpdatePlayerTakeDamage applies contact damage from enemies to the player.
// Knockback uses the enemy's strength and the contact side.
func UpdatePlayerTakeDamage(f *Frame) {
	w := f.World
	id := w.PlayerID
	player, ok := w.PlayerData()
	if !ok || !player.InControl {
		return
	}
	col := w.Collision[id]
	facing := w.Facing[id]
	_, invincible := w.Invincible[id]

	for _, enemyID := range ecs.SortedIDs(w.Enemy) {
		if _, harmless := w.NoAttack[enemyID]; harmless || !w.Active(enemyID) {
			continue
		}
		ct, ok := enterOn(col, enemyID)
		if !ok || invincible {
			continue
		}
		enemy := w.Enemy[enemyID]
		player.TakeDamage(enemy.Damage)
		if vel, ok := w.Velocity[id]; ok {
			kb := contactKnockback(enemy.Knockback, ct.Side, facing)
			vel.X, vel.Y = kb.X, kb.Y
			w.Velocity[id] = vel
		}
	}

	if player.IsDead() {
		player.InControl = false
		animationOf(w, id).Play("death", config.Seconds(f.Settings.Animations.DeathMS))
		f.Events.Emit(PlayerDiedEvent{})
	}
}

// contactKnockback pushes away from the side the enemy touched.
// Vertical contacts push against the player's facing.
func contactKnockback(k ecs.Vec2, side ecs.Side, facing entity.Facing) ecs.Vec2 {
	vertical := k.X
	if facing == entity.FacingRight {
		vertical = -k.X
	}
	switch side {
	case ecs.SideLeft:
		return ecs.Vec2{X: k.X, Y: k.Y}
	case ecs.SideRight:
		return ecs.Vec2{X: -k.X, Y: k.Y}
	case ecs.SideTop:
		return ecs.Vec2{X: vertical, Y: -k.Y}
	default:
		return ecs.Vec2{X: vertical, Y: k.Y}
	}
}

// UpdateHarmful deals damage from Harmful entities to Harmable ones.
// A source hurts when it starts overlapping the target; edge contacts such
// as standing on a solid harmful tile do not. Every source entering a
// target this frame applies in entity order.
func UpdateHarmful(f *Frame) {
	w := f.World
	for _, id := range ecs.SortedIDs(w.Harmable) {
		col, ok := w.Collision[id]
		if !ok || !w.Active(id) {
			continue
		}
		if _, invincible := w.Invincible[id]; invincible {
			continue
		}
		for _, harmfulID := range ecs.SortedIDs(w.Harmful) {
			if !w.Active(harmfulID) {
				continue
			}
			if !enteredInner(col, harmfulID) {
				continue
			}
			harmful := w.Harmful[harmfulID]
			if !damageHarmable(w, id, harmful.Damage) {
				continue
			}
			knockback := f.Settings.Harmful.KnockbackFor(harmful.Kind)
			pushAway(w, id, harmfulID, knockback)
		}
	}
}

// damageHarmable applies damage to a player or enemy and reports whether
// the target can be knocked back
func damageHarmable(w *ecs.World, id ecs.EntityID, damage float64) bool {
	if p, ok := w.Player[id]; ok {
		p.TakeDamage(damage)
		return true
	}
	if e, ok := w.Enemy[id]; ok {
		e.TakeDamage(damage)
		return e.AffectedByKnockback
	}
	return false
}

// pushAway sets the target's velocity away from source on each axis where
// their positions differ
func pushAway(w *ecs.World, id, source ecs.EntityID, k ecs.Vec2) {
	vel, ok := w.Velocity[id]
	if !ok {
		return
	}
	delta := w.Transform[id].Pos.Sub(w.Transform[source].Pos)
	if dx := ecs.Sign(delta.X); dx != 0 {
		vel.X = k.X * dx
	}
	if dy := ecs.Sign(delta.Y); dy != 0 {
		vel.Y = k.Y * dy
	}
	w.Velocity[id] = vel
}

// UpdateGoal freezes the player when it reaches the goal
func UpdateGoal(f *Frame) {
	w := f.World
	player, ok := w.PlayerData()
	if !ok {
		return
	}
	col, ok := w.Collision[w.PlayerID]
	if !ok {
		return
	}
	for _, id := range ecs.SortedIDs(w.Goal) {
		goal := w.Goal[id]
		if goal.NextLevel {
			continue
		}
		ct, ok := col.CollisionWith(id)
		if !ok || !ct.Touching() {
			continue
		}
		goal.NextLevel = true
		w.Goal[id] = goal
		player.InControl = false
		animationOf(w, w.PlayerID).Play("level_end", config.Seconds(f.Settings.Animations.LevelEndMS))
		f.Events.Emit(GoalReachedEvent{})
	}
}

// SyncHearts copies player and enemy health into their hearts containers
func SyncHearts(w *ecs.World) {
	for _, id := range ecs.SortedIDs(w.Hearts) {
		if p, ok := w.Player[id]; ok {
			w.Hearts[id] = ecs.HeartsContainer{Health: p.Health}
			continue
		}
		if e, ok := w.Enemy[id]; ok {
			w.Hearts[id] = ecs.HeartsContainer{Health: float64(e.Health)}
		}
	}
}
