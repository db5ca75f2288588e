package system

import (
	"math"
	"time"

	"github.com/younwookim/platformer/internal/domain/entity"
	"github.com/younwookim/platformer/internal/ecs"
	"github.com/younwookim/platformer/internal/infrastructure/config"
)

// UpdatePlayerControls applies input and contact rules to the player
func UpdatePlayerControls(f *Frame) {
	w := f.World
	id := w.PlayerID
	player, ok := w.PlayerData()
	if !ok {
		return
	}
	vel, ok := w.Velocity[id]
	if !ok {
		return
	}
	if _, noclip := w.Noclip[id]; noclip {
		updateNoclip(f, player, &vel)
		w.Velocity[id] = vel
		return
	}

	dv := decayOf(w, id)
	anim := animationOf(w, id)
	touch := touchingSides(w, id)

	handleWallCling(player, &vel, touch)
	handleGroundAndAir(player, &vel, dv, touch)

	if tr, ok := w.Transform[id]; ok && tr.Pos.Y <= player.DeathFloor {
		player.Health = 0
	}

	reached := goalReached(w)
	switch {
	case player.InControl && !reached:
		facing := w.Facing[id]
		grav, hasGrav := w.Gravity[id]

		handleMove(player, &vel, dv, anim, &facing, touch, f.Input.MoveX, f.DT)
		handleJump(player, &vel, &grav, touch, f.Input)
		if handleAttack(player, anim, &facing, f.Input, f.Settings.Animations) && player.Items.BulletShoot.CanShoot {
			if tr, ok := w.Transform[id]; ok {
				f.Bullets.Push(playerBullet(player, tr.Pos, facing))
			}
		}
		handleItemPurchase(f, player)

		w.Facing[id] = facing
		if hasGrav {
			w.Gravity[id] = grav
		}
	case !player.InControl && !reached && !player.IsDead() && !anim.PlayingOnce():
		player.InControl = true
		anim.Set("idle")
	}

	w.Velocity[id] = vel
}

func handleWallCling(player *entity.Player, vel *ecs.Velocity, touch sides) {
	if !touch.horizontally() {
		return
	}
	if (touch.left && vel.X < 0) || (touch.right && vel.X > 0) {
		vel.X = 0
	}
	if !touch.vertically() {
		if vel.Y < -player.SlideStrength {
			vel.Y = -player.SlideStrength
		}
		player.Items.ExtraJump.UsedExtraJumps = 0
	}
}

func handleGroundAndAir(player *entity.Player, vel *ecs.Velocity, dv *ecs.DecreaseVelocity, touch sides) {
	if (touch.bottom && vel.Y < 0) || (touch.top && vel.Y > 0) {
		vel.Y = 0
	}
	if !player.DecreaseXVelocityInAir && !touch.bottom {
		dv.DontDecreaseX()
	}
	if touch.bottom {
		player.Items.ExtraJump.UsedExtraJumps = 0
		player.Items.Dash.UsedDashes = 0
	}
}

func handleMove(player *entity.Player, vel *ecs.Velocity, dv *ecs.DecreaseVelocity, anim *ecs.Animation,
	facing *entity.Facing, touch sides, x, dt float64) {
	if x == 0 {
		anim.Set("idle")
		return
	}
	sign := ecs.Sign(x)

	if vel.X != 0 && sign != ecs.Sign(vel.X) {
		turnaround := player.AirQuickTurnaround
		if touch.bottom {
			turnaround = player.QuickTurnaround
		}
		vel.X = turnaround.Apply(vel.X)
	}

	accel := player.AirAcceleration.X
	if touch.bottom {
		accel = player.Acceleration.X
	}
	vel.IncreaseXWithMax(accel*dt*sign, player.MaxVelocity.X)
	dv.DontDecreaseXFor(sign)

	anim.Set("walking")
	if !player.IsAttacking {
		*facing = entity.FacingFromSign(sign, *facing)
	}
}

func handleJump(player *entity.Player, vel *ecs.Velocity, grav *ecs.Gravity, touch sides, in InputState) {
	if in.JumpPressed {
		canWallJump := player.Items.WallJump.CanWallJump && touch.horizontally()
		canJump := (touch.bottom || player.HasExtraJump()) && !canWallJump

		switch {
		case canJump:
			if vel.Y < 0 {
				vel.Y = 0
			}
			vel.Y += player.JumpStrength
			if !touch.bottom {
				player.Items.ExtraJump.UsedExtraJumps++
			}
			grav.Accel = player.JumpGravity
		case canWallJump:
			if vel.Y < 0 {
				vel.Y = 0
			}
			vel.Y += player.WallJumpStrength.Y
			if touch.left {
				vel.X += player.WallJumpStrength.X
			} else if touch.right {
				vel.X -= player.WallJumpStrength.X
			}
			grav.Accel = player.JumpGravity
		}
	} else if in.JumpReleased {
		if vel.Y > player.DecrJumpStrength {
			vel.Y = math.Max(vel.Y-player.DecrJumpStrength, player.MinJumpVelocity)
		}
		grav.Accel = player.Gravity
	}
}

// handleAttack starts a melee attack and reports whether one started
func handleAttack(player *entity.Player, anim *ecs.Animation, facing *entity.Facing, in InputState,
	anims config.AnimationSettings) bool {
	if player.IsAttacking {
		return false
	}
	switch {
	case in.AttackLeft:
		*facing = entity.FacingLeft
	case in.AttackRight:
		*facing = entity.FacingRight
	case in.Attack:
	default:
		return false
	}
	player.IsAttacking = true
	anim.Play("attack", config.Seconds(anims.AttackMS))
	return true
}

func playerBullet(player *entity.Player, pos ecs.Vec2, facing entity.Facing) BulletSpec {
	shoot := player.Items.BulletShoot
	spec := NewBulletSpec(
		ecs.OwnerPlayer,
		shoot.Damage,
		time.Duration(shoot.LifetimeMS)*time.Millisecond,
		pos,
		ecs.Velocity{X: shoot.Velocity.X * facing.Sign(), Y: shoot.Velocity.Y},
		ecs.SizeFromVector(shoot.Size),
	)
	spec.Facing = &facing
	return spec
}

func handleItemPurchase(f *Frame, player *entity.Player) {
	if !f.Input.BuyItem {
		return
	}
	w := f.World
	col, ok := w.Collision[w.PlayerID]
	if !ok {
		return
	}
	for _, itemID := range ecs.SortedIDs(w.Item) {
		if !w.Active(itemID) {
			continue
		}
		ct, ok := col.CollisionWith(itemID)
		if !ok || ct.State != ecs.ContactSteady {
			continue
		}
		item := w.Item[itemID]
		item.Apply(player, f.Settings.Items.Effects())
		w.DestroyEntity(itemID)
		player.TakeDamage(item.Cost)
		f.Events.Emit(ItemBoughtEvent{Type: item.Type})
		return
	}
}

// updateNoclip flies the player freely on both axes
func updateNoclip(f *Frame, player *entity.Player, vel *ecs.Velocity) {
	player.Items.ExtraJump.UsedExtraJumps = 0
	player.Items.Dash.UsedDashes = 0

	nc := f.Settings.Noclip
	dv := decayOf(f.World, f.World.PlayerID)
	if f.Input.MoveX != 0 {
		vel.IncreaseXWithMax(nc.Acceleration.X*f.DT*ecs.Sign(f.Input.MoveX), nc.MaxVelocity.X)
		dv.DontDecreaseXFor(f.Input.MoveX)
	}
	if f.Input.MoveY != 0 {
		vel.IncreaseYWithMax(nc.Acceleration.Y*f.DT*ecs.Sign(f.Input.MoveY), nc.MaxVelocity.Y)
		dv.DontDecreaseYFor(f.Input.MoveY)
	}
}

// ToggleNoclip switches the player between its normal solid and free flight.
// Flying disables gravity and makes the player invincible.
func ToggleNoclip(w *ecs.World) bool {
	id := w.PlayerID
	player, ok := w.PlayerData()
	if !ok {
		return false
	}
	if _, on := w.Noclip[id]; on {
		delete(w.Noclip, id)
		delete(w.Invincible, id)
		w.Solid[id] = ecs.SolidPlayer
		w.Gravity[id] = ecs.Gravity{Accel: player.Gravity, Enabled: true}
		return false
	}
	w.Noclip[id] = struct{}{}
	w.Invincible[id] = struct{}{}
	w.Solid[id] = ecs.SolidNoclip
	delete(w.Gravity, id)
	return true
}
