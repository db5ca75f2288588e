package system

import (
	"time"

	"github.com/younwookim/platformer/internal/domain/entity"
	"github.com/younwookim/platformer/internal/ecs"
)

// BulletSpec describes a bullet to be created by CreateBullets
type BulletSpec struct {
	Owner     ecs.BulletOwner
	Damage    float64
	Lifetime  time.Duration
	Pos       ecs.Vec2
	Velocity  ecs.Velocity
	Size      ecs.Size
	Knockback *ecs.Vec2
	Facing    *entity.Facing
}

// NewBulletSpec creates a spec with every required field set.
// Knockback and facing are optional and set on the returned value.
func NewBulletSpec(owner ecs.BulletOwner, damage float64, lifetime time.Duration, pos ecs.Vec2, vel ecs.Velocity, size ecs.Size) BulletSpec {
	return BulletSpec{
		Owner:    owner,
		Damage:   damage,
		Lifetime: lifetime,
		Pos:      pos,
		Velocity: vel,
		Size:     size,
	}
}

// BulletQueue is a FIFO of bullets waiting to be created.
// Systems push while iterating the world; CreateBullets drains once per frame.
type BulletQueue struct {
	pending []BulletSpec
}

// NewBulletQueue creates an empty queue
func NewBulletQueue() *BulletQueue {
	return &BulletQueue{pending: make([]BulletSpec, 0, 8)}
}

// Push enqueues a spec
func (q *BulletQueue) Push(spec BulletSpec) {
	q.pending = append(q.pending, spec)
}

// Len returns the number of pending specs
func (q *BulletQueue) Len() int {
	return len(q.pending)
}

// Drain returns every pending spec in push order and empties the queue
func (q *BulletQueue) Drain() []BulletSpec {
	out := q.pending
	q.pending = make([]BulletSpec, 0, cap(out))
	return out
}

// CreateBullets turns every queued spec into a bullet entity
func CreateBullets(f *Frame) []ecs.EntityID {
	w := f.World
	specs := f.Bullets.Drain()
	ids := make([]ecs.EntityID, 0, len(specs))
	for _, spec := range specs {
		id := w.NewEntity()
		w.Transform[id] = ecs.Transform{Pos: spec.Pos, Z: ecs.ZBullet}
		w.Velocity[id] = spec.Velocity
		w.Size[id] = spec.Size
		w.Collision[id] = ecs.NewCollision()
		w.CheckCollision[id] = struct{}{}
		w.Animation[id] = &ecs.Animation{Current: "idle"}
		if spec.Facing != nil {
			w.Facing[id] = *spec.Facing
		}
		w.Bullet[id] = &ecs.Bullet{
			Owner:     spec.Owner,
			Damage:    spec.Damage,
			Lifetime:  spec.Lifetime,
			Timer:     ecs.NewStartedTimer(f.Clock),
			Knockback: spec.Knockback,
			Facing:    spec.Facing,
		}
		ids = append(ids, id)
	}
	return ids
}

// UpdateBullets resolves bullet contacts and expiry.
// A bullet is destroyed on its first Enter contact with the opposing
// faction (dealing damage), with a Default solid, or when its lifetime ends.
func UpdateBullets(f *Frame) {
	w := f.World
	player, hasPlayer := w.PlayerData()

	for _, id := range ecs.SortedIDs(w.Bullet) {
		bullet := w.Bullet[id]
		col := w.Collision[id]
		destroy := false

		switch bullet.Owner {
		case ecs.OwnerEnemy:
			if hasPlayer {
				if _, ok := enterOn(col, w.PlayerID); ok {
					if _, invincible := w.Invincible[w.PlayerID]; !invincible {
						player.TakeDamage(bullet.Damage)
						if bullet.Knockback != nil && bullet.Facing != nil {
							if vel, ok := w.Velocity[w.PlayerID]; ok {
								vel.X = bullet.Knockback.X * bullet.Facing.Sign()
								vel.Y = bullet.Knockback.Y
								w.Velocity[w.PlayerID] = vel
							}
						}
					}
					destroy = true
				}
			}
		case ecs.OwnerPlayer:
			for _, enemyID := range ecs.SortedIDs(w.Enemy) {
				if !w.Active(enemyID) {
					continue
				}
				if _, ok := enterOn(col, enemyID); !ok {
					continue
				}
				if _, invincible := w.Invincible[enemyID]; !invincible {
					enemy := w.Enemy[enemyID]
					enemy.TakeDamage(bullet.Damage)
					if _, ok := w.Hearts[enemyID]; ok {
						w.Hearts[enemyID] = ecs.HeartsContainer{Health: float64(enemy.Health)}
					}
				}
				destroy = true
				break
			}
		}

		if !destroy && col != nil {
			for _, other := range col.ContactIDs() {
				if other == w.PlayerID {
					continue
				}
				if tag, ok := w.Solid[other]; !ok || tag != ecs.SolidDefault {
					continue
				}
				if _, ok := enterOn(col, other); ok {
					destroy = true
					break
				}
			}
		}

		if destroy || bullet.Expired() {
			w.DestroyEntity(id)
		}
	}
}
