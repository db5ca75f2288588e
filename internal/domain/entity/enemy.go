package entity

import "math"

// TriggerDeadZone is the per-axis distance inside which enemies stop
// adjusting movement toward the player
var TriggerDeadZone = Vector{X: 16, Y: 16}

// Enemy holds enemy stats, created per level load from level data + settings
type Enemy struct {
	Type                EnemyType
	Health              uint32
	Damage              float64
	Reward              float64
	Knockback           Vector
	TriggerDistance     Vector
	Acceleration        Vector
	MaxVelocity         OptVector
	AffectedByKnockback bool
	DeathFloor          float64
}

// TakeDamage subtracts damage, saturating at zero
func (e *Enemy) TakeDamage(damage float64) {
	if damage <= 0 {
		return
	}
	d := math.Ceil(damage)
	if d >= float64(e.Health) {
		e.Health = 0
		return
	}
	e.Health -= uint32(d)
}

// IsDead returns true once health reached zero
func (e *Enemy) IsDead() bool {
	return e.Health == 0
}

// InTriggerDistance reports whether the distance (enemy - player) is within
// the rectangular trigger range
func (e *Enemy) InTriggerDistance(distance Vector) bool {
	return math.Abs(distance.X) <= math.Abs(e.TriggerDistance.X) &&
		math.Abs(distance.Y) <= math.Abs(e.TriggerDistance.Y)
}

// PursuitIncrease returns the velocity increase toward the player for one frame.
// Axes inside the dead-zone stay zero.
func (e *Enemy) PursuitIncrease(distance Vector, dt float64) Vector {
	var inc Vector
	if math.Abs(distance.X) > TriggerDeadZone.X {
		inc.X = e.Acceleration.X * -sign(distance.X) * dt
	}
	if math.Abs(distance.Y) > TriggerDeadZone.Y {
		inc.Y = e.Acceleration.Y * -sign(distance.Y) * dt
	}
	return inc
}

func sign(v float64) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}
