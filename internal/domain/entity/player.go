package entity

// Vector is a 2D value in world units (Y-up)
type Vector struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// Add returns v + o
func (v Vector) Add(o Vector) Vector { return Vector{X: v.X + o.X, Y: v.Y + o.Y} }

// Sub returns v - o
func (v Vector) Sub(o Vector) Vector { return Vector{X: v.X - o.X, Y: v.Y - o.Y} }

// Scale returns v * f
func (v Vector) Scale(f float64) Vector { return Vector{X: v.X * f, Y: v.Y * f} }

// OptVector is a per-axis optional value (e.g. a velocity cap)
type OptVector struct {
	X *float64 `json:"x,omitempty" yaml:"x,omitempty"`
	Y *float64 `json:"y,omitempty" yaml:"y,omitempty"`
}

// Clone returns a deep copy
func (o OptVector) Clone() OptVector {
	var c OptVector
	if o.X != nil {
		x := *o.X
		c.X = &x
	}
	if o.Y != nil {
		y := *o.Y
		c.Y = &y
	}
	return c
}

// Player holds the player's tuning and state.
// The whole struct is the checkpoint unit saved and restored by the level manager.
type Player struct {
	Acceleration           Vector          `json:"acceleration"`
	AirAcceleration        Vector          `json:"air_acceleration"`
	JumpStrength           float64         `json:"jump_strength"`
	WallJumpStrength       Vector          `json:"wall_jump_strength"`
	DecrJumpStrength       float64         `json:"decr_jump_strength"`
	MinJumpVelocity        float64         `json:"min_jump_velocity"`
	MaxVelocity            OptVector       `json:"max_velocity"`
	Gravity                Vector          `json:"gravity"`
	JumpGravity            Vector          `json:"jump_gravity"`
	SlideStrength          float64         `json:"slide_strength"`
	QuickTurnaround        QuickTurnaround `json:"quick_turnaround"`
	AirQuickTurnaround     QuickTurnaround `json:"air_quick_turnaround"`
	DecreaseXVelocityInAir bool            `json:"decrease_x_velocity_in_air"`
	Health                 float64         `json:"health"`
	Damage                 float64         `json:"damage"`
	DeathFloor             float64         `json:"death_floor"`
	IsAttacking            bool            `json:"is_attacking"`
	InControl              bool            `json:"in_control"`
	Items                  ItemsData       `json:"items_data"`
}

// Clone returns a deep copy suitable for checkpoints
func (p *Player) Clone() *Player {
	c := *p
	c.MaxVelocity = p.MaxVelocity.Clone()
	return &c
}

// TakeDamage reduces health, clamped at zero
func (p *Player) TakeDamage(damage float64) {
	p.Health -= damage
	if p.Health < 0 {
		p.Health = 0
	}
}

// AddHealth increases health (rewards, respawn bonus)
func (p *Player) AddHealth(amount float64) {
	p.Health += amount
}

// IsDead returns true if health <= 0
func (p *Player) IsDead() bool {
	return p.Health <= 0
}

// HasExtraJump reports whether an air jump charge remains
func (p *Player) HasExtraJump() bool {
	return p.Items.ExtraJump.UsedExtraJumps < p.Items.ExtraJump.ExtraJumps
}
