package ecs

import (
	"time"

	"github.com/younwookim/platformer/internal/domain/entity"
)

// Default z-depths for entities built from level data
const (
	ZPlayer   = 0.5
	ZCamera   = 10.0
	ZTile     = 0.0
	ZParallax = -1.0
	ZEnemy    = 0.25
	ZGoal     = 0.1
	ZItem     = 0.6
	ZBullet   = 0.4
)

// Transform is an entity's position and draw depth.
// Pos is the box center for every entity except the camera (bottom-left).
type Transform struct {
	Pos Vec2
	Z   float64
}

// Velocity in world units per second
type Velocity struct {
	X, Y float64
}

// IncreaseXWithMax adds inc to X without pushing past max in the direction of inc.
// A velocity already beyond max is left untouched.
func (v *Velocity) IncreaseXWithMax(inc float64, max *float64) {
	v.X = increaseWithMax(v.X, inc, max)
}

// IncreaseYWithMax adds inc to Y without pushing past max in the direction of inc.
func (v *Velocity) IncreaseYWithMax(inc float64, max *float64) {
	v.Y = increaseWithMax(v.Y, inc, max)
}

func increaseWithMax(v, inc float64, max *float64) float64 {
	if max == nil || inc == 0 {
		return v + inc
	}
	limit := *max
	if limit < 0 {
		limit = -limit
	}
	if inc > 0 {
		if v >= limit {
			return v
		}
		if v+inc > limit {
			return limit
		}
		return v + inc
	}
	if v <= -limit {
		return v
	}
	if v+inc < -limit {
		return -limit
	}
	return v + inc
}

// Size is a bounding box size
type Size struct {
	W, H float64
}

// SizeFromVector converts a (w, h) vector
func SizeFromVector(v Vec2) Size { return Size{W: v.X, H: v.Y} }

// Gravity accelerates velocity every frame while enabled
type Gravity struct {
	Accel   Vec2
	Enabled bool
}

// DecreaseVelocity decays velocity toward zero.
// The suppression flags are reset at the start of every frame and set by
// systems that actively accelerate an axis during that frame.
type DecreaseVelocity struct {
	Rate Vec2

	dontX        bool
	dontXWhenPos bool
	dontXWhenNeg bool
	dontY        bool
	dontYWhenPos bool
	dontYWhenNeg bool
}

// DontDecreaseX suppresses X decay this frame
func (d *DecreaseVelocity) DontDecreaseX() { d.dontX = true }

// DontDecreaseXWhenPos suppresses X decay this frame while vx > 0
func (d *DecreaseVelocity) DontDecreaseXWhenPos() { d.dontXWhenPos = true }

// DontDecreaseXWhenNeg suppresses X decay this frame while vx < 0
func (d *DecreaseVelocity) DontDecreaseXWhenNeg() { d.dontXWhenNeg = true }

// DontDecreaseY suppresses Y decay this frame
func (d *DecreaseVelocity) DontDecreaseY() { d.dontY = true }

// DontDecreaseYWhenPos suppresses Y decay this frame while vy > 0
func (d *DecreaseVelocity) DontDecreaseYWhenPos() { d.dontYWhenPos = true }

// DontDecreaseYWhenNeg suppresses Y decay this frame while vy < 0
func (d *DecreaseVelocity) DontDecreaseYWhenNeg() { d.dontYWhenNeg = true }

// DontDecreaseXFor suppresses X decay for the sign of v
func (d *DecreaseVelocity) DontDecreaseXFor(v float64) {
	switch {
	case v > 0:
		d.DontDecreaseXWhenPos()
	case v < 0:
		d.DontDecreaseXWhenNeg()
	}
}

// DontDecreaseYFor suppresses Y decay for the sign of v
func (d *DecreaseVelocity) DontDecreaseYFor(v float64) {
	switch {
	case v > 0:
		d.DontDecreaseYWhenPos()
	case v < 0:
		d.DontDecreaseYWhenNeg()
	}
}

// ResetFlags clears every suppression flag
func (d *DecreaseVelocity) ResetFlags() {
	d.dontX, d.dontXWhenPos, d.dontXWhenNeg = false, false, false
	d.dontY, d.dontYWhenPos, d.dontYWhenNeg = false, false, false
}

func (d *DecreaseVelocity) shouldDecreaseX(vx float64) bool {
	if d.dontX {
		return false
	}
	return !((vx > 0 && d.dontXWhenPos) || (vx < 0 && d.dontXWhenNeg))
}

func (d *DecreaseVelocity) shouldDecreaseY(vy float64) bool {
	if d.dontY {
		return false
	}
	return !((vy > 0 && d.dontYWhenPos) || (vy < 0 && d.dontYWhenNeg))
}

// MaxVelocity caps the absolute velocity per axis (nil = uncapped)
type MaxVelocity = entity.OptVector

// Animation holds the animation state chosen by gameplay systems.
// Rendering reads Current (or Once while a one-shot is playing).
type Animation struct {
	Current  string
	Once     string
	onceLeft float64 // seconds
}

// Set selects a looping animation
func (a *Animation) Set(name string) { a.Current = name }

// Play starts a one-shot animation lasting duration seconds
func (a *Animation) Play(name string, duration float64) {
	a.Once = name
	a.onceLeft = duration
	if duration <= 0 {
		a.Once = ""
	}
}

// PlayingOnce reports whether a one-shot animation is still playing
func (a *Animation) PlayingOnce() bool { return a.Once != "" }

// Active returns the animation name to draw
func (a *Animation) Active() string {
	if a.Once != "" {
		return a.Once
	}
	return a.Current
}

// Tick advances one-shot playback
func (a *Animation) Tick(dt float64) {
	if a.Once == "" {
		return
	}
	a.onceLeft -= dt
	if a.onceLeft <= 0 {
		a.Once = ""
		a.onceLeft = 0
	}
}

// HeartsContainer mirrors an entity's health for display
type HeartsContainer struct {
	Health float64
}

// Goal marks the level exit
type Goal struct {
	NextLevel bool
}

// Harmful deals contact damage to Harmable entities.
// Kind selects the knockback strength from settings.
type Harmful struct {
	Damage float64
	Kind   string
}

// Loader loads Loadable entities around itself.
// Distance nil means "half of my size plus half of the target's size".
type Loader struct {
	Distance *Vec2
}

// PlayerAttack is the melee hitbox that follows its owner
type PlayerAttack struct {
	Owner  EntityID
	Offset Vec2
	Active bool
}

// BulletOwner is the faction that fired a bullet
type BulletOwner int

const (
	OwnerPlayer BulletOwner = iota
	OwnerEnemy
)

func (o BulletOwner) String() string {
	if o == OwnerEnemy {
		return "Enemy"
	}
	return "Player"
}

// Bullet is a projectile's gameplay data
type Bullet struct {
	Owner     BulletOwner
	Damage    float64
	Lifetime  time.Duration
	Timer     *Timer // started at creation
	Knockback *Vec2
	Facing    *entity.Facing
}

// Expired reports whether the bullet outlived its lifetime
func (b *Bullet) Expired() bool {
	return b.Timer != nil && b.Timer.Elapsed() >= b.Lifetime
}

// AIKind selects an enemy behavior
type AIKind int

const (
	AITracer AIKind = iota
	AICharger
	AITurret
)

func (k AIKind) String() string {
	switch k {
	case AITracer:
		return "Tracer"
	case AICharger:
		return "Charger"
	case AITurret:
		return "Turret"
	default:
		return "Unknown"
	}
}

// EnemyAI is the behavior variant with its state
type EnemyAI struct {
	Kind    AIKind
	Charger *ChargerData
	Turret  *TurretData
}

// ChargerData is the charger state
type ChargerData struct {
	IsMoving  bool
	Velocity  Vec2
	StopSides []Side
}

// StopsOn reports whether a contact on side ends the charge
func (c *ChargerData) StopsOn(side Side) bool {
	for _, s := range c.StopSides {
		if s == side {
			return true
		}
	}
	return false
}

// TurretData is the turret state
type TurretData struct {
	Facing         entity.Facing
	ShotInterval   time.Duration
	BulletVelocity Vec2
	BulletSize     Size
	BulletLifetime time.Duration
	ShotTimer      *Timer // restarted on every shot
}

// DashDirection is one of eight dash directions
type DashDirection int

const (
	DashUpLeft DashDirection = iota
	DashUpRight
	DashDownLeft
	DashDownRight
	DashUp
	DashDown
	DashLeft
	DashRight
)

// DashDirections is the order in which input is checked
var DashDirections = []DashDirection{
	DashUpLeft, DashUpRight, DashDownLeft, DashDownRight,
	DashUp, DashDown, DashLeft, DashRight,
}

var dashDirectionNames = [...]string{"UpLeft", "UpRight", "DownLeft", "DownRight", "Up", "Down", "Left", "Right"}

func (d DashDirection) String() string {
	if d < 0 || int(d) >= len(dashDirectionNames) {
		return "Unknown"
	}
	return dashDirectionNames[d]
}

// Vector returns the unit axes of the direction (Y-up)
func (d DashDirection) Vector() Vec2 {
	switch d {
	case DashUpLeft:
		return Vec2{X: -1, Y: 1}
	case DashUpRight:
		return Vec2{X: 1, Y: 1}
	case DashDownLeft:
		return Vec2{X: -1, Y: -1}
	case DashDownRight:
		return Vec2{X: 1, Y: -1}
	case DashUp:
		return Vec2{Y: 1}
	case DashDown:
		return Vec2{Y: -1}
	case DashLeft:
		return Vec2{X: -1}
	default:
		return Vec2{X: 1}
	}
}

// DashState is the player's dash bookkeeping.
// Times are milliseconds on the dash's own clock, which only advances while
// the simulation steps.
type DashState struct {
	Clock      float64
	Elapsed    float64 // duration of the current dash
	Direction  DashDirection
	LastAction *DashAction
}

// DashAction is the last directional press seen by the double-tap detector
type DashAction struct {
	Direction DashDirection
	At        float64
}

// Parallax is a background layer description
type Parallax struct {
	SpeedMult Vec2
	Offset    Vec2
	Image     string
	RepeatX   bool
	RepeatY   bool
	Scale     string
}

// Tile is a static level tile
type Tile struct {
	SpriteID           int
	Tileset            string
	AnimationSpriteIDs []int
	AnimationDelaysMS  []uint64
}

// Camera follows an entity and stays inside the level bounds.
// The camera's Transform is its bottom-left corner.
type Camera struct {
	Follow    EntityID
	LevelSize Vec2
	BaseSpeed Vec2
	Deadzone  Vec2
}

// TimerKind selects which timer a TimerUI displays
type TimerKind int

const (
	TimerLevel TimerKind = iota
	TimerGlobal
)

// TimerUI marks a best-time display
type TimerUI struct {
	Kind   TimerKind
	Prefix string
}
