package ecs

import (
	"sort"

	"github.com/younwookim/platformer/internal/domain/entity"
)

// EntityID is a unique identifier for an entity (never recycled)
type EntityID uint64

// World holds all component maps and the next entity ID
type World struct {
	nextID EntityID

	// Components
	Transform        map[EntityID]Transform
	Velocity         map[EntityID]Velocity
	Size             map[EntityID]Size
	Gravity          map[EntityID]Gravity
	DecreaseVelocity map[EntityID]*DecreaseVelocity
	MaxVelocity      map[EntityID]MaxVelocity
	Solid            map[EntityID]SolidTag
	Collision        map[EntityID]*Collision
	Facing           map[EntityID]entity.Facing
	Animation        map[EntityID]*Animation
	Player           map[EntityID]*entity.Player
	Enemy            map[EntityID]*entity.Enemy
	AI               map[EntityID]*EnemyAI
	Bullet           map[EntityID]*Bullet
	Item             map[EntityID]entity.Item
	Harmful          map[EntityID]Harmful
	Goal             map[EntityID]Goal
	Hearts           map[EntityID]HeartsContainer
	Dash             map[EntityID]*DashState
	PlayerAttack     map[EntityID]PlayerAttack
	Loader           map[EntityID]Loader
	Parallax         map[EntityID]Parallax
	Tile             map[EntityID]Tile
	TimerUI          map[EntityID]TimerUI
	Camera           map[EntityID]Camera

	// Tags
	CheckCollision        map[EntityID]struct{}
	Harmable              map[EntityID]struct{}
	Loadable              map[EntityID]struct{}
	Loaded                map[EntityID]struct{}
	Invincible            map[EntityID]struct{}
	NoAttack              map[EntityID]struct{}
	Noclip                map[EntityID]struct{}
	DontDeleteOnNextLevel map[EntityID]struct{}

	// Singleton references
	PlayerID EntityID
	CameraID EntityID
}

// NewWorld creates a new empty world
func NewWorld() *World {
	return &World{
		nextID:                1, // 0 is "nil"
		Transform:             make(map[EntityID]Transform),
		Velocity:              make(map[EntityID]Velocity),
		Size:                  make(map[EntityID]Size),
		Gravity:               make(map[EntityID]Gravity),
		DecreaseVelocity:      make(map[EntityID]*DecreaseVelocity),
		MaxVelocity:           make(map[EntityID]MaxVelocity),
		Solid:                 make(map[EntityID]SolidTag),
		Collision:             make(map[EntityID]*Collision),
		Facing:                make(map[EntityID]entity.Facing),
		Animation:             make(map[EntityID]*Animation),
		Player:                make(map[EntityID]*entity.Player),
		Enemy:                 make(map[EntityID]*entity.Enemy),
		AI:                    make(map[EntityID]*EnemyAI),
		Bullet:                make(map[EntityID]*Bullet),
		Item:                  make(map[EntityID]entity.Item),
		Harmful:               make(map[EntityID]Harmful),
		Goal:                  make(map[EntityID]Goal),
		Hearts:                make(map[EntityID]HeartsContainer),
		Dash:                  make(map[EntityID]*DashState),
		PlayerAttack:          make(map[EntityID]PlayerAttack),
		Loader:                make(map[EntityID]Loader),
		Parallax:              make(map[EntityID]Parallax),
		Tile:                  make(map[EntityID]Tile),
		TimerUI:               make(map[EntityID]TimerUI),
		Camera:                make(map[EntityID]Camera),
		CheckCollision:        make(map[EntityID]struct{}),
		Harmable:              make(map[EntityID]struct{}),
		Loadable:              make(map[EntityID]struct{}),
		Loaded:                make(map[EntityID]struct{}),
		Invincible:            make(map[EntityID]struct{}),
		NoAttack:              make(map[EntityID]struct{}),
		Noclip:                make(map[EntityID]struct{}),
		DontDeleteOnNextLevel: make(map[EntityID]struct{}),
	}
}

// NewEntity returns a new unique entity ID
func (w *World) NewEntity() EntityID {
	id := w.nextID
	w.nextID++
	return id
}

// DestroyEntity removes all components for an entity
func (w *World) DestroyEntity(id EntityID) {
	delete(w.Transform, id)
	delete(w.Velocity, id)
	delete(w.Size, id)
	delete(w.Gravity, id)
	delete(w.DecreaseVelocity, id)
	delete(w.MaxVelocity, id)
	delete(w.Solid, id)
	delete(w.Collision, id)
	delete(w.Facing, id)
	delete(w.Animation, id)
	delete(w.Player, id)
	delete(w.Enemy, id)
	delete(w.AI, id)
	delete(w.Bullet, id)
	delete(w.Item, id)
	delete(w.Harmful, id)
	delete(w.Goal, id)
	delete(w.Hearts, id)
	delete(w.Dash, id)
	delete(w.PlayerAttack, id)
	delete(w.Loader, id)
	delete(w.Parallax, id)
	delete(w.Tile, id)
	delete(w.TimerUI, id)
	delete(w.Camera, id)
	delete(w.CheckCollision, id)
	delete(w.Harmable, id)
	delete(w.Loadable, id)
	delete(w.Loaded, id)
	delete(w.Invincible, id)
	delete(w.NoAttack, id)
	delete(w.Noclip, id)
	delete(w.DontDeleteOnNextLevel, id)

	if w.PlayerID == id {
		w.PlayerID = 0
	}
	if w.CameraID == id {
		w.CameraID = 0
	}
}

// DestroyLevelEntities removes every entity without DontDeleteOnNextLevel
// and returns how many were removed
func (w *World) DestroyLevelEntities() int {
	seen := make(map[EntityID]struct{})
	for _, id := range w.Entities() {
		if _, keep := w.DontDeleteOnNextLevel[id]; keep {
			continue
		}
		seen[id] = struct{}{}
	}
	for id := range seen {
		w.DestroyEntity(id)
	}
	return len(seen)
}

// Exists checks if an entity has a Transform component
func (w *World) Exists(id EntityID) bool {
	_, ok := w.Transform[id]
	return ok
}

// Active reports whether an entity takes part in simulation.
// Loadable entities are active only while Loaded.
func (w *World) Active(id EntityID) bool {
	if _, loadable := w.Loadable[id]; !loadable {
		return true
	}
	_, loaded := w.Loaded[id]
	return loaded
}

// Entities returns every entity ID holding a Transform, Player, Enemy or
// TimerUI component, in ascending order
func (w *World) Entities() []EntityID {
	set := make(map[EntityID]struct{}, len(w.Transform))
	for id := range w.Transform {
		set[id] = struct{}{}
	}
	for id := range w.Player {
		set[id] = struct{}{}
	}
	for id := range w.Enemy {
		set[id] = struct{}{}
	}
	for id := range w.TimerUI {
		set[id] = struct{}{}
	}
	return SortedIDs(set)
}

// SortedIDs returns the keys of a component map in ascending order.
// Systems iterate in ID order so frames are deterministic.
func SortedIDs[T any](m map[EntityID]T) []EntityID {
	ids := make([]EntityID, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Bounds returns the entity's box in world space.
// The camera is anchored bottom-left, everything else at its center.
func (w *World) Bounds(id EntityID) (Rect, bool) {
	tr, ok := w.Transform[id]
	if !ok {
		return Rect{}, false
	}
	size, ok := w.Size[id]
	if !ok {
		return Rect{}, false
	}
	if id == w.CameraID && id != 0 {
		return Rect{X: tr.Pos.X, Y: tr.Pos.Y, W: size.W, H: size.H}, true
	}
	return CenteredRect(tr.Pos, size), true
}

// PlayerPosition returns the player's position
func (w *World) PlayerPosition() (Vec2, bool) {
	if w.PlayerID == 0 {
		return Vec2{}, false
	}
	tr, ok := w.Transform[w.PlayerID]
	return tr.Pos, ok
}

// PlayerData returns the player component
func (w *World) PlayerData() (*entity.Player, bool) {
	if w.PlayerID == 0 {
		return nil, false
	}
	p, ok := w.Player[w.PlayerID]
	return p, ok
}

// CountEnemies returns the number of enemies
func (w *World) CountEnemies() int {
	return len(w.Enemy)
}
