package system

import (
	"fmt"
	"time"

	"github.com/younwookim/platformer/internal/domain/entity"
	"github.com/younwookim/platformer/internal/ecs"
	"github.com/younwookim/platformer/internal/infrastructure/config"
)

const propertyZ = "z"

// LevelBuild describes a level built into the world
type LevelBuild struct {
	Size     ecs.Vec2
	PlayerID ecs.EntityID
	CameraID ecs.EntityID
	Enemies  int
	Items    int
	Tiles    int
}

// BuildLevel creates every entity of a level. checkpoint, when non-nil, is
// the player state to continue with; otherwise a fresh player is built from
// settings. On error the entities created so far are removed again.
func BuildLevel(w *ecs.World, lvl *config.LevelData, s *config.Settings, clock ecs.Clock, checkpoint *entity.Player) (LevelBuild, error) {
	b := &levelBuilder{world: w, settings: s, clock: clock}
	build, err := b.build(lvl, checkpoint)
	if err != nil {
		for _, id := range b.created {
			w.DestroyEntity(id)
		}
		return LevelBuild{}, err
	}
	return build, nil
}

type levelBuilder struct {
	world    *ecs.World
	settings *config.Settings
	clock    ecs.Clock
	created  []ecs.EntityID
}

func (b *levelBuilder) newEntity() ecs.EntityID {
	id := b.world.NewEntity()
	b.created = append(b.created, id)
	return id
}

func (b *levelBuilder) build(lvl *config.LevelData, checkpoint *entity.Player) (LevelBuild, error) {
	out := LevelBuild{Size: lvl.Level.Size.Vector()}

	for i, obj := range lvl.Objects {
		var err error
		switch obj.Type {
		case config.ObjectPlayer:
			out.PlayerID = b.buildPlayer(obj, checkpoint)
		case config.ObjectParallax:
			err = b.buildParallax(obj)
		case config.ObjectEnemy:
			err = b.buildEnemy(obj)
			out.Enemies++
		case config.ObjectGoal:
			b.buildGoal(obj)
		case config.ObjectItem:
			err = b.buildItem(obj)
			out.Items++
		default:
			err = fmt.Errorf("%q: %w", obj.Type, config.ErrUnknownType)
		}
		if err != nil {
			return LevelBuild{}, fmt.Errorf("object %d: %w", i, err)
		}
	}
	if out.PlayerID == 0 {
		return LevelBuild{}, fmt.Errorf("player object: %w", config.ErrMissingProperty)
	}

	for i, tile := range lvl.Tiles {
		if err := b.buildTile(tile); err != nil {
			return LevelBuild{}, fmt.Errorf("tile %d: %w", i, err)
		}
		out.Tiles++
	}

	out.CameraID = b.buildCamera(out.PlayerID, out.Size)
	return out, nil
}

func (b *levelBuilder) place(id ecs.EntityID, pos ecs.Vec2, size config.SizeData, props config.Properties, z float64) {
	b.world.Transform[id] = ecs.Transform{Pos: pos, Z: props.FloatOr(propertyZ, z)}
	b.world.Size[id] = ecs.Size{W: size.W, H: size.H}
}

func (b *levelBuilder) buildPlayer(obj config.ObjectData, checkpoint *entity.Player) ecs.EntityID {
	w := b.world
	var player *entity.Player
	if checkpoint != nil {
		player = checkpoint.Clone()
	} else {
		player = b.settings.Player.NewPlayer()
	}
	player.InControl = true
	player.IsAttacking = false
	player.Items.Dash.IsDashing = false

	id := b.newEntity()
	b.place(id, obj.Center(), obj.Size, obj.Properties, ecs.ZPlayer)
	w.Player[id] = player
	w.Velocity[id] = ecs.Velocity{}
	w.DecreaseVelocity[id] = &ecs.DecreaseVelocity{Rate: b.settings.Player.DecrVelocity}
	w.Gravity[id] = ecs.Gravity{Accel: player.Gravity, Enabled: true}
	b.capFall(id, b.settings.Player.MaxFallSpeed)
	w.Solid[id] = ecs.SolidPlayer
	w.Collision[id] = ecs.NewCollision()
	w.CheckCollision[id] = struct{}{}
	w.Harmable[id] = struct{}{}
	w.Facing[id] = entity.FacingRight
	w.Animation[id] = &ecs.Animation{Current: "idle"}
	w.Hearts[id] = ecs.HeartsContainer{Health: player.Health}
	w.Dash[id] = &ecs.DashState{}
	w.PlayerID = id

	attack := b.newEntity()
	w.Transform[attack] = ecs.Transform{Pos: attackParkPos, Z: ecs.ZPlayer}
	w.Size[attack] = ecs.Size{W: obj.Size.W, H: obj.Size.H}
	w.PlayerAttack[attack] = ecs.PlayerAttack{Owner: id}
	w.Collision[attack] = ecs.NewCollision()
	w.CheckCollision[attack] = struct{}{}
	return id
}

func (b *levelBuilder) buildParallax(obj config.ObjectData) error {
	props := obj.Properties
	p := ecs.Parallax{SpeedMult: ecs.Vec2{X: 1, Y: 1}}

	if v, ok, err := props.Vector("speed_mult"); err != nil {
		return err
	} else if ok {
		p.SpeedMult = v
	}
	p.SpeedMult.X = props.FloatOr("speed_mult_x", p.SpeedMult.X)
	p.SpeedMult.Y = props.FloatOr("speed_mult_y", p.SpeedMult.Y)

	if v, ok, err := props.Vector("offset"); err != nil {
		return err
	} else if ok {
		p.Offset = v
	}
	p.Offset.X = props.FloatOr("offset_x", p.Offset.X)
	p.Offset.Y = props.FloatOr("offset_y", p.Offset.Y)

	p.Image, _ = props.String("image")
	p.RepeatX, _ = props.Bool("repeat_x")
	p.RepeatY, _ = props.Bool("repeat_y")
	if scale, ok := props.String("scale"); ok {
		switch scale {
		case "contain", "cover":
			p.Scale = scale
		default:
			return fmt.Errorf("scale %q: %w", scale, config.ErrInvalidProperty)
		}
	}

	id := b.newEntity()
	b.place(id, obj.Center(), obj.Size, props, ecs.ZParallax)
	b.world.Parallax[id] = p
	return nil
}

func (b *levelBuilder) buildEnemy(obj config.ObjectData) error {
	w := b.world
	name, _ := obj.Properties.String("enemy_type")
	enemyType, err := entity.ParseEnemyType(name)
	if err != nil {
		return err
	}
	es := b.settings.Enemies.For(enemyType)
	enemy := es.NewEnemy(enemyType, b.settings.DeathFloor)

	ai := &ecs.EnemyAI{Kind: ecs.AITracer}
	facing := entity.FacingLeft
	switch enemyType {
	case entity.EnemyCharger:
		ai = &ecs.EnemyAI{Kind: ecs.AICharger, Charger: &ecs.ChargerData{
			StopSides: []ecs.Side{ecs.SideLeft, ecs.SideRight},
		}}
	case entity.EnemyTurret:
		facing = entity.FacingRight
		if s, ok := obj.Properties.String("facing"); ok {
			if facing, err = entity.ParseFacing(s); err != nil {
				return fmt.Errorf("facing: %w", config.ErrInvalidProperty)
			}
		}
		td := b.settings.Enemies.TurretData
		ai = &ecs.EnemyAI{Kind: ecs.AITurret, Turret: &ecs.TurretData{
			Facing:         facing,
			ShotInterval:   time.Duration(td.ShotIntervalMS) * time.Millisecond,
			BulletVelocity: td.BulletVelocity,
			BulletSize:     ecs.SizeFromVector(td.BulletSize),
			BulletLifetime: time.Duration(td.BulletLifetimeMS) * time.Millisecond,
			ShotTimer:      ecs.NewStartedTimer(b.clock),
		}}
	}

	id := b.newEntity()
	b.place(id, obj.Center(), obj.Size, obj.Properties, ecs.ZEnemy)
	w.Enemy[id] = enemy
	w.AI[id] = ai
	w.Facing[id] = facing
	w.Animation[id] = &ecs.Animation{Current: "idle"}
	w.Hearts[id] = ecs.HeartsContainer{Health: float64(enemy.Health)}

	if enemyType == entity.EnemyTurret {
		w.NoAttack[id] = struct{}{}
		w.Invincible[id] = struct{}{}
		return nil
	}
	w.Harmable[id] = struct{}{}
	w.Velocity[id] = ecs.Velocity{}
	w.DecreaseVelocity[id] = &ecs.DecreaseVelocity{Rate: es.DecrVelocity}
	w.Collision[id] = ecs.NewCollision()
	w.CheckCollision[id] = struct{}{}
	w.Solid[id] = ecs.SolidEnemy
	w.Loadable[id] = struct{}{}
	if enemyType != entity.EnemyFlying {
		w.Gravity[id] = ecs.Gravity{Accel: b.settings.Enemies.Gravity, Enabled: true}
		b.capFall(id, b.settings.Enemies.MaxFallSpeed)
	}
	return nil
}

// capFall bounds the vertical speed of an entity under gravity; zero leaves it
// uncapped
func (b *levelBuilder) capFall(id ecs.EntityID, speed float64) {
	if speed <= 0 {
		return
	}
	b.world.MaxVelocity[id] = ecs.MaxVelocity{Y: &speed}
}

func (b *levelBuilder) buildGoal(obj config.ObjectData) {
	id := b.newEntity()
	b.place(id, obj.Center(), obj.Size, obj.Properties, ecs.ZGoal)
	b.world.Goal[id] = ecs.Goal{}
	b.world.Collision[id] = ecs.NewCollision()
}

func (b *levelBuilder) buildItem(obj config.ObjectData) error {
	name, _ := obj.Properties.String("item_type")
	itemType, err := entity.ParseItemType(name)
	if err != nil {
		return err
	}
	item, err := b.settings.Items.NewItem(itemType)
	if err != nil {
		return err
	}

	id := b.newEntity()
	b.place(id, obj.Center(), obj.Size, obj.Properties, ecs.ZItem)
	b.world.Item[id] = item
	b.world.Hearts[id] = ecs.HeartsContainer{Health: item.Cost}
	b.world.Collision[id] = ecs.NewCollision()
	b.world.Loadable[id] = struct{}{}
	return nil
}

func (b *levelBuilder) buildTile(tile config.TileData) error {
	w := b.world
	props := tile.Properties
	tileSize := b.settings.LevelManager.TileSize

	t := ecs.Tile{SpriteID: tile.ID, Tileset: tile.Tileset}
	ids, err := props.IntList("animation_sprite_ids")
	if err != nil {
		return err
	}
	delays, err := props.IntList("animation_delays_ms")
	if err != nil {
		return err
	}
	if len(ids) != len(delays) {
		return fmt.Errorf("animation frames and delays differ in length: %w", config.ErrInvalidProperty)
	}
	t.AnimationSpriteIDs = ids
	for _, d := range delays {
		t.AnimationDelaysMS = append(t.AnimationDelaysMS, uint64(d))
	}

	id := b.newEntity()
	w.Transform[id] = ecs.Transform{Pos: tile.Center(tileSize), Z: props.FloatOr(propertyZ, ecs.ZTile)}
	w.Size[id] = ecs.SizeFromVector(tileSize)
	w.Tile[id] = t

	for _, name := range props.Strings("components") {
		if err := addComponentByName(w, id, name); err != nil {
			return err
		}
	}
	if always, _ := props.Bool("always_loaded"); !always {
		w.Loadable[id] = struct{}{}
	}
	if solid, _ := props.Bool("solid"); solid {
		w.Solid[id] = ecs.SolidDefault
		w.Collision[id] = ecs.NewCollision()
	}
	if damage, ok := props.Float("harmful"); ok {
		kind, ok := props.String("harmful_kind")
		if !ok {
			kind = config.DefaultHarmfulKind
		}
		w.Collision[id] = ecs.NewCollision()
		w.Harmful[id] = ecs.Harmful{Damage: damage, Kind: kind}
	}
	return nil
}

// addComponentByName attaches a data-less component named in level data
func addComponentByName(w *ecs.World, id ecs.EntityID, name string) error {
	switch name {
	case "Collision":
		w.Collision[id] = ecs.NewCollision()
	case "CheckCollision":
		w.CheckCollision[id] = struct{}{}
	case "Solid":
		w.Solid[id] = ecs.SolidDefault
	case "Loadable":
		w.Loadable[id] = struct{}{}
	case "Harmable":
		w.Harmable[id] = struct{}{}
	case "Invincible":
		w.Invincible[id] = struct{}{}
	case "Velocity":
		w.Velocity[id] = ecs.Velocity{}
	default:
		return fmt.Errorf("component %q: %w", name, config.ErrUnknownType)
	}
	return nil
}

func (b *levelBuilder) buildCamera(playerID ecs.EntityID, levelSize ecs.Vec2) ecs.EntityID {
	w := b.world
	cs := b.settings.Camera
	size := ecs.SizeFromVector(cs.Size)
	target := w.Transform[playerID].Pos

	id := b.newEntity()
	pos := ConfineCamera(ecs.Vec2{X: target.X - size.W*0.5, Y: target.Y - size.H*0.5}, size, levelSize)
	w.Transform[id] = ecs.Transform{Pos: pos, Z: ecs.ZCamera}
	w.Size[id] = size
	w.Camera[id] = ecs.Camera{
		Follow:    playerID,
		LevelSize: levelSize,
		BaseSpeed: cs.BaseSpeed,
		Deadzone:  cs.Deadzone,
	}
	w.Loader[id] = ecs.Loader{}
	w.CameraID = id
	return id
}
