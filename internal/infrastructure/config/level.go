package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/younwookim/platformer/internal/domain/entity"
)

var (
	// ErrMissingProperty is returned when level data lacks a required field
	ErrMissingProperty = errors.New("missing required property")
	// ErrUnknownType is returned for an object or component type that doesn't exist
	ErrUnknownType = errors.New("unknown type")
	// ErrInvalidProperty is returned when a property has the wrong shape
	ErrInvalidProperty = errors.New("invalid property")
)

// Object types in level files
const (
	ObjectPlayer   = "Player"
	ObjectParallax = "Parallax"
	ObjectEnemy    = "Enemy"
	ObjectGoal     = "Goal"
	ObjectItem     = "Item"
)

// LevelData is the root of a level JSON file exported from the level editor
type LevelData struct {
	Level   LevelInfo    `json:"level"`
	Objects []ObjectData `json:"objects"`
	Tiles   []TileData   `json:"tiles"`
}

type LevelInfo struct {
	Size SizeData `json:"size"`
}

type SizeData struct {
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// Vector converts to a (w, h) vector
func (s SizeData) Vector() entity.Vector { return entity.Vector{X: s.W, Y: s.H} }

type PosData struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// ObjectData is a placed object. Pos is the top-left corner in Y-up space.
type ObjectData struct {
	Type       string     `json:"type"`
	Pos        PosData    `json:"pos"`
	Size       SizeData   `json:"size"`
	Properties Properties `json:"properties"`
}

// Center returns the object's box center
func (o ObjectData) Center() entity.Vector {
	return entity.Vector{X: o.Pos.X + o.Size.W*0.5, Y: o.Pos.Y - o.Size.H*0.5}
}

type TileData struct {
	ID         int        `json:"id"`
	Pos        PosData    `json:"pos"`
	Tileset    string     `json:"ts"`
	Properties Properties `json:"properties"`
}

// Center returns the tile's box center for a tile size
func (t TileData) Center(tileSize entity.Vector) entity.Vector {
	return entity.Vector{X: t.Pos.X + tileSize.X*0.5, Y: t.Pos.Y - tileSize.Y*0.5}
}

// Validate checks the required fields of a level
func (l *LevelData) Validate() error {
	players := 0
	for i, obj := range l.Objects {
		switch obj.Type {
		case ObjectPlayer:
			players++
		case ObjectEnemy:
			if _, ok := obj.Properties.String("enemy_type"); !ok {
				return fmt.Errorf("object %d: enemy_type: %w", i, ErrMissingProperty)
			}
		case ObjectItem:
			if _, ok := obj.Properties.String("item_type"); !ok {
				return fmt.Errorf("object %d: item_type: %w", i, ErrMissingProperty)
			}
		case ObjectParallax, ObjectGoal:
		default:
			return fmt.Errorf("object %d: %q: %w", i, obj.Type, ErrUnknownType)
		}
	}
	if players == 0 {
		return fmt.Errorf("player object: %w", ErrMissingProperty)
	}
	for i, tile := range l.Tiles {
		_, hasIDs := tile.Properties["animation_sprite_ids"]
		_, hasDelays := tile.Properties["animation_delays_ms"]
		if hasIDs != hasDelays {
			return fmt.Errorf("tile %d: animation_sprite_ids and animation_delays_ms go together: %w", i, ErrInvalidProperty)
		}
	}
	return nil
}

// Properties is the free-form property map of an object or tile
type Properties map[string]any

// Float returns a numeric property
func (p Properties) Float(key string) (float64, bool) {
	switch v := p[key].(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

// FloatOr returns a numeric property or def when absent
func (p Properties) FloatOr(key string, def float64) float64 {
	if v, ok := p.Float(key); ok {
		return v
	}
	return def
}

// String returns a string property
func (p Properties) String(key string) (string, bool) {
	v, ok := p[key].(string)
	return v, ok
}

// Bool returns a boolean property
func (p Properties) Bool(key string) (bool, bool) {
	v, ok := p[key].(bool)
	return v, ok
}

// Strings returns a list-of-strings property
func (p Properties) Strings(key string) []string {
	raw, ok := p[key].([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// Vector parses a "x, y" string property
func (p Properties) Vector(key string) (entity.Vector, bool, error) {
	s, ok := p.String(key)
	if !ok {
		return entity.Vector{}, false, nil
	}
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return entity.Vector{}, true, fmt.Errorf("%s %q: %w", key, s, ErrInvalidProperty)
	}
	x, errX := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	y, errY := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if errX != nil || errY != nil {
		return entity.Vector{}, true, fmt.Errorf("%s %q: %w", key, s, ErrInvalidProperty)
	}
	return entity.Vector{X: x, Y: y}, true, nil
}

// IntList parses a comma separated integer property like "1, 2, 3"
func (p Properties) IntList(key string) ([]int, error) {
	s, ok := p.String(key)
	if !ok {
		return nil, nil
	}
	var out []int
	for _, part := range strings.Split(s, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, fmt.Errorf("%s %q: %w", key, s, ErrInvalidProperty)
		}
		out = append(out, n)
	}
	return out, nil
}
