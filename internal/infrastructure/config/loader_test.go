package config

import (
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/platformer/internal/domain/entity"
)

func TestLoader_LoadSettings(t *testing.T) {
	loader := NewLoader("../../../cmd/game/configs")

	cfg, err := loader.LoadSettings()
	require.NoError(t, err)

	assert.Equal(t, 10.0, cfg.Player.Health)
	assert.Equal(t, entity.TurnaroundResetVelocity, cfg.Player.QuickTurnaround)
	assert.Equal(t, entity.TurnaroundNo, cfg.Player.AirQuickTurnaround)
	require.NotNil(t, cfg.Player.MaxVelocity.X)
	assert.Nil(t, cfg.Player.MaxVelocity.Y, "omitted axis is uncapped")
	assert.Equal(t, 1000.0, cfg.Player.MaxFallSpeed)
	assert.Equal(t, 900.0, cfg.Enemies.MaxFallSpeed)
	assert.Equal(t, uint64(1500), cfg.Enemies.TurretData.ShotIntervalMS)
	assert.Equal(t, 16.0, cfg.LevelManager.TileSize.X)

	normal, ok := cfg.LevelManager.Campaign(entity.CampaignNormal)
	require.True(t, ok)
	assert.Equal(t, []string{"level_1.json", "level_2.json"}, normal.LevelNames)
	assert.Len(t, normal.SongNames, len(normal.LevelNames))

	for _, c := range []entity.CampaignType{entity.CampaignBonusA, entity.CampaignBonusB} {
		_, ok := cfg.LevelManager.Campaign(c)
		assert.True(t, ok, c.String())
	}
}

func TestLoader_LoadLevel(t *testing.T) {
	loader := NewLoader("../../../cmd/game/configs")

	lvl, err := loader.LoadLevel("levels", "level_1.json")
	require.NoError(t, err)

	assert.Equal(t, 960.0, lvl.Level.Size.W)
	require.NotEmpty(t, lvl.Objects)
	assert.Equal(t, ObjectPlayer, lvl.Objects[0].Type)
	assert.Equal(t, entity.Vector{X: 40, Y: 48}, lvl.Objects[0].Center())
	assert.NotEmpty(t, lvl.Tiles)
}

func TestLoader_LoadLevel_Errors(t *testing.T) {
	fsys := fstest.MapFS{
		"levels/no_player.json": {Data: []byte(`{"level":{"size":{"w":10,"h":10}},"objects":[],"tiles":[]}`)},
		"levels/no_enemy_type.json": {Data: []byte(`{"objects":[
			{"type":"Player","pos":{"x":0,"y":0},"size":{"w":1,"h":1}},
			{"type":"Enemy","pos":{"x":0,"y":0},"size":{"w":1,"h":1},"properties":{}}]}`)},
		"levels/no_item_type.json": {Data: []byte(`{"objects":[
			{"type":"Player","pos":{"x":0,"y":0},"size":{"w":1,"h":1}},
			{"type":"Item","pos":{"x":0,"y":0},"size":{"w":1,"h":1}}]}`)},
		"levels/unknown.json": {Data: []byte(`{"objects":[
			{"type":"Player","pos":{"x":0,"y":0},"size":{"w":1,"h":1}},
			{"type":"Dragon","pos":{"x":0,"y":0},"size":{"w":1,"h":1}}]}`)},
		"levels/half_animation.json": {Data: []byte(`{"objects":[
			{"type":"Player","pos":{"x":0,"y":0},"size":{"w":1,"h":1}}],
			"tiles":[{"id":1,"pos":{"x":0,"y":0},"ts":"a","properties":{"animation_sprite_ids":"1, 2"}}]}`)},
		"levels/broken.json": {Data: []byte(`{"objects":`)},
	}
	loader := NewFSLoader(fsys, "")

	tests := []struct {
		name    string
		file    string
		wantErr error
	}{
		{"missing player", "no_player.json", ErrMissingProperty},
		{"missing enemy_type", "no_enemy_type.json", ErrMissingProperty},
		{"missing item_type", "no_item_type.json", ErrMissingProperty},
		{"unknown object type", "unknown.json", ErrUnknownType},
		{"animation ids without delays", "half_animation.json", ErrInvalidProperty},
		{"malformed json", "broken.json", nil},
		{"missing file", "nope.json", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := loader.LoadLevel("levels", tt.file)
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestLoader_LoadSettings_Missing(t *testing.T) {
	loader := NewFSLoader(fstest.MapFS{}, "")

	_, err := loader.LoadSettings()
	assert.Error(t, err)
}

func TestProperties(t *testing.T) {
	props := Properties{
		"z":          0.7,
		"solid":      true,
		"speed_mult": "0.5, 1.5",
		"bad_vector": "1",
		"ids":        "1, 2,3",
		"components": []any{"Collision", "CheckCollision"},
		"enemy_type": "Charger",
	}

	assert.Equal(t, 0.7, props.FloatOr("z", 1))
	assert.Equal(t, 1.0, props.FloatOr("missing", 1))

	solid, ok := props.Bool("solid")
	assert.True(t, ok)
	assert.True(t, solid)

	v, ok, err := props.Vector("speed_mult")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, entity.Vector{X: 0.5, Y: 1.5}, v)

	_, ok, err = props.Vector("bad_vector")
	assert.True(t, ok)
	assert.ErrorIs(t, err, ErrInvalidProperty)

	ids, err := props.IntList("ids")
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, ids)

	assert.Equal(t, []string{"Collision", "CheckCollision"}, props.Strings("components"))
	assert.Nil(t, props.Strings("missing"))
}

func TestItemsSettings_NewItem(t *testing.T) {
	s := ItemsSettings{Costs: map[string]float64{"WallJump": 3}}

	item, err := s.NewItem(entity.ItemWallJump)
	require.NoError(t, err)
	assert.Equal(t, entity.Item{Type: entity.ItemWallJump, Cost: 3}, item)

	_, err = s.NewItem(entity.ItemDash)
	assert.ErrorIs(t, err, ErrMissingProperty)
}

func TestHarmfulSettings_KnockbackFor(t *testing.T) {
	s := HarmfulSettings{Knockback: map[string]entity.Vector{
		DefaultHarmfulKind: {X: 1, Y: 2},
		"spikes":           {X: 3, Y: 4},
	}}

	assert.Equal(t, entity.Vector{X: 3, Y: 4}, s.KnockbackFor("spikes"))
	assert.Equal(t, entity.Vector{X: 1, Y: 2}, s.KnockbackFor("lava"))
}

func TestDevMode(t *testing.T) {
	tests := []struct {
		value string
		want  bool
	}{
		{"", false},
		{"0", false},
		{"1", true},
		{"yes", true},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			t.Setenv("DEV", tt.value)
			assert.Equal(t, tt.want, DevMode())
		})
	}
}

func TestWatcher_ReportsConfigWrites(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, SettingsFile), []byte("death_floor: 1"), 0o644))

	select {
	case name := <-w.Events:
		assert.Equal(t, SettingsFile, filepath.Base(name))
	case <-time.After(2 * time.Second):
		t.Fatal("no event for settings write")
	}

	assert.NoError(t, w.Close())
	assert.NoError(t, w.Close(), "close is idempotent")
}
