package level

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/platformer/internal/domain/entity"
)

func sampleSavefile() SavefileData {
	stats := entity.NewStats()
	stats.AddDeath("level_1.json")
	stats.AddKill("level_1.json", entity.EnemyCharger)
	stats.AddWin()
	player := &entity.Player{Health: 7, InControl: true}

	return SavefileData{
		Player: player,
		Levels: LevelsData{
			Current:   "level_2.json",
			Completed: []string{"level_1.json"},
			Times: map[string]TimeData{
				"level_1.json": {General: 41 * time.Second, First: 55 * time.Second},
			},
			GlobalTime: &TimeData{General: 3 * time.Minute},
		},
		Stats: &stats,
	}
}

func TestSavefile_RoundTrip(t *testing.T) {
	for _, obfuscate := range []bool{true, false} {
		name := "plain"
		if obfuscate {
			name = "obfuscated"
		}
		t.Run(name, func(t *testing.T) {
			data := sampleSavefile()

			raw, err := EncodeSavefile(data, obfuscate)
			require.NoError(t, err)
			assert.Equal(t, !obfuscate, json.Valid(raw))

			got, err := DecodeSavefile(raw)
			require.NoError(t, err)
			assert.Equal(t, data, got)
			assert.Equal(t, uint32(1), got.Stats.Kills["level_1.json"][entity.EnemyCharger].Total)
		})
	}
}

func TestDecodeSavefile_PlainJSON(t *testing.T) {
	raw := []byte(`{"levels":{"current":"level_1.json","completed":[],"times":{}}}` + "\n")

	got, err := DecodeSavefile(raw)
	require.NoError(t, err)
	assert.Equal(t, "level_1.json", got.Levels.Current)
	assert.Nil(t, got.Player)
	assert.Nil(t, got.Stats)
	assert.Nil(t, got.Levels.GlobalTime)
}

func TestDecodeSavefile_Corrupt(t *testing.T) {
	for _, raw := range []string{"", "not a savefile", "e30=garbage", `{"levels":`} {
		t.Run(raw, func(t *testing.T) {
			_, err := DecodeSavefile([]byte(raw))
			assert.ErrorIs(t, err, ErrCorruptSavefile)
		})
	}
}

func TestTimeData_Record(t *testing.T) {
	tests := []struct {
		name      string
		start     TimeData
		run       time.Duration
		firstLoop bool
		want      TimeData
	}{
		{"first run", TimeData{}, 50 * time.Second, true, TimeData{General: 50 * time.Second, First: 50 * time.Second}},
		{"better first loop run", TimeData{General: 50 * time.Second, First: 50 * time.Second}, 40 * time.Second, true, TimeData{General: 40 * time.Second, First: 40 * time.Second}},
		{"worse run", TimeData{General: 50 * time.Second, First: 50 * time.Second}, 60 * time.Second, true, TimeData{General: 50 * time.Second, First: 50 * time.Second}},
		{"later loop keeps first", TimeData{General: 50 * time.Second, First: 50 * time.Second}, 30 * time.Second, false, TimeData{General: 30 * time.Second, First: 50 * time.Second}},
		{"later loop never sets first", TimeData{}, 30 * time.Second, false, TimeData{General: 30 * time.Second}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.start.Record(tt.run, tt.firstLoop))
		})
	}
}
