package level

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/younwookim/platformer/internal/domain/entity"
)

// ErrCorruptSavefile is returned when a savefile is neither obfuscated nor
// plain JSON
var ErrCorruptSavefile = errors.New("corrupt savefile")

// SavefileData is the persisted progress of one campaign
type SavefileData struct {
	Player *entity.Player `json:"player,omitempty"`
	Levels LevelsData     `json:"levels"`
	Stats  *entity.Stats  `json:"stats,omitempty"`
}

// LevelsData is the level progression part of a savefile
type LevelsData struct {
	Current    string              `json:"current"`
	Completed  []string            `json:"completed"`
	Times      map[string]TimeData `json:"times"`
	GlobalTime *TimeData           `json:"global_time,omitempty"`
}

// TimeData holds the best time over all runs and the best time of the
// first playthrough. Zero means no time recorded.
type TimeData struct {
	General time.Duration `json:"general"`
	First   time.Duration `json:"first"`
}

// Record returns the best times after a run. First only moves while
// firstLoop is set.
func (t TimeData) Record(run time.Duration, firstLoop bool) TimeData {
	if t.General == 0 || run < t.General {
		t.General = run
	}
	if firstLoop && (t.First == 0 || run < t.First) {
		t.First = run
	}
	return t
}

// EncodeSavefile serializes data, base64-encoding the JSON when obfuscate is set
func EncodeSavefile(data SavefileData, obfuscate bool) ([]byte, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize savefile: %w", err)
	}
	if !obfuscate {
		return raw, nil
	}
	out := make([]byte, base64.StdEncoding.EncodedLen(len(raw)))
	base64.StdEncoding.Encode(out, raw)
	return out, nil
}

// DecodeSavefile reads an obfuscated savefile, falling back to plain JSON
// for files written in development mode
func DecodeSavefile(raw []byte) (SavefileData, error) {
	raw = bytes.TrimSpace(raw)

	var data SavefileData
	decoded := make([]byte, base64.StdEncoding.DecodedLen(len(raw)))
	if n, err := base64.StdEncoding.Decode(decoded, raw); err == nil {
		if err := json.Unmarshal(decoded[:n], &data); err == nil {
			return data, nil
		}
	}

	data = SavefileData{}
	if err := json.Unmarshal(raw, &data); err != nil {
		return SavefileData{}, fmt.Errorf("%w: %v", ErrCorruptSavefile, err)
	}
	return data, nil
}
