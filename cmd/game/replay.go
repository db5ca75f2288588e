package main

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/younwookim/platformer/internal/application/level"
	"github.com/younwookim/platformer/internal/application/replay"
	"github.com/younwookim/platformer/internal/application/system"
	"github.com/younwookim/platformer/internal/domain/entity"
	"github.com/younwookim/platformer/internal/ecs"
	"github.com/younwookim/platformer/internal/infrastructure/config"
	"github.com/younwookim/platformer/internal/infrastructure/logger"
	"github.com/younwookim/platformer/internal/infrastructure/storage"
)

const replayStep = time.Second / tps

// replayResult is the outcome of a headless replay
type replayResult struct {
	Frames    int
	Won       bool
	Level     string
	Health    float64
	Deaths    uint32
	Elapsed   time.Duration
	VYValues  []float64
	Positions []ecs.Vec2
}

// runReplay plays a recording headlessly and logs the outcome
func runReplay(loader *config.Loader, settings *config.Settings, path string) error {
	data, err := replay.LoadReplay(path)
	if err != nil {
		return err
	}
	campaign, err := entity.ParseCampaignType(data.Campaign)
	if err != nil {
		return fmt.Errorf("replay %s: %w", path, err)
	}

	res, err := simulateReplay(loader, settings, campaign, replay.NewReplayer(*data))
	if err != nil {
		return err
	}
	logger.Get().WithFields(logrus.Fields{
		"replay":  path,
		"frames":  res.Frames,
		"won":     res.Won,
		"level":   res.Level,
		"health":  res.Health,
		"deaths":  res.Deaths,
		"elapsed": ecs.FormatDuration(res.Elapsed),
	}).Info("Replay finished")
	return nil
}

// simulateReplay runs a fresh game of campaign on a manual clock, feeding
// one recorded frame per step until the recording ends or the campaign is won
func simulateReplay(loader *config.Loader, settings *config.Settings, campaign entity.CampaignType, replayer *replay.Replayer) (replayResult, error) {
	clock := ecs.NewManualClock(time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC))
	pipeline := system.NewPipeline(ecs.NewWorld(), settings, clock)
	campaigns := level.NewCampaignManager(level.Env{
		Pipeline: pipeline,
		Loader:   loader,
		Store:    storage.NewMemoryStore(),
	})
	if err := campaigns.SelectCampaign(campaign, true); err != nil {
		return replayResult{}, err
	}
	start := clock.Now()

	result := replayResult{
		VYValues:  make([]float64, 0, replayer.TotalFrames()),
		Positions: make([]ecs.Vec2, 0, replayer.TotalFrames()),
	}
	paused := false
	for {
		input, ok := replayer.GetInput()
		if !ok {
			break
		}
		if input.TogglePause {
			paused = !paused
			if err := campaigns.SetPaused(paused); err != nil {
				return result, err
			}
		}

		clock.Advance(replayStep)
		won, err := campaigns.UpdateLevel(input, replayStep.Seconds())
		if err != nil {
			return result, fmt.Errorf("frame %d: %w", replayer.CurrentFrame(), err)
		}
		result.Frames = replayer.CurrentFrame()

		w := pipeline.World()
		result.VYValues = append(result.VYValues, w.Velocity[w.PlayerID].Y)
		result.Positions = append(result.Positions, w.Transform[w.PlayerID].Pos)
		if won {
			result.Won = true
			break
		}
	}

	m, err := campaigns.Active()
	if err != nil {
		return result, err
	}
	result.Level = m.LevelName()
	result.Elapsed = clock.Now().Sub(start)
	for _, c := range m.Stats().Deaths {
		result.Deaths += c.Total
	}
	if player, ok := pipeline.World().PlayerData(); ok {
		result.Health = player.Health
	}
	return result, nil
}
