package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/sirupsen/logrus"

	"github.com/younwookim/platformer/internal/application/game"
	"github.com/younwookim/platformer/internal/application/level"
	"github.com/younwookim/platformer/internal/application/scene/playing"
	"github.com/younwookim/platformer/internal/application/system"
	"github.com/younwookim/platformer/internal/domain/entity"
	"github.com/younwookim/platformer/internal/ecs"
	"github.com/younwookim/platformer/internal/infrastructure/config"
	"github.com/younwookim/platformer/internal/infrastructure/logger"
	"github.com/younwookim/platformer/internal/infrastructure/storage"
)

const (
	windowScale = 2
	tps         = 60
)

type options struct {
	configDir string
	saveDir   string
	songsDir  string
	campaign  string
	newGame   bool
	record    string
	replay    string
}

func main() {
	var opts options
	flag.StringVar(&opts.configDir, "config", "cmd/game/configs", "Directory holding settings.yaml and the levels")
	flag.StringVar(&opts.saveDir, "save", ".", "Directory savefiles are written to")
	flag.StringVar(&opts.songsDir, "songs", "assets/songs", "Directory holding the wav songs")
	flag.StringVar(&opts.campaign, "campaign", "normal", "Campaign to play (normal, bonus_a, bonus_b)")
	flag.BoolVar(&opts.newGame, "new", false, "Ignore the savefile and start a new game")
	flag.StringVar(&opts.record, "record", "", "Record input to file (e.g., -record replay.json)")
	flag.StringVar(&opts.replay, "replay", "", "Play a recording without a window and print the outcome")
	flag.Parse()

	logger.Init()
	if err := run(opts); err != nil {
		logger.Log.WithError(err).Fatal("Game exited with error")
	}
}

func run(opts options) error {
	loader := config.NewLoader(opts.configDir)
	settings, err := loader.LoadSettings()
	if err != nil {
		return err
	}

	if opts.replay != "" {
		return runReplay(loader, settings, opts.replay)
	}

	campaign, err := entity.ParseCampaignType(opts.campaign)
	if err != nil {
		return err
	}

	dev := config.DevMode()
	logger.Log.WithFields(logrus.Fields{
		"config":   opts.configDir,
		"campaign": campaign.String(),
		"dev":      dev,
	}).Info("Starting")

	pipeline := system.NewPipeline(ecs.NewWorld(), settings, ecs.SystemClock{})
	campaigns := level.NewCampaignManager(level.Env{
		Pipeline:  pipeline,
		Loader:    loader,
		Store:     storage.NewFileStore(opts.saveDir),
		Music:     newWavMusicPlayer(os.DirFS(opts.songsDir)),
		Obfuscate: !dev,
	})
	if err := campaigns.SelectCampaign(campaign, opts.newGame); err != nil {
		return err
	}

	var watcher *config.Watcher
	if dev {
		levelsDir := filepath.Join(opts.configDir, settings.LevelManager.LevelsDir)
		watcher, err = config.NewWatcher(opts.configDir, levelsDir)
		if err != nil {
			logger.Log.WithError(err).Warn("Hot reload disabled")
		} else {
			defer func() { _ = watcher.Close() }()
		}
	}

	scene, err := playing.New(playing.Options{
		Campaigns:  campaigns,
		Pipeline:   pipeline,
		Loader:     loader,
		Input:      system.NewInputSystem(dev),
		Watcher:    watcher,
		RecordPath: opts.record,
	})
	if err != nil {
		return err
	}

	screenW, screenH := int(settings.Camera.Size.X), int(settings.Camera.Size.Y)
	g := game.New(scene, screenW, screenH)
	defer g.Close()

	ebiten.SetWindowSize(screenW*windowScale, screenH*windowScale)
	ebiten.SetWindowTitle(fmt.Sprintf("Platformer (%s)", campaign))
	ebiten.SetTPS(tps)

	return ebiten.RunGame(g)
}
