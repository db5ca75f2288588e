// Package level drives level progression: loading levels into the world,
// detecting goal and death, checkpoints, best times and savefiles.
package level

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/younwookim/platformer/internal/application/state"
	"github.com/younwookim/platformer/internal/application/system"
	"github.com/younwookim/platformer/internal/domain/entity"
	"github.com/younwookim/platformer/internal/ecs"
	"github.com/younwookim/platformer/internal/infrastructure/config"
	"github.com/younwookim/platformer/internal/infrastructure/logger"
	"github.com/younwookim/platformer/internal/infrastructure/storage"
)

var (
	// ErrUnknownCampaign is returned for a campaign missing from settings
	ErrUnknownCampaign = errors.New("unknown campaign")
	// ErrNoLevels is returned for a campaign without levels
	ErrNoLevels = errors.New("campaign has no levels")
	// ErrNoNextLevel is returned when advancing past the last level
	ErrNoNextLevel = errors.New("no next level")
)

// MusicPlayer plays background songs. Current returns "" while nothing plays.
type MusicPlayer interface {
	Current() string
	Play(name string) error
}

// Env holds what the managers of every campaign share
type Env struct {
	Pipeline  *system.Pipeline
	Loader    *config.Loader
	Store     storage.Store
	Music     MusicPlayer // optional
	Obfuscate bool        // base64 savefiles outside development mode
}

// Manager runs the level sequence of one campaign
type Manager struct {
	env      Env
	campaign entity.CampaignType
	settings config.CampaignSettings

	state      state.GameState
	levelIndex int
	hasWonGame bool
	checkpoint *entity.Player
	completed  []string
	times      map[string]TimeData
	globalTime *TimeData
	stats      entity.Stats

	levelTimer  *ecs.Timer
	globalTimer *ecs.Timer
	build       system.LevelBuild
}

// NewManager creates the manager for a campaign. Unless newGame is set,
// progress is restored from the campaign's savefile.
func NewManager(env Env, campaign entity.CampaignType, newGame bool) (*Manager, error) {
	cs, ok := env.Pipeline.Settings().LevelManager.Campaign(campaign)
	if !ok {
		return nil, fmt.Errorf("%s: %w", campaign, ErrUnknownCampaign)
	}
	if len(cs.LevelNames) == 0 {
		return nil, fmt.Errorf("%s: %w", campaign, ErrNoLevels)
	}

	clock := env.Pipeline.Clock()
	m := &Manager{
		env:         env,
		campaign:    campaign,
		settings:    cs,
		state:       state.StateLoading,
		times:       make(map[string]TimeData),
		stats:       entity.NewStats(),
		levelTimer:  ecs.NewTimer(clock),
		globalTimer: ecs.NewTimer(clock),
	}
	if !newGame {
		m.load()
	}
	return m, nil
}

// Campaign returns the campaign this manager runs
func (m *Manager) Campaign() entity.CampaignType { return m.campaign }

// State returns the current state machine state
func (m *Manager) State() state.GameState { return m.state }

// LevelIndex returns the 0-based index of the current level
func (m *Manager) LevelIndex() int { return m.levelIndex }

// LevelName returns the file name of the current level
func (m *Manager) LevelName() string { return m.settings.LevelNames[m.levelIndex] }

// HasWonGame reports whether the last level was completed
func (m *Manager) HasWonGame() bool { return m.hasWonGame }

// IsFirstLevel reports whether the current level starts the campaign
func (m *Manager) IsFirstLevel() bool { return m.levelIndex == 0 }

// Completed returns the names of completed levels in completion order
func (m *Manager) Completed() []string { return slices.Clone(m.completed) }

// Checkpoint returns the player state levels restart with, or nil
func (m *Manager) Checkpoint() *entity.Player { return m.checkpoint }

// Stats returns the gameplay counters
func (m *Manager) Stats() entity.Stats { return m.stats }

// LevelTime returns the best times of a level
func (m *Manager) LevelTime(name string) (TimeData, bool) {
	t, ok := m.times[name]
	return t, ok
}

// GlobalTime returns the best campaign times
func (m *Manager) GlobalTime() (TimeData, bool) {
	if m.globalTime == nil {
		return TimeData{}, false
	}
	return *m.globalTime, true
}

// LevelTimer returns the timer of the running level
func (m *Manager) LevelTimer() *ecs.Timer { return m.levelTimer }

// GlobalTimer returns the timer of the running playthrough
func (m *Manager) GlobalTimer() *ecs.Timer { return m.globalTimer }

// Build returns what the last level load created
func (m *Manager) Build() system.LevelBuild { return m.build }

func (m *Manager) world() *ecs.World { return m.env.Pipeline.World() }

func (m *Manager) log() *logrus.Entry {
	return logger.Get().WithFields(logrus.Fields{
		"campaign": m.campaign.String(),
		"level":    m.LevelName(),
	})
}

// LoadCurrentLevel starts playing the current level. Starting the first
// level also starts a fresh playthrough timer.
func (m *Manager) LoadCurrentLevel() error {
	m.hasWonGame = false
	if m.IsFirstLevel() {
		m.globalTimer = ecs.NewTimer(m.env.Pipeline.Clock())
	}
	return m.loadLevel()
}

func (m *Manager) loadLevel() error {
	m.state = state.StateLoading
	w := m.world()
	removed := w.DestroyLevelEntities()
	m.env.Pipeline.Bullets().Drain()

	settings := m.env.Pipeline.Settings()
	lvl, err := m.env.Loader.LoadLevel(settings.LevelManager.LevelsDir, m.LevelName())
	if err != nil {
		return fmt.Errorf("failed to load level %s: %w", m.LevelName(), err)
	}
	build, err := system.BuildLevel(w, lvl, settings, m.env.Pipeline.Clock(), m.checkpoint)
	if err != nil {
		return fmt.Errorf("failed to build level %s: %w", m.LevelName(), err)
	}
	m.build = build

	m.levelTimer.Start()
	switch {
	case m.globalTimer.IsPaused():
		m.globalTimer.Resume()
	case !m.globalTimer.IsRunning():
		m.globalTimer.Start()
	}

	m.createTimerUIs()
	m.playCurrentSong()
	m.state = state.StatePlaying

	m.log().WithFields(logrus.Fields{
		"removed":    removed,
		"enemies":    build.Enemies,
		"items":      build.Items,
		"tiles":      build.Tiles,
		"checkpoint": m.checkpoint != nil,
	}).Info("Level loaded")
	return nil
}

func (m *Manager) createTimerUIs() {
	w := m.world()
	lms := m.env.Pipeline.Settings().LevelManager
	if m.hasCompletedCurrentLevel() {
		id := w.NewEntity()
		w.TimerUI[id] = ecs.TimerUI{Kind: ecs.TimerLevel, Prefix: lms.LevelTimerUI.TextPrefix}
	}
	if m.hasCompletedGame() {
		id := w.NewEntity()
		w.TimerUI[id] = ecs.TimerUI{Kind: ecs.TimerGlobal, Prefix: lms.GlobalTimerUI.TextPrefix}
	}
}

// TimerTexts renders every best-time display of the level
func (m *Manager) TimerTexts() []string {
	w := m.world()
	var out []string
	for _, id := range ecs.SortedIDs(w.TimerUI) {
		ui := w.TimerUI[id]
		var best time.Duration
		switch ui.Kind {
		case ecs.TimerLevel:
			best = m.times[m.LevelName()].General
		case ecs.TimerGlobal:
			if m.globalTime != nil {
				best = m.globalTime.General
			}
		}
		out = append(out, ui.Prefix+ecs.FormatDuration(best))
	}
	return out
}

// Step runs one simulation frame and applies its consequences.
// Nothing is simulated outside the Playing state.
func (m *Manager) Step(in system.InputState, dt float64) error {
	if !m.state.Simulating() {
		return nil
	}
	return m.Update(m.env.Pipeline.Step(in, dt))
}

// Update counts the frame's events and checks whether the level was
// completed or the player died
func (m *Manager) Update(events []system.Event) error {
	if m.state != state.StatePlaying {
		return nil
	}
	m.recordEvents(events)

	w := m.world()
	player, ok := w.PlayerData()
	if !ok {
		return nil
	}
	if m.goalFinished() {
		return m.completeLevel()
	}
	if _, invincible := w.Invincible[w.PlayerID]; player.IsDead() && !invincible {
		return m.handleDeath()
	}
	m.playCurrentSong()
	return nil
}

func (m *Manager) recordEvents(events []system.Event) {
	name := m.LevelName()
	for _, ev := range events {
		switch ev := ev.(type) {
		case system.EnemyKilledEvent:
			m.stats.AddKill(name, ev.Type)
		case system.ItemBoughtEvent:
			m.stats.AddItemBought(name)
		case system.GoalReachedEvent:
			m.log().WithField("time", ecs.FormatDuration(m.levelTimer.Elapsed())).Info("Goal reached")
		}
	}
}

// goalFinished reports a reached goal whose end animation is over
func (m *Manager) goalFinished() bool {
	w := m.world()
	reached := false
	for _, g := range w.Goal {
		reached = reached || g.NextLevel
	}
	if !reached {
		return false
	}
	anim, ok := w.Animation[w.PlayerID]
	return !ok || !anim.PlayingOnce()
}

func (m *Manager) completeLevel() error {
	m.state = state.StateLevelComplete
	name := m.LevelName()
	firstLoop := m.stats.Wins == 0

	m.levelTimer.Finish()
	run := m.levelTimer.Elapsed()
	m.times[name] = m.times[name].Record(run, firstLoop)
	m.globalTimer.Pause()
	if !slices.Contains(m.completed, name) {
		m.completed = append(m.completed, name)
	}
	m.log().WithField("time", ecs.FormatDuration(run)).Info("Level complete")

	if !m.hasNextLevel() {
		return m.winGame()
	}
	m.checkpoint = m.snapshot()
	return m.loadNextLevel()
}

func (m *Manager) hasNextLevel() bool {
	return m.levelIndex+1 < len(m.settings.LevelNames)
}

// loadNextLevel advances and saves before the next level is built
func (m *Manager) loadNextLevel() error {
	if !m.hasNextLevel() {
		return fmt.Errorf("after %s: %w", m.LevelName(), ErrNoNextLevel)
	}
	m.levelIndex++
	if err := m.Save(); err != nil {
		m.log().WithError(err).Warn("Failed to save before next level")
	}
	return m.loadLevel()
}

func (m *Manager) winGame() error {
	firstLoop := m.stats.Wins == 0
	m.globalTimer.Finish()
	run := m.globalTimer.Elapsed()
	var prev TimeData
	if m.globalTime != nil {
		prev = *m.globalTime
	}
	global := prev.Record(run, firstLoop)
	m.globalTime = &global

	m.stats.ResetCurrent()
	m.stats.AddWin()
	m.levelIndex = 0
	m.checkpoint = m.snapshot()
	m.hasWonGame = true
	m.state = state.StateGameWon
	m.log().WithFields(logrus.Fields{
		"time": ecs.FormatDuration(run),
		"wins": m.stats.Wins,
	}).Info("Game won")
	return m.Save()
}

func (m *Manager) handleDeath() error {
	m.state = state.StatePlayerDead
	m.stats.AddDeath(m.LevelName())
	m.log().Info("Player died")

	if err := m.loadLevel(); err != nil {
		return err
	}
	if bonus := m.env.Pipeline.Settings().LevelManager.HealthIncreaseOnDeath; bonus > 0 {
		w := m.world()
		if player, ok := w.PlayerData(); ok {
			player.AddHealth(bonus)
			m.checkpoint = player.Clone()
			system.SyncHearts(w)
		}
	}
	return m.Save()
}

func (m *Manager) snapshot() *entity.Player {
	if player, ok := m.world().PlayerData(); ok {
		return player.Clone()
	}
	return m.checkpoint
}

// SetPaused pauses or resumes the simulation and both level timers
func (m *Manager) SetPaused(paused bool) {
	switch {
	case paused && m.state == state.StatePlaying:
		m.state = state.StatePaused
		m.levelTimer.Pause()
		m.globalTimer.Pause()
	case !paused && m.state == state.StatePaused:
		m.state = state.StatePlaying
		m.levelTimer.Resume()
		m.globalTimer.Resume()
	default:
		return
	}
	m.env.Pipeline.SetPaused(paused)
}

func (m *Manager) playCurrentSong() {
	if m.env.Music == nil || m.levelIndex >= len(m.settings.SongNames) {
		return
	}
	name := m.settings.SongNames[m.levelIndex]
	if m.env.Music.Current() == name {
		return
	}
	if err := m.env.Music.Play(name); err != nil {
		m.log().WithError(err).WithField("song", name).Warn("Failed to play song")
	}
}

func (m *Manager) hasCompletedCurrentLevel() bool {
	return slices.Contains(m.completed, m.LevelName())
}

func (m *Manager) hasCompletedGame() bool {
	return len(m.completed) >= len(m.settings.LevelNames)
}

// Save writes the campaign progress to its savefile
func (m *Manager) Save() error {
	stats := m.stats
	data := SavefileData{
		Player: m.checkpoint,
		Levels: LevelsData{
			Current:    m.LevelName(),
			Completed:  m.Completed(),
			Times:      m.times,
			GlobalTime: m.globalTime,
		},
		Stats: &stats,
	}
	raw, err := EncodeSavefile(data, m.env.Obfuscate)
	if err != nil {
		return err
	}
	if err := m.env.Store.Write(m.settings.SavefilePath, raw); err != nil {
		return fmt.Errorf("failed to save %s: %w", m.settings.SavefilePath, err)
	}
	m.log().WithField("path", m.settings.SavefilePath).Debug("Savefile written")
	return nil
}

// load restores progress from the savefile. A missing or unreadable file
// leaves a fresh game.
func (m *Manager) load() {
	raw, err := m.env.Store.Read(m.settings.SavefilePath)
	if errors.Is(err, storage.ErrNotFound) {
		return
	}
	if err != nil {
		m.log().WithError(err).Warn("Failed to read savefile, starting fresh")
		return
	}
	data, err := DecodeSavefile(raw)
	if err != nil {
		m.log().WithError(err).Warn("Failed to decode savefile, starting fresh")
		return
	}

	if i := slices.Index(m.settings.LevelNames, data.Levels.Current); i >= 0 {
		m.levelIndex = i
	} else if data.Levels.Current != "" {
		m.log().WithField("saved", data.Levels.Current).Warn("Saved level no longer exists, starting at the first level")
	}
	m.checkpoint = data.Player
	m.completed = m.completed[:0]
	for _, name := range data.Levels.Completed {
		if !slices.Contains(m.completed, name) {
			m.completed = append(m.completed, name)
		}
	}
	if data.Levels.Times != nil {
		m.times = data.Levels.Times
	}
	m.globalTime = data.Levels.GlobalTime
	if data.Stats != nil {
		m.stats = *data.Stats
	}
}
