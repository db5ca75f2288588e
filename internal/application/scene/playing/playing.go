// Package playing provides the main gameplay scene.
package playing

import (
	"cmp"
	"errors"
	"fmt"
	"image/color"
	"slices"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/sirupsen/logrus"

	"github.com/younwookim/platformer/internal/application/level"
	"github.com/younwookim/platformer/internal/application/scene"
	"github.com/younwookim/platformer/internal/application/state"
	"github.com/younwookim/platformer/internal/application/system"
	"github.com/younwookim/platformer/internal/ecs"
	"github.com/younwookim/platformer/internal/infrastructure/config"
	"github.com/younwookim/platformer/internal/infrastructure/logger"
)

// Colors for rendering
var (
	colorBG       = color.RGBA{26, 26, 46, 255}
	colorWall     = color.RGBA{80, 80, 100, 255}
	colorSpike    = color.RGBA{200, 50, 50, 255}
	colorPlayer   = color.RGBA{100, 200, 100, 255}
	colorEnemy    = color.RGBA{200, 100, 100, 255}
	colorBullet   = color.RGBA{255, 200, 100, 255}
	colorItem     = color.RGBA{255, 215, 0, 255}
	colorGoal     = color.RGBA{100, 160, 255, 255}
	colorAttack   = color.RGBA{255, 255, 255, 128}
	colorOverlay  = color.RGBA{0, 0, 0, 128}
	colorWon      = color.RGBA{0, 60, 120, 180}
	colorHealthBG = color.RGBA{60, 60, 60, 255}
	colorHealthFG = color.RGBA{100, 200, 100, 255}
)

// ErrNoCampaign is returned when the scene is created before a campaign was selected
var ErrNoCampaign = errors.New("playing scene needs an active campaign")

// InputSource provides one frame of input per call
type InputSource interface {
	GetInput() system.InputState
}

// Options configures the playing scene
type Options struct {
	Campaigns  *level.CampaignManager
	Pipeline   *system.Pipeline
	Loader     *config.Loader
	Input      InputSource
	Watcher    *config.Watcher // dev mode only
	RecordPath string
}

// Playing is the main gameplay scene
type Playing struct {
	campaigns *level.CampaignManager
	pipeline  *system.Pipeline
	loader    *config.Loader
	input     InputSource
	watcher   *config.Watcher
	paused    bool
	won       bool

	// Input recording
	recorder       *Recorder
	recordFilename string
}

// New creates a new Playing scene for the active campaign.
// If RecordPath is not empty, gameplay will be recorded.
func New(opts Options) (*Playing, error) {
	m, err := opts.Campaigns.Active()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNoCampaign, err)
	}

	p := &Playing{
		campaigns:      opts.Campaigns,
		pipeline:       opts.Pipeline,
		loader:         opts.Loader,
		input:          opts.Input,
		watcher:        opts.Watcher,
		recordFilename: opts.RecordPath,
	}
	if opts.RecordPath != "" {
		p.recorder = NewRecorder(m.Campaign().String(), m.LevelName())
		logger.Get().WithField("path", opts.RecordPath).Info("Recording enabled")
	}
	return p, nil
}

// Update proceeds the game state (implements scene.Scene)
func (p *Playing) Update(dt float64) (scene.Scene, error) {
	p.reloadOnChange()

	in := p.input.GetInput()
	if p.recorder != nil {
		p.recorder.RecordFrame(in)
	}

	if p.won {
		if in.JumpPressed {
			p.won = false
			return nil, p.campaigns.LoadLevel()
		}
		return nil, nil
	}

	if in.TogglePause {
		if err := p.setPaused(!p.paused); err != nil {
			return nil, err
		}
	}

	won, err := p.campaigns.UpdateLevel(in, dt)
	if err != nil {
		return nil, err
	}
	if won {
		p.won = true
		logger.Get().WithField("frame", p.pipeline.Frame()).Info("Campaign won")
		p.saveRecording()
	}

	return nil, nil // nil = stay on this scene
}

func (p *Playing) setPaused(paused bool) error {
	p.paused = paused
	return p.campaigns.SetPaused(paused)
}

// reloadOnChange applies edited settings and level files and restarts the level
func (p *Playing) reloadOnChange() {
	if p.watcher == nil {
		return
	}
	var changed []string
	for {
		name, ok := p.watcher.Poll()
		if !ok {
			break
		}
		changed = append(changed, name)
	}
	if len(changed) == 0 {
		return
	}

	log := logger.Get().WithField("files", strings.Join(changed, ","))
	settings, err := p.loader.LoadSettings()
	if err != nil {
		log.WithError(err).Warn("Failed to reload settings, keeping the current ones")
	} else {
		p.pipeline.SetSettings(settings)
	}

	p.won = false
	if err := p.setPaused(false); err != nil {
		log.WithError(err).Warn("Failed to unpause")
	}
	if err := p.campaigns.LoadLevel(); err != nil {
		log.WithError(err).Error("Failed to reload level")
		return
	}
	log.Info("Level reloaded")
}

// saveRecording saves the current recording to file
func (p *Playing) saveRecording() {
	if p.recorder == nil {
		return
	}

	filename := p.recordFilename
	if filename == "" {
		filename = GenerateFilename()
	}

	log := logger.Get().WithField("path", filename)
	if err := p.recorder.Save(filename); err != nil {
		log.WithError(err).Warn("Failed to save recording")
		return
	}
	log.WithField("frames", p.recorder.FrameCount()).Info("Recording saved")
}

// Draw renders the game screen
func (p *Playing) Draw(screen *ebiten.Image) {
	screen.Fill(colorBG)

	w := p.pipeline.World()
	view, ok := w.Bounds(w.CameraID)
	if !ok {
		return
	}

	for _, id := range drawOrder(w) {
		c, ok := colorOf(w, id)
		if !ok {
			continue
		}
		r, _ := w.Bounds(id)
		x := r.X - view.X
		y := view.H - (r.Y + r.H - view.Y)
		vector.DrawFilledRect(screen, float32(x), float32(y), float32(r.W), float32(r.H), c, false)
	}

	p.drawUI(screen, w, view)
}

// drawOrder returns the visible entities sorted back to front
func drawOrder(w *ecs.World) []ecs.EntityID {
	var ids []ecs.EntityID
	for _, id := range ecs.SortedIDs(w.Size) {
		if id == w.CameraID || !w.Active(id) {
			continue
		}
		if _, ok := w.Transform[id]; ok {
			ids = append(ids, id)
		}
	}
	slices.SortStableFunc(ids, func(a, b ecs.EntityID) int {
		return cmp.Compare(w.Transform[a].Z, w.Transform[b].Z)
	})
	return ids
}

func colorOf(w *ecs.World, id ecs.EntityID) (color.Color, bool) {
	switch {
	case id == w.PlayerID:
		return colorPlayer, true
	case w.Enemy[id] != nil:
		return colorEnemy, true
	case w.Bullet[id] != nil:
		return colorBullet, true
	}
	if _, ok := w.Item[id]; ok {
		return colorItem, true
	}
	if _, ok := w.Goal[id]; ok {
		return colorGoal, true
	}
	if _, ok := w.PlayerAttack[id]; ok {
		return colorAttack, true
	}
	if _, ok := w.Harmful[id]; ok {
		return colorSpike, true
	}
	if _, ok := w.Tile[id]; ok {
		return colorWall, true
	}
	return nil, false
}

func (p *Playing) drawUI(screen *ebiten.Image, w *ecs.World, view ecs.Rect) {
	screenW, screenH := float32(view.W), float32(view.H)

	// Health bar
	barX, barY := float32(10), screenH-20
	barW, barH := float32(100), float32(10)
	vector.DrawFilledRect(screen, barX, barY, barW, barH, colorHealthBG, false)
	if hearts, ok := w.Hearts[w.PlayerID]; ok {
		full := float32(p.pipeline.Settings().Player.Health)
		ratio := min(max(float32(hearts.Health)/full, 0), 1)
		vector.DrawFilledRect(screen, barX, barY, barW*ratio, barH, colorHealthFG, false)
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("HP: %.0f", hearts.Health), int(barX+barW+8), int(barY)-3)
	}

	lines := []string{"A/D: Move | Space: Jump | J/Q/E: Attack | Shift+Dir: Dash | F: Buy | ESC: Pause"}
	m, err := p.campaigns.Active()
	if err == nil {
		lines = append(lines, fmt.Sprintf("%s %s  %s", m.Campaign(), m.LevelName(),
			ecs.FormatDuration(m.LevelTimer().Elapsed())))
		lines = append(lines, m.TimerTexts()...)
	}
	ebitenutil.DebugPrint(screen, strings.Join(lines, "\n"))

	switch {
	case p.won:
		vector.DrawFilledRect(screen, 0, 0, screenW, screenH, colorWon, false)
		ebitenutil.DebugPrintAt(screen, "YOU WIN\n\nPress Space to play again", int(screenW)/2-70, int(screenH)/2-20)
	case err == nil && m.State() == state.StatePaused:
		vector.DrawFilledRect(screen, 0, 0, screenW, screenH, colorOverlay, false)
		ebitenutil.DebugPrintAt(screen, "PAUSED\n\nPress ESC to resume", int(screenW)/2-50, int(screenH)/2-20)
	}
}

// OnEnter is called when entering this scene
func (p *Playing) OnEnter() {
	if m, err := p.campaigns.Active(); err == nil {
		logger.Get().WithFields(logrus.Fields{
			"campaign": m.Campaign().String(),
			"level":    m.LevelName(),
		}).Info("Playing")
	}
}

// OnExit is called when leaving this scene
func (p *Playing) OnExit() {
	p.saveRecording()
}
