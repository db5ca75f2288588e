package system

import (
	"github.com/sirupsen/logrus"

	"github.com/younwookim/platformer/internal/ecs"
	"github.com/younwookim/platformer/internal/infrastructure/config"
	"github.com/younwookim/platformer/internal/infrastructure/logger"
)

// Pipeline runs every gameplay system once per step in a fixed order
type Pipeline struct {
	world    *ecs.World
	settings *config.Settings
	clock    ecs.Clock
	bullets  *BulletQueue
	events   *EventLog
	paused   bool
	frame    uint64
}

// NewPipeline creates a pipeline over a world
func NewPipeline(w *ecs.World, settings *config.Settings, clock ecs.Clock) *Pipeline {
	if clock == nil {
		clock = ecs.SystemClock{}
	}
	return &Pipeline{
		world:    w,
		settings: settings,
		clock:    clock,
		bullets:  NewBulletQueue(),
		events:   &EventLog{},
	}
}

// World returns the simulated world
func (p *Pipeline) World() *ecs.World { return p.world }

// Settings returns the active settings
func (p *Pipeline) Settings() *config.Settings { return p.settings }

// SetSettings swaps the settings used from the next step on
func (p *Pipeline) SetSettings(s *config.Settings) { p.settings = s }

// Clock returns the clock timers are created with
func (p *Pipeline) Clock() ecs.Clock { return p.clock }

// Bullets returns the spawn queue
func (p *Pipeline) Bullets() *BulletQueue { return p.bullets }

// Frame returns the number of simulated steps
func (p *Pipeline) Frame() uint64 { return p.frame }

// Paused reports whether stepping is suspended
func (p *Pipeline) Paused() bool { return p.paused }

// SetPaused suspends or resumes the simulation. Turret and bullet timers
// freeze with it so shots and lifetimes don't advance while paused.
func (p *Pipeline) SetPaused(paused bool) {
	if p.paused == paused {
		return
	}
	p.paused = paused
	for _, t := range p.timers() {
		if paused {
			t.Pause()
		} else {
			t.Resume()
		}
	}
	logger.Get().WithField("paused", paused).Debug("Simulation pause changed")
}

func (p *Pipeline) timers() []*ecs.Timer {
	var out []*ecs.Timer
	for _, id := range ecs.SortedIDs(p.world.AI) {
		if ai := p.world.AI[id]; ai != nil && ai.Turret != nil && ai.Turret.ShotTimer != nil {
			out = append(out, ai.Turret.ShotTimer)
		}
	}
	for _, id := range ecs.SortedIDs(p.world.Bullet) {
		if b := p.world.Bullet[id]; b != nil && b.Timer != nil {
			out = append(out, b.Timer)
		}
	}
	return out
}

// Step advances the world by dt seconds and returns the events it raised
func (p *Pipeline) Step(in InputState, dt float64) []Event {
	if p.paused {
		return nil
	}
	w := p.world
	if in.ToggleNoclip {
		on := ToggleNoclip(w)
		logger.Get().WithFields(logrus.Fields{"noclip": on, "frame": p.frame}).Info("Noclip toggled")
	}

	f := &Frame{
		World:    w,
		Settings: p.settings,
		Clock:    p.clock,
		Input:    in,
		DT:       dt,
		Bullets:  p.bullets,
		Events:   p.events,
	}

	ecs.ResetDecayFlags(w)
	UpdateLoader(f)
	UpdatePlayerControls(f)
	UpdatePlayerDash(f)
	UpdateEnemyAI(f)
	UpdatePhysics(f)
	UpdateCamera(f)
	ecs.UpdateCollisions(w)
	UpdateDecay(f)
	UpdatePlayerAttack(f)
	UpdatePlayerTakeDamage(f)
	UpdateHarmful(f)
	UpdateBullets(f)
	UpdateGoal(f)
	CreateBullets(f)
	SyncHearts(w)
	UpdateAnimations(f)

	p.frame++
	return p.events.Drain()
}
