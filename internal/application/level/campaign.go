package level

import (
	"errors"
	"fmt"

	"github.com/younwookim/platformer/internal/application/system"
	"github.com/younwookim/platformer/internal/domain/entity"
	"github.com/younwookim/platformer/internal/infrastructure/logger"
)

var (
	// ErrNoActiveCampaign is returned before any campaign was selected
	ErrNoActiveCampaign = errors.New("no active campaign")
	// ErrNoLevelManager is returned when the active campaign lost its manager
	ErrNoLevelManager = errors.New("no level manager for campaign")
)

// CampaignManager keeps one level manager per campaign and routes frames
// to the active one
type CampaignManager struct {
	env      Env
	managers map[entity.CampaignType]*Manager
	active   *entity.CampaignType
}

// NewCampaignManager creates a campaign manager without an active campaign
func NewCampaignManager(env Env) *CampaignManager {
	return &CampaignManager{
		env:      env,
		managers: make(map[entity.CampaignType]*Manager),
	}
}

// SelectCampaign activates a campaign and loads its current level.
// newGame discards the campaign's progress, including its savefile state.
func (c *CampaignManager) SelectCampaign(campaign entity.CampaignType, newGame bool) error {
	if _, ok := c.managers[campaign]; !ok || newGame {
		m, err := NewManager(c.env, campaign, newGame)
		if err != nil {
			return err
		}
		c.managers[campaign] = m
	}
	c.active = &campaign
	logger.Get().WithField("campaign", campaign.String()).
		WithField("new_game", newGame).Info("Campaign selected")
	return c.LoadLevel()
}

// Active returns the manager of the active campaign
func (c *CampaignManager) Active() (*Manager, error) {
	if c.active == nil {
		return nil, ErrNoActiveCampaign
	}
	m, ok := c.managers[*c.active]
	if !ok {
		return nil, fmt.Errorf("%s: %w", c.active.String(), ErrNoLevelManager)
	}
	return m, nil
}

// LoadLevel restarts the current level of the active campaign
func (c *CampaignManager) LoadLevel() error {
	m, err := c.Active()
	if err != nil {
		return err
	}
	return m.LoadCurrentLevel()
}

// UpdateLevel steps the active campaign and reports whether it was won
func (c *CampaignManager) UpdateLevel(in system.InputState, dt float64) (bool, error) {
	m, err := c.Active()
	if err != nil {
		return false, err
	}
	if err := m.Step(in, dt); err != nil {
		return false, err
	}
	return m.HasWonGame(), nil
}

// SetPaused pauses or resumes the active campaign
func (c *CampaignManager) SetPaused(paused bool) error {
	m, err := c.Active()
	if err != nil {
		return err
	}
	m.SetPaused(paused)
	return nil
}
