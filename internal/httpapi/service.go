package httpapi

import (
	"reinforce/internal/checkpoint"
	"reinforce/internal/config"
	"reinforce/pkg/types"
)

// ConfigService serves a resolved Settings value and scans its checkpoint dir
// on every request. The settings are read-only after construction.
type ConfigService struct {
	settings config.Settings
	tier     string
}

// NewConfigService wraps resolved settings. tier is the applied GPU tier, if any.
func NewConfigService(s config.Settings, tier string) *ConfigService {
	return &ConfigService{settings: s, tier: tier}
}

func (c *ConfigService) Settings() types.SettingsResponse {
	s := c.settings
	return types.SettingsResponse{
		Training:   s.Training,
		Model:      s.Model,
		LoRA:       s.LoRA,
		Dataset:    s.Dataset,
		Inference:  s.Inference,
		RewardMode: config.RewardMode(s.Inference),
		Tier:       c.tier,
	}
}

func (c *ConfigService) Checkpoints() (types.CheckpointsResponse, error) {
	dir := c.settings.Training.CheckpointDir
	cps, err := checkpoint.List(dir)
	if err != nil {
		return types.CheckpointsResponse{}, err
	}
	latest := int64(-1)
	if n := len(cps); n > 0 {
		latest = int64(cps[n-1].Step)
	}
	observeCheckpoints(len(cps), latest)
	if cps == nil {
		cps = []types.Checkpoint{}
	}
	return types.CheckpointsResponse{Dir: dir, Checkpoints: cps}, nil
}

func (c *ConfigService) LatestCheckpoint() (types.Checkpoint, bool, error) {
	return checkpoint.Latest(c.settings.Training.CheckpointDir)
}
