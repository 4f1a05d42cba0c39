package config

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"reinforce/internal/accel"
	"reinforce/pkg/types"
)

// zlog is an optional structured logger. If unset, tier selection is silent.
var zlog *zerolog.Logger

// SetLogger installs a structured logger used by tier selection.
func SetLogger(l zerolog.Logger) { zlog = &l }

// Tier is a hardware memory class used to pick a batch-size/precision profile.
type Tier int

const (
	TierAuto Tier = iota
	TierA100
	TierMid
	TierLow
)

func (t Tier) String() string {
	switch t {
	case TierAuto:
		return "auto"
	case TierA100:
		return "a100"
	case TierMid:
		return "mid"
	case TierLow:
		return "low"
	default:
		return fmt.Sprintf("tier(%d)", int(t))
	}
}

// ParseTier maps a case-insensitive tier tag to a Tier. Empty means auto.
func ParseTier(s string) (Tier, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return TierAuto, true
	case "a100":
		return TierA100, true
	case "mid":
		return TierMid, true
	case "low":
		return TierLow, true
	default:
		return TierAuto, false
	}
}

// Memory thresholds in decimal gigabytes.
const (
	a100MinGB = 70
	midMinGB  = 20
)

// Profile is the set of TrainingConfig fields a tier governs.
type Profile struct {
	PerDeviceTrainBatchSize   int
	MiniBatchSize             int
	GradientAccumulationSteps int
	GradientCheckpointing     bool
	FP16                      bool
	BF16                      bool
}

var profiles = map[Tier]Profile{
	TierA100: {PerDeviceTrainBatchSize: 4, MiniBatchSize: 4, GradientAccumulationSteps: 2, GradientCheckpointing: true, FP16: false, BF16: true},
	TierMid:  {PerDeviceTrainBatchSize: 4, MiniBatchSize: 1, GradientAccumulationSteps: 4, GradientCheckpointing: true, FP16: false, BF16: true},
	TierLow:  {PerDeviceTrainBatchSize: 2, MiniBatchSize: 1, GradientAccumulationSteps: 8, GradientCheckpointing: true, FP16: false, BF16: true},
}

// ProfileFor returns the override profile of a concrete tier. TierAuto has none.
func ProfileFor(t Tier) (Profile, bool) {
	p, ok := profiles[t]
	return p, ok
}

// Apply returns cfg with the profile's fields overridden. Other fields,
// including the ProjectKwargs map, are carried over as-is.
func (p Profile) Apply(cfg types.TrainingConfig) types.TrainingConfig {
	cfg.PerDeviceTrainBatchSize = p.PerDeviceTrainBatchSize
	cfg.MiniBatchSize = p.MiniBatchSize
	cfg.GradientAccumulationSteps = p.GradientAccumulationSteps
	cfg.GradientCheckpointing = p.GradientCheckpointing
	cfg.FP16 = p.FP16
	cfg.BF16 = p.BF16
	return cfg
}

// TierForMemory classifies total accelerator memory in bytes.
func TierForMemory(bytes uint64) Tier {
	gb := float64(bytes) / 1e9
	switch {
	case gb >= a100MinGB:
		return TierA100
	case gb >= midMinGB:
		return TierMid
	default:
		return TierLow
	}
}

// ResolveTier turns a tier tag into a concrete tier. ok is false when the
// tag is unknown or auto found no accelerator; in both cases no override applies.
// Errors from the prober are returned as-is, wrapped with context.
func ResolveTier(ctx context.Context, tag string, prober accel.Prober) (Tier, bool, error) {
	t, known := ParseTier(tag)
	if !known {
		if zlog != nil {
			zlog.Debug().Str("tier", tag).Msg("unknown gpu tier, keeping base config")
		}
		return TierAuto, false, nil
	}
	if t != TierAuto {
		return t, true, nil
	}
	if prober == nil {
		return TierAuto, false, nil
	}
	avail, err := prober.Available(ctx)
	if err != nil {
		return TierAuto, false, fmt.Errorf("accelerator availability: %w", err)
	}
	if !avail {
		if zlog != nil {
			zlog.Info().Msg("no accelerator detected, keeping base config")
		}
		return TierAuto, false, nil
	}
	mem, err := prober.TotalMemory(ctx, 0)
	if err != nil {
		return TierAuto, false, fmt.Errorf("accelerator memory: %w", err)
	}
	detected := TierForMemory(mem)
	if zlog != nil {
		zlog.Info().Uint64("memory_bytes", mem).Str("tier", detected.String()).Msg("accelerator detected")
	}
	return detected, true, nil
}

// SelectForGPU returns base with the batch-size and precision fields
// overridden for the given tier tag ("a100", "mid", "low" or "auto").
// Unknown tags, and auto without an accelerator, return base unchanged.
func SelectForGPU(ctx context.Context, tag string, base types.TrainingConfig, prober accel.Prober) (types.TrainingConfig, error) {
	t, ok, err := ResolveTier(ctx, tag, prober)
	if err != nil {
		return base, err
	}
	if !ok {
		return base, nil
	}
	p, _ := ProfileFor(t)
	return p.Apply(base), nil
}
