// Package cli implements the reinforcectl command tree.
package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"reinforce/internal/accel"
	"reinforce/internal/config"
)

// Options collects the persistent flags shared by every command.
type Options struct {
	ConfigPath  string
	GPU         string
	GPUMemoryGB float64 // < 0 means probe the hardware
	NvidiaSMI   string
	LogLevel    string
	LogFormat   string
}

// Env helpers
func envStr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

func defaultOptions() *Options {
	return &Options{
		ConfigPath:  envStr("REINFORCE_CONFIG", ""),
		GPU:         envStr("REINFORCE_GPU", "auto"),
		GPUMemoryGB: envFloat("REINFORCE_GPU_MEMORY_GB", -1),
		NvidiaSMI:   envStr("REINFORCE_NVIDIA_SMI", ""),
		LogLevel:    envStr("REINFORCE_LOG_LEVEL", "info"),
		LogFormat:   envStr("REINFORCE_LOG_FORMAT", "console"),
	}
}

// prober returns a fixed prober when a memory override is set, else nvidia-smi.
func (o *Options) prober() accel.Prober {
	if o.GPUMemoryGB >= 0 {
		return accel.Static{Present: o.GPUMemoryGB > 0, MemoryBytes: accel.GB(o.GPUMemoryGB)}
	}
	return accel.NewNvidiaSMI(o.NvidiaSMI)
}

// resolved is the outcome of loading, tier selection and validation.
type resolved struct {
	settings config.Settings
	tier     string // empty when no tier profile was applied
}

func (o *Options) resolve(ctx context.Context) (resolved, error) {
	s, err := config.LoadOrDefault(o.ConfigPath)
	if err != nil {
		return resolved{}, fmt.Errorf("load config: %w", err)
	}
	var r resolved
	t, ok, err := config.ResolveTier(ctx, o.GPU, o.prober())
	if err != nil {
		return resolved{}, fmt.Errorf("gpu tier: %w", err)
	}
	if ok {
		p, _ := config.ProfileFor(t)
		s.Training = p.Apply(s.Training)
		r.tier = t.String()
	}
	if err := s.Validate(); err != nil {
		return resolved{}, err
	}
	r.settings = s
	return r, nil
}

// splitCSV splits a comma-separated list, trimming blanks and dropping empties.
func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
