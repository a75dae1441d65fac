package game

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"beastduel/internal/engine"
)

// Tuning is the optional YAML balance file. Every field is a pointer so
// an absent key falls through to the compiled default.
type Tuning struct {
	RatioThreshold     *float64 `yaml:"ratio_threshold"`
	OrdinalGap         *int     `yaml:"ordinal_gap"`
	MaxConsecutiveWins *int     `yaml:"max_consecutive_wins"`
	AudioUsageWeight   *float64 `yaml:"audio_usage_weight"`
	RoundDelayMs       *int     `yaml:"round_delay_ms"`
}

// Config is the resolved game configuration.
type Config struct {
	Engine     engine.Config
	RoundDelay time.Duration
}

// DefaultConfig matches the shipped balance.
func DefaultConfig() Config {
	return Config{
		Engine:     engine.DefaultConfig(),
		RoundDelay: 1500 * time.Millisecond,
	}
}

// LoadConfig reads the tuning file at path and overlays it on the
// defaults. A missing file is not an error; a malformed one is.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading tuning file: %w", err)
	}

	var t Tuning
	if err := yaml.Unmarshal(b, &t); err != nil {
		return cfg, fmt.Errorf("parsing tuning file %s: %w", path, err)
	}
	return cfg.apply(t), nil
}

func (c Config) apply(t Tuning) Config {
	if t.RatioThreshold != nil && *t.RatioThreshold > 0 {
		c.Engine.Rules.RatioThreshold = *t.RatioThreshold
	}
	if t.OrdinalGap != nil && *t.OrdinalGap > 0 {
		c.Engine.Rules.OrdinalGap = *t.OrdinalGap
	}
	if t.MaxConsecutiveWins != nil && *t.MaxConsecutiveWins > 0 {
		c.Engine.MaxConsecutiveWins = *t.MaxConsecutiveWins
	}
	if t.AudioUsageWeight != nil && *t.AudioUsageWeight > 0 {
		c.Engine.AudioUsageWeight = *t.AudioUsageWeight
	}
	if t.RoundDelayMs != nil && *t.RoundDelayMs >= 0 {
		c.RoundDelay = time.Duration(*t.RoundDelayMs) * time.Millisecond
	}
	return c
}
