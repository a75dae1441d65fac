package game

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadConfig_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("missing file should not error: %v", err)
	}
	def := DefaultConfig()
	if cfg.Engine.MaxConsecutiveWins != def.Engine.MaxConsecutiveWins {
		t.Errorf("max wins = %d, want default %d", cfg.Engine.MaxConsecutiveWins, def.Engine.MaxConsecutiveWins)
	}
	if cfg.RoundDelay != def.RoundDelay {
		t.Errorf("round delay = %v, want default %v", cfg.RoundDelay, def.RoundDelay)
	}
}

func TestLoadConfig_EmptyPathUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("empty path should not error: %v", err)
	}
	if cfg.Engine.Rules.RatioThreshold != 0.5 {
		t.Errorf("ratio threshold = %v, want 0.5", cfg.Engine.Rules.RatioThreshold)
	}
}

func TestLoadConfig_Overrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tuning.yaml")
	content := `
ratio_threshold: 0.3
ordinal_gap: 3
max_consecutive_wins: 4
audio_usage_weight: 0.5
round_delay_ms: 800
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Engine.Rules.RatioThreshold != 0.3 {
		t.Errorf("ratio threshold = %v, want 0.3", cfg.Engine.Rules.RatioThreshold)
	}
	if cfg.Engine.Rules.OrdinalGap != 3 {
		t.Errorf("ordinal gap = %d, want 3", cfg.Engine.Rules.OrdinalGap)
	}
	if cfg.Engine.MaxConsecutiveWins != 4 {
		t.Errorf("max wins = %d, want 4", cfg.Engine.MaxConsecutiveWins)
	}
	if cfg.Engine.AudioUsageWeight != 0.5 {
		t.Errorf("audio weight = %v, want 0.5", cfg.Engine.AudioUsageWeight)
	}
	if cfg.RoundDelay != 800*time.Millisecond {
		t.Errorf("round delay = %v, want 800ms", cfg.RoundDelay)
	}
}

func TestLoadConfig_PartialOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tuning.yaml")
	if err := os.WriteFile(path, []byte("round_delay_ms: 100\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.RoundDelay != 100*time.Millisecond {
		t.Errorf("round delay = %v, want 100ms", cfg.RoundDelay)
	}
	if cfg.Engine.MaxConsecutiveWins != DefaultConfig().Engine.MaxConsecutiveWins {
		t.Error("untouched fields should keep defaults")
	}
}

func TestLoadConfig_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tuning.yaml")
	if err := os.WriteFile(path, []byte("ratio_threshold: [not a number\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Fatal("malformed tuning file should error")
	}
}
