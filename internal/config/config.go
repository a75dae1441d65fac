package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	Port         string `env:"PORT" envDefault:"8080"`
	DatasetPath  string `env:"DATASET_PATH" envDefault:"data/animals.csv"`
	TuningPath   string `env:"TUNING_PATH"`
	DatabaseURL  string `env:"DATABASE_URL"`
	AudioDefault bool   `env:"AUDIO_DEFAULT" envDefault:"true"`
}

func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parsing environment: %w", err)
	}
	return cfg, nil
}
