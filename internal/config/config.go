package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

// Config drives the autoplay command.
type Config struct {
	Seed         int64         `env:"KLONDIKE_SEED" envDefault:"0"`
	Selector     string        `env:"KLONDIKE_SELECTOR" envDefault:"greedy"`
	PersonasFile string        `env:"KLONDIKE_PERSONAS"`
	MaxDepth     int           `env:"KLONDIKE_MAX_DEPTH" envDefault:"2"`
	MaxTime      time.Duration `env:"KLONDIKE_MAX_TIME" envDefault:"250ms"`
	MaxMoves     int           `env:"KLONDIKE_MAX_MOVES" envDefault:"500"`
	RepeatWindow int           `env:"KLONDIKE_REPEAT_LIMIT" envDefault:"256"`
	LogLevel     string        `env:"LOG_LEVEL" envDefault:"info"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load reads the optional .env files, then the environment.
func Load(dotenv ...string) (Config, error) {
	// a missing .env is normal outside development
	_ = godotenv.Load(dotenv...)

	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	var errs []error
	if c.Selector == "" {
		errs = append(errs, errors.New("KLONDIKE_SELECTOR must not be empty"))
	}
	if c.MaxDepth <= 0 {
		errs = append(errs, fmt.Errorf("KLONDIKE_MAX_DEPTH must be > 0, got %d", c.MaxDepth))
	}
	if c.MaxTime <= 0 {
		errs = append(errs, fmt.Errorf("KLONDIKE_MAX_TIME must be > 0, got %s", c.MaxTime))
	}
	if c.MaxMoves <= 0 {
		errs = append(errs, fmt.Errorf("KLONDIKE_MAX_MOVES must be > 0, got %d", c.MaxMoves))
	}
	if c.RepeatWindow <= 0 {
		errs = append(errs, fmt.Errorf("KLONDIKE_REPEAT_LIMIT must be > 0, got %d", c.RepeatWindow))
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, fmt.Errorf("LOG_LEVEL: %w", err))
	}
	return errors.Join(errs...)
}

// Level is the parsed LOG_LEVEL; Validate has already rejected bad values.
func (c Config) Level() zerolog.Level {
	lvl, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		return zerolog.InfoLevel
	}
	return lvl
}
