// Package config loads process configuration from the environment, an optional
// .env file and command-line flags, plus the character roster.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds the server settings
type Config struct {
	Addr         string        `env:"WEREWOLF_ADDR" envDefault:":8080"`
	GeminiAPIKey string        `env:"GEMINI_API_KEY"`
	TextModel    string        `env:"WEREWOLF_TEXT_MODEL" envDefault:"gemini-2.5-flash"`
	ImageModel   string        `env:"WEREWOLF_IMAGE_MODEL" envDefault:"gemini-2.5-flash-image"`
	Language     string        `env:"WEREWOLF_LANGUAGE" envDefault:"Traditional Chinese"`
	CallTimeout  time.Duration `env:"WEREWOLF_CALL_TIMEOUT" envDefault:"90s"`
	GameTTL      time.Duration `env:"WEREWOLF_GAME_TTL" envDefault:"6h"`
	RosterPath   string        `env:"WEREWOLF_ROSTER"`
	SkipImages   bool          `env:"WEREWOLF_SKIP_IMAGES"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load reads .env when present, then the environment, then flags from args
func Load(args []string) (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}

	fset := flag.NewFlagSet("midnight-whispers", flag.ContinueOnError)
	fset.StringVar(&cfg.Addr, "addr", cfg.Addr, "HTTP listen address")
	fset.StringVar(&cfg.RosterPath, "roster", cfg.RosterPath, "path to a roster YAML file")
	fset.BoolVar(&cfg.SkipImages, "skip-images", cfg.SkipImages, "do not request scene images")
	fset.DurationVar(&cfg.CallTimeout, "call-timeout", cfg.CallTimeout, "timeout for one Gemini call")
	if err := fset.Parse(args); err != nil {
		return Config{}, fmt.Errorf("parse flags: %w", err)
	}

	if cfg.CallTimeout <= 0 {
		return Config{}, fmt.Errorf("call timeout must be positive, got %s", cfg.CallTimeout)
	}
	if cfg.GameTTL <= 0 {
		return Config{}, fmt.Errorf("game ttl must be positive, got %s", cfg.GameTTL)
	}
	return cfg, nil
}
