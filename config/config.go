// Package config loads game timing and device settings from the environment.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/lixenwraith/reflex/constant"
)

// ErrInvalid marks a configuration the game loops cannot run with
var ErrInvalid = errors.New("invalid config")

// Config holds every tunable of one game
type Config struct {
	// InitialSeconds is the countdown length; zero or less ends the game immediately
	InitialSeconds int `env:"REFLEX_INITIAL_SECONDS" envDefault:"60"`

	InitialWindow  time.Duration `env:"REFLEX_INITIAL_WINDOW"  envDefault:"1000ms"`
	MinWindow      time.Duration `env:"REFLEX_MIN_WINDOW"      envDefault:"300ms"`
	TimeoutGrace   time.Duration `env:"REFLEX_TIMEOUT_GRACE"   envDefault:"200ms"`
	NoteDuration   time.Duration `env:"REFLEX_NOTE_DURATION"   envDefault:"300ms"`
	RenderInterval time.Duration `env:"REFLEX_RENDER_INTERVAL" envDefault:"100ms"`
	PollInterval   time.Duration `env:"REFLEX_POLL_INTERVAL"   envDefault:"10ms"`
	GameOverFrames int           `env:"REFLEX_GAME_OVER_FRAMES" envDefault:"50"`

	// Seed drives stimulus selection; zero picks a time-based seed
	Seed int64 `env:"REFLEX_SEED"`

	AudioEnabled bool    `env:"REFLEX_AUDIO_ENABLED" envDefault:"true"`
	MasterVolume float64 `env:"REFLEX_MASTER_VOLUME" envDefault:"0.5"`

	KeyHold     time.Duration `env:"REFLEX_KEY_HOLD"     envDefault:"150ms"`
	HistoryPath string        `env:"REFLEX_HISTORY_PATH" envDefault:"reflex-history.db"`
}

// Default returns the built-in configuration without reading the environment
func Default() Config {
	return Config{
		InitialSeconds: constant.InitialSeconds,
		InitialWindow:  constant.InitialWindow,
		MinWindow:      constant.MinWindow,
		TimeoutGrace:   constant.TimeoutGrace,
		NoteDuration:   constant.NoteDuration,
		RenderInterval: constant.RenderInterval,
		PollInterval:   constant.PollInterval,
		GameOverFrames: constant.GameOverFrames,
		AudioEnabled:   true,
		MasterVolume:   0.5,
		KeyHold:        constant.KeyHold,
		HistoryPath:    "reflex-history.db",
	}
}

// Load parses the environment over the defaults and validates the result
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects settings that would make a loop spin or break the window floor
func (c Config) Validate() error {
	positive := []struct {
		name  string
		value time.Duration
	}{
		{"render interval", c.RenderInterval},
		{"poll interval", c.PollInterval},
		{"note duration", c.NoteDuration},
		{"min window", c.MinWindow},
	}
	for _, p := range positive {
		if p.value <= 0 {
			return fmt.Errorf("%w: %s must be positive, got %v", ErrInvalid, p.name, p.value)
		}
	}

	if c.TimeoutGrace < 0 {
		return fmt.Errorf("%w: timeout grace must not be negative, got %v", ErrInvalid, c.TimeoutGrace)
	}
	if c.InitialWindow < c.MinWindow {
		return fmt.Errorf("%w: initial window %v below min window %v", ErrInvalid, c.InitialWindow, c.MinWindow)
	}
	if c.GameOverFrames < 0 {
		return fmt.Errorf("%w: game over frames must not be negative, got %d", ErrInvalid, c.GameOverFrames)
	}
	if c.MasterVolume < 0 || c.MasterVolume > 1 {
		return fmt.Errorf("%w: master volume must be within [0, 1], got %v", ErrInvalid, c.MasterVolume)
	}
	if c.KeyHold < 0 {
		return fmt.Errorf("%w: key hold must not be negative, got %v", ErrInvalid, c.KeyHold)
	}

	return nil
}
