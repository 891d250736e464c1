// Package config loads the YAML settings shared by the blockfall binaries.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/plus3/blockfall/internal/logging"
	"github.com/plus3/blockfall/tetris"
	"gopkg.in/yaml.v3"
)

var ErrInvalid = errors.New("invalid config")

// Config describes one game session.
type Config struct {
	Board        BoardConfig   `yaml:"board"`
	TickInterval time.Duration `yaml:"tick_interval"`
	// Seed fixes the piece sequence; 0 picks one from the clock.
	Seed        uint64 `yaml:"seed"`
	LogLevel    string `yaml:"log_level"`
	MetricsAddr string `yaml:"metrics_addr"`
	DebugUI     bool   `yaml:"debug_ui"`
	// Scale is the size of one board cell in pixels for the window frontend.
	Scale int `yaml:"scale"`
}

type BoardConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// Default returns the reference settings: a 10x20 board and a 300ms tick.
func Default() Config {
	return Config{
		Board: BoardConfig{
			Width:  10,
			Height: 20,
		},
		TickInterval: 300 * time.Millisecond,
		LogLevel:     "info",
		Scale:        24,
	}
}

// Load reads a YAML file on top of the defaults.
func Load(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	return Decode(f)
}

// Decode reads YAML from r on top of the defaults and validates the result.
// Missing keys keep their default value.
func Decode(r io.Reader) (Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the settings a game cannot start without.
func (c Config) Validate() error {
	if c.Board.Width < tetris.MinWidth || c.Board.Height < tetris.MinHeight {
		return fmt.Errorf("%w: board %dx%d is smaller than %dx%d",
			ErrInvalid, c.Board.Width, c.Board.Height, tetris.MinWidth, tetris.MinHeight)
	}
	if c.TickInterval <= 0 {
		return fmt.Errorf("%w: tick_interval must be positive, got %s", ErrInvalid, c.TickInterval)
	}
	if c.Scale <= 0 {
		return fmt.Errorf("%w: scale must be positive, got %d", ErrInvalid, c.Scale)
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return nil
}

// RandomSource returns the piece source for Seed, falling back to the clock.
func (c Config) RandomSource() tetris.RandomSource {
	seed := c.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return tetris.NewRandomSource(seed)
}

// NewGame builds a game from the board settings.
func (c Config) NewGame(opts ...tetris.Option) (*tetris.Game, error) {
	opts = append([]tetris.Option{tetris.WithRandomSource(c.RandomSource())}, opts...)
	return tetris.NewGame(c.Board.Width, c.Board.Height, opts...)
}
