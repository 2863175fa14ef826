package config

import (
	"errors"
	"fmt"
	"os"
	"runtime"

	"github.com/garlicgarrison/chess-move-tests/logging"
	"github.com/garlicgarrison/chess-move-tests/positions"
	"gopkg.in/yaml.v2"
)

var (
	ErrInvalidWorkers = errors.New("workers must be positive")
	ErrInvalidIndent  = errors.New("indent must not be negative")
)

type Config struct {
	Workers     int    `yaml:"workers"`
	Minify      bool   `yaml:"minify"`
	Indent      int    `yaml:"indent"`
	KeepOrder   bool   `yaml:"keep_order"`
	LogLevel    string `yaml:"log_level"`
	LogFormat   string `yaml:"log_format"`
	MetricsFile string `yaml:"metrics_file"`

	// Pieces shapes the positions written by the seed command.
	Pieces positions.Config `yaml:"pieces"`
}

func Default() Config {
	return Config{
		Workers:   runtime.NumCPU(),
		Indent:    4,
		LogLevel:  "info",
		LogFormat: logging.FormatConsole,
		Pieces:    positions.DefaultConfig(),
	}
}

// Load reads path over the defaults. An empty path returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}

	if err := yaml.UnmarshalStrict(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}

	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	if c.Workers <= 0 {
		return ErrInvalidWorkers
	}
	if c.Indent < 0 {
		return ErrInvalidIndent
	}
	switch c.LogFormat {
	case "", logging.FormatConsole, logging.FormatJSON:
	default:
		return fmt.Errorf("%w %q", logging.ErrUnknownFormat, c.LogFormat)
	}
	return c.Pieces.Validate()
}
