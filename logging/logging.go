// Package logging configures the zerolog logger shared by the CLI and the
// generation runner.
package logging

import (
	"errors"
	"io"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

const (
	FormatConsole = "console"
	FormatJSON    = "json"
)

var ErrUnknownFormat = errors.New("unknown log format")

type Config struct {
	Level  string    // "debug", "info", ... defaults to info
	Format string    // console or json, defaults to console
	Output io.Writer // defaults to os.Stderr
}

var (
	mu   sync.RWMutex
	base = zerolog.New(os.Stderr).With().Timestamp().Logger()
)

// Configure replaces the base logger. Output goes to stderr by default so it
// never mixes with generated data written to stdout.
func Configure(cfg Config) error {
	level := zerolog.InfoLevel
	if cfg.Level != "" {
		parsed, err := zerolog.ParseLevel(cfg.Level)
		if err != nil {
			return err
		}
		level = parsed
	}

	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}

	switch cfg.Format {
	case "", FormatConsole:
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.Kitchen}
	case FormatJSON:
	default:
		return ErrUnknownFormat
	}

	l := zerolog.New(out).Level(level).With().Timestamp().Logger()

	mu.Lock()
	base = l
	mu.Unlock()

	return nil
}

func Base() zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return base
}

// WithComponent returns a child logger annotated with the component name.
func WithComponent(component string) zerolog.Logger {
	return Base().With().Str("component", component).Logger()
}
