// Package logging builds the process zerolog logger.
package logging

import (
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"

	"github.com/coreman2200/blestrip/internal/config"
)

// New returns a logger writing to out. Format "json" writes JSON lines;
// anything else writes the human console format.
func New(c config.Log, out io.Writer) (zerolog.Logger, error) {
	lvl := zerolog.InfoLevel
	if c.Level != "" {
		l, err := zerolog.ParseLevel(c.Level)
		if err != nil {
			return zerolog.Nop(), fmt.Errorf("logging: %w", err)
		}
		lvl = l
	}

	zerolog.TimeFieldFormat = time.RFC3339
	w := out
	if c.Format != "json" {
		w = zerolog.ConsoleWriter{Out: out, TimeFormat: time.Kitchen}
	}
	return zerolog.New(w).Level(lvl).With().Timestamp().Logger(), nil
}

// Component tags a child logger with the component name.
func Component(l zerolog.Logger, name string) zerolog.Logger {
	return l.With().Str("component", name).Logger()
}
