// Package logging provides a zerolog wrapper with opinionated defaults so
// every package logs through the same root logger instead of reaching for
// the standard library's log package.
package logging

import (
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

var (
	once sync.Once
	root zerolog.Logger
)

// Options configures the root logger.
type Options struct {
	Level  string // trace, debug, info, warn, error
	Format string // "console" or "json"
}

// Init configures zerolog and builds the root logger. Safe to call once;
// later calls are no-ops.
func Init(opt Options) {
	once.Do(func() {
		zerolog.TimeFieldFormat = time.RFC3339Nano

		var w interface {
			Write(p []byte) (int, error)
		} = os.Stdout
		if opt.Format != "json" {
			w = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
		}

		root = zerolog.New(w).Level(parseLevel(opt.Level)).With().Timestamp().Logger()
	})
}

func parseLevel(s string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// Get returns the process-wide root logger, initializing it with
// defaults if Init was never called.
func Get() *zerolog.Logger {
	once.Do(func() {
		root = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}).
			Level(zerolog.InfoLevel).With().Timestamp().Logger()
	})
	return &root
}

// Named returns a child logger tagged with a component field.
func Named(component string) *zerolog.Logger {
	l := Get().With().Str("component", component).Logger()
	return &l
}
