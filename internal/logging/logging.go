// Package logging provides the shared zerolog logger used across lazyrec.
package logging

import (
	"io"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

var (
	once     sync.Once
	logger   zerolog.Logger
	initFunc = func() { build(Options{Level: "info"}) }
)

// Options configures the process-wide logger.
type Options struct {
	// JSON switches to structured JSON output (production); console output
	// (human-readable, colorized) is used otherwise.
	JSON bool
	// Level is a zerolog level string ("debug", "info", "warn", "error").
	Level string
	Out   io.Writer
}

func build(opts Options) {
	out := opts.Out
	if out == nil {
		out = os.Stderr
	}
	if !opts.JSON {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}
	level, err := zerolog.ParseLevel(opts.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	logger = zerolog.New(out).Level(level).With().Timestamp().Logger()
}

// Init sets up the global logger. Safe to call once; subsequent calls are
// no-ops so packages can call it defensively without clobbering test setup.
func Init(opts Options) zerolog.Logger {
	once.Do(func() { build(opts) })
	return logger
}

// L returns the shared logger, initializing it with defaults if needed.
func L() zerolog.Logger {
	once.Do(initFunc)
	return logger
}

// Named returns a child logger tagged with a component name.
func Named(component string) zerolog.Logger {
	return L().With().Str("component", component).Logger()
}
