// Package logging configures the process-wide structured logger.
//
// Components take a zerolog.Logger in their constructors and tests pass
// zerolog.Nop(); this package only decides where the real output goes and
// hands out component-tagged children at wiring time.
package logging

import (
	"io"

	"github.com/rs/zerolog"
)

var root = zerolog.Nop()

// Init points the process logger at w. Verbose enables debug events.
// Call once at startup, before handing out component loggers.
func Init(w io.Writer, verbose bool) {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	console := zerolog.ConsoleWriter{Out: w, TimeFormat: "15:04:05"}
	root = zerolog.New(console).Level(level).With().Timestamp().Logger()
}

// Component returns a child logger tagged with the component name.
// Before Init runs, children discard everything, which keeps library
// tests quiet.
func Component(name string) zerolog.Logger {
	return root.With().Str("component", name).Logger()
}
