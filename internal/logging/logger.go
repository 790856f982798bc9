// Package logging constructs the zerolog logger used for command tracing.
package logging

import (
	"io"
	"time"

	"github.com/rs/zerolog"
)

// New returns a console logger writing to w. Verbose mode lowers the
// level to debug, which traces every external git/uv invocation.
func New(w io.Writer, verbose bool) zerolog.Logger {
	level := zerolog.WarnLevel
	if verbose {
		level = zerolog.DebugLevel
	}

	console := zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: time.Kitchen,
	}

	return zerolog.New(console).Level(level).With().Timestamp().Logger()
}
