package main

import (
	"os"

	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
)

// newLogger builds the zerolog.Logger the CLI injects into fgk.Session: a
// human-readable console writer when stderr is a terminal, colorized via
// go-colorable so ANSI codes render correctly on Windows too, and
// newline-delimited JSON otherwise -- the standard zerolog CLI idiom. All
// progress and summary output goes to stderr, leaving stdout free of
// anything but file contents (spec.md §6).
func newLogger(level string, color bool) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}

	if isatty.IsTerminal(os.Stderr.Fd()) {
		w := zerolog.ConsoleWriter{Out: os.Stderr, NoColor: !color}
		if color {
			w.Out = colorable.NewColorable(os.Stderr)
		}
		return zerolog.New(w).Level(lvl).With().Timestamp().Logger()
	}

	// Not a terminal: emit newline-delimited JSON, the standard zerolog
	// fallback for piped or redirected output.
	return zerolog.New(os.Stderr).Level(lvl).With().Timestamp().Logger()
}
