package main

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/term"

	"github.com/smarthome-go/ueval/ueval/config"
)

// useColor decides whether diagnostics written to `out` contain ANSI escape sequences.
func useColor(mode config.ColorMode, out *os.File) bool {
	switch mode {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	default:
		return term.IsTerminal(int(out.Fd()))
	}
}

func newLogger(cfg *config.Config, out io.Writer, color bool) zerolog.Logger {
	if !cfg.Output.Trace {
		return zerolog.Nop()
	}

	return zerolog.New(zerolog.NewConsoleWriter(func(w *zerolog.ConsoleWriter) {
		w.Out = out
		w.NoColor = !color
		w.TimeFormat = time.TimeOnly
	})).Level(cfg.TraceLevel()).With().Timestamp().Logger()
}
