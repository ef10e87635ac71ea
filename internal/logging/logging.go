// Package logging builds the simulator's structured console logger.
package logging

import (
	"log/slog"
	"os"

	"github.com/lmittmann/tint"
)

// New builds a tint-backed slog.Logger writing to stdout. debug selects
// slog.LevelDebug; otherwise slog.LevelInfo.
func New(debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(tint.NewHandler(os.Stdout, &tint.Options{
		Level:      level,
		TimeFormat: "15:04:05.000",
	}))
}
