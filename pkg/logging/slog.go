package logging

import (
	"log/slog"
	"os"
)

// New returns a JSON slog logger writing to stdout. Debug controls the
// minimum level.
func New(debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	h := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	})
	return slog.New(h)
}
