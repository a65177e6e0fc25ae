package logger

import (
	"log/slog"
	"os"
)

var Log *slog.Logger

// Init configures the global JSON logger. Call once from main before any
// component logs.
func Init() {
	Log = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
}

// With returns a child logger tagged with a component name.
func With(component string) *slog.Logger {
	if Log == nil {
		Init()
	}
	return Log.With("component", component)
}
