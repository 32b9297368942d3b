// Package logging sets up the application's structured loggers: a JSON logger
// writing to a rotated file and a human-readable text logger on stderr.
package logging

import (
	"io"
	"log/slog"
	"os"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/mahastuti/Birdstrike-sub000/internal/conf"
)

var (
	fileLogger    *slog.Logger
	consoleLogger *slog.Logger
)

// Init configures the loggers from settings. It is safe to call before any
// other package asks for a logger; callers that run earlier get the default
// slog logger.
func Init(settings *conf.Settings) {
	level := slog.LevelInfo
	if settings.Main.Debug {
		level = slog.LevelDebug
	}

	var fileWriter io.Writer = io.Discard
	if settings.Main.Log.Enabled {
		fileWriter = &lumberjack.Logger{
			Filename:   settings.Main.Log.Path,
			MaxSize:    settings.Main.Log.MaxSize,
			MaxAge:     settings.Main.Log.MaxAge,
			MaxBackups: settings.Main.Log.Backups,
		}
	}

	fileLogger = slog.New(slog.NewJSONHandler(fileWriter, &slog.HandlerOptions{
		Level: level,
	})).With("node", settings.Main.Name)

	consoleLogger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))

	slog.SetDefault(consoleLogger)
}

// ForService returns the structured file logger scoped to a service name.
// Before Init it falls back to the default logger so tests need no setup.
func ForService(service string) *slog.Logger {
	if fileLogger == nil {
		return slog.Default().With("service", service)
	}
	return fileLogger.With("service", service)
}

// Console returns the human-readable logger.
func Console() *slog.Logger {
	if consoleLogger == nil {
		return slog.Default()
	}
	return consoleLogger
}
