package logging

import (
	"io"
	"log/slog"
	"os"

	"gopkg.in/natefinch/lumberjack.v2"
)

var structuredLogger *slog.Logger
var humanReadableLogger *slog.Logger

const (
	LevelTrace = slog.Level(-8)
	LevelFatal = slog.Level(12)
)

// Add trace and fatal level names.
var levelNames = map[slog.Leveler]string{
	LevelTrace: "TRACE",
	LevelFatal: "FATAL",
}

func replaceLevelNames(groups []string, a slog.Attr) slog.Attr {
	if a.Key == slog.LevelKey {
		level := a.Value.Any().(slog.Level)
		levelLabel, exists := levelNames[level]
		if !exists {
			levelLabel = level.String()
		}
		a.Value = slog.StringValue(levelLabel)
	}
	return a
}

// Init initializes the logging system with structured and human-readable loggers.
// Structured logs go to the rotated log file as JSON when logFile is non-empty,
// human-readable text goes to stderr.
func Init(logFile string, level slog.Level) {
	var structuredOut io.Writer = os.Stdout
	if logFile != "" {
		structuredOut = &lumberjack.Logger{
			Filename:   logFile,
			MaxSize:    10, // megabytes
			MaxBackups: 5,
			MaxAge:     30, // days
			Compress:   true,
		}
	}

	structuredHandler := slog.NewJSONHandler(structuredOut, &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: replaceLevelNames,
	})
	structuredLogger = slog.New(structuredHandler)

	humanReadableHandler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: replaceLevelNames,
	})
	humanReadableLogger = slog.New(humanReadableHandler)

	slog.SetDefault(structuredLogger)
}

// Structured returns the JSON logger, initializing with defaults if needed.
func Structured() *slog.Logger {
	if structuredLogger == nil {
		Init("", slog.LevelInfo)
	}
	return structuredLogger
}

// HumanReadable returns the text logger, initializing with defaults if needed.
func HumanReadable() *slog.Logger {
	if humanReadableLogger == nil {
		Init("", slog.LevelInfo)
	}
	return humanReadableLogger
}

// ForService returns a structured logger scoped to a named service.
func ForService(service string) *slog.Logger {
	return Structured().With("service", service)
}
