package main

import (
	"log/slog"
	"os"

	"github.com/nps-soundscapes/activespace/cmd"
	"github.com/nps-soundscapes/activespace/internal/conf"
	"github.com/nps-soundscapes/activespace/internal/logging"
)

func main() {
	settings, err := conf.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	level := slog.LevelInfo
	if settings.Debug {
		level = slog.LevelDebug
	}
	logFile := ""
	if settings.Main.Log.Enabled {
		logFile = settings.Main.Log.Path
	}
	logging.Init(logFile, level)

	rootCmd := cmd.RootCommand(settings)
	if err := rootCmd.Execute(); err != nil {
		logging.HumanReadable().Error("command failed", "error", err)
		os.Exit(1)
	}
}
