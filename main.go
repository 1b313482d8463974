package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/statevax/statevax-go/cmd"
	"github.com/statevax/statevax-go/internal/conf"
	"github.com/statevax/statevax-go/internal/logging"
)

func main() {
	// Load the configuration first so the log level is known.
	settings, err := conf.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error loading configuration: %v\n", err)
		os.Exit(1)
	}

	level := slog.LevelInfo
	if settings.Debug {
		level = slog.LevelDebug
	}
	logging.Init(level)

	if settings.Main.Log.Enabled {
		fileLogger, closeLogger, err := logging.NewFileLogger(settings.Main.Log.Path, "statevax-go", level)
		if err != nil {
			logging.Fatal("failed to set up file logging", "path", settings.Main.Log.Path, "error", err)
		}
		defer func() {
			if err := closeLogger(); err != nil {
				logging.Error("failed to close log file", "error", err)
			}
		}()
		slog.SetDefault(fileLogger)
	}

	rootCmd := cmd.RootCommand(settings)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
