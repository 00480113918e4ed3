package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/rocketscienceinc/gomoku-backend/internal/config"
	"github.com/rocketscienceinc/gomoku-backend/internal/terminal"
)

// main - runs a two-player game in the terminal. Logs go to a file since the screen belongs to the board.
func main() {
	conf, err := config.LoadEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logFile, err := os.OpenFile(filepath.Join(os.TempDir(), "gomoku-term.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to open log file: %v\n", err)
		os.Exit(1)
	}
	defer logFile.Close()

	logger := initLogger(conf, logFile)

	if err = terminal.Run(terminal.NewController(logger, conf.Game.BoardSize)); err != nil {
		logger.Error("terminal client failed", "error", err)
		fmt.Fprintf(os.Stderr, "terminal client failed: %v\n", err)
		os.Exit(1)
	}
}

// initialize logger.
func initLogger(conf *config.Config, file *os.File) *slog.Logger {
	var level slog.Level

	switch conf.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	return slog.New(slog.NewJSONHandler(file, &slog.HandlerOptions{Level: level}))
}
