package main

import (
	"log/slog"
	"os"

	"github.com/chadaustin/gmail-mbox-analyzer/internal/cli"
	"github.com/chadaustin/gmail-mbox-analyzer/internal/config"
)

func main() {
	level := slog.LevelInfo
	if cfg, err := config.Load(); err == nil {
		level = cfg.SlogLevel()
	}

	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	if err := cli.Execute(); err != nil {
		slog.Error("command failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
