package main

import (
	"flag"
	"log/slog"
	"os"

	"github.com/stagekit/stagekit/config"
	"github.com/stagekit/stagekit/internal/library"
	"github.com/stagekit/stagekit/internal/server"
)

func main() {
	configPath := flag.String("config", "./config/config.yaml", "Path to configuration file")
	port := flag.String("port", "", "Server port (overrides config)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Warn("Failed to load configuration, using defaults", "error", err)
		cfg = config.Default()
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.Level(cfg.LogLevel)}))
	slog.SetDefault(logger)

	store, err := library.Open(cfg.Storage.Path)
	if err != nil {
		slog.Error("Failed to open library store", "error", err)
		os.Exit(1)
	}
	defer store.Close()

	if *port == "" {
		*port = cfg.Server.Port
	}

	srv := server.New(cfg, store)

	slog.Info("Starting StageKit API server", "port", *port, "storage", cfg.Storage.Path)
	if err := srv.Start(*port); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}
