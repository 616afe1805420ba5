package main

import (
	"flag"
	"log/slog"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/openedu/conductor-api/internal/auth"
	"github.com/openedu/conductor-api/internal/config"
	"github.com/openedu/conductor-api/internal/database"
	"github.com/openedu/conductor-api/internal/logging"
	"github.com/openedu/conductor-api/internal/server"
)

func main() {
	configFile := flag.String("config", "", "path to a YAML config file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configFile)
	if err != nil {
		logging.New(os.Stderr, "info").Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := logging.New(os.Stdout, cfg.LogLevel)
	slog.SetDefault(logger)

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	db, err := database.Connect(cfg, logger)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	// Run migrations
	if err := database.Migrate(db, logger); err != nil {
		logger.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTIssuer, cfg.TokenTTL)
	r := server.NewRouter(db, tokens, logger)

	// Start server
	addr := ":" + cfg.Port
	logger.Info("server starting", "addr", addr)
	if err := r.Run(addr); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
