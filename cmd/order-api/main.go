package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/ssgeek/commerce/internal/api"
	"github.com/ssgeek/commerce/internal/auth"
	"github.com/ssgeek/commerce/internal/config"
	"github.com/ssgeek/commerce/internal/logging"
	"github.com/ssgeek/commerce/internal/repository/postgres"
	"github.com/ssgeek/commerce/internal/tax"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger, err := logging.New(cfg.Environment, cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	// Connect to database
	db, err := postgres.NewConnection(cfg.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	repos := postgres.NewRepositories(db, logger)

	rates := tax.NewGatewayFromConfig(cfg.Tax, cfg.Redis, logger)
	defer rates.Close()

	issuer := auth.NewIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	router := api.NewRouter(cfg, repos, rates, issuer, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := api.Serve(ctx, ":"+cfg.Port, router, logger); err != nil {
		logger.Error("Order API stopped", zap.Error(err))
		os.Exit(1)
	}
}
