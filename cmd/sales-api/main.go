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

	ledgerDB, err := postgres.NewConnection(cfg.SalesDatabase)
	if err != nil {
		logger.Fatal("Failed to connect to sales database", zap.Error(err))
	}
	defer ledgerDB.Close()

	// Accounts live in the storefront database.
	accountsDB, err := postgres.NewConnection(cfg.Database)
	if err != nil {
		logger.Fatal("Failed to connect to accounts database", zap.Error(err))
	}
	defer accountsDB.Close()

	ledger := postgres.NewLedgerRepositories(ledgerDB, logger)
	users := postgres.NewUserRepository(accountsDB, logger)

	issuer := auth.NewIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	router := api.NewLedgerRouter(cfg, ledger, users, issuer, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := api.Serve(ctx, ":"+cfg.SalesPort, router, logger); err != nil {
		logger.Error("Sales API stopped", zap.Error(err))
		os.Exit(1)
	}
}
