package main

import (
	"database/sql"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ssgeek/commerce/internal/config"
	"github.com/ssgeek/commerce/internal/repository/postgres"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:           "storefrontctl",
	Short:         "Operator tool for the storefront and sales ledger databases",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(userCmd)
	rootCmd.AddCommand(tokenCmd)
	rootCmd.AddCommand(productCmd)
}

// boot loads configuration, a development logger and the selected database.
func boot(ledger bool) (*config.Config, *zap.Logger, *sql.DB, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("load configuration: %w", err)
	}

	logger, _ := zap.NewDevelopment()

	dbCfg := cfg.Database
	if ledger {
		dbCfg = cfg.SalesDatabase
	}
	db, err := postgres.NewConnection(dbCfg)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("connect to database: %w", err)
	}
	return cfg, logger, db, nil
}
