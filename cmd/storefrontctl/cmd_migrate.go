package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ssgeek/commerce/internal/repository/postgres"
)

var migrateSchema string

// storefrontctl migrate --schema storefront|ledger
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the tables of the storefront or ledger database",
	RunE: func(cmd *cobra.Command, args []string) error {
		if migrateSchema != postgres.SchemaStorefront && migrateSchema != postgres.SchemaLedger {
			return fmt.Errorf("--schema must be %q or %q", postgres.SchemaStorefront, postgres.SchemaLedger)
		}

		_, logger, db, err := boot(migrateSchema == postgres.SchemaLedger)
		if err != nil {
			return err
		}
		defer logger.Sync()
		defer db.Close()

		fmt.Printf("Applying %s schema…\n", migrateSchema)
		if err := postgres.Migrate(cmd.Context(), db, migrateSchema); err != nil {
			return err
		}
		fmt.Println("✅ Schema is up to date")
		return nil
	},
}

func init() {
	migrateCmd.Flags().StringVar(&migrateSchema, "schema", postgres.SchemaStorefront, "schema to apply: storefront or ledger")
}
