package postgres

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"time"

	_ "github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/ssgeek/commerce/internal/config"
	"github.com/ssgeek/commerce/internal/repository"
)

//go:embed migrations/storefront.sql
var storefrontSchema string

//go:embed migrations/ledger.sql
var ledgerSchema string

// Schema names accepted by Migrate.
const (
	SchemaStorefront = "storefront"
	SchemaLedger     = "ledger"
)

// NewConnection opens a pooled connection and verifies it with a ping.
func NewConnection(cfg config.DatabaseConfig) (*sql.DB, error) {
	db, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, classifyError("db.Ping", err)
	}

	return db, nil
}

// NewRepositories wires the storefront repositories.
func NewRepositories(db *sql.DB, logger *zap.Logger) *repository.Repositories {
	return &repository.Repositories{
		Product:     NewProductRepository(db, logger),
		CartItem:    NewCartItemRepository(db, logger),
		CartDetails: NewCartDetailsRepository(db, logger),
		User:        NewUserRepository(db, logger),
	}
}

// NewLedgerRepositories wires the sales ledger repositories.
func NewLedgerRepositories(db *sql.DB, logger *zap.Logger) *repository.LedgerRepositories {
	return &repository.LedgerRepositories{
		Customer: NewCustomerRepository(db, logger),
		Product:  NewLedgerProductRepository(db, logger),
		Sale:     NewSaleRepository(db, logger),
		LineItem: NewLineItemRepository(db, logger),
	}
}

// Migrate applies the embedded schema. Statements are idempotent.
func Migrate(ctx context.Context, db *sql.DB, schema string) error {
	var ddl string
	switch schema {
	case SchemaStorefront:
		ddl = storefrontSchema
	case SchemaLedger:
		ddl = ledgerSchema
	default:
		return fmt.Errorf("unknown schema %q", schema)
	}

	if _, err := db.ExecContext(ctx, ddl); err != nil {
		return classifyError("migrate."+schema, err)
	}
	return nil
}
