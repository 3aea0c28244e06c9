package postgres

import (
	"context"
	"database/sql"

	"go.uber.org/zap"

	"github.com/ssgeek/commerce/internal/domain"
)

const ledgerProductSelect = `SELECT p.product_id, p.name, p.description, p.price, p.image_name FROM product p`

type ledgerProductRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewLedgerProductRepository creates the back office product repository
func NewLedgerProductRepository(db *sql.DB, logger *zap.Logger) *ledgerProductRepository {
	return &ledgerProductRepository{
		db:     db,
		logger: logger,
	}
}

func (r *ledgerProductRepository) GetByID(ctx context.Context, id int) (*domain.Product, error) {
	p, err := scanLedgerProduct(r.db.QueryRowContext(ctx, ledgerProductSelect+` WHERE p.product_id = $1`, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get product", zap.Int("product_id", id), zap.Error(err))
		return nil, classifyError("ledger_product.GetByID", err)
	}
	return p, nil
}

func (r *ledgerProductRepository) List(ctx context.Context) ([]*domain.Product, error) {
	return r.list(ctx, "ledger_product.List", ledgerProductSelect+` ORDER BY p.product_id`)
}

func (r *ledgerProductRepository) ListWithNoSales(ctx context.Context) ([]*domain.Product, error) {
	query := ledgerProductSelect + `
		WHERE NOT EXISTS (SELECT 1 FROM line_item l WHERE l.product_id = p.product_id)
		ORDER BY p.product_id`
	return r.list(ctx, "ledger_product.ListWithNoSales", query)
}

func (r *ledgerProductRepository) list(ctx context.Context, op, query string) ([]*domain.Product, error) {
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		r.logger.Error("Failed to list products", zap.String("op", op), zap.Error(err))
		return nil, classifyError(op, err)
	}
	defer rows.Close()

	products := []*domain.Product{}
	for rows.Next() {
		p, err := scanLedgerProduct(rows)
		if err != nil {
			return nil, classifyError(op, err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, classifyError(op, err)
	}
	return products, nil
}

func (r *ledgerProductRepository) Create(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	query := `
		INSERT INTO product (name, description, price, image_name)
		VALUES ($1, $2, $3, $4)
		RETURNING product_id
	`

	var id int
	err := r.db.QueryRowContext(ctx, query,
		product.Name,
		nullString(product.Description),
		product.Price,
		nullString(product.ImageName),
	).Scan(&id)
	if err != nil {
		r.logger.Error("Failed to create product", zap.Error(err))
		return nil, classifyError("ledger_product.Create", err)
	}

	return r.GetByID(ctx, id)
}

func (r *ledgerProductRepository) Update(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	query := `
		UPDATE product
		SET name = $1, description = $2, price = $3, image_name = $4
		WHERE product_id = $5
	`

	res, err := r.db.ExecContext(ctx, query,
		product.Name,
		nullString(product.Description),
		product.Price,
		nullString(product.ImageName),
		product.ID,
	)
	if err != nil {
		r.logger.Error("Failed to update product", zap.Int("product_id", product.ID), zap.Error(err))
		return nil, classifyError("ledger_product.Update", err)
	}
	if err := expectRows("ledger_product.Update", res); err != nil {
		return nil, err
	}

	return r.GetByID(ctx, product.ID)
}

// Delete removes the product's line items and then the product in one transaction.
func (r *ledgerProductRepository) Delete(ctx context.Context, id int) (int64, error) {
	var deleted int64
	err := withTx(ctx, r.db, "ledger_product.Delete", func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM line_item WHERE product_id = $1`, id); err != nil {
			return classifyError("ledger_product.Delete", err)
		}
		res, err := tx.ExecContext(ctx, `DELETE FROM product WHERE product_id = $1`, id)
		if err != nil {
			return classifyError("ledger_product.Delete", err)
		}
		deleted, err = res.RowsAffected()
		return err
	})
	if err != nil {
		r.logger.Error("Failed to delete product", zap.Int("product_id", id), zap.Error(err))
		return 0, err
	}
	return deleted, nil
}

func scanLedgerProduct(row rowScanner) (*domain.Product, error) {
	var p domain.Product
	var description, imageName sql.NullString

	if err := row.Scan(&p.ID, &p.Name, &description, &p.Price, &imageName); err != nil {
		return nil, err
	}
	if description.Valid {
		p.Description = &description.String
	}
	if imageName.Valid {
		p.ImageName = &imageName.String
	}
	return &p, nil
}
