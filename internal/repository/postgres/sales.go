package postgres

import (
	"context"
	"database/sql"
	"time"

	"go.uber.org/zap"

	"github.com/ssgeek/commerce/internal/domain"
)

const saleSelect = `SELECT s.sale_id, s.customer_id, s.sale_date, s.ship_date, c.name FROM sale s JOIN customer c ON c.customer_id = s.customer_id`

type saleRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewSaleRepository creates a new sale repository
func NewSaleRepository(db *sql.DB, logger *zap.Logger) *saleRepository {
	return &saleRepository{
		db:     db,
		logger: logger,
	}
}

func (r *saleRepository) GetByID(ctx context.Context, id int) (*domain.Sale, error) {
	s, err := scanSale(r.db.QueryRowContext(ctx, saleSelect+` WHERE s.sale_id = $1`, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get sale", zap.Int("sale_id", id), zap.Error(err))
		return nil, classifyError("sale.GetByID", err)
	}
	return s, nil
}

func (r *saleRepository) ListUnshipped(ctx context.Context) ([]*domain.Sale, error) {
	return r.list(ctx, "sale.ListUnshipped", saleSelect+` WHERE s.ship_date IS NULL ORDER BY s.sale_id`)
}

func (r *saleRepository) ListByCustomer(ctx context.Context, customerID int) ([]*domain.Sale, error) {
	return r.list(ctx, "sale.ListByCustomer", saleSelect+` WHERE s.customer_id = $1 ORDER BY s.sale_id`, customerID)
}

func (r *saleRepository) ListByProduct(ctx context.Context, productID int) ([]*domain.Sale, error) {
	query := saleSelect + `
		WHERE EXISTS (SELECT 1 FROM line_item l WHERE l.sale_id = s.sale_id AND l.product_id = $1)
		ORDER BY s.sale_id`
	return r.list(ctx, "sale.ListByProduct", query, productID)
}

func (r *saleRepository) list(ctx context.Context, op, query string, args ...interface{}) ([]*domain.Sale, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		r.logger.Error("Failed to list sales", zap.String("op", op), zap.Error(err))
		return nil, classifyError(op, err)
	}
	defer rows.Close()

	sales := []*domain.Sale{}
	for rows.Next() {
		s, err := scanSale(rows)
		if err != nil {
			return nil, classifyError(op, err)
		}
		sales = append(sales, s)
	}
	if err := rows.Err(); err != nil {
		return nil, classifyError(op, err)
	}
	return sales, nil
}

func (r *saleRepository) Create(ctx context.Context, sale *domain.Sale) (*domain.Sale, error) {
	query := `
		INSERT INTO sale (customer_id, sale_date, ship_date)
		VALUES ($1, $2, $3)
		RETURNING sale_id
	`

	var id int
	err := r.db.QueryRowContext(ctx, query, sale.CustomerID, sale.SaleDate, nullTime(sale.ShipDate)).Scan(&id)
	if err != nil {
		r.logger.Error("Failed to create sale", zap.Error(err))
		return nil, classifyError("sale.Create", err)
	}

	return r.GetByID(ctx, id)
}

// Update writes the denormalized customer name and the sale dates as one unit.
func (r *saleRepository) Update(ctx context.Context, sale *domain.Sale) (*domain.Sale, error) {
	updateCustomer := `
		UPDATE customer SET name = $1
		WHERE customer_id = (SELECT customer_id FROM sale WHERE sale_id = $2)
	`
	updateSale := `UPDATE sale SET sale_date = $1, ship_date = $2 WHERE sale_id = $3`

	err := withTx(ctx, r.db, "sale.Update", func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, updateCustomer, sale.CustomerName, sale.ID)
		if err != nil {
			return classifyError("sale.Update", err)
		}
		if err := expectRows("sale.Update", res); err != nil {
			return err
		}

		res, err = tx.ExecContext(ctx, updateSale, sale.SaleDate, nullTime(sale.ShipDate), sale.ID)
		if err != nil {
			return classifyError("sale.Update", err)
		}
		return expectRows("sale.Update", res)
	})
	if err != nil {
		r.logger.Error("Failed to update sale", zap.Int("sale_id", sale.ID), zap.Error(err))
		return nil, err
	}

	return r.GetByID(ctx, sale.ID)
}

// Delete removes the sale's line items and then the sale in one transaction.
func (r *saleRepository) Delete(ctx context.Context, id int) (int64, error) {
	var deleted int64
	err := withTx(ctx, r.db, "sale.Delete", func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM line_item WHERE sale_id = $1`, id); err != nil {
			return classifyError("sale.Delete", err)
		}
		res, err := tx.ExecContext(ctx, `DELETE FROM sale WHERE sale_id = $1`, id)
		if err != nil {
			return classifyError("sale.Delete", err)
		}
		deleted, err = res.RowsAffected()
		return err
	})
	if err != nil {
		r.logger.Error("Failed to delete sale", zap.Int("sale_id", id), zap.Error(err))
		return 0, err
	}
	return deleted, nil
}

func scanSale(row rowScanner) (*domain.Sale, error) {
	var s domain.Sale
	var shipDate sql.NullTime

	if err := row.Scan(&s.ID, &s.CustomerID, &s.SaleDate, &shipDate, &s.CustomerName); err != nil {
		return nil, err
	}
	if shipDate.Valid {
		s.ShipDate = &shipDate.Time
	}
	return &s, nil
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}
