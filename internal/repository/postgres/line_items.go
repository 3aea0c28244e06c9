package postgres

import (
	"context"
	"database/sql"

	"go.uber.org/zap"

	"github.com/ssgeek/commerce/internal/domain"
	apperrors "github.com/ssgeek/commerce/pkg/errors"
)

const lineItemSelect = `SELECT l.line_item_id, l.sale_id, l.product_id, l.quantity, p.name, p.price FROM line_item l JOIN product p ON p.product_id = l.product_id`

type lineItemRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

func NewLineItemRepository(db *sql.DB, logger *zap.Logger) *lineItemRepository {
	return &lineItemRepository{
		db:     db,
		logger: logger,
	}
}

func (r *lineItemRepository) ListBySale(ctx context.Context, saleID int) ([]*domain.LineItem, error) {
	rows, err := r.db.QueryContext(ctx, lineItemSelect+` WHERE l.sale_id = $1 ORDER BY l.line_item_id`, saleID)
	if err != nil {
		r.logger.Error("Failed to list line items", zap.Int("sale_id", saleID), zap.Error(err))
		return nil, classifyError("line_item.ListBySale", err)
	}
	defer rows.Close()

	items := []*domain.LineItem{}
	for rows.Next() {
		item, err := scanLineItem(rows)
		if err != nil {
			return nil, classifyError("line_item.ListBySale", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, classifyError("line_item.ListBySale", err)
	}
	return items, nil
}

func (r *lineItemRepository) Create(ctx context.Context, item *domain.LineItem) (*domain.LineItem, error) {
	if item.Quantity < 1 {
		return nil, &apperrors.ErrValidation{Field: "quantity", Message: "must be at least 1"}
	}

	var id int
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO line_item (sale_id, product_id, quantity) VALUES ($1, $2, $3) RETURNING line_item_id`,
		item.SaleID, item.ProductID, item.Quantity,
	).Scan(&id)
	if err != nil {
		r.logger.Error("Failed to create line item", zap.Int("sale_id", item.SaleID), zap.Error(err))
		return nil, classifyError("line_item.Create", err)
	}

	created, err := scanLineItem(r.db.QueryRowContext(ctx, lineItemSelect+` WHERE l.line_item_id = $1`, id))
	if err != nil {
		return nil, classifyError("line_item.Create", err)
	}
	return created, nil
}

func scanLineItem(row rowScanner) (*domain.LineItem, error) {
	var item domain.LineItem
	if err := row.Scan(&item.ID, &item.SaleID, &item.ProductID, &item.Quantity, &item.ProductName, &item.Price); err != nil {
		return nil, err
	}
	return &item, nil
}
