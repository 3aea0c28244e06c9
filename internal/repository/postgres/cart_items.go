package postgres

import (
	"context"
	"database/sql"

	"go.uber.org/zap"

	"github.com/ssgeek/commerce/internal/domain"
	apperrors "github.com/ssgeek/commerce/pkg/errors"
)

type cartItemRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewCartItemRepository creates a new cart item repository
func NewCartItemRepository(db *sql.DB, logger *zap.Logger) *cartItemRepository {
	return &cartItemRepository{
		db:     db,
		logger: logger,
	}
}

func (r *cartItemRepository) GetByID(ctx context.Context, cartItemID int) (*domain.CartItem, error) {
	query := `
		SELECT cart_item_id, user_id, product_id, quantity
		FROM cart_item
		WHERE cart_item_id = $1
	`

	var item domain.CartItem
	err := r.db.QueryRowContext(ctx, query, cartItemID).Scan(
		&item.CartItemID,
		&item.UserID,
		&item.ProductID,
		&item.Quantity,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get cart item", zap.Int("cart_item_id", cartItemID), zap.Error(err))
		return nil, classifyError("cart_item.GetByID", err)
	}
	return &item, nil
}

// Add inserts the (user, product) row or increments its quantity in a single
// statement, relying on the unique (user_id, product_id) constraint.
func (r *cartItemRepository) Add(ctx context.Context, userID, productID, quantity int) (*domain.CartItem, error) {
	if quantity < 1 {
		return nil, &apperrors.ErrValidation{Field: "quantity", Message: "must be at least 1"}
	}

	query := `
		INSERT INTO cart_item (user_id, product_id, quantity)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, product_id)
		DO UPDATE SET quantity = cart_item.quantity + EXCLUDED.quantity
		RETURNING cart_item_id, user_id, product_id, quantity
	`

	var item domain.CartItem
	err := r.db.QueryRowContext(ctx, query, userID, productID, quantity).Scan(
		&item.CartItemID,
		&item.UserID,
		&item.ProductID,
		&item.Quantity,
	)
	if err != nil {
		r.logger.Error("Failed to add cart item",
			zap.Int("user_id", userID),
			zap.Int("product_id", productID),
			zap.Error(err),
		)
		return nil, classifyError("cart_item.Add", err)
	}
	return &item, nil
}

// SetQuantity replaces the quantity of a cart row, creating it if needed. A
// quantity below 1 removes the row and returns nil.
func (r *cartItemRepository) SetQuantity(ctx context.Context, userID, productID, quantity int) (*domain.CartItem, error) {
	if quantity < 1 {
		if _, err := r.DeleteByProduct(ctx, userID, productID); err != nil {
			return nil, err
		}
		return nil, nil
	}

	query := `
		INSERT INTO cart_item (user_id, product_id, quantity)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, product_id)
		DO UPDATE SET quantity = EXCLUDED.quantity
		RETURNING cart_item_id, user_id, product_id, quantity
	`

	var item domain.CartItem
	err := r.db.QueryRowContext(ctx, query, userID, productID, quantity).Scan(
		&item.CartItemID,
		&item.UserID,
		&item.ProductID,
		&item.Quantity,
	)
	if err != nil {
		r.logger.Error("Failed to set cart item quantity", zap.Int("user_id", userID), zap.Error(err))
		return nil, classifyError("cart_item.SetQuantity", err)
	}
	return &item, nil
}

func (r *cartItemRepository) DeleteByProduct(ctx context.Context, userID, productID int) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM cart_item WHERE user_id = $1 AND product_id = $2`, userID, productID)
	if err != nil {
		r.logger.Error("Failed to delete cart item", zap.Int("user_id", userID), zap.Error(err))
		return 0, classifyError("cart_item.DeleteByProduct", err)
	}
	return res.RowsAffected()
}

func (r *cartItemRepository) DeleteByUser(ctx context.Context, userID int) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM cart_item WHERE user_id = $1`, userID)
	if err != nil {
		r.logger.Error("Failed to clear cart", zap.Int("user_id", userID), zap.Error(err))
		return 0, classifyError("cart_item.DeleteByUser", err)
	}
	return res.RowsAffected()
}
