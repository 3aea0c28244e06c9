package postgres

import (
	"context"
	"database/sql"
	"strings"

	"go.uber.org/zap"

	"github.com/ssgeek/commerce/internal/domain"
)

type cartDetailsRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewCartDetailsRepository creates the read side of the cart
func NewCartDetailsRepository(db *sql.DB, logger *zap.Logger) *cartDetailsRepository {
	return &cartDetailsRepository{
		db:     db,
		logger: logger,
	}
}

func (r *cartDetailsRepository) ListByUser(ctx context.Context, userID int) ([]domain.CartItemDetails, error) {
	query := `
		SELECT p.product_id, p.name, ci.quantity, p.price
		FROM product p
		JOIN cart_item ci ON ci.product_id = p.product_id
		WHERE ci.user_id = $1
		ORDER BY p.name, p.product_id
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		r.logger.Error("Failed to query cart details", zap.Int("user_id", userID), zap.Error(err))
		return nil, classifyError("cart_details.ListByUser", err)
	}
	defer rows.Close()

	details := []domain.CartItemDetails{}
	for rows.Next() {
		var d domain.CartItemDetails
		if err := rows.Scan(&d.ProductID, &d.ProductName, &d.Quantity, &d.Price); err != nil {
			return nil, classifyError("cart_details.ListByUser", err)
		}
		details = append(details, d)
	}
	if err := rows.Err(); err != nil {
		return nil, classifyError("cart_details.ListByUser", err)
	}
	return details, nil
}

func (r *cartDetailsRepository) GetStateCode(ctx context.Context, userID int) (string, error) {
	query := `
		SELECT DISTINCT u.state_code
		FROM users u
		JOIN cart_item ci ON ci.user_id = u.user_id
		WHERE ci.user_id = $1
	`

	var stateCode sql.NullString
	err := r.db.QueryRowContext(ctx, query, userID).Scan(&stateCode)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		r.logger.Error("Failed to get state code", zap.Int("user_id", userID), zap.Error(err))
		return "", classifyError("cart_details.GetStateCode", err)
	}
	if !stateCode.Valid {
		return "", nil
	}
	return strings.ToUpper(strings.TrimSpace(stateCode.String)), nil
}
