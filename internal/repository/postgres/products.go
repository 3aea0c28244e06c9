package postgres

import (
	"context"
	"database/sql"
	"strings"

	"go.uber.org/zap"

	"github.com/ssgeek/commerce/internal/domain"
)

const productSelect = `SELECT product_id, product_sku, name, description, price, image_name FROM product`

type productRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewProductRepository creates the storefront catalog repository
func NewProductRepository(db *sql.DB, logger *zap.Logger) *productRepository {
	return &productRepository{
		db:     db,
		logger: logger,
	}
}

func (r *productRepository) GetByID(ctx context.Context, id int) (*domain.Product, error) {
	query := productSelect + ` WHERE product_id = $1`

	p, err := scanProduct(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get product by ID", zap.Int("product_id", id), zap.Error(err))
		return nil, classifyError("product.GetByID", err)
	}
	return p, nil
}

func (r *productRepository) List(ctx context.Context) ([]*domain.Product, error) {
	return r.list(ctx, "product.List", productSelect+` ORDER BY name`)
}

func (r *productRepository) SearchByName(ctx context.Context, name string) ([]*domain.Product, error) {
	return r.list(ctx, "product.SearchByName", productSelect+` WHERE name ILIKE $1 ORDER BY name`, containsPattern(name))
}

func (r *productRepository) SearchBySKU(ctx context.Context, sku string) ([]*domain.Product, error) {
	return r.list(ctx, "product.SearchBySKU", productSelect+` WHERE product_sku ILIKE $1 ORDER BY name`, containsPattern(sku))
}

func (r *productRepository) list(ctx context.Context, op, query string, args ...interface{}) ([]*domain.Product, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		r.logger.Error("Failed to query products", zap.String("op", op), zap.Error(err))
		return nil, classifyError(op, err)
	}
	defer rows.Close()

	products := []*domain.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
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

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanProduct(row rowScanner) (*domain.Product, error) {
	var p domain.Product
	var description, imageName sql.NullString

	if err := row.Scan(&p.ID, &p.SKU, &p.Name, &description, &p.Price, &imageName); err != nil {
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

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern builds an ILIKE pattern matching term anywhere, with the
// term's own wildcard characters taken literally.
func containsPattern(term string) string {
	return "%" + likeEscaper.Replace(term) + "%"
}

// nullString maps an optional value to a nullable column.
func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}
