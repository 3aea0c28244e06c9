package postgres

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var productColumns = []string{"product_id", "product_sku", "name", "description", "price", "image_name"}

func catalogRows() *sqlmock.Rows {
	return sqlmock.NewRows(productColumns).
		AddRow(1, "MUG-453HG", "Product 1", "Description 1", "9.99", "product-1.png").
		AddRow(2, "TOY-331JU", "Product 2", nil, "19.00", nil).
		AddRow(3, "MUG-345YU", "Product 3", "Description 3", "5.25", nil).
		AddRow(4, "TOY-234GH", "Product 4", nil, "0.99", "product-4.png")
}

func TestProductSearchByName(t *testing.T) {
	db, mock := newMock(t)
	repo := NewProductRepository(db, zap.NewNop())

	mock.ExpectQuery(regexp.QuoteMeta(`WHERE name ILIKE $1 ORDER BY name`)).
		WithArgs("%Prod%").
		WillReturnRows(catalogRows())

	products, err := repo.SearchByName(context.Background(), "Prod")
	require.NoError(t, err)
	require.Len(t, products, 4)
	assert.Equal(t, "Product 1", products[0].Name)
	require.NotNil(t, products[0].Description)
	assert.Nil(t, products[1].Description)
	assert.Nil(t, products[1].ImageName)
}

func TestProductSearchBySKU_EscapesWildcards(t *testing.T) {
	db, mock := newMock(t)
	repo := NewProductRepository(db, zap.NewNop())

	mock.ExpectQuery(regexp.QuoteMeta(`WHERE product_sku ILIKE $1 ORDER BY name`)).
		WithArgs(`%MUG\_4%`).
		WillReturnRows(sqlmock.NewRows(productColumns).AddRow(1, "MUG_453HG", "Product 1", nil, "9.99", nil))

	products, err := repo.SearchBySKU(context.Background(), "MUG_4")
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "MUG_453HG", products[0].SKU)
}

func TestProductList_OrderedByName(t *testing.T) {
	db, mock := newMock(t)
	repo := NewProductRepository(db, zap.NewNop())

	mock.ExpectQuery(regexp.QuoteMeta(`FROM product ORDER BY name`)).
		WillReturnRows(catalogRows())

	products, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, products, 4)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestProductGetByID(t *testing.T) {
	db, mock := newMock(t)
	repo := NewProductRepository(db, zap.NewNop())
	ctx := context.Background()

	mock.ExpectQuery(regexp.QuoteMeta(`WHERE product_id = $1`)).
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows(productColumns).AddRow(1, "MUG-453HG", "Product 1", nil, "9.99", nil))
	mock.ExpectQuery(regexp.QuoteMeta(`WHERE product_id = $1`)).
		WithArgs(99).
		WillReturnRows(sqlmock.NewRows(productColumns))

	p, err := repo.GetByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "9.99", p.Price.StringFixed(2))

	p, err = repo.GetByID(ctx, 99)
	require.NoError(t, err)
	assert.Nil(t, p)
}

func TestContainsPattern(t *testing.T) {
	assert.Equal(t, "%%", containsPattern(""))
	assert.Equal(t, "%Prod%", containsPattern("Prod"))
	assert.Equal(t, `%50\%%`, containsPattern("50%"))
	assert.Equal(t, `%a\\b%`, containsPattern(`a\b`))
}
