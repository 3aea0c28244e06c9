package postgres

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	apperrors "github.com/ssgeek/commerce/pkg/errors"
)

func newMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func TestCartItemAdd_UsesSingleUpsert(t *testing.T) {
	db, mock := newMock(t)
	repo := NewCartItemRepository(db, zap.NewNop())
	ctx := context.Background()

	upsert := regexp.QuoteMeta(`DO UPDATE SET quantity = cart_item.quantity + EXCLUDED.quantity`)

	mock.ExpectQuery(upsert).
		WithArgs(1, 2, 2).
		WillReturnRows(sqlmock.NewRows([]string{"cart_item_id", "user_id", "product_id", "quantity"}).AddRow(10, 1, 2, 2))
	mock.ExpectQuery(upsert).
		WithArgs(1, 2, 3).
		WillReturnRows(sqlmock.NewRows([]string{"cart_item_id", "user_id", "product_id", "quantity"}).AddRow(10, 1, 2, 5))

	first, err := repo.Add(ctx, 1, 2, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, first.Quantity)

	second, err := repo.Add(ctx, 1, 2, 3)
	require.NoError(t, err)
	assert.Equal(t, 10, second.CartItemID, "same row is reused")
	assert.Equal(t, 5, second.Quantity)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCartItemAdd_RejectsNonPositiveQuantity(t *testing.T) {
	db, mock := newMock(t)
	repo := NewCartItemRepository(db, zap.NewNop())

	_, err := repo.Add(context.Background(), 1, 2, 0)
	assert.True(t, apperrors.IsValidation(err))
	require.NoError(t, mock.ExpectationsWereMet(), "no statement is issued")
}

func TestCartItemAdd_UnknownProductIsIntegrityError(t *testing.T) {
	db, mock := newMock(t)
	repo := NewCartItemRepository(db, zap.NewNop())

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO cart_item`)).
		WithArgs(1, 999, 1).
		WillReturnError(&pq.Error{Code: "23503", Constraint: "cart_item_product_id_fkey"})

	_, err := repo.Add(context.Background(), 1, 999, 1)
	require.Error(t, err)
	assert.True(t, apperrors.IsIntegrity(err))
}

func TestCartItemSetQuantity_ZeroDeletes(t *testing.T) {
	db, mock := newMock(t)
	repo := NewCartItemRepository(db, zap.NewNop())

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM cart_item WHERE user_id = $1 AND product_id = $2`)).
		WithArgs(1, 4).
		WillReturnResult(sqlmock.NewResult(0, 1))

	item, err := repo.SetQuantity(context.Background(), 1, 4, 0)
	require.NoError(t, err)
	assert.Nil(t, item)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCartItemSetQuantity_Replaces(t *testing.T) {
	db, mock := newMock(t)
	repo := NewCartItemRepository(db, zap.NewNop())

	mock.ExpectQuery(regexp.QuoteMeta(`DO UPDATE SET quantity = EXCLUDED.quantity`)).
		WithArgs(1, 4, 7).
		WillReturnRows(sqlmock.NewRows([]string{"cart_item_id", "user_id", "product_id", "quantity"}).AddRow(3, 1, 4, 7))

	item, err := repo.SetQuantity(context.Background(), 1, 4, 7)
	require.NoError(t, err)
	assert.Equal(t, 7, item.Quantity)
}

func TestCartItemDeletes(t *testing.T) {
	db, mock := newMock(t)
	repo := NewCartItemRepository(db, zap.NewNop())
	ctx := context.Background()

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM cart_item WHERE user_id = $1 AND product_id = $2`)).
		WithArgs(1, 2).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM cart_item WHERE user_id = $1`)).
		WithArgs(1).
		WillReturnResult(sqlmock.NewResult(0, 3))

	n, err := repo.DeleteByProduct(ctx, 1, 2)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	n, err = repo.DeleteByUser(ctx, 1)
	require.NoError(t, err)
	assert.EqualValues(t, 3, n)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCartItemGetByID_Absent(t *testing.T) {
	db, mock := newMock(t)
	repo := NewCartItemRepository(db, zap.NewNop())

	mock.ExpectQuery(regexp.QuoteMeta(`FROM cart_item`)).
		WithArgs(77).
		WillReturnRows(sqlmock.NewRows([]string{"cart_item_id", "user_id", "product_id", "quantity"}))

	item, err := repo.GetByID(context.Background(), 77)
	require.NoError(t, err)
	assert.Nil(t, item)
}

func TestCartDetailsListByUser(t *testing.T) {
	db, mock := newMock(t)
	repo := NewCartDetailsRepository(db, zap.NewNop())

	mock.ExpectQuery(regexp.QuoteMeta(`JOIN cart_item ci ON ci.product_id = p.product_id`)).
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"product_id", "name", "quantity", "price"}).
			AddRow(1, "Product 1", 1, "9.99").
			AddRow(2, "Product 2", 1, "19.00").
			AddRow(4, "Product 4", 1, "0.99"))

	details, err := repo.ListByUser(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, details, 3)
	assert.Equal(t, "Product 1", details[0].ProductName)
	assert.True(t, details[1].Price.Equal(decimal.RequireFromString("19")))
}

func TestCartDetailsGetStateCode(t *testing.T) {
	db, mock := newMock(t)
	repo := NewCartDetailsRepository(db, zap.NewNop())
	ctx := context.Background()

	query := regexp.QuoteMeta(`SELECT DISTINCT u.state_code`)
	mock.ExpectQuery(query).WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"state_code"}).AddRow("oh"))
	mock.ExpectQuery(query).WithArgs(2).
		WillReturnRows(sqlmock.NewRows([]string{"state_code"}))
	mock.ExpectQuery(query).WithArgs(3).
		WillReturnError(errors.New("boom"))

	state, err := repo.GetStateCode(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "OH", state)

	state, err = repo.GetStateCode(ctx, 2)
	require.NoError(t, err)
	assert.Empty(t, state)

	_, err = repo.GetStateCode(ctx, 3)
	require.Error(t, err)
}

func TestConnectionFailureIsClassified(t *testing.T) {
	db, mock := newMock(t)
	repo := NewCartDetailsRepository(db, zap.NewNop())

	mock.ExpectQuery(regexp.QuoteMeta(`FROM product p`)).
		WillReturnError(&pq.Error{Code: "08006", Message: "connection failure"})

	_, err := repo.ListByUser(context.Background(), 1)
	require.Error(t, err)
	assert.True(t, apperrors.IsConnection(err))
}
