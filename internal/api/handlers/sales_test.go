package handlers

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ssgeek/commerce/internal/domain"
	"github.com/ssgeek/commerce/internal/service"
	apperrors "github.com/ssgeek/commerce/pkg/errors"
)

type fakeSales struct {
	filter  service.SaleFilter
	created service.SaleRequest
	deleted int
}

func (f *fakeSales) Get(_ context.Context, id int) (*domain.Sale, error) {
	if id != 1 {
		return nil, &apperrors.ErrNotFound{Resource: "sale", ID: "x"}
	}
	return &domain.Sale{ID: 1, CustomerID: 1, SaleDate: time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC)}, nil
}

func (f *fakeSales) List(_ context.Context, filter service.SaleFilter) ([]*domain.Sale, error) {
	f.filter = filter
	return []*domain.Sale{}, nil
}

func (f *fakeSales) Create(_ context.Context, req service.SaleRequest) (*domain.Sale, error) {
	f.created = req
	return &domain.Sale{ID: 2, CustomerID: req.CustomerID}, nil
}

func (f *fakeSales) Update(_ context.Context, id int, req service.SaleRequest) (*domain.Sale, error) {
	return f.Get(context.Background(), id)
}

func (f *fakeSales) Delete(_ context.Context, id int) error {
	f.deleted = id
	if id != 1 {
		return &apperrors.ErrNotFound{Resource: "sale", ID: "x"}
	}
	return nil
}

func (f *fakeSales) ListLineItems(_ context.Context, saleID int) ([]*domain.LineItem, error) {
	return []*domain.LineItem{{ID: 1, SaleID: saleID, ProductID: 1, Quantity: 1}}, nil
}

func (f *fakeSales) AddLineItem(_ context.Context, saleID int, req service.LineItemRequest) (*domain.LineItem, error) {
	return &domain.LineItem{ID: 9, SaleID: saleID, ProductID: req.ProductID, Quantity: req.Quantity}, nil
}

func salesRouter(sales SaleService) *gin.Engine {
	r := gin.New()
	logger := zap.NewNop()
	r.GET("/sales", HandleListSales(sales, logger))
	r.POST("/sales", HandleCreateSale(sales, logger))
	r.GET("/sales/:id", HandleGetSale(sales, logger))
	r.PUT("/sales/:id", HandleUpdateSale(sales, logger))
	r.DELETE("/sales/:id", HandleDeleteSale(sales, logger))
	r.GET("/sales/:id/line-items", HandleListLineItems(sales, logger))
	r.POST("/sales/:id/line-items", HandleAddLineItem(sales, logger))
	return r
}

func TestHandleListSales_Filters(t *testing.T) {
	sales := &fakeSales{}
	r := salesRouter(sales)

	require.Equal(t, http.StatusOK, perform(r, http.MethodGet, "/sales?customer_id=3", "").Code)
	require.NotNil(t, sales.filter.CustomerID)
	assert.Equal(t, 3, *sales.filter.CustomerID)

	require.Equal(t, http.StatusOK, perform(r, http.MethodGet, "/sales?unshipped=true", "").Code)
	assert.True(t, sales.filter.Unshipped)
	assert.Nil(t, sales.filter.CustomerID)

	assert.Equal(t, http.StatusBadRequest, perform(r, http.MethodGet, "/sales?product_id=x", "").Code)
}

func TestHandleSaleCRUD(t *testing.T) {
	sales := &fakeSales{}
	r := salesRouter(sales)

	w := perform(r, http.MethodPost, "/sales", `{"customer_id": 1, "sale_date": "2022-01-01"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "2022-01-01", sales.created.SaleDate)

	assert.Equal(t, http.StatusUnprocessableEntity, perform(r, http.MethodPost, "/sales", `{"customer_id": 1}`).Code)

	assert.Equal(t, http.StatusOK, perform(r, http.MethodGet, "/sales/1", "").Code)
	assert.Equal(t, http.StatusNotFound, perform(r, http.MethodGet, "/sales/99", "").Code)

	assert.Equal(t, http.StatusOK, perform(r, http.MethodPut, "/sales/1", `{"sale_date": "2020-01-01", "customer_name": "x"}`).Code)

	assert.Equal(t, http.StatusNoContent, perform(r, http.MethodDelete, "/sales/1", "").Code)
	assert.Equal(t, http.StatusNotFound, perform(r, http.MethodDelete, "/sales/99", "").Code)
}

func TestHandleLineItems(t *testing.T) {
	r := salesRouter(&fakeSales{})

	assert.Equal(t, http.StatusOK, perform(r, http.MethodGet, "/sales/1/line-items", "").Code)
	assert.Equal(t, http.StatusCreated, perform(r, http.MethodPost, "/sales/1/line-items", `{"product_id": 1, "quantity": 2}`).Code)
	assert.Equal(t, http.StatusUnprocessableEntity, perform(r, http.MethodPost, "/sales/1/line-items", `{"product_id": 1, "quantity": 0}`).Code)
}
