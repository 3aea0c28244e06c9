package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ssgeek/commerce/internal/domain"
	"github.com/ssgeek/commerce/internal/service"
)

// LedgerProductService manages the back office product list.
type LedgerProductService interface {
	Get(ctx context.Context, id int) (*domain.Product, error)
	List(ctx context.Context) ([]*domain.Product, error)
	ListUnsold(ctx context.Context) ([]*domain.Product, error)
	Create(ctx context.Context, req service.ProductRequest) (*domain.Product, error)
	Update(ctx context.Context, id int, req service.ProductRequest) (*domain.Product, error)
	Delete(ctx context.Context, id int) error
}

// HandleListLedgerProducts handles GET /products
func HandleListLedgerProducts(products LedgerProductService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		list, err := products.List(c.Request.Context())
		if err != nil {
			respondError(c, logger, err, "Failed to list products")
			return
		}
		c.JSON(http.StatusOK, gin.H{"products": list, "count": len(list)})
	}
}

// HandleListUnsoldProducts handles GET /products/unsold
func HandleListUnsoldProducts(products LedgerProductService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		list, err := products.ListUnsold(c.Request.Context())
		if err != nil {
			respondError(c, logger, err, "Failed to list unsold products")
			return
		}
		c.JSON(http.StatusOK, gin.H{"products": list, "count": len(list)})
	}
}

// HandleGetLedgerProduct handles GET /products/:id
func HandleGetLedgerProduct(products LedgerProductService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := paramID(c, "id")
		if !ok {
			return
		}

		product, err := products.Get(c.Request.Context(), id)
		if err != nil {
			respondError(c, logger, err, "Failed to get product")
			return
		}
		c.JSON(http.StatusOK, product)
	}
}

// HandleCreateLedgerProduct handles POST /products
func HandleCreateLedgerProduct(products LedgerProductService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req service.ProductRequest
		if !bindJSON(c, &req) {
			return
		}

		product, err := products.Create(c.Request.Context(), req)
		if err != nil {
			respondError(c, logger, err, "Failed to create product")
			return
		}
		c.JSON(http.StatusCreated, product)
	}
}

// HandleUpdateLedgerProduct handles PUT /products/:id
func HandleUpdateLedgerProduct(products LedgerProductService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := paramID(c, "id")
		if !ok {
			return
		}

		var req service.ProductRequest
		if !bindJSON(c, &req) {
			return
		}

		product, err := products.Update(c.Request.Context(), id, req)
		if err != nil {
			respondError(c, logger, err, "Failed to update product")
			return
		}
		c.JSON(http.StatusOK, product)
	}
}

// HandleDeleteLedgerProduct handles DELETE /products/:id. Line items that
// reference the product are deleted with it.
func HandleDeleteLedgerProduct(products LedgerProductService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := paramID(c, "id")
		if !ok {
			return
		}

		if err := products.Delete(c.Request.Context(), id); err != nil {
			respondError(c, logger, err, "Failed to delete product")
			return
		}
		c.Status(http.StatusNoContent)
	}
}
