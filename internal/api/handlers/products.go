package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ssgeek/commerce/internal/domain"
)

// CatalogService is the storefront product lookup used by the handlers.
type CatalogService interface {
	Search(ctx context.Context, name, sku string) ([]*domain.Product, error)
	GetProduct(ctx context.Context, id int) (*domain.Product, error)
}

// HandleListProducts handles GET /products?name=&sku=
func HandleListProducts(catalog CatalogService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		products, err := catalog.Search(c.Request.Context(), c.Query("name"), c.Query("sku"))
		if err != nil {
			respondError(c, logger, err, "Failed to search products")
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"products": products,
			"count":    len(products),
		})
	}
}

// HandleGetProduct handles GET /products/:id
func HandleGetProduct(catalog CatalogService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := paramID(c, "id")
		if !ok {
			return
		}

		product, err := catalog.GetProduct(c.Request.Context(), id)
		if err != nil {
			respondError(c, logger, err, "Failed to get product")
			return
		}

		c.JSON(http.StatusOK, product)
	}
}
