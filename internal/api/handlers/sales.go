package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ssgeek/commerce/internal/domain"
	"github.com/ssgeek/commerce/internal/service"
)

type SaleService interface {
	Get(ctx context.Context, id int) (*domain.Sale, error)
	List(ctx context.Context, f service.SaleFilter) ([]*domain.Sale, error)
	Create(ctx context.Context, req service.SaleRequest) (*domain.Sale, error)
	Update(ctx context.Context, id int, req service.SaleRequest) (*domain.Sale, error)
	Delete(ctx context.Context, id int) error
	ListLineItems(ctx context.Context, saleID int) ([]*domain.LineItem, error)
	AddLineItem(ctx context.Context, saleID int, req service.LineItemRequest) (*domain.LineItem, error)
}

// HandleListSales handles GET /sales?customer_id=&product_id=&unshipped=true
func HandleListSales(sales SaleService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var filter service.SaleFilter

		if v := c.Query("customer_id"); v != "" {
			id, err := strconv.Atoi(v)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid customer_id"})
				return
			}
			filter.CustomerID = &id
		}
		if v := c.Query("product_id"); v != "" {
			id, err := strconv.Atoi(v)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product_id"})
				return
			}
			filter.ProductID = &id
		}
		if v := c.Query("unshipped"); v != "" {
			unshipped, err := strconv.ParseBool(v)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid unshipped"})
				return
			}
			filter.Unshipped = unshipped
		}

		list, err := sales.List(c.Request.Context(), filter)
		if err != nil {
			respondError(c, logger, err, "Failed to list sales")
			return
		}
		c.JSON(http.StatusOK, gin.H{"sales": list, "count": len(list)})
	}
}

// HandleGetSale handles GET /sales/:id
func HandleGetSale(sales SaleService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := paramID(c, "id")
		if !ok {
			return
		}

		sale, err := sales.Get(c.Request.Context(), id)
		if err != nil {
			respondError(c, logger, err, "Failed to get sale")
			return
		}
		c.JSON(http.StatusOK, sale)
	}
}

// HandleCreateSale handles POST /sales
func HandleCreateSale(sales SaleService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req service.SaleRequest
		if !bindJSON(c, &req) {
			return
		}

		sale, err := sales.Create(c.Request.Context(), req)
		if err != nil {
			respondError(c, logger, err, "Failed to create sale")
			return
		}
		c.JSON(http.StatusCreated, sale)
	}
}

// HandleUpdateSale handles PUT /sales/:id
func HandleUpdateSale(sales SaleService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := paramID(c, "id")
		if !ok {
			return
		}

		var req service.SaleRequest
		if !bindJSON(c, &req) {
			return
		}

		sale, err := sales.Update(c.Request.Context(), id, req)
		if err != nil {
			respondError(c, logger, err, "Failed to update sale")
			return
		}
		c.JSON(http.StatusOK, sale)
	}
}

// HandleDeleteSale handles DELETE /sales/:id
func HandleDeleteSale(sales SaleService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := paramID(c, "id")
		if !ok {
			return
		}

		if err := sales.Delete(c.Request.Context(), id); err != nil {
			respondError(c, logger, err, "Failed to delete sale")
			return
		}
		c.Status(http.StatusNoContent)
	}
}

// HandleListLineItems handles GET /sales/:id/line-items
func HandleListLineItems(sales SaleService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := paramID(c, "id")
		if !ok {
			return
		}

		items, err := sales.ListLineItems(c.Request.Context(), id)
		if err != nil {
			respondError(c, logger, err, "Failed to list line items")
			return
		}
		c.JSON(http.StatusOK, gin.H{"line_items": items, "count": len(items)})
	}
}

// HandleAddLineItem handles POST /sales/:id/line-items
func HandleAddLineItem(sales SaleService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := paramID(c, "id")
		if !ok {
			return
		}

		var req service.LineItemRequest
		if !bindJSON(c, &req) {
			return
		}

		item, err := sales.AddLineItem(c.Request.Context(), id, req)
		if err != nil {
			respondError(c, logger, err, "Failed to add line item")
			return
		}
		c.JSON(http.StatusCreated, item)
	}
}
