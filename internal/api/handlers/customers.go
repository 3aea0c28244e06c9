package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ssgeek/commerce/internal/domain"
	"github.com/ssgeek/commerce/internal/service"
)

type CustomerService interface {
	Get(ctx context.Context, id int) (*domain.Customer, error)
	List(ctx context.Context) ([]*domain.Customer, error)
	Create(ctx context.Context, req service.CustomerRequest) (*domain.Customer, error)
	Update(ctx context.Context, id int, req service.CustomerRequest) (*domain.Customer, error)
}

// HandleListCustomers handles GET /customers
func HandleListCustomers(customers CustomerService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		list, err := customers.List(c.Request.Context())
		if err != nil {
			respondError(c, logger, err, "Failed to list customers")
			return
		}
		c.JSON(http.StatusOK, gin.H{"customers": list, "count": len(list)})
	}
}

// HandleGetCustomer handles GET /customers/:id
func HandleGetCustomer(customers CustomerService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := paramID(c, "id")
		if !ok {
			return
		}

		customer, err := customers.Get(c.Request.Context(), id)
		if err != nil {
			respondError(c, logger, err, "Failed to get customer")
			return
		}
		c.JSON(http.StatusOK, customer)
	}
}

// HandleCreateCustomer handles POST /customers
func HandleCreateCustomer(customers CustomerService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req service.CustomerRequest
		if !bindJSON(c, &req) {
			return
		}

		customer, err := customers.Create(c.Request.Context(), req)
		if err != nil {
			respondError(c, logger, err, "Failed to create customer")
			return
		}
		c.JSON(http.StatusCreated, customer)
	}
}

// HandleUpdateCustomer handles PUT /customers/:id
func HandleUpdateCustomer(customers CustomerService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := paramID(c, "id")
		if !ok {
			return
		}

		var req service.CustomerRequest
		if !bindJSON(c, &req) {
			return
		}

		customer, err := customers.Update(c.Request.Context(), id, req)
		if err != nil {
			respondError(c, logger, err, "Failed to update customer")
			return
		}
		c.JSON(http.StatusOK, customer)
	}
}
