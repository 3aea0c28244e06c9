package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ssgeek/commerce/internal/api/middleware"
	"github.com/ssgeek/commerce/internal/domain"
	"github.com/ssgeek/commerce/internal/service"
)

// CartService is the cart pricing aggregator as seen by the handlers.
type CartService interface {
	GetCart(ctx context.Context, userID int) (*domain.Cart, error)
	GetCartItem(ctx context.Context, userID, cartItemID int) (*domain.CartItem, error)
	PutItemInCart(ctx context.Context, userID int, req service.AddCartItemRequest) (*domain.CartItem, error)
	SetItemQuantity(ctx context.Context, userID, productID, quantity int) (*domain.CartItem, error)
	RemoveItem(ctx context.Context, userID, productID int) (int64, error)
	ClearCart(ctx context.Context, userID int) (int64, error)
}

func currentUser(c *gin.Context) (*domain.User, bool) {
	user, ok := middleware.GetUserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return nil, false
	}
	return user, true
}

// HandleGetCart handles GET /cart
func HandleGetCart(carts CartService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c)
		if !ok {
			return
		}

		cart, err := carts.GetCart(c.Request.Context(), user.ID)
		if err != nil {
			respondError(c, logger, err, "Failed to price cart")
			return
		}

		c.JSON(http.StatusOK, cart)
	}
}

// HandleGetCartItem handles GET /cart/lines/:cartItemId
func HandleGetCartItem(carts CartService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c)
		if !ok {
			return
		}
		cartItemID, ok := paramID(c, "cartItemId")
		if !ok {
			return
		}

		item, err := carts.GetCartItem(c.Request.Context(), user.ID, cartItemID)
		if err != nil {
			respondError(c, logger, err, "Failed to get cart item")
			return
		}

		c.JSON(http.StatusOK, item)
	}
}

// HandleAddCartItem handles POST /cart/items
func HandleAddCartItem(carts CartService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c)
		if !ok {
			return
		}

		var req service.AddCartItemRequest
		if !bindJSON(c, &req) {
			return
		}

		item, err := carts.PutItemInCart(c.Request.Context(), user.ID, req)
		if err != nil {
			respondError(c, logger, err, "Failed to add cart item")
			return
		}

		c.JSON(http.StatusCreated, item)
	}
}

// HandleSetCartItemQuantity handles PUT /cart/items/:productId
func HandleSetCartItemQuantity(carts CartService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c)
		if !ok {
			return
		}
		productID, ok := paramID(c, "productId")
		if !ok {
			return
		}

		var req service.SetQuantityRequest
		if !bindJSON(c, &req) {
			return
		}

		item, err := carts.SetItemQuantity(c.Request.Context(), user.ID, productID, *req.Quantity)
		if err != nil {
			respondError(c, logger, err, "Failed to set cart item quantity")
			return
		}
		if item == nil {
			c.Status(http.StatusNoContent)
			return
		}

		c.JSON(http.StatusOK, item)
	}
}

// HandleRemoveCartItem handles DELETE /cart/items/:productId
func HandleRemoveCartItem(carts CartService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c)
		if !ok {
			return
		}
		productID, ok := paramID(c, "productId")
		if !ok {
			return
		}

		if _, err := carts.RemoveItem(c.Request.Context(), user.ID, productID); err != nil {
			respondError(c, logger, err, "Failed to remove cart item")
			return
		}

		c.Status(http.StatusNoContent)
	}
}

// HandleClearCart handles DELETE /cart
func HandleClearCart(carts CartService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c)
		if !ok {
			return
		}

		n, err := carts.ClearCart(c.Request.Context(), user.ID)
		if err != nil {
			respondError(c, logger, err, "Failed to clear cart")
			return
		}

		logger.Debug("Cart cleared", zap.Int("user_id", user.ID), zap.Int64("removed", n))
		c.Status(http.StatusNoContent)
	}
}
