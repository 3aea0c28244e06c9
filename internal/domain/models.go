package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a catalog entry. The storefront populates SKU, the ledger does not.
type Product struct {
	ID          int             `json:"product_id"`
	SKU         string          `json:"product_sku,omitempty"`
	Name        string          `json:"name"`
	Description *string         `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	ImageName   *string         `json:"image_name,omitempty"`
}

// CartItem is one (user, product) row of a shopping cart
type CartItem struct {
	CartItemID int `json:"cart_item_id"`
	UserID     int `json:"user_id"`
	ProductID  int `json:"product_id"`
	Quantity   int `json:"quantity"`
}

// CartItemDetails is a cart line joined to its product
type CartItemDetails struct {
	ProductID   int             `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
}

// LineTotal is the unrounded price × quantity of the line.
func (d CartItemDetails) LineTotal() decimal.Decimal {
	return d.Price.Mul(decimal.NewFromInt(int64(d.Quantity)))
}

// Cart is the priced view of a user's cart. It is never persisted.
type Cart struct {
	Items     []CartItemDetails `json:"items_in_cart"`
	Subtotal  decimal.Decimal   `json:"subtotal"`
	TaxAmount decimal.Decimal   `json:"tax_amount"`
	CartTotal decimal.Decimal   `json:"cart_total"`
	TaxStatus TaxStatus         `json:"tax_status"`
	TaxRate   *decimal.Decimal  `json:"tax_rate,omitempty"`
	StateCode string            `json:"state_code,omitempty"`
}

// User is the storefront account the cart belongs to
type User struct {
	ID           int       `json:"user_id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	StateCode    string    `json:"state_code"`
	CreatedAt    time.Time `json:"created_at"`
}

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)
