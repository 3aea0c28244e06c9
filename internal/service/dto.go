package service

import (
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the wire format of sale and ship dates.
const DateLayout = "2006-01-02"

// AddCartItemRequest represents the add-to-cart payload
type AddCartItemRequest struct {
	ProductID int `json:"product_id" binding:"required,min=1"`
	Quantity  int `json:"quantity" binding:"required,min=1"`
}

// SetQuantityRequest sets the absolute quantity of a cart line. Zero or less removes it.
type SetQuantityRequest struct {
	Quantity *int `json:"quantity" binding:"required"`
}

// CustomerRequest is the create/update payload for a ledger customer
type CustomerRequest struct {
	Name           string  `json:"name" binding:"required,max=50"`
	StreetAddress1 string  `json:"street_address1" binding:"required,max=100"`
	StreetAddress2 *string `json:"street_address2,omitempty" binding:"omitempty,max=100"`
	City           string  `json:"city" binding:"required,max=50"`
	State          string  `json:"state" binding:"required"`
	ZipCode        string  `json:"zip_code" binding:"required"`
}

// ProductRequest is the create/update payload for a ledger product.
// Price is checked by the service, binding cannot express a decimal minimum.
type ProductRequest struct {
	Name        string          `json:"name" binding:"required,max=50"`
	Description *string         `json:"description" binding:"required"`
	Price       decimal.Decimal `json:"price"`
	ImageName   *string         `json:"image_name,omitempty" binding:"omitempty,max=50"`
}

// SaleRequest is the create/update payload for a sale. Dates use DateLayout.
// CustomerID is required on create; on update it may be omitted or repeat the
// sale's customer.
type SaleRequest struct {
	CustomerID   int     `json:"customer_id"`
	SaleDate     string  `json:"sale_date" binding:"required"`
	ShipDate     *string `json:"ship_date,omitempty"`
	CustomerName string  `json:"customer_name,omitempty"`
}

type LineItemRequest struct {
	ProductID int `json:"product_id" binding:"required,min=1"`
	Quantity  int `json:"quantity" binding:"required,min=1"`
}

// SaleFilter selects which sales List returns. CustomerID wins over
// ProductID, which wins over Unshipped.
type SaleFilter struct {
	CustomerID *int
	ProductID  *int
	Unshipped  bool
}

func parseDate(field, s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, validationError(field, "must be a date formatted as YYYY-MM-DD")
	}
	return t, nil
}
