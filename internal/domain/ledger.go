package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Customer is a sales ledger customer. State and ZipCode are empty when the
// stored value is malformed.
type Customer struct {
	ID             int     `json:"customer_id"`
	Name           string  `json:"name"`
	StreetAddress1 string  `json:"street_address1"`
	StreetAddress2 *string `json:"street_address2,omitempty"`
	City           string  `json:"city"`
	State          string  `json:"state"`
	ZipCode        string  `json:"zip_code"`
}

// Sale is a sale header. A nil ShipDate means the sale has not shipped.
type Sale struct {
	ID           int        `json:"sale_id"`
	CustomerID   int        `json:"customer_id"`
	SaleDate     time.Time  `json:"sale_date"`
	ShipDate     *time.Time `json:"ship_date,omitempty"`
	CustomerName string     `json:"customer_name"`
}

// IsShipped reports whether the sale has a ship date.
func (s Sale) IsShipped() bool {
	return s.ShipDate != nil
}

// LineItem is one product line of a sale. ProductName and Price reflect the
// product row at query time.
type LineItem struct {
	ID          int             `json:"line_item_id"`
	SaleID      int             `json:"sale_id"`
	ProductID   int             `json:"product_id"`
	Quantity    int             `json:"quantity"`
	ProductName string          `json:"product_name"`
	Price       decimal.Decimal `json:"price"`
}

// ValidState reports whether s is a two letter state code.
func ValidState(s string) bool {
	if len(s) != 2 {
		return false
	}
	for _, r := range s {
		if (r < 'A' || r > 'Z') && (r < 'a' || r > 'z') {
			return false
		}
	}
	return true
}

// ValidZip reports whether z is a five digit zip code.
func ValidZip(z string) bool {
	if len(z) != 5 {
		return false
	}
	for _, r := range z {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
