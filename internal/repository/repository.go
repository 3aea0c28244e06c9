// Package repository declares the data access contracts. Lookups of a single
// row return (nil, nil) when the row does not exist.
package repository

import (
	"context"

	"github.com/ssgeek/commerce/internal/domain"
)

type ProductRepository interface {
	GetByID(ctx context.Context, id int) (*domain.Product, error)
	List(ctx context.Context) ([]*domain.Product, error)
	SearchByName(ctx context.Context, name string) ([]*domain.Product, error)
	SearchBySKU(ctx context.Context, sku string) ([]*domain.Product, error)
}

type CartItemRepository interface {
	GetByID(ctx context.Context, cartItemID int) (*domain.CartItem, error)
	Add(ctx context.Context, userID, productID, quantity int) (*domain.CartItem, error)
	SetQuantity(ctx context.Context, userID, productID, quantity int) (*domain.CartItem, error)
	DeleteByProduct(ctx context.Context, userID, productID int) (int64, error)
	DeleteByUser(ctx context.Context, userID int) (int64, error)
}

type CartDetailsRepository interface {
	ListByUser(ctx context.Context, userID int) ([]domain.CartItemDetails, error)
	// GetStateCode returns the state of the user owning the cart, or "" when
	// the cart is empty or the profile has no state.
	GetStateCode(ctx context.Context, userID int) (string, error)
}

type UserRepository interface {
	GetByID(ctx context.Context, id int) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) error
}

// Repositories groups the storefront repositories
type Repositories struct {
	Product     ProductRepository
	CartItem    CartItemRepository
	CartDetails CartDetailsRepository
	User        UserRepository
}

type CustomerRepository interface {
	GetByID(ctx context.Context, id int) (*domain.Customer, error)
	List(ctx context.Context) ([]*domain.Customer, error)
	Create(ctx context.Context, customer *domain.Customer) (*domain.Customer, error)
	Update(ctx context.Context, customer *domain.Customer) (*domain.Customer, error)
}

type LedgerProductRepository interface {
	GetByID(ctx context.Context, id int) (*domain.Product, error)
	List(ctx context.Context) ([]*domain.Product, error)
	ListWithNoSales(ctx context.Context) ([]*domain.Product, error)
	Create(ctx context.Context, product *domain.Product) (*domain.Product, error)
	Update(ctx context.Context, product *domain.Product) (*domain.Product, error)
	Delete(ctx context.Context, id int) (int64, error)
}

type SaleRepository interface {
	GetByID(ctx context.Context, id int) (*domain.Sale, error)
	ListUnshipped(ctx context.Context) ([]*domain.Sale, error)
	ListByCustomer(ctx context.Context, customerID int) ([]*domain.Sale, error)
	ListByProduct(ctx context.Context, productID int) ([]*domain.Sale, error)
	Create(ctx context.Context, sale *domain.Sale) (*domain.Sale, error)
	Update(ctx context.Context, sale *domain.Sale) (*domain.Sale, error)
	Delete(ctx context.Context, id int) (int64, error)
}

type LineItemRepository interface {
	ListBySale(ctx context.Context, saleID int) ([]*domain.LineItem, error)
	Create(ctx context.Context, item *domain.LineItem) (*domain.LineItem, error)
}

// LedgerRepositories groups the sales ledger repositories
type LedgerRepositories struct {
	Customer CustomerRepository
	Product  LedgerProductRepository
	Sale     SaleRepository
	LineItem LineItemRepository
}
