package service

import (
	"context"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/ssgeek/commerce/internal/domain"
	"github.com/ssgeek/commerce/internal/repository"
	apperrors "github.com/ssgeek/commerce/pkg/errors"
)

// memStore is an in-memory storefront: products, cart lines and user states.
type memStore struct {
	products map[int]*domain.Product
	cart     map[[2]int]*domain.CartItem
	states   map[int]string
	nextID   int
	err      error
}

func newMemStore() *memStore {
	return &memStore{
		products: map[int]*domain.Product{},
		cart:     map[[2]int]*domain.CartItem{},
		states:   map[int]string{},
	}
}

func (m *memStore) addProduct(id int, sku, name, price string) {
	m.products[id] = &domain.Product{ID: id, SKU: sku, Name: name, Price: decimal.RequireFromString(price)}
}

func (m *memStore) repos() *repository.Repositories {
	return &repository.Repositories{
		Product:     memProducts{m},
		CartItem:    memCartItems{m},
		CartDetails: memCartDetails{m},
	}
}

type memProducts struct{ m *memStore }

func (r memProducts) sorted(keep func(*domain.Product) bool) []*domain.Product {
	out := []*domain.Product{}
	for _, p := range r.m.products {
		if keep(p) {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func (r memProducts) GetByID(_ context.Context, id int) (*domain.Product, error) {
	return r.m.products[id], r.m.err
}

func (r memProducts) List(_ context.Context) ([]*domain.Product, error) {
	return r.sorted(func(*domain.Product) bool { return true }), r.m.err
}

func (r memProducts) SearchByName(_ context.Context, name string) ([]*domain.Product, error) {
	return r.sorted(func(p *domain.Product) bool {
		return strings.Contains(strings.ToLower(p.Name), strings.ToLower(name))
	}), r.m.err
}

func (r memProducts) SearchBySKU(_ context.Context, sku string) ([]*domain.Product, error) {
	return r.sorted(func(p *domain.Product) bool {
		return strings.Contains(strings.ToLower(p.SKU), strings.ToLower(sku))
	}), r.m.err
}

type memCartItems struct{ m *memStore }

func (r memCartItems) GetByID(_ context.Context, id int) (*domain.CartItem, error) {
	for _, item := range r.m.cart {
		if item.CartItemID == id {
			return item, nil
		}
	}
	return nil, nil
}

func (r memCartItems) Add(_ context.Context, userID, productID, quantity int) (*domain.CartItem, error) {
	if _, ok := r.m.products[productID]; !ok {
		return nil, &apperrors.ErrIntegrity{Op: "cart_item.Add", Constraint: "cart_item_product_id_fkey"}
	}
	key := [2]int{userID, productID}
	if item, ok := r.m.cart[key]; ok {
		item.Quantity += quantity
		return item, nil
	}
	r.m.nextID++
	item := &domain.CartItem{CartItemID: r.m.nextID, UserID: userID, ProductID: productID, Quantity: quantity}
	r.m.cart[key] = item
	return item, nil
}

func (r memCartItems) SetQuantity(ctx context.Context, userID, productID, quantity int) (*domain.CartItem, error) {
	if quantity < 1 {
		_, err := r.DeleteByProduct(ctx, userID, productID)
		return nil, err
	}
	key := [2]int{userID, productID}
	delete(r.m.cart, key)
	return r.Add(ctx, userID, productID, quantity)
}

func (r memCartItems) DeleteByProduct(_ context.Context, userID, productID int) (int64, error) {
	key := [2]int{userID, productID}
	if _, ok := r.m.cart[key]; !ok {
		return 0, nil
	}
	delete(r.m.cart, key)
	return 1, nil
}

func (r memCartItems) DeleteByUser(_ context.Context, userID int) (int64, error) {
	var n int64
	for key := range r.m.cart {
		if key[0] == userID {
			delete(r.m.cart, key)
			n++
		}
	}
	return n, nil
}

type memCartDetails struct{ m *memStore }

func (r memCartDetails) ListByUser(_ context.Context, userID int) ([]domain.CartItemDetails, error) {
	if r.m.err != nil {
		return nil, r.m.err
	}
	out := []domain.CartItemDetails{}
	for key, item := range r.m.cart {
		if key[0] != userID {
			continue
		}
		p := r.m.products[item.ProductID]
		out = append(out, domain.CartItemDetails{
			ProductID:   p.ID,
			ProductName: p.Name,
			Quantity:    item.Quantity,
			Price:       p.Price,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ProductName < out[j].ProductName })
	return out, nil
}

func (r memCartDetails) GetStateCode(_ context.Context, userID int) (string, error) {
	for key := range r.m.cart {
		if key[0] == userID {
			return r.m.states[userID], nil
		}
	}
	return "", nil
}

type fakeRates struct {
	rate  decimal.Decimal
	err   error
	calls int
}

func (f *fakeRates) Rate(_ context.Context, state string) (decimal.Decimal, error) {
	f.calls++
	if f.err != nil {
		return decimal.Zero, &apperrors.ErrTaxUnavailable{State: state, Err: f.err}
	}
	return f.rate, nil
}

// memLedger is an in-memory sales ledger.
type memLedger struct {
	customers map[int]*domain.Customer
	products  map[int]*domain.Product
	sales     map[int]*domain.Sale
	lineItems map[int]*domain.LineItem
	nextID    int
}

func newMemLedger() *memLedger {
	return &memLedger{
		customers: map[int]*domain.Customer{},
		products:  map[int]*domain.Product{},
		sales:     map[int]*domain.Sale{},
		lineItems: map[int]*domain.LineItem{},
	}
}

func (m *memLedger) id() int {
	m.nextID++
	return m.nextID
}

func (m *memLedger) repos() *repository.LedgerRepositories {
	return &repository.LedgerRepositories{
		Customer: memCustomers{m},
		Product:  memLedgerProducts{m},
		Sale:     memSales{m},
		LineItem: memLineItems{m},
	}
}

type memCustomers struct{ m *memLedger }

func (r memCustomers) GetByID(_ context.Context, id int) (*domain.Customer, error) {
	return r.m.customers[id], nil
}

func (r memCustomers) List(_ context.Context) ([]*domain.Customer, error) {
	out := []*domain.Customer{}
	for _, c := range r.m.customers {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r memCustomers) Create(_ context.Context, c *domain.Customer) (*domain.Customer, error) {
	c.ID = r.m.id()
	r.m.customers[c.ID] = c
	return c, nil
}

func (r memCustomers) Update(_ context.Context, c *domain.Customer) (*domain.Customer, error) {
	if _, ok := r.m.customers[c.ID]; !ok {
		return nil, &apperrors.ErrUnexpectedRowCount{Op: "customer.Update", Expected: 1}
	}
	r.m.customers[c.ID] = c
	return c, nil
}

type memLedgerProducts struct{ m *memLedger }

func (r memLedgerProducts) GetByID(_ context.Context, id int) (*domain.Product, error) {
	return r.m.products[id], nil
}

func (r memLedgerProducts) List(_ context.Context) ([]*domain.Product, error) {
	out := []*domain.Product{}
	for _, p := range r.m.products {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r memLedgerProducts) ListWithNoSales(ctx context.Context) ([]*domain.Product, error) {
	all, _ := r.List(ctx)
	out := []*domain.Product{}
	for _, p := range all {
		sold := false
		for _, li := range r.m.lineItems {
			if li.ProductID == p.ID {
				sold = true
			}
		}
		if !sold {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r memLedgerProducts) Create(_ context.Context, p *domain.Product) (*domain.Product, error) {
	p.ID = r.m.id()
	r.m.products[p.ID] = p
	return p, nil
}

func (r memLedgerProducts) Update(_ context.Context, p *domain.Product) (*domain.Product, error) {
	r.m.products[p.ID] = p
	return p, nil
}

func (r memLedgerProducts) Delete(_ context.Context, id int) (int64, error) {
	if _, ok := r.m.products[id]; !ok {
		return 0, nil
	}
	for liID, li := range r.m.lineItems {
		if li.ProductID == id {
			delete(r.m.lineItems, liID)
		}
	}
	delete(r.m.products, id)
	return 1, nil
}

type memSales struct{ m *memLedger }

func (r memSales) withName(s *domain.Sale) *domain.Sale {
	out := *s
	if c, ok := r.m.customers[s.CustomerID]; ok {
		out.CustomerName = c.Name
	}
	return &out
}

func (r memSales) filter(keep func(*domain.Sale) bool) []*domain.Sale {
	out := []*domain.Sale{}
	for _, s := range r.m.sales {
		if keep(s) {
			out = append(out, r.withName(s))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (r memSales) GetByID(_ context.Context, id int) (*domain.Sale, error) {
	s, ok := r.m.sales[id]
	if !ok {
		return nil, nil
	}
	return r.withName(s), nil
}

func (r memSales) ListUnshipped(_ context.Context) ([]*domain.Sale, error) {
	return r.filter(func(s *domain.Sale) bool { return s.ShipDate == nil }), nil
}

func (r memSales) ListByCustomer(_ context.Context, customerID int) ([]*domain.Sale, error) {
	return r.filter(func(s *domain.Sale) bool { return s.CustomerID == customerID }), nil
}

func (r memSales) ListByProduct(_ context.Context, productID int) ([]*domain.Sale, error) {
	return r.filter(func(s *domain.Sale) bool {
		for _, li := range r.m.lineItems {
			if li.SaleID == s.ID && li.ProductID == productID {
				return true
			}
		}
		return false
	}), nil
}

func (r memSales) Create(_ context.Context, s *domain.Sale) (*domain.Sale, error) {
	if _, ok := r.m.customers[s.CustomerID]; !ok {
		return nil, &apperrors.ErrIntegrity{Op: "sale.Create", Constraint: "sale_customer_id_fkey"}
	}
	s.ID = r.m.id()
	r.m.sales[s.ID] = s
	return r.withName(s), nil
}

func (r memSales) Update(_ context.Context, s *domain.Sale) (*domain.Sale, error) {
	stored, ok := r.m.sales[s.ID]
	if !ok {
		return nil, &apperrors.ErrUnexpectedRowCount{Op: "sale.Update", Expected: 1}
	}
	if c, ok := r.m.customers[stored.CustomerID]; ok {
		c.Name = s.CustomerName
	}
	stored.SaleDate = s.SaleDate
	stored.ShipDate = s.ShipDate
	return r.withName(stored), nil
}

func (r memSales) Delete(_ context.Context, id int) (int64, error) {
	if _, ok := r.m.sales[id]; !ok {
		return 0, nil
	}
	for liID, li := range r.m.lineItems {
		if li.SaleID == id {
			delete(r.m.lineItems, liID)
		}
	}
	delete(r.m.sales, id)
	return 1, nil
}

type memLineItems struct{ m *memLedger }

func (r memLineItems) ListBySale(_ context.Context, saleID int) ([]*domain.LineItem, error) {
	out := []*domain.LineItem{}
	for _, li := range r.m.lineItems {
		if li.SaleID == saleID {
			out = append(out, li)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r memLineItems) Create(_ context.Context, li *domain.LineItem) (*domain.LineItem, error) {
	p, ok := r.m.products[li.ProductID]
	if !ok {
		return nil, &apperrors.ErrIntegrity{Op: "line_item.Create", Constraint: "line_item_product_id_fkey"}
	}
	li.ID = r.m.id()
	li.ProductName = p.Name
	li.Price = p.Price
	r.m.lineItems[li.ID] = li
	return li, nil
}
