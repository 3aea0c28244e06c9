package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/ssgeek/commerce/internal/domain"
	"github.com/ssgeek/commerce/internal/repository"
)

type saleService struct {
	repos  *repository.LedgerRepositories
	logger *zap.Logger
}

// NewSaleService creates a new sale service
func NewSaleService(repos *repository.LedgerRepositories, logger *zap.Logger) *saleService {
	return &saleService{
		repos:  repos,
		logger: logger,
	}
}

func (s *saleService) Get(ctx context.Context, id int) (*domain.Sale, error) {
	sale, err := s.repos.Sale.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, notFound("sale", id)
	}
	return sale, nil
}

// List returns the sales selected by the filter. An empty filter is rejected
// since the ledger exposes no unbounded sale listing.
func (s *saleService) List(ctx context.Context, f SaleFilter) ([]*domain.Sale, error) {
	switch {
	case f.CustomerID != nil:
		return s.repos.Sale.ListByCustomer(ctx, *f.CustomerID)
	case f.ProductID != nil:
		return s.repos.Sale.ListByProduct(ctx, *f.ProductID)
	case f.Unshipped:
		return s.repos.Sale.ListUnshipped(ctx)
	default:
		return nil, validationError("filter", "one of customer_id, product_id or unshipped=true is required")
	}
}

func (s *saleService) Create(ctx context.Context, req SaleRequest) (*domain.Sale, error) {
	if req.CustomerID < 1 {
		return nil, validationError("customer_id", "must be a positive integer")
	}

	sale := &domain.Sale{CustomerID: req.CustomerID}
	if err := applyDates(sale, req); err != nil {
		return nil, err
	}

	created, err := s.repos.Sale.Create(ctx, sale)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Sale created", zap.Int("sale_id", created.ID), zap.Int("customer_id", created.CustomerID))
	return created, nil
}

// Update rewrites the sale dates and the name of the sale's customer.
// An empty customer name keeps the current one. A sale cannot move to another
// customer, so a customer_id other than the current one is refused.
func (s *saleService) Update(ctx context.Context, id int, req SaleRequest) (*domain.Sale, error) {
	sale, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.CustomerID != 0 && req.CustomerID != sale.CustomerID {
		return nil, validationError("customer_id", "cannot be changed on an existing sale")
	}

	if err := applyDates(sale, req); err != nil {
		return nil, err
	}
	if name := strings.TrimSpace(req.CustomerName); name != "" {
		sale.CustomerName = name
	}

	return s.repos.Sale.Update(ctx, sale)
}

// Delete removes the sale and its line items.
func (s *saleService) Delete(ctx context.Context, id int) error {
	n, err := s.repos.Sale.Delete(ctx, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return notFound("sale", id)
	}

	s.logger.Info("Sale deleted", zap.Int("sale_id", id))
	return nil
}

func (s *saleService) ListLineItems(ctx context.Context, saleID int) ([]*domain.LineItem, error) {
	if _, err := s.Get(ctx, saleID); err != nil {
		return nil, err
	}
	return s.repos.LineItem.ListBySale(ctx, saleID)
}

func (s *saleService) AddLineItem(ctx context.Context, saleID int, req LineItemRequest) (*domain.LineItem, error) {
	if req.Quantity < 1 {
		return nil, validationError("quantity", "must be at least 1")
	}
	if _, err := s.Get(ctx, saleID); err != nil {
		return nil, err
	}

	return s.repos.LineItem.Create(ctx, &domain.LineItem{
		SaleID:    saleID,
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
	})
}

// applyDates parses the request dates onto the sale. A ship date before the
// sale date is refused.
func applyDates(sale *domain.Sale, req SaleRequest) error {
	saleDate, err := parseDate("sale_date", req.SaleDate)
	if err != nil {
		return err
	}
	sale.SaleDate = saleDate
	sale.ShipDate = nil

	if req.ShipDate != nil && strings.TrimSpace(*req.ShipDate) != "" {
		shipDate, err := parseDate("ship_date", *req.ShipDate)
		if err != nil {
			return err
		}
		if shipDate.Before(saleDate) {
			return validationError("ship_date", "must not be before sale_date")
		}
		sale.ShipDate = &shipDate
	}
	return nil
}
