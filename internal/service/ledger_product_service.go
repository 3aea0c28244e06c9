package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/ssgeek/commerce/internal/domain"
	"github.com/ssgeek/commerce/internal/repository"
)

type ledgerProductService struct {
	repos  *repository.LedgerRepositories
	logger *zap.Logger
}

// NewLedgerProductService creates the back office product service
func NewLedgerProductService(repos *repository.LedgerRepositories, logger *zap.Logger) *ledgerProductService {
	return &ledgerProductService{
		repos:  repos,
		logger: logger,
	}
}

func (s *ledgerProductService) Get(ctx context.Context, id int) (*domain.Product, error) {
	p, err := s.repos.Product.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, notFound("product", id)
	}
	return p, nil
}

func (s *ledgerProductService) List(ctx context.Context) ([]*domain.Product, error) {
	return s.repos.Product.List(ctx)
}

// ListUnsold returns products that appear on no line item.
func (s *ledgerProductService) ListUnsold(ctx context.Context) ([]*domain.Product, error) {
	return s.repos.Product.ListWithNoSales(ctx)
}

func (s *ledgerProductService) Create(ctx context.Context, req ProductRequest) (*domain.Product, error) {
	p, err := productFromRequest(req)
	if err != nil {
		return nil, err
	}
	return s.repos.Product.Create(ctx, p)
}

func (s *ledgerProductService) Update(ctx context.Context, id int, req ProductRequest) (*domain.Product, error) {
	p, err := productFromRequest(req)
	if err != nil {
		return nil, err
	}
	p.ID = id

	existing, err := s.repos.Product.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, notFound("product", id)
	}

	return s.repos.Product.Update(ctx, p)
}

// Delete removes the product together with the line items that reference it.
func (s *ledgerProductService) Delete(ctx context.Context, id int) error {
	n, err := s.repos.Product.Delete(ctx, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return notFound("product", id)
	}

	s.logger.Info("Product deleted", zap.Int("product_id", id))
	return nil
}

func productFromRequest(req ProductRequest) (*domain.Product, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, validationError("name", "is required")
	}
	if req.Description == nil {
		return nil, validationError("description", "is required")
	}
	if req.Price.IsNegative() {
		return nil, validationError("price", "must not be negative")
	}

	return &domain.Product{
		Name:        name,
		Description: req.Description,
		Price:       req.Price.Round(2),
		ImageName:   req.ImageName,
	}, nil
}
