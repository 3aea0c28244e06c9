package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/ssgeek/commerce/internal/domain"
	"github.com/ssgeek/commerce/internal/repository"
)

type catalogService struct {
	repos  *repository.Repositories
	logger *zap.Logger
}

// NewCatalogService creates a new catalog service
func NewCatalogService(repos *repository.Repositories, logger *zap.Logger) *catalogService {
	return &catalogService{
		repos:  repos,
		logger: logger,
	}
}

// Search matches products by name, or by SKU when no name is given.
// With neither term the whole catalog is returned.
func (s *catalogService) Search(ctx context.Context, name, sku string) ([]*domain.Product, error) {
	name = strings.TrimSpace(name)
	sku = strings.TrimSpace(sku)

	switch {
	case name != "":
		return s.repos.Product.SearchByName(ctx, name)
	case sku != "":
		return s.repos.Product.SearchBySKU(ctx, sku)
	default:
		return s.repos.Product.List(ctx)
	}
}

func (s *catalogService) GetProduct(ctx context.Context, id int) (*domain.Product, error) {
	p, err := s.repos.Product.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, notFound("product", id)
	}
	return p, nil
}
