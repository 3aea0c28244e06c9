package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/ssgeek/commerce/internal/domain"
	"github.com/ssgeek/commerce/internal/repository"
)

type customerService struct {
	repos  *repository.LedgerRepositories
	logger *zap.Logger
}

// NewCustomerService creates a new customer service
func NewCustomerService(repos *repository.LedgerRepositories, logger *zap.Logger) *customerService {
	return &customerService{
		repos:  repos,
		logger: logger,
	}
}

func (s *customerService) Get(ctx context.Context, id int) (*domain.Customer, error) {
	c, err := s.repos.Customer.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, notFound("customer", id)
	}
	return c, nil
}

func (s *customerService) List(ctx context.Context) ([]*domain.Customer, error) {
	return s.repos.Customer.List(ctx)
}

func (s *customerService) Create(ctx context.Context, req CustomerRequest) (*domain.Customer, error) {
	c, err := customerFromRequest(req)
	if err != nil {
		return nil, err
	}
	return s.repos.Customer.Create(ctx, c)
}

func (s *customerService) Update(ctx context.Context, id int, req CustomerRequest) (*domain.Customer, error) {
	c, err := customerFromRequest(req)
	if err != nil {
		return nil, err
	}
	c.ID = id

	existing, err := s.repos.Customer.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, notFound("customer", id)
	}

	return s.repos.Customer.Update(ctx, c)
}

// customerFromRequest rejects malformed state and zip codes on write; reads
// tolerate them by blanking the field instead.
func customerFromRequest(req CustomerRequest) (*domain.Customer, error) {
	state := strings.ToUpper(strings.TrimSpace(req.State))
	zip := strings.TrimSpace(req.ZipCode)

	if strings.TrimSpace(req.Name) == "" {
		return nil, validationError("name", "is required")
	}
	if !domain.ValidState(state) {
		return nil, validationError("state", "must be a two letter code")
	}
	if !domain.ValidZip(zip) {
		return nil, validationError("zip_code", "must be five digits")
	}

	return &domain.Customer{
		Name:           strings.TrimSpace(req.Name),
		StreetAddress1: req.StreetAddress1,
		StreetAddress2: req.StreetAddress2,
		City:           req.City,
		State:          state,
		ZipCode:        zip,
	}, nil
}
