package service

import (
	"context"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/ssgeek/commerce/internal/domain"
	"github.com/ssgeek/commerce/internal/metrics"
	"github.com/ssgeek/commerce/internal/repository"
)

// TaxRates is satisfied by *tax.Gateway.
type TaxRates interface {
	Rate(ctx context.Context, state string) (decimal.Decimal, error)
}

// TaxResult is the tax part of a priced cart
type TaxResult struct {
	Amount    decimal.Decimal
	Rate      *decimal.Decimal
	StateCode string
	Status    domain.TaxStatus
}

type cartService struct {
	repos  *repository.Repositories
	rates  TaxRates
	logger *zap.Logger
}

// NewCartService creates the cart pricing service
func NewCartService(repos *repository.Repositories, rates TaxRates, logger *zap.Logger) *cartService {
	return &cartService{
		repos:  repos,
		rates:  rates,
		logger: logger,
	}
}

// ceil2 rounds a money amount up to whole cents.
func ceil2(d decimal.Decimal) decimal.Decimal {
	return d.RoundCeil(2)
}

func subtotalOf(items []domain.CartItemDetails) decimal.Decimal {
	sum := decimal.Zero
	for _, item := range items {
		sum = sum.Add(item.LineTotal())
	}
	return ceil2(sum)
}

// GetCartItemDetails returns the user's cart lines ordered by product name.
func (s *cartService) GetCartItemDetails(ctx context.Context, userID int) ([]domain.CartItemDetails, error) {
	return s.repos.CartDetails.ListByUser(ctx, userID)
}

func (s *cartService) GetSubtotal(ctx context.Context, userID int) (decimal.Decimal, error) {
	items, err := s.repos.CartDetails.ListByUser(ctx, userID)
	if err != nil {
		return decimal.Zero, err
	}
	return subtotalOf(items), nil
}

// GetTaxAmount prices tax for the user's cart. A failing tax service does not
// fail the call; the result carries TaxStatusUnavailable and a zero amount.
func (s *cartService) GetTaxAmount(ctx context.Context, userID int) (*TaxResult, error) {
	subtotal, err := s.GetSubtotal(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.taxFor(ctx, userID, subtotal)
}

func (s *cartService) GetCartTotal(ctx context.Context, userID int) (decimal.Decimal, error) {
	cart, err := s.GetCart(ctx, userID)
	if err != nil {
		return decimal.Zero, err
	}
	return cart.CartTotal, nil
}

// GetCart builds the priced cart from a single read of the cart lines.
func (s *cartService) GetCart(ctx context.Context, userID int) (*domain.Cart, error) {
	items, err := s.repos.CartDetails.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	subtotal := subtotalOf(items)
	tax, err := s.taxFor(ctx, userID, subtotal)
	if err != nil {
		return nil, err
	}

	return &domain.Cart{
		Items:     items,
		Subtotal:  subtotal,
		TaxAmount: tax.Amount,
		CartTotal: ceil2(subtotal.Add(tax.Amount)),
		TaxStatus: tax.Status,
		TaxRate:   tax.Rate,
		StateCode: tax.StateCode,
	}, nil
}

func (s *cartService) taxFor(ctx context.Context, userID int, subtotal decimal.Decimal) (*TaxResult, error) {
	state, err := s.repos.CartDetails.GetStateCode(ctx, userID)
	if err != nil {
		return nil, err
	}

	result := &TaxResult{Amount: decimal.Zero, StateCode: state}
	defer func() {
		metrics.CartTaxStatus.WithLabelValues(string(result.Status)).Inc()
	}()

	if state == "" {
		result.Status = domain.TaxStatusNotApplicable
		return result, nil
	}

	rate, err := s.rates.Rate(ctx, state)
	if err != nil {
		s.logger.Error("Tax rate lookup failed, pricing cart without tax",
			zap.Int("user_id", userID),
			zap.String("state", state),
			zap.Error(err),
		)
		result.Status = domain.TaxStatusUnavailable
		return result, nil
	}

	result.Rate = &rate
	result.Amount = ceil2(rate.Mul(subtotal))
	result.Status = domain.TaxStatusCalculated
	return result, nil
}

// PutItemInCart adds quantity to the user's line for the product, creating it if needed.
func (s *cartService) PutItemInCart(ctx context.Context, userID int, req AddCartItemRequest) (*domain.CartItem, error) {
	if req.ProductID < 1 {
		return nil, validationError("product_id", "must be a positive integer")
	}
	if req.Quantity < 1 {
		return nil, validationError("quantity", "must be at least 1")
	}

	item, err := s.repos.CartItem.Add(ctx, userID, req.ProductID, req.Quantity)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("Cart item added",
		zap.Int("user_id", userID),
		zap.Int("product_id", req.ProductID),
		zap.Int("quantity", item.Quantity),
	)
	return item, nil
}

// GetCartItem returns one line of the user's cart. A line owned by another
// user is reported as not found.
func (s *cartService) GetCartItem(ctx context.Context, userID, cartItemID int) (*domain.CartItem, error) {
	item, err := s.repos.CartItem.GetByID(ctx, cartItemID)
	if err != nil {
		return nil, err
	}
	if item == nil || item.UserID != userID {
		return nil, notFound("cart item", cartItemID)
	}
	return item, nil
}

// SetItemQuantity replaces the quantity of a line. A quantity below 1 removes
// the line and returns nil.
func (s *cartService) SetItemQuantity(ctx context.Context, userID, productID, quantity int) (*domain.CartItem, error) {
	return s.repos.CartItem.SetQuantity(ctx, userID, productID, quantity)
}

// RemoveItem deletes the user's line for one product. Zero rows is not an error.
func (s *cartService) RemoveItem(ctx context.Context, userID, productID int) (int64, error) {
	return s.repos.CartItem.DeleteByProduct(ctx, userID, productID)
}

// ClearCart deletes every line of the user's cart.
func (s *cartService) ClearCart(ctx context.Context, userID int) (int64, error) {
	return s.repos.CartItem.DeleteByUser(ctx, userID)
}
