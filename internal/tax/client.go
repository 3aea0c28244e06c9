// Package tax looks up state sales-tax rates from the external tax service.
package tax

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/ssgeek/commerce/internal/config"
	"github.com/ssgeek/commerce/internal/domain"
	"github.com/ssgeek/commerce/internal/metrics"
	apperrors "github.com/ssgeek/commerce/pkg/errors"
)

// ErrUnusableRate is returned when the service answers without a usable salesTax value.
var ErrUnusableRate = errors.New("tax service returned no usable rate")

var (
	hundred = decimal.NewFromInt(100)
	one     = decimal.NewFromInt(1)
)

type Client struct {
	baseURL    string
	percent    bool
	maxRetries int
	backoff    time.Duration
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a new tax service client
func NewClient(cfg config.TaxConfig, logger *zap.Logger) *Client {
	return &Client{
		baseURL:    strings.TrimSuffix(cfg.APIURL, "/"),
		percent:    cfg.RateUnit == config.RateUnitPercent,
		maxRetries: cfg.MaxRetries,
		backoff:    cfg.RetryBackoff,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		logger: logger,
	}
}

// RateResponse is the body returned by the tax service
type RateResponse struct {
	SalesTax    *decimal.Decimal `json:"salesTax"`
	LastUpdated string           `json:"lastUpdated,omitempty"`
}

// statusError carries a non-200 answer so the retry loop can tell 4xx from 5xx.
type statusError struct {
	code int
	body string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("tax API error: status %d, body: %s", e.code, e.body)
}

// FetchRate returns the sales tax of a state as a fraction (0.0575 for 5.75%).
func (c *Client) FetchRate(ctx context.Context, state string) (decimal.Decimal, error) {
	state = strings.ToUpper(strings.TrimSpace(state))
	if !domain.ValidState(state) {
		metrics.TaxLookups.WithLabelValues("invalid_state").Inc()
		return decimal.Zero, &apperrors.ErrValidation{Field: "state", Message: "must be two letters"}
	}

	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			if err := sleep(ctx, c.backoff*time.Duration(attempt)); err != nil {
				lastErr = err
				break
			}
			c.logger.Warn("Retrying tax rate lookup",
				zap.String("state", state),
				zap.Int("attempt", attempt+1),
				zap.Error(lastErr),
			)
		}

		rate, err := c.fetchOnce(ctx, state)
		if err == nil {
			metrics.TaxLookups.WithLabelValues("ok").Inc()
			return rate, nil
		}
		lastErr = err
		if !retryable(ctx, err) {
			break
		}
	}

	metrics.TaxLookups.WithLabelValues("error").Inc()
	return decimal.Zero, lastErr
}

func (c *Client) fetchOnce(ctx context.Context, state string) (decimal.Decimal, error) {
	metrics.TaxLookupAttempts.Inc()

	endpoint := fmt.Sprintf("%s?state=%s", c.baseURL, url.QueryEscape(state))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return decimal.Zero, &statusError{code: resp.StatusCode, body: string(body)}
	}

	var rateResp RateResponse
	if err := json.Unmarshal(body, &rateResp); err != nil {
		return decimal.Zero, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	if rateResp.SalesTax == nil || rateResp.SalesTax.IsNegative() {
		return decimal.Zero, ErrUnusableRate
	}

	rate := *rateResp.SalesTax
	if c.percent {
		rate = rate.Div(hundred)
	}
	// A fraction above 1 usually means a percent answer read with the wrong unit.
	if rate.GreaterThan(one) {
		return decimal.Zero, ErrUnusableRate
	}
	return rate, nil
}

// retryable reports whether another attempt could succeed: transport
// failures (including a per-attempt timeout) and 5xx answers.
func retryable(ctx context.Context, err error) bool {
	if ctx.Err() != nil {
		return false
	}
	var se *statusError
	if errors.As(err, &se) {
		return se.code >= http.StatusInternalServerError
	}
	var ue *url.Error
	return errors.As(err, &ue)
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
