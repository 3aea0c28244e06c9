package tax

import (
	"context"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/ssgeek/commerce/internal/config"
	"github.com/ssgeek/commerce/internal/metrics"
	apperrors "github.com/ssgeek/commerce/pkg/errors"
)

// RateFetcher is satisfied by *Client.
type RateFetcher interface {
	FetchRate(ctx context.Context, state string) (decimal.Decimal, error)
}

// Gateway answers rate lookups from the cache and falls back to the tax
// service. A cache that errors is logged and bypassed.
type Gateway struct {
	fetcher RateFetcher
	cache   RateCache
	ttl     time.Duration
	logger  *zap.Logger
	closer  func() error
}

func NewGateway(fetcher RateFetcher, cache RateCache, ttl time.Duration, logger *zap.Logger) *Gateway {
	return &Gateway{
		fetcher: fetcher,
		cache:   cache,
		ttl:     ttl,
		logger:  logger,
	}
}

// NewGatewayFromConfig builds the client and picks Redis when an address is
// configured, the in-process cache otherwise.
func NewGatewayFromConfig(taxCfg config.TaxConfig, redisCfg config.RedisConfig, logger *zap.Logger) *Gateway {
	client := NewClient(taxCfg, logger)

	if !redisCfg.Enabled() {
		return NewGateway(client, NewMemoryCache(), taxCfg.CacheTTL, logger)
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     redisCfg.Addr,
		Password: redisCfg.Password,
		DB:       redisCfg.DB,
	})
	logger.Info("Using redis tax rate cache", zap.String("addr", redisCfg.Addr))

	g := NewGateway(client, NewRedisCache(rdb), taxCfg.CacheTTL, logger)
	g.closer = rdb.Close
	return g
}

// Rate returns the rate for a state. Failures come back as *ErrTaxUnavailable.
func (g *Gateway) Rate(ctx context.Context, state string) (decimal.Decimal, error) {
	state = strings.ToUpper(strings.TrimSpace(state))

	if g.cache != nil && g.ttl > 0 {
		rate, ok, err := g.cache.Get(ctx, state)
		switch {
		case err != nil:
			g.logger.Warn("Tax rate cache read failed", zap.String("state", state), zap.Error(err))
		case ok:
			metrics.TaxCacheHits.WithLabelValues(g.cache.Driver()).Inc()
			return rate, nil
		default:
			metrics.TaxCacheMisses.WithLabelValues(g.cache.Driver()).Inc()
		}
	}

	rate, err := g.fetcher.FetchRate(ctx, state)
	if err != nil {
		return decimal.Zero, &apperrors.ErrTaxUnavailable{State: state, Err: err}
	}

	if g.cache != nil && g.ttl > 0 {
		if err := g.cache.Set(ctx, state, rate, g.ttl); err != nil {
			g.logger.Warn("Tax rate cache write failed", zap.String("state", state), zap.Error(err))
		}
	}
	return rate, nil
}

// Close releases the cache connection, if any.
func (g *Gateway) Close() error {
	if g.closer == nil {
		return nil
	}
	return g.closer()
}
