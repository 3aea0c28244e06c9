package tax

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
)

// RateCache stores fetched rates keyed by upper-case state code.
type RateCache interface {
	Get(ctx context.Context, state string) (decimal.Decimal, bool, error)
	Set(ctx context.Context, state string, rate decimal.Decimal, ttl time.Duration) error
	// Driver names the backend in metrics labels.
	Driver() string
}

const redisKeyPrefix = "taxrate:"

type redisCache struct {
	client *redis.Client
}

// NewRedisCache stores rates as decimal strings under taxrate:<STATE>.
func NewRedisCache(client *redis.Client) *redisCache {
	return &redisCache{client: client}
}

func (c *redisCache) Get(ctx context.Context, state string) (decimal.Decimal, bool, error) {
	val, err := c.client.Get(ctx, redisKey(state)).Result()
	if err == redis.Nil {
		return decimal.Zero, false, nil
	}
	if err != nil {
		return decimal.Zero, false, err
	}

	rate, err := decimal.NewFromString(val)
	if err != nil {
		return decimal.Zero, false, err
	}
	return rate, true, nil
}

func (c *redisCache) Set(ctx context.Context, state string, rate decimal.Decimal, ttl time.Duration) error {
	return c.client.Set(ctx, redisKey(state), rate.String(), ttl).Err()
}

func (c *redisCache) Driver() string { return "redis" }

func redisKey(state string) string {
	return redisKeyPrefix + strings.ToUpper(state)
}

type memoryEntry struct {
	rate    decimal.Decimal
	expires time.Time
}

type memoryCache struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	now     func() time.Time
}

// NewMemoryCache keeps rates in process. Expired entries are dropped on read.
func NewMemoryCache() *memoryCache {
	return &memoryCache{
		entries: make(map[string]memoryEntry),
		now:     time.Now,
	}
}

func (c *memoryCache) Get(_ context.Context, state string) (decimal.Decimal, bool, error) {
	key := strings.ToUpper(state)

	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return decimal.Zero, false, nil
	}
	if !c.now().Before(e.expires) {
		delete(c.entries, key)
		return decimal.Zero, false, nil
	}
	return e.rate, true, nil
}

func (c *memoryCache) Set(_ context.Context, state string, rate decimal.Decimal, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[strings.ToUpper(state)] = memoryEntry{rate: rate, expires: c.now().Add(ttl)}
	return nil
}

func (c *memoryCache) Driver() string { return "memory" }
