package tax

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	apperrors "github.com/ssgeek/commerce/pkg/errors"
)

type fakeFetcher struct {
	rate  decimal.Decimal
	err   error
	calls int
}

func (f *fakeFetcher) FetchRate(_ context.Context, _ string) (decimal.Decimal, error) {
	f.calls++
	return f.rate, f.err
}

func TestGateway_CachesRates(t *testing.T) {
	f := &fakeFetcher{rate: decimal.RequireFromString("0.0575")}
	g := NewGateway(f, NewMemoryCache(), time.Minute, zap.NewNop())
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		rate, err := g.Rate(ctx, "oh")
		require.NoError(t, err)
		assert.True(t, rate.Equal(f.rate))
	}
	assert.Equal(t, 1, f.calls)
}

func TestGateway_ZeroTTLDisablesCache(t *testing.T) {
	f := &fakeFetcher{rate: decimal.RequireFromString("0.06")}
	g := NewGateway(f, NewMemoryCache(), 0, zap.NewNop())

	_, _ = g.Rate(context.Background(), "PA")
	_, _ = g.Rate(context.Background(), "PA")
	assert.Equal(t, 2, f.calls)
}

func TestGateway_WrapsFailures(t *testing.T) {
	f := &fakeFetcher{err: errors.New("connection refused")}
	g := NewGateway(f, NewMemoryCache(), time.Minute, zap.NewNop())

	_, err := g.Rate(context.Background(), "OH")
	require.Error(t, err)
	assert.True(t, apperrors.IsTaxUnavailable(err))

	var unavailable *apperrors.ErrTaxUnavailable
	require.ErrorAs(t, err, &unavailable)
	assert.Equal(t, "OH", unavailable.State)
}

func TestGateway_FailuresAreNotCached(t *testing.T) {
	f := &fakeFetcher{err: errors.New("boom")}
	g := NewGateway(f, NewMemoryCache(), time.Minute, zap.NewNop())
	ctx := context.Background()

	_, err := g.Rate(ctx, "OH")
	require.Error(t, err)

	f.err = nil
	f.rate = decimal.RequireFromString("0.0575")
	rate, err := g.Rate(ctx, "OH")
	require.NoError(t, err)
	assert.True(t, rate.Equal(f.rate))
}

func TestGateway_UnreachableRedisFallsBackToFetch(t *testing.T) {
	rdb := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer rdb.Close()

	f := &fakeFetcher{rate: decimal.RequireFromString("0.07")}
	g := NewGateway(f, NewRedisCache(rdb), time.Minute, zap.NewNop())

	rate, err := g.Rate(context.Background(), "TN")
	require.NoError(t, err)
	assert.True(t, rate.Equal(f.rate))
	assert.Equal(t, 1, f.calls)
}

func TestMemoryCache_Expiry(t *testing.T) {
	c := NewMemoryCache()
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "oh", decimal.RequireFromString("0.0575"), time.Minute))

	rate, ok, err := c.Get(ctx, "OH")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "0.0575", rate.String())

	now = now.Add(time.Minute)
	_, ok, err = c.Get(ctx, "OH")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisKey(t *testing.T) {
	assert.Equal(t, "taxrate:OH", redisKey("oh"))
}
