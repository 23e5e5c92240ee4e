package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rgehrsitz/fincalc/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingRunner struct {
	calls int
	err   error
}

func (c *countingRunner) Run(_ context.Context, req domain.CalculationRequest) (*domain.CalculationOutcome, error) {
	c.calls++
	if c.err != nil {
		return nil, c.err
	}
	return &domain.CalculationOutcome{
		Request: req,
		CAGR:    &domain.CAGRResult{CAGRPercent: decimal.RequireFromString("20.11"), AbsoluteReturn: req.CAGR.Final.Sub(req.CAGR.Initial)},
	}, nil
}

func cagrRequest(name string) domain.CalculationRequest {
	return domain.CalculationRequest{
		Name: name,
		Kind: domain.KindCAGR,
		CAGR: &domain.CAGRInputs{Initial: decimal.NewFromInt(100000), Final: decimal.NewFromInt(250000), Years: decimal.NewFromInt(5)},
	}
}

func TestKey(t *testing.T) {
	a, err := Key(cagrRequest("first"))
	require.NoError(t, err)
	b, err := Key(cagrRequest("second"))
	require.NoError(t, err)
	assert.Equal(t, a, b, "names do not affect the key")
	assert.Contains(t, a, "fincalc:cagr:")

	other := cagrRequest("first")
	other.CAGR.Years = decimal.NewFromInt(6)
	c, err := Key(other)
	require.NoError(t, err)
	assert.NotEqual(t, a, c)
}

func TestMemoRunner(t *testing.T) {
	runner := &countingRunner{}
	cache := NewMemoryCache()
	memo := NewMemoRunner(runner, cache)
	ctx := context.Background()

	first, err := memo.Run(ctx, cagrRequest("a"))
	require.NoError(t, err)
	second, err := memo.Run(ctx, cagrRequest("b"))
	require.NoError(t, err)

	assert.Equal(t, 1, runner.calls)
	assert.Equal(t, 1, cache.Len())
	assert.Equal(t, "b", second.Request.Name, "cached outcome carries the caller's request")
	assert.True(t, first.CAGR.AbsoluteReturn.Equal(second.CAGR.AbsoluteReturn))
}

func TestMemoRunner_ErrorsAreNotCached(t *testing.T) {
	runner := &countingRunner{err: errors.New("boom")}
	cache := NewMemoryCache()
	memo := NewMemoRunner(runner, cache)

	_, err := memo.Run(context.Background(), cagrRequest("a"))
	assert.Error(t, err)
	_, err = memo.Run(context.Background(), cagrRequest("a"))
	assert.Error(t, err)
	assert.Equal(t, 2, runner.calls)
	assert.Equal(t, 0, cache.Len())
}

func TestMemoRunner_CorruptEntryRecomputes(t *testing.T) {
	runner := &countingRunner{}
	cache := NewMemoryCache()
	key, err := Key(cagrRequest(""))
	require.NoError(t, err)
	require.NoError(t, cache.Set(context.Background(), key, "not json"))

	out, err := NewMemoRunner(runner, cache).Run(context.Background(), cagrRequest(""))
	require.NoError(t, err)
	assert.NotNil(t, out.CAGR)
	assert.Equal(t, 1, runner.calls)
}

func TestRedisCache_Unreachable(t *testing.T) {
	rc := NewRedisCacheWithOptions(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	}, time.Minute)
	defer rc.Close()
	ctx := context.Background()

	_, ok := rc.Get(ctx, "missing")
	assert.False(t, ok)
	assert.Error(t, rc.Set(ctx, "k", "v"))
	assert.Error(t, rc.Ping(ctx))

	runner := &countingRunner{}
	out, err := NewMemoRunner(runner, rc).Run(ctx, cagrRequest("a"))
	require.NoError(t, err, "an unreachable cache never fails a calculation")
	assert.NotNil(t, out)
}
