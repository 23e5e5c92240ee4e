// Package cache memoizes calculation outcomes keyed by their inputs.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/rgehrsitz/fincalc/internal/domain"
)

// Cache is a string key/value store
type Cache interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key string, value string) error
}

// MemoryCache is an in-process Cache
type MemoryCache struct {
	mu   sync.RWMutex
	data map[string]string
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{data: make(map[string]string)}
}

func (m *MemoryCache) Get(_ context.Context, key string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	return v, ok
}

func (m *MemoryCache) Set(_ context.Context, key string, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

// Len reports the number of cached entries
func (m *MemoryCache) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.data)
}

// Key derives a stable cache key from a request. The request name is not part
// of the key, so identically parameterized requests share an entry.
func Key(req domain.CalculationRequest) (string, error) {
	req.Name = ""
	data, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("failed to encode request: %w", err)
	}
	sum := sha256.Sum256(data)
	return "fincalc:" + string(req.Kind) + ":" + hex.EncodeToString(sum[:]), nil
}

// Runner is anything that evaluates a request, usually a CalculationEngine
type Runner interface {
	Run(ctx context.Context, req domain.CalculationRequest) (*domain.CalculationOutcome, error)
}

// MemoRunner serves repeated requests from a Cache. Cache failures never fail
// a calculation; they only cost a recomputation.
type MemoRunner struct {
	Runner Runner
	Cache  Cache
}

// NewMemoRunner wraps runner with cache
func NewMemoRunner(runner Runner, cache Cache) *MemoRunner {
	return &MemoRunner{Runner: runner, Cache: cache}
}

func (m *MemoRunner) Run(ctx context.Context, req domain.CalculationRequest) (*domain.CalculationOutcome, error) {
	key, err := Key(req)
	if err != nil {
		return m.Runner.Run(ctx, req)
	}
	if cached, ok := m.Cache.Get(ctx, key); ok {
		var out domain.CalculationOutcome
		if err := json.Unmarshal([]byte(cached), &out); err == nil {
			out.Request = req
			return &out, nil
		}
	}

	out, err := m.Runner.Run(ctx, req)
	if err != nil {
		return nil, err
	}
	if data, err := json.Marshal(out); err == nil {
		_ = m.Cache.Set(ctx, key, string(data))
	}
	return out, nil
}
