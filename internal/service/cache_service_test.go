package service

import (
	"context"
	"encoding/json"
	"errors"
	"path"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/noah-isme/campus-events-api/pkg/errors"
)

type memoryCache struct {
	mu      sync.Mutex
	entries map[string][]byte
	gets    int
	failGet error
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: map[string][]byte{}}
}

func (m *memoryCache) Get(ctx context.Context, key string, dest interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gets++
	if m.failGet != nil {
		return m.failGet
	}
	raw, ok := m.entries[key]
	if !ok {
		return appErrors.ErrCacheMiss
	}
	return json.Unmarshal(raw, dest)
}

func (m *memoryCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = raw
	return nil
}

func (m *memoryCache) DeleteByPattern(ctx context.Context, pattern string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for key := range m.entries {
		if ok, _ := path.Match(pattern, key); ok {
			delete(m.entries, key)
		}
	}
	return nil
}

func (m *memoryCache) has(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.entries[key]
	return ok
}

func TestCacheServiceFetchReadsThrough(t *testing.T) {
	repo := newMemoryCache()
	cache := NewCacheService(repo, NewMetricsService(), time.Minute, nil, true)
	ctx := context.Background()

	loads := 0
	load := func(dest *[]string) func() error {
		return func() error {
			loads++
			*dest = []string{"a", "b"}
			return nil
		}
	}

	var first []string
	require.NoError(t, cache.Fetch(ctx, "k", &first, load(&first)))
	var second []string
	require.NoError(t, cache.Fetch(ctx, "k", &second, load(&second)))

	assert.Equal(t, 1, loads)
	assert.Equal(t, []string{"a", "b"}, second)
}

func TestCacheServiceLoadErrorIsNotCached(t *testing.T) {
	repo := newMemoryCache()
	cache := NewCacheService(repo, nil, time.Minute, nil, true)
	boom := errors.New("boom")

	var dest string
	err := cache.Fetch(context.Background(), "k", &dest, func() error { return boom })
	assert.ErrorIs(t, err, boom)
	assert.False(t, repo.has("k"))
}

func TestCacheServiceFailuresFallBackToLoad(t *testing.T) {
	repo := newMemoryCache()
	repo.failGet = errors.New("redis down")
	cache := NewCacheService(repo, nil, time.Minute, nil, true)

	var dest string
	err := cache.Fetch(context.Background(), "k", &dest, func() error {
		dest = "fresh"
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, "fresh", dest)
}

func TestCacheServiceDisabledAndNil(t *testing.T) {
	repo := newMemoryCache()
	disabled := NewCacheService(repo, nil, time.Minute, nil, false)
	var nilCache *CacheService

	for _, cache := range []*CacheService{disabled, nilCache} {
		assert.False(t, cache.Enabled())
		var dest int
		require.NoError(t, cache.Fetch(context.Background(), "k", &dest, func() error {
			dest = 7
			return nil
		}))
		assert.Equal(t, 7, dest)
		cache.Invalidate(context.Background(), "*")
	}
	assert.Zero(t, repo.gets)
}

func TestCacheServiceInvalidateByPattern(t *testing.T) {
	repo := newMemoryCache()
	cache := NewCacheService(repo, nil, time.Minute, nil, true)
	ctx := context.Background()

	cache.Set(ctx, cacheKeyCollegeList, []string{"x"})
	cache.Set(ctx, cacheKeyCollegePrefix+"CLG01", "x")
	cache.Set(ctx, cacheKeyEventPrefix+"CLG01-EVT001", "x")

	cache.Invalidate(ctx, cacheKeyCollegePattern)
	assert.False(t, repo.has(cacheKeyCollegeList))
	assert.False(t, repo.has(cacheKeyCollegePrefix+"CLG01"))
	assert.True(t, repo.has(cacheKeyEventPrefix+"CLG01-EVT001"))
}
