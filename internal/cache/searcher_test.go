package cache

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/anonto42/picgram/backend/internal/models"
)

type memoryCache struct {
	mu      sync.Mutex
	items   map[string][]byte
	failGet bool
}

func newMemoryCache() *memoryCache {
	return &memoryCache{items: make(map[string][]byte)}
}

func (m *memoryCache) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failGet {
		return nil, errors.New("connection refused")
	}
	v, ok := m.items[key]
	if !ok {
		return nil, ErrMiss
	}
	return v, nil
}

func (m *memoryCache) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[key] = value
	return nil
}

func (m *memoryCache) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.items, key)
	return nil
}

type countingSearcher struct {
	calls int
	err   error
}

func (c *countingSearcher) SearchUsers(_ context.Context, query string) ([]models.SearchableUser, error) {
	c.calls++
	if c.err != nil {
		return nil, c.err
	}
	return []models.SearchableUser{{ID: "1", Username: query}}, nil
}

func TestSearcherServesRepeatQueriesFromCache(t *testing.T) {
	backend := &countingSearcher{}
	s := NewSearcher(backend, newMemoryCache(), time.Minute, "7", nil)

	for i := 0; i < 3; i++ {
		got, err := s.SearchUsers(context.Background(), "sarah")
		if err != nil {
			t.Fatalf("SearchUsers() error = %v", err)
		}
		if len(got) != 1 || got[0].Username != "sarah" {
			t.Fatalf("SearchUsers() = %+v, want one row for sarah", got)
		}
	}
	if backend.calls != 1 {
		t.Fatalf("backend called %d times, want 1", backend.calls)
	}
}

func TestSearcherKeepsPaddedQueriesApart(t *testing.T) {
	backend := &countingSearcher{}
	s := NewSearcher(backend, newMemoryCache(), time.Minute, "7", nil)

	if _, err := s.SearchUsers(context.Background(), "john"); err != nil {
		t.Fatalf("SearchUsers() error = %v", err)
	}
	got, err := s.SearchUsers(context.Background(), "john ")
	if err != nil {
		t.Fatalf("SearchUsers() error = %v", err)
	}
	if backend.calls != 2 {
		t.Fatalf("backend called %d times, want 2", backend.calls)
	}
	if len(got) != 1 || got[0].Username != "john " {
		t.Fatalf("SearchUsers(\"john \") = %+v, want its own result set", got)
	}
}

func TestSearcherFallsThroughOnCacheError(t *testing.T) {
	backend := &countingSearcher{}
	c := newMemoryCache()
	c.failGet = true
	s := NewSearcher(backend, c, time.Minute, "7", nil)

	if _, err := s.SearchUsers(context.Background(), "mike"); err != nil {
		t.Fatalf("SearchUsers() error = %v", err)
	}
	if _, err := s.SearchUsers(context.Background(), "mike"); err != nil {
		t.Fatalf("SearchUsers() error = %v", err)
	}
	if backend.calls != 2 {
		t.Fatalf("backend called %d times, want 2", backend.calls)
	}
}

func TestSearcherDoesNotCacheFailures(t *testing.T) {
	backend := &countingSearcher{err: errors.New("db down")}
	c := newMemoryCache()
	s := NewSearcher(backend, c, time.Minute, "7", nil)

	if _, err := s.SearchUsers(context.Background(), "emma"); err == nil {
		t.Fatal("SearchUsers() error = nil, want backend error")
	}
	if len(c.items) != 0 {
		t.Fatalf("cache holds %d entries after a failed search, want 0", len(c.items))
	}
}

func TestSearchKeyIsScopedAndCaseFolded(t *testing.T) {
	if SearchKey("1", "Sarah") != SearchKey("1", "sarah") {
		t.Fatal("SearchKey differs for queries that only differ in case")
	}
	if SearchKey("1", "sarah ") == SearchKey("1", "sarah") {
		t.Fatal("SearchKey ignores trailing whitespace")
	}
	if SearchKey("1", "sarah") == SearchKey("2", "sarah") {
		t.Fatal("SearchKey is shared between viewers")
	}
}

func TestMemcachedExpiration(t *testing.T) {
	cases := []struct {
		ttl  time.Duration
		want int32
	}{
		{0, 0},
		{-time.Second, 0},
		{200 * time.Millisecond, 1},
		{90 * time.Second, 90},
	}
	for _, tc := range cases {
		if got := expiration(tc.ttl); got != tc.want {
			t.Fatalf("expiration(%v) = %d, want %d", tc.ttl, got, tc.want)
		}
	}
}
