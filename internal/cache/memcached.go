package cache

import (
	"context"
	"errors"
	"time"

	"github.com/bradfitz/gomemcache/memcache"
)

// MemcachedCache stores values in Memcached. Expirations are rounded down to
// whole seconds with a floor of one second.
type MemcachedCache struct {
	mc *memcache.Client
}

func NewMemcachedCache(addr ...string) *MemcachedCache {
	return &MemcachedCache{mc: memcache.New(addr...)}
}

func (m *MemcachedCache) Get(_ context.Context, key string) ([]byte, error) {
	item, err := m.mc.Get(key)
	if errors.Is(err, memcache.ErrCacheMiss) {
		return nil, ErrMiss
	}
	if err != nil {
		return nil, err
	}
	return item.Value, nil
}

func (m *MemcachedCache) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	return m.mc.Set(&memcache.Item{
		Key:        key,
		Value:      value,
		Expiration: expiration(ttl),
	})
}

func (m *MemcachedCache) Delete(_ context.Context, key string) error {
	err := m.mc.Delete(key)
	if errors.Is(err, memcache.ErrCacheMiss) {
		return nil
	}
	return err
}

func (m *MemcachedCache) Ping() error {
	return m.mc.Ping()
}

func expiration(ttl time.Duration) int32 {
	if ttl <= 0 {
		return 0
	}
	secs := int32(ttl / time.Second)
	if secs < 1 {
		secs = 1
	}
	return secs
}
