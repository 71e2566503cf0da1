// Package cache is a small byte cache with Redis and Memcached backends.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"
)

// ErrMiss is returned by Get when the key is absent or expired
var ErrMiss = errors.New("cache miss")

type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

func SetJSON(ctx context.Context, c Cache, key string, value interface{}, ttl time.Duration) error {
	valueJSON, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.Set(ctx, key, valueJSON, ttl)
}

func GetJSON[T any](ctx context.Context, c Cache, key string) (*T, error) {
	value, err := c.Get(ctx, key)
	if err != nil {
		return nil, err
	}

	var result T
	if err := json.Unmarshal(value, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
