package cache

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

type Cache interface {
	GetStrings(ctx context.Context, key string) ([]string, bool, error)
	SetStrings(ctx context.Context, key string, values []string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

type Memory struct {
	cache *gocache.Cache
}

func NewMemory(defaultTTL time.Duration) *Memory {
	return &Memory{cache: gocache.New(defaultTTL, 2*defaultTTL)}
}

func (m *Memory) GetStrings(_ context.Context, key string) ([]string, bool, error) {
	value, found := m.cache.Get(key)
	if !found {
		return nil, false, nil
	}
	return value.([]string), true, nil
}

func (m *Memory) SetStrings(_ context.Context, key string, values []string, ttl time.Duration) error {
	copied := make([]string, len(values))
	copy(copied, values)
	m.cache.Set(key, copied, ttl)
	return nil
}

func (m *Memory) Delete(_ context.Context, key string) error {
	m.cache.Delete(key)
	return nil
}

func (m *Memory) Close() error {
	return nil
}
