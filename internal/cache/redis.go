package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

type Redis struct {
	client *redis.Client
}

func NewRedis(url string) (*Redis, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, errors.Wrap(err, "invalid redis url")
	}
	return &Redis{client: redis.NewClient(opts)}, nil
}

func (r *Redis) GetStrings(ctx context.Context, key string) ([]string, bool, error) {
	raw, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var values []string
	if err = json.Unmarshal(raw, &values); err != nil {
		return nil, false, errors.Wrap(err, "corrupted cache entry")
	}
	return values, true, nil
}

func (r *Redis) SetStrings(ctx context.Context, key string, values []string, ttl time.Duration) error {
	raw, err := json.Marshal(values)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, key, raw, ttl).Err()
}

func (r *Redis) Delete(ctx context.Context, key string) error {
	return r.client.Del(ctx, key).Err()
}

func (r *Redis) Close() error {
	return r.client.Close()
}
