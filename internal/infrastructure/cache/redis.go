package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"stayhub/internal/config"
)

// Remote is a Redis-backed L2 shared by all API instances.
type Remote struct {
	client redis.UniversalClient
}

var _ Store = (*Remote)(nil)

// NewRemote wraps an existing client.
func NewRemote(client redis.UniversalClient) *Remote {
	return &Remote{client: client}
}

// DialRemote connects to the Redis configured in cfg and pings it.
func DialRemote(ctx context.Context, cfg config.Cache) (*Remote, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis %s: %w", cfg.RedisAddr, err)
	}
	return &Remote{client: client}, nil
}

func (r *Remote) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

func (r *Remote) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return r.client.Set(ctx, key, value, ttl).Err()
}

func (r *Remote) Delete(ctx context.Context, key string) error {
	return r.client.Del(ctx, key).Err()
}

// Close closes the underlying client.
func (r *Remote) Close() error {
	return r.client.Close()
}

// Ping checks the Redis connection.
func (r *Remote) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}
