package redis

import (
	"context"
	"errors"

	"alcyxob/workout-map/internal/repository"

	goredis "github.com/redis/go-redis/v9"
)

// Options configures the Redis connection.
type Options struct {
	Addr     string
	Password string
	DB       int
	// Prefix is prepended to every flat-store key.
	Prefix string
}

// Connect returns a client, or nil when no address is configured.
func Connect(opts Options) *goredis.Client {
	if opts.Addr == "" {
		return nil
	}
	return goredis.NewClient(&goredis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})
}

type flatStore struct {
	client goredis.UniversalClient
	prefix string
}

// NewFlatStore stores each key as a plain Redis string.
func NewFlatStore(client goredis.UniversalClient, prefix string) repository.FlatStore {
	return &flatStore{client: client, prefix: prefix}
}

func (s *flatStore) Get(ctx context.Context, key string) (string, error) {
	v, err := s.client.Get(ctx, s.prefix+key).Result()
	if errors.Is(err, goredis.Nil) {
		return "", repository.ErrNotFound
	}
	return v, err
}

func (s *flatStore) Set(ctx context.Context, key, value string) error {
	return s.client.Set(ctx, s.prefix+key, value, 0).Err()
}

func (s *flatStore) Remove(ctx context.Context, key string) error {
	return s.client.Del(ctx, s.prefix+key).Err()
}
