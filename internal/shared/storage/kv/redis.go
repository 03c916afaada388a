package kv

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"

	"placement-backend/internal/shared/telemetry"
	"placement-backend/internal/shared/util"
)

// RedisOptions configures the Redis connection.
type RedisOptions struct {
	Addr     string
	Password string
	DB       int
}

// NewRedisClient connects to Redis and verifies the connection.
func NewRedisClient(ctx context.Context, opts RedisOptions) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		telemetry.Error("redis.connect_failed", map[string]any{"addr": opts.Addr, "err": err})
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	telemetry.Info("redis.connected", map[string]any{"addr": opts.Addr})
	return rdb, nil
}

// RedisStore persists values as plain Redis strings without expiry.
type RedisStore struct {
	Client *redis.Client
	Prefix string
}

// NewRedisStore wraps a client. Keys are laid out as prefix:hash(namespace):key.
func NewRedisStore(client *redis.Client, prefix string) *RedisStore {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		prefix = "prep"
	}
	return &RedisStore{Client: client, Prefix: prefix}
}

func (s *RedisStore) redisKey(namespace, key string) string {
	return s.Prefix + ":" + util.HashOwner(namespace) + ":" + key
}

func (s *RedisStore) Get(ctx context.Context, namespace, key string) (string, error) {
	if err := validate(namespace, key); err != nil {
		return "", err
	}
	val, err := s.Client.Get(ctx, s.redisKey(namespace, key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("kv get %s: %w", key, err)
	}
	return val, nil
}

func (s *RedisStore) Set(ctx context.Context, namespace, key, value string) error {
	if err := validate(namespace, key); err != nil {
		return err
	}
	if err := s.Client.Set(ctx, s.redisKey(namespace, key), value, 0).Err(); err != nil {
		return fmt.Errorf("kv set %s: %w", key, err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, namespace, key string) error {
	if err := validate(namespace, key); err != nil {
		return err
	}
	if err := s.Client.Del(ctx, s.redisKey(namespace, key)).Err(); err != nil {
		return fmt.Errorf("kv delete %s: %w", key, err)
	}
	return nil
}

func (s *RedisStore) Ping(ctx context.Context) error {
	return s.Client.Ping(ctx).Err()
}
