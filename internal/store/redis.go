package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"interview-insights-go/internal/apperror"
	"interview-insights-go/internal/config"
	"interview-insights-go/internal/types"
)

const keyPrefix = "interview-report:"

// RedisStore shares reports between API replicas.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore connects and pings the server.
func NewRedisStore(ctx context.Context, cfg config.RedisConfig) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", cfg.Addr, err)
	}
	return NewRedisStoreWithClient(client, cfg.ReportTTL), nil
}

func NewRedisStoreWithClient(client *redis.Client, ttl time.Duration) *RedisStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RedisStore{client: client, ttl: ttl}
}

func (s *RedisStore) Save(ctx context.Context, r types.Report) error {
	data, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	if err := s.client.Set(ctx, keyPrefix+r.ID, data, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

func (s *RedisStore) Get(ctx context.Context, id string) (types.Report, error) {
	data, err := s.client.Get(ctx, keyPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return types.Report{}, apperror.ReportNotFound(id)
	}
	if err != nil {
		return types.Report{}, fmt.Errorf("redis get: %w", err)
	}
	var r types.Report
	if err := json.Unmarshal(data, &r); err != nil {
		return types.Report{}, fmt.Errorf("decode report %s: %w", id, err)
	}
	return r, nil
}

func (s *RedisStore) Close() error { return s.client.Close() }
