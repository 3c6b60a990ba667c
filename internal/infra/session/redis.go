package session

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/RelojeriaCentral/taller-api/internal/config"
	"github.com/RelojeriaCentral/taller-api/internal/usecase/ledger"
)

// RedisStagingStore keeps per-session ledger drafts in Redis so the
// confirm screen survives across requests and instances.
type RedisStagingStore struct {
	client *redis.Client
}

func NewRedisStagingStore(cfg *config.Config) *RedisStagingStore {
	return &RedisStagingStore{
		client: redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPass,
		}),
	}
}

func (s *RedisStagingStore) Put(
	ctx context.Context,
	key string,
	e ledger.Entry,
	ttl time.Duration,
) error {
	payload, err := json.Marshal(e)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, key, payload, ttl).Err()
}

func (s *RedisStagingStore) Get(
	ctx context.Context,
	key string,
) (*ledger.Entry, error) {

	payload, err := s.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var e ledger.Entry
	if err := json.Unmarshal(payload, &e); err != nil {
		return nil, err
	}
	return &e, nil
}

func (s *RedisStagingStore) Delete(ctx context.Context, key string) error {
	return s.client.Del(ctx, key).Err()
}

// Compile-time check
var _ ledger.StagingStore = (*RedisStagingStore)(nil)
