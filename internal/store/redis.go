package store

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/redis/go-redis/v9"

	"ludo_broker/internal/domain"
)

// RedisStore keeps the match snapshot in a single redis key, for deployments
// where the broker has no writable disk.
type RedisStore struct {
	rdb *redis.Client
	key string
}

func NewRedisStore(addr, key string) *RedisStore {
	return &RedisStore{
		rdb: redis.NewClient(&redis.Options{Addr: addr}),
		key: key,
	}
}

func (s *RedisStore) Load(ctx context.Context) ([]domain.Match, error) {
	data, err := s.rdb.Get(ctx, s.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var matches []domain.Match
	if err := json.Unmarshal(data, &matches); err != nil {
		return nil, err
	}
	return matches, nil
}

func (s *RedisStore) Save(ctx context.Context, matches []domain.Match) error {
	if matches == nil {
		matches = []domain.Match{}
	}
	data, err := json.Marshal(matches)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, s.key, data, 0).Err()
}

// Ping verifies the redis connection at startup.
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.rdb.Ping(ctx).Err()
}
