package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const tokenKey = "stayfront:session:token"

// RedisStore persists the session token in redis, so it survives process
// restarts. It is the fallback source when the in-memory session is empty.
type RedisStore struct {
	rdb *redis.Client
}

func NewRedisStore(rdb *redis.Client) *RedisStore {
	return &RedisStore{rdb: rdb}
}

func (s *RedisStore) Token(ctx context.Context) (string, error) {
	token, err := s.rdb.Get(ctx, tokenKey).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("could not read persisted session token: %w", err)
	}
	return token, nil
}

func (s *RedisStore) Save(ctx context.Context, token string) error {
	if err := s.rdb.Set(ctx, tokenKey, token, 0).Err(); err != nil {
		return fmt.Errorf("could not persist session token: %w", err)
	}
	return nil
}

func (s *RedisStore) Clear(ctx context.Context) error {
	if err := s.rdb.Del(ctx, tokenKey).Err(); err != nil {
		return fmt.Errorf("could not clear persisted session token: %w", err)
	}
	return nil
}
