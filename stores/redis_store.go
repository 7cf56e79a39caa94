package stores

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	conversationKeyPrefix = "conversation:"
	defaultRedisTTL       = 24 * time.Hour
)

// RedisStore keeps conversations as Redis lists, one list per session key.
// RPUSH makes concurrent appends atomic; idle expiry rides on the key TTL,
// refreshed on every read and write.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore creates a Redis-backed conversation store.
func NewRedisStore(addr string, ttl time.Duration) *RedisStore {
	if ttl <= 0 {
		ttl = defaultRedisTTL
	}
	return &RedisStore{
		client: redis.NewClient(&redis.Options{Addr: addr}),
		ttl:    ttl,
	}
}

func (s *RedisStore) key(sessionKey string) string {
	return conversationKeyPrefix + sessionKey
}

// Get returns the session's turns in append order, empty if the key is absent.
func (s *RedisStore) Get(ctx context.Context, sessionKey string) ([]Turn, error) {
	key := s.key(sessionKey)

	vals, err := s.client.LRange(ctx, key, 0, -1).Result()
	if err == redis.Nil {
		return []Turn{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch turns: %w", err)
	}

	turns := make([]Turn, 0, len(vals))
	for _, val := range vals {
		var turn Turn
		if err := json.Unmarshal([]byte(val), &turn); err != nil {
			return nil, fmt.Errorf("failed to decode stored turn: %w", err)
		}
		turns = append(turns, turn)
	}

	// Refresh TTL on read; a failure here is not worth failing the request.
	_ = s.client.Expire(ctx, key, s.ttl).Err()

	return turns, nil
}

// Append pushes a turn onto the session list and refreshes the TTL.
func (s *RedisStore) Append(ctx context.Context, sessionKey string, turn Turn) error {
	if turn.CreatedAt.IsZero() {
		turn.CreatedAt = time.Now()
	}

	val, err := json.Marshal(turn)
	if err != nil {
		return fmt.Errorf("failed to encode turn: %w", err)
	}

	key := s.key(sessionKey)
	pipe := s.client.TxPipeline()
	pipe.RPush(ctx, key, val)
	pipe.Expire(ctx, key, s.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to append turn: %w", err)
	}
	return nil
}

// Expire deletes the session list.
func (s *RedisStore) Expire(ctx context.Context, sessionKey string) error {
	return s.client.Del(ctx, s.key(sessionKey)).Err()
}

// Ping checks the Redis connection.
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close closes the Redis client.
func (s *RedisStore) Close() error {
	return s.client.Close()
}
