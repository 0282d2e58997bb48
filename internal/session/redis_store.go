package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "cradle:session:"

// RedisStore keeps sessions server-side under random ids, so logging out
// revokes the session everywhere.
type RedisStore struct {
	client redis.UniversalClient
	now    func() time.Time
}

func NewRedisStore(client redis.UniversalClient) *RedisStore {
	return &RedisStore{client: client, now: time.Now}
}

func (store *RedisStore) Set(ctx context.Context, data Data) (string, error) {
	if data.UserID == 0 {
		return "", fmt.Errorf("session user id is required")
	}
	if data.ExpiresAt.IsZero() {
		data.ExpiresAt = store.now().Add(DefaultTTL)
	}
	ttl := data.ExpiresAt.Sub(store.now())
	if ttl <= 0 {
		return "", fmt.Errorf("session already expired")
	}

	payload, err := json.Marshal(data)
	if err != nil {
		return "", fmt.Errorf("encode session: %w", err)
	}

	token := uuid.NewString()
	if err := store.client.Set(ctx, redisKeyPrefix+token, payload, ttl).Err(); err != nil {
		return "", fmt.Errorf("store session: %w", err)
	}
	return token, nil
}

func (store *RedisStore) Get(ctx context.Context, token string) (Data, error) {
	token = strings.TrimSpace(token)
	if _, err := uuid.Parse(token); err != nil {
		return Data{}, ErrNoSession
	}

	payload, err := store.client.Get(ctx, redisKeyPrefix+token).Bytes()
	if errors.Is(err, redis.Nil) {
		return Data{}, ErrNoSession
	}
	if err != nil {
		return Data{}, fmt.Errorf("load session: %w", err)
	}

	var data Data
	if err := json.Unmarshal(payload, &data); err != nil {
		return Data{}, ErrNoSession
	}
	if data.UserID == 0 || !data.ExpiresAt.After(store.now()) {
		return Data{}, ErrNoSession
	}
	return data, nil
}

func (store *RedisStore) Destroy(ctx context.Context, token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil
	}
	return store.client.Del(ctx, redisKeyPrefix+token).Err()
}
