package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

type redisRefreshTokenStore struct {
	client *redis.Client
}

func NewRedisRefreshTokenStore(client *redis.Client) RefreshTokenStore {
	return &redisRefreshTokenStore{client: client}
}

func (s *redisRefreshTokenStore) Save(ctx context.Context, jti string, userID uuid.UUID, ttl time.Duration) error {
	return s.client.Set(ctx, refreshKeyPrefix+jti, userID.String(), ttl).Err()
}

// Take uses GETDEL so the read and the delete are one server-side step.
func (s *redisRefreshTokenStore) Take(ctx context.Context, jti string) (uuid.UUID, bool, error) {
	val, err := s.client.GetDel(ctx, refreshKeyPrefix+jti).Result()
	if errors.Is(err, redis.Nil) {
		return uuid.Nil, false, nil
	}
	if err != nil {
		return uuid.Nil, false, err
	}
	userID, err := uuid.Parse(val)
	if err != nil {
		return uuid.Nil, false, fmt.Errorf("corrupt refresh token entry %q: %w", jti, err)
	}
	return userID, true, nil
}
