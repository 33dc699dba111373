package repositories

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrTokenNotFound covers both an expired and a released handle.
var ErrTokenNotFound = redis.Nil

type RedisViewTokenRepository struct {
	redis *redis.Client
}

func NewRedisViewTokenRepository(redisClient *redis.Client) *RedisViewTokenRepository {
	return &RedisViewTokenRepository{redis: redisClient}
}

func viewTokenKey(token string) string {
	return "view:" + token
}

func (r *RedisViewTokenRepository) Save(ctx context.Context, token string, fileID string, ttl time.Duration) error {
	return r.redis.Set(ctx, viewTokenKey(token), fileID, ttl).Err()
}

func (r *RedisViewTokenRepository) Resolve(ctx context.Context, token string) (string, error) {
	return r.redis.Get(ctx, viewTokenKey(token)).Result()
}

func (r *RedisViewTokenRepository) Delete(ctx context.Context, token string) error {
	return r.redis.Del(ctx, viewTokenKey(token)).Err()
}
