package idempotency

import (
	"context"
	"fmt"
	"time"

	"github.com/a2sh3r/mlmnet/internal/logger"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

type RedisGuard struct {
	client *redis.Client
}

func NewRedisGuard(client *redis.Client) *RedisGuard {
	return &RedisGuard{client: client}
}

func (g *RedisGuard) Acquire(ctx context.Context, key string, ttl time.Duration) (string, bool, error) {
	token := uuid.NewString()
	acquired, err := g.client.SetNX(ctx, lockKey(key), token, ttl).Result()
	if err != nil {
		logger.Log.Error("failed to acquire idempotency lock", zap.String("key", key), zap.Error(err))
		return "", false, err
	}
	if !acquired {
		return "", false, nil
	}
	return token, true, nil
}

// Release deletes the lock only while it still carries token.
func (g *RedisGuard) Release(ctx context.Context, key, token string) error {
	deleted, err := releaseScript.Run(ctx, g.client, []string{lockKey(key)}, token).Int()
	if err != nil {
		logger.Log.Error("failed to release idempotency lock", zap.String("key", key), zap.Error(err))
		return err
	}
	if deleted == 0 {
		logger.Log.Warn("idempotency lock expired before release", zap.String("key", key))
	}
	return nil
}

func lockKey(key string) string {
	return fmt.Sprintf("idempotency:%s:lock", key)
}
