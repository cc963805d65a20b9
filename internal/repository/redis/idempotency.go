package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"

	"github.com/Harsh-BH/gauntlet/internal/repository"
)

var _ repository.IdempotencyStore = (*redisIdempotency)(nil)

const (
	lockKeyPrefix = "gauntlet:submission:lock:"

	// lockTTL outlives two judge attempts at the default timeout.
	lockTTL = 10 * time.Minute
)

type redisIdempotency struct {
	client goredis.Cmdable
}

// NewRedisIdempotencyStore creates a Redis-backed idempotency store using SETNX.
func NewRedisIdempotencyStore(client goredis.Cmdable) repository.IdempotencyStore {
	return &redisIdempotency{client: client}
}

// AcquireLock uses Redis SETNX to atomically acquire a processing lock.
func (r *redisIdempotency) AcquireLock(ctx context.Context, id uuid.UUID) (bool, error) {
	ok, err := r.client.SetNX(ctx, lockKey(id), time.Now().Unix(), lockTTL).Result()
	if err != nil {
		return false, fmt.Errorf("redis: acquire lock: %w", err)
	}
	return ok, nil
}

// ReleaseLock refreshes the TTL so a redelivered message is still recognised as a duplicate
// for a while after processing.
func (r *redisIdempotency) ReleaseLock(ctx context.Context, id uuid.UUID) error {
	if err := r.client.Expire(ctx, lockKey(id), lockTTL).Err(); err != nil {
		return fmt.Errorf("redis: release lock: %w", err)
	}
	return nil
}

// ForgetLock deletes the key outright.
func (r *redisIdempotency) ForgetLock(ctx context.Context, id uuid.UUID) error {
	if err := r.client.Del(ctx, lockKey(id)).Err(); err != nil {
		return fmt.Errorf("redis: forget lock: %w", err)
	}
	return nil
}

func lockKey(id uuid.UUID) string {
	return lockKeyPrefix + id.String()
}
