package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// defaultLockTTL caps how long a crashed run can hold the lock.
const defaultLockTTL = 30 * time.Minute

// SyncLock prevents overlapping sync runs across instances using a
// Redis SETNX lease. A nil *SyncLock is a no-op lock, used when Redis
// is not configured.
type SyncLock struct {
	client *redis.Client
	key    string
	ttl    time.Duration
}

// NewSyncLock creates a lock over an existing Redis client.
func NewSyncLock(client *redis.Client, key string) *SyncLock {
	if key == "" {
		key = "sync:run-lock"
	}
	return &SyncLock{client: client, key: key, ttl: defaultLockTTL}
}

// NewSyncLockFromAddr connects to Redis and creates the lock,
// verifying the connection first.
func NewSyncLockFromAddr(addr, password string, db int) (*SyncLock, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return NewSyncLock(client, ""), nil
}

// Acquire attempts to take the lock. Returns false when another run
// holds it. Uses SETNX with a TTL in a single atomic operation.
func (l *SyncLock) Acquire(ctx context.Context) (bool, error) {
	if l == nil || l.client == nil {
		return true, nil
	}
	ok, err := l.client.SetNX(ctx, l.key, "1", l.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("failed to acquire sync lock: %w", err)
	}
	return ok, nil
}

// Release frees the lock at the end of a run.
func (l *SyncLock) Release(ctx context.Context) error {
	if l == nil || l.client == nil {
		return nil
	}
	if err := l.client.Del(ctx, l.key).Err(); err != nil {
		return fmt.Errorf("failed to release sync lock: %w", err)
	}
	return nil
}
