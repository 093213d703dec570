package lock

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"quotiza-connect/internal/ports"

	"github.com/redis/go-redis/v9"
)

// DefaultSyncLockTTL bounds how long a crashed sync can keep its shop
// locked. A normal sync finishes well inside this window.
const DefaultSyncLockTTL = 10 * time.Minute

// RedisLockFactory creates per-shop sync locks backed by Redis SET NX.
type RedisLockFactory struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisLockFactory creates a lock factory. A non-positive ttl falls back
// to the default.
func NewRedisLockFactory(client *redis.Client, ttl time.Duration) *RedisLockFactory {
	if ttl <= 0 {
		ttl = DefaultSyncLockTTL
	}
	return &RedisLockFactory{client: client, ttl: ttl}
}

// ForShop returns a lock scoped to one shop domain.
func (f *RedisLockFactory) ForShop(shop string) ports.SyncLock {
	// Random ownership value so Release cannot free a lock taken over by
	// another process after TTL expiry.
	b := make([]byte, 16)
	rand.Read(b)
	return &redisLock{
		client: f.client,
		key:    fmt.Sprintf("sync-lock:%s", shop),
		value:  hex.EncodeToString(b),
		ttl:    f.ttl,
	}
}

type redisLock struct {
	client *redis.Client
	key    string
	value  string
	ttl    time.Duration
}

// Acquire tries to acquire the lock. Returns true if successful.
func (l *redisLock) Acquire(ctx context.Context) (bool, error) {
	ok, err := l.client.SetNX(ctx, l.key, l.value, l.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("failed to acquire lock %s: %w", l.key, err)
	}
	return ok, nil
}

// Release releases the lock only if we still own it (Lua script for atomicity).
func (l *redisLock) Release(ctx context.Context) error {
	script := redis.NewScript(`
		if redis.call("get", KEYS[1]) == ARGV[1] then
			return redis.call("del", KEYS[1])
		else
			return 0
		end
	`)
	_, err := script.Run(ctx, l.client, []string{l.key}, l.value).Result()
	return err
}
