package ports

import "context"

// SyncLock serializes sync attempts for a single shop. Overlapping triggers
// (manual plus scheduled) must not double-submit to the partner API.
type SyncLock interface {
	// Acquire tries to take the lock without blocking. Returns true on success.
	Acquire(ctx context.Context) (bool, error)
	// Release releases the lock if still owned.
	Release(ctx context.Context) error
}

// SyncLockFactory creates a lock scoped to one shop.
type SyncLockFactory interface {
	ForShop(shop string) SyncLock
}
