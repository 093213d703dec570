package ports

import (
	"context"
	"time"

	"quotiza-connect/internal/domain"
)

// ConfigurationRepository defines the interface for per-shop settings persistence
type ConfigurationRepository interface {
	// Upsert creates or replaces the configuration for config.Shop
	Upsert(ctx context.Context, config *domain.Configuration) error

	// GetByShop retrieves the configuration for a shop, nil if none exists
	GetByShop(ctx context.Context, shop string) (*domain.Configuration, error)

	// ListDue returns configurations with an automatic frequency whose
	// next run is at or before now
	ListDue(ctx context.Context, now time.Time) ([]*domain.Configuration, error)

	// SetNextRunAt advances the durable schedule cursor for a shop
	SetNextRunAt(ctx context.Context, shop string, next time.Time) error

	// DeleteByShop removes the configuration when the app is uninstalled
	DeleteByShop(ctx context.Context, shop string) error
}

// SyncHistoryRepository defines the interface for sync attempt logging
type SyncHistoryRepository interface {
	// Create inserts a new record and fills in its ID
	Create(ctx context.Context, record *domain.SyncHistoryRecord) error

	// MarkSuccess closes an in_progress record with its outcome
	MarkSuccess(ctx context.Context, id string, productsCount int, jobID string) error

	// MarkError closes an in_progress record with the error message
	MarkError(ctx context.Context, id string, message string) error

	// ListRecent returns the most recent records for a shop, newest first
	ListRecent(ctx context.Context, shop string, limit int) ([]*domain.SyncHistoryRecord, error)
}

// ShopRepository defines the interface for installed shop persistence
type ShopRepository interface {
	SaveShop(ctx context.Context, shop *domain.Shop) error
	GetShop(ctx context.Context, shopDomain string) (*domain.Shop, error)
	DeleteShop(ctx context.Context, shopDomain string) error
}
