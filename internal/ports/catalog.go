package ports

import (
	"context"

	"quotiza-connect/internal/domain"
)

// CatalogReader defines the interface for reading the merchant's product
// catalog. FetchProductPage issues exactly one bounded query; catalogs larger
// than the limit are truncated, pagination cursors are not followed.
type CatalogReader interface {
	FetchProductPage(ctx context.Context, shop string, limit int) ([]domain.MerchantProduct, error)
}
