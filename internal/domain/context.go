package domain

import "context"

// contextKey is a private type for context keys to avoid collisions
type contextKey string

const shopDomainKey contextKey = "shop_domain"

// WithShopDomain returns a context carrying the tenant shop domain.
func WithShopDomain(ctx context.Context, shop string) context.Context {
	return context.WithValue(ctx, shopDomainKey, shop)
}

// GetShopDomainFromContext returns the tenant shop domain, or "" if unset.
func GetShopDomainFromContext(ctx context.Context) string {
	if shop, ok := ctx.Value(shopDomainKey).(string); ok {
		return shop
	}
	return ""
}
