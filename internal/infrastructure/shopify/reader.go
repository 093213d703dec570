package shopify

import (
	"context"
	"fmt"

	"quotiza-connect/internal/domain"
	"quotiza-connect/internal/ports"

	goshopify "github.com/bold-commerce/go-shopify/v4"
	"github.com/rs/zerolog"
)

// productLister is the slice of the Shopify Admin API the reader needs.
// goshopify's ProductService satisfies it.
type productLister interface {
	List(ctx context.Context, options interface{}) ([]goshopify.Product, error)
}

// Reader reads a bounded page of the merchant catalog through the Shopify
// Admin API. Access tokens come from the shop store, written there by the
// platform layer at install time.
type Reader struct {
	app      goshopify.App
	shopRepo ports.ShopRepository
	logger   zerolog.Logger

	// listerFor is swapped out in tests
	listerFor func(shopDomain, accessToken string) (productLister, error)
}

// NewReader creates a new catalog reader adapter
func NewReader(apiKey, apiSecret string, shopRepo ports.ShopRepository, logger zerolog.Logger) *Reader {
	r := &Reader{
		app:      goshopify.App{ApiKey: apiKey, ApiSecret: apiSecret},
		shopRepo: shopRepo,
		logger:   logger,
	}
	r.listerFor = r.newLister
	return r
}

func (r *Reader) newLister(shopDomain, accessToken string) (productLister, error) {
	client, err := goshopify.NewClient(r.app, shopDomain, accessToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create shopify client: %w", err)
	}
	return client.Product, nil
}

// FetchProductPage issues exactly one list query for up to limit products.
// The pagination cursor is not followed: catalogs larger than the limit are
// truncated.
func (r *Reader) FetchProductPage(ctx context.Context, shop string, limit int) ([]domain.MerchantProduct, error) {
	record, err := r.shopRepo.GetShop(ctx, shop)
	if err != nil {
		return nil, fmt.Errorf("failed to load shop: %w", err)
	}
	if record == nil || record.AccessToken == "" {
		return nil, fmt.Errorf("shop %s is not installed", shop)
	}

	lister, err := r.listerFor(shop, record.AccessToken)
	if err != nil {
		return nil, err
	}

	products, err := lister.List(ctx, goshopify.ListOptions{Limit: limit})
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	r.logger.Debug().
		Str("shop", shop).
		Int("products", len(products)).
		Msg("Fetched catalog page")

	out := make([]domain.MerchantProduct, 0, len(products))
	for _, p := range products {
		out = append(out, mapProduct(p))
	}
	return out, nil
}

// mapProduct flattens a Shopify product to its first variant and first image.
func mapProduct(p goshopify.Product) domain.MerchantProduct {
	m := domain.MerchantProduct{
		ID:              p.Id,
		Title:           p.Title,
		DescriptionHTML: p.BodyHTML,
		Vendor:          p.Vendor,
		ProductType:     p.ProductType,
		Active:          p.Status == goshopify.ProductStatusActive,
	}

	if len(p.Variants) > 0 {
		v := p.Variants[0]
		m.SKU = v.Sku
		m.Barcode = v.Barcode
		if v.Price != nil {
			m.Price = *v.Price
		}
	}

	if len(p.Images) > 0 {
		m.ImageURL = p.Images[0].Src
	}

	return m
}
