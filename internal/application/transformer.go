package application

import (
	"regexp"
	"strings"

	"quotiza-connect/internal/domain"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

const (
	// DefaultBrand is used when the merchant product has no vendor
	DefaultBrand = "Default Brand"
	// DefaultCategory is used when the merchant product has no product type
	DefaultCategory = "Default Category"
)

// htmlTagPattern removes <...> tags. Best-effort strip, not an HTML parser;
// malformed markup may leave stray text behind.
var htmlTagPattern = regexp.MustCompile(`<[^>]*>`)

var oneHundred = decimal.NewFromInt(100)

// ProductTransformer maps merchant products into Quotiza's product schema,
// applying the configured percentage price adjustment.
type ProductTransformer struct {
	logger zerolog.Logger
}

// NewProductTransformer creates a new product transformer
func NewProductTransformer(logger zerolog.Logger) *ProductTransformer {
	return &ProductTransformer{logger: logger}
}

// Transform converts one merchant product using the shop's configuration.
func (t *ProductTransformer) Transform(p domain.MerchantProduct, config *domain.Configuration) domain.QuotizaProduct {
	brand := p.Vendor
	if brand == "" {
		brand = DefaultBrand
	}
	category := p.ProductType
	if category == "" {
		category = DefaultCategory
	}

	return domain.QuotizaProduct{
		Name:        p.Title,
		Description: stripHTMLTags(p.DescriptionHTML),
		Brand:       brand,
		Category:    category,
		Active:      p.Active,
		SKU:         p.SKU,
		BasePrice:   t.adjustPrice(p.Price, config),
		UPC:         p.Barcode,
		ImageURL:    p.ImageURL,
	}
}

// adjustPrice scales the base price by the configured percentage. Anything
// that cannot be applied (missing, zero, or unparseable percentage, or no
// direction) passes the base price through unchanged.
func (t *ProductTransformer) adjustPrice(base decimal.Decimal, config *domain.Configuration) decimal.Decimal {
	if config == nil || config.Percentage == "" {
		return base
	}

	pct, err := decimal.NewFromString(strings.TrimSpace(config.Percentage))
	if err != nil {
		t.logger.Warn().
			Str("shop", config.Shop).
			Str("percentage", config.Percentage).
			Msg("Unparseable price adjustment percentage, using base price")
		return base
	}
	if pct.IsZero() {
		return base
	}

	rate := pct.Div(oneHundred)
	switch config.PriceAdjustment {
	case domain.PriceIncrease:
		return base.Mul(decimal.NewFromInt(1).Add(rate))
	case domain.PriceDecrease:
		return base.Mul(decimal.NewFromInt(1).Sub(rate))
	}
	return base
}

func stripHTMLTags(html string) string {
	if html == "" {
		return ""
	}
	return htmlTagPattern.ReplaceAllString(html, "")
}
