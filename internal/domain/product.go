package domain

import "github.com/shopspring/decimal"

// MerchantProduct is one product read from the merchant's catalog. Only the
// first variant and first image are represented; multi-variant products are
// flattened to their first variant.
type MerchantProduct struct {
	ID              uint64
	Title           string
	DescriptionHTML string
	Vendor          string
	ProductType     string
	Active          bool
	SKU             string
	Price           decimal.Decimal
	Barcode         string
	ImageURL        string
}

// QuotizaProduct is the shape the Quotiza import endpoint accepts.
type QuotizaProduct struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Brand       string          `json:"brand"`
	Category    string          `json:"category"`
	Active      bool            `json:"active"`
	SKU         string          `json:"sku"`
	BasePrice   decimal.Decimal `json:"base_price"`
	UPC         string          `json:"upc,omitempty"`
	ImageURL    string          `json:"image_url,omitempty"`
}

// ImportStatus is the partner's view of an asynchronous import job.
type ImportStatus struct {
	JobID     string `json:"job_id"`
	Status    string `json:"status"`
	Processed int    `json:"processed,omitempty"`
	Failed    int    `json:"failed,omitempty"`
}
