package shopify

import (
	"context"
	"errors"
	"strings"
	"testing"

	"quotiza-connect/internal/domain"

	goshopify "github.com/bold-commerce/go-shopify/v4"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

type fakeShopRepo struct {
	shops map[string]*domain.Shop
}

func (r *fakeShopRepo) SaveShop(_ context.Context, shop *domain.Shop) error {
	r.shops[shop.Domain] = shop
	return nil
}

func (r *fakeShopRepo) GetShop(_ context.Context, domainName string) (*domain.Shop, error) {
	return r.shops[domainName], nil
}

func (r *fakeShopRepo) DeleteShop(_ context.Context, domainName string) error {
	delete(r.shops, domainName)
	return nil
}

type fakeLister struct {
	products []goshopify.Product
	err      error

	calls   int
	options []interface{}
}

func (l *fakeLister) List(_ context.Context, options interface{}) ([]goshopify.Product, error) {
	l.calls++
	l.options = append(l.options, options)
	if l.err != nil {
		return nil, l.err
	}
	return l.products, nil
}

const testShop = "example.myshopify.com"

func newTestReader(shops *fakeShopRepo, lister *fakeLister) *Reader {
	r := NewReader("key", "secret", shops, zerolog.Nop())
	r.listerFor = func(shopDomain, accessToken string) (productLister, error) {
		return lister, nil
	}
	return r
}

func installedShopRepo() *fakeShopRepo {
	return &fakeShopRepo{shops: map[string]*domain.Shop{
		testShop: {Domain: testShop, AccessToken: "shpat_test"},
	}}
}

func TestFetchProductPage_SingleBoundedQuery(t *testing.T) {
	lister := &fakeLister{products: make([]goshopify.Product, 250)}
	reader := newTestReader(installedShopRepo(), lister)

	products, err := reader.FetchProductPage(context.Background(), testShop, 250)
	if err != nil {
		t.Fatalf("FetchProductPage() error = %v", err)
	}
	if len(products) != 250 {
		t.Errorf("len(products) = %d, want 250", len(products))
	}

	if lister.calls != 1 {
		t.Fatalf("list calls = %d, want 1", lister.calls)
	}
	opts, ok := lister.options[0].(goshopify.ListOptions)
	if !ok {
		t.Fatalf("options type = %T, want goshopify.ListOptions", lister.options[0])
	}
	if opts.Limit != 250 {
		t.Errorf("limit = %d, want 250", opts.Limit)
	}
}

func TestFetchProductPage_ShopNotInstalled(t *testing.T) {
	tests := []struct {
		name  string
		shops *fakeShopRepo
	}{
		{"unknown shop", &fakeShopRepo{shops: map[string]*domain.Shop{}}},
		{"empty token", &fakeShopRepo{shops: map[string]*domain.Shop{
			testShop: {Domain: testShop},
		}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reader := newTestReader(tt.shops, &fakeLister{})

			_, err := reader.FetchProductPage(context.Background(), testShop, 250)
			if err == nil || !strings.Contains(err.Error(), "not installed") {
				t.Errorf("error = %v, want not-installed error", err)
			}
		})
	}
}

func TestFetchProductPage_ListError(t *testing.T) {
	lister := &fakeLister{err: errors.New("connection reset")}
	reader := newTestReader(installedShopRepo(), lister)

	_, err := reader.FetchProductPage(context.Background(), testShop, 250)
	if err == nil || !strings.Contains(err.Error(), "failed to list products") {
		t.Errorf("error = %v, want wrapped list error", err)
	}
}

func TestMapProduct(t *testing.T) {
	price := decimal.RequireFromString("19.90")

	p := goshopify.Product{
		Id:          123,
		Title:       "Blue Shirt",
		BodyHTML:    "<p>Soft cotton</p>",
		Vendor:      "Acme",
		ProductType: "Shirts",
		Status:      goshopify.ProductStatusActive,
		Variants: []goshopify.Variant{
			{Sku: "SKU-1", Barcode: "0123456789", Price: &price},
			{Sku: "SKU-2", Barcode: "9876543210"},
		},
		Images: []goshopify.Image{
			{Src: "https://cdn.example.com/1.png"},
			{Src: "https://cdn.example.com/2.png"},
		},
	}

	got := mapProduct(p)

	if got.ID != 123 || got.Title != "Blue Shirt" || got.Vendor != "Acme" || got.ProductType != "Shirts" {
		t.Errorf("mapped product = %+v", got)
	}
	if !got.Active {
		t.Error("Active = false, want true for active status")
	}
	if got.SKU != "SKU-1" || got.Barcode != "0123456789" {
		t.Errorf("variant fields = %q/%q, want first variant SKU-1/0123456789", got.SKU, got.Barcode)
	}
	if !got.Price.Equal(price) {
		t.Errorf("Price = %s, want %s", got.Price, price)
	}
	if got.ImageURL != "https://cdn.example.com/1.png" {
		t.Errorf("ImageURL = %q, want the first image", got.ImageURL)
	}
}

func TestMapProduct_DraftAndEmpty(t *testing.T) {
	got := mapProduct(goshopify.Product{
		Id:     7,
		Title:  "Draft",
		Status: goshopify.ProductStatusDraft,
	})

	if got.Active {
		t.Error("Active = true, want false for non-active status")
	}
	if got.SKU != "" || got.ImageURL != "" {
		t.Errorf("variant/image fields = %q/%q, want empty for product without variants", got.SKU, got.ImageURL)
	}
	if !got.Price.IsZero() {
		t.Errorf("Price = %s, want zero", got.Price)
	}
}
