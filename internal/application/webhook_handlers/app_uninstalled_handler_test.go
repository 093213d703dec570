package webhook_handlers

import (
	"context"
	"testing"
	"time"

	"quotiza-connect/internal/domain"

	"github.com/rs/zerolog"
)

type fakeConfigRepo struct {
	configs map[string]*domain.Configuration
}

func (r *fakeConfigRepo) Upsert(_ context.Context, c *domain.Configuration) error {
	r.configs[c.Shop] = c
	return nil
}

func (r *fakeConfigRepo) GetByShop(_ context.Context, shop string) (*domain.Configuration, error) {
	return r.configs[shop], nil
}

func (r *fakeConfigRepo) ListDue(context.Context, time.Time) ([]*domain.Configuration, error) {
	return nil, nil
}

func (r *fakeConfigRepo) SetNextRunAt(context.Context, string, time.Time) error { return nil }

func (r *fakeConfigRepo) DeleteByShop(_ context.Context, shop string) error {
	delete(r.configs, shop)
	return nil
}

type fakeShopRepo struct {
	shops map[string]*domain.Shop
}

func (r *fakeShopRepo) SaveShop(_ context.Context, s *domain.Shop) error {
	r.shops[s.Domain] = s
	return nil
}

func (r *fakeShopRepo) GetShop(_ context.Context, d string) (*domain.Shop, error) {
	return r.shops[d], nil
}

func (r *fakeShopRepo) DeleteShop(_ context.Context, d string) error {
	delete(r.shops, d)
	return nil
}

const testShop = "example.myshopify.com"

func newInstalledState() (*fakeConfigRepo, *fakeShopRepo) {
	configs := &fakeConfigRepo{configs: map[string]*domain.Configuration{
		testShop: {Shop: testShop, APIKey: "qk_test", AccountID: "acct_1"},
	}}
	shops := &fakeShopRepo{shops: map[string]*domain.Shop{
		testShop: {Domain: testShop, AccessToken: "shpat_test"},
	}}
	return configs, shops
}

func TestCanHandle(t *testing.T) {
	h := NewAppUninstalledHandler(zerolog.Nop(), nil, nil)

	if !h.CanHandle("app/uninstalled") {
		t.Error("CanHandle(app/uninstalled) = false, want true")
	}
	if h.CanHandle("products/update") {
		t.Error("CanHandle(products/update) = true, want false")
	}
}

func TestHandle_DeletesShopData(t *testing.T) {
	configs, shops := newInstalledState()
	h := NewAppUninstalledHandler(zerolog.Nop(), configs, shops)

	err := h.Handle(context.Background(), &domain.WebhookEvent{
		Topic: "app/uninstalled",
		Shop:  testShop,
	})
	if err != nil {
		t.Fatalf("Handle() error = %v", err)
	}

	if _, ok := configs.configs[testShop]; ok {
		t.Error("configuration still present after uninstall")
	}
	if _, ok := shops.shops[testShop]; ok {
		t.Error("shop record still present after uninstall")
	}
}

func TestHandle_ResolvesDomainFromPayload(t *testing.T) {
	tests := []struct {
		name    string
		payload string
	}{
		{"domain field", `{"domain":"example.myshopify.com"}`},
		{"myshopify_domain field", `{"myshopify_domain":"example.myshopify.com"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			configs, shops := newInstalledState()
			h := NewAppUninstalledHandler(zerolog.Nop(), configs, shops)

			err := h.Handle(context.Background(), &domain.WebhookEvent{
				Topic:   "app/uninstalled",
				Payload: []byte(tt.payload),
			})
			if err != nil {
				t.Fatalf("Handle() error = %v", err)
			}
			if _, ok := configs.configs[testShop]; ok {
				t.Error("configuration still present after uninstall")
			}
		})
	}
}

func TestHandle_NoShopDomain(t *testing.T) {
	configs, shops := newInstalledState()
	h := NewAppUninstalledHandler(zerolog.Nop(), configs, shops)

	err := h.Handle(context.Background(), &domain.WebhookEvent{
		Topic:   "app/uninstalled",
		Payload: []byte(`{}`),
	})
	if err == nil {
		t.Error("Handle() = nil, want error when no shop domain is present")
	}
}

func TestHandle_Redelivery(t *testing.T) {
	configs, shops := newInstalledState()
	h := NewAppUninstalledHandler(zerolog.Nop(), configs, shops)

	event := &domain.WebhookEvent{Topic: "app/uninstalled", Shop: testShop}
	if err := h.Handle(context.Background(), event); err != nil {
		t.Fatalf("first Handle() error = %v", err)
	}
	if err := h.Handle(context.Background(), event); err != nil {
		t.Errorf("redelivered Handle() error = %v, want nil", err)
	}
}
