package application

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func TestSettingsSave_Validation(t *testing.T) {
	tests := []struct {
		name    string
		input   SettingsInput
		wantErr bool
	}{
		{"valid manual", SettingsInput{APIKey: "k", AccountID: "a", ImportFrequency: "manual"}, false},
		{"valid hourly", SettingsInput{APIKey: "k", AccountID: "a", ImportFrequency: "hourly"}, false},
		{"empty frequency defaults", SettingsInput{APIKey: "k", AccountID: "a"}, false},
		{"invalid frequency", SettingsInput{ImportFrequency: "weekly"}, true},
		{"valid adjustment", SettingsInput{ImportFrequency: "manual", PriceAdjustment: "price_increase", Percentage: "10"}, false},
		{"invalid adjustment", SettingsInput{ImportFrequency: "manual", PriceAdjustment: "double"}, true},
		{"percentage over 100", SettingsInput{ImportFrequency: "manual", Percentage: "150"}, true},
		{"negative percentage", SettingsInput{ImportFrequency: "manual", Percentage: "-5"}, true},
		{"unparseable percentage", SettingsInput{ImportFrequency: "manual", Percentage: "ten"}, true},
		{"empty percentage", SettingsInput{ImportFrequency: "manual", Percentage: ""}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewSettingsService(newFakeConfigRepo(), zerolog.Nop())

			_, err := svc.Save(context.Background(), testShop, tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("Save() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestSettingsSave_UpsertsByShop(t *testing.T) {
	configs := newFakeConfigRepo()
	svc := NewSettingsService(configs, zerolog.Nop())

	if _, err := svc.Save(context.Background(), testShop, SettingsInput{
		APIKey:          "first",
		AccountID:       "acct_1",
		ImportFrequency: "manual",
	}); err != nil {
		t.Fatalf("first Save() error = %v", err)
	}
	if _, err := svc.Save(context.Background(), testShop, SettingsInput{
		APIKey:          "second",
		AccountID:       "acct_1",
		ImportFrequency: "manual",
	}); err != nil {
		t.Fatalf("second Save() error = %v", err)
	}

	if len(configs.configs) != 1 {
		t.Fatalf("stored configurations = %d, want 1 (keyed by shop)", len(configs.configs))
	}
	if got := configs.configs[testShop].APIKey; got != "second" {
		t.Errorf("APIKey = %q, want %q", got, "second")
	}
}

func TestSettingsSave_StampsNextRun(t *testing.T) {
	configs := newFakeConfigRepo()
	svc := NewSettingsService(configs, zerolog.Nop())

	before := time.Now().UTC()
	config, err := svc.Save(context.Background(), testShop, SettingsInput{
		APIKey:          "k",
		AccountID:       "a",
		ImportFrequency: "hourly",
	})
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	if config.NextRunAt.Before(before.Add(time.Hour)) || config.NextRunAt.After(time.Now().UTC().Add(time.Hour)) {
		t.Errorf("NextRunAt = %v, want about one hour from now", config.NextRunAt)
	}
}

func TestSettingsSave_ManualHasNoNextRun(t *testing.T) {
	svc := NewSettingsService(newFakeConfigRepo(), zerolog.Nop())

	config, err := svc.Save(context.Background(), testShop, SettingsInput{
		APIKey:          "k",
		AccountID:       "a",
		ImportFrequency: "manual",
	})
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	if !config.NextRunAt.IsZero() {
		t.Errorf("NextRunAt = %v, want zero for manual frequency", config.NextRunAt)
	}
}

func TestSettingsGet_Unconfigured(t *testing.T) {
	svc := NewSettingsService(newFakeConfigRepo(), zerolog.Nop())

	config, err := svc.Get(context.Background(), testShop)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if config != nil {
		t.Errorf("Get() = %+v, want nil for unconfigured shop", config)
	}
}

func TestSettingsSave_TrimsCredentials(t *testing.T) {
	configs := newFakeConfigRepo()
	svc := NewSettingsService(configs, zerolog.Nop())

	config, err := svc.Save(context.Background(), testShop, SettingsInput{
		APIKey:          "  qk_test  ",
		AccountID:       " acct_1 ",
		ImportFrequency: "manual",
	})
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	if config.APIKey != "qk_test" {
		t.Errorf("APIKey = %q, want trimmed", config.APIKey)
	}
	if config.AccountID != "acct_1" {
		t.Errorf("AccountID = %q, want trimmed", config.AccountID)
	}
}
