package application

import (
	"context"
	"fmt"
	"strings"
	"time"

	"quotiza-connect/internal/domain"
	"quotiza-connect/internal/ports"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// SettingsService validates and persists per-shop Quotiza settings.
type SettingsService struct {
	configRepo ports.ConfigurationRepository
	logger     zerolog.Logger
}

// NewSettingsService creates a new settings service
func NewSettingsService(configRepo ports.ConfigurationRepository, logger zerolog.Logger) *SettingsService {
	return &SettingsService{configRepo: configRepo, logger: logger}
}

// SettingsInput is the settings form payload from the admin UI.
type SettingsInput struct {
	APIKey          string `json:"api_key"`
	AccountID       string `json:"account_id"`
	ImportFrequency string `json:"import_frequency"`
	PriceAdjustment string `json:"price_adjustment"`
	Percentage      string `json:"percentage"`
	Language        string `json:"language"`
}

// Get retrieves the configuration for a shop, nil if none has been saved.
func (s *SettingsService) Get(ctx context.Context, shop string) (*domain.Configuration, error) {
	config, err := s.configRepo.GetByShop(ctx, shop)
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}
	return config, nil
}

// Save validates the input and upserts the configuration keyed by shop.
// Switching to an automatic frequency stamps the durable next-run cursor.
func (s *SettingsService) Save(ctx context.Context, shop string, input SettingsInput) (*domain.Configuration, error) {
	frequency := domain.ImportFrequency(input.ImportFrequency)
	if input.ImportFrequency == "" {
		frequency = domain.FrequencyDaily
	}
	if !frequency.Valid() {
		return nil, fmt.Errorf("invalid import frequency %q", input.ImportFrequency)
	}

	adjustment := domain.PriceAdjustment(input.PriceAdjustment)
	if !adjustment.Valid() {
		return nil, fmt.Errorf("invalid price adjustment %q", input.PriceAdjustment)
	}

	if err := validatePercentage(input.Percentage); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	config := &domain.Configuration{
		Shop:            shop,
		APIKey:          strings.TrimSpace(input.APIKey),
		AccountID:       strings.TrimSpace(input.AccountID),
		ImportFrequency: frequency,
		PriceAdjustment: adjustment,
		Percentage:      strings.TrimSpace(input.Percentage),
		Language:        input.Language,
		UpdatedAt:       now,
	}
	if interval := frequency.Interval(); interval > 0 {
		config.NextRunAt = now.Add(interval)
	}

	if err := s.configRepo.Upsert(ctx, config); err != nil {
		s.logger.Error().Err(err).Str("shop", shop).Msg("Failed to save settings")
		return nil, fmt.Errorf("failed to save settings: %w", err)
	}

	s.logger.Info().
		Str("shop", shop).
		Str("frequency", string(frequency)).
		Msg("Settings saved")

	return config, nil
}

// validatePercentage accepts an empty value or a number in [0, 100].
func validatePercentage(raw string) error {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	pct, err := decimal.NewFromString(raw)
	if err != nil {
		return fmt.Errorf("invalid percentage %q", raw)
	}
	if pct.IsNegative() || pct.GreaterThan(decimal.NewFromInt(100)) {
		return fmt.Errorf("percentage must be between 0 and 100, got %s", pct)
	}
	return nil
}
