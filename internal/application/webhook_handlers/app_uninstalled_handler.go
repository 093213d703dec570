package webhook_handlers

import (
	"context"
	"encoding/json"
	"fmt"

	"quotiza-connect/internal/domain"
	"quotiza-connect/internal/ports"

	"github.com/rs/zerolog"
)

// AppUninstalledHandler cleans up a shop's data when the app is removed.
// Uninstall webhooks can be delivered more than once, so every delete is
// tolerant of already-missing records.
type AppUninstalledHandler struct {
	logger     zerolog.Logger
	configRepo ports.ConfigurationRepository
	shopRepo   ports.ShopRepository
}

// NewAppUninstalledHandler creates a new app uninstalled webhook handler
func NewAppUninstalledHandler(
	logger zerolog.Logger,
	configRepo ports.ConfigurationRepository,
	shopRepo ports.ShopRepository,
) *AppUninstalledHandler {
	return &AppUninstalledHandler{
		logger:     logger,
		configRepo: configRepo,
		shopRepo:   shopRepo,
	}
}

// CanHandle returns true if this handler can process the given topic
func (h *AppUninstalledHandler) CanHandle(topic string) bool {
	return topic == "app/uninstalled"
}

// Handle deletes the shop's configuration and its stored access token.
func (h *AppUninstalledHandler) Handle(ctx context.Context, event *domain.WebhookEvent) error {
	shopDomain := event.Shop
	if shopDomain == "" {
		var shopData map[string]interface{}
		if err := json.Unmarshal(event.Payload, &shopData); err != nil {
			return fmt.Errorf("failed to parse app uninstalled webhook payload: %w", err)
		}
		if d, ok := shopData["domain"].(string); ok {
			shopDomain = d
		} else if d, ok := shopData["myshopify_domain"].(string); ok {
			shopDomain = d
		}
	}
	if shopDomain == "" {
		return fmt.Errorf("app uninstalled webhook without a shop domain")
	}

	h.logger.Info().
		Str("topic", event.Topic).
		Str("shop", shopDomain).
		Msg("Processing app uninstalled webhook event")

	if err := h.configRepo.DeleteByShop(ctx, shopDomain); err != nil {
		h.logger.Warn().Err(err).Str("shop", shopDomain).Msg("Failed to delete configuration")
	}

	if err := h.shopRepo.DeleteShop(ctx, shopDomain); err != nil {
		h.logger.Warn().Err(err).Str("shop", shopDomain).Msg("Failed to delete shop record")
	}

	h.logger.Info().Str("shop", shopDomain).Msg("App uninstalled - cleanup completed")
	return nil
}
