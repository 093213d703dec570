package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"quotiza-connect/internal/application"
	"quotiza-connect/internal/domain"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// Handlers exposes the sync pipeline and settings to the embedded admin UI.
type Handlers struct {
	syncService     *application.SyncService
	settingsService *application.SettingsService
	logger          zerolog.Logger
}

// NewHandlers creates the API handler set
func NewHandlers(
	syncService *application.SyncService,
	settingsService *application.SettingsService,
	logger zerolog.Logger,
) *Handlers {
	return &Handlers{
		syncService:     syncService,
		settingsService: settingsService,
		logger:          logger,
	}
}

// TriggerSync runs one sync attempt for the tenant shop. The result is
// always HTTP 200; the UI reads status/message from the body.
func (h *Handlers) TriggerSync(w http.ResponseWriter, r *http.Request) {
	shop := domain.GetShopDomainFromContext(r.Context())
	result := h.syncService.RunSync(r.Context(), shop)
	writeJSON(w, http.StatusOK, result)
}

// SyncHistory returns recent sync attempts for the tenant shop.
func (h *Handlers) SyncHistory(w http.ResponseWriter, r *http.Request) {
	shop := domain.GetShopDomainFromContext(r.Context())

	limit := 20
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 || parsed > 100 {
			writeError(w, http.StatusBadRequest, "limit must be a number between 1 and 100")
			return
		}
		limit = parsed
	}

	records, err := h.syncService.History(r.Context(), shop, limit)
	if err != nil {
		h.logger.Error().Err(err).Str("shop", shop).Msg("Failed to list sync history")
		writeError(w, http.StatusInternalServerError, "failed to list sync history")
		return
	}
	if records == nil {
		records = []*domain.SyncHistoryRecord{}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"records": records})
}

// ImportStatus proxies Quotiza's job status endpoint for the UI.
func (h *Handlers) ImportStatus(w http.ResponseWriter, r *http.Request) {
	shop := domain.GetShopDomainFromContext(r.Context())
	jobID := chi.URLParam(r, "jobID")

	status, err := h.syncService.ImportStatus(r.Context(), shop, jobID)
	if err != nil {
		var apiErr *domain.QuotizaAPIError
		switch {
		case errors.Is(err, domain.ErrMissingCredentials):
			writeError(w, http.StatusBadRequest, err.Error())
		case errors.As(err, &apiErr):
			writeError(w, http.StatusBadGateway, apiErr.Message)
		default:
			h.logger.Error().Err(err).Str("shop", shop).Str("jobId", jobID).Msg("Failed to check import status")
			writeError(w, http.StatusInternalServerError, "failed to check import status")
		}
		return
	}

	writeJSON(w, http.StatusOK, status)
}

// GetSettings returns the saved configuration, or an empty object when the
// shop has not configured the app yet.
func (h *Handlers) GetSettings(w http.ResponseWriter, r *http.Request) {
	shop := domain.GetShopDomainFromContext(r.Context())

	config, err := h.settingsService.Get(r.Context(), shop)
	if err != nil {
		h.logger.Error().Err(err).Str("shop", shop).Msg("Failed to load settings")
		writeError(w, http.StatusInternalServerError, "failed to load settings")
		return
	}
	if config == nil {
		writeJSON(w, http.StatusOK, map[string]interface{}{})
		return
	}

	writeJSON(w, http.StatusOK, config)
}

// SaveSettings validates and upserts the configuration for the tenant shop.
func (h *Handlers) SaveSettings(w http.ResponseWriter, r *http.Request) {
	shop := domain.GetShopDomainFromContext(r.Context())

	var input application.SettingsInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	config, err := h.settingsService.Save(r.Context(), shop, input)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, config)
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
