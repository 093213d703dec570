package application

import (
	"context"
	"fmt"
	"time"

	"quotiza-connect/internal/domain"
	"quotiza-connect/internal/ports"

	"github.com/rs/zerolog"
)

// DefaultPageSize is the fixed catalog page size. Exactly one page is
// fetched per sync; larger catalogs are truncated (accepted limitation).
const DefaultPageSize = 250

// SyncService orchestrates one product export: configuration → catalog page
// → transform → Quotiza submit → history record. Each invocation is
// independent; there is no resumption of a partial run.
type SyncService struct {
	configRepo  ports.ConfigurationRepository
	historyRepo ports.SyncHistoryRepository
	catalog     ports.CatalogReader
	quotiza     ports.QuotizaClient
	transformer *ProductTransformer
	locks       ports.SyncLockFactory
	metrics     ports.SyncMetrics
	logger      zerolog.Logger
	pageSize    int
}

// NewSyncService creates a new sync orchestrator. metrics may be nil.
func NewSyncService(
	configRepo ports.ConfigurationRepository,
	historyRepo ports.SyncHistoryRepository,
	catalog ports.CatalogReader,
	quotiza ports.QuotizaClient,
	transformer *ProductTransformer,
	locks ports.SyncLockFactory,
	metrics ports.SyncMetrics,
	logger zerolog.Logger,
) *SyncService {
	return &SyncService{
		configRepo:  configRepo,
		historyRepo: historyRepo,
		catalog:     catalog,
		quotiza:     quotiza,
		transformer: transformer,
		locks:       locks,
		metrics:     metrics,
		logger:      logger,
		pageSize:    DefaultPageSize,
	}
}

// RunSync runs one sync attempt for a shop. All pipeline errors are caught
// here and converted into the result; callers surface Message verbatim.
func (s *SyncService) RunSync(ctx context.Context, shop string) domain.SyncResult {
	start := time.Now()
	result := s.runSync(ctx, shop)
	if s.metrics != nil {
		s.metrics.ObserveSync(string(result.Status), time.Since(start))
	}
	return result
}

func (s *SyncService) runSync(ctx context.Context, shop string) domain.SyncResult {
	config, err := s.configRepo.GetByShop(ctx, shop)
	if err != nil {
		s.logger.Error().Err(err).Str("shop", shop).Msg("Failed to load configuration")
		return errorResult(fmt.Errorf("failed to load configuration: %w", err))
	}

	// Hard precondition: both credentials must be present. Fails fast,
	// before any history record is written.
	if !config.HasCredentials() {
		return errorResult(domain.ErrMissingCredentials)
	}

	// Serialize attempts per shop so a manual trigger and a scheduled run
	// cannot double-submit the same catalog.
	lock := s.locks.ForShop(shop)
	acquired, err := lock.Acquire(ctx)
	if err != nil {
		s.logger.Error().Err(err).Str("shop", shop).Msg("Failed to acquire sync lock")
		return errorResult(fmt.Errorf("failed to acquire sync lock: %w", err))
	}
	if !acquired {
		return errorResult(domain.ErrSyncInProgress)
	}
	defer func() {
		if err := lock.Release(ctx); err != nil {
			s.logger.Warn().Err(err).Str("shop", shop).Msg("Failed to release sync lock")
		}
	}()

	record := &domain.SyncHistoryRecord{
		Shop:   shop,
		Status: domain.SyncInProgress,
		Date:   time.Now().UTC(),
	}
	if err := s.historyRepo.Create(ctx, record); err != nil {
		s.logger.Error().Err(err).Str("shop", shop).Msg("Failed to open sync history record")
		return errorResult(fmt.Errorf("failed to record sync start: %w", err))
	}

	products, err := s.catalog.FetchProductPage(ctx, shop, s.pageSize)
	if err != nil {
		return s.fail(ctx, record, err)
	}

	quotizaProducts := make([]domain.QuotizaProduct, 0, len(products))
	for _, p := range products {
		quotizaProducts = append(quotizaProducts, s.transformer.Transform(p, config))
	}

	jobID, err := s.quotiza.SubmitProducts(ctx, config.Credentials(), quotizaProducts)
	if err != nil {
		return s.fail(ctx, record, err)
	}

	if err := s.historyRepo.MarkSuccess(ctx, record.ID, len(products), jobID); err != nil {
		return s.fail(ctx, record, fmt.Errorf("failed to record sync outcome: %w", err))
	}

	if s.metrics != nil {
		s.metrics.AddProductsExported(len(products))
	}

	s.logger.Info().
		Str("shop", shop).
		Int("products", len(products)).
		Str("jobId", jobID).
		Msg("Sync completed")

	return domain.SyncResult{Status: domain.SyncSuccess}
}

// fail closes the open in_progress record with the error message. The same
// record is closed, not a new one inserted, so no orphaned in_progress rows
// are left behind.
func (s *SyncService) fail(ctx context.Context, record *domain.SyncHistoryRecord, err error) domain.SyncResult {
	s.logger.Error().Err(err).Str("shop", record.Shop).Msg("Sync failed")

	if markErr := s.historyRepo.MarkError(ctx, record.ID, err.Error()); markErr != nil {
		s.logger.Warn().Err(markErr).Str("recordId", record.ID).Msg("Failed to close sync history record")
	}

	return errorResult(err)
}

func errorResult(err error) domain.SyncResult {
	return domain.SyncResult{Status: domain.SyncError, Message: err.Error()}
}

// History returns the most recent sync attempts for a shop, newest first.
func (s *SyncService) History(ctx context.Context, shop string, limit int) ([]*domain.SyncHistoryRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	records, err := s.historyRepo.ListRecent(ctx, shop, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list sync history: %w", err)
	}
	return records, nil
}

// ImportStatus polls Quotiza for the state of a previously submitted job.
func (s *SyncService) ImportStatus(ctx context.Context, shop string, jobID string) (*domain.ImportStatus, error) {
	config, err := s.configRepo.GetByShop(ctx, shop)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if !config.HasCredentials() {
		return nil, domain.ErrMissingCredentials
	}
	return s.quotiza.CheckImportStatus(ctx, config.Credentials(), jobID)
}
