package application

import (
	"context"
	"sync"
	"time"

	"quotiza-connect/internal/domain"
	"quotiza-connect/internal/ports"

	"github.com/rs/zerolog"
)

// DefaultSchedulerPollInterval is how often the scheduler checks for shops
// whose next run is due.
const DefaultSchedulerPollInterval = time.Minute

// SyncScheduler is the server-side replacement for the original client-side
// timer. It polls for configurations with an automatic import frequency
// whose durable next-run timestamp has arrived and runs the orchestrator.
// The per-shop sync lock inside the orchestrator keeps scheduled runs from
// racing manual triggers.
type SyncScheduler struct {
	configRepo   ports.ConfigurationRepository
	syncService  *SyncService
	logger       zerolog.Logger
	pollInterval time.Duration

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewSyncScheduler creates a new scheduler polling at the given interval.
// A non-positive interval falls back to the default.
func NewSyncScheduler(
	configRepo ports.ConfigurationRepository,
	syncService *SyncService,
	logger zerolog.Logger,
	pollInterval time.Duration,
) *SyncScheduler {
	if pollInterval <= 0 {
		pollInterval = DefaultSchedulerPollInterval
	}
	return &SyncScheduler{
		configRepo:   configRepo,
		syncService:  syncService,
		logger:       logger,
		pollInterval: pollInterval,
	}
}

// Start launches the polling loop in a background goroutine.
func (s *SyncScheduler) Start(ctx context.Context) {
	ctx, s.cancel = context.WithCancel(ctx)
	s.wg.Add(1)

	go func() {
		defer s.wg.Done()

		ticker := time.NewTicker(s.pollInterval)
		defer ticker.Stop()

		s.logger.Info().Dur("pollInterval", s.pollInterval).Msg("Sync scheduler started")

		for {
			select {
			case <-ctx.Done():
				s.logger.Info().Msg("Sync scheduler stopped")
				return
			case <-ticker.C:
				s.tick(ctx)
			}
		}
	}()
}

// Stop cancels the loop and waits for an in-flight tick to finish.
func (s *SyncScheduler) Stop() {
	if s.cancel != nil {
		s.cancel()
	}
	s.wg.Wait()
}

// tick runs every due shop sequentially and advances its next-run cursor.
// The cursor moves even when the run fails, so one broken shop cannot be
// retried in a tight loop.
func (s *SyncScheduler) tick(ctx context.Context) {
	now := time.Now().UTC()

	due, err := s.configRepo.ListDue(ctx, now)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to list due configurations")
		return
	}

	for _, config := range due {
		result := s.syncService.RunSync(ctx, config.Shop)

		event := s.logger.Info()
		if result.Status != domain.SyncSuccess {
			event = s.logger.Warn().Str("message", result.Message)
		}
		event.
			Str("shop", config.Shop).
			Str("status", string(result.Status)).
			Str("frequency", string(config.ImportFrequency)).
			Msg("Scheduled sync finished")

		next := NextRun(config.ImportFrequency, time.Now().UTC())
		if next.IsZero() {
			continue
		}
		if err := s.configRepo.SetNextRunAt(ctx, config.Shop, next); err != nil {
			s.logger.Error().Err(err).Str("shop", config.Shop).Msg("Failed to advance next run")
		}
	}
}

// NextRun computes the next due timestamp for a frequency, zero for manual.
func NextRun(frequency domain.ImportFrequency, now time.Time) time.Time {
	interval := frequency.Interval()
	if interval <= 0 {
		return time.Time{}
	}
	return now.Add(interval)
}
