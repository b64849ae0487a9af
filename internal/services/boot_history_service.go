package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/Ecclesia-Lucis/LightPath/internal/models"
	"github.com/Ecclesia-Lucis/LightPath/internal/repositories"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultPruneInterval is how often old boot records are removed
const DefaultPruneInterval = 24 * time.Hour

// BootHistoryConfig holds configuration for the boot history service
type BootHistoryConfig struct {
	// Environment, Version and Port are copied onto each boot record
	Environment string
	Version     string
	Port        string

	// Retention is how long boot records are kept
	Retention time.Duration

	// PruneInterval overrides DefaultPruneInterval when positive
	PruneInterval time.Duration
}

// BootHistoryService records server boots and prunes old records periodically
type BootHistoryService struct {
	repo   *repositories.ServerStartRepository
	config BootHistoryConfig
	log    *zap.Logger

	ticker   *time.Ticker
	done     chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// NewBootHistoryService creates a new boot history service
func NewBootHistoryService(
	repo *repositories.ServerStartRepository,
	config BootHistoryConfig,
	log *zap.Logger,
) (*BootHistoryService, error) {
	if repo == nil {
		return nil, fmt.Errorf("server start repository is required")
	}
	if config.Retention <= 0 {
		return nil, fmt.Errorf("retention must be positive")
	}
	if config.PruneInterval <= 0 {
		config.PruneInterval = DefaultPruneInterval
	}
	if log == nil {
		log = zap.NewNop()
	}

	return &BootHistoryService{
		repo:   repo,
		config: config,
		log:    log.Named("boot_history"),
		done:   make(chan struct{}),
	}, nil
}

// RecordStart stores a boot record for the current process
// The previous boot and the running total are logged; failures to read them do not fail the call.
func (s *BootHistoryService) RecordStart(ctx context.Context, startedAt time.Time) (*models.ServerStart, error) {
	previous, err := s.repo.FindLatest(ctx)
	if err != nil {
		s.log.Warn("Failed to read previous server start", zap.Error(err))
	} else if previous != nil {
		s.log.Info("Previous server start",
			zap.String("id", previous.ID),
			zap.Time("started_at", previous.StartedAt),
			zap.Duration("age", previous.Age()),
			zap.String("version", previous.Version),
		)
	}

	start := &models.ServerStart{
		ID:          uuid.New().String(),
		StartedAt:   startedAt.UTC(),
		Environment: s.config.Environment,
		Version:     s.config.Version,
		Port:        s.config.Port,
	}

	if err := s.repo.Create(ctx, start); err != nil {
		return nil, fmt.Errorf("failed to record server start: %w", err)
	}

	fields := []zap.Field{
		zap.String("id", start.ID),
		zap.Time("started_at", start.StartedAt),
	}
	if total, err := s.repo.Count(ctx); err != nil {
		s.log.Warn("Failed to count server starts", zap.Error(err))
	} else {
		fields = append(fields, zap.Int64("total_starts", total))
	}

	s.log.Info("Recorded server start", fields...)
	return start, nil
}

// Start runs a prune pass immediately and then every PruneInterval until Stop is called
func (s *BootHistoryService) Start() {
	s.runPrune()

	s.ticker = time.NewTicker(s.config.PruneInterval)

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		for {
			select {
			case <-s.ticker.C:
				s.runPrune()
			case <-s.done:
				s.log.Info("Boot history pruning stopped")
				return
			}
		}
	}()

	s.log.Info("Boot history pruning started", zap.Duration("interval", s.config.PruneInterval))
}

// Stop stops the pruning loop and waits for it to exit; safe to call more than once
func (s *BootHistoryService) Stop() {
	s.stopOnce.Do(func() {
		if s.ticker != nil {
			s.ticker.Stop()
		}
		close(s.done)
	})
	s.wg.Wait()
}

// PruneNow triggers an immediate prune and returns the number of records removed
func (s *BootHistoryService) PruneNow(ctx context.Context) (int64, error) {
	cutoff := time.Now().UTC().Add(-s.config.Retention)

	count, err := s.repo.CleanupOlderThan(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to prune boot history: %w", err)
	}

	return count, nil
}

func (s *BootHistoryService) runPrune() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	count, err := s.PruneNow(ctx)
	if err != nil {
		s.log.Error("Boot history prune failed", zap.Error(err))
		return
	}

	s.log.Info("Boot history pruned", zap.Int64("removed", count))
}
