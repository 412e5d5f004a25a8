package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/Manavv007/GlobeTrotter-sub000/internal/domain/repository"
)

// MaintenanceService runs the periodic background sweeps: evicting session
// ledger entries that have gone idle and moving trips through their
// date-driven status transitions.
type MaintenanceService struct {
	userRepo    repository.UserRepository
	tripRepo    repository.TripRepository
	idleTimeout time.Duration
	logger      *zap.Logger
}

// NewMaintenanceService creates a new MaintenanceService. idleTimeout is
// how long a session may sit without activity before the sweep evicts it.
func NewMaintenanceService(userRepo repository.UserRepository, tripRepo repository.TripRepository, idleTimeout time.Duration, logger *zap.Logger) *MaintenanceService {
	return &MaintenanceService{
		userRepo:    userRepo,
		tripRepo:    tripRepo,
		idleTimeout: idleTimeout,
		logger:      logger,
	}
}

// PruneStaleSessions evicts, across all users, every session idle for
// longer than the configured timeout. Sessions still within the window are
// untouched. Returns the number of users modified.
func (s *MaintenanceService) PruneStaleSessions(ctx context.Context) (int64, error) {
	cutoff := time.Now().UTC().Add(-s.idleTimeout)
	return s.userRepo.PruneIdleSessions(ctx, cutoff)
}

// TransitionTripStatuses advances planned trips whose start date has
// arrived and closes ongoing trips whose end date has passed.
func (s *MaintenanceService) TransitionTripStatuses(ctx context.Context) (started, completed int64, err error) {
	now := time.Now().UTC()
	started, err = s.tripRepo.StartDueTrips(ctx, now)
	if err != nil {
		return 0, 0, err
	}
	completed, err = s.tripRepo.CompleteFinishedTrips(ctx, now)
	if err != nil {
		return started, 0, err
	}
	return started, completed, nil
}

// Run executes both sweeps on the given interval until ctx is cancelled.
// Sweep failures are logged and the loop keeps going; a broken sweep must
// not take the process down.
func (s *MaintenanceService) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	s.logger.Info("Maintenance loop started", zap.Duration("interval", interval))
	for {
		select {
		case <-ctx.Done():
			s.logger.Info("Maintenance loop stopped")
			return
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

func (s *MaintenanceService) sweep(ctx context.Context) {
	if pruned, err := s.PruneStaleSessions(ctx); err != nil {
		s.logger.Error("Stale session sweep failed", zap.Error(err))
	} else if pruned > 0 {
		s.logger.Info("Evicted stale sessions", zap.Int64("users_affected", pruned))
	}

	started, completed, err := s.TransitionTripStatuses(ctx)
	if err != nil {
		s.logger.Error("Trip status sweep failed", zap.Error(err))
		return
	}
	if started > 0 || completed > 0 {
		s.logger.Info("Advanced trip statuses",
			zap.Int64("started", started), zap.Int64("completed", completed))
	}
}
