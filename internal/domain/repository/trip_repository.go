package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/Manavv007/GlobeTrotter-sub000/internal/domain/models"
)

// TripRepository persists trip documents.
type TripRepository interface {
	Create(ctx context.Context, trip *models.Trip) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Trip, error)
	FindByUser(ctx context.Context, userID uuid.UUID) ([]*models.Trip, error)
	FindPublic(ctx context.Context, limit int64) ([]*models.Trip, error)
	Update(ctx context.Context, trip *models.Trip) error
	Delete(ctx context.Context, id uuid.UUID) error

	// StartDueTrips moves planned trips whose start date has passed to
	// ongoing. Returns trips modified.
	StartDueTrips(ctx context.Context, now time.Time) (int64, error)
	// CompleteFinishedTrips moves ongoing trips whose end date has passed to
	// completed. Returns trips modified.
	CompleteFinishedTrips(ctx context.Context, now time.Time) (int64, error)
}
