package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	domainErrors "github.com/Manavv007/GlobeTrotter-sub000/internal/domain/errors"
	"github.com/Manavv007/GlobeTrotter-sub000/internal/domain/models"
	"github.com/Manavv007/GlobeTrotter-sub000/internal/domain/repository"
)

const communityFeedLimit = 50

// TripService owns trip CRUD and the public community feed.
type TripService struct {
	tripRepo repository.TripRepository
	logger   *zap.Logger
}

// NewTripService creates a new TripService.
func NewTripService(tripRepo repository.TripRepository, logger *zap.Logger) *TripService {
	return &TripService{tripRepo: tripRepo, logger: logger}
}

// CreateTrip creates a trip for the owner. The initial status follows the
// dates so a trip created mid-journey starts as ongoing.
func (s *TripService) CreateTrip(ctx context.Context, userID uuid.UUID, req models.CreateTripRequest) (*models.Trip, error) {
	if req.EndDate.Before(req.StartDate) {
		return nil, domainErrors.ErrInvalidRequest
	}

	now := time.Now().UTC()
	trip := &models.Trip{
		ID:          uuid.New(),
		UserID:      userID,
		Title:       req.Title,
		Destination: req.Destination,
		Description: req.Description,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Status:      statusForDates(req.StartDate, req.EndDate, now),
		IsPublic:    req.IsPublic,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.tripRepo.Create(ctx, trip); err != nil {
		return nil, err
	}
	return trip, nil
}

// GetTrip returns a trip the caller may see: their own, or any public one.
func (s *TripService) GetTrip(ctx context.Context, callerID, tripID uuid.UUID) (*models.Trip, error) {
	trip, err := s.tripRepo.FindByID(ctx, tripID)
	if err != nil {
		return nil, err
	}
	if trip.UserID != callerID && !trip.IsPublic {
		return nil, domainErrors.ErrTripNotFound
	}
	return trip, nil
}

// ListTrips returns the caller's trips.
func (s *TripService) ListTrips(ctx context.Context, userID uuid.UUID) ([]*models.Trip, error) {
	return s.tripRepo.FindByUser(ctx, userID)
}

// CommunityFeed returns recent public trips.
func (s *TripService) CommunityFeed(ctx context.Context) ([]*models.Trip, error) {
	return s.tripRepo.FindPublic(ctx, communityFeedLimit)
}

// UpdateTrip applies partial updates to a trip owned by the caller.
func (s *TripService) UpdateTrip(ctx context.Context, callerID, tripID uuid.UUID, req models.UpdateTripRequest) (*models.Trip, error) {
	trip, err := s.tripRepo.FindByID(ctx, tripID)
	if err != nil {
		return nil, err
	}
	if trip.UserID != callerID {
		return nil, domainErrors.ErrTripNotFound
	}

	if req.Title != nil {
		trip.Title = *req.Title
	}
	if req.Destination != nil {
		trip.Destination = *req.Destination
	}
	if req.Description != nil {
		trip.Description = *req.Description
	}
	if req.StartDate != nil {
		trip.StartDate = *req.StartDate
	}
	if req.EndDate != nil {
		trip.EndDate = *req.EndDate
	}
	if req.IsPublic != nil {
		trip.IsPublic = *req.IsPublic
	}
	if trip.EndDate.Before(trip.StartDate) {
		return nil, domainErrors.ErrInvalidRequest
	}
	trip.Status = statusForDates(trip.StartDate, trip.EndDate, time.Now().UTC())

	if err := s.tripRepo.Update(ctx, trip); err != nil {
		return nil, err
	}
	return trip, nil
}

// DeleteTrip removes a trip owned by the caller.
func (s *TripService) DeleteTrip(ctx context.Context, callerID, tripID uuid.UUID) error {
	trip, err := s.tripRepo.FindByID(ctx, tripID)
	if err != nil {
		return err
	}
	if trip.UserID != callerID {
		return domainErrors.ErrTripNotFound
	}
	return s.tripRepo.Delete(ctx, tripID)
}

func statusForDates(start, end, now time.Time) models.TripStatus {
	switch {
	case end.Before(now):
		return models.TripStatusCompleted
	case !start.After(now):
		return models.TripStatusOngoing
	default:
		return models.TripStatusPlanned
	}
}
