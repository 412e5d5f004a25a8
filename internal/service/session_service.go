package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	domainErrors "github.com/Manavv007/GlobeTrotter-sub000/internal/domain/errors"
	"github.com/Manavv007/GlobeTrotter-sub000/internal/domain/models"
	"github.com/Manavv007/GlobeTrotter-sub000/internal/domain/repository"
	"github.com/Manavv007/GlobeTrotter-sub000/internal/events/kafka"
)

// SessionService owns the session ledger operations that are not part of
// the authentication gate itself: listing, per-device logout and full
// revocation.
type SessionService struct {
	userRepo  repository.UserRepository
	publisher kafka.Publisher
	logger    *zap.Logger
}

// NewSessionService creates a new SessionService.
func NewSessionService(userRepo repository.UserRepository, publisher kafka.Publisher, logger *zap.Logger) *SessionService {
	return &SessionService{
		userRepo:  userRepo,
		publisher: publisher,
		logger:    logger,
	}
}

// ListSessions returns the caller's ledger with token values stripped.
// currentSessionID flags the session the caller is speaking through.
func (s *SessionService) ListSessions(user *models.User, currentSessionID string) []models.SessionResponse {
	responses := make([]models.SessionResponse, 0, len(user.ActiveSessions))
	for i := range user.ActiveSessions {
		responses = append(responses, user.ActiveSessions[i].ToResponse(currentSessionID))
	}
	return responses
}

// Logout removes one session by its id. The owning user is located through
// the session id itself; no bearer token is involved in this flow. Logging
// out a session that no longer exists succeeds.
func (s *SessionService) Logout(ctx context.Context, sessionID string) error {
	user, err := s.userRepo.FindBySessionID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, domainErrors.ErrUserNotFound) {
			// Already gone: evicted, swept, or logged out twice.
			return nil
		}
		return err
	}

	user.RemoveSession(sessionID)
	if err := s.userRepo.PullSession(ctx, user.ID, sessionID); err != nil {
		return err
	}

	s.publish(ctx, kafka.EventUserLoggedOut, user.ID, map[string]string{"session_id": sessionID})
	return nil
}

// ForceLogoutAll replaces the user's whole ledger with an empty list.
// Idempotent: a user with no sessions is left unchanged.
func (s *SessionService) ForceLogoutAll(ctx context.Context, userID uuid.UUID) error {
	if err := s.userRepo.ClearSessions(ctx, userID); err != nil {
		return err
	}
	s.publish(ctx, kafka.EventSessionsRevoked, userID, nil)
	return nil
}

func (s *SessionService) publish(ctx context.Context, eventType kafka.EventType, userID uuid.UUID, data interface{}) {
	if err := s.publisher.Publish(ctx, eventType, userID.String(), data); err != nil {
		s.logger.Warn("Failed to publish event",
			zap.String("type", string(eventType)), zap.Error(err))
	}
}
