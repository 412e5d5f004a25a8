package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	domainErrors "github.com/Manavv007/GlobeTrotter-sub000/internal/domain/errors"
	"github.com/Manavv007/GlobeTrotter-sub000/internal/domain/models"
	"github.com/Manavv007/GlobeTrotter-sub000/internal/domain/repository"
	"github.com/Manavv007/GlobeTrotter-sub000/internal/infrastructure/security"
)

// AuthenticatedRequest is the result of a successful authentication: the
// loaded user, the bearer token presented and the id of the session the
// token belongs to.
type AuthenticatedRequest struct {
	User      *models.User
	Token     string
	SessionID string
}

// TokenService is the request authenticator. A token is admitted only when
// it verifies cryptographically, resolves to an active user and is present
// verbatim in that user's session ledger.
type TokenService struct {
	userRepo repository.UserRepository
	issuer   security.TokenIssuer
	logger   *zap.Logger
}

// NewTokenService creates a new TokenService.
func NewTokenService(userRepo repository.UserRepository, issuer security.TokenIssuer, logger *zap.Logger) *TokenService {
	return &TokenService{
		userRepo: userRepo,
		issuer:   issuer,
		logger:   logger,
	}
}

// Authenticate validates the Authorization header and returns the caller's
// identity. Checks run in order and short-circuit on the first failure; the
// returned errors carry generic messages so a response never reveals which
// check failed.
func (s *TokenService) Authenticate(ctx context.Context, authorizationHeader string) (*AuthenticatedRequest, error) {
	tokenString, err := extractBearerToken(authorizationHeader)
	if err != nil {
		return nil, err
	}

	claims, err := s.issuer.Parse(tokenString)
	if err != nil {
		return nil, domainErrors.ErrInvalidToken
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, domainErrors.ErrInvalidToken
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, domainErrors.ErrInvalidToken
	}

	if !user.IsActive {
		return nil, domainErrors.ErrAccountDeactivated
	}

	// A missing ledger on a legacy document reads as empty; the startup
	// backfill owns the repair write, not the request path.
	session := user.SessionByToken(tokenString)
	if session == nil {
		return nil, domainErrors.ErrSessionInvalid
	}

	user.UpdateSessionActivity(session.SessionID)
	if err := s.userRepo.TouchSession(ctx, user.ID, session.SessionID, time.Now().UTC()); err != nil {
		// The request is already authenticated; losing one activity touch
		// is not worth failing it over.
		s.logger.Warn("Failed to persist session activity",
			zap.String("user_id", user.ID.String()),
			zap.Error(err),
		)
	}

	return &AuthenticatedRequest{
		User:      user,
		Token:     tokenString,
		SessionID: session.SessionID,
	}, nil
}

// extractBearerToken pulls the token out of an "Authorization: Bearer x"
// header.
func extractBearerToken(header string) (string, error) {
	if header == "" {
		return "", domainErrors.ErrTokenRequired
	}
	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", domainErrors.ErrTokenRequired
	}
	return parts[1], nil
}
