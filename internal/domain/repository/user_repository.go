package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/Manavv007/GlobeTrotter-sub000/internal/domain/models"
)

// UserRepository persists user documents and their embedded session ledger.
//
// The session mutation methods are single-document atomic operations: the
// FIFO bound, removal and activity touch are applied by the store itself,
// so concurrent logins or logouts against the same user cannot lose each
// other's writes.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByVerificationToken(ctx context.Context, token string) (*models.User, error)
	FindByResetToken(ctx context.Context, token string) (*models.User, error)
	// FindBySessionID locates the user owning the session with the given id.
	FindBySessionID(ctx context.Context, sessionID string) (*models.User, error)

	Update(ctx context.Context, user *models.User) error
	UpdatePassword(ctx context.Context, userID uuid.UUID, passwordHash string) error
	SetEmailVerified(ctx context.Context, userID uuid.UUID) error
	SetVerificationToken(ctx context.Context, userID uuid.UUID, token string, expires time.Time) error
	SetResetToken(ctx context.Context, userID uuid.UUID, token string, expires time.Time) error

	// PushSession appends a session, evicting the oldest entry when the
	// ledger already holds models.MaxActiveSessions.
	PushSession(ctx context.Context, userID uuid.UUID, session models.Session) error
	// PullSession removes one session by id. Unknown ids are a no-op.
	PullSession(ctx context.Context, userID uuid.UUID, sessionID string) error
	// TouchSession sets lastActivity of one session to now.
	TouchSession(ctx context.Context, userID uuid.UUID, sessionID string, at time.Time) error
	// ClearSessions replaces the whole ledger with an empty list.
	ClearSessions(ctx context.Context, userID uuid.UUID) error
	// PruneIdleSessions pulls, across all users, every session idle since
	// before the cutoff. Returns the number of users modified.
	PruneIdleSessions(ctx context.Context, cutoff time.Time) (int64, error)
	// BackfillSessionLedgers initializes a missing activeSessions field to
	// an empty list on every user lacking one. Returns users modified.
	BackfillSessionLedgers(ctx context.Context) (int64, error)
}
