package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	domainErrors "github.com/Manavv007/GlobeTrotter-sub000/internal/domain/errors"
	"github.com/Manavv007/GlobeTrotter-sub000/internal/domain/models"
	"github.com/Manavv007/GlobeTrotter-sub000/internal/domain/repository"
)

// UsersCollection is the name of the user collection.
const UsersCollection = "users"

// UserRepositoryMongo implements repository.UserRepository on MongoDB.
// Session ledger mutations are expressed as update operators so each one is
// a single atomic document write; the FIFO bound is enforced inside the
// $push itself via $slice.
type UserRepositoryMongo struct {
	collection *mongo.Collection
}

// NewUserRepositoryMongo creates a new UserRepositoryMongo.
func NewUserRepositoryMongo(db *mongo.Database) *UserRepositoryMongo {
	return &UserRepositoryMongo{collection: db.Collection(UsersCollection)}
}

// Create inserts a new user. A duplicate email maps to ErrEmailExists.
func (r *UserRepositoryMongo) Create(ctx context.Context, user *models.User) error {
	_, err := r.collection.InsertOne(ctx, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domainErrors.ErrEmailExists
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (r *UserRepositoryMongo) findOne(ctx context.Context, filter bson.M) (*models.User, error) {
	var user models.User
	err := r.collection.FindOne(ctx, filter).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domainErrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return &user, nil
}

// FindByID retrieves a user by id.
func (r *UserRepositoryMongo) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

// FindByEmail retrieves a user by email. Emails are stored lowercased, the
// caller is expected to normalize before lookup.
func (r *UserRepositoryMongo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

// FindByVerificationToken retrieves the user holding an unconsumed email
// verification token.
func (r *UserRepositoryMongo) FindByVerificationToken(ctx context.Context, token string) (*models.User, error) {
	return r.findOne(ctx, bson.M{"emailVerificationToken": token})
}

// FindByResetToken retrieves the user holding an unconsumed password reset
// token.
func (r *UserRepositoryMongo) FindByResetToken(ctx context.Context, token string) (*models.User, error) {
	return r.findOne(ctx, bson.M{"resetPasswordToken": token})
}

// FindBySessionID locates the user owning the given session.
func (r *UserRepositoryMongo) FindBySessionID(ctx context.Context, sessionID string) (*models.User, error) {
	return r.findOne(ctx, bson.M{"activeSessions.sessionId": sessionID})
}

// Update replaces the mutable profile fields of a user.
func (r *UserRepositoryMongo) Update(ctx context.Context, user *models.User) error {
	user.UpdatedAt = time.Now().UTC()
	update := bson.M{"$set": bson.M{
		"firstName":       user.FirstName,
		"lastName":        user.LastName,
		"role":            user.Role,
		"isActive":        user.IsActive,
		"isEmailVerified": user.IsEmailVerified,
		"updatedAt":       user.UpdatedAt,
	}}
	result, err := r.collection.UpdateByID(ctx, user.ID, update)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	if result.MatchedCount == 0 {
		return domainErrors.ErrUserNotFound
	}
	return nil
}

// UpdatePassword replaces the password hash and clears any outstanding
// reset token in the same write.
func (r *UserRepositoryMongo) UpdatePassword(ctx context.Context, userID uuid.UUID, passwordHash string) error {
	update := bson.M{
		"$set":   bson.M{"passwordHash": passwordHash, "updatedAt": time.Now().UTC()},
		"$unset": bson.M{"resetPasswordToken": "", "resetPasswordExpires": ""},
	}
	result, err := r.collection.UpdateByID(ctx, userID, update)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	if result.MatchedCount == 0 {
		return domainErrors.ErrUserNotFound
	}
	return nil
}

// SetEmailVerified marks the user verified and consumes the verification
// token.
func (r *UserRepositoryMongo) SetEmailVerified(ctx context.Context, userID uuid.UUID) error {
	update := bson.M{
		"$set":   bson.M{"isEmailVerified": true, "updatedAt": time.Now().UTC()},
		"$unset": bson.M{"emailVerificationToken": "", "emailVerificationExpires": ""},
	}
	result, err := r.collection.UpdateByID(ctx, userID, update)
	if err != nil {
		return fmt.Errorf("failed to set email verified: %w", err)
	}
	if result.MatchedCount == 0 {
		return domainErrors.ErrUserNotFound
	}
	return nil
}

// SetVerificationToken stores a fresh email verification token and expiry.
func (r *UserRepositoryMongo) SetVerificationToken(ctx context.Context, userID uuid.UUID, token string, expires time.Time) error {
	update := bson.M{"$set": bson.M{
		"emailVerificationToken":   token,
		"emailVerificationExpires": expires,
		"updatedAt":                time.Now().UTC(),
	}}
	result, err := r.collection.UpdateByID(ctx, userID, update)
	if err != nil {
		return fmt.Errorf("failed to set verification token: %w", err)
	}
	if result.MatchedCount == 0 {
		return domainErrors.ErrUserNotFound
	}
	return nil
}

// SetResetToken stores a fresh password reset token and expiry.
func (r *UserRepositoryMongo) SetResetToken(ctx context.Context, userID uuid.UUID, token string, expires time.Time) error {
	update := bson.M{"$set": bson.M{
		"resetPasswordToken":   token,
		"resetPasswordExpires": expires,
		"updatedAt":            time.Now().UTC(),
	}}
	result, err := r.collection.UpdateByID(ctx, userID, update)
	if err != nil {
		return fmt.Errorf("failed to set reset token: %w", err)
	}
	if result.MatchedCount == 0 {
		return domainErrors.ErrUserNotFound
	}
	return nil
}

// PushSession appends a session to the ledger. $slice keeps the newest
// MaxActiveSessions entries, evicting from the front, in the same atomic
// write as the append.
func (r *UserRepositoryMongo) PushSession(ctx context.Context, userID uuid.UUID, session models.Session) error {
	update := bson.M{
		"$push": bson.M{"activeSessions": bson.M{
			"$each":  []models.Session{session},
			"$slice": -models.MaxActiveSessions,
		}},
		"$set": bson.M{"updatedAt": time.Now().UTC()},
	}
	result, err := r.collection.UpdateByID(ctx, userID, update)
	if err != nil {
		return fmt.Errorf("failed to push session: %w", err)
	}
	if result.MatchedCount == 0 {
		return domainErrors.ErrUserNotFound
	}
	return nil
}

// PullSession removes one session by id. Pulling an id that is not present
// matches the user and modifies nothing, which keeps removal idempotent.
func (r *UserRepositoryMongo) PullSession(ctx context.Context, userID uuid.UUID, sessionID string) error {
	update := bson.M{
		"$pull": bson.M{"activeSessions": bson.M{"sessionId": sessionID}},
		"$set":  bson.M{"updatedAt": time.Now().UTC()},
	}
	result, err := r.collection.UpdateByID(ctx, userID, update)
	if err != nil {
		return fmt.Errorf("failed to pull session: %w", err)
	}
	if result.MatchedCount == 0 {
		return domainErrors.ErrUserNotFound
	}
	return nil
}

// TouchSession sets lastActivity of the matching ledger entry.
func (r *UserRepositoryMongo) TouchSession(ctx context.Context, userID uuid.UUID, sessionID string, at time.Time) error {
	filter := bson.M{"_id": userID, "activeSessions.sessionId": sessionID}
	update := bson.M{"$set": bson.M{"activeSessions.$.lastActivity": at}}
	if _, err := r.collection.UpdateOne(ctx, filter, update); err != nil {
		return fmt.Errorf("failed to touch session: %w", err)
	}
	return nil
}

// ClearSessions replaces the whole ledger with an empty list.
func (r *UserRepositoryMongo) ClearSessions(ctx context.Context, userID uuid.UUID) error {
	update := bson.M{"$set": bson.M{
		"activeSessions": []models.Session{},
		"updatedAt":      time.Now().UTC(),
	}}
	result, err := r.collection.UpdateByID(ctx, userID, update)
	if err != nil {
		return fmt.Errorf("failed to clear sessions: %w", err)
	}
	if result.MatchedCount == 0 {
		return domainErrors.ErrUserNotFound
	}
	return nil
}

// PruneIdleSessions pulls every session idle since before the cutoff from
// every qualifying user in one bulk update.
func (r *UserRepositoryMongo) PruneIdleSessions(ctx context.Context, cutoff time.Time) (int64, error) {
	filter := bson.M{"activeSessions.lastActivity": bson.M{"$lt": cutoff}}
	update := bson.M{"$pull": bson.M{"activeSessions": bson.M{"lastActivity": bson.M{"$lt": cutoff}}}}
	result, err := r.collection.UpdateMany(ctx, filter, update)
	if err != nil {
		return 0, fmt.Errorf("failed to prune idle sessions: %w", err)
	}
	return result.ModifiedCount, nil
}

// BackfillSessionLedgers gives every legacy user document an empty ledger.
func (r *UserRepositoryMongo) BackfillSessionLedgers(ctx context.Context) (int64, error) {
	filter := bson.M{"activeSessions": bson.M{"$exists": false}}
	update := bson.M{"$set": bson.M{"activeSessions": []models.Session{}}}
	result, err := r.collection.UpdateMany(ctx, filter, update)
	if err != nil {
		return 0, fmt.Errorf("failed to backfill session ledgers: %w", err)
	}
	return result.ModifiedCount, nil
}

var _ repository.UserRepository = (*UserRepositoryMongo)(nil)
