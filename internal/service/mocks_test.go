package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/Manavv007/GlobeTrotter-sub000/internal/domain/models"
	"github.com/Manavv007/GlobeTrotter-sub000/internal/events/kafka"
)

// MockUserRepository is a testify mock of repository.UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	args := m.Called(ctx, id)
	if user, ok := args.Get(0).(*models.User); ok {
		return user, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if user, ok := args.Get(0).(*models.User); ok {
		return user, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserRepository) FindByVerificationToken(ctx context.Context, token string) (*models.User, error) {
	args := m.Called(ctx, token)
	if user, ok := args.Get(0).(*models.User); ok {
		return user, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserRepository) FindByResetToken(ctx context.Context, token string) (*models.User, error) {
	args := m.Called(ctx, token)
	if user, ok := args.Get(0).(*models.User); ok {
		return user, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserRepository) FindBySessionID(ctx context.Context, sessionID string) (*models.User, error) {
	args := m.Called(ctx, sessionID)
	if user, ok := args.Get(0).(*models.User); ok {
		return user, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) UpdatePassword(ctx context.Context, userID uuid.UUID, passwordHash string) error {
	args := m.Called(ctx, userID, passwordHash)
	return args.Error(0)
}

func (m *MockUserRepository) SetEmailVerified(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockUserRepository) SetVerificationToken(ctx context.Context, userID uuid.UUID, token string, expires time.Time) error {
	args := m.Called(ctx, userID, token, expires)
	return args.Error(0)
}

func (m *MockUserRepository) SetResetToken(ctx context.Context, userID uuid.UUID, token string, expires time.Time) error {
	args := m.Called(ctx, userID, token, expires)
	return args.Error(0)
}

func (m *MockUserRepository) PushSession(ctx context.Context, userID uuid.UUID, session models.Session) error {
	args := m.Called(ctx, userID, session)
	return args.Error(0)
}

func (m *MockUserRepository) PullSession(ctx context.Context, userID uuid.UUID, sessionID string) error {
	args := m.Called(ctx, userID, sessionID)
	return args.Error(0)
}

func (m *MockUserRepository) TouchSession(ctx context.Context, userID uuid.UUID, sessionID string, at time.Time) error {
	args := m.Called(ctx, userID, sessionID, at)
	return args.Error(0)
}

func (m *MockUserRepository) ClearSessions(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockUserRepository) PruneIdleSessions(ctx context.Context, cutoff time.Time) (int64, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUserRepository) BackfillSessionLedgers(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// MockTripRepository is a testify mock of repository.TripRepository.
type MockTripRepository struct {
	mock.Mock
}

func (m *MockTripRepository) Create(ctx context.Context, trip *models.Trip) error {
	args := m.Called(ctx, trip)
	return args.Error(0)
}

func (m *MockTripRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Trip, error) {
	args := m.Called(ctx, id)
	if trip, ok := args.Get(0).(*models.Trip); ok {
		return trip, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockTripRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]*models.Trip, error) {
	args := m.Called(ctx, userID)
	if trips, ok := args.Get(0).([]*models.Trip); ok {
		return trips, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockTripRepository) FindPublic(ctx context.Context, limit int64) ([]*models.Trip, error) {
	args := m.Called(ctx, limit)
	if trips, ok := args.Get(0).([]*models.Trip); ok {
		return trips, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockTripRepository) Update(ctx context.Context, trip *models.Trip) error {
	args := m.Called(ctx, trip)
	return args.Error(0)
}

func (m *MockTripRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockTripRepository) StartDueTrips(ctx context.Context, now time.Time) (int64, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockTripRepository) CompleteFinishedTrips(ctx context.Context, now time.Time) (int64, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(int64), args.Error(1)
}

// MockPasswordService is a testify mock of security.PasswordService.
type MockPasswordService struct {
	mock.Mock
}

func (m *MockPasswordService) HashPassword(password string) (string, error) {
	args := m.Called(password)
	return args.String(0), args.Error(1)
}

func (m *MockPasswordService) CheckPasswordHash(password, hash string) (bool, error) {
	args := m.Called(password, hash)
	return args.Bool(0), args.Error(1)
}

// MockSender is a testify mock of email.Sender.
type MockSender struct {
	mock.Mock
}

func (m *MockSender) SendVerificationEmail(ctx context.Context, to, firstName, token string) error {
	args := m.Called(ctx, to, firstName, token)
	return args.Error(0)
}

func (m *MockSender) SendWelcomeEmail(ctx context.Context, to, firstName string) error {
	args := m.Called(ctx, to, firstName)
	return args.Error(0)
}

func (m *MockSender) SendPasswordResetEmail(ctx context.Context, to, firstName, token string) error {
	args := m.Called(ctx, to, firstName, token)
	return args.Error(0)
}

// MockPublisher is a testify mock of kafka.Publisher.
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, eventType kafka.EventType, subject string, data interface{}) error {
	args := m.Called(ctx, eventType, subject, data)
	return args.Error(0)
}

func (m *MockPublisher) Close() error {
	args := m.Called()
	return args.Error(0)
}
