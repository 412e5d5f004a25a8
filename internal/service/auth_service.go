package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	domainErrors "github.com/Manavv007/GlobeTrotter-sub000/internal/domain/errors"
	"github.com/Manavv007/GlobeTrotter-sub000/internal/domain/models"
	"github.com/Manavv007/GlobeTrotter-sub000/internal/domain/repository"
	"github.com/Manavv007/GlobeTrotter-sub000/internal/events/kafka"
	"github.com/Manavv007/GlobeTrotter-sub000/internal/infrastructure/security"
	"github.com/Manavv007/GlobeTrotter-sub000/internal/utils/email"
	"github.com/Manavv007/GlobeTrotter-sub000/internal/utils/random"
)

const (
	verificationTokenTTL = 24 * time.Hour
	resetTokenTTL        = time.Hour
	credentialTokenLen   = 64
)

// AuthService implements registration, login and the credential recovery
// flows.
type AuthService struct {
	userRepo  repository.UserRepository
	passwords security.PasswordService
	issuer    security.TokenIssuer
	sender    email.Sender
	publisher kafka.Publisher
	logger    *zap.Logger
}

// NewAuthService creates a new AuthService.
func NewAuthService(
	userRepo repository.UserRepository,
	passwords security.PasswordService,
	issuer security.TokenIssuer,
	sender email.Sender,
	publisher kafka.Publisher,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		userRepo:  userRepo,
		passwords: passwords,
		issuer:    issuer,
		sender:    sender,
		publisher: publisher,
		logger:    logger,
	}
}

// NormalizeEmail lowercases and trims an email address. Emails are stored
// and compared in this form, which keeps the unique index case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates a user with a pending email verification token and mails
// the verification link. A failed mail delivery does not undo registration;
// the token can be reissued through ResendVerification.
func (s *AuthService) Register(ctx context.Context, req models.RegisterRequest) (*models.UserResponse, error) {
	passwordHash, err := s.passwords.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	token, err := random.GenerateRandomHex(credentialTokenLen)
	if err != nil {
		return nil, fmt.Errorf("failed to generate verification token: %w", err)
	}
	expires := time.Now().UTC().Add(verificationTokenTTL)

	now := time.Now().UTC()
	user := &models.User{
		ID:                       uuid.New(),
		FirstName:                strings.TrimSpace(req.FirstName),
		LastName:                 strings.TrimSpace(req.LastName),
		Email:                    NormalizeEmail(req.Email),
		PasswordHash:             passwordHash,
		Role:                     models.RoleUser,
		IsActive:                 true,
		EmailVerificationToken:   &token,
		EmailVerificationExpires: &expires,
		ActiveSessions:           []models.Session{},
		CreatedAt:                now,
		UpdatedAt:                now,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	if err := s.sender.SendVerificationEmail(ctx, user.Email, user.FirstName, token); err != nil {
		s.logger.Error("Failed to send verification email",
			zap.String("user_id", user.ID.String()), zap.Error(err))
	}
	s.publish(ctx, kafka.EventUserRegistered, user.ID, map[string]string{"email": user.Email})

	resp := user.ToResponse()
	return &resp, nil
}

// Login verifies the credentials, issues a bearer token, and appends a new
// session carrying the device metadata to the user's ledger.
func (s *AuthService) Login(ctx context.Context, req models.LoginRequest, deviceInfo, ipAddress string) (*models.LoginResult, error) {
	user, err := s.userRepo.FindByEmail(ctx, NormalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, domainErrors.ErrUserNotFound) {
			return nil, domainErrors.ErrInvalidCredentials
		}
		return nil, err
	}

	match, err := s.passwords.CheckPasswordHash(req.Password, user.PasswordHash)
	if err != nil || !match {
		return nil, domainErrors.ErrInvalidCredentials
	}

	if !user.IsActive {
		return nil, domainErrors.ErrAccountDeactivated
	}

	token, err := s.issuer.Issue(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}
	sessionID, err := security.GenerateSessionID()
	if err != nil {
		return nil, fmt.Errorf("failed to generate session id: %w", err)
	}

	session := models.NewSession(sessionID, token, deviceInfo, ipAddress)
	// Mutate the loaded copy so the response reflects the new ledger, then
	// persist through the atomic bounded push.
	user.AddSession(session)
	if err := s.userRepo.PushSession(ctx, user.ID, session); err != nil {
		return nil, err
	}

	s.publish(ctx, kafka.EventUserLoggedIn, user.ID, map[string]string{
		"session_id": sessionID,
		"ip_address": ipAddress,
	})

	return &models.LoginResult{
		Token:     token,
		SessionID: sessionID,
		User:      user.ToResponse(),
	}, nil
}

// VerifyEmail consumes an unexpired verification token and marks the user
// verified. The welcome mail is best effort.
func (s *AuthService) VerifyEmail(ctx context.Context, token string) error {
	user, err := s.userRepo.FindByVerificationToken(ctx, token)
	if err != nil {
		return domainErrors.ErrVerificationTokenInvalid
	}
	if user.EmailVerificationExpires == nil || user.EmailVerificationExpires.Before(time.Now().UTC()) {
		return domainErrors.ErrVerificationTokenInvalid
	}

	if err := s.userRepo.SetEmailVerified(ctx, user.ID); err != nil {
		return err
	}

	if err := s.sender.SendWelcomeEmail(ctx, user.Email, user.FirstName); err != nil {
		s.logger.Warn("Failed to send welcome email",
			zap.String("user_id", user.ID.String()), zap.Error(err))
	}
	s.publish(ctx, kafka.EventEmailVerified, user.ID, nil)
	return nil
}

// ForgotPassword issues a reset token and mails the reset link when the
// email belongs to a user. It reports success either way so responses do
// not reveal which emails are registered.
func (s *AuthService) ForgotPassword(ctx context.Context, emailAddr string) error {
	user, err := s.userRepo.FindByEmail(ctx, NormalizeEmail(emailAddr))
	if err != nil {
		if errors.Is(err, domainErrors.ErrUserNotFound) {
			return nil
		}
		return err
	}

	token, err := random.GenerateRandomHex(credentialTokenLen)
	if err != nil {
		return fmt.Errorf("failed to generate reset token: %w", err)
	}
	expires := time.Now().UTC().Add(resetTokenTTL)
	if err := s.userRepo.SetResetToken(ctx, user.ID, token, expires); err != nil {
		return err
	}

	if err := s.sender.SendPasswordResetEmail(ctx, user.Email, user.FirstName, token); err != nil {
		s.logger.Error("Failed to send password reset email",
			zap.String("user_id", user.ID.String()), zap.Error(err))
	}
	return nil
}

// ResetPassword consumes an unexpired reset token and replaces the
// password.
func (s *AuthService) ResetPassword(ctx context.Context, token, newPassword string) error {
	user, err := s.userRepo.FindByResetToken(ctx, token)
	if err != nil {
		return domainErrors.ErrResetTokenInvalid
	}
	if user.ResetPasswordExpires == nil || user.ResetPasswordExpires.Before(time.Now().UTC()) {
		return domainErrors.ErrResetTokenInvalid
	}

	passwordHash, err := s.passwords.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	if err := s.userRepo.UpdatePassword(ctx, user.ID, passwordHash); err != nil {
		return err
	}

	s.publish(ctx, kafka.EventPasswordReset, user.ID, nil)
	return nil
}

// ResendVerification reissues the email verification token for an
// unverified user.
func (s *AuthService) ResendVerification(ctx context.Context, emailAddr string) error {
	user, err := s.userRepo.FindByEmail(ctx, NormalizeEmail(emailAddr))
	if err != nil {
		return err
	}
	if user.IsEmailVerified {
		return domainErrors.ErrEmailAlreadyVerified
	}

	token, err := random.GenerateRandomHex(credentialTokenLen)
	if err != nil {
		return fmt.Errorf("failed to generate verification token: %w", err)
	}
	expires := time.Now().UTC().Add(verificationTokenTTL)
	if err := s.userRepo.SetVerificationToken(ctx, user.ID, token, expires); err != nil {
		return err
	}

	if err := s.sender.SendVerificationEmail(ctx, user.Email, user.FirstName, token); err != nil {
		s.logger.Error("Failed to send verification email",
			zap.String("user_id", user.ID.String()), zap.Error(err))
	}
	return nil
}

func (s *AuthService) publish(ctx context.Context, eventType kafka.EventType, userID uuid.UUID, data interface{}) {
	if err := s.publisher.Publish(ctx, eventType, userID.String(), data); err != nil {
		s.logger.Warn("Failed to publish event",
			zap.String("type", string(eventType)), zap.Error(err))
	}
}
