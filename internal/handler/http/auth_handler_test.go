package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Manavv007/GlobeTrotter-sub000/internal/config"
	domainErrors "github.com/Manavv007/GlobeTrotter-sub000/internal/domain/errors"
	"github.com/Manavv007/GlobeTrotter-sub000/internal/domain/models"
	"github.com/Manavv007/GlobeTrotter-sub000/internal/events/kafka"
	"github.com/Manavv007/GlobeTrotter-sub000/internal/infrastructure/security"
	"github.com/Manavv007/GlobeTrotter-sub000/internal/service"
	"github.com/Manavv007/GlobeTrotter-sub000/internal/utils/email"
)

// memUserRepo is an in-memory repository.UserRepository good enough to
// drive the HTTP surface in tests. Ledger mutations mirror the store-side
// semantics: bounded push, idempotent pull.
type memUserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]*models.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[uuid.UUID]*models.User)}
}

func (r *memUserRepo) Create(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == user.Email {
			return domainErrors.ErrEmailExists
		}
	}
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *memUserRepo) find(match func(*models.User) bool) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if match(u) {
			clone := *u
			clone.ActiveSessions = append([]models.Session(nil), u.ActiveSessions...)
			return &clone, nil
		}
	}
	return nil, domainErrors.ErrUserNotFound
}

func (r *memUserRepo) FindByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	return r.find(func(u *models.User) bool { return u.ID == id })
}

func (r *memUserRepo) FindByEmail(_ context.Context, addr string) (*models.User, error) {
	return r.find(func(u *models.User) bool { return u.Email == addr })
}

func (r *memUserRepo) FindByVerificationToken(_ context.Context, token string) (*models.User, error) {
	return r.find(func(u *models.User) bool {
		return u.EmailVerificationToken != nil && *u.EmailVerificationToken == token
	})
}

func (r *memUserRepo) FindByResetToken(_ context.Context, token string) (*models.User, error) {
	return r.find(func(u *models.User) bool {
		return u.ResetPasswordToken != nil && *u.ResetPasswordToken == token
	})
}

func (r *memUserRepo) FindBySessionID(_ context.Context, sessionID string) (*models.User, error) {
	return r.find(func(u *models.User) bool { return u.HasSession(sessionID) })
}

func (r *memUserRepo) Update(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.users[user.ID]
	if !ok {
		return domainErrors.ErrUserNotFound
	}
	stored.FirstName = user.FirstName
	stored.LastName = user.LastName
	stored.Role = user.Role
	stored.IsActive = user.IsActive
	stored.IsEmailVerified = user.IsEmailVerified
	return nil
}

func (r *memUserRepo) UpdatePassword(_ context.Context, userID uuid.UUID, hash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[userID]
	if !ok {
		return domainErrors.ErrUserNotFound
	}
	u.PasswordHash = hash
	u.ResetPasswordToken = nil
	u.ResetPasswordExpires = nil
	return nil
}

func (r *memUserRepo) SetEmailVerified(_ context.Context, userID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[userID]
	if !ok {
		return domainErrors.ErrUserNotFound
	}
	u.IsEmailVerified = true
	u.EmailVerificationToken = nil
	u.EmailVerificationExpires = nil
	return nil
}

func (r *memUserRepo) SetVerificationToken(_ context.Context, userID uuid.UUID, token string, expires time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[userID]
	if !ok {
		return domainErrors.ErrUserNotFound
	}
	u.EmailVerificationToken = &token
	u.EmailVerificationExpires = &expires
	return nil
}

func (r *memUserRepo) SetResetToken(_ context.Context, userID uuid.UUID, token string, expires time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[userID]
	if !ok {
		return domainErrors.ErrUserNotFound
	}
	u.ResetPasswordToken = &token
	u.ResetPasswordExpires = &expires
	return nil
}

func (r *memUserRepo) PushSession(_ context.Context, userID uuid.UUID, session models.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[userID]
	if !ok {
		return domainErrors.ErrUserNotFound
	}
	u.AddSession(session)
	return nil
}

func (r *memUserRepo) PullSession(_ context.Context, userID uuid.UUID, sessionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[userID]
	if !ok {
		return domainErrors.ErrUserNotFound
	}
	u.RemoveSession(sessionID)
	return nil
}

func (r *memUserRepo) TouchSession(_ context.Context, userID uuid.UUID, sessionID string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[userID]
	if !ok {
		return domainErrors.ErrUserNotFound
	}
	for i := range u.ActiveSessions {
		if u.ActiveSessions[i].SessionID == sessionID {
			u.ActiveSessions[i].LastActivity = at
		}
	}
	return nil
}

func (r *memUserRepo) ClearSessions(_ context.Context, userID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[userID]
	if !ok {
		return domainErrors.ErrUserNotFound
	}
	u.ActiveSessions = []models.Session{}
	return nil
}

func (r *memUserRepo) PruneIdleSessions(_ context.Context, cutoff time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var modified int64
	for _, u := range r.users {
		kept := u.ActiveSessions[:0]
		touched := false
		for _, s := range u.ActiveSessions {
			if s.LastActivity.Before(cutoff) {
				touched = true
				continue
			}
			kept = append(kept, s)
		}
		u.ActiveSessions = kept
		if touched {
			modified++
		}
	}
	return modified, nil
}

func (r *memUserRepo) BackfillSessionLedgers(context.Context) (int64, error) { return 0, nil }

type memTripRepo struct{}

func (memTripRepo) Create(context.Context, *models.Trip) error { return nil }
func (memTripRepo) FindByID(context.Context, uuid.UUID) (*models.Trip, error) {
	return nil, domainErrors.ErrTripNotFound
}
func (memTripRepo) FindByUser(context.Context, uuid.UUID) ([]*models.Trip, error) {
	return []*models.Trip{}, nil
}
func (memTripRepo) FindPublic(context.Context, int64) ([]*models.Trip, error) {
	return []*models.Trip{}, nil
}
func (memTripRepo) Update(context.Context, *models.Trip) error { return nil }
func (memTripRepo) Delete(context.Context, uuid.UUID) error    { return nil }
func (memTripRepo) StartDueTrips(context.Context, time.Time) (int64, error) {
	return 0, nil
}
func (memTripRepo) CompleteFinishedTrips(context.Context, time.Time) (int64, error) {
	return 0, nil
}

func newTestRouter(t *testing.T) (*gin.Engine, *memUserRepo) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	logger := zap.NewNop()

	cfg := &config.Config{}
	cfg.JWT = config.JWTConfig{Secret: "handler-test-secret", Issuer: "globetrotter-test"}
	cfg.Security.PasswordHash = config.PasswordHashConfig{
		Memory: 8 * 1024, Iterations: 1, Parallelism: 1, SaltLength: 16, KeyLength: 32,
	}

	repo := newMemUserRepo()
	passwords, err := security.NewArgon2idPasswordService(cfg.Security.PasswordHash)
	require.NoError(t, err)
	issuer, err := security.NewTokenIssuer(cfg.JWT)
	require.NoError(t, err)
	sender := email.NewClient(config.EmailConfig{Enabled: false}, logger)

	authService := service.NewAuthService(repo, passwords, issuer, sender, kafka.NoopPublisher{}, logger)
	router := NewRouter(RouterDeps{
		Config:   cfg,
		Logger:   logger,
		Tokens:   service.NewTokenService(repo, issuer, logger),
		Auth:     authService,
		Sessions: service.NewSessionService(repo, kafka.NoopPublisher{}, logger),
		Trips:    service.NewTripService(memTripRepo{}, logger),
	})
	return router, repo
}

func postJSON(router *gin.Engine, path string, payload interface{}, headers map[string]string) *httptest.ResponseRecorder {
	body, _ := json.Marshal(payload)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func getPath(router *gin.Engine, path string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func registerAndLogin(t *testing.T, router *gin.Engine, emailAddr string) (token, sessionID string) {
	t.Helper()
	w := postJSON(router, "/api/v1/auth/register", models.RegisterRequest{
		FirstName: "Ada", LastName: "Lovelace", Email: emailAddr, Password: "correct-horse",
	}, nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = postJSON(router, "/api/v1/auth/login", models.LoginRequest{
		Email: emailAddr, Password: "correct-horse",
	}, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var result models.LoginResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	require.NotEmpty(t, result.Token)
	require.NotEmpty(t, result.SessionID)
	return result.Token, result.SessionID
}

func TestHealthEndpoint(t *testing.T) {
	router, _ := newTestRouter(t)
	w := getPath(router, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRegisterLoginAndListSessions(t *testing.T) {
	router, _ := newTestRouter(t)
	token, sessionID := registerAndLogin(t, router, "ada@example.com")

	w := getPath(router, "/api/v1/auth/sessions", map[string]string{"Authorization": "Bearer " + token})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var body struct {
		Sessions []models.SessionResponse `json:"sessions"`
		Count    int                      `json:"count"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Equal(t, 1, body.Count)
	assert.Equal(t, sessionID, body.Sessions[0].SessionID)
	assert.True(t, body.Sessions[0].Current)
	assert.NotContains(t, w.Body.String(), token, "bearer tokens never appear in session listings")
}

func TestLogin_WrongPasswordRejected(t *testing.T) {
	router, _ := newTestRouter(t)
	registerAndLogin(t, router, "ada@example.com")

	w := postJSON(router, "/api/v1/auth/login", models.LoginRequest{
		Email: "ada@example.com", Password: "wrong-password",
	}, nil)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLogoutOneDeviceKeepsTheOther(t *testing.T) {
	router, _ := newTestRouter(t)
	registerAndLogin(t, router, "ada@example.com")

	// Second device.
	w := postJSON(router, "/api/v1/auth/login", models.LoginRequest{
		Email: "ada@example.com", Password: "correct-horse",
	}, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var second models.LoginResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &second))

	w = getPath(router, "/api/v1/auth/sessions", map[string]string{"Authorization": "Bearer " + second.Token})
	require.Equal(t, http.StatusOK, w.Code)

	// Log out the second device; the first keeps working, the second dies.
	w = postJSON(router, "/api/v1/auth/logout", models.LogoutRequest{SessionID: second.SessionID}, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = getPath(router, "/api/v1/auth/sessions", map[string]string{"Authorization": "Bearer " + second.Token})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	var errBody map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &errBody))
	assert.Equal(t, "session expired or invalid", errBody["error"])

	// Logging out the same session again still succeeds.
	w = postJSON(router, "/api/v1/auth/logout", models.LogoutRequest{SessionID: second.SessionID}, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestForgotPassword_ResponseDoesNotLeakAccounts(t *testing.T) {
	router, _ := newTestRouter(t)
	registerAndLogin(t, router, "ada@example.com")

	known := postJSON(router, "/api/v1/auth/forgot-password",
		models.ForgotPasswordRequest{Email: "ada@example.com"}, nil)
	unknown := postJSON(router, "/api/v1/auth/forgot-password",
		models.ForgotPasswordRequest{Email: "ghost@example.com"}, nil)

	assert.Equal(t, http.StatusOK, known.Code)
	assert.Equal(t, http.StatusOK, unknown.Code)
	assert.Equal(t, known.Body.String(), unknown.Body.String())
}

func TestVerifyEmailFlow(t *testing.T) {
	router, repo := newTestRouter(t)
	registerAndLogin(t, router, "ada@example.com")

	user, err := repo.FindByEmail(context.Background(), "ada@example.com")
	require.NoError(t, err)
	require.NotNil(t, user.EmailVerificationToken)

	w := getPath(router, "/api/v1/auth/verify-email/"+*user.EmailVerificationToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = getPath(router, "/api/v1/auth/verify-email/"+*user.EmailVerificationToken, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code, "a consumed token cannot be replayed")
}

func TestResetPasswordFlow(t *testing.T) {
	router, repo := newTestRouter(t)
	registerAndLogin(t, router, "ada@example.com")

	w := postJSON(router, "/api/v1/auth/forgot-password",
		models.ForgotPasswordRequest{Email: "ada@example.com"}, nil)
	require.Equal(t, http.StatusOK, w.Code)

	user, err := repo.FindByEmail(context.Background(), "ada@example.com")
	require.NoError(t, err)
	require.NotNil(t, user.ResetPasswordToken)

	w = postJSON(router, "/api/v1/auth/reset-password", models.ResetPasswordRequest{
		Token: *user.ResetPasswordToken, Password: "brand-new-password",
	}, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// Old password out, new password in.
	w = postJSON(router, "/api/v1/auth/login", models.LoginRequest{
		Email: "ada@example.com", Password: "correct-horse",
	}, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = postJSON(router, "/api/v1/auth/login", models.LoginRequest{
		Email: "ada@example.com", Password: "brand-new-password",
	}, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestVerifyToken(t *testing.T) {
	router, _ := newTestRouter(t)
	token, _ := registerAndLogin(t, router, "ada@example.com")

	w := getPath(router, "/api/v1/auth/verify-token", map[string]string{"Authorization": "Bearer " + token})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"valid":true`)

	w = getPath(router, "/api/v1/auth/verify-token", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAdminForceLogout_RequiresAdminRole(t *testing.T) {
	router, repo := newTestRouter(t)
	token, _ := registerAndLogin(t, router, "ada@example.com")

	user, err := repo.FindByEmail(context.Background(), "ada@example.com")
	require.NoError(t, err)

	w := postJSON(router, "/api/v1/admin/users/"+user.ID.String()+"/force-logout", nil,
		map[string]string{"Authorization": "Bearer " + token})
	assert.Equal(t, http.StatusForbidden, w.Code)

	// Promote and retry: all sessions drop, including the caller's own.
	user.Role = models.RoleAdmin
	require.NoError(t, repo.Update(context.Background(), user))

	w = postJSON(router, "/api/v1/admin/users/"+user.ID.String()+"/force-logout", nil,
		map[string]string{"Authorization": "Bearer " + token})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = getPath(router, "/api/v1/auth/sessions", map[string]string{"Authorization": "Bearer " + token})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
