package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Manavv007/GlobeTrotter-sub000/internal/domain/models"
	"github.com/Manavv007/GlobeTrotter-sub000/internal/handler/http/middleware"
	"github.com/Manavv007/GlobeTrotter-sub000/internal/service"
)

// AuthHandler serves the registration, login and credential recovery
// endpoints.
type AuthHandler struct {
	auth     *service.AuthService
	sessions *service.SessionService
	logger   *zap.Logger
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(auth *service.AuthService, sessions *service.SessionService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{auth: auth, sessions: sessions, logger: logger}
}

// Register handles POST /auth/register.
func (h *AuthHandler) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondWithError(c, http.StatusBadRequest, "invalid request payload", h.logger)
		return
	}

	user, err := h.auth.Register(c.Request.Context(), req)
	if err != nil {
		RespondDomainError(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "registration successful, please verify your email",
		"user":    user,
	})
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondWithError(c, http.StatusBadRequest, "invalid request payload", h.logger)
		return
	}

	result, err := h.auth.Login(c.Request.Context(), req, c.Request.UserAgent(), c.ClientIP())
	if err != nil {
		RespondDomainError(c, err, h.logger)
		return
	}

	RespondWithData(c, http.StatusOK, result)
}

// Logout handles POST /auth/logout. The flow is keyed by session id alone
// and succeeds even when the session is already gone.
func (h *AuthHandler) Logout(c *gin.Context) {
	var req models.LogoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondWithError(c, http.StatusBadRequest, "invalid request payload", h.logger)
		return
	}

	if err := h.sessions.Logout(c.Request.Context(), req.SessionID); err != nil {
		RespondDomainError(c, err, h.logger)
		return
	}

	RespondWithMessage(c, http.StatusOK, "logged out successfully")
}

// VerifyEmail handles GET /auth/verify-email/:token.
func (h *AuthHandler) VerifyEmail(c *gin.Context) {
	token := c.Param("token")
	if err := h.auth.VerifyEmail(c.Request.Context(), token); err != nil {
		RespondDomainError(c, err, h.logger)
		return
	}
	RespondWithMessage(c, http.StatusOK, "email verified successfully")
}

// ForgotPassword handles POST /auth/forgot-password. The response is the
// same whether or not the email is registered.
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req models.ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondWithError(c, http.StatusBadRequest, "invalid request payload", h.logger)
		return
	}

	if err := h.auth.ForgotPassword(c.Request.Context(), req.Email); err != nil {
		RespondDomainError(c, err, h.logger)
		return
	}

	RespondWithMessage(c, http.StatusOK, "if the email is registered, a reset link has been sent")
}

// ResetPassword handles POST /auth/reset-password.
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req models.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondWithError(c, http.StatusBadRequest, "invalid request payload", h.logger)
		return
	}

	if err := h.auth.ResetPassword(c.Request.Context(), req.Token, req.Password); err != nil {
		RespondDomainError(c, err, h.logger)
		return
	}

	RespondWithMessage(c, http.StatusOK, "password reset successfully")
}

// ResendVerification handles POST /auth/resend-verification.
func (h *AuthHandler) ResendVerification(c *gin.Context) {
	var req models.ResendVerificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondWithError(c, http.StatusBadRequest, "invalid request payload", h.logger)
		return
	}

	if err := h.auth.ResendVerification(c.Request.Context(), req.Email); err != nil {
		RespondDomainError(c, err, h.logger)
		return
	}

	RespondWithMessage(c, http.StatusOK, "verification email sent")
}

// VerifyToken handles GET /auth/verify-token. It sits behind the auth
// middleware, so reaching it means the token passed the full gate.
func (h *AuthHandler) VerifyToken(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		RespondWithError(c, http.StatusUnauthorized, "invalid token", h.logger)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"valid": true,
		"user":  user.ToResponse(),
	})
}
