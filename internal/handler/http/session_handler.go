package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Manavv007/GlobeTrotter-sub000/internal/handler/http/middleware"
	"github.com/Manavv007/GlobeTrotter-sub000/internal/service"
)

// SessionHandler serves the session ledger endpoints.
type SessionHandler struct {
	sessions *service.SessionService
	logger   *zap.Logger
}

// NewSessionHandler creates a new SessionHandler.
func NewSessionHandler(sessions *service.SessionService, logger *zap.Logger) *SessionHandler {
	return &SessionHandler{sessions: sessions, logger: logger}
}

// ListSessions handles GET /auth/sessions. Token values never appear in the
// response; the entry matching the caller's own session is flagged.
func (h *SessionHandler) ListSessions(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		RespondWithError(c, http.StatusUnauthorized, "invalid token", h.logger)
		return
	}

	responses := h.sessions.ListSessions(user, middleware.CurrentSessionID(c))
	c.JSON(http.StatusOK, gin.H{
		"sessions": responses,
		"count":    len(responses),
	})
}
