package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Manavv007/GlobeTrotter-sub000/internal/service"
)

// AdminHandler serves the administrative endpoints. Routes using it sit
// behind both the auth middleware and the admin role check.
type AdminHandler struct {
	sessions *service.SessionService
	logger   *zap.Logger
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(sessions *service.SessionService, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{sessions: sessions, logger: logger}
}

// ForceLogout handles POST /admin/users/:id/force-logout. Every session of
// the target user is revoked at once.
func (h *AdminHandler) ForceLogout(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondWithError(c, http.StatusBadRequest, "invalid user id", h.logger)
		return
	}

	if err := h.sessions.ForceLogoutAll(c.Request.Context(), userID); err != nil {
		RespondDomainError(c, err, h.logger)
		return
	}

	RespondWithMessage(c, http.StatusOK, "all sessions revoked")
}
