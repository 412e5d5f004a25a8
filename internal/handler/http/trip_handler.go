package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Manavv007/GlobeTrotter-sub000/internal/domain/models"
	"github.com/Manavv007/GlobeTrotter-sub000/internal/handler/http/middleware"
	"github.com/Manavv007/GlobeTrotter-sub000/internal/service"
)

// TripHandler serves the trip CRUD and community feed endpoints.
type TripHandler struct {
	trips  *service.TripService
	logger *zap.Logger
}

// NewTripHandler creates a new TripHandler.
func NewTripHandler(trips *service.TripService, logger *zap.Logger) *TripHandler {
	return &TripHandler{trips: trips, logger: logger}
}

// CreateTrip handles POST /trips.
func (h *TripHandler) CreateTrip(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		RespondWithError(c, http.StatusUnauthorized, "invalid token", h.logger)
		return
	}

	var req models.CreateTripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondWithError(c, http.StatusBadRequest, "invalid request payload", h.logger)
		return
	}

	trip, err := h.trips.CreateTrip(c.Request.Context(), user.ID, req)
	if err != nil {
		RespondDomainError(c, err, h.logger)
		return
	}

	RespondWithData(c, http.StatusCreated, trip)
}

// GetTrip handles GET /trips/:id.
func (h *TripHandler) GetTrip(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		RespondWithError(c, http.StatusUnauthorized, "invalid token", h.logger)
		return
	}

	tripID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondWithError(c, http.StatusBadRequest, "invalid trip id", h.logger)
		return
	}

	trip, err := h.trips.GetTrip(c.Request.Context(), user.ID, tripID)
	if err != nil {
		RespondDomainError(c, err, h.logger)
		return
	}

	RespondWithData(c, http.StatusOK, trip)
}

// ListTrips handles GET /trips and returns the caller's own trips.
func (h *TripHandler) ListTrips(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		RespondWithError(c, http.StatusUnauthorized, "invalid token", h.logger)
		return
	}

	trips, err := h.trips.ListTrips(c.Request.Context(), user.ID)
	if err != nil {
		RespondDomainError(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, gin.H{"trips": trips, "count": len(trips)})
}

// CommunityFeed handles GET /community with the latest public trips.
func (h *TripHandler) CommunityFeed(c *gin.Context) {
	trips, err := h.trips.CommunityFeed(c.Request.Context())
	if err != nil {
		RespondDomainError(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, gin.H{"trips": trips, "count": len(trips)})
}

// UpdateTrip handles PUT /trips/:id.
func (h *TripHandler) UpdateTrip(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		RespondWithError(c, http.StatusUnauthorized, "invalid token", h.logger)
		return
	}

	tripID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondWithError(c, http.StatusBadRequest, "invalid trip id", h.logger)
		return
	}

	var req models.UpdateTripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondWithError(c, http.StatusBadRequest, "invalid request payload", h.logger)
		return
	}

	trip, err := h.trips.UpdateTrip(c.Request.Context(), user.ID, tripID, req)
	if err != nil {
		RespondDomainError(c, err, h.logger)
		return
	}

	RespondWithData(c, http.StatusOK, trip)
}

// DeleteTrip handles DELETE /trips/:id.
func (h *TripHandler) DeleteTrip(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		RespondWithError(c, http.StatusUnauthorized, "invalid token", h.logger)
		return
	}

	tripID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondWithError(c, http.StatusBadRequest, "invalid trip id", h.logger)
		return
	}

	if err := h.trips.DeleteTrip(c.Request.Context(), user.ID, tripID); err != nil {
		RespondDomainError(c, err, h.logger)
		return
	}

	RespondWithMessage(c, http.StatusOK, "trip deleted")
}
