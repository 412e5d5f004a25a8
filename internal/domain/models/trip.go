package models

import (
	"time"

	"github.com/google/uuid"
)

// TripStatus tracks where a trip is in its lifecycle. Transitions are
// date-driven and applied by the maintenance sweep.
type TripStatus string

const (
	TripStatusPlanned   TripStatus = "planned"
	TripStatusOngoing   TripStatus = "ongoing"
	TripStatusCompleted TripStatus = "completed"
)

// Trip is a planned journey owned by a user. Public trips appear in the
// community feed.
type Trip struct {
	ID          uuid.UUID  `json:"id" bson:"_id"`
	UserID      uuid.UUID  `json:"userId" bson:"userId"`
	Title       string     `json:"title" bson:"title"`
	Destination string     `json:"destination" bson:"destination"`
	Description string     `json:"description,omitempty" bson:"description,omitempty"`
	StartDate   time.Time  `json:"startDate" bson:"startDate"`
	EndDate     time.Time  `json:"endDate" bson:"endDate"`
	Status      TripStatus `json:"status" bson:"status"`
	IsPublic    bool       `json:"isPublic" bson:"isPublic"`
	CreatedAt   time.Time  `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt" bson:"updatedAt"`
}

// CreateTripRequest carries the fields accepted when creating a trip.
type CreateTripRequest struct {
	Title       string    `json:"title" binding:"required"`
	Destination string    `json:"destination" binding:"required"`
	Description string    `json:"description"`
	StartDate   time.Time `json:"startDate" binding:"required"`
	EndDate     time.Time `json:"endDate" binding:"required"`
	IsPublic    bool      `json:"isPublic"`
}

// UpdateTripRequest carries optional trip updates.
type UpdateTripRequest struct {
	Title       *string    `json:"title,omitempty"`
	Destination *string    `json:"destination,omitempty"`
	Description *string    `json:"description,omitempty"`
	StartDate   *time.Time `json:"startDate,omitempty"`
	EndDate     *time.Time `json:"endDate,omitempty"`
	IsPublic    *bool      `json:"isPublic,omitempty"`
}
