package models

import (
	"time"

	"github.com/google/uuid"
)

// UserRole defines the authorization role of a user.
type UserRole string

const (
	RoleUser  UserRole = "user"
	RoleAdmin UserRole = "admin"
)

// User is the user document. Email is stored lowercased and is unique
// across the collection. ActiveSessions is the embedded session ledger:
// insertion-ordered, oldest first, never longer than MaxActiveSessions.
type User struct {
	ID              uuid.UUID `json:"id" bson:"_id"`
	FirstName       string    `json:"firstName" bson:"firstName"`
	LastName        string    `json:"lastName" bson:"lastName"`
	Email           string    `json:"email" bson:"email"`
	PasswordHash    string    `json:"-" bson:"passwordHash"`
	Role            UserRole  `json:"role" bson:"role"`
	IsActive        bool      `json:"isActive" bson:"isActive"`
	IsEmailVerified bool      `json:"isEmailVerified" bson:"isEmailVerified"`

	EmailVerificationToken   *string    `json:"-" bson:"emailVerificationToken,omitempty"`
	EmailVerificationExpires *time.Time `json:"-" bson:"emailVerificationExpires,omitempty"`
	ResetPasswordToken       *string    `json:"-" bson:"resetPasswordToken,omitempty"`
	ResetPasswordExpires     *time.Time `json:"-" bson:"resetPasswordExpires,omitempty"`

	ActiveSessions []Session `json:"-" bson:"activeSessions"`

	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
}

// AddSession appends a session to the ledger. If the ledger is full the
// oldest entry is evicted first, so the length never exceeds
// MaxActiveSessions. It always succeeds.
func (u *User) AddSession(s Session) {
	if len(u.ActiveSessions) >= MaxActiveSessions {
		evict := len(u.ActiveSessions) - MaxActiveSessions + 1
		u.ActiveSessions = append([]Session(nil), u.ActiveSessions[evict:]...)
	}
	u.ActiveSessions = append(u.ActiveSessions, s)
}

// RemoveSession drops the session with the given id. Removing an unknown id
// is a no-op.
func (u *User) RemoveSession(sessionID string) {
	for i, s := range u.ActiveSessions {
		if s.SessionID == sessionID {
			u.ActiveSessions = append(u.ActiveSessions[:i], u.ActiveSessions[i+1:]...)
			return
		}
	}
}

// UpdateSessionActivity sets lastActivity of the matching session to now.
// An unknown id is a no-op.
func (u *User) UpdateSessionActivity(sessionID string) {
	for i := range u.ActiveSessions {
		if u.ActiveSessions[i].SessionID == sessionID {
			u.ActiveSessions[i].LastActivity = time.Now().UTC()
			return
		}
	}
}

// HasSession reports whether a session with the given id exists.
func (u *User) HasSession(sessionID string) bool {
	for _, s := range u.ActiveSessions {
		if s.SessionID == sessionID {
			return true
		}
	}
	return false
}

// SessionByToken returns the session holding the exact bearer token, or nil.
func (u *User) SessionByToken(token string) *Session {
	for i := range u.ActiveSessions {
		if u.ActiveSessions[i].Token == token {
			return &u.ActiveSessions[i]
		}
	}
	return nil
}

// ActiveSessionCount returns the number of ledger entries.
func (u *User) ActiveSessionCount() int {
	return len(u.ActiveSessions)
}

// UserResponse is the sanitized user profile returned by the API.
type UserResponse struct {
	ID              uuid.UUID `json:"id"`
	FirstName       string    `json:"firstName"`
	LastName        string    `json:"lastName"`
	Email           string    `json:"email"`
	Role            UserRole  `json:"role"`
	IsEmailVerified bool      `json:"isEmailVerified"`
	CreatedAt       time.Time `json:"createdAt"`
}

// ToResponse converts a User to its API profile.
func (u *User) ToResponse() UserResponse {
	return UserResponse{
		ID:              u.ID,
		FirstName:       u.FirstName,
		LastName:        u.LastName,
		Email:           u.Email,
		Role:            u.Role,
		IsEmailVerified: u.IsEmailVerified,
		CreatedAt:       u.CreatedAt,
	}
}
