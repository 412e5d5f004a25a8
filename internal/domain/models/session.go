package models

import "time"

// MaxActiveSessions bounds the number of concurrent sessions a user may
// hold. Appending beyond the bound evicts the oldest entry first.
const MaxActiveSessions = 10

// Session is one authenticated device/login, embedded in the owning User
// document. The bearer token is the credential the client presents; the
// session id is the server-side handle used to remove this one session
// among several.
type Session struct {
	SessionID    string    `json:"sessionId" bson:"sessionId"`
	Token        string    `json:"-" bson:"token"`
	DeviceInfo   string    `json:"deviceInfo" bson:"deviceInfo"`
	IPAddress    string    `json:"ipAddress" bson:"ipAddress"`
	LastActivity time.Time `json:"lastActivity" bson:"lastActivity"`
	CreatedAt    time.Time `json:"createdAt" bson:"createdAt"`
}

// NewSession builds a session with both timestamps set to now.
func NewSession(sessionID, token, deviceInfo, ipAddress string) Session {
	now := time.Now().UTC()
	return Session{
		SessionID:    sessionID,
		Token:        token,
		DeviceInfo:   deviceInfo,
		IPAddress:    ipAddress,
		LastActivity: now,
		CreatedAt:    now,
	}
}

// SessionResponse is the API projection of a session. It never carries the
// raw bearer token.
type SessionResponse struct {
	SessionID    string    `json:"sessionId"`
	DeviceInfo   string    `json:"deviceInfo"`
	IPAddress    string    `json:"ipAddress"`
	LastActivity time.Time `json:"lastActivity"`
	CreatedAt    time.Time `json:"createdAt"`
	Current      bool      `json:"current"`
}

// ToResponse converts a Session to its sanitized API form. currentSessionID
// marks the session the caller is authenticated with.
func (s *Session) ToResponse(currentSessionID string) SessionResponse {
	return SessionResponse{
		SessionID:    s.SessionID,
		DeviceInfo:   s.DeviceInfo,
		IPAddress:    s.IPAddress,
		LastActivity: s.LastActivity,
		CreatedAt:    s.CreatedAt,
		Current:      s.SessionID == currentSessionID,
	}
}
