package security

import "github.com/Manavv007/GlobeTrotter-sub000/internal/utils/random"

// GenerateSessionID produces the opaque server-side handle for one session.
// It is a removable key, not a credential; the bearer token is the
// credential.
func GenerateSessionID() (string, error) {
	return random.GenerateRandomHex(64)
}
