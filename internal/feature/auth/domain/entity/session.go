package entity

import "time"

// Session represents a browser session established at registration or login.
// Its ID is the opaque token carried by the session cookie; the only state a
// session holds is the authenticated user's ID.
type Session struct {
	ID        string    // Session token value (64-character hex string)
	UserID    uint      // Authenticated user ID
	CreatedAt time.Time // Session creation time
	ExpiresAt time.Time // Session expiration time
}

// IsExpired returns true if the session has passed its expiration time.
func (s *Session) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}
