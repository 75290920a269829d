package domain

import "time"

// Session models a stored session token record. The raw opaque token is only
// ever held by the client; the database keeps its SHA-256 fingerprint.
type Session struct {
	ID        string
	UserID    string
	TokenHash string // deterministic fingerprint (base64url SHA-256)
	ExpiresAt time.Time
	CreatedAt time.Time
}
