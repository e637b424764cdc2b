package models

import "time"

// RefreshToken stores a single refresh token grant. Only a SHA-256 hash of
// the opaque token value is persisted; the plaintext lives exclusively in the
// client's cookie. RevokedAt is nil while the token is still usable.
type RefreshToken struct {
	ID        string
	UserID    string
	TokenHash string
	ExpiresAt time.Time
	CreatedAt time.Time
	RevokedAt *time.Time
}

// Revoked reports whether the token has been invalidated by rotation,
// logout, or reuse detection.
func (t *RefreshToken) Revoked() bool {
	return t.RevokedAt != nil
}

// Expired reports whether the token's lifetime has elapsed at the given time.
func (t *RefreshToken) Expired(now time.Time) bool {
	return now.After(t.ExpiresAt)
}
