// Package refreshtokens declares the server-side repository contract for
// managing refresh tokens in persistent storage.
package refreshtokens

import (
	"context"
	"time"

	"github.com/salespoint/salespoint/internal/server/models"
)

// Repository defines operations for issuing, retrieving, and revoking refresh tokens.
// Tokens are addressed by the SHA-256 hash of their opaque value; the plaintext
// never reaches storage.
type Repository interface {
	// Create stores a new refresh token hash for userID with an expiry of now+validity.
	Create(ctx context.Context, userID string, tokenHash string, validity time.Duration) error

	// Find looks up a refresh token by hash and returns its metadata, revoked
	// rows included. Implementations return common.ErrorNotFound when absent.
	Find(ctx context.Context, tokenHash string) (*models.RefreshToken, error)

	// Revoke marks a single token as revoked. Revoking an already revoked
	// token is not an error.
	Revoke(ctx context.Context, tokenHash string) error

	// RevokeAllForUser revokes every active token belonging to userID. Used
	// when reuse of a rotated token is detected.
	RevokeAllForUser(ctx context.Context, userID string) error
}
