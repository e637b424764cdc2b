// Package profile persists the non-sensitive user profile between runs so a
// restored session can present the user without a network round trip. Tokens
// are never written here.
package profile

import (
	"context"

	"github.com/salespoint/salespoint/internal/client/models"
)

type Repository interface {
	Save(ctx context.Context, user *models.UserProfile) error
	Load(ctx context.Context) (*models.UserProfile, error)
	Clear(ctx context.Context) error
}
