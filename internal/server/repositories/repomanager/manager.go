package repomanager

import (
	"context"
	"database/sql"

	"github.com/salespoint/salespoint/internal/dbx"
	"github.com/salespoint/salespoint/internal/server/repositories/refreshtokens"
	"github.com/salespoint/salespoint/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	RefreshTokens(db dbx.DBTX) refreshtokens.Repository
}
