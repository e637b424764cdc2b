package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOpen_CreatesSchema(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "client.db")

	db, err := Open(context.Background(), dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	// The profile table must exist after migration.
	_, err = db.Exec(`INSERT INTO profile (id, data) VALUES (1, X'7B7D')`)
	require.NoError(t, err)
}

func TestOpen_Idempotent(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "client.db")

	db, err := Open(context.Background(), dsn)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	db, err = Open(context.Background(), dsn)
	require.NoError(t, err)
	require.NoError(t, db.Close())
}
