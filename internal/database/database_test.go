package database

import (
	"context"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TimeAway/blog-design/db"
)

func TestOpenAppliesPragmas(t *testing.T) {
	sqlDB, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	defer sqlDB.Close()

	var mode string
	require.NoError(t, sqlDB.QueryRow("PRAGMA journal_mode").Scan(&mode))
	assert.Equal(t, "wal", mode)

	var timeout int
	require.NoError(t, sqlDB.QueryRow("PRAGMA busy_timeout").Scan(&timeout))
	assert.Equal(t, 5000, timeout)
}

func TestMigrateEmbedded(t *testing.T) {
	sqlDB, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	defer sqlDB.Close()
	ctx := context.Background()

	version, err := Migrate(ctx, sqlDB, db.MigrationsFS, "migrations")
	require.NoError(t, err)
	assert.Equal(t, int64(1), version)

	var name string
	err = sqlDB.QueryRow(`SELECT name FROM sqlite_master WHERE type = 'table' AND name = 'alert_instances'`).Scan(&name)
	require.NoError(t, err)

	// a second run is a no-op
	version, err = Migrate(ctx, sqlDB, db.MigrationsFS, "migrations")
	require.NoError(t, err)
	assert.Equal(t, int64(1), version)
}

func TestMigrateReportsBadSQL(t *testing.T) {
	sqlDB, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	defer sqlDB.Close()

	fsys := fstest.MapFS{
		"migrations/00001_broken.sql": {Data: []byte("-- +goose Up\nCREATE TABLE (;\n")},
	}
	_, err = Migrate(context.Background(), sqlDB, fsys, "migrations")

	assert.Error(t, err)
}
