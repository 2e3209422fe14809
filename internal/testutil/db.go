package testutil

import (
	"context"
	"database/sql"
	"testing"

	"github.com/TimeAway/blog-design/db"
	"github.com/TimeAway/blog-design/internal/database"
)

// NewTestDB returns a migrated in-memory database closed at test cleanup.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()

	sqlDB, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("opening test database: %v", err)
	}
	if _, err := database.Migrate(context.Background(), sqlDB, db.MigrationsFS, "migrations"); err != nil {
		sqlDB.Close()
		t.Fatalf("running migrations: %v", err)
	}

	t.Cleanup(func() { sqlDB.Close() })
	return sqlDB
}
