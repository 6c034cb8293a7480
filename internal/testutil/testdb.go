package testutil

import (
	"database/sql"
	"testing"

	"github.com/alexanderramin/teletext/internal/db"
	"github.com/alexanderramin/teletext/internal/storage"
)

// NewTestDB creates an in-memory SQLite database with all migrations applied.
// The database is closed when the test completes.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()
	database, err := db.Open(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() {
		database.Close()
	})
	return database
}

// NewTestKV creates a KV store backed by an in-memory test database.
func NewTestKV(t *testing.T) *storage.SQLiteKV {
	t.Helper()
	return storage.NewSQLiteKV(NewTestDB(t))
}
