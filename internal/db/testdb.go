package db

import (
	"database/sql"
	"testing"
)

// NewTestDB returns an empty in-memory wardrobe journal for tests. It is
// closed when the test ends.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := Open(":memory:")
	if err != nil {
		t.Fatalf("opening test journal: %v", err)
	}
	if err := EnsureSchema(db); err != nil {
		db.Close()
		t.Fatalf("creating journal schema: %v", err)
	}

	t.Cleanup(func() { db.Close() })

	return db
}
