// Package testutil holds helpers shared by package tests.
package testutil

import (
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"

	"github.com/footprint-tools/unilang/internal/domain"
	"github.com/footprint-tools/unilang/internal/store"
	"github.com/footprint-tools/unilang/internal/store/migrations"
)

// NewTestDB creates an in-memory SQLite database with migrations applied.
// The database is closed when the test finishes.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err, "failed to open in-memory database")
	db.SetMaxOpenConns(1)

	t.Cleanup(func() {
		_ = db.Close()
	})

	require.NoError(t, migrations.Run(db), "failed to run migrations")
	return db
}

// NewTestStore returns a history store backed by NewTestDB.
func NewTestStore(t *testing.T) *store.Store {
	t.Helper()
	return store.NewWithDB(NewTestDB(t))
}

// SeedHistory records entries in order.
func SeedHistory(t *testing.T, s domain.HistoryStore, entries []domain.HistoryEntry) {
	t.Helper()

	for _, entry := range entries {
		require.NoError(t, s.Record(entry), "failed to seed entry: %+v", entry)
	}
}
