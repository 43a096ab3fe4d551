// Package store persists the execution history in SQLite.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/footprint-tools/unilang/internal/domain"
	"github.com/footprint-tools/unilang/internal/store/migrations"
)

// MemoryPath opens a private in-memory database.
const MemoryPath = ":memory:"

// Fixed-width UTC timestamps keep string comparison in SQL chronological.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Store wraps a SQLite connection holding the history table.
// It implements domain.HistoryStore.
type Store struct {
	db   *sql.DB
	path string
}

// New opens the database at path and runs pending migrations.
func New(path string) (*Store, error) {
	if path != MemoryPath {
		if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// Every connection to ":memory:" is a separate database.
	if path == MemoryPath {
		db.SetMaxOpenConns(1)
	}

	if err = db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err = configureSQLite(db, path); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("configure database: %w", err)
	}

	setDBPermissions(path)

	if err = migrations.Run(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Store{db: db, path: path}, nil
}

// NewWithDB wraps an already migrated connection.
func NewWithDB(db *sql.DB) *Store {
	return &Store{db: db}
}

// DB returns the underlying connection.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Path returns the database path, empty for wrapped connections.
func (s *Store) Path() string {
	return s.path
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func configureSQLite(db *sql.DB, path string) error {
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		return err
	}
	if path == MemoryPath {
		return nil
	}
	_, err := db.Exec("PRAGMA journal_mode = WAL")
	return err
}

// setDBPermissions restricts the database and its WAL/SHM files to the owner.
func setDBPermissions(path string) {
	if path == MemoryPath {
		return
	}
	_ = os.Chmod(path, 0600)
	_ = os.Chmod(path+"-wal", 0600)
	_ = os.Chmod(path+"-shm", 0600)
}

// Record appends an entry. A zero timestamp is replaced with the current time.
func (s *Store) Record(entry domain.HistoryEntry) error {
	ts := entry.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}

	_, err := s.db.Exec(
		`INSERT INTO history
		 (session_id, command, input, status_id, error_code, duration_us, timestamp)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		entry.SessionID,
		entry.Command,
		entry.Input,
		int(entry.Status),
		entry.ErrorCode,
		entry.Duration.Microseconds(),
		ts.UTC().Format(timeLayout),
	)
	return err
}

// List returns entries matching the filter, newest first.
func (s *Store) List(filter domain.HistoryFilter) ([]domain.HistoryEntry, error) {
	query := `
		SELECT
			id,
			session_id,
			command,
			input,
			status_id,
			error_code,
			duration_us,
			timestamp
		FROM history
	`

	var (
		clauses []string
		args    []any
	)

	if filter.SessionID != "" {
		clauses = append(clauses, "session_id = ?")
		args = append(args, filter.SessionID)
	}

	if filter.Command != "" {
		clauses = append(clauses, "command = ?")
		args = append(args, filter.Command)
	}

	if filter.Status != nil {
		clauses = append(clauses, "status_id = ?")
		args = append(args, int(*filter.Status))
	}

	if filter.Since != nil {
		clauses = append(clauses, "timestamp >= ?")
		args = append(args, filter.Since.UTC().Format(timeLayout))
	}

	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}

	query += " ORDER BY id DESC"

	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.HistoryEntry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// Clear deletes every entry, or only those of sessionID when it is set.
func (s *Store) Clear(sessionID string) (int64, error) {
	var (
		result sql.Result
		err    error
	)
	if sessionID == "" {
		result, err = s.db.Exec("DELETE FROM history")
	} else {
		result, err = s.db.Exec("DELETE FROM history WHERE session_id = ?", sessionID)
	}
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

// Count returns the number of recorded entries.
func (s *Store) Count() (int64, error) {
	var n int64
	err := s.db.QueryRow("SELECT COUNT(*) FROM history").Scan(&n)
	return n, err
}

func scanEntry(rows *sql.Rows) (domain.HistoryEntry, error) {
	var (
		e        domain.HistoryEntry
		statusID int
		micros   int64
		ts       string
	)

	if err := rows.Scan(
		&e.ID,
		&e.SessionID,
		&e.Command,
		&e.Input,
		&statusID,
		&e.ErrorCode,
		&micros,
		&ts,
	); err != nil {
		return domain.HistoryEntry{}, err
	}

	t, err := time.Parse(timeLayout, ts)
	if err != nil {
		return domain.HistoryEntry{}, err
	}

	e.Status = domain.ExecStatus(statusID)
	e.Duration = time.Duration(micros) * time.Microsecond
	e.Timestamp = t
	return e, nil
}

var _ domain.HistoryStore = (*Store)(nil)
