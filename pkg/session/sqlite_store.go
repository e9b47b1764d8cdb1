package session

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/jingkaihe/hrskills/pkg/db"
)

// SQLiteStore persists session state in the shared SQLite database
type SQLiteStore struct {
	db *sqlx.DB
}

// NewSQLiteStore opens (and migrates) the database at dbPath
func NewSQLiteStore(ctx context.Context, dbPath string) (*SQLiteStore, error) {
	sqlDB, err := db.Open(ctx, dbPath)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open session database")
	}
	return &SQLiteStore{db: sqlDB}, nil
}

// Get implements Store
func (s *SQLiteStore) Get(ctx context.Context, sessionID, key string) ([]byte, bool, error) {
	var value string
	err := s.db.GetContext(ctx, &value,
		"SELECT value FROM session_state WHERE session_id = ? AND key = ?", sessionID, key)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, errors.Wrapf(err, "failed to read session key %s", key)
	}
	return []byte(value), true, nil
}

// Put implements Store
func (s *SQLiteStore) Put(ctx context.Context, sessionID, key string, value []byte) error {
	now := time.Now().UTC()
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO session_state (session_id, key, value, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(session_id, key) DO UPDATE SET
			value = excluded.value,
			updated_at = excluded.updated_at
	`, sessionID, key, string(value), now, now)
	return errors.Wrapf(err, "failed to write session key %s", key)
}

// List implements Store. Entries are sorted by key.
func (s *SQLiteStore) List(ctx context.Context, sessionID string) ([]Entry, error) {
	var rows []struct {
		Key       string    `db:"key"`
		Value     string    `db:"value"`
		UpdatedAt time.Time `db:"updated_at"`
	}
	err := s.db.SelectContext(ctx, &rows,
		"SELECT key, value, updated_at FROM session_state WHERE session_id = ? ORDER BY key", sessionID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list session state")
	}

	entries := make([]Entry, 0, len(rows))
	for _, r := range rows {
		entries = append(entries, Entry{Key: r.Key, Value: []byte(r.Value), UpdatedAt: r.UpdatedAt})
	}
	return entries, nil
}

// Clear implements Store
func (s *SQLiteStore) Clear(ctx context.Context, sessionID string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM session_state WHERE session_id = ?", sessionID)
	return errors.Wrap(err, "failed to clear session state")
}

// Close implements Store
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
