// Package session implements the key-value state shared by the skills of one
// conversation. Values are stored as JSON under (session id, key).
package session

import (
	"context"
	"time"
)

// Entry is one stored session value
type Entry struct {
	Key       string    `db:"key" json:"key"`
	Value     []byte    `db:"value" json:"value"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// Store persists session state entries. A key maps to at most one value per
// session and the last write wins.
type Store interface {
	// Get returns the raw value under key. It reports false with a nil error
	// when the key is absent.
	Get(ctx context.Context, sessionID, key string) ([]byte, bool, error)
	Put(ctx context.Context, sessionID, key string, value []byte) error
	List(ctx context.Context, sessionID string) ([]Entry, error)
	Clear(ctx context.Context, sessionID string) error

	Close() error
}

// Config selects and configures a Store implementation
type Config struct {
	StoreType string `mapstructure:"store"`   // "sqlite" or "memory"
	DBPath    string `mapstructure:"db_path"` // SQLite database path, defaults to db.DefaultDBPath
}
