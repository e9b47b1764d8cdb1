package session

import (
	"context"

	"github.com/pkg/errors"

	"github.com/jingkaihe/hrskills/pkg/db"
)

// Store types accepted by NewStore
const (
	StoreTypeSQLite = "sqlite"
	StoreTypeMemory = "memory"
)

// NewStore creates the Store implementation selected by config
func NewStore(ctx context.Context, config Config) (Store, error) {
	switch config.StoreType {
	case StoreTypeMemory:
		return NewMemoryStore(), nil
	case StoreTypeSQLite, "":
		dbPath := config.DBPath
		if dbPath == "" {
			var err error
			dbPath, err = db.DefaultDBPath()
			if err != nil {
				return nil, err
			}
		}
		return NewSQLiteStore(ctx, dbPath)
	default:
		return nil, errors.Errorf("unknown session store type %q", config.StoreType)
	}
}
