package db

import (
	"context"
	"sort"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
)

// Migration is a schema change identified by a timestamp version (YYYYMMDDHHmmss)
type Migration struct {
	Version     int64
	Description string
	Statements  []string
}

// Migrations returns the schema of the session database in version order.
// New migrations are appended here.
func Migrations() []Migration {
	return []Migration{
		{
			Version:     20261001090000,
			Description: "Create session_state table",
			Statements: []string{
				`CREATE TABLE IF NOT EXISTS session_state (
					session_id TEXT NOT NULL,
					key TEXT NOT NULL,
					value TEXT NOT NULL,
					created_at DATETIME NOT NULL,
					updated_at DATETIME NOT NULL,
					PRIMARY KEY (session_id, key)
				)`,
			},
		},
		{
			Version:     20261001090100,
			Description: "Index session_state by update time",
			Statements: []string{
				`CREATE INDEX IF NOT EXISTS idx_session_state_updated_at ON session_state(session_id, updated_at)`,
			},
		},
	}
}

// MigrationRunner applies migrations that have not been recorded yet
type MigrationRunner struct {
	db *sqlx.DB
}

// NewMigrationRunner creates a new migration runner
func NewMigrationRunner(db *sqlx.DB) *MigrationRunner {
	return &MigrationRunner{db: db}
}

// Run executes all pending migrations in version order, each in its own transaction
func (r *MigrationRunner) Run(ctx context.Context, migrations []Migration) error {
	if err := r.ensureMigrationsTable(ctx); err != nil {
		return err
	}

	applied, err := r.appliedVersions(ctx)
	if err != nil {
		return err
	}

	sorted := make([]Migration, len(migrations))
	copy(sorted, migrations)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Version < sorted[j].Version
	})

	for _, m := range sorted {
		if applied[m.Version] {
			continue
		}
		if err := r.apply(ctx, m); err != nil {
			return errors.Wrapf(err, "failed to apply migration %d: %s", m.Version, m.Description)
		}
	}

	return nil
}

// AppliedVersions returns the applied migration versions in ascending order
func (r *MigrationRunner) AppliedVersions(ctx context.Context) ([]int64, error) {
	if err := r.ensureMigrationsTable(ctx); err != nil {
		return nil, err
	}

	var versions []int64
	if err := r.db.SelectContext(ctx, &versions, "SELECT version FROM schema_migrations ORDER BY version"); err != nil {
		return nil, errors.Wrap(err, "failed to get applied versions")
	}
	return versions, nil
}

func (r *MigrationRunner) ensureMigrationsTable(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME NOT NULL,
			description TEXT
		)
	`)
	return errors.Wrap(err, "failed to create schema_migrations table")
}

func (r *MigrationRunner) appliedVersions(ctx context.Context) (map[int64]bool, error) {
	var versions []int64
	if err := r.db.SelectContext(ctx, &versions, "SELECT version FROM schema_migrations"); err != nil {
		return nil, errors.Wrap(err, "failed to get applied migrations")
	}

	applied := make(map[int64]bool, len(versions))
	for _, v := range versions {
		applied[v] = true
	}
	return applied, nil
}

func (r *MigrationRunner) apply(ctx context.Context, m Migration) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "failed to begin transaction")
	}
	defer tx.Rollback()

	for _, stmt := range m.Statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return errors.Wrap(err, "failed to execute migration statement")
		}
	}

	_, err = tx.ExecContext(ctx,
		"INSERT INTO schema_migrations (version, applied_at, description) VALUES (?, ?, ?)",
		m.Version, time.Now().UTC(), m.Description)
	if err != nil {
		return errors.Wrap(err, "failed to record migration")
	}

	return tx.Commit()
}
