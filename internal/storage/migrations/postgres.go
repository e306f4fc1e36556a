package migrations

import (
	"context"
	"fmt"
	"io/fs"
	"log"
	"path"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5"

	"crate-blink/internal/storage/postgres"
)

const versionTable = `
CREATE TABLE IF NOT EXISTS schema_migrations (
    version    TEXT PRIMARY KEY,
    applied_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

// Apply runs every embedded migration not yet recorded in schema_migrations.
// Each file runs in its own transaction together with its version row.
// Returns the names of the files applied by this call.
func Apply(ctx context.Context, pool *postgres.Pool, logger *log.Logger) ([]string, error) {
	if _, err := pool.Exec(ctx, versionTable); err != nil {
		return nil, fmt.Errorf("create schema_migrations: %w", err)
	}

	files, err := fs.Glob(PostgresFS, "postgres/*.sql")
	if err != nil {
		return nil, fmt.Errorf("list embedded migrations: %w", err)
	}
	sort.Strings(files)

	var applied []string
	for _, file := range files {
		version := strings.TrimSuffix(path.Base(file), ".sql")

		var exists bool
		err := pool.QueryRow(ctx,
			`SELECT EXISTS (SELECT 1 FROM schema_migrations WHERE version = $1)`, version,
		).Scan(&exists)
		if err != nil {
			return applied, fmt.Errorf("check migration %s: %w", version, err)
		}
		if exists {
			continue
		}

		data, err := fs.ReadFile(PostgresFS, file)
		if err != nil {
			return applied, fmt.Errorf("read migration %s: %w", version, err)
		}

		err = pgx.BeginFunc(ctx, pool, func(tx pgx.Tx) error {
			if _, err := tx.Exec(ctx, string(data)); err != nil {
				return err
			}
			_, err := tx.Exec(ctx, `INSERT INTO schema_migrations (version) VALUES ($1)`, version)
			return err
		})
		if err != nil {
			return applied, fmt.Errorf("apply migration %s: %w", version, err)
		}

		if logger != nil {
			logger.Printf("applied migration %s", version)
		}
		applied = append(applied, version)
	}

	return applied, nil
}
