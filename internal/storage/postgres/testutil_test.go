package postgres

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// migrationsDir is relative to this package; go test runs with the package as cwd.
const migrationsDir = "../migrations/postgres"

// setupTestDB starts a throwaway Postgres, applies the crate schema and
// registers teardown with t.Cleanup.
func setupTestDB(t *testing.T) *Pool {
	t.Helper()

	if testing.Short() {
		t.Skip("postgres container tests skipped in -short mode")
	}

	ctx := context.Background()

	container, err := tcpostgres.Run(ctx, "postgres:15-alpine",
		tcpostgres.WithDatabase("crates"),
		tcpostgres.WithUsername("crate"),
		tcpostgres.WithPassword("crate"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	require.NoError(t, err, "start postgres container")
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("terminate container: %v", err)
		}
	})

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err, "connection string")

	pool, err := NewPool(ctx, dsn, WithMaxConns(4), WithConnectTimeout(10*time.Second))
	require.NoError(t, err, "create pool")
	t.Cleanup(pool.Close)

	applySchema(t, ctx, pool)
	return pool
}

func applySchema(t *testing.T, ctx context.Context, pool *Pool) {
	t.Helper()

	files, err := filepath.Glob(filepath.Join(migrationsDir, "*.sql"))
	require.NoError(t, err)
	require.NotEmpty(t, files, "no migrations under %s", migrationsDir)
	sort.Strings(files)

	for _, file := range files {
		sql, err := os.ReadFile(file)
		require.NoError(t, err, "read %s", file)
		_, err = pool.Exec(ctx, string(sql))
		require.NoError(t, err, "apply %s", file)
	}
}
