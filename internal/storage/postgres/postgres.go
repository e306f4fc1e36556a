package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"crate-blink/internal/storage"
)

// Pool wraps pgxpool.Pool so stores share one connection pool.
type Pool struct {
	*pgxpool.Pool
}

// PoolOption tunes the pool configuration before connecting.
type PoolOption func(*pgxpool.Config)

// WithMaxConns caps the number of open connections.
func WithMaxConns(n int32) PoolOption {
	return func(c *pgxpool.Config) {
		if n > 0 {
			c.MaxConns = n
		}
	}
}

// WithConnectTimeout bounds dialing a single connection.
func WithConnectTimeout(d time.Duration) PoolOption {
	return func(c *pgxpool.Config) {
		if d > 0 {
			c.ConnConfig.ConnectTimeout = d
		}
	}
}

// NewPool connects to Postgres and verifies the connection with a ping.
func NewPool(ctx context.Context, dsn string, opts ...PoolOption) (*Pool, error) {
	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse postgres dsn: %w", err)
	}
	for _, opt := range opts {
		opt(config)
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("connect to postgres: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	return &Pool{Pool: pool}, nil
}

// Close releases all connections.
func (p *Pool) Close() {
	p.Pool.Close()
}

const pgErrUniqueViolation = "23505"

// translate maps driver errors onto storage sentinels and wraps the rest with op.
func translate(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return storage.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgErrUniqueViolation {
		return storage.ErrDuplicateKey
	}
	return fmt.Errorf("%s: %w", op, err)
}
