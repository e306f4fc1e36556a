package postgres

import (
	"context"
	"strings"

	"crate-blink/internal/storage"
)

// TokenRegistry implements storage.TokenRegistry using PostgreSQL.
type TokenRegistry struct {
	pool *Pool
}

// NewTokenRegistry creates a new TokenRegistry.
func NewTokenRegistry(pool *Pool) *TokenRegistry {
	return &TokenRegistry{pool: pool}
}

// Compile-time interface check.
var _ storage.TokenRegistry = (*TokenRegistry)(nil)

// ResolveMint returns the mint for symbol. Returns ErrNotFound if unknown.
func (r *TokenRegistry) ResolveMint(ctx context.Context, symbol string) (string, error) {
	var mint string
	err := r.pool.QueryRow(ctx, `
		SELECT mint FROM token_mints WHERE symbol = $1
	`, strings.ToUpper(strings.TrimSpace(symbol))).Scan(&mint)
	if err != nil {
		return "", translate("resolve mint", err)
	}
	return mint, nil
}

// Upsert sets the mint for symbol.
func (r *TokenRegistry) Upsert(ctx context.Context, symbol, mint string) error {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	mint = strings.TrimSpace(mint)
	if symbol == "" || mint == "" {
		return storage.ErrInvalidInput
	}

	_, err := r.pool.Exec(ctx, `
		INSERT INTO token_mints (symbol, mint)
		VALUES ($1, $2)
		ON CONFLICT (symbol) DO UPDATE SET mint = EXCLUDED.mint, updated_at = now()
	`, symbol, mint)
	return translate("upsert token mint", err)
}
