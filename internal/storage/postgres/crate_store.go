package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"crate-blink/internal/domain"
	"crate-blink/internal/storage"
)

// CrateStore implements storage.CrateRepository using PostgreSQL.
type CrateStore struct {
	pool *Pool
}

// NewCrateStore creates a new CrateStore.
func NewCrateStore(pool *Pool) *CrateStore {
	return &CrateStore{pool: pool}
}

// Compile-time interface check.
var _ storage.CrateRepository = (*CrateStore)(nil)

// Insert adds a crate and its tokens atomically. Returns ErrDuplicateKey if the ID exists.
func (s *CrateStore) Insert(ctx context.Context, c *domain.Crate) error {
	if c == nil || c.ID == "" {
		return storage.ErrInvalidInput
	}

	err := pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		var creator *string
		if w := c.CreatorWallet(); w != "" {
			creator = &w
		}

		_, err := tx.Exec(ctx, `
			INSERT INTO crates (id, name, description, icon, creator_wallet)
			VALUES ($1, $2, $3, $4, $5)
		`, c.ID, c.Name, c.Description, c.Icon, creator)
		if err != nil {
			return err
		}

		batch := &pgx.Batch{}
		for i, t := range c.Tokens {
			batch.Queue(`
				INSERT INTO crate_tokens (crate_id, position, symbol, token_id, quantity)
				VALUES ($1, $2, $3, $4, $5::numeric)
			`, c.ID, i, t.Symbol, t.ID, t.Quantity.String())
		}
		return tx.SendBatch(ctx, batch).Close()
	})
	return translate("insert crate", err)
}

// GetByID retrieves a crate with its tokens in declaration order. Returns ErrNotFound if not exists.
func (s *CrateStore) GetByID(ctx context.Context, id string) (*domain.Crate, error) {
	var (
		c       domain.Crate
		creator *string
	)

	err := s.pool.QueryRow(ctx, `
		SELECT id, name, description, icon, creator_wallet
		FROM crates
		WHERE id = $1
	`, id).Scan(&c.ID, &c.Name, &c.Description, &c.Icon, &creator)
	if err != nil {
		return nil, translate("get crate", err)
	}
	if creator != nil && *creator != "" {
		c.Creator = &domain.CrateCreator{WalletAddress: *creator}
	}

	rows, err := s.pool.Query(ctx, `
		SELECT symbol, token_id, quantity::text
		FROM crate_tokens
		WHERE crate_id = $1
		ORDER BY position ASC
	`, id)
	if err != nil {
		return nil, fmt.Errorf("query crate tokens: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			t        domain.CrateToken
			quantity string
		)
		if err := rows.Scan(&t.Symbol, &t.ID, &quantity); err != nil {
			return nil, fmt.Errorf("scan crate token: %w", err)
		}
		t.Quantity, err = decimal.NewFromString(quantity)
		if err != nil {
			return nil, fmt.Errorf("parse quantity %q: %w", quantity, err)
		}
		c.Tokens = append(c.Tokens, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate crate tokens: %w", err)
	}

	return &c, nil
}
