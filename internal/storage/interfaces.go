package storage

import (
	"context"

	"crate-blink/internal/domain"
)

// CrateStore provides read access to crate definitions.
type CrateStore interface {
	// GetByID retrieves a crate by its ID. Returns ErrNotFound if not exists.
	GetByID(ctx context.Context, id string) (*domain.Crate, error)
}

// CrateRepository is a CrateStore that also accepts new crates.
type CrateRepository interface {
	CrateStore

	// Insert adds a new crate. Returns ErrDuplicateKey if the ID exists.
	Insert(ctx context.Context, c *domain.Crate) error
}

// TokenRegistry maps token symbols to mint addresses.
type TokenRegistry interface {
	// ResolveMint returns the mint for symbol. Returns ErrNotFound if unknown.
	ResolveMint(ctx context.Context, symbol string) (string, error)

	// Upsert sets the mint for symbol.
	Upsert(ctx context.Context, symbol, mint string) error
}
