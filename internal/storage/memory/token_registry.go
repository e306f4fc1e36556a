package memory

import (
	"context"
	"strings"
	"sync"

	"crate-blink/internal/storage"
)

// TokenRegistry is an in-memory implementation of storage.TokenRegistry.
// Symbols are matched case-insensitively.
type TokenRegistry struct {
	mu    sync.RWMutex
	mints map[string]string // keyed by upper-cased symbol
}

// NewTokenRegistry creates a registry seeded with symbol -> mint pairs.
func NewTokenRegistry(seed map[string]string) *TokenRegistry {
	r := &TokenRegistry{mints: make(map[string]string, len(seed))}
	for symbol, mint := range seed {
		r.mints[normalizeSymbol(symbol)] = strings.TrimSpace(mint)
	}
	return r
}

// Compile-time interface check.
var _ storage.TokenRegistry = (*TokenRegistry)(nil)

// ResolveMint returns the mint for symbol. Returns ErrNotFound if unknown.
func (r *TokenRegistry) ResolveMint(_ context.Context, symbol string) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	mint, ok := r.mints[normalizeSymbol(symbol)]
	if !ok || mint == "" {
		return "", storage.ErrNotFound
	}
	return mint, nil
}

// Upsert sets the mint for symbol.
func (r *TokenRegistry) Upsert(_ context.Context, symbol, mint string) error {
	key := normalizeSymbol(symbol)
	if key == "" || strings.TrimSpace(mint) == "" {
		return storage.ErrInvalidInput
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.mints[key] = strings.TrimSpace(mint)
	return nil
}

func normalizeSymbol(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}
