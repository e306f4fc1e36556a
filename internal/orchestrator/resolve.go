package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"crate-blink/internal/domain"
	"crate-blink/internal/solana"
	"crate-blink/internal/storage"
)

// resolveAllocations maps crate tokens to allocations in crate order.
// A token id that is itself a mint address is used as is; otherwise the
// registry resolves the symbol. Unknown symbols keep an empty mint.
func (o *Orchestrator) resolveAllocations(ctx context.Context, crate *domain.Crate) ([]domain.AssetAllocation, error) {
	if len(crate.Tokens) == 0 {
		return nil, fmt.Errorf("%w: crate %s has no tokens", domain.ErrNoSupportedAssets, crate.ID)
	}

	allocs := make([]domain.AssetAllocation, len(crate.Tokens))
	for i, tok := range crate.Tokens {
		mint, err := o.resolveMint(ctx, tok)
		if err != nil {
			return nil, err
		}
		allocs[i] = domain.AssetAllocation{
			Symbol:        tok.Symbol,
			OutputMint:    mint,
			WeightPercent: tok.Quantity,
		}
	}
	return allocs, nil
}

func (o *Orchestrator) resolveMint(ctx context.Context, tok domain.CrateToken) (string, error) {
	if id := strings.TrimSpace(tok.ID); id != "" && solana.ValidateAddress(id) == nil {
		return id, nil
	}
	if o.registry == nil || strings.TrimSpace(tok.Symbol) == "" {
		return "", nil
	}

	mint, err := o.registry.ResolveMint(ctx, tok.Symbol)
	switch {
	case err == nil:
		return mint, nil
	case errors.Is(err, storage.ErrNotFound):
		return "", nil
	default:
		return "", fmt.Errorf("%w: resolve mint for %s: %v", domain.ErrCollaboratorUnavailable, tok.Symbol, err)
	}
}
