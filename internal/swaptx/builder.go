// Package swaptx turns successful quotes into decoded swap transactions.
package swaptx

import (
	"context"
	"fmt"

	sol "github.com/gagliardetto/solana-go"
	"golang.org/x/sync/errgroup"

	"crate-blink/internal/domain"
	"crate-blink/internal/solana"
)

// DefaultConcurrency bounds simultaneous swap build requests.
const DefaultConcurrency = 8

// SwapBuilder returns the base64 wire transaction executing q for payer.
type SwapBuilder interface {
	SwapTransaction(ctx context.Context, payer string, q *domain.Quote) (string, error)
}

// Builder builds one swap transaction per successful outcome.
type Builder struct {
	swaps       SwapBuilder
	concurrency int
}

// NewBuilder creates a Builder. A non-positive concurrency uses DefaultConcurrency.
func NewBuilder(swaps SwapBuilder, concurrency int) *Builder {
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}
	return &Builder{swaps: swaps, concurrency: concurrency}
}

// BuildAll builds and decodes a transaction for every successful outcome.
// It returns the transactions in outcome order together with a copy of outcomes
// in which failed builds are demoted to failures. Failed outcomes pass through.
func (b *Builder) BuildAll(ctx context.Context, payer string, outcomes []domain.QuoteOutcome) ([]*sol.Transaction, []domain.QuoteOutcome) {
	result := make([]domain.QuoteOutcome, len(outcomes))
	copy(result, outcomes)
	built := make([]*sol.Transaction, len(outcomes))

	var g errgroup.Group
	g.SetLimit(b.concurrency)

	for i, o := range outcomes {
		if !o.OK() {
			continue
		}
		g.Go(func() error {
			tx, err := b.build(ctx, payer, o.Quote)
			if err != nil {
				result[i] = domain.QuoteFailed(o.Symbol, o.OutputMint, err)
				return nil
			}
			built[i] = tx
			return nil
		})
	}

	_ = g.Wait()

	txs := make([]*sol.Transaction, 0, len(built))
	for _, tx := range built {
		if tx != nil {
			txs = append(txs, tx)
		}
	}
	return txs, result
}

func (b *Builder) build(ctx context.Context, payer string, q *domain.Quote) (*sol.Transaction, error) {
	encoded, err := b.swaps.SwapTransaction(ctx, payer, q)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrTransactionBuild, err)
	}
	tx, err := solana.DecodeTransaction(encoded)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrTransactionBuild, err)
	}
	return tx, nil
}
