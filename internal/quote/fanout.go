// Package quote requests a price quote per allocation concurrently.
package quote

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"crate-blink/internal/domain"
)

// DefaultConcurrency bounds simultaneous quote requests.
const DefaultConcurrency = 8

var (
	errNoMint     = errors.New("no known mint for symbol")
	errZeroAmount = errors.New("amount rounds to zero")
	errEmptyQuote = errors.New("empty quote")
)

// Quoter prices a swap of amount atomic units of inputMint into outputMint.
type Quoter interface {
	Quote(ctx context.Context, inputMint, outputMint string, amount uint64) (*domain.Quote, error)
}

// FanOut issues one quote call per allocation.
type FanOut struct {
	quoter      Quoter
	concurrency int
}

// NewFanOut creates a FanOut. A non-positive concurrency uses DefaultConcurrency.
func NewFanOut(quoter Quoter, concurrency int) *FanOut {
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}
	return &FanOut{quoter: quoter, concurrency: concurrency}
}

// QuoteAll returns one outcome per amount, in input order.
// Failures are recorded in the outcome and never cancel sibling calls.
// Allocations without a mint or with a zero amount fail without a call.
func (f *FanOut) QuoteAll(ctx context.Context, inputMint string, amounts []domain.PerAssetAmount) []domain.QuoteOutcome {
	outcomes := make([]domain.QuoteOutcome, len(amounts))

	var g errgroup.Group
	g.SetLimit(f.concurrency)

	for i, a := range amounts {
		switch {
		case a.OutputMint == "":
			outcomes[i] = domain.QuoteFailed(a.Symbol, a.OutputMint, unavailable(errNoMint))
			continue
		case a.AtomicAmount == 0:
			outcomes[i] = domain.QuoteFailed(a.Symbol, a.OutputMint, unavailable(errZeroAmount))
			continue
		}

		g.Go(func() error {
			q, err := f.quoter.Quote(ctx, inputMint, a.OutputMint, a.AtomicAmount)
			switch {
			case err != nil:
				outcomes[i] = domain.QuoteFailed(a.Symbol, a.OutputMint, unavailable(err))
			case q == nil:
				outcomes[i] = domain.QuoteFailed(a.Symbol, a.OutputMint, unavailable(errEmptyQuote))
			default:
				outcomes[i] = domain.QuoteSucceeded(a.Symbol, a.OutputMint, q)
			}
			return nil
		})
	}

	_ = g.Wait()
	return outcomes
}

// AllFailed reports whether no outcome succeeded.
func AllFailed(outcomes []domain.QuoteOutcome) bool {
	return domain.CountSucceeded(outcomes) == 0
}

func unavailable(err error) error {
	return fmt.Errorf("%w: %w", domain.ErrAssetQuoteUnavailable, err)
}
