// Package allocation converts a funding amount into per-asset atomic input amounts.
package allocation

import (
	"fmt"

	"github.com/shopspring/decimal"

	"crate-blink/internal/domain"
)

var maxAtomic = decimal.RequireFromString("18446744073709551615")

// Split computes floor(total * weight / 100 * 10^decimals) for every allocation.
// Output order and cardinality match allocs. Allocations without an output mint
// are kept; remainders from truncation are not redistributed.
func Split(total decimal.Decimal, spec domain.CurrencySpec, allocs []domain.AssetAllocation) ([]domain.PerAssetAmount, error) {
	if err := domain.CheckDecimalScale("amount", total); err != nil {
		return nil, err
	}
	if !total.IsPositive() {
		return nil, fmt.Errorf("%w: amount must be positive, got %s", domain.ErrValidation, total)
	}
	if spec.Decimals < 0 {
		return nil, fmt.Errorf("%w: negative decimals for %s", domain.ErrValidation, spec.Currency)
	}

	out := make([]domain.PerAssetAmount, len(allocs))
	for i, a := range allocs {
		if err := domain.CheckDecimalScale("weight of "+a.Symbol, a.WeightPercent); err != nil {
			return nil, err
		}
		if a.WeightPercent.IsNegative() {
			return nil, fmt.Errorf("%w: negative weight %s for %s", domain.ErrValidation, a.WeightPercent, a.Symbol)
		}

		// total * weight / 100 * 10^decimals, kept exact by shifting instead of dividing.
		atomic := total.Mul(a.WeightPercent).Shift(spec.Decimals - 2).Floor()
		if atomic.GreaterThan(maxAtomic) {
			return nil, fmt.Errorf("%w: amount for %s overflows atomic units", domain.ErrValidation, a.Symbol)
		}

		out[i] = domain.PerAssetAmount{
			AssetAllocation: a,
			AtomicAmount:    atomic.BigInt().Uint64(),
		}
	}

	return out, nil
}

// Total returns the sum of atomic amounts.
func Total(amounts []domain.PerAssetAmount) uint64 {
	var sum uint64
	for _, a := range amounts {
		sum += a.AtomicAmount
	}
	return sum
}
