package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// AssetAllocation is one weighted entry of a crate.
// OutputMint is empty when the symbol has no known mint.
type AssetAllocation struct {
	Symbol        string
	OutputMint    string
	WeightPercent decimal.Decimal
}

// PerAssetAmount is an allocation with its computed input amount in atomic units.
type PerAssetAmount struct {
	AssetAllocation
	AtomicAmount uint64
}

// Limits on decimal inputs. Values outside them are rejected before any
// arithmetic, since rescaling cost grows with the exponent.
const (
	MaxDecimalExponent = 18
	MaxDecimalDigits   = 38
)

// CheckDecimalScale rejects values whose exponent or coefficient is out of bounds.
func CheckDecimalScale(name string, d decimal.Decimal) error {
	exp := d.Exponent()
	if exp < -MaxDecimalExponent || exp > MaxDecimalExponent {
		return fmt.Errorf("%w: %s exponent %d out of range", ErrValidation, name, exp)
	}
	if d.NumDigits() > MaxDecimalDigits {
		return fmt.Errorf("%w: %s has more than %d digits", ErrValidation, name, MaxDecimalDigits)
	}
	return nil
}

// FundingRequest is a validated purchase request.
type FundingRequest struct {
	TotalAmount decimal.Decimal
	Currency    Currency
	Payer       string
	CrateID     string
}

// Validate checks required fields. Payer address syntax is checked by the caller.
func (r FundingRequest) Validate() error {
	if strings.TrimSpace(r.Payer) == "" {
		return fmt.Errorf("%w: payer account is required", ErrValidation)
	}
	if strings.TrimSpace(r.CrateID) == "" {
		return fmt.Errorf("%w: crate id is required", ErrValidation)
	}
	if err := CheckDecimalScale("amount", r.TotalAmount); err != nil {
		return err
	}
	if !r.TotalAmount.IsPositive() {
		return fmt.Errorf("%w: amount must be positive", ErrValidation)
	}
	if !r.Currency.IsValid() {
		return fmt.Errorf("%w: unsupported currency %q", ErrValidation, r.Currency)
	}
	return nil
}
