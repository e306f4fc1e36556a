package domain

import (
	"fmt"
	"strings"
)

// Currency identifies the funding currency of a purchase.
type Currency string

const (
	CurrencyPrimary Currency = "SOL"
	CurrencyStable  Currency = "USDC"
)

// Well-known mints for the funding currencies.
const (
	WrappedSOLMint = "So11111111111111111111111111111111111111112"
	USDCMint       = "EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v"
)

// String returns the string representation of Currency.
func (c Currency) String() string {
	return string(c)
}

// IsValid checks if the currency is a valid value.
func (c Currency) IsValid() bool {
	return c == CurrencyPrimary || c == CurrencyStable
}

// ParseCurrency parses a currency name case-insensitively.
// An empty value selects CurrencyPrimary.
func ParseCurrency(s string) (Currency, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" {
		return CurrencyPrimary, nil
	}
	c := Currency(s)
	if !c.IsValid() {
		return "", fmt.Errorf("%w: unsupported currency %q", ErrValidation, s)
	}
	return c, nil
}

// CurrencySpec binds a currency to its input mint and decimal precision.
type CurrencySpec struct {
	Currency Currency `yaml:"currency"`
	Mint     string   `yaml:"mint"`
	Decimals int32    `yaml:"decimals"`
}

// CurrencyTable is the static currency configuration, read-only after startup.
type CurrencyTable map[Currency]CurrencySpec

// DefaultCurrencyTable returns the mainnet SOL/USDC table.
func DefaultCurrencyTable() CurrencyTable {
	return CurrencyTable{
		CurrencyPrimary: {Currency: CurrencyPrimary, Mint: WrappedSOLMint, Decimals: 9},
		CurrencyStable:  {Currency: CurrencyStable, Mint: USDCMint, Decimals: 6},
	}
}

// Lookup returns the spec for c.
func (t CurrencyTable) Lookup(c Currency) (CurrencySpec, error) {
	spec, ok := t[c]
	if !ok {
		return CurrencySpec{}, fmt.Errorf("%w: no configuration for currency %q", ErrValidation, c)
	}
	return spec, nil
}

// Validate checks that both currencies are configured with distinct mints.
func (t CurrencyTable) Validate() error {
	for _, c := range []Currency{CurrencyPrimary, CurrencyStable} {
		spec, ok := t[c]
		if !ok {
			return fmt.Errorf("currency %s not configured", c)
		}
		if spec.Mint == "" {
			return fmt.Errorf("currency %s: empty mint", c)
		}
		if spec.Decimals < 0 || spec.Decimals > 18 {
			return fmt.Errorf("currency %s: decimals out of range: %d", c, spec.Decimals)
		}
	}
	if t[CurrencyPrimary].Mint == t[CurrencyStable].Mint {
		return fmt.Errorf("currencies share mint %s", t[CurrencyPrimary].Mint)
	}
	return nil
}
