package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Crate is a named basket of weighted tokens as served by the crate service.
type Crate struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description,omitempty"`
	Icon        string        `json:"icon,omitempty"`
	Tokens      []CrateToken  `json:"tokens"`
	Creator     *CrateCreator `json:"creator,omitempty"`
}

// CrateToken is one token entry. Quantity is the weight in percent.
type CrateToken struct {
	Symbol   string          `json:"symbol"`
	ID       string          `json:"id"`
	Quantity decimal.Decimal `json:"quantity"`
}

// CrateCreator identifies who published the crate.
type CrateCreator struct {
	WalletAddress string `json:"walletAddress"`
}

// CreatorWallet returns the creator wallet or "" when none is declared.
func (c *Crate) CreatorWallet() string {
	if c == nil || c.Creator == nil {
		return ""
	}
	return strings.TrimSpace(c.Creator.WalletAddress)
}
