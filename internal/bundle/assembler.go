// Package bundle serializes transactions into the encoded response bundle.
package bundle

import (
	"fmt"

	sol "github.com/gagliardetto/solana-go"

	"crate-blink/internal/domain"
	"crate-blink/internal/solana"
)

// Assemble encodes txs in order. Transactions are not modified.
func Assemble(txs []*sol.Transaction) (domain.Bundle, error) {
	payloads := make([]string, len(txs))
	for i, tx := range txs {
		encoded, err := solana.EncodeTransaction(tx)
		if err != nil {
			return domain.Bundle{}, fmt.Errorf("encode transaction %d: %w", i, err)
		}
		payloads[i] = encoded
	}
	return domain.NewBundle(payloads), nil
}
