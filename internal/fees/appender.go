// Package fees appends fixed-amount SOL fee transfers to a transaction bundle.
package fees

import (
	"context"
	"fmt"

	sol "github.com/gagliardetto/solana-go"

	"crate-blink/internal/solana"
)

// FeeWallet is a fee recipient.
type FeeWallet struct {
	Label    string
	Address  string
	Lamports uint64
}

// BlockhashSource supplies recent blockhashes.
type BlockhashSource interface {
	GetLatestBlockhash(ctx context.Context) (*solana.LatestBlockhash, error)
}

// Appender builds fee transfers from the payer.
type Appender struct {
	blockhashes BlockhashSource
	// shared stamps every transfer of one Append call with a single blockhash.
	shared bool
}

// AppenderOption configures Appender.
type AppenderOption func(*Appender)

// WithSharedBlockhash fetches one blockhash per Append instead of one per transfer.
func WithSharedBlockhash(shared bool) AppenderOption {
	return func(a *Appender) {
		a.shared = shared
	}
}

// NewAppender creates an Appender.
func NewAppender(blockhashes BlockhashSource, opts ...AppenderOption) *Appender {
	a := &Appender{blockhashes: blockhashes}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Append returns txs followed by one transfer per wallet, in wallet order.
// By default each transfer fetches its own blockhash. Any fetch or build
// error fails the whole call.
func (a *Appender) Append(ctx context.Context, payer string, txs []*sol.Transaction, wallets []FeeWallet) ([]*sol.Transaction, error) {
	out := make([]*sol.Transaction, 0, len(txs)+len(wallets))
	out = append(out, txs...)

	var sharedHash string
	for _, w := range wallets {
		hash := sharedHash
		if hash == "" {
			latest, err := a.blockhashes.GetLatestBlockhash(ctx)
			if err != nil {
				return nil, fmt.Errorf("fetch blockhash for %s fee: %w", w.Label, err)
			}
			hash = latest.Blockhash
			if a.shared {
				sharedHash = hash
			}
		}

		tx, err := solana.NewTransfer(payer, w.Address, w.Lamports, hash)
		if err != nil {
			return nil, fmt.Errorf("build %s fee transfer: %w", w.Label, err)
		}
		out = append(out, tx)
	}

	return out, nil
}
