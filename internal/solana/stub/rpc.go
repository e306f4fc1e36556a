package stub

import (
	"context"
	"crypto/ed25519"
	"crypto/sha256"
	"sync"

	"github.com/mr-tron/base58"

	"crate-blink/internal/solana"
)

// RPCClient implements solana.RPCClient for testing.
// Blockhashes are handed out in order; the last one repeats.
type RPCClient struct {
	mu          sync.Mutex
	Blockhashes []string
	Err         error
	calls       int
}

// NewRPCClient creates a new stub RPC client.
func NewRPCClient(blockhashes ...string) *RPCClient {
	return &RPCClient{Blockhashes: blockhashes}
}

// GetLatestBlockhash returns the next configured blockhash.
func (c *RPCClient) GetLatestBlockhash(_ context.Context) (*solana.LatestBlockhash, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.calls++
	if c.Err != nil {
		return nil, c.Err
	}

	hash := Blockhash("default")
	if n := len(c.Blockhashes); n > 0 {
		idx := c.calls - 1
		if idx >= n {
			idx = n - 1
		}
		hash = c.Blockhashes[idx]
	}

	return &solana.LatestBlockhash{
		Slot:                 uint64(1000 + c.calls),
		Blockhash:            hash,
		LastValidBlockHeight: uint64(2000 + c.calls),
	}, nil
}

// Calls returns how many times GetLatestBlockhash was called.
func (c *RPCClient) Calls() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls
}

// Blockhash returns a deterministic, well-formed blockhash for seed.
func Blockhash(seed string) string {
	h := sha256.Sum256([]byte("blockhash:" + seed))
	return base58.Encode(h[:])
}

// Wallet returns a deterministic on-curve wallet address for seed.
func Wallet(seed string) string {
	h := sha256.Sum256([]byte("wallet:" + seed))
	pub := ed25519.NewKeyFromSeed(h[:]).Public().(ed25519.PublicKey)
	return base58.Encode(pub)
}
