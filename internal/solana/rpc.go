package solana

import "context"

// RPCClient defines the Solana RPC calls used by the service.
type RPCClient interface {
	// GetLatestBlockhash returns the most recent blockhash at the client's commitment.
	GetLatestBlockhash(ctx context.Context) (*LatestBlockhash, error)
}

// LatestBlockhash is the result of getLatestBlockhash.
type LatestBlockhash struct {
	Slot                 uint64
	Blockhash            string
	LastValidBlockHeight uint64
}
