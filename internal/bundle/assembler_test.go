package bundle

import (
	"testing"

	sol "github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crate-blink/internal/solana"
	"crate-blink/internal/solana/stub"
)

func transfers(t *testing.T, seeds ...string) []*sol.Transaction {
	t.Helper()
	txs := make([]*sol.Transaction, len(seeds))
	for i, s := range seeds {
		tx, err := solana.NewTransfer(stub.Wallet("payer"), stub.Wallet(s), uint64(i+1), stub.Blockhash(s))
		require.NoError(t, err)
		txs[i] = tx
	}
	return txs
}

func TestAssemble_OrderAndRoundTrip(t *testing.T) {
	txs := transfers(t, "a", "b", "c")

	b, err := Assemble(txs)
	require.NoError(t, err)
	require.Equal(t, 3, b.Len())

	for i, payload := range b.Payloads() {
		decoded, err := solana.DecodeTransaction(payload)
		require.NoError(t, err)
		assert.Equal(t, txs[i].Message.RecentBlockhash, decoded.Message.RecentBlockhash)
	}
	assert.Equal(t, b.Payloads()[0], b.First())
}

func TestAssemble_Deterministic(t *testing.T) {
	txs := transfers(t, "a", "b")
	before := txs[0].Message.RecentBlockhash

	first, err := Assemble(txs)
	require.NoError(t, err)
	second, err := Assemble(txs)
	require.NoError(t, err)

	assert.Equal(t, first.Payloads(), second.Payloads())
	assert.Equal(t, before, txs[0].Message.RecentBlockhash)
}

func TestAssemble_Empty(t *testing.T) {
	b, err := Assemble(nil)
	require.NoError(t, err)
	assert.Zero(t, b.Len())
	assert.Equal(t, "", b.First())
}

func TestAssemble_NilTransaction(t *testing.T) {
	_, err := Assemble([]*sol.Transaction{nil})
	assert.Error(t, err)
}
