package solana

import (
	"crypto/ed25519"
	"crypto/sha256"
	"encoding/binary"
	"testing"

	sol "github.com/gagliardetto/solana-go"
	"github.com/mr-tron/base58"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testWallet(seed string) string {
	h := sha256.Sum256([]byte(seed))
	return base58.Encode(ed25519.NewKeyFromSeed(h[:]).Public().(ed25519.PublicKey))
}

func testHash(seed string) string {
	h := sha256.Sum256([]byte("hash:" + seed))
	return base58.Encode(h[:])
}

func TestNewTransfer(t *testing.T) {
	from := testWallet("from")
	to := testWallet("to")
	blockhash := testHash("1")

	tx, err := NewTransfer(from, to, 1_000_000, blockhash)
	require.NoError(t, err)

	assert.True(t, tx.Message.IsVersioned())
	assert.Equal(t, blockhash, tx.Message.RecentBlockhash.String())
	require.NotEmpty(t, tx.Message.AccountKeys)
	assert.Equal(t, from, tx.Message.AccountKeys[0].String())
	assert.Contains(t, tx.Message.AccountKeys, sol.MustPublicKeyFromBase58(to))
	assert.Contains(t, tx.Message.AccountKeys, sol.SystemProgramID)
	assert.Len(t, tx.Signatures, 1)

	require.Len(t, tx.Message.Instructions, 1)
	data := tx.Message.Instructions[0].Data
	require.Len(t, data, 12)
	assert.Equal(t, uint32(2), binary.LittleEndian.Uint32(data[0:4]), "system transfer discriminator")
	assert.Equal(t, uint64(1_000_000), binary.LittleEndian.Uint64(data[4:12]))
}

func TestNewTransfer_InvalidInput(t *testing.T) {
	from := testWallet("from")
	to := testWallet("to")

	_, err := NewTransfer("bad", to, 1, testHash("1"))
	assert.Error(t, err)

	_, err = NewTransfer(from, "bad", 1, testHash("1"))
	assert.Error(t, err)

	_, err = NewTransfer(from, to, 1, "not-a-hash")
	assert.Error(t, err)
}

func TestEncodeDecodeTransaction(t *testing.T) {
	tx, err := NewTransfer(testWallet("a"), testWallet("b"), 42, testHash("x"))
	require.NoError(t, err)

	encoded, err := EncodeTransaction(tx)
	require.NoError(t, err)

	decoded, err := DecodeTransaction(encoded)
	require.NoError(t, err)

	again, err := EncodeTransaction(decoded)
	require.NoError(t, err)
	assert.Equal(t, encoded, again, "encoding must be stable across decode")
	assert.Equal(t, tx.Message.RecentBlockhash, decoded.Message.RecentBlockhash)
}

func TestDecodeTransaction_Invalid(t *testing.T) {
	_, err := DecodeTransaction("%%%")
	assert.Error(t, err)

	_, err = DecodeTransaction("")
	assert.Error(t, err)

	_, err = EncodeTransaction(nil)
	assert.Error(t, err)
}
