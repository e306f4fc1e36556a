package solana

import (
	"encoding/base64"
	"fmt"

	bin "github.com/gagliardetto/binary"
	sol "github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/programs/system"
)

// DecodeTransaction decodes a base64 wire-format transaction.
func DecodeTransaction(encoded string) (*sol.Transaction, error) {
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("decode base64: %w", err)
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("empty transaction payload")
	}
	tx, err := sol.TransactionFromDecoder(bin.NewBinDecoder(raw))
	if err != nil {
		return nil, fmt.Errorf("deserialize transaction: %w", err)
	}
	return tx, nil
}

// EncodeTransaction serializes tx to wire format and encodes it as base64.
func EncodeTransaction(tx *sol.Transaction) (string, error) {
	if tx == nil {
		return "", fmt.Errorf("nil transaction")
	}
	raw, err := tx.MarshalBinary()
	if err != nil {
		return "", fmt.Errorf("serialize transaction: %w", err)
	}
	return base64.StdEncoding.EncodeToString(raw), nil
}

// NewTransfer builds an unsigned v0 system transfer of lamports from -> to.
// Signature slots are zero-filled so the payload can be serialized before signing.
func NewTransfer(from, to string, lamports uint64, blockhash string) (*sol.Transaction, error) {
	fromKey, err := sol.PublicKeyFromBase58(from)
	if err != nil {
		return nil, fmt.Errorf("parse from address: %w", err)
	}
	toKey, err := sol.PublicKeyFromBase58(to)
	if err != nil {
		return nil, fmt.Errorf("parse to address: %w", err)
	}
	hash, err := sol.HashFromBase58(blockhash)
	if err != nil {
		return nil, fmt.Errorf("parse blockhash: %w", err)
	}

	tx, err := sol.NewTransaction(
		[]sol.Instruction{
			system.NewTransferInstruction(lamports, fromKey, toKey).Build(),
		},
		hash,
		sol.TransactionPayer(fromKey),
	)
	if err != nil {
		return nil, fmt.Errorf("build transfer: %w", err)
	}
	tx.Message.SetVersion(sol.MessageVersionV0)
	tx.Signatures = make([]sol.Signature, tx.Message.Header.NumRequiredSignatures)
	return tx, nil
}
