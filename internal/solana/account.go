package solana

import (
	"fmt"
	"strings"

	"filippo.io/edwards25519"
	"github.com/mr-tron/base58"
)

// PublicKeyLength is the size of a decoded account address.
const PublicKeyLength = 32

// ValidateAddress checks that s is a base58-encoded 32-byte account address.
func ValidateAddress(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return fmt.Errorf("empty address")
	}
	decoded, err := base58.Decode(s)
	if err != nil {
		return fmt.Errorf("decode address %q: %w", s, err)
	}
	if len(decoded) != PublicKeyLength {
		return fmt.Errorf("address %q has %d bytes, want %d", s, len(decoded), PublicKeyLength)
	}
	return nil
}

// ValidateSigner checks that s is a valid address that lies on the ed25519 curve.
// Program derived addresses are off-curve and can never sign.
func ValidateSigner(s string) error {
	if err := ValidateAddress(s); err != nil {
		return err
	}
	if !IsOnCurve(s) {
		return fmt.Errorf("address %q is not on the ed25519 curve", s)
	}
	return nil
}

// IsOnCurve reports whether the decoded address is a valid ed25519 point.
func IsOnCurve(s string) bool {
	decoded, err := base58.Decode(strings.TrimSpace(s))
	if err != nil || len(decoded) != PublicKeyLength {
		return false
	}
	_, err = new(edwards25519.Point).SetBytes(decoded)
	return err == nil
}
