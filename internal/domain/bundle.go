package domain

// Bundle is the ordered list of base64-encoded transactions returned to the caller.
// Swaps come first in allocation order, then fee transfers.
type Bundle struct {
	payloads []string
}

// NewBundle copies payloads into a new Bundle.
func NewBundle(payloads []string) Bundle {
	cp := make([]string, len(payloads))
	copy(cp, payloads)
	return Bundle{payloads: cp}
}

// Len returns the number of transactions.
func (b Bundle) Len() int {
	return len(b.payloads)
}

// First returns the first payload, or "" for an empty bundle.
func (b Bundle) First() string {
	if len(b.payloads) == 0 {
		return ""
	}
	return b.payloads[0]
}

// Payloads returns a copy of all payloads.
func (b Bundle) Payloads() []string {
	cp := make([]string, len(b.payloads))
	copy(cp, b.payloads)
	return cp
}
