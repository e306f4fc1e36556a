package domain

import "encoding/json"

// Quote is a priced route returned by the quoting service.
// Raw holds the response verbatim and is what gets sent back to build the swap.
type Quote struct {
	InputMint      string
	OutputMint     string
	InAmount       string
	OutAmount      string
	PriceImpactPct string
	Raw            json.RawMessage
}

// QuoteOutcome is the per-allocation result of quoting and building.
// Exactly one of Quote or Cause is set.
type QuoteOutcome struct {
	Symbol     string
	OutputMint string
	Quote      *Quote
	Cause      error
}

// QuoteSucceeded creates a successful outcome.
func QuoteSucceeded(symbol, outputMint string, q *Quote) QuoteOutcome {
	return QuoteOutcome{Symbol: symbol, OutputMint: outputMint, Quote: q}
}

// QuoteFailed creates a failed outcome.
func QuoteFailed(symbol, outputMint string, cause error) QuoteOutcome {
	return QuoteOutcome{Symbol: symbol, OutputMint: outputMint, Cause: cause}
}

// OK reports whether the outcome is a success.
func (o QuoteOutcome) OK() bool {
	return o.Cause == nil && o.Quote != nil
}

// FailedSymbols returns the symbols of failed outcomes in input order.
func FailedSymbols(outcomes []QuoteOutcome) []string {
	var out []string
	for _, o := range outcomes {
		if !o.OK() {
			out = append(out, o.Symbol)
		}
	}
	return out
}

// CountSucceeded returns the number of successful outcomes.
func CountSucceeded(outcomes []QuoteOutcome) int {
	n := 0
	for _, o := range outcomes {
		if o.OK() {
			n++
		}
	}
	return n
}
