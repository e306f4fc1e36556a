package jupiter

import (
	"encoding/json"
	"fmt"
)

// SlippageConfig controls how the aggregator picks slippage for a route.
type SlippageConfig struct {
	AutoSlippage                  bool
	MaxAutoSlippageBps            int
	AutoSlippageCollisionUSDValue int
	MinimizeSlippage              bool
	OnlyDirectRoutes              bool
	// SlippageBps is used when AutoSlippage is off.
	SlippageBps int
}

// DefaultSlippage returns automatic slippage capped at 10%.
func DefaultSlippage() SlippageConfig {
	return SlippageConfig{
		AutoSlippage:                  true,
		MaxAutoSlippageBps:            1000,
		AutoSlippageCollisionUSDValue: 1000,
		MinimizeSlippage:              true,
		OnlyDirectRoutes:              false,
		SlippageBps:                   50,
	}
}

// quoteResponse holds the fields of a quote the service inspects.
// The full document is kept verbatim alongside it.
type quoteResponse struct {
	InputMint      string `json:"inputMint"`
	OutputMint     string `json:"outputMint"`
	InAmount       string `json:"inAmount"`
	OutAmount      string `json:"outAmount"`
	PriceImpactPct string `json:"priceImpactPct"`
}

type swapRequest struct {
	QuoteResponse             json.RawMessage `json:"quoteResponse"`
	UserPublicKey             string          `json:"userPublicKey"`
	DynamicComputeUnitLimit   bool            `json:"dynamicComputeUnitLimit"`
	PrioritizationFeeLamports string          `json:"prioritizationFeeLamports"`
}

type swapResponse struct {
	SwapTransaction      string `json:"swapTransaction"`
	LastValidBlockHeight uint64 `json:"lastValidBlockHeight"`
}

// apiError is the error document returned on non-2xx responses.
type apiError struct {
	Status    int    `json:"-"`
	Message   string `json:"error"`
	ErrorCode string `json:"errorCode"`
}

func (e *apiError) Error() string {
	if e.ErrorCode != "" {
		return fmt.Sprintf("jupiter %d %s: %s", e.Status, e.ErrorCode, e.Message)
	}
	return fmt.Sprintf("jupiter %d: %s", e.Status, e.Message)
}
