package jupiter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"crate-blink/internal/domain"
)

// SwapTransaction asks the API to build the swap for q paid by payer.
// It returns the base64 wire transaction, unsigned.
func (c *Client) SwapTransaction(ctx context.Context, payer string, q *domain.Quote) (string, error) {
	if q == nil || len(q.Raw) == 0 {
		return "", fmt.Errorf("swap: empty quote")
	}

	payload, err := json.Marshal(swapRequest{
		QuoteResponse:             q.Raw,
		UserPublicKey:             payer,
		DynamicComputeUnitLimit:   true,
		PrioritizationFeeLamports: "auto",
	})
	if err != nil {
		return "", fmt.Errorf("marshal swap request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/swap", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("create swap request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	body, err := c.do(req)
	if err != nil {
		return "", err
	}

	var resp swapResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("decode swap: %w", err)
	}
	if resp.SwapTransaction == "" {
		return "", fmt.Errorf("swap: empty transaction")
	}
	return resp.SwapTransaction, nil
}
