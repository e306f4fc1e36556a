package jupiter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"crate-blink/internal/domain"
)

// ErrNoQuote is returned when the API answers without a usable route.
var ErrNoQuote = errors.New("unable to quote")

// Quote requests a route swapping amount atomic units of inputMint into outputMint.
func (c *Client) Quote(ctx context.Context, inputMint, outputMint string, amount uint64) (*domain.Quote, error) {
	q := url.Values{}
	q.Set("inputMint", inputMint)
	q.Set("outputMint", outputMint)
	q.Set("amount", strconv.FormatUint(amount, 10))
	q.Set("onlyDirectRoutes", strconv.FormatBool(c.slippage.OnlyDirectRoutes))
	q.Set("asLegacyTransaction", "false")
	if c.slippage.AutoSlippage {
		q.Set("autoSlippage", "true")
		q.Set("maxAutoSlippageBps", strconv.Itoa(c.slippage.MaxAutoSlippageBps))
		q.Set("autoSlippageCollisionUsdValue", strconv.Itoa(c.slippage.AutoSlippageCollisionUSDValue))
	} else {
		q.Set("slippageBps", strconv.Itoa(c.slippage.SlippageBps))
	}
	if c.slippage.MinimizeSlippage {
		q.Set("minimizeSlippage", "true")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/quote?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create quote request: %w", err)
	}

	body, err := c.do(req)
	if err != nil {
		return nil, err
	}

	var parsed quoteResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("decode quote: %w", err)
	}
	if parsed.OutAmount == "" || parsed.OutAmount == "0" {
		return nil, ErrNoQuote
	}

	return &domain.Quote{
		InputMint:      parsed.InputMint,
		OutputMint:     parsed.OutputMint,
		InAmount:       parsed.InAmount,
		OutAmount:      parsed.OutAmount,
		PriceImpactPct: parsed.PriceImpactPct,
		Raw:            json.RawMessage(body),
	}, nil
}

// do sends req and returns the body of a 2xx response.
func (c *Client) do(req *http.Request) ([]byte, error) {
	req.Header.Set("Accept", "application/json")
	for key, values := range c.header {
		for _, value := range values {
			req.Header.Add(key, value)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &apiError{Status: resp.StatusCode}
		if err := json.Unmarshal(body, apiErr); err != nil || apiErr.Message == "" {
			apiErr.Message = http.StatusText(resp.StatusCode)
		}
		return nil, apiErr
	}

	return body, nil
}
