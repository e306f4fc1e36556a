package jupiter_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"crate-blink/internal/domain"
	"crate-blink/internal/jupiter"
)

const (
	solMint  = "So11111111111111111111111111111111111111112"
	bonkMint = "DezXAZ8z7PnrnRJjz3wXBoRgixCa6xjnB7YaB1pPB263"
)

func jsonResponse(t *testing.T, status int, v any) *http.Response {
	t.Helper()
	buffer := &bytes.Buffer{}
	require.NoError(t, json.NewEncoder(buffer).Encode(v))
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(buffer),
		Header:     http.Header{"Content-Type": []string{"application/json"}},
	}
}

func TestClient_Quote(t *testing.T) {
	t.Parallel()

	// Arrange: create a mock http client that checks the query.
	ctrl := gomock.NewController(t)
	httpClient := NewMockHTTPClient(ctrl)

	httpClient.EXPECT().
		Do(gomock.Any()).
		DoAndReturn(func(req *http.Request) (*http.Response, error) {
			assert.Equal(t, http.MethodGet, req.Method)
			assert.Equal(t, "/v6/quote", req.URL.Path)
			q := req.URL.Query()
			assert.Equal(t, solMint, q.Get("inputMint"))
			assert.Equal(t, bonkMint, q.Get("outputMint"))
			assert.Equal(t, "2625000000", q.Get("amount"))
			assert.Equal(t, "true", q.Get("autoSlippage"))
			assert.Equal(t, "1000", q.Get("maxAutoSlippageBps"))
			assert.Equal(t, "1000", q.Get("autoSlippageCollisionUsdValue"))
			assert.Equal(t, "false", q.Get("onlyDirectRoutes"))
			assert.Equal(t, "false", q.Get("asLegacyTransaction"))
			assert.Equal(t, "secret", req.Header.Get("X-Api-Key"))

			return jsonResponse(t, http.StatusOK, map[string]any{
				"inputMint":      solMint,
				"outputMint":     bonkMint,
				"inAmount":       "2625000000",
				"outAmount":      "123456789",
				"priceImpactPct": "0.001",
				"routePlan":      []any{},
			}), nil
		}).
		Times(1)

	client := jupiter.NewClient(
		jupiter.WithHTTPClient(httpClient),
		jupiter.WithBaseURL("https://example.test/v6"),
		jupiter.WithHeader(http.Header{"X-Api-Key": []string{"secret"}}),
	)

	// Act
	quote, err := client.Quote(t.Context(), solMint, bonkMint, 2625000000)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "123456789", quote.OutAmount)
	assert.Equal(t, bonkMint, quote.OutputMint)
	assert.Contains(t, string(quote.Raw), "routePlan")
}

func TestClient_Quote_FixedSlippage(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	httpClient := NewMockHTTPClient(ctrl)

	httpClient.EXPECT().
		Do(gomock.Any()).
		DoAndReturn(func(req *http.Request) (*http.Response, error) {
			q := req.URL.Query()
			assert.Equal(t, "75", q.Get("slippageBps"))
			assert.Empty(t, q.Get("autoSlippage"))
			return jsonResponse(t, http.StatusOK, map[string]any{"outAmount": "1"}), nil
		})

	client := jupiter.NewClient(
		jupiter.WithHTTPClient(httpClient),
		jupiter.WithSlippage(jupiter.SlippageConfig{SlippageBps: 75}),
	)

	_, err := client.Quote(t.Context(), solMint, bonkMint, 1)
	require.NoError(t, err)
}

func TestClient_Quote_NoRoute(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	httpClient := NewMockHTTPClient(ctrl)

	httpClient.EXPECT().
		Do(gomock.Any()).
		Return(jsonResponse(t, http.StatusBadRequest, map[string]any{
			"error":     "Could not find any route",
			"errorCode": "COULD_NOT_FIND_ANY_ROUTE",
		}), nil)

	client := jupiter.NewClient(jupiter.WithHTTPClient(httpClient))

	_, err := client.Quote(t.Context(), solMint, bonkMint, 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "COULD_NOT_FIND_ANY_ROUTE")
}

func TestClient_Quote_EmptyOutAmount(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	httpClient := NewMockHTTPClient(ctrl)

	httpClient.EXPECT().
		Do(gomock.Any()).
		Return(jsonResponse(t, http.StatusOK, map[string]any{}), nil)

	client := jupiter.NewClient(jupiter.WithHTTPClient(httpClient))

	_, err := client.Quote(t.Context(), solMint, bonkMint, 1)
	assert.ErrorIs(t, err, jupiter.ErrNoQuote)
}

func TestClient_Quote_TransportError(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	httpClient := NewMockHTTPClient(ctrl)

	boom := errors.New("connection reset")
	httpClient.EXPECT().Do(gomock.Any()).Return(nil, boom)

	client := jupiter.NewClient(jupiter.WithHTTPClient(httpClient))

	_, err := client.Quote(t.Context(), solMint, bonkMint, 1)
	assert.ErrorIs(t, err, boom)
}

func TestClient_SwapTransaction(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	httpClient := NewMockHTTPClient(ctrl)

	raw := json.RawMessage(`{"inputMint":"` + solMint + `","outAmount":"5"}`)

	httpClient.EXPECT().
		Do(gomock.Any()).
		DoAndReturn(func(req *http.Request) (*http.Response, error) {
			assert.Equal(t, http.MethodPost, req.Method)
			assert.True(t, strings.HasSuffix(req.URL.Path, "/swap"))
			assert.Equal(t, "application/json", req.Header.Get("Content-Type"))

			var body map[string]json.RawMessage
			require.NoError(t, json.NewDecoder(req.Body).Decode(&body))
			assert.JSONEq(t, string(raw), string(body["quoteResponse"]))
			assert.JSONEq(t, `"payer-wallet"`, string(body["userPublicKey"]))
			assert.JSONEq(t, `true`, string(body["dynamicComputeUnitLimit"]))
			assert.JSONEq(t, `"auto"`, string(body["prioritizationFeeLamports"]))

			return jsonResponse(t, http.StatusOK, map[string]any{
				"swapTransaction":      "AQID",
				"lastValidBlockHeight": 100,
			}), nil
		})

	client := jupiter.NewClient(jupiter.WithHTTPClient(httpClient))

	tx, err := client.SwapTransaction(t.Context(), "payer-wallet", &domain.Quote{Raw: raw})
	require.NoError(t, err)
	assert.Equal(t, "AQID", tx)
}

func TestClient_SwapTransaction_Errors(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	httpClient := NewMockHTTPClient(ctrl)

	httpClient.EXPECT().
		Do(gomock.Any()).
		Return(jsonResponse(t, http.StatusOK, map[string]any{"swapTransaction": ""}), nil)
	httpClient.EXPECT().
		Do(gomock.Any()).
		Return(&http.Response{StatusCode: http.StatusInternalServerError, Body: io.NopCloser(strings.NewReader("oops"))}, nil)

	client := jupiter.NewClient(jupiter.WithHTTPClient(httpClient))
	quote := &domain.Quote{Raw: json.RawMessage(`{}`)}

	_, err := client.SwapTransaction(t.Context(), "payer", quote)
	assert.Error(t, err)

	_, err = client.SwapTransaction(t.Context(), "payer", quote)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Internal Server Error")

	// Nil quotes never reach the network.
	_, err = client.SwapTransaction(t.Context(), "payer", nil)
	assert.Error(t, err)
}
