package solana

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func TestHTTPClient_GetLatestBlockhash(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req rpcRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}

		if req.Method != "getLatestBlockhash" {
			t.Errorf("expected method getLatestBlockhash, got %s", req.Method)
		}
		if len(req.Params) != 1 {
			t.Fatalf("expected 1 param, got %d", len(req.Params))
		}
		cfg, ok := req.Params[0].(map[string]interface{})
		if !ok || cfg["commitment"] != CommitmentConfirmed {
			t.Errorf("expected commitment %q, got %v", CommitmentConfirmed, req.Params[0])
		}

		resp := map[string]interface{}{
			"jsonrpc": "2.0",
			"id":      req.ID,
			"result": map[string]interface{}{
				"context": map[string]interface{}{"slot": 321},
				"value": map[string]interface{}{
					"blockhash":            "EkSnNWid2cvwEVnVx9aBqawnmiCNiDgp3gUdkDPTKN1N",
					"lastValidBlockHeight": 3090,
				},
			},
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	client := NewHTTPClient(server.URL, WithCommitment(CommitmentConfirmed))

	bh, err := client.GetLatestBlockhash(context.Background())
	if err != nil {
		t.Fatalf("GetLatestBlockhash: %v", err)
	}

	if bh.Blockhash != "EkSnNWid2cvwEVnVx9aBqawnmiCNiDgp3gUdkDPTKN1N" {
		t.Errorf("unexpected blockhash %s", bh.Blockhash)
	}
	if bh.Slot != 321 {
		t.Errorf("expected slot 321, got %d", bh.Slot)
	}
	if bh.LastValidBlockHeight != 3090 {
		t.Errorf("expected lastValidBlockHeight 3090, got %d", bh.LastValidBlockHeight)
	}
}

func TestHTTPClient_GetLatestBlockhash_EmptyValue(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req rpcRequest
		json.NewDecoder(r.Body).Decode(&req)

		resp := map[string]interface{}{
			"jsonrpc": "2.0",
			"id":      req.ID,
			"result":  map[string]interface{}{"context": map[string]interface{}{"slot": 1}},
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	client := NewHTTPClient(server.URL)

	if _, err := client.GetLatestBlockhash(context.Background()); err == nil {
		t.Fatal("expected error for empty value")
	}
}

func TestHTTPClient_RetryOnServerError(t *testing.T) {
	var attempts atomic.Int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := attempts.Add(1)
		if n < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}

		var req rpcRequest
		json.NewDecoder(r.Body).Decode(&req)

		resp := map[string]interface{}{
			"jsonrpc": "2.0",
			"id":      req.ID,
			"result": map[string]interface{}{
				"context": map[string]interface{}{"slot": 9},
				"value":   map[string]interface{}{"blockhash": "hash", "lastValidBlockHeight": 1},
			},
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	client := NewHTTPClient(server.URL,
		WithMaxRetries(3),
		WithRetryDelay(10*time.Millisecond),
	)

	if _, err := client.GetLatestBlockhash(context.Background()); err != nil {
		t.Fatalf("expected success after retries, got: %v", err)
	}

	if attempts.Load() != 3 {
		t.Errorf("expected 3 attempts, got %d", attempts.Load())
	}
}

func TestHTTPClient_RPCErrorNotRetried(t *testing.T) {
	var attempts atomic.Int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts.Add(1)

		var req rpcRequest
		json.NewDecoder(r.Body).Decode(&req)

		resp := map[string]interface{}{
			"jsonrpc": "2.0",
			"id":      req.ID,
			"error": map[string]interface{}{
				"code":    -32602,
				"message": "Invalid params",
			},
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	client := NewHTTPClient(server.URL, WithMaxRetries(3), WithRetryDelay(10*time.Millisecond))

	_, err := client.GetLatestBlockhash(context.Background())
	if err == nil {
		t.Fatal("expected RPC error")
	}

	rpcErr, ok := err.(*rpcError)
	if !ok {
		t.Fatalf("expected *rpcError, got %T", err)
	}
	if rpcErr.Code != -32602 {
		t.Errorf("expected code -32602, got %d", rpcErr.Code)
	}
	if attempts.Load() != 1 {
		t.Errorf("expected 1 attempt, got %d", attempts.Load())
	}
}

func TestHTTPClient_ContextCancellation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewHTTPClient(server.URL, WithMaxRetries(10), WithRetryDelay(time.Second))

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := client.GetLatestBlockhash(ctx)
	if err == nil {
		t.Fatal("expected error on cancelled context")
	}
	if time.Since(start) > 2*time.Second {
		t.Errorf("retry loop ignored context cancellation")
	}
}
