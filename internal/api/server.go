// Package api serves the crate purchase Solana Action over HTTP.
package api

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"

	"crate-blink/internal/domain"
	"crate-blink/internal/observability"
	"crate-blink/internal/orchestrator"
)

// Route paths.
const (
	ActionPath         = "/api/actions/buy"
	ActionCompletePath = "/api/actions/buy/complete"
)

// Purchaser describes and executes crate purchases.
type Purchaser interface {
	Describe(ctx context.Context, crateID string) (*orchestrator.Descriptor, error)
	Execute(ctx context.Context, req domain.FundingRequest) (*orchestrator.Result, error)
}

// Config wires the router.
type Config struct {
	Purchaser   Purchaser
	Metrics     *observability.Metrics
	RateLimiter *RateLimiter
	CORS        CORSConfig
	Logger      *log.Logger
}

type handler struct {
	purchaser Purchaser
	metrics   *observability.Metrics
	logger    *log.Logger
}

// NewRouter returns the HTTP handler for all routes.
func NewRouter(cfg Config) http.Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = log.New(os.Stdout, "[api] ", log.LstdFlags|log.Lshortfile)
	}
	h := &handler{purchaser: cfg.Purchaser, metrics: cfg.Metrics, logger: logger}

	r := chi.NewRouter()
	r.Use(CORS(cfg.CORS))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", cfg.Metrics.Handler())

	r.Get("/actions.json", h.actionsJSON)
	r.Options("/actions.json", h.actionsJSON)

	r.Get(ActionPath, h.describe)
	r.Options(ActionPath, h.describe)
	r.Options(ActionCompletePath, h.preflight)
	r.Group(func(r chi.Router) {
		if cfg.RateLimiter != nil {
			r.Use(cfg.RateLimiter.Middleware)
		}
		r.Post(ActionPath, h.execute)
		r.Post(ActionCompletePath, h.complete)
	})

	return r
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
