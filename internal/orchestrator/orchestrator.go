// Package orchestrator runs the crate purchase pipeline.
// It coordinates: validation → split → quotes → swap builds → fee transfers → bundle
package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/google/uuid"

	"crate-blink/internal/allocation"
	"crate-blink/internal/bundle"
	"crate-blink/internal/domain"
	"crate-blink/internal/fees"
	"crate-blink/internal/observability"
	"crate-blink/internal/quote"
	"crate-blink/internal/solana"
	"crate-blink/internal/storage"
	"crate-blink/internal/swaptx"
)

// DefaultRequestTimeout bounds one Execute call end to end.
const DefaultRequestTimeout = 20 * time.Second

// State is a pipeline stage of one request.
type State string

const (
	StateValidating   State = "validating"
	StateSplitting    State = "splitting"
	StateQuoting      State = "quoting"
	StateBuilding     State = "building"
	StateFeeAppending State = "fee_appending"
	StateAssembling   State = "assembling"
	StateResponding   State = "responding"
	StateFailed       State = "failed"
)

// Orchestrator executes purchase requests against the injected collaborators.
type Orchestrator struct {
	// Collaborators
	crates   storage.CrateStore
	registry storage.TokenRegistry
	quotes   *quote.FanOut
	swaps    *swaptx.Builder
	fees     *fees.Appender

	// Configs
	currencies          domain.CurrencyTable
	platformWallet      string
	platformFeeLamports uint64
	creatorFeeLamports  uint64
	defaultIcon         string
	timeout             time.Duration

	logger  *log.Logger
	metrics *observability.Metrics
}

// Options for creating Orchestrator.
type Options struct {
	// Required collaborators
	CrateStore  storage.CrateStore
	Quoter      quote.Quoter
	SwapBuilder swaptx.SwapBuilder
	Blockhashes fees.BlockhashSource

	// Optional symbol → mint lookup; crate token ids that are mints need no registry.
	TokenRegistry storage.TokenRegistry

	// Static configuration
	Currencies          domain.CurrencyTable
	PlatformWallet      string
	PlatformFeeLamports uint64
	CreatorFeeLamports  uint64
	DefaultIcon         string

	// Options
	ShareBlockhash bool          // One blockhash for all fee transfers of a request
	RequestTimeout time.Duration // Zero uses DefaultRequestTimeout
	Concurrency    int           // Fan-out limit for quotes and builds

	Logger  *log.Logger
	Metrics *observability.Metrics
}

// New creates a new Orchestrator.
func New(opts Options) *Orchestrator {
	currencies := opts.Currencies
	if currencies == nil {
		currencies = domain.DefaultCurrencyTable()
	}
	timeout := opts.RequestTimeout
	if timeout <= 0 {
		timeout = DefaultRequestTimeout
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(os.Stdout, "[orchestrator] ", log.LstdFlags|log.Lshortfile)
	}

	return &Orchestrator{
		crates:              opts.CrateStore,
		registry:            opts.TokenRegistry,
		quotes:              quote.NewFanOut(opts.Quoter, opts.Concurrency),
		swaps:               swaptx.NewBuilder(opts.SwapBuilder, opts.Concurrency),
		fees:                fees.NewAppender(opts.Blockhashes, fees.WithSharedBlockhash(opts.ShareBlockhash)),
		currencies:          currencies,
		platformWallet:      opts.PlatformWallet,
		platformFeeLamports: opts.PlatformFeeLamports,
		creatorFeeLamports:  opts.CreatorFeeLamports,
		defaultIcon:         opts.DefaultIcon,
		timeout:             timeout,
		logger:              logger,
		metrics:             opts.Metrics,
	}
}

// Result is the outcome of a successful Execute.
type Result struct {
	RequestID string
	Crate     *domain.Crate
	Bundle    domain.Bundle
	// Outcomes holds one entry per crate token, in crate order.
	Outcomes []domain.QuoteOutcome
	// Unsupported lists symbols that could not be quoted or built.
	Unsupported []string
}

// Execute runs the full purchase pipeline for req.
// Per-asset failures are reported in Result.Unsupported; the returned error is
// set only for request-level failures, in which case no bundle is produced.
func (o *Orchestrator) Execute(ctx context.Context, req domain.FundingRequest) (*Result, error) {
	ctx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	run := &execution{o: o, id: uuid.NewString(), started: time.Now()}
	result, err := run.execute(ctx, req)
	run.finish()
	if err != nil {
		o.logger.Printf("request=%s state=%s crate=%s failed in %s: %v",
			run.id, StateFailed, req.CrateID, run.state, err)
		return nil, err
	}
	return result, nil
}

// execution tracks the state of one Execute call.
type execution struct {
	o       *Orchestrator
	id      string
	state   State
	entered time.Time
	started time.Time
}

func (e *execution) enter(s State) {
	now := time.Now()
	if e.state != "" {
		e.o.metrics.ObservePhase(string(e.state), now.Sub(e.entered))
	}
	e.state = s
	e.entered = now
	e.o.logger.Printf("request=%s state=%s", e.id, s)
}

// finish records the duration of the state the run ended in.
func (e *execution) finish() {
	if e.state != "" {
		e.o.metrics.ObservePhase(string(e.state), time.Since(e.entered))
	}
}

func (e *execution) execute(ctx context.Context, req domain.FundingRequest) (*Result, error) {
	o := e.o

	// Validating
	e.enter(StateValidating)
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if err := solana.ValidateSigner(req.Payer); err != nil {
		return nil, fmt.Errorf("%w: payer: %v", domain.ErrValidation, err)
	}
	spec, err := o.currencies.Lookup(req.Currency)
	if err != nil {
		return nil, err
	}

	crate, err := o.loadCrate(ctx, req.CrateID)
	if err != nil {
		return nil, err
	}
	allocs, err := o.resolveAllocations(ctx, crate)
	if err != nil {
		return nil, err
	}

	// Splitting
	e.enter(StateSplitting)
	amounts, err := allocation.Split(req.TotalAmount, spec, allocs)
	if err != nil {
		return nil, fmt.Errorf("split: %w", err)
	}

	// Quoting
	e.enter(StateQuoting)
	outcomes := o.quotes.QuoteAll(ctx, spec.Mint, amounts)
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("quoting: %w", err)
	}
	o.logOutcomes(e.id, outcomes)
	if quote.AllFailed(outcomes) {
		o.metrics.RecordOutcomes(outcomes)
		return nil, fmt.Errorf("%w: none of %d assets could be quoted", domain.ErrNoSupportedAssets, len(outcomes))
	}

	// Building
	e.enter(StateBuilding)
	txs, outcomes := o.swaps.BuildAll(ctx, req.Payer, outcomes)
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("building: %w", err)
	}
	o.metrics.RecordOutcomes(outcomes)
	if len(txs) == 0 {
		return nil, fmt.Errorf("%w: no swap transaction could be built", domain.ErrNoSupportedAssets)
	}

	// FeeAppending
	e.enter(StateFeeAppending)
	txs, err = o.fees.Append(ctx, req.Payer, txs, o.feeWallets(e.id, req.Payer, crate))
	if err != nil {
		return nil, fmt.Errorf("append fees: %w", err)
	}

	// Assembling
	e.enter(StateAssembling)
	b, err := bundle.Assemble(txs)
	if err != nil {
		return nil, fmt.Errorf("assemble bundle: %w", err)
	}

	e.enter(StateResponding)
	unsupported := domain.FailedSymbols(outcomes)
	o.metrics.RecordBundle(b.Len())
	o.logger.Printf("request=%s crate=%s bundle=%d unsupported=%v took=%s",
		e.id, req.CrateID, b.Len(), unsupported, time.Since(e.started))

	return &Result{
		RequestID:   e.id,
		Crate:       crate,
		Bundle:      b,
		Outcomes:    outcomes,
		Unsupported: unsupported,
	}, nil
}

// loadCrate fetches the crate, mapping store failures to request-level errors.
func (o *Orchestrator) loadCrate(ctx context.Context, id string) (*domain.Crate, error) {
	crate, err := o.crates.GetByID(ctx, id)
	switch {
	case err == nil:
		return crate, nil
	case errors.Is(err, storage.ErrNotFound):
		return nil, fmt.Errorf("crate %s: %w", id, err)
	case errors.Is(err, storage.ErrInvalidInput):
		return nil, fmt.Errorf("%w: crate id %q", domain.ErrValidation, id)
	case errors.Is(err, domain.ErrCollaboratorUnavailable):
		return nil, fmt.Errorf("load crate %s: %w", id, err)
	default:
		return nil, fmt.Errorf("%w: load crate %s: %v", domain.ErrCollaboratorUnavailable, id, err)
	}
}

// feeWallets returns the platform wallet followed by the creator wallet when one applies.
func (o *Orchestrator) feeWallets(requestID, payer string, crate *domain.Crate) []fees.FeeWallet {
	wallets := []fees.FeeWallet{
		{Label: "platform", Address: o.platformWallet, Lamports: o.platformFeeLamports},
	}

	creator := crate.CreatorWallet()
	switch {
	case creator == "" || o.creatorFeeLamports == 0:
	case creator == o.platformWallet || creator == payer:
		o.logger.Printf("request=%s skipping creator fee: creator is platform or payer", requestID)
	case solana.ValidateAddress(creator) != nil:
		o.logger.Printf("request=%s skipping creator fee: invalid wallet %q", requestID, creator)
	default:
		wallets = append(wallets, fees.FeeWallet{Label: "creator", Address: creator, Lamports: o.creatorFeeLamports})
	}
	return wallets
}

func (o *Orchestrator) logOutcomes(requestID string, outcomes []domain.QuoteOutcome) {
	for _, out := range outcomes {
		if out.OK() {
			o.logger.Printf("request=%s quote %s: in=%s out=%s impact=%s",
				requestID, out.Symbol, out.Quote.InAmount, out.Quote.OutAmount, out.Quote.PriceImpactPct)
			continue
		}
		o.logger.Printf("request=%s quote %s failed: %v", requestID, out.Symbol, out.Cause)
	}
}
