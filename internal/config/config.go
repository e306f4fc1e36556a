// Package config loads server configuration from flags, environment and an optional YAML file.
package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"crate-blink/internal/domain"
	"crate-blink/internal/jupiter"
	"crate-blink/internal/solana"
)

// Crate store backends.
const (
	StoreHTTP     = "http"
	StorePostgres = "postgres"
)

// DefaultPlatformWallet receives the platform fee when none is configured.
const DefaultPlatformWallet = "SicKRgxa9vRCfMy4QYzKcnJJvDy1ojxJiNu3PRnmBLs"

// DefaultIcon is shown for crates without their own icon.
const DefaultIcon = "https://blinks.sickfreak.club/proto.png"

// Config holds runtime configuration for the server.
type Config struct {
	ListenAddress string

	// Collaborators
	SolanaRPC     string
	CrateStore    string
	CrateAPIURL   string
	PostgresDSN   string
	JupiterAPIURL string
	JupiterAPIKey string

	// Fees
	PlatformWallet      string
	PlatformFeeLamports uint64
	CreatorFeeLamports  uint64
	ShareBlockhash      bool

	// Limits
	RequestTimeout time.Duration
	Concurrency    int
	RateLimit      float64
	RateBurst      int

	DefaultIcon string

	// Tables, optionally overridden by TablesFile.
	TablesFile string
	Currencies domain.CurrencyTable
	Tokens     map[string]string
}

// Default returns the configuration used when nothing is set.
func Default() Config {
	return Config{
		ListenAddress:       ":8080",
		SolanaRPC:           "https://api.mainnet-beta.solana.com",
		CrateStore:          StoreHTTP,
		JupiterAPIURL:       jupiter.DefaultBaseURL,
		PlatformWallet:      DefaultPlatformWallet,
		PlatformFeeLamports: 1_000_000,
		CreatorFeeLamports:  1_000_000,
		RequestTimeout:      20 * time.Second,
		Concurrency:         8,
		RateLimit:           5,
		RateBurst:           10,
		DefaultIcon:         DefaultIcon,
		Currencies:          domain.DefaultCurrencyTable(),
		Tokens:              DefaultTokens(),
	}
}

// DefaultTokens returns well-known mainnet symbol → mint pairs.
func DefaultTokens() map[string]string {
	return map[string]string{
		"SOL":  domain.WrappedSOLMint,
		"USDC": domain.USDCMint,
		"JUP":  "JUPyiwrYJFskUPiHa7hkeR8VUtAeFoSYbKedZNsDvCN",
		"BONK": "DezXAZ8z7PnrnRJjz3wXBoRgixCa6xjnB7YaB1pPB263",
		"WIF":  "EKpQGSJtjMFqKZ9KQanSqYXRcF8fBopzLHYxdM65zcjm",
		"RAY":  "4k3Dyjzvzp8eMZWUXbBCjEvwSkkk59S5iCNLY3QrkX6R",
		"PYTH": "HZ1JovNiVvGrGNiiYvEozEVgZ58xaU3RKwX8eACQBCt3",
		"JTO":  "jtojtomepa8beP8AuQc6eXt5FriJwfFMwQx2v2f9mCL",
		"ORCA": "orcaEKTdK7LKz57vaAYr9QeNsVEPfiu6QeMU1kektZE",
		"MSOL": "mSoLzYCxHdYgdzU16g5QSh3i5K3z3KZK7ytfqcJm7So",
	}
}

// Load parses args with environment variables as defaults, applies the
// tables file when given and validates the result.
func Load(args []string) (Config, error) {
	cfg := Default()
	env := &envReader{}

	fs := flag.NewFlagSet("crate-blink", flag.ContinueOnError)
	fs.StringVar(&cfg.ListenAddress, "listen", env.str("LISTEN_ADDRESS", cfg.ListenAddress), "HTTP listen address")
	fs.StringVar(&cfg.SolanaRPC, "rpc-endpoint", env.str("SOLANA_RPC_ENDPOINT", cfg.SolanaRPC), "Solana RPC HTTP endpoint")
	fs.StringVar(&cfg.CrateStore, "crate-store", env.str("CRATE_STORE", cfg.CrateStore), "Crate store backend (http, postgres)")
	fs.StringVar(&cfg.CrateAPIURL, "crate-api-url", env.str("CRATE_API_URL", cfg.CrateAPIURL), "Crate service base URL")
	fs.StringVar(&cfg.PostgresDSN, "postgres-dsn", env.str("POSTGRES_DSN", cfg.PostgresDSN), "PostgreSQL connection string")
	fs.StringVar(&cfg.JupiterAPIURL, "jupiter-api-url", env.str("JUPITER_API_URL", cfg.JupiterAPIURL), "Jupiter API base URL")
	fs.StringVar(&cfg.JupiterAPIKey, "jupiter-api-key", env.str("JUPITER_API_KEY", cfg.JupiterAPIKey), "Jupiter API key")
	fs.StringVar(&cfg.PlatformWallet, "platform-wallet", env.str("PLATFORM_WALLET", cfg.PlatformWallet), "Platform fee wallet")
	fs.Uint64Var(&cfg.PlatformFeeLamports, "platform-fee-lamports", env.uint64("PLATFORM_FEE_LAMPORTS", cfg.PlatformFeeLamports), "Platform fee in lamports")
	fs.Uint64Var(&cfg.CreatorFeeLamports, "creator-fee-lamports", env.uint64("CREATOR_FEE_LAMPORTS", cfg.CreatorFeeLamports), "Creator fee in lamports")
	fs.BoolVar(&cfg.ShareBlockhash, "share-blockhash", env.bool("SHARE_BLOCKHASH", cfg.ShareBlockhash), "Use one blockhash for all fee transfers")
	fs.DurationVar(&cfg.RequestTimeout, "request-timeout", env.duration("REQUEST_TIMEOUT", cfg.RequestTimeout), "Per-request pipeline timeout")
	fs.IntVar(&cfg.Concurrency, "concurrency", env.int("QUOTE_CONCURRENCY", cfg.Concurrency), "Max concurrent quote/build calls per request")
	fs.Float64Var(&cfg.RateLimit, "rate-limit", env.float64("RATE_LIMIT_RPS", cfg.RateLimit), "POST requests per second per client")
	fs.IntVar(&cfg.RateBurst, "rate-burst", env.int("RATE_LIMIT_BURST", cfg.RateBurst), "POST burst per client")
	fs.StringVar(&cfg.DefaultIcon, "default-icon", env.str("DEFAULT_ICON", cfg.DefaultIcon), "Icon for crates without one")
	fs.StringVar(&cfg.TablesFile, "config", env.str("CONFIG_FILE", cfg.TablesFile), "YAML file with currency and token tables")

	if err := env.err(); err != nil {
		return cfg, err
	}
	if err := fs.Parse(args); err != nil {
		return cfg, err
	}

	if cfg.TablesFile != "" {
		tables, err := LoadTables(cfg.TablesFile)
		if err != nil {
			return cfg, err
		}
		tables.apply(&cfg)
	}

	cfg.CrateStore = strings.ToLower(strings.TrimSpace(cfg.CrateStore))
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks the configuration for consistency.
func (c Config) Validate() error {
	if c.SolanaRPC == "" {
		return errors.New("solana rpc endpoint is required")
	}
	switch c.CrateStore {
	case StoreHTTP:
		if c.CrateAPIURL == "" {
			return errors.New("crate api url is required for the http crate store")
		}
	case StorePostgres:
		if c.PostgresDSN == "" {
			return errors.New("postgres dsn is required for the postgres crate store")
		}
	default:
		return fmt.Errorf("unknown crate store %q", c.CrateStore)
	}
	if c.JupiterAPIURL == "" {
		return errors.New("jupiter api url is required")
	}
	if err := solana.ValidateAddress(c.PlatformWallet); err != nil {
		return fmt.Errorf("platform wallet: %w", err)
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("request timeout must be positive, got %s", c.RequestTimeout)
	}
	if c.Concurrency <= 0 {
		return fmt.Errorf("concurrency must be positive, got %d", c.Concurrency)
	}
	if c.RateLimit <= 0 || c.RateBurst <= 0 {
		return errors.New("rate limit and burst must be positive")
	}
	if err := c.Currencies.Validate(); err != nil {
		return fmt.Errorf("currencies: %w", err)
	}
	for symbol, mint := range c.Tokens {
		if err := solana.ValidateAddress(mint); err != nil {
			return fmt.Errorf("token %s: %w", symbol, err)
		}
	}
	return nil
}

// LoadEnvFile loads variables from a dotenv file if it exists.
// Existing environment variables are not overridden.
func LoadEnvFile(path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		return // File doesn't exist, use system env vars
	}

	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.Trim(strings.TrimSpace(value), `"'`)

		if _, exists := os.LookupEnv(key); !exists {
			os.Setenv(key, value)
		}
	}
}

// envReader reads typed environment defaults and collects parse errors.
type envReader struct {
	errs []error
}

func (e *envReader) lookup(key string) (string, bool) {
	v, ok := os.LookupEnv(key)
	v = strings.TrimSpace(v)
	return v, ok && v != ""
}

func (e *envReader) str(key, def string) string {
	if v, ok := e.lookup(key); ok {
		return v
	}
	return def
}

func (e *envReader) uint64(key string, def uint64) uint64 {
	v, ok := e.lookup(key)
	if !ok {
		return def
	}
	n, err := strconv.ParseUint(v, 10, 64)
	if err != nil {
		e.errs = append(e.errs, fmt.Errorf("%s: %w", key, err))
		return def
	}
	return n
}

func (e *envReader) int(key string, def int) int {
	v, ok := e.lookup(key)
	if !ok {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		e.errs = append(e.errs, fmt.Errorf("%s: %w", key, err))
		return def
	}
	return n
}

func (e *envReader) float64(key string, def float64) float64 {
	v, ok := e.lookup(key)
	if !ok {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		e.errs = append(e.errs, fmt.Errorf("%s: %w", key, err))
		return def
	}
	return f
}

func (e *envReader) bool(key string, def bool) bool {
	v, ok := e.lookup(key)
	if !ok {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		e.errs = append(e.errs, fmt.Errorf("%s: %w", key, err))
		return def
	}
	return b
}

func (e *envReader) duration(key string, def time.Duration) time.Duration {
	v, ok := e.lookup(key)
	if !ok {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		e.errs = append(e.errs, fmt.Errorf("%s: %w", key, err))
		return def
	}
	return d
}

func (e *envReader) err() error {
	return errors.Join(e.errs...)
}
