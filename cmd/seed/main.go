// Package main loads crate definitions into PostgreSQL for the postgres crate store.
//
// Usage:
//
//	seed -postgres-dsn postgres://... -file crates.json [-tables tables.yaml]
//
// The file holds a JSON array of crates in the crate service format.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"log"
	"os"
	"time"

	"crate-blink/internal/config"
	"crate-blink/internal/domain"
	"crate-blink/internal/storage"
	"crate-blink/internal/storage/migrations"
	pgstore "crate-blink/internal/storage/postgres"
)

func main() {
	config.LoadEnvFile(".env")

	postgresDSN := flag.String("postgres-dsn", os.Getenv("POSTGRES_DSN"), "PostgreSQL connection string")
	file := flag.String("file", "", "JSON file with crates to insert")
	tables := flag.String("tables", os.Getenv("CONFIG_FILE"), "Optional YAML tables file with tokens to register")
	timeout := flag.Duration("timeout", time.Minute, "Overall timeout")
	flag.Parse()

	logger := log.New(os.Stdout, "[seed] ", log.LstdFlags|log.Lshortfile)

	if *postgresDSN == "" {
		logger.Fatal("--postgres-dsn is required")
	}
	if *file == "" {
		logger.Fatal("--file is required")
	}

	data, err := os.ReadFile(*file)
	if err != nil {
		logger.Fatalf("Failed to read crates: %v", err)
	}
	var crates []*domain.Crate
	if err := json.Unmarshal(data, &crates); err != nil {
		logger.Fatalf("Failed to decode crates: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	pool, err := pgstore.NewPool(ctx, *postgresDSN)
	if err != nil {
		logger.Fatalf("Failed to connect to postgres: %v", err)
	}
	defer pool.Close()

	applied, err := migrations.Apply(ctx, pool, logger)
	if err != nil {
		logger.Fatalf("Failed to migrate: %v", err)
	}
	logger.Printf("Schema up to date (%d new migrations)", len(applied))

	tokens := config.DefaultTokens()
	if *tables != "" {
		t, err := config.LoadTables(*tables)
		if err != nil {
			logger.Fatalf("Failed to load tables: %v", err)
		}
		for symbol, mint := range t.Tokens {
			tokens[symbol] = mint
		}
	}

	registry := pgstore.NewTokenRegistry(pool)
	for symbol, mint := range tokens {
		if err := registry.Upsert(ctx, symbol, mint); err != nil {
			logger.Fatalf("Failed to register token %s: %v", symbol, err)
		}
	}
	logger.Printf("Registered %d tokens", len(tokens))

	store := pgstore.NewCrateStore(pool)
	inserted, skipped := 0, 0
	for _, c := range crates {
		err := store.Insert(ctx, c)
		switch {
		case err == nil:
			inserted++
		case errors.Is(err, storage.ErrDuplicateKey):
			logger.Printf("Crate %s already exists, skipping", c.ID)
			skipped++
		default:
			logger.Fatalf("Failed to insert crate %s: %v", c.ID, err)
		}
	}

	logger.Printf("Done: %d inserted, %d skipped", inserted, skipped)
}
