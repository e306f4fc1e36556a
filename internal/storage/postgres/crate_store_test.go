package postgres

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crate-blink/internal/domain"
	"crate-blink/internal/storage"
)

func TestCrateStore_InsertAndGetByID(t *testing.T) {
	pool := setupTestDB(t)

	ctx := context.Background()
	store := NewCrateStore(pool)

	crate := &domain.Crate{
		ID:          "pg-crate-1",
		Name:        "Solana Majors",
		Description: "Blue chips",
		Icon:        "https://example.test/icon.png",
		Tokens: []domain.CrateToken{
			{Symbol: "JUP", ID: "jupiter", Quantity: decimal.RequireFromString("50")},
			{Symbol: "PYTH", ID: "pyth-network", Quantity: decimal.RequireFromString("30.5")},
			{Symbol: "RAY", ID: "raydium", Quantity: decimal.RequireFromString("19.5")},
		},
		Creator: &domain.CrateCreator{WalletAddress: "CreatorWallet111"},
	}

	require.NoError(t, store.Insert(ctx, crate))

	got, err := store.GetByID(ctx, "pg-crate-1")
	require.NoError(t, err)

	assert.Equal(t, crate.Name, got.Name)
	assert.Equal(t, crate.Description, got.Description)
	assert.Equal(t, crate.Icon, got.Icon)
	assert.Equal(t, "CreatorWallet111", got.CreatorWallet())
	require.Len(t, got.Tokens, 3)
	for i := range crate.Tokens {
		assert.Equal(t, crate.Tokens[i].Symbol, got.Tokens[i].Symbol)
		assert.Equal(t, crate.Tokens[i].ID, got.Tokens[i].ID)
		assert.True(t, crate.Tokens[i].Quantity.Equal(got.Tokens[i].Quantity),
			"quantity %s != %s", crate.Tokens[i].Quantity, got.Tokens[i].Quantity)
	}
}

func TestCrateStore_NoCreator(t *testing.T) {
	pool := setupTestDB(t)

	ctx := context.Background()
	store := NewCrateStore(pool)

	require.NoError(t, store.Insert(ctx, &domain.Crate{ID: "pg-no-creator", Name: "Solo"}))

	got, err := store.GetByID(ctx, "pg-no-creator")
	require.NoError(t, err)
	assert.Nil(t, got.Creator)
	assert.Empty(t, got.Tokens)
}

func TestCrateStore_Errors(t *testing.T) {
	pool := setupTestDB(t)

	ctx := context.Background()
	store := NewCrateStore(pool)

	_, err := store.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, storage.ErrNotFound)

	require.NoError(t, store.Insert(ctx, &domain.Crate{ID: "pg-dup", Name: "A"}))
	assert.ErrorIs(t, store.Insert(ctx, &domain.Crate{ID: "pg-dup", Name: "B"}), storage.ErrDuplicateKey)

	assert.ErrorIs(t, store.Insert(ctx, nil), storage.ErrInvalidInput)
}

func TestTokenRegistry_UpsertAndResolve(t *testing.T) {
	pool := setupTestDB(t)

	ctx := context.Background()
	reg := NewTokenRegistry(pool)

	_, err := reg.ResolveMint(ctx, "BONK")
	assert.ErrorIs(t, err, storage.ErrNotFound)

	require.NoError(t, reg.Upsert(ctx, "bonk", "OldMint"))
	require.NoError(t, reg.Upsert(ctx, "BONK", "DezXAZ8z7PnrnRJjz3wXBoRgixCa6xjnB7YaB1pPB263"))

	mint, err := reg.ResolveMint(ctx, " Bonk ")
	require.NoError(t, err)
	assert.Equal(t, "DezXAZ8z7PnrnRJjz3wXBoRgixCa6xjnB7YaB1pPB263", mint)

	assert.ErrorIs(t, reg.Upsert(ctx, "", "x"), storage.ErrInvalidInput)
}

func TestTranslate(t *testing.T) {
	assert.NoError(t, translate("op", nil))
	assert.ErrorIs(t, translate("op", pgx.ErrNoRows), storage.ErrNotFound)
	assert.ErrorIs(t, translate("op", &pgconn.PgError{Code: "23505"}), storage.ErrDuplicateKey)

	err := translate("get crate", errors.New("conn reset"))
	assert.EqualError(t, err, "get crate: conn reset")
}
