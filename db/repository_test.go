package db_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/praktik-cli/praktik/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) {
	t.Helper()
	db.Path = filepath.Join(t.TempDir(), "praktik.db")
	require.NoError(t, db.InitDB())
	t.Cleanup(func() {
		assert.NoError(t, db.CloseDB())
	})
}

func TestTokenRepository_Roundtrip(t *testing.T) {
	setupTestDB(t)
	ctx := context.Background()
	repo := db.NewTokenRepository(db.Db)

	token, err := repo.Get(ctx)
	require.NoError(t, err)
	assert.Nil(t, token, "empty database should have no token record")

	require.NoError(t, repo.Upsert(ctx, &db.Token{AccessToken: "a1", RefreshToken: "r1"}))
	token, err = repo.Get(ctx)
	require.NoError(t, err)
	require.NotNil(t, token)
	assert.Equal(t, "a1", token.AccessToken)
	assert.Equal(t, "r1", token.RefreshToken)

	// A second upsert rotates the single record instead of adding one.
	require.NoError(t, repo.Upsert(ctx, &db.Token{AccessToken: "a2", RefreshToken: "r2"}))
	token, err = repo.Get(ctx)
	require.NoError(t, err)
	require.NotNil(t, token)
	assert.Equal(t, "a2", token.AccessToken)
	assert.Equal(t, "r2", token.RefreshToken)

	require.NoError(t, repo.Clear(ctx))
	token, err = repo.Get(ctx)
	require.NoError(t, err)
	assert.Nil(t, token)
}

func TestSnapshotRepository_Roundtrip(t *testing.T) {
	setupTestDB(t)
	ctx := context.Background()
	repo := db.NewSnapshotRepository(db.Db)

	snapshot, err := repo.Get(ctx)
	require.NoError(t, err)
	assert.Nil(t, snapshot)

	require.NoError(t, repo.Upsert(ctx, &db.AuthSnapshot{IsAuthenticated: true, IsAdmin: false}))
	snapshot, err = repo.Get(ctx)
	require.NoError(t, err)
	require.NotNil(t, snapshot)
	assert.True(t, snapshot.IsAuthenticated)
	assert.False(t, snapshot.IsAdmin)

	require.NoError(t, repo.Upsert(ctx, &db.AuthSnapshot{IsAuthenticated: true, IsAdmin: true}))
	snapshot, err = repo.Get(ctx)
	require.NoError(t, err)
	require.NotNil(t, snapshot)
	assert.True(t, snapshot.IsAdmin)

	require.NoError(t, repo.Clear(ctx))
	snapshot, err = repo.Get(ctx)
	require.NoError(t, err)
	assert.Nil(t, snapshot)
}

func TestPrizeRepository_ReplaceAllAndList(t *testing.T) {
	setupTestDB(t)
	ctx := context.Background()
	repo := db.NewPrizeRepository(db.Db)

	prizes := []db.Prize{
		{ID: 2, Name: "Hoodie", Points: 50, Quantity: 3},
		{ID: 1, Name: "Sticker pack", Points: 10, Quantity: 100},
	}
	require.NoError(t, repo.ReplaceAll(ctx, prizes))

	listed, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, listed, 2)
	assert.Equal(t, "Sticker pack", listed[0].Name, "catalogue should be ordered by cost")
	assert.Equal(t, "Hoodie", listed[1].Name)

	// ReplaceAll swaps the whole cache, never merges.
	require.NoError(t, repo.ReplaceAll(ctx, []db.Prize{{ID: 7, Name: "Mug", Points: 25, Quantity: 1}}))
	listed, err = repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, 7, listed[0].ID)
}

func TestPrizeRepository_PutAndGetByID(t *testing.T) {
	setupTestDB(t)
	ctx := context.Background()
	repo := db.NewPrizeRepository(db.Db)

	prize, err := repo.GetByID(ctx, 42)
	require.NoError(t, err)
	assert.Nil(t, prize)

	require.NoError(t, repo.Put(ctx, db.Prize{ID: 42, Name: "Backpack", Points: 100, Quantity: 2}))
	prize, err = repo.GetByID(ctx, 42)
	require.NoError(t, err)
	require.NotNil(t, prize)
	assert.Equal(t, 2, prize.Quantity)

	prize.Quantity = 1
	require.NoError(t, repo.Put(ctx, *prize))
	prize, err = repo.GetByID(ctx, 42)
	require.NoError(t, err)
	require.NotNil(t, prize)
	assert.Equal(t, 1, prize.Quantity)
}
