package auth_test

import (
	"context"
	"errors"
	"testing"

	"github.com/praktik-cli/praktik/auth"
	"github.com/praktik-cli/praktik/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memTokenRepo is an in-memory db.TokenRepository for store tests.
type memTokenRepo struct {
	token     *db.Token
	getErr    error
	upsertErr error
}

func (m *memTokenRepo) Get(ctx context.Context) (*db.Token, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.token, nil
}

func (m *memTokenRepo) Upsert(ctx context.Context, token *db.Token) error {
	if m.upsertErr != nil {
		return m.upsertErr
	}
	m.token = &db.Token{AccessToken: token.AccessToken, RefreshToken: token.RefreshToken}
	return nil
}

func (m *memTokenRepo) Clear(ctx context.Context) error {
	m.token = nil
	return nil
}

func TestStore_LoadsPersistedPair(t *testing.T) {
	repo := &memTokenRepo{token: &db.Token{AccessToken: "a1", RefreshToken: "r1"}}

	store := auth.NewStore(context.Background(), repo)

	assert.Equal(t, "a1", store.GetAccessToken())
	assert.Equal(t, "r1", store.GetRefreshToken())
	assert.True(t, store.Persistent())
}

func TestStore_SetTokensOverwritesBothAndPersists(t *testing.T) {
	repo := &memTokenRepo{}
	store := auth.NewStore(context.Background(), repo)

	store.SetTokens("a2", "r2")

	assert.Equal(t, "a2", store.GetAccessToken())
	assert.Equal(t, "r2", store.GetRefreshToken())
	require.NotNil(t, repo.token)
	assert.Equal(t, "a2", repo.token.AccessToken)
	assert.Equal(t, "r2", repo.token.RefreshToken)
}

func TestStore_ClearTokensRemovesBoth(t *testing.T) {
	repo := &memTokenRepo{token: &db.Token{AccessToken: "a1", RefreshToken: "r1"}}
	store := auth.NewStore(context.Background(), repo)

	store.ClearTokens()

	assert.Empty(t, store.GetAccessToken())
	assert.Empty(t, store.GetRefreshToken())
	assert.Nil(t, repo.token)
}

func TestStore_DegradesToMemoryOnLoadFailure(t *testing.T) {
	repo := &memTokenRepo{getErr: errors.New("disk gone")}

	store := auth.NewStore(context.Background(), repo)

	assert.False(t, store.Persistent())

	// The store still works, just without persistence.
	store.SetTokens("a", "r")
	assert.Equal(t, "a", store.GetAccessToken())
	assert.Nil(t, repo.token, "degraded store must not write through")
}

func TestStore_DegradesToMemoryOnWriteFailure(t *testing.T) {
	repo := &memTokenRepo{upsertErr: errors.New("disk full")}
	store := auth.NewStore(context.Background(), repo)
	require.True(t, store.Persistent())

	store.SetTokens("a", "r")

	assert.Equal(t, "a", store.GetAccessToken(), "in-memory pair survives the failed write")
	assert.False(t, store.Persistent())
}

func TestStore_NilRepositoryIsMemoryOnly(t *testing.T) {
	store := auth.NewStore(context.Background(), nil)

	store.SetTokens("a", "r")

	assert.Equal(t, "a", store.GetAccessToken())
	assert.Equal(t, "r", store.GetRefreshToken())
	assert.False(t, store.Persistent())
}
