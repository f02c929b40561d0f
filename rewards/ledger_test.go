package rewards_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/praktik-cli/praktik/client"
	"github.com/praktik-cli/praktik/db"
	"github.com/praktik-cli/praktik/pkg/apierr"
	"github.com/praktik-cli/praktik/progress"
	"github.com/praktik-cli/praktik/rewards"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticStore struct{ access, refresh string }

func (s *staticStore) GetAccessToken() string  { return s.access }
func (s *staticStore) GetRefreshToken() string { return s.refresh }
func (s *staticStore) SetTokens(a, r string)   { s.access, s.refresh = a, r }
func (s *staticStore) ClearTokens()            { s.access, s.refresh = "", "" }

// memPrizeRepo is an in-memory db.PrizeRepository for ledger tests.
type memPrizeRepo struct {
	prizes map[int]db.Prize
}

func newMemPrizeRepo() *memPrizeRepo {
	return &memPrizeRepo{prizes: make(map[int]db.Prize)}
}

func (m *memPrizeRepo) Put(ctx context.Context, prize db.Prize) error {
	m.prizes[prize.ID] = prize
	return nil
}

func (m *memPrizeRepo) ReplaceAll(ctx context.Context, prizes []db.Prize) error {
	m.prizes = make(map[int]db.Prize, len(prizes))
	for _, p := range prizes {
		m.prizes[p.ID] = p
	}
	return nil
}

func (m *memPrizeRepo) List(ctx context.Context) ([]db.Prize, error) {
	out := make([]db.Prize, 0, len(m.prizes))
	for _, p := range m.prizes {
		out = append(out, p)
	}
	return out, nil
}

func (m *memPrizeRepo) GetByID(ctx context.Context, id int) (*db.Prize, error) {
	p, ok := m.prizes[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (m *memPrizeRepo) Clear(ctx context.Context) error {
	m.prizes = make(map[int]db.Prize)
	return nil
}

func respondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func newLedger(serverURL string, state progress.State, cache db.PrizeRepository) (*rewards.Ledger, *progress.Tracker) {
	cli := client.New(serverURL, &staticStore{access: "valid", refresh: "valid"})
	tracker := progress.NewTracker(cli, state)
	return rewards.NewLedger(cli, tracker, cache), tracker
}

func TestRefreshCatalogue_CachesWithoutTouchingBalance(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/prizes", r.URL.Path)
		respondJSON(w, http.StatusOK, []map[string]interface{}{
			{"id": 1, "name": "Sticker pack", "points": 10, "quantity": 100},
			{"id": 2, "name": "Hoodie", "points": 50, "quantity": 3, "description": "Warm"},
		})
	}))
	defer server.Close()

	cache := newMemPrizeRepo()
	ledger, tracker := newLedger(server.URL, progress.State{Authenticated: true, Points: 40}, cache)

	prizes, err := ledger.RefreshCatalogue(context.Background())

	require.NoError(t, err)
	assert.Len(t, prizes, 2)
	assert.Len(t, cache.prizes, 2)
	assert.Equal(t, 40, tracker.Points(), "listing prizes never changes the balance")

	cached, err := ledger.CachedCatalogue(context.Background())
	require.NoError(t, err)
	assert.Len(t, cached, 2)
}

func TestClaim_SetsBalanceToServerRemainder(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/prizes/2/claim", r.URL.Path)
		respondJSON(w, http.StatusOK, map[string]interface{}{
			"message":          "Successfully claimed 'Hoodie'",
			"remaining_points": 17,
			"prize_name":       "Hoodie",
		})
	}))
	defer server.Close()

	cache := newMemPrizeRepo()
	require.NoError(t, cache.Put(context.Background(), db.Prize{ID: 2, Name: "Hoodie", Points: 50, Quantity: 3}))
	ledger, tracker := newLedger(server.URL, progress.State{Authenticated: true, Points: 67}, cache)

	res, err := ledger.Claim(context.Background(), 2)

	require.NoError(t, err)
	assert.Equal(t, 17, res.RemainingPoints)
	assert.Equal(t, 17, tracker.Points(), "balance is overwritten with the remainder, not decremented locally")
	assert.True(t, tracker.HasClaimed(2))

	cached, err := cache.GetByID(context.Background(), 2)
	require.NoError(t, err)
	require.NotNil(t, cached)
	assert.Equal(t, 2, cached.Quantity, "cached stock reflects the confirmed claim")
}

func TestClaim_AlreadyClaimedBlockedLocally(t *testing.T) {
	var calls int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&calls, 1)
	}))
	defer server.Close()

	ledger, _ := newLedger(server.URL, progress.State{
		Authenticated: true, Points: 100,
		ClaimedPrizeIDs: map[int]struct{}{2: {}},
	}, newMemPrizeRepo())

	_, err := ledger.Claim(context.Background(), 2)

	require.Error(t, err)
	assert.True(t, apierr.IsType(err, apierr.Validation))
	assert.Equal(t, "Prize already claimed", err.Error())
	assert.Equal(t, int64(0), atomic.LoadInt64(&calls))
}

func TestClaim_InsufficientPointsBlockedLocally(t *testing.T) {
	var calls int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&calls, 1)
	}))
	defer server.Close()

	cache := newMemPrizeRepo()
	require.NoError(t, cache.Put(context.Background(), db.Prize{ID: 2, Name: "Hoodie", Points: 50, Quantity: 3}))
	ledger, tracker := newLedger(server.URL, progress.State{Authenticated: true, Points: 20}, cache)

	_, err := ledger.Claim(context.Background(), 2)

	require.Error(t, err)
	assert.True(t, apierr.IsType(err, apierr.Validation))
	assert.Equal(t, "Not enough points. Need 50, have 20", err.Error())
	assert.Equal(t, int64(0), atomic.LoadInt64(&calls))
	assert.Equal(t, 20, tracker.Points())
}

func TestClaim_OutOfStockBlockedLocally(t *testing.T) {
	var calls int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&calls, 1)
	}))
	defer server.Close()

	cache := newMemPrizeRepo()
	require.NoError(t, cache.Put(context.Background(), db.Prize{ID: 2, Name: "Hoodie", Points: 50, Quantity: 0}))
	ledger, _ := newLedger(server.URL, progress.State{Authenticated: true, Points: 100}, cache)

	_, err := ledger.Claim(context.Background(), 2)

	require.Error(t, err)
	assert.Equal(t, "Prize is out of stock", err.Error())
	assert.Equal(t, int64(0), atomic.LoadInt64(&calls))
}

func TestClaim_ServerRejectionMutatesNothing(t *testing.T) {
	// The catalogue looked fine locally but another user claimed the last
	// unit first. The server's verdict wins and nothing changes locally.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusBadRequest, map[string]string{"detail": "Prize is out of stock"})
	}))
	defer server.Close()

	cache := newMemPrizeRepo()
	require.NoError(t, cache.Put(context.Background(), db.Prize{ID: 2, Name: "Hoodie", Points: 50, Quantity: 1}))
	ledger, tracker := newLedger(server.URL, progress.State{Authenticated: true, Points: 100}, cache)

	_, err := ledger.Claim(context.Background(), 2)

	require.Error(t, err)
	assert.True(t, apierr.IsType(err, apierr.Validation))
	assert.Equal(t, "Prize is out of stock", err.Error())
	assert.Equal(t, 100, tracker.Points())
	assert.False(t, tracker.HasClaimed(2))

	cached, cacheErr := cache.GetByID(context.Background(), 2)
	require.NoError(t, cacheErr)
	require.NotNil(t, cached)
	assert.Equal(t, 1, cached.Quantity, "a rejected claim must not touch the cached stock")
}

func TestClaim_UncachedPrizeGoesStraightToServer(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]interface{}{
			"message":          "Successfully claimed 'Mystery box'",
			"remaining_points": 5,
			"prize_name":       "Mystery box",
		})
	}))
	defer server.Close()

	ledger, tracker := newLedger(server.URL, progress.State{Authenticated: true, Points: 30}, nil)

	res, err := ledger.Claim(context.Background(), 9)

	require.NoError(t, err)
	assert.Equal(t, "Mystery box", res.PrizeName)
	assert.Equal(t, 5, tracker.Points())
	assert.True(t, tracker.HasClaimed(9))
}
