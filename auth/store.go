package auth

import (
	"context"
	"sync"

	"github.com/praktik-cli/praktik/db"
	"github.com/rs/zerolog/log"
)

// Store is the single authoritative holder of the current token pair.
// Reads are synchronous and side-effect free; SetTokens and ClearTokens
// overwrite both values atomically and persist them. When the storage
// medium is unavailable the store degrades to memory-only (the session is
// lost on restart) rather than failing.
type Store struct {
	mu      sync.RWMutex
	access  string
	refresh string

	repo       db.TokenRepository
	persistent bool
}

// NewStore creates a Store backed by the given repository and loads any
// previously persisted token pair. A nil or failing repository yields a
// working memory-only store.
func NewStore(ctx context.Context, repo db.TokenRepository) *Store {
	s := &Store{repo: repo, persistent: repo != nil}
	if repo == nil {
		return s
	}
	token, err := repo.Get(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("Token storage unavailable; continuing memory-only")
		s.persistent = false
		return s
	}
	if token != nil {
		s.access = token.AccessToken
		s.refresh = token.RefreshToken
	}
	return s
}

// SetTokens overwrites both values atomically and persists them.
func (s *Store) SetTokens(access, refresh string) {
	s.mu.Lock()
	s.access = access
	s.refresh = refresh
	s.mu.Unlock()

	s.persist(func(ctx context.Context) error {
		return s.repo.Upsert(ctx, &db.Token{AccessToken: access, RefreshToken: refresh})
	})
}

// ClearTokens atomically removes both values from memory and persistence.
func (s *Store) ClearTokens() {
	s.mu.Lock()
	s.access = ""
	s.refresh = ""
	s.mu.Unlock()

	s.persist(func(ctx context.Context) error {
		return s.repo.Clear(ctx)
	})
}

// GetAccessToken returns the current access token, or "" if absent.
func (s *Store) GetAccessToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.access
}

// GetRefreshToken returns the current refresh token, or "" if absent.
func (s *Store) GetRefreshToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.refresh
}

// Persistent reports whether the store still writes through to storage.
func (s *Store) Persistent() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.persistent
}

// persist runs a storage operation; a failure downgrades the store to
// memory-only instead of surfacing an error.
func (s *Store) persist(op func(ctx context.Context) error) {
	s.mu.RLock()
	active := s.persistent
	s.mu.RUnlock()
	if !active {
		return
	}
	if err := op(context.Background()); err != nil {
		log.Warn().Err(err).Msg("Token storage write failed; continuing memory-only")
		s.mu.Lock()
		s.persistent = false
		s.mu.Unlock()
	}
}
