package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/praktik-cli/praktik/client"
	"github.com/praktik-cli/praktik/db"
	"github.com/praktik-cli/praktik/pkg/apierr"
	"github.com/praktik-cli/praktik/pkg/pool"
	"github.com/rs/zerolog/log"
)

// ErrNotAuthenticated is returned by InitializeAuth when no session can be
// established and the user must log in again.
var ErrNotAuthenticated = errors.New("not authenticated; please run 'praktik login' first")

// Service bootstraps and tears down the authenticated session. Only the
// auth flags survive a restart; the full progress is re-fetched from the
// server, which is the single source of truth.
type Service struct {
	Store     *Store
	Client    *client.Client
	Snapshots db.SnapshotRepository
}

// Session is the server-hydrated state of the current user.
type Session struct {
	User        client.User
	Progress    client.UserProgress
	Claimed     []client.ClaimedPrize
	Application *client.Application
}

// NewService is the constructor for the session service.
func NewService(store *Store, cli *client.Client, snapshots db.SnapshotRepository) *Service {
	return &Service{Store: store, Client: cli, Snapshots: snapshots}
}

// InitializeAuth rebuilds the session from the persisted token pair. The
// profile, progress, claimed prizes and application are fetched together;
// an expired access token triggers at most one refresh across all four
// calls. Any auth failure ends the session and clears local state.
func (s *Service) InitializeAuth(ctx context.Context) (*Session, error) {
	if s.Store.GetAccessToken() == "" && s.Store.GetRefreshToken() == "" {
		s.clearSnapshot(ctx)
		return nil, ErrNotAuthenticated
	}

	var session Session
	tasks := []pool.Task{
		func(ctx context.Context) error {
			user, err := s.Client.FetchMe(ctx)
			if err != nil {
				return err
			}
			session.User = *user
			return nil
		},
		func(ctx context.Context) error {
			progress, err := s.Client.FetchProgress(ctx)
			if err != nil {
				return err
			}
			session.Progress = *progress
			return nil
		},
		func(ctx context.Context) error {
			claimed, err := s.Client.FetchClaimedPrizes(ctx)
			if err != nil {
				return err
			}
			session.Claimed = claimed
			return nil
		},
		func(ctx context.Context) error {
			application, err := s.Client.FetchMyApplication(ctx)
			if err != nil {
				return err
			}
			session.Application = application
			return nil
		},
	}

	if errs := pool.Run(ctx, tasks, len(tasks)); len(errs) > 0 {
		for _, err := range errs {
			if apierr.IsType(err, apierr.Auth) {
				log.Info().Msg("Session could not be recovered; logging out")
				s.Logout(ctx)
				return nil, fmt.Errorf("%w: %s", ErrNotAuthenticated, err)
			}
		}
		return nil, errs[0]
	}

	s.persistSnapshot(ctx, session.User.IsAdmin)
	log.Info().Int("points", session.Progress.Points).Msg("Session hydrated from server")
	return &session, nil
}

// Logout clears the token pair and the persisted auth flags.
func (s *Service) Logout(ctx context.Context) {
	s.Store.ClearTokens()
	s.clearSnapshot(ctx)
}

func (s *Service) persistSnapshot(ctx context.Context, isAdmin bool) {
	if s.Snapshots == nil {
		return
	}
	snapshot := &db.AuthSnapshot{IsAuthenticated: true, IsAdmin: isAdmin}
	if err := s.Snapshots.Upsert(ctx, snapshot); err != nil {
		log.Warn().Err(err).Msg("Failed to persist auth snapshot")
	}
}

func (s *Service) clearSnapshot(ctx context.Context) {
	if s.Snapshots == nil {
		return
	}
	if err := s.Snapshots.Clear(ctx); err != nil {
		log.Warn().Err(err).Msg("Failed to clear auth snapshot")
	}
}
