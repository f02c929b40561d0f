package cmd

import (
	"context"
	"errors"
	"os"

	"github.com/praktik-cli/praktik/auth"
	"github.com/praktik-cli/praktik/client"
	"github.com/praktik-cli/praktik/db"
	"github.com/praktik-cli/praktik/pkg/apierr"
	"github.com/praktik-cli/praktik/progress"
	"github.com/praktik-cli/praktik/rewards"
	"github.com/spf13/cobra"
)

const defaultAPIURL = "http://localhost:8000/api/v1"

// apiBaseURL returns the backend base URL, overridable via PRAKTIK_API_URL.
func apiBaseURL() string {
	if url := os.Getenv("PRAKTIK_API_URL"); url != "" {
		return url
	}
	return defaultAPIURL
}

// session bundles the wired components for one command invocation.
type session struct {
	store   *auth.Store
	client  *client.Client
	service *auth.Service
	tracker *progress.Tracker
	ledger  *rewards.Ledger
	user    client.User
}

// newAnonSession wires the token store, gateway and session service without
// contacting the server. Used by login, which has no session yet.
func newAnonSession(ctx context.Context) (*auth.Store, *client.Client, *auth.Service) {
	store := auth.NewStore(ctx, db.NewTokenRepository(db.Db))
	cli := client.New(apiBaseURL(), store)
	service := auth.NewService(store, cli, db.NewSnapshotRepository(db.Db))
	return store, cli, service
}

// newSession wires all components and hydrates the user's progress from the
// server, which is the single source of truth after any restart.
func newSession(ctx context.Context) (*session, error) {
	store, cli, service := newAnonSession(ctx)

	state, err := service.InitializeAuth(ctx)
	if err != nil {
		return nil, err
	}

	tracker := progress.NewTracker(cli, progress.NewState(state.Progress, state.Claimed, state.Application))
	ledger := rewards.NewLedger(cli, tracker, db.NewPrizeRepository(db.Db))

	return &session{
		store:   store,
		client:  cli,
		service: service,
		tracker: tracker,
		ledger:  ledger,
		user:    state.User,
	}, nil
}

// resolveStage answers a navigation request before any server call: the
// requested stage is granted only if the authoritative flags allow it,
// otherwise the user is pointed at the furthest reachable one.
func resolveStage(cmd *cobra.Command, s *session, requested progress.Stage) bool {
	granted := progress.Resolve(requested, s.tracker.State())
	if granted == requested {
		return true
	}
	cmd.PrintErrf("That step is locked. Your current step is '%s'.\n", granted)
	return false
}

// printAPIError reports a failed operation to the user following the error
// taxonomy: auth failures end the session, validation details are surfaced
// verbatim, everything else gets a generic retry message.
func printAPIError(cmd *cobra.Command, err error) {
	if errors.Is(err, auth.ErrNotAuthenticated) {
		cmd.PrintErrln("Error: You are not logged in. Please run 'praktik login' first.")
		return
	}

	var apiErr *apierr.Error
	if !errors.As(err, &apiErr) {
		cmd.PrintErrln("Error:", err.Error())
		return
	}

	switch apiErr.Type {
	case apierr.Auth:
		cmd.PrintErrln("Error: Session expired. Please run 'praktik login' again.")
	case apierr.Transport:
		cmd.PrintErrln("Error: Network error. Please try again.")
	case apierr.Server:
		cmd.PrintErrln("Error: Server error. Please try again later.")
	default:
		cmd.PrintErrln("Error:", apiErr.Detail)
	}
}
