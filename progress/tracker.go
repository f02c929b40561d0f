package progress

import (
	"context"
	"io"
	"sync"

	"github.com/praktik-cli/praktik/client"
	"github.com/praktik-cli/praktik/pkg/apierr"
	"github.com/rs/zerolog/log"
)

// State holds the authoritative per-user flags and balance. It is mutated
// only on confirmed server responses, never speculatively.
type State struct {
	Authenticated        bool
	Points               int
	CompletedTest        bool
	TestResult           string // "" while absent
	CompletedGame        bool
	AppliedForInternship bool
	ClaimedPrizeIDs      map[int]struct{}
}

// NewState builds the in-memory state from server-hydrated values.
func NewState(p client.UserProgress, claimed []client.ClaimedPrize, application *client.Application) State {
	s := State{
		Authenticated:        true,
		Points:               p.Points,
		CompletedTest:        p.CompletedTest,
		CompletedGame:        p.CompletedGame,
		AppliedForInternship: application != nil,
		ClaimedPrizeIDs:      make(map[int]struct{}, len(claimed)),
	}
	if p.TestResult != nil {
		s.TestResult = *p.TestResult
	}
	for _, c := range claimed {
		s.ClaimedPrizeIDs[c.PrizeID] = struct{}{}
	}
	return s
}

// Tracker gates the user's position in the task sequence. The guards mirror
// the server-side checks so invalid transitions are blocked before a call
// is made, but every state change waits for the server's confirmation and
// takes the server-reported totals verbatim.
type Tracker struct {
	mu    sync.Mutex
	cli   *client.Client
	state State
}

// NewTracker creates a Tracker around server-hydrated state.
func NewTracker(cli *client.Client, state State) *Tracker {
	if state.ClaimedPrizeIDs == nil {
		state.ClaimedPrizeIDs = make(map[int]struct{})
	}
	return &Tracker{cli: cli, state: state}
}

// State returns a copy of the current state.
func (t *Tracker) State() State {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.snapshot()
}

// Stage returns the furthest reachable stage for the current state.
func (t *Tracker) Stage() Stage {
	return FurthestStage(t.State())
}

// CompleteTest reports the quiz result and applies the server-confirmed
// transition. A second call is blocked locally; the flags and points stay
// untouched on any failure.
func (t *Tracker) CompleteTest(ctx context.Context, result string) (*client.TestCompleteResult, error) {
	t.mu.Lock()
	if t.state.CompletedTest {
		t.mu.Unlock()
		return nil, apierr.New(apierr.Validation, "Test already completed", nil)
	}
	t.mu.Unlock()

	res, err := t.cli.CompleteTest(ctx, result)
	if err != nil {
		return nil, err
	}

	t.mu.Lock()
	t.state.CompletedTest = true
	t.state.TestResult = res.Result
	t.state.Points = res.TotalPoints
	t.mu.Unlock()
	log.Info().Str("result", res.Result).Int("points", res.TotalPoints).Msg("Test completed")
	return res, nil
}

// SkipTest marks the quiz done without a result and without points.
func (t *Tracker) SkipTest(ctx context.Context) error {
	t.mu.Lock()
	if t.state.CompletedTest {
		t.mu.Unlock()
		return apierr.New(apierr.Validation, "Test already completed", nil)
	}
	t.mu.Unlock()

	if err := t.cli.SkipTest(ctx); err != nil {
		return err
	}

	t.mu.Lock()
	t.state.CompletedTest = true
	t.mu.Unlock()
	log.Info().Msg("Test skipped")
	return nil
}

// SetDirection chooses a direction manually. Valid only after a skipped
// quiz while no result is set.
func (t *Tracker) SetDirection(ctx context.Context, direction string) error {
	t.mu.Lock()
	switch {
	case !t.state.CompletedTest:
		t.mu.Unlock()
		return apierr.New(apierr.Validation, "Complete or skip the test first", nil)
	case t.state.TestResult != "":
		t.mu.Unlock()
		return apierr.New(apierr.Validation, "Direction already set", nil)
	}
	t.mu.Unlock()

	if err := t.cli.SetDirection(ctx, direction); err != nil {
		return err
	}

	t.mu.Lock()
	t.state.TestResult = direction
	t.mu.Unlock()
	log.Info().Str("direction", direction).Msg("Direction set")
	return nil
}

// CompleteGame reports a finished mini-game. The award is computed by the
// server; the local balance is overwritten with the returned total, never
// derived locally.
func (t *Tracker) CompleteGame(ctx context.Context, gameType string, score int) (*client.GameCompleteResult, error) {
	t.mu.Lock()
	switch {
	case !t.state.CompletedTest:
		t.mu.Unlock()
		return nil, apierr.New(apierr.Validation, "Complete or skip the test first", nil)
	case t.state.CompletedGame:
		t.mu.Unlock()
		return nil, apierr.New(apierr.Validation, "Game already completed", nil)
	}
	t.mu.Unlock()

	res, err := t.cli.CompleteGame(ctx, gameType, score)
	if err != nil {
		return nil, err
	}

	t.mu.Lock()
	t.state.CompletedGame = true
	t.state.Points = res.TotalPoints
	t.mu.Unlock()
	log.Info().Int("earned", res.PointsEarned).Int("points", res.TotalPoints).Msg("Game completed")
	return res, nil
}

// SubmitApplication sends the internship application. Valid only once; a
// later attempt is blocked and the existing application is left as-is.
func (t *Tracker) SubmitApplication(ctx context.Context, form client.ApplicationForm, progress io.Writer) (*client.ApplicationResult, error) {
	t.mu.Lock()
	if t.state.AppliedForInternship {
		t.mu.Unlock()
		return nil, apierr.New(apierr.Validation, "Application already submitted", nil)
	}
	t.mu.Unlock()

	res, err := t.cli.SubmitApplication(ctx, form, progress)
	if err != nil {
		return nil, err
	}

	t.mu.Lock()
	t.state.AppliedForInternship = true
	t.state.Points = res.TotalPoints
	t.mu.Unlock()
	log.Info().Int("points", res.TotalPoints).Msg("Application submitted")
	return res, nil
}

// Points returns the current balance.
func (t *Tracker) Points() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state.Points
}

// HasClaimed reports whether the prize is already in the claimed set.
func (t *Tracker) HasClaimed(prizeID int) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, ok := t.state.ClaimedPrizeIDs[prizeID]
	return ok
}

// RecordClaim applies a confirmed claim: the balance becomes exactly the
// server-reported remainder and the prize joins the claimed set. The set
// only ever grows.
func (t *Tracker) RecordClaim(prizeID, remainingPoints int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.state.Points = remainingPoints
	t.state.ClaimedPrizeIDs[prizeID] = struct{}{}
}

// snapshot copies the state including the claimed set. Callers must hold mu.
func (t *Tracker) snapshot() State {
	s := t.state
	s.ClaimedPrizeIDs = make(map[int]struct{}, len(t.state.ClaimedPrizeIDs))
	for id := range t.state.ClaimedPrizeIDs {
		s.ClaimedPrizeIDs[id] = struct{}{}
	}
	return s
}
