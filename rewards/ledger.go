package rewards

import (
	"context"
	"fmt"

	"github.com/praktik-cli/praktik/client"
	"github.com/praktik-cli/praktik/db"
	"github.com/praktik-cli/praktik/pkg/apierr"
	"github.com/praktik-cli/praktik/progress"
	"github.com/rs/zerolog/log"
)

// Ledger keeps the point balance and claimed-prize set consistent with the
// backend across a catalogue with finite shared stock. The local checks in
// Claim are a fast path only; the server re-validates everything atomically
// and its answer is what gets applied.
type Ledger struct {
	cli     *client.Client
	tracker *progress.Tracker
	cache   db.PrizeRepository
}

// NewLedger creates a Ledger. The prize repository may be nil, in which
// case the catalogue is not cached between runs.
func NewLedger(cli *client.Client, tracker *progress.Tracker, cache db.PrizeRepository) *Ledger {
	return &Ledger{cli: cli, tracker: tracker, cache: cache}
}

// RefreshCatalogue fetches the prize list from the server and replaces the
// local cache. It never touches the balance or the claimed set, so a prize
// shown as available may still be rejected at claim time.
func (l *Ledger) RefreshCatalogue(ctx context.Context) ([]client.Prize, error) {
	prizes, err := l.cli.FetchPrizes(ctx)
	if err != nil {
		return nil, err
	}
	l.storeCache(ctx, prizes)
	log.Info().Int("count", len(prizes)).Msg("Prize catalogue refreshed")
	return prizes, nil
}

// CachedCatalogue returns the locally cached prize list without a network
// call. An empty cache yields an empty slice.
func (l *Ledger) CachedCatalogue(ctx context.Context) ([]client.Prize, error) {
	if l.cache == nil {
		return nil, nil
	}
	records, err := l.cache.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read cached catalogue: %w", err)
	}
	prizes := make([]client.Prize, 0, len(records))
	for _, r := range records {
		prizes = append(prizes, cacheToPrize(r))
	}
	return prizes, nil
}

// Claim exchanges points for a prize. The balance, stock and prior-claim
// preconditions are checked locally first so obviously invalid claims fail
// without a round-trip; on success the balance is set to exactly the
// server-reported remainder. On any failure nothing is mutated; the
// caller should refresh the catalogue before retrying, since stock may
// have changed under concurrent claims by other users.
func (l *Ledger) Claim(ctx context.Context, prizeID int) (*client.ClaimResult, error) {
	if l.tracker.HasClaimed(prizeID) {
		return nil, apierr.New(apierr.Validation, "Prize already claimed", nil)
	}
	if prize := l.lookupCached(ctx, prizeID); prize != nil {
		if prize.Quantity <= 0 {
			return nil, apierr.New(apierr.Validation, "Prize is out of stock", nil)
		}
		if balance := l.tracker.Points(); balance < prize.Points {
			detail := fmt.Sprintf("Not enough points. Need %d, have %d", prize.Points, balance)
			return nil, apierr.New(apierr.Validation, detail, nil)
		}
	}

	res, err := l.cli.ClaimPrize(ctx, prizeID)
	if err != nil {
		return nil, err
	}

	l.tracker.RecordClaim(prizeID, res.RemainingPoints)
	l.decrementCachedStock(ctx, prizeID)
	log.Info().Str("prize", res.PrizeName).Int("remaining", res.RemainingPoints).Msg("Prize claimed")
	return res, nil
}

// FetchClaimed lists the user's claimed prizes from the server.
func (l *Ledger) FetchClaimed(ctx context.Context) ([]client.ClaimedPrize, error) {
	return l.cli.FetchClaimedPrizes(ctx)
}

func (l *Ledger) lookupCached(ctx context.Context, prizeID int) *client.Prize {
	if l.cache == nil {
		return nil
	}
	record, err := l.cache.GetByID(ctx, prizeID)
	if err != nil || record == nil {
		return nil
	}
	prize := cacheToPrize(*record)
	return &prize
}

func (l *Ledger) storeCache(ctx context.Context, prizes []client.Prize) {
	if l.cache == nil {
		return
	}
	records := make([]db.Prize, 0, len(prizes))
	for _, p := range prizes {
		records = append(records, prizeToCache(p))
	}
	if err := l.cache.ReplaceAll(ctx, records); err != nil {
		log.Warn().Err(err).Msg("Failed to cache prize catalogue")
	}
}

func (l *Ledger) decrementCachedStock(ctx context.Context, prizeID int) {
	if l.cache == nil {
		return
	}
	record, err := l.cache.GetByID(ctx, prizeID)
	if err != nil || record == nil {
		return
	}
	if record.Quantity > 0 {
		record.Quantity--
	}
	if err := l.cache.Put(ctx, *record); err != nil {
		log.Warn().Err(err).Msg("Failed to update cached prize stock")
	}
}

func cacheToPrize(r db.Prize) client.Prize {
	p := client.Prize{ID: r.ID, Name: r.Name, Points: r.Points, Quantity: r.Quantity}
	if r.Description != "" {
		desc := r.Description
		p.Description = &desc
	}
	return p
}

func prizeToCache(p client.Prize) db.Prize {
	r := db.Prize{ID: p.ID, Name: p.Name, Points: p.Points, Quantity: p.Quantity}
	if p.Description != nil {
		r.Description = *p.Description
	}
	return r
}
