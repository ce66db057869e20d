// Package refresh owns the write-side lifecycle of the derived client
// tables: per-client refresh, the change dispatcher invoked on source
// writes, cold-start backfill, and drift reconciliation.
package refresh

import (
	"context"
	"database/sql"

	"github.com/fxlens/clientpulse/internal/aggregate"
	"github.com/fxlens/clientpulse/internal/domain/models"
	"github.com/fxlens/clientpulse/internal/logger"
	"github.com/fxlens/clientpulse/internal/normalize"
	"github.com/fxlens/clientpulse/internal/storage"
)

// Refresher recomputes and atomically replaces one client's derived
// state from its source rows. Refreshes for the same client are
// serialized by a per-client lock; distinct clients proceed in
// parallel.
type Refresher struct {
	repo         storage.Repository
	locks        *keyedLocks
	defaultVenue models.Venue
}

func NewRefresher(repo storage.Repository, defaultVenue models.Venue) *Refresher {
	return &Refresher{
		repo:         repo,
		locks:        newKeyedLocks(),
		defaultVenue: defaultVenue,
	}
}

// Refresh rebuilds the derived state for one client in its own
// transaction. A non-positive clientID is a no-op, not an error: source
// rows without a client attribution have nothing to aggregate.
func (r *Refresher) Refresh(ctx context.Context, clientID int64) error {
	_, err := r.refresh(ctx, clientID)
	return err
}

func (r *Refresher) refresh(ctx context.Context, clientID int64) (int, error) {
	if clientID <= 0 {
		return 0, nil
	}
	unlock := r.locks.Lock(clientID)
	defer unlock()

	var accounts int
	err := r.repo.WithTx(ctx, func(tx *sql.Tx) error {
		n, err := r.rebuild(ctx, tx, clientID)
		accounts = n
		return err
	})
	return accounts, err
}

// RefreshTx rebuilds the derived state inside a caller-owned
// transaction. The dispatcher uses it so a failed rebuild rolls the
// triggering source write back with it.
func (r *Refresher) RefreshTx(ctx context.Context, tx *sql.Tx, clientID int64) error {
	if clientID <= 0 {
		return nil
	}
	unlock := r.locks.Lock(clientID)
	defer unlock()

	_, err := r.rebuild(ctx, tx, clientID)
	return err
}

// rebuild is the scan-then-replace core: union-scan both venues, and
// either delete the derived rows (client exited) or upsert the summary
// and swap the detail set, all on the given transaction.
func (r *Refresher) rebuild(ctx context.Context, tx *sql.Tx, clientID int64) (int, error) {
	rows, err := r.repo.SourceAccountsByClient(ctx, tx, clientID)
	if err != nil {
		return 0, err
	}
	if len(rows) == 0 {
		return 0, r.repo.DeleteDerivedClient(ctx, tx, clientID)
	}

	warnUnknownCurrencies(clientID, rows)

	summary, details := aggregate.Build(clientID, rows, r.defaultVenue)
	if err := r.repo.UpsertClientSummary(ctx, tx, summary); err != nil {
		return 0, err
	}
	if err := r.repo.ReplaceAccountDetails(ctx, tx, clientID, details); err != nil {
		return 0, err
	}
	return len(details), nil
}

// warnUnknownCurrencies surfaces currencies outside the defined
// normalization set. Their values pass through as USD-equivalent, which
// is only correct if the reference data says so.
func warnUnknownCurrencies(clientID int64, rows []models.SourceAccountRow) {
	seen := map[string]struct{}{}
	for _, row := range rows {
		if row.Currency == "" || normalize.Known(row.Currency) {
			continue
		}
		if _, dup := seen[row.Currency]; dup {
			continue
		}
		seen[row.Currency] = struct{}{}
		logger.L().Warn().
			Int64("client_id", clientID).
			Int64("login", row.Login).
			Str("currency", row.Currency).
			Msg("unknown currency treated as USD")
	}
}
