package refresh

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/fxlens/clientpulse/internal/domain/models"
	"github.com/fxlens/clientpulse/internal/storage"
)

// ErrAccountNotFound is returned by ApplyDelete when the login does not
// exist on the venue.
var ErrAccountNotFound = errors.New("source account not found")

// Dispatcher applies source-table writes on behalf of the ingestion
// feed and refreshes every affected client inside the same transaction.
// If a refresh fails, the source write rolls back with it (fail-closed);
// retrying is the feed's responsibility.
type Dispatcher struct {
	repo      storage.Repository
	refresher *Refresher
}

func NewDispatcher(repo storage.Repository, refresher *Refresher) *Dispatcher {
	return &Dispatcher{repo: repo, refresher: refresher}
}

// ApplyUpsert writes one source row and refreshes its client. When the
// upsert reassigns a login to a different client, the previous owner is
// refreshed too so its aggregate stops counting the moved account.
func (d *Dispatcher) ApplyUpsert(ctx context.Context, row models.SourceAccountRow) error {
	if !row.Venue.Valid() {
		return fmt.Errorf("unknown venue %q", row.Venue)
	}
	return d.repo.WithTx(ctx, func(tx *sql.Tx) error {
		prevClient, existed, err := d.repo.SourceClientOfLogin(ctx, tx, row.Venue, row.Login)
		if err != nil {
			return err
		}
		if err := d.repo.UpsertSourceAccount(ctx, tx, row); err != nil {
			return err
		}
		if err := d.refresher.RefreshTx(ctx, tx, row.ClientID); err != nil {
			return err
		}
		if existed && prevClient != row.ClientID {
			if err := d.refresher.RefreshTx(ctx, tx, prevClient); err != nil {
				return err
			}
		}
		return nil
	})
}

// ApplyDelete removes one source row and refreshes the pre-image
// client. Deleting a client's last account drops its derived rows
// entirely.
func (d *Dispatcher) ApplyDelete(ctx context.Context, venue models.Venue, login int64) error {
	if !venue.Valid() {
		return fmt.Errorf("unknown venue %q", venue)
	}
	return d.repo.WithTx(ctx, func(tx *sql.Tx) error {
		clientID, existed, err := d.repo.DeleteSourceAccount(ctx, tx, venue, login)
		if err != nil {
			return err
		}
		if !existed {
			return ErrAccountNotFound
		}
		return d.refresher.RefreshTx(ctx, tx, clientID)
	})
}
