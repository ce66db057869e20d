package refresh

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/fxlens/clientpulse/internal/domain/models"
	"github.com/fxlens/clientpulse/internal/logger"
	"github.com/fxlens/clientpulse/internal/storage"
)

// Reconciler detects and optionally repairs drift between the source
// client set and the derived client set. Drift is reported as data, not
// errors; repair is opt-in.
type Reconciler struct {
	repo      storage.Repository
	refresher *Refresher
}

func NewReconciler(repo storage.Repository, refresher *Refresher) *Reconciler {
	return &Reconciler{repo: repo, refresher: refresher}
}

// CompareAndRepair computes the symmetric difference between distinct
// source clients and derived clients. MISSING clients (in source, not
// derived) are refreshed when autoFix is set; ORPHAN clients (derived,
// not in source) are deleted when autoFix is set. With no drift the
// result is a single OK record.
func (r *Reconciler) CompareAndRepair(ctx context.Context, autoFix bool) ([]models.ReconcileResult, error) {
	sourceIDs, err := r.repo.DistinctSourceClientIDs(ctx)
	if err != nil {
		return nil, err
	}
	derivedIDs, err := r.repo.DerivedClientIDs(ctx)
	if err != nil {
		return nil, err
	}

	derivedSet := make(map[int64]struct{}, len(derivedIDs))
	for _, id := range derivedIDs {
		derivedSet[id] = struct{}{}
	}
	sourceSet := make(map[int64]struct{}, len(sourceIDs))
	for _, id := range sourceIDs {
		sourceSet[id] = struct{}{}
	}

	var results []models.ReconcileResult

	// Both ID slices arrive sorted ascending, so the report order is
	// stable across runs.
	for _, id := range sourceIDs {
		if _, ok := derivedSet[id]; ok {
			continue
		}
		res := models.ReconcileResult{
			Status:      models.ReconcileMissing,
			ClientID:    id,
			Description: fmt.Sprintf("client %d present in source but absent from derived state", id),
		}
		if autoFix {
			if err := r.refresher.Refresh(ctx, id); err != nil {
				return results, fmt.Errorf("repair missing client %d: %w", id, err)
			}
			res.Fixed = true
		}
		results = append(results, res)
	}

	for _, id := range derivedIDs {
		if _, ok := sourceSet[id]; ok {
			continue
		}
		res := models.ReconcileResult{
			Status:      models.ReconcileOrphan,
			ClientID:    id,
			Description: fmt.Sprintf("client %d present in derived state but absent from source", id),
		}
		if autoFix {
			clientID := id
			err := r.repo.WithTx(ctx, func(tx *sql.Tx) error {
				return r.repo.DeleteDerivedClient(ctx, tx, clientID)
			})
			if err != nil {
				return results, fmt.Errorf("repair orphan client %d: %w", id, err)
			}
			res.Fixed = true
		}
		results = append(results, res)
	}

	if len(results) == 0 {
		return []models.ReconcileResult{{
			Status:      models.ReconcileOK,
			Description: "source and derived client sets match",
		}}, nil
	}

	logger.L().Info().
		Int("findings", len(results)).
		Bool("auto_fix", autoFix).
		Msg("reconciliation found drift")
	return results, nil
}
