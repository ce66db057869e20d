package refresh

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/fxlens/clientpulse/internal/domain/models"
	"github.com/fxlens/clientpulse/internal/logger"
	"github.com/fxlens/clientpulse/internal/storage"
)

// WatermarkDataset names the refresh_watermarks row maintained by the
// bulk initializer.
const WatermarkDataset = "client_summary"

const (
	maxBackfillParallel = 8
	progressEvery       = 1000
)

// Initializer performs the cold-start backfill: one refresh per client
// present in either source table.
type Initializer struct {
	repo      storage.Repository
	refresher *Refresher
}

func NewInitializer(repo storage.Repository, refresher *Refresher) *Initializer {
	return &Initializer{repo: repo, refresher: refresher}
}

// InitializeAll enumerates every distinct source client ascending and
// refreshes each one. Refreshes run with bounded parallelism (clamped
// to 1..8); launch order stays ascending and per-client locks keep
// same-client work serialized, so the run is idempotent per client.
// With force set the derived tables are truncated first, turning the
// run into a full rebuild.
//
// The first failing client aborts the run; the returned stats report
// progress up to that point so operators can judge and safely re-run.
// On success the client_summary watermark is advanced.
func (b *Initializer) InitializeAll(ctx context.Context, parallel int, force bool) (models.InitStats, error) {
	start := time.Now()
	var stats models.InitStats

	if force {
		logger.L().Warn().Msg("truncating derived tables before rebuild")
		if err := b.repo.TruncateDerived(ctx); err != nil {
			return stats, err
		}
	}

	ids, err := b.repo.DistinctSourceClientIDs(ctx)
	if err != nil {
		return stats, err
	}

	if parallel < 1 {
		parallel = 1
	}
	if parallel > maxBackfillParallel {
		parallel = maxBackfillParallel
	}

	logger.L().Info().
		Int("clients", len(ids)).
		Int("parallel", parallel).
		Msg("backfill start")

	g, gctx := errgroup.WithContext(ctx)
	sem := make(chan struct{}, parallel)
	var mu sync.Mutex

	for _, id := range ids {
		clientID := id
		sem <- struct{}{}

		g.Go(func() error {
			defer func() { <-sem }()

			accounts, err := b.refresher.refresh(gctx, clientID)
			if err != nil {
				logger.L().Error().Int64("client_id", clientID).Err(err).Msg("backfill client failed")
				return err
			}

			mu.Lock()
			stats.ClientsProcessed++
			stats.AccountsWritten += accounts
			done := stats.ClientsProcessed
			mu.Unlock()

			if done%progressEvery == 0 {
				logger.L().Info().
					Int("done", done).
					Int("total", len(ids)).
					Dur("elapsed", time.Since(start)).
					Msg("backfill progress")
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		stats.Duration = time.Since(start)
		return stats, err
	}
	stats.Duration = time.Since(start)

	if err := b.advanceWatermark(ctx); err != nil {
		return stats, err
	}

	logger.L().Info().
		Int("clients", stats.ClientsProcessed).
		Int("accounts", stats.AccountsWritten).
		Dur("elapsed", stats.Duration).
		Msg("backfill done")
	return stats, nil
}

func (b *Initializer) advanceWatermark(ctx context.Context) error {
	st, err := b.repo.RefreshStatus(ctx)
	if err != nil {
		return err
	}
	if st.LastUpdated == nil {
		// Empty source set: nothing was written, nothing to record.
		return nil
	}
	return b.repo.UpsertWatermark(ctx, WatermarkDataset, *st.LastUpdated)
}
