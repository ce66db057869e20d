package refresh

import (
	"context"
	"testing"
	"time"

	"github.com/fxlens/clientpulse/internal/domain/models"
)

func TestRefresh_NonPositiveClientIsNoOp(t *testing.T) {
	repo := newMemRepo()
	r := NewRefresher(repo, models.VenueLive)

	for _, id := range []int64{0, -7} {
		if err := r.Refresh(context.Background(), id); err != nil {
			t.Fatalf("Refresh(%d) = %v, want nil", id, err)
		}
	}
	if len(repo.summaries) != 0 || len(repo.details) != 0 {
		t.Fatalf("no-op refresh wrote derived state")
	}
}

func TestRefresh_BuildsDerivedState(t *testing.T) {
	repo := newMemRepo()
	ts := time.Date(2025, 4, 1, 9, 0, 0, 0, time.UTC)
	repo.addSource(sourceRow(models.VenueLive, 100, 42, ts))
	repo.addSource(sourceRow(models.VenueLegacy, 200, 42, ts))
	repo.addSource(sourceRow(models.VenueLive, 300, 7, ts)) // other client, untouched

	r := NewRefresher(repo, models.VenueLive)
	if err := r.Refresh(context.Background(), 42); err != nil {
		t.Fatalf("refresh: %v", err)
	}

	s, ok := repo.summaries[42]
	if !ok {
		t.Fatalf("summary for client 42 not written")
	}
	if s.AccountCount != 2 {
		t.Fatalf("account_count=%d, want 2", s.AccountCount)
	}
	if got := len(repo.details[42]); got != 2 {
		t.Fatalf("details=%d, want 2", got)
	}
	if _, ok := repo.summaries[7]; ok {
		t.Fatalf("refresh leaked into another client")
	}
}

func TestRefresh_EmptySourceDeletesDerived(t *testing.T) {
	repo := newMemRepo()
	repo.summaries[42] = models.ClientSummary{ClientID: 42}
	repo.details[42] = []models.ClientAccountDetail{{ClientID: 42, Login: 100}}

	r := NewRefresher(repo, models.VenueLive)
	if err := r.Refresh(context.Background(), 42); err != nil {
		t.Fatalf("refresh: %v", err)
	}

	if _, ok := repo.summaries[42]; ok {
		t.Fatalf("summary not deleted for exited client")
	}
	if len(repo.details[42]) != 0 {
		t.Fatalf("details not deleted for exited client")
	}
}

func TestRefresh_FailureRollsBack(t *testing.T) {
	repo := newMemRepo()
	ts := time.Now().UTC()
	repo.addSource(sourceRow(models.VenueLive, 100, 42, ts))
	repo.failSummaryUpsert = true

	r := NewRefresher(repo, models.VenueLive)
	if err := r.Refresh(context.Background(), 42); err == nil {
		t.Fatalf("expected error")
	}
	if len(repo.summaries) != 0 || len(repo.details) != 0 {
		t.Fatalf("failed refresh left partial derived state")
	}
}

func TestRefresh_ConcurrentSameClient(t *testing.T) {
	repo := newMemRepo()
	ts := time.Now().UTC()
	repo.addSource(sourceRow(models.VenueLive, 100, 42, ts))

	r := NewRefresher(repo, models.VenueLive)

	done := make(chan error, 10)
	for i := 0; i < 10; i++ {
		go func() { done <- r.Refresh(context.Background(), 42) }()
	}
	for i := 0; i < 10; i++ {
		if err := <-done; err != nil {
			t.Fatalf("concurrent refresh: %v", err)
		}
	}

	if repo.summaries[42].AccountCount != 1 {
		t.Fatalf("unexpected summary after concurrent refreshes: %+v", repo.summaries[42])
	}
}
