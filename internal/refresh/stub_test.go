package refresh

import (
	"context"
	"database/sql"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/fxlens/clientpulse/internal/domain/models"
	"github.com/fxlens/clientpulse/internal/storage"
)

// memRepo is an in-memory Repository used across the package tests. Its
// WithTx snapshots state before running fn and restores it on error, so
// fail-closed behavior is observable without a real database.
type memRepo struct {
	mu sync.Mutex

	source     map[models.Venue]map[int64]models.SourceAccountRow
	summaries  map[int64]models.ClientSummary
	details    map[int64][]models.ClientAccountDetail
	watermarks map[string]time.Time

	failSummaryUpsert bool
	refreshCalls      []int64
}

func newMemRepo() *memRepo {
	return &memRepo{
		source: map[models.Venue]map[int64]models.SourceAccountRow{
			models.VenueLive:   {},
			models.VenueLegacy: {},
		},
		summaries:  map[int64]models.ClientSummary{},
		details:    map[int64][]models.ClientAccountDetail{},
		watermarks: map[string]time.Time{},
	}
}

func (m *memRepo) addSource(row models.SourceAccountRow) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.source[row.Venue][row.Login] = row
}

func (m *memRepo) snapshot() (map[models.Venue]map[int64]models.SourceAccountRow, map[int64]models.ClientSummary, map[int64][]models.ClientAccountDetail) {
	src := map[models.Venue]map[int64]models.SourceAccountRow{}
	for v, rows := range m.source {
		src[v] = map[int64]models.SourceAccountRow{}
		for l, r := range rows {
			src[v][l] = r
		}
	}
	sums := map[int64]models.ClientSummary{}
	for id, s := range m.summaries {
		sums[id] = s
	}
	dets := map[int64][]models.ClientAccountDetail{}
	for id, d := range m.details {
		dets[id] = append([]models.ClientAccountDetail(nil), d...)
	}
	return src, sums, dets
}

func (m *memRepo) WithTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	m.mu.Lock()
	src, sums, dets := m.snapshot()
	m.mu.Unlock()

	if err := fn(nil); err != nil {
		m.mu.Lock()
		m.source, m.summaries, m.details = src, sums, dets
		m.mu.Unlock()
		return err
	}
	return nil
}

func (m *memRepo) SourceAccountsByClient(_ context.Context, _ *sql.Tx, clientID int64) ([]models.SourceAccountRow, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.SourceAccountRow
	for _, venue := range []models.Venue{models.VenueLive, models.VenueLegacy} {
		for _, row := range m.source[venue] {
			if row.ClientID == clientID {
				out = append(out, row)
			}
		}
	}
	return out, nil
}

func (m *memRepo) DistinctSourceClientIDs(context.Context) ([]int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	seen := map[int64]struct{}{}
	for _, rows := range m.source {
		for _, row := range rows {
			if row.ClientID > 0 {
				seen[row.ClientID] = struct{}{}
			}
		}
	}
	out := make([]int64, 0, len(seen))
	for id := range seen {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out, nil
}

func (m *memRepo) SourceClientOfLogin(_ context.Context, _ *sql.Tx, venue models.Venue, login int64) (int64, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	row, ok := m.source[venue][login]
	if !ok {
		return 0, false, nil
	}
	return row.ClientID, true, nil
}

func (m *memRepo) UpsertSourceAccount(_ context.Context, _ *sql.Tx, row models.SourceAccountRow) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.source[row.Venue][row.Login] = row
	return nil
}

func (m *memRepo) DeleteSourceAccount(_ context.Context, _ *sql.Tx, venue models.Venue, login int64) (int64, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	row, ok := m.source[venue][login]
	if !ok {
		return 0, false, nil
	}
	delete(m.source[venue], login)
	return row.ClientID, true, nil
}

func (m *memRepo) UpsertClientSummary(_ context.Context, _ *sql.Tx, s models.ClientSummary) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failSummaryUpsert {
		return errors.New("summary upsert failed")
	}
	m.summaries[s.ClientID] = s
	m.refreshCalls = append(m.refreshCalls, s.ClientID)
	return nil
}

func (m *memRepo) ReplaceAccountDetails(_ context.Context, _ *sql.Tx, clientID int64, details []models.ClientAccountDetail) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.details[clientID] = append([]models.ClientAccountDetail(nil), details...)
	return nil
}

func (m *memRepo) DeleteDerivedClient(_ context.Context, _ *sql.Tx, clientID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.summaries, clientID)
	delete(m.details, clientID)
	return nil
}

func (m *memRepo) DerivedClientIDs(context.Context) ([]int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]int64, 0, len(m.summaries))
	for id := range m.summaries {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out, nil
}

func (m *memRepo) TruncateDerived(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.summaries = map[int64]models.ClientSummary{}
	m.details = map[int64][]models.ClientAccountDetail{}
	return nil
}

func (m *memRepo) SummaryPage(context.Context, storage.SummaryQuery) ([]models.ClientSummary, int, error) {
	return nil, 0, errors.New("not implemented")
}

func (m *memRepo) AccountDetails(_ context.Context, clientID int64) ([]models.ClientAccountDetail, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]models.ClientAccountDetail(nil), m.details[clientID]...), nil
}

func (m *memRepo) RefreshStatus(context.Context) (models.RefreshStatus, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	st := models.RefreshStatus{TotalClients: len(m.summaries)}
	for _, d := range m.details {
		st.TotalAccounts += len(d)
	}
	for _, s := range m.summaries {
		if st.LastUpdated == nil || s.LastUpdated.After(*st.LastUpdated) {
			t := s.LastUpdated
			st.LastUpdated = &t
		}
	}
	return st, nil
}

func (m *memRepo) UpsertWatermark(_ context.Context, dataset string, lastUpdated time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.watermarks[dataset] = lastUpdated
	return nil
}

var _ storage.Repository = (*memRepo)(nil)

func sourceRow(venue models.Venue, login, clientID int64, updated time.Time) models.SourceAccountRow {
	return models.SourceAccountRow{
		Login:       login,
		ClientID:    clientID,
		Venue:       venue,
		Currency:    "USD",
		Balance:     100,
		LastUpdated: updated,
	}
}
