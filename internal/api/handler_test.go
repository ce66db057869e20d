package api

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sort"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/fxlens/clientpulse/internal/domain/dto"
	"github.com/fxlens/clientpulse/internal/domain/models"
	"github.com/fxlens/clientpulse/internal/refresh"
	"github.com/fxlens/clientpulse/internal/service"
	"github.com/fxlens/clientpulse/internal/storage"
)

// mockClientService implements service.ClientService for handler tests.
type mockClientService struct {
	items   []models.ClientSummary
	total   int
	details []models.ClientAccountDetail
	status  models.RefreshStatus
	err     error
}

func (m *mockClientService) SummaryPage(context.Context, storage.SummaryQuery) ([]models.ClientSummary, int, error) {
	return m.items, m.total, m.err
}

func (m *mockClientService) ClientAccounts(context.Context, int64) ([]models.ClientAccountDetail, error) {
	return m.details, m.err
}

func (m *mockClientService) RefreshStatus(context.Context) (models.RefreshStatus, error) {
	return m.status, m.err
}

var _ service.ClientService = (*mockClientService)(nil)

// apiRepo is a minimal in-memory Repository backing dispatcher tests.
type apiRepo struct {
	storage.Repository

	source    map[models.Venue]map[int64]models.SourceAccountRow
	summaries map[int64]models.ClientSummary
	details   map[int64][]models.ClientAccountDetail
}

func newAPIRepo() *apiRepo {
	return &apiRepo{
		source: map[models.Venue]map[int64]models.SourceAccountRow{
			models.VenueLive:   {},
			models.VenueLegacy: {},
		},
		summaries: map[int64]models.ClientSummary{},
		details:   map[int64][]models.ClientAccountDetail{},
	}
}

func (r *apiRepo) WithTx(_ context.Context, fn func(tx *sql.Tx) error) error { return fn(nil) }

func (r *apiRepo) SourceClientOfLogin(_ context.Context, _ *sql.Tx, venue models.Venue, login int64) (int64, bool, error) {
	row, ok := r.source[venue][login]
	if !ok {
		return 0, false, nil
	}
	return row.ClientID, true, nil
}

func (r *apiRepo) UpsertSourceAccount(_ context.Context, _ *sql.Tx, row models.SourceAccountRow) error {
	r.source[row.Venue][row.Login] = row
	return nil
}

func (r *apiRepo) DeleteSourceAccount(_ context.Context, _ *sql.Tx, venue models.Venue, login int64) (int64, bool, error) {
	row, ok := r.source[venue][login]
	if !ok {
		return 0, false, nil
	}
	delete(r.source[venue], login)
	return row.ClientID, true, nil
}

func (r *apiRepo) SourceAccountsByClient(_ context.Context, _ *sql.Tx, clientID int64) ([]models.SourceAccountRow, error) {
	var out []models.SourceAccountRow
	for _, rows := range r.source {
		for _, row := range rows {
			if row.ClientID == clientID {
				out = append(out, row)
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Login < out[j].Login })
	return out, nil
}

func (r *apiRepo) UpsertClientSummary(_ context.Context, _ *sql.Tx, s models.ClientSummary) error {
	r.summaries[s.ClientID] = s
	return nil
}

func (r *apiRepo) ReplaceAccountDetails(_ context.Context, _ *sql.Tx, clientID int64, details []models.ClientAccountDetail) error {
	r.details[clientID] = details
	return nil
}

func (r *apiRepo) DeleteDerivedClient(_ context.Context, _ *sql.Tx, clientID int64) error {
	delete(r.summaries, clientID)
	delete(r.details, clientID)
	return nil
}

func setupRouter(svc service.ClientService, repo storage.Repository) *gin.Engine {
	gin.SetMode(gin.TestMode)
	var dispatcher *refresh.Dispatcher
	if repo != nil {
		dispatcher = refresh.NewDispatcher(repo, refresh.NewRefresher(repo, models.VenueLive))
	}
	h := NewHandler(svc, dispatcher)
	r := gin.New()
	v1 := r.Group("/api/v1")
	v1.GET("/clients", h.ListClients)
	v1.GET("/clients/:id/accounts", h.GetClientAccounts)
	v1.PUT("/source/:venue/accounts", h.UpsertSourceAccount)
	v1.DELETE("/source/:venue/accounts/:login", h.DeleteSourceAccount)
	return r
}

func TestListClients_TableDriven(t *testing.T) {
	cases := []struct {
		name   string
		svc    *mockClientService
		query  string
		status int
		assert func(t *testing.T, body []byte)
	}{
		{
			name:   "bad page",
			svc:    &mockClientService{},
			query:  "/api/v1/clients?page=zero",
			status: http.StatusBadRequest,
		},
		{
			name:   "bad order",
			svc:    &mockClientService{},
			query:  "/api/v1/clients?order=sideways",
			status: http.StatusBadRequest,
		},
		{
			name:   "bad sort field",
			svc:    &mockClientService{err: service.ErrInvalidSortField},
			query:  "/api/v1/clients?sort_by=nope",
			status: http.StatusBadRequest,
		},
		{
			name:   "internal error",
			svc:    &mockClientService{err: errors.New("db down")},
			query:  "/api/v1/clients",
			status: http.StatusInternalServerError,
		},
		{
			name: "success",
			svc: &mockClientService{
				items: []models.ClientSummary{{ClientID: 42, ClientName: "Jane Trader"}},
				total: 101,
			},
			query:  "/api/v1/clients?page=2&page_size=10&sort_by=total_equity_usd&order=desc",
			status: http.StatusOK,
			assert: func(t *testing.T, body []byte) {
				var out dto.SummaryPageResponse
				if err := json.Unmarshal(body, &out); err != nil {
					t.Fatalf("invalid json: %v", err)
				}
				if out.Page != 2 || out.PageSize != 10 || out.TotalItems != 101 || out.TotalPages != 11 {
					t.Fatalf("unexpected paging: %+v", out)
				}
				if len(out.Items) != 1 || out.Items[0].ClientID != 42 {
					t.Fatalf("unexpected items: %+v", out.Items)
				}
			},
		},
		{
			name:   "empty page serializes as array",
			svc:    &mockClientService{items: nil, total: 0},
			query:  "/api/v1/clients",
			status: http.StatusOK,
			assert: func(t *testing.T, body []byte) {
				if !bytes.Contains(body, []byte(`"items":[]`)) {
					t.Fatalf("items not an empty array: %s", body)
				}
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := setupRouter(tc.svc, nil)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tc.query, nil))
			if w.Code != tc.status {
				t.Fatalf("expected %d, got %d: %s", tc.status, w.Code, w.Body.String())
			}
			if tc.assert != nil {
				tc.assert(t, w.Body.Bytes())
			}
		})
	}
}

func TestGetClientAccounts_TableDriven(t *testing.T) {
	cases := []struct {
		name   string
		svc    *mockClientService
		path   string
		status int
	}{
		{name: "bad id", svc: &mockClientService{}, path: "/api/v1/clients/abc/accounts", status: http.StatusBadRequest},
		{name: "negative id", svc: &mockClientService{}, path: "/api/v1/clients/-1/accounts", status: http.StatusBadRequest},
		{name: "not found", svc: &mockClientService{err: service.ErrClientNotFound}, path: "/api/v1/clients/42/accounts", status: http.StatusNotFound},
		{name: "internal error", svc: &mockClientService{err: errors.New("db down")}, path: "/api/v1/clients/42/accounts", status: http.StatusInternalServerError},
		{
			name: "success",
			svc: &mockClientService{details: []models.ClientAccountDetail{
				{ClientID: 42, Login: 100, Server: models.VenueLive},
			}},
			path:   "/api/v1/clients/42/accounts",
			status: http.StatusOK,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := setupRouter(tc.svc, nil)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tc.path, nil))
			if w.Code != tc.status {
				t.Fatalf("expected %d, got %d: %s", tc.status, w.Code, w.Body.String())
			}
		})
	}
}

func TestUpsertSourceAccount(t *testing.T) {
	repo := newAPIRepo()
	r := setupRouter(&mockClientService{}, repo)

	body, _ := json.Marshal(dto.SourceAccountRequest{Login: 100, ClientID: 42, Currency: "USD", Balance: 1000})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/api/v1/source/live/accounts", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d: %s", w.Code, w.Body.String())
	}
	if _, ok := repo.source[models.VenueLive][100]; !ok {
		t.Fatalf("source row not written")
	}
	if _, ok := repo.summaries[42]; !ok {
		t.Fatalf("derived state not refreshed")
	}
}

func TestUpsertSourceAccount_Validation(t *testing.T) {
	r := setupRouter(&mockClientService{}, newAPIRepo())

	// unknown venue
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/api/v1/source/sandbox/accounts", bytes.NewReader([]byte(`{"login":1}`)))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("unknown venue: expected 400, got %d", w.Code)
	}

	// missing login
	w2 := httptest.NewRecorder()
	req2 := httptest.NewRequest(http.MethodPut, "/api/v1/source/live/accounts", bytes.NewReader([]byte(`{"client_id":42}`)))
	req2.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w2, req2)
	if w2.Code != http.StatusBadRequest {
		t.Fatalf("missing login: expected 400, got %d", w2.Code)
	}
}

func TestDeleteSourceAccount(t *testing.T) {
	repo := newAPIRepo()
	repo.source[models.VenueLegacy][200] = models.SourceAccountRow{
		Login: 200, ClientID: 42, Venue: models.VenueLegacy, LastUpdated: time.Now().UTC(),
	}
	r := setupRouter(&mockClientService{}, repo)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/v1/source/legacy/accounts/200", nil))
	if w.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d: %s", w.Code, w.Body.String())
	}

	// second delete: gone
	w2 := httptest.NewRecorder()
	r.ServeHTTP(w2, httptest.NewRequest(http.MethodDelete, "/api/v1/source/legacy/accounts/200", nil))
	if w2.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w2.Code)
	}

	// bad login
	w3 := httptest.NewRecorder()
	r.ServeHTTP(w3, httptest.NewRequest(http.MethodDelete, "/api/v1/source/legacy/accounts/zero", nil))
	if w3.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w3.Code)
	}
}
