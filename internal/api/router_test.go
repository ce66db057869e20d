package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/fxlens/clientpulse/internal/domain/dto"
	"github.com/fxlens/clientpulse/internal/domain/models"
)

func TestNewRouter_WiringAndMiddlewares(t *testing.T) {
	gin.SetMode(gin.TestMode)

	svc := &mockClientService{
		items: []models.ClientSummary{{ClientID: 42, ClientName: "Jane Trader"}},
		total: 1,
	}
	h := NewHandler(svc, nil)
	admin := NewAdminHandler(svc, nil, nil, 4)
	r := NewRouter(h, admin)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/clients", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	// Ensure RequestID middleware injected header
	if w.Header().Get("X-Request-ID") == "" {
		t.Fatalf("expected X-Request-ID header to be set")
	}

	var out dto.SummaryPageResponse
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("invalid json response: %v", err)
	}
	if len(out.Items) != 1 || out.Items[0].ClientID != 42 {
		t.Fatalf("unexpected body: %+v", out)
	}
}

func TestNewRouter_AdminStatusRoute(t *testing.T) {
	gin.SetMode(gin.TestMode)

	svc := &mockClientService{status: models.RefreshStatus{TotalClients: 1}}
	r := NewRouter(NewHandler(svc, nil), NewAdminHandler(svc, nil, nil, 4))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/admin/status", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}
