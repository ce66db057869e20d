package dto

import (
	"testing"
	"time"

	"github.com/fxlens/clientpulse/internal/domain/models"
)

func TestSourceAccountRequest_ToModel(t *testing.T) {
	ts := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	req := SourceAccountRequest{
		Login:         100234,
		ClientID:      42,
		Currency:      "CEN",
		UserName:      "Jane Trader",
		Balance:       150000,
		DepositAmount: 200000,
		LastUpdated:   &ts,
	}

	row := req.ToModel(models.VenueLegacy)
	if row.Venue != models.VenueLegacy {
		t.Fatalf("venue = %q, want legacy", row.Venue)
	}
	if row.Login != 100234 || row.ClientID != 42 {
		t.Fatalf("identity fields lost: %+v", row)
	}
	if row.Balance != 150000 {
		t.Fatalf("balance must pass through unnormalized, got %v", row.Balance)
	}
	if !row.LastUpdated.Equal(ts) {
		t.Fatalf("last_updated = %v, want %v", row.LastUpdated, ts)
	}
}

func TestSourceAccountRequest_ToModel_DefaultsTimestamp(t *testing.T) {
	row := SourceAccountRequest{Login: 7}.ToModel(models.VenueLive)
	if row.LastUpdated.IsZero() || time.Since(row.LastUpdated) > time.Second {
		t.Fatalf("missing last_updated should default to now, got %v", row.LastUpdated)
	}
}
