package models

import "time"

// Reconciliation statuses reported by CompareAndRepair.
const (
	ReconcileMissing = "MISSING" // client in source, absent from derived state
	ReconcileOrphan  = "ORPHAN"  // client in derived state, absent from source
	ReconcileOK      = "OK"      // no drift found
)

// ReconcileResult is one drift finding (or the single OK record when the
// source and derived client sets match).
type ReconcileResult struct {
	Status      string `json:"status"`
	ClientID    int64  `json:"client_id,omitempty"`
	Description string `json:"description"`
	Fixed       bool   `json:"fixed"`
}

// InitStats reports the outcome of a bulk initialization run.
type InitStats struct {
	ClientsProcessed int           `json:"clients_processed"`
	AccountsWritten  int           `json:"accounts_written"`
	Duration         time.Duration `json:"-"`
}

// RefreshStatus is the freshness snapshot exposed to the dashboard.
type RefreshStatus struct {
	LastUpdated   *time.Time `json:"last_updated"`
	TotalClients  int        `json:"total_clients"`
	TotalAccounts int        `json:"total_accounts"`
}
