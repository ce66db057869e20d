package dto

import "github.com/fxlens/clientpulse/internal/domain/models"

// InitializeResponse reports the outcome of POST /api/v1/admin/initialize.
type InitializeResponse struct {
	ClientsProcessed int    `json:"clients_processed" example:"1342"`
	AccountsWritten  int    `json:"accounts_written" example:"5120"`
	Duration         string `json:"duration" example:"42.5s"`
}

// ReconcileResponse reports the outcome of POST /api/v1/admin/compare.
type ReconcileResponse struct {
	AutoFix  bool                     `json:"auto_fix" example:"false"`
	Findings []models.ReconcileResult `json:"findings"`
}
