package dto

import "github.com/fxlens/clientpulse/internal/domain/models"

// SummaryPageResponse is the JSON structure returned by the
// GET /api/v1/clients endpoint.
//
// Fields match the API contract and may differ from internal domain models.
// This ensures loose coupling between the API surface and business logic.
type SummaryPageResponse struct {
	Items      []models.ClientSummary `json:"items"`
	Page       int                    `json:"page" example:"1"`
	PageSize   int                    `json:"page_size" example:"50"`
	TotalItems int64                  `json:"total_items" example:"1342"`
	TotalPages int                    `json:"total_pages" example:"27"`
}

// ClientAccountsResponse is returned by GET /api/v1/clients/{id}/accounts.
type ClientAccountsResponse struct {
	ClientID int64                        `json:"client_id" example:"42"`
	Accounts []models.ClientAccountDetail `json:"accounts"`
}

// RefreshStatusResponse is returned by GET /api/v1/admin/status.
type RefreshStatusResponse struct {
	LastUpdated   *string `json:"last_updated" example:"2025-01-01T12:00:00Z"`
	TotalClients  int     `json:"total_clients" example:"1342"`
	TotalAccounts int     `json:"total_accounts" example:"5120"`
}
