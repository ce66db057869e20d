// Package service holds the read-side business logic between the HTTP
// handlers and the repository.
package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/fxlens/clientpulse/internal/domain/models"
	"github.com/fxlens/clientpulse/internal/storage"
)

// ErrInvalidSortField is returned when a summary query names a sort
// column outside the allow-list.
var ErrInvalidSortField = errors.New("invalid sort field")

// ErrClientNotFound is returned when a client has no derived rows.
var ErrClientNotFound = errors.New("client not found")

const maxPageSize = 500

// ClientService defines business logic for querying client aggregates.
// This decouples HTTP handlers from data access.
type ClientService interface {
	SummaryPage(ctx context.Context, q storage.SummaryQuery) ([]models.ClientSummary, int, error)
	ClientAccounts(ctx context.Context, clientID int64) ([]models.ClientAccountDetail, error)
	RefreshStatus(ctx context.Context) (models.RefreshStatus, error)
}

type clientService struct {
	repo storage.Repository
}

func NewClientService(repo storage.Repository) ClientService {
	return &clientService{repo: repo}
}

// SummaryPage validates and clamps the query before delegating. An
// unknown sort field is rejected rather than silently ignored so callers
// learn about typos.
func (s *clientService) SummaryPage(ctx context.Context, q storage.SummaryQuery) ([]models.ClientSummary, int, error) {
	if q.SortBy != "" && !storage.SortFieldAllowed(q.SortBy) {
		return nil, 0, fmt.Errorf("%w: %q", ErrInvalidSortField, q.SortBy)
	}
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PageSize < 1 {
		q.PageSize = 50
	}
	if q.PageSize > maxPageSize {
		q.PageSize = maxPageSize
	}
	return s.repo.SummaryPage(ctx, q)
}

func (s *clientService) ClientAccounts(ctx context.Context, clientID int64) ([]models.ClientAccountDetail, error) {
	if clientID <= 0 {
		return nil, fmt.Errorf("%w: client id %d", ErrClientNotFound, clientID)
	}
	details, err := s.repo.AccountDetails(ctx, clientID)
	if err != nil {
		return nil, err
	}
	if len(details) == 0 {
		return nil, ErrClientNotFound
	}
	return details, nil
}

func (s *clientService) RefreshStatus(ctx context.Context) (models.RefreshStatus, error) {
	return s.repo.RefreshStatus(ctx)
}
