package storage

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/fxlens/clientpulse/internal/domain/models"
	pq "github.com/lib/pq"
)

// SummaryQuery describes one page request against client_summary.
type SummaryQuery struct {
	Page     int
	PageSize int
	// SortBy must be one of the allow-listed summary columns; anything
	// else falls back to the default client_id ordering.
	SortBy   string
	SortDesc bool
	// Search matches client_id or a member login exactly when numeric,
	// otherwise client_name case-insensitively.
	Search string
}

// allowedSortFields is the allow-list guarding ORDER BY injection.
var allowedSortFields = map[string]struct{}{
	"client_id": {}, "client_name": {}, "primary_server": {}, "account_count": {},
	"total_balance_usd": {}, "total_credit_usd": {}, "total_floating_pnl_usd": {}, "total_equity_usd": {},
	"total_closed_profit_usd": {}, "total_commission_usd": {},
	"total_deposit_usd": {}, "total_withdrawal_usd": {}, "net_deposit_usd": {},
	"total_volume_lots": {}, "total_overnight_volume_lots": {}, "overnight_volume_ratio": {},
	"total_closed_count": {}, "total_overnight_count": {},
	"closed_buy_volume_lots": {}, "closed_buy_count": {}, "closed_buy_profit_usd": {},
	"closed_sell_volume_lots": {}, "closed_sell_count": {}, "closed_sell_profit_usd": {},
	"last_updated": {},
}

// SortFieldAllowed reports whether field may be used as a sort key.
func SortFieldAllowed(field string) bool {
	_, ok := allowedSortFields[field]
	return ok
}

const summaryColumns = `
	client_id, client_name, primary_server, countries, currencies,
	account_count, account_list,
	total_balance_usd, total_credit_usd, total_floating_pnl_usd, total_equity_usd,
	total_closed_profit_usd, total_commission_usd,
	total_deposit_usd, total_withdrawal_usd, net_deposit_usd,
	total_volume_lots, total_overnight_volume_lots, overnight_volume_ratio,
	total_closed_count, total_overnight_count,
	closed_buy_volume_lots, closed_buy_count, closed_buy_profit_usd, closed_buy_swap_usd,
	closed_sell_volume_lots, closed_sell_count, closed_sell_profit_usd, closed_sell_swap_usd,
	last_updated`

// SummaryPage returns one page of summary rows plus the total row count
// for the same filter.
func (r *pgRepository) SummaryPage(ctx context.Context, q SummaryQuery) ([]models.ClientSummary, int, error) {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PageSize < 1 {
		q.PageSize = 50
	}

	where, args := buildSearchClause(q.Search)

	var total int
	countQuery := `SELECT COUNT(*) FROM client_summary` + where
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count summaries: %w", err)
	}

	order := " ORDER BY client_id ASC"
	if q.SortBy != "" && SortFieldAllowed(q.SortBy) {
		dir := "ASC"
		if q.SortDesc {
			dir = "DESC"
		}
		order = fmt.Sprintf(" ORDER BY %s %s NULLS LAST, client_id ASC", q.SortBy, dir)
	}

	limitPos := len(args) + 1
	query := `SELECT ` + summaryColumns + ` FROM client_summary` + where + order +
		fmt.Sprintf(" LIMIT $%d OFFSET $%d", limitPos, limitPos+1)
	args = append(args, q.PageSize, (q.Page-1)*q.PageSize)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("query summary page: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []models.ClientSummary
	for rows.Next() {
		var s models.ClientSummary
		var server string
		if err := rows.Scan(
			&s.ClientID, &s.ClientName, &server,
			pq.Array(&s.Countries), pq.Array(&s.Currencies),
			&s.AccountCount, pq.Array(&s.AccountList),
			&s.TotalBalanceUSD, &s.TotalCreditUSD, &s.TotalFloatingPnLUSD, &s.TotalEquityUSD,
			&s.TotalClosedProfitUSD, &s.TotalCommissionUSD,
			&s.TotalDepositUSD, &s.TotalWithdrawalUSD, &s.NetDepositUSD,
			&s.TotalVolumeLots, &s.TotalOvernightVolumeLots, &s.OvernightVolumeRatio,
			&s.TotalClosedCount, &s.TotalOvernightCount,
			&s.ClosedBuyVolumeLots, &s.ClosedBuyCount, &s.ClosedBuyProfitUSD, &s.ClosedBuySwapUSD,
			&s.ClosedSellVolumeLots, &s.ClosedSellCount, &s.ClosedSellProfitUSD, &s.ClosedSellSwapUSD,
			&s.LastUpdated,
		); err != nil {
			return nil, 0, fmt.Errorf("scan summary row: %w", err)
		}
		s.PrimaryServer = models.Venue(server)
		out = append(out, s)
	}
	return out, total, rows.Err()
}

// buildSearchClause translates the unified search term into a WHERE
// clause: numeric terms match client_id or any member of account_list
// exactly, text terms match client_name case-insensitively.
func buildSearchClause(search string) (string, []interface{}) {
	s := strings.TrimSpace(search)
	if s == "" {
		return "", nil
	}
	if id, err := strconv.ParseInt(s, 10, 64); err == nil {
		return " WHERE (client_id = $1 OR $2 = ANY(account_list))", []interface{}{id, id}
	}
	return " WHERE client_name ILIKE $1", []interface{}{"%" + s + "%"}
}
