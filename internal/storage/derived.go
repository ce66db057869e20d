package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/fxlens/clientpulse/internal/domain/models"
	pq "github.com/lib/pq"
)

// UpsertClientSummary inserts or fully overwrites the summary row for
// one client.
func (r *pgRepository) UpsertClientSummary(ctx context.Context, tx *sql.Tx, s models.ClientSummary) error {
	_, err := r.execContext(ctx, tx, `
		INSERT INTO client_summary (
			client_id, client_name, primary_server, countries, currencies,
			account_count, account_list,
			total_balance_usd, total_credit_usd, total_floating_pnl_usd, total_equity_usd,
			total_closed_profit_usd, total_commission_usd,
			total_deposit_usd, total_withdrawal_usd, net_deposit_usd,
			total_volume_lots, total_overnight_volume_lots, overnight_volume_ratio,
			total_closed_count, total_overnight_count,
			closed_buy_volume_lots, closed_buy_count, closed_buy_profit_usd, closed_buy_swap_usd,
			closed_sell_volume_lots, closed_sell_count, closed_sell_profit_usd, closed_sell_swap_usd,
			last_updated
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,
			$19,$20,$21,$22,$23,$24,$25,$26,$27,$28,$29,$30)
		ON CONFLICT (client_id) DO UPDATE SET
			client_name = EXCLUDED.client_name,
			primary_server = EXCLUDED.primary_server,
			countries = EXCLUDED.countries,
			currencies = EXCLUDED.currencies,
			account_count = EXCLUDED.account_count,
			account_list = EXCLUDED.account_list,
			total_balance_usd = EXCLUDED.total_balance_usd,
			total_credit_usd = EXCLUDED.total_credit_usd,
			total_floating_pnl_usd = EXCLUDED.total_floating_pnl_usd,
			total_equity_usd = EXCLUDED.total_equity_usd,
			total_closed_profit_usd = EXCLUDED.total_closed_profit_usd,
			total_commission_usd = EXCLUDED.total_commission_usd,
			total_deposit_usd = EXCLUDED.total_deposit_usd,
			total_withdrawal_usd = EXCLUDED.total_withdrawal_usd,
			net_deposit_usd = EXCLUDED.net_deposit_usd,
			total_volume_lots = EXCLUDED.total_volume_lots,
			total_overnight_volume_lots = EXCLUDED.total_overnight_volume_lots,
			overnight_volume_ratio = EXCLUDED.overnight_volume_ratio,
			total_closed_count = EXCLUDED.total_closed_count,
			total_overnight_count = EXCLUDED.total_overnight_count,
			closed_buy_volume_lots = EXCLUDED.closed_buy_volume_lots,
			closed_buy_count = EXCLUDED.closed_buy_count,
			closed_buy_profit_usd = EXCLUDED.closed_buy_profit_usd,
			closed_buy_swap_usd = EXCLUDED.closed_buy_swap_usd,
			closed_sell_volume_lots = EXCLUDED.closed_sell_volume_lots,
			closed_sell_count = EXCLUDED.closed_sell_count,
			closed_sell_profit_usd = EXCLUDED.closed_sell_profit_usd,
			closed_sell_swap_usd = EXCLUDED.closed_sell_swap_usd,
			last_updated = EXCLUDED.last_updated`,
		s.ClientID, s.ClientName, string(s.PrimaryServer),
		pq.Array(s.Countries), pq.Array(s.Currencies),
		s.AccountCount, pq.Array(s.AccountList),
		s.TotalBalanceUSD, s.TotalCreditUSD, s.TotalFloatingPnLUSD, s.TotalEquityUSD,
		s.TotalClosedProfitUSD, s.TotalCommissionUSD,
		s.TotalDepositUSD, s.TotalWithdrawalUSD, s.NetDepositUSD,
		s.TotalVolumeLots, s.TotalOvernightVolumeLots, s.OvernightVolumeRatio,
		s.TotalClosedCount, s.TotalOvernightCount,
		s.ClosedBuyVolumeLots, s.ClosedBuyCount, s.ClosedBuyProfitUSD, s.ClosedBuySwapUSD,
		s.ClosedSellVolumeLots, s.ClosedSellCount, s.ClosedSellProfitUSD, s.ClosedSellSwapUSD,
		s.LastUpdated,
	)
	if err != nil {
		return fmt.Errorf("upsert summary for client %d: %w", s.ClientID, err)
	}
	return nil
}

// ReplaceAccountDetails swaps the full detail set for a client:
// delete-all-then-insert-all, never a partial update.
func (r *pgRepository) ReplaceAccountDetails(ctx context.Context, tx *sql.Tx, clientID int64, details []models.ClientAccountDetail) error {
	if _, err := r.execContext(ctx, tx,
		`DELETE FROM client_account_details WHERE client_id = $1`, clientID); err != nil {
		return fmt.Errorf("clear details for client %d: %w", clientID, err)
	}
	for _, d := range details {
		if _, err := r.execContext(ctx, tx, `
			INSERT INTO client_account_details (
				client_id, login, server, currency, user_name, user_group, country,
				balance_usd, credit_usd, floating_pnl_usd, equity_usd,
				closed_profit_usd, commission_usd, deposit_usd, withdrawal_usd, net_deposit_usd,
				volume_lots, overnight_volume_lots, overnight_volume_ratio, last_updated
			) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20)`,
			d.ClientID, d.Login, string(d.Server), d.Currency, d.UserName, d.UserGroup, d.Country,
			d.BalanceUSD, d.CreditUSD, d.FloatingPnLUSD, d.EquityUSD,
			d.ClosedProfitUSD, d.CommissionUSD, d.DepositUSD, d.WithdrawalUSD, d.NetDepositUSD,
			d.VolumeLots, d.OvernightVolumeLots, d.OvernightVolumeRatio, d.LastUpdated,
		); err != nil {
			return fmt.Errorf("insert detail %d/%s for client %d: %w", d.Login, d.Server, clientID, err)
		}
	}
	return nil
}

// DeleteDerivedClient removes both derived rows for a client that has
// fully exited the source tables (or was found orphaned).
func (r *pgRepository) DeleteDerivedClient(ctx context.Context, tx *sql.Tx, clientID int64) error {
	if _, err := r.execContext(ctx, tx,
		`DELETE FROM client_account_details WHERE client_id = $1`, clientID); err != nil {
		return fmt.Errorf("delete details for client %d: %w", clientID, err)
	}
	if _, err := r.execContext(ctx, tx,
		`DELETE FROM client_summary WHERE client_id = $1`, clientID); err != nil {
		return fmt.Errorf("delete summary for client %d: %w", clientID, err)
	}
	return nil
}

func (r *pgRepository) DerivedClientIDs(ctx context.Context) ([]int64, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT client_id FROM client_summary ORDER BY client_id ASC`)
	if err != nil {
		return nil, fmt.Errorf("enumerate derived clients: %w", err)
	}
	defer func() { _ = rows.Close() }()
	return scanIDs(rows)
}

// TruncateDerived empties both derived tables, used by forced
// initialization on a store that should be rebuilt from scratch.
func (r *pgRepository) TruncateDerived(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx,
		`TRUNCATE TABLE client_account_details, client_summary`); err != nil {
		return fmt.Errorf("truncate derived tables: %w", err)
	}
	return nil
}

// AccountDetails returns the detail rows for one client ordered by
// (server, login), the drill-down presentation order.
func (r *pgRepository) AccountDetails(ctx context.Context, clientID int64) ([]models.ClientAccountDetail, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT client_id, login, server, currency, user_name, user_group, country,
			balance_usd, credit_usd, floating_pnl_usd, equity_usd,
			closed_profit_usd, commission_usd, deposit_usd, withdrawal_usd, net_deposit_usd,
			volume_lots, overnight_volume_lots, overnight_volume_ratio, last_updated
		FROM client_account_details
		WHERE client_id = $1
		ORDER BY server, login`, clientID)
	if err != nil {
		return nil, fmt.Errorf("load details for client %d: %w", clientID, err)
	}
	defer func() { _ = rows.Close() }()

	var out []models.ClientAccountDetail
	for rows.Next() {
		var d models.ClientAccountDetail
		var server string
		if err := rows.Scan(
			&d.ClientID, &d.Login, &server, &d.Currency, &d.UserName, &d.UserGroup, &d.Country,
			&d.BalanceUSD, &d.CreditUSD, &d.FloatingPnLUSD, &d.EquityUSD,
			&d.ClosedProfitUSD, &d.CommissionUSD, &d.DepositUSD, &d.WithdrawalUSD, &d.NetDepositUSD,
			&d.VolumeLots, &d.OvernightVolumeLots, &d.OvernightVolumeRatio, &d.LastUpdated,
		); err != nil {
			return nil, fmt.Errorf("scan detail row: %w", err)
		}
		d.Server = models.Venue(server)
		out = append(out, d)
	}
	return out, rows.Err()
}

// RefreshStatus reports the derived-store watermark and row counts.
func (r *pgRepository) RefreshStatus(ctx context.Context) (models.RefreshStatus, error) {
	var st models.RefreshStatus
	var last sql.NullTime
	err := r.db.QueryRowContext(ctx,
		`SELECT MAX(last_updated), COUNT(*) FROM client_summary`).Scan(&last, &st.TotalClients)
	if err != nil {
		return st, fmt.Errorf("summary status: %w", err)
	}
	if last.Valid {
		t := last.Time
		st.LastUpdated = &t
	}
	if err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM client_account_details`).Scan(&st.TotalAccounts); err != nil {
		return st, fmt.Errorf("details status: %w", err)
	}
	return st, nil
}

// UpsertWatermark records the freshness watermark for a dataset after a
// successful maintenance run.
func (r *pgRepository) UpsertWatermark(ctx context.Context, dataset string, lastUpdated time.Time) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO refresh_watermarks (dataset, last_updated)
		VALUES ($1, $2)
		ON CONFLICT (dataset) DO UPDATE SET last_updated = EXCLUDED.last_updated`,
		dataset, lastUpdated)
	if err != nil {
		return fmt.Errorf("upsert watermark %q: %w", dataset, err)
	}
	return nil
}
