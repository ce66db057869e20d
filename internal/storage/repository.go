package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/fxlens/clientpulse/internal/domain/models"
)

// Repository defines the contract for all DB operations: source-table
// reads and writes relayed for the ingestion feed, and the derived
// client_summary / client_account_details mutations owned by the
// aggregator.
type Repository interface {
	// WithTx runs fn inside a single transaction, committing on nil and
	// rolling back otherwise.
	WithTx(ctx context.Context, fn func(tx *sql.Tx) error) error

	SourceAccountsByClient(ctx context.Context, tx *sql.Tx, clientID int64) ([]models.SourceAccountRow, error)
	DistinctSourceClientIDs(ctx context.Context) ([]int64, error)
	SourceClientOfLogin(ctx context.Context, tx *sql.Tx, venue models.Venue, login int64) (int64, bool, error)
	UpsertSourceAccount(ctx context.Context, tx *sql.Tx, row models.SourceAccountRow) error
	DeleteSourceAccount(ctx context.Context, tx *sql.Tx, venue models.Venue, login int64) (clientID int64, existed bool, err error)

	UpsertClientSummary(ctx context.Context, tx *sql.Tx, s models.ClientSummary) error
	ReplaceAccountDetails(ctx context.Context, tx *sql.Tx, clientID int64, details []models.ClientAccountDetail) error
	DeleteDerivedClient(ctx context.Context, tx *sql.Tx, clientID int64) error
	DerivedClientIDs(ctx context.Context) ([]int64, error)
	TruncateDerived(ctx context.Context) error

	SummaryPage(ctx context.Context, q SummaryQuery) ([]models.ClientSummary, int, error)
	AccountDetails(ctx context.Context, clientID int64) ([]models.ClientAccountDetail, error)
	RefreshStatus(ctx context.Context) (models.RefreshStatus, error)
	UpsertWatermark(ctx context.Context, dataset string, lastUpdated time.Time) error
}

type pgRepository struct {
	db *sql.DB
}

// NewRepository wraps an open Postgres handle.
func NewRepository(db *sql.DB) Repository {
	return &pgRepository{db: db}
}

func (r *pgRepository) WithTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

// sourceTable maps a venue to its source table. Venues are a closed
// set; anything else is a caller bug surfaced as an error.
func sourceTable(venue models.Venue) (string, error) {
	switch venue {
	case models.VenueLive:
		return "account_summary_live", nil
	case models.VenueLegacy:
		return "account_summary_legacy", nil
	default:
		return "", fmt.Errorf("unknown venue %q", venue)
	}
}

// sourceColumns is the shared projection for both venue tables. Raw
// numerics default to 0 and text to '' so the aggregation math never
// sees NULLs.
const sourceColumns = `
	login, COALESCE(client_id, 0), COALESCE(currency, ''), COALESCE(user_name, ''),
	COALESCE(user_group, ''), COALESCE(country, ''),
	COALESCE(balance, 0), COALESCE(credit, 0), COALESCE(floating_pnl, 0), COALESCE(equity, 0),
	COALESCE(closed_buy_volume_lots, 0), COALESCE(closed_buy_count, 0),
	COALESCE(closed_buy_profit, 0), COALESCE(closed_buy_swap, 0),
	COALESCE(closed_sell_volume_lots, 0), COALESCE(closed_sell_count, 0),
	COALESCE(closed_sell_profit, 0), COALESCE(closed_sell_swap, 0),
	COALESCE(closed_buy_overnight_volume_lots, 0), COALESCE(closed_buy_overnight_count, 0),
	COALESCE(closed_buy_overnight_profit, 0), COALESCE(closed_buy_overnight_swap, 0),
	COALESCE(closed_sell_overnight_volume_lots, 0), COALESCE(closed_sell_overnight_count, 0),
	COALESCE(closed_sell_overnight_profit, 0), COALESCE(closed_sell_overnight_swap, 0),
	COALESCE(commission, 0), COALESCE(deposit_amount, 0), COALESCE(withdrawal_amount, 0),
	last_updated`

// SourceAccountsByClient union-scans both venue tables for one client.
// It runs on the provided transaction so the dispatcher sees its own
// uncommitted source write; tx may be nil for a standalone read.
func (r *pgRepository) SourceAccountsByClient(ctx context.Context, tx *sql.Tx, clientID int64) ([]models.SourceAccountRow, error) {
	query := fmt.Sprintf(`
		SELECT %s, 'live' AS venue FROM account_summary_live WHERE client_id = $1
		UNION ALL
		SELECT %s, 'legacy' AS venue FROM account_summary_legacy WHERE client_id = $2`,
		sourceColumns, sourceColumns)

	rows, err := r.queryContext(ctx, tx, query, clientID, clientID)
	if err != nil {
		return nil, fmt.Errorf("scan source accounts for client %d: %w", clientID, err)
	}
	defer func() { _ = rows.Close() }()

	var out []models.SourceAccountRow
	for rows.Next() {
		var rec models.SourceAccountRow
		var lastUpdated sql.NullTime
		var venue string
		if err := rows.Scan(
			&rec.Login, &rec.ClientID, &rec.Currency, &rec.UserName,
			&rec.UserGroup, &rec.Country,
			&rec.Balance, &rec.Credit, &rec.FloatingPnL, &rec.Equity,
			&rec.ClosedBuyVolumeLots, &rec.ClosedBuyCount,
			&rec.ClosedBuyProfit, &rec.ClosedBuySwap,
			&rec.ClosedSellVolumeLots, &rec.ClosedSellCount,
			&rec.ClosedSellProfit, &rec.ClosedSellSwap,
			&rec.ClosedBuyOvernightVolumeLots, &rec.ClosedBuyOvernightCount,
			&rec.ClosedBuyOvernightProfit, &rec.ClosedBuyOvernightSwap,
			&rec.ClosedSellOvernightVolumeLots, &rec.ClosedSellOvernightCount,
			&rec.ClosedSellOvernightProfit, &rec.ClosedSellOvernightSwap,
			&rec.Commission, &rec.DepositAmount, &rec.WithdrawalAmount,
			&lastUpdated, &venue,
		); err != nil {
			return nil, fmt.Errorf("scan source row: %w", err)
		}
		rec.Venue = models.Venue(venue)
		if lastUpdated.Valid {
			rec.LastUpdated = lastUpdated.Time
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// DistinctSourceClientIDs enumerates every client present in either
// venue table, ascending. Rows with NULL client_id are excluded; they
// cannot be attributed to a client.
func (r *pgRepository) DistinctSourceClientIDs(ctx context.Context) ([]int64, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT client_id FROM (
			SELECT client_id FROM account_summary_live WHERE client_id IS NOT NULL
			UNION
			SELECT client_id FROM account_summary_legacy WHERE client_id IS NOT NULL
		) s ORDER BY client_id ASC`)
	if err != nil {
		return nil, fmt.Errorf("enumerate source clients: %w", err)
	}
	defer func() { _ = rows.Close() }()
	return scanIDs(rows)
}

// SourceClientOfLogin returns the current owner of a login on one
// venue. The dispatcher uses it as the pre-image so the old client is
// also refreshed when an upsert moves an account between clients.
func (r *pgRepository) SourceClientOfLogin(ctx context.Context, tx *sql.Tx, venue models.Venue, login int64) (int64, bool, error) {
	table, err := sourceTable(venue)
	if err != nil {
		return 0, false, err
	}
	var clientID sql.NullInt64
	err = r.queryRowContext(ctx, tx,
		fmt.Sprintf(`SELECT client_id FROM %s WHERE login = $1`, table), login,
	).Scan(&clientID)
	if err == sql.ErrNoRows {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("lookup login %d on %s: %w", login, venue, err)
	}
	// A NULL client_id still means the login exists; it reports as
	// client 0, which refreshes as a no-op.
	return clientID.Int64, true, nil
}

func (r *pgRepository) UpsertSourceAccount(ctx context.Context, tx *sql.Tx, row models.SourceAccountRow) error {
	table, err := sourceTable(row.Venue)
	if err != nil {
		return err
	}
	query := fmt.Sprintf(`
		INSERT INTO %s (
			login, client_id, currency, user_name, user_group, country,
			balance, credit, floating_pnl, equity,
			closed_buy_volume_lots, closed_buy_count, closed_buy_profit, closed_buy_swap,
			closed_sell_volume_lots, closed_sell_count, closed_sell_profit, closed_sell_swap,
			closed_buy_overnight_volume_lots, closed_buy_overnight_count,
			closed_buy_overnight_profit, closed_buy_overnight_swap,
			closed_sell_overnight_volume_lots, closed_sell_overnight_count,
			closed_sell_overnight_profit, closed_sell_overnight_swap,
			commission, deposit_amount, withdrawal_amount, last_updated
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,
			$19,$20,$21,$22,$23,$24,$25,$26,$27,$28,$29,$30)
		ON CONFLICT (login) DO UPDATE SET
			client_id = EXCLUDED.client_id,
			currency = EXCLUDED.currency,
			user_name = EXCLUDED.user_name,
			user_group = EXCLUDED.user_group,
			country = EXCLUDED.country,
			balance = EXCLUDED.balance,
			credit = EXCLUDED.credit,
			floating_pnl = EXCLUDED.floating_pnl,
			equity = EXCLUDED.equity,
			closed_buy_volume_lots = EXCLUDED.closed_buy_volume_lots,
			closed_buy_count = EXCLUDED.closed_buy_count,
			closed_buy_profit = EXCLUDED.closed_buy_profit,
			closed_buy_swap = EXCLUDED.closed_buy_swap,
			closed_sell_volume_lots = EXCLUDED.closed_sell_volume_lots,
			closed_sell_count = EXCLUDED.closed_sell_count,
			closed_sell_profit = EXCLUDED.closed_sell_profit,
			closed_sell_swap = EXCLUDED.closed_sell_swap,
			closed_buy_overnight_volume_lots = EXCLUDED.closed_buy_overnight_volume_lots,
			closed_buy_overnight_count = EXCLUDED.closed_buy_overnight_count,
			closed_buy_overnight_profit = EXCLUDED.closed_buy_overnight_profit,
			closed_buy_overnight_swap = EXCLUDED.closed_buy_overnight_swap,
			closed_sell_overnight_volume_lots = EXCLUDED.closed_sell_overnight_volume_lots,
			closed_sell_overnight_count = EXCLUDED.closed_sell_overnight_count,
			closed_sell_overnight_profit = EXCLUDED.closed_sell_overnight_profit,
			closed_sell_overnight_swap = EXCLUDED.closed_sell_overnight_swap,
			commission = EXCLUDED.commission,
			deposit_amount = EXCLUDED.deposit_amount,
			withdrawal_amount = EXCLUDED.withdrawal_amount,
			last_updated = EXCLUDED.last_updated`, table)

	_, err = r.execContext(ctx, tx, query,
		row.Login, row.ClientID, row.Currency, row.UserName, row.UserGroup, row.Country,
		row.Balance, row.Credit, row.FloatingPnL, row.Equity,
		row.ClosedBuyVolumeLots, row.ClosedBuyCount, row.ClosedBuyProfit, row.ClosedBuySwap,
		row.ClosedSellVolumeLots, row.ClosedSellCount, row.ClosedSellProfit, row.ClosedSellSwap,
		row.ClosedBuyOvernightVolumeLots, row.ClosedBuyOvernightCount,
		row.ClosedBuyOvernightProfit, row.ClosedBuyOvernightSwap,
		row.ClosedSellOvernightVolumeLots, row.ClosedSellOvernightCount,
		row.ClosedSellOvernightProfit, row.ClosedSellOvernightSwap,
		row.Commission, row.DepositAmount, row.WithdrawalAmount, row.LastUpdated,
	)
	if err != nil {
		return fmt.Errorf("upsert source account %d on %s: %w", row.Login, row.Venue, err)
	}
	return nil
}

func (r *pgRepository) DeleteSourceAccount(ctx context.Context, tx *sql.Tx, venue models.Venue, login int64) (int64, bool, error) {
	table, err := sourceTable(venue)
	if err != nil {
		return 0, false, err
	}
	var clientID sql.NullInt64
	err = r.queryRowContext(ctx, tx,
		fmt.Sprintf(`DELETE FROM %s WHERE login = $1 RETURNING client_id`, table), login,
	).Scan(&clientID)
	if err == sql.ErrNoRows {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("delete source account %d on %s: %w", login, venue, err)
	}
	return clientID.Int64, true, nil
}

func scanIDs(rows *sql.Rows) ([]int64, error) {
	var out []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan client id: %w", err)
		}
		out = append(out, id)
	}
	return out, rows.Err()
}

// Tx-or-pool indirections: refresh operations run inside the refresh
// transaction, API reads go straight to the pool.

func (r *pgRepository) queryContext(ctx context.Context, tx *sql.Tx, query string, args ...interface{}) (*sql.Rows, error) {
	if tx != nil {
		return tx.QueryContext(ctx, query, args...)
	}
	return r.db.QueryContext(ctx, query, args...)
}

func (r *pgRepository) queryRowContext(ctx context.Context, tx *sql.Tx, query string, args ...interface{}) *sql.Row {
	if tx != nil {
		return tx.QueryRowContext(ctx, query, args...)
	}
	return r.db.QueryRowContext(ctx, query, args...)
}

func (r *pgRepository) execContext(ctx context.Context, tx *sql.Tx, query string, args ...interface{}) (sql.Result, error) {
	if tx != nil {
		return tx.ExecContext(ctx, query, args...)
	}
	return r.db.ExecContext(ctx, query, args...)
}
