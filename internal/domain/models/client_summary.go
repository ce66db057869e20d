package models

import "time"

// RatioNotComputable is the sentinel stored in overnight-volume ratios
// when a client (or account) has zero total volume. It is distinct from
// a true 0.0 ratio, which means "traded but held nothing overnight".
const RatioNotComputable = -1.0

// ClientSummary is the denormalized per-client aggregate derived from
// every SourceAccountRow belonging to one client across both venues.
// All monetary and volume fields are USD-normalized. Exactly one row
// exists per client with at least one source account; clients with no
// source rows have no summary row.
type ClientSummary struct {
	ClientID      int64    `json:"client_id"`
	ClientName    string   `json:"client_name"`
	PrimaryServer Venue    `json:"primary_server"`
	Countries     []string `json:"countries"`
	Currencies    []string `json:"currencies"`

	AccountCount int     `json:"account_count"`
	AccountList  []int64 `json:"account_list"`

	TotalBalanceUSD     float64 `json:"total_balance_usd"`
	TotalCreditUSD      float64 `json:"total_credit_usd"`
	TotalFloatingPnLUSD float64 `json:"total_floating_pnl_usd"`
	TotalEquityUSD      float64 `json:"total_equity_usd"`

	TotalClosedProfitUSD float64 `json:"total_closed_profit_usd"`
	TotalCommissionUSD   float64 `json:"total_commission_usd"`

	TotalDepositUSD    float64 `json:"total_deposit_usd"`
	TotalWithdrawalUSD float64 `json:"total_withdrawal_usd"`
	NetDepositUSD      float64 `json:"net_deposit_usd"`

	TotalVolumeLots          float64 `json:"total_volume_lots"`
	TotalOvernightVolumeLots float64 `json:"total_overnight_volume_lots"`
	// OvernightVolumeRatio is overnight/total volume in [0,1], or
	// RatioNotComputable when total volume is zero.
	OvernightVolumeRatio float64 `json:"overnight_volume_ratio"`

	TotalClosedCount    int64 `json:"total_closed_count"`
	TotalOvernightCount int64 `json:"total_overnight_count"`

	ClosedBuyVolumeLots  float64 `json:"closed_buy_volume_lots"`
	ClosedBuyCount       int64   `json:"closed_buy_count"`
	ClosedBuyProfitUSD   float64 `json:"closed_buy_profit_usd"`
	ClosedBuySwapUSD     float64 `json:"closed_buy_swap_usd"`
	ClosedSellVolumeLots float64 `json:"closed_sell_volume_lots"`
	ClosedSellCount      int64   `json:"closed_sell_count"`
	ClosedSellProfitUSD  float64 `json:"closed_sell_profit_usd"`
	ClosedSellSwapUSD    float64 `json:"closed_sell_swap_usd"`

	LastUpdated time.Time `json:"last_updated"`
}

// ClientAccountDetail is the USD-normalized per-account snapshot backing
// the UI drill-down. The full detail set for a client is replaced on
// every refresh; rows are never partially updated.
type ClientAccountDetail struct {
	ClientID int64 `json:"client_id"`
	Login    int64 `json:"login"`
	Server   Venue `json:"server"`

	Currency  string `json:"currency"`
	UserName  string `json:"user_name"`
	UserGroup string `json:"user_group"`
	Country   string `json:"country"`

	BalanceUSD      float64 `json:"balance_usd"`
	CreditUSD       float64 `json:"credit_usd"`
	FloatingPnLUSD  float64 `json:"floating_pnl_usd"`
	EquityUSD       float64 `json:"equity_usd"`
	ClosedProfitUSD float64 `json:"closed_profit_usd"`
	CommissionUSD   float64 `json:"commission_usd"`
	DepositUSD      float64 `json:"deposit_usd"`
	WithdrawalUSD   float64 `json:"withdrawal_usd"`
	NetDepositUSD   float64 `json:"net_deposit_usd"`

	VolumeLots           float64 `json:"volume_lots"`
	OvernightVolumeLots  float64 `json:"overnight_volume_lots"`
	OvernightVolumeRatio float64 `json:"overnight_volume_ratio"`

	LastUpdated time.Time `json:"last_updated"`
}
