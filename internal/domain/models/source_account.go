package models

import "time"

// Venue identifies one of the two trading-platform deployments feeding
// this service. Each venue owns its own source table.
type Venue string

const (
	// VenueLive is the current-generation platform and the tie-break
	// winner when a client holds the same number of accounts on both
	// venues.
	VenueLive Venue = "live"

	// VenueLegacy is the older platform kept online for existing books.
	VenueLegacy Venue = "legacy"
)

// Valid reports whether v names one of the two known venues.
func (v Venue) Valid() bool {
	return v == VenueLive || v == VenueLegacy
}

// SourceAccountRow is one per-account row from a venue source table.
// The rows are written by the external ETL feed; this service only
// reads them (and relays writes through the dispatcher on the feed's
// behalf). All monetary and volume fields are in the account's own
// currency; CurrencyCEN accounts carry hundredths of a unit.
type SourceAccountRow struct {
	Login    int64
	ClientID int64
	Venue    Venue

	Currency  string
	UserName  string
	UserGroup string
	Country   string

	Balance     float64
	Credit      float64
	FloatingPnL float64
	Equity      float64

	ClosedBuyVolumeLots  float64
	ClosedBuyCount       int64
	ClosedBuyProfit      float64
	ClosedBuySwap        float64
	ClosedSellVolumeLots float64
	ClosedSellCount      int64
	ClosedSellProfit     float64
	ClosedSellSwap       float64

	ClosedBuyOvernightVolumeLots  float64
	ClosedBuyOvernightCount       int64
	ClosedBuyOvernightProfit      float64
	ClosedBuyOvernightSwap        float64
	ClosedSellOvernightVolumeLots float64
	ClosedSellOvernightCount      int64
	ClosedSellOvernightProfit     float64
	ClosedSellOvernightSwap       float64

	Commission       float64
	DepositAmount    float64
	WithdrawalAmount float64

	LastUpdated time.Time
}
