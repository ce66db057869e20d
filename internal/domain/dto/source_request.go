package dto

import (
	"time"

	"github.com/fxlens/clientpulse/internal/domain/models"
)

// SourceAccountRequest is the body accepted by
// PUT /api/v1/source/{venue}/accounts. It mirrors the venue feed's
// per-account record; the venue comes from the URL, not the body.
type SourceAccountRequest struct {
	Login    int64 `json:"login" binding:"required,gt=0" example:"100234"`
	ClientID int64 `json:"client_id" example:"42"`

	Currency  string `json:"currency" example:"USD"`
	UserName  string `json:"user_name" example:"Jane Trader"`
	UserGroup string `json:"user_group" example:"real\\standard"`
	Country   string `json:"country" example:"BR"`

	Balance     float64 `json:"balance" example:"1500.25"`
	Credit      float64 `json:"credit" example:"0"`
	FloatingPnL float64 `json:"floating_pnl" example:"-12.4"`
	Equity      float64 `json:"equity" example:"1487.85"`

	ClosedBuyVolumeLots  float64 `json:"closed_buy_volume_lots" example:"10.5"`
	ClosedBuyCount       int64   `json:"closed_buy_count" example:"12"`
	ClosedBuyProfit      float64 `json:"closed_buy_profit" example:"320.1"`
	ClosedBuySwap        float64 `json:"closed_buy_swap" example:"-1.2"`
	ClosedSellVolumeLots float64 `json:"closed_sell_volume_lots" example:"8.25"`
	ClosedSellCount      int64   `json:"closed_sell_count" example:"9"`
	ClosedSellProfit     float64 `json:"closed_sell_profit" example:"-40.6"`
	ClosedSellSwap       float64 `json:"closed_sell_swap" example:"0"`

	ClosedBuyOvernightVolumeLots  float64 `json:"closed_buy_overnight_volume_lots" example:"2.5"`
	ClosedBuyOvernightCount       int64   `json:"closed_buy_overnight_count" example:"3"`
	ClosedBuyOvernightProfit      float64 `json:"closed_buy_overnight_profit" example:"55.0"`
	ClosedBuyOvernightSwap        float64 `json:"closed_buy_overnight_swap" example:"-0.8"`
	ClosedSellOvernightVolumeLots float64 `json:"closed_sell_overnight_volume_lots" example:"1.75"`
	ClosedSellOvernightCount      int64   `json:"closed_sell_overnight_count" example:"2"`
	ClosedSellOvernightProfit     float64 `json:"closed_sell_overnight_profit" example:"-10.2"`
	ClosedSellOvernightSwap       float64 `json:"closed_sell_overnight_swap" example:"0"`

	Commission       float64 `json:"commission" example:"-15.75"`
	DepositAmount    float64 `json:"deposit_amount" example:"2000"`
	WithdrawalAmount float64 `json:"withdrawal_amount" example:"500"`

	LastUpdated *time.Time `json:"last_updated" example:"2025-01-01T12:00:00Z"`
}

// ToModel converts the request into a SourceAccountRow for the given
// venue. A missing last_updated defaults to the current time.
func (r SourceAccountRequest) ToModel(venue models.Venue) models.SourceAccountRow {
	updated := time.Now().UTC()
	if r.LastUpdated != nil {
		updated = *r.LastUpdated
	}
	return models.SourceAccountRow{
		Login:    r.Login,
		ClientID: r.ClientID,
		Venue:    venue,

		Currency:  r.Currency,
		UserName:  r.UserName,
		UserGroup: r.UserGroup,
		Country:   r.Country,

		Balance:     r.Balance,
		Credit:      r.Credit,
		FloatingPnL: r.FloatingPnL,
		Equity:      r.Equity,

		ClosedBuyVolumeLots:  r.ClosedBuyVolumeLots,
		ClosedBuyCount:       r.ClosedBuyCount,
		ClosedBuyProfit:      r.ClosedBuyProfit,
		ClosedBuySwap:        r.ClosedBuySwap,
		ClosedSellVolumeLots: r.ClosedSellVolumeLots,
		ClosedSellCount:      r.ClosedSellCount,
		ClosedSellProfit:     r.ClosedSellProfit,
		ClosedSellSwap:       r.ClosedSellSwap,

		ClosedBuyOvernightVolumeLots:  r.ClosedBuyOvernightVolumeLots,
		ClosedBuyOvernightCount:       r.ClosedBuyOvernightCount,
		ClosedBuyOvernightProfit:      r.ClosedBuyOvernightProfit,
		ClosedBuyOvernightSwap:        r.ClosedBuyOvernightSwap,
		ClosedSellOvernightVolumeLots: r.ClosedSellOvernightVolumeLots,
		ClosedSellOvernightCount:      r.ClosedSellOvernightCount,
		ClosedSellOvernightProfit:     r.ClosedSellOvernightProfit,
		ClosedSellOvernightSwap:       r.ClosedSellOvernightSwap,

		Commission:       r.Commission,
		DepositAmount:    r.DepositAmount,
		WithdrawalAmount: r.WithdrawalAmount,

		LastUpdated: updated,
	}
}
