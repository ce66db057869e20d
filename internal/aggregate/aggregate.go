// Package aggregate computes one client's derived state from its raw
// source rows. It is pure: the transactional scan/upsert mechanics live
// in the storage and refresh packages, which makes this math directly
// unit-testable.
package aggregate

import (
	"sort"

	"github.com/fxlens/clientpulse/internal/domain/models"
	"github.com/fxlens/clientpulse/internal/normalize"
)

// Build computes the ClientSummary and the full ClientAccountDetail set
// for one client from its source rows across both venues. rows must all
// belong to the same client and must be non-empty; callers handle the
// empty case (client exited) themselves.
//
// defaultVenue wins the primary-server tie-break when the client holds
// the same number of accounts on both venues.
func Build(clientID int64, rows []models.SourceAccountRow, defaultVenue models.Venue) (models.ClientSummary, []models.ClientAccountDetail) {
	details := make([]models.ClientAccountDetail, 0, len(rows))
	for _, r := range rows {
		details = append(details, buildDetail(r))
	}

	// Deterministic detail order: venue first, then login, matching the
	// drill-down presentation order.
	sort.Slice(details, func(i, j int) bool {
		if details[i].Server != details[j].Server {
			return details[i].Server < details[j].Server
		}
		return details[i].Login < details[j].Login
	})

	s := models.ClientSummary{ClientID: clientID}

	venueCounts := map[models.Venue]int{}
	countrySet := map[string]struct{}{}
	currencySet := map[string]struct{}{}

	for _, d := range details {
		venueCounts[d.Server]++
		if d.Country != "" {
			countrySet[d.Country] = struct{}{}
		}
		if d.Currency != "" {
			currencySet[d.Currency] = struct{}{}
		}

		s.AccountList = append(s.AccountList, d.Login)

		s.TotalBalanceUSD += d.BalanceUSD
		s.TotalCreditUSD += d.CreditUSD
		s.TotalFloatingPnLUSD += d.FloatingPnLUSD
		s.TotalEquityUSD += d.EquityUSD
		s.TotalClosedProfitUSD += d.ClosedProfitUSD
		s.TotalCommissionUSD += d.CommissionUSD
		s.TotalDepositUSD += d.DepositUSD
		s.TotalWithdrawalUSD += d.WithdrawalUSD
		s.NetDepositUSD += d.NetDepositUSD
		s.TotalVolumeLots += d.VolumeLots
		s.TotalOvernightVolumeLots += d.OvernightVolumeLots

		if d.LastUpdated.After(s.LastUpdated) {
			s.LastUpdated = d.LastUpdated
		}
	}

	for _, r := range rows {
		s.TotalClosedCount += r.ClosedBuyCount + r.ClosedSellCount
		s.TotalOvernightCount += r.ClosedBuyOvernightCount + r.ClosedSellOvernightCount

		s.ClosedBuyVolumeLots += normalize.ToUSD(r.ClosedBuyVolumeLots, r.Currency)
		s.ClosedBuyCount += r.ClosedBuyCount
		s.ClosedBuyProfitUSD += normalize.ToUSD(r.ClosedBuyProfit, r.Currency)
		s.ClosedBuySwapUSD += normalize.ToUSD(r.ClosedBuySwap, r.Currency)
		s.ClosedSellVolumeLots += normalize.ToUSD(r.ClosedSellVolumeLots, r.Currency)
		s.ClosedSellCount += r.ClosedSellCount
		s.ClosedSellProfitUSD += normalize.ToUSD(r.ClosedSellProfit, r.Currency)
		s.ClosedSellSwapUSD += normalize.ToUSD(r.ClosedSellSwap, r.Currency)
	}

	s.AccountCount = len(details)
	sort.Slice(s.AccountList, func(i, j int) bool { return s.AccountList[i] < s.AccountList[j] })
	s.Countries = sortedKeys(countrySet)
	s.Currencies = sortedKeys(currencySet)
	s.ClientName = pickClientName(rows)
	s.PrimaryServer = primaryServer(venueCounts, defaultVenue)
	s.OvernightVolumeRatio = normalize.OvernightRatio(s.TotalOvernightVolumeLots, s.TotalVolumeLots)

	roundSummary(&s)
	return s, details
}

func buildDetail(r models.SourceAccountRow) models.ClientAccountDetail {
	cur := r.Currency

	deposit := normalize.ToUSD(r.DepositAmount, cur)
	withdrawal := normalize.ToUSD(r.WithdrawalAmount, cur)
	volume := normalize.ToUSD(r.ClosedBuyVolumeLots+r.ClosedSellVolumeLots, cur)
	overnight := normalize.ToUSD(r.ClosedBuyOvernightVolumeLots+r.ClosedSellOvernightVolumeLots, cur)

	return models.ClientAccountDetail{
		ClientID:  r.ClientID,
		Login:     r.Login,
		Server:    r.Venue,
		Currency:  cur,
		UserName:  r.UserName,
		UserGroup: r.UserGroup,
		Country:   r.Country,

		BalanceUSD:     normalize.ToUSD(r.Balance, cur),
		CreditUSD:      normalize.ToUSD(r.Credit, cur),
		FloatingPnLUSD: normalize.ToUSD(r.FloatingPnL, cur),
		EquityUSD:      normalize.ToUSD(r.Equity, cur),
		ClosedProfitUSD: normalize.ToUSD(
			r.ClosedBuyProfit+r.ClosedSellProfit+r.ClosedBuySwap+r.ClosedSellSwap, cur),
		CommissionUSD: normalize.ToUSD(r.Commission, cur),
		DepositUSD:    deposit,
		WithdrawalUSD: withdrawal,
		// Normalized per row before subtraction so mixed-currency
		// clients convert each leg correctly.
		NetDepositUSD: normalize.Round(deposit-withdrawal, 4),

		VolumeLots:           volume,
		OvernightVolumeLots:  overnight,
		OvernightVolumeRatio: normalize.OvernightRatio(overnight, volume),

		LastUpdated: r.LastUpdated,
	}
}

// pickClientName returns the first non-empty user name ordered by login
// ascending: an arbitrary but deterministic pick among the accounts.
func pickClientName(rows []models.SourceAccountRow) string {
	sorted := make([]models.SourceAccountRow, len(rows))
	copy(sorted, rows)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Login < sorted[j].Login })
	for _, r := range sorted {
		if r.UserName != "" {
			return r.UserName
		}
	}
	return ""
}

func primaryServer(counts map[models.Venue]int, defaultVenue models.Venue) models.Venue {
	other := models.VenueLegacy
	if defaultVenue == models.VenueLegacy {
		other = models.VenueLive
	}
	if counts[other] > counts[defaultVenue] {
		return other
	}
	return defaultVenue
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// roundSummary re-rounds the accumulated sums to 4 decimals so the
// stored values do not accumulate float drift across many accounts.
func roundSummary(s *models.ClientSummary) {
	for _, f := range []*float64{
		&s.TotalBalanceUSD, &s.TotalCreditUSD, &s.TotalFloatingPnLUSD, &s.TotalEquityUSD,
		&s.TotalClosedProfitUSD, &s.TotalCommissionUSD,
		&s.TotalDepositUSD, &s.TotalWithdrawalUSD, &s.NetDepositUSD,
		&s.TotalVolumeLots, &s.TotalOvernightVolumeLots,
		&s.ClosedBuyVolumeLots, &s.ClosedBuyProfitUSD, &s.ClosedBuySwapUSD,
		&s.ClosedSellVolumeLots, &s.ClosedSellProfitUSD, &s.ClosedSellSwapUSD,
	} {
		*f = normalize.Round(*f, 4)
	}
}
