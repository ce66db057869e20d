// Package normalize converts raw per-account values into USD-equivalent
// values. It is pure math with no storage or error conditions; the
// aggregation and persistence layers build on top of it.
package normalize

import "math"

// CurrencyCEN tags accounts whose ledger is denominated in hundredths
// of a unit ("cents"). Every monetary and volume field of such an
// account is divided by 100 on normalization.
const CurrencyCEN = "CEN"

// CurrencyUSD is the target denomination; USD values pass through.
const CurrencyUSD = "USD"

// amountDecimals matches the precision of the derived tables.
const amountDecimals = 4

// ratioDecimals is the precision of overnight-volume ratios.
const ratioDecimals = 3

// ToUSD converts a raw monetary or volume value into its USD-equivalent,
// rounded to 4 decimals. CEN values are divided by 100; every other
// currency passes through unchanged. Counts must not be normalized.
func ToUSD(value float64, currency string) float64 {
	if currency == CurrencyCEN {
		return Round(value/100, amountDecimals)
	}
	return Round(value, amountDecimals)
}

// Known reports whether the currency has defined normalization
// semantics. Unknown currencies still normalize (pass-through), but the
// aggregator logs them so bad reference data is visible.
func Known(currency string) bool {
	return currency == CurrencyCEN || currency == CurrencyUSD
}

// OvernightRatio returns overnight/total rounded to 3 decimals when
// total > 0, and exactly -1 otherwise. The sentinel means "not
// computable" and is distinct from a true 0 ratio.
func OvernightRatio(overnight, total float64) float64 {
	if total <= 0 {
		return -1
	}
	return Round(overnight/total, ratioDecimals)
}

// Round rounds half away from zero to the given number of decimals.
func Round(v float64, decimals int) float64 {
	p := math.Pow10(decimals)
	return math.Round(v*p) / p
}
