// Package money holds the 2-decimal-place arithmetic the ledger uses for all
// posted amounts. Amounts travel as float64 through the domain; every value
// that lands in a posting goes through Round2 first so summation never drifts
// past a cent.
package money

import "github.com/shopspring/decimal"

// Round2 rounds a monetary value to 2 decimal places, half away from zero.
func Round2(v float64) float64 {
	f, _ := decimal.NewFromFloat(v).Round(2).Float64()
	return f
}

// DailyShare spreads a monthly amount evenly across the days of a month,
// rounded per day. The divisor changes with the month, so partial months
// pro-rate on their own.
func DailyShare(monthly float64, daysInMonth int) float64 {
	f, _ := decimal.NewFromFloat(monthly).
		Div(decimal.NewFromInt(int64(daysInMonth))).
		Round(2).
		Float64()
	return f
}
