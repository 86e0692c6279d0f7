package utils

import "github.com/shopspring/decimal"

// FormatCurrency renders an amount with exactly two decimals.
func FormatCurrency(amount decimal.Decimal) string {
	return amount.StringFixed(2)
}
