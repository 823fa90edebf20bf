package model

import "github.com/shopspring/decimal"

// Prices and balances are plain JSON numbers in every document we read or
// write. MarshalJSONWithoutQuotes is a package-level switch in decimal, so
// importing model turns it on for the whole binary.
func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// FormatMoney renders an amount with two decimals.
func FormatMoney(d decimal.Decimal) string {
	return d.StringFixed(2)
}
