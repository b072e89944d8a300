// Package decimal holds the display and safe-arithmetic helpers shared by the
// valuation and output packages.
package decimal

import (
	"strings"

	gomoney "github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// DefaultCurrency is used for display when a record carries no currency code.
const DefaultCurrency = "INR"

// SafeDiv divides a by b, returning zero when b is zero.
func SafeDiv(a, b decimal.Decimal) decimal.Decimal {
	if b.IsZero() {
		return decimal.Zero
	}
	return a.Div(b)
}

// Percent returns part as a percentage of whole, zero when whole is zero.
func Percent(part, whole decimal.Decimal) decimal.Decimal {
	return SafeDiv(part.Mul(decimal.NewFromInt(100)), whole)
}

// FormatCurrency formats an amount with the currency's symbol, grouping and
// fraction digits. Rounding happens here only; computed values are never
// rounded.
func FormatCurrency(amount decimal.Decimal, currency string) string {
	code := strings.ToUpper(strings.TrimSpace(currency))
	if code == "" {
		code = DefaultCurrency
	}
	cur := gomoney.GetCurrency(code)
	if cur == nil {
		return amount.StringFixed(2) + " " + code
	}
	minor := amount.Shift(int32(cur.Fraction)).Round(0)
	return gomoney.New(minor.IntPart(), code).Display()
}

// FormatPercentage formats a decimal as a percentage with 2 decimals.
func FormatPercentage(amount decimal.Decimal) string { return amount.StringFixed(2) + "%" }
