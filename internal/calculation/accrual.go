package calculation

import (
	"time"

	"github.com/shopspring/decimal"
)

// SecondsPerYear is the accrual year: 365 days, no leap adjustment.
const SecondsPerYear = 365 * 24 * 3600

var (
	secondsPerYear = decimal.NewFromInt(SecondsPerYear)
	millisPerYear  = decimal.NewFromInt(SecondsPerYear * 1000)
	monthsPerYear  = decimal.NewFromInt(12)
)

// PerSecond returns the simple interest earned each second on principal at
// the given annual rate. Non-positive inputs earn nothing.
func PerSecond(principal, annualRate decimal.Decimal) decimal.Decimal {
	if !principal.IsPositive() || !annualRate.IsPositive() {
		return decimal.Zero
	}
	return principal.Mul(annualRate).Div(secondsPerYear)
}

// Accrue returns the simple (non-compounding) interest earned on principal
// between start and now, prorated to the millisecond so a once-per-second
// re-render ticks smoothly. It is zero when now is not after start or start
// is unknown.
func Accrue(principal, annualRate decimal.Decimal, start, now time.Time) decimal.Decimal {
	if start.IsZero() || !now.After(start) {
		return decimal.Zero
	}
	if !principal.IsPositive() || !annualRate.IsPositive() {
		return decimal.Zero
	}
	// Divide last so whole periods come out exact.
	elapsedMillis := decimal.NewFromInt(now.Sub(start).Milliseconds())
	return principal.Mul(annualRate).Mul(elapsedMillis).Div(millisPerYear)
}
