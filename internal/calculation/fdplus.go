package calculation

import (
	"time"

	"github.com/fdtrack/valuation/internal/domain"
	moneyutil "github.com/fdtrack/valuation/pkg/decimal"
	"github.com/shopspring/decimal"
)

// FD+ runs a fixed schedule: every paid month returns 10% of the original
// principal, half of it principal and half interest. After the full term the
// holder has received the principal back plus an equal amount of interest.
const FDPlusTermMonths = 20

var (
	fdPlusMonthlyReturn  = decimal.NewFromFloat(0.10)
	fdPlusInterestShare  = decimal.NewFromFloat(0.05)
	fdPlusPrincipalShare = decimal.NewFromFloat(0.05)
	fdPlusTerm           = decimal.NewFromInt(FDPlusTermMonths)
)

// ValueFDPlus values an FD+ investment. Gain is quantized to whole months and
// driven by the count of paid payouts, not by calendar time, so it does not
// tick between payouts.
func ValueFDPlus(inv *domain.Investment, now time.Time) domain.Snapshot {
	principal := nonNegative(inv.PrincipalAmount)
	ledger := ReducePayouts(inv.PayoutHistory, principal.Mul(fdPlusMonthlyReturn))

	completed := fdPlusMonthsCompleted(ledger.Paid)
	months := decimal.NewFromInt(int64(completed))
	gain := fdPlusGain(principal, completed)
	returned := principal.Mul(fdPlusPrincipalShare).Mul(months)

	status := domain.StatusActive
	if completed >= FDPlusTermMonths {
		status = domain.StatusCompleted
	}

	detail := &domain.FDPlusDetail{
		MonthlyPayout:        principal.Mul(fdPlusMonthlyReturn),
		TotalReceived:        principal.Mul(fdPlusMonthlyReturn).Mul(months),
		PrincipalReturned:    returned,
		OutstandingPrincipal: nonNegative(principal.Sub(returned)),
		MonthsCompleted:      completed,
		RemainingMonths:      FDPlusTermMonths - completed,
	}
	if status == domain.StatusActive {
		if next := nextPayoutDate(ledger.LastPaid, inv.Anchor()); !next.IsZero() {
			detail.NextPayoutDate = &next
		}
	}

	return domain.Snapshot{
		InvestmentID:      inv.ID,
		Type:              domain.ProductFDPlus,
		AsOf:              now,
		PrincipalInvested: principal,
		CurrentValue:      principal.Add(gain),
		TotalGain:         gain,
		GainPercentage:    moneyutil.Percent(gain, principal),
		GainPerSecond:     decimal.Zero,
		Status:            status,
		FDPlus:            detail,
	}
}

// fdPlusGain is the interest earned after the given number of completed
// months, capped at the term so it never exceeds the principal.
func fdPlusGain(principal decimal.Decimal, monthsCompleted int) decimal.Decimal {
	months := decimal.Min(decimal.NewFromInt(int64(monthsCompleted)), fdPlusTerm)
	if months.IsNegative() {
		return decimal.Zero
	}
	return principal.Mul(fdPlusInterestShare).Mul(months)
}

func fdPlusMonthsCompleted(paid int) int {
	if paid > FDPlusTermMonths {
		return FDPlusTermMonths
	}
	return paid
}
