package calculation

import (
	"time"

	"github.com/fdtrack/valuation/internal/domain"
	"github.com/fdtrack/valuation/pkg/dateutil"
	moneyutil "github.com/fdtrack/valuation/pkg/decimal"
	"github.com/shopspring/decimal"
)

// ValueFD values a fixed deposit. InterestRate is a monthly fraction; the
// live value accrues per second at rate*12 from the activation date, while
// disbursements are counted from paid payout records only.
func ValueFD(inv *domain.Investment, now time.Time) domain.Snapshot {
	principal := nonNegative(inv.PrincipalAmount)
	monthlyRate := nonNegative(inv.InterestRate)
	annualRate := monthlyRate.Mul(monthsPerYear)
	anchor := inv.Anchor()

	monthlyPayout := principal.Mul(monthlyRate)
	ledger := ReducePayouts(inv.PayoutHistory, monthlyPayout)

	// A closed deposit stops accruing at its last disbursement, or never
	// accrues when nothing was disbursed.
	accrueUntil := now
	perSecond := PerSecond(principal, annualRate)
	if inv.IsCompleted() {
		switch {
		case ledger.LastPaid.IsZero():
			accrueUntil = anchor
		case ledger.LastPaid.Before(now):
			accrueUntil = ledger.LastPaid
		}
		perSecond = decimal.Zero
	}
	if !now.After(anchor) {
		perSecond = decimal.Zero
	}
	gain := Accrue(principal, annualRate, anchor, accrueUntil)

	monthsElapsed := dateutil.MonthsElapsed(anchor, now)
	status, lockRemaining := fdLockStatus(inv.LockInPeriodMonths, monthsElapsed)
	if inv.IsCompleted() {
		status = domain.StatusCompleted
	}

	detail := &domain.FDDetail{
		MonthlyPayout:   monthlyPayout,
		TotalReceived:   ledger.TotalPaid,
		PendingInterest: nonNegative(gain.Sub(ledger.TotalPaid)),
		PaidPayouts:     ledger.Paid,
		MonthsElapsed:   monthsElapsed,
		LockRemaining:   lockRemaining,
	}
	if next := nextPayoutDate(ledger.LastPaid, anchor); !next.IsZero() && !inv.IsCompleted() {
		detail.NextPayoutDate = &next
	}

	return domain.Snapshot{
		InvestmentID:      inv.ID,
		Type:              domain.ProductFD,
		AsOf:              now,
		PrincipalInvested: principal,
		CurrentValue:      principal.Add(gain),
		TotalGain:         gain,
		GainPercentage:    moneyutil.Percent(gain, principal),
		GainPerSecond:     perSecond,
		Status:            status,
		FD:                detail,
	}
}

// fdLockStatus applies the lock-in rule. An absent lock-in period means the
// deposit was never locked.
func fdLockStatus(lockInMonths, monthsElapsed int) (string, int) {
	if lockInMonths <= 0 || monthsElapsed >= lockInMonths {
		return domain.StatusUnlocked, 0
	}
	return domain.StatusLocked, lockInMonths - monthsElapsed
}

// nextPayoutDate is one month after the latest paid payout, or one month
// after the anchor when nothing has been paid yet.
func nextPayoutDate(lastPaid, anchor time.Time) time.Time {
	if !lastPaid.IsZero() {
		return dateutil.AddMonths(lastPaid, 1)
	}
	return dateutil.AddMonths(anchor, 1)
}

func nonNegative(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}
