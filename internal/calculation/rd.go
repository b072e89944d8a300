package calculation

import (
	"time"

	"github.com/fdtrack/valuation/internal/domain"
	"github.com/fdtrack/valuation/pkg/dateutil"
	moneyutil "github.com/fdtrack/valuation/pkg/decimal"
	"github.com/shopspring/decimal"
)

// ValueRD values a recurring deposit. InterestRate is annual. Only paid
// installments count as invested, and each earns simple monthly interest for
// the months it has been held: with n equal deposits of P that is
// P * rate * n(n+1)/2 / 12. The value moves only when the ledger does, so
// GainPerSecond is always zero.
func ValueRD(inv *domain.Investment, now time.Time) domain.Snapshot {
	rate := nonNegative(inv.InterestRate)
	amount := rdInstallmentAmount(inv)
	anchor := inv.Anchor()
	ledger := ReduceInstallments(inv.Installments, amount)

	invested := ledger.TotalDeposited
	interest := decimal.Zero
	// Nothing has been held for any time until the account is past activation.
	if anchor.IsZero() || now.After(anchor) {
		interest = rdInterest(ledger.PaidAmounts, rate)
	}

	period := inv.RDPeriodMonths
	detail := &domain.RDDetail{
		InstallmentAmount:   amount,
		PaidInstallments:    ledger.Paid,
		PendingInstallments: ledger.Pending,
		MaturityValue:       decimal.Zero,
		AccruedInterest:     RDLiveInterest(inv, now),
	}
	status := domain.StatusActive
	if period > 0 {
		detail.RemainingInstallments = max(0, period-ledger.Paid)
		detail.MaturityValue = RDMaturityValue(amount, rate, period)
		if !anchor.IsZero() {
			maturity := dateutil.AddMonths(anchor, period)
			detail.MaturityDate = &maturity
			if ledger.Paid >= period && !now.Before(maturity) {
				status = domain.StatusMatured
			}
		}
	}
	if inv.IsCompleted() {
		status = domain.StatusMatured
	}
	if !ledger.NextDue.IsZero() && status == domain.StatusActive {
		next := ledger.NextDue
		detail.NextDueDate = &next
	}

	return domain.Snapshot{
		InvestmentID:      inv.ID,
		Type:              domain.ProductRD,
		AsOf:              now,
		PrincipalInvested: invested,
		CurrentValue:      invested.Add(interest),
		TotalGain:         interest,
		GainPercentage:    moneyutil.Percent(interest, invested),
		GainPerSecond:     decimal.Zero,
		Status:            status,
		RD:                detail,
	}
}

// RDMaturityValue is the value after every one of period installments has
// been paid: the deposits plus the triangular interest at n = period.
func RDMaturityValue(installment, annualRate decimal.Decimal, period int) decimal.Decimal {
	if period <= 0 || !installment.IsPositive() {
		return decimal.Zero
	}
	n := decimal.NewFromInt(int64(period))
	deposits := installment.Mul(n)
	return deposits.Add(triangularInterest(installment, annualRate, period))
}

// RDLiveInterest is the per-second formulation of RD interest: each paid
// installment accrues from its due date (or its month slot after activation
// when the due date is missing). For a regular monthly schedule it agrees with
// the triangular form to within day-count rounding.
func RDLiveInterest(inv *domain.Investment, now time.Time) decimal.Decimal {
	rate := nonNegative(inv.InterestRate)
	amount := rdInstallmentAmount(inv)
	anchor := inv.Anchor()

	total := decimal.Zero
	slot := 0
	for _, in := range inv.Installments {
		if !in.Status.IsPaid() {
			slot++
			continue
		}
		deposit := in.AmountExpected
		if !deposit.IsPositive() {
			deposit = amount
		}
		start := in.DueDate
		if start.IsZero() {
			start = dateutil.AddMonths(anchor, slot)
		}
		total = total.Add(Accrue(deposit, rate, start, now))
		slot++
	}
	return total
}

// rdInterest credits the i-th of n paid deposits (oldest first) with n-i
// months of simple interest at annualRate/12.
func rdInterest(paid []decimal.Decimal, annualRate decimal.Decimal) decimal.Decimal {
	n := len(paid)
	heldMonths := decimal.Zero
	for i, amount := range paid {
		heldMonths = heldMonths.Add(amount.Mul(decimal.NewFromInt(int64(n - i))))
	}
	return heldMonths.Mul(annualRate).Div(monthsPerYear)
}

// triangularInterest is rdInterest for n equal deposits.
func triangularInterest(installment, annualRate decimal.Decimal, n int) decimal.Decimal {
	if n <= 0 {
		return decimal.Zero
	}
	tri := decimal.NewFromInt(int64(n) * int64(n+1) / 2)
	return installment.Mul(annualRate).Mul(tri).Div(monthsPerYear)
}

// rdInstallmentAmount is the regular deposit size: the first positive expected
// amount on the ledger, else the record's principal amount.
func rdInstallmentAmount(inv *domain.Investment) decimal.Decimal {
	for _, in := range inv.Installments {
		if in.AmountExpected.IsPositive() {
			return in.AmountExpected
		}
	}
	return nonNegative(inv.PrincipalAmount)
}
