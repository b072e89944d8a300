package calculation

import (
	"time"

	"github.com/fdtrack/valuation/internal/domain"
	"github.com/shopspring/decimal"
)

// PayoutLedger is the folded state of an FD/FD+ payout history.
type PayoutLedger struct {
	Paid      int
	Pending   int
	TotalPaid decimal.Decimal // Paid * amount per payout
	LastPaid  time.Time       // zero when nothing has been paid
}

// ReducePayouts folds a payout history. Only paid entries count towards
// TotalPaid; pending entries are tallied but contribute nothing. The slice is
// read, never modified.
func ReducePayouts(payouts []domain.Payout, perPayout decimal.Decimal) PayoutLedger {
	var l PayoutLedger
	for _, p := range payouts {
		if !p.Status.IsPaid() {
			l.Pending++
			continue
		}
		l.Paid++
		if p.PayoutDate.After(l.LastPaid) {
			l.LastPaid = p.PayoutDate
		}
	}
	l.TotalPaid = perPayout.Mul(decimal.NewFromInt(int64(l.Paid)))
	return l
}

// InstallmentLedger is the folded state of an RD installment list.
type InstallmentLedger struct {
	Paid           int
	Pending        int
	TotalDeposited decimal.Decimal
	TotalExpected  decimal.Decimal

	// Paid deposits and their due dates in ledger order, oldest first.
	PaidAmounts  []decimal.Decimal
	PaidDueDates []time.Time
	NextDue      time.Time // first pending due date, zero if none
}

// ReduceInstallments folds an installment list. An entry without an expected
// amount is counted at fallbackAmount, so partially loaded records still
// reduce to paid * installment.
func ReduceInstallments(installments []domain.Installment, fallbackAmount decimal.Decimal) InstallmentLedger {
	l := InstallmentLedger{
		TotalDeposited: decimal.Zero,
		TotalExpected:  decimal.Zero,
	}
	for _, in := range installments {
		amount := in.AmountExpected
		if !amount.IsPositive() {
			amount = fallbackAmount
		}
		l.TotalExpected = l.TotalExpected.Add(amount)
		if !in.Status.IsPaid() {
			l.Pending++
			if l.NextDue.IsZero() {
				l.NextDue = in.DueDate
			}
			continue
		}
		l.Paid++
		l.TotalDeposited = l.TotalDeposited.Add(amount)
		l.PaidAmounts = append(l.PaidAmounts, amount)
		l.PaidDueDates = append(l.PaidDueDates, in.DueDate)
	}
	return l
}
