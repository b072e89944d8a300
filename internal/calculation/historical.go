package calculation

import (
	"time"

	"github.com/fdtrack/valuation/internal/domain"
	"github.com/fdtrack/valuation/pkg/dateutil"
	"github.com/shopspring/decimal"
)

// StartLabel labels the first point of every history series.
const StartLabel = "Start"

// HistoryFD walks the months elapsed since activation. Each confirmed point
// carries whole-month interest so it lines up with ProjectFD; a trailing
// point for the next month is flagged as projected while the deposit is open.
func HistoryFD(inv *domain.Investment, now time.Time) []domain.SeriesPoint {
	principal := nonNegative(inv.PrincipalAmount)
	anchor := inv.Anchor()
	if !principal.IsPositive() || anchor.IsZero() {
		return nil
	}
	monthly := principal.Mul(nonNegative(inv.InterestRate))
	valueAt := func(k int) decimal.Decimal {
		return principal.Add(monthly.Mul(decimal.NewFromInt(int64(k))))
	}

	elapsed := dateutil.MonthsElapsed(anchor, now)
	if inv.IsCompleted() {
		ledger := ReducePayouts(inv.PayoutHistory, monthly)
		if ledger.LastPaid.IsZero() {
			elapsed = 0
		} else {
			elapsed = min(elapsed, dateutil.MonthsElapsed(anchor, ledger.LastPaid))
		}
	}

	points := make([]domain.SeriesPoint, 0, elapsed+2)
	points = append(points, startPoint(anchor, principal))
	for k := 1; k <= elapsed; k++ {
		points = append(points, monthPoint(anchor, k, principal, valueAt(k), false))
	}
	if !inv.IsCompleted() {
		k := elapsed + 1
		points = append(points, monthPoint(anchor, k, principal, valueAt(k), true))
	}
	return points
}

// HistoryFDPlus walks elapsed months up to the 20-month term. Gain at month k
// is bounded by the payouts actually paid, and a payout marked paid ahead of
// the calendar confirms its month, so the last confirmed point always equals
// the snapshot value.
func HistoryFDPlus(inv *domain.Investment, now time.Time) []domain.SeriesPoint {
	principal := nonNegative(inv.PrincipalAmount)
	anchor := inv.Anchor()
	if !principal.IsPositive() || anchor.IsZero() {
		return nil
	}
	paid := fdPlusMonthsCompleted(ReducePayouts(inv.PayoutHistory, decimal.Zero).Paid)
	bound := min(max(dateutil.MonthsElapsed(anchor, now), paid), FDPlusTermMonths)

	points := make([]domain.SeriesPoint, 0, bound+2)
	points = append(points, startPoint(anchor, principal))
	for k := 1; k <= bound; k++ {
		value := principal.Add(fdPlusGain(principal, min(k, paid)))
		points = append(points, monthPoint(anchor, k, principal, value, false))
	}
	if bound < FDPlusTermMonths && !inv.IsCompleted() {
		value := principal.Add(fdPlusGain(principal, paid+1))
		points = append(points, monthPoint(anchor, bound+1, principal, value, true))
	}
	return points
}

// HistoryRD walks elapsed months up to the RD period. The invested line only
// steps up for installments paid and due by that month.
func HistoryRD(inv *domain.Investment, now time.Time) []domain.SeriesPoint {
	amount := rdInstallmentAmount(inv)
	anchor := inv.Anchor()
	if !amount.IsPositive() || anchor.IsZero() {
		return nil
	}
	rate := nonNegative(inv.InterestRate)
	ledger := ReduceInstallments(inv.Installments, amount)

	bound := dateutil.MonthsElapsed(anchor, now)
	if inv.RDPeriodMonths > 0 {
		bound = min(bound, inv.RDPeriodMonths)
	}

	points := make([]domain.SeriesPoint, 0, bound+2)
	points = append(points, startPoint(anchor, decimal.Zero))
	var deposits []decimal.Decimal
	for k := 1; k <= bound; k++ {
		deposits = rdPaidBy(ledger, anchor, k)
		points = append(points, rdPoint(anchor, k, deposits, rate, false))
	}

	open := inv.RDPeriodMonths <= 0 || bound < inv.RDPeriodMonths
	if open && !inv.IsCompleted() {
		next := append(append([]decimal.Decimal(nil), deposits...), amount)
		points = append(points, rdPoint(anchor, bound+1, next, rate, true))
	}
	return points
}

// rdPaidBy returns the paid deposits due before the end of month k. Entries
// without a due date take the k-th ledger slot.
func rdPaidBy(ledger InstallmentLedger, anchor time.Time, k int) []decimal.Decimal {
	cutoff := dateutil.AddMonths(anchor, k)
	var out []decimal.Decimal
	for i, amount := range ledger.PaidAmounts {
		due := ledger.PaidDueDates[i]
		if due.IsZero() {
			if i < k {
				out = append(out, amount)
			}
			continue
		}
		if due.Before(cutoff) {
			out = append(out, amount)
		}
	}
	return out
}

func rdPoint(anchor time.Time, k int, deposits []decimal.Decimal, rate decimal.Decimal, projected bool) domain.SeriesPoint {
	invested := decimal.Zero
	for _, d := range deposits {
		invested = invested.Add(d)
	}
	return monthPoint(anchor, k, invested, invested.Add(rdInterest(deposits, rate)), projected)
}

func startPoint(anchor time.Time, invested decimal.Decimal) domain.SeriesPoint {
	return domain.SeriesPoint{
		Label:    StartLabel,
		Date:     anchor,
		Invested: invested,
		Value:    invested,
	}
}

func monthPoint(anchor time.Time, k int, invested, value decimal.Decimal, projected bool) domain.SeriesPoint {
	date := dateutil.AddMonths(anchor, k)
	return domain.SeriesPoint{
		Label:     dateutil.MonthLabel(date),
		Date:      date,
		Invested:  invested,
		Value:     value,
		Projected: projected,
	}
}
