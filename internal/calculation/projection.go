package calculation

import (
	"github.com/fdtrack/valuation/internal/domain"
	"github.com/shopspring/decimal"
)

// ProjectFD previews a fixed deposit over horizon months at a monthly rate:
// value(m) = P + P*rate*m.
func ProjectFD(principal, monthlyRate decimal.Decimal, horizonMonths int) []domain.ProjectionPoint {
	if !principal.IsPositive() || horizonMonths < 0 {
		return nil
	}
	monthly := principal.Mul(nonNegative(monthlyRate))
	points := make([]domain.ProjectionPoint, 0, horizonMonths+1)
	for m := 0; m <= horizonMonths; m++ {
		points = append(points, domain.ProjectionPoint{
			Month: m,
			Value: principal.Add(monthly.Mul(decimal.NewFromInt(int64(m)))),
		})
	}
	return points
}

// ProjectFDPlus previews the fixed FD+ schedule; the value stops growing at
// month 20. The rate argument is ignored because the schedule is fixed.
func ProjectFDPlus(principal decimal.Decimal, horizonMonths int) []domain.ProjectionPoint {
	if !principal.IsPositive() || horizonMonths < 0 {
		return nil
	}
	points := make([]domain.ProjectionPoint, 0, horizonMonths+1)
	for m := 0; m <= horizonMonths; m++ {
		points = append(points, domain.ProjectionPoint{
			Month: m,
			Value: principal.Add(fdPlusGain(principal, m)),
		})
	}
	return points
}

// ProjectRD previews a recurring deposit of installment P at an annual rate:
// value(m) = P*m + P*(rate/12)*m(m+1)/2, the same formula the snapshot and
// the maturity value use.
func ProjectRD(installment, annualRate decimal.Decimal, horizonMonths int) []domain.ProjectionPoint {
	if !installment.IsPositive() || horizonMonths < 0 {
		return nil
	}
	rate := nonNegative(annualRate)
	points := make([]domain.ProjectionPoint, 0, horizonMonths+1)
	for m := 0; m <= horizonMonths; m++ {
		deposits := installment.Mul(decimal.NewFromInt(int64(m)))
		points = append(points, domain.ProjectionPoint{
			Month: m,
			Value: deposits.Add(triangularInterest(installment, rate, m)),
		})
	}
	return points
}
