package calculation

import (
	"fmt"
	"strings"
	"time"

	"github.com/fdtrack/valuation/internal/domain"
	moneyutil "github.com/fdtrack/valuation/pkg/decimal"
	"github.com/shopspring/decimal"
)

// ErrUnsupportedProductType is returned for records whose type is not fd,
// fd_plus or rd.
var ErrUnsupportedProductType = domain.ErrUnsupportedProductType

// productRule bundles the valuation, projection and history functions of one
// product. ruleFor is the only place product types are dispatched on.
type productRule struct {
	value   func(inv *domain.Investment, now time.Time) domain.Snapshot
	project func(principal, rate decimal.Decimal, horizonMonths int) []domain.ProjectionPoint
	history func(inv *domain.Investment, now time.Time) []domain.SeriesPoint
}

func ruleFor(t domain.ProductType) (domain.ProductType, productRule, error) {
	pt, err := domain.ParseProductType(string(t))
	if err != nil {
		return "", productRule{}, err
	}
	switch pt {
	case domain.ProductFD:
		return pt, productRule{value: ValueFD, project: ProjectFD, history: HistoryFD}, nil
	case domain.ProductFDPlus:
		return pt, productRule{value: ValueFDPlus, project: projectFDPlusAnyRate, history: HistoryFDPlus}, nil
	case domain.ProductRD:
		return pt, productRule{value: ValueRD, project: ProjectRD, history: HistoryRD}, nil
	}
	return "", productRule{}, fmt.Errorf("%w: %q", ErrUnsupportedProductType, t)
}

func projectFDPlusAnyRate(principal, _ decimal.Decimal, horizonMonths int) []domain.ProjectionPoint {
	return ProjectFDPlus(principal, horizonMonths)
}

// Valuate computes the snapshot of one investment at now.
func Valuate(inv *domain.Investment, now time.Time) (domain.Snapshot, error) {
	_, rule, err := ruleFor(inv.Type)
	if err != nil {
		return domain.Snapshot{}, fmt.Errorf("investment %s: %w", inv.ID, err)
	}
	return rule.value(inv, now), nil
}

// Project builds a tenure preview for months 0..horizonMonths. rate has the
// same meaning as Investment.InterestRate for the product: monthly for FD,
// annual for RD, ignored for FD+.
func Project(t domain.ProductType, principal, rate decimal.Decimal, horizonMonths int) ([]domain.ProjectionPoint, error) {
	_, rule, err := ruleFor(t)
	if err != nil {
		return nil, err
	}
	return rule.project(principal, rate, horizonMonths), nil
}

// History builds the chart series of months actually elapsed since
// activation.
func History(inv *domain.Investment, now time.Time) ([]domain.SeriesPoint, error) {
	_, rule, err := ruleFor(inv.Type)
	if err != nil {
		return nil, fmt.Errorf("investment %s: %w", inv.ID, err)
	}
	return rule.history(inv, now), nil
}

// CalculationEngine is the entry point screens use. It holds no state besides
// its logger; every call is a pure function of its arguments.
type CalculationEngine struct {
	Logger Logger
}

// NewCalculationEngine creates a new calculation engine
func NewCalculationEngine() *CalculationEngine {
	return &CalculationEngine{Logger: NopLogger{}}
}

// SetLogger sets the logger for the calculation engine. If nil is provided, a no-op logger is used.
func (ce *CalculationEngine) SetLogger(l Logger) {
	if l == nil {
		ce.Logger = NopLogger{}
		return
	}
	ce.Logger = l
}

func (ce *CalculationEngine) logger() Logger {
	if ce.Logger == nil {
		return NopLogger{}
	}
	return ce.Logger
}

// Valuate computes the live snapshot of one investment.
func (ce *CalculationEngine) Valuate(inv *domain.Investment, now time.Time) (domain.Snapshot, error) {
	snap, err := Valuate(inv, now)
	if err != nil {
		ce.logger().Warnf("valuation skipped: %v", err)
		return snap, err
	}
	ce.logger().Debugf("valued %s (%s) at %s: value=%s gain=%s status=%s",
		inv.ID, snap.Type, now.Format(time.RFC3339), snap.CurrentValue.StringFixed(2), snap.TotalGain.StringFixed(2), snap.Status)
	return snap, nil
}

// ValuatePortfolio values every record. A record with an unsupported type
// yields a result carrying the error so the others still render.
func (ce *CalculationEngine) ValuatePortfolio(investments []domain.Investment, now time.Time) []domain.ValuationResult {
	results := make([]domain.ValuationResult, 0, len(investments))
	for i := range investments {
		inv := &investments[i]
		res := domain.ValuationResult{
			InvestmentID: inv.ID,
			Name:         inv.Name,
			Type:         inv.Type,
			Currency:     inv.Currency,
		}
		snap, err := ce.Valuate(inv, now)
		if err != nil {
			res.Error = err.Error()
		} else {
			res.Type = snap.Type
			res.Snapshot = &snap
		}
		results = append(results, res)
	}
	return results
}

// Project builds a tenure preview; see the package-level Project.
func (ce *CalculationEngine) Project(t domain.ProductType, principal, rate decimal.Decimal, horizonMonths int) ([]domain.ProjectionPoint, error) {
	points, err := Project(t, principal, rate, horizonMonths)
	if err != nil {
		ce.logger().Warnf("projection skipped: %v", err)
	}
	return points, err
}

// ProjectInvestment previews a stored record using its own type, amount and
// rate. For RD the amount is the regular installment.
func (ce *CalculationEngine) ProjectInvestment(inv *domain.Investment, horizonMonths int) ([]domain.ProjectionPoint, error) {
	pt, _, err := ruleFor(inv.Type)
	if err != nil {
		ce.logger().Warnf("projection skipped for %s: %v", inv.ID, err)
		return nil, fmt.Errorf("investment %s: %w", inv.ID, err)
	}
	principal := inv.PrincipalAmount
	if pt == domain.ProductRD {
		principal = rdInstallmentAmount(inv)
	}
	return ce.Project(pt, principal, inv.InterestRate, horizonMonths)
}

// History builds the historical chart series of a record.
func (ce *CalculationEngine) History(inv *domain.Investment, now time.Time) ([]domain.SeriesPoint, error) {
	points, err := History(inv, now)
	if err != nil {
		ce.logger().Warnf("history skipped: %v", err)
	}
	return points, err
}

// BuildReport values a portfolio and aggregates the totals.
func (ce *CalculationEngine) BuildReport(investments []domain.Investment, now time.Time) domain.Report {
	results := ce.ValuatePortfolio(investments, now)
	return domain.Report{
		AsOf:    now,
		Results: results,
		Totals:  Totals(results),
	}
}

// Totals sums the snapshots of a set of results, treating records without
// a currency as the default currency. See TotalsIn.
func Totals(results []domain.ValuationResult) domain.PortfolioTotals {
	return TotalsIn(results, "")
}

// TotalsIn sums the snapshots of a set of results in a single currency: that
// of the first valued record, with blank record currencies read as
// defaultCurrency (or INR when that is blank too). Valued records in any other
// currency are counted in OtherCurrency and left out of the sums. Results
// without a snapshot are counted as skipped.
func TotalsIn(results []domain.ValuationResult, defaultCurrency string) domain.PortfolioTotals {
	t := domain.PortfolioTotals{
		Invested:      decimal.Zero,
		CurrentValue:  decimal.Zero,
		TotalGain:     decimal.Zero,
		GainPerSecond: decimal.Zero,
	}
	for _, r := range results {
		if r.Snapshot == nil {
			t.Skipped++
			continue
		}
		code := normalizeCurrency(r.Currency, defaultCurrency)
		if t.Currency == "" {
			t.Currency = code
		}
		if code != t.Currency {
			t.OtherCurrency++
			continue
		}
		t.Valued++
		t.Invested = t.Invested.Add(r.Snapshot.PrincipalInvested)
		t.CurrentValue = t.CurrentValue.Add(r.Snapshot.CurrentValue)
		t.TotalGain = t.TotalGain.Add(r.Snapshot.TotalGain)
		t.GainPerSecond = t.GainPerSecond.Add(r.Snapshot.GainPerSecond)
	}
	return t
}

func normalizeCurrency(code, fallback string) string {
	if c := strings.ToUpper(strings.TrimSpace(code)); c != "" {
		return c
	}
	if c := strings.ToUpper(strings.TrimSpace(fallback)); c != "" {
		return c
	}
	return moneyutil.DefaultCurrency
}
