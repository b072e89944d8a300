package output

import (
	"sort"
	"time"

	"github.com/fdtrack/valuation/internal/domain"
	"github.com/shopspring/decimal"
)

// UpcomingEvent is the next dated ledger event of one investment.
type UpcomingEvent struct {
	InvestmentID string
	Name         string
	Kind         string // payout, installment or maturity
	Date         time.Time
}

// Highlights are the portfolio facts shown above the per-record tables.
type Highlights struct {
	BestPerformer     string
	BestGainPercent   decimal.Decimal
	LargestHolding    string
	LargestValue      decimal.Decimal
	PortfolioGainPct  decimal.Decimal
	Locked            int
	Completed         int
	Upcoming          []UpcomingEvent
	UnsupportedRecord []string
}

// Summarize derives the highlights of a report. Records without a snapshot
// only show up in UnsupportedRecord.
func Summarize(report *domain.Report) Highlights {
	h := Highlights{BestGainPercent: decimal.Zero, LargestValue: decimal.Zero, PortfolioGainPct: decimal.Zero}
	if report == nil {
		return h
	}
	if report.Totals.Invested.IsPositive() {
		h.PortfolioGainPct = report.Totals.TotalGain.Div(report.Totals.Invested).Mul(decimal.NewFromInt(100))
	}

	first := true
	for _, r := range report.Results {
		name := displayName(r)
		snap := r.Snapshot
		if snap == nil {
			h.UnsupportedRecord = append(h.UnsupportedRecord, name)
			continue
		}
		if first || snap.GainPercentage.GreaterThan(h.BestGainPercent) {
			h.BestPerformer, h.BestGainPercent = name, snap.GainPercentage
		}
		if first || snap.CurrentValue.GreaterThan(h.LargestValue) {
			h.LargestHolding, h.LargestValue = name, snap.CurrentValue
		}
		first = false

		switch snap.Status {
		case domain.StatusLocked:
			h.Locked++
		case domain.StatusCompleted, domain.StatusMatured:
			h.Completed++
		}
		if ev, ok := nextEvent(r); ok {
			h.Upcoming = append(h.Upcoming, ev)
		}
	}
	sort.SliceStable(h.Upcoming, func(i, j int) bool { return h.Upcoming[i].Date.Before(h.Upcoming[j].Date) })
	return h
}

func nextEvent(r domain.ValuationResult) (UpcomingEvent, bool) {
	ev := UpcomingEvent{InvestmentID: r.InvestmentID, Name: displayName(r)}
	var date *time.Time
	switch s := r.Snapshot; {
	case s.FD != nil:
		ev.Kind, date = "payout", s.FD.NextPayoutDate
	case s.FDPlus != nil:
		ev.Kind, date = "payout", s.FDPlus.NextPayoutDate
	case s.RD != nil && s.RD.NextDueDate != nil:
		ev.Kind, date = "installment", s.RD.NextDueDate
	case s.RD != nil && s.Status != domain.StatusMatured:
		ev.Kind, date = "maturity", s.RD.MaturityDate
	}
	if date == nil || date.IsZero() {
		return ev, false
	}
	ev.Date = *date
	return ev, true
}

func displayName(r domain.ValuationResult) string {
	if r.Name != "" {
		return r.Name
	}
	return r.InvestmentID
}
