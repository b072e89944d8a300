package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Snapshot status labels.
const (
	StatusLocked    = "Locked"
	StatusUnlocked  = "Unlocked"
	StatusActive    = "Active"
	StatusCompleted = "Completed"
	StatusMatured   = "Matured"
)

// Snapshot is the computed valuation of an investment at one instant. It is
// never persisted; every read recomputes it.
type Snapshot struct {
	InvestmentID      string          `json:"investment_id"`
	Type              ProductType     `json:"type"`
	AsOf              time.Time       `json:"as_of"`
	PrincipalInvested decimal.Decimal `json:"principal_invested"`
	CurrentValue      decimal.Decimal `json:"current_value"`
	TotalGain         decimal.Decimal `json:"total_gain"`
	GainPercentage    decimal.Decimal `json:"gain_percentage"`
	GainPerSecond     decimal.Decimal `json:"gain_per_second"`
	Status            string          `json:"status"`

	FD     *FDDetail     `json:"fd,omitempty"`
	FDPlus *FDPlusDetail `json:"fd_plus,omitempty"`
	RD     *RDDetail     `json:"rd,omitempty"`
}

// FDDetail carries the fixed deposit specific fields of a snapshot.
type FDDetail struct {
	MonthlyPayout   decimal.Decimal `json:"monthly_payout"`
	TotalReceived   decimal.Decimal `json:"total_received"`
	PendingInterest decimal.Decimal `json:"pending_interest"` // accrued, not yet disbursed
	PaidPayouts     int             `json:"paid_payouts"`
	MonthsElapsed   int             `json:"months_elapsed"`
	LockRemaining   int             `json:"lock_remaining"`
	NextPayoutDate  *time.Time      `json:"next_payout_date,omitempty"`
}

// FDPlusDetail carries the FD+ schedule fields of a snapshot.
type FDPlusDetail struct {
	MonthlyPayout        decimal.Decimal `json:"monthly_payout"`
	TotalReceived        decimal.Decimal `json:"total_received"`
	PrincipalReturned    decimal.Decimal `json:"principal_returned"`
	OutstandingPrincipal decimal.Decimal `json:"outstanding_principal"`
	MonthsCompleted      int             `json:"months_completed"`
	RemainingMonths      int             `json:"remaining_months"`
	NextPayoutDate       *time.Time      `json:"next_payout_date,omitempty"`
}

// RDDetail carries the recurring deposit fields of a snapshot.
type RDDetail struct {
	InstallmentAmount     decimal.Decimal `json:"installment_amount"`
	PaidInstallments      int             `json:"paid_installments"`
	PendingInstallments   int             `json:"pending_installments"`
	RemainingInstallments int             `json:"remaining_installments"`
	MaturityValue         decimal.Decimal `json:"maturity_value"`
	// AccruedInterest accrues each paid installment per second from its due
	// date. It is informational; CurrentValue uses the monthly ledger form.
	AccruedInterest       decimal.Decimal `json:"accrued_interest"`
	MaturityDate          *time.Time      `json:"maturity_date,omitempty"`
	NextDueDate           *time.Time      `json:"next_due_date,omitempty"`
}

// ProjectionPoint is one month of a tenure preview.
type ProjectionPoint struct {
	Month int             `json:"month"`
	Value decimal.Decimal `json:"value"`
}

// SeriesPoint is one point of a historical growth chart.
type SeriesPoint struct {
	Label     string          `json:"label"`
	Date      time.Time       `json:"date"`
	Invested  decimal.Decimal `json:"invested"`
	Value     decimal.Decimal `json:"value"`
	Projected bool            `json:"projected,omitempty"`
}

// ValuationResult pairs a record with its snapshot, or with the reason no
// snapshot could be produced.
type ValuationResult struct {
	InvestmentID string      `json:"investment_id"`
	Name         string      `json:"name,omitempty"`
	Type         ProductType `json:"type"`
	Currency     string      `json:"currency,omitempty"`
	Snapshot     *Snapshot   `json:"snapshot,omitempty"`
	Error        string      `json:"error,omitempty"`
}

// PortfolioTotals aggregates the valued records of a report that share one
// currency. OtherCurrency counts valued records left out of the sums because
// their currency differs.
type PortfolioTotals struct {
	Currency      string          `json:"currency"`
	Invested      decimal.Decimal `json:"invested"`
	CurrentValue  decimal.Decimal `json:"current_value"`
	TotalGain     decimal.Decimal `json:"total_gain"`
	GainPerSecond decimal.Decimal `json:"gain_per_second"`
	Valued        int             `json:"valued"`
	Skipped       int             `json:"skipped"`
	OtherCurrency int             `json:"other_currency,omitempty"`
}

// Series kinds carried by SeriesReport.
const (
	SeriesHistory    = "history"
	SeriesProjection = "projection"
)

// SeriesReport is a chart series attached to a report.
type SeriesReport struct {
	InvestmentID string            `json:"investment_id"`
	Kind         string            `json:"kind"`
	Points       []SeriesPoint     `json:"points,omitempty"`
	Projection   []ProjectionPoint `json:"projection,omitempty"`
}

// Report is what output formatters render.
type Report struct {
	AsOf     time.Time         `json:"as_of"`
	Currency string            `json:"currency,omitempty"`
	Results  []ValuationResult `json:"results"`
	Totals   PortfolioTotals   `json:"totals"`
	Series   []SeriesReport    `json:"series,omitempty"`
}
