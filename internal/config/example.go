package config

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/fdtrack/valuation/internal/domain"
	"github.com/fdtrack/valuation/pkg/dateutil"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// CreateExamplePortfolio creates one record of each product, activated
// relative to now so the sample always has some history to show.
func (ip *InputParser) CreateExamplePortfolio(now time.Time) *domain.Portfolio {
	newID := ip.NewID
	if newID == nil {
		newID = func() string { return "" }
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	fdActivation := dateutil.AddMonths(today, -8)
	fd := domain.Investment{
		ID:                 newID(),
		Name:               "Monthly income FD",
		Type:               domain.ProductFD,
		PrincipalAmount:    decimal.NewFromInt(100000),
		InterestRate:       decimal.RequireFromString("0.0075"),
		Currency:           "INR",
		ActivationDate:     fdActivation,
		StartDate:          fdActivation.AddDate(0, 0, -3),
		Status:             domain.InvestmentActive,
		LockInPeriodMonths: 12,
	}
	for i := 1; i <= 8; i++ {
		fd.PayoutHistory = append(fd.PayoutHistory, domain.Payout{
			PayoutDate: dateutil.AddMonths(fdActivation, i),
			Status:     ledgerStatus(i < 8),
		})
	}

	fdPlusActivation := dateutil.AddMonths(today, -5)
	fdPlus := domain.Investment{
		ID:              newID(),
		Name:            "FD+ 20 month plan",
		Type:            domain.ProductFDPlus,
		PrincipalAmount: decimal.NewFromInt(20000),
		Currency:        "INR",
		ActivationDate:  fdPlusActivation,
		StartDate:       fdPlusActivation,
		Status:          domain.InvestmentActive,
	}
	for i := 1; i <= 20; i++ {
		fdPlus.PayoutHistory = append(fdPlus.PayoutHistory, domain.Payout{
			PayoutDate: dateutil.AddMonths(fdPlusActivation, i),
			Status:     ledgerStatus(i <= 5),
		})
	}

	rdActivation := dateutil.AddMonths(today, -6)
	rd := domain.Investment{
		ID:              newID(),
		Name:            "Savings RD",
		Type:            domain.ProductRD,
		PrincipalAmount: decimal.NewFromInt(1000),
		InterestRate:    decimal.RequireFromString("0.12"),
		Currency:        "INR",
		ActivationDate:  rdActivation,
		StartDate:       rdActivation,
		Status:          domain.InvestmentActive,
		RDPeriodMonths:  12,
	}
	for i := 0; i < 12; i++ {
		rd.Installments = append(rd.Installments, domain.Installment{
			DueDate:        dateutil.AddMonths(rdActivation, i),
			Status:         ledgerStatus(i < 6),
			AmountExpected: decimal.NewFromInt(1000),
		})
	}

	return &domain.Portfolio{Investments: []domain.Investment{fd, fdPlus, rd}}
}

func ledgerStatus(paid bool) domain.LedgerStatus {
	if paid {
		return domain.LedgerPaid
	}
	return domain.LedgerPending
}

// Encode renders a portfolio in the input file format, so the output of
// Encode can be read back with Parse.
func (ip *InputParser) Encode(p *domain.Portfolio, format string) ([]byte, error) {
	file := portfolioFile{Investments: make([]investmentRecord, 0, len(p.Investments))}
	for i := range p.Investments {
		file.Investments = append(file.Investments, toRecord(&p.Investments[i]))
	}
	switch format {
	case FormatJSON:
		return json.MarshalIndent(file, "", "  ")
	case FormatYAML, "yml":
		return yaml.Marshal(file)
	}
	return nil, fmt.Errorf("unsupported input format %q", format)
}

func toRecord(inv *domain.Investment) investmentRecord {
	rec := investmentRecord{
		ID:                 inv.ID,
		Name:               inv.Name,
		Type:               string(inv.Type),
		PrincipalAmount:    inv.PrincipalAmount,
		InterestRate:       inv.InterestRate,
		Currency:           inv.Currency,
		ActivationDate:     formatDate(inv.ActivationDate),
		StartDate:          formatDate(inv.StartDate),
		Status:             string(inv.Status),
		LockInPeriodMonths: inv.LockInPeriodMonths,
		RDPeriodMonths:     inv.RDPeriodMonths,
	}
	for _, p := range inv.PayoutHistory {
		rec.PayoutHistory = append(rec.PayoutHistory, payoutRecord{
			PayoutDate: formatDate(p.PayoutDate),
			Status:     string(p.Status),
		})
	}
	for _, in := range inv.Installments {
		rec.Installments = append(rec.Installments, installmentRecord{
			DueDate:        formatDate(in.DueDate),
			Status:         string(in.Status),
			AmountExpected: in.AmountExpected,
		})
	}
	return rec
}

// formatDate writes midnight UTC dates without a time part.
func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	if t.Location() == time.UTC && t.Equal(t.Truncate(24*time.Hour)) {
		return t.Format("2006-01-02")
	}
	return t.Format(time.RFC3339Nano)
}
