package calculation

import (
	"time"

	"github.com/fdtrack/valuation/internal/domain"
	"github.com/fdtrack/valuation/pkg/dateutil"
	"github.com/shopspring/decimal"
)

// frozenNow is the clock every test in this package reads.
var frozenNow = time.Date(2025, 10, 16, 12, 0, 0, 0, time.UTC)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func seconds(d time.Duration) decimal.Decimal { return decimal.NewFromInt(int64(d / time.Second)) }

// monthsBefore returns the instant n calendar months before frozenNow.
func monthsBefore(n int) time.Time { return dateutil.AddMonths(frozenNow, -n) }

// payouts builds a monthly payout history starting one month after
// activation with the first paid entries marked paid.
func payouts(activation time.Time, total, paid int) []domain.Payout {
	out := make([]domain.Payout, 0, total)
	for i := 1; i <= total; i++ {
		status := domain.LedgerPending
		if i <= paid {
			status = domain.LedgerPaid
		}
		out = append(out, domain.Payout{PayoutDate: dateutil.AddMonths(activation, i), Status: status})
	}
	return out
}

// installments builds a monthly RD schedule due from activation with the
// first paid entries marked paid.
func installments(activation time.Time, amount decimal.Decimal, total, paid int) []domain.Installment {
	out := make([]domain.Installment, 0, total)
	for i := 0; i < total; i++ {
		status := domain.LedgerPending
		if i < paid {
			status = domain.LedgerPaid
		}
		out = append(out, domain.Installment{
			DueDate:        dateutil.AddMonths(activation, i),
			Status:         status,
			AmountExpected: amount,
		})
	}
	return out
}

func newFD(principal, monthlyRate string, activation time.Time, lockIn int) *domain.Investment {
	return &domain.Investment{
		ID:                 "fd-1",
		Type:               domain.ProductFD,
		PrincipalAmount:    dec(principal),
		InterestRate:       dec(monthlyRate),
		ActivationDate:     activation,
		StartDate:          activation,
		Status:             domain.InvestmentActive,
		LockInPeriodMonths: lockIn,
	}
}

func newFDPlus(principal string, activation time.Time, paid int) *domain.Investment {
	return &domain.Investment{
		ID:              "fdp-1",
		Type:            domain.ProductFDPlus,
		PrincipalAmount: dec(principal),
		ActivationDate:  activation,
		StartDate:       activation,
		Status:          domain.InvestmentActive,
		PayoutHistory:   payouts(activation, FDPlusTermMonths, paid),
	}
}

func newRD(installment, annualRate string, activation time.Time, period, paid int) *domain.Investment {
	return &domain.Investment{
		ID:              "rd-1",
		Type:            domain.ProductRD,
		PrincipalAmount: dec(installment),
		InterestRate:    dec(annualRate),
		ActivationDate:  activation,
		StartDate:       activation,
		Status:          domain.InvestmentActive,
		RDPeriodMonths:  period,
		Installments:    installments(activation, dec(installment), period, paid),
	}
}
