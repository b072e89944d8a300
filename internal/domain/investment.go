package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ErrUnsupportedProductType is returned when a record's type is not one of
// fd, fd_plus or rd. Callers render a fallback instead of a valuation.
var ErrUnsupportedProductType = errors.New("unsupported product type")

// ProductType is the closed set of investment products the engine values.
type ProductType string

const (
	ProductFD     ProductType = "fd"
	ProductFDPlus ProductType = "fd_plus"
	ProductRD     ProductType = "rd"
)

// ProductTypes lists every supported product in display order.
var ProductTypes = []ProductType{ProductFD, ProductFDPlus, ProductRD}

// ParseProductType resolves a product name, accepting common spellings such
// as "FD+" or "fd-plus".
func ParseProductType(s string) (ProductType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "fd", "fixed_deposit":
		return ProductFD, nil
	case "fd_plus", "fd+", "fdplus", "fd-plus":
		return ProductFDPlus, nil
	case "rd", "recurring_deposit":
		return ProductRD, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedProductType, s)
	}
}

// Valid reports whether t is one of the supported products.
func (t ProductType) Valid() bool {
	switch t {
	case ProductFD, ProductFDPlus, ProductRD:
		return true
	}
	return false
}

// String returns the display name of the product.
func (t ProductType) String() string {
	switch t {
	case ProductFD:
		return "FD"
	case ProductFDPlus:
		return "FD+"
	case ProductRD:
		return "RD"
	default:
		return string(t)
	}
}

// InvestmentStatus is the lifecycle state of a stored investment record.
type InvestmentStatus string

const (
	InvestmentActive    InvestmentStatus = "active"
	InvestmentCompleted InvestmentStatus = "completed"
)

// LedgerStatus is the state of a single payout or installment entry.
type LedgerStatus string

const (
	LedgerPaid    LedgerStatus = "paid"
	LedgerPending LedgerStatus = "pending"
)

// Payout is one disbursement event for FD and FD+.
type Payout struct {
	PayoutDate time.Time    `yaml:"payoutDate" json:"payoutDate"`
	Status     LedgerStatus `yaml:"status" json:"status"`
}

// Installment is one RD deposit cycle.
type Installment struct {
	DueDate        time.Time       `yaml:"dueDate" json:"dueDate"`
	Status         LedgerStatus    `yaml:"status" json:"status"`
	AmountExpected decimal.Decimal `yaml:"amountExpected" json:"amountExpected"`
}

// Investment is a record as supplied by the data-fetch collaborator.
// InterestRate is a plain fraction: monthly for FD, annual for RD, and unused
// for FD+ whose schedule is fixed.
type Investment struct {
	ID                 string           `yaml:"id" json:"id"`
	Name               string           `yaml:"name,omitempty" json:"name,omitempty"`
	Type               ProductType      `yaml:"type" json:"type"`
	PrincipalAmount    decimal.Decimal  `yaml:"principalAmount" json:"principalAmount"`
	InterestRate       decimal.Decimal  `yaml:"interestRate" json:"interestRate"`
	Currency           string           `yaml:"currency,omitempty" json:"currency,omitempty"`
	ActivationDate     time.Time        `yaml:"activationDate" json:"activationDate"`
	StartDate          time.Time        `yaml:"startDate" json:"startDate"`
	Status             InvestmentStatus `yaml:"status" json:"status"`
	LockInPeriodMonths int              `yaml:"lockInPeriodMonths,omitempty" json:"lockInPeriodMonths,omitempty"`
	RDPeriodMonths     int              `yaml:"rdPeriodMonths,omitempty" json:"rdPeriodMonths,omitempty"`
	PayoutHistory      []Payout         `yaml:"payoutHistory,omitempty" json:"payoutHistory,omitempty"`
	Installments       []Installment    `yaml:"installments,omitempty" json:"installments,omitempty"`
}

// Anchor returns the instant accrual and month counting start from: the
// activation date, or the start date for records not yet activated.
func (inv *Investment) Anchor() time.Time {
	if !inv.ActivationDate.IsZero() {
		return inv.ActivationDate
	}
	return inv.StartDate
}

// IsCompleted reports whether the stored record has been closed out.
func (inv *Investment) IsCompleted() bool {
	return InvestmentStatus(strings.ToLower(string(inv.Status))) == InvestmentCompleted
}

// DisplayName returns the name, falling back to the ID.
func (inv *Investment) DisplayName() string {
	if inv.Name != "" {
		return inv.Name
	}
	return inv.ID
}

// IsPaid reports whether a ledger entry has been settled.
func (s LedgerStatus) IsPaid() bool {
	return LedgerStatus(strings.ToLower(string(s))) == LedgerPaid
}

// Portfolio is the top-level shape of an investment input file.
type Portfolio struct {
	Investments []Investment `yaml:"investments" json:"investments"`
}
