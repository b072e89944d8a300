package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fdtrack/valuation/internal/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Supported input file formats.
const (
	FormatYAML = "yaml"
	FormatJSON = "json"
)

// dateLayouts are tried in order when reading a date field.
var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// InputParser handles parsing of investment input files
type InputParser struct {
	// NewID generates identifiers for records that arrive without one.
	NewID func() string
}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{NewID: uuid.NewString}
}

// portfolioFile is the on-disk shape of an input file. Dates are kept as text
// so both date-only and full timestamps are accepted.
type portfolioFile struct {
	Investments []investmentRecord `yaml:"investments" json:"investments"`
}

type investmentRecord struct {
	ID                 string              `yaml:"id,omitempty" json:"id,omitempty"`
	Name               string              `yaml:"name,omitempty" json:"name,omitempty"`
	Type               string              `yaml:"type" json:"type"`
	PrincipalAmount    decimal.Decimal     `yaml:"principalAmount" json:"principalAmount"`
	InterestRate       decimal.Decimal     `yaml:"interestRate" json:"interestRate"`
	Currency           string              `yaml:"currency,omitempty" json:"currency,omitempty"`
	ActivationDate     string              `yaml:"activationDate,omitempty" json:"activationDate,omitempty"`
	StartDate          string              `yaml:"startDate,omitempty" json:"startDate,omitempty"`
	Status             string              `yaml:"status,omitempty" json:"status,omitempty"`
	LockInPeriodMonths int                 `yaml:"lockInPeriodMonths,omitempty" json:"lockInPeriodMonths,omitempty"`
	RDPeriodMonths     int                 `yaml:"rdPeriodMonths,omitempty" json:"rdPeriodMonths,omitempty"`
	PayoutHistory      []payoutRecord      `yaml:"payoutHistory,omitempty" json:"payoutHistory,omitempty"`
	Installments       []installmentRecord `yaml:"installments,omitempty" json:"installments,omitempty"`
}

type payoutRecord struct {
	PayoutDate string `yaml:"payoutDate" json:"payoutDate"`
	Status     string `yaml:"status" json:"status"`
}

type installmentRecord struct {
	DueDate        string          `yaml:"dueDate" json:"dueDate"`
	Status         string          `yaml:"status" json:"status"`
	AmountExpected decimal.Decimal `yaml:"amountExpected" json:"amountExpected"`
}

// FormatForFile picks the input format from a file extension. Anything that
// is not .json is read as YAML.
func FormatForFile(filename string) string {
	if strings.EqualFold(filepath.Ext(filename), ".json") {
		return FormatJSON
	}
	return FormatYAML
}

// LoadFromFile loads a portfolio from a YAML or JSON file
func (ip *InputParser) LoadFromFile(filename string) (*domain.Portfolio, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ip.Parse(data, FormatForFile(filename))
}

// Parse decodes and validates a portfolio document.
func (ip *InputParser) Parse(data []byte, format string) (*domain.Portfolio, error) {
	var file portfolioFile
	switch format {
	case FormatJSON:
		if err := json.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("failed to parse JSON: %w", err)
		}
	case FormatYAML, "yml":
		if err := yaml.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("failed to parse YAML: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported input format %q", format)
	}

	portfolio := &domain.Portfolio{Investments: make([]domain.Investment, 0, len(file.Investments))}
	for i, rec := range file.Investments {
		inv, err := ip.toInvestment(rec)
		if err != nil {
			return nil, fmt.Errorf("investment %d: %w", i, err)
		}
		portfolio.Investments = append(portfolio.Investments, inv)
	}

	if err := ip.ValidatePortfolio(portfolio); err != nil {
		return nil, fmt.Errorf("portfolio validation failed: %w", err)
	}
	return portfolio, nil
}

func (ip *InputParser) toInvestment(rec investmentRecord) (domain.Investment, error) {
	inv := domain.Investment{
		ID:                 strings.TrimSpace(rec.ID),
		Name:               rec.Name,
		Type:               domain.ProductType(strings.TrimSpace(rec.Type)),
		PrincipalAmount:    rec.PrincipalAmount,
		InterestRate:       rec.InterestRate,
		Currency:           strings.ToUpper(strings.TrimSpace(rec.Currency)),
		Status:             domain.InvestmentStatus(strings.ToLower(strings.TrimSpace(rec.Status))),
		LockInPeriodMonths: rec.LockInPeriodMonths,
		RDPeriodMonths:     rec.RDPeriodMonths,
	}
	if pt, err := domain.ParseProductType(rec.Type); err == nil {
		inv.Type = pt
	}
	if inv.ID == "" && ip.NewID != nil {
		inv.ID = ip.NewID()
	}

	var err error
	if inv.ActivationDate, err = ParseDate(rec.ActivationDate); err != nil {
		return inv, fmt.Errorf("activationDate: %w", err)
	}
	if inv.StartDate, err = ParseDate(rec.StartDate); err != nil {
		return inv, fmt.Errorf("startDate: %w", err)
	}

	for j, p := range rec.PayoutHistory {
		date, err := ParseDate(p.PayoutDate)
		if err != nil {
			return inv, fmt.Errorf("payoutHistory[%d].payoutDate: %w", j, err)
		}
		inv.PayoutHistory = append(inv.PayoutHistory, domain.Payout{
			PayoutDate: date,
			Status:     domain.LedgerStatus(strings.ToLower(strings.TrimSpace(p.Status))),
		})
	}
	for j, in := range rec.Installments {
		date, err := ParseDate(in.DueDate)
		if err != nil {
			return inv, fmt.Errorf("installments[%d].dueDate: %w", j, err)
		}
		inv.Installments = append(inv.Installments, domain.Installment{
			DueDate:        date,
			Status:         domain.LedgerStatus(strings.ToLower(strings.TrimSpace(in.Status))),
			AmountExpected: in.AmountExpected,
		})
	}
	return inv, nil
}

// ParseDate accepts RFC 3339 timestamps, timestamps without a zone (read as
// UTC) and plain dates. An empty string is the zero time.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q", s)
}

// ValidatePortfolio validates every record and returns all problems found,
// joined. Partially filled records are accepted; the engine values missing
// amounts and dates as zero. Unknown product types are left to the engine,
// which reports them per record.
func (ip *InputParser) ValidatePortfolio(p *domain.Portfolio) error {
	if p == nil {
		return fmt.Errorf("no portfolio provided")
	}
	var errs []error
	seen := make(map[string]int, len(p.Investments))
	for i := range p.Investments {
		inv := &p.Investments[i]
		if err := ip.validateInvestment(inv); err != nil {
			errs = append(errs, fmt.Errorf("investment %d (%s): %w", i, inv.ID, err))
		}
		if inv.ID == "" {
			continue
		}
		if first, dup := seen[inv.ID]; dup {
			errs = append(errs, fmt.Errorf("investment %d: duplicate id %q (first used by investment %d)", i, inv.ID, first))
			continue
		}
		seen[inv.ID] = i
	}
	return errors.Join(errs...)
}

// validateInvestment validates a single record
func (ip *InputParser) validateInvestment(inv *domain.Investment) error {
	if inv.PrincipalAmount.IsNegative() {
		return fmt.Errorf("principalAmount cannot be negative")
	}
	if inv.InterestRate.IsNegative() {
		return fmt.Errorf("interestRate cannot be negative")
	}
	if inv.LockInPeriodMonths < 0 {
		return fmt.Errorf("lockInPeriodMonths cannot be negative")
	}
	if inv.RDPeriodMonths < 0 {
		return fmt.Errorf("rdPeriodMonths cannot be negative")
	}
	switch inv.Status {
	case "", domain.InvestmentActive, domain.InvestmentCompleted:
	default:
		return fmt.Errorf("status must be 'active' or 'completed', got %q", inv.Status)
	}
	if !inv.ActivationDate.IsZero() && !inv.StartDate.IsZero() && inv.ActivationDate.Before(inv.StartDate) {
		return fmt.Errorf("activationDate cannot be before startDate")
	}

	var last time.Time
	for j, p := range inv.PayoutHistory {
		if err := validateLedgerStatus(p.Status); err != nil {
			return fmt.Errorf("payoutHistory[%d]: %w", j, err)
		}
		if p.PayoutDate.IsZero() {
			continue
		}
		if p.PayoutDate.Before(last) {
			return fmt.Errorf("payoutHistory[%d]: payout dates must be in ascending order", j)
		}
		last = p.PayoutDate
	}

	last = time.Time{}
	for j, in := range inv.Installments {
		if err := validateLedgerStatus(in.Status); err != nil {
			return fmt.Errorf("installments[%d]: %w", j, err)
		}
		if in.AmountExpected.IsNegative() {
			return fmt.Errorf("installments[%d]: amountExpected cannot be negative", j)
		}
		if in.DueDate.IsZero() {
			continue
		}
		if in.DueDate.Before(last) {
			return fmt.Errorf("installments[%d]: due dates must be in ascending order", j)
		}
		last = in.DueDate
	}
	return nil
}

func validateLedgerStatus(s domain.LedgerStatus) error {
	switch s {
	case "", domain.LedgerPaid, domain.LedgerPending:
		return nil
	}
	return fmt.Errorf("status must be 'paid' or 'pending', got %q", s)
}
