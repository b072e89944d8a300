package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/fdtrack/valuation/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const samplePortfolioYAML = `investments:
  - id: fd-1
    name: Income FD
    type: fd
    principalAmount: 100000
    interestRate: 0.05
    currency: inr
    activationDate: 2024-10-16
    startDate: 2024-10-14
    status: active
    lockInPeriodMonths: 12
    payoutHistory:
      - payoutDate: 2024-11-16
        status: paid
      - payoutDate: 2024-12-16
        status: pending
  - id: fdp-1
    type: FD+
    principalAmount: "20000"
    activationDate: "2025-05-16T00:00:00Z"
    status: Active
  - type: rd
    principalAmount: 1000
    interestRate: 0.24
    activationDate: 2025-04-16
    rdPeriodMonths: 12
    installments:
      - dueDate: 2025-04-16
        status: paid
        amountExpected: 1000
      - dueDate: 2025-05-16
        status: pending
        amountExpected: 1000
`

const samplePortfolioJSON = `{
  "investments": [
    {
      "id": "rd-json",
      "type": "recurring_deposit",
      "principalAmount": 500,
      "interestRate": "0.12",
      "activationDate": "2025-01-01",
      "rdPeriodMonths": 6,
      "installments": [
        {"dueDate": "2025-01-01", "status": "paid", "amountExpected": 500},
        {"dueDate": "2025-02-01T00:00:00Z", "status": "PAID", "amountExpected": 500}
      ]
    }
  ]
}`

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestNewInputParser(t *testing.T) {
	parser := NewInputParser()
	assert.NotNil(t, parser)
	assert.NotNil(t, parser.NewID)
}

func TestLoadFromFile_YAML(t *testing.T) {
	parser := NewInputParser()
	parser.NewID = func() string { return "generated" }

	portfolio, err := parser.LoadFromFile(writeTemp(t, "portfolio.yaml", samplePortfolioYAML))
	require.NoError(t, err)
	require.Len(t, portfolio.Investments, 3)

	fd := portfolio.Investments[0]
	assert.Equal(t, "fd-1", fd.ID)
	assert.Equal(t, domain.ProductFD, fd.Type)
	assert.Equal(t, "INR", fd.Currency)
	assert.True(t, fd.PrincipalAmount.Equal(decimal.NewFromInt(100000)))
	assert.True(t, fd.InterestRate.Equal(decimal.RequireFromString("0.05")))
	assert.Equal(t, time.Date(2024, 10, 16, 0, 0, 0, 0, time.UTC), fd.ActivationDate)
	assert.Equal(t, 12, fd.LockInPeriodMonths)
	require.Len(t, fd.PayoutHistory, 2)
	assert.True(t, fd.PayoutHistory[0].Status.IsPaid())
	assert.False(t, fd.PayoutHistory[1].Status.IsPaid())

	fdPlus := portfolio.Investments[1]
	assert.Equal(t, domain.ProductFDPlus, fdPlus.Type, "alias spelling is normalized")
	assert.Equal(t, domain.InvestmentActive, fdPlus.Status)
	assert.True(t, fdPlus.PrincipalAmount.Equal(decimal.NewFromInt(20000)))
	assert.True(t, fdPlus.StartDate.IsZero())

	rd := portfolio.Investments[2]
	assert.Equal(t, "generated", rd.ID, "missing ids are filled in")
	assert.Equal(t, domain.ProductRD, rd.Type)
	require.Len(t, rd.Installments, 2)
	assert.True(t, rd.Installments[0].AmountExpected.Equal(decimal.NewFromInt(1000)))
}

func TestLoadFromFile_JSON(t *testing.T) {
	parser := NewInputParser()

	portfolio, err := parser.LoadFromFile(writeTemp(t, "portfolio.json", samplePortfolioJSON))
	require.NoError(t, err)
	require.Len(t, portfolio.Investments, 1)

	rd := portfolio.Investments[0]
	assert.Equal(t, domain.ProductRD, rd.Type)
	assert.True(t, rd.InterestRate.Equal(decimal.RequireFromString("0.12")))
	require.Len(t, rd.Installments, 2)
	assert.True(t, rd.Installments[1].Status.IsPaid())
	assert.Equal(t, time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC), rd.Installments[1].DueDate)
}

func TestLoadFromFile_FileNotFound(t *testing.T) {
	parser := NewInputParser()
	portfolio, err := parser.LoadFromFile("nonexistent_file.yaml")

	assert.Error(t, err)
	assert.Nil(t, portfolio)
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.Contains(t, err.Error(), "failed to read file")
}

func TestLoadFromFile_InvalidDocument(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		wantErr string
	}{
		{"broken yaml", "bad.yaml", "investments: [\n  - id: x\n", "failed to parse YAML"},
		{"broken json", "bad.json", `{"investments": [`, "failed to parse JSON"},
		{"bad date", "date.yaml", "investments:\n  - type: fd\n    activationDate: yesterday\n", "activationDate"},
		{"bad payout date", "payout.yaml", "investments:\n  - type: fd\n    payoutHistory:\n      - payoutDate: soon\n        status: paid\n", "payoutHistory[0].payoutDate"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewInputParser().LoadFromFile(writeTemp(t, tt.file, tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestParse_UnsupportedFormat(t *testing.T) {
	_, err := NewInputParser().Parse([]byte("{}"), "toml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported input format")
}

func TestParse_KeepsUnknownProductTypes(t *testing.T) {
	portfolio, err := NewInputParser().Parse([]byte("investments:\n  - id: gold-1\n    type: gold_bond\n"), FormatYAML)
	require.NoError(t, err)
	assert.Equal(t, domain.ProductType("gold_bond"), portfolio.Investments[0].Type)
}

func TestParse_AcceptsPartialRecords(t *testing.T) {
	portfolio, err := NewInputParser().Parse([]byte("investments:\n  - id: draft\n    type: rd\n"), FormatYAML)
	require.NoError(t, err)
	inv := portfolio.Investments[0]
	assert.True(t, inv.PrincipalAmount.IsZero())
	assert.True(t, inv.ActivationDate.IsZero())
	assert.Empty(t, inv.Installments)
}

func TestValidatePortfolio(t *testing.T) {
	base := func() domain.Investment {
		return domain.Investment{
			ID:              "inv",
			Type:            domain.ProductFD,
			PrincipalAmount: decimal.NewFromInt(1000),
			InterestRate:    decimal.RequireFromString("0.01"),
			ActivationDate:  time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC),
			Status:          domain.InvestmentActive,
		}
	}

	tests := []struct {
		name    string
		mutate  func(inv *domain.Investment)
		wantErr string
	}{
		{"valid", func(*domain.Investment) {}, ""},
		{"negative principal", func(inv *domain.Investment) { inv.PrincipalAmount = decimal.NewFromInt(-1) }, "principalAmount cannot be negative"},
		{"negative rate", func(inv *domain.Investment) { inv.InterestRate = decimal.RequireFromString("-0.01") }, "interestRate cannot be negative"},
		{"negative lock-in", func(inv *domain.Investment) { inv.LockInPeriodMonths = -3 }, "lockInPeriodMonths"},
		{"negative rd period", func(inv *domain.Investment) { inv.RDPeriodMonths = -1 }, "rdPeriodMonths"},
		{"unknown status", func(inv *domain.Investment) { inv.Status = "closed" }, "status must be 'active' or 'completed'"},
		{"activation before start", func(inv *domain.Investment) {
			inv.StartDate = inv.ActivationDate.AddDate(0, 0, 1)
		}, "activationDate cannot be before startDate"},
		{"unknown payout status", func(inv *domain.Investment) {
			inv.PayoutHistory = []domain.Payout{{PayoutDate: inv.ActivationDate, Status: "late"}}
		}, "payoutHistory[0]: status must be 'paid' or 'pending'"},
		{"payouts out of order", func(inv *domain.Investment) {
			inv.PayoutHistory = []domain.Payout{
				{PayoutDate: inv.ActivationDate.AddDate(0, 2, 0), Status: domain.LedgerPaid},
				{PayoutDate: inv.ActivationDate.AddDate(0, 1, 0), Status: domain.LedgerPaid},
			}
		}, "payoutHistory[1]: payout dates must be in ascending order"},
		{"installments out of order", func(inv *domain.Investment) {
			inv.Installments = []domain.Installment{
				{DueDate: inv.ActivationDate.AddDate(0, 1, 0), Status: domain.LedgerPaid},
				{DueDate: inv.ActivationDate, Status: domain.LedgerPending},
			}
		}, "installments[1]: due dates must be in ascending order"},
		{"negative installment", func(inv *domain.Investment) {
			inv.Installments = []domain.Installment{{Status: domain.LedgerPaid, AmountExpected: decimal.NewFromInt(-5)}}
		}, "amountExpected cannot be negative"},
	}

	parser := NewInputParser()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv := base()
			tt.mutate(&inv)
			err := parser.ValidatePortfolio(&domain.Portfolio{Investments: []domain.Investment{inv}})
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
			assert.Contains(t, err.Error(), "investment 0 (inv)")
		})
	}
}

func TestValidatePortfolio_ReportsEveryProblem(t *testing.T) {
	portfolio := &domain.Portfolio{Investments: []domain.Investment{
		{ID: "a", PrincipalAmount: decimal.NewFromInt(-1)},
		{ID: "b", Status: "gone"},
		{ID: "a"},
	}}

	err := NewInputParser().ValidatePortfolio(portfolio)
	require.Error(t, err)
	lines := strings.Split(err.Error(), "\n")
	assert.Len(t, lines, 3)
	assert.Contains(t, err.Error(), `duplicate id "a"`)
}

func TestValidatePortfolio_Nil(t *testing.T) {
	assert.Error(t, NewInputParser().ValidatePortfolio(nil))
}

func TestCreateExamplePortfolio_RoundTrips(t *testing.T) {
	now := time.Date(2025, 10, 16, 9, 30, 0, 0, time.UTC)
	parser := NewInputParser()
	example := parser.CreateExamplePortfolio(now)
	require.Len(t, example.Investments, 3)
	require.NoError(t, parser.ValidatePortfolio(example))

	for _, format := range []string{FormatYAML, FormatJSON} {
		t.Run(format, func(t *testing.T) {
			data, err := parser.Encode(example, format)
			require.NoError(t, err)

			back, err := parser.Parse(data, format)
			require.NoError(t, err)
			require.Len(t, back.Investments, 3)
			for i := range example.Investments {
				want, got := example.Investments[i], back.Investments[i]
				assert.Equal(t, want.ID, got.ID)
				assert.Equal(t, want.Type, got.Type)
				assert.True(t, want.PrincipalAmount.Equal(got.PrincipalAmount))
				assert.True(t, want.InterestRate.Equal(got.InterestRate))
				assert.True(t, want.ActivationDate.Equal(got.ActivationDate))
				assert.Len(t, got.PayoutHistory, len(want.PayoutHistory))
				assert.Len(t, got.Installments, len(want.Installments))
			}
		})
	}
}

func TestFormatForFile(t *testing.T) {
	assert.Equal(t, FormatJSON, FormatForFile("a/b/portfolio.JSON"))
	assert.Equal(t, FormatYAML, FormatForFile("portfolio.yml"))
	assert.Equal(t, FormatYAML, FormatForFile("portfolio"))
}
