package calculation

import (
	"testing"

	"github.com/fdtrack/valuation/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValueFDPlus(t *testing.T) {
	tests := []struct {
		name          string
		paid          int
		wantCompleted int
		wantRemaining int
		wantGain      string
		wantStatus    string
	}{
		{"nothing paid", 0, 0, 20, "0", domain.StatusActive},
		{"five months in", 5, 5, 15, "5000", domain.StatusActive},
		{"last month pending", 19, 19, 1, "19000", domain.StatusActive},
		{"full term", 20, 20, 0, "20000", domain.StatusCompleted},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			activation := monthsBefore(tt.paid)
			inv := newFDPlus("20000", activation, tt.paid)

			snap := ValueFDPlus(inv, frozenNow)
			require.NotNil(t, snap.FDPlus)
			assert.Equal(t, tt.wantCompleted, snap.FDPlus.MonthsCompleted)
			assert.Equal(t, tt.wantRemaining, snap.FDPlus.RemainingMonths)
			assert.True(t, snap.TotalGain.Equal(dec(tt.wantGain)), "expected gain %s, got %s", tt.wantGain, snap.TotalGain)
			assert.True(t, snap.CurrentValue.Equal(dec("20000").Add(dec(tt.wantGain))))
			assert.Equal(t, tt.wantStatus, snap.Status)
			assert.True(t, snap.GainPerSecond.IsZero())
		})
	}
}

func TestValueFDPlus_PayoutSplit(t *testing.T) {
	inv := newFDPlus("20000", monthsBefore(5), 5)

	snap := ValueFDPlus(inv, frozenNow)
	assert.True(t, snap.FDPlus.MonthlyPayout.Equal(dec("2000")), "got %s", snap.FDPlus.MonthlyPayout)
	assert.True(t, snap.FDPlus.TotalReceived.Equal(dec("10000")), "got %s", snap.FDPlus.TotalReceived)
	assert.True(t, snap.FDPlus.PrincipalReturned.Equal(dec("5000")))
	assert.True(t, snap.FDPlus.OutstandingPrincipal.Equal(dec("15000")))
	assert.InDelta(t, 25.0, snap.GainPercentage.InexactFloat64(), 1e-9)
	require.NotNil(t, snap.FDPlus.NextPayoutDate)
}

func TestValueFDPlus_GainNeverExceedsPrincipal(t *testing.T) {
	inv := newFDPlus("20000", monthsBefore(30), 20)
	// extra paid rows beyond the term
	inv.PayoutHistory = append(inv.PayoutHistory, payouts(monthsBefore(10), 5, 5)...)

	snap := ValueFDPlus(inv, frozenNow)
	assert.Equal(t, 20, snap.FDPlus.MonthsCompleted)
	assert.Equal(t, 0, snap.FDPlus.RemainingMonths)
	assert.True(t, snap.TotalGain.Equal(dec("20000")), "got %s", snap.TotalGain)
	assert.True(t, snap.CurrentValue.LessThanOrEqual(dec("40000")))
	assert.True(t, snap.FDPlus.OutstandingPrincipal.IsZero())
	assert.Nil(t, snap.FDPlus.NextPayoutDate)
}

func TestValueFDPlus_DoesNotTickBetweenPayouts(t *testing.T) {
	inv := newFDPlus("50000", monthsBefore(3), 3)

	a := ValueFDPlus(inv, frozenNow)
	b := ValueFDPlus(inv, frozenNow.AddDate(0, 0, 10))
	assert.True(t, a.CurrentValue.Equal(b.CurrentValue))
}

func TestValueFDPlus_PendingRowsIgnored(t *testing.T) {
	inv := newFDPlus("20000", monthsBefore(8), 0)

	snap := ValueFDPlus(inv, frozenNow)
	assert.Equal(t, 0, snap.FDPlus.MonthsCompleted)
	assert.True(t, snap.TotalGain.IsZero())
	assert.True(t, snap.CurrentValue.Equal(dec("20000")))
}
