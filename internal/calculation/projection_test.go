package calculation

import (
	"testing"

	"github.com/fdtrack/valuation/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectFD(t *testing.T) {
	points := ProjectFD(dec("100000"), dec("0.01"), 12)
	require.Len(t, points, 13)
	assert.Equal(t, 0, points[0].Month)
	assert.True(t, points[0].Value.Equal(dec("100000")))
	assert.True(t, points[1].Value.Equal(dec("101000")))
	assert.True(t, points[12].Value.Equal(dec("112000")), "got %s", points[12].Value)
}

func TestProjectFDPlus_CapsAtTerm(t *testing.T) {
	points := ProjectFDPlus(dec("20000"), 24)
	require.Len(t, points, 25)
	assert.True(t, points[5].Value.Equal(dec("25000")))
	assert.True(t, points[20].Value.Equal(dec("40000")))
	for _, p := range points[20:] {
		assert.True(t, p.Value.Equal(dec("40000")), "month %d grew past the term: %s", p.Month, p.Value)
	}
}

func TestProjectRD(t *testing.T) {
	points := ProjectRD(dec("1000"), dec("0.24"), 12)
	require.Len(t, points, 13)
	assert.True(t, points[0].Value.IsZero())
	// month 1: 1000 + 1000*0.02*1
	assert.True(t, points[1].Value.Equal(dec("1020")), "got %s", points[1].Value)
	assert.True(t, points[6].Value.Equal(dec("6420")), "got %s", points[6].Value)
	assert.True(t, points[12].Value.Equal(RDMaturityValue(dec("1000"), dec("0.24"), 12)))
}

func TestProject_ZeroHorizon(t *testing.T) {
	tests := []struct {
		name     string
		product  domain.ProductType
		amount   string
		expected string
	}{
		{"fd", domain.ProductFD, "50000", "50000"},
		{"fd plus", domain.ProductFDPlus, "50000", "50000"},
		{"rd starts empty", domain.ProductRD, "1000", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			points, err := Project(tt.product, dec(tt.amount), dec("0.02"), 0)
			require.NoError(t, err)
			require.Len(t, points, 1)
			assert.Equal(t, 0, points[0].Month)
			assert.True(t, points[0].Value.Equal(dec(tt.expected)))
		})
	}
}

func TestProject_NonDecreasing(t *testing.T) {
	for _, pt := range domain.ProductTypes {
		t.Run(string(pt), func(t *testing.T) {
			points, err := Project(pt, dec("10000"), dec("0.015"), 36)
			require.NoError(t, err)
			require.Len(t, points, 37)
			for i := 1; i < len(points); i++ {
				assert.True(t, points[i].Value.GreaterThanOrEqual(points[i-1].Value), "month %d decreased", i)
				assert.Equal(t, i, points[i].Month)
			}
		})
	}
}

func TestProject_InvalidInputs(t *testing.T) {
	for _, pt := range domain.ProductTypes {
		t.Run(string(pt), func(t *testing.T) {
			points, err := Project(pt, decimal.Zero, dec("0.01"), 12)
			require.NoError(t, err)
			assert.Empty(t, points)

			points, err = Project(pt, dec("1000"), dec("0.01"), -1)
			require.NoError(t, err)
			assert.Empty(t, points)
		})
	}
}
