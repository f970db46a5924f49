package retirement_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rwhitten/nestegg/internal/retirement"
)

func TestSimulate_TickCount(t *testing.T) {
	type testCase struct {
		name       string
		retireAge  float64
		deathAge   float64
		wantPoints int
	}

	tests := []testCase{
		{name: "TwentyYears", retireAge: 65, deathAge: 85, wantPoints: 12*20 + 1},
		{name: "FractionalAges", retireAge: 67.5, deathAge: 85, wantPoints: 210 + 1},
		{name: "DeathAtRetirement", retireAge: 85, deathAge: 85, wantPoints: 1},
		{name: "DeathBeforeRetirement", retireAge: 90, deathAge: 85, wantPoints: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			points := retirement.Simulate(retirement.SimulationParams{
				BalanceAtRetirement: decimal.NewFromInt(500000),
				RetirementDate:      time.Date(2040, time.July, 1, 0, 0, 0, 0, time.UTC),
				YearlyWithdrawalPct: 4,
				MonthlyInterestPct:  0.3,
				AgeAtRetirement:     tt.retireAge,
				ExpectedDeathAge:    tt.deathAge,
			})

			assert.Len(t, points, tt.wantPoints)
		})
	}
}

func TestSimulate_FirstPointIsBalanceAtRetirement(t *testing.T) {
	retireDate := time.Date(2035, time.January, 1, 0, 0, 0, 0, time.UTC)
	balance := decimal.NewFromFloat(123456.78)

	points := retirement.Simulate(retirement.SimulationParams{
		BalanceAtRetirement: balance,
		RetirementDate:      retireDate,
		YearlyWithdrawalPct: 4,
		MonthlyInterestPct:  0.3,
		AgeAtRetirement:     65,
		ExpectedDeathAge:    85,
	})

	require.NotEmpty(t, points)
	assert.Equal(t, retireDate, points[0].Date)
	assert.True(t, points[0].Balance.Equal(balance))
}

func TestSimulate_WithdrawThenGrowOrdering(t *testing.T) {
	// One tick on $100,000: withdraw 12%/12 = 1% ($1,000), then grow
	// the remaining $99,000 by 0.5% ($495).
	points := retirement.Simulate(retirement.SimulationParams{
		BalanceAtRetirement: decimal.NewFromInt(100000),
		RetirementDate:      time.Date(2035, time.January, 1, 0, 0, 0, 0, time.UTC),
		YearlyWithdrawalPct: 12,
		MonthlyInterestPct:  0.5,
		AgeAtRetirement:     65,
		ExpectedDeathAge:    65.0 + 1.0/12.0,
	})

	require.Len(t, points, 2)
	assert.True(t, points[1].Balance.Equal(decimal.NewFromInt(99495)), "got %s", points[1].Balance)
}

func TestSimulate_DatesAdvanceMonthly(t *testing.T) {
	retireDate := time.Date(2035, time.November, 1, 0, 0, 0, 0, time.UTC)

	points := retirement.Simulate(retirement.SimulationParams{
		BalanceAtRetirement: decimal.NewFromInt(100000),
		RetirementDate:      retireDate,
		YearlyWithdrawalPct: 4,
		MonthlyInterestPct:  0.3,
		AgeAtRetirement:     65,
		ExpectedDeathAge:    66,
	})

	require.Len(t, points, 13)

	for i, p := range points {
		assert.Equal(t, retireDate.AddDate(0, i, 0), p.Date)
	}

	// Crosses the year boundary without skipping a month.
	assert.Equal(t, time.Date(2036, time.January, 1, 0, 0, 0, 0, time.UTC), points[2].Date)
}

func TestSimulate_BalanceShrinksWhenWithdrawalOutpacesGrowth(t *testing.T) {
	points := retirement.Simulate(retirement.SimulationParams{
		BalanceAtRetirement: decimal.NewFromInt(100000),
		RetirementDate:      time.Date(2035, time.January, 1, 0, 0, 0, 0, time.UTC),
		YearlyWithdrawalPct: 8,
		MonthlyInterestPct:  0.2,
		AgeAtRetirement:     65,
		ExpectedDeathAge:    75,
	})

	for i := 1; i < len(points); i++ {
		assert.True(t, points[i].Balance.LessThan(points[i-1].Balance),
			"balance should shrink at tick %d: %s >= %s", i, points[i].Balance, points[i-1].Balance)
	}
}
