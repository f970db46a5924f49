package retirement

import (
	"math"
	"time"

	"github.com/shopspring/decimal"
)

// Point is one monthly tick of a drawdown simulation.
type Point struct {
	Date    time.Time
	Balance decimal.Decimal
}

// SimulationParams describe a drawdown run. Ages are in years and may
// be fractional; rates are percentages, not fractions.
type SimulationParams struct {
	BalanceAtRetirement decimal.Decimal
	RetirementDate      time.Time
	YearlyWithdrawalPct float64
	MonthlyInterestPct  float64
	AgeAtRetirement     float64
	ExpectedDeathAge    float64
}

// Simulate projects a retirement account from the retirement date to
// the expected death date, one point per month inclusive of both ends.
// Each tick first withdraws one twelfth of the yearly withdrawal rate,
// then grows the remainder by the monthly interest rate. The ledger is
// never consulted: the run is a pure function of the starting balance,
// the two rates, and the tick count.
func Simulate(params SimulationParams) []Point {
	months := int(math.Round(12 * (params.ExpectedDeathAge - params.AgeAtRetirement)))
	if months < 0 {
		months = 0
	}

	monthlyWithdrawalPct := decimal.NewFromFloat(params.YearlyWithdrawalPct / 12)
	monthlyInterestPct := decimal.NewFromFloat(params.MonthlyInterestPct)
	hundred := decimal.NewFromInt(100)

	points := make([]Point, 0, months+1)
	points = append(points, Point{Date: params.RetirementDate, Balance: params.BalanceAtRetirement})

	bal := params.BalanceAtRetirement

	for i := 1; i <= months; i++ {
		bal = bal.Sub(bal.Mul(monthlyWithdrawalPct).Div(hundred))
		bal = bal.Add(bal.Mul(monthlyInterestPct).Div(hundred))

		points = append(points, Point{
			Date:    params.RetirementDate.AddDate(0, i, 0),
			Balance: bal.Round(2),
		})
	}

	return points
}
