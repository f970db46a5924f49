package budget

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var ErrNotFound = errors.New("monthly budget not found")

// MonthlyBudget holds the planned allocations for one (user, month,
// year). At most one row exists per tuple; rows are created lazily,
// zeroed, the first time a month is viewed. Statutory withholding is
// tracked as actuals and is never budgeted.
type MonthlyBudget struct {
	ID                   uuid.UUID
	UserID               uuid.UUID
	Month                time.Month
	Year                 int
	Mandatory            decimal.Decimal
	Mortgage             decimal.Decimal
	DebtsGoalsRetirement decimal.Decimal
	Discretionary        decimal.Decimal
	CreatedAt            time.Time
	UpdatedAt            *time.Time
}

// Split is the percentage weighting used to derive a suggested budget
// from takehome pay. Percentages apply to takehome (gross income minus
// statutory), not gross.
type Split struct {
	MandatoryPct     float64
	MortgagePct      float64
	DGRPct           float64
	DiscretionaryPct float64
}

// DefaultSplit is the documented 16/29/25/30 weighting.
var DefaultSplit = Split{
	MandatoryPct:     16,
	MortgagePct:      29,
	DGRPct:           25,
	DiscretionaryPct: 30,
}

// GroupTotals carries one amount per budget group plus the separate
// statutory total.
type GroupTotals struct {
	Mandatory            decimal.Decimal
	Mortgage             decimal.Decimal
	DebtsGoalsRetirement decimal.Decimal
	Discretionary        decimal.Decimal
	Statutory            decimal.Decimal
}

// Sub returns per-group leftover: planned minus actual. Overspend
// yields a negative leftover; it is surfaced, never clamped.
func (g GroupTotals) Sub(actual GroupTotals) GroupTotals {
	return GroupTotals{
		Mandatory:            g.Mandatory.Sub(actual.Mandatory),
		Mortgage:             g.Mortgage.Sub(actual.Mortgage),
		DebtsGoalsRetirement: g.DebtsGoalsRetirement.Sub(actual.DebtsGoalsRetirement),
		Discretionary:        g.Discretionary.Sub(actual.Discretionary),
		Statutory:            g.Statutory.Sub(actual.Statutory),
	}
}

func (g GroupTotals) Total() decimal.Decimal {
	return g.Mandatory.
		Add(g.Mortgage).
		Add(g.DebtsGoalsRetirement).
		Add(g.Discretionary).
		Add(g.Statutory)
}

// Dimension selects which entry field TopN groups by.
type Dimension string

const (
	DimensionCategory    Dimension = "category"
	DimensionDescription Dimension = "description"
	DimensionLocation    Dimension = "location"
)

// RankedSum is one row of a top-N breakdown.
type RankedSum struct {
	Value string
	Sum   decimal.Decimal
}
