package budget

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/rwhitten/nestegg/internal/dateutil"
	"github.com/rwhitten/nestegg/internal/ledger"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=budget
type Repository interface {
	GetMonthlyBudget(ctx context.Context, userID uuid.UUID, month time.Month, year int) (*MonthlyBudget, error)
	CreateMonthlyBudget(ctx context.Context, mb *MonthlyBudget) error
	UpdateMonthlyBudget(ctx context.Context, mb *MonthlyBudget) error

	// SumWithdrawalsByGroup sums withdrawals on the user's checking
	// accounts in [start, end), keyed by budget group.
	SumWithdrawalsByGroup(ctx context.Context, userID uuid.UUID, start, end time.Time) (map[ledger.BudgetGroup]decimal.Decimal, error)
	SumStatutory(ctx context.Context, userID uuid.UUID, start, end time.Time) (decimal.Decimal, error)
	SumCheckingDeposits(ctx context.Context, userID uuid.UUID, start, end time.Time) (decimal.Decimal, error)
	TopWithdrawals(ctx context.Context, userID uuid.UUID, start, end time.Time, dim Dimension, n int) ([]RankedSum, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// GetOrCreate returns the user's budget for the month, lazily creating
// a zeroed row on first access rather than failing the read.
func (s *Service) GetOrCreate(ctx context.Context, userID uuid.UUID, m dateutil.Month) (*MonthlyBudget, error) {
	mb, err := s.repo.GetMonthlyBudget(ctx, userID, m.Month, m.Year)
	if err == nil {
		return mb, nil
	}

	if !errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("getting monthly budget: %w", err)
	}

	mb = &MonthlyBudget{
		UserID:               userID,
		Month:                m.Month,
		Year:                 m.Year,
		Mandatory:            decimal.Zero,
		Mortgage:             decimal.Zero,
		DebtsGoalsRetirement: decimal.Zero,
		Discretionary:        decimal.Zero,
	}

	if err := s.repo.CreateMonthlyBudget(ctx, mb); err != nil {
		return nil, fmt.Errorf("creating monthly budget: %w", err)
	}

	return mb, nil
}

func (s *Service) Update(ctx context.Context, mb *MonthlyBudget) error {
	return s.repo.UpdateMonthlyBudget(ctx, mb)
}

// ExpensesByGroup sums the user's checking-account withdrawals in
// [start, end) by budget group, with the statutory total drawn from
// the separate per-user tax ledger.
func (s *Service) ExpensesByGroup(ctx context.Context, userID uuid.UUID, start, end time.Time) (GroupTotals, error) {
	byGroup, err := s.repo.SumWithdrawalsByGroup(ctx, userID, start, end)
	if err != nil {
		return GroupTotals{}, fmt.Errorf("summing withdrawals by group: %w", err)
	}

	statutory, err := s.repo.SumStatutory(ctx, userID, start, end)
	if err != nil {
		return GroupTotals{}, fmt.Errorf("summing statutory: %w", err)
	}

	orZero := func(g ledger.BudgetGroup) decimal.Decimal {
		if v, ok := byGroup[g]; ok {
			return v
		}

		return decimal.Zero
	}

	return GroupTotals{
		Mandatory:            orZero(ledger.GroupMandatory),
		Mortgage:             orZero(ledger.GroupMortgage),
		DebtsGoalsRetirement: orZero(ledger.GroupDGR),
		Discretionary:        orZero(ledger.GroupDiscretionary),
		Statutory:            statutory,
	}, nil
}

// ExpensesForMonth is ExpensesByGroup over one calendar month.
func (s *Service) ExpensesForMonth(ctx context.Context, userID uuid.UUID, m dateutil.Month) (GroupTotals, error) {
	return s.ExpensesByGroup(ctx, userID, m.Start(), m.End())
}

// TakehomePay is gross checking-account income for the month minus
// statutory withholding for the month.
func (s *Service) TakehomePay(ctx context.Context, userID uuid.UUID, m dateutil.Month) (decimal.Decimal, error) {
	gross, err := s.repo.SumCheckingDeposits(ctx, userID, m.Start(), m.End())
	if err != nil {
		return decimal.Zero, fmt.Errorf("summing income: %w", err)
	}

	statutory, err := s.repo.SumStatutory(ctx, userID, m.Start(), m.End())
	if err != nil {
		return decimal.Zero, fmt.Errorf("summing statutory: %w", err)
	}

	return gross.Sub(statutory), nil
}

// Estimate derives a suggested budget for the month by applying the
// split percentages to takehome pay. Statutory comes back as the
// month's actual withholding, since taxes are tracked, not planned.
func (s *Service) Estimate(ctx context.Context, userID uuid.UUID, m dateutil.Month, split Split) (GroupTotals, error) {
	takehome, err := s.TakehomePay(ctx, userID, m)
	if err != nil {
		return GroupTotals{}, err
	}

	statutory, err := s.repo.SumStatutory(ctx, userID, m.Start(), m.End())
	if err != nil {
		return GroupTotals{}, fmt.Errorf("summing statutory: %w", err)
	}

	pct := func(p float64) decimal.Decimal {
		return takehome.Mul(decimal.NewFromFloat(p)).Div(decimal.NewFromInt(100)).Round(2)
	}

	return GroupTotals{
		Mandatory:            pct(split.MandatoryPct),
		Mortgage:             pct(split.MortgagePct),
		DebtsGoalsRetirement: pct(split.DGRPct),
		Discretionary:        pct(split.DiscretionaryPct),
		Statutory:            statutory,
	}, nil
}

// Leftover compares the planned budget against actual expenses for the
// month. Negative values mean overspend.
func (s *Service) Leftover(ctx context.Context, userID uuid.UUID, m dateutil.Month) (GroupTotals, error) {
	mb, err := s.GetOrCreate(ctx, userID, m)
	if err != nil {
		return GroupTotals{}, err
	}

	actual, err := s.ExpensesForMonth(ctx, userID, m)
	if err != nil {
		return GroupTotals{}, err
	}

	planned := GroupTotals{
		Mandatory:            mb.Mandatory,
		Mortgage:             mb.Mortgage,
		DebtsGoalsRetirement: mb.DebtsGoalsRetirement,
		Discretionary:        mb.Discretionary,
		Statutory:            actual.Statutory, // taxes are never planned
	}

	return planned.Sub(actual), nil
}

// TopN returns the user's largest withdrawal sums in [start, end)
// grouped by the given dimension, descending. Ties come back in the
// store's stable order.
func (s *Service) TopN(ctx context.Context, userID uuid.UUID, start, end time.Time, dim Dimension, n int) ([]RankedSum, error) {
	if n <= 0 {
		n = 5
	}

	return s.repo.TopWithdrawals(ctx, userID, start, end, dim, n)
}
