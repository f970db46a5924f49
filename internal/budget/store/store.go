package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/rwhitten/nestegg/internal/budget"
	"github.com/rwhitten/nestegg/internal/ledger"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) GetMonthlyBudget(ctx context.Context, userID uuid.UUID, month time.Month, year int) (*budget.MonthlyBudget, error) {
	query := `
		SELECT mb.id, mb.user_id, mb.month, mb.year, mb.mandatory, mb.mortgage,
			mb.debts_goals_retirement, mb.discretionary, mb.created_at, mb.updated_at
		FROM monthly_budgets mb
		WHERE mb.user_id = $1 AND mb.month = $2 AND mb.year = $3
	`

	var mb budget.MonthlyBudget

	var monthInt int

	err := s.db.QueryRowContext(ctx, query, userID, int(month), year).Scan(
		&mb.ID, &mb.UserID, &monthInt, &mb.Year, &mb.Mandatory, &mb.Mortgage,
		&mb.DebtsGoalsRetirement, &mb.Discretionary, &mb.CreatedAt, &mb.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, budget.ErrNotFound
		}

		return nil, fmt.Errorf("getting monthly budget: %w", err)
	}

	mb.Month = time.Month(monthInt)

	return &mb, nil
}

func (s *Store) CreateMonthlyBudget(ctx context.Context, mb *budget.MonthlyBudget) error {
	// The (user, month, year) unique constraint makes concurrent lazy
	// creation safe: the loser of the race picks up the winner's row.
	query := `
		INSERT INTO monthly_budgets (user_id, month, year, mandatory, mortgage, debts_goals_retirement, discretionary, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
		ON CONFLICT (user_id, month, year) DO UPDATE SET updated_at = monthly_budgets.updated_at
		RETURNING id, mandatory, mortgage, debts_goals_retirement, discretionary, created_at
	`

	err := s.db.QueryRowContext(ctx, query,
		mb.UserID,
		int(mb.Month),
		mb.Year,
		mb.Mandatory,
		mb.Mortgage,
		mb.DebtsGoalsRetirement,
		mb.Discretionary,
	).Scan(&mb.ID, &mb.Mandatory, &mb.Mortgage, &mb.DebtsGoalsRetirement, &mb.Discretionary, &mb.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating monthly budget: %w", err)
	}

	return nil
}

func (s *Store) UpdateMonthlyBudget(ctx context.Context, mb *budget.MonthlyBudget) error {
	query := `
		UPDATE monthly_budgets
		SET mandatory = $1, mortgage = $2, debts_goals_retirement = $3, discretionary = $4, updated_at = NOW()
		WHERE id = $5
	`

	_, err := s.db.ExecContext(ctx, query,
		mb.Mandatory,
		mb.Mortgage,
		mb.DebtsGoalsRetirement,
		mb.Discretionary,
		mb.ID,
	)
	if err != nil {
		return fmt.Errorf("updating monthly budget: %w", err)
	}

	return nil
}

func (s *Store) SumWithdrawalsByGroup(ctx context.Context, userID uuid.UUID, start, end time.Time) (map[ledger.BudgetGroup]decimal.Decimal, error) {
	query := `
		SELECT e.budget_group, COALESCE(SUM(e.amount), 0)
		FROM entries e
		JOIN accounts a ON a.id = e.account_id
		WHERE a.user_id = $1 AND a.kind = 'checking' AND e.kind = 'withdrawal'
			AND e.date >= $2 AND e.date < $3
		GROUP BY e.budget_group
	`

	rows, err := s.db.QueryContext(ctx, query, userID, start, end)
	if err != nil {
		return nil, fmt.Errorf("summing withdrawals by group: %w", err)
	}
	defer rows.Close()

	totals := make(map[ledger.BudgetGroup]decimal.Decimal)

	for rows.Next() {
		var group string

		var sum decimal.Decimal

		if err := rows.Scan(&group, &sum); err != nil {
			return nil, fmt.Errorf("scanning group sum: %w", err)
		}

		totals[ledger.BudgetGroup(group)] = sum
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating group sums: %w", err)
	}

	return totals, nil
}

func (s *Store) SumStatutory(ctx context.Context, userID uuid.UUID, start, end time.Time) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(st.amount), 0)
		FROM statutory st
		WHERE st.user_id = $1 AND st.date >= $2 AND st.date < $3
	`

	var sum decimal.Decimal

	if err := s.db.QueryRowContext(ctx, query, userID, start, end).Scan(&sum); err != nil {
		return decimal.Zero, fmt.Errorf("summing statutory: %w", err)
	}

	return sum, nil
}

func (s *Store) SumCheckingDeposits(ctx context.Context, userID uuid.UUID, start, end time.Time) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(e.amount), 0)
		FROM entries e
		JOIN accounts a ON a.id = e.account_id
		WHERE a.user_id = $1 AND a.kind = 'checking' AND e.kind = 'deposit'
			AND e.date >= $2 AND e.date < $3
	`

	var sum decimal.Decimal

	if err := s.db.QueryRowContext(ctx, query, userID, start, end).Scan(&sum); err != nil {
		return decimal.Zero, fmt.Errorf("summing checking deposits: %w", err)
	}

	return sum, nil
}

func (s *Store) TopWithdrawals(ctx context.Context, userID uuid.UUID, start, end time.Time, dim budget.Dimension, n int) ([]budget.RankedSum, error) {
	var column string

	switch dim {
	case budget.DimensionCategory:
		column = "e.category"
	case budget.DimensionDescription:
		column = "e.description"
	case budget.DimensionLocation:
		column = "e.location"
	default:
		return nil, fmt.Errorf("unknown top-n dimension %q", dim)
	}

	// MIN(created_at) breaks sum ties deterministically: the value
	// first seen in the ledger ranks first.
	query := `
		SELECT ` + column + `, COALESCE(SUM(e.amount), 0) AS total
		FROM entries e
		JOIN accounts a ON a.id = e.account_id
		WHERE a.user_id = $1 AND a.kind = 'checking' AND e.kind = 'withdrawal'
			AND e.date >= $2 AND e.date < $3
		GROUP BY ` + column + `
		ORDER BY total DESC, MIN(e.created_at) ASC
		LIMIT $4
	`

	rows, err := s.db.QueryContext(ctx, query, userID, start, end, n)
	if err != nil {
		return nil, fmt.Errorf("ranking withdrawals: %w", err)
	}
	defer rows.Close()

	var ranked []budget.RankedSum

	for rows.Next() {
		var r budget.RankedSum

		if err := rows.Scan(&r.Value, &r.Sum); err != nil {
			return nil, fmt.Errorf("scanning ranked sum: %w", err)
		}

		ranked = append(ranked, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating ranked sums: %w", err)
	}

	return ranked, nil
}
