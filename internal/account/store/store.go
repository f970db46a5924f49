package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/rwhitten/nestegg/internal/account"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

const selectAccountColumns = `
	a.id, a.user_id, a.name, a.kind, a.starting_balance, a.opened_on,
	a.monthly_interest_pct, a.yearly_interest_pct, a.yearly_withdrawal_pct,
	a.target_amount, a.created_at, a.updated_at
`

func scanAccount(s scanner) (*account.Account, error) {
	var a account.Account

	var kindStr string

	if err := s.Scan(
		&a.ID, &a.UserID, &a.Name, &kindStr, &a.StartingBalance, &a.OpenedOn,
		&a.MonthlyInterestPct, &a.YearlyInterestPct, &a.YearlyWithdrawalPct,
		&a.TargetAmount, &a.CreatedAt, &a.UpdatedAt,
	); err != nil {
		return nil, err
	}

	a.Kind = account.Kind(kindStr)

	return &a, nil
}

func (s *Store) CreateAccount(ctx context.Context, a *account.Account) error {
	query := `
		INSERT INTO accounts (user_id, name, kind, starting_balance, opened_on, monthly_interest_pct, yearly_interest_pct, yearly_withdrawal_pct, target_amount, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW())
		RETURNING id, created_at
	`

	err := s.db.QueryRowContext(ctx, query,
		a.UserID,
		a.Name,
		a.Kind,
		a.StartingBalance,
		a.OpenedOn,
		a.MonthlyInterestPct,
		a.YearlyInterestPct,
		a.YearlyWithdrawalPct,
		a.TargetAmount,
	).Scan(&a.ID, &a.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating account: %w", err)
	}

	return nil
}

func (s *Store) GetAccount(ctx context.Context, id uuid.UUID) (*account.Account, error) {
	query := `SELECT ` + selectAccountColumns + ` FROM accounts a WHERE a.id = $1`

	a, err := scanAccount(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, account.ErrNotFound
		}

		return nil, fmt.Errorf("getting account: %w", err)
	}

	return a, nil
}

func (s *Store) ListAccounts(ctx context.Context, filter account.ListFilter) ([]*account.Account, error) {
	query := `SELECT ` + selectAccountColumns + ` FROM accounts a WHERE 1=1`

	var args []any

	argIdx := 1

	if filter.UserID != nil {
		query += fmt.Sprintf(" AND a.user_id = $%d", argIdx)

		args = append(args, *filter.UserID)
		argIdx++
	}

	if filter.Kind != nil {
		query += fmt.Sprintf(" AND a.kind = $%d", argIdx)

		args = append(args, *filter.Kind)
		argIdx++
	}

	query += " ORDER BY a.name ASC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing accounts: %w", err)
	}
	defer rows.Close()

	var accounts []*account.Account

	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning account: %w", err)
		}

		accounts = append(accounts, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating account rows: %w", err)
	}

	return accounts, nil
}

func (s *Store) UpdateAccount(ctx context.Context, a *account.Account) error {
	query := `
		UPDATE accounts
		SET name = $1, starting_balance = $2, monthly_interest_pct = $3, yearly_interest_pct = $4,
			yearly_withdrawal_pct = $5, target_amount = $6, updated_at = NOW()
		WHERE id = $7
	`

	_, err := s.db.ExecContext(ctx, query,
		a.Name,
		a.StartingBalance,
		a.MonthlyInterestPct,
		a.YearlyInterestPct,
		a.YearlyWithdrawalPct,
		a.TargetAmount,
		a.ID,
	)
	if err != nil {
		return fmt.Errorf("updating account: %w", err)
	}

	return nil
}

func (s *Store) DeleteAccount(ctx context.Context, id uuid.UUID) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM accounts WHERE id = $1`, id); err != nil {
		return fmt.Errorf("deleting account: %w", err)
	}

	return nil
}
