package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/rwhitten/nestegg/internal/ledger"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

const selectEntryColumns = `
	e.id, e.account_id, e.kind, e.date, e.amount, e.budget_group, e.category,
	e.description, e.location, e.slug, e.tag, e.created_at, e.updated_at
`

func scanEntry(s scanner) (*ledger.Entry, error) {
	var e ledger.Entry

	var kindStr, groupStr string

	var location, tag sql.NullString

	if err := s.Scan(
		&e.ID, &e.AccountID, &kindStr, &e.Date, &e.Amount, &groupStr, &e.Category,
		&e.Description, &location, &e.Slug, &tag, &e.CreatedAt, &e.UpdatedAt,
	); err != nil {
		return nil, err
	}

	e.Kind = ledger.Kind(kindStr)
	e.BudgetGroup = ledger.BudgetGroup(groupStr)
	e.Location = location.String
	e.Tag = tag.String

	return &e, nil
}

const upsertEntryQuery = `
	INSERT INTO entries (account_id, kind, date, amount, budget_group, category, description, location, slug, tag, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW(), NOW())
	ON CONFLICT (account_id, kind, date, amount, description) DO UPDATE
	SET budget_group = EXCLUDED.budget_group,
		category = EXCLUDED.category,
		location = EXCLUDED.location,
		slug = EXCLUDED.slug,
		tag = EXCLUDED.tag,
		updated_at = NOW()
	RETURNING id, created_at, (xmax <> 0) AS updated
`

func (s *Store) UpsertEntry(ctx context.Context, e *ledger.Entry) (bool, error) {
	updated, err := upsertEntry(ctx, s.db, e)
	if err != nil {
		return false, fmt.Errorf("upserting entry: %w", err)
	}

	return updated, nil
}

// execer is satisfied by both *sql.DB and *sql.Tx.
type execer interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func upsertEntry(ctx context.Context, db execer, e *ledger.Entry) (bool, error) {
	var updated bool

	err := db.QueryRowContext(ctx, upsertEntryQuery,
		e.AccountID,
		e.Kind,
		e.Date,
		e.Amount,
		e.BudgetGroup,
		e.Category,
		e.Description,
		e.Location,
		e.Slug,
		e.Tag,
	).Scan(&e.ID, &e.CreatedAt, &updated)

	return updated, err
}

func (s *Store) GetEntry(ctx context.Context, id uuid.UUID) (*ledger.Entry, error) {
	query := `SELECT ` + selectEntryColumns + ` FROM entries e WHERE e.id = $1`

	e, err := scanEntry(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ledger.ErrNotFound
		}

		return nil, fmt.Errorf("getting entry: %w", err)
	}

	return e, nil
}

func (s *Store) ListEntries(ctx context.Context, filter ledger.ListFilter) ([]*ledger.Entry, error) {
	query := `SELECT ` + selectEntryColumns + ` FROM entries e WHERE 1=1`

	var args []any

	argIdx := 1

	if filter.AccountID != nil {
		query += fmt.Sprintf(" AND e.account_id = $%d", argIdx)

		args = append(args, *filter.AccountID)
		argIdx++
	}

	if filter.Kind != nil {
		query += fmt.Sprintf(" AND e.kind = $%d", argIdx)

		args = append(args, *filter.Kind)
		argIdx++
	}

	if filter.BudgetGroup != nil {
		query += fmt.Sprintf(" AND e.budget_group = $%d", argIdx)

		args = append(args, *filter.BudgetGroup)
		argIdx++
	}

	if filter.StartDate != nil {
		query += fmt.Sprintf(" AND e.date >= $%d", argIdx)

		args = append(args, *filter.StartDate)
		argIdx++
	}

	if filter.EndDate != nil {
		query += fmt.Sprintf(" AND e.date < $%d", argIdx)

		args = append(args, *filter.EndDate)
		argIdx++
	}

	query += " ORDER BY e.date ASC, e.created_at ASC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing entries: %w", err)
	}
	defer rows.Close()

	var entries []*ledger.Entry

	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning entry: %w", err)
		}

		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating entry rows: %w", err)
	}

	return entries, nil
}

func (s *Store) DeleteEntry(ctx context.Context, id uuid.UUID) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM entries WHERE id = $1`, id); err != nil {
		return fmt.Errorf("deleting entry: %w", err)
	}

	return nil
}

func (s *Store) UpsertStatutory(ctx context.Context, st *ledger.Statutory) (bool, error) {
	query := `
		INSERT INTO statutory (user_id, date, amount, category, description, location, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		ON CONFLICT (user_id, date, amount, description) DO UPDATE
		SET category = EXCLUDED.category,
			location = EXCLUDED.location,
			updated_at = NOW()
		RETURNING id, created_at, (xmax <> 0) AS updated
	`

	var updated bool

	err := s.db.QueryRowContext(ctx, query,
		st.UserID,
		st.Date,
		st.Amount,
		st.Category,
		st.Description,
		st.Location,
	).Scan(&st.ID, &st.CreatedAt, &updated)
	if err != nil {
		return false, fmt.Errorf("upserting statutory entry: %w", err)
	}

	return updated, nil
}

func (s *Store) ListStatutory(ctx context.Context, userID uuid.UUID, from, to *time.Time) ([]*ledger.Statutory, error) {
	query := `
		SELECT st.id, st.user_id, st.date, st.amount, st.category, st.description, st.location, st.created_at, st.updated_at
		FROM statutory st
		WHERE st.user_id = $1`

	args := []any{userID}

	argIdx := 2

	if from != nil {
		query += fmt.Sprintf(" AND st.date >= $%d", argIdx)

		args = append(args, *from)
		argIdx++
	}

	if to != nil {
		query += fmt.Sprintf(" AND st.date < $%d", argIdx)

		args = append(args, *to)
		argIdx++
	}

	query += " ORDER BY st.date ASC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing statutory entries: %w", err)
	}
	defer rows.Close()

	var sts []*ledger.Statutory

	for rows.Next() {
		var st ledger.Statutory

		var location sql.NullString

		if err := rows.Scan(
			&st.ID, &st.UserID, &st.Date, &st.Amount, &st.Category,
			&st.Description, &location, &st.CreatedAt, &st.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning statutory entry: %w", err)
		}

		st.Location = location.String
		sts = append(sts, &st)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating statutory rows: %w", err)
	}

	return sts, nil
}

func (s *Store) DeleteStatutory(ctx context.Context, id uuid.UUID) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM statutory WHERE id = $1`, id); err != nil {
		return fmt.Errorf("deleting statutory entry: %w", err)
	}

	return nil
}

// SaveTransfer writes both mirror legs and the transfer row in one
// database transaction so a partial mirror can never be committed.
func (s *Store) SaveTransfer(ctx context.Context, t *ledger.Transfer, withdrawal, deposit *ledger.Entry) error {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer dbTx.Rollback()

	if _, err := upsertEntry(ctx, dbTx, withdrawal); err != nil {
		return fmt.Errorf("mirroring withdrawal: %w", err)
	}

	if _, err := upsertEntry(ctx, dbTx, deposit); err != nil {
		return fmt.Errorf("mirroring deposit: %w", err)
	}

	transferQuery := `
		INSERT INTO transfers (account_from, account_to, date, amount, budget_group, category, description, location, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
		ON CONFLICT (account_from, account_to, date, amount, description) DO UPDATE
		SET budget_group = EXCLUDED.budget_group,
			category = EXCLUDED.category,
			location = EXCLUDED.location,
			updated_at = NOW()
		RETURNING id, created_at
	`

	err = dbTx.QueryRowContext(ctx, transferQuery,
		t.FromAccountID,
		t.ToAccountID,
		t.Date,
		t.Amount,
		t.BudgetGroup,
		t.Category,
		t.Description,
		t.Location,
	).Scan(&t.ID, &t.CreatedAt)
	if err != nil {
		return fmt.Errorf("saving transfer row: %w", err)
	}

	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("committing transfer: %w", err)
	}

	return nil
}

func (s *Store) GetTransfer(ctx context.Context, id uuid.UUID) (*ledger.Transfer, error) {
	query := `
		SELECT t.id, t.account_from, t.account_to, t.date, t.amount, t.budget_group,
			t.category, t.description, t.location, t.created_at, t.updated_at
		FROM transfers t
		WHERE t.id = $1
	`

	var t ledger.Transfer

	var groupStr string

	var location sql.NullString

	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&t.ID, &t.FromAccountID, &t.ToAccountID, &t.Date, &t.Amount, &groupStr,
		&t.Category, &t.Description, &location, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ledger.ErrNotFound
		}

		return nil, fmt.Errorf("getting transfer: %w", err)
	}

	t.BudgetGroup = ledger.BudgetGroup(groupStr)
	t.Location = location.String

	return &t, nil
}

// SumDeposits returns the deposit total for the account, optionally
// bounded by [from, to). A cutoff-only query passes from=nil.
func (s *Store) SumDeposits(ctx context.Context, accountID uuid.UUID, from, to *time.Time) (decimal.Decimal, error) {
	return s.sumEntries(ctx, accountID, ledger.KindDeposit, from, to)
}

func (s *Store) SumWithdrawals(ctx context.Context, accountID uuid.UUID, from, to *time.Time) (decimal.Decimal, error) {
	return s.sumEntries(ctx, accountID, ledger.KindWithdrawal, from, to)
}

func (s *Store) sumEntries(ctx context.Context, accountID uuid.UUID, kind ledger.Kind, from, to *time.Time) (decimal.Decimal, error) {
	query := `SELECT COALESCE(SUM(e.amount), 0) FROM entries e WHERE e.account_id = $1 AND e.kind = $2`

	args := []any{accountID, kind}

	argIdx := 3

	if from != nil {
		query += fmt.Sprintf(" AND e.date >= $%d", argIdx)

		args = append(args, *from)
		argIdx++
	}

	if to != nil {
		query += fmt.Sprintf(" AND e.date < $%d", argIdx)

		args = append(args, *to)
		argIdx++
	}

	var sum decimal.Decimal

	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&sum); err != nil {
		return decimal.Zero, fmt.Errorf("summing %s entries: %w", kind, err)
	}

	return sum, nil
}

// EntryDateRange returns the earliest and latest entry dates for the
// account. Both are nil when the account has no entries.
func (s *Store) EntryDateRange(ctx context.Context, accountID uuid.UUID) (earliest, latest *time.Time, err error) {
	query := `SELECT MIN(e.date), MAX(e.date) FROM entries e WHERE e.account_id = $1`

	var minDate, maxDate sql.NullTime

	if err := s.db.QueryRowContext(ctx, query, accountID).Scan(&minDate, &maxDate); err != nil {
		return nil, nil, fmt.Errorf("finding entry date range: %w", err)
	}

	if minDate.Valid {
		earliest = &minDate.Time
	}

	if maxDate.Valid {
		latest = &maxDate.Time
	}

	return earliest, latest, nil
}
