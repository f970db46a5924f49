package account

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/rwhitten/nestegg/internal/dateutil"
)

//go:generate mockgen -source=service.go -destination=service_mock.go -package=account
type Repository interface {
	CreateAccount(ctx context.Context, a *Account) error
	GetAccount(ctx context.Context, id uuid.UUID) (*Account, error)
	ListAccounts(ctx context.Context, filter ListFilter) ([]*Account, error)
	UpdateAccount(ctx context.Context, a *Account) error
	DeleteAccount(ctx context.Context, id uuid.UUID) error
}

// Ledger is the slice of the entry store the balance calculator needs:
// aggregate sums over a date window and the entry date range. A nil
// bound leaves that side of the window open.
type Ledger interface {
	SumDeposits(ctx context.Context, accountID uuid.UUID, from, to *time.Time) (decimal.Decimal, error)
	SumWithdrawals(ctx context.Context, accountID uuid.UUID, from, to *time.Time) (decimal.Decimal, error)
	EntryDateRange(ctx context.Context, accountID uuid.UUID) (earliest, latest *time.Time, err error)
}

type Service struct {
	repo   Repository
	ledger Ledger
}

func NewService(repo Repository, ledger Ledger) *Service {
	return &Service{repo: repo, ledger: ledger}
}

type CreateParams struct {
	UserID              uuid.UUID
	Name                string
	Kind                Kind
	StartingBalance     decimal.Decimal
	OpenedOn            time.Time
	MonthlyInterestPct  float64
	YearlyInterestPct   float64
	YearlyWithdrawalPct float64
	TargetAmount        decimal.Decimal
}

type ListFilter struct {
	UserID *uuid.UUID
	Kind   *Kind
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Account, error) {
	a := &Account{
		UserID:              params.UserID,
		Name:                params.Name,
		Kind:                params.Kind,
		StartingBalance:     params.StartingBalance,
		OpenedOn:            params.OpenedOn,
		MonthlyInterestPct:  params.MonthlyInterestPct,
		YearlyInterestPct:   params.YearlyInterestPct,
		YearlyWithdrawalPct: params.YearlyWithdrawalPct,
		TargetAmount:        params.TargetAmount,
	}

	if err := s.repo.CreateAccount(ctx, a); err != nil {
		return nil, err
	}

	return a, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Account, error) {
	return s.repo.GetAccount(ctx, id)
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Account, error) {
	return s.repo.ListAccounts(ctx, filter)
}

func (s *Service) Update(ctx context.Context, a *Account) error {
	return s.repo.UpdateAccount(ctx, a)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteAccount(ctx, id)
}

// BalanceAsOf returns the account's running balance from entries dated
// strictly before the cutoff. An account with no entries has a
// well-defined balance: its starting balance.
func (s *Service) BalanceAsOf(ctx context.Context, a *Account, cutoff time.Time) (decimal.Decimal, error) {
	deposits, err := s.ledger.SumDeposits(ctx, a.ID, nil, &cutoff)
	if err != nil {
		return decimal.Zero, fmt.Errorf("summing deposits: %w", err)
	}

	withdrawals, err := s.ledger.SumWithdrawals(ctx, a.ID, nil, &cutoff)
	if err != nil {
		return decimal.Zero, fmt.Errorf("summing withdrawals: %w", err)
	}

	if a.IsDebt() {
		// Disbursements and interest charges grow the debt, payments
		// shrink it, and a paid-off debt is zero, never negative equity.
		balance := a.StartingBalance.Add(withdrawals).Sub(deposits)
		if balance.IsNegative() {
			balance = decimal.Zero
		}

		return balance, nil
	}

	return a.StartingBalance.Add(deposits).Sub(withdrawals), nil
}

// Balance returns the current running balance.
func (s *Service) Balance(ctx context.Context, a *Account) (decimal.Decimal, error) {
	return s.BalanceAsOf(ctx, a, time.Now().UTC())
}

// BalanceIncluding returns the running balance inclusive of the entire
// requested month, i.e. BalanceAsOf at the first instant of the
// following month.
func (s *Service) BalanceIncluding(ctx context.Context, a *Account, m dateutil.Month) (decimal.Decimal, error) {
	return s.BalanceAsOf(ctx, a, m.End())
}

// BalanceForMonth returns that month's deposits minus withdrawals
// only: a monthly delta, not a running total. Callers wanting the
// cumulative figure use BalanceIncluding.
func (s *Service) BalanceForMonth(ctx context.Context, a *Account, m dateutil.Month) (decimal.Decimal, error) {
	start := m.Start()
	end := m.End()

	deposits, err := s.ledger.SumDeposits(ctx, a.ID, &start, &end)
	if err != nil {
		return decimal.Zero, fmt.Errorf("summing deposits: %w", err)
	}

	withdrawals, err := s.ledger.SumWithdrawals(ctx, a.ID, &start, &end)
	if err != nil {
		return decimal.Zero, fmt.Errorf("summing withdrawals: %w", err)
	}

	if a.IsDebt() {
		// A monthly delta may legitimately be negative; the zero floor
		// applies only to the running balance.
		return withdrawals.Sub(deposits), nil
	}

	return deposits.Sub(withdrawals), nil
}

// LatestEntryDate returns the date of the account's newest entry, or
// nil for an empty account. Callers must branch on nil rather than
// assume a date exists.
func (s *Service) LatestEntryDate(ctx context.Context, a *Account) (*time.Time, error) {
	_, latest, err := s.ledger.EntryDateRange(ctx, a.ID)
	if err != nil {
		return nil, err
	}

	return latest, nil
}

// EarliestEntryDate is the symmetric minimum; nil for an empty account.
func (s *Service) EarliestEntryDate(ctx context.Context, a *Account) (*time.Time, error) {
	earliest, _, err := s.ledger.EntryDateRange(ctx, a.ID)
	if err != nil {
		return nil, err
	}

	return earliest, nil
}
