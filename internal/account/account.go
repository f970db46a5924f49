package account

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var ErrNotFound = errors.New("account not found")

// Kind discriminates the account variants. All variants share the base
// field set; retirement and debt accounts carry extra payload fields
// and debt accounts reverse the balance sign convention.
type Kind string

const (
	KindChecking   Kind = "checking"
	KindRetirement Kind = "retirement"
	KindTrading    Kind = "trading"
	KindDebt       Kind = "debt"
)

type Account struct {
	ID              uuid.UUID
	UserID          uuid.UUID
	Name            string
	Kind            Kind
	StartingBalance decimal.Decimal
	OpenedOn        time.Time

	// Interest rates are percentages, not fractions.
	MonthlyInterestPct float64
	YearlyInterestPct  float64

	// Retirement accounts only.
	YearlyWithdrawalPct float64
	TargetAmount        decimal.Decimal

	CreatedAt time.Time
	UpdatedAt *time.Time
}

// IsDebt reports whether the debt sign convention applies: deposits
// are payments that shrink the balance, withdrawals (disbursements,
// interest charges) grow it, and the running balance floors at zero.
func (a *Account) IsDebt() bool {
	return a.Kind == KindDebt
}

// IsBudgeted reports whether the account's withdrawals participate in
// budget aggregation. Retirement and trading balances move for reasons
// that are not expenses.
func (a *Account) IsBudgeted() bool {
	return a.Kind == KindChecking
}
