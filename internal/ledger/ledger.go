package ledger

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var ErrNotFound = errors.New("ledger entry not found")

// Kind distinguishes the two base ledger row types. Amounts are stored
// as non-negative magnitudes; the sign is implied by the kind.
type Kind string

const (
	KindDeposit    Kind = "deposit"
	KindWithdrawal Kind = "withdrawal"
)

// BudgetGroup is the fixed taxonomy used to classify withdrawals for
// budget comparison. Statutory (tax) amounts live in their own
// per-user ledger and are never budgeted.
type BudgetGroup string

const (
	GroupMandatory     BudgetGroup = "Mandatory"
	GroupMortgage      BudgetGroup = "Mortgage"
	GroupDGR           BudgetGroup = "Debts, Goals, Retirement"
	GroupDiscretionary BudgetGroup = "Discretionary"
	GroupStatutory     BudgetGroup = "Statutory"
)

// Entry is a dated deposit or withdrawal against one account.
// The tuple (account, kind, date, amount, description) is unique;
// re-submitting an identical entry updates the classification fields
// rather than creating a duplicate row. A deposit and a withdrawal
// are never the same entry, however alike the rest of the key.
type Entry struct {
	ID          uuid.UUID
	AccountID   uuid.UUID
	Kind        Kind
	Date        time.Time
	Amount      decimal.Decimal
	BudgetGroup BudgetGroup
	Category    string
	Description string
	Location    string
	Slug        string
	Tag         string
	CreatedAt   time.Time
	UpdatedAt   *time.Time
}

// Statutory is a tax-withholding entry. It is keyed by user rather
// than by account: statutory amounts never pass through a checking
// account's ledger.
type Statutory struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Date        time.Time
	Amount      decimal.Decimal
	Category    string
	Description string
	Location    string
	CreatedAt   time.Time
	UpdatedAt   *time.Time
}

// Transfer is a composite entry between two accounts. Every save
// mirrors it into exactly one Withdrawal on the source account and one
// Deposit on the destination, sharing the (date, amount, description)
// key with the transfer itself.
type Transfer struct {
	ID            uuid.UUID
	FromAccountID uuid.UUID
	ToAccountID   uuid.UUID
	Date          time.Time
	Amount        decimal.Decimal
	BudgetGroup   BudgetGroup
	Category      string
	Description   string
	Location      string
	CreatedAt     time.Time
	UpdatedAt     *time.Time
}

// Slugify derives the URL-safe slug stored alongside an entry's
// description.
func Slugify(description string) string {
	var b strings.Builder

	lastDash := true // suppress leading dashes

	for _, r := range strings.ToLower(description) {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)

			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
			}

			lastDash = true
		}
	}

	return strings.TrimSuffix(b.String(), "-")
}
