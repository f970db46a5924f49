package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=ledger
type Repository interface {
	// UpsertEntry inserts the entry or, when a row with the same
	// (account, kind, date, amount, description) key exists, updates
	// that row's classification fields in place and reports
	// updated=true.
	UpsertEntry(ctx context.Context, e *Entry) (updated bool, err error)
	GetEntry(ctx context.Context, id uuid.UUID) (*Entry, error)
	ListEntries(ctx context.Context, filter ListFilter) ([]*Entry, error)
	DeleteEntry(ctx context.Context, id uuid.UUID) error

	UpsertStatutory(ctx context.Context, st *Statutory) (updated bool, err error)
	ListStatutory(ctx context.Context, userID uuid.UUID, from, to *time.Time) ([]*Statutory, error)
	DeleteStatutory(ctx context.Context, id uuid.UUID) error

	// SaveTransfer persists the transfer row and both mirror entries in
	// a single database transaction. The mirror rows follow the same
	// upsert-by-natural-key rule as UpsertEntry.
	SaveTransfer(ctx context.Context, t *Transfer, withdrawal, deposit *Entry) error
	GetTransfer(ctx context.Context, id uuid.UUID) (*Transfer, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type EntryParams struct {
	AccountID   uuid.UUID
	Kind        Kind
	Date        time.Time
	Amount      decimal.Decimal
	BudgetGroup BudgetGroup
	Category    string
	Description string
	Location    string
	Tag         string
}

type ListFilter struct {
	AccountID   *uuid.UUID
	Kind        *Kind
	BudgetGroup *BudgetGroup
	StartDate   *time.Time
	EndDate     *time.Time
}

func (s *Service) RecordEntry(ctx context.Context, params EntryParams) (*Entry, error) {
	if params.Amount.IsNegative() {
		return nil, fmt.Errorf("entry amount must be a non-negative magnitude, got %s", params.Amount)
	}

	e := entryFromParams(params)
	if _, err := s.repo.UpsertEntry(ctx, e); err != nil {
		return nil, fmt.Errorf("recording %s: %w", params.Kind, err)
	}

	return e, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Entry, error) {
	return s.repo.GetEntry(ctx, id)
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Entry, error) {
	return s.repo.ListEntries(ctx, filter)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteEntry(ctx, id)
}

type StatutoryParams struct {
	UserID      uuid.UUID
	Date        time.Time
	Amount      decimal.Decimal
	Category    string
	Description string
	Location    string
}

func (s *Service) RecordStatutory(ctx context.Context, params StatutoryParams) (*Statutory, error) {
	st := &Statutory{
		UserID:      params.UserID,
		Date:        params.Date,
		Amount:      params.Amount,
		Category:    params.Category,
		Description: params.Description,
		Location:    params.Location,
	}

	if _, err := s.repo.UpsertStatutory(ctx, st); err != nil {
		return nil, fmt.Errorf("recording statutory entry: %w", err)
	}

	return st, nil
}

func (s *Service) ListStatutory(ctx context.Context, userID uuid.UUID, from, to *time.Time) ([]*Statutory, error) {
	return s.repo.ListStatutory(ctx, userID, from, to)
}

func (s *Service) DeleteStatutory(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteStatutory(ctx, id)
}

type TransferParams struct {
	FromAccountID uuid.UUID
	ToAccountID   uuid.UUID
	Date          time.Time
	Amount        decimal.Decimal
	BudgetGroup   BudgetGroup
	Category      string
	Description   string
	Location      string
}

// SaveTransfer mirrors the transfer into one withdrawal on the source
// account and one deposit on the destination, then persists the
// transfer row itself exactly once. All three writes share a database
// transaction, and the mirror rows are keyed by
// (account, kind, date, amount, description), so saving the same
// transfer twice updates classification fields instead of duplicating
// rows.
func (s *Service) SaveTransfer(ctx context.Context, params TransferParams) (*Transfer, error) {
	if params.FromAccountID == params.ToAccountID {
		return nil, fmt.Errorf("transfer source and destination must differ")
	}

	if params.Amount.IsNegative() {
		return nil, fmt.Errorf("transfer amount must be a non-negative magnitude, got %s", params.Amount)
	}

	t := &Transfer{
		FromAccountID: params.FromAccountID,
		ToAccountID:   params.ToAccountID,
		Date:          params.Date,
		Amount:        params.Amount,
		BudgetGroup:   params.BudgetGroup,
		Category:      params.Category,
		Description:   params.Description,
		Location:      params.Location,
	}

	withdrawal := mirrorEntry(t, KindWithdrawal, t.FromAccountID)
	deposit := mirrorEntry(t, KindDeposit, t.ToAccountID)

	if err := s.repo.SaveTransfer(ctx, t, withdrawal, deposit); err != nil {
		return nil, fmt.Errorf("saving transfer: %w", err)
	}

	return t, nil
}

func (s *Service) GetTransfer(ctx context.Context, id uuid.UUID) (*Transfer, error) {
	return s.repo.GetTransfer(ctx, id)
}

// ImportResult reports how an idempotent batch import landed: rows
// created for the first time versus rows that matched an existing
// natural key and only refreshed classification fields.
type ImportResult struct {
	Created int
	Updated int
}

// ImportBatch upserts every row by its natural key, so re-running an
// import over the same file is a no-op apart from classification
// refreshes. A failed run can simply be retried.
func (s *Service) ImportBatch(ctx context.Context, params []EntryParams) (*ImportResult, error) {
	result := &ImportResult{}

	for i, p := range params {
		updated, err := s.repo.UpsertEntry(ctx, entryFromParams(p))
		if err != nil {
			return nil, fmt.Errorf("importing row %d: %w", i+1, err)
		}

		if updated {
			result.Updated++
		} else {
			result.Created++
		}
	}

	return result, nil
}

func entryFromParams(p EntryParams) *Entry {
	return &Entry{
		AccountID:   p.AccountID,
		Kind:        p.Kind,
		Date:        p.Date,
		Amount:      p.Amount,
		BudgetGroup: p.BudgetGroup,
		Category:    p.Category,
		Description: p.Description,
		Location:    p.Location,
		Slug:        Slugify(p.Description),
		Tag:         p.Tag,
	}
}

func mirrorEntry(t *Transfer, kind Kind, accountID uuid.UUID) *Entry {
	return &Entry{
		AccountID:   accountID,
		Kind:        kind,
		Date:        t.Date,
		Amount:      t.Amount,
		BudgetGroup: t.BudgetGroup,
		Category:    t.Category,
		Description: t.Description,
		Location:    t.Location,
		Slug:        Slugify(t.Description),
	}
}
