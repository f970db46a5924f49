package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/rwhitten/nestegg/internal/ledger"
)

type entryResponse struct {
	ID          uuid.UUID          `json:"id"`
	AccountID   uuid.UUID          `json:"account_id"`
	Kind        ledger.Kind        `json:"kind"`
	Date        time.Time          `json:"date"`
	Amount      decimal.Decimal    `json:"amount"`
	BudgetGroup ledger.BudgetGroup `json:"budget_group,omitempty"`
	Category    string             `json:"category,omitempty"`
	Description string             `json:"description"`
	Location    string             `json:"location,omitempty"`
	Slug        string             `json:"slug,omitempty"`
	Tag         string             `json:"tag,omitempty"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   *time.Time         `json:"updated_at,omitempty"`
}

func toEntryResponse(e *ledger.Entry) entryResponse {
	return entryResponse{
		ID:          e.ID,
		AccountID:   e.AccountID,
		Kind:        e.Kind,
		Date:        e.Date,
		Amount:      e.Amount,
		BudgetGroup: e.BudgetGroup,
		Category:    e.Category,
		Description: e.Description,
		Location:    e.Location,
		Slug:        e.Slug,
		Tag:         e.Tag,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

func toEntryResponseList(entries []*ledger.Entry) []entryResponse {
	resp := make([]entryResponse, len(entries))
	for i, e := range entries {
		resp[i] = toEntryResponse(e)
	}

	return resp
}

type statutoryResponse struct {
	ID          uuid.UUID       `json:"id"`
	UserID      uuid.UUID       `json:"user_id"`
	Date        time.Time       `json:"date"`
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category,omitempty"`
	Description string          `json:"description"`
	Location    string          `json:"location,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

func toStatutoryResponse(st *ledger.Statutory) statutoryResponse {
	return statutoryResponse{
		ID:          st.ID,
		UserID:      st.UserID,
		Date:        st.Date,
		Amount:      st.Amount,
		Category:    st.Category,
		Description: st.Description,
		Location:    st.Location,
		CreatedAt:   st.CreatedAt,
	}
}

func toStatutoryResponseList(entries []*ledger.Statutory) []statutoryResponse {
	resp := make([]statutoryResponse, len(entries))
	for i, st := range entries {
		resp[i] = toStatutoryResponse(st)
	}

	return resp
}

type transferResponse struct {
	ID            uuid.UUID          `json:"id"`
	FromAccountID uuid.UUID          `json:"from_account_id"`
	ToAccountID   uuid.UUID          `json:"to_account_id"`
	Date          time.Time          `json:"date"`
	Amount        decimal.Decimal    `json:"amount"`
	BudgetGroup   ledger.BudgetGroup `json:"budget_group,omitempty"`
	Category      string             `json:"category,omitempty"`
	Description   string             `json:"description"`
	Location      string             `json:"location,omitempty"`
	CreatedAt     time.Time          `json:"created_at"`
	UpdatedAt     *time.Time         `json:"updated_at,omitempty"`
}

func toTransferResponse(t *ledger.Transfer) transferResponse {
	return transferResponse{
		ID:            t.ID,
		FromAccountID: t.FromAccountID,
		ToAccountID:   t.ToAccountID,
		Date:          t.Date,
		Amount:        t.Amount,
		BudgetGroup:   t.BudgetGroup,
		Category:      t.Category,
		Description:   t.Description,
		Location:      t.Location,
		CreatedAt:     t.CreatedAt,
		UpdatedAt:     t.UpdatedAt,
	}
}
