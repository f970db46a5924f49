package account

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/rwhitten/nestegg/internal/account"
)

type accountResponse struct {
	ID                  uuid.UUID       `json:"id"`
	UserID              uuid.UUID       `json:"user_id"`
	Name                string          `json:"name"`
	Kind                account.Kind    `json:"kind"`
	StartingBalance     decimal.Decimal `json:"starting_balance"`
	OpenedOn            time.Time       `json:"opened_on"`
	MonthlyInterestPct  float64         `json:"monthly_interest_pct"`
	YearlyInterestPct   float64         `json:"yearly_interest_pct"`
	YearlyWithdrawalPct float64         `json:"yearly_withdrawal_pct,omitempty"`
	TargetAmount        decimal.Decimal `json:"target_amount"`
	CreatedAt           time.Time       `json:"created_at"`
	UpdatedAt           *time.Time      `json:"updated_at,omitempty"`
}

func toResponse(a *account.Account) accountResponse {
	return accountResponse{
		ID:                  a.ID,
		UserID:              a.UserID,
		Name:                a.Name,
		Kind:                a.Kind,
		StartingBalance:     a.StartingBalance,
		OpenedOn:            a.OpenedOn,
		MonthlyInterestPct:  a.MonthlyInterestPct,
		YearlyInterestPct:   a.YearlyInterestPct,
		YearlyWithdrawalPct: a.YearlyWithdrawalPct,
		TargetAmount:        a.TargetAmount,
		CreatedAt:           a.CreatedAt,
		UpdatedAt:           a.UpdatedAt,
	}
}

func toResponseList(accounts []*account.Account) []accountResponse {
	resp := make([]accountResponse, len(accounts))
	for i, a := range accounts {
		resp[i] = toResponse(a)
	}

	return resp
}

type balanceResponse struct {
	AccountID uuid.UUID       `json:"account_id"`
	Balance   decimal.Decimal `json:"balance"`
}

func writeBalance(w http.ResponseWriter, accountID uuid.UUID, balance decimal.Decimal) {
	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(balanceResponse{AccountID: accountID, Balance: balance}); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type timeToReachResponse struct {
	AccountID uuid.UUID       `json:"account_id"`
	Target    decimal.Decimal `json:"target"`
	Date      time.Time       `json:"date"`
}
