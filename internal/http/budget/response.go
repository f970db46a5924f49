package budget

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/rwhitten/nestegg/internal/budget"
)

type budgetResponse struct {
	ID                   uuid.UUID       `json:"id"`
	UserID               uuid.UUID       `json:"user_id"`
	Month                int             `json:"month"`
	Year                 int             `json:"year"`
	Mandatory            decimal.Decimal `json:"mandatory"`
	Mortgage             decimal.Decimal `json:"mortgage"`
	DebtsGoalsRetirement decimal.Decimal `json:"debts_goals_retirement"`
	Discretionary        decimal.Decimal `json:"discretionary"`
	CreatedAt            time.Time       `json:"created_at"`
	UpdatedAt            *time.Time      `json:"updated_at,omitempty"`
}

func toBudgetResponse(mb *budget.MonthlyBudget) budgetResponse {
	return budgetResponse{
		ID:                   mb.ID,
		UserID:               mb.UserID,
		Month:                int(mb.Month),
		Year:                 mb.Year,
		Mandatory:            mb.Mandatory,
		Mortgage:             mb.Mortgage,
		DebtsGoalsRetirement: mb.DebtsGoalsRetirement,
		Discretionary:        mb.Discretionary,
		CreatedAt:            mb.CreatedAt,
		UpdatedAt:            mb.UpdatedAt,
	}
}

type totalsResponse struct {
	Mandatory            decimal.Decimal `json:"mandatory"`
	Mortgage             decimal.Decimal `json:"mortgage"`
	DebtsGoalsRetirement decimal.Decimal `json:"debts_goals_retirement"`
	Discretionary        decimal.Decimal `json:"discretionary"`
	Statutory            decimal.Decimal `json:"statutory"`
	Total                decimal.Decimal `json:"total"`
}

func writeTotals(w http.ResponseWriter, totals budget.GroupTotals) {
	resp := totalsResponse{
		Mandatory:            totals.Mandatory,
		Mortgage:             totals.Mortgage,
		DebtsGoalsRetirement: totals.DebtsGoalsRetirement,
		Discretionary:        totals.Discretionary,
		Statutory:            totals.Statutory,
		Total:                totals.Total(),
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type rankedResponse struct {
	Value string          `json:"value"`
	Sum   decimal.Decimal `json:"sum"`
}

func toRankedResponseList(ranked []budget.RankedSum) []rankedResponse {
	resp := make([]rankedResponse, len(ranked))
	for i, r := range ranked {
		resp[i] = rankedResponse{Value: r.Value, Sum: r.Sum}
	}

	return resp
}
