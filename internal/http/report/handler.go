package report

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/rwhitten/nestegg/internal/account"
	"github.com/rwhitten/nestegg/internal/budget"
	"github.com/rwhitten/nestegg/internal/dateutil"
	"github.com/rwhitten/nestegg/internal/projection"
	"github.com/rwhitten/nestegg/internal/retirement"
	"github.com/rwhitten/nestegg/internal/user"
)

type Handler struct {
	users      *user.Service
	accounts   *account.Service
	budgets    *budget.Service
	projector  *projection.Service
	retirement *retirement.Service
}

func NewHandler(
	users *user.Service,
	accounts *account.Service,
	budgets *budget.Service,
	projector *projection.Service,
	retirementSvc *retirement.Service,
) *Handler {
	return &Handler{
		users:      users,
		accounts:   accounts,
		budgets:    budgets,
		projector:  projector,
		retirement: retirementSvc,
	}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/summary", h.summary)
	r.Get("/balance-history", h.balanceHistory)
	r.Get("/retirement", h.retirementOutlook)
}

// chartResponse is the generic envelope the client-side charting
// library consumes. The engine computes plain numeric series; this
// layer only reshapes them.
type chartResponse struct {
	Labels   []string       `json:"labels"`
	Datasets []chartDataset `json:"datasets"`
}

type chartDataset struct {
	Label string    `json:"label"`
	Data  []float64 `json:"data"`
}

type accountSummary struct {
	ID      uuid.UUID       `json:"id"`
	Name    string          `json:"name"`
	Kind    account.Kind    `json:"kind"`
	Balance decimal.Decimal `json:"balance"`
}

type summaryResponse struct {
	Accounts []accountSummary `json:"accounts"`
	NetWorth decimal.Decimal  `json:"net_worth"`
	Planned  totalsPayload    `json:"planned"`
	Expenses totalsPayload    `json:"expenses"`
	Leftover totalsPayload    `json:"leftover"`
}

type totalsPayload struct {
	Mandatory            decimal.Decimal `json:"mandatory"`
	Mortgage             decimal.Decimal `json:"mortgage"`
	DebtsGoalsRetirement decimal.Decimal `json:"debts_goals_retirement"`
	Discretionary        decimal.Decimal `json:"discretionary"`
	Statutory            decimal.Decimal `json:"statutory"`
}

// summary reports every account's balance through the requested month
// alongside the month's expenses and budget leftover.
func (h *Handler) summary(w http.ResponseWriter, r *http.Request) {
	userID, m, ok := userMonthParams(w, r)
	if !ok {
		return
	}

	accounts, err := h.accounts.List(r.Context(), account.ListFilter{UserID: &userID})
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	resp := summaryResponse{Accounts: make([]accountSummary, 0, len(accounts))}

	for _, a := range accounts {
		balance, err := h.accounts.BalanceIncluding(r.Context(), a, m)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		// Debt balances are positive magnitudes of what is owed.
		if a.IsDebt() {
			resp.NetWorth = resp.NetWorth.Sub(balance)
		} else {
			resp.NetWorth = resp.NetWorth.Add(balance)
		}

		resp.Accounts = append(resp.Accounts, accountSummary{
			ID:      a.ID,
			Name:    a.Name,
			Kind:    a.Kind,
			Balance: balance,
		})
	}

	planned, err := h.budgets.GetOrCreate(r.Context(), userID, m)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	expenses, err := h.budgets.ExpensesForMonth(r.Context(), userID, m)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	leftover, err := h.budgets.Leftover(r.Context(), userID, m)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	resp.Planned = totalsPayload{
		Mandatory:            planned.Mandatory,
		Mortgage:             planned.Mortgage,
		DebtsGoalsRetirement: planned.DebtsGoalsRetirement,
		Discretionary:        planned.Discretionary,
		Statutory:            decimal.Zero,
	}
	resp.Expenses = toTotalsPayload(expenses)
	resp.Leftover = toTotalsPayload(leftover)

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// balanceHistory charts an account's month-end balances over the
// trailing window, with the fitted trend as a second dataset so the
// client can overlay actual versus projected.
func (h *Handler) balanceHistory(w http.ResponseWriter, r *http.Request) {
	accountID, err := uuid.Parse(r.URL.Query().Get("account_id"))
	if err != nil {
		http.Error(w, "account_id is required", http.StatusBadRequest)
		return
	}

	a, err := h.accounts.Get(r.Context(), accountID)
	if err != nil {
		if errors.Is(err, account.ErrNotFound) {
			http.Error(w, "account not found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	win := windowParam(r)

	months := win.TotalMonths()
	if months <= 0 {
		months = projection.DefaultWindow.TotalMonths()
	}

	latest, err := h.accounts.LatestEntryDate(r.Context(), a)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	resp := chartResponse{Datasets: []chartDataset{{Label: "Balance"}, {Label: "Trend"}}}

	if latest == nil {
		// No history: an empty chart, not an error.
		w.Header().Set("Content-Type", "application/json")

		if err := json.NewEncoder(w).Encode(resp); err != nil {
			slog.Error("failed to encode response", "error", err)
		}

		return
	}

	curve, err := h.projector.BuildCurve(r.Context(), a, win, kindParam(r))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	last := dateutil.MonthOf(*latest)
	for m := last.AddMonths(-months); !m.After(last); m = m.Next() {
		balance, err := h.accounts.BalanceIncluding(r.Context(), a, m)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		resp.Labels = append(resp.Labels, m.String())
		resp.Datasets[0].Data = append(resp.Datasets[0].Data, balance.InexactFloat64())
		resp.Datasets[1].Data = append(resp.Datasets[1].Data, curve.Evaluate(dateutil.EpochMillis(m.Start())))
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// retirementOutlook charts the drawdown simulation for a retirement
// account from the user's retirement date to their expected death date.
func (h *Handler) retirementOutlook(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(r.URL.Query().Get("user_id"))
	if err != nil {
		http.Error(w, "user_id is required", http.StatusBadRequest)
		return
	}

	accountID, err := uuid.Parse(r.URL.Query().Get("account_id"))
	if err != nil {
		http.Error(w, "account_id is required", http.StatusBadRequest)
		return
	}

	u, err := h.users.Get(r.Context(), userID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			http.Error(w, "user not found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	a, err := h.accounts.Get(r.Context(), accountID)
	if err != nil {
		if errors.Is(err, account.ErrNotFound) {
			http.Error(w, "account not found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	points, err := h.retirement.Outlook(r.Context(), u, a, windowParam(r), kindParam(r))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	resp := chartResponse{Datasets: []chartDataset{{Label: a.Name}}}

	for _, p := range points {
		resp.Labels = append(resp.Labels, p.Date.Format("Jan 2006"))
		resp.Datasets[0].Data = append(resp.Datasets[0].Data, p.Balance.InexactFloat64())
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func toTotalsPayload(t budget.GroupTotals) totalsPayload {
	return totalsPayload{
		Mandatory:            t.Mandatory,
		Mortgage:             t.Mortgage,
		DebtsGoalsRetirement: t.DebtsGoalsRetirement,
		Discretionary:        t.Discretionary,
		Statutory:            t.Statutory,
	}
}

func userMonthParams(w http.ResponseWriter, r *http.Request) (uuid.UUID, dateutil.Month, bool) {
	userID, err := uuid.Parse(r.URL.Query().Get("user_id"))
	if err != nil {
		http.Error(w, "user_id is required", http.StatusBadRequest)
		return uuid.Nil, dateutil.Month{}, false
	}

	month, err := strconv.Atoi(r.URL.Query().Get("month"))
	if err != nil || month < 1 || month > 12 {
		http.Error(w, "invalid month", http.StatusBadRequest)
		return uuid.Nil, dateutil.Month{}, false
	}

	year, err := strconv.Atoi(r.URL.Query().Get("year"))
	if err != nil {
		http.Error(w, "invalid year", http.StatusBadRequest)
		return uuid.Nil, dateutil.Month{}, false
	}

	return userID, dateutil.Month{Year: year, Month: time.Month(month)}, true
}

func windowParam(r *http.Request) dateutil.Window {
	win := dateutil.Window{}

	if s := r.URL.Query().Get("years_back"); s != "" {
		if n, err := strconv.Atoi(s); err == nil {
			win.Years = n
		}
	}

	if s := r.URL.Query().Get("months_back"); s != "" {
		if n, err := strconv.Atoi(s); err == nil {
			win.Months = n
		}
	}

	return win
}

func kindParam(r *http.Request) projection.Kind {
	if s := r.URL.Query().Get("curve"); s != "" {
		return projection.Kind(s)
	}

	return projection.KindLinear
}
