package account

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
	"github.com/rwhitten/nestegg/internal/dateutil"
	"github.com/rwhitten/nestegg/internal/projection"
)

type Handler struct {
	svc       *account.Service
	projector *projection.Service
}

func NewHandler(svc *account.Service, projector *projection.Service) *Handler {
	return &Handler{svc: svc, projector: projector}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
	r.Patch("/{id}", h.update)
	r.Delete("/{id}", h.delete)
	r.Get("/{id}/balance", h.balance)
	r.Get("/{id}/balance/month", h.balanceForMonth)
	r.Get("/{id}/estimate", h.estimate)
	r.Get("/{id}/time-to-reach", h.timeToReach)
}

type createAccountRequest struct {
	UserID              uuid.UUID       `json:"user_id"`
	Name                string          `json:"name"`
	Kind                account.Kind    `json:"kind"`
	StartingBalance     decimal.Decimal `json:"starting_balance"`
	OpenedOn            time.Time       `json:"opened_on"`
	MonthlyInterestPct  float64         `json:"monthly_interest_pct"`
	YearlyInterestPct   float64         `json:"yearly_interest_pct"`
	YearlyWithdrawalPct float64         `json:"yearly_withdrawal_pct"`
	TargetAmount        decimal.Decimal `json:"target_amount"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	a, err := h.svc.Create(r.Context(), account.CreateParams{
		UserID:              req.UserID,
		Name:                req.Name,
		Kind:                req.Kind,
		StartingBalance:     req.StartingBalance,
		OpenedOn:            req.OpenedOn,
		MonthlyInterestPct:  req.MonthlyInterestPct,
		YearlyInterestPct:   req.YearlyInterestPct,
		YearlyWithdrawalPct: req.YearlyWithdrawalPct,
		TargetAmount:        req.TargetAmount,
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toResponse(a)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	filter := account.ListFilter{}

	if s := r.URL.Query().Get("user_id"); s != "" {
		if id, err := uuid.Parse(s); err == nil {
			filter.UserID = new(id)
		}
	}

	if s := r.URL.Query().Get("kind"); s != "" {
		filter.Kind = new(account.Kind(s))
	}

	accounts, err := h.svc.List(r.Context(), filter)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponseList(accounts)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	a, ok := h.lookup(w, r)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(a)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type updateAccountRequest struct {
	Name                *string          `json:"name,omitempty"`
	StartingBalance     *decimal.Decimal `json:"starting_balance,omitempty"`
	MonthlyInterestPct  *float64         `json:"monthly_interest_pct,omitempty"`
	YearlyInterestPct   *float64         `json:"yearly_interest_pct,omitempty"`
	YearlyWithdrawalPct *float64         `json:"yearly_withdrawal_pct,omitempty"`
	TargetAmount        *decimal.Decimal `json:"target_amount,omitempty"`
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	a, ok := h.lookup(w, r)
	if !ok {
		return
	}

	var req updateAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if req.Name != nil {
		a.Name = *req.Name
	}

	if req.StartingBalance != nil {
		a.StartingBalance = *req.StartingBalance
	}

	if req.MonthlyInterestPct != nil {
		a.MonthlyInterestPct = *req.MonthlyInterestPct
	}

	if req.YearlyInterestPct != nil {
		a.YearlyInterestPct = *req.YearlyInterestPct
	}

	if req.YearlyWithdrawalPct != nil {
		a.YearlyWithdrawalPct = *req.YearlyWithdrawalPct
	}

	if req.TargetAmount != nil {
		a.TargetAmount = *req.TargetAmount
	}

	if err := h.svc.Update(r.Context(), a); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(a)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// balance returns the running balance, optionally as of a cutoff date
// (?as_of=2024-06-01, exclusive) or inclusive of a whole month
// (?month=6&year=2024).
func (h *Handler) balance(w http.ResponseWriter, r *http.Request) {
	a, ok := h.lookup(w, r)
	if !ok {
		return
	}

	var (
		balance decimal.Decimal
		err     error
	)

	switch {
	case r.URL.Query().Get("as_of") != "":
		cutoff, parseErr := time.Parse(time.DateOnly, r.URL.Query().Get("as_of"))
		if parseErr != nil {
			http.Error(w, "invalid as_of date", http.StatusBadRequest)
			return
		}

		balance, err = h.svc.BalanceAsOf(r.Context(), a, cutoff)
	case r.URL.Query().Get("month") != "":
		m, ok := monthParam(w, r)
		if !ok {
			return
		}

		balance, err = h.svc.BalanceIncluding(r.Context(), a, m)
	default:
		balance, err = h.svc.Balance(r.Context(), a)
	}

	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeBalance(w, a.ID, balance)
}

func (h *Handler) balanceForMonth(w http.ResponseWriter, r *http.Request) {
	a, ok := h.lookup(w, r)
	if !ok {
		return
	}

	m, ok := monthParam(w, r)
	if !ok {
		return
	}

	balance, err := h.svc.BalanceForMonth(r.Context(), a, m)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeBalance(w, a.ID, balance)
}

// estimate evaluates the account's trend curve at the requested month,
// which may lie beyond the ledger history.
func (h *Handler) estimate(w http.ResponseWriter, r *http.Request) {
	a, ok := h.lookup(w, r)
	if !ok {
		return
	}

	m, ok := monthParam(w, r)
	if !ok {
		return
	}

	balance, err := h.projector.EstimateBalance(r.Context(), a, m, windowParam(r), kindParam(r))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeBalance(w, a.ID, balance)
}

func (h *Handler) timeToReach(w http.ResponseWriter, r *http.Request) {
	a, ok := h.lookup(w, r)
	if !ok {
		return
	}

	target, err := decimal.NewFromString(r.URL.Query().Get("target"))
	if err != nil {
		http.Error(w, "invalid target amount", http.StatusBadRequest)
		return
	}

	reached, err := h.projector.TimeToReach(r.Context(), a, target, windowParam(r), kindParam(r))
	if err != nil {
		if errors.Is(err, projection.ErrEmptyHistory) {
			http.Error(w, "account has no entry history", http.StatusUnprocessableEntity)
			return
		}

		http.Error(w, err.Error(), http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")

	resp := timeToReachResponse{AccountID: a.ID, Target: target, Date: reached}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) lookup(w http.ResponseWriter, r *http.Request) (*account.Account, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return nil, false
	}

	a, err := h.svc.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, account.ErrNotFound) {
			http.Error(w, "account not found", http.StatusNotFound)
			return nil, false
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return nil, false
	}

	return a, true
}

func monthParam(w http.ResponseWriter, r *http.Request) (dateutil.Month, bool) {
	month, err := strconv.Atoi(r.URL.Query().Get("month"))
	if err != nil || month < 1 || month > 12 {
		http.Error(w, "invalid month", http.StatusBadRequest)
		return dateutil.Month{}, false
	}

	year, err := strconv.Atoi(r.URL.Query().Get("year"))
	if err != nil {
		http.Error(w, "invalid year", http.StatusBadRequest)
		return dateutil.Month{}, false
	}

	return dateutil.Month{Year: year, Month: time.Month(month)}, true
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
