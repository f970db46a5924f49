package budget

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/rwhitten/nestegg/internal/budget"
	"github.com/rwhitten/nestegg/internal/dateutil"
)

type Handler struct {
	svc          *budget.Service
	defaultSplit budget.Split
}

func NewHandler(svc *budget.Service, defaultSplit budget.Split) *Handler {
	return &Handler{svc: svc, defaultSplit: defaultSplit}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.get)
	r.Put("/", h.update)
	r.Get("/estimate", h.estimate)
	r.Get("/expenses", h.expenses)
	r.Get("/leftover", h.leftover)
	r.Get("/top", h.top)
}

// get returns the user's budget for the month, lazily creating a
// zeroed row on first view.
func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	userID, m, ok := userMonthParams(w, r)
	if !ok {
		return
	}

	mb, err := h.svc.GetOrCreate(r.Context(), userID, m)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toBudgetResponse(mb)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type updateBudgetRequest struct {
	Mandatory            decimal.Decimal `json:"mandatory"`
	Mortgage             decimal.Decimal `json:"mortgage"`
	DebtsGoalsRetirement decimal.Decimal `json:"debts_goals_retirement"`
	Discretionary        decimal.Decimal `json:"discretionary"`
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	userID, m, ok := userMonthParams(w, r)
	if !ok {
		return
	}

	var req updateBudgetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	mb, err := h.svc.GetOrCreate(r.Context(), userID, m)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	mb.Mandatory = req.Mandatory
	mb.Mortgage = req.Mortgage
	mb.DebtsGoalsRetirement = req.DebtsGoalsRetirement
	mb.Discretionary = req.Discretionary

	if err := h.svc.Update(r.Context(), mb); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toBudgetResponse(mb)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// estimate suggests a budget for the month by splitting takehome pay
// by the configured percentages.
func (h *Handler) estimate(w http.ResponseWriter, r *http.Request) {
	userID, m, ok := userMonthParams(w, r)
	if !ok {
		return
	}

	totals, err := h.svc.Estimate(r.Context(), userID, m, h.defaultSplit)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeTotals(w, totals)
}

func (h *Handler) expenses(w http.ResponseWriter, r *http.Request) {
	userID, m, ok := userMonthParams(w, r)
	if !ok {
		return
	}

	totals, err := h.svc.ExpensesForMonth(r.Context(), userID, m)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeTotals(w, totals)
}

func (h *Handler) leftover(w http.ResponseWriter, r *http.Request) {
	userID, m, ok := userMonthParams(w, r)
	if !ok {
		return
	}

	totals, err := h.svc.Leftover(r.Context(), userID, m)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeTotals(w, totals)
}

// top returns the largest withdrawal sums for the month, grouped by
// category, description, or location.
func (h *Handler) top(w http.ResponseWriter, r *http.Request) {
	userID, m, ok := userMonthParams(w, r)
	if !ok {
		return
	}

	dim := budget.Dimension(r.URL.Query().Get("dimension"))
	if dim == "" {
		dim = budget.DimensionCategory
	}

	n := 0
	if s := r.URL.Query().Get("n"); s != "" {
		n, _ = strconv.Atoi(s)
	}

	ranked, err := h.svc.TopN(r.Context(), userID, m.Start(), m.End(), dim, n)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toRankedResponseList(ranked)); err != nil {
		slog.Error("failed to encode response", "error", err)
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
