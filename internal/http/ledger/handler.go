package ledger

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/rwhitten/nestegg/internal/ledger"
)

type Handler struct {
	svc *ledger.Service
}

func NewHandler(svc *ledger.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
	r.Delete("/{id}", h.delete)
}

func (h *Handler) StatutoryRoutes(r chi.Router) {
	r.Post("/", h.createStatutory)
	r.Get("/", h.listStatutory)
	r.Delete("/{id}", h.deleteStatutory)
}

func (h *Handler) TransferRoutes(r chi.Router) {
	r.Post("/", h.createTransfer)
	r.Get("/{id}", h.getTransfer)
}

func (h *Handler) PaycheckRoutes(r chi.Router) {
	r.Post("/", h.recordPaycheck)
}

type createEntryRequest struct {
	AccountID   uuid.UUID          `json:"account_id"`
	Kind        ledger.Kind        `json:"kind"`
	Date        time.Time          `json:"date"`
	Amount      decimal.Decimal    `json:"amount"`
	BudgetGroup ledger.BudgetGroup `json:"budget_group,omitempty"`
	Category    string             `json:"category,omitempty"`
	Description string             `json:"description"`
	Location    string             `json:"location,omitempty"`
	Tag         string             `json:"tag,omitempty"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	e, err := h.svc.RecordEntry(r.Context(), ledger.EntryParams{
		AccountID:   req.AccountID,
		Kind:        req.Kind,
		Date:        req.Date,
		Amount:      req.Amount,
		BudgetGroup: req.BudgetGroup,
		Category:    req.Category,
		Description: req.Description,
		Location:    req.Location,
		Tag:         req.Tag,
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toEntryResponse(e)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	filter := ledger.ListFilter{}

	if s := r.URL.Query().Get("account_id"); s != "" {
		if id, err := uuid.Parse(s); err == nil {
			filter.AccountID = new(id)
		}
	}

	if s := r.URL.Query().Get("kind"); s != "" {
		filter.Kind = new(ledger.Kind(s))
	}

	if s := r.URL.Query().Get("budget_group"); s != "" {
		filter.BudgetGroup = new(ledger.BudgetGroup(s))
	}

	if s := r.URL.Query().Get("start_date"); s != "" {
		if t, err := time.Parse(time.DateOnly, s); err == nil {
			filter.StartDate = new(t)
		}
	}

	if s := r.URL.Query().Get("end_date"); s != "" {
		if t, err := time.Parse(time.DateOnly, s); err == nil {
			filter.EndDate = new(t)
		}
	}

	entries, err := h.svc.List(r.Context(), filter)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toEntryResponseList(entries)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	e, err := h.svc.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, ledger.ErrNotFound) {
			http.Error(w, "entry not found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toEntryResponse(e)); err != nil {
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

type createStatutoryRequest struct {
	UserID      uuid.UUID       `json:"user_id"`
	Date        time.Time       `json:"date"`
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category,omitempty"`
	Description string          `json:"description"`
	Location    string          `json:"location,omitempty"`
}

func (h *Handler) createStatutory(w http.ResponseWriter, r *http.Request) {
	var req createStatutoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	st, err := h.svc.RecordStatutory(r.Context(), ledger.StatutoryParams{
		UserID:      req.UserID,
		Date:        req.Date,
		Amount:      req.Amount,
		Category:    req.Category,
		Description: req.Description,
		Location:    req.Location,
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toStatutoryResponse(st)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) listStatutory(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(r.URL.Query().Get("user_id"))
	if err != nil {
		http.Error(w, "user_id is required", http.StatusBadRequest)
		return
	}

	var from, to *time.Time

	if s := r.URL.Query().Get("start_date"); s != "" {
		if t, err := time.Parse(time.DateOnly, s); err == nil {
			from = new(t)
		}
	}

	if s := r.URL.Query().Get("end_date"); s != "" {
		if t, err := time.Parse(time.DateOnly, s); err == nil {
			to = new(t)
		}
	}

	entries, err := h.svc.ListStatutory(r.Context(), userID, from, to)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toStatutoryResponseList(entries)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) deleteStatutory(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	if err := h.svc.DeleteStatutory(r.Context(), id); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type createTransferRequest struct {
	FromAccountID uuid.UUID          `json:"from_account_id"`
	ToAccountID   uuid.UUID          `json:"to_account_id"`
	Date          time.Time          `json:"date"`
	Amount        decimal.Decimal    `json:"amount"`
	BudgetGroup   ledger.BudgetGroup `json:"budget_group,omitempty"`
	Category      string             `json:"category,omitempty"`
	Description   string             `json:"description"`
	Location      string             `json:"location,omitempty"`
}

func (h *Handler) createTransfer(w http.ResponseWriter, r *http.Request) {
	var req createTransferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	t, err := h.svc.SaveTransfer(r.Context(), ledger.TransferParams{
		FromAccountID: req.FromAccountID,
		ToAccountID:   req.ToAccountID,
		Date:          req.Date,
		Amount:        req.Amount,
		BudgetGroup:   req.BudgetGroup,
		Category:      req.Category,
		Description:   req.Description,
		Location:      req.Location,
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toTransferResponse(t)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) getTransfer(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	t, err := h.svc.GetTransfer(r.Context(), id)
	if err != nil {
		if errors.Is(err, ledger.ErrNotFound) {
			http.Error(w, "transfer not found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toTransferResponse(t)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type recordPaycheckRequest struct {
	UserID            uuid.UUID       `json:"user_id"`
	CheckingAccountID uuid.UUID       `json:"checking_account_id"`
	Account401kID     uuid.UUID       `json:"account_401k_id,omitempty"`
	AccountHSAID      uuid.UUID       `json:"account_hsa_id,omitempty"`
	Date              time.Time       `json:"date"`
	GrossIncome       decimal.Decimal `json:"gross_income"`
	FederalIncomeTax  decimal.Decimal `json:"federal_income_tax"`
	SocialSecurityTax decimal.Decimal `json:"social_security_tax"`
	Medicare          decimal.Decimal `json:"medicare"`
	StateIncomeTax    decimal.Decimal `json:"state_income_tax"`
	Dental            decimal.Decimal `json:"dental"`
	Medical           decimal.Decimal `json:"medical"`
	Vision            decimal.Decimal `json:"vision"`
	Retirement401k    decimal.Decimal `json:"retirement_401k"`
	RetirementHSA     decimal.Decimal `json:"retirement_hsa"`
}

func (h *Handler) recordPaycheck(w http.ResponseWriter, r *http.Request) {
	var req recordPaycheckRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	err := h.svc.RecordPaycheck(r.Context(), ledger.PaycheckParams{
		UserID:            req.UserID,
		CheckingAccountID: req.CheckingAccountID,
		Account401kID:     req.Account401kID,
		AccountHSAID:      req.AccountHSAID,
		Date:              req.Date,
		GrossIncome:       req.GrossIncome,
		FederalIncomeTax:  req.FederalIncomeTax,
		SocialSecurityTax: req.SocialSecurityTax,
		Medicare:          req.Medicare,
		StateIncomeTax:    req.StateIncomeTax,
		Dental:            req.Dental,
		Medical:           req.Medical,
		Vision:            req.Vision,
		Retirement401k:    req.Retirement401k,
		RetirementHSA:     req.RetirementHSA,
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusCreated)
}
