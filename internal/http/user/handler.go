package user

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/rwhitten/nestegg/internal/user"
)

type Handler struct {
	svc *user.Service
}

func NewHandler(svc *user.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
	r.Patch("/{id}", h.update)
	r.Delete("/{id}", h.delete)
}

type createUserRequest struct {
	Name                string    `json:"name"`
	Email               string    `json:"email"`
	DateOfBirth         time.Time `json:"date_of_birth"`
	RetirementAge       float64   `json:"retirement_age"`
	YearlyWithdrawalPct float64   `json:"yearly_withdrawal_pct"`
	ExpectedDeathAge    float64   `json:"expected_death_age"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	u, err := h.svc.Create(r.Context(), user.CreateParams{
		Name:                req.Name,
		Email:               req.Email,
		DateOfBirth:         req.DateOfBirth,
		RetirementAge:       req.RetirementAge,
		YearlyWithdrawalPct: req.YearlyWithdrawalPct,
		ExpectedDeathAge:    req.ExpectedDeathAge,
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toResponse(u)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	users, err := h.svc.List(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	resp := make([]userResponse, len(users))
	for i, u := range users {
		resp[i] = toResponse(u)
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	u, ok := h.lookup(w, r)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(u)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type updateUserRequest struct {
	Name                *string    `json:"name,omitempty"`
	Email               *string    `json:"email,omitempty"`
	DateOfBirth         *time.Time `json:"date_of_birth,omitempty"`
	RetirementAge       *float64   `json:"retirement_age,omitempty"`
	YearlyWithdrawalPct *float64   `json:"yearly_withdrawal_pct,omitempty"`
	ExpectedDeathAge    *float64   `json:"expected_death_age,omitempty"`
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	u, ok := h.lookup(w, r)
	if !ok {
		return
	}

	var req updateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if req.Name != nil {
		u.Name = *req.Name
	}

	if req.Email != nil {
		u.Email = *req.Email
	}

	if req.DateOfBirth != nil {
		u.DateOfBirth = *req.DateOfBirth
	}

	if req.RetirementAge != nil {
		u.RetirementAge = *req.RetirementAge
	}

	if req.YearlyWithdrawalPct != nil {
		u.YearlyWithdrawalPct = *req.YearlyWithdrawalPct
	}

	if req.ExpectedDeathAge != nil {
		u.ExpectedDeathAge = *req.ExpectedDeathAge
	}

	if err := h.svc.Update(r.Context(), u); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(u)); err != nil {
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

func (h *Handler) lookup(w http.ResponseWriter, r *http.Request) (*user.User, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return nil, false
	}

	u, err := h.svc.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			http.Error(w, "user not found", http.StatusNotFound)
			return nil, false
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return nil, false
	}

	return u, true
}

type userResponse struct {
	ID                  uuid.UUID  `json:"id"`
	Name                string     `json:"name"`
	Email               string     `json:"email"`
	DateOfBirth         time.Time  `json:"date_of_birth"`
	RetirementAge       float64    `json:"retirement_age"`
	YearlyWithdrawalPct float64    `json:"yearly_withdrawal_pct"`
	ExpectedDeathAge    float64    `json:"expected_death_age"`
	RetirementDate      time.Time  `json:"retirement_date"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           *time.Time `json:"updated_at,omitempty"`
}

func toResponse(u *user.User) userResponse {
	return userResponse{
		ID:                  u.ID,
		Name:                u.Name,
		Email:               u.Email,
		DateOfBirth:         u.DateOfBirth,
		RetirementAge:       u.RetirementAge,
		YearlyWithdrawalPct: u.YearlyWithdrawalPct,
		ExpectedDeathAge:    u.ExpectedDeathAge,
		RetirementDate:      u.RetirementDate(),
		CreatedAt:           u.CreatedAt,
		UpdatedAt:           u.UpdatedAt,
	}
}
