package importcsv

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/rwhitten/nestegg/internal/importer"
	"github.com/rwhitten/nestegg/internal/ledger"
)

type Handler struct {
	svc *importer.Service
}

func NewHandler(svc *importer.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.importCSV)
}

type rowErrorDTO struct {
	Row   int    `json:"row"`
	Field string `json:"field"`
	Error string `json:"error"`
}

type importResponse struct {
	Created int           `json:"created"`
	Updated int           `json:"updated"`
	Skipped []rowErrorDTO `json:"skipped"`
}

// importCSV ingests a multipart statement upload against one account.
// Malformed rows come back in the response instead of failing the
// batch, and re-uploading the same file only refreshes existing rows.
func (h *Handler) importCSV(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		http.Error(w, "failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}

	source := importer.Source(r.FormValue("source"))
	if source == "" {
		source = importer.SourceBankCSV
	}

	accountID, err := uuid.Parse(r.FormValue("account_id"))
	if err != nil {
		http.Error(w, "account_id field is required", http.StatusBadRequest)
		return
	}

	group := ledger.BudgetGroup(r.FormValue("budget_group"))
	if group == "" {
		group = ledger.GroupDiscretionary
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "file field is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	summary, err := h.svc.Import(r.Context(), source, accountID, group, file)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	resp := importResponse{
		Created: summary.Created,
		Updated: summary.Updated,
		Skipped: make([]rowErrorDTO, 0, len(summary.Skipped)),
	}

	for _, re := range summary.Skipped {
		resp.Skipped = append(resp.Skipped, rowErrorDTO{
			Row:   re.Row,
			Field: re.Field,
			Error: re.Err.Error(),
		})
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
