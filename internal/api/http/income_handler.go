package http

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"rentalincome-backend/internal/domain"
	"rentalincome-backend/internal/jobs"
	"rentalincome-backend/internal/service"
)

// IncomeHandler exposes read access to income records and the manual
// reconciliation trigger.
type IncomeHandler struct {
	incomes service.IncomeService
	runner  *jobs.JobRunner
}

// NewIncomeHandler creates a new income handler
func NewIncomeHandler(incomes service.IncomeService, runner *jobs.JobRunner) *IncomeHandler {
	return &IncomeHandler{incomes: incomes, runner: runner}
}

// HandleListIncomes handles GET /api/v1/incomes
func (h *IncomeHandler) HandleListIncomes(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filter := domain.IncomeFilter{
		ApartmentID: q.Get("apartment_id"),
		Status:      domain.IncomeStatus(q.Get("status")),
		Page:        parseInt32(q.Get("page"), 1),
		PageSize:    parseInt32(q.Get("page_size"), 50),
	}
	if raw := q.Get("from"); raw != "" {
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid from date, expected YYYY-MM-DD")
			return
		}
		filter.From = &t
	}
	if raw := q.Get("to"); raw != "" {
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid to date, expected YYYY-MM-DD")
			return
		}
		filter.To = &t
	}

	incomes, total, err := h.incomes.ListIncomes(r.Context(), filter)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list incomes")
		return
	}
	if incomes == nil {
		incomes = []domain.Income{}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"incomes": incomes,
		"total":   total,
	})
}

// HandleGetIncome handles GET /api/v1/incomes/{id}
func (h *IncomeHandler) HandleGetIncome(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	inc, err := h.incomes.GetIncome(r.Context(), id)
	if errors.Is(err, domain.ErrNotFound) {
		writeError(w, http.StatusNotFound, "income not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load income")
		return
	}

	writeJSON(w, http.StatusOK, inc)
}

// HandleReconcile handles POST /api/v1/reconcile, the operator-initiated
// catch-up sweep (e.g. after downtime).
func (h *IncomeHandler) HandleReconcile(w http.ResponseWriter, r *http.Request) {
	if !h.runner.RunReconciliation() {
		writeError(w, http.StatusConflict, "a reconciliation sweep is already running")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "reconciliation completed"})
}

func parseInt32(raw string, fallback int32) int32 {
	if raw == "" {
		return fallback
	}
	n, err := strconv.ParseInt(raw, 10, 32)
	if err != nil || n < 1 {
		return fallback
	}
	return int32(n)
}
