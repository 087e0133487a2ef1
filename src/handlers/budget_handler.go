package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/username/budgetfolio/backend/src/logger"
	"github.com/username/budgetfolio/backend/src/services"
	"github.com/username/budgetfolio/backend/src/utils"
)

type BudgetHandler struct {
	budgetService services.BudgetService
}

func NewBudgetHandler(budgetService services.BudgetService) *BudgetHandler {
	return &BudgetHandler{budgetService: budgetService}
}

// parseYearMonth reads ?year and ?month, defaulting to the current month.
func parseYearMonth(r *http.Request) (int, time.Month, error) {
	now := time.Now().UTC()
	year, month := now.Year(), now.Month()

	if v := r.URL.Query().Get("year"); v != "" {
		y, err := strconv.Atoi(v)
		if err != nil || y < 1970 || y > 9999 {
			return 0, 0, fmt.Errorf("year ('%s') must be a four digit year", v)
		}
		year = y
	}
	if v := r.URL.Query().Get("month"); v != "" {
		m, err := strconv.Atoi(v)
		if err != nil || m < 1 || m > 12 {
			return 0, 0, fmt.Errorf("month ('%s') must be between 1 and 12", v)
		}
		month = time.Month(m)
	}
	return year, month, nil
}

// HandleGetMoneyStatus returns the cash-flow projection for a month.
func (h *BudgetHandler) HandleGetMoneyStatus(w http.ResponseWriter, r *http.Request) {
	year, month, err := parseYearMonth(r)
	if err != nil {
		utils.SendJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	status, err := h.budgetService.GetMoneyStatus(year, month)
	if err != nil {
		logger.ErrorFromContext(r.Context(), "Failed to compute money status", "year", year, "month", int(month), "error", err)
		utils.SendJSONError(w, "Failed to compute money status", http.StatusInternalServerError)
		return
	}
	utils.WriteJSON(w, http.StatusOK, status)
}

// HandleGetObligationStatuses returns every obligation with its detected
// payment-cycle state.
func (h *BudgetHandler) HandleGetObligationStatuses(w http.ResponseWriter, r *http.Request) {
	statuses, err := h.budgetService.ListObligationStatuses()
	if err != nil {
		logger.ErrorFromContext(r.Context(), "Failed to compute obligation statuses", "error", err)
		utils.SendJSONError(w, "Failed to compute obligation statuses", http.StatusInternalServerError)
		return
	}
	if statuses == nil {
		statuses = []services.ObligationStatus{}
	}
	utils.WriteJSON(w, http.StatusOK, statuses)
}

// HandleInvalidateCache drops all cached projections.
func (h *BudgetHandler) HandleInvalidateCache(w http.ResponseWriter, r *http.Request) {
	h.budgetService.InvalidateCache()
	utils.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
