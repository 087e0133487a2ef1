package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/username/budgetfolio/backend/src/logger"
	"github.com/username/budgetfolio/backend/src/models"
	"github.com/username/budgetfolio/backend/src/security/validation"
	"github.com/username/budgetfolio/backend/src/store"
	"github.com/username/budgetfolio/backend/src/utils"
)

type TransactionHandler struct {
	txStore store.TransactionStore
}

func NewTransactionHandler(txStore store.TransactionStore) *TransactionHandler {
	return &TransactionHandler{txStore: txStore}
}

// HandleListTransactions returns imported transactions, optionally bounded by
// ?from, ?to (YYYY-MM-DD), ?account and ?limit.
func (h *TransactionHandler) HandleListTransactions(w http.ResponseWriter, r *http.Request) {
	var filter store.TransactionFilter

	if v := r.URL.Query().Get("from"); v != "" {
		t, err := validation.ValidateDateString(v, "from")
		if err != nil {
			utils.SendJSONError(w, err.Error(), http.StatusBadRequest)
			return
		}
		filter.From = &t
	}
	if v := r.URL.Query().Get("to"); v != "" {
		t, err := validation.ValidateDateString(v, "to")
		if err != nil {
			utils.SendJSONError(w, err.Error(), http.StatusBadRequest)
			return
		}
		filter.To = &t
	}
	filter.Account = r.URL.Query().Get("account")
	if v := r.URL.Query().Get("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil || limit < 0 {
			utils.SendJSONError(w, "limit must be a non-negative integer", http.StatusBadRequest)
			return
		}
		filter.Limit = limit
	}

	txs, err := h.txStore.List(filter)
	if err != nil {
		logger.ErrorFromContext(r.Context(), "Failed to list transactions", "error", err)
		utils.SendJSONError(w, "Failed to list transactions", http.StatusInternalServerError)
		return
	}
	if txs == nil {
		txs = []models.Transaction{}
	}
	utils.WriteJSON(w, http.StatusOK, txs)
}

type setGoalRequest struct {
	GoalID string `json:"goal_id"`
}

// HandleSetGoal attributes a transaction to a savings goal. An empty goal_id
// clears the attribution.
func (h *TransactionHandler) HandleSetGoal(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		utils.SendJSONError(w, "transaction id required", http.StatusBadRequest)
		return
	}

	var req setGoalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.SendJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if _, err := h.txStore.Get(id); err != nil {
		utils.SendJSONError(w, "transaction not found", http.StatusNotFound)
		return
	}
	if err := h.txStore.SetGoal(id, req.GoalID); err != nil {
		logger.ErrorFromContext(r.Context(), "Failed to set transaction goal", "transactionID", id, "error", err)
		utils.SendJSONError(w, "Failed to set transaction goal", http.StatusInternalServerError)
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok", "updated_at": time.Now().UTC().Format(time.RFC3339)})
}
