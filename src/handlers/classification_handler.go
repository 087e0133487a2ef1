package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/username/budgetfolio/backend/src/logger"
	"github.com/username/budgetfolio/backend/src/models"
	"github.com/username/budgetfolio/backend/src/security/validation"
	"github.com/username/budgetfolio/backend/src/services"
	"github.com/username/budgetfolio/backend/src/utils"
)

// sessionIDHeader carries the client's classification session identity.
// Session edits are unsaved until confirmed and expire with the session.
const sessionIDHeader = "X-Session-ID"

type ClassificationHandler struct {
	classificationService services.ClassificationService
}

func NewClassificationHandler(classificationService services.ClassificationService) *ClassificationHandler {
	return &ClassificationHandler{classificationService: classificationService}
}

// HandleSuggest returns one classification suggestion per transaction in the
// requested month, with this session's unsaved edits folded in.
func (h *ClassificationHandler) HandleSuggest(w http.ResponseWriter, r *http.Request) {
	year, month, err := parseYearMonth(r)
	if err != nil {
		utils.SendJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	suggestions, err := h.classificationService.SuggestForMonth(r.Header.Get(sessionIDHeader), year, month)
	if err != nil {
		logger.ErrorFromContext(r.Context(), "Failed to build suggestions", "year", year, "month", int(month), "error", err)
		utils.SendJSONError(w, "Failed to build suggestions", http.StatusInternalServerError)
		return
	}
	if suggestions == nil {
		suggestions = []models.Suggestion{}
	}
	utils.WriteJSON(w, http.StatusOK, suggestions)
}

type sessionEditRequest struct {
	TransactionID string        `json:"transaction_id"`
	Target        models.Target `json:"target"`
}

// HandleSessionEdit records an unsaved classification for this session so it
// propagates to same-pattern transactions on the next suggestion pass.
func (h *ClassificationHandler) HandleSessionEdit(w http.ResponseWriter, r *http.Request) {
	sessionID := r.Header.Get(sessionIDHeader)
	if sessionID == "" {
		utils.SendJSONError(w, "X-Session-ID header required", http.StatusBadRequest)
		return
	}

	var req sessionEditRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.SendJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := validation.ValidateStringNotEmpty(req.TransactionID, "transaction_id"); err != nil {
		utils.SendJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}
	if _, err := validation.ValidateTargetType(string(req.Target.Type)); err != nil {
		utils.SendJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.classificationService.RecordSessionEdit(sessionID, req.TransactionID, req.Target); err != nil {
		logger.ErrorFromContext(r.Context(), "Failed to record session edit", "transactionID", req.TransactionID, "error", err)
		utils.SendJSONError(w, "Failed to record session edit", http.StatusInternalServerError)
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type confirmRequest struct {
	Decisions []services.ClassificationDecision `json:"decisions"`
}

// HandleConfirm persists a batch of user decisions. Partial failures are
// reported in the result, never as a request-level error.
func (h *ClassificationHandler) HandleConfirm(w http.ResponseWriter, r *http.Request) {
	var req confirmRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.SendJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if len(req.Decisions) == 0 {
		utils.SendJSONError(w, "decisions cannot be empty", http.StatusBadRequest)
		return
	}
	for _, d := range req.Decisions {
		if _, err := validation.ValidateTargetType(string(d.Target.Type)); err != nil {
			utils.SendJSONError(w, err.Error(), http.StatusBadRequest)
			return
		}
	}

	result := h.classificationService.ConfirmBatch(r.Header.Get(sessionIDHeader), req.Decisions)
	utils.WriteJSON(w, http.StatusOK, result)
}

// HandleResetRules deletes every learned classification rule.
func (h *ClassificationHandler) HandleResetRules(w http.ResponseWriter, r *http.Request) {
	deleted, err := h.classificationService.ResetRules()
	if err != nil {
		logger.ErrorFromContext(r.Context(), "Failed to reset classification rules", "error", err)
		utils.SendJSONError(w, "Failed to reset classification rules", http.StatusInternalServerError)
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]int64{"deleted": deleted})
}
