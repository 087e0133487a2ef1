package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/username/budgetfolio/backend/src/logger"
	"github.com/username/budgetfolio/backend/src/models"
	"github.com/username/budgetfolio/backend/src/schedule"
	"github.com/username/budgetfolio/backend/src/security/validation"
	"github.com/username/budgetfolio/backend/src/services"
	"github.com/username/budgetfolio/backend/src/store"
	"github.com/username/budgetfolio/backend/src/utils"
)

// ScheduleHandler manages the recurring collections the projections are built
// from: obligations, auto transfers, paycheck configs and goals. Every write
// invalidates the cached projections.
type ScheduleHandler struct {
	obligations   store.ObligationStore
	transfers     store.TransferStore
	paychecks     store.PaycheckStore
	goals         store.GoalStore
	budgetService services.BudgetService
}

func NewScheduleHandler(
	obligations store.ObligationStore,
	transfers store.TransferStore,
	paychecks store.PaycheckStore,
	goals store.GoalStore,
	budgetService services.BudgetService,
) *ScheduleHandler {
	return &ScheduleHandler{
		obligations:   obligations,
		transfers:     transfers,
		paychecks:     paychecks,
		goals:         goals,
		budgetService: budgetService,
	}
}

// --- obligations ---

type obligationRequest struct {
	Name      string `json:"name"`
	Frequency string `json:"frequency"`
	NextDue   string `json:"next_due,omitempty"` // YYYY-MM-DD, empty for untracked items
	Amount    string `json:"amount"`
	Account   string `json:"account"`
	ListType  string `json:"list_type"`
}

func (req *obligationRequest) toModel(id string) (*models.RecurringObligation, error) {
	if err := validation.ValidateStringNotEmpty(req.Name, "name"); err != nil {
		return nil, err
	}
	if err := validation.ValidateStringMaxLength(req.Name, validation.DefaultMaxStringLength, "name"); err != nil {
		return nil, err
	}
	freq, err := validation.ValidateFrequency(req.Frequency)
	if err != nil {
		return nil, err
	}
	amount, err := validation.ValidateAmountString(req.Amount, "amount", false)
	if err != nil {
		return nil, err
	}
	account, err := validation.ValidateAccountClass(req.Account)
	if err != nil {
		return nil, err
	}
	listType := models.ListType(req.ListType)
	if listType != models.ListBill && listType != models.ListSubscription {
		listType = models.ListBill
	}

	ob := &models.RecurringObligation{
		ID:        id,
		Name:      req.Name,
		Frequency: freq,
		Amount:    amount,
		Account:   account,
		ListType:  listType,
	}
	if req.NextDue != "" {
		due, err := validation.ValidateDateString(req.NextDue, "next_due")
		if err != nil {
			return nil, err
		}
		due = schedule.Day(due)
		ob.NextDue = &due
	}
	return ob, nil
}

func (h *ScheduleHandler) HandleListObligations(w http.ResponseWriter, r *http.Request) {
	obs, err := h.obligations.List()
	if err != nil {
		logger.ErrorFromContext(r.Context(), "Failed to list obligations", "error", err)
		utils.SendJSONError(w, "Failed to list obligations", http.StatusInternalServerError)
		return
	}
	if obs == nil {
		obs = []models.RecurringObligation{}
	}
	utils.WriteJSON(w, http.StatusOK, obs)
}

func (h *ScheduleHandler) HandleCreateObligation(w http.ResponseWriter, r *http.Request) {
	var req obligationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.SendJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	ob, err := req.toModel(uuid.New().String())
	if err != nil {
		utils.SendJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.obligations.Create(*ob); err != nil {
		logger.ErrorFromContext(r.Context(), "Failed to create obligation", "name", ob.Name, "error", err)
		utils.SendJSONError(w, "Failed to create obligation", http.StatusInternalServerError)
		return
	}
	h.budgetService.InvalidateCache()
	utils.WriteJSON(w, http.StatusCreated, ob)
}

func (h *ScheduleHandler) HandleUpdateObligation(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, err := h.obligations.Get(id); err != nil {
		utils.SendJSONError(w, "obligation not found", http.StatusNotFound)
		return
	}
	var req obligationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.SendJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	ob, err := req.toModel(id)
	if err != nil {
		utils.SendJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.obligations.Update(*ob); err != nil {
		logger.ErrorFromContext(r.Context(), "Failed to update obligation", "id", id, "error", err)
		utils.SendJSONError(w, "Failed to update obligation", http.StatusInternalServerError)
		return
	}
	h.budgetService.InvalidateCache()
	utils.WriteJSON(w, http.StatusOK, ob)
}

func (h *ScheduleHandler) HandleDeleteObligation(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.obligations.Delete(id); err != nil {
		logger.ErrorFromContext(r.Context(), "Failed to delete obligation", "id", id, "error", err)
		utils.SendJSONError(w, "Failed to delete obligation", http.StatusInternalServerError)
		return
	}
	h.budgetService.InvalidateCache()
	utils.WriteJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// --- auto transfers ---

type transferRequest struct {
	WhatFor              string `json:"what_for"`
	Frequency            string `json:"frequency"`
	Account              string `json:"account"`
	Date                 string `json:"date"` // anchor date, YYYY-MM-DD
	Amount               string `json:"amount"`
	TransferredThisCycle bool   `json:"transferred_this_cycle"`
}

func (req *transferRequest) toModel(id string) (*models.AutoTransfer, error) {
	if err := validation.ValidateStringNotEmpty(req.WhatFor, "what_for"); err != nil {
		return nil, err
	}
	freq, err := validation.ValidateFrequency(req.Frequency)
	if err != nil {
		return nil, err
	}
	account, err := validation.ValidateAccountClass(req.Account)
	if err != nil {
		return nil, err
	}
	date, err := validation.ValidateDateString(req.Date, "date")
	if err != nil {
		return nil, err
	}
	amount, err := validation.ValidateAmountString(req.Amount, "amount", false)
	if err != nil {
		return nil, err
	}
	return &models.AutoTransfer{
		ID:                   id,
		WhatFor:              req.WhatFor,
		Frequency:            freq,
		Account:              account,
		Date:                 schedule.Day(date),
		Amount:               amount,
		TransferredThisCycle: req.TransferredThisCycle,
	}, nil
}

func (h *ScheduleHandler) HandleListTransfers(w http.ResponseWriter, r *http.Request) {
	ts, err := h.transfers.List()
	if err != nil {
		logger.ErrorFromContext(r.Context(), "Failed to list transfers", "error", err)
		utils.SendJSONError(w, "Failed to list transfers", http.StatusInternalServerError)
		return
	}
	if ts == nil {
		ts = []models.AutoTransfer{}
	}
	utils.WriteJSON(w, http.StatusOK, ts)
}

func (h *ScheduleHandler) HandleCreateTransfer(w http.ResponseWriter, r *http.Request) {
	var req transferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.SendJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	t, err := req.toModel(uuid.New().String())
	if err != nil {
		utils.SendJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.transfers.Create(*t); err != nil {
		logger.ErrorFromContext(r.Context(), "Failed to create transfer", "whatFor", t.WhatFor, "error", err)
		utils.SendJSONError(w, "Failed to create transfer", http.StatusInternalServerError)
		return
	}
	h.budgetService.InvalidateCache()
	utils.WriteJSON(w, http.StatusCreated, t)
}

func (h *ScheduleHandler) HandleUpdateTransfer(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var req transferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.SendJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	t, err := req.toModel(id)
	if err != nil {
		utils.SendJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.transfers.Update(*t); err != nil {
		logger.ErrorFromContext(r.Context(), "Failed to update transfer", "id", id, "error", err)
		utils.SendJSONError(w, "Failed to update transfer", http.StatusInternalServerError)
		return
	}
	h.budgetService.InvalidateCache()
	utils.WriteJSON(w, http.StatusOK, t)
}

func (h *ScheduleHandler) HandleDeleteTransfer(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.transfers.Delete(id); err != nil {
		logger.ErrorFromContext(r.Context(), "Failed to delete transfer", "id", id, "error", err)
		utils.SendJSONError(w, "Failed to delete transfer", http.StatusInternalServerError)
		return
	}
	h.budgetService.InvalidateCache()
	utils.WriteJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// --- paycheck configs ---

type paycheckRequest struct {
	Name       string `json:"name"`
	Frequency  string `json:"frequency"`
	AnchorDate string `json:"anchor_date,omitempty"` // biweekly only
	DayOfMonth int    `json:"day_of_month,omitempty"`
	Amount     string `json:"amount"`
}

func (req *paycheckRequest) toModel(id string) (*models.PaycheckConfig, error) {
	if err := validation.ValidateStringNotEmpty(req.Name, "name"); err != nil {
		return nil, err
	}
	freq, err := validation.ValidatePayFrequency(req.Frequency)
	if err != nil {
		return nil, err
	}
	amount, err := validation.ValidateAmountString(req.Amount, "amount", false)
	if err != nil {
		return nil, err
	}

	pc := &models.PaycheckConfig{
		ID:        id,
		Name:      req.Name,
		Frequency: freq,
		Amount:    amount,
	}
	switch freq {
	case models.PayBiweekly:
		anchor, err := validation.ValidateDateString(req.AnchorDate, "anchor_date")
		if err != nil {
			return nil, err
		}
		anchor = schedule.Day(anchor)
		pc.AnchorDate = &anchor
	case models.PayMonthlyDay:
		if req.DayOfMonth < 1 || req.DayOfMonth > 31 {
			return nil, fmt.Errorf("%w: day_of_month must be between 1 and 31", validation.ErrValidationFailed)
		}
		pc.DayOfMonth = req.DayOfMonth
	}
	return pc, nil
}

func (h *ScheduleHandler) HandleListPaychecks(w http.ResponseWriter, r *http.Request) {
	pcs, err := h.paychecks.List()
	if err != nil {
		logger.ErrorFromContext(r.Context(), "Failed to list paychecks", "error", err)
		utils.SendJSONError(w, "Failed to list paychecks", http.StatusInternalServerError)
		return
	}
	if pcs == nil {
		pcs = []models.PaycheckConfig{}
	}
	utils.WriteJSON(w, http.StatusOK, pcs)
}

func (h *ScheduleHandler) HandleCreatePaycheck(w http.ResponseWriter, r *http.Request) {
	var req paycheckRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.SendJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	pc, err := req.toModel(uuid.New().String())
	if err != nil {
		utils.SendJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.paychecks.Create(*pc); err != nil {
		logger.ErrorFromContext(r.Context(), "Failed to create paycheck config", "name", pc.Name, "error", err)
		utils.SendJSONError(w, "Failed to create paycheck config", http.StatusInternalServerError)
		return
	}
	h.budgetService.InvalidateCache()
	utils.WriteJSON(w, http.StatusCreated, pc)
}

func (h *ScheduleHandler) HandleUpdatePaycheck(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var req paycheckRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.SendJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	pc, err := req.toModel(id)
	if err != nil {
		utils.SendJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.paychecks.Update(*pc); err != nil {
		logger.ErrorFromContext(r.Context(), "Failed to update paycheck config", "id", id, "error", err)
		utils.SendJSONError(w, "Failed to update paycheck config", http.StatusInternalServerError)
		return
	}
	h.budgetService.InvalidateCache()
	utils.WriteJSON(w, http.StatusOK, pc)
}

func (h *ScheduleHandler) HandleDeletePaycheck(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.paychecks.Delete(id); err != nil {
		logger.ErrorFromContext(r.Context(), "Failed to delete paycheck config", "id", id, "error", err)
		utils.SendJSONError(w, "Failed to delete paycheck config", http.StatusInternalServerError)
		return
	}
	h.budgetService.InvalidateCache()
	utils.WriteJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// --- goals ---

type goalRequest struct {
	Name                string `json:"name"`
	MonthlyContribution string `json:"monthly_contribution"`
}

func (req *goalRequest) toModel(id string) (*models.Goal, error) {
	if err := validation.ValidateStringNotEmpty(req.Name, "name"); err != nil {
		return nil, err
	}
	contribution, err := validation.ValidateAmountString(req.MonthlyContribution, "monthly_contribution", false)
	if err != nil {
		return nil, err
	}
	return &models.Goal{ID: id, Name: req.Name, MonthlyContribution: contribution}, nil
}

func (h *ScheduleHandler) HandleListGoals(w http.ResponseWriter, r *http.Request) {
	gs, err := h.goals.List()
	if err != nil {
		logger.ErrorFromContext(r.Context(), "Failed to list goals", "error", err)
		utils.SendJSONError(w, "Failed to list goals", http.StatusInternalServerError)
		return
	}
	if gs == nil {
		gs = []models.Goal{}
	}
	utils.WriteJSON(w, http.StatusOK, gs)
}

func (h *ScheduleHandler) HandleCreateGoal(w http.ResponseWriter, r *http.Request) {
	var req goalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.SendJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	g, err := req.toModel(uuid.New().String())
	if err != nil {
		utils.SendJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.goals.Create(*g); err != nil {
		logger.ErrorFromContext(r.Context(), "Failed to create goal", "name", g.Name, "error", err)
		utils.SendJSONError(w, "Failed to create goal", http.StatusInternalServerError)
		return
	}
	h.budgetService.InvalidateCache()
	utils.WriteJSON(w, http.StatusCreated, g)
}

func (h *ScheduleHandler) HandleUpdateGoal(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var req goalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.SendJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	g, err := req.toModel(id)
	if err != nil {
		utils.SendJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.goals.Update(*g); err != nil {
		logger.ErrorFromContext(r.Context(), "Failed to update goal", "id", id, "error", err)
		utils.SendJSONError(w, "Failed to update goal", http.StatusInternalServerError)
		return
	}
	h.budgetService.InvalidateCache()
	utils.WriteJSON(w, http.StatusOK, g)
}

func (h *ScheduleHandler) HandleDeleteGoal(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.goals.Delete(id); err != nil {
		logger.ErrorFromContext(r.Context(), "Failed to delete goal", "id", id, "error", err)
		utils.SendJSONError(w, "Failed to delete goal", http.StatusInternalServerError)
		return
	}
	h.budgetService.InvalidateCache()
	utils.WriteJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
