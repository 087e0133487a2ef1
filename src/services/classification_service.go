package services

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
	"github.com/username/budgetfolio/backend/src/logger"
	"github.com/username/budgetfolio/backend/src/models"
	"github.com/username/budgetfolio/backend/src/processors"
	"github.com/username/budgetfolio/backend/src/store"
)

// sessionState is the unsaved, session-local classification state: edits
// keyed by canonical pattern, plus the transaction ids the user already
// classified so re-suggestion never overwrites them.
type sessionState struct {
	EditsByPattern map[string]models.Target
	EditedTxIDs    map[string]bool
}

type classificationServiceImpl struct {
	txStore      store.TransactionStore
	ruleStore    store.RuleStore
	suggester    *processors.SuggestionProcessor
	sessionCache *cache.Cache
	reportCache  *cache.Cache
}

func NewClassificationService(
	txStore store.TransactionStore,
	ruleStore store.RuleStore,
	suggester *processors.SuggestionProcessor,
	sessionCache *cache.Cache,
	reportCache *cache.Cache,
) ClassificationService {
	return &classificationServiceImpl{
		txStore:      txStore,
		ruleStore:    ruleStore,
		suggester:    suggester,
		sessionCache: sessionCache,
		reportCache:  reportCache,
	}
}

func (s *classificationServiceImpl) SuggestForMonth(sessionID string, year int, month time.Month) ([]models.Suggestion, error) {
	from := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, -1)
	txs, err := s.txStore.List(store.TransactionFilter{From: &from, To: &to})
	if err != nil {
		return nil, err
	}
	rules, err := s.ruleStore.ListAll()
	if err != nil {
		return nil, err
	}

	suggestions := s.suggester.Suggest(txs, rules)
	state := s.session(sessionID)
	return s.suggester.ApplySessionEdits(suggestions, state.EditsByPattern, state.EditedTxIDs), nil
}

func (s *classificationServiceImpl) RecordSessionEdit(sessionID, transactionID string, target models.Target) error {
	tx, err := s.txStore.Get(transactionID)
	if err != nil {
		return err
	}
	pattern := processors.Canonicalize(tx.Description)

	state := s.session(sessionID)
	state.EditedTxIDs[transactionID] = true
	if pattern != "" {
		state.EditsByPattern[pattern] = target
	}
	s.sessionCache.Set(fmt.Sprintf(ckSessionEdits, sessionID), state, SessionEditExpiration)
	return nil
}

// ConfirmBatch persists each decision independently: one failed row or write
// never fails the batch, the result carries succeeded/failed counts.
func (s *classificationServiceImpl) ConfirmBatch(sessionID string, decisions []ClassificationDecision) *BatchResult {
	result := &BatchResult{}
	for _, d := range decisions {
		if err := s.confirmOne(d); err != nil {
			logger.L.Warn("Classification decision failed", "transactionID", d.TransactionID, "error", err)
			result.Failed++
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", d.TransactionID, err))
			continue
		}
		result.Succeeded++
	}
	if sessionID != "" {
		s.sessionCache.Delete(fmt.Sprintf(ckSessionEdits, sessionID))
	}
	// Paid totals in cached projections are rule-backed, so any learned or
	// adjusted rule invalidates them.
	if result.Succeeded > 0 {
		s.reportCache.Flush()
	}
	logger.L.Info("Classification batch confirmed", "succeeded", result.Succeeded, "failed", result.Failed)
	return result
}

// confirmOne applies one decision: look the rule up by pattern (patterns are
// logically unique, enforced here rather than by the store), then either
// create it or advance its counters. The counter update is a plain
// read-modify-write; concurrent classification of the same pattern can lose
// an update.
func (s *classificationServiceImpl) confirmOne(d ClassificationDecision) error {
	tx, err := s.txStore.Get(d.TransactionID)
	if err != nil {
		return err
	}
	pattern := processors.Canonicalize(tx.Description)
	if pattern != "" {
		if err := s.learnRule(pattern, tx.Description, d.Target); err != nil {
			return err
		}
	}
	if d.Target.GoalID != "" {
		if err := s.txStore.SetGoal(tx.ID, d.Target.GoalID); err != nil {
			return err
		}
	}
	return nil
}

func (s *classificationServiceImpl) learnRule(pattern, description string, target models.Target) error {
	rule, err := s.ruleStore.FindByPattern(pattern)
	if err != nil {
		return err
	}
	if rule == nil {
		return s.ruleStore.Create(models.ClassificationRule{
			ID:                    uuid.New().String(),
			Pattern:               pattern,
			NormalizedDescription: processors.NormalizeMerchant(description),
			Target:                target,
			UseCount:              1,
		})
	}
	if sameTarget(rule.Target, target) {
		rule.UseCount++
	} else {
		// The user changed the outcome the rule would have suggested:
		// record the override and adopt the corrected target.
		rule.OverrideCount++
		rule.Target = target
	}
	return s.ruleStore.Update(*rule)
}

func (s *classificationServiceImpl) ResetRules() (int64, error) {
	n, err := s.ruleStore.DeleteAll()
	if err != nil {
		return 0, err
	}
	if n > 0 {
		s.reportCache.Flush()
	}
	logger.L.Info("Classification rules reset", "deleted", n)
	return n, nil
}

func (s *classificationServiceImpl) session(sessionID string) sessionState {
	if sessionID == "" {
		return newSessionState()
	}
	if cached, found := s.sessionCache.Get(fmt.Sprintf(ckSessionEdits, sessionID)); found {
		return cached.(sessionState)
	}
	return newSessionState()
}

func newSessionState() sessionState {
	return sessionState{
		EditsByPattern: make(map[string]models.Target),
		EditedTxIDs:    make(map[string]bool),
	}
}

func sameTarget(a, b models.Target) bool {
	return a.Type == b.Type && a.Section == b.Section && a.Name == b.Name && a.GoalID == b.GoalID
}
