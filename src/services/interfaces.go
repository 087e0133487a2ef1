package services

import (
	"errors"
	"io"
	"time"

	"github.com/username/budgetfolio/backend/src/models"
	"github.com/username/budgetfolio/backend/src/schedule"
)

const (
	ckMoneyStatus          = "agg_money_status_%04d_%02d"
	ckSessionEdits         = "session_edits_%s"
	DefaultCacheExpiration = 15 * time.Minute
	CacheCleanupInterval   = 30 * time.Minute
	SessionEditExpiration  = 2 * time.Hour
)

// Common service errors.
var (
	ErrParsingFailed = errors.New("statement parsing failed")
	ErrUnknownMonth  = errors.New("invalid month")
)

// ClassificationDecision is one user-confirmed classification in a batch.
type ClassificationDecision struct {
	TransactionID string        `json:"transaction_id"`
	Target        models.Target `json:"target"`
}

// BatchResult reports partial success for a batch operation. A batch never
// fails as a whole because one item did.
type BatchResult struct {
	Succeeded int      `json:"succeeded"`
	Failed    int      `json:"failed"`
	Errors    []string `json:"errors,omitempty"`
}

// ClassificationService drives the learn-from-the-user classification loop.
type ClassificationService interface {
	// SuggestForMonth produces one suggestion per transaction in the
	// month, folding in this session's unsaved edits.
	SuggestForMonth(sessionID string, year int, month time.Month) ([]models.Suggestion, error)
	// RecordSessionEdit notes an unsaved classification so it can
	// propagate to same-pattern rows on the next suggestion pass.
	RecordSessionEdit(sessionID, transactionID string, target models.Target) error
	// ConfirmBatch persists user decisions: rules are created or their
	// counters advanced, goal attributions written.
	ConfirmBatch(sessionID string, decisions []ClassificationDecision) *BatchResult
	// ResetRules deletes every learned rule and returns the count.
	ResetRules() (int64, error)
}

// ObligationStatus pairs an obligation with its computed payment cycle state.
type ObligationStatus struct {
	Obligation models.RecurringObligation `json:"obligation"`
	Cycle      schedule.CycleStatus       `json:"cycle"`
}

// BudgetService assembles the cash-flow projections.
type BudgetService interface {
	GetMoneyStatus(year int, month time.Month) (*models.MoneyStatus, error)
	ListObligationStatuses() ([]ObligationStatus, error)
	InvalidateCache()
}

// ImportResult reports the outcome of one statement import.
type ImportResult struct {
	Imported   int `json:"imported"`
	Duplicates int `json:"duplicates"`
	Skipped    int `json:"skipped"`
	Failed     int `json:"failed"`
}

// ImportService ingests normalized statement files.
type ImportService interface {
	ImportStatement(r io.Reader, source, filename string, filesize int64, account string) (*ImportResult, error)
}
