// Package store is the persistence boundary for the budget collections.
// Each collection gets a small typed store interface offering the equality /
// range filtering the engines need; the sqlite implementations live alongside
// so services can be tested against fakes.
package store

import (
	"time"

	"github.com/username/budgetfolio/backend/src/models"
)

// TransactionFilter narrows a transaction listing. Nil bounds are open.
type TransactionFilter struct {
	From    *time.Time
	To      *time.Time
	Account string
	Limit   int
}

// ImportRecord is one row of the import history.
type ImportRecord struct {
	ID        string    `json:"id"`
	Source    string    `json:"source"`
	Filename  string    `json:"filename"`
	FileSize  int64     `json:"file_size"`
	Imported  int       `json:"imported"`
	Skipped   int       `json:"skipped"`
	Failed    int       `json:"failed"`
	CreatedAt time.Time `json:"created_at"`
}

// TransactionStore persists imported statement lines. Rows are immutable
// except for the goal attribution.
type TransactionStore interface {
	List(filter TransactionFilter) ([]models.Transaction, error)
	Get(id string) (*models.Transaction, error)
	// Insert stores a transaction, reporting false when a row with the
	// same content hash already exists.
	Insert(tx models.Transaction) (bool, error)
	SetGoal(id, goalID string) error
	RecordImport(rec ImportRecord) error
}

// RuleStore persists learned classification rules. Patterns are logically
// unique, enforced by lookup-before-insert in the service layer rather than
// by a storage constraint.
type RuleStore interface {
	ListAll() ([]models.ClassificationRule, error)
	FindByPattern(pattern string) (*models.ClassificationRule, error)
	Create(rule models.ClassificationRule) error
	Update(rule models.ClassificationRule) error
	// DeleteAll removes every rule (full reset) and returns the count.
	DeleteAll() (int64, error)
}

// ObligationStore persists recurring obligations.
type ObligationStore interface {
	List() ([]models.RecurringObligation, error)
	Get(id string) (*models.RecurringObligation, error)
	Create(ob models.RecurringObligation) error
	Update(ob models.RecurringObligation) error
	Delete(id string) error
}

// TransferStore persists scheduled account-to-account transfers.
type TransferStore interface {
	List() ([]models.AutoTransfer, error)
	Create(t models.AutoTransfer) error
	Update(t models.AutoTransfer) error
	Delete(id string) error
}

// PaycheckStore persists paycheck configurations.
type PaycheckStore interface {
	List() ([]models.PaycheckConfig, error)
	Create(pc models.PaycheckConfig) error
	Update(pc models.PaycheckConfig) error
	Delete(id string) error
}

// GoalStore persists savings goals.
type GoalStore interface {
	List() ([]models.Goal, error)
	Create(g models.Goal) error
	Update(g models.Goal) error
	Delete(id string) error
}
