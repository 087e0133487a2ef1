package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction represents a single imported bank-statement line.
// Rows are immutable once imported, with one exception: GoalID, which the
// classification workflow may set to attribute the movement to a savings goal.
type Transaction struct {
	ID          string              `json:"id"`
	Date        time.Time           `json:"date"` // calendar day, no time component
	Description string              `json:"description"`
	Amount      decimal.Decimal     `json:"amount"` // signed; negative = outflow
	Balance     decimal.NullDecimal `json:"balance,omitempty"`
	Category    string              `json:"category,omitempty"` // category carried over from the source statement, if any
	Account     string              `json:"account,omitempty"`  // source bank account label
	GoalID      string              `json:"goal_id,omitempty"`
	HashID      string              `json:"hash_id"` // duplicate detection on import
}

// StatementRow is the normalized shape a statement parser yields.
// Parsers populate as many fields as the source file provides; only Date,
// Description and Amount are guaranteed.
type StatementRow struct {
	Date        time.Time
	Description string
	Amount      decimal.Decimal
	Balance     decimal.NullDecimal
	Category    string
	Account     string
}

// Goal is a savings goal transactions can be attributed to.
type Goal struct {
	ID                  string          `json:"id"`
	Name                string          `json:"name"`
	MonthlyContribution decimal.Decimal `json:"monthly_contribution"`
}
