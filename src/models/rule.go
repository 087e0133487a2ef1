package models

import "time"

// TargetType is the closed set of classification destinations.
type TargetType string

const (
	TargetBill            TargetType = "bill"
	TargetSubscription    TargetType = "subscription"
	TargetRental          TargetType = "rental_property" // secondary-property bill group
	TargetAutoTransfer    TargetType = "auto_transfer"
	TargetVariableExpense TargetType = "variable_expense"
	TargetIgnore          TargetType = "ignore"
)

// AccountClass is a destination account grouping for money movements.
type AccountClass string

const (
	AccountChecking AccountClass = "checking"
	AccountBills    AccountClass = "bills"
	AccountRental   AccountClass = "rental"
	AccountPersonal AccountClass = "personal" // money leaving checking for personal/external accounts
)

// Confidence grades how much a suggestion should be trusted.
type Confidence string

const (
	ConfidenceHigh   Confidence = "HIGH"
	ConfidenceMedium Confidence = "MEDIUM"
	ConfidenceLow    Confidence = "LOW"
)

// MatchType records which key produced a rule match.
type MatchType string

const (
	MatchExactPattern MatchType = "exact_pattern"
	MatchNormalized   MatchType = "normalized_description"
	MatchHeuristic    MatchType = "heuristic"
)

// Target bundles the destination fields of a classification.
type Target struct {
	Type    TargetType   `json:"type"`
	Section AccountClass `json:"section,omitempty"`
	Name    string       `json:"name,omitempty"`
	GoalID  string       `json:"goal_id,omitempty"`
}

// ClassificationRule is a learned mapping from a canonical description
// pattern to a classification target. UseCount and OverrideCount only ever
// increase: OverrideCount when a user changed the outcome the rule would have
// suggested, UseCount otherwise.
type ClassificationRule struct {
	ID                    string    `json:"id"`
	Pattern               string    `json:"pattern"`
	NormalizedDescription string    `json:"normalized_description"`
	Target                Target    `json:"target"`
	UseCount              int       `json:"use_count"`
	OverrideCount         int       `json:"override_count"`
	CreatedAt             time.Time `json:"created_at"`
	UpdatedAt             time.Time `json:"updated_at"`
}

// Suggestion is the ephemeral classification proposed for one transaction.
// It is never persisted; accepting or editing it produces or updates a rule.
type Suggestion struct {
	Transaction Transaction `json:"transaction"`
	Target      Target      `json:"target"`
	Confidence  Confidence  `json:"confidence"`
	MatchType   MatchType   `json:"match_type"`
	RuleID      string      `json:"rule_id,omitempty"`
}
