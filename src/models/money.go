package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PayPeriodBreakdown is the projection for one pay period: the 14-day window
// ending on a paycheck date.
type PayPeriodBreakdown struct {
	PaycheckName string          `json:"paycheck_name"`
	End          time.Time       `json:"end"` // the paycheck date closing the window
	Income       decimal.Decimal `json:"income"`
	Required     decimal.Decimal `json:"required"` // single-occurrence sum of obligations due in the window
}

// MoneyStatus is the aggregated cash-flow projection for one calendar month.
// It is computed on demand and never stored.
type MoneyStatus struct {
	Month          string          `json:"month"` // YYYY-MM
	ExpectedIncome decimal.Decimal `json:"expected_income"`

	// NeedByAccount holds the monthly-equivalent predicted need per
	// destination account.
	NeedByAccount map[AccountClass]decimal.Decimal `json:"need_by_account"`

	// TransferredIn holds scheduled transfer totals into the bills and
	// rental accounts from the 1st of the month through today.
	TransferredIn map[AccountClass]decimal.Decimal `json:"transferred_in"`

	// OutboundTransfers is money scheduled to leave checking for
	// personal/external accounts in the same window. It reduces checking
	// but never funds bills or rental.
	OutboundTransfers decimal.Decimal `json:"outbound_transfers"`

	// PaidByAccount sums rule-backed classified transactions for the month
	// per destination account.
	PaidByAccount map[AccountClass]decimal.Decimal `json:"paid_by_account"`

	GoalContributions decimal.Decimal `json:"goal_contributions"`
	VariableExpenses  decimal.Decimal `json:"variable_expenses"` // recorded actuals only

	LeftOver decimal.Decimal `json:"left_over"`

	PayPeriods []PayPeriodBreakdown `json:"pay_periods"`
}
