package processors

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"github.com/username/budgetfolio/backend/src/models"
	"github.com/username/budgetfolio/backend/src/schedule"
)

var (
	two    = decimal.NewFromInt(2)
	twelve = decimal.NewFromInt(12)
)

// CashflowInput is the snapshot a projection is computed from. Transactions
// must already be restricted to the target month.
type CashflowInput struct {
	Year  int
	Month time.Month
	Today time.Time

	Paychecks    []models.PaycheckConfig
	Obligations  []models.RecurringObligation
	Transfers    []models.AutoTransfer
	Transactions []models.Transaction
	Rules        []models.ClassificationRule
	Goals        []models.Goal
}

// CashflowProcessor computes the MoneyStatus projection for a calendar month:
// expected income, predicted need per account, transfers moved so far, paid
// totals and the projected leftover.
type CashflowProcessor struct {
	matcher *RuleMatcher
}

func NewCashflowProcessor(matcher *RuleMatcher) *CashflowProcessor {
	return &CashflowProcessor{matcher: matcher}
}

// Project builds the MoneyStatus for the input month. All intermediate sums
// stay exact decimals; rounding to 2 places happens once per aggregate at the
// end, never per transaction.
func (p *CashflowProcessor) Project(in CashflowInput) models.MoneyStatus {
	monthStart := time.Date(in.Year, in.Month, 1, 0, 0, 0, 0, time.UTC)
	monthEnd := monthStart.AddDate(0, 1, -1)
	today := schedule.Day(in.Today)

	income, periods := p.expectedIncome(in)
	need := p.predictedNeed(in.Obligations)
	transferredIn, outbound := p.transfersToDate(in.Transfers, monthStart, monthEnd, today)
	paid, variableExpenses := p.paidToDate(in.Transactions, in.Rules)
	p.fillRequiredPerPeriod(periods, in.Obligations)

	goalContributions := decimal.Zero
	for _, g := range in.Goals {
		goalContributions = goalContributions.Add(g.MonthlyContribution)
	}

	leftOver := income.
		Sub(outbound).
		Sub(need[models.AccountChecking]).
		Sub(goalContributions).
		Sub(variableExpenses)

	return models.MoneyStatus{
		Month:             fmt.Sprintf("%04d-%02d", in.Year, in.Month),
		ExpectedIncome:    income.Round(2),
		NeedByAccount:     roundAll(need),
		TransferredIn:     roundAll(transferredIn),
		OutboundTransfers: outbound.Round(2),
		PaidByAccount:     roundAll(paid),
		GoalContributions: goalContributions.Round(2),
		VariableExpenses:  variableExpenses.Round(2),
		LeftOver:          leftOver.Round(2),
		PayPeriods:        periods,
	}
}

// expectedIncome enumerates every paycheck occurrence funding the target
// month. A biweekly series yields 2 or 3 occurrences depending on alignment;
// a last-working-day paycheck dated in month M is attributed to month M+1.
func (p *CashflowProcessor) expectedIncome(in CashflowInput) (decimal.Decimal, []models.PayPeriodBreakdown) {
	income := decimal.Zero
	var periods []models.PayPeriodBreakdown
	for _, pc := range in.Paychecks {
		for _, date := range schedule.PaycheckDatesFundingMonth(pc, in.Year, in.Month) {
			income = income.Add(pc.Amount)
			periods = append(periods, models.PayPeriodBreakdown{
				PaycheckName: pc.Name,
				End:          date,
				Income:       pc.Amount,
			})
		}
	}
	sort.Slice(periods, func(i, j int) bool { return periods[i].End.Before(periods[j].End) })
	return income, periods
}

// predictedNeed sums every obligation's monthly-equivalent amount per
// destination account: x2 for the 2-week frequency, /12 for yearly.
func (p *CashflowProcessor) predictedNeed(obligations []models.RecurringObligation) map[models.AccountClass]decimal.Decimal {
	need := make(map[models.AccountClass]decimal.Decimal)
	for _, ob := range obligations {
		need[ob.Account] = need[ob.Account].Add(monthlyEquivalent(ob.Amount, ob.Frequency))
	}
	return need
}

func monthlyEquivalent(amount decimal.Decimal, freq models.Frequency) decimal.Decimal {
	switch freq {
	case models.FreqEveryTwoWeeks:
		return amount.Mul(two)
	case models.FreqYearly:
		return amount.Div(twelve)
	default:
		return amount
	}
}

// transfersToDate enumerates each auto-transfer's occurrences from the 1st of
// the month through min(today, month end). Transfers into the bills and
// rental accounts count as funding those accounts; transfers to personal
// accounts reduce checking and are tallied separately, never as funding.
// A transfer flagged transferredThisCycle whose occurrence for the current
// cycle has not arrived yet gets its amount added once as a one-off: the flag
// already reflects reality ahead of the mechanical schedule. Once that
// occurrence passes, the enumeration above has counted it and the flag adds
// nothing more.
func (p *CashflowProcessor) transfersToDate(
	transfers []models.AutoTransfer,
	monthStart, monthEnd, today time.Time,
) (map[models.AccountClass]decimal.Decimal, decimal.Decimal) {
	transferredIn := make(map[models.AccountClass]decimal.Decimal)
	outbound := decimal.Zero
	cutoff := monthEnd
	if today.Before(cutoff) {
		cutoff = today
	}
	add := func(t models.AutoTransfer) {
		if t.Account == models.AccountPersonal {
			outbound = outbound.Add(t.Amount)
		} else {
			transferredIn[t.Account] = transferredIn[t.Account].Add(t.Amount)
		}
	}
	for _, t := range transfers {
		occ := schedule.NextOccurrenceOnOrAfter(t.Date, t.Frequency, monthStart)
		for !occ.IsZero() && !occ.After(cutoff) {
			add(t)
			occ = schedule.AddCycle(occ, t.Frequency)
		}
		if t.TransferredThisCycle {
			cycleOcc := schedule.NextOccurrenceOnOrAfter(t.Date, t.Frequency, monthStart)
			if cycleOcc.After(today) {
				add(t)
			}
		}
	}
	return transferredIn, outbound
}

// paidToDate sums classified transaction amounts per destination account.
// Only rule-backed classifications count; heuristic-only guesses never move
// paid totals. Rule-classified variable expenses are also accumulated
// separately for the leftover figure.
func (p *CashflowProcessor) paidToDate(
	txs []models.Transaction,
	rules []models.ClassificationRule,
) (map[models.AccountClass]decimal.Decimal, decimal.Decimal) {
	paid := make(map[models.AccountClass]decimal.Decimal)
	variable := decimal.Zero
	for _, tx := range txs {
		match := p.matcher.Match(rules, tx)
		if match == nil || match.Rule.Target.Type == models.TargetIgnore {
			continue
		}
		section := match.Rule.Target.Section
		if section == "" {
			section = models.AccountChecking
		}
		paid[section] = paid[section].Add(tx.Amount.Abs())
		if match.Rule.Target.Type == models.TargetVariableExpense {
			variable = variable.Add(tx.Amount.Abs())
		}
	}
	return paid, variable
}

// fillRequiredPerPeriod sums, for each pay period, the single occurrence
// amount of every obligation whose advanced due date falls in the 14-day
// window ending on the paycheck date. Using the single occurrence rather
// than the monthly-equivalent keeps a biweekly obligation from being counted
// twice in one period.
func (p *CashflowProcessor) fillRequiredPerPeriod(periods []models.PayPeriodBreakdown, obligations []models.RecurringObligation) {
	for i := range periods {
		end := schedule.Day(periods[i].End)
		start := end.AddDate(0, 0, -14)
		required := decimal.Zero
		for _, ob := range obligations {
			if ob.NextDue == nil {
				continue
			}
			due := schedule.NextOccurrenceOnOrAfter(*ob.NextDue, ob.Frequency, start)
			if schedule.IsWithinWindow(due, start, end) {
				required = required.Add(ob.Amount)
			}
		}
		periods[i].Required = required.Round(2)
	}
}

func roundAll(m map[models.AccountClass]decimal.Decimal) map[models.AccountClass]decimal.Decimal {
	out := make(map[models.AccountClass]decimal.Decimal, len(m))
	for k, v := range m {
		out[k] = v.Round(2)
	}
	return out
}
