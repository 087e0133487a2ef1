package services

import (
	"fmt"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/username/budgetfolio/backend/src/logger"
	"github.com/username/budgetfolio/backend/src/models"
	"github.com/username/budgetfolio/backend/src/processors"
	"github.com/username/budgetfolio/backend/src/schedule"
	"github.com/username/budgetfolio/backend/src/store"
)

// matchWindowDays bounds how far back obligation payment matching looks.
const matchWindowDays = 120

type budgetServiceImpl struct {
	txStore     store.TransactionStore
	ruleStore   store.RuleStore
	obligations store.ObligationStore
	transfers   store.TransferStore
	paychecks   store.PaycheckStore
	goals       store.GoalStore
	cashflow    *processors.CashflowProcessor
	matcher     *processors.RuleMatcher
	reportCache *cache.Cache
	now         func() time.Time
}

func NewBudgetService(
	txStore store.TransactionStore,
	ruleStore store.RuleStore,
	obligations store.ObligationStore,
	transfers store.TransferStore,
	paychecks store.PaycheckStore,
	goals store.GoalStore,
	cashflow *processors.CashflowProcessor,
	matcher *processors.RuleMatcher,
	reportCache *cache.Cache,
) BudgetService {
	return &budgetServiceImpl{
		txStore:     txStore,
		ruleStore:   ruleStore,
		obligations: obligations,
		transfers:   transfers,
		paychecks:   paychecks,
		goals:       goals,
		cashflow:    cashflow,
		matcher:     matcher,
		reportCache: reportCache,
		now:         time.Now,
	}
}

func (s *budgetServiceImpl) GetMoneyStatus(year int, month time.Month) (*models.MoneyStatus, error) {
	cacheKey := fmt.Sprintf(ckMoneyStatus, year, month)
	if cached, found := s.reportCache.Get(cacheKey); found {
		return cached.(*models.MoneyStatus), nil
	}

	paychecks, err := s.paychecks.List()
	if err != nil {
		return nil, err
	}
	obligations, err := s.obligations.List()
	if err != nil {
		return nil, err
	}
	transfers, err := s.transfers.List()
	if err != nil {
		return nil, err
	}
	goals, err := s.goals.List()
	if err != nil {
		return nil, err
	}
	rules, err := s.ruleStore.ListAll()
	if err != nil {
		return nil, err
	}
	from := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, -1)
	txs, err := s.txStore.List(store.TransactionFilter{From: &from, To: &to})
	if err != nil {
		return nil, err
	}

	status := s.cashflow.Project(processors.CashflowInput{
		Year:         year,
		Month:        month,
		Today:        s.now(),
		Paychecks:    paychecks,
		Obligations:  obligations,
		Transfers:    transfers,
		Transactions: txs,
		Rules:        rules,
		Goals:        goals,
	})

	s.reportCache.Set(cacheKey, &status, DefaultCacheExpiration)
	return &status, nil
}

// ListObligationStatuses recomputes each obligation's payment cycle from the
// transactions classified to it. When a detected payment advances the cycle
// past the stored due date, the stored date is moved forward.
func (s *budgetServiceImpl) ListObligationStatuses() ([]ObligationStatus, error) {
	today := schedule.Day(s.now())

	obligations, err := s.obligations.List()
	if err != nil {
		return nil, err
	}
	rules, err := s.ruleStore.ListAll()
	if err != nil {
		return nil, err
	}
	paychecks, err := s.paychecks.List()
	if err != nil {
		return nil, err
	}
	from := today.AddDate(0, 0, -matchWindowDays)
	txs, err := s.txStore.List(store.TransactionFilter{From: &from, To: &today})
	if err != nil {
		return nil, err
	}

	matchedByName := make(map[string][]models.Transaction)
	for _, tx := range txs {
		if match := s.matcher.Match(rules, tx); match != nil && match.Rule.Target.Name != "" {
			matchedByName[match.Rule.Target.Name] = append(matchedByName[match.Rule.Target.Name], tx)
		}
	}

	nextPay := s.nextPaycheckDate(paychecks, today)

	statuses := make([]ObligationStatus, 0, len(obligations))
	for _, ob := range obligations {
		cycle := schedule.DetectPaidCycle(ob, matchedByName[ob.Name], today)

		if cycle.PaidThisCycle && ob.NextDue != nil && cycle.NextDue.After(*ob.NextDue) {
			due := cycle.NextDue
			ob.NextDue = &due
			if err := s.obligations.Update(ob); err != nil {
				logger.L.Warn("Failed to advance obligation due date", "obligation", ob.Name, "error", err)
			}
		}
		if !nextPay.IsZero() {
			ob.InThisPaycheck = schedule.DueInPayPeriod(cycle.NextDue, nextPay)
		}
		statuses = append(statuses, ObligationStatus{Obligation: ob, Cycle: cycle})
	}
	return statuses, nil
}

func (s *budgetServiceImpl) nextPaycheckDate(paychecks []models.PaycheckConfig, today time.Time) time.Time {
	var next time.Time
	for _, pc := range paychecks {
		d := schedule.NextPaycheckOnOrAfter(pc, today)
		if d.IsZero() {
			continue
		}
		if next.IsZero() || d.Before(next) {
			next = d
		}
	}
	return next
}

func (s *budgetServiceImpl) InvalidateCache() {
	s.reportCache.Flush()
}
