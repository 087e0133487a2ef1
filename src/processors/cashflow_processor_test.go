package processors_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/username/budgetfolio/backend/src/models"
	"github.com/username/budgetfolio/backend/src/processors"
)

func newCashflowProcessor() *processors.CashflowProcessor {
	return processors.NewCashflowProcessor(processors.NewRuleMatcher())
}

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

func dec(s string) decimal.Decimal {
	v, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return v
}

func TestProject_LeftOver(t *testing.T) {
	p := newCashflowProcessor()

	anchor := day(2026, time.March, 1)
	rules := []models.ClassificationRule{{
		ID:       "r-grocery",
		Pattern:  "WALMART.COM 8009WALMART AR",
		Target:   models.Target{Type: models.TargetVariableExpense, Section: models.AccountChecking, Name: "Groceries"},
		UseCount: 3,
	}}

	status := p.Project(processors.CashflowInput{
		Year:  2026,
		Month: time.March,
		Today: day(2026, time.March, 15),
		Paychecks: []models.PaycheckConfig{{
			ID: "p1", Name: "Salary", Frequency: models.PayMonthlyDay, DayOfMonth: 1, Amount: dec("5000"),
		}},
		Obligations: []models.RecurringObligation{
			{ID: "o1", Name: "Netflix", Frequency: models.FreqMonthly, Amount: dec("15"), Account: models.AccountChecking, ListType: models.ListSubscription},
			{ID: "o2", Name: "Electric", Frequency: models.FreqMonthly, Amount: dec("100"), Account: models.AccountBills, ListType: models.ListBill},
		},
		Transfers: []models.AutoTransfer{{
			ID: "tr1", WhatFor: "Spending money", Frequency: models.FreqMonthly,
			Account: models.AccountPersonal, Date: anchor, Amount: dec("200"),
		}},
		Transactions: []models.Transaction{{
			ID: "t1", Date: day(2026, time.March, 10),
			Description: "WALMART.COM 8009WALMART AR", Amount: dec("-50"),
		}},
		Rules: rules,
		Goals: []models.Goal{{ID: "g1", Name: "Vacation", MonthlyContribution: dec("150")}},
	})

	if status.Month != "2026-03" {
		t.Errorf("month %q, want 2026-03", status.Month)
	}
	if !status.ExpectedIncome.Equal(dec("5000")) {
		t.Errorf("expected income %s, want 5000", status.ExpectedIncome)
	}
	if !status.NeedByAccount[models.AccountChecking].Equal(dec("15")) {
		t.Errorf("checking need %s, want 15", status.NeedByAccount[models.AccountChecking])
	}
	if !status.NeedByAccount[models.AccountBills].Equal(dec("100")) {
		t.Errorf("bills need %s, want 100", status.NeedByAccount[models.AccountBills])
	}
	if !status.OutboundTransfers.Equal(dec("200")) {
		t.Errorf("outbound %s, want 200", status.OutboundTransfers)
	}
	if !status.VariableExpenses.Equal(dec("50")) {
		t.Errorf("variable expenses %s, want 50", status.VariableExpenses)
	}
	if !status.GoalContributions.Equal(dec("150")) {
		t.Errorf("goal contributions %s, want 150", status.GoalContributions)
	}
	// 5000 - 200 - 15 - 150 - 50
	if !status.LeftOver.Equal(dec("4585")) {
		t.Errorf("left over %s, want 4585", status.LeftOver)
	}
}

func TestProject_MonthlyEquivalents(t *testing.T) {
	p := newCashflowProcessor()
	status := p.Project(processors.CashflowInput{
		Year:  2026,
		Month: time.March,
		Today: day(2026, time.March, 1),
		Obligations: []models.RecurringObligation{
			{ID: "o1", Name: "Daycare", Frequency: models.FreqEveryTwoWeeks, Amount: dec("300"), Account: models.AccountChecking},
			{ID: "o2", Name: "Car registration", Frequency: models.FreqYearly, Amount: dec("240"), Account: models.AccountBills},
		},
	})
	if !status.NeedByAccount[models.AccountChecking].Equal(dec("600")) {
		t.Errorf("biweekly need %s, want 600 (x2)", status.NeedByAccount[models.AccountChecking])
	}
	if !status.NeedByAccount[models.AccountBills].Equal(dec("20")) {
		t.Errorf("yearly need %s, want 20 (/12)", status.NeedByAccount[models.AccountBills])
	}
}

func TestProject_BiweeklyPaycheckCount(t *testing.T) {
	p := newCashflowProcessor()
	anchor := day(2026, time.January, 2)
	pc := models.PaycheckConfig{
		ID: "p1", Name: "Salary", Frequency: models.PayBiweekly, AnchorDate: &anchor, Amount: dec("2000"),
	}

	// January 2026 catches three occurrences: the 2nd, 16th and 30th.
	jan := p.Project(processors.CashflowInput{
		Year: 2026, Month: time.January, Today: day(2026, time.January, 31),
		Paychecks: []models.PaycheckConfig{pc},
	})
	if !jan.ExpectedIncome.Equal(dec("6000")) {
		t.Errorf("january income %s, want 6000", jan.ExpectedIncome)
	}
	if len(jan.PayPeriods) != 3 {
		t.Fatalf("january pay periods %d, want 3", len(jan.PayPeriods))
	}

	// February catches two: the 13th and 27th.
	feb := p.Project(processors.CashflowInput{
		Year: 2026, Month: time.February, Today: day(2026, time.February, 28),
		Paychecks: []models.PaycheckConfig{pc},
	})
	if !feb.ExpectedIncome.Equal(dec("4000")) {
		t.Errorf("february income %s, want 4000", feb.ExpectedIncome)
	}
	if len(feb.PayPeriods) != 2 {
		t.Fatalf("february pay periods %d, want 2", len(feb.PayPeriods))
	}
	if !feb.PayPeriods[0].End.Equal(day(2026, time.February, 13)) {
		t.Errorf("first february period ends %s, want 2026-02-13", feb.PayPeriods[0].End)
	}
}

func TestProject_LastWorkingDayPaycheckFundsNextMonth(t *testing.T) {
	p := newCashflowProcessor()
	status := p.Project(processors.CashflowInput{
		Year: 2026, Month: time.March, Today: day(2026, time.March, 1),
		Paychecks: []models.PaycheckConfig{{
			ID: "p1", Name: "Salary", Frequency: models.PayLastWorkingDay, Amount: dec("4500"),
		}},
	})
	if !status.ExpectedIncome.Equal(dec("4500")) {
		t.Errorf("income %s, want 4500", status.ExpectedIncome)
	}
	if len(status.PayPeriods) != 1 {
		t.Fatalf("pay periods %d, want 1", len(status.PayPeriods))
	}
	// February 28th 2026 is a Saturday, so March is funded by Friday the 27th.
	if !status.PayPeriods[0].End.Equal(day(2026, time.February, 27)) {
		t.Errorf("period end %s, want 2026-02-27", status.PayPeriods[0].End)
	}
}

func TestProject_RequiredPerPeriodUsesSingleOccurrence(t *testing.T) {
	p := newCashflowProcessor()
	anchor := day(2026, time.February, 13)
	due := day(2026, time.February, 13)
	status := p.Project(processors.CashflowInput{
		Year: 2026, Month: time.February, Today: day(2026, time.February, 1),
		Paychecks: []models.PaycheckConfig{{
			ID: "p1", Name: "Salary", Frequency: models.PayBiweekly, AnchorDate: &anchor, Amount: dec("2000"),
		}},
		Obligations: []models.RecurringObligation{{
			ID: "o1", Name: "Daycare", Frequency: models.FreqEveryTwoWeeks,
			NextDue: &due, Amount: dec("300"), Account: models.AccountChecking,
		}},
	})

	// Monthly-equivalent need doubles the biweekly amount, but each pay
	// period only requires one occurrence, even when two land in its window.
	if !status.NeedByAccount[models.AccountChecking].Equal(dec("600")) {
		t.Errorf("monthly need %s, want 600", status.NeedByAccount[models.AccountChecking])
	}
	if len(status.PayPeriods) != 2 {
		t.Fatalf("pay periods %d, want 2", len(status.PayPeriods))
	}
	for i, period := range status.PayPeriods {
		if !period.Required.Equal(dec("300")) {
			t.Errorf("period %d required %s, want 300", i, period.Required)
		}
	}
}

func TestProject_TransfersToDate(t *testing.T) {
	p := newCashflowProcessor()

	t.Run("occurrences up to today only", func(t *testing.T) {
		status := p.Project(processors.CashflowInput{
			Year: 2026, Month: time.March, Today: day(2026, time.March, 15),
			Transfers: []models.AutoTransfer{
				{ID: "t1", WhatFor: "Bills funding", Frequency: models.FreqMonthly,
					Account: models.AccountBills, Date: day(2026, time.January, 10), Amount: dec("800")},
				{ID: "t2", WhatFor: "Rental reserve", Frequency: models.FreqMonthly,
					Account: models.AccountRental, Date: day(2026, time.January, 20), Amount: dec("400")},
			},
		})
		if !status.TransferredIn[models.AccountBills].Equal(dec("800")) {
			t.Errorf("bills transferred %s, want 800", status.TransferredIn[models.AccountBills])
		}
		// The 20th is after today on the 15th, so nothing moved yet.
		if !status.TransferredIn[models.AccountRental].Equal(decimal.Zero) {
			t.Errorf("rental transferred %s, want 0", status.TransferredIn[models.AccountRental])
		}
	})

	t.Run("transferred-this-cycle counts ahead of schedule", func(t *testing.T) {
		status := p.Project(processors.CashflowInput{
			Year: 2026, Month: time.March, Today: day(2026, time.March, 10),
			Transfers: []models.AutoTransfer{{
				ID: "t1", WhatFor: "Bills funding", Frequency: models.FreqMonthly,
				Account: models.AccountBills, Date: day(2026, time.January, 28), Amount: dec("800"),
				TransferredThisCycle: true,
			}},
		})
		// The scheduled occurrence on the 28th has not arrived, but the flag
		// says the money already moved: count it exactly once.
		if !status.TransferredIn[models.AccountBills].Equal(dec("800")) {
			t.Errorf("bills transferred %s, want 800", status.TransferredIn[models.AccountBills])
		}
	})

	t.Run("flag adds nothing once the schedule catches up", func(t *testing.T) {
		status := p.Project(processors.CashflowInput{
			Year: 2026, Month: time.March, Today: day(2026, time.March, 30),
			Transfers: []models.AutoTransfer{{
				ID: "t1", WhatFor: "Bills funding", Frequency: models.FreqMonthly,
				Account: models.AccountBills, Date: day(2026, time.January, 28), Amount: dec("800"),
				TransferredThisCycle: true,
			}},
		})
		// The occurrence on the 28th has passed and was enumerated; a stale
		// flag must not add the amount a second time.
		if !status.TransferredIn[models.AccountBills].Equal(dec("800")) {
			t.Errorf("bills transferred %s, want 800 (counted once)", status.TransferredIn[models.AccountBills])
		}
	})

	t.Run("outbound flag counts once ahead of schedule", func(t *testing.T) {
		status := p.Project(processors.CashflowInput{
			Year: 2026, Month: time.March, Today: day(2026, time.March, 10),
			Transfers: []models.AutoTransfer{{
				ID: "t1", WhatFor: "Spending money", Frequency: models.FreqMonthly,
				Account: models.AccountPersonal, Date: day(2026, time.January, 28), Amount: dec("200"),
				TransferredThisCycle: true,
			}},
		})
		if !status.OutboundTransfers.Equal(dec("200")) {
			t.Errorf("outbound %s, want 200", status.OutboundTransfers)
		}
	})
}

func TestProject_PaidToDateIgnoresHeuristics(t *testing.T) {
	p := newCashflowProcessor()
	rules := []models.ClassificationRule{{
		ID:       "r1",
		Pattern:  "ROCKY MTN POWER",
		Target:   models.Target{Type: models.TargetBill, Section: models.AccountBills, Name: "Electric"},
		UseCount: 4,
	}}
	status := p.Project(processors.CashflowInput{
		Year: 2026, Month: time.March, Today: day(2026, time.March, 20),
		Transactions: []models.Transaction{
			{ID: "t1", Date: day(2026, time.March, 5), Description: "ROCKY MTN POWER", Amount: dec("-95.50")},
			// No rule matches this one; a keyword guess must not move totals.
			{ID: "t2", Date: day(2026, time.March, 6), Description: "CITY OF PROVO UTILITIES", Amount: dec("-60")},
		},
		Rules: rules,
	})
	if !status.PaidByAccount[models.AccountBills].Equal(dec("95.50")) {
		t.Errorf("bills paid %s, want 95.50", status.PaidByAccount[models.AccountBills])
	}
}
