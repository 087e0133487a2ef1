package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/username/budgetfolio/backend/src/models"
)

type sqliteObligationStore struct {
	db *sql.DB
}

func NewObligationStore(db *sql.DB) ObligationStore {
	return &sqliteObligationStore{db: db}
}

func (s *sqliteObligationStore) List() ([]models.RecurringObligation, error) {
	rows, err := s.db.Query(`
		SELECT id, name, frequency, next_due, amount, account, list_type
		FROM recurring_obligations ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("fetch recurring_obligations: %w", err)
	}
	defer rows.Close()

	var obs []models.RecurringObligation
	for rows.Next() {
		ob, err := scanObligation(rows)
		if err != nil {
			return nil, fmt.Errorf("scan obligation row: %w", err)
		}
		obs = append(obs, ob)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate obligation rows: %w", err)
	}
	return obs, nil
}

func (s *sqliteObligationStore) Get(id string) (*models.RecurringObligation, error) {
	row := s.db.QueryRow(`
		SELECT id, name, frequency, next_due, amount, account, list_type
		FROM recurring_obligations WHERE id = ?`, id)
	ob, err := scanObligation(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("fetch obligation %s: not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("fetch obligation %s: %w", id, err)
	}
	return &ob, nil
}

func (s *sqliteObligationStore) Create(ob models.RecurringObligation) error {
	_, err := s.db.Exec(`
		INSERT INTO recurring_obligations (id, name, frequency, next_due, amount, account, list_type)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		ob.ID, ob.Name, string(ob.Frequency), nullDay(ob.NextDue), ob.Amount.String(),
		string(ob.Account), string(ob.ListType),
	)
	if err != nil {
		return fmt.Errorf("insert obligation %q: %w", ob.Name, err)
	}
	return nil
}

func (s *sqliteObligationStore) Update(ob models.RecurringObligation) error {
	res, err := s.db.Exec(`
		UPDATE recurring_obligations
		SET name = ?, frequency = ?, next_due = ?, amount = ?, account = ?, list_type = ?
		WHERE id = ?`,
		ob.Name, string(ob.Frequency), nullDay(ob.NextDue), ob.Amount.String(),
		string(ob.Account), string(ob.ListType), ob.ID,
	)
	if err != nil {
		return fmt.Errorf("update obligation %q: %w", ob.Name, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("update obligation %q: not found", ob.Name)
	}
	return nil
}

func (s *sqliteObligationStore) Delete(id string) error {
	_, err := s.db.Exec("DELETE FROM recurring_obligations WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete obligation %s: %w", id, err)
	}
	return nil
}

func scanObligation(row rowScanner) (models.RecurringObligation, error) {
	var ob models.RecurringObligation
	var frequency, amount, account, listType string
	var nextDue sql.NullString
	if err := row.Scan(&ob.ID, &ob.Name, &frequency, &nextDue, &amount, &account, &listType); err != nil {
		return ob, err
	}
	ob.Frequency = models.Frequency(frequency)
	ob.Account = models.AccountClass(account)
	ob.ListType = models.ListType(listType)
	var err error
	if ob.Amount, err = decimal.NewFromString(amount); err != nil {
		return ob, fmt.Errorf("parse obligation amount %q: %w", amount, err)
	}
	if nextDue.Valid {
		d, err := time.Parse(dayLayout, nextDue.String)
		if err != nil {
			return ob, fmt.Errorf("parse obligation due date %q: %w", nextDue.String, err)
		}
		ob.NextDue = &d
	}
	return ob, nil
}

type sqliteTransferStore struct {
	db *sql.DB
}

func NewTransferStore(db *sql.DB) TransferStore {
	return &sqliteTransferStore{db: db}
}

func (s *sqliteTransferStore) List() ([]models.AutoTransfer, error) {
	rows, err := s.db.Query(`
		SELECT id, what_for, frequency, account, date, amount, transferred_this_cycle
		FROM auto_transfers ORDER BY what_for ASC`)
	if err != nil {
		return nil, fmt.Errorf("fetch auto_transfers: %w", err)
	}
	defer rows.Close()

	var transfers []models.AutoTransfer
	for rows.Next() {
		var t models.AutoTransfer
		var frequency, account, date, amount string
		if err := rows.Scan(&t.ID, &t.WhatFor, &frequency, &account, &date, &amount, &t.TransferredThisCycle); err != nil {
			return nil, fmt.Errorf("scan auto transfer row: %w", err)
		}
		t.Frequency = models.Frequency(frequency)
		t.Account = models.AccountClass(account)
		if t.Date, err = time.Parse(dayLayout, date); err != nil {
			return nil, fmt.Errorf("parse transfer date %q: %w", date, err)
		}
		if t.Amount, err = decimal.NewFromString(amount); err != nil {
			return nil, fmt.Errorf("parse transfer amount %q: %w", amount, err)
		}
		transfers = append(transfers, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate auto transfer rows: %w", err)
	}
	return transfers, nil
}

func (s *sqliteTransferStore) Create(t models.AutoTransfer) error {
	_, err := s.db.Exec(`
		INSERT INTO auto_transfers (id, what_for, frequency, account, date, amount, transferred_this_cycle)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.WhatFor, string(t.Frequency), string(t.Account),
		t.Date.Format(dayLayout), t.Amount.String(), t.TransferredThisCycle,
	)
	if err != nil {
		return fmt.Errorf("insert auto transfer %q: %w", t.WhatFor, err)
	}
	return nil
}

func (s *sqliteTransferStore) Update(t models.AutoTransfer) error {
	res, err := s.db.Exec(`
		UPDATE auto_transfers
		SET what_for = ?, frequency = ?, account = ?, date = ?, amount = ?, transferred_this_cycle = ?
		WHERE id = ?`,
		t.WhatFor, string(t.Frequency), string(t.Account), t.Date.Format(dayLayout),
		t.Amount.String(), t.TransferredThisCycle, t.ID,
	)
	if err != nil {
		return fmt.Errorf("update auto transfer %q: %w", t.WhatFor, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("update auto transfer %q: not found", t.WhatFor)
	}
	return nil
}

func (s *sqliteTransferStore) Delete(id string) error {
	_, err := s.db.Exec("DELETE FROM auto_transfers WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete auto transfer %s: %w", id, err)
	}
	return nil
}

type sqlitePaycheckStore struct {
	db *sql.DB
}

func NewPaycheckStore(db *sql.DB) PaycheckStore {
	return &sqlitePaycheckStore{db: db}
}

func (s *sqlitePaycheckStore) List() ([]models.PaycheckConfig, error) {
	rows, err := s.db.Query(`
		SELECT id, name, frequency, anchor_date, day_of_month, amount
		FROM paycheck_configs ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("fetch paycheck_configs: %w", err)
	}
	defer rows.Close()

	var configs []models.PaycheckConfig
	for rows.Next() {
		var pc models.PaycheckConfig
		var frequency, amount string
		var anchor sql.NullString
		if err := rows.Scan(&pc.ID, &pc.Name, &frequency, &anchor, &pc.DayOfMonth, &amount); err != nil {
			return nil, fmt.Errorf("scan paycheck config row: %w", err)
		}
		pc.Frequency = models.PayFrequency(frequency)
		if anchor.Valid {
			d, err := time.Parse(dayLayout, anchor.String)
			if err != nil {
				return nil, fmt.Errorf("parse paycheck anchor date %q: %w", anchor.String, err)
			}
			pc.AnchorDate = &d
		}
		if pc.Amount, err = decimal.NewFromString(amount); err != nil {
			return nil, fmt.Errorf("parse paycheck amount %q: %w", amount, err)
		}
		configs = append(configs, pc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate paycheck config rows: %w", err)
	}
	return configs, nil
}

func (s *sqlitePaycheckStore) Create(pc models.PaycheckConfig) error {
	_, err := s.db.Exec(`
		INSERT INTO paycheck_configs (id, name, frequency, anchor_date, day_of_month, amount)
		VALUES (?, ?, ?, ?, ?, ?)`,
		pc.ID, pc.Name, string(pc.Frequency), nullDay(pc.AnchorDate), pc.DayOfMonth, pc.Amount.String(),
	)
	if err != nil {
		return fmt.Errorf("insert paycheck config %q: %w", pc.Name, err)
	}
	return nil
}

func (s *sqlitePaycheckStore) Update(pc models.PaycheckConfig) error {
	res, err := s.db.Exec(`
		UPDATE paycheck_configs
		SET name = ?, frequency = ?, anchor_date = ?, day_of_month = ?, amount = ?
		WHERE id = ?`,
		pc.Name, string(pc.Frequency), nullDay(pc.AnchorDate), pc.DayOfMonth, pc.Amount.String(), pc.ID,
	)
	if err != nil {
		return fmt.Errorf("update paycheck config %q: %w", pc.Name, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("update paycheck config %q: not found", pc.Name)
	}
	return nil
}

func (s *sqlitePaycheckStore) Delete(id string) error {
	_, err := s.db.Exec("DELETE FROM paycheck_configs WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete paycheck config %s: %w", id, err)
	}
	return nil
}

type sqliteGoalStore struct {
	db *sql.DB
}

func NewGoalStore(db *sql.DB) GoalStore {
	return &sqliteGoalStore{db: db}
}

func (s *sqliteGoalStore) List() ([]models.Goal, error) {
	rows, err := s.db.Query("SELECT id, name, monthly_contribution FROM goals ORDER BY name ASC")
	if err != nil {
		return nil, fmt.Errorf("fetch goals: %w", err)
	}
	defer rows.Close()

	var goals []models.Goal
	for rows.Next() {
		var g models.Goal
		var contribution string
		if err := rows.Scan(&g.ID, &g.Name, &contribution); err != nil {
			return nil, fmt.Errorf("scan goal row: %w", err)
		}
		if g.MonthlyContribution, err = decimal.NewFromString(contribution); err != nil {
			return nil, fmt.Errorf("parse goal contribution %q: %w", contribution, err)
		}
		goals = append(goals, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate goal rows: %w", err)
	}
	return goals, nil
}

func (s *sqliteGoalStore) Create(g models.Goal) error {
	_, err := s.db.Exec(
		"INSERT INTO goals (id, name, monthly_contribution) VALUES (?, ?, ?)",
		g.ID, g.Name, g.MonthlyContribution.String(),
	)
	if err != nil {
		return fmt.Errorf("insert goal %q: %w", g.Name, err)
	}
	return nil
}

func (s *sqliteGoalStore) Update(g models.Goal) error {
	res, err := s.db.Exec(
		"UPDATE goals SET name = ?, monthly_contribution = ? WHERE id = ?",
		g.Name, g.MonthlyContribution.String(), g.ID,
	)
	if err != nil {
		return fmt.Errorf("update goal %q: %w", g.Name, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("update goal %q: not found", g.Name)
	}
	return nil
}

func (s *sqliteGoalStore) Delete(id string) error {
	_, err := s.db.Exec("DELETE FROM goals WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete goal %s: %w", id, err)
	}
	return nil
}

func nullDay(t *time.Time) sql.NullString {
	if t == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: t.Format(dayLayout), Valid: true}
}
