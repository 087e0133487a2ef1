package store

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/username/budgetfolio/backend/src/models"
)

const dayLayout = "2006-01-02"

type sqliteTransactionStore struct {
	db *sql.DB
}

func NewTransactionStore(db *sql.DB) TransactionStore {
	return &sqliteTransactionStore{db: db}
}

func (s *sqliteTransactionStore) List(filter TransactionFilter) ([]models.Transaction, error) {
	query := `
		SELECT id, date, description, amount, balance, category, account, goal_id, hash_id
		FROM transactions`
	var conds []string
	var args []interface{}
	if filter.From != nil {
		conds = append(conds, "date >= ?")
		args = append(args, filter.From.Format(dayLayout))
	}
	if filter.To != nil {
		conds = append(conds, "date <= ?")
		args = append(args, filter.To.Format(dayLayout))
	}
	if filter.Account != "" {
		conds = append(conds, "account = ?")
		args = append(args, filter.Account)
	}
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY date ASC, id ASC"
	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", filter.Limit)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("fetch transactions: %w", err)
	}
	defer rows.Close()

	var txs []models.Transaction
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scan transaction row: %w", err)
		}
		txs = append(txs, tx)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transaction rows: %w", err)
	}
	return txs, nil
}

func (s *sqliteTransactionStore) Get(id string) (*models.Transaction, error) {
	row := s.db.QueryRow(`
		SELECT id, date, description, amount, balance, category, account, goal_id, hash_id
		FROM transactions WHERE id = ?`, id)
	tx, err := scanTransaction(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("fetch transaction %s: not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("fetch transaction %s: %w", id, err)
	}
	return &tx, nil
}

func (s *sqliteTransactionStore) Insert(tx models.Transaction) (bool, error) {
	var balance sql.NullString
	if tx.Balance.Valid {
		balance = sql.NullString{String: tx.Balance.Decimal.String(), Valid: true}
	}
	_, err := s.db.Exec(`
		INSERT INTO transactions (id, date, description, amount, balance, category, account, goal_id, hash_id)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		tx.ID, tx.Date.Format(dayLayout), tx.Description, tx.Amount.String(),
		balance, tx.Category, tx.Account, tx.GoalID, tx.HashID,
	)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "unique constraint failed") {
			return false, nil
		}
		return false, fmt.Errorf("insert transaction: %w", err)
	}
	return true, nil
}

func (s *sqliteTransactionStore) SetGoal(id, goalID string) error {
	res, err := s.db.Exec("UPDATE transactions SET goal_id = ? WHERE id = ?", goalID, id)
	if err != nil {
		return fmt.Errorf("update transaction %s goal: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("update transaction %s goal: not found", id)
	}
	return nil
}

func (s *sqliteTransactionStore) RecordImport(rec ImportRecord) error {
	_, err := s.db.Exec(`
		INSERT INTO imports_history (id, source, filename, file_size, imported_count, skipped_count, failed_count)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.Source, rec.Filename, rec.FileSize, rec.Imported, rec.Skipped, rec.Failed,
	)
	if err != nil {
		return fmt.Errorf("record import history: %w", err)
	}
	return nil
}

// rowScanner covers both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanTransaction(row rowScanner) (models.Transaction, error) {
	var tx models.Transaction
	var date string
	var amount string
	var balance sql.NullString
	if err := row.Scan(&tx.ID, &date, &tx.Description, &amount, &balance, &tx.Category, &tx.Account, &tx.GoalID, &tx.HashID); err != nil {
		return tx, err
	}
	d, err := time.Parse(dayLayout, date)
	if err != nil {
		return tx, fmt.Errorf("parse transaction date %q: %w", date, err)
	}
	tx.Date = d
	if tx.Amount, err = decimal.NewFromString(amount); err != nil {
		return tx, fmt.Errorf("parse transaction amount %q: %w", amount, err)
	}
	if balance.Valid {
		b, err := decimal.NewFromString(balance.String)
		if err != nil {
			return tx, fmt.Errorf("parse transaction balance %q: %w", balance.String, err)
		}
		tx.Balance = decimal.NullDecimal{Decimal: b, Valid: true}
	}
	return tx, nil
}
