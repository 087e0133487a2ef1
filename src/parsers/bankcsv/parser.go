// Package bankcsv parses delimited bank statements that already carry
// normalized columns: date, description, signed amount, and optionally
// balance, category and account.
package bankcsv

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/username/budgetfolio/backend/src/logger"
	"github.com/username/budgetfolio/backend/src/models"
)

// dateLayouts are tried in order when parsing the date column.
var dateLayouts = []string{"2006-01-02", "01/02/2006", "02-01-2006", "1/2/2006"}

// columnAliases maps header spellings to canonical column names.
var columnAliases = map[string]string{
	"date":             "date",
	"transaction date": "date",
	"posted date":      "date",
	"description":      "description",
	"memo":             "description",
	"payee":            "description",
	"amount":           "amount",
	"balance":          "balance",
	"running balance":  "balance",
	"category":         "category",
	"account":          "account",
}

// Parse reads a statement CSV with a header row. Malformed rows are skipped
// and counted rather than failing the batch; only an unreadable file or a
// header without the required columns is an error.
func Parse(r io.Reader) ([]models.StatementRow, int, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, 0, fmt.Errorf("bankcsv: read header: %w", err)
	}
	columns := mapColumns(header)
	for _, required := range []string{"date", "description", "amount"} {
		if _, ok := columns[required]; !ok {
			return nil, 0, fmt.Errorf("bankcsv: header missing %s column", required)
		}
	}

	var rows []models.StatementRow
	skipped := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, 0, fmt.Errorf("bankcsv: read record: %w", err)
		}
		row, err := parseRow(record, columns)
		if err != nil {
			logger.L.Warn("Skipping malformed statement row", "error", err)
			skipped++
			continue
		}
		rows = append(rows, row)
	}
	return rows, skipped, nil
}

func mapColumns(header []string) map[string]int {
	columns := make(map[string]int)
	for i, name := range header {
		key := strings.ToLower(strings.TrimSpace(name))
		if canonical, ok := columnAliases[key]; ok {
			if _, taken := columns[canonical]; !taken {
				columns[canonical] = i
			}
		}
	}
	return columns
}

func parseRow(record []string, columns map[string]int) (models.StatementRow, error) {
	var row models.StatementRow

	field := func(name string) string {
		idx, ok := columns[name]
		if !ok || idx >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[idx])
	}

	date, err := parseDate(field("date"))
	if err != nil {
		return row, err
	}
	row.Date = date

	row.Description = field("description")
	if row.Description == "" {
		return row, fmt.Errorf("empty description")
	}

	amount, err := parseAmount(field("amount"))
	if err != nil {
		return row, err
	}
	row.Amount = amount

	if raw := field("balance"); raw != "" {
		if balance, err := parseAmount(raw); err == nil {
			row.Balance = decimal.NullDecimal{Decimal: balance, Valid: true}
		}
		// An unparseable balance is dropped; the row is still usable.
	}
	row.Category = field("category")
	row.Account = field("account")
	return row, nil
}

func parseDate(raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable date %q", raw)
}

func parseAmount(raw string) (decimal.Decimal, error) {
	cleaned := strings.ReplaceAll(raw, ",", "")
	cleaned = strings.TrimPrefix(cleaned, "$")
	if strings.HasPrefix(cleaned, "(") && strings.HasSuffix(cleaned, ")") {
		cleaned = "-" + strings.Trim(cleaned, "()")
	}
	amount, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("unparseable amount %q", raw)
	}
	return amount, nil
}
