// Package parsers turns uploaded statement files into normalized rows.
// The engines never see source formats; they consume StatementRow values the
// active parser produced.
package parsers

import (
	"fmt"
	"io"
	"strings"

	"github.com/username/budgetfolio/backend/src/models"
	"github.com/username/budgetfolio/backend/src/parsers/bankcsv"
)

// ParseOutcome carries the usable rows plus the count of rows that were
// skipped as malformed. A bad row never fails the batch.
type ParseOutcome struct {
	Rows    []models.StatementRow
	Skipped int
}

// Parser converts one source format into normalized statement rows.
type Parser interface {
	Parse(r io.Reader) (ParseOutcome, error)
}

// GetParser returns the parser registered for a source label.
func GetParser(source string) (Parser, error) {
	switch strings.ToLower(source) {
	case "csv", "bankcsv":
		return csvAdapter{}, nil
	default:
		return nil, fmt.Errorf("unsupported statement source: %s", source)
	}
}

// csvAdapter bridges the bankcsv package into the Parser interface.
type csvAdapter struct{}

func (csvAdapter) Parse(r io.Reader) (ParseOutcome, error) {
	rows, skipped, err := bankcsv.Parse(r)
	return ParseOutcome{Rows: rows, Skipped: skipped}, err
}
