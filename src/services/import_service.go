package services

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
	"github.com/username/budgetfolio/backend/src/logger"
	"github.com/username/budgetfolio/backend/src/models"
	"github.com/username/budgetfolio/backend/src/parsers"
	"github.com/username/budgetfolio/backend/src/schedule"
	"github.com/username/budgetfolio/backend/src/security/validation"
	"github.com/username/budgetfolio/backend/src/store"
)

type importServiceImpl struct {
	txStore     store.TransactionStore
	reportCache *cache.Cache
}

func NewImportService(txStore store.TransactionStore, reportCache *cache.Cache) ImportService {
	return &importServiceImpl{txStore: txStore, reportCache: reportCache}
}

// ImportStatement ingests one normalized statement file. Rows are inserted
// independently: duplicates (by content hash) and failed writes are counted,
// never fatal to the batch.
func (s *importServiceImpl) ImportStatement(r io.Reader, source, filename string, filesize int64, account string) (*ImportResult, error) {
	start := time.Now()
	logger.L.Info("ImportStatement START", "source", source, "filename", filename)

	parser, err := parsers.GetParser(source)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParsingFailed, err)
	}
	outcome, err := parser.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParsingFailed, err)
	}

	result := &ImportResult{Skipped: outcome.Skipped}
	for _, row := range outcome.Rows {
		if err := validation.ValidateStringMaxLength(row.Description, validation.MaxDescriptionLength, "description"); err != nil {
			logger.L.Warn("Skipping statement row", "error", err)
			result.Skipped++
			continue
		}
		tx := models.Transaction{
			ID:          uuid.New().String(),
			Date:        schedule.Day(row.Date),
			Description: row.Description,
			Amount:      row.Amount,
			Balance:     row.Balance,
			Category:    row.Category,
			Account:     row.Account,
			HashID:      statementHash(row),
		}
		if tx.Account == "" {
			tx.Account = account
		}
		inserted, err := s.txStore.Insert(tx)
		if err != nil {
			logger.L.Warn("Failed to insert statement row", "description", row.Description, "error", err)
			result.Failed++
			continue
		}
		if !inserted {
			result.Duplicates++
			continue
		}
		result.Imported++
	}

	if err := s.txStore.RecordImport(store.ImportRecord{
		ID:       uuid.New().String(),
		Source:   source,
		Filename: filename,
		FileSize: filesize,
		Imported: result.Imported,
		Skipped:  result.Skipped,
		Failed:   result.Failed,
	}); err != nil {
		logger.L.Warn("Failed to record import history", "filename", filename, "error", err)
	}

	if result.Imported > 0 {
		s.reportCache.Flush()
	}
	logger.L.Info("ImportStatement END",
		"imported", result.Imported, "duplicates", result.Duplicates,
		"skipped", result.Skipped, "failed", result.Failed,
		"duration", time.Since(start))
	return result, nil
}

// statementHash fingerprints a row for duplicate detection across repeated
// uploads of overlapping statements.
func statementHash(row models.StatementRow) string {
	input := fmt.Sprintf("%s|%s|%s|%s",
		row.Date.Format("2006-01-02"), row.Description, row.Amount.String(), row.Account)
	hash := sha256.Sum256([]byte(input))
	return hex.EncodeToString(hash[:])
}
