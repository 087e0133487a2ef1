package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/username/budgetfolio/backend/src/models"
)

type sqliteRuleStore struct {
	db *sql.DB
}

func NewRuleStore(db *sql.DB) RuleStore {
	return &sqliteRuleStore{db: db}
}

const ruleColumns = `id, pattern, normalized_description, target_type, target_section,
		target_name, goal_id, use_count, override_count, created_at, updated_at`

func (s *sqliteRuleStore) ListAll() ([]models.ClassificationRule, error) {
	rows, err := s.db.Query("SELECT " + ruleColumns + " FROM classification_rules ORDER BY pattern ASC")
	if err != nil {
		return nil, fmt.Errorf("fetch classification_rules: %w", err)
	}
	defer rows.Close()

	var rules []models.ClassificationRule
	for rows.Next() {
		rule, err := scanRule(rows)
		if err != nil {
			return nil, fmt.Errorf("scan classification rule row: %w", err)
		}
		rules = append(rules, rule)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate classification rule rows: %w", err)
	}
	return rules, nil
}

func (s *sqliteRuleStore) FindByPattern(pattern string) (*models.ClassificationRule, error) {
	row := s.db.QueryRow("SELECT "+ruleColumns+" FROM classification_rules WHERE pattern = ? LIMIT 1", pattern)
	rule, err := scanRule(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("fetch classification rule by pattern %q: %w", pattern, err)
	}
	return &rule, nil
}

func (s *sqliteRuleStore) Create(rule models.ClassificationRule) error {
	_, err := s.db.Exec(`
		INSERT INTO classification_rules
			(id, pattern, normalized_description, target_type, target_section, target_name, goal_id, use_count, override_count)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rule.ID, rule.Pattern, rule.NormalizedDescription, string(rule.Target.Type),
		string(rule.Target.Section), rule.Target.Name, rule.Target.GoalID,
		rule.UseCount, rule.OverrideCount,
	)
	if err != nil {
		return fmt.Errorf("insert classification rule %q: %w", rule.Pattern, err)
	}
	return nil
}

func (s *sqliteRuleStore) Update(rule models.ClassificationRule) error {
	res, err := s.db.Exec(`
		UPDATE classification_rules
		SET target_type = ?, target_section = ?, target_name = ?, goal_id = ?,
			use_count = ?, override_count = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?`,
		string(rule.Target.Type), string(rule.Target.Section), rule.Target.Name,
		rule.Target.GoalID, rule.UseCount, rule.OverrideCount, rule.ID,
	)
	if err != nil {
		return fmt.Errorf("update classification rule %q: %w", rule.Pattern, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("update classification rule %q: not found", rule.Pattern)
	}
	return nil
}

func (s *sqliteRuleStore) DeleteAll() (int64, error) {
	res, err := s.db.Exec("DELETE FROM classification_rules")
	if err != nil {
		return 0, fmt.Errorf("delete classification_rules: %w", err)
	}
	n, _ := res.RowsAffected()
	return n, nil
}

func scanRule(row rowScanner) (models.ClassificationRule, error) {
	var rule models.ClassificationRule
	var targetType, targetSection string
	var createdAt, updatedAt string
	if err := row.Scan(
		&rule.ID, &rule.Pattern, &rule.NormalizedDescription, &targetType, &targetSection,
		&rule.Target.Name, &rule.Target.GoalID, &rule.UseCount, &rule.OverrideCount,
		&createdAt, &updatedAt,
	); err != nil {
		return rule, err
	}
	rule.Target.Type = models.TargetType(targetType)
	rule.Target.Section = models.AccountClass(targetSection)
	// Timestamps are informational; a malformed value is not worth failing a read.
	rule.CreatedAt = parseTimestamp(createdAt)
	rule.UpdatedAt = parseTimestamp(updatedAt)
	return rule, nil
}

// parseTimestamp accepts the formats sqlite emits for CURRENT_TIMESTAMP.
func parseTimestamp(s string) time.Time {
	for _, layout := range []string{"2006-01-02 15:04:05", time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
