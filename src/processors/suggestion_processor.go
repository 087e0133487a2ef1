package processors

import (
	"strings"

	"github.com/username/budgetfolio/backend/src/models"
)

// keywordRule maps description keywords to a classification target guess.
type keywordRule struct {
	keywords []string
	target   models.Target
}

// heuristicRules are the fallback keyword tables used when no learned rule
// matches an outflow. They are checked in order, first hit wins. The tables
// are inherently incomplete; anything they produce is LOW confidence and
// meant to be reviewed.
var heuristicRules = []keywordRule{
	{
		keywords: []string{
			"RENTAL", "PROPERTY MANAGEMENT", "PROPERTY MGMT", "HOA DUES", "SPANISH FORK",
		},
		target: models.Target{Type: models.TargetRental, Section: models.AccountRental},
	},
	{
		keywords: []string{
			"POWER", "ELECTRIC", "ENERGY", "NATURAL GAS", "WATER", "SEWER",
			"UTILITY", "UTILITIES", "CITY OF", "MORTGAGE", "INSURANCE",
			"WIRELESS", "MOBILE", "INTERNET", "CONSERVICE",
		},
		target: models.Target{Type: models.TargetBill, Section: models.AccountBills},
	},
	{
		keywords: []string{
			"NETFLIX", "SPOTIFY", "HULU", "DISNEY", "HBO", "AUDIBLE",
			"YOUTUBE", "APPLE.COM", "PATREON", "PRIME VIDEO", "PELOTON",
		},
		target: models.Target{Type: models.TargetSubscription, Section: models.AccountChecking},
	},
}

// SuggestionProcessor produces exactly one classification suggestion per
// transaction in a batch.
type SuggestionProcessor struct {
	matcher *RuleMatcher
}

func NewSuggestionProcessor(matcher *RuleMatcher) *SuggestionProcessor {
	return &SuggestionProcessor{matcher: matcher}
}

// Suggest returns one suggestion per transaction, in input order. Learned
// rules win; outflows without a rule fall back to the keyword tables at LOW
// confidence; inflows without a rule are suggested as ignore.
func (p *SuggestionProcessor) Suggest(txs []models.Transaction, rules []models.ClassificationRule) []models.Suggestion {
	suggestions := make([]models.Suggestion, 0, len(txs))
	for _, tx := range txs {
		suggestions = append(suggestions, p.suggestOne(tx, rules))
	}
	return suggestions
}

func (p *SuggestionProcessor) suggestOne(tx models.Transaction, rules []models.ClassificationRule) models.Suggestion {
	if match := p.matcher.Match(rules, tx); match != nil {
		return models.Suggestion{
			Transaction: tx,
			Target:      match.Rule.Target,
			Confidence:  match.Confidence,
			MatchType:   match.MatchType,
			RuleID:      match.Rule.ID,
		}
	}

	if tx.Amount.IsNegative() {
		target := heuristicTarget(tx.Description)
		if target.Name == "" {
			target.Name = merchantDisplayName(tx.Description)
		}
		return models.Suggestion{
			Transaction: tx,
			Target:      target,
			Confidence:  models.ConfidenceLow,
			MatchType:   models.MatchHeuristic,
		}
	}

	return models.Suggestion{
		Transaction: tx,
		Target:      models.Target{Type: models.TargetIgnore},
		Confidence:  models.ConfidenceLow,
		MatchType:   models.MatchHeuristic,
	}
}

// ApplySessionEdits re-suggests a batch using the session's unsaved
// classifications: an edit the user made for one pattern propagates to other
// transactions sharing that canonical pattern before any rule is persisted.
// Rows the user already classified this session (editedTxIDs) are never
// overwritten, which also makes repeated application converge: a second pass
// over the same inputs changes nothing.
func (p *SuggestionProcessor) ApplySessionEdits(
	suggestions []models.Suggestion,
	editsByPattern map[string]models.Target,
	editedTxIDs map[string]bool,
) []models.Suggestion {
	if len(editsByPattern) == 0 {
		return suggestions
	}
	out := make([]models.Suggestion, len(suggestions))
	for i, s := range suggestions {
		out[i] = s
		if editedTxIDs[s.Transaction.ID] {
			continue
		}
		pattern := Canonicalize(s.Transaction.Description)
		target, ok := editsByPattern[pattern]
		if !ok {
			continue
		}
		out[i].Target = target
		out[i].Confidence = models.ConfidenceMedium
		out[i].MatchType = models.MatchExactPattern
		out[i].RuleID = ""
	}
	return out
}

// heuristicTarget scans the keyword tables for an account/list-type guess.
// Unmatched outflows default to a reviewable variable expense from checking.
func heuristicTarget(description string) models.Target {
	upper := strings.ToUpper(description)
	for _, rule := range heuristicRules {
		for _, kw := range rule.keywords {
			if strings.Contains(upper, kw) {
				return rule.target
			}
		}
	}
	return models.Target{Type: models.TargetVariableExpense, Section: models.AccountChecking}
}

// merchantDisplayName picks a human-readable name for a heuristic suggestion.
func merchantDisplayName(description string) string {
	if name := NormalizeMerchant(description); name != "" {
		return name
	}
	return Canonicalize(description)
}
