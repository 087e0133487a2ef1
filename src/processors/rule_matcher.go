package processors

import (
	"github.com/username/budgetfolio/backend/src/models"
)

// RuleMatch is the outcome of matching one transaction against the rule set.
type RuleMatch struct {
	Rule       models.ClassificationRule
	Confidence models.Confidence
	MatchType  models.MatchType
}

// RuleMatcher selects the best classification rule for a transaction.
type RuleMatcher struct{}

func NewRuleMatcher() *RuleMatcher { return &RuleMatcher{} }

// Match finds the single best rule for the transaction, or nil when no rule's
// pattern or normalized description matches. Candidates are ranked by:
// rules the user has explicitly overridden into at least once first, then
// exact-pattern matches over normalized-description matches, then higher
// computed confidence. An overridden rule represents stronger, more recent
// intent than one that merely shares a textual key.
func (m *RuleMatcher) Match(rules []models.ClassificationRule, tx models.Transaction) *RuleMatch {
	pattern := Canonicalize(tx.Description)
	normalized := NormalizeMerchant(tx.Description)

	var candidates []RuleMatch
	seen := make(map[string]bool)
	for _, rule := range rules {
		if pattern != "" && rule.Pattern == pattern {
			candidates = append(candidates, RuleMatch{
				Rule:       rule,
				Confidence: ComputeConfidence(rule.UseCount, rule.OverrideCount),
				MatchType:  models.MatchExactPattern,
			})
			seen[rule.ID] = true
		}
	}
	for _, rule := range rules {
		if seen[rule.ID] {
			continue
		}
		if normalized != "" && rule.NormalizedDescription == normalized {
			candidates = append(candidates, RuleMatch{
				Rule:       rule,
				Confidence: ComputeConfidence(rule.UseCount, rule.OverrideCount),
				MatchType:  models.MatchNormalized,
			})
		}
	}
	if len(candidates) == 0 {
		return nil
	}

	best := candidates[0]
	for _, c := range candidates[1:] {
		if ranksAbove(c, best) {
			best = c
		}
	}
	return &best
}

// ranksAbove reports whether candidate a outranks candidate b.
func ranksAbove(a, b RuleMatch) bool {
	aOverridden := a.Rule.OverrideCount > 0
	bOverridden := b.Rule.OverrideCount > 0
	if aOverridden != bOverridden {
		return aOverridden
	}
	if a.MatchType != b.MatchType {
		return a.MatchType == models.MatchExactPattern
	}
	return confidenceRank(a.Confidence) > confidenceRank(b.Confidence)
}

func confidenceRank(c models.Confidence) int {
	switch c {
	case models.ConfidenceHigh:
		return 2
	case models.ConfidenceMedium:
		return 1
	}
	return 0
}

// ComputeConfidence grades a rule from its usage counters alone. A rule the
// user keeps accepting gains confidence; one the user keeps correcting loses
// it in proportion to the override share.
func ComputeConfidence(useCount, overrideCount int) models.Confidence {
	total := useCount + overrideCount
	var overrideShare float64
	if total > 0 {
		overrideShare = float64(overrideCount) / float64(total)
	}
	switch {
	case useCount >= 3 && overrideCount == 0:
		return models.ConfidenceHigh
	case useCount >= 5 && overrideShare < 0.2:
		return models.ConfidenceHigh
	case useCount >= 2 && overrideCount == 0:
		return models.ConfidenceMedium
	case useCount > 0 && overrideCount > 0 && overrideShare < 0.5:
		return models.ConfidenceMedium
	default:
		return models.ConfidenceLow
	}
}
