package processors_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/username/budgetfolio/backend/src/models"
	"github.com/username/budgetfolio/backend/src/processors"
)

func TestComputeConfidence(t *testing.T) {
	tests := []struct {
		name          string
		useCount      int
		overrideCount int
		expect        models.Confidence
	}{
		{"three accepts no overrides", 3, 0, models.ConfidenceHigh},
		{"heavy use small override share", 5, 1, models.ConfidenceHigh},
		{"two accepts no overrides", 2, 0, models.ConfidenceMedium},
		{"mixed signal below half", 2, 1, models.ConfidenceMedium},
		{"single accept", 1, 0, models.ConfidenceLow},
		{"override share at half", 1, 1, models.ConfidenceLow},
		{"never used", 0, 0, models.ConfidenceLow},
		{"only overridden", 0, 2, models.ConfidenceLow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := processors.ComputeConfidence(tt.useCount, tt.overrideCount)
			if got != tt.expect {
				t.Errorf("ComputeConfidence(%d, %d) = %s, want %s", tt.useCount, tt.overrideCount, got, tt.expect)
			}
		})
	}
}

func outflow(id, description string) models.Transaction {
	return models.Transaction{
		ID:          id,
		Description: description,
		Amount:      decimal.NewFromInt(-25),
	}
}

func TestRuleMatcher_Match(t *testing.T) {
	m := processors.NewRuleMatcher()

	exact := models.ClassificationRule{
		ID:       "r-exact",
		Pattern:  "NETFLIX.COM",
		Target:   models.Target{Type: models.TargetSubscription, Section: models.AccountChecking, Name: "Netflix"},
		UseCount: 3,
	}
	normalized := models.ClassificationRule{
		ID:                    "r-norm",
		Pattern:               "NETFLIX STREAMING SVC",
		NormalizedDescription: "NETFLIX",
		Target:                models.Target{Type: models.TargetSubscription, Section: models.AccountChecking, Name: "Netflix"},
		UseCount:              2,
	}

	t.Run("no rules yields nil", func(t *testing.T) {
		if got := m.Match(nil, outflow("t1", "NETFLIX.COM")); got != nil {
			t.Fatalf("expected nil match, got rule %s", got.Rule.ID)
		}
	})

	t.Run("exact pattern beats normalized description", func(t *testing.T) {
		got := m.Match([]models.ClassificationRule{normalized, exact}, outflow("t1", "NETFLIX.COM"))
		if got == nil {
			t.Fatal("expected a match")
		}
		if got.Rule.ID != "r-exact" {
			t.Errorf("matched rule %s, want r-exact", got.Rule.ID)
		}
		if got.MatchType != models.MatchExactPattern {
			t.Errorf("match type %s, want %s", got.MatchType, models.MatchExactPattern)
		}
		if got.Confidence != models.ConfidenceHigh {
			t.Errorf("confidence %s, want %s", got.Confidence, models.ConfidenceHigh)
		}
	})

	t.Run("normalized description matches when pattern does not", func(t *testing.T) {
		got := m.Match([]models.ClassificationRule{normalized}, outflow("t1", "NETFLIX.COM"))
		if got == nil {
			t.Fatal("expected a match")
		}
		if got.Rule.ID != "r-norm" {
			t.Errorf("matched rule %s, want r-norm", got.Rule.ID)
		}
		if got.MatchType != models.MatchNormalized {
			t.Errorf("match type %s, want %s", got.MatchType, models.MatchNormalized)
		}
	})

	t.Run("overridden rule outranks exact pattern", func(t *testing.T) {
		corrected := normalized
		corrected.OverrideCount = 1
		corrected.Target = models.Target{Type: models.TargetBill, Section: models.AccountBills, Name: "Streaming bundle"}

		got := m.Match([]models.ClassificationRule{exact, corrected}, outflow("t1", "NETFLIX.COM"))
		if got == nil {
			t.Fatal("expected a match")
		}
		if got.Rule.ID != "r-norm" {
			t.Errorf("matched rule %s, want overridden r-norm", got.Rule.ID)
		}
		if got.Rule.Target.Type != models.TargetBill {
			t.Errorf("target type %s, want %s", got.Rule.Target.Type, models.TargetBill)
		}
	})

	t.Run("same rule never counted twice", func(t *testing.T) {
		both := exact
		both.NormalizedDescription = "NETFLIX"
		got := m.Match([]models.ClassificationRule{both}, outflow("t1", "NETFLIX.COM"))
		if got == nil {
			t.Fatal("expected a match")
		}
		if got.MatchType != models.MatchExactPattern {
			t.Errorf("match type %s, want exact to win for a rule matching both ways", got.MatchType)
		}
	})
}
