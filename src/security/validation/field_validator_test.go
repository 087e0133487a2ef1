package validation_test

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/username/budgetfolio/backend/src/security/validation"
)

func TestValidateStringNotEmpty(t *testing.T) {
	if err := validation.ValidateStringNotEmpty("checking", "account"); err != nil {
		t.Errorf("valid string rejected: %v", err)
	}
	for _, s := range []string{"", "   ", "\t\n"} {
		err := validation.ValidateStringNotEmpty(s, "account")
		if !errors.Is(err, validation.ErrValidationFailed) {
			t.Errorf("ValidateStringNotEmpty(%q) = %v, want ErrValidationFailed", s, err)
		}
	}
}

func TestValidateStringMaxLength(t *testing.T) {
	if err := validation.ValidateStringMaxLength(strings.Repeat("a", 255), validation.DefaultMaxStringLength, "name"); err != nil {
		t.Errorf("string at the limit rejected: %v", err)
	}
	err := validation.ValidateStringMaxLength(strings.Repeat("a", 256), validation.DefaultMaxStringLength, "name")
	if !errors.Is(err, validation.ErrValidationFailed) {
		t.Errorf("oversized string = %v, want ErrValidationFailed", err)
	}
	// Length is counted in runes, not bytes.
	if err := validation.ValidateStringMaxLength(strings.Repeat("é", 255), validation.DefaultMaxStringLength, "name"); err != nil {
		t.Errorf("multibyte string at the limit rejected: %v", err)
	}
}

func TestValidateAmountString(t *testing.T) {
	tests := []struct {
		name          string
		input         string
		allowNegative bool
		want          string
		wantErr       bool
	}{
		{"plain amount", "125.50", false, "125.5", false},
		{"trims whitespace", " 42 ", false, "42", false},
		{"negative allowed", "-15.49", true, "-15.49", false},
		{"negative rejected", "-15.49", false, "", true},
		{"empty", "", false, "", true},
		{"not a number", "abc", false, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := validation.ValidateAmountString(tt.input, "amount", tt.allowNegative)
			if tt.wantErr {
				if !errors.Is(err, validation.ErrValidationFailed) {
					t.Fatalf("ValidateAmountString(%q) = %v, want ErrValidationFailed", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ValidateAmountString(%q) returned error: %v", tt.input, err)
			}
			if got.String() != tt.want {
				t.Errorf("ValidateAmountString(%q) = %s, want %s", tt.input, got, tt.want)
			}
		})
	}
}

func TestValidateDateString(t *testing.T) {
	got, err := validation.ValidateDateString("2026-03-05", "next_due")
	if err != nil {
		t.Fatalf("valid date rejected: %v", err)
	}
	if !got.Equal(time.Date(2026, time.March, 5, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("parsed %s, want 2026-03-05 UTC", got)
	}

	for _, s := range []string{"", "03/05/2026", "2026-13-01", "2026-02-30"} {
		if _, err := validation.ValidateDateString(s, "next_due"); !errors.Is(err, validation.ErrValidationFailed) {
			t.Errorf("ValidateDateString(%q) = %v, want ErrValidationFailed", s, err)
		}
	}
}

func TestValidateEnums(t *testing.T) {
	if _, err := validation.ValidateFrequency("monthly"); err != nil {
		t.Errorf("monthly rejected: %v", err)
	}
	if _, err := validation.ValidateFrequency("weekly"); !errors.Is(err, validation.ErrValidationFailed) {
		t.Errorf("weekly accepted, want ErrValidationFailed")
	}

	if _, err := validation.ValidatePayFrequency("biweekly"); err != nil {
		t.Errorf("biweekly rejected: %v", err)
	}
	if _, err := validation.ValidatePayFrequency("monthly"); !errors.Is(err, validation.ErrValidationFailed) {
		t.Errorf("pay frequency monthly accepted, want ErrValidationFailed")
	}

	if _, err := validation.ValidateAccountClass("bills"); err != nil {
		t.Errorf("bills rejected: %v", err)
	}
	if _, err := validation.ValidateAccountClass("savings"); !errors.Is(err, validation.ErrValidationFailed) {
		t.Errorf("savings accepted, want ErrValidationFailed")
	}

	if _, err := validation.ValidateTargetType("subscription"); err != nil {
		t.Errorf("subscription rejected: %v", err)
	}
	if _, err := validation.ValidateTargetType("misc"); !errors.Is(err, validation.ErrValidationFailed) {
		t.Errorf("misc accepted, want ErrValidationFailed")
	}
}
