package validation

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"
	"github.com/username/budgetfolio/backend/src/models"
)

var ErrValidationFailed = fmt.Errorf("validation failed")

const (
	DefaultMaxStringLength = 255
	MaxDescriptionLength   = 1024
)

// ValidateStringNotEmpty checks if a string is not empty after trimming.
func ValidateStringNotEmpty(s, fieldName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s cannot be empty", ErrValidationFailed, fieldName)
	}
	return nil
}

// ValidateStringMaxLength checks if a string's UTF-8 character count is within max bounds.
func ValidateStringMaxLength(s string, maxLength int, fieldName string) error {
	if utf8.RuneCountInString(s) > maxLength {
		return fmt.Errorf("%w: %s exceeds maximum length of %d characters", ErrValidationFailed, fieldName, maxLength)
	}
	return nil
}

// ValidateAmountString parses a decimal amount, optionally rejecting negatives.
func ValidateAmountString(s, fieldName string, allowNegative bool) (decimal.Decimal, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return decimal.Decimal{}, fmt.Errorf("%w: %s cannot be empty", ErrValidationFailed, fieldName)
	}
	val, err := decimal.NewFromString(trimmed)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%w: %s ('%s') is not a valid amount: %v", ErrValidationFailed, fieldName, s, err)
	}
	if !allowNegative && val.IsNegative() {
		return decimal.Decimal{}, fmt.Errorf("%w: %s cannot be negative", ErrValidationFailed, fieldName)
	}
	return val, nil
}

// ValidateDateString checks if a string is a valid calendar day in "YYYY-MM-DD" format.
func ValidateDateString(s, fieldName string) (time.Time, error) {
	trimmed := strings.TrimSpace(s)
	if err := ValidateStringNotEmpty(trimmed, fieldName); err != nil {
		return time.Time{}, err
	}
	t, err := time.Parse("2006-01-02", trimmed)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %s ('%s') is not a valid date (expected YYYY-MM-DD): %v", ErrValidationFailed, fieldName, s, err)
	}
	return t, nil
}

// ValidateFrequency checks an obligation/transfer cadence value.
func ValidateFrequency(s string) (models.Frequency, error) {
	switch models.Frequency(s) {
	case models.FreqEveryTwoWeeks, models.FreqMonthly, models.FreqYearly:
		return models.Frequency(s), nil
	}
	return "", fmt.Errorf("%w: frequency ('%s') must be one of every-2-weeks, monthly, yearly", ErrValidationFailed, s)
}

// ValidatePayFrequency checks a paycheck cadence value.
func ValidatePayFrequency(s string) (models.PayFrequency, error) {
	switch models.PayFrequency(s) {
	case models.PayBiweekly, models.PayMonthlyDay, models.PayLastWorkingDay:
		return models.PayFrequency(s), nil
	}
	return "", fmt.Errorf("%w: frequency ('%s') must be one of biweekly, monthly-fixed-day, monthly-last-working-day", ErrValidationFailed, s)
}

// ValidateAccountClass checks a destination account grouping.
func ValidateAccountClass(s string) (models.AccountClass, error) {
	switch models.AccountClass(s) {
	case models.AccountChecking, models.AccountBills, models.AccountRental, models.AccountPersonal:
		return models.AccountClass(s), nil
	}
	return "", fmt.Errorf("%w: account ('%s') must be one of checking, bills, rental, personal", ErrValidationFailed, s)
}

// ValidateTargetType checks a classification destination.
func ValidateTargetType(s string) (models.TargetType, error) {
	switch models.TargetType(s) {
	case models.TargetBill, models.TargetSubscription, models.TargetRental,
		models.TargetAutoTransfer, models.TargetVariableExpense, models.TargetIgnore:
		return models.TargetType(s), nil
	}
	return "", fmt.Errorf("%w: target type ('%s') is not recognized", ErrValidationFailed, s)
}
