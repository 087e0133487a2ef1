package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Frequency is the recurrence cadence of an obligation or transfer.
type Frequency string

const (
	FreqEveryTwoWeeks Frequency = "every-2-weeks"
	FreqMonthly       Frequency = "monthly"
	FreqYearly        Frequency = "yearly"
)

// ListType distinguishes the two obligation lists.
type ListType string

const (
	ListBill         ListType = "bill"
	ListSubscription ListType = "subscription"
)

// RecurringObligation is a bill, subscription, or rental-property line item.
// NextDue is nil for items that are not date-tracked, such as an ongoing
// variable budget.
type RecurringObligation struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Frequency Frequency       `json:"frequency"`
	NextDue   *time.Time      `json:"next_due,omitempty"`
	Amount    decimal.Decimal `json:"amount"`
	Account   AccountClass    `json:"account"` // destination account class
	ListType  ListType        `json:"list_type"`

	// InThisPaycheck is derived on read: the next due date falls in the
	// 14-day window ending on the next paycheck date.
	InThisPaycheck bool `json:"in_this_paycheck"`
}

// AutoTransfer is a scheduled movement of money between accounts.
// TransferredThisCycle is a manual override meaning "already executed this
// cycle, don't wait for the schedule".
type AutoTransfer struct {
	ID                   string          `json:"id"`
	WhatFor              string          `json:"what_for"`
	Frequency            Frequency       `json:"frequency"`
	Account              AccountClass    `json:"account"` // destination: bills, rental or personal
	Date                 time.Time       `json:"date"`    // anchor date
	Amount               decimal.Decimal `json:"amount"`
	TransferredThisCycle bool            `json:"transferred_this_cycle"`
}

// PayFrequency is the cadence of a paycheck.
type PayFrequency string

const (
	PayBiweekly       PayFrequency = "biweekly"
	PayMonthlyDay     PayFrequency = "monthly-fixed-day"
	PayLastWorkingDay PayFrequency = "monthly-last-working-day"
)

// PaycheckConfig describes one recurring income source. AnchorDate is used by
// biweekly paychecks, DayOfMonth by monthly-fixed-day ones.
type PaycheckConfig struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Frequency  PayFrequency    `json:"frequency"`
	AnchorDate *time.Time      `json:"anchor_date,omitempty"`
	DayOfMonth int             `json:"day_of_month,omitempty"`
	Amount     decimal.Decimal `json:"amount"`
}
