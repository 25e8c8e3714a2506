// Package model defines the core domain models used throughout the application.
package model

import (
	"strings"
	"time"
	"unicode"
	"unicode/utf8"
)

// Cycle indicates how often a subscription bills.
type Cycle string

// Billing cycle constants.
const (
	CycleMonthly Cycle = "Monthly"
	CycleYearly  Cycle = "Yearly"
)

// Status indicates whether a subscription is currently billing.
type Status string

// Subscription status constants.
const (
	StatusActive Status = "Active"
	StatusTrial  Status = "Trial"
	StatusPaused Status = "Paused"
)

// DefaultColor is the theme token given to subscriptions added by the user.
const DefaultColor = "indigo"

// Subscription represents one tracked recurring charge.
// Price is expressed in the base currency (USD).
type Subscription struct {
	NextBill time.Time `json:"nextBill"`
	Name     string    `json:"name"`
	Cycle    Cycle     `json:"cycle"`
	Category string    `json:"category"`
	Status   Status    `json:"status"`
	Icon     string    `json:"icon"`
	Color    string    `json:"color"`
	Price    float64   `json:"price"`
	ID       int64     `json:"id"`
}

// MonthlyCost pro-rates the price to a monthly amount.
func (s Subscription) MonthlyCost() float64 {
	if s.Cycle == CycleYearly {
		return s.Price / 12
	}
	return s.Price
}

// IsBilling reports whether the subscription counts towards monthly spend.
func (s Subscription) IsBilling() bool {
	return s.Status == StatusActive || s.Status == StatusTrial
}

// Draft is the raw add-form input for a new subscription.
// Price is kept as text so that the store decides what counts as parsable.
type Draft struct {
	Name     string `json:"name" validate:"required"`
	Price    string `json:"price" validate:"required"`
	Cycle    string `json:"cycle"`
	Category string `json:"category"`
}

// IconFor derives the single-character icon shown for a subscription name.
func IconFor(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	r, _ := utf8.DecodeRuneInString(name)
	return string(unicode.ToUpper(r))
}

// ParseCycle converts user input to a Cycle, defaulting to monthly.
func ParseCycle(s string) (Cycle, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "monthly", "month", "m":
		return CycleMonthly, true
	case "yearly", "year", "annual", "y":
		return CycleYearly, true
	default:
		return "", false
	}
}

// ParseStatus converts user input to a Status. An empty string yields an empty status.
func ParseStatus(s string) (Status, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return "", true
	case "active":
		return StatusActive, true
	case "trial":
		return StatusTrial, true
	case "paused":
		return StatusPaused, true
	default:
		return "", false
	}
}

// DefaultSubscriptions returns the seed collection installed when nothing is persisted.
func DefaultSubscriptions() []Subscription {
	day := func(y int, m time.Month, d int) time.Time {
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	}
	return []Subscription{
		{ID: 1, Name: "Netflix Premium", Price: 19.99, Cycle: CycleMonthly, Category: "Entertainment", NextBill: day(2024, time.August, 24), Status: StatusActive, Icon: "N", Color: "red"},
		{ID: 2, Name: "Spotify Duo", Price: 14.99, Cycle: CycleMonthly, Category: "Music", NextBill: day(2024, time.August, 28), Status: StatusActive, Icon: "S", Color: "green"},
		{ID: 3, Name: "Adobe Creative Cloud", Price: 54.99, Cycle: CycleMonthly, Category: "Software", NextBill: day(2024, time.September, 1), Status: StatusActive, Icon: "A", Color: "blue"},
		{ID: 4, Name: "Figma Professional", Price: 12.00, Cycle: CycleMonthly, Category: "Software", NextBill: day(2024, time.September, 5), Status: StatusTrial, Icon: "F", Color: "purple"},
		{ID: 5, Name: "Amazon Prime", Price: 139.00, Cycle: CycleYearly, Category: "Shopping", NextBill: day(2025, time.January, 15), Status: StatusActive, Icon: "A", Color: "orange"},
		{ID: 6, Name: "NordVPN", Price: 11.95, Cycle: CycleMonthly, Category: "Security", NextBill: day(2024, time.August, 30), Status: StatusPaused, Icon: "N", Color: "sky"},
	}
}
