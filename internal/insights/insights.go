// Package insights computes the derived dashboard figures from a subscription snapshot.
// Everything here is a pure function of its inputs and is recomputed on every read.
package insights

import (
	"slices"
	"sort"
	"strings"

	"github.com/Veraticus/unroll/internal/model"
)

// GrowthRate is the single-year return assumed when projecting invested savings.
const GrowthRate = 0.07

// PotentialSavings is the headline figure shown on the dashboard KPI card.
const PotentialSavings = 420.0

// MonthlyBurn sums the pro-rated monthly cost of every active or trial subscription.
func MonthlyBurn(subs []model.Subscription) float64 {
	var total float64
	for _, sub := range subs {
		if sub.IsBilling() {
			total += sub.MonthlyCost()
		}
	}
	return total
}

// ActiveCount counts subscriptions whose status is Active.
func ActiveCount(subs []model.Subscription) int {
	n := 0
	for _, sub := range subs {
		if sub.Status == model.StatusActive {
			n++
		}
	}
	return n
}

// TrialAlert returns the first trial subscription in collection order, or nil.
func TrialAlert(subs []model.Subscription) *model.Subscription {
	for i := range subs {
		if subs[i].Status == model.StatusTrial {
			sub := subs[i]
			return &sub
		}
	}
	return nil
}

// Search returns subscriptions whose name or category contains query
// (case-insensitive). A non-empty status additionally requires an exact match.
func Search(subs []model.Subscription, query string, status model.Status) []model.Subscription {
	q := strings.ToLower(query)
	out := make([]model.Subscription, 0, len(subs))
	for _, sub := range subs {
		matches := strings.Contains(strings.ToLower(sub.Name), q) ||
			strings.Contains(strings.ToLower(sub.Category), q)
		if !matches {
			continue
		}
		if status != "" && sub.Status != status {
			continue
		}
		out = append(out, sub)
	}
	return out
}

// Savings is the outcome of simulating the cancellation of selected subscriptions.
type Savings struct {
	Monthly           float64
	Yearly            float64
	ProjectedInvested float64
}

// Simulate totals what cancelling the selected subscriptions would save.
// Status is ignored: any selected record contributes its pro-rated cost.
func Simulate(subs []model.Subscription, selected []int64) Savings {
	ids := make(map[int64]struct{}, len(selected))
	for _, id := range selected {
		ids[id] = struct{}{}
	}

	var monthly float64
	for _, sub := range subs {
		if _, ok := ids[sub.ID]; ok {
			monthly += sub.MonthlyCost()
		}
	}

	yearly := monthly * 12
	return Savings{
		Monthly:           monthly,
		Yearly:            yearly,
		ProjectedInvested: yearly * (1 + GrowthRate),
	}
}

// CategorySpend is the monthly spend attributed to one category.
type CategorySpend struct {
	Category string
	Monthly  float64
	Count    int
}

// ByCategory groups billing subscriptions by category, largest spend first.
func ByCategory(subs []model.Subscription) []CategorySpend {
	index := make(map[string]int)
	var out []CategorySpend
	for _, sub := range subs {
		if !sub.IsBilling() {
			continue
		}
		i, ok := index[sub.Category]
		if !ok {
			i = len(out)
			index[sub.Category] = i
			out = append(out, CategorySpend{Category: sub.Category})
		}
		out[i].Monthly += sub.MonthlyCost()
		out[i].Count++
	}
	sort.SliceStable(out, func(a, b int) bool {
		return out[a].Monthly > out[b].Monthly
	})
	return out
}

// TrendPoint is one month of the spending trend chart.
type TrendPoint struct {
	Month string
	Spend float64
}

var trend = []TrendPoint{
	{Month: "Jan", Spend: 320},
	{Month: "Feb", Spend: 345},
	{Month: "Mar", Spend: 330},
	{Month: "Apr", Spend: 380},
	{Month: "May", Spend: 360},
	{Month: "Jun", Spend: 420},
}

// Trend returns the six-month spending series scaled by rate.
func Trend(rate float64) []TrendPoint {
	out := make([]TrendPoint, len(trend))
	for i, p := range trend {
		out[i] = TrendPoint{Month: p.Month, Spend: p.Spend * rate}
	}
	return out
}

// UpcomingLimit is how many renewals the dashboard lists.
const UpcomingLimit = 4

// Upcoming returns the first n subscriptions in collection order.
func Upcoming(subs []model.Subscription, n int) []model.Subscription {
	if n > len(subs) {
		n = len(subs)
	}
	if n <= 0 {
		return nil
	}
	return slices.Clone(subs[:n])
}

// Summary bundles the figures shown on the dashboard.
type Summary struct {
	Trial            *model.Subscription
	Categories       []CategorySpend
	Upcoming         []model.Subscription
	MonthlyBurn      float64
	PotentialSavings float64
	ActiveCount      int
	Total            int
}

// Dashboard computes the dashboard summary for subs.
func Dashboard(subs []model.Subscription) Summary {
	return Summary{
		MonthlyBurn:      MonthlyBurn(subs),
		ActiveCount:      ActiveCount(subs),
		Trial:            TrialAlert(subs),
		Categories:       ByCategory(subs),
		Upcoming:         Upcoming(subs, UpcomingLimit),
		PotentialSavings: PotentialSavings,
		Total:            len(subs),
	}
}
