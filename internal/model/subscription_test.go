package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSubscription_MonthlyCost(t *testing.T) {
	tests := []struct {
		name string
		sub  Subscription
		want float64
	}{
		{name: "monthly", sub: Subscription{Price: 10, Cycle: CycleMonthly}, want: 10},
		{name: "yearly is pro-rated", sub: Subscription{Price: 120, Cycle: CycleYearly}, want: 10},
		{name: "unknown cycle billed as monthly", sub: Subscription{Price: 7}, want: 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, tt.sub.MonthlyCost(), 1e-9)
		})
	}
}

func TestSubscription_IsBilling(t *testing.T) {
	assert.True(t, Subscription{Status: StatusActive}.IsBilling())
	assert.True(t, Subscription{Status: StatusTrial}.IsBilling())
	assert.False(t, Subscription{Status: StatusPaused}.IsBilling())
}

func TestIconFor(t *testing.T) {
	assert.Equal(t, "N", IconFor("netflix"))
	assert.Equal(t, "É", IconFor("  école"))
	assert.Equal(t, "", IconFor("   "))
}

func TestParseCycle(t *testing.T) {
	c, ok := ParseCycle("")
	assert.True(t, ok)
	assert.Equal(t, CycleMonthly, c)

	c, ok = ParseCycle("Yearly")
	assert.True(t, ok)
	assert.Equal(t, CycleYearly, c)

	_, ok = ParseCycle("weekly")
	assert.False(t, ok)
}

func TestParseStatus(t *testing.T) {
	s, ok := ParseStatus("trial")
	assert.True(t, ok)
	assert.Equal(t, StatusTrial, s)

	s, ok = ParseStatus("")
	assert.True(t, ok)
	assert.Empty(t, s)

	_, ok = ParseStatus("cancelled")
	assert.False(t, ok)
}

func TestDefaultSubscriptions(t *testing.T) {
	subs := DefaultSubscriptions()
	assert.Len(t, subs, 6)
	for i, sub := range subs {
		assert.Equal(t, int64(i+1), sub.ID)
		assert.Equal(t, IconFor(sub.Name), sub.Icon)
	}
	assert.Equal(t, StatusTrial, subs[3].Status)
	assert.Equal(t, CycleYearly, subs[4].Cycle)
}

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()
	assert.Equal(t, "Felix Mitchell", s.Name)
	assert.Equal(t, CurrencyINR, s.Currency)
	assert.True(t, s.Notifications)
	assert.Equal(t, ThemeLight, s.Theme)
}
