package currency

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Veraticus/unroll/internal/model"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name   string
		code   model.Currency
		want   string
		amount float64
	}{
		{name: "usd", amount: 100, code: model.CurrencyUSD, want: "$100.00"},
		{name: "inr converts and groups", amount: 100, code: model.CurrencyINR, want: "₹8,350.00"},
		{name: "eur", amount: 100, code: model.CurrencyEUR, want: "€92.00"},
		{name: "unknown falls back to rupee at rate one", amount: 100, code: "XYZ", want: "₹100.00"},
		{name: "zero", amount: 0, code: model.CurrencyUSD, want: "$0.00"},
		{name: "large usd", amount: 1234567.5, code: model.CurrencyUSD, want: "$1,234,567.50"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Format(tt.amount, tt.code))
		})
	}
}

func TestFormat_Deterministic(t *testing.T) {
	first := Format(19.99, model.CurrencyINR)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Format(19.99, model.CurrencyINR))
	}
}

func TestRateAndSymbol(t *testing.T) {
	assert.InDelta(t, 83.5, Rate(model.CurrencyINR), 1e-9)
	assert.InDelta(t, 1.0, Rate("GBP"), 1e-9)
	assert.Equal(t, "€", Symbol(model.CurrencyEUR))
	assert.Equal(t, "₹", Symbol("GBP"))
	assert.True(t, Known(model.CurrencyUSD))
	assert.False(t, Known("GBP"))
}

func TestConvert(t *testing.T) {
	assert.InDelta(t, 9.2, Convert(10, model.CurrencyEUR), 1e-9)
}
