// Package currency converts base-currency amounts into display strings.
package currency

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/Veraticus/unroll/internal/model"
)

// Rates are fixed conversion factors relative to the base currency (USD).
var Rates = map[model.Currency]float64{
	model.CurrencyUSD: 1,
	model.CurrencyINR: 83.50,
	model.CurrencyEUR: 0.92,
}

// Symbols maps each currency to its display symbol.
var Symbols = map[model.Currency]string{
	model.CurrencyUSD: "$",
	model.CurrencyINR: "₹",
	model.CurrencyEUR: "€",
}

// Unknown codes keep the amount as-is and borrow the rupee symbol.
const (
	fallbackRate   = 1.0
	fallbackSymbol = "₹"
)

var printer = message.NewPrinter(language.AmericanEnglish)

// Rate returns the conversion factor for code.
func Rate(code model.Currency) float64 {
	if r, ok := Rates[code]; ok {
		return r
	}
	return fallbackRate
}

// Symbol returns the display symbol for code.
func Symbol(code model.Currency) string {
	if s, ok := Symbols[code]; ok {
		return s
	}
	return fallbackSymbol
}

// Convert scales a base-currency amount into code.
func Convert(amount float64, code model.Currency) float64 {
	return amount * Rate(code)
}

// Format renders amount in code with two fractional digits and thousands grouping,
// e.g. Format(100, "INR") == "₹8,350.00".
func Format(amount float64, code model.Currency) string {
	return Symbol(code) + Number(Convert(amount, code))
}

// Number renders an already-converted value with grouping and two decimals.
func Number(v float64) string {
	return printer.Sprintf("%.2f", v)
}

// Known reports whether code has an entry in the rate table.
func Known(code model.Currency) bool {
	_, ok := Rates[code]
	return ok
}
