// Package currency renders earned amounts with the symbol of their currency label.
package currency

import (
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var printer = message.NewPrinter(language.English)

// Format renders amount rounded to cents with digit grouping, e.g. "$1,234.56" for USD.
// Labels that are not ISO 4217 codes are printed as a prefix: "PTS 12.50".
func Format(amount decimal.Decimal, code string) string {
	f, _ := amount.Round(2).Float64()
	value := printer.Sprint(number.Decimal(f, number.Scale(2)))

	unit, err := currency.ParseISO(code)
	if err != nil {
		return fmt.Sprintf("%s %s", code, value)
	}
	return printer.Sprint(currency.Symbol(unit)) + value
}

// Symbol returns the display symbol for code, or code itself when it is not ISO 4217
func Symbol(code string) string {
	unit, err := currency.ParseISO(code)
	if err != nil {
		return code
	}
	return printer.Sprint(currency.Symbol(unit))
}

// Known reports whether code is a recognised ISO 4217 currency
func Known(code string) bool {
	_, err := currency.ParseISO(code)
	return err == nil
}
