// Package format renders currency and percentage values for display.
package format

import (
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.BritishEnglish)

// Currency returns a currency string with a pound sign and thousands separators (e.g., "-£1,234.56").
func Currency(amount float64) string {
	formatted := printer.Sprintf("%.2f", math.Abs(amount))
	if amount < 0 {
		return "-£" + formatted
	}
	return "£" + formatted
}

// NumericCurrency returns a currency string without a currency symbol but with separators (e.g., "-1,234.56").
func NumericCurrency(amount float64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
	}
	return sign + printer.Sprintf("%.2f", math.Abs(amount))
}

// Percent renders a percentage with two decimal places (e.g., "4.25%").
func Percent(value float64) string {
	return printer.Sprintf("%.2f%%", value)
}
