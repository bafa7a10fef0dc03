package cost

import (
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var printer = message.NewPrinter(language.English)

// FormatCurrency renders a cost as whole dollars with grouped thousands, e.g. "$140,385".
func FormatCurrency(v float64) string {
	return "$" + FormatHours(v)
}

// FormatHours renders an hour count as a grouped integer, e.g. "2,400".
// Halves round away from zero, so 2.5 renders as "3".
func FormatHours(v float64) string {
	return printer.Sprint(number.Decimal(math.Round(v), number.MaxFractionDigits(0)))
}
