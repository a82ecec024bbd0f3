package format

import (
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Placeholder is rendered when a value is absent or not finite.
const Placeholder = "—"

var printer = message.NewPrinter(language.AmericanEnglish)

// Currency formats v as a US dollar amount with grouping separators.
// Sub-unit prices get 4 fraction digits to preserve precision; everything
// else gets 2.
func Currency(v *float64) string {
	if v == nil || !isFinite(*v) {
		return Placeholder
	}

	digits := 2
	if math.Abs(*v) < 1 {
		digits = 4
	}

	return "$" + printer.Sprint(number.Decimal(*v,
		number.MinFractionDigits(digits),
		number.MaxFractionDigits(digits),
	))
}

// Compact renders v in compact magnitude notation (e.g., "1.2M") with at
// most 2 fraction digits.
func Compact(v *float64) string {
	if v == nil || !isFinite(*v) {
		return Placeholder
	}

	abs := math.Abs(*v)
	switch {
	case abs >= 1e12:
		return trimmed(*v/1e12) + "T"
	case abs >= 1e9:
		return trimmed(*v/1e9) + "B"
	case abs >= 1e6:
		return trimmed(*v/1e6) + "M"
	case abs >= 1e3:
		return trimmed(*v/1e3) + "K"
	default:
		return trimmed(*v)
	}
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// trimmed formats with 2 fraction digits and strips trailing zeros, so
// 1.20 renders as "1.2" and 3.00 as "3".
func trimmed(v float64) string {
	s := strconv.FormatFloat(v, 'f', 2, 64)
	s = strings.TrimRight(s, "0")
	return strings.TrimRight(s, ".")
}
